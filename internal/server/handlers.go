package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mvollbrecht/pageflow/pkg/buildinfo"
	"github.com/mvollbrecht/pageflow/pkg/errors"
	"github.com/mvollbrecht/pageflow/pkg/layout"
	"github.com/mvollbrecht/pageflow/pkg/paper"
	"github.com/mvollbrecht/pageflow/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// ============================================================================
// Document CRUD
// ============================================================================

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var doc paper.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document"))
		return
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if err := doc.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), &doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []*paper.Document{}
	}
	s.writeJSON(w, http.StatusOK, docs)
}

// documentID extracts and validates the {id} route parameter.
func (s *Server) documentID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateDocumentID(id); err != nil {
		s.writeError(w, r, err)
		return "", false
	}
	return id, true
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := s.documentID(w, r)
	if !ok {
		return
	}
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := s.documentID(w, r)
	if !ok {
		return
	}
	if _, err := s.store.Get(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	var doc paper.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document"))
		return
	}
	doc.ID = id
	if err := doc.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), &doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := s.documentID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// Layout and previews
// ============================================================================

// layoutRequest carries either an inline document or the ID of a
// stored one, plus pipeline options.
type layoutRequest struct {
	Document   *paper.Document  `json:"document,omitempty"`
	DocumentID string           `json:"document_id,omitempty"`
	Options    pipeline.Options `json:"options"`
}

// layoutResponse is the pagination result for API clients.
type layoutResponse struct {
	Pages     []layout.Page      `json:"pages"`
	PagesHash string             `json:"pages_hash"`
	Stats     pipeline.Stats     `json:"stats"`
	Cache     pipeline.CacheInfo `json:"cache"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout request"))
		return
	}

	doc := req.Document
	if doc == nil {
		if req.DocumentID == "" {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "document or document_id is required"))
			return
		}
		stored, err := s.store.Get(r.Context(), req.DocumentID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		doc = stored
	}

	opts := req.Options
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, layoutResponse{
		Pages:     result.Pages,
		PagesHash: result.PagesHash,
		Stats:     result.Stats,
		Cache:     result.CacheInfo,
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id, ok := s.documentID(w, r)
	if !ok {
		return
	}
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.renderPreview(w, r, doc)
}

// handlePreviewInline renders a page of a document supplied in the
// request body, without requiring it to be stored first. Editors use
// this to preview unsaved changes.
func (s *Server) handlePreviewInline(w http.ResponseWriter, r *http.Request) {
	var doc paper.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document"))
		return
	}
	if err := doc.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.renderPreview(w, r, &doc)
}

func (s *Server) renderPreview(w http.ResponseWriter, r *http.Request, doc *paper.Document) {
	pageNum, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || pageNum < 1 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidPage, "page must be a positive integer"))
		return
	}

	opts, format, err := previewOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Pages = []int{pageNum}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, ok := result.Artifacts[format+":"+strconv.Itoa(pageNum)]
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodePageNotFound,
			"page %d does not exist (document has %d pages)", pageNum, len(result.Pages)))
		return
	}

	contentType := "image/svg+xml"
	if format == pipeline.FormatPNG {
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// previewOptions reads render settings from the query string.
func previewOptions(r *http.Request) (pipeline.Options, string, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Estimator: q.Get("estimator"),
		Guides:    q.Get("guides") == "1" || q.Get("guides") == "true",
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if format != pipeline.FormatSVG && format != pipeline.FormatPNG {
		return opts, "", errors.New(errors.ErrCodeInvalidInput, "format must be svg or png")
	}
	opts.Formats = []string{format}

	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return opts, "", errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number")
		}
		opts.Scale = scale
	}
	return opts, format, nil
}
