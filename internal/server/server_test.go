package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mvollbrecht/pageflow/pkg/paper"
	"github.com/mvollbrecht/pageflow/pkg/pipeline"
	"github.com/mvollbrecht/pageflow/pkg/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	return New("127.0.0.1:0", runner, store.NewMemoryStore(), logger)
}

func testDocJSON() string {
	doc := paper.Document{
		Title:    "A Preview Service Test",
		Authors:  []paper.Author{{Name: "C. Tester", Organization: "Example Labs"}},
		Abstract: "Short abstract.",
		Sections: []paper.Section{
			{Title: "Introduction", Blocks: []paper.Block{
				{Type: paper.BlockText, Content: "Some introductory text for the test document."},
			}},
		},
	}
	data, _ := json.Marshal(doc)
	return string(data)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func createDoc(t *testing.T, s *Server) paper.Document {
	t.Helper()
	rec := doRequest(t, s, http.MethodPost, "/api/documents", testDocJSON())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var doc paper.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode created doc: %v", err)
	}
	return doc
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestDocumentCRUD(t *testing.T) {
	s := testServer(t)

	doc := createDoc(t, s)
	if doc.ID == "" {
		t.Fatal("server should assign an ID")
	}

	rec := doRequest(t, s, http.MethodGet, "/api/documents/"+doc.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/documents", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var docs []paper.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &docs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("list len = %d, want 1", len(docs))
	}

	updated := doc
	updated.Title = "Updated Title"
	body, _ := json.Marshal(updated)
	rec = doRequest(t, s, http.MethodPut, "/api/documents/"+doc.ID, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/documents/"+doc.ID, "")
	if !strings.Contains(rec.Body.String(), "Updated Title") {
		t.Errorf("update not persisted: %s", rec.Body)
	}

	rec = doRequest(t, s, http.MethodDelete, "/api/documents/"+doc.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doRequest(t, s, http.MethodGet, "/api/documents/"+doc.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestDocumentIDValidation(t *testing.T) {
	s := testServer(t)

	for _, id := range []string{"..secret", "a%5Cb"} {
		rec := doRequest(t, s, http.MethodGet, "/api/documents/"+id, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("get %q status = %d, want 400", id, rec.Code)
		}
		rec = doRequest(t, s, http.MethodDelete, "/api/documents/"+id, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("delete %q status = %d, want 400", id, rec.Code)
		}
	}
}

func TestCreateDocumentValidation(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", "{not json", http.StatusBadRequest},
		{"missing title", `{"authors":[{"name":"A"}]}`, http.StatusBadRequest},
		{"missing authors", `{"title":"T"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/api/documents", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

func TestLayoutEndpoint(t *testing.T) {
	s := testServer(t)

	t.Run("inline document", func(t *testing.T) {
		body := `{"document":` + testDocJSON() + `,"options":{"estimator":"analytic"}}`
		rec := doRequest(t, s, http.MethodPost, "/api/layout", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		var resp struct {
			Pages     []json.RawMessage `json:"pages"`
			PagesHash string            `json:"pages_hash"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Pages) == 0 {
			t.Error("expected at least one page")
		}
		if len(resp.PagesHash) != 64 {
			t.Errorf("pages_hash = %q", resp.PagesHash)
		}
	})

	t.Run("stored document", func(t *testing.T) {
		doc := createDoc(t, s)
		body := `{"document_id":"` + doc.ID + `","options":{"estimator":"analytic"}}`
		rec := doRequest(t, s, http.MethodPost, "/api/layout", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
	})

	t.Run("unknown document id", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/layout", `{"document_id":"nope"}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("neither document nor id", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/layout", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestPreviewEndpoint(t *testing.T) {
	s := testServer(t)
	doc := createDoc(t, s)

	t.Run("svg", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet,
			"/api/documents/"+doc.ID+"/preview/1?estimator=analytic", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
			t.Errorf("content type = %q", ct)
		}
		if !strings.Contains(rec.Body.String(), "<svg") {
			t.Error("body is not SVG")
		}
	})

	t.Run("page out of range", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet,
			"/api/documents/"+doc.ID+"/preview/99?estimator=analytic", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("bad page number", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet,
			"/api/documents/"+doc.ID+"/preview/zero", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("bad format", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet,
			"/api/documents/"+doc.ID+"/preview/1?format=tiff", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("request id header", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/healthz", "")
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
	})
}

func TestPreviewInlineEndpoint(t *testing.T) {
	s := testServer(t)

	t.Run("renders unsaved document", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost,
			"/api/preview/1?estimator=analytic", testDocJSON())
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
			t.Errorf("content type = %q", ct)
		}
		if !strings.Contains(rec.Body.String(), "<svg") {
			t.Error("body is not SVG")
		}
	})

	t.Run("invalid document", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost,
			"/api/preview/1?estimator=analytic", `{"title": "No Authors"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost,
			"/api/preview/1", "{not json")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
