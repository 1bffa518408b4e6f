package paper

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a JSON document from r.
//
// The input must be a JSON object with at least a "title" field; the
// remaining fields (authors, abstract, keywords, sections, references)
// follow the structure of [Document]. Unknown fields are ignored so
// documents written by newer editors still load.
//
// ReadJSON validates the decoded document with [Document.Validate] and
// returns the validation error if it fails. It does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ImportJSON reads a JSON document file at path.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes the document as indented JSON to w.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
