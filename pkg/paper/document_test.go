package paper

import (
	"testing"

	"github.com/mvollbrecht/pageflow/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr bool
	}{
		{
			name: "minimal valid document",
			doc: Document{
				Title:   "A Study",
				Authors: []Author{{Name: "A. Author"}},
			},
			wantErr: false,
		},
		{
			name:    "missing title",
			doc:     Document{Authors: []Author{{Name: "A. Author"}}},
			wantErr: true,
		},
		{
			name:    "no authors",
			doc:     Document{Title: "A Study"},
			wantErr: true,
		},
		{
			name: "authors without names",
			doc: Document{
				Title:   "A Study",
				Authors: []Author{{Email: "x@example.org"}},
			},
			wantErr: true,
		},
		{
			name: "unknown block type",
			doc: Document{
				Title:   "A Study",
				Authors: []Author{{Name: "A. Author"}},
				Sections: []Section{{
					Title:  "Intro",
					Blocks: []Block{{Type: "video", Content: "x"}},
				}},
			},
			wantErr: true,
		},
		{
			name: "empty block type defaults to text",
			doc: Document{
				Title:   "A Study",
				Authors: []Author{{Name: "A. Author"}},
				Sections: []Section{{
					Title:  "Intro",
					Blocks: []Block{{Content: "x"}},
				}},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidDocument {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidDocument)
			}
		})
	}
}

func TestAuthorDetailLines(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   []string
	}{
		{
			name:   "name only",
			author: Author{Name: "A. Author"},
			want:   nil,
		},
		{
			name: "full details in render order",
			author: Author{
				Name:         "A. Author",
				Department:   "Dept. of CS",
				Organization: "Example University",
				City:         "Springfield",
				Country:      "USA",
				Email:        "a@example.org",
			},
			want: []string{"Dept. of CS", "Example University", "Springfield", "USA", "a@example.org"},
		},
		{
			name: "custom fields last",
			author: Author{
				Name:         "A. Author",
				Email:        "a@example.org",
				CustomFields: []CustomField{{Label: "ORCID", Value: "0000-0001"}},
			},
			want: []string{"a@example.org", "0000-0001"},
		},
		{
			name: "empty custom field values skipped",
			author: Author{
				Name:         "A. Author",
				CustomFields: []CustomField{{Label: "ORCID"}},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.author.DetailLines()
			if len(got) != len(tt.want) {
				t.Fatalf("DetailLines() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBlockIsFigure(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		want  bool
	}{
		{"data and caption", Block{Type: BlockImage, Data: "aGk=", Caption: "Fig"}, true},
		{"text block with attached image", Block{Type: BlockText, Content: "body", Data: "aGk=", Caption: "Fig"}, true},
		{"data without caption", Block{Type: BlockImage, Data: "aGk="}, false},
		{"caption without data", Block{Type: BlockImage, Caption: "Fig"}, false},
		{"plain text", Block{Type: BlockText, Content: "body"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.block.IsFigure(); got != tt.want {
				t.Errorf("IsFigure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	t.Run("nil receiver", func(t *testing.T) {
		var d *Document
		if d.Clone() != nil {
			t.Error("Clone() of nil should be nil")
		}
	})

	t.Run("deep copy is isolated", func(t *testing.T) {
		orig := &Document{
			ID:    "doc-1",
			Title: "A Study",
			Authors: []Author{{
				Name:         "A. Author",
				CustomFields: []CustomField{{Label: "ORCID", Value: "0000-0001"}},
			}},
			Sections: []Section{{
				Title:       "Intro",
				Blocks:      []Block{{Type: BlockText, Content: "body"}},
				Subsections: []Subsection{{Title: "Background", Content: "more"}},
			}},
			Reference: []Reference{{Text: "R. Author, 2024."}},
		}

		clone := orig.Clone()

		clone.Title = "Changed"
		clone.Authors[0].Name = "B. Author"
		clone.Authors[0].CustomFields[0].Value = "9999"
		clone.Sections[0].Blocks[0].Content = "changed"
		clone.Sections[0].Subsections[0].Title = "Changed"
		clone.Reference[0].Text = "changed"

		if orig.Title != "A Study" {
			t.Error("clone mutation leaked into original title")
		}
		if orig.Authors[0].Name != "A. Author" {
			t.Error("clone mutation leaked into original author")
		}
		if orig.Authors[0].CustomFields[0].Value != "0000-0001" {
			t.Error("clone mutation leaked into original custom field")
		}
		if orig.Sections[0].Blocks[0].Content != "body" {
			t.Error("clone mutation leaked into original block")
		}
		if orig.Sections[0].Subsections[0].Title != "Background" {
			t.Error("clone mutation leaked into original subsection")
		}
		if orig.Reference[0].Text != "R. Author, 2024." {
			t.Error("clone mutation leaked into original reference")
		}
	})
}
