package paper

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Content block types.
const (
	BlockText  = "text"
	BlockImage = "image"
)

// Named figure sizes. Each maps to a fixed display width so on-screen
// previews and the exported file agree on figure dimensions.
const (
	FigureVerySmall = "very-small"
	FigureSmall     = "small"
	FigureMedium    = "medium"
	FigureLarge     = "large"
)

// =============================================================================
// Document - Paper Model
// =============================================================================

// Document is the canonical representation of a paper under edit.
// It is pure data: ordering is positional, there are no identities
// beyond array order, and section numbering is assigned at layout time.
type Document struct {
	ID        string      `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string      `json:"title" bson:"title"`
	Authors   []Author    `json:"authors,omitempty" bson:"authors,omitempty"`
	Abstract  string      `json:"abstract,omitempty" bson:"abstract,omitempty"`
	Keywords  string      `json:"keywords,omitempty" bson:"keywords,omitempty"`
	Sections  []Section   `json:"sections,omitempty" bson:"sections,omitempty"`
	Reference []Reference `json:"references,omitempty" bson:"references,omitempty"`
}

// Author is one entry in the paper's author block. Detail fields render
// in declaration order beneath the name; CustomFields follow them.
type Author struct {
	Name         string        `json:"name" bson:"name"`
	Department   string        `json:"department,omitempty" bson:"department,omitempty"`
	Organization string        `json:"organization,omitempty" bson:"organization,omitempty"`
	City         string        `json:"city,omitempty" bson:"city,omitempty"`
	State        string        `json:"state,omitempty" bson:"state,omitempty"`
	Country      string        `json:"country,omitempty" bson:"country,omitempty"`
	Email        string        `json:"email,omitempty" bson:"email,omitempty"`
	CustomFields []CustomField `json:"custom_fields,omitempty" bson:"custom_fields,omitempty"`
}

// CustomField is a free-form author detail line (e.g. an ORCID).
type CustomField struct {
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Value string `json:"value" bson:"value"`
}

// DetailLines returns the author's non-empty detail fields in render
// order, custom fields last.
func (a Author) DetailLines() []string {
	var lines []string
	for _, f := range []string{a.Department, a.Organization, a.City, a.State, a.Country, a.Email} {
		if f != "" {
			lines = append(lines, f)
		}
	}
	for _, cf := range a.CustomFields {
		if cf.Value != "" {
			lines = append(lines, cf.Value)
		}
	}
	return lines
}

// Section is a numbered top-level unit of the paper body. Blocks and
// subsections keep their array order through layout.
type Section struct {
	Title       string       `json:"title" bson:"title"`
	Blocks      []Block      `json:"blocks,omitempty" bson:"blocks,omitempty"`
	Subsections []Subsection `json:"subsections,omitempty" bson:"subsections,omitempty"`
}

// Subsection is a titled body of text numbered <section>.<sub>.
type Subsection struct {
	Title   string `json:"title" bson:"title"`
	Content string `json:"content,omitempty" bson:"content,omitempty"`
}

// Block is a unit of section content: running text or a figure.
//
// For image blocks, Data holds the image bytes base64-encoded,
// optionally with a data-URI prefix ("data:image/png;base64,...").
// Malformed image data is not an error at this level: the layout
// engine carries it through and the renderer falls back to a
// placeholder.
type Block struct {
	Type    string `json:"type" bson:"type"`
	Content string `json:"content,omitempty" bson:"content,omitempty"`
	Data    string `json:"data,omitempty" bson:"data,omitempty"`
	Caption string `json:"caption,omitempty" bson:"caption,omitempty"`
	Size    string `json:"size,omitempty" bson:"size,omitempty"`
}

// IsFigure reports whether the block carries image data with a caption.
// A text block may double as a figure when the editor attaches an image
// to it; such blocks emit their text first, then the figure.
func (b Block) IsFigure() bool {
	return b.Data != "" && b.Caption != ""
}

// Reference is a single bibliography entry. Numbering ([1], [2], ...)
// is assigned at layout time from array order.
type Reference struct {
	Text string `json:"text" bson:"text"`
}

// Clone returns a deep copy of the document. Stores hand out clones so
// callers can mutate results without corrupting shared state.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Authors = append([]Author(nil), d.Authors...)
	for i, a := range out.Authors {
		out.Authors[i].CustomFields = append([]CustomField(nil), a.CustomFields...)
	}
	out.Sections = append([]Section(nil), d.Sections...)
	for i, s := range out.Sections {
		out.Sections[i].Blocks = append([]Block(nil), s.Blocks...)
		out.Sections[i].Subsections = append([]Subsection(nil), s.Subsections...)
	}
	out.Reference = append([]Reference(nil), d.Reference...)
	return &out
}
