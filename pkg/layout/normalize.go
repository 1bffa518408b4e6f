package layout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mvollbrecht/pageflow/pkg/paper"
)

// =============================================================================
// Content Normalizer
// =============================================================================

// paragraphSplit matches blank-line boundaries: two or more consecutive
// newlines separate paragraphs, single newlines stay inside a paragraph
// as soft line breaks.
var paragraphSplit = regexp.MustCompile(`\n{2,}`)

// Normalize flattens the document model into the ordered element list
// the paginator consumes. The emission order is fixed: title, author
// block, abstract, keywords (the last header element is tagged to force
// the transition from the single-column header region into the
// two-column body), then each section in order with its content blocks,
// figures, and subsections, and finally the references.
//
// The geometry supplies the figure width buckets; pass the same value
// to Paginate so both stages agree on dimensions.
//
// Normalize does not mutate the document and has no side effects; the
// figure counter is threaded through as a value, so concurrent or
// repeated layout passes never leak numbering state into each other.
func Normalize(doc *paper.Document, geom Geometry) []Element {
	var els []Element

	if doc.Title != "" {
		els = append(els, Element{
			Kind: KindTitle,
			Text: doc.Title,
			Key:  cacheKey(KindTitle, doc.Title),
		})
	}

	if cols := authorColumns(doc.Authors); len(cols) > 0 {
		flat := make([]string, 0, len(cols))
		for _, c := range cols {
			flat = append(flat, strings.Join(c, "\n"))
		}
		els = append(els, Element{
			Kind:    KindAuthors,
			Columns: cols,
			Key:     cacheKey(KindAuthors, flat...),
		})
	}

	if doc.Abstract != "" {
		text := "Abstract—" + doc.Abstract
		els = append(els, Element{
			Kind: KindAbstract,
			Text: text,
			Key:  cacheKey(KindAbstract, text),
		})
	}

	if doc.Keywords != "" {
		text := "Keywords: " + doc.Keywords
		els = append(els, Element{
			Kind: KindKeywords,
			Text: text,
			Key:  cacheKey(KindKeywords, text),
		})
	}

	// The transition from the full-width header into the two-column
	// body is a forced break on the last header element, whichever
	// kind that turned out to be.
	if n := len(els); n > 0 {
		els[n-1].ForceBreakAfter = true
	}

	figN := 0
	for i, sec := range doc.Sections {
		els, figN = appendSection(els, sec, geom, i+1, figN)
	}

	els = appendReferences(els, doc.Reference)

	return els
}

// authorColumns builds one line stack per named author: the name line
// followed by the detail lines. Authors without a name are dropped,
// matching the exporter.
func authorColumns(authors []paper.Author) [][]string {
	var cols [][]string
	for _, a := range authors {
		if a.Name == "" {
			continue
		}
		cols = append(cols, append([]string{a.Name}, a.DetailLines()...))
	}
	return cols
}

// appendSection emits the section heading, content blocks, figures, and
// subsections. figN is the document-scoped figure counter; the updated
// value is returned to the caller.
func appendSection(els []Element, sec paper.Section, geom Geometry, idx, figN int) ([]Element, int) {
	if sec.Title != "" {
		hasBody := len(sec.Blocks) > 0 || len(sec.Subsections) > 0
		text := fmt.Sprintf("%d. %s", idx, strings.ToUpper(sec.Title))
		els = append(els, Element{
			Kind:         KindSectionHeading,
			Text:         text,
			KeepWithNext: hasBody,
			Key:          cacheKey(KindSectionHeading, text),
		})
	}

	for _, block := range sec.Blocks {
		switch block.Type {
		case paper.BlockImage:
			if block.Data != "" {
				els, figN = appendFigure(els, block, geom, figN)
			}
		default:
			// Text blocks, including legacy blocks with no type.
			els = appendParagraphs(els, block.Content)
			// An editor may attach an image directly to a text
			// block; it renders after the block's text.
			if block.IsFigure() {
				els, figN = appendFigure(els, block, geom, figN)
			}
		}
	}

	for j, sub := range sec.Subsections {
		if sub.Title != "" {
			text := fmt.Sprintf("%d.%d %s", idx, j+1, sub.Title)
			els = append(els, Element{
				Kind:         KindSubsectionHeading,
				Text:         text,
				KeepWithNext: strings.TrimSpace(sub.Content) != "",
				Key:          cacheKey(KindSubsectionHeading, text),
			})
		}
		els = appendParagraphs(els, sub.Content)
	}

	return els, figN
}

// appendParagraphs splits a text block on blank-line boundaries and
// emits one paragraph element per chunk. Empty chunks are dropped.
func appendParagraphs(els []Element, text string) []Element {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, part := range paragraphSplit.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		els = append(els, Element{
			Kind: KindParagraph,
			Text: part,
			Key:  cacheKey(KindParagraph, part),
		})
	}
	return els
}

// appendFigure emits a figure element and its caption. Figure numbers
// are assigned from the document-scoped counter, not per section.
// The figure is kept with its caption so a page break never separates
// the two. Image data is passed through unparsed - the renderer owns
// the placeholder fallback for malformed payloads.
func appendFigure(els []Element, block paper.Block, geom Geometry, figN int) ([]Element, int) {
	figN++
	caption := fmt.Sprintf("Fig. %d: %s", figN, block.Caption)
	els = append(els,
		Element{
			Kind:         KindFigure,
			Figure:       &Figure{Data: block.Data, Width: geom.FigureWidth(block.Size)},
			KeepWithNext: true,
			Key:          cacheKey(KindFigure, block.Size, block.Data),
		},
		Element{
			Kind: KindCaption,
			Text: caption,
			Key:  cacheKey(KindCaption, caption),
		},
	)
	return els, figN
}

// appendReferences emits the REFERENCES heading and one numbered entry
// per reference. Entries with empty text are skipped but still consume
// their number, so stored citations like "[3]" stay stable while a
// reference is being edited.
func appendReferences(els []Element, refs []paper.Reference) []Element {
	any := false
	for _, r := range refs {
		if strings.TrimSpace(r.Text) != "" {
			any = true
			break
		}
	}
	if !any {
		return els
	}

	els = append(els, Element{
		Kind:         KindReferenceHeading,
		Text:         "REFERENCES",
		KeepWithNext: true,
		Key:          cacheKey(KindReferenceHeading, "REFERENCES"),
	})

	for i, r := range refs {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		text := fmt.Sprintf("[%d] %s", i+1, r.Text)
		els = append(els, Element{
			Kind: KindReference,
			Text: text,
			Key:  cacheKey(KindReference, text),
		})
	}

	return els
}
