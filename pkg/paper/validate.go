package paper

import (
	"github.com/mvollbrecht/pageflow/pkg/errors"
)

// Validate checks the document for the minimum structure the formatter
// requires: a title and at least one named author. Everything else is
// optional - an empty body still lays out as a near-empty page.
func (d *Document) Validate() error {
	if d.Title == "" {
		return errors.New(errors.ErrCodeInvalidDocument, "document title is required")
	}

	named := false
	for _, a := range d.Authors {
		if a.Name != "" {
			named = true
			break
		}
	}
	if !named {
		return errors.New(errors.ErrCodeInvalidDocument, "at least one author with a name is required")
	}

	for i, s := range d.Sections {
		for j, b := range s.Blocks {
			switch b.Type {
			case BlockText, BlockImage, "":
			default:
				return errors.New(errors.ErrCodeInvalidDocument,
					"section %d block %d: unknown block type %q", i+1, j+1, b.Type)
			}
		}
	}

	return nil
}
