// Package paper defines the document model for IEEE-style conference
// papers: title, authors, abstract, keywords, sections with text and
// figure blocks, and references.
//
// The model is the input contract of the layout engine. It is a plain
// value owned by the caller - the engine reads it and never mutates it.
// Types carry both JSON tags (editor/API interchange) and BSON tags
// (document store) so a document round-trips unchanged through either.
//
// # Usage
//
// Load a document from a file and validate it:
//
//	doc, err := paper.ImportJSON("paper.json")
//	if err != nil {
//	    return err
//	}
//	if err := doc.Validate(); err != nil {
//	    return err
//	}
package paper
