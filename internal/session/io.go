package session

import (
	"fmt"
	"io"

	"github.com/dshills/mathdown/internal/doctree"
	"github.com/dshills/mathdown/internal/extract"
	"github.com/dshills/mathdown/internal/markdown"
)

// ImportFile replaces the current document with content extracted from
// r. The filename's extension selects the extractor; raw HTML is
// sanitized before parsing. The caret moves to the document start.
func (s *Session) ImportFile(filename string, r io.Reader) error {
	text, err := extract.Text(filename, r)
	if err != nil {
		return fmt.Errorf("extract %s: %w", filename, err)
	}
	doc, err := markdown.Import(markdown.Sanitize(text), s.widgets)
	if err != nil {
		return fmt.Errorf("import %s: %w", filename, err)
	}
	if doc.Len() == 0 {
		doc.Append(doctree.NewBlock(doctree.BlockParagraph))
	}

	s.doc = doc
	s.active = nil
	s.sel.SetCollapsed(doctree.Point{Container: doc.Block(0), Offset: 0})
	log.Infof("imported %s: %d block(s)", filename, doc.Len())

	s.sched.SchedulePersist()
	s.refreshPreview()
	return nil
}

// ExportMarkup serializes the document to markdown, widgets emitted in
// their delimited raw form.
func (s *Session) ExportMarkup() string {
	return markdown.Export(s.doc)
}
