// Package extract turns user-chosen files into markup text for import.
//
// Markdown and plain text pass through unchanged. HTML, DOCX, and PDF
// files are reduced to their paragraph text; structure beyond
// headings and paragraphs is not preserved. The result feeds the
// markdown importer, which applies sanitization before installation.
package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupported wraps the file extensions extract cannot handle.
type ErrUnsupported struct {
	Ext string
}

func (e *ErrUnsupported) Error() string {
	return fmt.Sprintf("unsupported file type %q", e.Ext)
}

// Text extracts markup text from the named file's content.
func Text(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown", ".txt", "":
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", filename, err)
		}
		return string(data), nil
	case ".html", ".htm":
		return htmlText(r)
	case ".docx":
		return docxText(r)
	case ".pdf":
		return pdfText(r)
	default:
		return "", &ErrUnsupported{Ext: ext}
	}
}
