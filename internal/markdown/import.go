package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/dshills/mathdown/internal/doctree"
	"github.com/dshills/mathdown/internal/widget"
)

// Import parses markup into a document tree and materializes every
// eligible math run through mgr. A nil mgr leaves math as literal
// text.
func Import(markup string, mgr *widget.Manager) (*doctree.Document, error) {
	src := []byte(markup)
	md := goldmark.New()
	root := md.Parser().Parse(gmtext.NewReader(src))

	doc := doctree.NewDocument()
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		block := importBlock(n, src)
		if block != nil {
			doc.Append(block)
		}
	}

	if mgr != nil {
		materializeAll(doc, mgr)
	}
	return doc, nil
}

// importBlock converts one top-level goldmark node.
func importBlock(n ast.Node, src []byte) *doctree.Block {
	switch node := n.(type) {
	case *ast.Heading:
		b := doctree.NewHeading(node.Level)
		appendInlines(b, blockLines(n, src))
		return b

	case *ast.FencedCodeBlock:
		b := doctree.NewBlock(doctree.BlockCode)
		if node.Info != nil {
			b.SetFence(string(node.Info.Value(src)))
		}
		b.Append(doctree.NewText(blockLines(n, src)))
		return b

	case *ast.CodeBlock:
		b := doctree.NewBlock(doctree.BlockCode)
		b.Append(doctree.NewText(blockLines(n, src)))
		return b

	case *ast.HTMLBlock:
		b := doctree.NewBlock(doctree.BlockRaw)
		b.Append(doctree.NewText(strings.TrimRight(blockLines(n, src), "\n")))
		return b

	case *ast.ThematicBreak:
		b := doctree.NewBlock(doctree.BlockRaw)
		b.Append(doctree.NewText("---"))
		return b

	case *ast.Paragraph, *ast.TextBlock:
		b := doctree.NewBlock(doctree.BlockParagraph)
		appendInlines(b, blockLines(n, src))
		return b

	default:
		// Container blocks (lists, quotes): keep their exact source
		// span as one editable paragraph so nothing is lost.
		raw := sourceSpan(n, src)
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		b := doctree.NewBlock(doctree.BlockParagraph)
		appendInlines(b, raw)
		return b
	}
}

// blockLines joins a leaf block's source lines.
func blockLines(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// sourceSpan reconstructs the raw source of a container block from the
// line segments of its descendants, widened to full lines so markers
// like "- " and "> " survive.
func sourceSpan(n ast.Node, src []byte) string {
	start, stop := -1, -1
	var visit func(ast.Node)
	visit = func(m ast.Node) {
		if m.Type() == ast.TypeBlock {
			lines := m.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				if start < 0 || seg.Start < start {
					start = seg.Start
				}
				if seg.Stop > stop {
					stop = seg.Stop
				}
			}
		}
		for c := m.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	visit(n)
	if start < 0 {
		return ""
	}
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	return strings.TrimRight(string(src[start:stop]), "\n")
}

// appendInlines splits raw into plain text and inline code span
// segments and appends them to b.
func appendInlines(b *doctree.Block, raw string) {
	if raw == "" {
		return
	}
	for _, s := range splitCodeSpans(raw) {
		if s.code {
			b.Append(doctree.NewCodeText(s.text))
		} else {
			b.Append(doctree.NewText(s.text))
		}
	}
}

// materializeAll runs a full conversion over every scannable segment.
func materializeAll(doc *doctree.Document, mgr *widget.Manager) {
	for _, b := range doc.Blocks() {
		children := make([]doctree.Inline, len(b.Children()))
		copy(children, b.Children())
		for _, c := range children {
			if t, ok := c.(*doctree.Text); ok {
				mgr.ConvertText(t)
			}
		}
	}
}
