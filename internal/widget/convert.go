package widget

import (
	"github.com/dshills/mathdown/internal/doctree"
	"github.com/dshills/mathdown/internal/scanner"
)

// ConvertText scans seg for math runs and replaces it in its block
// with interleaved text segments and materialized widgets. It returns
// the number of widgets created; 0 when seg is ineligible, detached,
// or has no matches. Literal text around and between matches is
// preserved byte for byte.
func (m *Manager) ConvertText(seg *doctree.Text) int {
	if !doctree.Scannable(seg) {
		return 0
	}
	block, ok := seg.Parent().(*doctree.Block)
	if !ok {
		return 0
	}

	src := seg.Text()
	matches := scanner.All(src)
	if len(matches) == 0 {
		return 0
	}

	var repl []doctree.Inline
	last := 0
	for _, match := range matches {
		if match.Start > last {
			repl = append(repl, doctree.NewText(src[last:match.Start]))
		}
		repl = append(repl, m.Materialize(match.Tex, match.Display))
		last = match.End
	}
	if last < len(src) {
		repl = append(repl, doctree.NewText(src[last:]))
	}

	block.Replace(seg, repl...)
	return len(matches)
}
