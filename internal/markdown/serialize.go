package markdown

import (
	"regexp"
	"strings"

	"github.com/dshills/mathdown/internal/doctree"
)

// Rule serializes one node kind. It returns ok=false to fall through
// to the next rule or the default behavior.
type Rule func(n doctree.Node) (string, bool)

// MathRule is the substitution rule the editor core supplies: a
// display widget becomes a standalone $$ block, an inline widget
// becomes $tex$.
func MathRule(n doctree.Node) (string, bool) {
	w, ok := n.(*doctree.Widget)
	if !ok {
		return "", false
	}
	if w.Display() {
		return "\n\n$$\n" + w.Tex() + "\n$$\n\n", true
	}
	return "$" + w.Tex() + "$", true
}

// Serializer turns a document tree back into markup. All node kinds
// use default behavior unless a registered rule claims them.
type Serializer struct {
	rules []Rule
}

// NewSerializer creates a serializer with no extra rules.
func NewSerializer() *Serializer { return &Serializer{} }

// AddRule registers r. Rules are tried in registration order.
func (s *Serializer) AddRule(r Rule) {
	s.rules = append(s.rules, r)
}

// Serialize writes the whole document as markup, blocks separated by
// blank lines.
func (s *Serializer) Serialize(doc *doctree.Document) string {
	parts := make([]string, 0, doc.Len())
	for _, b := range doc.Blocks() {
		parts = append(parts, s.serializeBlock(b))
	}
	out := strings.Join(parts, "\n\n")
	out = collapseBlanks(out)
	return strings.Trim(out, "\n")
}

func (s *Serializer) serializeBlock(b *doctree.Block) string {
	switch b.Kind() {
	case doctree.BlockHeading:
		return strings.Repeat("#", b.Level()) + " " + s.serializeInlines(b)
	case doctree.BlockCode:
		return "```" + b.Fence() + "\n" + b.Raw() + "\n```"
	case doctree.BlockRaw:
		return b.Raw()
	default:
		return s.serializeInlines(b)
	}
}

func (s *Serializer) serializeInlines(b *doctree.Block) string {
	var sb strings.Builder
	for _, c := range b.Children() {
		sb.WriteString(s.serializeNode(c))
	}
	return sb.String()
}

func (s *Serializer) serializeNode(n doctree.Node) string {
	for _, r := range s.rules {
		if out, ok := r(n); ok {
			return out
		}
	}
	// Default behavior: raw markup contribution.
	if in, ok := n.(doctree.Inline); ok {
		return in.Raw()
	}
	return ""
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// collapseBlanks normalizes runs of blank lines introduced by display
// math substitution at block edges.
func collapseBlanks(s string) string {
	return blankRuns.ReplaceAllString(s, "\n\n")
}

// Export serializes doc with the standard rule set. This is what the
// persistence path and the export shortcut write.
func Export(doc *doctree.Document) string {
	s := NewSerializer()
	s.AddRule(MathRule)
	return s.Serialize(doc)
}
