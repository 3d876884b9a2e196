package render

import (
	"fmt"
	"strings"
)

// symbol maps common TeX commands to single-cell glyphs.
var symbol = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "theta": "θ", "lambda": "λ", "mu": "μ",
	"pi": "π", "sigma": "σ", "phi": "φ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ",
	"Pi": "Π", "Sigma": "Σ", "Phi": "Φ", "Omega": "Ω",
	"times": "×", "cdot": "·", "pm": "±", "mp": "∓",
	"div": "÷", "neq": "≠", "leq": "≤", "geq": "≥",
	"approx": "≈", "infty": "∞", "partial": "∂", "nabla": "∇",
	"sum": "Σ", "prod": "Π", "int": "∫", "sqrt": "√",
	"rightarrow": "→", "leftarrow": "←", "Rightarrow": "⇒",
	"in": "∈", "notin": "∉", "subset": "⊂", "cup": "∪", "cap": "∩",
	"forall": "∀", "exists": "∃", "emptyset": "∅", "ldots": "…",
	"cdots": "⋯", "prime": "′", "circ": "∘", "equiv": "≡",
}

// TextEngine renders TeX into compact plain text suitable for terminal
// cells. It handles a fixed set of symbol commands, \frac, and brace
// grouping; anything else passes through with command backslashes
// stripped. Unbalanced braces are a render failure.
type TextEngine struct{}

// NewTextEngine creates a plain-text rendering engine.
func NewTextEngine() *TextEngine { return &TextEngine{} }

// Render produces the plain-text form of tex. displayMode has no layout
// effect here; block placement is the host surface's concern.
func (e *TextEngine) Render(tex string, _ bool) (string, error) {
	if depth := braceDepth(tex); depth != 0 {
		return "", fmt.Errorf("%w: unbalanced braces in %q", ErrRenderFailed, tex)
	}
	out, _ := e.renderGroup(tex, 0, 0)
	return strings.TrimSpace(out), nil
}

// renderGroup renders tex[i:] until an unmatched '}' at the given
// depth. It returns the output and the index just past what it
// consumed.
func (e *TextEngine) renderGroup(tex string, i, depth int) (string, int) {
	var sb strings.Builder
	for i < len(tex) {
		c := tex[i]
		switch c {
		case '{':
			var inner string
			inner, i = e.renderGroup(tex, i+1, depth+1)
			sb.WriteString(inner)
		case '}':
			return sb.String(), i + 1
		case '\\':
			name, rest := command(tex, i+1)
			if name == "frac" {
				num, denom, next := e.fracArgs(tex, rest)
				sb.WriteString(num + "/" + denom)
				i = next
				continue
			}
			if g, ok := symbol[name]; ok {
				sb.WriteString(g)
			} else if name == "" {
				// Escaped character: emit it literally.
				if rest < len(tex) {
					sb.WriteByte(tex[rest])
					rest++
				}
			} else {
				sb.WriteString(name)
			}
			i = rest
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), i
}

// fracArgs renders the two brace arguments of \frac starting at i.
func (e *TextEngine) fracArgs(tex string, i int) (num, denom string, next int) {
	num, i = e.fracArg(tex, i)
	denom, i = e.fracArg(tex, i)
	return num, denom, i
}

func (e *TextEngine) fracArg(tex string, i int) (string, int) {
	if i < len(tex) && tex[i] == '{' {
		return e.renderGroup(tex, i+1, 1)
	}
	// Single-token argument, as in \frac12.
	if i < len(tex) {
		return string(tex[i]), i + 1
	}
	return "", i
}

// command reads a TeX command name starting at i (just past the
// backslash). An empty name means the backslash escaped a single
// character.
func command(tex string, i int) (name string, next int) {
	j := i
	for j < len(tex) && isLetter(tex[j]) {
		j++
	}
	return tex[i:j], j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func braceDepth(tex string) int {
	depth := 0
	for i := 0; i < len(tex); i++ {
		switch tex[i] {
		case '\\':
			i++ // skip escaped character
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return depth
}
