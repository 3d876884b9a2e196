// Package scanner finds delimited math runs in text.
//
// A Scanner walks a string once, yielding non-overlapping matches in
// order. Display delimiters ($$...$$) are tried before inline ($...$)
// at each position; matching is non-greedy, stopping at the first
// unescaped closing delimiter. Inline matches may not span newlines.
// An expression that trims to nothing is literal text, not a match.
// The scan is pure: no state outside the Scanner itself.
package scanner

import "strings"

// Match is one delimited math run. Start and End are byte offsets into
// the scanned string covering the full raw span, delimiters included.
// Tex is the expression content with surrounding whitespace trimmed.
type Match struct {
	Start   int
	End     int
	Tex     string
	Display bool
}

// Raw returns the match's raw delimited text within src. src must be
// the string the match was produced from.
func (m Match) Raw(src string) string {
	return src[m.Start:m.End]
}

// Scanner yields math matches from a string, lazily and in order. The
// zero value is not usable; call New.
type Scanner struct {
	src   string
	pos   int
	match Match
}

// New creates a scanner over src.
func New(src string) *Scanner {
	return &Scanner{src: src}
}

// Scan advances to the next match. It returns false when the input is
// exhausted.
func (s *Scanner) Scan() bool {
	for s.pos < len(s.src) {
		open := s.nextDelim(s.pos)
		if open < 0 {
			s.pos = len(s.src)
			return false
		}

		// Display form first: $$...$$.
		if strings.HasPrefix(s.src[open:], "$$") {
			if m, ok := s.tryClose(open, 2, true); ok {
				s.match = m
				s.pos = m.End
				return true
			}
		}
		if m, ok := s.tryClose(open, 1, false); ok {
			s.match = m
			s.pos = m.End
			return true
		}

		// No well-formed run starts here; step past this delimiter.
		s.pos = open + 1
	}
	return false
}

// Match returns the match found by the last successful Scan.
func (s *Scanner) Match() Match { return s.match }

// All runs a full scan over src and returns every match.
func All(src string) []Match {
	var out []Match
	sc := New(src)
	for sc.Scan() {
		out = append(out, sc.Match())
	}
	return out
}

// tryClose looks for the closing delimiter of length delim starting
// after the opener at open. Non-greedy: the first unescaped closer
// wins.
func (s *Scanner) tryClose(open, delim int, display bool) (Match, bool) {
	start := open + delim
	i := start
	for i < len(s.src) {
		if s.src[i] == '\n' && !display {
			return Match{}, false
		}
		if s.src[i] == '$' && !escaped(s.src, i) {
			if delim == 2 {
				if !strings.HasPrefix(s.src[i:], "$$") {
					i++
					continue
				}
			}
			tex := strings.TrimSpace(s.src[start:i])
			if tex == "" {
				// Empty expression: literal text, not math.
				return Match{}, false
			}
			return Match{
				Start:   open,
				End:     i + delim,
				Tex:     tex,
				Display: display,
			}, true
		}
		i++
	}
	return Match{}, false
}

// nextDelim returns the offset of the next unescaped '$' at or after
// from, or -1.
func (s *Scanner) nextDelim(from int) int {
	for i := from; i < len(s.src); i++ {
		if s.src[i] == '$' && !escaped(s.src, i) {
			return i
		}
	}
	return -1
}

// escaped reports whether the byte at i is preceded by an odd number of
// backslashes.
func escaped(src string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && src[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
