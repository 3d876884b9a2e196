package markdown

// splitCodeSpans breaks raw text into plain and inline-code segments.
// A code span opens with a backtick run and closes with a run of the
// same length; the backticks stay in the segment content so the raw
// bytes round-trip. An unclosed opener is plain text.
func splitCodeSpans(raw string) []segment {
	var segs []segment
	plainStart := 0
	i := 0
	for i < len(raw) {
		if raw[i] != '`' {
			i++
			continue
		}
		fence := tickRun(raw, i)
		closeAt := findClose(raw, i+fence, fence)
		if closeAt < 0 {
			i += fence
			continue
		}
		if i > plainStart {
			segs = append(segs, segment{text: raw[plainStart:i]})
		}
		end := closeAt + fence
		segs = append(segs, segment{text: raw[i:end], code: true})
		i = end
		plainStart = end
	}
	if plainStart < len(raw) {
		segs = append(segs, segment{text: raw[plainStart:]})
	}
	return segs
}

// segment is an intermediate inline piece produced by splitCodeSpans.
type segment struct {
	text string
	code bool
}

// tickRun returns the length of the backtick run at i.
func tickRun(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] == '`' {
		n++
	}
	return n
}

// findClose returns the offset of a backtick run of exactly length n
// at or after from, or -1.
func findClose(s string, from, n int) int {
	for i := from; i < len(s); {
		if s[i] != '`' {
			i++
			continue
		}
		run := tickRun(s, i)
		if run == n {
			return i
		}
		i += run
	}
	return -1
}
