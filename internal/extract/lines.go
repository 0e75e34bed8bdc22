package extract

import "strings"

// Lines is the rendered document text as an ordered list of trimmed,
// non-empty lines. Source order is preserved.
type Lines []string

// NewLines splits rendered text into Lines, dropping blank lines. Carriage
// returns, form feeds, vertical tabs, the ASCII file/group/record separators
// and the Unicode next-line, line and paragraph separators all end a line.
func NewLines(text string) Lines {
	raw := strings.FieldsFunc(text, isLineBreak)
	lines := make(Lines, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// window returns the half-open index range [start, start+size) clamped to the
// bounds of the line list.
func (l Lines) window(start, size int) (int, int) {
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > len(l) {
		end = len(l)
	}
	if start > end {
		start = end
	}
	return start, end
}
