// Package ansi handles ANSI escape sequences in rendered diagnostics.
package ansi

import "strings"

// Strip removes SGR and other CSI escape sequences (ESC '[' params final)
// from s. A lone ESC or an unterminated sequence is kept as is.
func Strip(s string) string {
	if !strings.Contains(s, "\x1b[") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			if end := csiEnd(s, i+2); end >= 0 {
				i = end + 1
				continue
			}
		}

		b.WriteByte(s[i])
		i++
	}

	return b.String()
}

// csiEnd returns the index of the final byte of a CSI sequence whose
// parameters start at i, or -1 when the sequence is unterminated.
func csiEnd(s string, i int) int {
	for ; i < len(s); i++ {
		c := s[i]

		switch {
		case c >= 0x40 && c <= 0x7e:
			return i
		case c >= 0x20 && c <= 0x3f:
			// parameter or intermediate byte
		default:
			return -1
		}
	}

	return -1
}
