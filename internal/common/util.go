package common

import "strings"

// WipeByteArray overwrites the contents of b with zeros. Passwords read
// from the terminal are wiped once they have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Truncate shortens s to at most n runes, appending an ellipsis when
// something was cut off.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
