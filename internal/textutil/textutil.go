// Package textutil holds small string helpers shared by the extraction
// pipeline, the document store and the recommendation service.
package textutil

import (
	"strings"
	"unicode/utf8"
)

// Truncate returns at most n characters (runes) of s.
// Slicing by byte offset would split multi-byte characters in OCR output.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
