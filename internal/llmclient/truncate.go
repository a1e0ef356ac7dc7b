// Package llmclient defines the shared contract for hosted language-model
// clients and provides the Poe-backed implementation.
package llmclient

import "strings"

// Truncate returns the prefix of text up to the earliest occurrence of any
// delimiter, or text unchanged if no delimiter occurs. An empty delimiter set
// is a no-op. Empty delimiters within the set are ignored.
//
// Truncation is idempotent: truncating its own output with the same delimiter
// set returns the same string.
func Truncate(text string, delimiters []string) string {
	cut := -1
	for _, d := range delimiters {
		if d == "" {
			continue
		}
		idx := strings.Index(text, d)
		if idx < 0 {
			continue
		}
		if cut < 0 || idx < cut {
			cut = idx
		}
	}
	if cut < 0 {
		return text
	}
	return text[:cut]
}
