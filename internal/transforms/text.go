// Package transforms holds pure functions from upstream JSON (or
// already-typed source rows) to entity records (spec §4.3). None of these
// functions perform I/O; they own the documented deduplication,
// normalization, and truncation rules.
package transforms

import (
	"fmt"
	"unicode/utf8"
)

const (
	abstractMaxBytes = 1500
	titleMaxBytes    = 60
	authorsMaxFull   = 4
)

// TruncateAbstract truncates s to abstractMaxBytes on a UTF-8 boundary,
// appending a "(truncated, N chars total)" note when truncation occurred
// (spec §4.3 "Abstracts are truncated to 1500 bytes on a UTF-8 boundary
// with a note").
func TruncateAbstract(s string) string {
	return truncateWithNote(s, abstractMaxBytes)
}

// TruncateTitle truncates s to titleMaxBytes on a UTF-8 boundary, appending
// an ellipsis when truncation occurred (spec §4.3 "titles to 60 bytes with
// an ellipsis").
func TruncateTitle(s string) string {
	if len(s) <= titleMaxBytes {
		return s
	}
	cut := utf8BoundaryBefore(s, titleMaxBytes)
	return s[:cut] + "…"
}

func truncateWithNote(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := utf8BoundaryBefore(s, maxBytes)
	total := utf8.RuneCountInString(s)
	return fmt.Sprintf("%s (truncated, %d chars total)", s[:cut], total)
}

// utf8BoundaryBefore returns the largest index <= max that does not split a
// UTF-8 rune.
func utf8BoundaryBefore(s string, max int) int {
	if max >= len(s) {
		return len(s)
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return cut
}

// AbbreviateAuthors reduces an author list longer than authorsMaxFull to
// its first and last entries (spec §4.3 "author lists to first+last when
// longer than four").
func AbbreviateAuthors(authors []string) []string {
	if len(authors) <= authorsMaxFull {
		return authors
	}
	return []string{authors[0], authors[len(authors)-1]}
}
