package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

func sanitizeUTF8(s string) string {
	if s == "" || utf8.ValidString(s) {
		return s
	}
	// Replace invalid byte sequences with a space (keeps words separated)
	return strings.ToValidUTF8(s, " ")
}

// normalizeText fixes encoding and line endings. Offsets of the returned
// text are what sections point into, so nothing else is rewritten.
func normalizeText(s string) string {
	s = sanitizeUTF8(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimRight(s, " \t\n")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// chapterID derives a stable id from the text so repeated runs over the same
// input report the same chapter.
func chapterID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "ch-" + hex.EncodeToString(sum[:])[:12]
}
