package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LastToken returns the last whitespace-separated token of text and its byte offset.
// It returns ("", -1) when text holds no token.
func LastToken(text string) (string, int) {
	end := strings.LastIndexFunc(text, func(r rune) bool { return !unicode.IsSpace(r) })
	if end < 0 {
		return "", -1
	}
	// end points at the first byte of the last non-space rune
	_, size := utf8.DecodeRuneInString(text[end:])
	end += size

	start := strings.LastIndexFunc(text[:end], unicode.IsSpace)
	if start < 0 {
		start = 0
	} else {
		_, size := utf8.DecodeRuneInString(text[start:])
		start += size
	}
	return text[start:end], start
}

// IsSingleToken reports whether s is one non-empty token with no whitespace inside.
func IsSingleToken(s string) bool {
	return s != "" && strings.IndexFunc(s, unicode.IsSpace) < 0
}

// ReplaceLastToken swaps the last token of text for replacement, keeping any trailing whitespace.
func ReplaceLastToken(text, replacement string) string {
	token, start := LastToken(text)
	if start < 0 {
		return text
	}
	return text[:start] + replacement + text[start+len(token):]
}
