// Package filter derives the visible candidate list from the full contact
// list and a search query.
package filter

import (
	"unicode"
	"unicode/utf8"

	"github.com/oakwood-commons/contactpick/pkg/contact"
)

// Contacts returns the contacts whose name or email contains query as a
// case-insensitive substring, in input order. An empty query returns all.
func Contacts(all []contact.Contact, query string) []contact.Contact {
	if query == "" {
		return all
	}
	out := make([]contact.Contact, 0, len(all))
	for _, c := range all {
		if Contains(c.Name, query) || Contains(c.Email, query) {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether query occurs in text, ignoring case. The query is
// compared literally, rune by rune.
func Contains(text, query string) bool {
	if query == "" {
		return true
	}
	start, _ := Index(text, query)
	return start >= 0
}

// Index returns the byte offsets [start, end) of the first case-insensitive
// occurrence of query in text, or (-1, -1). The returned span refers to
// text, so callers can slice the original casing out of it.
func Index(text, query string) (int, int) {
	if query == "" {
		return 0, 0
	}
	for i := 0; i < len(text); {
		if end, ok := foldPrefix(text[i:], query); ok {
			return i, i + end
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return -1, -1
}

// foldPrefix reports whether s starts with query under simple case folding
// and returns how many bytes of s the match consumed.
func foldPrefix(s, query string) (int, bool) {
	n := 0
	for _, qr := range query {
		if n >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[n:])
		if !equalFold(sr, qr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
