// Package highlight splits display text into matched and plain segments for
// a search query.
package highlight

import "github.com/oakwood-commons/contactpick/internal/filter"

// Segment is a run of text that either matched the query or did not.
type Segment struct {
	Text    string
	Matched bool
}

// Render splits text on every case-insensitive occurrence of query, scanning
// left to right without overlap. Segments keep the casing of text and
// concatenate back to it. An empty query yields one plain segment.
func Render(text, query string) []Segment {
	if text == "" {
		return nil
	}
	if query == "" {
		return []Segment{{Text: text}}
	}

	var segs []Segment
	rest := text
	for rest != "" {
		start, end := filter.Index(rest, query)
		if start < 0 {
			segs = append(segs, Segment{Text: rest})
			break
		}
		if start > 0 {
			segs = append(segs, Segment{Text: rest[:start]})
		}
		segs = append(segs, Segment{Text: rest[start:end], Matched: true})
		rest = rest[end:]
	}
	return segs
}

// Matched reports whether any segment matched.
func Matched(segs []Segment) bool {
	for _, s := range segs {
		if s.Matched {
			return true
		}
	}
	return false
}
