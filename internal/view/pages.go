package view

import (
	"strings"
	"unicode/utf8"
)

// MessageLimit is the longest text Telegram accepts in one message, in runes.
const MessageLimit = 4096

// Pages lays out header followed by the list, one line each, and cuts the
// result into texts of at most limit runes. Cuts fall between items; only an
// item longer than limit on its own is split inside.
func Pages(header string, l List, limit int) []string {
	pieces := []string{header}
	if l.Empty() {
		pieces = append(pieces, l.Placeholder)
	} else {
		pieces = append(pieces, l.Items...)
	}

	var (
		pages []string
		b     strings.Builder
		n     int
	)
	flush := func() {
		if b.Len() > 0 {
			pages = append(pages, b.String())
			b.Reset()
			n = 0
		}
	}
	for _, piece := range pieces {
		for _, part := range splitRunes(piece, limit) {
			size := utf8.RuneCountInString(part)
			if b.Len() > 0 && n+1+size > limit {
				flush()
			}
			if b.Len() > 0 {
				b.WriteByte('\n')
				n++
			}
			b.WriteString(part)
			n += size
		}
	}
	flush()
	return pages
}

func splitRunes(s string, limit int) []string {
	if utf8.RuneCountInString(s) <= limit {
		return []string{s}
	}
	var parts []string
	runes := []rune(s)
	for len(runes) > limit {
		parts = append(parts, string(runes[:limit]))
		runes = runes[limit:]
	}
	return append(parts, string(runes))
}
