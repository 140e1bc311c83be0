package pcore

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// MaxRenderLen is the default truncation width ("roughly 60
// characters").
const MaxRenderLen = 60

const ellipsis = "..."

// Render assembles open + elements joined by sep + close, truncating with
// a trailing ellipsis before maxlen is exceeded. It pre-commits room for
// the ellipsis rather than truncating after the fact, so the rendered
// string never exceeds maxlen once the ellipsis is added, except that the
// first element is always written in full even when it alone is longer.
func Render(open, close string, n int, at func(i int) string, sep string, maxlen int) string {
	var b strings.Builder
	b.WriteString(open)
	budget := maxlen - len(open) - len(close) - len(ellipsis)
	truncated := false
	for i := 0; i < n; i++ {
		piece := at(i)
		if i > 0 {
			piece = sep + piece
		}
		if b.Len()+len(piece) > budget+len(open) && i > 0 {
			truncated = true
			break
		}
		b.WriteString(piece)
	}
	if truncated {
		b.WriteString(ellipsis)
	}
	b.WriteString(close)
	return b.String()
}

// CountSuffix renders "n items" with a thousands-separated count, used by
// Render callers that want to collapse a long preview to a bare count
// (e.g. "[|12,345 items|]") instead of listing elements.
func CountSuffix(n int, noun string) string {
	return humanize.Comma(int64(n)) + " " + noun
}
