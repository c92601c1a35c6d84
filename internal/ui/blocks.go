package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// BlockRow is one line of the inspect listing.
type BlockRow struct {
	Index int
	Kind  string
	Style string
	Text  string
}

const maxTextWidth = 60

// BlockTable writes rows as aligned columns. Text is cut to one line and
// truncated by display width, so CJK and accented text line up too.
func BlockTable(w io.Writer, rows []BlockRow) {
	kindWidth := runewidth.StringWidth("KIND")
	styleWidth := runewidth.StringWidth("STYLE")
	for _, r := range rows {
		kindWidth = max(kindWidth, runewidth.StringWidth(r.Kind))
		styleWidth = max(styleWidth, runewidth.StringWidth(r.Style))
	}

	fmt.Fprintf(w, "%4s  %s  %s  %s\n", "#",
		runewidth.FillRight("KIND", kindWidth),
		runewidth.FillRight("STYLE", styleWidth),
		"TEXT")
	for _, r := range rows {
		kind := runewidth.FillRight(r.Kind, kindWidth)
		if r.Kind != "paragraph" && r.Kind != "table" {
			kind = kindStyle.Render(kind)
		}
		fmt.Fprintf(w, "%4d  %s  %s  %s\n", r.Index,
			kind,
			runewidth.FillRight(r.Style, styleWidth),
			runewidth.Truncate(oneLine(r.Text), maxTextWidth, "..."))
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
