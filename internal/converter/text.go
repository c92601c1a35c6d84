package converter

import (
	"strings"

	"github.com/frherrer/docx2testlink/internal/document"
)

var angleReplacer = strings.NewReplacer("<", "lt", ">", "gt")

// ReplaceAngles substitutes "lt" and "gt" for angle brackets. Applying it to
// its own output changes nothing.
func ReplaceAngles(s string) string {
	return angleReplacer.Replace(s)
}

// paragraphLines wraps every non-empty paragraph of c in <p></p>, one per line.
func paragraphLines(c *document.Cell) string {
	if c == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range c.Paragraphs() {
		if p.Text == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(p.Text)
		sb.WriteString("</p>\n")
	}
	return sb.String()
}

func firstCell(row *document.Row) *document.Cell {
	if len(row.Cells) == 0 {
		return nil
	}
	return row.Cells[0]
}

func cellText(c *document.Cell) string {
	if c == nil {
		return ""
	}
	return c.Text()
}
