package document

import "strings"

// Node is any element of a parsed document tree.
type Node interface {
	isNode()
}

// Block is a body-level element read in document order: a *Paragraph or a *Table.
type Block interface {
	Node
	isBlock()
}

// Document is the root of a parsed document.
type Document struct {
	Body []Node
}

// Paragraph holds the text of a paragraph and the name of its style.
type Paragraph struct {
	Text  string
	Style string // style name, e.g. "Heading 2"
}

// Table is a grid of rows. Cells merged horizontally appear once per grid
// column, so every row of a regular table has the same number of cells.
type Table struct {
	Rows []*Row
}

// Row is one table row.
type Row struct {
	Cells []*Cell
}

// Cell holds the paragraphs (and possibly nested tables) of a table cell.
type Cell struct {
	Content []Node
}

// Unknown stands for any body child that is neither a paragraph nor a table.
type Unknown struct {
	Name string
}

func (*Document) isNode()  {}
func (*Paragraph) isNode() {}
func (*Table) isNode()     {}
func (*Row) isNode()       {}
func (*Cell) isNode()      {}
func (*Unknown) isNode()   {}

func (*Paragraph) isBlock() {}
func (*Table) isBlock()     {}

// Paragraphs returns the paragraphs directly inside the cell.
func (c *Cell) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, n := range c.Content {
		if p, ok := n.(*Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

// Text returns the cell paragraphs joined by newlines.
func (c *Cell) Text() string {
	paras := c.Paragraphs()
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n")
}

// Cell returns the cell at row r, column c (0-based), or nil when out of range.
func (t *Table) Cell(r, c int) *Cell {
	if r < 0 || r >= len(t.Rows) {
		return nil
	}
	row := t.Rows[r]
	if c < 0 || c >= len(row.Cells) {
		return nil
	}
	return row.Cells[c]
}

// Column returns cell j of every row, top to bottom. Rows too short to have
// a cell j are skipped.
func (t *Table) Column(j int) []*Cell {
	var col []*Cell
	for _, row := range t.Rows {
		if j < len(row.Cells) {
			col = append(col, row.Cells[j])
		}
	}
	return col
}

// ColumnCount returns the number of cells of the widest row.
func (t *Table) ColumnCount() int {
	n := 0
	for _, row := range t.Rows {
		if len(row.Cells) > n {
			n = len(row.Cells)
		}
	}
	return n
}
