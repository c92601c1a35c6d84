package document

import (
	"fmt"
	"io"

	"github.com/frherrer/docx2testlink/internal/domain"
)

// Scanner yields the paragraphs and tables of a container in document order.
// It is forward-only and cannot be restarted.
type Scanner struct {
	children []Node
	pos      int
}

// NewScanner creates a Scanner over the direct children of parent.
// A *Document yields its body, a *Cell its content and a *Row the content of
// each of its cells in turn. Any other node fails with ErrInvalidContainerKind.
func NewScanner(parent Node) (*Scanner, error) {
	switch p := parent.(type) {
	case *Document:
		return &Scanner{children: p.Body}, nil
	case *Cell:
		return &Scanner{children: p.Content}, nil
	case *Row:
		var children []Node
		seen := make(map[*Cell]bool)
		for _, c := range p.Cells {
			// merged cells are repeated in Cells
			if seen[c] {
				continue
			}
			seen[c] = true
			children = append(children, c.Content...)
		}
		return &Scanner{children: children}, nil
	default:
		return nil, fmt.Errorf("%w: %T", domain.ErrInvalidContainerKind, parent)
	}
}

// Next returns the next block, or io.EOF when the container is exhausted.
func (s *Scanner) Next() (Block, error) {
	for s.pos < len(s.children) {
		n := s.children[s.pos]
		s.pos++
		if b, ok := n.(Block); ok {
			return b, nil
		}
	}
	return nil, io.EOF
}

// Blocks drains a new Scanner over parent into a slice.
func Blocks(parent Node) ([]Block, error) {
	s, err := NewScanner(parent)
	if err != nil {
		return nil, err
	}
	var blocks []Block
	for {
		b, err := s.Next()
		if err == io.EOF {
			return blocks, nil
		}
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
}
