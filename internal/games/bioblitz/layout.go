package bioblitz

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLayout is wrapped by every ParseLayout failure.
var ErrInvalidLayout = errors.New("layout: invalid")

// Seed is the starting state of one cell in a Layout.
type Seed struct {
	Owner     Owner
	Direction Direction
}

// Layout is a fixed board arrangement, row-major.
//
// The text form has one line per row and one whitespace-separated token per
// cell. A token is an owner letter (g, r or .) followed by a compass letter:
//
//	gN .E .S
//	.S .W .N
//	.N .E rS
type Layout struct {
	Cells [][]Seed
}

// Rows returns the number of rows.
func (l Layout) Rows() int { return len(l.Cells) }

// Cols returns the number of columns.
func (l Layout) Cols() int {
	if len(l.Cells) == 0 {
		return 0
	}
	return len(l.Cells[0])
}

// Lines renders the layout in its text form.
func (l Layout) Lines() []string {
	lines := make([]string, len(l.Cells))
	for r, row := range l.Cells {
		tokens := make([]string, len(row))
		for c, s := range row {
			tokens[c] = string(ownerLetter(s.Owner)) + s.Direction.String()
		}
		lines[r] = strings.Join(tokens, " ")
	}
	return lines
}

// String returns the text form joined with newlines.
func (l Layout) String() string {
	return strings.Join(l.Lines(), "\n")
}

// ParseLayout reads the text form. Blank lines are ignored.
func ParseLayout(lines []string) (Layout, error) {
	var layout Layout

	for i, line := range lines {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		if cols := layout.Cols(); cols > 0 && len(tokens) != cols {
			return Layout{}, fmt.Errorf("%w: line %d has %d cells, expected %d", ErrInvalidLayout, i+1, len(tokens), cols)
		}

		row := make([]Seed, len(tokens))
		for c, tok := range tokens {
			seed, err := parseSeed(tok)
			if err != nil {
				return Layout{}, fmt.Errorf("%w: line %d cell %d: %v", ErrInvalidLayout, i+1, c+1, err)
			}
			row[c] = seed
		}
		layout.Cells = append(layout.Cells, row)
	}

	if layout.Rows() == 0 {
		return Layout{}, fmt.Errorf("%w: no cells", ErrInvalidLayout)
	}
	return layout, nil
}

// MustParseLayout is ParseLayout for literals known to be valid.
func MustParseLayout(lines ...string) Layout {
	l, err := ParseLayout(lines)
	if err != nil {
		panic(err)
	}
	return l
}

func parseSeed(tok string) (Seed, error) {
	if len(tok) != 2 {
		return Seed{}, fmt.Errorf("token %q must be two characters", tok)
	}

	var s Seed
	switch tok[0] {
	case 'g', 'G':
		s.Owner = Green
	case 'r', 'R':
		s.Owner = Red
	case '.':
		s.Owner = Unowned
	default:
		return Seed{}, fmt.Errorf("unknown owner %q", tok[0])
	}

	d, ok := parseDirection(tok[1])
	if !ok {
		return Seed{}, fmt.Errorf("unknown direction %q", tok[1])
	}
	s.Direction = d
	return s, nil
}

func ownerLetter(o Owner) byte {
	switch o {
	case Green:
		return 'g'
	case Red:
		return 'r'
	default:
		return '.'
	}
}
