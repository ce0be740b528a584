package bioblitz

// Owner is the colony a cell belongs to.
type Owner uint8

const (
	Unowned Owner = iota
	Green         // Starts in the top-left corner and moves first
	Red           // Starts in the bottom-right corner
)

// Players lists the two playing colours in turn order.
var Players = [2]Owner{Green, Red}

// Opponent returns the other playing colour. Unowned has no opponent.
func (o Owner) Opponent() Owner {
	switch o {
	case Green:
		return Red
	case Red:
		return Green
	default:
		return Unowned
	}
}

// String returns a display name for the owner.
func (o Owner) String() string {
	switch o {
	case Green:
		return "Green"
	case Red:
		return "Red"
	default:
		return "Unowned"
	}
}

// Coord addresses a cell by row and column.
type Coord struct {
	Row int
	Col int
}

// Cell is one bacterium on the board. Its coordinates never change; owner and
// direction are only ever mutated by the Board that created it.
type Cell struct {
	row       int
	col       int
	owner     Owner
	direction Direction
}

// Row returns the cell's row.
func (c *Cell) Row() int { return c.row }

// Col returns the cell's column.
func (c *Cell) Col() int { return c.col }

// Coord returns the cell's position.
func (c *Cell) Coord() Coord { return Coord{Row: c.row, Col: c.col} }

// Owner returns the colony currently holding the cell.
func (c *Cell) Owner() Owner { return c.owner }

// Direction returns where the cell currently points.
func (c *Cell) Direction() Direction { return c.direction }
