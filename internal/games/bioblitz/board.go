package bioblitz

import (
	"fmt"
	"math/rand"
	"slices"
	"time"
)

// Board defaults, matching the classic game.
const (
	DefaultRows           = 11
	DefaultCols           = 22
	DefaultInfectionDelay = 50 * time.Millisecond
)

// Options configures a Board.
type Options struct {
	Rows           int
	Cols           int
	InfectionDelay time.Duration // Delay before an infected cell spreads; 0 spreads on the next Advance
	Rand           *rand.Rand    // Source for seeding; nil uses a time-based source
}

// DefaultOptions returns the classic 11x22 board with a 50ms spread delay.
func DefaultOptions() Options {
	return Options{
		Rows:           DefaultRows,
		Cols:           DefaultCols,
		InfectionDelay: DefaultInfectionDelay,
	}
}

// Phase is the coarse state of the turn cycle.
type Phase int

const (
	PhaseAwaitingMove Phase = iota // No waves in flight, current player may rotate
	PhaseCascading                 // Infection waves are still pending
	PhaseFinished                  // A colour has been wiped out
)

// String returns a display name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingMove:
		return "awaiting_move"
	case PhaseCascading:
		return "cascading"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// RotateResult reports whether a rotation was applied and, if not, why.
// Rejections are ordinary outcomes, not errors.
type RotateResult int

const (
	Accepted RotateResult = iota
	RejectedNoSuchCell
	RejectedNotOwner
	RejectedCascadeInFlight
	RejectedGameOver
)

// OK reports whether the rotation was applied.
func (r RotateResult) OK() bool {
	return r == Accepted
}

// String returns a short description of the result.
func (r RotateResult) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case RejectedNoSuchCell:
		return "no such cell"
	case RejectedNotOwner:
		return "not your cell"
	case RejectedCascadeInFlight:
		return "infection still spreading"
	case RejectedGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// wave is a deferred infection spreading from cell.
type wave struct {
	cell       *Cell
	due        time.Duration
	generation uint64
}

type subscription struct {
	id int
	fn Listener
}

// Board is the game engine: it owns the grid, enforces turns, runs infection
// cascades and tracks scores and the winner.
//
// Time is virtual. Follow-up waves wait in a queue until Advance moves the
// board clock past their due time, so the platform tick loop (or a test) decides
// how fast cascades unfold. A Board is not safe for concurrent use; it belongs
// to the goroutine driving the game.
type Board struct {
	rows  int
	cols  int
	grid  [][]Cell
	rng   *rand.Rand
	delay time.Duration

	current Owner
	scores  [3]int // Indexed by Owner; Unowned holds the neutral count
	winner  Owner
	moves   int

	clock      time.Duration
	queue      []wave
	pending    int
	generation uint64

	listeners []subscription
	nextSubID int
	outbox    []Event
	flushing  bool
}

// NewBoard creates a board and seeds a fresh game.
// Dimensions below 1x2 fall back to the defaults.
func NewBoard(opts Options) *Board {
	opts = opts.normalize()
	b := &Board{
		rng:   opts.Rand,
		delay: opts.InfectionDelay,
	}
	b.allocate(opts.Rows, opts.Cols)
	b.Reset()
	return b
}

// NewBoardFromLayout creates a board holding a fixed arrangement. The layout
// decides the size; Rows and Cols are ignored.
func NewBoardFromLayout(l Layout, opts Options) (*Board, error) {
	opts = opts.normalize()
	b := &Board{
		rng:   opts.Rand,
		delay: opts.InfectionDelay,
	}
	if err := b.LoadLayout(l); err != nil {
		return nil, err
	}
	return b, nil
}

// normalize fills in defaults for unusable options.
func (o Options) normalize() Options {
	if o.Rows < 1 || o.Cols < 1 || o.Rows*o.Cols < 2 {
		o.Rows, o.Cols = DefaultRows, DefaultCols
	}
	if o.InfectionDelay < 0 {
		o.InfectionDelay = 0
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

func (b *Board) allocate(rows, cols int) {
	b.rows = rows
	b.cols = cols
	b.grid = make([][]Cell, rows)
	for r := range b.grid {
		b.grid[r] = make([]Cell, cols)
		for c := range b.grid[r] {
			b.grid[r][c] = Cell{row: r, col: c}
		}
	}
}

// Reset reseeds every cell and starts a new game with Green to move.
//
// The top half (rows up to Rows/2) is random apart from the three cells around
// Green's corner; every lower row mirrors the cell diagonally opposite it,
// pointing the other way. Row Rows/2 is seeded with the top half, so it is not
// point symmetric: with an odd row count it is not its own mirror, and with an
// even count row Rows/2-1 has no mirror below it. Pending waves from the
// previous game are discarded.
// Existing *Cell values stay valid.
func (b *Board) Reset() {
	half := b.rows / 2
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			cell := &b.grid[r][c]
			cell.owner = Unowned
			if r <= half {
				cell.direction = b.seedDirection(r, c)
			} else {
				cell.direction = b.grid[b.rows-1-r][b.cols-1-c].direction.Opposite()
			}
		}
	}

	b.grid[0][0].owner = Green
	b.grid[b.rows-1][b.cols-1].owner = Red

	b.restart()
	b.flush()
}

func (b *Board) seedDirection(row, col int) Direction {
	switch {
	case row == 0 && col == 0:
		return North // corner faces off the board
	case row == 0 && col == 1:
		return East // must not point back at the corner
	case row == 1 && col == 0:
		return South // must not point back at the corner
	}
	return Directions[b.rng.Intn(len(Directions))]
}

// LoadLayout replaces the board with a fixed arrangement and starts a new game
// with Green to move. Both colours must own at least one cell. The board is resized to the layout if needed, which
// invalidates previously obtained *Cell values.
func (b *Board) LoadLayout(l Layout) error {
	rows, cols := l.Rows(), l.Cols()
	if rows == 0 || cols == 0 {
		return fmt.Errorf("%w: no cells", ErrInvalidLayout)
	}
	var owned [3]int
	for r, row := range l.Cells {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidLayout, r+1, len(row), cols)
		}
		for _, seed := range row {
			owned[seed.Owner]++
		}
	}
	if owned[Green] == 0 || owned[Red] == 0 {
		return fmt.Errorf("%w: needs at least one green and one red cell", ErrInvalidLayout)
	}

	if rows != b.rows || cols != b.cols {
		b.allocate(rows, cols)
	}
	for r, row := range l.Cells {
		for c, seed := range row {
			b.grid[r][c].owner = seed.Owner
			b.grid[r][c].direction = seed.Direction
		}
	}

	b.restart()
	b.flush()
	return nil
}

// restart clears turn, cascade and score state after the grid was rebuilt.
func (b *Board) restart() {
	b.queue = nil
	b.pending = 0
	b.generation++
	b.winner = Unowned
	b.current = Green
	b.moves = 0
	b.countScores()
	b.emit(ResetEvent{Generation: b.generation})
}

// Rotate turns one of the current player's cells a quarter clockwise and
// starts an infection cascade from it. The move is refused, with no state
// change, if the cell is not the mover's, a cascade is still in flight, or the
// game is already won.
func (b *Board) Rotate(c *Cell) RotateResult {
	if c == nil || !b.holds(c) {
		return RejectedNoSuchCell
	}
	if c.owner != b.current {
		return RejectedNotOwner
	}
	if b.pending > 0 {
		return RejectedCascadeInFlight
	}
	if b.winner != Unowned {
		return RejectedGameOver
	}

	c.direction = c.direction.Next()
	b.moves++
	b.emit(RotatedEvent{Cell: c.Coord(), Direction: c.direction, Player: c.owner})

	b.infect(c)
	b.flush()
	return Accepted
}

// RotateAt is Rotate addressed by coordinates.
func (b *Board) RotateAt(row, col int) RotateResult {
	c, ok := b.Cell(row, col)
	if !ok {
		return RejectedNoSuchCell
	}
	return b.Rotate(c)
}

// holds reports whether c is a cell of this board's current grid.
func (b *Board) holds(c *Cell) bool {
	own, ok := b.Cell(c.row, c.col)
	return ok && own == c
}

// Cell returns the cell at (row, col), or false if it is off the board.
func (b *Board) Cell(row, col int) (*Cell, bool) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return nil, false
	}
	return &b.grid[row][col], true
}

// neighbor returns the adjacent cell in direction d, or nil at the edge.
func (b *Board) neighbor(c *Cell, d Direction) *Cell {
	dr, dc := d.Delta()
	n, ok := b.Cell(c.row+dr, c.col+dc)
	if !ok {
		return nil
	}
	return n
}

// Rows returns the board height.
func (b *Board) Rows() int { return b.rows }

// Cols returns the board width.
func (b *Board) Cols() int { return b.cols }

// CurrentPlayer returns whose turn it is.
func (b *Board) CurrentPlayer() Owner { return b.current }

// Score returns the number of cells held by o. Score(Unowned) counts neutral cells.
func (b *Board) Score(o Owner) int {
	if int(o) >= len(b.scores) {
		return 0
	}
	return b.scores[o]
}

// Unowned returns the number of neutral cells.
func (b *Board) Unowned() int { return b.scores[Unowned] }

// Winner returns the winning colour once the game is decided.
func (b *Board) Winner() (Owner, bool) {
	return b.winner, b.winner != Unowned
}

// Pending returns the number of infection waves still in flight.
func (b *Board) Pending() int { return b.pending }

// Phase returns where the board is in the turn cycle.
func (b *Board) Phase() Phase {
	switch {
	case b.winner != Unowned:
		return PhaseFinished
	case b.pending > 0:
		return PhaseCascading
	default:
		return PhaseAwaitingMove
	}
}

// Moves returns the number of accepted rotations since the last reset.
func (b *Board) Moves() int { return b.moves }

// Generation increments on every Reset or LoadLayout.
func (b *Board) Generation() uint64 { return b.generation }

// Elapsed returns the board's virtual clock.
func (b *Board) Elapsed() time.Duration { return b.clock }

// InfectionDelay returns the delay between waves.
func (b *Board) InfectionDelay() time.Duration { return b.delay }

// Layout captures the current grid in layout form.
func (b *Board) Layout() Layout {
	cells := make([][]Seed, b.rows)
	for r := range b.grid {
		cells[r] = make([]Seed, b.cols)
		for c, cell := range b.grid[r] {
			cells[r][c] = Seed{Owner: cell.owner, Direction: cell.direction}
		}
	}
	return Layout{Cells: cells}
}

// Subscribe registers a listener for board events and returns a function that
// removes it. Listeners are called in subscription order after each mutation.
func (b *Board) Subscribe(fn Listener) (unsubscribe func()) {
	b.nextSubID++
	id := b.nextSubID
	b.listeners = append(b.listeners, subscription{id: id, fn: fn})

	return func() {
		b.listeners = slices.DeleteFunc(b.listeners, func(s subscription) bool {
			return s.id == id
		})
	}
}

func (b *Board) emit(evt Event) {
	b.outbox = append(b.outbox, evt)
}

// flush delivers queued events. Listeners may call back into the board; events
// they cause are delivered by the same loop.
func (b *Board) flush() {
	if b.flushing {
		return
	}
	b.flushing = true
	defer func() { b.flushing = false }()

	for len(b.outbox) > 0 {
		evt := b.outbox[0]
		b.outbox = b.outbox[1:]
		for _, s := range slices.Clone(b.listeners) {
			s.fn(evt)
		}
	}
	b.outbox = nil
}
