package bioblitz

// Event is a change notification published by the Board.
type Event interface {
	boardEvent()
}

// Listener receives board events. It runs synchronously on the goroutine that
// mutated the board and must not block.
type Listener func(Event)

// ResetEvent is published after Reset or LoadLayout rebuilt the board.
type ResetEvent struct {
	Generation uint64
}

func (ResetEvent) boardEvent() {}

// RotatedEvent is published when an accepted rotation turned a cell.
type RotatedEvent struct {
	Cell      Coord
	Direction Direction
	Player    Owner
}

func (RotatedEvent) boardEvent() {}

// InfectedEvent is published for every wave that converted at least one cell.
type InfectedEvent struct {
	Source  Coord
	Owner   Owner
	Cells   []Coord
	Pending int // Waves in flight after this one was scheduled
}

func (InfectedEvent) boardEvent() {}

// ScoresEvent is published when either colour's cell count changed.
type ScoresEvent struct {
	Green int
	Red   int
}

func (ScoresEvent) boardEvent() {}

// TurnEvent is published when a cascade settled and the move passed on.
type TurnEvent struct {
	Player Owner
}

func (TurnEvent) boardEvent() {}

// WinnerEvent is published once when a colour has been wiped out.
type WinnerEvent struct {
	Winner Owner
}

func (WinnerEvent) boardEvent() {}
