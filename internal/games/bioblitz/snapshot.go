package bioblitz

// Snapshot captures the complete match state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Generation uint64
	Phase      Phase
	Player     Owner
	Winner     Owner
	Green      int
	Red        int
	Unowned    int
	Pending    int
	Moves      int
	Paused     bool
	Layout     string // Text layout of the grid
}

// Snapshot returns the current match snapshot.
func (g *Game) Snapshot() Snapshot {
	winner, _ := g.board.Winner()
	return Snapshot{
		Tick:       g.tick,
		Generation: g.board.Generation(),
		Phase:      g.board.Phase(),
		Player:     g.board.CurrentPlayer(),
		Winner:     winner,
		Green:      g.board.Score(Green),
		Red:        g.board.Score(Red),
		Unowned:    g.board.Unowned(),
		Pending:    g.board.Pending(),
		Moves:      g.board.Moves(),
		Paused:     g.paused,
		Layout:     g.board.Layout().String(),
	}
}
