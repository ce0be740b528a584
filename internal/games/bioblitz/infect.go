package bioblitz

import (
	"slices"
	"time"
)

// pointingBack lists the neighbours checked for cells facing the source, in
// the order they are queued.
var pointingBack = [4]Direction{North, South, West, East}

// infectionTargets returns the cells a wave from c reaches: the neighbour c
// points at, then every neighbour pointing back at c. Each cell appears once.
func (b *Board) infectionTargets(c *Cell) []*Cell {
	targets := make([]*Cell, 0, 5)
	if direct := b.neighbor(c, c.direction); direct != nil {
		targets = append(targets, direct)
	}
	for _, d := range pointingBack {
		n := b.neighbor(c, d)
		if n == nil || n.direction != d.Opposite() {
			continue
		}
		if !slices.Contains(targets, n) {
			targets = append(targets, n)
		}
	}
	return targets
}

// infect converts every target of c that is not already c's colour and
// schedules a follow-up wave from each converted cell.
func (b *Board) infect(c *Cell) {
	if c.owner == Unowned {
		return
	}

	var converted []Coord
	for _, t := range b.infectionTargets(c) {
		if t.owner == c.owner {
			continue
		}
		b.pending++
		t.owner = c.owner
		b.queue = append(b.queue, wave{
			cell:       t,
			due:        b.clock + b.delay,
			generation: b.generation,
		})
		converted = append(converted, t.Coord())
	}

	if len(converted) > 0 {
		b.emit(InfectedEvent{
			Source:  c.Coord(),
			Owner:   c.owner,
			Cells:   converted,
			Pending: b.pending,
		})
	}
	b.updateScores()
}

// countScores recounts every cell and reports whether the colour totals changed.
func (b *Board) countScores() bool {
	var next [3]int
	for r := range b.grid {
		for _, cell := range b.grid[r] {
			next[cell.owner]++
		}
	}
	changed := next[Green] != b.scores[Green] || next[Red] != b.scores[Red]
	b.scores = next
	return changed
}

// updateScores recounts the board and, once no waves remain, either declares
// the winner or hands the move to the other player.
func (b *Board) updateScores() {
	if b.countScores() {
		b.emit(ScoresEvent{Green: b.scores[Green], Red: b.scores[Red]})
	}
	if b.pending > 0 || b.winner != Unowned {
		return
	}

	switch {
	case b.scores[Red] == 0:
		b.winner = Green
		b.emit(WinnerEvent{Winner: Green})
	case b.scores[Green] == 0:
		b.winner = Red
		b.emit(WinnerEvent{Winner: Red})
	default:
		b.current = b.current.Opponent()
		b.emit(TurnEvent{Player: b.current})
	}
}

// Advance moves the board clock forward by d and runs every wave that has come
// due, including waves scheduled along the way. It returns the number of waves
// run. Waves queued before the last reset are dropped without effect.
func (b *Board) Advance(d time.Duration) int {
	if d > 0 {
		b.clock += d
	}

	ran := 0
	for len(b.queue) > 0 && b.queue[0].due <= b.clock {
		w := b.queue[0]
		b.queue = b.queue[1:]
		if w.generation != b.generation {
			continue
		}

		b.pending--
		b.infect(w.cell)
		ran++
		b.flush()
	}
	if len(b.queue) == 0 {
		b.queue = nil
	}
	return ran
}

// Settle runs the cascade to completion, jumping the clock to each due time.
// It returns the number of waves run.
func (b *Board) Settle() int {
	ran := 0
	for len(b.queue) > 0 {
		if due := b.queue[0].due; due > b.clock {
			b.clock = due
		}
		ran += b.Advance(0)
	}
	return ran
}
