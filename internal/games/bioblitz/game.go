package bioblitz

import (
	"math/rand"
	"strings"

	"github.com/vovakirdan/bioblitz/internal/config"
	"github.com/vovakirdan/bioblitz/internal/core"
	"github.com/vovakirdan/bioblitz/internal/registry"
)

// Variant is a registered board size.
type Variant struct {
	ID    string
	Title string
	Size  config.SizePreset // Empty uses the configured board and opening
}

// Variants lists the registered board sizes, smallest first.
var Variants = []Variant{
	{ID: "bioblitz_small", Title: "BioBlitz (Small)", Size: config.SizeSmall},
	{ID: "bioblitz", Title: "BioBlitz"},
	{ID: "bioblitz_large", Title: "BioBlitz (Large)", Size: config.SizeLarge},
}

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// speed overrides the configured infection delay when set
var speed config.SpeedPreset

// SetSpeed selects an infection speed preset for matches started afterwards.
// An empty preset keeps the configured delay.
func SetSpeed(p config.SpeedPreset) {
	speed = p
}

// boardSize overrides the configured board of the classic variant when set
var boardSize config.SizePreset

// SetBoardSize selects a board size preset for classic matches started
// afterwards. The fixed-size variants keep their own size, and a preset
// replaces any configured opening. An empty preset keeps the configured board.
func SetBoardSize(p config.SizePreset) {
	boardSize = p
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return NewVariant(v)
		})
	}
}

// Game adapts a Board to the platform's fixed-tick loop as a hotseat match:
// both players share the keyboard and each colour keeps its own cursor.
type Game struct {
	variant     Variant
	cfg         config.BioBlitzConfig
	fixedConfig bool

	runtime core.RuntimeConfig
	rng     *rand.Rand
	board   *Board
	tick    uint64

	cursors     [3]Coord // Indexed by Owner
	lastReject  RotateResult
	notice      string // Shown in the status line, e.g. a broken opening
	lastMove    moveSummary
	unsubscribe func()

	paused   bool
	tooSmall bool

	// Screen layout, computed on Reset
	cellW   int
	originX int
	originY int
}

// moveSummary tracks what the latest accepted rotation has infected so far.
type moveSummary struct {
	player   Owner
	infected int
}

// New creates the classic variant.
func New() *Game {
	return NewVariant(Variants[1])
}

// NewVariant creates a game for the given board size. Configuration is
// loaded on every Reset.
func NewVariant(v Variant) *Game {
	return &Game{variant: v}
}

// NewWithConfig creates a game that uses cfg instead of loading one.
func NewWithConfig(v Variant, cfg config.BioBlitzConfig) *Game {
	return &Game{variant: v, cfg: cfg, fixedConfig: true}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Board exposes the engine, mainly for tests and observers.
func (g *Game) Board() *Board {
	return g.board
}

// Config returns the configuration the current match was built from.
func (g *Game) Config() config.BioBlitzConfig {
	return g.cfg
}

// Reset starts a new match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0
	g.paused = false
	g.lastReject = Accepted
	g.notice = ""
	g.lastMove = moveSummary{}

	if !g.fixedConfig {
		cfg, err := config.LoadBioBlitz(configPath)
		if err != nil {
			cfg = config.DefaultBioBlitzConfig()
			g.notice = "Config ignored: " + err.Error()
		}
		config.ApplySpeedPreset(&cfg, speed)
		g.cfg = cfg
	}

	size := g.variant.Size
	if size == "" {
		size = boardSize
	}
	config.ApplySizePreset(&g.cfg, size)

	opts := Options{
		Rows:           g.cfg.Board.Rows,
		Cols:           g.cfg.Board.Cols,
		InfectionDelay: g.cfg.Infection.Delay(),
		Rand:           g.rng,
	}

	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
	g.board = nil
	if size == "" && len(g.cfg.Opening) > 0 {
		layout, err := ParseLayout(g.cfg.Opening)
		if err == nil {
			g.board, err = NewBoardFromLayout(layout, opts)
		}
		if err != nil {
			g.notice = "Opening ignored: " + err.Error()
		}
	}
	if g.board == nil {
		g.board = NewBoard(opts)
	}
	g.unsubscribe = g.board.Subscribe(g.onBoardEvent)

	g.cursors[Green] = Coord{Row: 0, Col: 0}
	g.cursors[Red] = Coord{Row: g.board.Rows() - 1, Col: g.board.Cols() - 1}

	g.computeLayout()
}

// restart begins a rematch with a fresh seed.
func (g *Game) restart() {
	runtime := g.runtime
	runtime.Seed = g.rng.Int63()
	g.Reset(runtime)
}

// Step advances the match by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	finished := g.board.Phase() == PhaseFinished

	// Handle restart
	if in.Has(core.ActionRestart) && (finished || g.paused) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !finished {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if !finished {
		g.handleInput(in)
		g.board.Advance(g.runtime.TickInterval())
	}

	return core.StepResult{State: g.State()}
}

// handleInput moves the current player's cursor and forwards rotations.
func (g *Game) handleInput(in core.InputFrame) {
	player := g.board.CurrentPlayer()
	cur := g.cursors[player]

	switch {
	case in.Has(core.ActionUp):
		cur.Row--
	case in.Has(core.ActionDown):
		cur.Row++
	case in.Has(core.ActionLeft):
		cur.Col--
	case in.Has(core.ActionRight):
		cur.Col++
	}
	cur.Row = core.Clamp(cur.Row, 0, g.board.Rows()-1)
	cur.Col = core.Clamp(cur.Col, 0, g.board.Cols()-1)
	g.cursors[player] = cur

	if in.Has(core.ActionRotate) {
		g.lastReject = g.board.RotateAt(cur.Row, cur.Col)
	}
}

// onBoardEvent keeps the status line in step with the board.
func (g *Game) onBoardEvent(e Event) {
	switch e := e.(type) {
	case RotatedEvent:
		g.lastMove = moveSummary{player: e.Player}
	case InfectedEvent:
		g.lastMove.infected += len(e.Cells)
	case TurnEvent, WinnerEvent:
		g.lastReject = Accepted
	}
}

// Cursor returns the cursor position of a player.
func (g *Game) Cursor(player Owner) Coord {
	return g.cursors[player]
}

// PlayerName returns the configured display name for a colour.
func (g *Game) PlayerName(o Owner) string {
	var name string
	switch o {
	case Green:
		name = g.cfg.Players.GreenName
	case Red:
		name = g.cfg.Players.RedName
	}
	if strings.TrimSpace(name) == "" {
		return o.String()
	}
	return name
}

// State returns the current game state. Score is the leading colour's cell
// count.
func (g *Game) State() core.GameState {
	if g.board == nil {
		return core.GameState{}
	}
	_, won := g.board.Winner()
	return core.GameState{
		Score:    max(g.board.Score(Green), g.board.Score(Red)),
		GameOver: won,
		Paused:   g.paused,
	}
}

// Result reports the outcome once a colour has been wiped out.
func (g *Game) Result() (registry.MatchResult, bool) {
	if g.board == nil {
		return registry.MatchResult{}, false
	}
	winner, ok := g.board.Winner()
	if !ok {
		return registry.MatchResult{}, false
	}
	return registry.MatchResult{
		GameID:     g.ID(),
		Winner:     strings.ToLower(winner.String()),
		GreenScore: g.board.Score(Green),
		RedScore:   g.board.Score(Red),
		Moves:      g.board.Moves(),
		Duration:   g.board.Elapsed(),
	}, true
}

var _ registry.Versus = (*Game)(nil)
