package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bioblitz/internal/core"
	"github.com/vovakirdan/bioblitz/internal/registry"
)

// ResultRecorder persists finished matches.
// *storage.Store satisfies it.
type ResultRecorder interface {
	RecordResult(r registry.MatchResult) error
}

// Model is the Bubble Tea model for running a match.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	recorder   ResultRecorder
	keyMapper  *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	back       bool
	saved      bool  // Whether the current match has been recorded
	saveErr    error // Last error returned by the recorder
}

// NewModel creates a new Bubble Tea model for the given game.
// recorder may be nil, in which case matches are not recorded.
func NewModel(game registry.Game, recorder ResultRecorder, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   recorder,
		keyMapper:  NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.back = true
		return m, tea.Quit
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Boards keep their state across resizes; other games start over
	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	m.recordResult()

	return m, tickCmd(m.config)
}

// recordResult saves a finished match once. The flag is cleared when the
// game restarts so the rematch is recorded too.
func (m *Model) recordResult() {
	if !m.gameState.GameOver {
		m.saved = false
		return
	}
	if m.saved {
		return
	}
	m.saved = true

	v, ok := m.game.(registry.Versus)
	if !ok || m.recorder == nil {
		return
	}
	res, ok := v.Result()
	if !ok {
		return
	}
	if err := m.recorder.RecordResult(res); err != nil {
		m.saveErr = err
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".bioblitz", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// WantsBack returns true if the player left the match for the menu.
func (m Model) WantsBack() bool {
	return m.back
}

// SaveErr returns the last error from recording a match result.
func (m Model) SaveErr() error {
	return m.saveErr
}

// RunOutcome describes how a match session ended.
type RunOutcome struct {
	Back    bool  // Player asked to return to the menu
	SaveErr error // Recording a result failed at least once
}

// Run starts the Bubble Tea program for a match.
func Run(game registry.Game, recorder ResultRecorder, cfg core.RuntimeConfig) (RunOutcome, error) {
	model := NewModel(game, recorder, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunOutcome{}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return RunOutcome{}, nil
	}
	return RunOutcome{Back: m.WantsBack(), SaveErr: m.SaveErr()}, nil
}
