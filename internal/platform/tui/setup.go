package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bioblitz/internal/config"
	"github.com/vovakirdan/bioblitz/internal/core"
)

// SetupSelection holds the choices made before a match starts.
type SetupSelection struct {
	Speed config.SpeedPreset // Empty keeps the configured delay
	Theme string
}

// setupOption is one row of the speed list.
type setupOption struct {
	label string
	speed config.SpeedPreset
}

var setupOptions = []setupOption{
	{"Configured speed", ""},
	{"Slow spread", config.SpeedSlow},
	{"Normal spread", config.SpeedNormal},
	{"Fast spread", config.SpeedFast},
	{"Instant spread", config.SpeedInstant},
}

// SetupModel lets players choose the infection speed and colour theme.
type SetupModel struct {
	title         string
	cursor        int
	themeCursor   int
	inThemeSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     SetupSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewSetupModel creates a match setup model for the given variant title.
func NewSetupModel(title string, width, height int) SetupModel {
	return SetupModel{
		title:     title,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		selection: SetupSelection{Theme: CurrentTheme().Name},
		choosing:  true,
	}
}

// Init initializes the model.
func (m SetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inThemeSelect {
		return m.handleThemeSelectKey(action)
	}
	return m.handleSpeedSelectKey(action)
}

// The last row of the speed list opens the theme picker.
func (m SetupModel) handleSpeedSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(setupOptions) {
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor == len(setupOptions) {
			m.inThemeSelect = true
			return m, nil
		}
		m.choosing = false
		m.selection.Speed = setupOptions[m.cursor].speed
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m SetupModel) handleThemeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.themeCursor > 0 {
			m.themeCursor--
		}
	case MenuActionDown:
		if m.themeCursor < len(ThemeNames)-1 {
			m.themeCursor++
		}
	case MenuActionSelect:
		m.selection.Theme = ThemeNames[m.themeCursor]
		m.inThemeSelect = false
	case MenuActionBack:
		m.inThemeSelect = false
	}

	return m, nil
}

// View renders the speed or theme list.
func (m SetupModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	if m.inThemeSelect {
		return m.viewThemeSelect()
	}
	return m.viewSpeedSelect()
}

func (m SetupModel) viewSpeedSelect() string {
	theme := m.previewTheme()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.MenuDescription.Render("How fast should infections spread?"), m.width))
	b.WriteString("\n\n")

	labels := make([]string, 0, len(setupOptions)+1)
	for _, opt := range setupOptions {
		label := opt.label
		if ms, ok := opt.speed.DelayMS(); ok {
			label = fmt.Sprintf("%s (%dms)", label, ms)
		}
		labels = append(labels, label)
	}
	labels = append(labels, fmt.Sprintf("Colours: %s...", m.selection.Theme))

	for i, label := range labels {
		style := theme.MenuItemNormal
		cursor := "  "
		if i == m.cursor {
			style = theme.MenuItemActive
			cursor = "> "
		}
		b.WriteString(centerText(style.Render(cursor+label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(theme.HelpText.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m SetupModel) viewThemeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.previewTheme().MenuTitle.Render("COLOURS"), m.width))
	b.WriteString("\n\n")

	for i, name := range ThemeNames {
		theme, _ := ThemeByName(name)
		cursor := "  "
		if i == m.themeCursor {
			cursor = "> "
		}
		sample := theme.GreenCell.Render("↑→") + " " + theme.RedCell.Render("↓←") + " " + theme.FreeCell.Render("↑↓")
		line := fmt.Sprintf("%s%-14s %s", cursor, name, sample)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.previewTheme().HelpText.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// previewTheme returns the theme picked so far.
func (m SetupModel) previewTheme() Theme {
	theme, err := ThemeByName(m.selection.Theme)
	if err != nil {
		return CurrentTheme()
	}
	return theme
}

// Selected returns the selection, or nil if still choosing.
func (m SetupModel) Selected() *SetupSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m SetupModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m SetupModel) WantsBack() bool {
	return m.back
}

// RunSetup runs the match setup screen and returns the selection.
// A nil selection means the player went back or quit.
func RunSetup(title string, cfg core.RuntimeConfig) (*SetupSelection, bool, error) {
	model := NewSetupModel(title, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	m, ok := finalModel.(SetupModel)
	if !ok {
		return nil, true, nil
	}

	if m.IsQuitting() {
		return nil, true, nil
	}
	return m.Selected(), false, nil
}
