package bioblitz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/bioblitz/internal/config"
	"github.com/vovakirdan/bioblitz/internal/core"
	"github.com/vovakirdan/bioblitz/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func openingGame(t *testing.T, lines ...string) *Game {
	t.Helper()

	cfg := config.DefaultBioBlitzConfig()
	cfg.Opening = lines
	g := NewWithConfig(Variants[1], cfg)
	g.Reset(testRuntime(1))
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		if !registry.Exists(v.ID) {
			t.Errorf("variant %q not registered", v.ID)
		}
		g, err := registry.Create(v.ID)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", v.ID, err)
		}
		if g.Title() != v.Title {
			t.Errorf("Title() = %q, want %q", g.Title(), v.Title)
		}
		if _, ok := g.(registry.Versus); !ok {
			t.Errorf("%q should report match results", v.ID)
		}
	}
}

func TestVariantBoardSizes(t *testing.T) {
	cfg := config.DefaultBioBlitzConfig()
	cfg.Board.Rows, cfg.Board.Cols = 9, 9

	tests := []struct {
		variant    Variant
		rows, cols int
	}{
		{Variants[0], 7, 14},
		{Variants[1], 9, 9},
		{Variants[2], 15, 30},
	}

	for _, tt := range tests {
		t.Run(tt.variant.ID, func(t *testing.T) {
			g := NewWithConfig(tt.variant, cfg)
			g.Reset(testRuntime(1))

			if g.Board().Rows() != tt.rows || g.Board().Cols() != tt.cols {
				t.Errorf("Expected %dx%d, got %dx%d", tt.rows, tt.cols, g.Board().Rows(), g.Board().Cols())
			}
			if g.Cursor(Green) != (Coord{0, 0}) {
				t.Errorf("Green cursor should start home, got %v", g.Cursor(Green))
			}
			if g.Cursor(Red) != (Coord{tt.rows - 1, tt.cols - 1}) {
				t.Errorf("Red cursor should start home, got %v", g.Cursor(Red))
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	cfg := config.DefaultBioBlitzConfig()

	g1 := NewWithConfig(Variants[1], cfg)
	g1.Reset(testRuntime(12345))
	g2 := NewWithConfig(Variants[1], cfg)
	g2.Reset(testRuntime(12345))

	inputs := map[int][]core.Action{
		1:  {core.ActionRotate},
		30: {core.ActionLeft},
		31: {core.ActionRotate},
		60: {core.ActionRotate},
	}
	for i := 0; i < 120; i++ {
		in := press(inputs[i]...)
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1 != s2 {
		t.Errorf("Snapshots diverged:\n%+v\n%+v", s1, s2)
	}
	if s1.Tick != 120 {
		t.Errorf("Expected tick 120, got %d", s1.Tick)
	}
}

func TestOpeningPlaysToWin(t *testing.T) {
	g := openingGame(t, "gE rW")

	if g.Board().Rows() != 1 || g.Board().Cols() != 2 {
		t.Fatalf("Opening should size the board, got %dx%d", g.Board().Rows(), g.Board().Cols())
	}
	if _, ok := g.Result(); ok {
		t.Fatal("Result reported before the match ended")
	}

	g.Step(press(core.ActionRotate))
	for i := 0; i < 10 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	if !g.State().GameOver {
		t.Fatal("Expected the match to end")
	}
	res, ok := g.Result()
	if !ok {
		t.Fatal("Expected a result")
	}
	if res.Winner != "green" || res.GreenScore != 2 || res.RedScore != 0 || res.Moves != 1 {
		t.Errorf("Unexpected result %+v", res)
	}
	if res.GameID != "bioblitz" {
		t.Errorf("Expected game id bioblitz, got %q", res.GameID)
	}
	if res.Duration <= 0 {
		t.Errorf("Expected a positive duration, got %v", res.Duration)
	}
	if g.State().Score != 2 {
		t.Errorf("Expected score 2, got %d", g.State().Score)
	}
}

func TestBrokenOpeningFallsBack(t *testing.T) {
	g := openingGame(t, "gE rW", "gN")

	if g.Board().Rows() != 11 || g.Board().Cols() != 22 {
		t.Errorf("Expected configured board, got %dx%d", g.Board().Rows(), g.Board().Cols())
	}
	if !strings.HasPrefix(g.notice, "Opening ignored") {
		t.Errorf("Expected a notice, got %q", g.notice)
	}
}

func TestOneSidedOpeningFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"no green", []string{".N .E", ".S rS"}},
		{"no red", []string{"gN .E", ".S .S"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := openingGame(t, tt.lines...)

			if !strings.HasPrefix(g.notice, "Opening ignored") {
				t.Errorf("Expected an opening notice, got %q", g.notice)
			}
			if g.Board().Rows() != DefaultRows || g.Board().Cols() != DefaultCols {
				t.Errorf("Expected random %dx%d board, got %dx%d",
					DefaultRows, DefaultCols, g.Board().Rows(), g.Board().Cols())
			}
			if g.Board().Score(Green) != 1 || g.Board().Score(Red) != 1 {
				t.Errorf("Expected one home cell each, got %d/%d",
					g.Board().Score(Green), g.Board().Score(Red))
			}
		})
	}
}

func TestCursorPerPlayer(t *testing.T) {
	g := openingGame(t,
		"gW .N .N",
		".S .S .N",
		".N .N rS",
	)

	// Green cannot leave the board
	g.Step(press(core.ActionUp))
	g.Step(press(core.ActionLeft))
	if g.Cursor(Green) != (Coord{0, 0}) {
		t.Errorf("Cursor should clamp at the corner, got %v", g.Cursor(Green))
	}

	g.Step(press(core.ActionRight))
	g.Step(press(core.ActionLeft))

	// (0,0) W->N reaches nothing, so the turn passes straight to Red
	g.Step(press(core.ActionRotate))
	if g.Board().CurrentPlayer() != Red {
		t.Fatalf("Expected Red to move, got %v", g.Board().CurrentPlayer())
	}

	g.Step(press(core.ActionUp))
	if g.Cursor(Red) != (Coord{1, 2}) {
		t.Errorf("Red cursor should move independently, got %v", g.Cursor(Red))
	}
	if g.Cursor(Green) != (Coord{0, 0}) {
		t.Errorf("Green cursor should be unchanged, got %v", g.Cursor(Green))
	}
}

func TestRejectedRotationShown(t *testing.T) {
	g := openingGame(t, scenarioLayout...)

	g.Step(press(core.ActionRight))
	g.Step(press(core.ActionRotate))

	if g.lastReject != RejectedNotOwner {
		t.Errorf("Expected RejectedNotOwner, got %v", g.lastReject)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "not your cell") {
		t.Error("Rejection message not rendered")
	}
}

func TestPauseFreezesCascade(t *testing.T) {
	g := openingGame(t, scenarioLayout...)

	g.Step(press(core.ActionRotate))
	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("Expected paused")
	}
	for i := 0; i < 20; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Board().Pending() != 1 {
		t.Errorf("Cascade should not advance while paused, pending=%d", g.Board().Pending())
	}

	g.Step(press(core.ActionPause))
	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Board().Pending() != 0 {
		t.Errorf("Cascade should settle after unpause, pending=%d", g.Board().Pending())
	}
}

func TestRestartAfterWin(t *testing.T) {
	g := openingGame(t, "gE rW")
	g.Step(press(core.ActionRotate))
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Fatal("Expected the match to end")
	}

	g.Step(press(core.ActionRestart))

	if g.State().GameOver {
		t.Error("Restart should clear the win")
	}
	if g.Board().Moves() != 0 || g.Board().Phase() != PhaseAwaitingMove {
		t.Error("Restart should start a new board")
	}
	if _, ok := g.Result(); ok {
		t.Error("Result should be cleared after restart")
	}
}

func TestRestartIgnoredMidGame(t *testing.T) {
	g := openingGame(t, scenarioLayout...)
	g.Step(press(core.ActionRotate))
	before := g.Board()

	g.Step(press(core.ActionRestart))
	if g.Board() != before || g.Board().Moves() != 1 {
		t.Error("Restart should only work when paused or finished")
	}
}

func TestRender(t *testing.T) {
	g := NewWithConfig(Variants[1], config.DefaultBioBlitzConfig())
	g.Reset(testRuntime(7))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"BioBlitz", "Green 1", "Red 1", "Turn: Green", "Enter/Space rotate"} {
		if !strings.Contains(out, want) {
			t.Errorf("Rendered screen missing %q", want)
		}
	}

	// Green's home cell faces north and carries the cursor
	x := g.originX + 1
	y := g.originY + 1
	cell := screen.GetCell(x, y)
	if cell.Rune != '↑' || !cell.Reverse || cell.Color != core.ColorBrightGreen {
		t.Errorf("Unexpected home cell %+v", cell)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := NewWithConfig(Variants[2], config.DefaultBioBlitzConfig())
	rt := testRuntime(1)
	rt.ScreenW, rt.ScreenH = 20, 10
	g.Reset(rt)

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("Expected too-small message")
	}

	gen := g.Board().Generation()
	g.Resize(80, 24)
	if g.tooSmall {
		t.Error("Resize should recompute the layout")
	}
	if g.Board().Generation() != gen {
		t.Error("Resize should keep the match")
	}
}

func TestPlayerNames(t *testing.T) {
	cfg := config.DefaultBioBlitzConfig()
	cfg.Players.GreenName = "Alice"
	cfg.Players.RedName = " "
	g := NewWithConfig(Variants[1], cfg)
	g.Reset(testRuntime(1))

	if got := g.PlayerName(Green); got != "Alice" {
		t.Errorf("PlayerName(Green) = %q", got)
	}
	if got := g.PlayerName(Red); got != "Red" {
		t.Errorf("Blank name should fall back, got %q", got)
	}
}

func TestConfigPathAndSpeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bioblitz.yaml")
	content := "board:\n  rows: 5\n  cols: 6\ninfection:\n  delay_ms: 80\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(testRuntime(1))
	if g.Board().Rows() != 5 || g.Board().Cols() != 6 {
		t.Errorf("Expected 5x6 from config, got %dx%d", g.Board().Rows(), g.Board().Cols())
	}
	if g.Board().InfectionDelay() != 80*time.Millisecond {
		t.Errorf("Expected 80ms delay, got %v", g.Board().InfectionDelay())
	}

	SetSpeed(config.SpeedInstant)
	t.Cleanup(func() { SetSpeed("") })

	g.Reset(testRuntime(1))
	if g.Board().InfectionDelay() != 0 {
		t.Errorf("Speed preset should override the delay, got %v", g.Board().InfectionDelay())
	}
}

func TestBadConfigShowsNotice(t *testing.T) {
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(testRuntime(1))
	if !strings.HasPrefix(g.notice, "Config ignored") {
		t.Errorf("Expected a config notice, got %q", g.notice)
	}
	if g.Board().Rows() != DefaultRows || g.Board().Cols() != DefaultCols {
		t.Errorf("Expected default board, got %dx%d", g.Board().Rows(), g.Board().Cols())
	}
}

func TestStatusFollowsBoardEvents(t *testing.T) {
	g := openingGame(t, scenarioLayout...)

	// Green tries to rotate an unowned cell
	g.Step(press(core.ActionRight))
	g.Step(press(core.ActionRotate))
	if g.lastReject != RejectedNotOwner {
		t.Fatalf("Expected RejectedNotOwner, got %v", g.lastReject)
	}

	// A move made on the board directly still reaches the game
	if res := g.Board().RotateAt(0, 0); res != Accepted {
		t.Fatalf("RotateAt(0,0) = %v", res)
	}
	if g.lastMove.player != Green || g.lastMove.infected != 1 {
		t.Errorf("Expected Green infecting 1 cell, got %+v", g.lastMove)
	}
	if g.lastReject != RejectedNotOwner {
		t.Error("Rejection should stay until the turn passes")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Infecting... 1 cells") {
		t.Error("Cascade progress not rendered")
	}

	g.Board().Settle()
	if g.lastReject != Accepted {
		t.Errorf("Turn change should clear the rejection, got %v", g.lastReject)
	}
	if g.lastMove.infected != 1 {
		t.Errorf("Expected 1 infected cell after settling, got %d", g.lastMove.infected)
	}

	screen = core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Green infected 1") {
		t.Error("Last move summary not rendered")
	}
}

func TestResetDropsOldBoardListener(t *testing.T) {
	g := openingGame(t, scenarioLayout...)
	old := g.Board()

	g.Reset(testRuntime(2))
	if g.Board() == old {
		t.Fatal("Reset should build a new board")
	}

	// Events from the replaced board must not touch the new match
	if res := old.RotateAt(0, 0); res != Accepted {
		t.Fatalf("RotateAt(0,0) on the old board = %v", res)
	}
	old.Settle()
	if g.lastMove != (moveSummary{}) {
		t.Errorf("Old board leaked into the status line: %+v", g.lastMove)
	}
}

func TestBoardSizeOverride(t *testing.T) {
	SetBoardSize(config.SizeLarge)
	t.Cleanup(func() { SetBoardSize("") })

	tests := []struct {
		name       string
		variant    Variant
		opening    []string
		rows, cols int
	}{
		{"classic", Variants[1], nil, 15, 30},
		{"opening replaced", Variants[1], []string{"gE rW"}, 15, 30},
		{"small keeps its size", Variants[0], nil, 7, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultBioBlitzConfig()
			cfg.Opening = tt.opening
			g := NewWithConfig(tt.variant, cfg)
			g.Reset(testRuntime(1))

			if g.Board().Rows() != tt.rows || g.Board().Cols() != tt.cols {
				t.Errorf("Expected %dx%d, got %dx%d", tt.rows, tt.cols, g.Board().Rows(), g.Board().Cols())
			}
			if g.notice != "" {
				t.Errorf("Unexpected notice %q", g.notice)
			}
		})
	}
}
