package ui

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/go-logr/logr"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/sharpmove/internal/board"
	"github.com/hailam/sharpmove/internal/engine"
	"github.com/hailam/sharpmove/internal/storage"
	"github.com/hailam/sharpmove/internal/ui/state"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// UIScale is the global HiDPI scale factor for all UI drawing.
// Set by Game.Layout().
var UIScale float64 = 1.0

// analysisResult carries a finished search back to the update loop.
type analysisResult struct {
	key      string
	analysis engine.Analysis
	err      error
}

// Options configures a viewer.
type Options struct {
	FEN     string // starting position; empty restores the last session or the standard start
	Engine  *engine.Engine
	Storage *storage.Storage // optional
	Logger  logr.Logger
}

// Game implements ebiten.Game interface.
type Game struct {
	session *state.Session

	// Storage
	storage *storage.Storage
	prefs   *storage.Preferences

	// Components
	renderer *Renderer
	input    *Input
	panel    *Panel
	bindings []Binding

	// Engine
	engine  *engine.Engine
	results chan analysisResult

	showCandidates bool
	message        string // result of the last user action, cleared on the next move
	log            logr.Logger

	// HiDPI scaling
	scale float64
}

// NewGame creates a viewer.
func NewGame(opts Options) (*Game, error) {
	if opts.Engine == nil {
		return nil, errors.New("ui: engine is required")
	}

	g := &Game{
		storage:  opts.Storage,
		prefs:    storage.DefaultPreferences(),
		renderer: NewRenderer(BoardSize, SquareSize),
		input:    NewInput(),
		engine:   opts.Engine,
		results:  make(chan analysisResult, 8),
		log:      opts.Logger.WithName("ui"),
		scale:    1.0,
	}

	g.loadPreferences()

	fen := opts.FEN
	if fen == "" {
		fen = g.prefs.LastFEN
	}
	if fen == "" {
		fen = board.StartFEN
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		if opts.FEN != "" {
			return nil, err
		}
		// A stale saved position is not worth failing over
		g.log.Info("ignoring saved position", "fen", fen, "error", err.Error())
		pos = board.NewPosition()
	}
	g.session = state.New(pos)
	g.panel = NewPanel(g)
	g.bindings = []Binding{
		{Keys: []ebiten.Key{ebiten.KeySpace}, Action: g.PlaySuggestionAction},
		{Keys: []ebiten.Key{ebiten.KeyU, ebiten.KeyBackspace}, Action: g.UndoAction},
		{Keys: []ebiten.Key{ebiten.KeyR}, Action: g.ResetAction},
		{Keys: []ebiten.Key{ebiten.KeyF}, Action: g.FlipAction},
		{Keys: []ebiten.Key{ebiten.KeyC}, Action: g.ToggleCandidatesAction},
	}

	g.checkFirstLaunch()

	return g, nil
}

// loadPreferences loads viewer preferences from storage.
func (g *Game) loadPreferences() {
	if g.storage == nil {
		return
	}

	prefs, err := g.storage.LoadPreferences()
	if err != nil {
		g.log.Error(err, "failed to load preferences")
		return
	}
	g.prefs = prefs
	g.renderer.SetFlipped(prefs.FlipBoard)
	g.showCandidates = prefs.ShowCandidates
}

// savePreferences saves the current settings and position.
func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}

	g.prefs.FlipBoard = g.renderer.Flipped()
	g.prefs.ShowCandidates = g.showCandidates
	g.prefs.LastFEN = g.session.Position().FEN()
	g.prefs.LastPlayed = time.Now()

	if err := g.storage.SavePreferences(g.prefs); err != nil {
		g.log.Error(err, "failed to save preferences")
	}
}

// checkFirstLaunch shows the key help once.
func (g *Game) checkFirstLaunch() {
	if g.storage == nil {
		return
	}

	first, err := g.storage.IsFirstLaunch()
	if err != nil {
		g.log.Error(err, "failed to check first launch")
		return
	}
	if !first {
		return
	}
	g.message = "Click to move. Space plays the suggestion."
	if err := g.storage.MarkFirstLaunchComplete(); err != nil {
		g.log.Error(err, "failed to mark first launch")
	}
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.SetScale(g.scale)
	g.input.Update()

	Dispatch(g.bindings)

	// Handle panel interactions
	if !g.panel.HandleInput(g.input) {
		g.handleBoardInput()
	}

	g.checkAnalysis()
	g.startAnalysis()

	if g.panel.AnyButtonHovered() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}

	return nil
}

// handleBoardInput passes board clicks to the session.
func (g *Game) handleBoardInput() {
	if !g.input.Clicked() {
		return
	}
	mx, my := g.input.Cursor()
	sq := g.renderer.ScreenToSquare(mx, my)
	if sq == board.NoSquare {
		return
	}

	played, err := g.session.Click(sq)
	if err != nil {
		g.message = err.Error()
		return
	}
	if played {
		g.afterMove()
	}
}

// afterMove records a played move.
func (g *Game) afterMove() {
	g.message = ""
	g.log.V(1).Info("move played", "move", g.session.LastMove().String(), "fen", g.session.Position().FEN())
	g.savePreferences()
}

// startAnalysis searches the current position in the background when it
// has no result and no search in flight.
func (g *Game) startAnalysis() {
	pos, key, ok := g.session.RequestAnalysis()
	if !ok {
		return
	}

	g.log.V(1).Info("starting analysis", "key", key)
	go func() {
		a, err := g.engine.Analyse(pos)
		g.results <- analysisResult{key: key, analysis: a, err: err}
	}()
}

// checkAnalysis drains finished searches. Results for positions the viewer
// has already left are discarded by the session.
func (g *Game) checkAnalysis() {
	for {
		select {
		case r := <-g.results:
			if !g.session.SetAnalysis(r.key, r.analysis, r.err) {
				g.log.V(2).Info("stale analysis dropped", "key", r.key)
			}
		default:
			return
		}
	}
}

// statusLine describes the game state for the panel.
func (g *Game) statusLine() (string, color.Color) {
	if g.message != "" {
		return g.message, textPrimary
	}

	outcome, err := g.session.Outcome()
	if err != nil {
		return err.Error(), statusError
	}
	switch outcome {
	case board.Checkmate:
		return fmt.Sprintf("Checkmate, %s wins", g.session.Position().SideToMove.Other()), statusOver
	case board.Stalemate:
		return "Stalemate", statusOver
	}

	a, err := g.session.Analysis()
	switch {
	case err != nil:
		return err.Error(), statusError
	case a == nil:
		return "Searching...", statusWorking
	}
	return "Ready", textSecondary
}

// PlaySuggestionAction plays the engine's move.
func (g *Game) PlaySuggestionAction() {
	if err := g.session.PlaySuggestion(); err != nil {
		if errors.Is(err, state.ErrNoSuggestion) {
			g.message = "Still searching"
			return
		}
		g.message = err.Error()
		return
	}
	g.afterMove()
}

// UndoAction takes back one move.
func (g *Game) UndoAction() {
	if g.session.Undo() {
		g.message = ""
		g.savePreferences()
	}
}

// ResetAction returns to the starting position.
func (g *Game) ResetAction() {
	g.session.Reset()
	g.message = ""
	g.savePreferences()
}

// FlipAction turns the board around.
func (g *Game) FlipAction() {
	g.renderer.SetFlipped(!g.renderer.Flipped())
	g.savePreferences()
}

// ToggleCandidatesAction shows or hides the candidate table.
func (g *Game) ToggleCandidatesAction() {
	g.showCandidates = !g.showCandidates
	g.savePreferences()
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	// Set HiDPI scale factor for all rendering components
	g.renderer.SetScale(g.scale)
	g.panel.SetScale(g.scale)

	screen.Fill(g.renderer.Theme().Background)

	pos := g.session.Position()
	g.renderer.DrawBoard(screen)

	if pos.InCheck() {
		g.renderer.DrawCheck(screen, pos.KingSquare(pos.SideToMove))
	}

	g.renderer.DrawHighlights(screen, g.session.Selected(), g.session.Targets(), g.session.LastMove())
	g.renderer.DrawPieces(screen, pos)
	g.renderer.DrawArrow(screen, g.session.Suggestion())

	g.panel.Draw(screen)
}

// Layout returns the game's screen dimensions.
// Uses device scale factor for crisp rendering on HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Get and store device scale factor (2.0 on Retina, 1.0 on standard displays)
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}

	UIScale = g.scale

	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// Close saves preferences. The caller owns the engine and storage.
func (g *Game) Close() {
	g.savePreferences()
}
