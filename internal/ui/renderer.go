package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/sharpmove/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	ArrowColor     color.RGBA
	Background     color.RGBA
	PanelColor     color.RGBA
	TextColor      color.RGBA
	MutedText      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},  // Softer yellow-green
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		ArrowColor:     color.RGBA{70, 130, 220, 190},  // Blue
		Background:     color.RGBA{40, 44, 52, 255},    // Dark gray
		PanelColor:     color.RGBA{50, 54, 62, 255},    // Medium gray
		TextColor:      color.RGBA{220, 220, 220, 255}, // Light gray
		MutedText:      color.RGBA{150, 150, 160, 255}, // Dim gray
	}
}

// Renderer handles all board drawing.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	boardSize  int
	squareSize int
	flipped    bool    // Black at the bottom
	scale      float64 // HiDPI scale factor
}

// NewRenderer creates a new renderer.
func NewRenderer(boardSize, squareSize int) *Renderer {
	return &Renderer{
		sprites:    NewSpriteManager(squareSize),
		theme:      DefaultTheme(),
		boardSize:  boardSize,
		squareSize: squareSize,
		scale:      1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
	r.sprites.SetScale(scale)
}

// SetFlipped puts Black at the bottom of the board when true.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether Black is at the bottom.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// s returns the scaled value for rendering.
func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the board squares and coordinates.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	for sq := board.A8; sq <= board.H1; sq++ {
		c := r.theme.LightSquare
		if (sq.Rank()+sq.File())%2 == 1 {
			c = r.theme.DarkSquare
		}
		r.fillSquare(screen, sq, c)
	}

	r.drawCoordinates(screen)
}

// drawCoordinates draws file letters along the bottom edge and rank numbers
// along the left edge, in the color of the opposite square.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetFaceWithSize(regularFace, coordFontSize)
	pad := 3.0
	for i := 0; i < 8; i++ {
		// Bottom row, one letter per column
		file := i
		rank := 1
		if r.flipped {
			file, rank = 7-i, 8
		}
		sq := board.NewSquare(file, rank)
		x, y := r.SquareToScreen(sq)
		label := string(rune('a' + file))
		w, h := MeasureText(label, face)
		drawText(screen, label, face,
			float64(x+r.squareSize)-w-pad, float64(y+r.squareSize)-h-pad,
			r.scale, r.coordColor(sq))

		// Left column, one number per row
		file = 0
		rank = 8 - i
		if r.flipped {
			file, rank = 7, i+1
		}
		sq = board.NewSquare(file, rank)
		x, y = r.SquareToScreen(sq)
		drawText(screen, string(rune('0'+rank)), face, float64(x)+pad, float64(y)+pad, r.scale, r.coordColor(sq))
	}
}

func (r *Renderer) coordColor(sq board.Square) color.RGBA {
	if (sq.Rank()+sq.File())%2 == 1 {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}

// DrawHighlights draws the last move, the selected square and the
// destinations of the selected piece.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, targets []board.Move, lastMove board.Move) {
	if lastMove != board.NoMove {
		r.fillSquare(screen, lastMove.From, r.theme.LastMoveColor)
		r.fillSquare(screen, lastMove.To, r.theme.LastMoveColor)
	}

	if selected != board.NoSquare {
		r.fillSquare(screen, selected, r.theme.SelectedSquare)
	}

	for _, m := range targets {
		r.drawLegalMoveIndicator(screen, m.To)
	}
}

// DrawCheck highlights the king's square if in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	if kingSq != board.NoSquare {
		r.fillSquare(screen, kingSq, r.theme.CheckColor)
	}
}

// fillSquare draws a colored overlay on a square.
func (r *Renderer) fillSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if sq == board.NoSquare {
		return
	}
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)
}

// drawLegalMoveIndicator draws a circle on a legal destination.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square) {
	cx, cy := r.squareCenter(sq)
	radius := r.s(r.squareSize) * 0.15

	vector.DrawFilledCircle(screen, cx, cy, radius, r.theme.LegalMoveColor, false)
}

// DrawArrow draws the suggested move as an arrow between square centres.
func (r *Renderer) DrawArrow(screen *ebiten.Image, m board.Move) {
	if m == board.NoMove {
		return
	}
	x0, y0 := r.squareCenter(m.From)
	x1, y1 := r.squareCenter(m.To)

	width := r.s(r.squareSize) * 0.15
	head := r.s(r.squareSize) * 0.35

	angle := math.Atan2(float64(y1-y0), float64(x1-x0))
	cos, sin := float32(math.Cos(angle)), float32(math.Sin(angle))

	// Stop the shaft where the head begins
	bx, by := x1-cos*head, y1-sin*head
	vector.StrokeLine(screen, x0, y0, bx, by, width, r.theme.ArrowColor, true)

	// Two barbs make the head
	for _, side := range [2]float32{1, -1} {
		hx := bx - side*sin*head*0.6
		hy := by + side*cos*head*0.6
		vector.StrokeLine(screen, x1, y1, hx, hy, width, r.theme.ArrowColor, true)
	}
	vector.StrokeLine(screen, bx, by, x1, y1, width, r.theme.ArrowColor, true)
}

// DrawPieces draws all pieces of pos.
func (r *Renderer) DrawPieces(screen *ebiten.Image, pos board.Position) {
	for sq := board.A8; sq <= board.H1; sq++ {
		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}

		x, y := r.SquareToScreen(sq)
		r.sprites.DrawPieceAt(screen, piece, x, y)
	}
}

func (r *Renderer) squareCenter(sq board.Square) (float32, float32) {
	x, y := r.SquareToScreen(sq)
	half := r.s(r.squareSize) / 2
	return r.s(x) + half, r.s(y) + half
}

// SquareToScreen converts a board square to logical screen coordinates.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	col, row := sq.File(), sq.Row()
	if r.flipped {
		col, row = 7-col, 7-row
	}
	return col * r.squareSize, row * r.squareSize
}

// ScreenToSquare converts logical screen coordinates to a board square.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || x >= r.boardSize || y < 0 || y >= r.boardSize {
		return board.NoSquare
	}
	col, row := x/r.squareSize, y/r.squareSize
	if r.flipped {
		col, row = 7-col, 7-row
	}
	return board.Square(row*8 + col)
}

// BoardSize returns the board size in pixels.
func (r *Renderer) BoardSize() int {
	return r.boardSize
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
