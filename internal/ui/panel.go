package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/sharpmove/internal/engine"
)

// Panel dimensions
const (
	PanelPadding   = 20
	LineHeight     = 20
	SectionSpacing = 14
	ButtonHeight   = 34
	ButtonGap      = 8
	maxCandidates  = 8
	maxHistoryRows = 4
)

// Panel colors
var (
	panelBg       = color.RGBA{38, 40, 45, 255}    // Dark background
	buttonBg      = color.RGBA{50, 54, 60, 255}    // Button background
	buttonHoverBg = color.RGBA{65, 70, 78, 255}    // Button hover
	buttonBorder  = color.RGBA{70, 75, 82, 255}    // Subtle button border
	accentColor   = color.RGBA{76, 175, 120, 255}  // Green accent
	textPrimary   = color.RGBA{240, 240, 245, 255} // Primary text
	textSecondary = color.RGBA{160, 165, 175, 255} // Secondary text
	statusWorking = color.RGBA{100, 180, 255, 255} // Blue while searching
	statusOver    = color.RGBA{255, 200, 80, 255}  // Yellow for game over
	statusError   = color.RGBA{255, 120, 120, 255} // Red for errors
)

// Button represents a clickable panel element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	hovered    bool
}

func (b *Button) contains(in *Input) bool {
	return in.Over(b.X, b.Y, b.W, b.H)
}

func (b *Button) draw(screen *ebiten.Image, scale float64) {
	s := func(v int) float32 { return float32(float64(v) * scale) }
	bg := buttonBg
	if b.hovered {
		bg = buttonHoverBg
	}
	vector.DrawFilledRect(screen, s(b.X), s(b.Y), s(b.W), s(b.H), bg, false)
	vector.StrokeRect(screen, s(b.X), s(b.Y), s(b.W), s(b.H), float32(scale), buttonBorder, false)

	w, h := MeasureText(b.Label, regularFace)
	drawText(screen, b.Label, regularFace,
		float64(b.X)+(float64(b.W)-w)/2, float64(b.Y)+(float64(b.H)-h)/2,
		scale, textPrimary)
}

// Panel is the side panel showing the suggestion, the candidate table and
// the move history.
type Panel struct {
	game    *Game
	x       int
	width   int
	buttons []*Button
	scale   float64
}

// NewPanel creates the side panel for g.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g, x: BoardSize, width: PanelWidth, scale: 1.0}

	labels := []struct {
		label  string
		action func()
	}{
		{"Play (Space)", g.PlaySuggestionAction},
		{"Undo (U)", g.UndoAction},
		{"Flip (F)", g.FlipAction},
		{"Reset (R)", g.ResetAction},
	}
	bw := (p.width - 2*PanelPadding - ButtonGap) / 2
	for i, l := range labels {
		p.buttons = append(p.buttons, &Button{
			X:       p.x + PanelPadding + (i%2)*(bw+ButtonGap),
			Y:       ScreenHeight - PanelPadding - (2-i/2)*(ButtonHeight+ButtonGap) + ButtonGap,
			W:       bw,
			H:       ButtonHeight,
			Label:   l.label,
			OnClick: l.action,
		})
	}
	return p
}

// SetScale sets the HiDPI scale factor.
func (p *Panel) SetScale(scale float64) {
	p.scale = scale
}

// HandleInput updates hover state and runs button actions. It returns true
// if the panel consumed a click.
func (p *Panel) HandleInput(in *Input) bool {
	clicked := false
	for _, b := range p.buttons {
		b.hovered = b.contains(in)
		if b.hovered && in.Clicked() {
			b.OnClick()
			clicked = true
		}
	}
	return clicked
}

// AnyButtonHovered returns true if the mouse is over a button.
func (p *Panel) AnyButtonHovered() bool {
	for _, b := range p.buttons {
		if b.hovered {
			return true
		}
	}
	return false
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	s := func(v int) float32 { return float32(float64(v) * p.scale) }
	vector.DrawFilledRect(screen, s(p.x), 0, s(p.width), s(ScreenHeight), panelBg, false)

	g := p.game
	pos := g.session.Position()
	x := float64(p.x + PanelPadding)
	y := float64(PanelPadding)

	line := func(face *text.GoTextFace, c color.Color, format string, args ...any) {
		drawText(screen, fmt.Sprintf(format, args...), face, x, y, p.scale, c)
		y += LineHeight
	}

	line(boldFace, textPrimary, "SharpMove")
	y += SectionSpacing

	line(regularFace, textSecondary, "%s to move", pos.SideToMove)
	line(regularFace, textSecondary, "Material %s", engine.ScoreToString(engine.MaterialScore(pos)))

	status, statusColor := g.statusLine()
	line(regularFace, statusColor, "%s", status)
	y += SectionSpacing

	a, _ := g.session.Analysis()
	if a != nil {
		line(boldFace, accentColor, "%s", a.Move.Arrow())
		line(regularFace, textSecondary, "%d safe replies, %d nodes, %s", a.SafeReplies, a.Nodes, a.Source)

		if g.showCandidates {
			y += SectionSpacing / 2
			for i, c := range a.Candidates {
				if i == maxCandidates {
					line(monoFace, textSecondary, "... %d more", len(a.Candidates)-maxCandidates)
					break
				}
				clr := textSecondary
				if c.Move == a.Move {
					clr = accentColor
				}
				line(monoFace, clr, "%s  %2d/%-2d  %s", c.Move, c.SafeReplies, c.Replies, engine.ScoreToString(c.Material))
			}
		}
		y += SectionSpacing
	}

	rows := moveRows(g.session.SANHistory())
	if len(rows) > 0 {
		line(regularFace, textSecondary, "Moves")
		if len(rows) > maxHistoryRows {
			rows = rows[len(rows)-maxHistoryRows:]
		}
		for _, r := range rows {
			line(monoFace, textPrimary, "%s", r)
		}
	}

	for _, b := range p.buttons {
		b.draw(screen, p.scale)
	}
}

// moveRows formats the history one White/Black pair per row.
func moveRows(moves []string) []string {
	var rows []string
	for i := 0; i < len(moves); i += 2 {
		row := fmt.Sprintf("%3d. %-7s", i/2+1, moves[i])
		if i+1 < len(moves) {
			row += " " + moves[i+1]
		}
		rows = append(rows, row)
	}
	return rows
}
