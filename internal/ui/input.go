package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input samples the pointer once per frame in logical (unscaled) pixels.
type Input struct {
	scale   float64
	x, y    int
	clicked bool
}

// NewInput creates an input sampler at scale 1.
func NewInput() *Input {
	return &Input{scale: 1.0}
}

// SetScale sets the HiDPI factor cursor positions are divided by.
func (in *Input) SetScale(scale float64) {
	if scale < 1.0 {
		scale = 1.0
	}
	in.scale = scale
}

// Update samples the cursor and the left button.
func (in *Input) Update() {
	x, y := ebiten.CursorPosition()
	in.x = int(float64(x) / in.scale)
	in.y = int(float64(y) / in.scale)
	in.clicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// Cursor returns the cursor position.
func (in *Input) Cursor() (int, int) {
	return in.x, in.y
}

// Clicked reports whether the left button went down this frame.
func (in *Input) Clicked() bool {
	return in.clicked
}

// Over reports whether the cursor is inside the rectangle.
func (in *Input) Over(x, y, w, h int) bool {
	return in.x >= x && in.x < x+w && in.y >= y && in.y < y+h
}

// Binding maps one or more keys to a viewer action.
type Binding struct {
	Keys   []ebiten.Key
	Action func()
}

// Dispatch runs the action of the first binding whose key went down this
// frame and reports whether one ran.
func Dispatch(bindings []Binding) bool {
	for _, b := range bindings {
		for _, k := range b.Keys {
			if inpututil.IsKeyJustPressed(k) {
				b.Action()
				return true
			}
		}
	}
	return false
}
