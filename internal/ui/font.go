package ui

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	// Font faces for text rendering
	regularFace *text.GoTextFace
	boldFace    *text.GoTextFace
	monoFace    *text.GoTextFace
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 18.0
	coordFontSize   = 11.0
)

func init() {
	initFonts()
}

func loadFace(ttf []byte, size float64) *text.GoTextFace {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		log.Printf("Failed to load font: %v", err)
		return nil
	}
	return &text.GoTextFace{Source: source, Size: size}
}

func initFonts() {
	regularFace = loadFace(goregular.TTF, defaultFontSize)
	boldFace = loadFace(gobold.TTF, titleFontSize)
	monoFace = loadFace(gomono.TTF, defaultFontSize)
}

// GetFaceWithSize returns a font face with a custom size.
func GetFaceWithSize(face *text.GoTextFace, size float64) *text.GoTextFace {
	if face == nil {
		return nil
	}
	return &text.GoTextFace{
		Source: face.Source,
		Size:   size,
	}
}

// MeasureText returns the width and height of the given text.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	w, h := text.Measure(s, face, 0)
	return w, h
}

// drawText draws s with its top-left corner at the given logical position.
func drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y, scale float64, c color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x*scale, y*scale)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, GetFaceWithSize(face, face.Size*scale), op)
}
