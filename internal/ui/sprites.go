// Package ui implements the board viewer using Ebitengine.
package ui

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/sharpmove/internal/board"
	"github.com/hailam/sharpmove/internal/ui/art"
)

// SpriteManager manages piece sprites.
type SpriteManager struct {
	pieces      map[board.Piece]*ebiten.Image
	size        int     // Display size (e.g., 80)
	renderScale float64 // Render at higher resolution for quality (e.g., 3.0)
	scale       float64 // HiDPI scale factor
}

// NewSpriteManager creates a new sprite manager with pieces of the given size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[board.Piece]*ebiten.Image),
		size:        size,
		renderScale: 3.0, // Render at 3x resolution for sharp scaling
		scale:       1.0,
	}
	sm.loadPieces()
	return sm
}

// SetScale sets the HiDPI scale factor used when drawing.
func (sm *SpriteManager) SetScale(scale float64) {
	sm.scale = scale
}

// GetPiece returns the sprite for a piece.
func (sm *SpriteManager) GetPiece(p board.Piece) *ebiten.Image {
	return sm.pieces[p]
}

// loadPieces rasterises the piece set.
func (sm *SpriteManager) loadPieces() {
	// Render at higher resolution for better quality when scaled
	renderSize := int(float64(sm.size) * sm.renderScale)

	set, err := art.Set(renderSize)
	if err != nil {
		log.Printf("Failed to render pieces: %v", err)
		return
	}
	for piece, img := range set {
		sm.pieces[piece] = ebiten.NewImageFromImage(img)
	}
}

// DrawPieceAt draws a piece at the given logical coordinates.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y int) {
	if p == board.NoPiece {
		return
	}
	sprite := sm.GetPiece(p)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	// Scale down from render resolution to display size
	scale := sm.scale / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x)*sm.scale, float64(y)*sm.scale)
	// Use linear filtering for smooth scaling
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
