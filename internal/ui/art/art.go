// Package art draws the piece set. Pieces are small inline SVGs rasterised
// with oksvg, so the viewer ships without image assets.
package art

import (
	"fmt"
	"image"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/sharpmove/internal/board"
)

// ViewBox is the side length of the square SVG coordinate space.
const ViewBox = 45

// Palette holds the fill and outline colors of one side.
type Palette struct {
	Fill   string
	Stroke string
}

var (
	WhitePalette = Palette{Fill: "#f5f5f5", Stroke: "#1e1e1e"}
	BlackPalette = Palette{Fill: "#2b2b2b", Stroke: "#e0e0e0"}
)

// Shape bodies in a 45x45 box. Every piece stands on the same base.
const base = `<rect x="10" y="36" width="25" height="5" rx="1"/>`

var shapes = [6]string{
	board.Pawn: `<circle cx="22.5" cy="14" r="6"/>
<path d="M15 36 L19 20 L26 20 L30 36 Z"/>`,

	board.Knight: `<path d="M14 36 L16 24 C14 20 16 12 24 9 L27 5 L28 10 C34 13 35 22 31 36 Z"/>
<circle cx="22" cy="15" r="1.5"/>`,

	board.Bishop: `<ellipse cx="22.5" cy="24" rx="7" ry="11"/>
<circle cx="22.5" cy="10" r="3"/>`,

	board.Rook: `<path d="M12 9 h4 v3 h3 v-3 h7 v3 h3 v-3 h4 v8 h-21 z"/>
<rect x="14" y="17" width="17" height="19"/>`,

	board.Queen: `<path d="M10 36 L12 14 L17 26 L22.5 11 L28 26 L33 14 L35 36 Z"/>
<circle cx="12" cy="12" r="2.5"/>
<circle cx="22.5" cy="9" r="2.5"/>
<circle cx="33" cy="12" r="2.5"/>`,

	board.King: `<path d="M21 3 h3 v4 h4 v3 h-4 v6 h-3 v-6 h-4 v-3 h4 z"/>
<path d="M12 36 C10 26 16 18 22.5 18 C29 18 35 26 33 36 Z"/>`,
}

// SVG returns the SVG document for a piece.
func SVG(p board.Piece) (string, error) {
	if p.IsEmpty() {
		return "", fmt.Errorf("no artwork for an empty square")
	}

	pal := WhitePalette
	if p.Color() == board.Black {
		pal = BlackPalette
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d">`, ViewBox, ViewBox)
	fmt.Fprintf(&sb, `<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round">`, pal.Fill, pal.Stroke)
	sb.WriteString(shapes[p.Type()])
	sb.WriteString(base)
	sb.WriteString(`</g></svg>`)
	return sb.String(), nil
}

// Rasterize renders an SVG document into a size x size RGBA image.
func Rasterize(svg string, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid raster size %d", size)
	}

	// Parse SVG
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	icon.SetTarget(0, 0, float64(size), float64(size))

	// Create RGBA image and render with anti-aliasing
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	return rgba, nil
}

// Piece renders one piece at the given pixel size.
func Piece(p board.Piece, size int) (*image.RGBA, error) {
	svg, err := SVG(p)
	if err != nil {
		return nil, err
	}
	img, err := Rasterize(svg, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return img, nil
}

// AllPieces lists the twelve pieces in a fixed order.
func AllPieces() []board.Piece {
	pieces := make([]board.Piece, 0, 12)
	for _, c := range []board.Color{board.White, board.Black} {
		for pt := board.Pawn; pt <= board.King; pt++ {
			pieces = append(pieces, board.NewPiece(pt, c))
		}
	}
	return pieces
}

// Set renders the full piece set.
func Set(size int) (map[board.Piece]*image.RGBA, error) {
	set := make(map[board.Piece]*image.RGBA, 12)
	for _, p := range AllPieces() {
		img, err := Piece(p, size)
		if err != nil {
			return nil, err
		}
		set[p] = img
	}
	return set, nil
}
