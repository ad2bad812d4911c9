/*
Package tupper encodes short text as the k constant of Tupper's
self-referential formula and plots the formula back.

Text is rendered into a fixed 106x17 monochrome Grid. The grid is read
column by column, right to left, top to bottom, and the bits are accumulated
into a big integer which is multiplied by 17 to produce k. Plotting

	1/2 < floor(mod(floor(y/17) * 2^(-17x - mod(y, 17)), 2))

over 0 <= x < 106, k <= y < k+17 draws the grid again.
*/
package tupper

import (
	"errors"
	"image"
	"image/color"
	"strings"
)

// Dimensions of the window plotted by the formula.
const (
	Width  = 106
	Height = 17
)

var (
	ErrFontSize    = errors.New("tupper: font size must be positive")
	ErrNotMultiple = errors.New("tupper: k must be a non-negative multiple of 17")
	ErrTooLarge    = errors.New("tupper: k does not fit the window")
	ErrMismatch    = errors.New("tupper: formula does not reproduce grid")
)

// Grid is a monochrome bitmap the size of the formula's window. Row 0 is the
// top of the picture and column 0 its left edge.
type Grid [Height][Width]bool

// At reports whether the pixel at column x, row y is set. Out of range
// coordinates are never set.
func (g *Grid) At(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return g[y][x]
}

// Set turns on the pixel at column x, row y.
func (g *Grid) Set(x, y int) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	g[y][x] = true
}

// Count returns the number of pixels set.
func (g *Grid) Count() int {
	var n int
	for y := range g {
		for x := range g[y] {
			if g[y][x] {
				n++
			}
		}
	}
	return n
}

// String returns one line of '0' and '1' per row.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range g {
		for x := range g[y] {
			if g[y][x] {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var monochrome = []color.Color{color.White, color.Black}

// Image returns the grid as a paletted image, set pixels black on white.
func (g *Grid) Image() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, Width, Height), monochrome)
	for y := range g {
		for x := range g[y] {
			if g[y][x] {
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	return img
}
