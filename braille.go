package tupper

import (
	"image"
	"io"

	"github.com/nfnt/resize"
)

// Braille represents an 8 dot braille pattern in x,y coordinates space. Eg:
//
//	+----------+
//	|(0,0)(1,0)|
//	|(0,1)(1,1)|
//	|(0,2)(1,2)|
//	|(0,3)(1,3)|
//	+----------+
type Braille [2][4]int

// Rune maps each point in braille to a dot identifier and
// calculates the corresponding unicode symbol.
//
//	+------+
//	|(1)(4)|
//	|(2)(5)|
//	|(3)(6)|
//	|(7)(8)|
//	+------+
//
// See https://en.wikipedia.org/wiki/Braille_Patterns#Identifying.2C_naming_and_ordering)
func (b Braille) Rune() rune {
	lowEndian := [8]int{b[0][0], b[0][1], b[0][2], b[1][0], b[1][1], b[1][2], b[0][3], b[1][3]}
	var v int
	for i, x := range lowEndian {
		v += x << uint(i)
	}
	return rune(v) + '\u2800'
}

func (b Braille) String() string {
	return string(b.Rune())
}

type BrailleOpt func(enc *BrailleEncoder)

// WithFit scales the grid down, keeping its aspect ratio, so that the preview
// fits in cols columns and lines lines of text.
func WithFit(cols, lines int) BrailleOpt {
	return func(enc *BrailleEncoder) {
		enc.cols = cols
		enc.lines = lines
	}
}

// BrailleEncoder previews grids in a terminal. Each 2x4 block of pixels
// becomes one braille symbol.
type BrailleEncoder struct {
	w     io.Writer
	cols  int
	lines int
}

func NewBrailleEncoder(w io.Writer, opts ...BrailleOpt) *BrailleEncoder {
	enc := BrailleEncoder{w: w}
	for _, opt := range opts {
		opt(&enc)
	}
	return &enc
}

func (enc *BrailleEncoder) Encode(g Grid) error {
	var img image.Image = g.Image()
	if enc.cols > 0 && enc.lines > 0 {
		// Each symbol is 2 pixels wide and 4 pixels high.
		maxW, maxH := uint(enc.cols*2), uint(enc.lines*4)
		if maxW < Width || maxH < Height {
			img = resize.Thumbnail(maxW, maxH, img, resize.NearestNeighbor)
		}
	}
	bounds := img.Bounds()

	// Looping over Y first and X second is more likely to result in better
	// memory access patterns than X first and Y second.
	for py := bounds.Min.Y; py < bounds.Max.Y; py += 4 {
		for px := bounds.Min.X; px < bounds.Max.X; px += 2 {
			var b Braille
			// Draw left-right, top-bottom.
			for y := 0; y < 4; y++ {
				for x := 0; x < 2; x++ {
					if px+x >= bounds.Max.X || py+y >= bounds.Max.Y {
						continue
					}
					if dark(img, px+x, py+y) {
						b[x][y] = 1
					}
				}
			}
			if _, err := enc.w.Write([]byte(b.String())); err != nil {
				return err
			}
		}
		if _, err := enc.w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}

func dark(img image.Image, x, y int) bool {
	return grayscale(img.At(x, y).RGBA()) <= float32(0xffff)/2
}

// Standard-ish algorithm for determining the best grayscale for human eyes
// 0.21 R + 0.72 G + 0.07 B
func grayscale(r, g, b, a uint32) float32 {
	return 0.21*float32(r) + 0.72*float32(g) + 0.07*float32(b)
}
