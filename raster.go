package tupper

import (
	"image"
	"math/big"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// RasterOpt configures RenderText.
type RasterOpt func(r *rasterizer)

// WithFace draws with face instead of the default font. The font size
// argument of RenderText is still validated but otherwise ignored.
func WithFace(face font.Face) RasterOpt {
	return func(r *rasterizer) {
		r.face = face
	}
}

// WithLineSpacing sets the extra space between lines, in pixels. The default
// is -1.
func WithLineSpacing(px int) RasterOpt {
	return func(r *rasterizer) {
		r.spacing = px
	}
}

type rasterizer struct {
	face    font.Face
	spacing int
}

var defaultFont *truetype.Font

func init() {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	defaultFont = f
}

// DefaultFace returns the default font at size pixels.
func DefaultFace(size int) font.Face {
	return truetype.NewFace(defaultFont, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// RenderText draws text centred on an empty grid and returns the grid along
// with its k constant. Text that does not fit is clipped.
func RenderText(text string, fontSize int, opts ...RasterOpt) (Grid, *big.Int, error) {
	var g Grid
	if fontSize <= 0 {
		return g, nil, ErrFontSize
	}
	r := rasterizer{spacing: -1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.face == nil {
		r.face = DefaultFace(fontSize)
		defer r.face.Close()
	}

	canvas := image.NewAlpha(image.Rect(0, 0, Width, Height))
	r.draw(canvas, strings.TrimSpace(norm.NFC.String(text)))

	// Monochrome: a pixel is on when at least half covered.
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if canvas.AlphaAt(x, y).A >= 0x80 {
				g[y][x] = true
			}
		}
	}
	return g, Encode(g), nil
}

// draw centres the block of lines on the canvas. Each line is centred
// horizontally by its advance, and the block vertically halfway between the
// first line's ascent and the last line's descent.
func (r *rasterizer) draw(dst *image.Alpha, text string) {
	lines := strings.Split(text, "\n")
	m := r.face.Metrics()
	step := m.Height + fixed.I(r.spacing)
	block := m.Ascent + m.Descent + step*fixed.Int26_6(len(lines)-1)

	top := fixed.I(Height)/2 - block/2
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: r.face,
	}
	for i, line := range lines {
		d.Dot = fixed.Point26_6{
			X: fixed.I(Width)/2 - d.MeasureString(line)/2,
			Y: top + m.Ascent + step*fixed.Int26_6(i),
		}
		d.DrawString(line)
	}
}
