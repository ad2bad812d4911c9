package tupper

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/big"

	"github.com/disintegration/imaging"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
)

const (
	margin       = 1  // Plot units around the window on every side
	unitsPerInch = 10 // A 106x17 window makes a 10.6x1.7 inch figure
)

type PlotOpt func(f *Figure)

// WithDPI sets the figure resolution. The default is 300.
func WithDPI(dpi float64) PlotOpt {
	return func(f *Figure) {
		f.dpi = dpi
	}
}

// WithMarkerSize sets the side of each square marker in points. The default
// is 1.
func WithMarkerSize(pt float64) PlotOpt {
	return func(f *Figure) {
		f.marker = pt
	}
}

// WithColors sets the marker and background colors.
func WithColors(fg, bg color.Color) PlotOpt {
	return func(f *Figure) {
		f.fg = fg
		f.bg = bg
	}
}

// Figure is a scatter plot of the formula's window with axes hidden and
// equal aspect ratio. The figure measures Width/10 by Height/10 inches and
// the plot limits [-1, Width+1] by [-1, Height+1] are fitted inside it,
// centred, with y pointing up.
type Figure struct {
	dpi    float64
	marker float64
	fg, bg color.Color
	canvas *image.RGBA
	gc     *draw2dimg.GraphicContext
}

func NewFigure(opts ...PlotOpt) *Figure {
	f := Figure{
		dpi:    300,
		marker: 1,
		fg:     color.Black,
		bg:     color.White,
	}
	for _, opt := range opts {
		opt(&f)
	}
	w := int(f.dpi * Width / unitsPerInch)
	h := int(f.dpi * Height / unitsPerInch)
	f.canvas = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(f.canvas, f.canvas.Bounds(), image.NewUniform(f.bg), image.Point{}, draw.Src)
	f.gc = draw2dimg.NewGraphicContext(f.canvas)
	return &f
}

// unit is the number of pixels per plot unit, the largest scale at which
// the limits fit the canvas.
func (f *Figure) unit() float64 {
	b := f.canvas.Bounds()
	return math.Min(
		float64(b.Dx())/(Width+2*margin),
		float64(b.Dy())/(Height+2*margin),
	)
}

// origin is the pixel position of plot coordinates (-margin, Height+margin),
// the top left corner of the limits.
func (f *Figure) origin() (float64, float64) {
	b := f.canvas.Bounds()
	u := f.unit()
	return (float64(b.Dx()) - u*(Width+2*margin)) / 2,
		(float64(b.Dy()) - u*(Height+2*margin)) / 2
}

// Plot draws a square marker centred on plot coordinates (x, y).
func (f *Figure) Plot(x, y int) {
	if f.gc == nil {
		return
	}
	u := f.unit()
	ox, oy := f.origin()
	half := f.marker * f.dpi / 72 / 2
	cx := ox + float64(x+margin)*u
	cy := oy + float64(Height+margin-y)*u

	f.gc.SetFillColor(f.fg)
	draw2dkit.Rectangle(f.gc, cx-half, cy-half, cx+half, cy+half)
	f.gc.Fill()
}

// PlotGrid draws a marker for every set pixel of g, at the plot coordinates
// the formula would produce it.
func (f *Figure) PlotGrid(g Grid) {
	for row := range g {
		for x := range g[row] {
			if g[row][x] {
				f.Plot(x, Height-1-row)
			}
		}
	}
}

// Image returns the rendered figure. It is nil after Close.
func (f *Figure) Image() image.Image {
	if f.canvas == nil {
		return nil
	}
	return f.canvas
}

// Save writes the figure to path. The format follows the file extension and
// existing files are replaced.
func (f *Figure) Save(path string) error {
	if f.canvas == nil {
		return fmt.Errorf("tupper: save %s: figure closed", path)
	}
	if err := imaging.Save(f.canvas, path); err != nil {
		return fmt.Errorf("tupper: save %s: %w", path, err)
	}
	return nil
}

// Close releases the canvas.
func (f *Figure) Close() {
	f.canvas = nil
	f.gc = nil
}

// RenderFormula plots Tupper's formula over the window at k and writes the
// figure to outputPath.
func RenderFormula(k *big.Int, outputPath string, opts ...PlotOpt) error {
	fig := NewFigure(opts...)
	defer fig.Close()
	fig.PlotGrid(Evaluate(k))
	return fig.Save(outputPath)
}
