package tupper_test

import (
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"math/big"
	"os"
	"path/filepath"

	"github.com/kevin-cantwell/tupper"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func decodeFile(path string) image.Image {
	f, err := os.Open(path)
	Expect(err).NotTo(HaveOccurred())
	defer f.Close()
	img, _, err := image.Decode(f)
	Expect(err).NotTo(HaveOccurred())
	return img
}

func isBlack(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r < 0x1000 && g < 0x1000 && b < 0x1000
}

var _ = Describe("RenderFormula", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "tupper")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("writes a 10.6x1.7 inch figure at 300 DPI", func() {
		var g tupper.Grid
		g.Set(0, 0)
		path := filepath.Join(dir, "plot.png")
		Expect(tupper.RenderFormula(tupper.Encode(g), path)).To(Succeed())

		img := decodeFile(path)
		Expect(img.Bounds().Dx()).To(Equal(3180))
		Expect(img.Bounds().Dy()).To(Equal(510))
		// The 19 unit tall limits fill the height, 510/19 pixels per unit,
		// and are centred horizontally. The top left pixel is plotted at
		// (0, 16): one unit in from the left limit, two down from the top.
		Expect(isBlack(img.At(167, 53))).To(BeTrue())
		Expect(isBlack(img.At(140, 53))).To(BeFalse())
		Expect(isBlack(img.At(5, 5))).To(BeFalse())
		Expect(isBlack(img.At(230, 53))).To(BeFalse())
	})

	It("keeps the aspect ratio equal", func() {
		var g tupper.Grid
		g.Set(0, 0)
		g.Set(1, 1)
		path := filepath.Join(dir, "diag.png")
		Expect(tupper.RenderFormula(tupper.Encode(g), path)).To(Succeed())

		img := decodeFile(path)
		// (1, 1) sits one unit right of and one unit below (0, 0).
		Expect(isBlack(img.At(167+27, 53+27))).To(BeTrue())
	})

	It("draws nothing for k = 0", func() {
		path := filepath.Join(dir, "blank.png")
		Expect(tupper.RenderFormula(big.NewInt(0), path, tupper.WithDPI(50))).To(Succeed())
		img := decodeFile(path)
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				Expect(isBlack(img.At(x, y))).To(BeFalse())
			}
		}
	})

	It("picks the format from the extension", func() {
		path := filepath.Join(dir, "plot.jpg")
		Expect(tupper.RenderFormula(big.NewInt(17), path, tupper.WithDPI(20))).To(Succeed())
		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()
		_, format, err := image.DecodeConfig(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(format).To(Equal("jpeg"))
	})

	It("overwrites existing files", func() {
		path := filepath.Join(dir, "plot.png")
		Expect(os.WriteFile(path, []byte("not a png"), 0644)).To(Succeed())
		Expect(tupper.RenderFormula(big.NewInt(0), path, tupper.WithDPI(20))).To(Succeed())
		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()
		_, err = png.Decode(f)
		Expect(err).NotTo(HaveOccurred())
	})

	It("fails on unsupported extensions", func() {
		err := tupper.RenderFormula(big.NewInt(0), filepath.Join(dir, "plot.xyz"), tupper.WithDPI(20))
		Expect(err).To(HaveOccurred())
	})

	It("fails on missing directories", func() {
		err := tupper.RenderFormula(big.NewInt(0), filepath.Join(dir, "missing", "plot.png"), tupper.WithDPI(20))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Figure", func() {
	It("uses the configured colors", func() {
		red := color.RGBA{R: 0xff, A: 0xff}
		fig := tupper.NewFigure(tupper.WithDPI(100), tupper.WithMarkerSize(3), tupper.WithColors(red, color.White))
		var g tupper.Grid
		g.Set(tupper.Width-1, tupper.Height-1)
		fig.PlotGrid(g)
		// 170/19 pixels per unit; the limits start 46.8 pixels in, so plot
		// point (105, 0) lands near (995, 161).
		Expect(fig.Image().Bounds().Dx()).To(Equal(1060))
		Expect(fig.Image().Bounds().Dy()).To(Equal(170))
		r, gg, b, _ := fig.Image().At(995, 161).RGBA()
		Expect(r).To(BeNumerically(">", 0xf000))
		Expect(gg).To(BeNumerically("<", 0x1000))
		Expect(b).To(BeNumerically("<", 0x1000))
	})

	It("releases the canvas on Close", func() {
		fig := tupper.NewFigure(tupper.WithDPI(10))
		fig.Close()
		Expect(fig.Image()).To(BeNil())
		fig.Plot(0, 0)
		Expect(fig.Save(filepath.Join(os.TempDir(), "closed.png"))).NotTo(Succeed())
	})
})
