// Package mat draws the pose overlay onto GoCV Mats.  It requires OpenCV,
// use render.Canvas for a pure Go surface.
package mat

import (
	"github.com/swdee/go-poseoverlay/render"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"
	"image"
	"image/color"
	"math"
)

// Surface draws the pose overlay onto a GoCV Mat using OpenCV line and
// circle primitives
type Surface struct {
	*render.Scene
}

// NewSurface returns a surface the size of the given Mat
func NewSurface(img gocv.Mat) *Surface {
	return &Surface{
		Scene: render.NewScene(img.Cols(), img.Rows()),
	}
}

// Draw paints the visible pose overlay onto img.  Translucent colors are
// blended with the existing image content.
func (s *Surface) Draw(img *gocv.Mat) {

	_, h := s.Size()
	bones, joints := s.Shapes()

	// draw skeleton lines
	for _, b := range bones {
		from, to := b.Ends()
		thickness := int(math.Max(1, math.Round(b.Height)))

		blend(img, b.Color, func(dst *gocv.Mat, clr color.RGBA) {
			gocv.Line(dst, toMatPoint(from, h), toMatPoint(to, h), clr, thickness)
		})
	}

	// draw circles at skeleton joints
	for _, j := range joints {
		radius := int(math.Max(1, math.Round(j.Width/2)))

		blend(img, j.Color, func(dst *gocv.Mat, clr color.RGBA) {
			gocv.Circle(dst, toMatPoint(j.Center, h), radius, clr, -1)
		})
	}
}

// blend calls paint with the opaque form of c.  Opaque colors are painted
// directly onto img, translucent ones onto a copy which is then weighted
// back into img by the color's alpha.
func blend(img *gocv.Mat, c color.Color, paint func(*gocv.Mat, color.RGBA)) {

	clr, alpha := toRGBA(c)

	if alpha == 0 {
		return
	}

	if alpha == 255 {
		paint(img, clr)
		return
	}

	layer := img.Clone()
	defer layer.Close()

	paint(&layer, clr)

	a := float64(alpha) / 255
	gocv.AddWeighted(layer, a, *img, 1-a, 0, img)
}

// toMatPoint converts surface coordinates (y up) to Mat pixel coordinates
func toMatPoint(v r2.Vec, height float64) image.Point {
	return image.Pt(int(math.Round(v.X)), int(math.Round(height-v.Y)))
}

// toRGBA returns the color gocv draws with, which is always opaque, and
// the alpha of c
func toRGBA(c color.Color) (color.RGBA, uint8) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 255}, n.A
}
