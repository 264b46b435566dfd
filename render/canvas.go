package render

import (
	clipper "github.com/ctessum/go.clipper"
	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"
	"image"
	"image/color"
	"image/draw"
)

// subPixel is the fixed point scale used when handing coordinates to clipper
// which works on integer paths
const subPixel = 64

// Canvas is a pure Go drawing surface.  Joints are painted as discs and bones
// as bars, with outlines produced by offsetting their center lines.
type Canvas struct {
	*Scene
	// ArcTolerance is the maximum distance in pixels a joint outline may
	// deviate from a true circle
	ArcTolerance float64
}

// NewCanvas returns a canvas for a surface of the given size
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Scene:        NewScene(width, height),
		ArcTolerance: 0.1,
	}
}

// Draw paints the visible pose overlay onto dst.  The canvas origin is
// placed at the bottom left of the surface, which starts at dst's bounds
// minimum.  Parts of the surface outside dst are clipped.
func (c *Canvas) Draw(dst draw.Image) {

	w, h := c.Size()
	surface := image.Rect(0, 0, int(w), int(h)).Add(dst.Bounds().Min)
	clip := surface.Intersect(dst.Bounds())

	if clip.Empty() {
		return
	}

	// rasterizer origin relative to the clipped area
	origin := surface.Min.Sub(clip.Min)

	bones, joints := c.Shapes()

	ras := vector.NewRasterizer(clip.Dx(), clip.Dy())

	for _, b := range bones {
		from, to := b.Ends()
		path := clipper.Path{toIntPoint(from), toIntPoint(to)}
		c.fill(ras, dst, clip, origin, h, path, clipper.JtMiter,
			clipper.EtOpenButt, b.Height/2, b.Color)
	}

	for _, j := range joints {
		path := clipper.Path{toIntPoint(j.Center)}
		c.fill(ras, dst, clip, origin, h, path, clipper.JtRound,
			clipper.EtOpenRound, j.Width/2, j.Color)
	}
}

// fill offsets path by delta pixels and paints the resulting outline
func (c *Canvas) fill(ras *vector.Rasterizer, dst draw.Image,
	clip image.Rectangle, origin image.Point, height float64,
	path clipper.Path, join clipper.JoinType, end clipper.EndType,
	delta float64, clr color.Color) {

	if delta <= 0 {
		return
	}

	co := clipper.NewClipperOffset()
	co.ArcTolerance = c.ArcTolerance * subPixel
	co.AddPath(path, join, end)

	solution := co.Execute(delta * subPixel)

	if len(solution) == 0 {
		return
	}

	ras.Reset(clip.Dx(), clip.Dy())

	ox := float64(origin.X)
	oy := float64(origin.Y)

	for _, outline := range solution {
		if len(outline) < 3 {
			continue
		}

		for i, pt := range outline {
			// flip from surface y up to image rows
			x := float32(ox + float64(pt.X)/subPixel)
			y := float32(oy + height - float64(pt.Y)/subPixel)

			if i == 0 {
				ras.MoveTo(x, y)
			} else {
				ras.LineTo(x, y)
			}
		}

		ras.ClosePath()
	}

	ras.Draw(dst, clip, image.NewUniform(clr), image.Point{})
}

// toIntPoint converts a surface position to clipper fixed point
func toIntPoint(v r2.Vec) *clipper.IntPoint {
	return &clipper.IntPoint{
		X: clipper.CInt(v.X * subPixel),
		Y: clipper.CInt(v.Y * subPixel),
	}
}
