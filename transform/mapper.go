package transform

import (
	"errors"
	"fmt"
	"gonum.org/v1/gonum/spatial/r2"
	"math"
)

// ErrDegenerateGeometry is returned when an input, display or surface
// dimension is zero, negative or not a finite number
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// Geometry defines the parameters used to map a point from the input image
// the pose was estimated on to the display region the overlay targets
type Geometry struct {
	// InputWidth is the width of the source image used for pose estimation
	InputWidth int
	// InputHeight is the height of the source image used for pose estimation
	InputHeight int
	// DisplayWidth is the width of the logical display region
	DisplayWidth float64
	// DisplayHeight is the height of the logical display region
	DisplayHeight float64
	// OffsetX and OffsetY are pixel offsets applied to the coordinates
	// before scaling
	OffsetX int
	OffsetY int
	// Mirror flips the coordinates horizontally across the display region
	Mirror bool
}

// Validate checks all dimensions are positive
func (g Geometry) Validate() error {

	if g.InputWidth <= 0 || g.InputHeight <= 0 {
		return fmt.Errorf("%w: input dimensions %dx%d", ErrDegenerateGeometry,
			g.InputWidth, g.InputHeight)
	}

	if !positive(g.DisplayWidth) || !positive(g.DisplayHeight) {
		return fmt.Errorf("%w: display dimensions %gx%g", ErrDegenerateGeometry,
			g.DisplayWidth, g.DisplayHeight)
	}

	return nil
}

// CheckSurface returns an error if the rendering surface dimensions can not
// be mapped to
func CheckSurface(width, height float64) error {
	if !positive(width) || !positive(height) {
		return fmt.Errorf("%w: surface dimensions %gx%g", ErrDegenerateGeometry,
			width, height)
	}
	return nil
}

// positive returns true for finite values greater than zero
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Map scales and optionally mirrors a point from input image space (origin
// top left, y down) into the local coordinates of a rendering surface (y up)
// of the given size.  The display region is fitted inside the surface and
// centered.  All dimensions must be greater than zero.
func Map(pt r2.Vec, g Geometry, surfaceWidth, surfaceHeight float64) r2.Vec {
	return mapPoint(pt, g, imageScale(g), surfaceWidth, surfaceHeight)
}

// imageScale is the scale between the display region and input image using
// their smallest dimensions
func imageScale(g Geometry) float64 {
	minDisplay := math.Min(g.DisplayWidth, g.DisplayHeight)
	minInput := g.InputWidth
	if g.InputHeight < minInput {
		minInput = g.InputHeight
	}
	return minDisplay / float64(minInput)
}

// surfaceScale is the scale between the rendering surface and the display
// region
func surfaceScale(g Geometry, surfaceWidth, surfaceHeight float64) float64 {
	return math.Min(surfaceWidth/g.DisplayWidth, surfaceHeight/g.DisplayHeight)
}

func mapPoint(pt r2.Vec, g Geometry, imgScale, surfaceWidth,
	surfaceHeight float64) r2.Vec {

	// scale to the display region and flip vertically
	x := (pt.X + float64(g.OffsetX)) * imgScale
	y := (float64(g.InputHeight) - (pt.Y - float64(g.OffsetY))) * imgScale

	if g.Mirror {
		x = g.DisplayWidth - x
	}

	scale := surfaceScale(g, surfaceWidth, surfaceHeight)

	x *= scale
	y *= scale

	// center the display region on the surface
	x += (surfaceWidth - g.DisplayWidth*scale) / 2
	y += (surfaceHeight - g.DisplayHeight*scale) / 2

	return r2.Vec{X: x, Y: y}
}

// Mapper maps points for a fixed Geometry with the image scale precalculated.
// The surface size is passed on each call as it may change between frames.
type Mapper struct {
	geometry Geometry
	// imgScale is the scale between display region and input image
	imgScale float64
}

// NewMapper returns a Mapper for the given geometry
func NewMapper(g Geometry) (*Mapper, error) {

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return &Mapper{
		geometry: g,
		imgScale: imageScale(g),
	}, nil
}

// Map transforms the point onto a surface of the given size
func (m *Mapper) Map(pt r2.Vec, surfaceWidth, surfaceHeight float64) r2.Vec {
	return mapPoint(pt, m.geometry, m.imgScale, surfaceWidth, surfaceHeight)
}

// Geometry returns the geometry the mapper was created with
func (m *Mapper) Geometry() Geometry {
	return m.geometry
}

// ImageScale returns the scale factor between display region and input image
func (m *Mapper) ImageScale() float64 {
	return m.imgScale
}

// SurfaceScale returns the scale factor applied to fit the display region
// on a surface of the given size
func (m *Mapper) SurfaceScale(surfaceWidth, surfaceHeight float64) float64 {
	return surfaceScale(m.geometry, surfaceWidth, surfaceHeight)
}
