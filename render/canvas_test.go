package render

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	poseoverlay "github.com/swdee/go-poseoverlay"
	"github.com/swdee/go-poseoverlay/topology"
	"github.com/swdee/go-poseoverlay/transform"
	"gonum.org/v1/gonum/spatial/r2"
	"image"
	"image/color"
	"testing"
)

// newRenderer returns a renderer drawing a single bone between two joints
// on a 100x100 surface with input coordinates mapped 1:1
func newRenderer(t *testing.T, backend poseoverlay.Backend) *poseoverlay.Renderer {
	t.Helper()

	topo, err := topology.New([]topology.BoneLink{{From: 0, To: 1}})
	require.NoError(t, err)

	opts := poseoverlay.DefaultOptions(transform.Geometry{
		InputWidth:    100,
		InputHeight:   100,
		DisplayWidth:  100,
		DisplayHeight: 100,
	})

	r, err := poseoverlay.New(backend, topo, opts)
	require.NoError(t, err)

	return r
}

// twoJoints returns a pose with joints at the given input image positions
func twoJoints(x1, y1, x2, y2 float64) []poseoverlay.HumanPose2D {
	return []poseoverlay.HumanPose2D{{
		BodyParts: []poseoverlay.BodyPart2D{
			{Index: 0, Coordinates: r2.Vec{X: x1, Y: y1}, Confidence: 1},
			{Index: 1, Coordinates: r2.Vec{X: x2, Y: y2}, Confidence: 1},
		},
	}}
}

func isGreen(c color.RGBA) bool {
	return c.G > 200 && c.R < 50 && c.B < 50 && c.A > 200
}

func TestCanvasDraw(t *testing.T) {

	canvas := NewCanvas(100, 100)
	r := newRenderer(t, canvas)

	// horizontal bone from (20,50) to (80,50)
	require.NoError(t, r.Update(twoJoints(20, 50, 80, 50)))

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	canvas.Draw(img)

	// middle of bone
	assert.True(t, isGreen(img.RGBAAt(50, 50)), "bone center %v", img.RGBAAt(50, 50))
	// joints
	assert.True(t, isGreen(img.RGBAAt(20, 50)))
	assert.True(t, isGreen(img.RGBAAt(23, 47)))
	assert.True(t, isGreen(img.RGBAAt(80, 50)))
	// outside the bone thickness and joint radius
	assert.Equal(t, uint8(0), img.RGBAAt(50, 40).A)
	assert.Equal(t, uint8(0), img.RGBAAt(50, 60).A)
	assert.Equal(t, uint8(0), img.RGBAAt(5, 5).A)
}

func TestCanvasVerticalFlip(t *testing.T) {

	canvas := NewCanvas(100, 100)
	r := newRenderer(t, canvas)

	// vertical bone in the upper half of the input image
	require.NoError(t, r.Update(twoJoints(50, 10, 50, 40)))

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	canvas.Draw(img)

	assert.True(t, isGreen(img.RGBAAt(50, 25)))
	assert.Equal(t, uint8(0), img.RGBAAt(50, 75).A)
	assert.Equal(t, uint8(0), img.RGBAAt(40, 25).A)
}

func TestCanvasClipsToDestination(t *testing.T) {

	canvas := NewCanvas(100, 100)
	r := newRenderer(t, canvas)

	// the surface grows past the destination image
	canvas.Resize(200, 200)
	require.NoError(t, r.Update(twoJoints(20, 50, 95, 50)))

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	require.NotPanics(t, func() { canvas.Draw(img) })

	// bone runs along surface row 100, its upper edge is visible
	assert.True(t, isGreen(img.RGBAAt(99, 99)), "bone edge %v", img.RGBAAt(99, 99))
	assert.Equal(t, uint8(0), img.RGBAAt(99, 90).A)

	// destination smaller than the surface and offset from the origin
	sub := image.NewRGBA(image.Rect(150, 150, 180, 180))
	require.NotPanics(t, func() { canvas.Draw(sub) })
	assert.Equal(t, uint8(0), sub.RGBAAt(150, 150).A)
}

func TestCanvasHidesInactiveGroups(t *testing.T) {

	canvas := NewCanvas(100, 100)
	r := newRenderer(t, canvas)

	require.NoError(t, r.Update(twoJoints(20, 50, 80, 50)))
	require.NoError(t, r.Update(nil))

	assert.Equal(t, 1, canvas.GroupCount())

	bones, joints := canvas.Shapes()
	assert.Empty(t, bones)
	assert.Empty(t, joints)

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	canvas.Draw(img)
	assert.Equal(t, uint8(0), img.RGBAAt(50, 50).A)
}

func TestSceneShapes(t *testing.T) {

	canvas := NewCanvas(100, 100)
	r := newRenderer(t, canvas)

	require.NoError(t, r.Update(twoJoints(20, 50, 80, 50)))

	bones, joints := canvas.Shapes()
	require.Len(t, bones, 1)
	require.Len(t, joints, 2)

	from, to := bones[0].Ends()
	assert.InDelta(t, 20, from.X, 1e-9)
	assert.InDelta(t, 50, from.Y, 1e-9)
	assert.InDelta(t, 80, to.X, 1e-9)
	assert.InDelta(t, 50, to.Y, 1e-9)
	assert.Equal(t, 4.0, bones[0].Height)
	assert.Equal(t, poseoverlay.Green, bones[0].Color)

	canvas.Resize(200, 100)
	w, h := canvas.Size()
	assert.Equal(t, 200.0, w)
	assert.Equal(t, 100.0, h)
}
