package mat

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	poseoverlay "github.com/swdee/go-poseoverlay"
	"github.com/swdee/go-poseoverlay/topology"
	"github.com/swdee/go-poseoverlay/transform"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"
	"image/color"
	"testing"
)

// newRenderer returns a renderer drawing a single bone between two joints
// on a 100x100 surface with input coordinates mapped 1:1
func newRenderer(t *testing.T, backend poseoverlay.Backend,
	clr color.Color) *poseoverlay.Renderer {
	t.Helper()

	topo, err := topology.New([]topology.BoneLink{{From: 0, To: 1}})
	require.NoError(t, err)

	opts := poseoverlay.DefaultOptions(transform.Geometry{
		InputWidth:    100,
		InputHeight:   100,
		DisplayWidth:  100,
		DisplayHeight: 100,
	})
	opts.JointColor = clr
	opts.BoneColor = clr

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

func TestSurfaceDraw(t *testing.T) {

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 100, 100,
		gocv.MatTypeCV8UC3)
	defer img.Close()

	surface := NewSurface(img)
	w, h := surface.Size()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 100.0, h)

	r := newRenderer(t, surface, poseoverlay.Green)

	// horizontal bone from (20,50) to (80,50)
	require.NoError(t, r.Update(twoJoints(20, 50, 80, 50)))

	surface.Draw(&img)

	// Mat pixels are BGR ordered
	center := img.GetVecbAt(50, 50)
	assert.Equal(t, uint8(0), center[0])
	assert.Equal(t, uint8(255), center[1])
	assert.Equal(t, uint8(0), center[2])

	joint := img.GetVecbAt(50, 20)
	assert.Equal(t, uint8(255), joint[1])

	empty := img.GetVecbAt(10, 50)
	assert.Equal(t, uint8(0), empty[1])
}

func TestSurfaceDrawTranslucent(t *testing.T) {

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(100, 100, 100, 0), 100, 100,
		gocv.MatTypeCV8UC3)
	defer img.Close()

	surface := NewSurface(img)

	// white at half opacity, as parsed from #ffffff80
	clr := color.RGBAModel.Convert(color.NRGBA{R: 255, G: 255, B: 255, A: 128})
	r := newRenderer(t, surface, clr)

	require.NoError(t, r.Update(twoJoints(20, 50, 80, 50)))

	surface.Draw(&img)

	// white blended half over grey 100
	center := img.GetVecbAt(50, 50)
	assert.InDelta(t, 178, int(center[0]), 2)
	assert.InDelta(t, 178, int(center[1]), 2)
	assert.InDelta(t, 178, int(center[2]), 2)

	// joint and bone overlap, each blended in turn
	joint := img.GetVecbAt(50, 20)
	assert.Greater(t, int(joint[1]), int(center[1]))

	untouched := img.GetVecbAt(10, 50)
	assert.Equal(t, uint8(100), untouched[1])
}

func TestToRGBA(t *testing.T) {

	clr, alpha := toRGBA(color.NRGBA{R: 255, G: 0, B: 0, A: 128})
	assert.Equal(t, color.RGBA{R: 255, A: 255}, clr)
	assert.Equal(t, uint8(128), alpha)

	clr, alpha = toRGBA(poseoverlay.Green)
	assert.Equal(t, poseoverlay.Green, clr)
	assert.Equal(t, uint8(255), alpha)
}
