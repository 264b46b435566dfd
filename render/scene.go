package render

import (
	poseoverlay "github.com/swdee/go-poseoverlay"
	"gonum.org/v1/gonum/spatial/r2"
	"image/color"
	"math"
	"sync"
)

// Scene is a retained tree of pose groups, joints and bones implementing
// poseoverlay.Backend.  Drawing surfaces embed it and paint the active
// elements.  Coordinates are surface local with y pointing up.
type Scene struct {
	width  float64
	height float64
	groups []*group
	sync.Mutex
}

// NewScene returns a scene for a surface of the given size
func NewScene(width, height int) *Scene {
	return &Scene{
		width:  float64(width),
		height: float64(height),
	}
}

// group holds the elements of one pose
type group struct {
	scene  *Scene
	active bool
	joints []*element
	bones  []*element
}

// element is a joint or bone
type element struct {
	scene    *Scene
	active   bool
	pos      r2.Vec
	rotation float64
	width    float64
	height   float64
	clr      color.Color
}

// Shape is a snapshot of an active element taken for drawing
type Shape struct {
	// Center of the element
	Center r2.Vec
	// Rotation counter clockwise in degrees
	Rotation float64
	Width    float64
	Height   float64
	Color    color.Color
}

// Ends returns the two end points of the shape's center line along its
// rotated width, for bones these are the joint positions
func (s Shape) Ends() (r2.Vec, r2.Vec) {
	rad := s.Rotation * math.Pi / 180
	half := r2.Scale(s.Width/2, r2.Vec{X: math.Cos(rad), Y: math.Sin(rad)})
	return r2.Sub(s.Center, half), r2.Add(s.Center, half)
}

// Size returns the surface dimensions
func (s *Scene) Size() (float64, float64) {
	s.Lock()
	defer s.Unlock()
	return s.width, s.height
}

// Resize changes the surface dimensions, the renderer picks up the new size
// on its next frame
func (s *Scene) Resize(width, height int) {
	s.Lock()
	defer s.Unlock()
	s.width = float64(width)
	s.height = float64(height)
}

// NewGroup adds a pose group to the scene
func (s *Scene) NewGroup() poseoverlay.Group {
	s.Lock()
	defer s.Unlock()

	g := &group{scene: s}
	s.groups = append(s.groups, g)
	return g
}

// NewJoint adds a joint to the pose group
func (s *Scene) NewJoint(g poseoverlay.Group) poseoverlay.Visual {
	s.Lock()
	defer s.Unlock()

	e := &element{scene: s}
	grp := g.(*group)
	grp.joints = append(grp.joints, e)
	return e
}

// NewBone adds a bone to the pose group
func (s *Scene) NewBone(g poseoverlay.Group) poseoverlay.Visual {
	s.Lock()
	defer s.Unlock()

	e := &element{scene: s}
	grp := g.(*group)
	grp.bones = append(grp.bones, e)
	return e
}

// Shapes returns the visible bones and joints of all active pose groups.
// Bones are listed before joints of the same pose so joints are painted on
// top.
func (s *Scene) Shapes() (bones, joints []Shape) {
	s.Lock()
	defer s.Unlock()

	for _, g := range s.groups {
		if !g.active {
			continue
		}

		for _, e := range g.bones {
			if e.active {
				bones = append(bones, e.shape())
			}
		}

		for _, e := range g.joints {
			if e.active {
				joints = append(joints, e.shape())
			}
		}
	}

	return bones, joints
}

// GroupCount returns the number of pose groups created
func (s *Scene) GroupCount() int {
	s.Lock()
	defer s.Unlock()
	return len(s.groups)
}

func (g *group) SetActive(active bool) {
	g.scene.Lock()
	g.active = active
	g.scene.Unlock()
}

func (e *element) SetActive(active bool) {
	e.scene.Lock()
	e.active = active
	e.scene.Unlock()
}

func (e *element) SetPosition(pos r2.Vec) {
	e.scene.Lock()
	e.pos = pos
	e.scene.Unlock()
}

func (e *element) SetRotation(degrees float64) {
	e.scene.Lock()
	e.rotation = degrees
	e.scene.Unlock()
}

func (e *element) SetSize(width, height float64) {
	e.scene.Lock()
	e.width = width
	e.height = height
	e.scene.Unlock()
}

func (e *element) SetColor(clr color.Color) {
	e.scene.Lock()
	e.clr = clr
	e.scene.Unlock()
}

func (e *element) shape() Shape {
	clr := e.clr
	if clr == nil {
		clr = poseoverlay.Green
	}

	return Shape{
		Center:   e.pos,
		Rotation: e.rotation,
		Width:    e.width,
		Height:   e.height,
		Color:    clr,
	}
}
