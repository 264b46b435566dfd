package poseoverlay

import (
	"gonum.org/v1/gonum/spatial/r2"
	"image/color"
)

// Visual is a single joint or bone element drawn on a rendering surface.
// Positions are in surface local coordinates with y pointing up.
type Visual interface {
	Activator
	// SetPosition sets the anchor (center) of the element
	SetPosition(pos r2.Vec)
	// SetRotation sets the counter clockwise rotation in degrees
	SetRotation(degrees float64)
	// SetSize sets the element width and height.  For bones the width is the
	// length between joints.
	SetSize(width, height float64)
	SetColor(clr color.Color)
}

// Group is the container holding the joints and bones of one pose.
// Deactivating a group hides everything inside it.
type Group interface {
	Activator
}

// Backend creates visual elements on a rendering surface
type Backend interface {
	// Size returns the current surface dimensions in pixels
	Size() (width, height float64)
	NewGroup() Group
	NewJoint(g Group) Visual
	NewBone(g Group) Visual
}
