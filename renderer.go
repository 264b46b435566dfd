package poseoverlay

import (
	"errors"
	"fmt"
	"github.com/swdee/go-poseoverlay/topology"
	"github.com/swdee/go-poseoverlay/transform"
	"gonum.org/v1/gonum/spatial/r2"
	"image/color"
	"log/slog"
	"math"
)

// DefaultConfidenceThreshold is the minimum body part confidence used by
// Update for a joint to be shown
const DefaultConfidenceThreshold float32 = 0.5

var (
	// ErrConfigInvalid is returned when the renderer configuration or
	// skeleton topology is invalid
	ErrConfigInvalid = topology.ErrConfigInvalid
	// ErrDegenerateGeometry is returned for frames that can not be mapped
	// due to zero sized dimensions
	ErrDegenerateGeometry = transform.ErrDegenerateGeometry

	// Green is the default joint and bone color
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// Options defines the appearance and geometry used by the Renderer
type Options struct {
	// Geometry maps pose coordinates to the display region
	Geometry transform.Geometry
	// JointColor is the color of the joints
	JointColor color.Color
	// BoneColor is the color of the bones
	BoneColor color.Color
	// JointPalette optionally sets a color per joint index, overriding
	// JointColor for the indexes it covers
	JointPalette []color.Color
	// BonePalette optionally sets a color per bone link, overriding BoneColor
	// for the links it covers
	BonePalette []color.Color
	// JointSize is the width and height of a joint
	JointSize float64
	// BoneWidth is the thickness of a bone
	BoneWidth float64
	// JointCount if set is the number of joints the upstream detector
	// produces, the topology is checked against it
	JointCount int
	Logger     *slog.Logger
}

// DefaultOptions returns options for the given geometry with green joints
// and bones
func DefaultOptions(g transform.Geometry) Options {
	return Options{
		Geometry:   g,
		JointColor: Green,
		BoneColor:  Green,
		JointSize:  10,
		BoneWidth:  4,
	}
}

// poseVisual holds the visual elements of one pose slot
type poseVisual struct {
	group  Group
	joints *Pool[Visual]
	bones  *Pool[Visual]
	// positions are the last mapped surface positions of each joint
	positions []r2.Vec
}

// SetActive shows or hides the whole pose
func (pv *poseVisual) SetActive(active bool) {
	pv.group.SetActive(active)
}

// Stats reports the size of the pose group pool
type Stats struct {
	// Groups is the number of pose groups created
	Groups int
	// ActiveGroups is the number of pose groups shown
	ActiveGroups int
	// Frames is the number of frames rendered
	Frames int
}

// Renderer updates the pose overlay each frame.  It is not safe for
// concurrent use, UpdateFrame must be called from a single render loop.
type Renderer struct {
	backend  Backend
	topology *topology.Topology
	mapper   *transform.Mapper
	opts     Options
	log      *slog.Logger
	// groups is the pool of pose slots
	groups *Pool[*poseVisual]
	frames int
}

// New returns a Renderer drawing with backend and connecting joints as
// described by topo
func New(backend Backend, topo *topology.Topology, opts Options) (*Renderer, error) {

	if backend == nil {
		return nil, fmt.Errorf("%w: no rendering backend", ErrConfigInvalid)
	}

	if topo == nil {
		return nil, fmt.Errorf("%w: no topology loaded", ErrConfigInvalid)
	}

	mapper, err := transform.NewMapper(opts.Geometry)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	if opts.JointCount > 0 {
		if err := topo.Validate(opts.JointCount); err != nil {
			return nil, err
		}
	}

	if opts.JointColor == nil {
		opts.JointColor = Green
	}
	if opts.BoneColor == nil {
		opts.BoneColor = Green
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := &Renderer{
		backend:  backend,
		topology: topo,
		mapper:   mapper,
		opts:     opts,
		log:      opts.Logger,
	}

	r.groups = NewPool(r.newPoseVisual)

	return r, nil
}

// newPoseVisual is the factory for pose slots
func (r *Renderer) newPoseVisual(slot int) *poseVisual {

	g := r.backend.NewGroup()

	r.log.Debug("created pose group", "slot", slot)

	return &poseVisual{
		group: g,
		joints: NewPool(func(int) Visual {
			return r.backend.NewJoint(g)
		}),
		bones: NewPool(func(int) Visual {
			return r.backend.NewBone(g)
		}),
	}
}

// Update renders the poses using DefaultConfidenceThreshold
func (r *Renderer) Update(poses []HumanPose2D) error {
	return r.UpdateFrame(poses, DefaultConfidenceThreshold)
}

// UpdateFrame places the joints and bones of every pose, joints with a
// confidence below threshold are hidden along with any bone attached to them.
// If the surface can not be mapped to, the frame is skipped, the overlay is
// left unchanged and ErrDegenerateGeometry returned.
func (r *Renderer) UpdateFrame(poses []HumanPose2D, threshold float32) error {

	sw, sh := r.backend.Size()

	if err := transform.CheckSurface(sw, sh); err != nil {
		r.log.Warn("skipping pose overlay frame", "error", err)
		return err
	}

	if len(poses) == 0 {
		r.log.Debug("no poses in frame, hiding all pose groups",
			"groups", r.groups.Len())
	}

	if created := r.groups.EnsureSize(len(poses)); created > 0 {
		r.log.Debug("grew pose group pool", "created", created,
			"size", r.groups.Len())
	}

	for i := 0; i < r.groups.Len(); i++ {

		if i >= len(poses) {
			// hide unused slots, this also hides their joints and bones
			r.groups.SetActive(i, false)
			continue
		}

		pv := r.groups.Get(i)

		if len(poses[i].BodyParts) == 0 {
			r.log.Debug("pose has no body parts, hiding its joints and bones",
				"slot", i)
		}

		// joints must be placed before bones as bone visibility depends on
		// the joint active state
		r.updateJoints(i, pv, poses[i].BodyParts, threshold, sw, sh)
		r.updateBones(pv)

		r.groups.SetActive(i, true)
	}

	r.frames++

	return nil
}

// updateJoints positions and shows the joints of a pose slot
func (r *Renderer) updateJoints(slot int, pv *poseVisual, parts []BodyPart2D,
	threshold float32, sw, sh float64) {

	n := len(parts)

	// bone links must always reference a created joint
	if tc := r.topology.JointCount(); tc > n {
		n = tc
	}

	pv.joints.EnsureSize(n)

	for len(pv.positions) < pv.joints.Len() {
		pv.positions = append(pv.positions, r2.Vec{})
	}

	for j := 0; j < pv.joints.Len(); j++ {

		if j >= len(parts) || !(parts[j].Confidence >= threshold) {
			pv.joints.SetActive(j, false)
			continue
		}

		if !finite(parts[j].Coordinates) {
			r.log.Debug("hiding joint with invalid coordinates", "slot", slot,
				"joint", j)
			pv.joints.SetActive(j, false)
			continue
		}

		pos := r.mapper.Map(parts[j].Coordinates, sw, sh)
		pv.positions[j] = pos

		joint := pv.joints.Get(j)
		joint.SetPosition(pos)
		joint.SetSize(r.opts.JointSize, r.opts.JointSize)
		joint.SetColor(pick(r.opts.JointPalette, j, r.opts.JointColor))

		pv.joints.SetActive(j, true)
	}
}

// updateBones positions, rotates and shows the bones of a pose slot whose
// joints are both shown
func (r *Renderer) updateBones(pv *poseVisual) {

	pv.bones.EnsureSize(r.topology.Len())

	for k := 0; k < pv.bones.Len(); k++ {

		if k >= r.topology.Len() {
			pv.bones.SetActive(k, false)
			continue
		}

		link := r.topology.Link(k)

		if !pv.joints.Active(link.From) || !pv.joints.Active(link.To) {
			pv.bones.SetActive(k, false)
			continue
		}

		center, length, degrees := BonePlacement(pv.positions[link.From],
			pv.positions[link.To])

		bone := pv.bones.Get(k)
		bone.SetPosition(center)
		bone.SetRotation(degrees)
		bone.SetSize(length, r.opts.BoneWidth)
		bone.SetColor(pick(r.opts.BonePalette, k, r.opts.BoneColor))

		pv.bones.SetActive(k, true)
	}
}

// BonePlacement returns the midpoint, length and rotation in degrees of a
// bone drawn between two joint positions
func BonePlacement(from, to r2.Vec) (center r2.Vec, length, degrees float64) {

	dir := r2.Sub(to, from)

	center = r2.Scale(0.5, r2.Add(from, to))
	length = r2.Norm(dir)
	degrees = math.Atan2(dir.Y, dir.X) * 180 / math.Pi

	return center, length, degrees
}

// SetTopology replaces the skeleton topology.  All pose slots and their
// joints and bones are deactivated, the next frame lays them out again.
func (r *Renderer) SetTopology(topo *topology.Topology) error {

	if topo == nil {
		return fmt.Errorf("%w: no topology loaded", ErrConfigInvalid)
	}

	if r.opts.JointCount > 0 {
		if err := topo.Validate(r.opts.JointCount); err != nil {
			return err
		}
	}

	r.topology = topo

	for i := 0; i < r.groups.Len(); i++ {
		pv := r.groups.Get(i)

		for j := 0; j < pv.joints.Len(); j++ {
			pv.joints.SetActive(j, false)
		}
		for k := 0; k < pv.bones.Len(); k++ {
			pv.bones.SetActive(k, false)
		}

		r.groups.SetActive(i, false)
	}

	return nil
}

// Topology returns the skeleton topology in use
func (r *Renderer) Topology() *topology.Topology {
	return r.topology
}

// Stats returns the pose group pool counters
func (r *Renderer) Stats() Stats {
	return Stats{
		Groups:       r.groups.Len(),
		ActiveGroups: r.groups.ActiveCount(),
		Frames:       r.frames,
	}
}

// GroupActive returns true if the pose slot is shown
func (r *Renderer) GroupActive(slot int) bool {
	return r.groups.Active(slot)
}

// JointActive returns true if joint j of the pose slot is shown, which
// requires the pose slot to be shown too
func (r *Renderer) JointActive(slot, j int) bool {
	pv, ok := r.slot(slot)
	return ok && pv.joints.Active(j)
}

// BoneActive returns true if bone k of the pose slot is shown, which
// requires the pose slot to be shown too
func (r *Renderer) BoneActive(slot, k int) bool {
	pv, ok := r.slot(slot)
	return ok && pv.bones.Active(k)
}

// JointPosition returns the surface position of a shown joint
func (r *Renderer) JointPosition(slot, j int) (r2.Vec, bool) {
	pv, ok := r.slot(slot)
	if !ok || !pv.joints.Active(j) {
		return r2.Vec{}, false
	}
	return pv.positions[j], true
}

// slot returns the pose visual for a shown slot
func (r *Renderer) slot(i int) (*poseVisual, bool) {
	if !r.groups.Active(i) {
		return nil, false
	}
	return r.groups.Get(i), true
}

// pick returns the palette color at i falling back to def
func pick(palette []color.Color, i int, def color.Color) color.Color {
	if i < len(palette) && palette[i] != nil {
		return palette[i]
	}
	return def
}

// finite returns true if both coordinates are real numbers
func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// IsConfigError reports whether err is a configuration error that should
// abort initialisation
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigInvalid)
}
