package poseoverlay

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// BodyPart2D is a single detected joint in input image coordinates
type BodyPart2D struct {
	// Index of the body part in the detector's joint ordering
	Index int
	// Coordinates of the body part in input image pixel space, origin top left
	Coordinates r2.Vec
	// Confidence of the detection between 0 and 1
	Confidence float32
}

// HumanPose2D is a single detected person made up of body parts
type HumanPose2D struct {
	// Index of the detected pose
	Index int
	// BodyParts ordered by the detector's joint ordering
	BodyParts []BodyPart2D
}

// KeyPoint is a pose keypoint as produced by YOLOv8-pose post processing
type KeyPoint struct {
	X     int
	Y     int
	Score float32
}

// PosesFromKeyPoints converts the keypoints of all detected objects into
// poses for rendering
func PosesFromKeyPoints(keyPoints [][]KeyPoint) []HumanPose2D {

	poses := make([]HumanPose2D, len(keyPoints))

	for i, kps := range keyPoints {
		parts := make([]BodyPart2D, len(kps))

		for j, kp := range kps {
			parts[j] = BodyPart2D{
				Index:       j,
				Coordinates: r2.Vec{X: float64(kp.X), Y: float64(kp.Y)},
				Confidence:  kp.Score,
			}
		}

		poses[i] = HumanPose2D{
			Index:     i,
			BodyParts: parts,
		}
	}

	return poses
}
