/*
go-poseoverlay renders detected 2D human body poses as an overlay of joints
and connecting bones on a display surface.

Pose coordinates are computed against the input image given to a pose
estimation model.  They are mapped into display space by the transform
package, honouring offsets, uniform scaling, a vertical flip and optional
horizontal mirroring, then fitted and centered on a rendering surface which
may differ in resolution and aspect ratio from both the input image and
display region.

The Renderer keeps a pool of reusable visual elements, one skeleton group per
detected pose with joints and bones inside each, and updates their position,
rotation, size, colour and visibility every frame.  Elements are never freed,
surplus slots are deactivated and reused on later frames.

Visual elements are provided by a Backend.  The render subpackage contains a
pure Go Canvas rasterised with golang.org/x/image/vector, the render/mat
subpackage draws onto a GoCV Mat and requires OpenCV.

See example code and usage in the example subdirectory.
*/
package poseoverlay
