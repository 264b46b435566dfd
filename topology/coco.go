package topology

/* COCO keypoints
0: Nose
1: Left Eye
2: Right Eye
3: Left Ear
4: Right Ear
5: Left Shoulder
6: Right Shoulder
7: Left Elbow
8: Right Elbow
9: Left Wrist
10: Right Wrist
11: Left Hip
12: Right Hip
13: Left Knee
14: Right Knee
15: Left Ankle
16: Right Ankle
*/

// COCOKeyPoints is the number of keypoints in a COCO skeleton
const COCOKeyPoints = 17

// cocoLinks are ordered legs first, then torso, arms and head so the limb
// palette in the render package lines up with them
var cocoLinks = []BoneLink{
	{15, 13}, {13, 11}, {16, 14}, {14, 12}, {11, 12},
	{5, 11}, {6, 12}, {5, 6}, {5, 7}, {6, 8},
	{7, 9}, {8, 10}, {1, 2}, {0, 1}, {0, 2},
	{1, 3}, {2, 4}, {3, 5}, {4, 6},
}

// COCO17 returns the 19 bone skeleton used by models trained on the COCO
// keypoints dataset, such as YOLOv8-pose
func COCO17() *Topology {
	t, err := New(cocoLinks)

	if err != nil {
		// impossible to reach here
		panic(err)
	}

	return t
}
