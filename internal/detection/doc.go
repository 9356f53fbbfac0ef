// Package detection implements the stages of the frame analysis pipeline and
// the result types they produce.
//
// # Stages
//
//   - Faces and bodies: classical cascades (CascadeDetector), with an eye
//     cascade re-run inside each face to grade its confidence
//   - Objects: a grid-based deep network (ObjectDetector), decoded, filtered
//     at ScoreThreshold and de-duplicated with NMSBoxes
//   - Attributes: pixel-statistic heuristics per face (Analyze)
//   - Scene: mean-brightness lighting buckets (ClassifyScene)
//   - Text regions: Otsu binarization, horizontal dilation and contour
//     filtering (FindTextRegions)
//
// Run wraps a stage so that an error or panic becomes an absent value plus a
// Diagnostic instead of aborting the whole frame.
//
// # Coordinate System
//
// All boxes are in pixel coordinates of the analysed frame:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - BBox is top-left corner plus width and height
//
// Every Detection's Position is derived from its box center and the frame
// width with ClassifyPosition.
//
// # Confidence Scores
//
// Only the deep detector produces learned scores. Cascade hits carry fixed
// conventions: 0.9 for a face with two or more eyes, 0.7 for other faces and
// 0.6 for full-body fallbacks.
//
// # Limitations
//
// Gender, age and hair color are blunt heuristics on box shape, sharpness and
// mean color. They are kept stable for predictable descriptions, not for
// accuracy.
package detection
