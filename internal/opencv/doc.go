// Package opencv binds the detectors to OpenCV through gocv.
//
// The native backend is compiled only with the gocv build tag, which requires
// OpenCV with the objdetect and dnn modules installed. With the tag,
// OpenCascade wraps gocv.CascadeClassifier and OpenDarknet opens the darknet
// object detector.
//
// Without the tag OpenCascade falls back to the pure-Go evaluator in
// internal/cascade, and OpenDarknet always fails with ErrUnavailable so the
// vision engine runs cascade-only.
//
// Build with the native backend:
//
//	go build -tags gocv ./cmd/vision-mcp
package opencv
