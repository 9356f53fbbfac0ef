// Package vision wires the detectors into one frame-analysis engine.
//
// An Engine is built from loaded models. The cascades are mandatory; the
// deep object detector is optional and picks one of two variants at
// construction: cascade-only, or cascade plus deep detector. The variant
// never changes for the life of the engine.
//
// # Pipeline
//
// Detect runs these stages on one frame:
//   - faces: face cascade, eye check, then per-face attributes
//   - objects: deep detector, split into people and objects
//   - bodies: body cascade, only without the deep detector and with no faces
//   - text: text-region heuristic
//   - scene: brightness bucket
//
// A stage that fails or panics contributes nothing; the failure is logged
// and listed in Result.Diagnostics. Detect itself never fails.
//
// An Engine may be shared by goroutines. Deep forward passes are serialized.
package vision
