// Package cascade evaluates boosted Haar feature cascades in pure Go.
//
// It reads the XML files written by opencv_traincascade (the layout shipped
// with the stock frontal-face, eye and full-body models) and runs the sliding
// window detector over an image pyramid. Builds with the gocv tag run the
// same files on OpenCV instead; this evaluator serves the other builds.
//
// # Evaluation
//
// Every window is normalized by the standard deviation of its interior
// (the window shrunk by one pixel on each side). Each stage sums the leaf
// values of its weak classifiers and rejects the window when the sum falls
// below the stage threshold, so most windows are discarded after a few cheap
// stages. Rotated (tilted) features are supported through a 45-degree
// summed-area table built only when the cascade needs one.
//
// # Grouping
//
// Raw window hits are clustered by GroupRectangles. A detection needs more
// than Options.MinNeighbors overlapping hits; MinNeighbors of zero returns
// the raw hits.
//
// # Thread Safety
//
// A loaded Cascade is immutable. DetectMultiScale allocates all scan state
// per call and may run concurrently on the same Cascade.
package cascade
