// Package imaging provides the pixel-level building blocks of the vision
// pipeline.
//
// It defines Frame, an immutable RGB raster, and the operations the detectors
// need on top of it: grayscale conversion, histogram statistics (mean
// brightness, Otsu threshold), Laplacian sharpness, binary thresholding,
// rectangular dilation, external contour extraction, cropping and resizing.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Rectangles are half-open:
// Min is inclusive, Max is exclusive.
//
// # Grayscale
//
// Gray uses fixed-point BT.601 weights, (4899*R + 9617*G + 1868*B + 8192) >> 14,
// so intensity statistics match those of common camera pipelines bit for bit.
//
// # Thread Safety
//
// Frames are never mutated after construction and may be shared freely.
// FrameCache is safe for concurrent use. All other functions are stateless and
// allocate their outputs.
//
// # Error Handling
//
// Constructors return ErrInvalidFrame (wrapped with details) for empty frames
// or mismatched buffers. File loading errors are wrapped with context.
package imaging
