package opencv

import "errors"

// ErrUnavailable is returned when the binary was built without the gocv
// backend.
var ErrUnavailable = errors.New("opencv backend not compiled in (build with -tags gocv)")
