//go:build !gocv

package opencv

import "github.com/ironsheep/vision-mcp/internal/detection"

// OpenDarknet always fails without the gocv build tag.
func OpenDarknet(weights, cfg string) (detection.Network, error) {
	return nil, ErrUnavailable
}
