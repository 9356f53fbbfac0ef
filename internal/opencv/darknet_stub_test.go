//go:build !gocv

package opencv

import (
	"errors"
	"testing"
)

func TestOpenDarknet_Unavailable(t *testing.T) {
	net, err := OpenDarknet("yolov3-tiny.weights", "yolov3-tiny.cfg")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("got %v, want ErrUnavailable", err)
	}
	if net != nil {
		t.Error("expected no network")
	}
}
