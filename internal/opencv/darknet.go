//go:build gocv

package opencv

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"
	"os"

	"gocv.io/x/gocv"

	"github.com/ironsheep/vision-mcp/internal/detection"
)

// darknet is a detection.Network backed by an OpenCV dnn.Net.
type darknet struct {
	net     gocv.Net
	outputs []string
	size    image.Point
}

// OpenDarknet reads a darknet weights/cfg pair and resolves its output
// layers. The network runs on the default backend and CPU target.
func OpenDarknet(weights, cfg string) (detection.Network, error) {
	for _, path := range []string{weights, cfg} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("model file not accessible: %w", err)
		}
	}

	net := gocv.ReadNet(weights, cfg)
	if net.Empty() {
		return nil, fmt.Errorf("failed to read darknet model %s", weights)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	names := net.GetLayerNames()
	var outputs []string
	for _, id := range net.GetUnconnectedOutLayers() {
		// Layer ids are 1-based.
		if id < 1 || id > len(names) {
			net.Close()
			return nil, fmt.Errorf("output layer id %d out of range (%d layers)", id, len(names))
		}
		outputs = append(outputs, names[id-1])
	}
	if len(outputs) == 0 {
		net.Close()
		return nil, fmt.Errorf("darknet model %s has no output layers", weights)
	}

	return &darknet{
		net:     net,
		outputs: outputs,
		size:    image.Pt(detection.DefaultInputSize, detection.DefaultInputSize),
	}, nil
}

func (d *darknet) InputSize() image.Point {
	return d.size
}

// Forward runs the network and flattens every output layer into rows.
func (d *darknet) Forward(blob *detection.Blob) ([][]float32, error) {
	input, err := blobToMat(blob)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	d.net.SetInput(input, "")
	mats := d.net.ForwardLayers(d.outputs)
	defer func() {
		for i := range mats {
			mats[i].Close()
		}
	}()

	var rows [][]float32
	for _, m := range mats {
		data, err := m.DataPtrFloat32()
		if err != nil {
			return nil, fmt.Errorf("failed to read output layer: %w", err)
		}
		cols := m.Cols()
		if cols <= 0 {
			continue
		}
		for r := 0; r < m.Rows(); r++ {
			row := make([]float32, cols)
			copy(row, data[r*cols:(r+1)*cols])
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (d *darknet) Close() error {
	return d.net.Close()
}

// blobToMat copies a 1x3xHxW float32 tensor into a gocv Mat.
func blobToMat(blob *detection.Blob) (gocv.Mat, error) {
	raw := make([]byte, 4*len(blob.Data))
	for i, v := range blob.Data {
		binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(v))
	}
	m, err := gocv.NewMatWithSizesFromBytes([]int{1, 3, blob.Height, blob.Width}, gocv.MatTypeCV32F, raw)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to build input tensor: %w", err)
	}
	return m, nil
}
