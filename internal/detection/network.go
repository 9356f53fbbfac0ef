package detection

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/vision-mcp/internal/imaging"
)

// DefaultInputSize is the square input resolution of the deep detector.
const DefaultInputSize = 416

// ErrMalformedOutput is returned when network output cannot be decoded.
var ErrMalformedOutput = errors.New("malformed network output")

// Blob is a network input tensor in NCHW layout with a batch of one: three
// planes (R, G, B) of Width*Height float32 samples scaled to [0,1].
type Blob struct {
	Width  int
	Height int
	Data   []float32
}

// NewBlob resizes a frame to width x height and packs it into a Blob.
func NewBlob(frame *imaging.Frame, width, height int) (*Blob, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("%w: empty frame", imaging.ErrInvalidFrame)
	}
	resized, err := frame.Resize(width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to resize frame for network input: %w", err)
	}

	plane := width * height
	blob := &Blob{Width: width, Height: height, Data: make([]float32, 3*plane)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b := resized.RGB(x, y)
			i := y*width + x
			blob.Data[i] = float32(r) / 255
			blob.Data[plane+i] = float32(g) / 255
			blob.Data[2*plane+i] = float32(b) / 255
		}
	}
	return blob, nil
}

// Network runs a grid-based single-pass detector.
//
// Forward returns one row per grid cell and anchor across all output layers:
// [cx, cy, w, h, objectness, score_0, score_1, ...] with box values
// normalized to the input size. Implementations need not be safe for
// concurrent use.
type Network interface {
	InputSize() image.Point
	Forward(blob *Blob) ([][]float32, error)
	Close() error
}

// candidate is a decoded box before suppression.
type candidate struct {
	box     BBox
	score   float64
	classID int
}

// rowHeader is the number of leading values before the class scores.
const rowHeader = 5

// decodeRows converts raw rows into candidates scoring above scoreThreshold,
// in pixel coordinates of a frameW x frameH frame.
func decodeRows(rows [][]float32, frameW, frameH int, scoreThreshold float64) ([]candidate, error) {
	var out []candidate
	for i, row := range rows {
		if len(row) <= rowHeader {
			return nil, fmt.Errorf("%w: row %d has %d values", ErrMalformedOutput, i, len(row))
		}

		scores := row[rowHeader:]
		classID := 0
		for c := 1; c < len(scores); c++ {
			if scores[c] > scores[classID] {
				classID = c
			}
		}
		score := float64(scores[classID])
		if !(score > scoreThreshold) {
			continue
		}

		w, h := float64(frameW), float64(frameH)
		centerX := int(float64(row[0]) * w)
		centerY := int(float64(row[1]) * h)
		bw := int(float64(row[2]) * w)
		bh := int(float64(row[3]) * h)
		out = append(out, candidate{
			box: BBox{
				X: int(float64(centerX) - float64(bw)/2),
				Y: int(float64(centerY) - float64(bh)/2),
				W: bw,
				H: bh,
			},
			score:   score,
			classID: classID,
		})
	}
	return out, nil
}

// Decode turns raw network rows into labeled detections for a frameW x
// frameH frame.
//
// Rows are reduced to their best class, filtered at ScoreThreshold,
// suppressed with NMSBoxes at NMSThreshold, clamped to the frame and
// labeled from COCOLabels. Boxes that end up entirely outside the frame are
// dropped. Output is in descending confidence order.
func Decode(rows [][]float32, frameW, frameH int) ([]Detection, error) {
	cands, err := decodeRows(rows, frameW, frameH, ScoreThreshold)
	if err != nil {
		return nil, err
	}

	boxes := make([]BBox, len(cands))
	scores := make([]float64, len(cands))
	for i, c := range cands {
		boxes[i] = c.box
		scores[i] = c.score
	}

	var dets []Detection
	for _, i := range NMSBoxes(boxes, scores, ScoreThreshold, NMSThreshold) {
		box := cands[i].box.Clamp(frameW, frameH)
		if box.Area() == 0 {
			continue
		}
		dets = append(dets, NewDetection(Label(cands[i].classID), box, cands[i].score, frameW))
	}
	return dets, nil
}

// SplitPeople routes person detections to people and everything else to
// objects, preserving order.
func SplitPeople(dets []Detection) (people, objects []Detection) {
	people, objects = []Detection{}, []Detection{}
	for _, d := range dets {
		if d.Label == LabelPerson {
			people = append(people, d)
		} else {
			objects = append(objects, d)
		}
	}
	return people, objects
}
