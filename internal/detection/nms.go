package detection

import "sort"

// Thresholds for the deep detector's post-processing.
const (
	ScoreThreshold = 0.15
	NMSThreshold   = 0.5
)

// NMSBoxes performs greedy non-maximum suppression and returns the indices of
// the kept boxes in descending score order.
//
// Boxes scoring at or below scoreThreshold are ignored. The remaining boxes
// are visited from the highest score down (ties keep input order); a box is
// kept unless its IoU with an already kept box exceeds iouThreshold.
// Suppression is class-agnostic.
func NMSBoxes(boxes []BBox, scores []float64, scoreThreshold, iouThreshold float64) []int {
	order := make([]int, 0, len(boxes))
	for i := range boxes {
		if i < len(scores) && scores[i] > scoreThreshold {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	var kept []int
	for _, idx := range order {
		keep := true
		for _, k := range kept {
			if IoU(boxes[idx], boxes[k]) > iouThreshold {
				keep = false
				break
			}
		}
		if keep {
			kept = append(kept, idx)
		}
	}
	return kept
}
