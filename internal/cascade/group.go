package cascade

import "image"

// groupEps is the relative tolerance for treating two raw hits as the same
// object.
const groupEps = 0.2

// GroupRectangles clusters near-identical rectangles and replaces each
// cluster by its average.
//
// Two rectangles are similar when each of their four edges differs by at most
// eps*(min widths + min heights)/2; clusters are the transitive closure of
// that relation. A cluster survives only with more than minNeighbors
// members, and a surviving cluster lying inside a stronger one (grown by eps
// of its size) is dropped. A minNeighbors of zero or less returns rects
// unchanged.
//
// Results are ordered by each cluster's first member in rects.
func GroupRectangles(rects []image.Rectangle, minNeighbors int, eps float64) []image.Rectangle {
	if minNeighbors <= 0 || len(rects) == 0 {
		return rects
	}

	labels, nclasses := partition(rects, eps)

	sums := make([][4]float64, nclasses)
	counts := make([]int, nclasses)
	for i, r := range rects {
		c := labels[i]
		sums[c][0] += float64(r.Min.X)
		sums[c][1] += float64(r.Min.Y)
		sums[c][2] += float64(r.Dx())
		sums[c][3] += float64(r.Dy())
		counts[c]++
	}

	avg := make([]image.Rectangle, nclasses)
	for c, s := range sums {
		k := 1 / float64(counts[c])
		x, y := roundInt(s[0]*k), roundInt(s[1]*k)
		avg[c] = image.Rect(x, y, x+roundInt(s[2]*k), y+roundInt(s[3]*k))
	}

	var out []image.Rectangle
	for i, r1 := range avg {
		n1 := counts[i]
		if n1 <= minNeighbors {
			continue
		}

		dropped := false
		for j, r2 := range avg {
			n2 := counts[j]
			if j == i || n2 <= minNeighbors {
				continue
			}
			dx := roundInt(float64(r2.Dx()) * eps)
			dy := roundInt(float64(r2.Dy()) * eps)
			if r1.Min.X >= r2.Min.X-dx && r1.Min.Y >= r2.Min.Y-dy &&
				r1.Max.X <= r2.Max.X+dx && r1.Max.Y <= r2.Max.Y+dy &&
				(n2 > max(3, n1) || n1 < 3) {
				dropped = true
				break
			}
		}
		if !dropped {
			out = append(out, r1)
		}
	}
	return out
}

// similar reports whether two rectangles differ by at most
// eps*(min widths + min heights)/2 on every edge.
func similar(a, b image.Rectangle, eps float64) bool {
	delta := eps * float64(min(a.Dx(), b.Dx())+min(a.Dy(), b.Dy())) * 0.5
	return absf(a.Min.X-b.Min.X) <= delta && absf(a.Min.Y-b.Min.Y) <= delta &&
		absf(a.Max.X-b.Max.X) <= delta && absf(a.Max.Y-b.Max.Y) <= delta
}

func absf(v int) float64 {
	if v < 0 {
		v = -v
	}
	return float64(v)
}

// partition labels the equivalence classes of the similarity relation with a
// union-find. Labels are numbered in order of first appearance.
func partition(rects []image.Rectangle, eps float64) ([]int, int) {
	parent := make([]int, len(rects))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	for i := range rects {
		for j := 0; j < i; j++ {
			if similar(rects[i], rects[j], eps) {
				ri, rj := find(i), find(j)
				if ri != rj {
					parent[ri] = rj
				}
			}
		}
	}

	labels := make([]int, len(rects))
	classOf := make(map[int]int)
	for i := range rects {
		root := find(i)
		c, ok := classOf[root]
		if !ok {
			c = len(classOf)
			classOf[root] = c
		}
		labels[i] = c
	}
	return labels, len(classOf)
}
