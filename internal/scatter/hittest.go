package scatter

import "math"

// HitTest returns the index of the point nearest to at among the points that
// are both eligible under filter and not culled by the renderer, provided it
// lies within radius. Equal distances resolve to the earliest point.
func HitTest(pts []Point, vp Viewport, filter string, at Vec, radius, slack float64) (int, bool) {
	best := -1
	bestD := math.Inf(1)
	for i, p := range pts {
		if filter != "" && p.Secondary != filter {
			continue
		}
		s := vp.Project(p)
		if !vp.InView(s, slack) {
			continue
		}
		d := s.Dist(at)
		if d <= radius && d < bestD {
			best, bestD = i, d
		}
	}
	return best, best >= 0
}
