package dataset

import (
	"sort"

	"pointmap/internal/scatter"
)

// GroupSummary aggregates the points sharing one secondary tag.
type GroupSummary struct {
	Tag     string
	Title   string
	Primary []string // distinct primary tags, sorted
	Count   int
	MeanX   float64
	MeanY   float64
}

// Summarize groups pts by secondary tag, sorted by tag.
func Summarize(pts []scatter.Point) []GroupSummary {
	byTag := make(map[string]*GroupSummary)
	primaries := make(map[string]map[string]struct{})
	for _, p := range pts {
		g, ok := byTag[p.Secondary]
		if !ok {
			g = &GroupSummary{Tag: p.Secondary}
			byTag[p.Secondary] = g
			primaries[p.Secondary] = make(map[string]struct{})
		}
		if g.Title == "" {
			g.Title = p.GroupTitle
		}
		g.Count++
		g.MeanX += p.X
		g.MeanY += p.Y
		if p.Primary != "" {
			primaries[p.Secondary][p.Primary] = struct{}{}
		}
	}
	out := make([]GroupSummary, 0, len(byTag))
	for tag, g := range byTag {
		g.MeanX /= float64(g.Count)
		g.MeanY /= float64(g.Count)
		for pr := range primaries[tag] {
			g.Primary = append(g.Primary, pr)
		}
		sort.Strings(g.Primary)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// Tags returns the distinct secondary tags of pts in first-seen order.
func Tags(pts []scatter.Point) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range pts {
		if _, ok := seen[p.Secondary]; ok {
			continue
		}
		seen[p.Secondary] = struct{}{}
		out = append(out, p.Secondary)
	}
	return out
}
