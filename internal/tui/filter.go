package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"

	"pointmap/internal/dataset"
)

// filterItem is one sidebar entry; an empty tag is the "All" entry.
type filterItem struct {
	tag, title, desc string
}

func (f filterItem) Title() string       { return f.title }
func (f filterItem) Description() string { return f.desc }
func (f filterItem) FilterValue() string { return f.tag + " " + f.title }

// filterItems lists "All", then every secondary tag of the palette, then tags
// found only in the data.
func (m *Model) filterItems() []list.Item {
	counts := make(map[string]int)
	for _, p := range m.ctrl.Points() {
		counts[p.Secondary]++
	}
	pal := m.opts.Theme.Palette
	noun := m.noun()

	items := []list.Item{filterItem{title: "All", desc: fmt.Sprintf("%d %s", len(m.ctrl.Points()), noun)}}
	seen := make(map[string]bool)
	add := func(tag string) {
		if seen[tag] || tag == "" {
			return
		}
		seen[tag] = true
		title := tag
		if l := pal.Label(tag); l != tag {
			title = tag + " " + l
		}
		items = append(items, filterItem{tag: tag, title: title, desc: fmt.Sprintf("%d %s", counts[tag], noun)})
	}
	for _, tag := range m.opts.Theme.SecondaryOrder {
		add(tag)
	}
	for _, tag := range dataset.Tags(m.ctrl.Points()) {
		add(tag)
	}
	return items
}

// groupTags lists the secondary tags present in the data, palette order
// first.
func (m Model) groupTags() []string {
	tags := dataset.Tags(m.ctrl.Points())
	present := make(map[string]bool, len(tags))
	for _, tag := range tags {
		present[tag] = tag != ""
	}
	var out []string
	for _, tag := range m.opts.Theme.SecondaryOrder {
		if present[tag] {
			out = append(out, tag)
			delete(present, tag)
		}
	}
	for _, tag := range tags {
		if present[tag] {
			out = append(out, tag)
			delete(present, tag)
		}
	}
	return out
}

// toggleGroupFilter filters to tag, or clears the filter if tag is active.
func (m *Model) toggleGroupFilter(tag string) {
	if m.ctrl.State().Filter == tag {
		m.ctrl.ClearFilter()
		m.status = "filter: all"
	} else {
		m.ctrl.SetFilter(tag)
		m.status = "filter: " + tag
		if l := m.opts.Theme.Palette.Label(tag); l != tag {
			m.status += " " + l
		}
	}
	m.refreshFilterItems()
}

func (m *Model) refreshFilterItems() {
	items := m.filterItems()
	m.l.SetItems(items)
	cur := m.ctrl.State().Filter
	for i, it := range items {
		if it.(filterItem).tag == cur {
			m.l.Select(i)
			break
		}
	}
}

// applySelectedFilter sets the filter from the highlighted sidebar entry.
func (m *Model) applySelectedFilter() {
	it, ok := m.l.SelectedItem().(filterItem)
	if !ok {
		return
	}
	if it.tag == "" {
		m.ctrl.ClearFilter()
		m.status = "filter: all"
		return
	}
	m.ctrl.SetFilter(it.tag)
	m.status = "filter: " + it.title
}

func (m Model) noun() string {
	if m.opts.Noun == "" {
		return "points"
	}
	return m.opts.Noun
}
