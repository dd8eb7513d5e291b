package treeview

import (
	"strings"

	"github.com/phanxgames/arbor"
)

// SortChildren re-orders the nodes of every container whose children changed
// since the last pass, ascending by item title. Titles are read fresh each
// time. Equal titles keep their current relative order. Returns the number
// of containers sorted.
func (tv *TreeView[K]) SortChildren() int {
	if len(tv.unsorted) == 0 {
		return 0
	}
	containers := tv.unsorted
	tv.unsorted = nil
	clear(tv.unsortedSet)

	sorted := 0
	for _, c := range containers {
		if c.IsDisposed() {
			continue
		}
		tv.sortContainer(c)
		sorted++
	}
	return sorted
}

func (tv *TreeView[K]) sortContainer(c *arbor.Widget) {
	titles := make(map[*arbor.Widget]string, c.NumChildren())
	for _, node := range c.Children() {
		id, ok := tv.registry.Item(RoleNode, node.ID)
		if !ok {
			panic(violation("sort", node.Name, RoleNode, "container holds an untracked widget"))
		}
		titles[node] = tv.mustItem("sort", id).Title()
	}
	c.SortChildren(func(a, b *arbor.Widget) int {
		return strings.Compare(titles[a], titles[b])
	})
}
