// Package spatialindex implements a bounded quadtree over axis-aligned
// rectangles, used by the snap/clean and split stages to avoid
// quadratic scans over the base cadastral dataset. Built once per
// pipeline invocation, read-only thereafter — there is no concurrent
// mutation to guard against.
package spatialindex

import "github.com/rawblock/cadastral-engine/internal/geometry"

// ID identifies an item stored in the index. Callers own the mapping
// from ID back to their domain object; the index only ever hands back
// IDs and rectangles.
type ID int

type item struct {
	id   ID
	rect geometry.Rectangle
}

// Quadtree is a bounded, read-only spatial index over (ID, Rectangle)
// pairs.
type Quadtree struct {
	root *node
}

type node struct {
	bounds   geometry.Rectangle
	items    []item
	children [4]*node
	leaf     bool
	maxItems int
}

// New builds a quadtree from the given (id, rect) pairs. The max-items-
// per-quad parameter is clamp(n/20, 100, 500), per spec.
func New(items []struct {
	ID   ID
	Rect geometry.Rectangle
}) *Quadtree {
	n := len(items)
	maxItems := n / 20
	if maxItems < 100 {
		maxItems = 100
	}
	if maxItems > 500 {
		maxItems = 500
	}

	if n == 0 {
		return &Quadtree{root: &node{leaf: true, maxItems: maxItems}}
	}

	bounds := items[0].Rect
	converted := make([]item, 0, n)
	for _, it := range items {
		bounds = bounds.Union(it.Rect)
		converted = append(converted, item{id: it.ID, rect: it.Rect})
	}

	root := &node{bounds: bounds, leaf: true, maxItems: maxItems}
	for _, it := range converted {
		root.insert(it, 0)
	}
	return &Quadtree{root: root}
}

const maxDepth = 24

func (n *node) insert(it item, depth int) {
	if n.leaf {
		n.items = append(n.items, it)
		if len(n.items) > n.maxItems && depth < maxDepth && n.bounds.Width() > 0 && n.bounds.Height() > 0 {
			n.subdivide()
		}
		return
	}
	// Push the item down into the one child that fully contains it, so
	// overlap queries on a single child never miss a boundary-straddling
	// item. Anything that straddles a child boundary stays at this level.
	for _, c := range n.children {
		if rectFullyInside(it.rect, c.bounds) {
			c.insert(it, depth+1)
			return
		}
	}
	n.items = append(n.items, it)
}

func rectFullyInside(r, bounds geometry.Rectangle) bool {
	return r.MinX >= bounds.MinX && r.MaxX <= bounds.MaxX && r.MinY >= bounds.MinY && r.MaxY <= bounds.MaxY
}

func (n *node) subdivide() {
	midX := (n.bounds.MinX + n.bounds.MaxX) / 2
	midY := (n.bounds.MinY + n.bounds.MaxY) / 2

	n.children[0] = &node{bounds: geometry.Rectangle{MinX: n.bounds.MinX, MinY: n.bounds.MinY, MaxX: midX, MaxY: midY}, leaf: true, maxItems: n.maxItems}
	n.children[1] = &node{bounds: geometry.Rectangle{MinX: midX, MinY: n.bounds.MinY, MaxX: n.bounds.MaxX, MaxY: midY}, leaf: true, maxItems: n.maxItems}
	n.children[2] = &node{bounds: geometry.Rectangle{MinX: n.bounds.MinX, MinY: midY, MaxX: midX, MaxY: n.bounds.MaxY}, leaf: true, maxItems: n.maxItems}
	n.children[3] = &node{bounds: geometry.Rectangle{MinX: midX, MinY: midY, MaxX: n.bounds.MaxX, MaxY: n.bounds.MaxY}, leaf: true, maxItems: n.maxItems}

	items := n.items
	n.items = nil
	n.leaf = false
	for _, it := range items {
		n.insert(it, 0)
	}
}

// IDsOverlapping returns the set of item IDs whose rectangle overlaps
// the query rectangle.
func (q *Quadtree) IDsOverlapping(rect geometry.Rectangle) []ID {
	seen := make(map[ID]struct{})
	var out []ID
	q.root.query(rect, seen, &out)
	return out
}

func (n *node) query(rect geometry.Rectangle, seen map[ID]struct{}, out *[]ID) {
	if !n.bounds.Overlaps(rect) && !n.leaf {
		return
	}
	for _, it := range n.items {
		if it.rect.Overlaps(rect) {
			if _, ok := seen[it.id]; !ok {
				seen[it.id] = struct{}{}
				*out = append(*out, it.id)
			}
		}
	}
	if n.leaf {
		return
	}
	for _, c := range n.children {
		if c.bounds.Overlaps(rect) {
			c.query(rect, seen, out)
		}
	}
}
