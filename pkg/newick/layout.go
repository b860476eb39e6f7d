package newick

import "strconv"

// minDistanceDivisor keeps the x scale finite for star trees where every
// branch length is zero.
const minDistanceDivisor = 1e-6

// RootID is the id of the root node; children extend it with their
// child index, e.g. "root.0.1".
const RootID = "root"

// LayoutOptions control the pixel geometry of a layout pass.
type LayoutOptions struct {
	Width      float64 `json:"width"`      // horizontal span the deepest node is scaled to
	RowSpacing float64 `json:"rowSpacing"` // vertical distance between consecutive rows
}

// Coord is the computed position of one visible node.
type Coord struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Dist      float64 `json:"dist"` // cumulative branch length from the root
	Leaf      bool    `json:"leaf"`
	Collapsed bool    `json:"collapsed"`
}

// TreeLayout holds the result of a layout pass. The parsed tree itself
// is never written to, so one tree can be laid out many times with
// different options or collapse sets.
type TreeLayout struct {
	Coords        map[string]Coord `json:"coords"`
	MaxDistance   float64          `json:"maxDistance"`
	TotalHeight   float64          `json:"totalHeight"`
	RowNodes      []string         `json:"rowNodes"`      // ids in top-to-bottom row order
	VisibleLeaves []string         `json:"visibleLeaves"` // true leaves among RowNodes
}

// Layout assigns coordinates to every visible node of the tree. A node
// whose id is in collapsed is placed on a row of its own and its whole
// subtree is left out of RowNodes and VisibleLeaves; the subtree stays
// in the parsed tree, so expanding again reproduces the original rows.
func Layout(root *Node, opts LayoutOptions, collapsed map[string]bool) *TreeLayout {
	lay := &TreeLayout{Coords: make(map[string]Coord)}

	// Pass 1: cumulative distances over the whole tree, collapsed or not,
	// so the x scale does not shift when subtrees are hidden.
	lay.walkDist(root, RootID, 0)

	// Pass 2: rows bottom-up. Leaves and collapsed nodes take the next
	// row; internal nodes sit at the mean of their children.
	cursor := 0.0
	lay.assignRows(root, RootID, opts.RowSpacing, collapsed, &cursor)
	lay.TotalHeight = cursor

	// Pass 3: x from distance.
	div := lay.MaxDistance
	if div < minDistanceDivisor {
		div = minDistanceDivisor
	}
	scale := opts.Width / div
	for id, c := range lay.Coords {
		c.X = c.Dist * scale
		lay.Coords[id] = c
	}
	return lay
}

func (lay *TreeLayout) walkDist(n *Node, id string, parentDist float64) {
	dist := parentDist + n.Length
	if dist > lay.MaxDistance {
		lay.MaxDistance = dist
	}
	lay.Coords[id] = Coord{Dist: dist, Leaf: n.IsLeaf()}
	for i, c := range n.Children {
		lay.walkDist(c, childID(id, i), dist)
	}
}

func (lay *TreeLayout) assignRows(n *Node, id string, spacing float64, collapsed map[string]bool, cursor *float64) float64 {
	coord := lay.Coords[id]
	if n.IsLeaf() || collapsed[id] {
		coord.Y = *cursor
		coord.Collapsed = collapsed[id] && !n.IsLeaf()
		*cursor += spacing
		lay.Coords[id] = coord
		lay.RowNodes = append(lay.RowNodes, id)
		if n.IsLeaf() {
			lay.VisibleLeaves = append(lay.VisibleLeaves, id)
		} else {
			// Hidden descendants keep dist/x only.
			lay.dropRows(n, id)
		}
		return coord.Y
	}
	var sum float64
	for i, c := range n.Children {
		sum += lay.assignRows(c, childID(id, i), spacing, collapsed, cursor)
	}
	coord.Y = sum / float64(len(n.Children))
	lay.Coords[id] = coord
	return coord.Y
}

// dropRows clears row placement under a collapsed node so hidden nodes
// never leak into RowNodes consumers via stale y values.
func (lay *TreeLayout) dropRows(n *Node, id string) {
	for i, c := range n.Children {
		cid := childID(id, i)
		coord := lay.Coords[cid]
		coord.Y = 0
		lay.Coords[cid] = coord
		lay.dropRows(c, cid)
	}
}

func childID(parent string, i int) string {
	return parent + "." + strconv.Itoa(i)
}
