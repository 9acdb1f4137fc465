package document

import "iter"

// Children returns a lazy, restartable sequence of the direct children of
// idx, in order.
func (d *Document) Children(idx int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for child := d.nodes[idx].FirstChild; child != NoIndex; child = d.nodes[child].Next {
			if !yield(child) {
				return
			}
		}
	}
}

// Descendants returns a lazy pre-order depth-first traversal of every node
// transitively reachable from idx, not including idx itself. It relies on
// nodes being appended in pre-order during parsing: the subtree rooted at
// idx occupies the contiguous range (idx, LastDescendantIndex(idx)].
func (d *Document) Descendants(idx int) iter.Seq[int] {
	return func(yield func(int) bool) {
		last := d.LastDescendantIndex(idx)
		for i := idx + 1; i <= last; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// Roots returns a lazy sequence of every root node index, in document order.
func (d *Document) Roots() iter.Seq[int] {
	return func(yield func(int) bool) {
		for r := d.firstRoot; r != NoIndex; r = d.nodes[r].Next {
			if !yield(r) {
				return
			}
		}
	}
}
