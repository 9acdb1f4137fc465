// Package document is the index-addressed semantic tree produced by
// htmlparser and consumed by render and viewport. It never mutates once
// built: nodes are appended to a flat arena and wired together with
// sibling/parent/child indices, never pointers, so the tree clones cheaply
// and serialises naturally.
package document

// NoIndex marks the absence of a sibling/parent/child link.
const NoIndex = -1

// Node is one entry in the document arena. Index is its permanent position;
// it is never reused for the life of the Document.
type Node struct {
	Index      int
	Parent     int // NoIndex for a root
	Prev       int // NoIndex if first child (or first root)
	Next       int // NoIndex if last child (or last root)
	FirstChild int // NoIndex if a leaf
	LastChild  int // NoIndex if a leaf
	Payload    Payload
}

// IsRoot reports whether n has no parent.
func (n Node) IsRoot() bool { return n.Parent == NoIndex }

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool { return n.FirstChild == NoIndex }

// Document is the immutable, append-only tree built by htmlparser.
type Document struct {
	nodes     []Node
	firstRoot int
	lastRoot  int
}

// New returns an empty Document ready for nodes to be appended to it.
func New() *Document {
	return &Document{firstRoot: NoIndex, lastRoot: NoIndex}
}

// Len returns the number of nodes in the document.
func (d *Document) Len() int { return len(d.nodes) }

// Node returns the node at idx. It panics if idx is out of range, matching
// the arena's invariant that every index handed out by AddNode remains
// valid for the document's lifetime.
func (d *Document) Node(idx int) Node { return d.nodes[idx] }

// Root returns the index of the first root node, or NoIndex if the
// document is empty.
func (d *Document) Root() int { return d.firstRoot }

// AddNode appends a new node carrying payload as a child of parent (or as
// a new root, if parent is NoIndex) and returns its index.
func (d *Document) AddNode(parent int, payload Payload) int {
	idx := len(d.nodes)
	node := Node{
		Index:      idx,
		Parent:     parent,
		Prev:       NoIndex,
		Next:       NoIndex,
		FirstChild: NoIndex,
		LastChild:  NoIndex,
		Payload:    payload,
	}

	if parent == NoIndex {
		if d.lastRoot == NoIndex {
			d.firstRoot = idx
		} else {
			last := d.nodes[d.lastRoot]
			last.Next = idx
			d.nodes[d.lastRoot] = last
			node.Prev = d.lastRoot
		}
		d.lastRoot = idx
	} else {
		p := d.nodes[parent]
		if p.LastChild == NoIndex {
			p.FirstChild = idx
		} else {
			sibling := d.nodes[p.LastChild]
			sibling.Next = idx
			d.nodes[p.LastChild] = sibling
			node.Prev = p.LastChild
		}
		p.LastChild = idx
		d.nodes[parent] = p
	}

	d.nodes = append(d.nodes, node)
	return idx
}

// LastDescendantIndex returns the index of the last node transitively
// reachable from idx (idx itself if it is a leaf), i.e. the end of the
// contiguous index range idx's subtree occupies. This holds because nodes
// are appended in pre-order during parsing.
func (d *Document) LastDescendantIndex(idx int) int {
	last := idx
	for child := d.nodes[idx].FirstChild; child != NoIndex; child = d.nodes[child].Next {
		if sub := d.LastDescendantIndex(child); sub > last {
			last = sub
		}
	}
	return last
}
