package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Builditluc/wiki-tui/document"
)

// buildSample builds:
//
//	root0 Paragraph
//	  root0/0 Text("a")
//	  root0/1 Bold
//	    root0/1/0 Text("b")
//	root1 Paragraph
//	  root1/0 Text("c")
func buildSample() (*document.Document, map[string]int) {
	d := document.New()
	idx := map[string]int{}

	idx["p0"] = d.AddNode(document.NoIndex, document.Paragraph{})
	idx["p0.text"] = d.AddNode(idx["p0"], document.Text{Contents: "a"})
	idx["p0.bold"] = d.AddNode(idx["p0"], document.Bold{})
	idx["p0.bold.text"] = d.AddNode(idx["p0.bold"], document.Text{Contents: "b"})
	idx["p1"] = d.AddNode(document.NoIndex, document.Paragraph{})
	idx["p1.text"] = d.AddNode(idx["p1"], document.Text{Contents: "c"})

	return d, idx
}

func TestChildrenOrder(t *testing.T) {
	d, idx := buildSample()
	var got []int
	for c := range d.Children(idx["p0"]) {
		got = append(got, c)
	}
	assert.Equal(t, []int{idx["p0.text"], idx["p0.bold"]}, got)
}

func TestDescendantsVisitsEveryNonRootNodeExactlyOnce(t *testing.T) {
	d, _ := buildSample()
	seen := map[int]int{}
	for r := range d.Roots() {
		for n := range d.Descendants(r) {
			seen[n]++
		}
	}
	for i := 0; i < d.Len(); i++ {
		n := d.Node(i)
		if n.IsRoot() {
			continue
		}
		assert.Equal(t, 1, seen[i], "node %d should be visited exactly once", i)
	}
}

func TestDescendantsExcludesSelf(t *testing.T) {
	d, idx := buildSample()
	for n := range d.Descendants(idx["p0"]) {
		assert.NotEqual(t, idx["p0"], n)
	}
}

func TestDoublyLinkedListConsistency(t *testing.T) {
	d, _ := buildSample()
	for i := 0; i < d.Len(); i++ {
		n := d.Node(i)
		if n.FirstChild != document.NoIndex {
			assert.Equal(t, document.NoIndex, d.Node(n.FirstChild).Prev)
		}
		if n.LastChild != document.NoIndex {
			assert.Equal(t, document.NoIndex, d.Node(n.LastChild).Next)
		}
		for c := range d.Children(i) {
			assert.Equal(t, i, d.Node(c).Parent)
		}
	}
}

func TestParentChildrenContainsNodeExactlyOnce(t *testing.T) {
	d, _ := buildSample()
	for i := 0; i < d.Len(); i++ {
		n := d.Node(i)
		if n.IsRoot() {
			continue
		}
		count := 0
		for c := range d.Children(n.Parent) {
			if c == i {
				count++
			}
		}
		assert.Equal(t, 1, count)
	}
}

func TestRootsFormChainViaNext(t *testing.T) {
	d, idx := buildSample()
	var roots []int
	for r := range d.Roots() {
		roots = append(roots, r)
	}
	require.Equal(t, []int{idx["p0"], idx["p1"]}, roots)
}
