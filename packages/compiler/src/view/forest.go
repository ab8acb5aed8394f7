package view

// Tree is a view node with its ordered children. Conditional and repeating
// trees own exactly the subtree they wrap.
type Tree struct {
	Node     Node
	Children []*Tree
}

// NewTree creates a new Tree
func NewTree(node Node, children []*Tree) *Tree {
	return &Tree{Node: node, Children: children}
}

// Forest is the ordered sequence of trees produced by one template compile
type Forest struct {
	Trees []*Tree
}

// NewForest creates a new Forest
func NewForest(trees []*Tree) *Forest {
	return &Forest{Trees: trees}
}

// Walk visits every tree depth-first in source order. Returning false from
// fn skips the children of that tree.
func (f *Forest) Walk(fn func(tree *Tree, depth int) bool) {
	walkTrees(f.Trees, 0, fn)
}

func walkTrees(trees []*Tree, depth int, fn func(tree *Tree, depth int) bool) {
	for _, t := range trees {
		if fn(t, depth) {
			walkTrees(t.Children, depth+1, fn)
		}
	}
}

// DomNodesCount sums the DOM node counts of every node in the forest
func (f *Forest) DomNodesCount() int {
	total := 0
	f.Walk(func(tree *Tree, _ int) bool {
		total += tree.Node.DomNodesCount()
		return true
	})
	return total
}

// Components returns the component nodes of the forest in source order
func (f *Forest) Components() []*ComponentNode {
	var out []*ComponentNode
	f.Walk(func(tree *Tree, _ int) bool {
		if c, ok := tree.Node.(*ComponentNode); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}
