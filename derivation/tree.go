// Package derivation provides derivation trees, the proof a parser returns
// for an accepted string.
//
// Nodes live in an arena and are addressed by NodeID. A Builder only creates
// an interior node once all of its children exist, so a parser that gives up
// on a production rolls the arena back to a mark and nothing of the failed
// attempt is ever attached to the tree.
package derivation

import (
	"strings"

	"github.com/JordiGD/Project-Grammar/grammar"
)

// NodeID addresses a node inside one tree's arena.
type NodeID int

// None is the zero value for "no node".
const None NodeID = -1

// Node is a grammar symbol in a derivation.
// Interior nodes carry the production that expanded them.
type Node struct {
	Symbol     string
	Production *grammar.Production
	Children   []NodeID
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsEmpty reports whether n is an ε leaf.
func (n Node) IsEmpty() bool {
	return n.Symbol == grammar.EmptyMarker && n.IsLeaf()
}

// Builder accumulates nodes for one parse attempt.
type Builder struct {
	nodes []Node
}

// Mark returns a position Rollback can return to.
func (b *Builder) Mark() int {
	return len(b.nodes)
}

// Rollback discards every node created after mark.
func (b *Builder) Rollback(mark int) {
	b.nodes = b.nodes[:mark]
}

// Leaf adds a terminal or ε leaf.
func (b *Builder) Leaf(symbol string) NodeID {
	b.nodes = append(b.nodes, Node{Symbol: symbol})
	return NodeID(len(b.nodes) - 1)
}

// Commit adds an interior node for symbol expanded by p into children.
// The children must already exist in the builder.
func (b *Builder) Commit(symbol string, p grammar.Production, children []NodeID) NodeID {
	b.nodes = append(b.nodes, Node{
		Symbol:     symbol,
		Production: &p,
		Children:   append([]NodeID(nil), children...),
	})
	return NodeID(len(b.nodes) - 1)
}

// Tree freezes the builder into a tree rooted at root.
// The builder must not be used afterwards.
func (b *Builder) Tree(root NodeID) *Tree {
	t := &Tree{nodes: b.nodes, root: root}
	b.nodes = nil
	return t
}

// Tree is an ordered derivation tree.
type Tree struct {
	nodes []Node
	root  NodeID
}

func (t *Tree) Root() NodeID {
	return t.root
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Len returns the number of nodes reachable from the root.
func (t *Tree) Len() int {
	n := 0
	t.Walk(func(NodeID, int) bool {
		n++
		return true
	})
	return n
}

// Walk visits the tree in pre-order. Returning false from fn skips the
// children of the visited node.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	var walk func(NodeID, int)
	walk = func(id NodeID, depth int) {
		if !fn(id, depth) {
			return
		}
		for _, c := range t.nodes[id].Children {
			walk(c, depth+1)
		}
	}
	walk(t.root, 0)
}

// Leaves returns the leaf symbols from left to right, skipping ε leaves.
func (t *Tree) Leaves() []string {
	var leaves []string
	t.Walk(func(id NodeID, _ int) bool {
		n := t.nodes[id]
		if n.IsLeaf() && n.Symbol != grammar.EmptyMarker {
			leaves = append(leaves, n.Symbol)
		}
		return true
	})
	return leaves
}

// Yield returns the string the tree derives. A tree with only ε leaves
// yields the empty string.
func (t *Tree) Yield() string {
	return strings.Join(t.Leaves(), "")
}

// Equal reports whether two trees have the same shape, symbols and
// productions.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	var eq func(a, b NodeID) bool
	eq = func(a, b NodeID) bool {
		x, y := t.nodes[a], other.nodes[b]
		if x.Symbol != y.Symbol || len(x.Children) != len(y.Children) {
			return false
		}
		if (x.Production == nil) != (y.Production == nil) {
			return false
		}
		if x.Production != nil && !x.Production.Equal(*y.Production) {
			return false
		}
		for i := range x.Children {
			if !eq(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	}
	return eq(t.root, other.root)
}

// String renders the tree with box-drawing indentation, annotating interior
// nodes with the production used.
func (t *Tree) String() string {
	var sb strings.Builder
	t.print(&sb, t.root, "", true)
	return sb.String()
}

func (t *Tree) print(sb *strings.Builder, id NodeID, prefix string, last bool) {
	n := t.nodes[id]
	sb.WriteString(prefix)
	if last {
		sb.WriteString("└── ")
	} else {
		sb.WriteString("├── ")
	}
	sb.WriteString(n.Symbol)
	if n.Production != nil {
		sb.WriteString(" [")
		sb.WriteString(n.Production.String())
		sb.WriteString("]")
	}
	sb.WriteString("\n")

	childPrefix := prefix + "│   "
	if last {
		childPrefix = prefix + "    "
	}
	for i, c := range n.Children {
		t.print(sb, c, childPrefix, i == len(n.Children)-1)
	}
}
