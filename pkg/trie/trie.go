// Package trie implements a weighted prefix tree tailored to best-first
// autocomplete search: nodes live in a flat arena and are addressed by
// integer index rather than by pointer, children are ordered by descending
// probability after Finalize, and word ends are marked by a zero-byte
// terminator child rather than an in-node boolean.
package trie

import (
	"errors"
	"sort"
)

// terminator is the reserved byte marking the end of a word. It can never
// appear as an edge character for any other node.
const terminator = 0

// Node is one vertex of the trie. Char is the byte that led to this node
// from its parent (the root's Char is a space, matching the sentinel used by
// the reference implementation). Prob is the probability mass of the most
// likely word in the subtree rooted at this node once Finalize has run;
// before that it accumulates raw weight. Children holds arena indices, sorted
// by descending Prob after Finalize.
type Node struct {
	Char     byte
	Prob     float64
	Children []int
}

// Trie is an arena of Nodes. The root is always index 0.
type Trie struct {
	nodes     []Node
	sumWeight float64
	finalized bool
}

// New returns an empty trie, ready for Add calls.
func New() *Trie {
	return &Trie{nodes: []Node{{Char: ' '}}}
}

// Root returns the arena index of the root node.
func (t *Trie) Root() int { return 0 }

// Node returns a copy of the node at the given arena index. Valid after
// construction; Children indices remain valid across further Add calls
// because nodes are addressed by index, never by pointer.
func (t *Trie) Node(index int) Node {
	return t.nodes[index]
}

// Add inserts word with the given weight, accumulating weight onto an
// existing entry if word was already added. weight must be positive.
func (t *Trie) Add(word string, weight float64) error {
	if weight <= 0 {
		return errors.New("trie: weight must be a positive number")
	}
	t.sumWeight += weight
	t.addAt(0, word, weight)
	return nil
}

func (t *Trie) addAt(nodeIdx int, word string, weight float64) {
	if word == "" {
		for _, c := range t.nodes[nodeIdx].Children {
			if t.nodes[c].Char == terminator {
				t.nodes[c].Prob += weight
				return
			}
		}
		newIdx := len(t.nodes)
		t.nodes[nodeIdx].Children = append(t.nodes[nodeIdx].Children, newIdx)
		t.nodes = append(t.nodes, Node{Char: terminator, Prob: weight})
		return
	}

	head := word[0]
	for _, c := range t.nodes[nodeIdx].Children {
		if t.nodes[c].Char == head {
			t.addAt(c, word[1:], weight)
			return
		}
	}

	newIdx := len(t.nodes)
	t.nodes[nodeIdx].Children = append(t.nodes[nodeIdx].Children, newIdx)
	t.nodes = append(t.nodes, Node{Char: head})
	t.addAt(newIdx, word[1:], weight)
}

// Finalize turns accumulated weights into probabilities and sorts every
// node's children by descending probability. It must be called exactly once,
// after every Add, before the trie is queried. It fails if nothing was ever
// added, since a trie with no weight to normalize against is meaningless.
func (t *Trie) Finalize() error {
	if t.sumWeight <= 0 {
		return errors.New("trie: cannot finalize an empty dictionary")
	}
	t.finalizeAt(0)
	t.finalized = true
	return nil
}

func (t *Trie) finalizeAt(idx int) {
	n := &t.nodes[idx]
	if len(n.Children) == 0 {
		n.Prob /= t.sumWeight
		return
	}

	n.Prob = 0
	for _, c := range n.Children {
		t.finalizeAt(c)
		if t.nodes[c].Prob > n.Prob {
			n.Prob = t.nodes[c].Prob
		}
	}

	children := n.Children
	sort.Slice(children, func(i, j int) bool {
		return t.nodes[children[i]].Prob > t.nodes[children[j]].Prob
	})
}

// Finalized reports whether Finalize has already run.
func (t *Trie) Finalized() bool { return t.finalized }
