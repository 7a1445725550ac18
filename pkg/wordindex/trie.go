package wordindex

import (
	"fmt"
	"slices"
	"strings"
)

// root is always the first node of the arena.
const root int32 = 0

// edge links a node to one child. Edges of a node are kept sorted by char.
type edge struct {
	char rune
	next int32
}

type node struct {
	children []edge
	terminal bool
}

// Index stores a lowercase vocabulary in a trie whose nodes live in a single slice
// and reference their children by position.
//
// Index is not safe for concurrent mutation; callers that share it across
// goroutines must serialize Insert against readers.
type Index struct {
	nodes []node
	words int
}

// New returns an empty index holding only the root node.
func New() *Index {
	return &Index{nodes: make([]node, 1, 64)}
}

// FromWords builds an index from a word list.
func FromWords(words ...string) *Index {
	idx := New()
	for _, w := range words {
		idx.Insert(w)
	}
	return idx
}

// Insert lowercases word and marks its path as a complete word.
func (idx *Index) Insert(word string) {
	word = strings.ToLower(word)
	if word == "" {
		return
	}

	cur := root
	for _, r := range word {
		next, ok := idx.child(cur, r)
		if !ok {
			next = idx.addChild(cur, r)
		}
		cur = next
	}

	if !idx.nodes[cur].terminal {
		idx.nodes[cur].terminal = true
		idx.words++
	}
}

// Suggest collects up to limit words under prefix with a depth-first walk,
// visiting siblings in ascending character order. An empty prefix starts at the root.
// A negative limit is a programming error and panics.
func (idx *Index) Suggest(prefix string, limit int) []string {
	if limit < 0 {
		panic(fmt.Sprintf("invalid argument: wordindex: negative suggest limit %d", limit))
	}
	if limit == 0 {
		return nil
	}

	lowerPrefix := strings.ToLower(prefix)
	start, ok := idx.find(lowerPrefix)
	if !ok {
		return nil
	}

	var results []string
	idx.walk(start, lowerPrefix, func(word string) bool {
		results = append(results, word)
		return len(results) < limit
	})
	return results
}

// Contains reports whether word was inserted, ignoring case.
func (idx *Index) Contains(word string) bool {
	n, ok := idx.find(strings.ToLower(word))
	return ok && idx.nodes[n].terminal
}

// Each visits every word in lexicographic order until fn returns false.
func (idx *Index) Each(fn func(word string) bool) {
	idx.walk(root, "", fn)
}

// Len returns the number of distinct words.
func (idx *Index) Len() int {
	return idx.words
}

// Nodes returns the arena size, root included.
func (idx *Index) Nodes() int {
	return len(idx.nodes)
}

// find follows prefix from the root.
func (idx *Index) find(prefix string) (int32, bool) {
	cur := root
	for _, r := range prefix {
		next, ok := idx.child(cur, r)
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

func (idx *Index) child(n int32, r rune) (int32, bool) {
	children := idx.nodes[n].children
	i, found := slices.BinarySearchFunc(children, r, compareEdge)
	if !found {
		return 0, false
	}
	return children[i].next, true
}

func (idx *Index) addChild(n int32, r rune) int32 {
	next := int32(len(idx.nodes))
	idx.nodes = append(idx.nodes, node{})

	children := idx.nodes[n].children
	i, _ := slices.BinarySearchFunc(children, r, compareEdge)
	idx.nodes[n].children = slices.Insert(children, i, edge{char: r, next: next})
	return next
}

func compareEdge(e edge, r rune) int {
	switch {
	case e.char < r:
		return -1
	case e.char > r:
		return 1
	}
	return 0
}

// frame is one pending node of the walk. depth is the rune length of the word
// spelled at that node.
type frame struct {
	id    int32
	depth int
	char  rune
}

// walk runs a preorder traversal from start with an explicit stack.
// Children are pushed in reverse so the smallest char pops first.
func (idx *Index) walk(start int32, prefix string, fn func(word string) bool) {
	buf := []rune(prefix)
	stack := []frame{{id: start, depth: len(buf), char: -1}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.char >= 0 {
			buf = append(buf[:f.depth-1], f.char)
		}

		n := &idx.nodes[f.id]
		if n.terminal {
			if !fn(string(buf[:f.depth])) {
				return
			}
		}

		for i := len(n.children) - 1; i >= 0; i-- {
			e := n.children[i]
			stack = append(stack, frame{id: e.next, depth: f.depth + 1, char: e.char})
		}
	}
}
