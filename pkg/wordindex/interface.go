// Package wordindex is the vocabulary store behind autocomplete: a trie kept as a node arena,
// answering prefix queries in lexicographic order.
package wordindex

// Suggester is what the editing layer needs from an index.
type Suggester interface {
	// Insert adds a word to the vocabulary. Inserting the same word twice is a no-op.
	Insert(word string)

	// Suggest returns at most limit complete words starting with prefix.
	Suggest(prefix string, limit int) []string

	// Contains reports whether word is in the vocabulary, ignoring case.
	Contains(word string) bool

	// Each walks every word in lexicographic order until fn returns false.
	Each(fn func(word string) bool)

	// Len returns the number of distinct words.
	Len() int
}

var _ Suggester = (*Index)(nil)
