// Package correct picks the nearest vocabulary word for a misspelled one by edit distance.
package correct

import (
	"fmt"
	"strings"
)

// DefaultMaxDistance is the largest edit distance a correction may have.
const DefaultMaxDistance = 2

// Vocabulary is a read-only view of the known words.
// Each must enumerate in a fixed order; ties between equally distant words
// go to whichever word Each yields first.
type Vocabulary interface {
	Contains(word string) bool
	Each(fn func(word string) bool)
}

// Correct returns the vocabulary word closest to word, or word itself when it is
// already known, the vocabulary is empty, or nothing lies within maxDistance.
func Correct(word string, vocab Vocabulary, maxDistance int) string {
	best, _ := nearest(word, vocab, maxDistance)
	return best
}

// Corrector binds a vocabulary view to a distance threshold.
type Corrector struct {
	vocab       Vocabulary
	maxDistance int
}

// New creates a Corrector over vocab. A negative maxDistance panics.
func New(vocab Vocabulary, maxDistance int) *Corrector {
	checkDistance(maxDistance)
	return &Corrector{vocab: vocab, maxDistance: maxDistance}
}

// Correct returns the correction for word and whether it differs from the input.
func (c *Corrector) Correct(word string) (string, bool) {
	return nearest(word, c.vocab, c.maxDistance)
}

// MaxDistance returns the configured threshold.
func (c *Corrector) MaxDistance() int {
	return c.maxDistance
}

func nearest(word string, vocab Vocabulary, maxDistance int) (string, bool) {
	checkDistance(maxDistance)
	if word == "" || vocab == nil || vocab.Contains(word) {
		return word, false
	}

	target := []rune(strings.ToLower(word))
	best := ""
	bound := maxDistance

	vocab.Each(func(candidate string) bool {
		cr := []rune(strings.ToLower(candidate))
		if abs(len(cr)-len(target)) > bound {
			return true
		}
		d := boundedDistance(target, cr, bound)
		if d > bound {
			return true
		}
		// only a strictly closer word replaces the current best
		best = candidate
		bound = d - 1
		return bound >= 0
	})

	if best == "" {
		return word, false
	}
	return best, true
}

// Distance is the Levenshtein distance between a and b, counted in runes.
func Distance(a, b string) int {
	ar, br := []rune(a), []rune(b)
	return boundedDistance(ar, br, max(len(ar), len(br)))
}

// boundedDistance runs the two-row DP and gives up with bound+1 once every
// cell of a row exceeds bound.
func boundedDistance(a, b []rune, bound int) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		if rowMin > bound {
			return bound + 1
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func checkDistance(maxDistance int) {
	if maxDistance < 0 {
		panic(fmt.Sprintf("invalid argument: correct: negative max distance %d", maxDistance))
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
