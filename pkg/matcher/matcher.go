/*
Package matcher finds every occurrence of a pattern in a text with the
Knuth-Morris-Pratt failure-function scan.

Offsets are byte offsets into the text, reported in strictly increasing order.
Overlapping occurrences are all reported:

	matcher.FindAll("aaaa", "aa") // [0 1 2]

An empty pattern matches nothing. A Pattern can be compiled once and run
against many texts, which is what the editing session does while the user types.
*/
package matcher

// Pattern is a compiled search pattern. It is immutable and safe to share.
type Pattern struct {
	pattern string
	fail    []int
}

// Compile precomputes the failure table for pattern.
// fail[k-1] is the length of the longest proper prefix of pattern[:k] that is also its suffix.
func Compile(pattern string) *Pattern {
	return &Pattern{pattern: pattern, fail: failureTable(pattern)}
}

// FindAll returns the start offset of every occurrence of pattern in text.
func FindAll(text, pattern string) []int {
	return Compile(pattern).FindAll(text)
}

// FindAll scans text once, never moving back over consumed characters.
func (p *Pattern) FindAll(text string) []int {
	m := len(p.pattern)
	if m == 0 || len(text) < m {
		return nil
	}

	var matches []int
	j := 0
	for i := 0; i < len(text); i++ {
		for j > 0 && text[i] != p.pattern[j] {
			j = p.fail[j-1]
		}
		if text[i] == p.pattern[j] {
			j++
		}
		if j == m {
			matches = append(matches, i-m+1)
			j = p.fail[m-1]
		}
	}
	return matches
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.pattern
}

// Len returns the pattern length in bytes.
func (p *Pattern) Len() int {
	return len(p.pattern)
}

func failureTable(pattern string) []int {
	fail := make([]int, len(pattern))
	k := 0
	for i := 1; i < len(pattern); i++ {
		for k > 0 && pattern[i] != pattern[k] {
			k = fail[k-1]
		}
		if pattern[i] == pattern[k] {
			k++
		}
		fail[i] = k
	}
	return fail
}
