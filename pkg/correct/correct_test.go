package correct

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bastiangx/textassist/pkg/wordindex"
)

// sliceVocab enumerates in slice order, unlike the lexicographic index.
type sliceVocab []string

func (v sliceVocab) Contains(word string) bool {
	for _, w := range v {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}

func (v sliceVocab) Each(fn func(string) bool) {
	for _, w := range v {
		if !fn(w) {
			return
		}
	}
}

// Tests that Correct follows: known word > smallest distance > first in enumeration order.
func TestCorrect(t *testing.T) {
	vocab := wordindex.FromWords(
		"apple", "banana", "orange", "pear", "grape", "receive",
		"there", "their", "the", "car", "cat", "dog",
		"university", "algorithm", "function", "variable",
	)

	testCases := []struct {
		input          string
		expectedOutput string
		corrected      bool
		description    string
	}{
		// known words
		{"apple", "apple", false, "Exact match"},
		{"Apple", "Apple", false, "Known word keeps input casing"},

		// 1 char typo
		{"appl", "apple", true, "Missing character at end"},
		{"appke", "apple", true, "Character substitution"},
		{"applez", "apple", true, "Extra character at end"},
		{"orunge", "orange", true, "Vowel substitution"},
		{"fnction", "function", true, "Missing vowel"},
		{"varriable", "variable", true, "Extra character"},
		{"APPL", "apple", true, "Input case ignored, stored casing returned"},

		// 2 edits
		{"recieve", "receive", true, "Swapped vowels"},
		{"univeristy", "university", true, "Transposition in longer word"},
		{"axxle", "apple", true, "Exactly max distance"},

		// ties
		{"ther", "the", true, "the < their < there, all at distance 1"},
		{"cas", "car", true, "car before cat"},

		// beyond max distance
		{"axxxle", "axxxle", false, "Three edits"},
		{"xyzxyz", "xyzxyz", false, "No match in vocabulary"},

		{"", "", false, "Empty input"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			c := New(vocab, DefaultMaxDistance)
			result, corrected := c.Correct(tc.input)
			if result != tc.expectedOutput {
				t.Errorf("Input '%s': expected '%s', got '%s'", tc.input, tc.expectedOutput, result)
			}
			if corrected != tc.corrected {
				t.Errorf("Input '%s': expected corrected=%v, got %v", tc.input, tc.corrected, corrected)
			}
			if got := Correct(tc.input, vocab, DefaultMaxDistance); got != result {
				t.Errorf("Correct(%q) = %q; Corrector returned %q", tc.input, got, result)
			}
		})
	}
}

func TestCorrectThreshold(t *testing.T) {
	vocab := wordindex.FromWords("apple")

	testCases := []struct {
		input       string
		maxDistance int
		expected    string
	}{
		{"appl", 0, "appl"},
		{"appl", 1, "apple"},
		{"axxle", 1, "axxle"},
		{"axxle", 2, "apple"},
		{"axxxle", 3, "apple"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s/%d", tc.input, tc.maxDistance), func(t *testing.T) {
			if got := Correct(tc.input, vocab, tc.maxDistance); got != tc.expected {
				t.Errorf("Correct(%q, %d) = %q; want %q", tc.input, tc.maxDistance, got, tc.expected)
			}
		})
	}
}

// check for empty vocabulary
func TestEmptyVocabulary(t *testing.T) {
	if got := Correct("test", wordindex.New(), DefaultMaxDistance); got != "test" {
		t.Errorf("Empty vocabulary should return original word, got '%s'", got)
	}
	if got := Correct("test", nil, DefaultMaxDistance); got != "test" {
		t.Errorf("Nil vocabulary should return original word, got '%s'", got)
	}
}

// the tie-break follows the view's enumeration order, not map or insertion luck
func TestTieBreakFollowsEnumeration(t *testing.T) {
	if got := Correct("cas", sliceVocab{"cat", "car"}, 2); got != "cat" {
		t.Errorf("Expected first enumerated word 'cat', got '%s'", got)
	}
	if got := Correct("cas", sliceVocab{"car", "cat"}, 2); got != "car" {
		t.Errorf("Expected first enumerated word 'car', got '%s'", got)
	}
}

func TestCorrectPreservesStoredCasing(t *testing.T) {
	if got := Correct("paros", sliceVocab{"Paris", "London"}, 2); got != "Paris" {
		t.Errorf("Expected 'Paris', got '%s'", got)
	}
}

func TestCorrectIsIdempotentOnKnownWords(t *testing.T) {
	words := []string{"apple", "application", "appetite", "banana", "band", "banner"}
	vocab := wordindex.FromWords(words...)

	for _, w := range words {
		if got := Correct(w, vocab, DefaultMaxDistance); got != w {
			t.Errorf("Correct(%q) = %q; known words must be returned unchanged", w, got)
		}
	}
}

func TestCorrectSeesInsertsThroughView(t *testing.T) {
	vocab := wordindex.FromWords("apple")
	c := New(vocab, DefaultMaxDistance)

	if got, _ := c.Correct("gopjer"); got != "gopjer" {
		t.Fatalf("Expected no correction before insert, got '%s'", got)
	}

	vocab.Insert("gopher")

	if got, corrected := c.Correct("gopjer"); got != "gopher" || !corrected {
		t.Errorf("Expected 'gopher' after insert, got '%s' (corrected=%v)", got, corrected)
	}
}

func TestNegativeMaxDistancePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("negative max distance did not panic")
		}
	}()
	Correct("word", wordindex.New(), -1)
}

// check if our lev distance impl returns correct distance int
func TestDistance(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"book", "back", 2},
		{"book", "books", 1},
		{"hello", "hallo", 1},
		{"recieve", "receive", 2},
		{"flaw", "lawn", 2},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s→%s", tc.a, tc.b), func(t *testing.T) {
			if dist := Distance(tc.a, tc.b); dist != tc.expected {
				t.Errorf("Expected distance %d, got %d", tc.expected, dist)
			}
			if dist := Distance(tc.b, tc.a); dist != tc.expected {
				t.Errorf("Expected symmetric distance %d, got %d", tc.expected, dist)
			}
		})
	}
}

func TestBoundedDistanceGivesUp(t *testing.T) {
	if d := boundedDistance([]rune("kitten"), []rune("sitting"), 1); d <= 1 {
		t.Errorf("Expected a distance above bound 1, got %d", d)
	}
	if d := boundedDistance([]rune("abcdef"), []rune("uvwxyz"), 2); d != 3 {
		t.Errorf("Expected early exit with bound+1 = 3, got %d", d)
	}
}

// 1000 words in vocabulary, 5 different inputs
func BenchmarkCorrect(b *testing.B) {
	vocab := wordindex.New()
	for i := 0; i < 1000; i++ {
		vocab.Insert(fmt.Sprintf("word%d", i))
	}
	c := New(vocab, DefaultMaxDistance)
	inputs := []string{"wrd1", "word", "wodr99", "xyz", "word1000"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, in := range inputs {
			c.Correct(in)
		}
	}
}
