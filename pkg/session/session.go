/*
Package session ties the word index, the spell corrector and the pattern matcher
to a single document being edited.

Every text change runs the same pipeline:

 1. the last whitespace-separated token is autocorrected when it is long enough,
 2. the index is asked for completions of that token,
 3. the search pattern, if any, is matched against the resulting text.

One Session owns one vocabulary: the index passed to New is the store the
corrector reads through, so words learned during the session are visible to
both at once. A Session is not safe for concurrent use.
*/
package session

import (
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/textassist/internal/utils"
	"github.com/bastiangx/textassist/pkg/correct"
	"github.com/bastiangx/textassist/pkg/matcher"
	"github.com/bastiangx/textassist/pkg/wordindex"
	"github.com/charmbracelet/log"
)

// NoMatch is the current-match index when nothing is selected.
const NoMatch = -1

// Options tune the editing pipeline.
type Options struct {
	// SuggestLimit caps the completions offered for the last token.
	SuggestLimit int
	// MinCorrectLen is the token length (in runes) a token must exceed before autocorrect runs.
	MinCorrectLen int
	// MaxDistance is the largest edit distance a correction may have.
	MaxDistance int
	// RecentWords bounds the accepted-word cache.
	RecentWords int
}

// DefaultOptions returns the stock pipeline settings.
func DefaultOptions() Options {
	return Options{
		SuggestLimit:  3,
		MinCorrectLen: 2,
		MaxDistance:   correct.DefaultMaxDistance,
		RecentWords:   256,
	}
}

// Update is what the presentation layer renders after a change.
type Update struct {
	Text        string
	Corrected   bool
	Original    string
	Correction  string
	Suggestions []string
	Matches     []int
	Current     int
}

// Session holds the state of one document.
type Session struct {
	index     wordindex.Suggester
	corrector *correct.Corrector
	recent    *RecentCache
	opts      Options

	text        string
	pattern     *matcher.Pattern
	matches     []int
	current     int
	suggestions []string
}

// New creates a session over index. The index is shared, not copied.
func New(index wordindex.Suggester, opts Options) *Session {
	return &Session{
		index:     index,
		corrector: correct.New(index, opts.MaxDistance),
		recent:    NewRecentCache(opts.RecentWords),
		opts:      opts,
		current:   NoMatch,
	}
}

// SetText replaces the document, autocorrecting and completing its last token.
func (s *Session) SetText(text string) Update {
	var upd Update

	token, _ := utils.LastToken(text)
	if utf8.RuneCountInString(token) > s.opts.MinCorrectLen {
		if fixed, ok := s.corrector.Correct(token); ok {
			log.Debugf("Autocorrected '%s' to '%s'", token, fixed)
			text = utils.ReplaceLastToken(text, fixed)
			upd.Corrected = true
			upd.Original = token
			upd.Correction = fixed
		}
	}

	s.text = text
	s.suggestions = nil
	if token != "" {
		s.suggestions = s.index.Suggest(token, s.opts.SuggestLimit)
	}

	s.rematch(false)
	return s.fill(upd)
}

// SetPattern changes the search pattern and returns the new match offsets.
// A blank pattern clears the matches and the selection.
func (s *Session) SetPattern(pattern string) []int {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		s.pattern = nil
	} else {
		s.pattern = matcher.Compile(pattern)
	}
	s.rematch(true)
	return s.Matches()
}

// Next selects the following match, wrapping around.
func (s *Session) Next() int {
	n := len(s.matches)
	if n == 0 {
		s.current = NoMatch
		return s.current
	}
	s.current = (s.current + 1) % n
	return s.current
}

// Prev selects the preceding match, wrapping around.
func (s *Session) Prev() int {
	n := len(s.matches)
	if n == 0 {
		s.current = NoMatch
		return s.current
	}
	if s.current == NoMatch {
		s.current = n - 1
		return s.current
	}
	s.current = (s.current - 1 + n) % n
	return s.current
}

// Accept replaces the last token with a chosen suggestion and remembers it.
// A blank or multi-token word leaves the session unchanged.
func (s *Session) Accept(word string) Update {
	word = strings.TrimSpace(word)
	if !utils.IsSingleToken(word) {
		if word != "" {
			log.Warnf("Ignoring suggestion '%s': not a single word", word)
		}
		return s.fill(Update{})
	}

	if _, start := utils.LastToken(s.text); start < 0 {
		s.text += word
	} else {
		s.text = utils.ReplaceLastToken(s.text, word)
	}

	s.recent.Touch(word)
	s.Learn(word)
	s.suggestions = nil
	s.rematch(false)

	log.Debugf("Accepted suggestion '%s'", word)
	return s.fill(Update{})
}

// Learn adds word to the shared vocabulary and reports whether it was taken.
// Words with whitespace inside could never be the last token, so they are refused.
func (s *Session) Learn(word string) bool {
	word = strings.TrimSpace(word)
	if !utils.IsSingleToken(word) {
		return false
	}
	s.index.Insert(word)
	return true
}

// Recent returns accepted words under prefix, most recent first.
func (s *Session) Recent(prefix string, limit int) []string {
	return s.recent.Search(prefix, limit)
}

// Text returns the current document.
func (s *Session) Text() string {
	return s.text
}

// Pattern returns the active search pattern, or "" when none is set.
func (s *Session) Pattern() string {
	if s.pattern == nil {
		return ""
	}
	return s.pattern.String()
}

// PatternLen returns the byte length of the active pattern.
func (s *Session) PatternLen() int {
	if s.pattern == nil {
		return 0
	}
	return s.pattern.Len()
}

// Matches returns a copy of the match offsets.
func (s *Session) Matches() []int {
	if len(s.matches) == 0 {
		return nil
	}
	return append([]int(nil), s.matches...)
}

// Current returns the selected match index or NoMatch.
func (s *Session) Current() int {
	return s.current
}

// Suggestions returns a copy of the completions for the last token.
func (s *Session) Suggestions() []string {
	if len(s.suggestions) == 0 {
		return nil
	}
	return append([]string(nil), s.suggestions...)
}

// Options returns the settings the session was built with.
func (s *Session) Options() Options {
	return s.opts
}

// Stats reports vocabulary, match and cache counters.
func (s *Session) Stats() map[string]int {
	stats := map[string]int{
		"totalWords": s.index.Len(),
		"matches":    len(s.matches),
		"textBytes":  len(s.text),
	}
	if n, ok := s.index.(interface{ Nodes() int }); ok {
		stats["trieNodes"] = n.Nodes()
	}
	for k, v := range s.recent.Stats() {
		stats[k] = v
	}
	return stats
}

// rematch runs the pattern over the text. A reset selects the first match;
// otherwise the selection is kept while it still points at a match.
func (s *Session) rematch(reset bool) {
	if s.pattern == nil {
		s.matches = nil
		s.current = NoMatch
		return
	}

	s.matches = s.pattern.FindAll(s.text)
	switch {
	case len(s.matches) == 0:
		s.current = NoMatch
	case reset, s.current == NoMatch, s.current >= len(s.matches):
		s.current = 0
	}
}

func (s *Session) fill(upd Update) Update {
	upd.Text = s.text
	upd.Suggestions = s.Suggestions()
	upd.Matches = s.Matches()
	upd.Current = s.current
	return upd
}
