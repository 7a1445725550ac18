package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/bastiangx/textassist/internal/utils"
	"github.com/charmbracelet/lipgloss"
)

// span states, a byte may belong to several overlapping matches
const (
	plain = iota
	matched
	selected
)

// Renderer formats session state for the terminal.
// Without highlighting, matches are bracketed: [match] and the current one <match>.
type Renderer struct {
	highlight bool

	match      lipgloss.Style
	current    lipgloss.Style
	word       lipgloss.Style
	correction lipgloss.Style
	dim        lipgloss.Style
}

// NewRenderer creates a renderer whose color profile follows w.
func NewRenderer(w io.Writer, highlight bool) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		highlight:  highlight,
		match:      r.NewStyle().Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"}).Underline(true),
		current:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
		word:       r.NewStyle().Foreground(lipgloss.Color("75")),
		correction: r.NewStyle().Italic(true).Foreground(lipgloss.Color("10")),
		dim:        r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Text renders text with every match span [off, off+patternLen) marked.
// Overlapping spans are merged; the current match wins over the others.
func (r *Renderer) Text(text string, matches []int, patternLen, current int) string {
	if len(matches) == 0 || patternLen == 0 {
		return text
	}

	state := make([]uint8, len(text))
	for i, off := range matches {
		mark := uint8(matched)
		if i == current {
			mark = selected
		}
		for j := off; j < off+patternLen && j < len(text); j++ {
			if state[j] < mark {
				state[j] = mark
			}
		}
	}

	var b strings.Builder
	for start := 0; start < len(text); {
		end := start + 1
		for end < len(text) && state[end] == state[start] {
			end++
		}
		b.WriteString(r.span(text[start:end], state[start]))
		start = end
	}
	return b.String()
}

func (r *Renderer) span(s string, state uint8) string {
	switch state {
	case matched:
		if r.highlight {
			return r.match.Render(s)
		}
		return "[" + s + "]"
	case selected:
		if r.highlight {
			return r.current.Render(s)
		}
		return "<" + s + ">"
	default:
		return s
	}
}

// Suggestions renders a numbered completion list, one per line.
func (r *Renderer) Suggestions(words []string) string {
	var b strings.Builder
	for i, w := range words {
		if r.highlight {
			w = r.word.Render(w)
		}
		fmt.Fprintf(&b, "%2d. %s\n", i+1, w)
	}
	return b.String()
}

// Correction renders an autocorrect notice.
func (r *Renderer) Correction(from, to string) string {
	msg := fmt.Sprintf("corrected '%s' -> '%s'", from, to)
	if r.highlight {
		return r.correction.Render(msg)
	}
	return msg
}

// Position renders the current match as "i/n".
func (r *Renderer) Position(current, total int) string {
	var msg string
	if total == 0 || current < 0 {
		msg = fmt.Sprintf("no match selected (%d matches)", total)
	} else {
		msg = fmt.Sprintf("match %d/%d", current+1, total)
	}
	if r.highlight {
		return r.dim.Render(msg)
	}
	return msg
}

// Stats renders counters sorted by key.
func (r *Renderer) Stats(stats map[string]int) string {
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(stats)) {
		fmt.Fprintf(&b, "%-16s %10s\n", k, utils.FormatWithCommas(stats[k]))
	}
	return b.String()
}
