// Package cli is an interactive front end for the editing session, used for
// debugging the engines in real time without an editor attached.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/textassist/internal/utils"
	"github.com/bastiangx/textassist/pkg/session"
	"github.com/charmbracelet/log"
)

const helpText = `type a line to replace the document, or a command:
  :find <pattern>   search the document
  :next, :prev      move between matches
  :accept <word>    replace the last word with a suggestion
  :learn <word>     add a word to the vocabulary
  :recent [prefix]  recently accepted words
  :stats            vocabulary and cache counters
  :clear            empty the document and pattern
  :help, :quit`

// InputHandler reads lines from the user and drives a session with them.
type InputHandler struct {
	session  *session.Session
	render   *Renderer
	out      io.Writer
	noFilter bool
}

// NewInputHandler creates a handler printing to out.
// With noFilter unset, lines whose last token is a number or symbol soup are skipped.
func NewInputHandler(sess *session.Session, out io.Writer, highlight, noFilter bool) *InputHandler {
	return &InputHandler{
		session:  sess,
		render:   NewRenderer(out, highlight),
		out:      out,
		noFilter: noFilter,
	}
}

// Start reads lines from in until EOF or :quit.
func (h *InputHandler) Start(in io.Reader) error {
	fmt.Fprintln(h.out, "textassist CLI")
	fmt.Fprintln(h.out, "type something and press Enter, :help for commands (Ctrl+C to exit):")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if h.HandleLine(scanner.Text()) {
			return nil
		}
	}
}

// HandleLine processes one line of input and reports whether the user asked to quit.
func (h *InputHandler) HandleLine(line string) bool {
	if !strings.HasPrefix(line, ":") {
		h.handleText(line)
		return false
	}

	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "find":
		h.session.SetPattern(arg)
		h.printDocument()
	case "next":
		h.session.Next()
		h.printDocument()
	case "prev":
		h.session.Prev()
		h.printDocument()
	case "accept":
		if arg == "" {
			log.Warn("Usage: :accept <word>")
			return false
		}
		h.session.Accept(arg)
		h.printDocument()
	case "learn":
		if arg == "" {
			log.Warn("Usage: :learn <word>")
			return false
		}
		if !h.session.Learn(arg) {
			log.Warnf("Cannot learn '%s': not a single word", arg)
			return false
		}
		fmt.Fprintf(h.out, "learned '%s'\n", arg)
	case "recent":
		words := h.session.Recent(arg, h.session.Options().SuggestLimit)
		if len(words) == 0 {
			fmt.Fprintln(h.out, "no recent words")
			return false
		}
		fmt.Fprint(h.out, h.render.Suggestions(words))
	case "stats":
		fmt.Fprint(h.out, h.render.Stats(h.session.Stats()))
	case "clear":
		h.session.SetPattern("")
		h.session.SetText("")
		fmt.Fprintln(h.out, "cleared")
	case "help":
		fmt.Fprintln(h.out, helpText)
	case "quit", "q":
		return true
	default:
		log.Warnf("Unknown command: %s (try :help)", cmd)
	}
	return false
}

func (h *InputHandler) handleText(line string) {
	token, _ := utils.LastToken(line)
	if token != "" && !h.noFilter && !utils.IsValidInput(token) {
		log.Warnf("Skipping '%s' (filtered out, use -no-filter to allow)", token)
		return
	}

	start := time.Now()
	upd := h.session.SetText(line)
	log.Debugf("Took [ %v ] for '%s'", time.Since(start), token)

	if upd.Corrected {
		fmt.Fprintln(h.out, h.render.Correction(upd.Original, upd.Correction))
	}
	h.printDocument()
}

func (h *InputHandler) printDocument() {
	s := h.session
	fmt.Fprintln(h.out, h.render.Text(s.Text(), s.Matches(), s.PatternLen(), s.Current()))

	if s.Pattern() != "" {
		fmt.Fprintln(h.out, h.render.Position(s.Current(), len(s.Matches())))
	}
	if sug := s.Suggestions(); len(sug) > 0 {
		fmt.Fprint(h.out, h.render.Suggestions(sug))
	}
}
