package server

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/textassist/internal/logger"
	"github.com/bastiangx/textassist/internal/utils"
	"github.com/bastiangx/textassist/pkg/config"
	"github.com/bastiangx/textassist/pkg/correct"
	"github.com/bastiangx/textassist/pkg/matcher"
	"github.com/bastiangx/textassist/pkg/session"
	"github.com/bastiangx/textassist/pkg/wordindex"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrUnknownOp is returned for requests naming an op the server does not handle.
	ErrUnknownOp = errors.New("unknown op")
	// ErrBadRequest wraps every validation failure.
	ErrBadRequest = errors.New("bad request")
)

// Server handles msgpack IPC for one editing session
type Server struct {
	index        wordindex.Suggester
	session      *session.Session
	limits       config.ServerConfig
	dec          *msgpack.Decoder
	enc          *msgpack.Encoder
	logger       *log.Logger
	requestCount int
}

// NewServer creates a server reading requests from in and writing responses to out.
// sess must have been built over index.
func NewServer(index wordindex.Suggester, sess *session.Session, limits config.ServerConfig, in io.Reader, out io.Writer) *Server {
	return &Server{
		index:   index,
		session: sess,
		limits:  limits,
		dec:     msgpack.NewDecoder(in),
		enc:     msgpack.NewEncoder(out),
		logger:  logger.New("server"),
	}
}

// Start sends the ready message and serves requests until in reaches EOF.
// A frame that cannot be decoded ends the stream, since msgpack has no resync point.
func (s *Server) Start() error {
	s.logger.Debug("Starting Server.")
	if err := s.send(Response{Status: statusReady}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			_ = s.send(errorResponse("", fmt.Sprintf("invalid msgpack request: %v", err), codeBadRequest))
			return fmt.Errorf("failed to decode request: %w", err)
		}

		if err := s.send(s.Handle(req)); err != nil {
			return err
		}
	}
}

// Handle answers a single request. It never panics on client input.
func (s *Server) Handle(req Request) Response {
	s.requestCount++
	start := time.Now()

	resp, err := s.dispatch(req)
	if err != nil {
		s.logger.Debugf("Request %q (%s) failed: %v", req.ID, req.Op, err)
		resp = errorResponse(req.ID, err.Error(), codeBadRequest)
	} else {
		resp.ID = req.ID
		resp.Status = statusOK
	}
	resp.TimeTaken = time.Since(start).Microseconds()
	return resp
}

func (s *Server) dispatch(req Request) (Response, error) {
	switch strings.ToLower(strings.TrimSpace(req.Op)) {
	case "health":
		return Response{}, nil
	case "insert":
		return s.handleInsert(req)
	case "suggest":
		return s.handleSuggest(req)
	case "correct":
		return s.handleCorrect(req)
	case "find":
		return s.handleFind(req)
	case "edit":
		return s.handleEdit(req)
	case "pattern":
		return s.handlePattern(req)
	case "next":
		return s.selection(s.session.Next()), nil
	case "prev":
		return s.selection(s.session.Prev()), nil
	case "accept":
		return s.handleAccept(req)
	case "recent":
		return s.handleRecent(req)
	case "stats":
		return Response{Stats: s.session.Stats()}, nil
	case "":
		return Response{}, fmt.Errorf("%w: missing op", ErrBadRequest)
	default:
		return Response{}, fmt.Errorf("%w: %s", ErrUnknownOp, req.Op)
	}
}

func (s *Server) handleInsert(req Request) (Response, error) {
	word, err := s.word(req)
	if err != nil {
		return Response{}, err
	}
	s.session.Learn(word)
	return Response{Word: word, Count: s.index.Len()}, nil
}

func (s *Server) handleSuggest(req Request) (Response, error) {
	if err := s.checkPrefix(req.Prefix); err != nil {
		return Response{}, err
	}
	limit, err := s.limit(req.Limit)
	if err != nil {
		return Response{}, err
	}
	suggestions := s.index.Suggest(req.Prefix, limit)
	return Response{Suggestions: suggestions, Count: len(suggestions)}, nil
}

func (s *Server) handleCorrect(req Request) (Response, error) {
	word, err := s.word(req)
	if err != nil {
		return Response{}, err
	}
	maxDistance := s.session.Options().MaxDistance
	if req.Distance != nil {
		if *req.Distance < 0 {
			return Response{}, fmt.Errorf("%w: distance must not be negative", ErrBadRequest)
		}
		maxDistance = *req.Distance
	}
	fixed := correct.Correct(word, s.index, maxDistance)
	return Response{Word: fixed, Corrected: fixed != word, Original: word}, nil
}

func (s *Server) handleFind(req Request) (Response, error) {
	if err := s.checkText(req.Text); err != nil {
		return Response{}, err
	}
	if err := s.checkText(req.Pattern); err != nil {
		return Response{}, err
	}
	matches := matcher.FindAll(req.Text, req.Pattern)
	return Response{Matches: matches, Count: len(matches), PatternLen: len(req.Pattern)}, nil
}

func (s *Server) handleEdit(req Request) (Response, error) {
	if err := s.checkText(req.Text); err != nil {
		return Response{}, err
	}
	return s.update(s.session.SetText(req.Text)), nil
}

func (s *Server) handlePattern(req Request) (Response, error) {
	if err := s.checkText(req.Pattern); err != nil {
		return Response{}, err
	}
	s.session.SetPattern(req.Pattern)
	return s.selection(s.session.Current()), nil
}

func (s *Server) handleAccept(req Request) (Response, error) {
	word, err := s.word(req)
	if err != nil {
		return Response{}, err
	}
	if len(s.session.Text())+len(word) > s.limits.MaxText {
		return Response{}, fmt.Errorf("%w: text exceeds maximum length of %d bytes", ErrBadRequest, s.limits.MaxText)
	}
	return s.update(s.session.Accept(word)), nil
}

func (s *Server) handleRecent(req Request) (Response, error) {
	if err := s.checkPrefix(req.Prefix); err != nil {
		return Response{}, err
	}
	limit, err := s.limit(req.Limit)
	if err != nil {
		return Response{}, err
	}
	words := s.session.Recent(req.Prefix, limit)
	return Response{Suggestions: words, Count: len(words)}, nil
}

func (s *Server) update(upd session.Update) Response {
	resp := s.selection(upd.Current)
	resp.Text = upd.Text
	resp.Corrected = upd.Corrected
	resp.Original = upd.Original
	resp.Word = upd.Correction
	resp.Suggestions = upd.Suggestions
	resp.Count = len(upd.Suggestions)
	return resp
}

func (s *Server) selection(current int) Response {
	return Response{
		Matches:    s.session.Matches(),
		Current:    &current,
		PatternLen: s.session.PatternLen(),
	}
}

func (s *Server) word(req Request) (string, error) {
	word := strings.TrimSpace(req.Word)
	if word == "" {
		return "", fmt.Errorf("%w: missing 'word' parameter", ErrBadRequest)
	}
	if !utils.IsSingleToken(word) {
		return "", fmt.Errorf("%w: word must not contain whitespace", ErrBadRequest)
	}
	if len(word) > s.limits.MaxPrefix {
		return "", fmt.Errorf("%w: word exceeds maximum length of %d", ErrBadRequest, s.limits.MaxPrefix)
	}
	return word, nil
}

// checkPrefix caps the prefix length. An empty prefix is valid and walks from the root.
func (s *Server) checkPrefix(prefix string) error {
	if len(prefix) > s.limits.MaxPrefix {
		return fmt.Errorf("%w: prefix exceeds maximum length of %d", ErrBadRequest, s.limits.MaxPrefix)
	}
	return nil
}

func (s *Server) checkText(text string) error {
	if len(text) > s.limits.MaxText {
		return fmt.Errorf("%w: text exceeds maximum length of %d bytes", ErrBadRequest, s.limits.MaxText)
	}
	return nil
}

// limit falls back to the session's suggest limit when the request has none.
func (s *Server) limit(l *int) (int, error) {
	if l == nil {
		return s.session.Options().SuggestLimit, nil
	}
	if *l < 0 {
		return 0, fmt.Errorf("%w: limit must not be negative", ErrBadRequest)
	}
	if *l > s.limits.MaxLimit {
		return 0, fmt.Errorf("%w: limit exceeds maximum of %d", ErrBadRequest, s.limits.MaxLimit)
	}
	return *l, nil
}

func (s *Server) send(resp Response) error {
	if err := s.enc.Encode(resp); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

func errorResponse(id, message string, code int) Response {
	return Response{ID: id, Status: statusError, Error: message, Code: code}
}
