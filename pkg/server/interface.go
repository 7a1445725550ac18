/*
Package server implements msgpack IPC for the textassist editing engines.

Clients write a stream of msgpack maps to stdin and read one msgpack map per
request from stdout. Requests are handled one at a time, in order, against a
single editing session. Once started the server writes a ready message:

	{"status": "ready"}

Every request names an op and may carry an id that is echoed back:

	{"id": "r1", "op": "suggest", "prefix": "app", "l": 3}
	{"id": "r1", "status": "ok", "s": ["appetite", "apple", "application"], "c": 3, "t": 12}

Stateless ops query the shared vocabulary directly:

	suggest  prefix, l    completions in lexicographic order
	correct  word, d      nearest vocabulary word within distance d
	find     text, pattern byte offsets of every occurrence
	insert   word         add a word to the vocabulary

Session ops drive the document being edited:

	edit     text         autocorrect, complete and rematch
	pattern  pattern      set the search pattern
	next, prev            move the current match
	accept   word         replace the last token with a suggestion
	recent   prefix, l    recently accepted words
	stats                 vocabulary and cache counters
	health                liveness check

Invalid requests get an error response and the server keeps reading:

	{"id": "r2", "status": "error", "error": "unknown op: frobnicate", "code": 400}

t is the handling time in microseconds.
*/
package server

// Request is a single client message.
// Limit and Distance are pointers so an explicit zero differs from absent.
type Request struct {
	ID       string `msgpack:"id,omitempty"`
	Op       string `msgpack:"op"`
	Text     string `msgpack:"text,omitempty"`
	Pattern  string `msgpack:"pattern,omitempty"`
	Prefix   string `msgpack:"prefix,omitempty"`
	Word     string `msgpack:"word,omitempty"`
	Limit    *int   `msgpack:"l,omitempty"`
	Distance *int   `msgpack:"d,omitempty"`
}

// Response answers one Request.
type Response struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
	Error  string `msgpack:"error,omitempty"`
	Code   int    `msgpack:"code,omitempty"`

	Suggestions []string `msgpack:"s,omitempty"`
	Count       int      `msgpack:"c,omitempty"`

	Text       string `msgpack:"text,omitempty"`
	Word       string `msgpack:"word,omitempty"`
	Corrected  bool   `msgpack:"corrected,omitempty"`
	Original   string `msgpack:"original,omitempty"`
	Matches    []int  `msgpack:"m,omitempty"`
	Current    *int   `msgpack:"cur,omitempty"`
	PatternLen int    `msgpack:"plen,omitempty"`

	Stats map[string]int `msgpack:"stats,omitempty"`

	TimeTaken int64 `msgpack:"t"`
}

const (
	statusOK    = "ok"
	statusError = "error"
	statusReady = "ready"

	codeBadRequest = 400
)
