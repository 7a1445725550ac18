package session

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/bastiangx/textassist/pkg/wordindex"
)

var typedWords = [][]string{
	{"a", "ap", "app", "appl", "apple"},
	{"b", "ba", "ban", "bana", "banan", "banana"},
	{"r", "re", "rec", "reci", "recie", "reciev", "recieve"},
	{"t", "th", "the", "ther", "there"},
	{"p", "pr", "pro", "prog", "progr", "progra", "program"},
}

func memoryVocab() *wordindex.Index {
	idx := wordindex.New()
	for i := 0; i < 2000; i++ {
		idx.Insert(fmt.Sprintf("word%d", i))
	}
	for _, w := range []string{"apple", "application", "banana", "receive", "there", "the", "program"} {
		idx.Insert(w)
	}
	return idx
}

// typing a document keystroke by keystroke must not retain memory per edit
func TestMemoryStableWhileTyping(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping memory test in short mode")
	}

	for _, iterations := range []int{100, 1000} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			s := New(memoryVocab(), DefaultOptions())
			s.SetPattern("an")

			var baseline runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&baseline)
			baselineGoroutines := runtime.NumGoroutine()

			ops := 0
			for i := 0; i < iterations; i++ {
				for _, steps := range typedWords {
					for _, step := range steps {
						s.SetText("some text and " + step)
						ops++
					}
				}
			}

			var final runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&final)

			memDelta := int64(final.HeapAlloc) - int64(baseline.HeapAlloc)
			memPerOp := float64(memDelta) / float64(ops)
			goroutineDelta := runtime.NumGoroutine() - baselineGoroutines

			t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
				iterations, ops, memDelta, memPerOp, goroutineDelta)

			if memPerOp > 1000 {
				t.Errorf("excessive memory retained per edit: %.2f bytes", memPerOp)
			}
			if goroutineDelta > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
			}
			runtime.KeepAlive(s)
		})
	}
}

// sessions are single-threaded, but many may share one recent cache
func TestRecentCacheConcurrentSessions(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 200},
		{workers: 4, iterationsPerWorker: 50},
		{workers: 8, iterationsPerWorker: 25},
	}

	for _, cfg := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", cfg.workers, cfg.iterationsPerWorker), func(t *testing.T) {
			shared := NewRecentCache(16)

			var wg sync.WaitGroup
			for w := 0; w < cfg.workers; w++ {
				wg.Add(1)
				go func(worker int) {
					defer wg.Done()
					s := New(memoryVocab(), DefaultOptions())
					for i := 0; i < cfg.iterationsPerWorker; i++ {
						steps := typedWords[i%len(typedWords)]
						upd := s.SetText(steps[len(steps)/2])
						if len(upd.Suggestions) > 0 {
							shared.Touch(upd.Suggestions[0])
						}
						shared.Touch(fmt.Sprintf("w%d_%d", worker, i%20))
						_ = shared.Search("w", 5)
					}
				}(w)
			}
			wg.Wait()

			if n := shared.Len(); n > 16 {
				t.Errorf("recent cache grew past its bound: %d", n)
			}
			if got := len(shared.Search("", 100)); got != shared.Len() {
				t.Errorf("search saw %d words, cache holds %d", got, shared.Len())
			}
		})
	}
}
