package session

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// RecentCache remembers words the user accepted, keyed by prefix,
// and evicts the least recently used word once full.
type RecentCache struct {
	trie        *patricia.Trie
	accessCount int64
	size        int
	maxWords    int
	mu          sync.RWMutex
}

// NewRecentCache creates a cache holding at most maxWords words.
func NewRecentCache(maxWords int) *RecentCache {
	return &RecentCache{
		trie:     patricia.NewTrie(),
		maxWords: maxWords,
	}
}

// Touch records word as just used.
func (rc *RecentCache) Touch(word string) {
	word = strings.ToLower(word)
	if word == "" || rc.maxWords <= 0 {
		return
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	key := patricia.Prefix(word)
	if rc.trie.Get(key) == nil {
		if rc.size >= rc.maxWords {
			rc.evictLRU()
		}
		rc.size++
	}
	rc.trie.Set(key, rc.nextAccessTime())
}

// Search returns up to limit cached words under prefix, most recent first.
func (rc *RecentCache) Search(prefix string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	rc.mu.RLock()
	defer rc.mu.RUnlock()

	type hit struct {
		word string
		at   int64
	}
	var hits []hit

	collect := func(p patricia.Prefix, item patricia.Item) error {
		hits = append(hits, hit{word: string(p), at: item.(int64)})
		return nil
	}

	var err error
	if prefix == "" {
		err = rc.trie.Visit(collect)
	} else {
		err = rc.trie.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), collect)
	}
	if err != nil {
		log.Errorf("Error searching recent words: %v", err)
		return nil
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].at > hits[j].at
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	words := make([]string, len(hits))
	for i, h := range hits {
		words[i] = h.word
	}
	return words
}

// Len returns the number of cached words.
func (rc *RecentCache) Len() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.size
}

// Stats reports cache counters.
func (rc *RecentCache) Stats() map[string]int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	return map[string]int{
		"recentWords":    rc.size,
		"maxRecentWords": rc.maxWords,
		"recentAccesses": int(rc.accessCount),
	}
}

func (rc *RecentCache) nextAccessTime() int64 {
	rc.accessCount++
	return rc.accessCount
}

func (rc *RecentCache) evictLRU() {
	var oldestWord patricia.Prefix
	var oldestTime int64 = math.MaxInt64

	_ = rc.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		if at := item.(int64); at < oldestTime {
			oldestTime = at
			oldestWord = append(oldestWord[:0], p...)
		}
		return nil
	})

	if oldestWord != nil && rc.trie.Delete(oldestWord) {
		rc.size--
		log.Debugf("Evicted word '%s' from recent cache", oldestWord)
	}
}
