// Package wordbank keeps the keyword/clue pairs the service fills puzzles
// from, indexed by a patricia trie for prefix lookups.
package wordbank

import (
	"sort"
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Entry is one keyword with its clue.
type Entry struct {
	Keyword string `json:"keyword" msgpack:"k"`
	Clue    string `json:"clue" msgpack:"c"`
}

// Bank is safe for concurrent use.
type Bank struct {
	mu   sync.RWMutex
	trie *patricia.Trie
	size int
}

func New() *Bank {
	return &Bank{trie: patricia.NewTrie()}
}

// Add normalizes keyword and stores it with clue, replacing an existing
// clue. It reports false when the keyword is not a valid word.
func (b *Bank) Add(keyword, clue string) bool {
	k, ok := Normalize(keyword)
	if !ok {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.trie.Insert(patricia.Prefix(k), clue) {
		b.size++
	} else {
		b.trie.Set(patricia.Prefix(k), clue)
	}
	return true
}

// AddAll adds every pair of words and returns the keywords that were rejected.
func (b *Bank) AddAll(words map[string]string) []string {
	var rejected []string
	for k, clue := range words {
		if !b.Add(k, clue) {
			rejected = append(rejected, k)
		}
	}
	sort.Strings(rejected)
	return rejected
}

func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Clue returns the clue stored for keyword.
func (b *Bank) Clue(keyword string) (string, bool) {
	k, ok := Normalize(keyword)
	if !ok {
		return "", false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	item := b.trie.Get(patricia.Prefix(k))
	if item == nil {
		return "", false
	}
	return item.(string), true
}

// Lookup returns the entries whose keyword starts with prefix, sorted by
// keyword. An empty prefix matches everything; limit <= 0 means no limit.
func (b *Bank) Lookup(prefix string, limit int) []Entry {
	var key patricia.Prefix
	if prefix != "" {
		k, ok := Normalize(prefix)
		if !ok {
			return nil
		}
		key = patricia.Prefix(k)
	}

	var out []Entry
	collect := func(p patricia.Prefix, item patricia.Item) error {
		out = append(out, Entry{Keyword: string(p), Clue: item.(string)})
		return nil
	}
	b.mu.RLock()
	if key == nil {
		_ = b.trie.Visit(collect)
	} else {
		_ = b.trie.VisitSubtree(key, collect)
	}
	b.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Keyword < out[j].Keyword })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Dictionary returns a copy of the bank as a keyword to clue map.
func (b *Bank) Dictionary() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]string, b.size)
	_ = b.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		out[string(p)] = item.(string)
		return nil
	})
	return out
}
