package crossword

import (
	"maps"
	"slices"
)

// Dictionary is the working set of keyword -> clue pairs for one generation run.
// Keywords are kept sorted so that every sweep visits them in the same order.
type Dictionary struct {
	clues    map[string]string
	keywords []string
}

// NewDictionary copies words into a private dictionary.
func NewDictionary(words map[string]string) *Dictionary {
	d := &Dictionary{clues: make(map[string]string, len(words))}
	maps.Copy(d.clues, words)
	d.keywords = slices.Sorted(maps.Keys(d.clues))
	return d
}

func (d *Dictionary) Len() int {
	return len(d.keywords)
}

// Clue returns the clue for keyword.
func (d *Dictionary) Clue(keyword string) (string, bool) {
	c, ok := d.clues[keyword]
	return c, ok
}

// Keywords returns a sorted copy of the remaining keywords.
func (d *Dictionary) Keywords() []string {
	return slices.Clone(d.keywords)
}

// Remove deletes keyword and reports whether it was present.
func (d *Dictionary) Remove(keyword string) bool {
	if _, ok := d.clues[keyword]; !ok {
		return false
	}
	delete(d.clues, keyword)
	if i, found := slices.BinarySearch(d.keywords, keyword); found {
		d.keywords = slices.Delete(d.keywords, i, i+1)
	}
	return true
}

// Map returns a copy of the remaining pairs.
func (d *Dictionary) Map() map[string]string {
	return maps.Clone(d.clues)
}
