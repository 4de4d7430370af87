// Package frequency ranks keywords by the average frequency of their letters
// in a given language, so that words made of common letters are tried first.
package frequency

import (
	"cmp"
	"slices"
	"strings"
)

// Table maps an uppercase letter to its frequency in percent.
type Table map[rune]float64

// German letter frequencies.
var German = Table{
	'E': 17.40, 'N': 9.78, 'I': 7.55, 'S': 7.27, 'R': 7.00, 'A': 6.51,
	'T': 6.15, 'D': 5.08, 'H': 4.76, 'U': 4.35, 'L': 3.44, 'C': 3.06,
	'G': 3.01, 'M': 2.53, 'O': 2.51, 'B': 1.89, 'W': 1.89, 'F': 1.66,
	'K': 1.21, 'Z': 1.13, 'P': 0.79, 'V': 0.67, 'J': 0.27, 'Y': 0.04,
	'X': 0.03, 'Q': 0.02,
}

// English letter frequencies.
var English = Table{
	'E': 12.70, 'T': 9.06, 'A': 8.17, 'O': 7.51, 'I': 6.97, 'N': 6.75,
	'S': 6.33, 'H': 6.09, 'R': 5.99, 'D': 4.25, 'L': 4.03, 'C': 2.78,
	'U': 2.76, 'M': 2.41, 'W': 2.36, 'F': 2.23, 'G': 2.02, 'Y': 1.97,
	'P': 1.93, 'B': 1.29, 'V': 0.98, 'K': 0.77, 'J': 0.15, 'X': 0.15,
	'Q': 0.10, 'Z': 0.07,
}

// ForLanguage returns the table for a language code, defaulting to German.
func ForLanguage(code string) Table {
	switch strings.ToLower(code) {
	case "en", "english":
		return English
	default:
		return German
	}
}

// Average returns the mean frequency of the letters in word.
// Letters missing from the table count as zero.
func (t Table) Average(word string) float64 {
	var sum float64
	n := 0
	for _, r := range word {
		sum += t[r]
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Ranking is an ordered keyword list, best average frequency first.
type Ranking struct {
	words []string
}

// Rank orders keywords by descending average frequency; ties sort alphabetically.
func Rank(t Table, keywords []string) *Ranking {
	type scored struct {
		word  string
		score float64
	}
	list := make([]scored, 0, len(keywords))
	for _, k := range keywords {
		list = append(list, scored{word: k, score: t.Average(k)})
	}
	slices.SortFunc(list, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return strings.Compare(a.word, b.word)
	})

	r := &Ranking{words: make([]string, len(list))}
	for i, s := range list {
		r.words[i] = s.word
	}
	return r
}

func (r *Ranking) Len() int {
	return len(r.words)
}

// Words returns a copy of the ranking.
func (r *Ranking) Words() []string {
	return slices.Clone(r.words)
}

// Contains reports whether word is still ranked.
func (r *Ranking) Contains(word string) bool {
	return slices.Contains(r.words, word)
}

// Remove drops word from the ranking and reports whether it was present.
func (r *Ranking) Remove(word string) bool {
	i := slices.Index(r.words, word)
	if i < 0 {
		return false
	}
	r.words = slices.Delete(r.words, i, i+1)
	return true
}
