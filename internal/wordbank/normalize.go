package wordbank

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var umlauts = strings.NewReplacer(
	"Ü", "UE",
	"Ö", "OE",
	"Ä", "AE",
	"ß", "SS",
	"ẞ", "SS",
)

// Normalize converts a keyword to the A-Z alphabet the generator works with:
// upper case, German umlauts spelled out and all other diacritics dropped.
// It reports false when the keyword is empty, contains anything but letters
// or has a letter that does not fold into A-Z.
func Normalize(keyword string) (string, bool) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", false
	}
	for _, r := range keyword {
		if !unicode.IsLetter(r) {
			return "", false
		}
	}

	keyword = umlauts.Replace(strings.ToUpper(keyword))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, keyword)
	if err != nil {
		return "", false
	}

	// Letters without a decomposition (Ø, Æ, Ł, Cyrillic) survive folding
	// and make the keyword unusable rather than being dropped.
	for _, r := range folded {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	return folded, true
}

// NormalizeAll normalizes every keyword of words, dropping invalid ones.
// When two keywords fold to the same form the alphabetically first one wins.
func NormalizeAll(words map[string]string) (map[string]string, []string) {
	out := make(map[string]string, len(words))
	var rejected []string
	origin := make(map[string]string, len(words))
	for k, clue := range words {
		n, ok := Normalize(k)
		if !ok {
			rejected = append(rejected, k)
			continue
		}
		if prev, dup := origin[n]; dup && prev < k {
			continue
		}
		origin[n] = k
		out[n] = strings.TrimSpace(clue)
	}
	sort.Strings(rejected)
	return out, rejected
}
