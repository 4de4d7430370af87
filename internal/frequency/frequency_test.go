package frequency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverage(t *testing.T) {
	assert.InDelta(t, (17.40*2+9.78)/3, German.Average("EEN"), 1e-9)
	assert.InDelta(t, 0.0, German.Average(""), 1e-9)
	assert.InDelta(t, 17.40/2, German.Average("E1"), 1e-9, "unknown letters count zero")
}

func TestRank(t *testing.T) {
	// B and W share a frequency in German.
	r := Rank(German, []string{"XYZ", "EEE", "EW", "EB"})

	require.Equal(t, []string{"EEE", "EB", "EW", "XYZ"}, r.Words(), "ties sort alphabetically")
	assert.Equal(t, 4, r.Len())

	assert.True(t, r.Remove("EB"))
	assert.False(t, r.Remove("EB"))
	assert.False(t, r.Contains("EB"))
	assert.Equal(t, []string{"EEE", "EW", "XYZ"}, r.Words())
}

func TestRankWordsIsACopy(t *testing.T) {
	r := Rank(English, []string{"THE", "ZZZ"})
	words := r.Words()
	words[0] = "MUTATED"
	assert.Equal(t, "THE", r.Words()[0])
}

func TestForLanguage(t *testing.T) {
	assert.Equal(t, English, ForLanguage("EN"))
	assert.Equal(t, German, ForLanguage("de"))
	assert.Equal(t, German, ForLanguage(""))
}
