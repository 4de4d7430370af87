package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodul/xpuzzle/internal/crossword"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wordList = `[words]
haus = "Gebäude"
baum = "Pflanze"
auto = "Fahrzeug"
rose = "Blume"
tisch = "Möbel"
lampe = "Leuchte"
igel = "Stacheltier"
nase = "Riechorgan"
ente = "Wasservogel"
1x = "ungültig"
`

func writeWords(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.toml")
	require.NoError(t, os.WriteFile(path, []byte(wordList), 0o644))
	return path
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeWords(t)

	out, err := runRoot(t, "generate", "--words", path,
		"--width", "10", "--height", "10", "--seed", "7", "--lang", "de", "--format", "json")
	require.NoError(t, err)

	var got struct {
		Grid      crossword.Grid    `json:"grid"`
		Entries   []crossword.Entry `json:"entries"`
		Remaining []string          `json:"remaining"`
		Seed      int64             `json:"seed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, int64(7), got.Seed)
	assert.Equal(t, 10, got.Grid.Width())
	assert.Equal(t, 10, got.Grid.Height())
	assert.Len(t, got.Entries, got.Grid.CountPlaced())
	assert.Equal(t, 9, len(got.Entries)+len(got.Remaining))
}

func TestGenerateTextIsReproducible(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeWords(t)
	args := []string{"generate", "--words", path,
		"--width", "9", "--height", "9", "--seed", "42", "--lang", "de", "--format", "text"}

	first, err := runRoot(t, args...)
	require.NoError(t, err)
	second, err := runRoot(t, args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "(seed 42)")
}

func TestGenerateErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeWords(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad format", []string{"--words", path, "--width", "9", "--height", "9", "--format", "xml"}, "unknown format"},
		{"too wide", []string{"--words", path, "--width", "31", "--height", "9", "--format", "text"}, "between 1 and 30"},
		{"missing file", []string{"--words", filepath.Join(t.TempDir(), "none.toml"), "--width", "9", "--height", "9", "--format", "text"}, "none.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, append([]string{"generate"}, tt.args...)...)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), "error %q should mention %q", err, tt.want)
		})
	}
}
