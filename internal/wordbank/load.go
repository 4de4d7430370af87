package wordbank

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type wordFile struct {
	Words map[string]string `toml:"words"`
}

// LoadFile reads a word list. Files ending in .toml hold a [words] table of
// keyword = "clue" pairs; anything else is read as plain text with one
// "KEYWORD clue" pair per line and # comments.
//
// Keywords are normalized; the ones that cannot be are returned separately.
func LoadFile(path string) (map[string]string, []string, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var wf wordFile
		if _, err := toml.DecodeFile(path, &wf); err != nil {
			return nil, nil, fmt.Errorf("parse word list %s: %w", path, err)
		}
		words, rejected := NormalizeAll(wf.Words)
		return words, rejected, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	return ReadText(f)
}

// ReadText reads the plain text word list format.
func ReadText(r io.Reader) (map[string]string, []string, error) {
	raw := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keyword, clue, _ := strings.Cut(line, " ")
		raw[keyword] = strings.TrimSpace(clue)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read word list: %w", err)
	}
	words, rejected := NormalizeAll(raw)
	return words, rejected, nil
}

// LoadInto reads path and adds its words to b. It returns the number of
// words added.
func (b *Bank) LoadInto(path string) (int, []string, error) {
	words, rejected, err := LoadFile(path)
	if err != nil {
		return 0, nil, err
	}
	rejected = append(rejected, b.AddAll(words)...)
	return len(words), rejected, nil
}
