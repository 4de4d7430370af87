package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bodul/xpuzzle/internal/crossword"
	"github.com/bodul/xpuzzle/internal/frequency"
	"github.com/bodul/xpuzzle/internal/logger"
	"github.com/bodul/xpuzzle/internal/wordbank"
	"github.com/spf13/cobra"
)

var (
	wordsFile string
	width     int
	height    int
	seed      int64
	language  string
	format    string
)

func init() {
	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a puzzle from a word list",
		Long: `Generate one puzzle from a word list and print it.

The word list is either a TOML file with a [words] table of KEYWORD = "clue"
pairs or a text file with one "KEYWORD clue" pair per line.

Without --width and --height the grid is sized from the words and grown until
they are used up or the maximum size is reached.

Examples:
  xpuzzle generate --words words.toml
  xpuzzle generate --words words.txt --width 15 --height 12 --seed 42
  xpuzzle generate --words words.toml --lang en --format json`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	genCmd.Flags().StringVarP(&wordsFile, "words", "w", "", "Word list file (.toml or text)")
	genCmd.Flags().IntVar(&width, "width", 0, "Grid width (requires --height)")
	genCmd.Flags().IntVar(&height, "height", 0, "Grid height (requires --width)")
	genCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = time based)")
	genCmd.Flags().StringVar(&language, "lang", "", "Letter frequency table: de or en (default from config)")
	genCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")
	_ = genCmd.MarkFlagRequired("words")
	genCmd.MarkFlagsRequiredTogether("width", "height")

	rootCmd.AddCommand(genCmd)
}

type generateOutput struct {
	Grid      *crossword.Grid   `json:"grid"`
	Entries   []crossword.Entry `json:"entries"`
	Remaining []string          `json:"remaining"`
	Seed      int64             `json:"seed"`
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (use text or json)", format)
	}
	if width < 0 || height < 0 || width > crossword.MaxDimension || height > crossword.MaxDimension {
		return fmt.Errorf("width and height must be between 1 and %d", crossword.MaxDimension)
	}

	log := logger.NewTo(os.Stderr, "generate")

	words, rejected, err := wordbank.LoadFile(wordsFile)
	if err != nil {
		return err
	}
	if len(rejected) > 0 {
		log.Warnf("Skipped invalid keywords: %s", strings.Join(rejected, ", "))
	}
	if len(words) == 0 {
		return errors.New("word list holds no valid keywords")
	}

	lang := language
	if lang == "" {
		lang = cfg.Generator.Language
	}
	g := crossword.New(words, &crossword.Options{
		Seed:   seed,
		Table:  frequency.ForLanguage(lang),
		Logger: logger.NewTo(os.Stderr, "crossword"),
	})

	var grid *crossword.Grid
	if width > 0 {
		grid = g.GenerateRandom(width, height)
	} else {
		grid = g.GenerateFromDictionary()
	}
	remaining := g.Dictionary().Keywords()

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(generateOutput{
			Grid:      grid,
			Entries:   grid.Entries(),
			Remaining: remaining,
			Seed:      g.Seed(),
		})
	}

	if err := grid.Print(out); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nPlaced %d of %d words (seed %d)\n", grid.CountPlaced(), len(words), g.Seed())
	if len(remaining) > 0 {
		fmt.Fprintf(out, "Not placed: %s\n", strings.Join(remaining, ", "))
	}
	return nil
}
