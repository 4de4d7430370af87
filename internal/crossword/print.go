package crossword

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Print writes an ASCII rendering of the grid followed by the numbered clue
// list. Clue cells show their number, letter cells their letter and all other
// cells 0.
func (g *Grid) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	separator := strings.Repeat("-----", g.width)

	var clues []string
	for _, row := range g.cells {
		var line strings.Builder
		for _, c := range row {
			switch c.Kind {
			case ClueStart:
				clues = append(clues, c.Encode())
				fmt.Fprintf(&line, " |%2d", len(clues))
			case Letter:
				fmt.Fprintf(&line, " | %c", c.Char)
			default:
				line.WriteString(" | 0")
			}
		}
		line.WriteString(" |")
		fmt.Fprintln(bw, separator)
		fmt.Fprintln(bw, line.String())
	}
	fmt.Fprintln(bw, separator)

	fmt.Fprint(bw, "\nClues:\n--------\n")
	for i, clue := range clues {
		fmt.Fprintf(bw, "%d: %s\n", i+1, clue)
	}
	return bw.Flush()
}

// String returns the Print rendering.
func (g *Grid) String() string {
	var sb strings.Builder
	_ = g.Print(&sb)
	return sb.String()
}
