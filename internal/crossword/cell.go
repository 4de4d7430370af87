package crossword

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// BlockedMarker is the encoded form of a terminator cell.
const BlockedMarker = "0"

var (
	ErrUnknownDirection = errors.New("unknown direction")
	ErrMalformedCell    = errors.New("malformed cell")
)

// Axis is the line a word runs along.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Perpendicular returns the other axis.
func (a Axis) Perpendicular() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Tag returns the one-character axis tag used in the text encoding.
func (a Axis) Tag() string {
	if a == Horizontal {
		return "h"
	}
	return "v"
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// CellKind discriminates the four cell variants.
type CellKind uint8

const (
	Empty CellKind = iota
	Blocked
	Letter
	ClueStart
)

// Cell is a single grid square. Only the fields matching Kind are meaningful:
// Char and Cross for Letter; Length, Direction and Clue for ClueStart.
type Cell struct {
	Kind CellKind

	Char rune
	// Cross is the axis a crossing word must run along to overlay this letter,
	// i.e. the axis perpendicular to the word that wrote it.
	Cross Axis

	Length    int
	Direction Direction
	Clue      string
}

// BlockedCell returns a terminator.
func BlockedCell() Cell {
	return Cell{Kind: Blocked}
}

// LetterCell returns a letter that a word running along cross may overlay.
func LetterCell(ch rune, cross Axis) Cell {
	return Cell{Kind: Letter, Char: ch, Cross: cross}
}

// ClueCell returns the origin cell of a placed word.
func ClueCell(length int, d Direction, clue string) Cell {
	return Cell{Kind: ClueStart, Length: length, Direction: d, Clue: clue}
}

// Occupied reports whether the cell holds a letter or a clue.
func (c Cell) Occupied() bool {
	return c.Kind == Letter || c.Kind == ClueStart
}

// Encode returns the text form consumed by renderers and exporters.
func (c Cell) Encode() string {
	switch c.Kind {
	case Blocked:
		return BlockedMarker
	case Letter:
		return string(c.Char) + c.Cross.Perpendicular().Tag()
	case ClueStart:
		return strconv.Itoa(c.Length) + " " + c.Direction.String() + ": " + c.Clue
	default:
		return ""
	}
}

func (c Cell) String() string {
	return c.Encode()
}

// DecodeCell parses the text form produced by Encode.
func DecodeCell(s string) (Cell, error) {
	switch {
	case s == "":
		return Cell{}, nil
	case s == BlockedMarker:
		return BlockedCell(), nil
	case utf8.RuneCountInString(s) == 2:
		ch, size := utf8.DecodeRuneInString(s)
		switch s[size:] {
		case "h":
			return LetterCell(ch, Vertical), nil
		case "v":
			return LetterCell(ch, Horizontal), nil
		}
		return Cell{}, fmt.Errorf("%w: bad axis tag in %q", ErrMalformedCell, s)
	}

	head, clue, ok := strings.Cut(s, ": ")
	if !ok {
		return Cell{}, fmt.Errorf("%w: %q", ErrMalformedCell, s)
	}
	num, dir, ok := strings.Cut(head, " ")
	if !ok {
		return Cell{}, fmt.Errorf("%w: %q", ErrMalformedCell, s)
	}
	length, err := strconv.Atoi(num)
	if err != nil || length <= 0 {
		return Cell{}, fmt.Errorf("%w: bad length in %q", ErrMalformedCell, s)
	}
	d, err := ParseDirection(dir)
	if err != nil {
		return Cell{}, fmt.Errorf("decode %q: %w", s, err)
	}
	return ClueCell(length, d, clue), nil
}
