package crossword

const (
	// MinDimension is the smallest auto-sized grid side.
	MinDimension = 8
	// GrowStep is how many rows or columns one growth round adds.
	GrowStep = 3
)

// EstimateSize derives starting dimensions for keywords. The width fits the
// longest word plus its clue and terminator, the height the second longest;
// both grow to half the word count when that is larger. Neither exceeds
// MaxDimension.
func EstimateSize(keywords []string) (width, height int) {
	width, height = MinDimension, MinDimension

	longest, second := twoLongest(keywords)
	if longest+2 > width {
		width = longest + 2
	}
	if second+2 > height {
		height = second + 2
	}

	side := (len(keywords) + 1) / 2
	width = max(width, side)
	height = max(height, side)

	return min(width, MaxDimension), min(height, MaxDimension)
}

func twoLongest(keywords []string) (longest, second int) {
	for _, k := range keywords {
		n := runeLen(k)
		switch {
		case n > longest:
			longest, second = n, longest
		case n > second:
			second = n
		}
	}
	return longest, second
}
