package words

// Values are the per-letter tile values used for scoring.
var Values = [26]int{
	1, 3, 3, 2, 1, 4, 2, 4, 1, 8, // A-J
	5, 1, 3, 1, 1, 3, 10, 1, 1, 1, // K-T
	1, 4, 4, 8, 4, 10, // U-Z
}

// LetterValue returns the tile value of r in either case, or 0.
func LetterValue(r rune) int {
	switch {
	case r >= 'A' && r <= 'Z':
		return Values[r-'A']
	case r >= 'a' && r <= 'z':
		return Values[r-'a']
	}
	return 0
}

// Score is the sum of the letter values multiplied by the word length.
// Length rules are enforced by the detector, not here.
func Score(word string) int {
	sum := 0
	for _, r := range word {
		sum += LetterValue(r)
	}
	return sum * len(word)
}
