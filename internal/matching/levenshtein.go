package matching

import (
	"math"
	"strings"
)

// Levenshtein computes the edit distance between two strings, counting
// insertions, deletions and substitutions at cost 1 each. Operates on runes so
// multi-byte characters count as single edits.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two-row DP keeps memory at O(len(b)).
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Similarity scores how close two strings are after normalization, from 0
// (unrelated) to 100 (identical). Substring containment scores proportionally
// to how much of the longer string is covered; everything else falls through
// to edit distance.
func Similarity(a, b string) int {
	na := Normalize(a)
	nb := Normalize(b)

	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 100
	}

	la := len([]rune(na))
	lb := len([]rune(nb))
	shorter, longer := la, lb
	if shorter > longer {
		shorter, longer = longer, shorter
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return clampScore(int(math.Round(float64(shorter) / float64(longer) * 100)))
	}

	d := Levenshtein(na, nb)
	return clampScore(int(math.Round((1 - float64(d)/float64(longer)) * 100)))
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
