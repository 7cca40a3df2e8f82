package matching

import "strings"

// similarityThreshold is the minimum relative edit-distance similarity for
// two longer strings to be considered the same answer.
const similarityThreshold = 0.6

// LooselyMatches decides whether two already-normalized strings should be
// treated as the same answer. Both inputs must have passed through
// Normalize.
//
// Rules are tried in order, first satisfied wins:
//  1. either string empty: no match (empty never matches, not even empty)
//  2. exact equality
//  3. the longer string contains the shorter as a contiguous substring
//  4. shorter has length <= 2 and is a subsequence of the longer
//  5. shorter has length exactly 3, is a subsequence of the longer, and the
//     full edit distance is <= 2
//  6. relative similarity 1 - dist/maxLen >= 0.6
//
// Strings of three or fewer characters get the stricter subsequence gates
// because plain edit distance over-matches at that length ("tv" vs "to").
func LooselyMatches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	if strings.Contains(longer, shorter) {
		return true
	}

	if len(shorter) <= 2 {
		return isSubsequence(shorter, longer)
	}
	if len(shorter) == 3 {
		if isSubsequence(shorter, longer) && Levenshtein(a, b) <= 2 {
			return true
		}
	}

	dist := Levenshtein(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	similarity := 1.0 - float64(dist)/float64(maxLen)
	return similarity >= similarityThreshold
}

// isSubsequence reports whether the characters of needle appear in order,
// not necessarily contiguously, within haystack.
func isSubsequence(needle, haystack string) bool {
	if needle == "" {
		return true
	}
	i := 0
	nr := []rune(needle)
	for _, r := range haystack {
		if r == nr[i] {
			i++
			if i == len(nr) {
				return true
			}
		}
	}
	return false
}
