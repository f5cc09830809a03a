// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patterns

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Count returns the number of non-overlapping whole-word occurrences of
// phrase in lower. lower must already be lower-cased.
func Count(lower, phrase string) int {
	return len(Positions(lower, phrase))
}

// Positions returns the byte offsets just past each non-overlapping
// whole-word occurrence of phrase in lower.
func Positions(lower, phrase string) []int {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return nil
	}
	var ends []int
	for i := 0; i < len(lower); {
		j := strings.Index(lower[i:], phrase)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(phrase)
		if boundaryBefore(lower, start, phrase) && boundaryAfter(lower, end, phrase) {
			ends = append(ends, end)
			i = end
			continue
		}
		i = start + 1
	}
	return ends
}

// Contains reports whether phrase occurs in lower as a whole word.
func Contains(lower, phrase string) bool {
	return Count(lower, phrase) > 0
}

// CountAll sums Count over every phrase.
func CountAll(lower string, phrases []string) int {
	total := 0
	for _, p := range phrases {
		total += Count(lower, p)
	}
	return total
}

// Found returns the distinct phrases present in lower, in table order.
func Found(lower string, phrases []string) []string {
	var found []string
	seen := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		if Contains(lower, p) {
			found = append(found, p)
		}
	}
	return found
}

// boundaryBefore reports whether the match at start is not glued to a
// preceding word character. Phrases that begin with punctuation match anywhere.
func boundaryBefore(s string, start int, phrase string) bool {
	first, _ := utf8.DecodeRuneInString(phrase)
	if !isWord(first) || start == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(s[:start])
	return !isWord(prev)
}

func boundaryAfter(s string, end int, phrase string) bool {
	last, _ := utf8.DecodeLastRuneInString(phrase)
	if !isWord(last) || end >= len(s) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(s[end:])
	return !isWord(next)
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
