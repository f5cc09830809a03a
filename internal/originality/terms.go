// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package originality

import (
	"regexp"
	"sort"
)

var termRe = regexp.MustCompile(`[\p{L}\p{N}]+`)

// stopwords are dropped from TF-IDF vectors.
var stopwords = map[string]bool{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and",
		"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
		"between", "both", "but", "by", "can", "could", "did", "do", "does", "doing", "down",
		"during", "each", "et", "al", "few", "for", "from", "further", "had", "has", "have",
		"having", "he", "her", "here", "hers", "him", "his", "how", "however", "i", "if", "in",
		"into", "is", "it", "its", "itself", "just", "may", "me", "might", "more", "most",
		"must", "my", "no", "nor", "not", "now", "of", "off", "on", "once", "only", "or",
		"other", "our", "ours", "out", "over", "own", "same", "she", "should", "so", "some",
		"such", "than", "that", "the", "their", "theirs", "them", "then", "there", "these",
		"they", "this", "those", "through", "thus", "to", "too", "under", "until", "up",
		"upon", "us", "very", "was", "we", "were", "what", "when", "where", "which", "while",
		"who", "whom", "why", "will", "with", "would", "you", "your", "yours",
	} {
		stopwords[w] = true
	}
}

// termCounts tokenizes lower-cased text into content terms.
func termCounts(lower string) map[string]int {
	counts := make(map[string]int)
	for _, t := range termRe.FindAllString(lower, -1) {
		if len(t) < 2 || stopwords[t] {
			continue
		}
		counts[t]++
	}
	return counts
}

func sortedTerms(counts map[string]int) []string {
	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}
