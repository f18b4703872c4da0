package domain

import (
	"sort"
	"strings"
	"unicode"
)

// TokenizeQuery lowercases a search query, splits it on whitespace and drops
// single-character tokens. Stop words are kept: a user typing them wants
// them matched.
func TokenizeQuery(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// ExtractKeywords pulls the most frequent meaningful words out of the given
// text fragments (URL, title, description). Non-word characters are treated
// as separators, words of one or two characters and stop words are dropped,
// and the MaxKeywords most frequent survivors are returned. Frequency ties
// keep first-seen order so output is deterministic.
func ExtractKeywords(h Heuristics, parts ...string) []string {
	text := strings.ToLower(strings.Join(parts, " "))

	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	counts := make(map[string]int)
	order := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) <= 2 {
			continue
		}
		if _, stop := h.StopWords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > h.MaxKeywords {
		order = order[:h.MaxKeywords]
	}
	return order
}

// Jaccard returns intersection size over union size of two word lists,
// or 0 when either list is empty.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, w := range a {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, w := range b {
		setB[w] = struct{}{}
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}
