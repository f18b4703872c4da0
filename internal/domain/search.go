package domain

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// FieldSpec describes one searchable bookmark attribute: how to read it and
// how much a match in it weighs. Fields are processed uniformly so adding a
// field is a single new entry here.
type FieldSpec struct {
	Name    string
	Weight  float64
	Extract func(*Bookmark) string
}

// SearchFields is the ordered list of searchable fields with their weights.
// Title dominates, user tags outrank AI tags, the AI summary is a weak
// signal on its own.
var SearchFields = []FieldSpec{
	{Name: "title", Weight: 3.0, Extract: func(b *Bookmark) string { return b.Title }},
	{Name: "description", Weight: 2.0, Extract: func(b *Bookmark) string { return b.Description }},
	{Name: "url", Weight: 1.5, Extract: func(b *Bookmark) string { return b.URL }},
	{Name: "tags", Weight: 2.5, Extract: func(b *Bookmark) string { return strings.Join(b.Tags, " ") }},
	{Name: "ai_tags", Weight: 2.0, Extract: func(b *Bookmark) string { return strings.Join(b.AITags, " ") }},
	{Name: "category", Weight: 1.5, Extract: func(b *Bookmark) string { return b.Category }},
	{Name: "ai_category", Weight: 1.5, Extract: func(b *Bookmark) string { return b.AICategory }},
	{Name: "ai_summary", Weight: 1.0, Extract: func(b *Bookmark) string { return b.AISummary }},
}

// Per-match and bonus weights for term scoring.
const (
	scoreExactWordMatch = 1.0
	scoreSubstringMatch = 0.3

	bonusContentStart = 0.5
	bonusNearStart    = 0.3

	bonusTitleExact = 0.5
	bonusTagsExact  = 0.4
	bonusURLSegment = 0.2

	bonusPhraseFactor = 0.5
)

// SortMode selects result ordering for the extended search variant.
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortDate      SortMode = "date"
	SortTitle     SortMode = "title"
)

// SearchFilters narrows the corpus before scoring. Zero values mean
// "no constraint"; filters compose.
type SearchFilters struct {
	// Category keeps bookmarks whose category or ai_category equals it.
	Category string

	// Categories keeps bookmarks matching any listed category.
	Categories []string

	// Tags keeps bookmarks whose tags or ai_tags intersect the list.
	Tags []string

	// CreatedFrom/CreatedTo bound created_at inclusively.
	// Zero times leave the corresponding side open.
	CreatedFrom time.Time
	CreatedTo   time.Time

	// SortBy defaults to relevance.
	SortBy SortMode
}

// tokenMatcher carries one query token with its precompiled word-boundary
// pattern, so the regex is built once per token rather than per field.
type tokenMatcher struct {
	token string
	word  *regexp.Regexp
}

func compileTokens(tokens []string) []tokenMatcher {
	matchers := make([]tokenMatcher, 0, len(tokens))
	for _, t := range tokens {
		matchers = append(matchers, tokenMatcher{
			token: t,
			word:  regexp.MustCompile(`\b` + regexp.QuoteMeta(t) + `\b`),
		})
	}
	return matchers
}

// Search scores every corpus bookmark that passes the filters against the
// query and returns matches ordered per filters.SortBy. Bookmarks with a
// zero score are dropped; relevance ties keep corpus order (stable sort).
//
// The caller is responsible for rejecting empty queries and for pagination.
func Search(query string, corpus []*Bookmark, filters SearchFilters) []SearchResult {
	tokens := TokenizeQuery(query)
	matchers := compileTokens(tokens)
	phrase := strings.Join(tokens, " ")

	results := make([]SearchResult, 0)
	for _, b := range corpus {
		if !matchesFilters(b, filters) {
			continue
		}
		res := scoreBookmark(matchers, phrase, b)
		if res.Score > 0 {
			results = append(results, res)
		}
	}

	switch filters.SortBy {
	case SortDate:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Bookmark.CreatedAt.After(results[j].Bookmark.CreatedAt)
		})
	case SortTitle:
		sort.SliceStable(results, func(i, j int) bool {
			return strings.ToLower(results[i].Bookmark.Title) < strings.ToLower(results[j].Bookmark.Title)
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	}

	return results
}

func matchesFilters(b *Bookmark, f SearchFilters) bool {
	if f.Category != "" && b.Category != f.Category && b.AICategory != f.Category {
		return false
	}

	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if b.Category == c || (b.AICategory != "" && b.AICategory == c) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.Tags) > 0 {
		own := make(map[string]struct{}, len(b.Tags)+len(b.AITags))
		for _, t := range b.Tags {
			own[t] = struct{}{}
		}
		for _, t := range b.AITags {
			own[t] = struct{}{}
		}
		found := false
		for _, t := range f.Tags {
			if _, ok := own[t]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if !f.CreatedFrom.IsZero() && b.CreatedAt.Before(f.CreatedFrom) {
		return false
	}
	if !f.CreatedTo.IsZero() && b.CreatedAt.After(f.CreatedTo) {
		return false
	}

	return true
}

// scoreBookmark accumulates weighted per-field token scores plus the phrase
// bonus for one bookmark.
func scoreBookmark(matchers []tokenMatcher, phrase string, b *Bookmark) SearchResult {
	var total float64
	matched := make([]string, 0, 2)

	contents := make([]string, len(SearchFields))
	for i, fs := range SearchFields {
		contents[i] = strings.ToLower(fs.Extract(b))
	}

	for i, fs := range SearchFields {
		content := contents[i]
		if content == "" {
			continue
		}

		var fieldScore float64
		hasMatch := false
		for _, m := range matchers {
			ts := termScore(m, content, fs.Name)
			if ts > 0 {
				fieldScore += ts
				hasMatch = true
			}
		}

		if hasMatch {
			total += fieldScore * fs.Weight
			matched = append(matched, fs.Name)
		}
	}

	// Verbatim phrase occurrences boost the whole bookmark once per field.
	if phrase != "" {
		for i, fs := range SearchFields {
			if contents[i] != "" && strings.Contains(contents[i], phrase) {
				total += fs.Weight * bonusPhraseFactor
				if !containsString(matched, fs.Name) {
					matched = append(matched, fs.Name)
				}
			}
		}
	}

	return SearchResult{Bookmark: b, Score: total, MatchedFields: matched}
}

// termScore rates one token against one lowercased field content.
// Word-boundary hits count full weight; when there are none, bare substring
// hits count at a discount. Early occurrences and matches in identifying
// fields earn fixed bonuses.
func termScore(m tokenMatcher, content, field string) float64 {
	if !strings.Contains(content, m.token) {
		return 0
	}

	var score float64

	exact := len(m.word.FindAllStringIndex(content, -1))
	score += float64(exact) * scoreExactWordMatch
	if exact == 0 {
		score += float64(strings.Count(content, m.token)) * scoreSubstringMatch
	}

	switch idx := strings.Index(content, m.token); {
	case idx == 0:
		score += bonusContentStart
	case float64(idx) < float64(len(content))*0.1:
		score += bonusNearStart
	}

	switch field {
	case "title":
		if exact > 0 {
			score += bonusTitleExact
		}
	case "tags":
		if exact > 0 {
			score += bonusTagsExact
		}
	case "url":
		if strings.Contains(content, "/"+m.token+"/") || strings.Contains(content, m.token+".") {
			score += bonusURLSegment
		}
	}

	return score
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
