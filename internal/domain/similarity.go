package domain

import (
	"sort"
	"strings"
)

// Similarity factor weights. Domain identity dominates; heuristic category
// and tag inference only nudge the score.
const (
	weightSameDomain     = 0.4
	weightSimilarDomain  = 0.2
	weightPathOverlap    = 0.3
	weightKeywordOverlap = 0.2
	weightSameCategory   = 0.1
	weightTagOverlap     = 0.1
)

// SimilarityScorer ranks a corpus against a reference URL for "related
// bookmarks" suggestions. Stateless; safe for concurrent use.
type SimilarityScorer struct {
	h Heuristics
}

// NewSimilarityScorer creates a scorer with the given heuristic tables.
func NewSimilarityScorer(h Heuristics) *SimilarityScorer {
	return &SimilarityScorer{h: h}
}

// FindSimilar scores every corpus bookmark against targetURL on domain,
// path structure, keywords, inferred category and inferred tags, and
// returns the top matches above the minimum score, best first.
//
// The bookmark whose URL equals targetURL is excluded. Candidates with
// unparseable URLs are skipped. Scores are capped at 1.0.
func (s *SimilarityScorer) FindSimilar(targetURL string, corpus []*Bookmark, limit int) []SimilarityResult {
	target, err := parseAbsURL(targetURL)
	if err != nil {
		return []SimilarityResult{}
	}

	targetDomain := strings.TrimPrefix(strings.ToLower(target.Hostname()), "www.")
	targetKeywords := ExtractKeywords(s.h, targetURL)
	targetCategory := s.CategorizeURL(targetURL)
	targetTags := s.InferTags(targetURL)

	results := make([]SimilarityResult, 0)
	for _, b := range corpus {
		if b.URL == targetURL {
			continue
		}
		candidate, err := parseAbsURL(b.URL)
		if err != nil {
			continue
		}

		var score float64
		reasons := make([]string, 0, 3)

		candidateDomain := strings.TrimPrefix(strings.ToLower(candidate.Hostname()), "www.")
		switch {
		case candidateDomain == targetDomain:
			score += weightSameDomain
			reasons = append(reasons, "Same domain")
		case strings.Contains(targetDomain, candidateDomain) || strings.Contains(candidateDomain, targetDomain):
			score += weightSimilarDomain
			reasons = append(reasons, "Similar domain")
		}

		if overlap := SegmentOverlap(target.Path, candidate.Path); overlap > s.h.PathOverlapMin {
			score += overlap * weightPathOverlap
			reasons = append(reasons, "Similar URL structure")
		}

		candidateKeywords := ExtractKeywords(s.h, b.URL, b.Title, b.Description)
		if kw := Jaccard(targetKeywords, candidateKeywords); kw > s.h.KeywordOverlapMin {
			score += kw * weightKeywordOverlap
			reasons = append(reasons, "Similar keywords")
		}

		if b.AICategory != "" && targetCategory == b.AICategory {
			score += weightSameCategory
			reasons = append(reasons, "Same category")
		}

		if len(b.AITags) > 0 {
			if tags := Jaccard(targetTags, b.AITags); tags > s.h.TagOverlapMin {
				score += tags * weightTagOverlap
				reasons = append(reasons, "Similar tags")
			}
		}

		if score > 1 {
			score = 1
		}
		if score > s.h.MinScore {
			results = append(results, SimilarityResult{Bookmark: b, Score: score, Reasons: reasons})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// CategorizeURL infers a coarse category from a bare URL using the ordered
// category rules; first match wins, fallback applies otherwise.
func (s *SimilarityScorer) CategorizeURL(rawURL string) string {
	domain := ExtractDomain(rawURL)
	lower := strings.ToLower(rawURL)

	for _, rule := range s.h.CategoryRules {
		for _, frag := range rule.DomainFragments {
			if strings.Contains(domain, frag) {
				return rule.Category
			}
		}
		for _, frag := range rule.URLFragments {
			if strings.Contains(lower, frag) {
				return rule.Category
			}
		}
	}
	return s.h.CategoryFallback
}

// InferTags derives a tag set from a bare URL via the domain and
// path-keyword tables, preserving table order and de-duplicating.
func (s *SimilarityScorer) InferTags(rawURL string) []string {
	domain := ExtractDomain(rawURL)
	lower := strings.ToLower(rawURL)

	tags := make([]string, 0, 6)
	seen := make(map[string]struct{})
	add := func(list []string) {
		for _, t := range list {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}

	// Map iteration order is random; sort fragments for stable output.
	fragments := make([]string, 0, len(s.h.DomainTags))
	for frag := range s.h.DomainTags {
		fragments = append(fragments, frag)
	}
	sort.Strings(fragments)
	for _, frag := range fragments {
		if strings.Contains(domain, frag) {
			add(s.h.DomainTags[frag])
		}
	}

	for _, rule := range s.h.PathTags {
		if strings.Contains(lower, rule.Keyword) {
			add(rule.Tags)
		}
	}

	return tags
}
