package domain

// Heuristics groups every hand-tuned table and threshold used by the
// similarity scorer. Scorers receive a Heuristics value instead of reaching
// into package globals so tests can inject trimmed fixtures.
//
// The thresholds are empirical constants carried over from production
// tuning; override them via configuration, do not re-derive them.
type Heuristics struct {
	// StopWords are excluded from keyword extraction. The set combines a
	// standard English list with web noise tokens (schemes, TLDs, file
	// extensions) that dominate URL-derived text.
	StopWords map[string]struct{}

	// DomainTags maps a domain fragment to the tags implied by it.
	DomainTags map[string][]string

	// PathTags derives tags from keywords found anywhere in the URL.
	// Rules are ordered so derived tag lists are deterministic.
	PathTags []PathTagRule

	// CategoryRules infer a coarse category from a bare URL.
	// First matching rule wins; CategoryFallback applies when none do.
	CategoryRules    []CategoryRule
	CategoryFallback string

	// MaxKeywords caps the frequency-ranked keyword list per text blob.
	MaxKeywords int

	// MinScore is the floor below which a candidate is not considered
	// similar at all.
	MinScore float64

	// PathOverlapMin gates the "Similar URL structure" factor.
	PathOverlapMin float64

	// KeywordOverlapMin gates the "Similar keywords" factor.
	KeywordOverlapMin float64

	// TagOverlapMin gates the "Similar tags" factor.
	TagOverlapMin float64
}

// PathTagRule adds tags when the lowercased URL contains Keyword.
type PathTagRule struct {
	Keyword string
	Tags    []string
}

// CategoryRule assigns Category when the domain contains one of
// DomainFragments or the lowercased URL contains one of URLFragments.
type CategoryRule struct {
	Category        string
	DomainFragments []string
	URLFragments    []string
}

// DefaultHeuristics returns the production tables and thresholds.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		StopWords: defaultStopWords(),
		DomainTags: map[string][]string{
			"github.com":        {"code", "programming", "development"},
			"youtube.com":       {"video", "entertainment"},
			"stackoverflow.com": {"programming", "help", "development"},
			"medium.com":        {"article", "blog", "reading"},
			"wikipedia.org":     {"reference", "encyclopedia", "knowledge"},
		},
		PathTags: []PathTagRule{
			{Keyword: "tutorial", Tags: []string{"tutorial", "learning"}},
			{Keyword: "api", Tags: []string{"api", "documentation"}},
			{Keyword: "docs", Tags: []string{"documentation", "reference"}},
			{Keyword: "blog", Tags: []string{"blog", "article"}},
		},
		CategoryRules: []CategoryRule{
			{Category: "development", DomainFragments: []string{"github.com"}, URLFragments: []string{"code", "programming"}},
			{Category: "entertainment", DomainFragments: []string{"youtube.com", "netflix.com"}},
			{Category: "news", DomainFragments: []string{"news", "bbc", "cnn"}},
			{Category: "learning", URLFragments: []string{"tutorial", "learn"}},
			{Category: "shopping", DomainFragments: []string{"amazon"}, URLFragments: []string{"shop"}},
		},
		CategoryFallback: "general",

		MaxKeywords:       10,
		MinScore:          0.3,
		PathOverlapMin:    0.5,
		KeywordOverlapMin: 0.3,
		TagOverlapMin:     0.2,
	}
}

func defaultStopWords() map[string]struct{} {
	words := []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "as", "is", "was", "are", "were", "be",
		"been", "being", "have", "has", "had", "do", "does", "did", "will",
		"would", "could", "should", "may", "might", "must", "can", "this",
		"that", "these", "those", "i", "you", "he", "she", "it", "we", "they",
		"me", "him", "her", "us", "them", "my", "your", "his", "its", "our",
		"their",
		// web noise
		"www", "com", "org", "net", "edu", "gov",
		"http", "https", "html", "php", "asp", "jsp",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
