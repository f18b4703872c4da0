package domain

import "strings"

// DetectorConfig holds the duplicate-detection thresholds and site identity
// rules. The numeric values are hand-tuned production constants.
type DetectorConfig struct {
	// PathSimilarityMin is the floor above which two same-host paths are
	// considered near-duplicates.
	PathSimilarityMin float64

	// DuplicateMin is the overall floor above which the best candidate is
	// reported as a duplicate.
	DuplicateMin float64

	// SitePatterns are the per-site identity extraction rules.
	SitePatterns []SitePattern
}

// DefaultDetectorConfig returns the production thresholds (0.8 path,
// 0.85 overall) with the built-in site patterns.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		PathSimilarityMin: 0.8,
		DuplicateMin:      0.85,
		SitePatterns:      DefaultSitePatterns(),
	}
}

// DuplicateDetector finds exact or near-duplicate bookmarks for a candidate
// URL. It is stateless; one instance can serve concurrent calls.
type DuplicateDetector struct {
	cfg DetectorConfig
}

// NewDuplicateDetector creates a detector with the given config.
func NewDuplicateDetector(cfg DetectorConfig) *DuplicateDetector {
	return &DuplicateDetector{cfg: cfg}
}

// Check reports whether targetURL duplicates a bookmark in the corpus.
//
// Exact duplicates are equal normalized forms. Failing that, candidates on
// the same host are compared by positional path similarity, and recognized
// sites (YouTube, GitHub, Medium, Reddit) are additionally compared by
// extracted content identity, which can match across URL formats. The single
// best candidate wins, and only above the duplicate threshold.
//
// Corpus entries with unparseable URLs are skipped, never fatal.
func (d *DuplicateDetector) Check(targetURL string, corpus []*Bookmark) DuplicateVerdict {
	normalized := NormalizeURL(targetURL)
	for _, b := range corpus {
		if NormalizeURL(b.URL) == normalized {
			return DuplicateVerdict{
				IsDuplicate: true,
				Existing:    b.Summary(),
				MatchType:   MatchExact,
			}
		}
	}

	return d.findNearDuplicate(targetURL, corpus)
}

func (d *DuplicateDetector) findNearDuplicate(targetURL string, corpus []*Bookmark) DuplicateVerdict {
	target, err := parseAbsURL(targetURL)
	if err != nil {
		return DuplicateVerdict{IsDuplicate: false}
	}
	targetHost := strings.TrimPrefix(strings.ToLower(target.Hostname()), "www.")

	var (
		best       *Bookmark
		bestScore  float64
		bestReason string
	)

	for _, b := range corpus {
		candidate, err := parseAbsURL(b.URL)
		if err != nil {
			continue
		}
		candidateHost := strings.TrimPrefix(strings.ToLower(candidate.Hostname()), "www.")

		if candidateHost == targetHost {
			sim := PathSimilarity(target.Path, candidate.Path)
			if sim > d.cfg.PathSimilarityMin && sim > bestScore {
				best = b
				bestScore = sim
				if sim == 1 {
					bestReason = "Same path"
				} else {
					bestReason = "Very similar path"
				}
			}
		}

		// Site identity can match across hosts (youtu.be vs youtube.com)
		// and overrides the generic path comparison.
		if siteScore := siteIdentityScore(d.cfg.SitePatterns, target, candidate); siteScore > 0.9 && siteScore > bestScore {
			best = b
			bestScore = siteScore
			bestReason = "Same content, different URL format"
		}
	}

	if best == nil || bestScore <= d.cfg.DuplicateMin {
		return DuplicateVerdict{IsDuplicate: false}
	}

	return DuplicateVerdict{
		IsDuplicate: true,
		Existing:    best.Summary(),
		MatchType:   MatchSimilar,
		Similarity:  bestScore,
		Reason:      bestReason,
	}
}
