// Package heuristicsfile loads optional overrides for the similarity
// heuristic tables from a YAML file. An absent file means defaults; a
// present file replaces only the sections it defines.
package heuristicsfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/marque/internal/domain"
)

// fileSchema mirrors the heuristics YAML. All sections are optional.
type fileSchema struct {
	StopWords  []string            `yaml:"stop_words"`
	DomainTags map[string][]string `yaml:"domain_tags"`
	PathTags   []struct {
		Keyword string   `yaml:"keyword"`
		Tags    []string `yaml:"tags"`
	} `yaml:"path_tags"`
	CategoryRules []struct {
		Category        string   `yaml:"category"`
		DomainFragments []string `yaml:"domain_fragments"`
		URLFragments    []string `yaml:"url_fragments"`
	} `yaml:"category_rules"`
	CategoryFallback string `yaml:"category_fallback"`

	Thresholds struct {
		MinScore          *float64 `yaml:"min_score"`
		PathOverlapMin    *float64 `yaml:"path_overlap_min"`
		KeywordOverlapMin *float64 `yaml:"keyword_overlap_min"`
		TagOverlapMin     *float64 `yaml:"tag_overlap_min"`
	} `yaml:"thresholds"`
}

// Load reads the heuristics file at path and applies its overrides on top
// of base. An empty path returns base unchanged.
func Load(path string, base domain.Heuristics) (domain.Heuristics, error) {
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read heuristics file: %w", err)
	}

	var schema fileSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return base, fmt.Errorf("failed to parse heuristics yaml: %w", err)
	}

	return apply(base, schema), nil
}

func apply(h domain.Heuristics, s fileSchema) domain.Heuristics {
	if len(s.StopWords) > 0 {
		set := make(map[string]struct{}, len(s.StopWords))
		for _, w := range s.StopWords {
			set[w] = struct{}{}
		}
		h.StopWords = set
	}

	if len(s.DomainTags) > 0 {
		h.DomainTags = s.DomainTags
	}

	if len(s.PathTags) > 0 {
		rules := make([]domain.PathTagRule, 0, len(s.PathTags))
		for _, r := range s.PathTags {
			rules = append(rules, domain.PathTagRule{Keyword: r.Keyword, Tags: r.Tags})
		}
		h.PathTags = rules
	}

	if len(s.CategoryRules) > 0 {
		rules := make([]domain.CategoryRule, 0, len(s.CategoryRules))
		for _, r := range s.CategoryRules {
			rules = append(rules, domain.CategoryRule{
				Category:        r.Category,
				DomainFragments: r.DomainFragments,
				URLFragments:    r.URLFragments,
			})
		}
		h.CategoryRules = rules
	}

	if s.CategoryFallback != "" {
		h.CategoryFallback = s.CategoryFallback
	}

	if v := s.Thresholds.MinScore; v != nil {
		h.MinScore = *v
	}
	if v := s.Thresholds.PathOverlapMin; v != nil {
		h.PathOverlapMin = *v
	}
	if v := s.Thresholds.KeywordOverlapMin; v != nil {
		h.KeywordOverlapMin = *v
	}
	if v := s.Thresholds.TagOverlapMin; v != nil {
		h.TagOverlapMin = *v
	}

	return h
}
