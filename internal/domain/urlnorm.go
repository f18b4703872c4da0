package domain

import (
	"errors"
	"net/url"
	"strings"
)

// TrackingParams is the fixed set of query parameters stripped during URL
// normalization. These carry campaign/click attribution, never content
// identity, so two URLs differing only by them point at the same page.
var TrackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"fbclid", "gclid", "msclkid", "ref", "source", "campaign",
	"_ga", "_gl", "mc_cid", "mc_eid",
}

var errNotAbsolute = errors.New("url is not absolute")

// parseAbsURL parses raw as an absolute URL. Relative or scheme-less inputs
// are reported as parse failures so callers can take the degraded branch.
func parseAbsURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errNotAbsolute
	}
	return u, nil
}

// NormalizeURL returns the canonical form of a URL: tracking parameters
// removed, host lowercased with a leading "www." stripped, single trailing
// slash stripped, remaining query keys sorted, final string lowercased.
//
// Two URLs are exact duplicates iff their normalized forms are equal.
// If raw cannot be parsed as an absolute URL the lowercased input is
// returned unchanged; normalization never fails.
func NormalizeURL(raw string) string {
	u, err := parseAbsURL(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	q := u.Query()
	for _, p := range TrackingParams {
		q.Del(p)
	}
	// Repeated keys collapse to their first value so the comparison form is
	// unambiguous. Values.Encode sorts by key, which gives the
	// order-independent serialization.
	kept := make(url.Values, len(q))
	for k, vs := range q {
		if len(vs) > 0 {
			kept.Set(k, vs[0])
		}
	}
	u.RawQuery = kept.Encode()

	host := strings.ToLower(u.Host)
	u.Host = strings.TrimPrefix(host, "www.")

	if u.Path == "" {
		u.Path = "/"
	}
	if len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		u.Path = u.Path[:len(u.Path)-1]
	}

	return strings.ToLower(u.String())
}

// ExtractDomain returns the lowercased host of raw without a leading "www.",
// or "" when raw is not an absolute URL.
func ExtractDomain(raw string) string {
	u, err := parseAbsURL(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// pathSegments splits a URL path on "/" and drops empty segments.
func pathSegments(path string) []string {
	parts := strings.Split(path, "/")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

// isNumericID reports whether a path segment is purely numeric. Numeric
// segments at the same position are treated as interchangeable resource IDs.
func isNumericID(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PathSimilarity compares two URL paths segment by segment, position by
// position: identical segments count 1.0, two numeric IDs 0.7, one segment
// containing the other 0.5. The result is the segment score sum divided by
// the longer segment count, in [0, 1].
func PathSimilarity(path1, path2 string) float64 {
	n1 := strings.TrimSuffix(path1, "/")
	n2 := strings.TrimSuffix(path2, "/")
	if n1 == "" {
		n1 = "/"
	}
	if n2 == "" {
		n2 = "/"
	}
	if n1 == n2 {
		return 1
	}

	segs1 := pathSegments(n1)
	segs2 := pathSegments(n2)

	if len(segs1) == 0 && len(segs2) == 0 {
		return 1
	}
	if len(segs1) == 0 || len(segs2) == 0 {
		return 0
	}

	maxLen := len(segs1)
	if len(segs2) > maxLen {
		maxLen = len(segs2)
	}

	var matching float64
	for i := 0; i < maxLen; i++ {
		if i >= len(segs1) || i >= len(segs2) {
			continue
		}
		s1, s2 := segs1[i], segs2[i]
		switch {
		case s1 == s2:
			matching += 1.0
		case isNumericID(s1) && isNumericID(s2):
			matching += 0.7
		case strings.Contains(s1, s2) || strings.Contains(s2, s1):
			matching += 0.5
		}
	}

	return matching / float64(maxLen)
}

// SegmentOverlap is the Jaccard-like path comparison used by the similarity
// scorer: count of segments present in both paths divided by the longer
// segment count, ignoring positions. Two empty paths count as identical.
func SegmentOverlap(path1, path2 string) float64 {
	segs1 := pathSegments(path1)
	segs2 := pathSegments(path2)

	if len(segs1) == 0 && len(segs2) == 0 {
		return 1
	}
	if len(segs1) == 0 || len(segs2) == 0 {
		return 0
	}

	set2 := make(map[string]struct{}, len(segs2))
	for _, s := range segs2 {
		set2[s] = struct{}{}
	}

	common := 0
	for _, s := range segs1 {
		if _, ok := set2[s]; ok {
			common++
		}
	}

	maxLen := len(segs1)
	if len(segs2) > maxLen {
		maxLen = len(segs2)
	}
	return float64(common) / float64(maxLen)
}
