package domain

import (
	"net/url"
	"regexp"
	"strings"
)

// SitePattern recognizes one site whose content can live behind several URL
// formats (share links, mobile hosts, permalink variants). When both URLs
// belong to the site and yield the same identity, they are the same content
// no matter how the rest of the URL looks.
type SitePattern struct {
	// Name identifies the pattern in logs and fixtures.
	Name string

	// Match reports whether the host belongs to this site.
	Match func(host string) bool

	// Identity extracts the content identity from a parsed URL,
	// or "" when none is present.
	Identity func(u *url.URL) string

	// Score is the similarity assigned when both identities are
	// present and equal.
	Score float64
}

var (
	youtubeIDRe  = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)
	mediumIDRe   = regexp.MustCompile(`([a-f0-9]{12,})`)
	redditPostRe = regexp.MustCompile(`/comments/([a-z0-9]+)`)
)

// DefaultSitePatterns returns the built-in site identity rules.
// YouTube matching covers the youtu.be short host as well, since share links
// are the main reason the same video shows up under two URLs.
func DefaultSitePatterns() []SitePattern {
	return []SitePattern{
		{
			Name: "youtube",
			Match: func(host string) bool {
				return strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be")
			},
			Identity: func(u *url.URL) string {
				m := youtubeIDRe.FindStringSubmatch(u.String())
				if m == nil {
					return ""
				}
				return m[1]
			},
			Score: 1,
		},
		{
			Name: "github",
			Match: func(host string) bool {
				return strings.Contains(host, "github.com")
			},
			Identity: func(u *url.URL) string {
				segs := pathSegments(u.Path)
				if len(segs) < 2 {
					return ""
				}
				return segs[0] + "/" + segs[1]
			},
			Score: 0.95,
		},
		{
			Name: "medium",
			Match: func(host string) bool {
				return strings.Contains(host, "medium.com") || strings.Contains(host, "medium.")
			},
			Identity: func(u *url.URL) string {
				m := mediumIDRe.FindStringSubmatch(u.Path)
				if m == nil {
					return ""
				}
				return m[1]
			},
			Score: 1,
		},
		{
			Name: "reddit",
			Match: func(host string) bool {
				return strings.Contains(host, "reddit.com")
			},
			Identity: func(u *url.URL) string {
				m := redditPostRe.FindStringSubmatch(u.Path)
				if m == nil {
					return ""
				}
				return m[1]
			},
			Score: 1,
		},
	}
}

// siteIdentityScore checks every pattern that recognizes both hosts and
// returns the highest score among those whose identities match.
func siteIdentityScore(patterns []SitePattern, u1, u2 *url.URL) float64 {
	h1 := strings.ToLower(u1.Hostname())
	h2 := strings.ToLower(u2.Hostname())

	var best float64
	for _, p := range patterns {
		if !p.Match(h1) || !p.Match(h2) {
			continue
		}
		id1 := p.Identity(u1)
		id2 := p.Identity(u2)
		if id1 == "" || id1 != id2 {
			continue
		}
		if p.Score > best {
			best = p.Score
		}
	}
	return best
}
