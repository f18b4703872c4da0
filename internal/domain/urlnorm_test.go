package domain

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "tracking params stripped, host and path cleaned, params sorted",
			raw:  "https://www.Example.com/Page/?utm_source=x&b=2&a=1",
			want: "https://example.com/page?a=1&b=2",
		},
		{
			name: "bare host keeps root slash",
			raw:  "https://example.com/",
			want: "https://example.com/",
		},
		{
			name: "host without path gains root slash",
			raw:  "https://Example.com",
			want: "https://example.com/",
		},
		{
			name: "all-tracking query drops the query entirely",
			raw:  "https://example.com/article?utm_source=mail&fbclid=abc",
			want: "https://example.com/article",
		},
		{
			name: "www stripped case-insensitively",
			raw:  "https://WWW.example.com/docs",
			want: "https://example.com/docs",
		},
		{
			name: "unparseable input is lowercased and passed through",
			raw:  "Not A URL At All",
			want: "not a url at all",
		},
		{
			name: "relative url treated as parse failure",
			raw:  "/just/a/path",
			want: "/just/a/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeURL(tt.raw)
			if got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeURL_Idempotent(t *testing.T) {
	urls := []string{
		"https://www.Example.com/Page/?utm_source=x&b=2&a=1",
		"https://example.com/",
		"https://github.com/golang/go/issues/1",
		"https://example.com/search?q=hello+world&lang=en",
		"https://sub.example.com:8443/a/b/?ref=tw",
	}

	for _, raw := range urls {
		once := NormalizeURL(raw)
		twice := NormalizeURL(once)
		if once != twice {
			t.Errorf("NormalizeURL not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestNormalizeURL_TrackingInvariance(t *testing.T) {
	base := "https://example.com/article?id=42"
	want := NormalizeURL(base)

	variants := []string{
		base + "&utm_source=news",
		base + "&utm_medium=email&utm_campaign=q3",
		base + "&fbclid=IwAR123&gclid=xyz",
		base + "&mc_cid=1&mc_eid=2&_ga=3",
	}

	for _, v := range variants {
		if got := NormalizeURL(v); got != want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestPathSimilarity(t *testing.T) {
	tests := []struct {
		name  string
		path1 string
		path2 string
		want  float64
	}{
		{name: "identical paths", path1: "/a/b/c", path2: "/a/b/c", want: 1},
		{name: "trailing slash ignored", path1: "/a/b/", path2: "/a/b", want: 1},
		{name: "both empty", path1: "/", path2: "", want: 1},
		{name: "one empty", path1: "/", path2: "/a", want: 0},
		{name: "numeric ids interchangeable", path1: "/post/123", path2: "/post/456", want: 0.85},
		{name: "substring segment", path1: "/docs/install", path2: "/docs/installation", want: 0.75},
		{name: "disjoint", path1: "/a/b", path2: "/x/y", want: 0},
		{name: "length mismatch dilutes", path1: "/a/b", path2: "/a/b/c/d", want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PathSimilarity(tt.path1, tt.path2)
			if !almostEqual(got, tt.want) {
				t.Errorf("PathSimilarity(%q, %q) = %v, want %v", tt.path1, tt.path2, got, tt.want)
			}
		})
	}
}

func TestSegmentOverlap(t *testing.T) {
	tests := []struct {
		name  string
		path1 string
		path2 string
		want  float64
	}{
		{name: "both empty", path1: "/", path2: "", want: 1},
		{name: "one empty", path1: "", path2: "/a", want: 0},
		{name: "full overlap", path1: "/a/b", path2: "/a/b", want: 1},
		{name: "partial overlap order-insensitive", path1: "/a/b", path2: "/b/c/d", want: 1.0 / 3.0},
		{name: "repo prefix shared", path1: "/foo/bar", path2: "/foo/bar/issues/1", want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentOverlap(tt.path1, tt.path2)
			if !almostEqual(got, tt.want) {
				t.Errorf("SegmentOverlap(%q, %q) = %v, want %v", tt.path1, tt.path2, got, tt.want)
			}
		})
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
