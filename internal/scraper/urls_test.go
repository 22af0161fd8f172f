package scraper

import "testing"

func TestBuildPostingURL_KnownStrategies(t *testing.T) {
	cases := []struct {
		strategy string
		id       string
		want     string
	}{
		{"google", "123", "https://www.google.com/about/careers/applications/jobs/results/123"},
		{"microsoft", "17042", "https://careers.microsoft.com/us/en/job/17042"},
		{"amazon", "555", "https://www.amazon.jobs/en/jobs/555"},
		{"meta", "42", "https://www.metacareers.com/jobs/42"},
		{"apple", "200554207", "https://jobs.apple.com/en-us/details/200554207"},
		{"micron", "9", "https://careers.micron.com/careers/job/9"},
		{"ti", "77", "https://careers.ti.com/job/77"},
		{"adobe", "R1234", "https://careers.adobe.com/us/en/job/R1234"},
		{"intel", "88", "https://jobs.intel.com/job/88"},
	}

	for _, c := range cases {
		got := BuildPostingURL(c.strategy, "https://example.com/careers", c.id)
		if got != c.want {
			t.Errorf("BuildPostingURL(%q, _, %q) = %q, want %q", c.strategy, c.id, got, c.want)
		}
	}
}

func TestBuildPostingURL_FallbackJoinsBaseURL(t *testing.T) {
	got := BuildPostingURL("generic", "https://example.com/careers", "101")
	if got != "https://example.com/careers/101" {
		t.Errorf("fallback URL = %q", got)
	}
}

func TestBuildPostingURL_FallbackTrimsTrailingSlash(t *testing.T) {
	got := BuildPostingURL("unknown", "https://example.com/careers/", "101")
	if got != "https://example.com/careers/101" {
		t.Errorf("fallback URL = %q", got)
	}
}
