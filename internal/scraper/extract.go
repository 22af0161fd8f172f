package scraper

import "regexp"

// strategyPatterns maps an extraction-strategy tag to the regex that pulls
// posting identifiers out of that site's career page. Career sites expose
// no shared feed, so matching is per-site and brittle; onboarding a new
// source means adding one entry here (and a template in urls.go), nothing
// else.
var strategyPatterns = map[string]*regexp.Regexp{
	"google":    regexp.MustCompile(`/jobs/results/(\d+)`),
	"microsoft": regexp.MustCompile(`(?i)jobId["\s:=]+([0-9]+)`),
	"amazon":    regexp.MustCompile(`/jobs/(\d+)`),
	"meta":      regexp.MustCompile(`careers\.com/jobs/(\d+)`),
	"apple":     regexp.MustCompile(`(?i)post-id["\s:=]+([A-Z0-9-]+)`),
	"micron":    regexp.MustCompile(`(?i)data-job-id["\s:=]+(\d+)`),
	"ti":        regexp.MustCompile(`(?i)jobId["\s:=]+([0-9]+)`),
	"adobe":     regexp.MustCompile(`(?i)job/([A-Z0-9]+)`),
	"intel":     regexp.MustCompile(`(?i)jobId["\s:=]+([0-9]+)`),
}

// genericPattern covers unknown strategies: most career sites link postings
// as job/<id> or job-<id>.
var genericPattern = regexp.MustCompile(`(?i)job[/-](\d+)`)

// ExtractPostingIDs returns the posting identifiers found in page for the
// given strategy, in order of first appearance with duplicates removed.
// No matches yields an empty slice, never an error; a pattern that finds
// nothing just produces zero candidates for this run.
func ExtractPostingIDs(page, strategy string) []string {
	re, ok := strategyPatterns[strategy]
	if !ok {
		re = genericPattern
	}

	matches := re.FindAllStringSubmatch(page, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		id := m[1]
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids
}
