package scraper

import (
	"fmt"
	"strings"
)

// jobURLTemplates maps a strategy tag to the canonical posting URL format.
// The extraction regexes capture bare identifiers, so the absolute URL has
// to be rebuilt per site.
var jobURLTemplates = map[string]string{
	"google":    "https://www.google.com/about/careers/applications/jobs/results/%s",
	"microsoft": "https://careers.microsoft.com/us/en/job/%s",
	"amazon":    "https://www.amazon.jobs/en/jobs/%s",
	"meta":      "https://www.metacareers.com/jobs/%s",
	"apple":     "https://jobs.apple.com/en-us/details/%s",
	"micron":    "https://careers.micron.com/careers/job/%s",
	"ti":        "https://careers.ti.com/job/%s",
	"adobe":     "https://careers.adobe.com/us/en/job/%s",
	"intel":     "https://jobs.intel.com/job/%s",
}

// BuildPostingURL returns the canonical absolute URL for a posting. Unknown
// strategies fall back to baseURL/postingID. Pure function, no failure mode.
func BuildPostingURL(strategy, baseURL, postingID string) string {
	if tmpl, ok := jobURLTemplates[strategy]; ok {
		return fmt.Sprintf(tmpl, postingID)
	}
	return strings.TrimRight(baseURL, "/") + "/" + postingID
}
