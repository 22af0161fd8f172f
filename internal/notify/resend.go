// Package notify renders and delivers job-match digests through the Resend
// transactional email API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"jobmatch/monitor-service/internal/model"
)

const defaultResendEndpoint = "https://api.resend.com/emails"

var digestTemplate = template.Must(template.New("digest").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New Job Matches for You!</h2>
  <p>We found {{len .Matches}} new job postings that match your skills:</p>
  <ul style="list-style: none; padding: 0;">
  {{- range .Matches}}
    <li style="margin-bottom: 15px;">
      <strong>{{.Posting.SourceName}}</strong><br>
      <span style="color: #059669;">Match Score: {{.Percent}}%</span><br>
      <a href="{{.Posting.URL}}" style="color: #2563eb;">View Job &rarr;</a>
    </li>
  {{- end}}
  </ul>
  <hr style="margin: 30px 0; border: none; border-top: 1px solid #e5e7eb;">
  <p style="font-size: 12px; color: #6b7280;">Too many emails? Pause monitoring from your dashboard.</p>
</div>`))

// ResendNotifier sends one digest email per user and run.
type ResendNotifier struct {
	endpoint   string
	apiKey     string
	from       string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewResendNotifier constructs a notifier. endpoint may be empty to target
// the public API; tests point it at a local server.
func NewResendNotifier(endpoint, apiKey, from string, httpClient *http.Client, log zerolog.Logger) *ResendNotifier {
	if endpoint == "" {
		endpoint = defaultResendEndpoint
	}
	return &ResendNotifier{
		endpoint:   endpoint,
		apiKey:     apiKey,
		from:       from,
		httpClient: httpClient,
		log:        log.With().Str("component", "notify").Logger(),
	}
}

// emailRequest mirrors the Resend /emails request body.
type emailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// digestMatch adds the rendered percentage next to the match.
type digestMatch struct {
	model.ScoredMatch
	Percent int
}

// SendDigest renders the digest and hands it to Resend. A non-2xx response
// is surfaced as *model.NotifyError with the provider's body; there is no
// retry; the orchestrator logs and moves on.
func (n *ResendNotifier) SendDigest(ctx context.Context, user model.UserProfile, matches []model.ScoredMatch) error {
	if len(matches) == 0 {
		return nil
	}

	rendered := make([]digestMatch, 0, len(matches))
	for _, m := range matches {
		rendered = append(rendered, digestMatch{ScoredMatch: m, Percent: int(m.Score*100 + 0.5)})
	}

	var body bytes.Buffer
	if err := digestTemplate.Execute(&body, struct{ Matches []digestMatch }{rendered}); err != nil {
		return &model.NotifyError{Err: fmt.Errorf("render digest: %w", err)}
	}

	payload, err := json.Marshal(emailRequest{
		From:    n.from,
		To:      user.Email,
		Subject: fmt.Sprintf("🎯 %d New Job Matches Found!", len(matches)),
		HTML:    body.String(),
	})
	if err != nil {
		return &model.NotifyError{Err: fmt.Errorf("marshal email: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return &model.NotifyError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.apiKey)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return &model.NotifyError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return &model.NotifyError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	n.log.Info().Str("to", user.Email).Int("matches", len(matches)).Msg("digest sent")
	return nil
}
