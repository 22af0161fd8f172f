package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"jobmatch/monitor-service/internal/model"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// promptCharBudget bounds how much posting text goes into one call.
	promptCharBudget = 8000
)

// Gemini scores postings with a structured-extraction call to the Gemini
// API. Every result is written through to the shared cache regardless of
// score, so a posting spends budget at most once while its entry lives.
type Gemini struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	fetcher    model.PageFetcher
	cache      model.AnalysisCache
	log        zerolog.Logger
}

// NewGemini constructs the budgeted Gemini scorer. baseURL may be empty to
// target the public API; tests point it at a local server.
func NewGemini(baseURL, apiKey, modelName string, httpClient *http.Client, fetcher model.PageFetcher, cache model.AnalysisCache, log zerolog.Logger) *Gemini {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	return &Gemini{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      modelName,
		httpClient: httpClient,
		fetcher:    fetcher,
		cache:      cache,
		log:        log.With().Str("component", "gemini-scorer").Logger(),
	}
}

// Score checks the shared cache first; on a miss it consumes one budget
// unit, fetches the posting page, and asks Gemini for a structured
// analysis. ErrBudgetExhausted means the posting was skipped, not failed.
func (g *Gemini) Score(ctx context.Context, posting model.Posting, user model.UserProfile, budget *model.RunBudget) (model.ScoredMatch, error) {
	if a, ok, _ := g.cache.Get(ctx, posting.SourceID, posting.PostingID); ok {
		g.log.Debug().Str("source", posting.SourceID).Str("posting", posting.PostingID).Msg("cache hit")
		return model.ScoredMatch{Posting: posting, Score: a.Score, Analysis: a}, nil
	}

	if !budget.Take() {
		return model.ScoredMatch{}, model.ErrBudgetExhausted
	}

	page, err := g.fetcher.FetchPage(ctx, posting.URL)
	if err != nil {
		return model.ScoredMatch{}, &model.ScoreError{SourceID: posting.SourceID, PostingID: posting.PostingID, Err: err}
	}

	prompt := buildPrompt(user, posting, truncate(pageText(page), promptCharBudget))

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		return model.ScoredMatch{}, &model.ScoreError{SourceID: posting.SourceID, PostingID: posting.PostingID, Err: err}
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		return model.ScoredMatch{}, &model.ScoreError{SourceID: posting.SourceID, PostingID: posting.PostingID, Err: err}
	}

	// Written even for low scores: the cache exists to stop repeat
	// postings from re-spending budget, not to remember matches.
	if err := g.cache.Put(ctx, posting.SourceID, posting.PostingID, analysis); err != nil {
		g.log.Warn().Str("posting", posting.PostingID).Err(err).Msg("cache write failed")
	}

	return model.ScoredMatch{Posting: posting, Score: analysis.Score, Analysis: analysis}, nil
}

func buildPrompt(user model.UserProfile, posting model.Posting, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are evaluating a job posting for a candidate.\n\n")
	fmt.Fprintf(&b, "Candidate skills: %s\n", strings.Join(user.Skills, ", "))
	fmt.Fprintf(&b, "Candidate experience level: %s\n", user.ExperienceLevel)
	fmt.Fprintf(&b, "Company: %s\n\n", posting.SourceName)
	b.WriteString(`Score the posting for this candidate on [0,1] weighting:
- skills overlap: 50%
- experience level match: 30%
- role relevance: 20%

Return ONLY a JSON object with exactly these fields:
{"title": "...", "required_skills": ["..."], "preferred_skills": ["..."], "experience_level": "entry|mid|senior", "score": 0.0, "reasoning": "one short sentence"}

Job posting text:
`)
	b.WriteString(text)
	return b.String()
}

// geminiRequest mirrors the generateContent request body.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse mirrors the fields of the response we read.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned HTTP %d: %s", resp.StatusCode, string(respBytes))
	}

	var gr geminiResponse
	if err := json.Unmarshal(respBytes, &gr); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}
	if gr.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", gr.Error.Code, gr.Error.Message)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// parseAnalysis pulls the first JSON object out of the model's free-text
// answer. Models wrap JSON in code fences or chatter; everything before
// the first '{' and after the last '}' is discarded. Missing or malformed
// JSON is a hard failure for this one posting.
func parseAnalysis(raw string) (*model.Analysis, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var a model.Analysis
	if err := json.Unmarshal([]byte(raw[start:end+1]), &a); err != nil {
		return nil, fmt.Errorf("unmarshal analysis: %w", err)
	}

	if a.Score < 0 {
		a.Score = 0
	}
	if a.Score > 1 {
		a.Score = 1
	}

	return &a, nil
}
