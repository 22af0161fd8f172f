package model

import (
	"errors"
	"fmt"
)

// ErrBudgetExhausted is returned by budgeted scorers when the per-run
// external-call budget ran out before this posting. The posting is skipped
// silently and stays eligible for a future run.
var ErrBudgetExhausted = errors.New("scoring budget exhausted")

// FetchError reports an HTTP or network failure while retrieving a page.
type FetchError struct {
	URL        string
	StatusCode int // zero on transport-level failures
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ScoreError reports a failed scoring attempt for a single posting, such as
// malformed model output. It never aborts the run.
type ScoreError struct {
	SourceID  string
	PostingID string
	Err       error
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("score %s/%s: %v", e.SourceID, e.PostingID, e.Err)
}

func (e *ScoreError) Unwrap() error { return e.Err }

// NotifyError reports a rejection from the email provider, carrying the
// provider's error body.
type NotifyError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *NotifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("notify: %v", e.Err)
	}
	return fmt.Sprintf("notify: provider returned %d: %s", e.StatusCode, e.Body)
}

func (e *NotifyError) Unwrap() error { return e.Err }

// DedupStoreError reports a network failure talking to the key-value
// collaborator. Callers treat a failed lookup as "not seen"; an extra
// email is preferable to silently dropping a posting.
type DedupStoreError struct {
	Op  string // "exists" or "mark"
	Key string
	Err error
}

func (e *DedupStoreError) Error() string {
	return fmt.Sprintf("dedup store %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *DedupStoreError) Unwrap() error { return e.Err }
