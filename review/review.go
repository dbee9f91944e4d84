// Package review holds the data model shared by the extraction pipeline:
// provisional candidates, gated review records, and the output document
// handed to sinks.
package review

import (
	"regexp"
	"strings"
	"time"
)

// Source identifies this extractor in output documents.
const Source = "revq"

// MinBodyLen is the default minimum review body length in characters.
const MinBodyLen = 10

// HandleRe is the reviewer handle pattern every emitted record satisfies.
var HandleRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,25}$`)

// Candidate is a provisional, possibly incomplete extraction result.
// A nil Rating or empty Reviewer/Text marks the field as unresolved;
// rejection of incomplete candidates is the deduplicator's job.
type Candidate struct {
	Reviewer string
	Rating   *float64
	Text     string
}

// Complete reports whether all three fields resolved and the body meets
// the minimum length.
func (c Candidate) Complete(minBody int) bool {
	if minBody <= 0 {
		minBody = MinBodyLen
	}
	return c.Reviewer != "" && c.Rating != nil && len(c.Text) >= minBody
}

// Review is a complete, validated record: rating in [0,5], reviewer
// matching HandleRe, non-empty body.
type Review struct {
	Reviewer string  `json:"reviewer"`
	Rating   float64 `json:"rating"`
	Text     string  `json:"text"`
}

// Result is the output document for one pipeline run.
type Result struct {
	Source     string    `json:"source"`
	ProfileURL string    `json:"profile_url"`
	FetchedAt  time.Time `json:"fetched_at"`
	Count      int       `json:"count"`
	Reviews    []Review  `json:"reviews"`
	Strategy   string    `json:"strategy,omitempty"`
}

// NewResult assembles the output document for one run.
func NewResult(profileURL string, reviews []Review, strategy string) *Result {
	if reviews == nil {
		reviews = []Review{}
	}
	return &Result{
		Source:     Source,
		ProfileURL: profileURL,
		FetchedAt:  time.Now().UTC(),
		Count:      len(reviews),
		Reviews:    reviews,
		Strategy:   strategy,
	}
}

// CollapseSpace collapses runs of whitespace to single spaces and trims.
// All string fields pass through here before comparison or output.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
