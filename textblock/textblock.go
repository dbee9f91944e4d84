// Package textblock classifies flat, whitespace-collapsed text fragments
// read from a rendered page: rating tokens, reviewer handles, date stamps,
// expand markers, and known noise phrases. The card locator and the body
// parser are both built on these probes.
package textblock

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// HandleMinLen and HandleMaxLen bound reviewer handle length.
	HandleMinLen = 3
	HandleMaxLen = 25
)

var (
	// ratingRe matches a single digit 0-5, a dot, and one digit.
	ratingRe        = regexp.MustCompile(`\b[0-5]\.[0-9]\b`)
	leadingRatingRe = regexp.MustCompile(`^[0-5]\.[0-9]\b`)

	// dateRe matches numeric day/month/year stamps (11/11/2025, 3.1.25, 2-12-2024).
	dateRe        = regexp.MustCompile(`\b\d{1,2}[./-]\d{1,2}[./-]\d{2,4}\b`)
	leadingDateRe = regexp.MustCompile(`^\d{1,2}[./-]\d{1,2}[./-]\d{2,4}\b`)

	// handleRunRe matches any alphanumeric/underscore run; length is
	// checked separately so over-long runs are rejected, not truncated.
	handleRunRe = regexp.MustCompile(`[A-Za-z0-9_]+`)

	// summaryRe matches aggregate header lines like "(1,204 reviews) • 350 sold".
	summaryRe = regexp.MustCompile(`reviews?\)\s*•\s*[\d,]+\s*sold`)
)

// expandMarkers are "see more"-equivalents signalling truncated review text.
var expandMarkers = []string{
	"see more",
	"read more",
	"show more",
	"... more",
	"…more",
}

// noisePhrases flag blocks that are profile chrome, not review content.
var noisePhrases = []string{
	"followers",
	"following",
	"sold",
	"sign up",
	"log in",
	"sign in",
	"create account",
	"download the app",
	"items for sale",
}

// RatingToken returns the first rating token in the block.
func RatingToken(t string) (float64, bool) {
	m := ratingRe.FindString(t)
	if m == "" {
		return 0, false
	}
	r, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return r, true
}

// ReviewerToken returns the first alphanumeric/underscore run of plausible
// handle length anywhere in the block (loose matching).
func ReviewerToken(t string) (string, bool) {
	for _, run := range handleRunRe.FindAllString(t, -1) {
		if len(run) >= HandleMinLen && len(run) <= HandleMaxLen {
			return run, true
		}
	}
	return "", false
}

// LeadingReviewerToken returns the handle run anchored at the start of the
// block (strict card parsing).
func LeadingReviewerToken(t string) (string, bool) {
	loc := handleRunRe.FindStringIndex(t)
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	run := t[loc[0]:loc[1]]
	if len(run) < HandleMinLen || len(run) > HandleMaxLen {
		return "", false
	}
	return run, true
}

// DateToken returns the first numeric date stamp in the block.
func DateToken(t string) (string, bool) {
	m := dateRe.FindString(t)
	return m, m != ""
}

// IsNoise reports whether the block carries any known non-review phrase:
// follower/following counts, sale counts, signup/login boilerplate, or an
// aggregate review summary line.
func IsNoise(t string) bool {
	lower := strings.ToLower(t)
	for _, p := range noisePhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return summaryRe.MatchString(lower)
}

// ExpandIndex returns the byte offset of the earliest expand marker in the
// block, or -1 when none is present.
func ExpandIndex(t string) int {
	lower := strings.ToLower(t)
	idx := -1
	for _, m := range expandMarkers {
		if i := strings.Index(lower, m); i >= 0 && (idx < 0 || i < idx) {
			idx = i
		}
	}
	return idx
}

// HasExpand reports whether an expand marker is present anywhere.
func HasExpand(t string) bool {
	return ExpandIndex(t) >= 0
}

// IsExpandMarker reports whether the block is the marker itself (an anchor
// element's own text), rather than a body containing one.
func IsExpandMarker(t string) bool {
	trimmed := strings.TrimSpace(t)
	if len(trimmed) > 24 {
		return false
	}
	return ExpandIndex(trimmed) >= 0
}
