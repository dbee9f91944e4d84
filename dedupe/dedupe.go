// Package dedupe gates candidate records and collapses exact repeats.
// Gating and uniqueness live together because both decide which
// candidates survive into the output set.
package dedupe

import (
	"strconv"

	"github.com/hazyhaar/revq/review"
)

// Dedupe drops incomplete candidates, validates the surviving fields, and
// collapses records sharing the exact (reviewer, rating, normalized text)
// triple, preserving first-seen order. Running it over an already-clean
// sequence returns the same sequence.
func Dedupe(cands []review.Candidate, minBody int) []review.Review {
	if minBody <= 0 {
		minBody = review.MinBodyLen
	}

	seen := make(map[string]bool, len(cands))
	var out []review.Review

	for _, c := range cands {
		if !c.Complete(minBody) {
			continue
		}
		reviewer := review.CollapseSpace(c.Reviewer)
		text := review.CollapseSpace(c.Text)
		if !review.HandleRe.MatchString(reviewer) || len(text) < minBody {
			continue
		}

		rating := 5.0 // defensive; gating above guarantees a value
		if c.Rating != nil {
			rating = *c.Rating
		}
		if rating < 0 || rating > 5 {
			continue
		}

		key := reviewer + "\x00" + strconv.FormatFloat(rating, 'f', -1, 64) + "\x00" + text
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, review.Review{Reviewer: reviewer, Rating: rating, Text: text})
	}
	return out
}

// FromReviews re-wraps validated records as candidates, so a deduplicated
// sequence can be passed through Dedupe again.
func FromReviews(revs []review.Review) []review.Candidate {
	out := make([]review.Candidate, 0, len(revs))
	for _, r := range revs {
		rating := r.Rating
		out = append(out, review.Candidate{Reviewer: r.Reviewer, Rating: &rating, Text: r.Text})
	}
	return out
}
