package textblock

import (
	"strings"

	"github.com/hazyhaar/revq/review"
)

// ParseCard extracts a candidate record from one card-shaped block.
//
// The body is everything before the expand marker (the whole block when no
// marker is present). The reviewer token, a leading date token, and a
// leading rating token are each stripped once from the start of the
// remaining text. The rating is the first rating token anywhere in the
// original block.
//
// ok is true only when reviewer and rating resolved and the body meets
// minBody characters after stripping.
func ParseCard(t string, minBody int) (review.Candidate, bool) {
	if minBody <= 0 {
		minBody = review.MinBodyLen
	}

	body := review.CollapseSpace(t)
	if idx := ExpandIndex(body); idx >= 0 {
		body = strings.TrimSpace(body[:idx])
	}

	var c review.Candidate
	if r, ok := RatingToken(t); ok {
		c.Rating = &r
	}

	if handle, ok := LeadingReviewerToken(body); ok {
		c.Reviewer = handle
		body = strings.TrimSpace(body[len(handle):])
	}

	// Leading date and rating stamps precede the body in either order;
	// strip each at most once.
	var dateDone, ratingDone bool
	for {
		switch {
		case !ratingDone && leadingRatingRe.MatchString(body):
			body = strings.TrimSpace(leadingRatingRe.ReplaceAllString(body, ""))
			ratingDone = true
		case !dateDone && leadingDateRe.MatchString(body):
			body = strings.TrimSpace(leadingDateRe.ReplaceAllString(body, ""))
			dateDone = true
		default:
			c.Text = body
			if len(body) < minBody {
				return c, false
			}
			return c, c.Reviewer != "" && c.Rating != nil
		}
	}
}
