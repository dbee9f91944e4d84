package scan

import (
	"strconv"
	"strings"

	"github.com/hazyhaar/revq/review"
)

// Key aliases probed in order when normalizing a raw object.
var (
	ratingAliases   = []string{"rating", "stars", "score", "rating_value", "star_rating"}
	reviewerAliases = []string{"reviewer", "username"}
	userSubObjects  = []string{"user", "buyer", "reviewer"}
	userSubAliases  = []string{"username", "name", "handle"}
	textAliases     = []string{"text", "message", "comment", "review", "body", "content"}
)

// Normalize maps an arbitrarily-shaped object to a candidate record.
// Fields that cannot be resolved stay unresolved; the candidate is
// returned regardless, and gating happens downstream.
func Normalize(obj map[string]any) review.Candidate {
	var c review.Candidate

	if r, ok := resolveRating(obj); ok {
		c.Rating = &r
	}
	c.Reviewer = review.CollapseSpace(resolveReviewer(obj))
	c.Text = review.CollapseSpace(resolveText(obj))

	return c
}

// resolveRating probes rating aliases and coerces numbers or digit strings.
func resolveRating(obj map[string]any) (float64, bool) {
	for _, alias := range ratingAliases {
		v, ok := lookup(obj, alias)
		if !ok {
			continue
		}
		if r, ok := coerceFloat(v); ok {
			return r, true
		}
	}
	return 0, false
}

func resolveReviewer(obj map[string]any) string {
	for _, alias := range reviewerAliases {
		if s, ok := lookupString(obj, alias); ok {
			return s
		}
	}
	// Descend one level into a user-like sub-object.
	for _, sub := range userSubObjects {
		v, ok := lookup(obj, sub)
		if !ok {
			continue
		}
		nested, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for _, alias := range userSubAliases {
			if s, ok := lookupString(nested, alias); ok {
				return s
			}
		}
	}
	return ""
}

func resolveText(obj map[string]any) string {
	for _, alias := range textAliases {
		if s, ok := lookupString(obj, alias); ok {
			return s
		}
	}
	// One level of descent into a feedback sub-object.
	if v, ok := lookup(obj, "feedback"); ok {
		if nested, ok := v.(map[string]any); ok {
			for _, alias := range textAliases {
				if s, ok := lookupString(nested, alias); ok {
					return s
				}
			}
		}
	}
	return ""
}

// lookup probes a key case-insensitively.
func lookup(obj map[string]any, key string) (any, bool) {
	if v, ok := obj[key]; ok {
		return v, true
	}
	for k, v := range obj {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func lookupString(obj map[string]any, key string) (string, bool) {
	v, ok := lookup(obj, key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
