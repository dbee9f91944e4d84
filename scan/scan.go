// Package scan recognizes review-shaped objects inside arbitrary, untyped
// JSON trees captured from network responses. It never assumes a schema:
// an object qualifies when its key names suggest a rating, a text body,
// and an author, wherever in the tree it sits.
package scan

import (
	"encoding/json"
	"strings"
)

// Indicator terms checked case-insensitively against key names.
// A key matches when it equals or contains the term.
var (
	ratingKeys = []string{"rating", "stars", "score"}
	textKeys   = []string{"text", "message", "comment", "review"}
	userKeys   = []string{"username", "reviewer", "buyer", "user"}
)

// Decode parses one captured response body. Invalid JSON is not an error
// for the pipeline; callers skip the payload.
func Decode(body []byte) (any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Scan recursively visits every array in the payload and collects elements
// whose key set looks review-shaped. Objects are visited by recursing into
// their values; arrays are visited directly. Qualifying elements of an
// array are collected first, then traversal descends into every element of
// that same array, so nested review collections are found too.
//
// Inputs are assumed to be tree-shaped decoded JSON (no cycles). Document
// order of first encounter is preserved; no deduplication happens here.
func Scan(payload any) []map[string]any {
	var found []map[string]any
	walk(payload, &found)
	return found
}

func walk(v any, found *[]map[string]any) {
	switch node := v.(type) {
	case map[string]any:
		for _, child := range node {
			walk(child, found)
		}
	case []any:
		for _, el := range node {
			obj, ok := el.(map[string]any)
			if !ok {
				continue
			}
			if looksLikeReview(obj) {
				*found = append(*found, obj)
			}
		}
		for _, el := range node {
			walk(el, found)
		}
	}
}

// looksLikeReview reports whether the object's own keys contain at least
// one rating-like, one text-like, and one user-like indicator.
func looksLikeReview(obj map[string]any) bool {
	var hasRating, hasText, hasUser bool
	for k := range obj {
		lower := strings.ToLower(k)
		if !hasRating && containsAny(lower, ratingKeys) {
			hasRating = true
		}
		if !hasText && containsAny(lower, textKeys) {
			hasText = true
		}
		if !hasUser && containsAny(lower, userKeys) {
			hasUser = true
		}
	}
	return hasRating && hasText && hasUser
}

func containsAny(key string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(key, t) {
			return true
		}
	}
	return false
}
