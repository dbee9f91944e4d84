package scan

import "testing"

func TestNormalize_DirectAliases(t *testing.T) {
	// WHAT: username/stars/comment resolve to reviewer/rating/text, with
	// string digits coerced to float.
	// WHY: The most common shape seen in captured review payloads.
	c := Normalize(map[string]any{
		"username": "alice99",
		"stars":    "4.7",
		"comment":  "Great seller, fast shipping!",
	})
	if c.Reviewer != "alice99" {
		t.Errorf("reviewer: got %q, want alice99", c.Reviewer)
	}
	if c.Rating == nil || *c.Rating != 4.7 {
		t.Errorf("rating: got %v, want 4.7", c.Rating)
	}
	if c.Text != "Great seller, fast shipping!" {
		t.Errorf("text: got %q", c.Text)
	}
}

func TestNormalize_NestedUserObject(t *testing.T) {
	// WHAT: When no top-level reviewer key exists, one level of descent
	// into user/buyer sub-objects resolves the handle.
	// WHY: Many APIs nest author info under a user object.
	c := Normalize(map[string]any{
		"rating": 3.0,
		"text":   "decent experience overall",
		"user":   map[string]any{"name": "bob_the_builder"},
	})
	if c.Reviewer != "bob_the_builder" {
		t.Errorf("reviewer: got %q, want bob_the_builder", c.Reviewer)
	}
}

func TestNormalize_FeedbackSubObject(t *testing.T) {
	// WHAT: Text falls back to a feedback sub-object when absent at top level.
	// WHY: Observed payloads wrap the body as feedback.message.
	c := Normalize(map[string]any{
		"score":    4,
		"buyer":    map[string]any{"username": "carol"},
		"feedback": map[string]any{"message": "arrived  on\n time"},
	})
	if c.Text != "arrived on time" {
		t.Errorf("text: got %q, want collapsed %q", c.Text, "arrived on time")
	}
	if c.Rating == nil || *c.Rating != 4 {
		t.Errorf("rating: got %v, want 4", c.Rating)
	}
}

func TestNormalize_UnresolvedFieldsStayUnresolved(t *testing.T) {
	// WHAT: Missing or uncoercible fields yield an incomplete candidate,
	// not an error.
	// WHY: Rejection is the deduplicator's responsibility, not the normalizer's.
	c := Normalize(map[string]any{
		"rating":   "not-a-number",
		"username": "dan",
	})
	if c.Rating != nil {
		t.Errorf("rating should be unresolved, got %v", *c.Rating)
	}
	if c.Text != "" {
		t.Errorf("text should be empty, got %q", c.Text)
	}
	if c.Complete(10) {
		t.Error("incomplete candidate reported as complete")
	}
}

func TestNormalize_WhitespaceCollapsed(t *testing.T) {
	// WHAT: Runs of whitespace collapse to single spaces in all string outputs.
	// WHY: DOM and JSON sources disagree on whitespace; comparison needs one form.
	c := Normalize(map[string]any{
		"rating":   5.0,
		"reviewer": "  eve\t ",
		"text":     " lovely \n\n item,\twould buy again ",
	})
	if c.Reviewer != "eve" {
		t.Errorf("reviewer: got %q, want eve", c.Reviewer)
	}
	if c.Text != "lovely item, would buy again" {
		t.Errorf("text: got %q", c.Text)
	}
}

func TestNormalize_CaseInsensitiveKeys(t *testing.T) {
	// WHAT: Alias probing ignores key case.
	// WHY: Same APIs ship Rating and rating across versions.
	c := Normalize(map[string]any{
		"Rating":   4.1,
		"Username": "frank",
		"Text":     "good communication throughout",
	})
	if c.Rating == nil || *c.Rating != 4.1 || c.Reviewer != "frank" {
		t.Errorf("case-insensitive probing failed: %+v", c)
	}
}
