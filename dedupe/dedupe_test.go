package dedupe

import (
	"reflect"
	"testing"

	"github.com/hazyhaar/revq/review"
)

func ptr(f float64) *float64 { return &f }

func TestDedupe_GatesIncompleteCandidates(t *testing.T) {
	// WHAT: Candidates missing reviewer, rating, or sufficient text are dropped.
	// WHY: Partial extraction is expected, not an error; gating absorbs it.
	cands := []review.Candidate{
		{Reviewer: "", Rating: ptr(4.5), Text: "long enough body text"},
		{Reviewer: "alice99", Rating: nil, Text: "long enough body text"},
		{Reviewer: "alice99", Rating: ptr(4.5), Text: "short"},
		{Reviewer: "alice99", Rating: ptr(4.5), Text: "a proper review body"},
	}
	got := Dedupe(cands, 10)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Reviewer != "alice99" || got[0].Rating != 4.5 {
		t.Errorf("record: %+v", got[0])
	}
}

func TestDedupe_RejectsInvalidFields(t *testing.T) {
	// WHAT: Out-of-range ratings and non-handle reviewers never pass gating.
	// WHY: Every emitted record satisfies the output invariants.
	cands := []review.Candidate{
		{Reviewer: "alice99", Rating: ptr(5.5), Text: "rating out of range here"},
		{Reviewer: "has spaces", Rating: ptr(4.0), Text: "reviewer is not a handle"},
		{Reviewer: "ok_handle", Rating: ptr(-1), Text: "negative rating is invalid"},
	}
	if got := Dedupe(cands, 10); len(got) != 0 {
		t.Fatalf("got %d records, want 0", len(got))
	}
}

func TestDedupe_ExactTripleFirstSeenOrder(t *testing.T) {
	// WHAT: Records sharing reviewer, rating, and normalized text collapse
	// to the first occurrence; distinct triples all survive, in order.
	// WHY: Lazy-loaded DOM reads overlap and re-deliver the same card.
	cands := []review.Candidate{
		{Reviewer: "bob", Rating: ptr(4.8), Text: "fast shipment and great packaging"},
		{Reviewer: "alice99", Rating: ptr(4.7), Text: "exactly as described, thank you"},
		{Reviewer: "bob", Rating: ptr(4.8), Text: "fast  shipment and great\npackaging"},
		{Reviewer: "bob", Rating: ptr(4.9), Text: "fast shipment and great packaging"},
	}
	got := Dedupe(cands, 10)
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	if got[0].Reviewer != "bob" || got[1].Reviewer != "alice99" || got[2].Rating != 4.9 {
		t.Errorf("order wrong: %+v", got)
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	// WHAT: dedupe(dedupe(xs)) == dedupe(xs).
	// WHY: The orchestrator may re-gate a sequence; the result must be stable.
	cands := []review.Candidate{
		{Reviewer: "bob", Rating: ptr(4.8), Text: "fast shipment and great packaging"},
		{Reviewer: "bob", Rating: ptr(4.8), Text: "fast shipment and great packaging"},
		{Reviewer: "alice99", Rating: ptr(4.7), Text: "exactly as described, thank you"},
	}
	once := Dedupe(cands, 10)
	twice := Dedupe(FromReviews(once), 10)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestDedupe_EmptyInput(t *testing.T) {
	// WHAT: Nil and empty inputs produce an empty output.
	// WHY: Zero results terminate a strategy, not the run.
	if got := Dedupe(nil, 10); len(got) != 0 {
		t.Errorf("nil input: got %d records", len(got))
	}
	if got := Dedupe([]review.Candidate{}, 0); len(got) != 0 {
		t.Errorf("empty input: got %d records", len(got))
	}
}
