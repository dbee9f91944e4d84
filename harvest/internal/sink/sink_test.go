package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hazyhaar/revq/dbopen"
	"github.com/hazyhaar/revq/review"

	_ "modernc.org/sqlite"
)

func testResult() *review.Result {
	return review.NewResult("https://example.com/shop/acme", []review.Review{
		{Reviewer: "alice99", Rating: 4.7, Text: "Great seller, fast shipping."},
		{Reviewer: "bob_the_builder", Rating: 4.8, Text: "Fast shipment and great packaging"},
	}, "network")
}

// WHAT: Stdout sink encodes one result per line.
// WHY: downstream consumers parse the output as JSON lines.
func TestStdoutJSONLines(t *testing.T) {
	var buf bytes.Buffer
	s := NewStdout(&buf)
	if err := s.Send(context.Background(), testResult()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := s.Send(context.Background(), testResult()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	var doc review.Result
	if err := json.Unmarshal(lines[0], &doc); err != nil {
		t.Fatalf("unmarshal line: %v", err)
	}
	if doc.Source != review.Source || doc.Count != 2 {
		t.Errorf("decoded doc = source %q count %d, want %q 2", doc.Source, doc.Count, review.Source)
	}
}

// WHAT: File sink writes the full result document to the configured path
// and rewrites it on subsequent sends.
func TestFileWriteAndRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "reviews.json")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := f.Send(context.Background(), testResult()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	res2 := review.NewResult("https://example.com/shop/acme", nil, "anchor_dom")
	if err := f.Send(context.Background(), res2); err != nil {
		t.Fatalf("Send rewrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var doc review.Result
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Count != 0 || len(doc.Reviews) != 0 {
		t.Errorf("file holds count %d with %d reviews, want the latest (empty) run", doc.Count, len(doc.Reviews))
	}
}

func TestFileRequiresPath(t *testing.T) {
	if _, err := NewFile(""); err == nil {
		t.Fatal("NewFile(\"\") succeeded, want error")
	}
}

// WHAT: SQLite sink records one runs row plus one reviews row per review,
// in extraction order.
func TestSQLiteRunHistory(t *testing.T) {
	db := dbopen.OpenMemory(t, dbopen.WithSchema(Schema))
	s := NewSQLiteDB(db)

	if err := s.Send(context.Background(), testResult()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := s.Send(context.Background(), testResult()); err != nil {
		t.Fatalf("Send second run: %v", err)
	}

	var runs int
	if err := db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&runs); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if runs != 2 {
		t.Errorf("runs = %d, want 2 (each harvest appends)", runs)
	}

	var reviewer string
	var rating float64
	err := db.QueryRow(
		"SELECT reviewer, rating FROM reviews WHERE position = 1 LIMIT 1",
	).Scan(&reviewer, &rating)
	if err != nil {
		t.Fatalf("query review: %v", err)
	}
	if reviewer != "bob_the_builder" || rating != 4.8 {
		t.Errorf("review at position 1 = %q/%v, want bob_the_builder/4.8", reviewer, rating)
	}
}

type failSink struct{ sent int }

func (f *failSink) Send(context.Context, *review.Result) error {
	f.sent++
	return errors.New("boom")
}
func (f *failSink) Close() error { return nil }

// WHAT: Router keeps delivering after a sink fails and reports the first error.
func TestRouterContinuesOnError(t *testing.T) {
	var buf bytes.Buffer
	bad := &failSink{}
	ok := NewStdout(&buf)
	r := NewRouter(nil, bad, ok)

	err := r.Send(context.Background(), testResult())
	if err == nil {
		t.Fatal("Send: want first sink's error")
	}
	if bad.sent != 1 {
		t.Errorf("failing sink sent %d times, want 1", bad.sent)
	}
	if buf.Len() == 0 {
		t.Error("second sink received nothing after first sink failed")
	}
}
