// Package sink defines output backends for harvest results.
package sink

import (
	"context"

	"github.com/hazyhaar/revq/review"
)

// Sink receives the output document of one pipeline run.
type Sink interface {
	Send(ctx context.Context, res *review.Result) error
	Close() error
}
