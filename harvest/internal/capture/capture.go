// Package capture buffers JSON response bodies observed on a page while
// it loads and scrolls. The window is an explicit two-phase protocol:
// Open subscribes to CDP network events, Close stops collection and
// returns the buffered payloads. The pipeline must only scan payloads
// from a closed window; responses may arrive asynchronously and out of
// order until then.
package capture

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Payload is one captured response body with its provenance.
type Payload struct {
	URL    string
	Status int
	MIME   string
	Body   []byte
}

// Window is one capture session on one page.
type Window struct {
	mu       sync.Mutex
	payloads []Payload
	closed   bool

	cancel context.CancelFunc
	done   chan struct{}
	logger *slog.Logger
}

// Open enables network tracking on the page and starts buffering JSON
// response bodies. Only 2xx responses with a JSON content type are kept;
// every per-response failure is skipped, never propagated.
func Open(ctx context.Context, page *rod.Page, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}

	evCtx, cancel := context.WithCancel(ctx)
	w := &Window{
		cancel: cancel,
		done:   make(chan struct{}),
		logger: logger,
	}

	p := page.Context(evCtx)
	if err := (proto.NetworkEnable{}).Call(p); err != nil {
		logger.Warn("capture: network enable failed", "error", err)
	}

	wait := p.EachEvent(func(e *proto.NetworkResponseReceived) {
		w.observe(p, e)
	})
	go func() {
		defer close(w.done)
		wait()
	}()

	return w
}

// observe fetches and buffers one response body. Best-effort by design:
// a body that cannot be fetched or decoded is dropped silently.
func (w *Window) observe(page *rod.Page, e *proto.NetworkResponseReceived) {
	status := e.Response.Status
	mime := e.Response.MIMEType
	if status < 200 || status >= 300 || !strings.Contains(strings.ToLower(mime), "json") {
		return
	}

	res, err := proto.NetworkGetResponseBody{RequestID: e.RequestID}.Call(page)
	if err != nil {
		w.logger.Debug("capture: get body failed", "url", e.Response.URL, "error", err)
		return
	}

	body := []byte(res.Body)
	if res.Base64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(res.Body)
		if err != nil {
			w.logger.Debug("capture: base64 decode failed", "url", e.Response.URL, "error", err)
			return
		}
		body = decoded
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.payloads = append(w.payloads, Payload{
		URL:    e.Response.URL,
		Status: status,
		MIME:   mime,
		Body:   body,
	})
}

// Close ends the capture window and returns everything buffered so far.
// Responses arriving after Close are discarded.
func (w *Window) Close() []Payload {
	w.mu.Lock()
	if w.closed {
		out := w.payloads
		w.mu.Unlock()
		return out
	}
	w.closed = true
	out := w.payloads
	w.mu.Unlock()

	w.cancel()
	<-w.done

	w.logger.Debug("capture: window closed", "payloads", len(out))
	return out
}
