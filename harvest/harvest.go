// Package harvest drives the full review extraction flow: open a
// browser tab, capture network payloads while the page loads and
// scrolls, snapshot the DOM, and run the extraction pipeline over both.
package harvest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/revq/card"
	"github.com/hazyhaar/revq/harvest/internal/browser"
	"github.com/hazyhaar/revq/harvest/internal/capture"
	"github.com/hazyhaar/revq/harvest/internal/config"
	"github.com/hazyhaar/revq/harvest/internal/sink"
	"github.com/hazyhaar/revq/review"
)

// Harvester owns a browser session and runs harvests against it. One
// Harvester can serve many Run calls; each run gets its own tab.
type Harvester struct {
	cfg     *config.Config
	logger  *slog.Logger
	manager *browser.Manager
	router  *sink.Router
	pipe    *Pipeline
}

// New creates a Harvester. The browser is not started until the first Run.
func New(cfg *config.Config, logger *slog.Logger, sinks ...sink.Sink) *Harvester {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Harvester{
		cfg:    cfg,
		logger: logger,
		manager: browser.NewManager(browser.Config{
			RemoteURL:        cfg.Browser.Remote,
			Headful:          cfg.Browser.Headful,
			ResourceBlocking: cfg.Browser.ResourceBlocking,
			Logger:           logger,
		}),
		router: sink.NewRouter(logger, sinks...),
		pipe:   NewPipeline(cfg.Heuristics, logger),
	}
}

// Run harvests one profile URL and delivers the result document to the
// configured sinks. limit <= 0 falls back to the configured result limit.
//
// Browser startup and navigation failures abort the run. Everything
// after a successful navigation is best-effort: popup dismissal, scroll,
// capture and snapshot each degrade to whatever the remaining strategies
// can extract, and an empty result document is still a valid result.
func (h *Harvester) Run(ctx context.Context, profileURL string, limit int) (*review.Result, error) {
	if profileURL == "" {
		return nil, fmt.Errorf("harvest: profile URL required")
	}
	if limit <= 0 {
		limit = h.cfg.Target.ResultLimit
	}

	if _, err := h.manager.Start(ctx); err != nil {
		return nil, fmt.Errorf("harvest: start browser: %w", err)
	}

	tab, err := browser.OpenTab(h.manager)
	if err != nil {
		return nil, fmt.Errorf("harvest: open tab: %w", err)
	}
	defer tab.Close()

	// The capture window opens before navigation so review payloads
	// fetched during the initial page load are not missed.
	window := capture.Open(ctx, tab.Page, h.logger)

	if err := tab.Navigate(ctx, profileURL, h.cfg.Browser.NavTimeout); err != nil {
		window.Close()
		return nil, fmt.Errorf("harvest: %w", err)
	}

	tab.DismissPopups(ctx)
	tab.ScrollToBottom(ctx, h.cfg.Browser.ScrollSteps, h.cfg.Browser.ScrollDelay)
	h.settle(ctx)

	payloads := window.Close()

	doc := h.snapshot(ctx, tab)

	reviews, strat := h.pipe.Run(payloads, doc, limit)
	res := review.NewResult(profileURL, reviews, string(strat))

	h.logger.Info("harvest: run complete",
		"url", profileURL, "strategy", res.Strategy,
		"payloads", len(payloads), "reviews", res.Count)

	if err := h.router.Send(ctx, res); err != nil {
		return res, fmt.Errorf("harvest: deliver result: %w", err)
	}
	return res, nil
}

// snapshot serialises and parses the live DOM. A failure in either step
// disables the DOM strategies but never aborts the run.
func (h *Harvester) snapshot(ctx context.Context, tab *browser.Tab) card.Document {
	src, err := tab.Snapshot(ctx)
	if err != nil {
		h.logger.Warn("harvest: snapshot failed", "error", err)
		return nil
	}
	doc, err := card.ParseHTML(bytes.NewReader(src))
	if err != nil {
		h.logger.Warn("harvest: snapshot parse failed", "error", err)
		return nil
	}
	return doc
}

// settle waits for straggler responses after scrolling stops.
func (h *Harvester) settle(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(h.cfg.Browser.SettleDelay):
	}
}

// Close shuts the browser and all sinks.
func (h *Harvester) Close() error {
	err := h.manager.Close()
	if cerr := h.router.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
