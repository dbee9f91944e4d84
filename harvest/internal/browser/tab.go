package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Tab wraps a Rod page with the setup one harvest session needs: stealth,
// resource blocking, navigation with timeout.
type Tab struct {
	Page    *rod.Page
	PageURL string
	manager *Manager
}

// OpenTab creates a stealth tab without navigating, so callers can start
// network capture before the first request fires.
func OpenTab(mgr *Manager) (*Tab, error) {
	b := mgr.Browser()
	if b == nil {
		return nil, ErrNoBrowser
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	if len(mgr.cfg.ResourceBlocking) > 0 {
		if err := applyResourceBlocking(page, mgr.cfg.ResourceBlocking); err != nil {
			mgr.cfg.Logger.Warn("browser: resource blocking failed", "error", err)
		}
	}

	return &Tab{Page: page, manager: mgr}, nil
}

// Navigate loads the URL. A navigation failure is fatal to the run;
// a load timeout after a successful navigation is not, since the page
// may already hold everything the extraction needs.
func (t *Tab) Navigate(ctx context.Context, pageURL string, navTimeout time.Duration) error {
	navCtx, cancel := context.WithTimeout(ctx, navTimeout)
	defer cancel()

	if err := t.Page.Context(navCtx).Navigate(pageURL); err != nil {
		return fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := t.Page.Context(navCtx).WaitLoad(); err != nil {
		t.manager.cfg.Logger.Warn("browser: wait load timeout", "url", pageURL, "error", err)
	}
	t.PageURL = pageURL
	return nil
}

// DismissPopups tries to clear consent banners and signup overlays.
// Every step is best-effort; a failed dismissal never aborts the run.
func (t *Tab) DismissPopups(ctx context.Context) {
	log := t.manager.cfg.Logger

	if err := t.Page.Context(ctx).Keyboard.Press(input.Escape); err != nil {
		log.Debug("browser: escape press failed", "error", err)
	}

	_, err := t.Page.Context(ctx).Eval(`() => {
		const selectors = [
			'[aria-label="Close"]',
			'[aria-label="close"]',
			'button[class*="close"]',
			'[data-testid*="close"]',
			'[class*="cookie"] button',
			'[class*="consent"] button',
		];
		let clicked = 0;
		for (const sel of selectors) {
			for (const el of document.querySelectorAll(sel)) {
				try { el.click(); clicked++; } catch (e) {}
			}
		}
		return clicked;
	}`)
	if err != nil {
		log.Debug("browser: popup dismissal failed", "error", err)
	}
}

// ScrollToBottom scrolls the page in steps with a delay between each, so
// scroll-triggered lazy loading fires while the capture window is open.
func (t *Tab) ScrollToBottom(ctx context.Context, steps int, delay time.Duration) {
	log := t.manager.cfg.Logger
	for i := 0; i < steps; i++ {
		_, err := t.Page.Context(ctx).Eval(`() => {
			window.scrollBy(0, window.innerHeight);
			return window.scrollY;
		}`)
		if err != nil {
			log.Debug("browser: scroll failed", "step", i, "error", err)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// Snapshot serialises the complete DOM as outer HTML.
func (t *Tab) Snapshot(ctx context.Context) ([]byte, error) {
	res, err := t.Page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return nil, fmt.Errorf("browser: snapshot: %w", err)
	}
	return []byte(res.Value.Str()), nil
}

// Close closes the tab.
func (t *Tab) Close() error {
	if t.Page != nil {
		return t.Page.Close()
	}
	return nil
}

// applyResourceBlocking intercepts requests and blocks the configured
// resource types.
func applyResourceBlocking(page *rod.Page, types []string) error {
	blockSet := make(map[string]bool, len(types))
	for _, rt := range types {
		blockSet[rt] = true
	}

	router := page.HijackRequests()
	router.MustAdd("*", func(h *rod.Hijack) {
		if shouldBlock(blockSet, string(h.Request.Type())) {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		h.ContinueRequest(&proto.FetchContinueRequest{})
	})
	go router.Run()

	return nil
}

func shouldBlock(blockSet map[string]bool, resType string) bool {
	switch resType {
	case "Image":
		return blockSet["images"]
	case "Font":
		return blockSet["fonts"]
	case "Media":
		return blockSet["media"]
	case "Stylesheet":
		return blockSet["stylesheets"]
	}
	return false
}
