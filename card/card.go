// Package card proposes text blocks likely to represent one review each,
// from a snapshot of the rendered page. Two independent heuristics are
// exposed: anchor-based ascent from "see more" elements, and a bounded
// whole-document block scan used as fallback.
package card

import (
	"github.com/hazyhaar/revq/textblock"
)

// Element is one node of the rendered document: its flattened text and a
// link to its parent. DOM ancestry is acyclic by construction, but the
// locator still enforces a depth bound on ascent.
type Element interface {
	// Text returns the element's flattened, whitespace-collapsed text,
	// including all descendants.
	Text() string
	// Parent returns the enclosing element, or nil at the root.
	Parent() Element
}

// Document gives the locator its two entry points into the snapshot.
type Document interface {
	// Anchors returns elements whose own text is an expand marker.
	Anchors() []Element
	// Elements returns every element in document order.
	Elements() []Element
}

// Config bounds the locator's work. The numbers are empirically tuned
// thresholds, not derived constants; callers may override them.
type Config struct {
	// MinLen and MaxLen bound the plausible-card text length window.
	MinLen int
	MaxLen int
	// MaxDepth bounds ancestor ascent from an anchor.
	MaxDepth int
	// ScanCap bounds how many blocks the fallback scan may keep.
	ScanCap int
}

func (c *Config) defaults() {
	if c.MinLen <= 0 {
		c.MinLen = 40
	}
	if c.MaxLen <= 0 {
		c.MaxLen = 900
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 10
	}
	if c.ScanCap <= 0 {
		c.ScanCap = 60
	}
}

// AnchorBlocks ascends from every expand-marker element and records the
// first ancestor whose text contains a rating token, is not noise, and
// falls inside the plausible-card window. Each stopping ancestor is one
// candidate block. No deduplication happens here.
func AnchorBlocks(doc Document, cfg Config) []string {
	cfg.defaults()

	var blocks []string
	for _, anchor := range doc.Anchors() {
		el := anchor.Parent()
		for depth := 0; el != nil && depth < cfg.MaxDepth; depth++ {
			t := el.Text()
			if plausibleCard(t, cfg) {
				blocks = append(blocks, t)
				break
			}
			el = el.Parent()
		}
	}
	return blocks
}

// ScanBlocks flattens every element and keeps those inside the length
// window that are not noise and carry either a date token or an expand
// marker, up to ScanCap blocks.
func ScanBlocks(doc Document, cfg Config) []string {
	cfg.defaults()

	var blocks []string
	for _, el := range doc.Elements() {
		if len(blocks) >= cfg.ScanCap {
			break
		}
		t := el.Text()
		if len(t) <= cfg.MinLen || len(t) >= cfg.MaxLen {
			continue
		}
		if textblock.IsNoise(t) {
			continue
		}
		if _, ok := textblock.DateToken(t); !ok && !textblock.HasExpand(t) {
			continue
		}
		blocks = append(blocks, t)
	}
	return blocks
}

func plausibleCard(t string, cfg Config) bool {
	if len(t) <= cfg.MinLen || len(t) >= cfg.MaxLen {
		return false
	}
	if textblock.IsNoise(t) {
		return false
	}
	_, ok := textblock.RatingToken(t)
	return ok
}
