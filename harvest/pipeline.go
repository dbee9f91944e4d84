package harvest

import (
	"log/slog"

	"github.com/hazyhaar/revq/card"
	"github.com/hazyhaar/revq/dedupe"
	"github.com/hazyhaar/revq/harvest/internal/capture"
	"github.com/hazyhaar/revq/harvest/internal/config"
	"github.com/hazyhaar/revq/review"
	"github.com/hazyhaar/revq/scan"
	"github.com/hazyhaar/revq/textblock"
)

// Strategy names the extraction path that produced a result.
type Strategy string

const (
	StrategyNetwork   Strategy = "network"
	StrategyAnchorDOM Strategy = "anchor_dom"
	StrategyBlockDOM  Strategy = "block_dom"
	StrategyNone      Strategy = ""
)

// Pipeline runs the extraction strategies in falling order of fidelity:
// captured network payloads first, then anchor-guided DOM blocks, then a
// raw scan over every DOM block. The first strategy that yields at least
// one valid review wins; later strategies never run.
type Pipeline struct {
	heur   config.HeuristicsConfig
	logger *slog.Logger
}

// NewPipeline creates a pipeline with the given heuristic thresholds.
func NewPipeline(heur config.HeuristicsConfig, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{heur: heur, logger: logger}
}

// Run extracts at most limit reviews from the captured payloads and the
// page snapshot. A nil doc skips both DOM strategies. limit <= 0 returns
// no reviews regardless of what the page holds.
func (p *Pipeline) Run(payloads []capture.Payload, doc card.Document, limit int) ([]review.Review, Strategy) {
	if limit <= 0 {
		return nil, StrategyNone
	}

	if reviews := p.fromNetwork(payloads, limit); len(reviews) > 0 {
		return reviews, StrategyNetwork
	}
	if doc != nil {
		if reviews := p.fromAnchors(doc, limit); len(reviews) > 0 {
			return reviews, StrategyAnchorDOM
		}
		if reviews := p.fromBlocks(doc, limit); len(reviews) > 0 {
			return reviews, StrategyBlockDOM
		}
	}
	return nil, StrategyNone
}

// fromNetwork decodes every captured JSON payload and walks it for
// review-shaped objects. Payloads that fail to decode are skipped; a
// malformed response must never abort a run that other payloads or the
// DOM could still satisfy.
func (p *Pipeline) fromNetwork(payloads []capture.Payload, limit int) []review.Review {
	budget := p.rawCap(limit)
	var cands []review.Candidate
	for _, pl := range payloads {
		payload, err := scan.Decode(pl.Body)
		if err != nil {
			p.logger.Debug("harvest: skipping undecodable payload", "url", pl.URL, "error", err)
			continue
		}
		for _, obj := range scan.Scan(payload) {
			cands = append(cands, scan.Normalize(obj))
			if len(cands) >= budget {
				break
			}
		}
		if len(cands) >= budget {
			break
		}
	}
	return p.finish(cands, limit)
}

func (p *Pipeline) fromAnchors(doc card.Document, limit int) []review.Review {
	blocks := card.AnchorBlocks(doc, p.cardConfig())
	return p.finish(p.parseBlocks(blocks, limit), limit)
}

func (p *Pipeline) fromBlocks(doc card.Document, limit int) []review.Review {
	blocks := card.ScanBlocks(doc, p.cardConfig())
	return p.finish(p.parseBlocks(blocks, limit), limit)
}

func (p *Pipeline) parseBlocks(blocks []string, limit int) []review.Candidate {
	budget := p.rawCap(limit)
	var cands []review.Candidate
	for _, b := range blocks {
		if cand, ok := textblock.ParseCard(b, p.heur.MinBodyLen); ok {
			cands = append(cands, cand)
			if len(cands) >= budget {
				break
			}
		}
	}
	return cands
}

// finish validates, deduplicates and truncates candidates to the limit.
func (p *Pipeline) finish(cands []review.Candidate, limit int) []review.Review {
	reviews := dedupe.Dedupe(cands, p.heur.MinBodyLen)
	if len(reviews) > limit {
		reviews = reviews[:limit]
	}
	return reviews
}

// rawCap bounds raw candidate collection so a pathological page cannot
// explode memory before dedup. Always at least the limit itself.
func (p *Pipeline) rawCap(limit int) int {
	mult := p.heur.OverCollect
	if mult < 1 {
		mult = 1
	}
	return limit * mult
}

func (p *Pipeline) cardConfig() card.Config {
	return card.Config{
		MinLen:   p.heur.CardMinLen,
		MaxLen:   p.heur.CardMaxLen,
		MaxDepth: p.heur.AncestorDepth,
		ScanCap:  p.heur.ScanCap,
	}
}
