package harvest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HarvestRequest is the POST /harvest body.
type HarvestRequest struct {
	URL   string `json:"url"`
	Limit int    `json:"limit,omitempty"`
}

// RegisterHTTP registers the harvest endpoints on a chi router.
func (h *Harvester) RegisterHTTP(r chi.Router) {
	r.Post("/harvest", h.handleHarvest)
	r.Get("/healthz", h.handleHealthz)
}

func (h *Harvester) handleHarvest(w http.ResponseWriter, r *http.Request) {
	var req HarvestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	res, err := h.Run(r.Context(), req.URL, req.Limit)
	if err != nil {
		h.logger.Error("harvest: http run failed", "url", req.URL, "error", err)
		if res == nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		// Extraction succeeded but a sink failed; still return the document.
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Harvester) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
