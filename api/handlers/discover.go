// ABOUTME: Topic discovery endpoint returning a ranked curator ItemList
// ABOUTME: Blank topics answer 400 with example queries; zero matches still answer 200

package handlers

import (
	"net/http"

	"github.com/copus-io/copus-edge/core/policy"
	"github.com/copus-io/copus-edge/pkg/utils/parse"
)

// Discover serves /api/discover?topic=...&limit=...; q is accepted as an
// alias for topic.
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	env := h.env(r)

	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = r.URL.Query().Get("q")
	}
	limit := parse.IntOrZero(r.URL.Query().Get("limit"))

	payload, err := h.discovery.Discover(r.Context(), env, topic, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", policy.CacheControl(policy.ClassDiscovery))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
