// ABOUTME: Sitemap endpoint serving the sitemap protocol document
// ABOUTME: Always 200; upstream failures degrade to a partial sitemap

package handlers

import (
	"net/http"

	"github.com/copus-io/copus-edge/core/policy"
)

// Sitemap serves /sitemap.xml.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	env := h.env(r)

	body, err := h.sitemap.Render(r.Context(), env)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", policy.CacheControl(policy.ClassSitemap))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
