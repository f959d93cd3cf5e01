// ABOUTME: Shared handler state and origin document plumbing
// ABOUTME: Routes either pass the origin through untouched or stream it through the rewrite pipeline

package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/copus-io/copus-edge/core/content"
	"github.com/copus-io/copus-edge/core/discovery"
	"github.com/copus-io/copus-edge/core/interfaces"
	"github.com/copus-io/copus-edge/core/policy"
	"github.com/copus-io/copus-edge/core/rewrite"
	"github.com/copus-io/copus-edge/core/sitemap"
	"github.com/copus-io/copus-edge/pkg/config"
	"github.com/copus-io/copus-edge/pkg/featureflags"
)

// Handler carries the shared collaborators for every route.
type Handler struct {
	deps      interfaces.Dependencies
	cfg       *config.Config
	fetcher   *content.Client
	discovery *discovery.Service
	sitemap   *sitemap.Builder
	bots      *policy.BotDetector
	flags     featureflags.Manager
}

// NewHandler wires the route handlers.
func NewHandler(deps interfaces.Dependencies, cfg *config.Config) *Handler {
	fetcher := content.NewClient(deps)
	return &Handler{
		deps:      deps,
		cfg:       cfg,
		fetcher:   fetcher,
		discovery: discovery.NewService(deps, fetcher),
		sitemap:   sitemap.NewBuilder(deps, fetcher),
		bots:      policy.NewBotDetector(nil),
		flags:     featureflags.NewEnvManager(""),
	}
}

// env resolves the upstream environment for the inbound request host.
func (h *Handler) env(r *http.Request) config.Environment {
	return h.cfg.Environments.Resolve(r.Host)
}

// wantsJSON reports whether the request asked for the structured
// document variant of an entity route.
func wantsJSON(r *http.Request) bool {
	return r.URL.Query().Get("format") == "json"
}

// isAssetPath reports whether the tail of an entity route is actually a
// static asset reference, which must bypass augmentation.
func isAssetPath(tail string) bool {
	return strings.Contains(tail, ".")
}

// fetchOrigin retrieves the origin document for the request path.
func (h *Handler) fetchOrigin(ctx context.Context, env config.Environment, path string) (interfaces.Response, error) {
	return h.deps.HTTPClient.Get(ctx, env.OriginBase+path)
}

// Passthrough streams the origin response unmodified.
func (h *Handler) Passthrough(w http.ResponseWriter, r *http.Request) {
	env := h.env(r)

	resp, err := h.fetchOrigin(r.Context(), env, r.URL.RequestURI())
	if err != nil {
		h.deps.Logger.Error("origin fetch failed", map[string]interface{}{
			"path":  r.URL.Path,
			"error": err.Error(),
		})
		http.Error(w, "origin unavailable", http.StatusBadGateway)
		return
	}
	body := resp.Body()
	defer body.Close()

	if ct := resp.Header("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode())
	io.Copy(w, body)
}

// serveRewritten fetches the origin document for path and streams it
// through the given transformer. Origin failure answers 502; transform
// errors after the first byte are logged, the client keeps what was
// already flushed.
func (h *Handler) serveRewritten(w http.ResponseWriter, r *http.Request, path string, tr *rewrite.Transformer) {
	env := h.env(r)

	resp, err := h.fetchOrigin(r.Context(), env, path)
	if err != nil {
		h.deps.Logger.Error("origin fetch failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		http.Error(w, "origin unavailable", http.StatusBadGateway)
		return
	}
	body := resp.Body()
	defer body.Close()

	contentType := resp.Header("Content-Type")
	if resp.StatusCode() != http.StatusOK || !strings.Contains(contentType, "text/html") {
		// Not a rewritable document: flow unmodified.
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(resp.StatusCode())
		io.Copy(w, body)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", policy.CacheControl(policy.ClassRewrittenHTML))
	w.WriteHeader(http.StatusOK)

	if err := tr.Transform(body, w); err != nil {
		h.deps.Logger.Error("document transform aborted mid-stream", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
}
