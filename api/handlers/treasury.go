// ABOUTME: Collection handler for /treasury/{namespace}
// ABOUTME: Injects Collection JSON-LD listing the collection's items

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/copus-io/copus-edge/core/domain"
	"github.com/copus-io/copus-edge/core/policy"
	"github.com/copus-io/copus-edge/core/rewrite"
	"github.com/copus-io/copus-edge/core/seo"
	"github.com/copus-io/copus-edge/pkg/featureflags"
)

const treasuryItemPageSize = 20

// Treasury serves the collection routes.
func (h *Handler) Treasury(w http.ResponseWriter, r *http.Request) {
	namespace := chi.URLParam(r, "namespace")
	if isAssetPath(namespace) {
		h.Passthrough(w, r)
		return
	}

	env := h.env(r)

	if wantsJSON(r) {
		h.treasuryJSON(w, r, namespace)
		return
	}

	space, items, err := h.spaceWithItems(r, namespace)

	tr := rewrite.NewTransformer()
	rewrite.TagRemover{}.Register(tr)

	if err != nil {
		h.deps.Logger.Warn("treasury fetch failed, serving page without metadata", map[string]interface{}{
			"namespace": namespace,
			"error":     err.Error(),
		})
		rewrite.HeadInjector{NoData: true}.Register(tr)
		h.serveRewritten(w, r, r.URL.Path, tr)
		return
	}

	site := seo.Site{Base: env.SiteBase}
	bundle := seo.MergeForSpace(space, seo.ParseSeoData(space.SeoDataByAi), seo.ContextHTML)

	rewrite.HeadInjector{
		Bundle:    bundle,
		Canonical: site.TreasuryURL(namespace),
		OGType:    "website",
	}.Register(tr)
	rewrite.BodyInjector{
		Schemas: seo.CollectionSchemas(space, items, site),
	}.Register(tr)

	if h.flags.IsEnabled(featureflags.BotPrerender) && h.bots.IsBot(r.UserAgent()) {
		h.servePrerendered(w, tr)
		return
	}

	h.serveRewritten(w, r, r.URL.Path, tr)
}

func (h *Handler) treasuryJSON(w http.ResponseWriter, r *http.Request, namespace string) {
	env := h.env(r)

	space, items, err := h.spaceWithItems(r, namespace)
	if err != nil {
		writeError(w, err)
		return
	}

	bundle := seo.MergeForSpace(space, seo.ParseSeoData(space.SeoDataByAi), seo.ContextStructured)

	w.Header().Set("Cache-Control", policy.CacheControl(policy.ClassEntityJSON))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, http.StatusOK, seo.CollectionDocument(space, items, bundle, seo.Site{Base: env.SiteBase}))
}

// spaceWithItems fetches the collection and, best-effort, its items.
func (h *Handler) spaceWithItems(r *http.Request, namespace string) (*domain.Space, []domain.Article, error) {
	env := h.env(r)

	space, err := h.fetcher.SpaceByNamespace(r.Context(), env.ContentAPIBase, namespace)
	if err != nil {
		return nil, nil, err
	}

	items, err := h.fetcher.SpaceArticles(r.Context(), env.ContentAPIBase, space.ID, 1, treasuryItemPageSize)
	if err != nil {
		h.deps.Logger.Warn("treasury items fetch failed", map[string]interface{}{
			"namespace": namespace,
			"error":     err.Error(),
		})
		items = nil
	}

	return space, items, nil
}
