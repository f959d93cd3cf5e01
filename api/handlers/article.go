// ABOUTME: Work-page handler: streaming HTML augmentation, JSON document variant, bot prerender
// ABOUTME: Upstream failure during HTML rewriting degrades to a diagnostic marker, never an error page

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/copus-io/copus-edge/core/policy"
	"github.com/copus-io/copus-edge/core/rewrite"
	"github.com/copus-io/copus-edge/core/seo"
	"github.com/copus-io/copus-edge/pkg/featureflags"
)

// emptyShell is the document prerendered metadata is injected into when
// a crawler is served without waiting on the origin app shell.
const emptyShell = `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"></head><body></body></html>`

// Article serves /work/{id}: the rewritten app shell for humans, a flat
// JSON-LD document for format=json, and a prerendered metadata page for
// crawlers.
func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if isAssetPath(id) {
		h.Passthrough(w, r)
		return
	}

	env := h.env(r)

	if wantsJSON(r) {
		h.articleJSON(w, r, id)
		return
	}

	article, err := h.fetcher.ArticleByID(r.Context(), env.ContentAPIBase, id)

	tr := rewrite.NewTransformer()
	rewrite.TagRemover{}.Register(tr)

	if err != nil {
		h.deps.Logger.Warn("article fetch failed, serving page without metadata", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		rewrite.HeadInjector{NoData: true}.Register(tr)
		h.serveRewritten(w, r, "/work/"+id, tr)
		return
	}

	site := seo.Site{Base: env.SiteBase}
	manual := seo.ParseSeoData(article.SeoData)
	ai := seo.ParseSeoData(article.SeoDataByAi)

	headBundle := seo.Merge(article, manual, ai, seo.ContextHTML)
	bodyBundle := seo.Merge(article, manual, ai, seo.ContextStructured)

	rewrite.HeadInjector{
		Bundle:    headBundle,
		Canonical: site.ArticleURL(article.ContentID()),
	}.Register(tr)

	body := rewrite.BodyInjector{Schemas: seo.ArticleSchemas(article, bodyBundle, site)}
	if h.flags.IsEnabled(featureflags.SemanticBlock) {
		body.Semantic = rewrite.SemanticArticleBlock(bodyBundle)
	}
	body.Register(tr)

	if h.flags.IsEnabled(featureflags.BotPrerender) && h.bots.IsBot(r.UserAgent()) {
		h.servePrerendered(w, tr)
		return
	}

	h.serveRewritten(w, r, "/work/"+id, tr)
}

// articleJSON answers the format=json variant with the flat JSON-LD
// document.
func (h *Handler) articleJSON(w http.ResponseWriter, r *http.Request, id string) {
	env := h.env(r)

	article, err := h.fetcher.ArticleByID(r.Context(), env.ContentAPIBase, id)
	if err != nil {
		writeError(w, err)
		return
	}

	manual := seo.ParseSeoData(article.SeoData)
	ai := seo.ParseSeoData(article.SeoDataByAi)
	bundle := seo.Merge(article, manual, ai, seo.ContextStructured)

	w.Header().Set("Cache-Control", policy.CacheControl(policy.ClassEntityJSON))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, http.StatusOK, seo.ArticleDocument(article, bundle, seo.Site{Base: env.SiteBase}))
}

// servePrerendered runs the empty shell through the transformer,
// producing a minimal metadata-complete page without an origin round
// trip.
func (h *Handler) servePrerendered(w http.ResponseWriter, tr *rewrite.Transformer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", policy.CacheControl(policy.ClassTextFile))
	w.WriteHeader(http.StatusOK)

	if err := tr.Transform(strings.NewReader(emptyShell), w); err != nil {
		h.deps.Logger.Error("prerender transform failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
