// ABOUTME: Homepage handler injecting site-wide WebSite metadata and search action
// ABOUTME: The home document carries no entity, so metadata is static per environment

package handlers

import (
	"net/http"

	"github.com/copus-io/copus-edge/core/rewrite"
	"github.com/copus-io/copus-edge/core/seo"
	"github.com/copus-io/copus-edge/pkg/featureflags"
)

const (
	homeTitle       = "Copus - The Internet Treasure Map"
	homeDescription = "Discover human-curated content from across the web. Curators collect, annotate, and share the internet's most valuable resources."

	// homeRecentCount bounds the recent-curations listing embedded in
	// the homepage semantic block.
	homeRecentCount = 50
)

// Home serves the site root with WebSite JSON-LD and default metadata.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	env := h.env(r)
	site := seo.Site{Base: env.SiteBase}

	tr := rewrite.NewTransformer()
	rewrite.TagRemover{}.Register(tr)
	rewrite.HeadInjector{
		Bundle: seo.Bundle{
			Title:       homeTitle,
			Description: homeDescription,
			Image:       site.DefaultImage(),
		},
		Canonical: env.SiteBase,
		OGType:    "website",
	}.Register(tr)
	body := rewrite.BodyInjector{
		Schemas: []seo.Schema{websiteSchema(env.SiteBase, site)},
	}
	if h.flags.IsEnabled(featureflags.SemanticBlock) {
		body.Semantic = h.recentCurationsBlock(r, site)
	}
	body.Register(tr)

	if h.flags.IsEnabled(featureflags.BotPrerender) && h.bots.IsBot(r.UserAgent()) {
		h.servePrerendered(w, tr)
		return
	}

	h.serveRewritten(w, r, r.URL.Path, tr)
}

// recentCurationsBlock builds the hidden listing of recent curations.
// Listing failure degrades to no block; the homepage never waits on a
// retry.
func (h *Handler) recentCurationsBlock(r *http.Request, site seo.Site) string {
	env := h.env(r)

	page, err := h.fetcher.ListContentPage(r.Context(), env.ContentAPIBase, 1, homeRecentCount)
	if err != nil {
		h.deps.Logger.Warn("recent curations fetch failed, homepage served without listing", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}
	return rewrite.SemanticHomeBlock(page.Data, site)
}

func websiteSchema(siteBase string, site seo.Site) seo.Schema {
	return seo.Schema{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        seo.SiteName,
		"url":         siteBase,
		"description": homeDescription,
		"potentialAction": seo.Schema{
			"@type":       "SearchAction",
			"target":      siteBase + "/api/search?q={search_term_string}",
			"query-input": "required name=search_term_string",
		},
		"publisher": seo.Schema{
			"@type": "Organization",
			"name":  seo.SiteName,
			"url":   siteBase,
			"logo":  site.Logo(),
		},
	}
}
