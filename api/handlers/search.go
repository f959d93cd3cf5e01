// ABOUTME: Search proxy returning SearchResultsPage JSON-LD for AI agents
// ABOUTME: Validates q, clamps limit, and rewrites upstream results into schema.org items

package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/copus-io/copus-edge/core/domain"
	"github.com/copus-io/copus-edge/core/policy"
	"github.com/copus-io/copus-edge/core/seo"
	"github.com/copus-io/copus-edge/pkg/utils/parse"
)

const (
	searchDefaultLimit = 10
	searchMaxLimit     = 50
)

// Search serves /api/search, proxying the upstream topic search as a
// schema.org SearchResultsPage.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	env := h.env(r)
	site := seo.Site{Base: env.SiteBase}
	query := r.URL.Query()

	q := query.Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "Missing required parameter: q",
			"usage": map[string]interface{}{
				"endpoint": env.SiteBase + "/api/search",
				"parameters": map[string]string{
					"q":        "Search query (required)",
					"category": "Filter by category (optional)",
					"limit":    fmt.Sprintf("Number of results, max %d (default: %d)", searchMaxLimit, searchDefaultLimit),
					"offset":   "Pagination offset (default: 0)",
				},
				"example": env.SiteBase + "/api/search?q=AI+tools&limit=10",
			},
		})
		return
	}

	limit := parse.IntOrDefault(query.Get("limit"), searchDefaultLimit)
	if limit > searchMaxLimit {
		limit = searchMaxLimit
	}
	offset := parse.IntOrZero(query.Get("offset"))
	if offset < 0 {
		offset = 0
	}
	category := query.Get("category")

	page, err := h.fetcher.SearchByTopicFiltered(r.Context(), env.ContentAPIBase, q, category, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]seo.Schema, 0, len(page.Results))
	for i, article := range page.Results {
		items = append(items, seo.Schema{
			"@type":    "ListItem",
			"position": offset + i + 1,
			"item":     searchResultItem(&article, site),
		})
	}

	doc := seo.Schema{
		"@context":        "https://schema.org",
		"@type":           "SearchResultsPage",
		"query":           q,
		"totalResults":    page.Total,
		"numberOfItems":   len(items),
		"itemListElement": items,
		"provider": seo.Schema{
			"@type":       "Organization",
			"name":        seo.SiteName,
			"url":         env.SiteBase,
			"description": "Human-curated content discovery platform",
		},
		"pagination": pagination(env.SiteBase, q, category, limit, offset, len(items), page.Total),
	}

	w.Header().Set("Cache-Control", policy.CacheControl(policy.ClassSearch))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, http.StatusOK, doc)
}

func searchResultItem(article *domain.Article, site seo.Site) seo.Schema {
	id := article.ContentID()

	item := seo.Schema{
		"@type":        "Article",
		"identifier":   id,
		"url":          site.ArticleURL(id),
		"name":         article.Title,
		"jsonEndpoint": site.ArticleURL(id) + "?format=json",
	}
	if article.Description != "" {
		item["description"] = article.Description
	}
	if article.TargetURL != "" {
		item["originalSource"] = article.TargetURL
	}
	if cat := article.CategoryName(); cat != "" {
		item["category"] = cat
	}
	if len(article.Keywords) > 0 {
		item["keywords"] = article.Keywords
	}
	if ns := article.AuthorNamespace(); ns != "" {
		item["author"] = seo.Schema{
			"@type": "Person",
			"name":  article.AuthorName(),
			"url":   site.ShortProfileURL(ns),
		}
	}
	if article.PublishAt > 0 {
		item["datePublished"] = time.Unix(article.PublishAt, 0).UTC().Format(time.RFC3339)
	}
	item["interactionStatistic"] = []seo.Schema{
		{
			"@type":                "InteractionCounter",
			"interactionType":      "https://schema.org/ViewAction",
			"userInteractionCount": article.ViewCount,
		},
		{
			"@type":                "InteractionCounter",
			"interactionType":      "https://schema.org/BookmarkAction",
			"userInteractionCount": article.LikeCount,
		},
	}

	return item
}

func pagination(siteBase, q, category string, limit, offset, returned, total int) seo.Schema {
	hasMore := offset+returned < total

	p := seo.Schema{
		"offset":  offset,
		"limit":   limit,
		"hasMore": hasMore,
	}
	if hasMore {
		next := fmt.Sprintf("%s/api/search?q=%s", siteBase, url.QueryEscape(q))
		if category != "" {
			next += "&category=" + url.QueryEscape(category)
		}
		next += fmt.Sprintf("&limit=%d&offset=%d", limit, offset+limit)
		p["nextPage"] = next
	}

	return p
}
