// ABOUTME: Plain-text agent surfaces: robots.txt, llms.txt, articles.txt
// ABOUTME: articles.txt walks the listing bounded; failures emit whatever was collected

package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/copus-io/copus-edge/core/policy"
)

const (
	articlesPageSize = 100
	articlesMaxPages = 10
)

// Robots serves a crawl-everything robots.txt with AI-agent pointers.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	env := h.env(r)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `# Copus - The Internet Treasure Map
# Human-curated content discovery platform

User-agent: *
Allow: /

# AI Agent Quick Access
# Search API: %[1]s/api/search?q=YOUR_QUERY
# Articles: %[1]s/articles.txt
# Docs: %[1]s/llms.txt

Sitemap: %[1]s/sitemap.xml
`, env.SiteBase)

	for _, agent := range []string{"GPTBot", "ChatGPT-User", "Claude-Web", "Anthropic-AI", "PerplexityBot", "Bytespider"} {
		fmt.Fprintf(&buf, "\nUser-agent: %s\nAllow: /\n", agent)
	}

	writeText(w, policy.ClassRobots, buf.Bytes())
}

// LLMs serves machine-readable usage documentation for language-model
// agents.
func (h *Handler) LLMs(w http.ResponseWriter, r *http.Request) {
	env := h.env(r)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `# Copus - The Internet Treasure Map
# Human-curated content discovery platform

## QUICK START
Search: %[1]s/api/search?q=YOUR_QUERY

## ENDPOINTS
- /api/search?q=QUERY - Search curations (JSON-LD)
- /api/discover?topic=TOPIC - Ranked curators for a topic (JSON-LD)
- /work/{id}?format=json - Article details (JSON-LD)
- /user/{namespace}?format=json - Curator profile (JSON-LD)
- /treasury/{namespace}?format=json - Collection details (JSON-LD)
- /articles.txt - Plain text article list
- /sitemap.xml - XML sitemap

## ABOUT
Copus is a platform where humans curate and share valuable internet resources.
Each curation includes:
- The original URL being recommended
- Curator's note explaining why it's valuable
- Key takeaways and facts
- Curator credibility information

## CONTACT
Website: %[1]s
`, env.SiteBase)

	writeText(w, policy.ClassTextFile, buf.Bytes())
}

// Articles serves a plain-text article list, easier for agents to parse
// than the sitemap. The listing walk is bounded and best-effort.
func (h *Handler) Articles(w http.ResponseWriter, r *http.Request) {
	env := h.env(r)

	var entries bytes.Buffer
	count := 0
	for pageIndex := 1; pageIndex <= articlesMaxPages; pageIndex++ {
		page, err := h.fetcher.ListContentPage(r.Context(), env.ContentAPIBase, pageIndex, articlesPageSize)
		if err != nil {
			h.deps.Logger.Warn("articles.txt page fetch failed, emitting partial list", map[string]interface{}{
				"pageIndex": pageIndex,
				"error":     err.Error(),
			})
			break
		}

		for _, a := range page.Data {
			id := a.ContentID()
			if id == "" {
				continue
			}
			count++
			fmt.Fprintf(&entries, "%s\nURL: %s/work/%s\nJSON: %s/work/%s?format=json\nBy: %s\n\n",
				a.Title, env.SiteBase, id, env.SiteBase, id, a.AuthorName())
		}

		if len(page.Data) < articlesPageSize {
			break
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `# Copus Articles
# Total: %d curated recommendations
# Search API: %s/api/search?q=YOUR_QUERY

`, count, env.SiteBase)
	buf.Write(entries.Bytes())

	writeText(w, policy.ClassTextFile, buf.Bytes())
}

func writeText(w http.ResponseWriter, class policy.Class, body []byte) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", policy.CacheControl(class))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
