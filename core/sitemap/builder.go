// ABOUTME: Sitemap builder walking the paginated content listing to exhaustion
// ABOUTME: Bounded page walk, best-effort on upstream failure, static pages always first

package sitemap

import (
	"context"
	"encoding/xml"

	"github.com/copus-io/copus-edge/core/content"
	"github.com/copus-io/copus-edge/core/interfaces"
	"github.com/copus-io/copus-edge/core/seo"
	"github.com/copus-io/copus-edge/pkg/config"
	timeutil "github.com/copus-io/copus-edge/pkg/utils/time"
)

const (
	pageSize = 100

	// maxPages bounds total upstream load regardless of how large the
	// listing claims to be.
	maxPages = 50
)

// staticPaths are emitted unconditionally, ahead of dynamic entries.
var staticPaths = []staticPage{
	{path: "", changefreq: "daily", priority: "1.0"},
	{path: "/discovery", changefreq: "daily", priority: "0.9"},
	{path: "/topics", changefreq: "weekly", priority: "0.7"},
	{path: "/search", changefreq: "weekly", priority: "0.6"},
}

type staticPage struct {
	path       string
	changefreq string
	priority   string
}

// Entry is one sitemap URL record.
type Entry struct {
	XMLName    xml.Name `xml:"url"`
	Loc        string   `xml:"loc"`
	LastMod    string   `xml:"lastmod,omitempty"`
	ChangeFreq string   `xml:"changefreq,omitempty"`
	Priority   string   `xml:"priority,omitempty"`
}

// urlSet is the sitemap protocol document root.
type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []Entry  `xml:"url"`
}

// Builder assembles sitemaps from the live content listing.
type Builder struct {
	deps    interfaces.Dependencies
	fetcher *content.Client
}

// NewBuilder returns a sitemap builder using the shared dependencies.
func NewBuilder(deps interfaces.Dependencies, fetcher *content.Client) *Builder {
	return &Builder{deps: deps, fetcher: fetcher}
}

// Entries walks the content listing and returns static entries followed
// by dynamic ones in fetch order. The walk stops at the first short
// page, the page ceiling, or the first failed page; entries collected
// before a failure are still returned. No error surfaces to the caller.
func (b *Builder) Entries(ctx context.Context, env config.Environment) []Entry {
	site := seo.Site{Base: env.SiteBase}

	entries := make([]Entry, 0, len(staticPaths))
	for _, sp := range staticPaths {
		entries = append(entries, Entry{
			Loc:        env.SiteBase + sp.path,
			ChangeFreq: sp.changefreq,
			Priority:   sp.priority,
		})
	}

	for pageIndex := 1; pageIndex <= maxPages; pageIndex++ {
		page, err := b.fetcher.ListContentPage(ctx, env.ContentAPIBase, pageIndex, pageSize)
		if err != nil {
			b.deps.Logger.Warn("sitemap page fetch failed, emitting partial sitemap", map[string]interface{}{
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
			entry := Entry{
				Loc:        site.ArticleURL(id),
				ChangeFreq: "weekly",
				Priority:   "0.8",
			}
			if ts := lastMod(a.UpdateAt, a.PublishAt, a.CreateAt); ts != "" {
				entry.LastMod = ts
			}
			entries = append(entries, entry)
		}

		if len(page.Data) < pageSize {
			break
		}
	}

	return entries
}

// Render walks the listing and serializes the result as a sitemap
// protocol document.
func (b *Builder) Render(ctx context.Context, env config.Environment) ([]byte, error) {
	doc := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  b.Entries(ctx, env),
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// lastMod renders the first non-zero unix timestamp as a W3C date.
func lastMod(timestamps ...int64) string {
	for _, ts := range timestamps {
		if d := timeutil.W3CDate(ts); d != "" {
			return d
		}
	}
	return ""
}
