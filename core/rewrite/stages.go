// ABOUTME: Rewrite stages stripping stale metadata and injecting the merged bundle
// ABOUTME: Stage order is fixed: removal first, then head injection, then body injection

package rewrite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/copus-io/copus-edge/core/domain"
	"github.com/copus-io/copus-edge/core/seo"
)

// removableMetaNames are meta name= values owned by the rewrite; any
// pre-rendered copy is stripped before injection so tags never duplicate.
var removableMetaNames = map[string]struct{}{
	"description": {},
	"keywords":    {},
	"author":      {},
	"robots":      {},
	"seo-worker":  {},
}

// removableMetaPrefixes cover the namespaced property= families the
// rewrite re-emits in full.
var removableMetaPrefixes = []string{"og:", "twitter:", "article:", "profile:"}

// TagRemover strips the origin page's own title, description/keyword and
// social meta tags, canonical link, and JSON-LD scripts. Running the
// removal over an already-rewritten page strips exactly the tags a prior
// pass injected, so two passes produce the same document as one.
type TagRemover struct{}

// Register wires the removal mutators onto t.
func (TagRemover) Register(t *Transformer) {
	t.OnElement("title", func(el *Element) Mutation {
		return Mutation{Remove: true}
	})

	t.OnElement("meta", func(el *Element) Mutation {
		if _, owned := removableMetaNames[el.Attr("name")]; owned {
			return Mutation{Remove: true}
		}
		prop := el.Attr("property")
		if prop == "" {
			prop = el.Attr("name")
		}
		for _, prefix := range removableMetaPrefixes {
			if strings.HasPrefix(prop, prefix) {
				return Mutation{Remove: true}
			}
		}
		return Mutation{}
	})

	t.OnElement("link", func(el *Element) Mutation {
		if el.Attr("rel") == "canonical" {
			return Mutation{Remove: true}
		}
		return Mutation{}
	})

	t.OnElement("script", func(el *Element) Mutation {
		if el.Attr("type") == "application/ld+json" {
			return Mutation{Remove: true}
		}
		return Mutation{}
	})

	t.OnElement("div", func(el *Element) Mutation {
		if el.Attr("data-copus") == "semantic" {
			return Mutation{Remove: true}
		}
		return Mutation{}
	})
}

// HeadInjector prepends the merged bundle's title, meta tags, and
// canonical link into <head>. When NoData is set the upstream lookup
// failed and only a diagnostic marker is emitted, leaving the page's
// remaining markup to speak for itself.
type HeadInjector struct {
	Bundle    seo.Bundle
	Canonical string
	OGType    string // og:type, defaults to "article"
	SiteName  string
	NoData    bool
}

// Register wires the head mutator onto t.
func (h HeadInjector) Register(t *Transformer) {
	t.OnElement("head", func(el *Element) Mutation {
		return Mutation{Prepend: h.markup()}
	})
}

func (h HeadInjector) markup() []byte {
	var buf bytes.Buffer

	if h.NoData {
		buf.WriteString(`<meta name="seo-worker" content="no-data">`)
		return buf.Bytes()
	}

	b := h.Bundle
	siteName := h.SiteName
	if siteName == "" {
		siteName = seo.SiteName
	}
	ogType := h.OGType
	if ogType == "" {
		ogType = "article"
	}

	fmt.Fprintf(&buf, "<title>%s</title>", html.EscapeString(b.Title))
	writeMetaName(&buf, "description", b.Description)
	if b.HasKeywords() {
		writeMetaName(&buf, "keywords", b.JoinedKeywords())
	}
	writeMetaName(&buf, "author", b.Author)

	if h.Canonical != "" {
		fmt.Fprintf(&buf, `<link rel="canonical" href="%s">`, html.EscapeString(h.Canonical))
	}

	writeMetaProperty(&buf, "og:type", ogType)
	writeMetaProperty(&buf, "og:title", b.Title)
	writeMetaProperty(&buf, "og:description", b.Description)
	writeMetaProperty(&buf, "og:url", h.Canonical)
	writeMetaProperty(&buf, "og:image", b.Image)
	writeMetaProperty(&buf, "og:site_name", siteName)

	writeMetaName(&buf, "twitter:card", "summary_large_image")
	writeMetaName(&buf, "twitter:title", b.Title)
	writeMetaName(&buf, "twitter:description", b.Description)
	writeMetaName(&buf, "twitter:image", b.Image)

	if ogType == "article" {
		writeMetaProperty(&buf, "article:published_time", b.PublishedAt)
		writeMetaProperty(&buf, "article:modified_time", b.ModifiedAt)
		writeMetaProperty(&buf, "article:author", b.Author)
	}

	return buf.Bytes()
}

// BodyInjector prepends the JSON-LD graph and a visually-hidden semantic
// block into <body> so crawlers that skip script tags still see the
// merged metadata as markup.
type BodyInjector struct {
	Schemas  []seo.Schema
	Semantic string // pre-rendered HTML, injected as-is
}

// Register wires the body mutator onto t.
func (b BodyInjector) Register(t *Transformer) {
	t.OnElement("body", func(el *Element) Mutation {
		return Mutation{Prepend: b.markup()}
	})
}

func (b BodyInjector) markup() []byte {
	var buf bytes.Buffer

	if len(b.Schemas) > 0 {
		payload, err := json.Marshal(graph(b.Schemas))
		if err == nil {
			buf.WriteString(`<script type="application/ld+json">`)
			buf.Write(payload)
			buf.WriteString(`</script>`)
		}
	}

	if b.Semantic != "" {
		buf.WriteString(`<div data-copus="semantic" style="position:absolute;width:1px;height:1px;overflow:hidden;clip:rect(0,0,0,0)" aria-hidden="true">`)
		buf.WriteString(b.Semantic)
		buf.WriteString(`</div>`)
	}

	return buf.Bytes()
}

// graph collapses a single schema to the bare object and wraps multiple
// schemas in an @graph envelope.
func graph(schemas []seo.Schema) interface{} {
	if len(schemas) == 1 {
		return schemas[0]
	}
	return seo.Schema{
		"@context": "https://schema.org",
		"@graph":   schemas,
	}
}

// SemanticArticleBlock renders the hidden crawler-facing summary for an
// article page.
func SemanticArticleBlock(b seo.Bundle) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "<article><h1>%s</h1>", html.EscapeString(b.Title))
	if b.Description != "" {
		fmt.Fprintf(&buf, "<p>%s</p>", html.EscapeString(b.Description))
	}
	if b.Author != "" {
		fmt.Fprintf(&buf, "<p>Curated by %s</p>", html.EscapeString(b.Author))
	}
	if len(b.KeyTakeaways) > 0 {
		buf.WriteString("<h2>Key Takeaways</h2><ul>")
		for _, kt := range b.KeyTakeaways {
			fmt.Fprintf(&buf, "<li>%s</li>", html.EscapeString(kt))
		}
		buf.WriteString("</ul>")
	}
	if len(b.Facts) > 0 {
		buf.WriteString("<h2>Facts</h2><ul>")
		for _, f := range b.Facts {
			fmt.Fprintf(&buf, "<li>%s</li>", html.EscapeString(f))
		}
		buf.WriteString("</ul>")
	}
	buf.WriteString("</article>")

	return buf.String()
}

// SemanticHomeBlock renders the hidden crawler-facing listing of recent
// curations for the homepage.
func SemanticHomeBlock(articles []domain.Article, site seo.Site) string {
	if len(articles) == 0 {
		return ""
	}

	var buf bytes.Buffer
	buf.WriteString("<section><h2>Recent Curations</h2><ul>")
	for _, a := range articles {
		id := a.ContentID()
		if id == "" || a.Title == "" {
			continue
		}
		fmt.Fprintf(&buf, `<li><a href="%s">%s</a>`,
			html.EscapeString(site.ArticleURL(id)), html.EscapeString(a.Title))
		if name := a.AuthorName(); name != "" {
			fmt.Fprintf(&buf, " curated by %s", html.EscapeString(name))
		}
		buf.WriteString("</li>")
	}
	buf.WriteString("</ul></section>")

	return buf.String()
}

func writeMetaName(buf *bytes.Buffer, name, content string) {
	if content == "" {
		return
	}
	fmt.Fprintf(buf, `<meta name="%s" content="%s">`, name, html.EscapeString(content))
}

func writeMetaProperty(buf *bytes.Buffer, property, content string) {
	if content == "" {
		return
	}
	fmt.Fprintf(buf, `<meta property="%s" content="%s">`, property, html.EscapeString(content))
}
