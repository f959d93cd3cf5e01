package rewrite

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/copus-io/copus-edge/core/domain"
	"github.com/copus-io/copus-edge/core/seo"
)

const originPage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Stale Title</title>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width">
<meta name="description" content="stale description">
<meta name="keywords" content="stale,keywords">
<meta property="og:title" content="stale og title">
<meta name="twitter:card" content="summary">
<link rel="canonical" href="https://old.example/work/abc">
<link rel="stylesheet" href="/app.css">
<script type="application/ld+json">{"@type":"Article"}</script>
<script src="/app.js"></script>
</head>
<body>
<div id="root">app shell</div>
</body>
</html>`

func transform(t *testing.T, tr *Transformer, input string) string {
	t.Helper()
	var out bytes.Buffer
	if err := tr.Transform(strings.NewReader(input), &out); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	return out.String()
}

func parse(t *testing.T, doc string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	return d
}

func pipeline(bundle seo.Bundle, canonical string, schemas []seo.Schema) *Transformer {
	tr := NewTransformer()
	TagRemover{}.Register(tr)
	HeadInjector{Bundle: bundle, Canonical: canonical}.Register(tr)
	BodyInjector{Schemas: schemas, Semantic: SemanticArticleBlock(bundle)}.Register(tr)
	return tr
}

func TestTransform_PassthroughWithoutMutators(t *testing.T) {
	tr := NewTransformer()

	out := transform(t, tr, originPage)

	if out != originPage {
		t.Error("document altered with no registered mutators")
	}
}

func TestTagRemover_StripsManagedTags(t *testing.T) {
	tr := NewTransformer()
	TagRemover{}.Register(tr)

	out := transform(t, tr, originPage)
	doc := parse(t, out)

	if doc.Find("title").Length() != 0 {
		t.Error("title survived removal")
	}
	if doc.Find(`meta[name="description"]`).Length() != 0 {
		t.Error("description meta survived removal")
	}
	if doc.Find(`meta[property="og:title"]`).Length() != 0 {
		t.Error("og meta survived removal")
	}
	if doc.Find(`meta[name="twitter:card"]`).Length() != 0 {
		t.Error("twitter meta survived removal")
	}
	if doc.Find(`link[rel="canonical"]`).Length() != 0 {
		t.Error("canonical link survived removal")
	}
	if doc.Find(`script[type="application/ld+json"]`).Length() != 0 {
		t.Error("JSON-LD script survived removal")
	}
	if strings.Contains(out, `"@type":"Article"`) {
		t.Error("JSON-LD body text survived removal")
	}
}

func TestTagRemover_LeavesUnmanagedTags(t *testing.T) {
	tr := NewTransformer()
	TagRemover{}.Register(tr)

	out := transform(t, tr, originPage)
	doc := parse(t, out)

	if doc.Find(`meta[charset]`).Length() != 1 {
		t.Error("charset meta removed")
	}
	if doc.Find(`meta[name="viewport"]`).Length() != 1 {
		t.Error("viewport meta removed")
	}
	if doc.Find(`link[rel="stylesheet"]`).Length() != 1 {
		t.Error("stylesheet link removed")
	}
	if !strings.Contains(out, `<script src="/app.js">`) {
		t.Error("application script removed")
	}
	if !strings.Contains(out, `<div id="root">app shell</div>`) {
		t.Error("body content altered")
	}
}

func TestHeadInjector_EmitsBundleTags(t *testing.T) {
	bundle := seo.Bundle{
		Title:       "Fresh Title",
		Description: "fresh description",
		Keywords:    []string{"go", "http"},
		Image:       "https://cdn.example/cover.png",
		Author:      "alice",
		PublishedAt: "2024-01-01T00:00:00Z",
		ModifiedAt:  "2024-02-01T00:00:00Z",
	}
	tr := pipeline(bundle, "https://copus.network/work/abc", nil)

	doc := parse(t, transform(t, tr, originPage))

	if got := doc.Find("title").Text(); got != "Fresh Title" {
		t.Errorf("title = %q", got)
	}
	if got, _ := doc.Find(`meta[name="description"]`).Attr("content"); got != "fresh description" {
		t.Errorf("description = %q", got)
	}
	if got, _ := doc.Find(`meta[name="keywords"]`).Attr("content"); got != "go, http" {
		t.Errorf("keywords = %q", got)
	}
	if got, _ := doc.Find(`link[rel="canonical"]`).Attr("href"); got != "https://copus.network/work/abc" {
		t.Errorf("canonical = %q", got)
	}
	if got, _ := doc.Find(`meta[property="og:title"]`).Attr("content"); got != "Fresh Title" {
		t.Errorf("og:title = %q", got)
	}
	if got, _ := doc.Find(`meta[property="og:type"]`).Attr("content"); got != "article" {
		t.Errorf("og:type = %q", got)
	}
	if got, _ := doc.Find(`meta[property="article:published_time"]`).Attr("content"); got != "2024-01-01T00:00:00Z" {
		t.Errorf("article:published_time = %q", got)
	}
	if got, _ := doc.Find(`meta[name="twitter:card"]`).Attr("content"); got != "summary_large_image" {
		t.Errorf("twitter:card = %q", got)
	}
}

func TestHeadInjector_AbsentFieldsOmitted(t *testing.T) {
	bundle := seo.Bundle{Title: "Only Title"}
	tr := pipeline(bundle, "", nil)

	doc := parse(t, transform(t, tr, originPage))

	if doc.Find(`meta[name="description"]`).Length() != 0 {
		t.Error("empty description rendered")
	}
	if doc.Find(`meta[name="keywords"]`).Length() != 0 {
		t.Error("empty keywords rendered")
	}
	if doc.Find(`link[rel="canonical"]`).Length() != 0 {
		t.Error("empty canonical rendered")
	}
	if doc.Find(`meta[property="og:image"]`).Length() != 0 {
		t.Error("empty og:image rendered")
	}
}

func TestHeadInjector_EscapesValues(t *testing.T) {
	bundle := seo.Bundle{
		Title:       `A <b>"quoted"</b> title`,
		Description: `uses & ampersand`,
	}
	tr := pipeline(bundle, "", nil)

	out := transform(t, tr, originPage)

	if strings.Contains(out, "<title>A <b>") {
		t.Error("title markup not escaped")
	}
	if !strings.Contains(out, "uses &amp; ampersand") {
		t.Error("description not escaped")
	}
	doc := parse(t, out)
	if got := doc.Find("title").Text(); got != `A <b>"quoted"</b> title` {
		t.Errorf("decoded title = %q", got)
	}
}

func TestHeadInjector_NoDataMarker(t *testing.T) {
	tr := NewTransformer()
	TagRemover{}.Register(tr)
	HeadInjector{NoData: true}.Register(tr)

	doc := parse(t, transform(t, tr, originPage))

	if got, _ := doc.Find(`meta[name="seo-worker"]`).Attr("content"); got != "no-data" {
		t.Errorf("marker content = %q", got)
	}
	if doc.Find("title").Length() != 0 {
		t.Error("title rendered in no-data mode")
	}
	if doc.Find(`meta[property="og:title"]`).Length() != 0 {
		t.Error("og tags rendered in no-data mode")
	}
}

func TestBodyInjector_SchemasAndSemanticBlock(t *testing.T) {
	bundle := seo.Bundle{
		Title:        "Fresh Title",
		Description:  "fresh description",
		Author:       "alice",
		KeyTakeaways: []string{"first takeaway"},
		Facts:        []string{"a fact"},
	}
	schemas := []seo.Schema{
		{"@context": "https://schema.org", "@type": "Article", "headline": "Fresh Title"},
		{"@context": "https://schema.org", "@type": "BreadcrumbList"},
	}
	tr := pipeline(bundle, "", schemas)

	out := transform(t, tr, originPage)
	doc := parse(t, out)

	ld := doc.Find(`script[type="application/ld+json"]`)
	if ld.Length() != 1 {
		t.Fatalf("JSON-LD scripts = %d, want 1", ld.Length())
	}
	if !strings.Contains(ld.Text(), `"@graph"`) {
		t.Error("multiple schemas not wrapped in @graph")
	}
	if !strings.Contains(ld.Text(), `"headline":"Fresh Title"`) {
		t.Error("article schema missing from graph")
	}

	hidden := doc.Find(`div[aria-hidden="true"]`)
	if hidden.Length() != 1 {
		t.Fatalf("semantic blocks = %d, want 1", hidden.Length())
	}
	if !strings.Contains(hidden.Text(), "first takeaway") {
		t.Error("takeaways missing from semantic block")
	}
	if !strings.Contains(hidden.Text(), "Curated by alice") {
		t.Error("author missing from semantic block")
	}
}

func TestBodyInjector_SingleSchemaUnwrapped(t *testing.T) {
	schemas := []seo.Schema{{"@context": "https://schema.org", "@type": "Article"}}
	tr := pipeline(seo.Bundle{Title: "T"}, "", schemas)

	doc := parse(t, transform(t, tr, originPage))

	ld := doc.Find(`script[type="application/ld+json"]`).Text()
	if strings.Contains(ld, "@graph") {
		t.Error("single schema wrapped in @graph")
	}
}

func TestSemanticHomeBlock(t *testing.T) {
	site := seo.Site{Base: "https://copus.network"}
	articles := []domain.Article{
		{UUID: "a1", Title: "First", AuthorInfo: &domain.AuthorInfo{Username: "Alice"}},
		{UUID: "", Title: "No ID"},
		{UUID: "a2", Title: ""},
		{UUID: "a3", Title: "Third <script>"},
	}

	got := SemanticHomeBlock(articles, site)

	if !strings.Contains(got, `<a href="https://copus.network/work/a1">First</a> curated by Alice`) {
		t.Errorf("first entry missing: %s", got)
	}
	if strings.Contains(got, "No ID") {
		t.Error("entry without id should be skipped")
	}
	if strings.Contains(got, "/work/a2") {
		t.Error("entry without title should be skipped")
	}
	if strings.Contains(got, "<script>") {
		t.Error("titles must be escaped")
	}
}

func TestSemanticHomeBlock_EmptyListing(t *testing.T) {
	if got := SemanticHomeBlock(nil, seo.Site{Base: "https://copus.network"}); got != "" {
		t.Errorf("SemanticHomeBlock(nil) = %q, want empty", got)
	}
}

func TestPipeline_Idempotent(t *testing.T) {
	bundle := seo.Bundle{
		Title:       "Fresh Title",
		Description: "fresh description",
		Keywords:    []string{"go"},
		Author:      "alice",
	}
	schemas := []seo.Schema{{"@context": "https://schema.org", "@type": "Article"}}

	once := transform(t, pipeline(bundle, "https://copus.network/work/abc", schemas), originPage)
	twice := transform(t, pipeline(bundle, "https://copus.network/work/abc", schemas), once)

	if once != twice {
		t.Error("second rewrite pass altered the document")
	}
}

func TestTransform_MalformedHTMLPassesThrough(t *testing.T) {
	input := `<html><head><title>T</title><meta name="description" content="d"><body><div>unclosed`
	tr := NewTransformer()
	TagRemover{}.Register(tr)

	out := transform(t, tr, input)

	if !strings.Contains(out, "<div>unclosed") {
		t.Error("malformed tail dropped")
	}
	if strings.Contains(out, "<title>") {
		t.Error("title survived")
	}
}
