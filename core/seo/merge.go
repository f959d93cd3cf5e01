// ABOUTME: Metadata merger producing one authoritative bundle per entity
// ABOUTME: Applies field-level precedence (AI over manual) and truncation fallbacks

package seo

import (
	"strings"

	"github.com/copus-io/copus-edge/core/domain"
	htmlutil "github.com/copus-io/copus-edge/pkg/utils/html"
	timeutil "github.com/copus-io/copus-edge/pkg/utils/time"
)

// Rendering contexts: HTML meta descriptions are clipped harder than
// structured-data descriptions.
type Context int

const (
	ContextHTML Context = iota
	ContextStructured
)

const (
	descriptionLimitHTML       = 160
	descriptionLimitStructured = 300

	// DefaultSchemaType is the generic type every merged bundle can satisfy.
	DefaultSchemaType = "Article"
)

// restrictedSchemaTypes name schema.org types whose required properties
// (structured offers, steps, schedules) this bundle cannot guarantee.
// A merged schemaType naming one of these is clamped back to Article.
var restrictedSchemaTypes = map[string]struct{}{
	"Product":    {},
	"Offer":      {},
	"HowTo":      {},
	"Recipe":     {},
	"Course":     {},
	"Event":      {},
	"JobPosting": {},
}

// Bundle is the authoritative, merged metadata for one entity. Absent
// fields stay empty and are omitted from emitted tags, never rendered as
// empty strings.
type Bundle struct {
	Title        string
	Description  string
	Keywords     []string
	Image        string
	SchemaType   string
	Author       string
	PublishedAt  string // RFC 3339, empty when unknown
	ModifiedAt   string
	Audience     string
	Facts        []string
	KeyTakeaways []string
}

// HasKeywords reports whether any keywords survived the merge.
func (b *Bundle) HasKeywords() bool {
	return len(b.Keywords) > 0
}

// JoinedKeywords renders the keyword list for meta tags and JSON-LD.
func (b *Bundle) JoinedKeywords() string {
	return strings.Join(b.Keywords, ", ")
}

// Merge combines an article's manually-curated and AI-generated metadata
// into one bundle. Manual values are applied first and AI values second,
// overwriting manual ones for the same field: AI data taking precedence is
// deliberate policy, not an accident of ordering. Empty AI values are
// treated as absent and do not erase a populated manual value.
func Merge(article *domain.Article, manual, ai *SeoData, mode Context) Bundle {
	b := Bundle{}

	applySource(&b, manual)
	applySource(&b, ai)

	if b.Title == "" {
		b.Title = article.Title
	}

	if b.Description == "" {
		b.Description = fallbackDescription(article.Content, article.Title, mode)
	}

	if !b.HasKeywords() && len(article.Keywords) > 0 {
		b.Keywords = article.Keywords
	}

	if b.Image == "" {
		b.Image = article.CoverURL
	}

	if b.SchemaType == "" {
		b.SchemaType = DefaultSchemaType
	}
	if _, restricted := restrictedSchemaTypes[b.SchemaType]; restricted {
		b.SchemaType = DefaultSchemaType
	}

	b.Author = article.AuthorName()
	b.PublishedAt = formatUnix(firstNonZero(article.PublishAt, article.CreateAt))
	b.ModifiedAt = formatUnix(firstNonZero(article.UpdateAt, article.CreateAt))
	if b.ModifiedAt == "" {
		b.ModifiedAt = b.PublishedAt
	}

	return b
}

// MergeForSpace builds the bundle for a collection. Collections only carry
// AI-generated metadata upstream; the manual slot is the record's own
// description.
func MergeForSpace(space *domain.Space, ai *SeoData, mode Context) Bundle {
	b := Bundle{}

	applySource(&b, ai)

	if b.Title == "" {
		b.Title = space.Name
	}
	if b.Description == "" {
		b.Description = fallbackDescription(space.Description, space.Name, mode)
	}
	if b.Image == "" {
		b.Image = space.CoverURL
	}
	if b.SchemaType == "" {
		b.SchemaType = "Collection"
	}
	if space.UserInfo != nil {
		b.Author = space.UserInfo.DisplayName()
	}

	return b
}

// applySource copies every populated field of src onto the bundle.
// Whitespace-only values count as absent.
func applySource(b *Bundle, src *SeoData) {
	if src == nil {
		return
	}

	if v := strings.TrimSpace(src.Title); v != "" {
		b.Title = v
	}
	if v := strings.TrimSpace(src.Description); v != "" {
		b.Description = v
	}
	if kw := nonEmptyStrings(src.Keywords); len(kw) > 0 {
		b.Keywords = kw
	} else if tags := nonEmptyStrings(src.Tags); len(tags) > 0 {
		b.Keywords = tags
	}
	if v := strings.TrimSpace(src.Image); v != "" {
		b.Image = v
	}
	if v := strings.TrimSpace(src.SchemaType); v != "" {
		b.SchemaType = v
	}
	if v := strings.TrimSpace(src.TargetAudience); v != "" {
		b.Audience = v
	}
	if src.AeoData != nil {
		if v := strings.TrimSpace(src.AeoData.TargetAudience); v != "" {
			b.Audience = v
		}
		if facts := nonEmptyStrings(src.AeoData.Facts); len(facts) > 0 {
			b.Facts = facts
		}
	}
	if kt := nonEmptyStrings(src.KeyTakeaways); len(kt) > 0 {
		b.KeyTakeaways = kt
	}
}

// fallbackDescription derives a description from the raw content body,
// truncated per rendering context, then the title, then empty.
func fallbackDescription(body, title string, mode Context) string {
	limit := descriptionLimitHTML
	if mode == ContextStructured {
		limit = descriptionLimitStructured
	}

	body = htmlutil.StripTags(strings.TrimSpace(body))
	if body != "" {
		return truncate(body, limit)
	}
	return title
}

// truncate clips s to at most limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func nonEmptyStrings(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstNonZero(values ...int64) int64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

// formatUnix renders a unix timestamp as RFC 3339, empty for zero.
// Millisecond timestamps are normalized first.
func formatUnix(ts int64) string {
	return timeutil.RFC3339(ts)
}
