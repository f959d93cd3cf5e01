// ABOUTME: schema.org JSON-LD builders for articles, curators and collections
// ABOUTME: Emits the structures crawlers and answer engines read from page bodies

package seo

import (
	"fmt"
	"strings"

	"github.com/copus-io/copus-edge/core/domain"
)

const schemaContext = "https://schema.org"

// Schema is one schema.org object. Heterogeneous by nature, so it stays a
// plain map and relies on omission instead of zero values.
type Schema = map[string]interface{}

// ArticleSchemas builds the JSON-LD blocks injected into a work page:
// the main entity, a breadcrumb trail, and an FAQ block when key
// takeaways are present.
func ArticleSchemas(article *domain.Article, b Bundle, site Site) []Schema {
	articleURL := site.ArticleURL(article.ContentID())

	main := Schema{
		"@context":    schemaContext,
		"@type":       b.SchemaType,
		"name":        article.Title,
		"headline":    article.Title,
		"description": b.Description,
		"url":         articleURL,
		"image":       imageOrDefault(b.Image, site),
		"author": Schema{
			"@type": "Person",
			"name":  b.Author,
			"url":   authorURL(article, site),
		},
		"publisher": publisher(site),
		"mainEntityOfPage": Schema{
			"@type": "WebPage",
			"@id":   articleURL,
		},
	}
	if b.PublishedAt != "" {
		main["datePublished"] = b.PublishedAt
	}
	if b.ModifiedAt != "" {
		main["dateModified"] = b.ModifiedAt
	}
	if b.HasKeywords() {
		main["keywords"] = b.JoinedKeywords()
	}
	if b.Audience != "" {
		main["about"] = b.Audience
	}
	if len(b.Facts) > 0 {
		main["abstract"] = strings.Join(b.Facts, ". ")
	}
	if len(b.KeyTakeaways) > 0 {
		main["articleSection"] = b.KeyTakeaways
	}
	if counters := interactionCounters(article); len(counters) > 0 {
		main["interactionStatistic"] = counters
	}

	schemas := []Schema{
		main,
		breadcrumbs(site,
			crumb("Home", site.Base),
			crumb("Discovery", site.DiscoveryURL()),
			crumb(article.Title, articleURL),
		),
	}

	if faq := faqSchema(article.Title, b.KeyTakeaways); faq != nil {
		schemas = append(schemas, faq)
	}
	return schemas
}

// PersonSchemas builds the JSON-LD blocks for a curator profile page.
func PersonSchemas(user *domain.UserProfile, spaces []domain.Space, site Site) []Schema {
	profileURL := site.ProfileURL(user.Namespace)

	person := Schema{
		"@context":    schemaContext,
		"@type":       "Person",
		"@id":         profileURL + "#person",
		"name":        user.DisplayName(),
		"url":         profileURL,
		"identifier":  user.Namespace,
		"description": profileBio(user),
		"image":       imageOrDefault(user.FaceURL, site),
		"sameAs":      []string{site.ShortProfileURL(user.Namespace)},
		"interactionStatistic": []Schema{
			{
				"@type":                "InteractionCounter",
				"interactionType":      "https://schema.org/WriteAction",
				"userInteractionCount": user.ArticleCount(),
				"description":          "Number of curations created",
			},
			{
				"@type":                "InteractionCounter",
				"interactionType":      "https://schema.org/LikeAction",
				"userInteractionCount": user.TreasuredCount(),
				"description":          "Number of items treasured",
			},
		},
	}

	if len(spaces) > 0 {
		items := make([]Schema, 0, len(spaces))
		for i, space := range spaces {
			items = append(items, Schema{
				"@type":    "ListItem",
				"position": i + 1,
				"item": Schema{
					"@type":         "Collection",
					"@id":           site.TreasuryURL(space.Namespace),
					"name":          space.DisplayName(user.DisplayName()),
					"url":           site.TreasuryURL(space.Namespace),
					"numberOfItems": space.ArticleCount,
					"description": fmt.Sprintf(
						"A curated collection with %d treasures. Visit this treasury to see %s's curated content and curation notes.",
						space.ArticleCount, user.DisplayName()),
				},
			})
		}
		person["owns"] = Schema{
			"@type":           "ItemList",
			"name":            user.DisplayName() + "'s Treasuries",
			"description":     fmt.Sprintf("Curated collections by %s on %s. Visit each treasury to see the curated content.", user.DisplayName(), SiteName),
			"numberOfItems":   len(spaces),
			"itemListElement": items,
		}
	}

	return []Schema{
		person,
		breadcrumbs(site,
			crumb(SiteName, site.Base),
			crumb(user.DisplayName(), profileURL),
		),
	}
}

// CollectionSchemas builds the JSON-LD blocks for a treasury page.
func CollectionSchemas(space *domain.Space, items []domain.Article, site Site) []Schema {
	treasuryURL := site.TreasuryURL(space.Namespace)
	ownerName := "Curator"
	ownerURL := site.Base
	if space.UserInfo != nil {
		ownerName = space.UserInfo.DisplayName()
		ownerURL = site.ProfileURL(space.UserInfo.Namespace)
	}

	collection := Schema{
		"@context": schemaContext,
		"@type":    "Collection",
		"@id":      treasuryURL,
		"name":     space.DisplayName(ownerName),
		"url":      treasuryURL,
		"description": fmt.Sprintf(
			"A curated collection of %d treasures by %s on %s. Each item includes the curator's notes explaining why it's valuable.",
			space.ArticleCount, ownerName, SiteName),
		"numberOfItems": space.ArticleCount,
		"author": Schema{
			"@type": "Person",
			"@id":   ownerURL + "#person",
			"name":  ownerName,
			"url":   ownerURL,
		},
		"publisher": publisher(site),
	}

	if len(items) > 0 {
		parts := make([]Schema, 0, len(items))
		for i, item := range items {
			part := Schema{
				"@type":    "CreativeWork",
				"@id":      site.ArticleURL(item.ContentID()),
				"position": i + 1,
				"name":     item.Title,
				"url":      site.ArticleURL(item.ContentID()),
				"interactionStatistic": Schema{
					"@type":                "InteractionCounter",
					"interactionType":      "https://schema.org/LikeAction",
					"userInteractionCount": item.LikeCount,
				},
			}
			if item.Content != "" {
				part["description"] = item.Content // the curation note
			}
			if item.TargetURL != "" {
				part["mainEntityOfPage"] = item.TargetURL
			}
			if genre := item.CategoryName(); genre != "" {
				part["genre"] = genre
			}
			if ts := formatUnix(item.CreateAt); ts != "" {
				part["datePublished"] = ts
			}
			parts = append(parts, part)
		}
		collection["hasPart"] = parts
	}

	return []Schema{
		collection,
		breadcrumbs(site,
			crumb(SiteName, site.Base),
			crumb(ownerName, ownerURL),
			crumb(space.DisplayName(ownerName), treasuryURL),
		),
	}
}

// faqSchema turns key takeaways into an FAQPage block; answer engines
// surface these as question/answer pairs.
func faqSchema(title string, takeaways []string) Schema {
	if len(takeaways) == 0 {
		return nil
	}

	questions := make([]Schema, 0, len(takeaways))
	for i, takeaway := range takeaways {
		questions = append(questions, Schema{
			"@type": "Question",
			"name":  generateQuestion(takeaway, title, i),
			"acceptedAnswer": Schema{
				"@type": "Answer",
				"text":  takeaway,
			},
		})
	}
	return Schema{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": questions,
	}
}

// generateQuestion derives a natural question for a takeaway from a small
// set of phrase patterns.
func generateQuestion(takeaway, title string, index int) string {
	lower := strings.ToLower(takeaway)

	switch {
	case strings.Contains(lower, "best") || strings.Contains(lower, "great for"):
		return fmt.Sprintf("What is %s best for?", title)
	case strings.Contains(lower, "feature") || strings.Contains(lower, "include"):
		return fmt.Sprintf("What features does %s have?", title)
	case strings.Contains(lower, "free") || strings.Contains(lower, "cost"):
		return fmt.Sprintf("Is %s free to use?", title)
	case strings.Contains(lower, "use") || strings.Contains(lower, "work"):
		return fmt.Sprintf("How does %s work?", title)
	}

	patterns := []string{
		"What should I know about %s?",
		"What are the key benefits of %s?",
		"Why is %s recommended?",
		"What makes %s unique?",
	}
	return fmt.Sprintf(patterns[index%len(patterns)], title)
}

func interactionCounters(article *domain.Article) []Schema {
	var counters []Schema
	if article.TreasureCount > 0 {
		counters = append(counters, Schema{
			"@type":                "InteractionCounter",
			"interactionType":      "https://schema.org/LikeAction",
			"userInteractionCount": article.TreasureCount,
		})
	}
	if article.CommentCount > 0 {
		counters = append(counters, Schema{
			"@type":                "InteractionCounter",
			"interactionType":      "https://schema.org/CommentAction",
			"userInteractionCount": article.CommentCount,
		})
	}
	return counters
}

func breadcrumbs(site Site, crumbs ...Schema) Schema {
	for i := range crumbs {
		crumbs[i]["position"] = i + 1
	}
	return Schema{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": crumbs,
	}
}

func crumb(name, url string) Schema {
	return Schema{
		"@type": "ListItem",
		"name":  name,
		"item":  url,
	}
}

func publisher(site Site) Schema {
	return Schema{
		"@type": "Organization",
		"name":  SiteName,
		"url":   site.Base,
		"logo": Schema{
			"@type": "ImageObject",
			"url":   site.Logo(),
		},
	}
}

func authorURL(article *domain.Article, site Site) string {
	if ns := article.AuthorNamespace(); ns != "" {
		return site.ShortProfileURL(ns)
	}
	return fmt.Sprintf("%s/user/%d", site.Base, article.UserID)
}

// imageOrDefault falls back to the site-wide Open Graph image so link
// previews never render without one.
func imageOrDefault(image string, site Site) string {
	if image != "" {
		return image
	}
	return site.DefaultImage()
}

func profileBio(user *domain.UserProfile) string {
	if user.Bio != "" {
		return user.Bio
	}
	return fmt.Sprintf("%s is a curator on %s, discovering and sharing valuable content.", user.DisplayName(), SiteName)
}
