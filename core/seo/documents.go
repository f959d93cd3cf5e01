// ABOUTME: Flat JSON-LD documents served on ?format=json requests
// ABOUTME: Structured entity representations AI agents can parse without HTML

package seo

import (
	"time"

	"github.com/copus-io/copus-edge/core/domain"
)

// ArticleDocument renders a work as a single flat JSON-LD object.
func ArticleDocument(article *domain.Article, b Bundle, site Site) Schema {
	doc := Schema{
		"@context":    schemaContext,
		"@type":       b.SchemaType,
		"id":          article.ContentID(),
		"title":       article.Title,
		"url":         site.ArticleURL(article.ContentID()),
		"description": b.Description,
		"keywords":    keywordsOrEmpty(b),
		"image":       imageOrDefault(b.Image, site),
		"author": Schema{
			"name":      article.AuthorName(),
			"namespace": article.AuthorNamespace(),
			"url":       authorURL(article, site),
		},
		"stats": Schema{
			"views":     article.ViewCount,
			"treasures": treasures(article),
			"comments":  article.CommentCount,
		},
		"fetchedAt": time.Now().UTC().Format(time.RFC3339),
	}

	if article.TargetURL != "" {
		doc["originalSource"] = article.TargetURL
	}
	if article.Content != "" {
		doc["curationNote"] = article.Content
	}
	if category := article.CategoryName(); category != "" {
		doc["category"] = category
	}
	dates := Schema{}
	if b.PublishedAt != "" {
		dates["published"] = b.PublishedAt
	}
	if b.ModifiedAt != "" {
		dates["modified"] = b.ModifiedAt
	}
	if len(dates) > 0 {
		doc["dates"] = dates
	}
	if len(b.KeyTakeaways) > 0 {
		doc["keyTakeaways"] = b.KeyTakeaways
	}
	if len(b.Facts) > 0 {
		doc["facts"] = b.Facts
	}
	if b.Audience != "" {
		doc["audience"] = b.Audience
	}

	return doc
}

// PersonDocument renders a curator profile as a flat JSON-LD object.
func PersonDocument(user *domain.UserProfile, spaces []domain.Space, site Site) Schema {
	treasuries := make([]Schema, 0, len(spaces))
	for _, space := range spaces {
		treasuries = append(treasuries, Schema{
			"name":         space.DisplayName(user.DisplayName()),
			"namespace":    space.Namespace,
			"url":          site.TreasuryURL(space.Namespace),
			"articleCount": space.ArticleCount,
		})
	}

	return Schema{
		"@context":   schemaContext,
		"@type":      "Person",
		"name":       user.DisplayName(),
		"namespace":  user.Namespace,
		"url":        site.ProfileURL(user.Namespace),
		"shortUrl":   site.ShortProfileURL(user.Namespace),
		"bio":        profileBio(user),
		"avatar":     imageOrDefault(user.FaceURL, site),
		"stats": Schema{
			"curations": user.ArticleCount(),
			"treasured": user.TreasuredCount(),
		},
		"treasuries": treasuries,
		"fetchedAt":  time.Now().UTC().Format(time.RFC3339),
	}
}

// CollectionDocument renders a treasury as a flat JSON-LD object.
func CollectionDocument(space *domain.Space, items []domain.Article, b Bundle, site Site) Schema {
	ownerName := "Curator"
	if space.UserInfo != nil {
		ownerName = space.UserInfo.DisplayName()
	}

	works := make([]Schema, 0, len(items))
	for _, item := range items {
		work := Schema{
			"id":    item.ContentID(),
			"title": item.Title,
			"url":   site.ArticleURL(item.ContentID()),
		}
		if item.Content != "" {
			work["curationNote"] = item.Content
		}
		if item.TargetURL != "" {
			work["originalSource"] = item.TargetURL
		}
		works = append(works, work)
	}

	doc := Schema{
		"@context":      schemaContext,
		"@type":         "Collection",
		"name":          space.DisplayName(ownerName),
		"namespace":     space.Namespace,
		"url":           site.TreasuryURL(space.Namespace),
		"description":   b.Description,
		"numberOfItems": space.ArticleCount,
		"curator":       ownerName,
		"items":         works,
		"fetchedAt":     time.Now().UTC().Format(time.RFC3339),
	}
	if b.HasKeywords() {
		doc["keywords"] = b.Keywords
	}
	return doc
}

func keywordsOrEmpty(b Bundle) []string {
	if b.Keywords == nil {
		return []string{}
	}
	return b.Keywords
}

func treasures(article *domain.Article) int {
	if article.TreasureCount > 0 {
		return article.TreasureCount
	}
	return article.LikeCount
}
