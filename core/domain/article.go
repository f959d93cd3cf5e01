// ABOUTME: Article domain model mirroring the canonical content API payloads
// ABOUTME: Entities are immutable once fetched and discarded at response time

package domain

import "encoding/json"

// Article is a single curated work as returned by the content API.
// SeoData carries manually-curated metadata, SeoDataByAi the AI-generated
// set; both are stored upstream as JSON (sometimes double-encoded as a
// string), so they stay raw until the merger parses them.
type Article struct {
	ID            string          `json:"id"`
	UUID          string          `json:"uuid"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Content       string          `json:"content"` // curation note
	TargetURL     string          `json:"targetUrl"`
	CoverURL      string          `json:"coverUrl"`
	Category      string          `json:"category"`
	CategoryInfo  *CategoryInfo   `json:"categoryInfo,omitempty"`
	Keywords      []string        `json:"keywords,omitempty"`
	SeoData       json.RawMessage `json:"seoData,omitempty"`
	SeoDataByAi   json.RawMessage `json:"seoDataByAi,omitempty"`
	UserID        int64           `json:"userId"`
	UserName      string          `json:"userName"`
	Namespace     string          `json:"namespace"`
	AuthorInfo    *AuthorInfo     `json:"authorInfo,omitempty"`
	SpaceInfo     *SpaceRef       `json:"spaceInfo,omitempty"`
	ViewCount     int             `json:"viewCount"`
	LikeCount     int             `json:"likeCount"`
	TreasureCount int             `json:"treasureCount"`
	CommentCount  int             `json:"commentCount"`
	CreateAt      int64           `json:"createAt"`
	PublishAt     int64           `json:"publishAt"`
	UpdateAt      int64           `json:"updateAt"`
}

// ContentID returns the opaque identifier used in public URLs.
func (a *Article) ContentID() string {
	if a.UUID != "" {
		return a.UUID
	}
	return a.ID
}

// AuthorNamespace resolves the author's namespace across the two shapes
// the search and detail endpoints use.
func (a *Article) AuthorNamespace() string {
	if a.AuthorInfo != nil && a.AuthorInfo.Namespace != "" {
		return a.AuthorInfo.Namespace
	}
	return a.Namespace
}

// AuthorName resolves the author's display name, falling back to the
// namespace when no username is present.
func (a *Article) AuthorName() string {
	if a.AuthorInfo != nil && a.AuthorInfo.Username != "" {
		return a.AuthorInfo.Username
	}
	if a.UserName != "" {
		return a.UserName
	}
	return a.AuthorNamespace()
}

// CategoryName resolves the category across the two shapes used upstream.
func (a *Article) CategoryName() string {
	if a.CategoryInfo != nil && a.CategoryInfo.Name != "" {
		return a.CategoryInfo.Name
	}
	return a.Category
}

// CategoryInfo is the nested category object on search results.
type CategoryInfo struct {
	Name string `json:"name"`
}

// AuthorInfo is the nested author object on listing and search results.
type AuthorInfo struct {
	Username  string `json:"username"`
	Namespace string `json:"namespace"`
	FaceURL   string `json:"faceUrl"`
}

// SpaceRef is a lightweight reference to the collection a search result
// was found in.
type SpaceRef struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// ArticlePage is one page of the paginated article listing.
type ArticlePage struct {
	Data       []Article `json:"data"`
	TotalCount int       `json:"totalCount"`
}

// SearchPage is the result set of a topic search.
type SearchPage struct {
	Results []Article `json:"results"`
	Total   int       `json:"total"`
}
