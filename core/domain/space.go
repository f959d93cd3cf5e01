// ABOUTME: Space (treasury/collection) domain model from the space endpoints

package domain

import "encoding/json"

// Space type discriminators used upstream. Named spaces are user-created;
// the other two are implicit per-user collections.
const (
	SpaceTypeTreasury  = 1
	SpaceTypeCurations = 2
)

// Space is a named grouping of content items owned by a curator.
type Space struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Namespace    string          `json:"namespace"`
	Description  string          `json:"description"`
	FaceURL      string          `json:"faceUrl"`
	CoverURL     string          `json:"coverUrl"`
	SpaceType    int             `json:"spaceType"`
	ArticleCount int             `json:"articleCount"`
	UserID       int64           `json:"userId"`
	SeoDataByAi  json.RawMessage `json:"seoDataByAi,omitempty"`
	UserInfo     *UserProfile    `json:"userInfo,omitempty"`
}

// DisplayName returns the space name, substituting the owner's implicit
// collection names for the typed spaces, matching the public site.
func (s *Space) DisplayName(ownerName string) string {
	switch s.SpaceType {
	case SpaceTypeTreasury:
		if ownerName != "" {
			return ownerName + "'s Treasury"
		}
	case SpaceTypeCurations:
		if ownerName != "" {
			return ownerName + "'s Curations"
		}
	}
	if s.Name != "" {
		return s.Name
	}
	return "Treasury"
}

// SpacePage is one page of a curator's collections.
type SpacePage struct {
	Data       []Space `json:"data"`
	TotalCount int     `json:"totalCount"`
}
