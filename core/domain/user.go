// ABOUTME: Curator profile domain model from the userHome endpoints

package domain

// UserProfile is a curator as returned by the userInfo endpoint.
type UserProfile struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	Namespace  string          `json:"namespace"`
	Bio        string          `json:"bio"`
	FaceURL    string          `json:"faceUrl"`
	Statistics *UserStatistics `json:"statistics,omitempty"`
}

// DisplayName returns the username, falling back to the namespace.
func (u *UserProfile) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Namespace
}

// ArticleCount returns the number of curations, zero when statistics are absent.
func (u *UserProfile) ArticleCount() int {
	if u.Statistics == nil {
		return 0
	}
	return u.Statistics.ArticleCount
}

// TreasuredCount returns the number of treasured items, zero when statistics
// are absent.
func (u *UserProfile) TreasuredCount() int {
	if u.Statistics == nil {
		return 0
	}
	return u.Statistics.LikedArticleCount
}

// UserStatistics holds the activity counters on a profile.
type UserStatistics struct {
	ArticleCount      int `json:"articleCount"`
	LikedArticleCount int `json:"likedArticleCount"`
}
