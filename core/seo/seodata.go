// ABOUTME: SEO source payload parsing for manually-curated and AI-generated metadata
// ABOUTME: Upstream stores these as JSON, sometimes double-encoded as a bare string

package seo

import (
	"encoding/json"
	"strings"
)

// SeoData is one metadata source attached to a content entity. The same
// shape is used for the manually-curated seoData field and the
// AI-generated seoDataByAi field.
type SeoData struct {
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Category       string   `json:"category,omitempty"`
	SchemaType     string   `json:"schemaType,omitempty"`
	Image          string   `json:"image,omitempty"`
	KeyThemes      []string `json:"keyThemes,omitempty"`
	KeyTakeaways   []string `json:"keyTakeaways,omitempty"`
	TargetAudience string   `json:"targetAudience,omitempty"`
	AeoData        *AeoData `json:"aeoData,omitempty"`
}

// AeoData is the answer-engine block inside an SEO payload.
type AeoData struct {
	TargetAudience string   `json:"targetAudience,omitempty"`
	Facts          []string `json:"facts,omitempty"`
}

// ParseSeoData decodes a raw SEO payload. Three upstream encodings exist:
// a JSON object, a JSON string containing an encoded object, and a bare
// prose string (treated as the description). Anything undecodable yields
// nil rather than an error; missing metadata is never fatal.
func ParseSeoData(raw json.RawMessage) *SeoData {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		var sd SeoData
		if err := json.Unmarshal([]byte(s), &sd); err == nil {
			return &sd
		}
		return &SeoData{Description: s}
	}

	var sd SeoData
	if err := json.Unmarshal(raw, &sd); err != nil {
		return nil
	}
	return &sd
}
