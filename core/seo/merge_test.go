package seo

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/copus-io/copus-edge/core/domain"
)

func TestParseSeoData_Object(t *testing.T) {
	raw := json.RawMessage(`{"description":"D1","keywords":["a","b"]}`)

	sd := ParseSeoData(raw)

	if sd == nil {
		t.Fatal("ParseSeoData returned nil for valid object")
	}
	if sd.Description != "D1" {
		t.Errorf("Description = %v, want D1", sd.Description)
	}
	if len(sd.Keywords) != 2 {
		t.Errorf("Keywords = %v", sd.Keywords)
	}
}

func TestParseSeoData_DoubleEncodedString(t *testing.T) {
	raw := json.RawMessage(`"{\"description\":\"nested\"}"`)

	sd := ParseSeoData(raw)

	if sd == nil || sd.Description != "nested" {
		t.Errorf("ParseSeoData(double-encoded) = %+v, want description nested", sd)
	}
}

func TestParseSeoData_BareProseString(t *testing.T) {
	raw := json.RawMessage(`"just a plain description"`)

	sd := ParseSeoData(raw)

	if sd == nil || sd.Description != "just a plain description" {
		t.Errorf("ParseSeoData(bare string) = %+v", sd)
	}
}

func TestParseSeoData_Absent(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(`null`), json.RawMessage(`""`)} {
		if sd := ParseSeoData(raw); sd != nil {
			t.Errorf("ParseSeoData(%s) = %+v, want nil", raw, sd)
		}
	}
}

func TestMerge_AIPrecedence(t *testing.T) {
	article := &domain.Article{UUID: "abc", Title: "X"}
	manual := &SeoData{
		Description: "D2",
		Keywords:    []string{"manual"},
		Title:       "Manual Title",
	}
	ai := &SeoData{
		Description: "D1",
		Keywords:    []string{"ai", "generated"},
		Title:       "AI Title",
	}

	b := Merge(article, manual, ai, ContextHTML)

	if b.Description != "D1" {
		t.Errorf("Description = %v, want D1 (AI wins)", b.Description)
	}
	if b.Title != "AI Title" {
		t.Errorf("Title = %v, want AI Title", b.Title)
	}
	if strings.Join(b.Keywords, ",") != "ai,generated" {
		t.Errorf("Keywords = %v, want AI keywords", b.Keywords)
	}
}

func TestMerge_EmptyAIValueDoesNotWin(t *testing.T) {
	article := &domain.Article{UUID: "abc", Title: "X"}
	manual := &SeoData{Description: "manual description"}
	ai := &SeoData{Description: "   "}

	b := Merge(article, manual, ai, ContextHTML)

	if b.Description != "manual description" {
		t.Errorf("Description = %v, whitespace AI value should not override", b.Description)
	}
}

func TestMerge_DescriptionFallbackToBody(t *testing.T) {
	body := strings.Repeat("a", 200)
	article := &domain.Article{UUID: "abc", Title: "T", Content: body}

	html := Merge(article, nil, nil, ContextHTML)
	structured := Merge(article, nil, nil, ContextStructured)

	if len(html.Description) != 160 {
		t.Errorf("HTML description length = %d, want 160", len(html.Description))
	}
	if len(structured.Description) != 200 {
		t.Errorf("structured description length = %d, want 200 (body shorter than 300)", len(structured.Description))
	}
}

func TestMerge_DescriptionFallbackStripsMarkup(t *testing.T) {
	article := &domain.Article{
		UUID:    "abc",
		Title:   "T",
		Content: "<p>Useful <b>notes</b> on focus.</p><script>track()</script>",
	}

	b := Merge(article, nil, nil, ContextHTML)

	if b.Description != "Useful notes on focus." {
		t.Errorf("Description = %q, want markup stripped", b.Description)
	}
}

func TestMerge_DescriptionFallbackToTitle(t *testing.T) {
	article := &domain.Article{UUID: "abc", Title: "Only Title"}

	b := Merge(article, nil, nil, ContextHTML)

	if b.Description != "Only Title" {
		t.Errorf("Description = %v, want title fallback", b.Description)
	}
}

func TestMerge_DescriptionEmptyWhenNothingAvailable(t *testing.T) {
	article := &domain.Article{UUID: "abc"}

	b := Merge(article, nil, nil, ContextHTML)

	if b.Description != "" {
		t.Errorf("Description = %q, want empty", b.Description)
	}
}

func TestMerge_SchemaTypeClamp(t *testing.T) {
	article := &domain.Article{UUID: "abc", Title: "X"}

	for _, restricted := range []string{"Product", "HowTo", "Recipe", "Event", "Course", "JobPosting", "Offer"} {
		b := Merge(article, nil, &SeoData{SchemaType: restricted}, ContextHTML)
		if b.SchemaType != "Article" {
			t.Errorf("SchemaType %v not clamped, got %v", restricted, b.SchemaType)
		}
	}
}

func TestMerge_SchemaTypePreserved(t *testing.T) {
	article := &domain.Article{UUID: "abc", Title: "X"}

	b := Merge(article, nil, &SeoData{SchemaType: "TechArticle"}, ContextHTML)

	if b.SchemaType != "TechArticle" {
		t.Errorf("SchemaType = %v, want TechArticle", b.SchemaType)
	}
}

func TestMerge_SchemaTypeDefault(t *testing.T) {
	article := &domain.Article{UUID: "abc", Title: "X"}

	b := Merge(article, nil, nil, ContextHTML)

	if b.SchemaType != "Article" {
		t.Errorf("SchemaType = %v, want Article default", b.SchemaType)
	}
}

func TestMerge_KeywordsFromTags(t *testing.T) {
	article := &domain.Article{UUID: "abc", Title: "X"}
	ai := &SeoData{Tags: []string{"go", "http"}}

	b := Merge(article, nil, ai, ContextHTML)

	if strings.Join(b.Keywords, ",") != "go,http" {
		t.Errorf("Keywords = %v, want tags fallback", b.Keywords)
	}
}

func TestMerge_KeywordsFromEntity(t *testing.T) {
	article := &domain.Article{UUID: "abc", Title: "X", Keywords: []string{"entity"}}

	b := Merge(article, nil, nil, ContextHTML)

	if strings.Join(b.Keywords, ",") != "entity" {
		t.Errorf("Keywords = %v, want entity keywords", b.Keywords)
	}
}

func TestMerge_KeywordsOmittedWhenAbsent(t *testing.T) {
	article := &domain.Article{UUID: "abc", Title: "X"}

	b := Merge(article, nil, nil, ContextHTML)

	if b.HasKeywords() {
		t.Errorf("Keywords = %v, want none", b.Keywords)
	}
}

func TestMerge_Scenario_AIDescriptionWins(t *testing.T) {
	// content {uuid:"abc", title:"X", seoDataByAi:{description:"D1"}, seoData:{description:"D2"}}
	article := &domain.Article{
		UUID:        "abc",
		Title:       "X",
		SeoData:     json.RawMessage(`{"description":"D2"}`),
		SeoDataByAi: json.RawMessage(`{"description":"D1"}`),
	}

	b := Merge(article, ParseSeoData(article.SeoData), ParseSeoData(article.SeoDataByAi), ContextHTML)

	if b.Description != "D1" {
		t.Errorf("Description = %v, want D1", b.Description)
	}
}

func TestMerge_Timestamps(t *testing.T) {
	article := &domain.Article{
		UUID:      "abc",
		Title:     "X",
		CreateAt:  1700000000,
		PublishAt: 1700001000,
		UpdateAt:  1700002000,
	}

	b := Merge(article, nil, nil, ContextHTML)

	if b.PublishedAt != "2023-11-14T22:30:00Z" {
		t.Errorf("PublishedAt = %v", b.PublishedAt)
	}
	if b.ModifiedAt != "2023-11-14T22:46:40Z" {
		t.Errorf("ModifiedAt = %v", b.ModifiedAt)
	}
}

func TestMerge_MillisecondTimestampsNormalized(t *testing.T) {
	article := &domain.Article{UUID: "abc", Title: "X", CreateAt: 1700000000000}

	b := Merge(article, nil, nil, ContextHTML)

	if b.PublishedAt != "2023-11-14T22:13:20Z" {
		t.Errorf("PublishedAt = %v", b.PublishedAt)
	}
}

func TestMergeForSpace_AIThenRecordFallbacks(t *testing.T) {
	space := &domain.Space{
		Name:        "AI Tools",
		Namespace:   "ai-tools",
		Description: "record description",
	}

	withAI := MergeForSpace(space, &SeoData{Description: "ai description"}, ContextStructured)
	withoutAI := MergeForSpace(space, nil, ContextStructured)

	if withAI.Description != "ai description" {
		t.Errorf("Description = %v, want AI value", withAI.Description)
	}
	if withoutAI.Description != "record description" {
		t.Errorf("Description = %v, want record fallback", withoutAI.Description)
	}
	if withoutAI.Title != "AI Tools" {
		t.Errorf("Title = %v", withoutAI.Title)
	}
}
