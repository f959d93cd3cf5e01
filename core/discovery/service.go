// ABOUTME: Discovery aggregator ranking curators by topical relevance over live search
// ABOUTME: One sequential search, a fold keyed by curator namespace, then bounded enrichment fan-out

package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/copus-io/copus-edge/core/content"
	"github.com/copus-io/copus-edge/core/domain"
	coreerrors "github.com/copus-io/copus-edge/core/errors"
	"github.com/copus-io/copus-edge/core/interfaces"
	"github.com/copus-io/copus-edge/core/seo"
	"github.com/copus-io/copus-edge/pkg/config"
	"github.com/copus-io/copus-edge/pkg/featureflags"
)

const (
	// searchCap is the internal result ceiling for the upstream search,
	// independent of the caller-facing limit.
	searchCap = 100

	defaultLimit = 10
	maxLimit     = 20

	// maxCollections caps the collections surfaced per curator.
	maxCollections = 5

	// enrichmentWorkers bounds the concurrent profile/collection fan-out.
	enrichmentWorkers = 5

	collectionPageSize = 20

	cacheTTL = 10 * time.Minute
)

// ExampleTopics are suggested queries returned alongside a blank-topic
// rejection.
var ExampleTopics = []string{"ai tools", "web design", "indie games", "photography", "productivity"}

// Service ranks curators for a topic. Stateless across requests; every
// call re-queries the search index (through the response cache).
type Service struct {
	deps    interfaces.Dependencies
	fetcher *content.Client
	flags   featureflags.Manager
}

// NewService returns a discovery service using the shared dependencies.
func NewService(deps interfaces.Dependencies, fetcher *content.Client) *Service {
	return NewServiceWithFlags(deps, fetcher, featureflags.NewEnvManager(""))
}

// NewServiceWithFlags returns a discovery service with an explicit
// feature flag manager.
func NewServiceWithFlags(deps interfaces.Dependencies, fetcher *content.Client, flags featureflags.Manager) *Service {
	return &Service{deps: deps, fetcher: fetcher, flags: flags}
}

func (s *Service) cacheEnabled() bool {
	return s.deps.Cache != nil && (s.flags == nil || s.flags.IsEnabled(featureflags.DiscoveryCache))
}

// aggregate accumulates one curator's matches while folding the search
// result stream. order records first appearance for stable ranking.
type aggregate struct {
	namespace  string
	name       string
	faceURL    string
	matching   []domain.Article
	seen       map[string]struct{}
	treasuries map[string]struct{}
	categories map[string]int
	keywords   map[string]struct{}
	order      int
}

// Discover runs the full ranking pipeline and returns a JSON-LD ItemList
// document ready to serve. A blank topic is a ValidationError; zero
// matches still produce a well-formed empty list.
func (s *Service) Discover(ctx context.Context, env config.Environment, topic string, limit int) ([]byte, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, &coreerrors.ValidationError{Field: "topic", Message: "topic must not be blank"}
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	cacheKey := fmt.Sprintf("discover:%s:%s:%d", env.ContentAPIBase, strings.ToLower(topic), limit)
	if s.cacheEnabled() {
		if cached, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	page, err := s.fetcher.SearchByTopic(ctx, env.ContentAPIBase, topic, searchCap, 0)
	if err != nil {
		return nil, err
	}

	ranked := rankCurators(page.Results, limit)
	enriched := s.enrich(ctx, env, topic, ranked)

	doc := s.itemList(env, topic, page.Results, enriched)
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		if err := s.deps.Cache.Set(ctx, cacheKey, payload, cacheTTL); err != nil {
			s.deps.Logger.Warn("failed to cache discovery result", map[string]interface{}{
				"topic": topic,
				"error": err.Error(),
			})
		}
	}

	return payload, nil
}

// rankCurators folds search results into per-curator aggregates, sorts
// them by match count descending (stable on ties, preserving upstream
// order), and truncates to limit. Results without an author namespace
// are skipped.
func rankCurators(results []domain.Article, limit int) []*aggregate {
	byNamespace := make(map[string]*aggregate)
	var order []*aggregate

	for _, a := range results {
		ns := a.AuthorNamespace()
		if ns == "" {
			continue
		}

		agg, ok := byNamespace[ns]
		if !ok {
			agg = &aggregate{
				namespace:  ns,
				name:       a.AuthorName(),
				matching:   nil,
				seen:       make(map[string]struct{}),
				treasuries: make(map[string]struct{}),
				categories: make(map[string]int),
				keywords:   make(map[string]struct{}),
				order:      len(order),
			}
			if a.AuthorInfo != nil {
				agg.faceURL = a.AuthorInfo.FaceURL
			}
			byNamespace[ns] = agg
			order = append(order, agg)
		}

		id := a.ContentID()
		if _, dup := agg.seen[id]; dup {
			continue
		}
		agg.seen[id] = struct{}{}
		agg.matching = append(agg.matching, a)

		if a.SpaceInfo != nil && a.SpaceInfo.Namespace != "" {
			agg.treasuries[a.SpaceInfo.Namespace] = struct{}{}
		}
		if cat := a.CategoryName(); cat != "" {
			agg.categories[cat]++
		}
		for _, kw := range a.Keywords {
			if kw = strings.TrimSpace(kw); kw != "" {
				agg.keywords[kw] = struct{}{}
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return len(order[i].matching) > len(order[j].matching)
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

// enrichedCurator pairs an aggregate with its fetched profile and the
// relevant subset of its collections.
type enrichedCurator struct {
	agg         *aggregate
	profile     *domain.UserProfile
	collections []domain.Space
}

// enrich fetches profile and collection data for the retained curators
// only, through a bounded worker pool. A failure for one curator
// degrades that curator to empty enrichment, never the whole response.
func (s *Service) enrich(ctx context.Context, env config.Environment, topic string, ranked []*aggregate) []enrichedCurator {
	enriched := make([]enrichedCurator, len(ranked))

	var wg sync.WaitGroup
	sem := make(chan struct{}, enrichmentWorkers)

	for i, agg := range ranked {
		wg.Add(1)
		go func(i int, agg *aggregate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			enriched[i] = s.enrichOne(ctx, env, topic, agg)
		}(i, agg)
	}
	wg.Wait()

	return enriched
}

func (s *Service) enrichOne(ctx context.Context, env config.Environment, topic string, agg *aggregate) enrichedCurator {
	out := enrichedCurator{agg: agg}

	profile, err := s.fetcher.ProfileByNamespace(ctx, env.ContentAPIBase, agg.namespace)
	if err != nil {
		s.deps.Logger.Warn("curator profile enrichment failed", map[string]interface{}{
			"namespace": agg.namespace,
			"error":     err.Error(),
		})
		return out
	}
	out.profile = profile

	spaces, err := s.fetcher.CollectionsByUserID(ctx, env.ContentAPIBase, profile.ID, 1, collectionPageSize)
	if err != nil {
		s.deps.Logger.Warn("curator collection enrichment failed", map[string]interface{}{
			"namespace": agg.namespace,
			"error":     err.Error(),
		})
		return out
	}
	out.collections = relevantCollections(spaces, topic)

	return out
}

// relevantCollections keeps collections matching the topic or carrying
// content, sorted relevant-first (stable) and capped. Relevance is a
// case-insensitive substring match of the topic against the collection's
// name, description, and AI keywords/themes.
func relevantCollections(spaces []domain.Space, topic string) []domain.Space {
	needle := strings.ToLower(topic)

	type scored struct {
		space    domain.Space
		relevant bool
	}
	var kept []scored
	for _, sp := range spaces {
		rel := collectionMatches(&sp, needle)
		if !rel && sp.ArticleCount == 0 {
			continue
		}
		kept = append(kept, scored{space: sp, relevant: rel})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].relevant && !kept[j].relevant
	})

	if len(kept) > maxCollections {
		kept = kept[:maxCollections]
	}

	out := make([]domain.Space, 0, len(kept))
	for _, sc := range kept {
		out = append(out, sc.space)
	}
	return out
}

func collectionMatches(sp *domain.Space, needle string) bool {
	if strings.Contains(strings.ToLower(sp.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(sp.Description), needle) {
		return true
	}
	if sd := seo.ParseSeoData(sp.SeoDataByAi); sd != nil {
		for _, kw := range append(sd.Keywords, sd.KeyThemes...) {
			if strings.Contains(strings.ToLower(kw), needle) {
				return true
			}
		}
	}
	return false
}

// itemList renders the ranked curators as a schema.org ItemList. The
// _aiHints block carries the ranking internals for answer engines.
func (s *Service) itemList(env config.Environment, topic string, results []domain.Article, curators []enrichedCurator) seo.Schema {
	site := seo.Site{Base: env.SiteBase}
	total := len(results)

	items := make([]seo.Schema, 0, len(curators))
	for i, ec := range curators {
		items = append(items, seo.Schema{
			"@type":    "ListItem",
			"position": i + 1,
			"item":     curatorItem(site, topic, total, ec),
		})
	}

	return seo.Schema{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"name":            fmt.Sprintf("Top curators for %s", topic),
		"url":             site.DiscoveryURL(),
		"numberOfItems":   len(items),
		"itemListElement": items,
	}
}

func curatorItem(site seo.Site, topic string, totalResults int, ec enrichedCurator) seo.Schema {
	agg := ec.agg

	name := agg.name
	image := agg.faceURL
	var description string
	if ec.profile != nil {
		name = ec.profile.DisplayName()
		if ec.profile.FaceURL != "" {
			image = ec.profile.FaceURL
		}
		description = ec.profile.Bio
	}

	item := seo.Schema{
		"@type": "Person",
		"name":  name,
		"url":   site.ProfileURL(agg.namespace),
	}
	if image != "" {
		item["image"] = image
	}
	if description != "" {
		item["description"] = description
	}

	if len(ec.collections) > 0 {
		owns := make([]seo.Schema, 0, len(ec.collections))
		for _, sp := range ec.collections {
			owns = append(owns, seo.Schema{
				"@type": "Collection",
				"name":  sp.DisplayName(name),
				"url":   site.TreasuryURL(sp.Namespace),
			})
		}
		item["owns"] = owns
	}

	item["_aiHints"] = aiHints(agg, topic, totalResults)

	return item
}

// aiHints summarizes the fold internals: match count, relevance score
// (curator matches over total matched results, two decimals), dominant
// categories, and the keyword union.
func aiHints(agg *aggregate, topic string, totalResults int) seo.Schema {
	hints := seo.Schema{
		"topic":          topic,
		"matchCount":     len(agg.matching),
		"relevanceScore": relevanceScore(len(agg.matching), totalResults),
	}
	if len(agg.categories) > 0 {
		hints["categories"] = sortedCategories(agg.categories)
	}
	if len(agg.keywords) > 0 {
		hints["keywords"] = sortedKeys(agg.keywords)
	}
	if len(agg.treasuries) > 0 {
		hints["treasuryCount"] = len(agg.treasuries)
	}
	return hints
}

func relevanceScore(matches, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(matches)/float64(total)*100) / 100
}

// sortedCategories orders category names by count descending, name
// ascending on ties, for deterministic output.
func sortedCategories(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
