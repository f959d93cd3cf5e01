// ABOUTME: Typed read-only client for the canonical content API
// ABOUTME: Wraps every upstream endpoint with uniform envelope and error handling

package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/copus-io/copus-edge/core/domain"
	coreerrors "github.com/copus-io/copus-edge/core/errors"
	"github.com/copus-io/copus-edge/core/interfaces"
)

// Client issues read-only calls against the content API. It performs no
// retries; callers own any retry or degradation policy.
type Client struct {
	deps interfaces.Dependencies
}

// NewClient creates a new content API client
func NewClient(deps interfaces.Dependencies) *Client {
	return &Client{deps: deps}
}

// ArticleByID fetches an article's detail record.
func (c *Client) ArticleByID(ctx context.Context, apiBase, id string) (*domain.Article, error) {
	endpoint := fmt.Sprintf("%s/client/article/%s", apiBase, url.PathEscape(id))

	var article domain.Article
	if err := c.getJSON(ctx, endpoint, &article); err != nil {
		return nil, entityNotFound(err, "article", id)
	}
	if article.ContentID() == "" {
		return nil, &coreerrors.NotFoundError{Resource: "article", ID: id}
	}
	return &article, nil
}

// ProfileByNamespace fetches a curator's profile.
func (c *Client) ProfileByNamespace(ctx context.Context, apiBase, namespace string) (*domain.UserProfile, error) {
	endpoint := fmt.Sprintf("%s/client/userHome/userInfo?namespace=%s", apiBase, url.QueryEscape(namespace))

	var profile domain.UserProfile
	if err := c.getJSON(ctx, endpoint, &profile); err != nil {
		return nil, entityNotFound(err, "user", namespace)
	}
	if profile.Namespace == "" && profile.ID == 0 {
		return nil, &coreerrors.NotFoundError{Resource: "user", ID: namespace}
	}
	return &profile, nil
}

// CollectionsByUserID fetches one page of a curator's collections.
func (c *Client) CollectionsByUserID(ctx context.Context, apiBase string, userID int64, pageIndex, pageSize int) ([]domain.Space, error) {
	endpoint := fmt.Sprintf("%s/client/userHome/pageMySpaces?targetUserId=%d&pageIndex=%d&pageSize=%d",
		apiBase, userID, pageIndex, pageSize)

	// The spaces endpoint returns either a paged object or a bare array
	// depending on upstream version.
	var raw json.RawMessage
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		if coreerrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var page domain.SpacePage
	if err := json.Unmarshal(raw, &page); err == nil && page.Data != nil {
		return page.Data, nil
	}

	var spaces []domain.Space
	if err := json.Unmarshal(raw, &spaces); err == nil {
		return spaces, nil
	}

	return nil, nil
}

// SearchByTopic runs a full-text topic search over curated content.
func (c *Client) SearchByTopic(ctx context.Context, apiBase, topic string, limit, offset int) (*domain.SearchPage, error) {
	endpoint := fmt.Sprintf("%s/client/search?q=%s&limit=%d&offset=%d",
		apiBase, url.QueryEscape(topic), limit, offset)

	var page domain.SearchPage
	if err := c.getJSON(ctx, endpoint, &page); err != nil && !coreerrors.IsNotFound(err) {
		return nil, err
	}
	return &page, nil
}

// SearchByTopicFiltered runs a topic search restricted to a category.
func (c *Client) SearchByTopicFiltered(ctx context.Context, apiBase, topic, category string, limit, offset int) (*domain.SearchPage, error) {
	endpoint := fmt.Sprintf("%s/client/search?q=%s&limit=%d&offset=%d&category=%s",
		apiBase, url.QueryEscape(topic), limit, offset, url.QueryEscape(category))

	var page domain.SearchPage
	if err := c.getJSON(ctx, endpoint, &page); err != nil && !coreerrors.IsNotFound(err) {
		return nil, err
	}
	return &page, nil
}

// ListContentPage fetches one page of the global article listing.
func (c *Client) ListContentPage(ctx context.Context, apiBase string, pageIndex, pageSize int) (*domain.ArticlePage, error) {
	endpoint := fmt.Sprintf("%s/client/home/pageArticle?pageIndex=%d&pageSize=%d", apiBase, pageIndex, pageSize)

	var page domain.ArticlePage
	if err := c.getJSON(ctx, endpoint, &page); err != nil && !coreerrors.IsNotFound(err) {
		return nil, err
	}
	return &page, nil
}

// SpaceByNamespace fetches a collection's detail record.
func (c *Client) SpaceByNamespace(ctx context.Context, apiBase, namespace string) (*domain.Space, error) {
	endpoint := fmt.Sprintf("%s/client/article/space/info/%s", apiBase, url.PathEscape(namespace))

	var space domain.Space
	if err := c.getJSON(ctx, endpoint, &space); err != nil {
		return nil, entityNotFound(err, "treasury", namespace)
	}
	if space.Namespace == "" && space.ID == 0 {
		return nil, &coreerrors.NotFoundError{Resource: "treasury", ID: namespace}
	}
	return &space, nil
}

// SpaceArticles fetches the items of a collection.
func (c *Client) SpaceArticles(ctx context.Context, apiBase string, spaceID int64, pageIndex, pageSize int) ([]domain.Article, error) {
	endpoint := fmt.Sprintf("%s/client/article/space/pageArticles?spaceId=%d&pageIndex=%d&pageSize=%d",
		apiBase, spaceID, pageIndex, pageSize)

	var raw json.RawMessage
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		if coreerrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var page domain.ArticlePage
	if err := json.Unmarshal(raw, &page); err == nil && page.Data != nil {
		return page.Data, nil
	}

	var articles []domain.Article
	if err := json.Unmarshal(raw, &articles); err == nil {
		return articles, nil
	}

	return nil, nil
}

// entityNotFound rewrites a NotFoundError raised inside getJSON so the
// error callers see (and response bodies echo) carries the entity's
// public identifier, never the upstream endpoint URL.
func entityNotFound(err error, resource, id string) error {
	if coreerrors.IsNotFound(err) {
		return &coreerrors.NotFoundError{Resource: resource, ID: id}
	}
	return err
}

// getJSON performs a GET, unwraps the {status, msg, data} envelope and
// decodes data into out. Transport failures, non-2xx statuses and non-1
// envelope statuses all surface as UpstreamError; a 404 or null data
// surfaces as NotFoundError. Detail lookups rewrite that into an
// entity-level NotFoundError, list endpoints treat it as an empty page.
func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	resp, err := c.deps.HTTPClient.Get(ctx, endpoint)
	if err != nil {
		return &coreerrors.UpstreamError{Endpoint: endpoint, Message: err.Error()}
	}
	defer resp.Body().Close()

	if resp.StatusCode() == http.StatusNotFound {
		return &coreerrors.NotFoundError{Resource: "content", ID: endpoint}
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &coreerrors.UpstreamError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode(),
			Message:    http.StatusText(resp.StatusCode()),
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return &coreerrors.UpstreamError{Endpoint: endpoint, Message: "reading response: " + err.Error()}
	}

	var envelope domain.Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &coreerrors.UpstreamError{Endpoint: endpoint, Message: "decoding envelope: " + err.Error()}
	}
	if !envelope.OK() {
		return &coreerrors.UpstreamError{
			Endpoint: endpoint,
			Message:  fmt.Sprintf("envelope status %d: %s", envelope.Status, envelope.Msg),
		}
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return &coreerrors.NotFoundError{Resource: "content", ID: endpoint}
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &coreerrors.UpstreamError{Endpoint: endpoint, Message: "decoding data: " + err.Error()}
	}
	return nil
}
