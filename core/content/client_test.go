package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	coreerrors "github.com/copus-io/copus-edge/core/errors"
	"github.com/copus-io/copus-edge/core/interfaces"
)

const apiBase = "https://api-prod.copus.network"

func newTestClient(getFunc func(ctx context.Context, url string) (interfaces.Response, error)) *Client {
	return NewClient(interfaces.Dependencies{
		HTTPClient: &mockHTTPClient{getFunc: getFunc},
		Logger:     &mockLogger{},
	})
}

func TestArticleByID_Success(t *testing.T) {
	var requestedURL string
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		requestedURL = url
		return &mockResponse{
			statusCode: 200,
			body:       `{"status":1,"data":{"uuid":"abc-123","title":"Slow Productivity","userName":"carl"}}`,
		}, nil
	})

	article, err := client.ArticleByID(context.Background(), apiBase, "abc-123")

	if err != nil {
		t.Fatalf("ArticleByID returned error: %v", err)
	}
	if article.UUID != "abc-123" {
		t.Errorf("UUID = %v, want abc-123", article.UUID)
	}
	if article.Title != "Slow Productivity" {
		t.Errorf("Title = %v", article.Title)
	}
	if requestedURL != apiBase+"/client/article/abc-123" {
		t.Errorf("requested URL = %v", requestedURL)
	}
}

func TestArticleByID_TransportError(t *testing.T) {
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := client.ArticleByID(context.Background(), apiBase, "abc")

	if !coreerrors.IsUpstream(err) {
		t.Errorf("expected UpstreamError, got %v", err)
	}
}

func TestArticleByID_NonSuccessStatus(t *testing.T) {
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 502, body: "bad gateway"}, nil
	})

	_, err := client.ArticleByID(context.Background(), apiBase, "abc")

	if !coreerrors.IsUpstream(err) {
		t.Errorf("expected UpstreamError for 502, got %v", err)
	}
}

func TestArticleByID_EnvelopeFailureStatus(t *testing.T) {
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 200, body: `{"status":0,"msg":"internal"}`}, nil
	})

	_, err := client.ArticleByID(context.Background(), apiBase, "abc")

	if !coreerrors.IsUpstream(err) {
		t.Errorf("expected UpstreamError for envelope status 0, got %v", err)
	}
}

func TestArticleByID_NullData(t *testing.T) {
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 200, body: `{"status":1,"data":null}`}, nil
	})

	_, err := client.ArticleByID(context.Background(), apiBase, "gone")

	var nf *coreerrors.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for null data, got %v", err)
	}
	if nf.Resource != "article" || nf.ID != "gone" {
		t.Errorf("NotFoundError = %s/%s, want the entity id, not the endpoint", nf.Resource, nf.ID)
	}
}

func TestArticleByID_HTTP404(t *testing.T) {
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 404, body: "not found"}, nil
	})

	_, err := client.ArticleByID(context.Background(), apiBase, "gone")

	var nf *coreerrors.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for HTTP 404, got %v", err)
	}
	if nf.ID != "gone" {
		t.Errorf("NotFoundError.ID = %s, want the entity id, not the endpoint", nf.ID)
	}
}

func TestProfileByNamespace_NotFoundCarriesNamespace(t *testing.T) {
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 404, body: "not found"}, nil
	})

	_, err := client.ProfileByNamespace(context.Background(), apiBase, "ghost")

	var nf *coreerrors.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Resource != "user" || nf.ID != "ghost" {
		t.Errorf("NotFoundError = %s/%s, want user/ghost", nf.Resource, nf.ID)
	}
}

func TestProfileByNamespace_EncodesNamespace(t *testing.T) {
	var requestedURL string
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		requestedURL = url
		return &mockResponse{
			statusCode: 200,
			body:       `{"status":1,"data":{"id":7,"username":"ada","namespace":"ada lovelace"}}`,
		}, nil
	})

	profile, err := client.ProfileByNamespace(context.Background(), apiBase, "ada lovelace")

	if err != nil {
		t.Fatalf("ProfileByNamespace returned error: %v", err)
	}
	if profile.ID != 7 {
		t.Errorf("ID = %v, want 7", profile.ID)
	}
	if !strings.Contains(requestedURL, "namespace=ada+lovelace") {
		t.Errorf("namespace not query-escaped: %v", requestedURL)
	}
}

func TestCollectionsByUserID_PagedShape(t *testing.T) {
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{
			statusCode: 200,
			body:       `{"status":1,"data":{"data":[{"id":1,"name":"AI Tools","namespace":"ai-tools"}],"totalCount":1}}`,
		}, nil
	})

	spaces, err := client.CollectionsByUserID(context.Background(), apiBase, 7, 1, 20)

	if err != nil {
		t.Fatalf("CollectionsByUserID returned error: %v", err)
	}
	if len(spaces) != 1 || spaces[0].Namespace != "ai-tools" {
		t.Errorf("spaces = %+v", spaces)
	}
}

func TestCollectionsByUserID_BareArrayShape(t *testing.T) {
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{
			statusCode: 200,
			body:       `{"status":1,"data":[{"id":2,"name":"Linux","namespace":"linux"}]}`,
		}, nil
	})

	spaces, err := client.CollectionsByUserID(context.Background(), apiBase, 7, 1, 20)

	if err != nil {
		t.Fatalf("CollectionsByUserID returned error: %v", err)
	}
	if len(spaces) != 1 || spaces[0].Namespace != "linux" {
		t.Errorf("spaces = %+v", spaces)
	}
}

func TestSearchByTopic_Success(t *testing.T) {
	var requestedURL string
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		requestedURL = url
		return &mockResponse{
			statusCode: 200,
			body:       `{"status":1,"data":{"results":[{"uuid":"u1","title":"Crypto 101"}],"total":42}}`,
		}, nil
	})

	page, err := client.SearchByTopic(context.Background(), apiBase, "crypto wallets", 100, 0)

	if err != nil {
		t.Fatalf("SearchByTopic returned error: %v", err)
	}
	if page.Total != 42 || len(page.Results) != 1 {
		t.Errorf("page = %+v", page)
	}
	if !strings.Contains(requestedURL, "q=crypto+wallets") {
		t.Errorf("topic not query-escaped: %v", requestedURL)
	}
	if !strings.Contains(requestedURL, "limit=100") {
		t.Errorf("limit missing: %v", requestedURL)
	}
}

func TestSearchByTopic_NullDataIsEmptyPage(t *testing.T) {
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 200, body: `{"status":1,"data":null}`}, nil
	})

	page, err := client.SearchByTopic(context.Background(), apiBase, "crypto", 100, 0)

	if err != nil {
		t.Fatalf("SearchByTopic returned error for null data: %v", err)
	}
	if page.Total != 0 || len(page.Results) != 0 {
		t.Errorf("page = %+v, want empty", page)
	}
}

func TestListContentPage_NullDataIsEmptyPage(t *testing.T) {
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 200, body: `{"status":1,"data":null}`}, nil
	})

	page, err := client.ListContentPage(context.Background(), apiBase, 1, 100)

	if err != nil {
		t.Fatalf("ListContentPage returned error for null data: %v", err)
	}
	if page.TotalCount != 0 || len(page.Data) != 0 {
		t.Errorf("page = %+v, want empty", page)
	}
}

func TestListContentPage_Success(t *testing.T) {
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{
			statusCode: 200,
			body:       `{"status":1,"data":{"data":[{"uuid":"a"},{"uuid":"b"}],"totalCount":150}}`,
		}, nil
	})

	page, err := client.ListContentPage(context.Background(), apiBase, 1, 100)

	if err != nil {
		t.Fatalf("ListContentPage returned error: %v", err)
	}
	if len(page.Data) != 2 || page.TotalCount != 150 {
		t.Errorf("page = %+v", page)
	}
}

func TestSpaceByNamespace_NotFoundOnEmptyRecord(t *testing.T) {
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 200, body: `{"status":1,"data":{}}`}, nil
	})

	_, err := client.SpaceByNamespace(context.Background(), apiBase, "missing")

	if !coreerrors.IsNotFound(err) {
		t.Errorf("expected NotFoundError for empty record, got %v", err)
	}
}

func TestSpaceArticles_BareArrayShape(t *testing.T) {
	client := newTestClient(func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{
			statusCode: 200,
			body:       `{"status":1,"data":[{"uuid":"w1","title":"A"},{"uuid":"w2","title":"B"}]}`,
		}, nil
	})

	articles, err := client.SpaceArticles(context.Background(), apiBase, 9, 1, 20)

	if err != nil {
		t.Fatalf("SpaceArticles returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("len(articles) = %d, want 2", len(articles))
	}
}
