package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/certverify/verification/internal/model"
)

// AuthorityClient looks issuing authorities up in the university registry.
// Authority records are immutable from the verifier's perspective, so
// successful lookups are cached with a TTL. Not-found and transport errors
// are never cached.
type AuthorityClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache
}

func NewAuthorityClient(baseURL string, timeout, cacheTTL time.Duration) *AuthorityClient {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &AuthorityClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
	}
}

func (c *AuthorityClient) ByID(ctx context.Context, id string) (*model.Authority, error) {
	if cached, ok := c.cache.Get(id); ok {
		auth := cached.(model.Authority)
		return &auth, nil
	}

	var auth model.Authority
	endpoint := fmt.Sprintf("%s/api/universities/%s", c.baseURL, url.PathEscape(id))
	if err := getJSON(ctx, c.httpClient, endpoint, &auth); err != nil {
		return nil, err
	}

	// Store by value so callers cannot mutate the cached record.
	c.cache.SetDefault(id, auth)
	return &auth, nil
}

func (c *AuthorityClient) Health(ctx context.Context) error {
	return checkHealth(ctx, c.httpClient, c.baseURL)
}
