package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/certverify/verification/internal/model"
)

// CertificateClient looks certificates up in the certificate service.
type CertificateClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCertificateClient(baseURL string, timeout time.Duration) *CertificateClient {
	return &CertificateClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}
}

func (c *CertificateClient) ByID(ctx context.Context, id string) (*model.Certificate, error) {
	var cert model.Certificate
	endpoint := fmt.Sprintf("%s/api/certificates/%s", c.baseURL, url.PathEscape(id))
	if err := getJSON(ctx, c.httpClient, endpoint, &cert); err != nil {
		return nil, err
	}
	return &cert, nil
}

func (c *CertificateClient) ByCode(ctx context.Context, code string) (*model.Certificate, error) {
	var cert model.Certificate
	endpoint := fmt.Sprintf("%s/api/certificates/code/%s", c.baseURL, url.PathEscape(code))
	if err := getJSON(ctx, c.httpClient, endpoint, &cert); err != nil {
		return nil, err
	}
	return &cert, nil
}

func (c *CertificateClient) Health(ctx context.Context) error {
	return checkHealth(ctx, c.httpClient, c.baseURL)
}
