package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	metadomain "github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-report-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultMaxPages = 20

//go:generate mockgen -source=client.go -destination=../mocks/mock_client.go -package=mocks

type Client interface {
	GetAdAccounts(ctx context.Context) ([]metadomain.AdAccount, error)
	GetInsights(ctx context.Context, accountID string, query InsightQuery) ([]metadomain.InsightItem, error)
	GetCampaigns(ctx context.Context, accountID string) ([]metadomain.Campaign, error)
	GetAdSets(ctx context.Context, accountID string) ([]metadomain.AdSet, error)
	GetAds(ctx context.Context, accountID string) ([]metadomain.Ad, error)
}

type MetaClient struct {
	baseURL     string
	accessToken string
	maxPages    int
	pageSize    int
	httpClient  *http.Client
	limiter     *rate.Limiter
	retry       RetryPolicy
}

type Option func(*MetaClient)

// WithHTTPClient troca o http.Client (usado nos testes com httptest)
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *MetaClient) { c.httpClient = httpClient }
}

func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *MetaClient) { c.retry = policy }
}

func WithBaseURL(baseURL string) Option {
	return func(c *MetaClient) { c.baseURL = baseURL }
}

func NewClient(cfg *config.Config, opts ...Option) Client {
	return newMetaClient(cfg, opts...)
}

func newMetaClient(cfg *config.Config, opts ...Option) *MetaClient {
	timeout := cfg.Meta.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.Meta.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.Meta.RequestsPerSecond)
	}

	retry := DefaultRetryPolicy()
	if cfg.Meta.RetryAttempts > 0 {
		retry.MaxAttempts = cfg.Meta.RetryAttempts
	}
	if cfg.Meta.RetryBackoff > 0 {
		retry.Backoff = cfg.Meta.RetryBackoff
	}

	client := &MetaClient{
		baseURL:     cfg.Meta.URL,
		accessToken: cfg.Meta.AccessToken,
		maxPages:    cfg.Meta.MaxPages,
		pageSize:    cfg.Meta.PageSize,
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(limit, 1),
		retry:       retry,
	}
	if client.maxPages <= 0 {
		client.maxPages = defaultMaxPages
	}
	if client.pageSize <= 0 {
		client.pageSize = 500
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// endpoint monta a URL da primeira página de uma coleção
func (c *MetaClient) endpoint(path string, params url.Values) string {
	params.Set("access_token", c.accessToken)
	if params.Get("limit") == "" {
		params.Set("limit", fmt.Sprint(c.pageSize))
	}
	return fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())
}

// get faz uma requisição GET respeitando o limitador e a política de retry
func (c *MetaClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte

	err := c.retry.Do(ctx, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("metaclient: build request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("metaclient: do request: %w", err)
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("metaclient: read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return classifyError(resp.StatusCode, payload)
		}

		body = payload
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"url":   redactToken(rawURL),
			"error": err.Error(),
		}).Error("metaclient: request failed")
		return nil, err
	}

	return body, nil
}

func redactToken(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	if q.Has("access_token") {
		q.Set("access_token", "***")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
