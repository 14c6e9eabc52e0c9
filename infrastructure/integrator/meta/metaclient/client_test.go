package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/ad-report-api/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, maxPages int) (*MetaClient, *[]time.Duration) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var waits []time.Duration
	cfg := &config.Config{Meta: config.Meta{
		URL:         server.URL,
		AccessToken: "token-123",
		MaxPages:    maxPages,
	}}

	client := newMetaClient(cfg, WithRetryPolicy(RetryPolicy{
		MaxAttempts: 3,
		Backoff:     time.Second,
		Sleep: func(_ context.Context, d time.Duration) error {
			waits = append(waits, d)
			return nil
		},
	}))

	return client, &waits
}

func TestMetaClient_GetCampaignsFollowsPaging(t *testing.T) {
	var serverURL string
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-123", r.URL.Query().Get("access_token"))

		if r.URL.Query().Get("after") == "" {
			fmt.Fprintf(w, `{"data":[{"id":"1","name":"A","effective_status":"ACTIVE"}],"paging":{"next":"%s/act_99/campaigns?after=c1&access_token=token-123"}}`, serverURL)
			return
		}
		fmt.Fprint(w, `{"data":[{"id":"2","name":"B","effective_status":"PAUSED"}],"paging":{}}`)
	}

	server := httptest.NewServer(http.HandlerFunc(handler))
	defer server.Close()
	serverURL = server.URL

	client := newMetaClient(&config.Config{Meta: config.Meta{URL: server.URL, AccessToken: "token-123"}})

	campaigns, err := client.GetCampaigns(context.Background(), "99")
	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, "A", campaigns[0].Name)
	assert.Equal(t, "PAUSED", campaigns[1].EffectiveStatus)
}

func TestMetaClient_PageLimit(t *testing.T) {
	var calls int32
	var serverURL string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		fmt.Fprintf(w, `{"data":[{"id":"%d"}],"paging":{"next":"%s/act_1/ads?page=%d"}}`, n, serverURL, n+1)
	}))
	defer server.Close()
	serverURL = server.URL

	client := newMetaClient(&config.Config{Meta: config.Meta{URL: server.URL, MaxPages: 3}})

	ads, err := client.GetAds(context.Background(), "act_1")
	require.NoError(t, err)
	assert.Len(t, ads, 3)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestMetaClient_RetriesRateLimit(t *testing.T) {
	var calls int32
	client, waits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":{"message":"User request limit reached","type":"OAuthException","code":17}}`)
			return
		}
		fmt.Fprint(w, `{"data":[{"campaign_id":"c1","impressions":"1000","spend":"50.5"}]}`)
	}, 0)

	items, err := client.GetInsights(context.Background(), "1", InsightQuery{Level: "campaign"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1000", items[0].Impressions)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *waits)
}

func TestMetaClient_RateLimitExhausted(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"Application request limit reached","code":4}}`)
	}, 0)

	_, err := client.GetCampaigns(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestMetaClient_AuthExpiredIsTerminal(t *testing.T) {
	var calls int32
	client, waits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Error validating access token","type":"OAuthException","code":190,"error_subcode":463}}`)
	}, 0)

	_, err := client.GetAdSets(context.Background(), "1")
	require.ErrorIs(t, err, ErrAuthExpired)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Empty(t, *waits)
}

func TestMetaClient_PlatformError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid parameter","type":"OAuthException","code":100,"fbtrace_id":"abc"}}`)
	}, 0)

	_, err := client.GetAdAccounts(context.Background())

	var platformErr *PlatformError
	require.ErrorAs(t, err, &platformErr)
	assert.Equal(t, 100, platformErr.Code)
	assert.Equal(t, http.StatusBadRequest, platformErr.StatusCode)
	assert.Equal(t, "abc", platformErr.TraceID)
}

func TestInsightQuery_Params(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	params := InsightQuery{Level: "ad", Breakdown: "age", StartDate: &start, EndDate: &end}.params()

	assert.Equal(t, "ad", params.Get("level"))
	assert.Equal(t, "age", params.Get("breakdowns"))
	assert.Equal(t, `{"since":"2025-01-01","until":"2025-01-31"}`, params.Get("time_range"))
	assert.Contains(t, params.Get("fields"), "ad_name")

	params = InsightQuery{Level: "campaign"}.params()
	assert.Equal(t, "maximum", params.Get("date_preset"))
	assert.Empty(t, params.Get("breakdowns"))
}

func TestRedactToken(t *testing.T) {
	assert.NotContains(t, redactToken("https://graph.facebook.com/v22.0/act_1/ads?access_token=secret&limit=10"), "secret")
}
