package trends

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testEndpoint = "https://trends.example.com/api/v1/popular-searches"

func newTestClient() *Client {
	cfg := ClientConfig{
		BaseURL: "https://trends.example.com",
		Timeout: 5 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 2,
			WaitTime:    10 * time.Millisecond,
			MaxWaitTime: 50 * time.Millisecond,
		},
		CB: CBConfig{
			MaxRequests:  5,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.6,
		},
	}
	client := New(cfg, zap.NewNop())

	// Route this client's HTTP transport through httpmock
	httpmock.ActivateNonDefault(client.client.GetClient())

	return client
}

func TestFetchPopular_Success(t *testing.T) {
	client := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, PopularResponse{
			Searches: []PopularSearch{
				{Term: "Action Movies", Count: 920},
				{Term: "comedy", Count: 640},
				{Term: "  drama  ", Count: 310},
				{Term: "", Count: 5},
			},
		}))

	terms, err := client.FetchPopular(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"action movies", "comedy", "drama"}, terms)
}

func TestFetchPopular_ServerError(t *testing.T) {
	client := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, testEndpoint,
		httpmock.NewStringResponder(500, "internal error"))

	_, err := client.FetchPopular(context.Background())
	assert.Error(t, err)
}

func TestFetchPopular_RetriesOn5xx(t *testing.T) {
	client := newTestClient()
	defer httpmock.DeactivateAndReset()

	calls := 0
	httpmock.RegisterResponder(http.MethodGet, testEndpoint,
		func(_ *http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				return httpmock.NewStringResponse(503, "unavailable"), nil
			}
			resp, err := httpmock.NewJsonResponse(200, PopularResponse{
				Searches: []PopularSearch{{Term: "thriller", Count: 100}},
			})
			return resp, err
		})

	terms, err := client.FetchPopular(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"thriller"}, terms)
	assert.Equal(t, 2, calls, "first 5xx should be retried")
}

func TestFetchPopular_CircuitBreakerOpens(t *testing.T) {
	client := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, testEndpoint,
		httpmock.NewStringResponder(500, "internal error"))

	// Trip the breaker with consecutive failures
	for i := 0; i < 5; i++ {
		_, _ = client.FetchPopular(context.Background())
	}

	assert.Equal(t, "open", client.cb.State().String())
}

func TestHealthCheck(t *testing.T) {
	client := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "https://trends.example.com/health",
		httpmock.NewStringResponder(200, "ok"))

	assert.NoError(t, client.HealthCheck(context.Background()))
}
