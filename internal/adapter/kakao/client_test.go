package kakao

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/waste-data-etl/internal/observability"
)

const (
	testAPIKey        = "test-key"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string) *Client {
	return &Client{
		apiKey:     testAPIKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    testMetrics(),
	}
}

func TestClient_Geocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "서울 중구 세종대로 110", r.URL.Query().Get("query"))
		assert.Equal(t, "KakaoAK "+testAPIKey, r.Header.Get("Authorization"))

		resp := response{
			Documents: []document{
				{X: "126.97806", Y: "37.56667"},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	coords, err := c.Geocode(context.Background(), "서울 중구 세종대로 110")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.InDelta(t, 37.56667, coords.Lat, 1e-9)
	assert.InDelta(t, 126.97806, coords.Lon, 1e-9)
}

func TestClient_Geocode_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	coords, err := c.Geocode(context.Background(), "존재하지 않는 주소")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestClient_Geocode_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"msg":"wrong appKey"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Geocode(context.Background(), "서울")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestClient_Geocode_MalformedCoordinate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		resp := response{Documents: []document{{X: "east", Y: "37.5"}}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Geocode(context.Background(), "서울")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "longitude")
}

func TestClient_Geocode_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := testClient(srv.URL)
	_, err := c.Geocode(ctx, "서울")
	require.Error(t, err)
}
