package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/waste-data-etl/internal/domain"
	"github.com/couchcryptid/waste-data-etl/internal/observability"
)

// Client implements domain.Geocoder using the Kakao Local address search API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Kakao geocoding client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://dapi.kakao.com/v2/local/search/address.json",
		logger:  logger,
		metrics: metrics,
	}
}

// Geocode resolves a lot-number or road address to coordinates. A query
// the API does not know returns (nil, nil), not an error.
func (c *Client) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	params := url.Values{"query": {address}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("kakao API error: status %d: %s", resp.StatusCode, body)
	}

	var kakaoResp response
	if err := json.NewDecoder(resp.Body).Decode(&kakaoResp); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(kakaoResp.Documents) == 0 {
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		c.logger.Debug("no geocoding match", "address", address)
		return nil, nil
	}

	doc := kakaoResp.Documents[0]
	lat, err := strconv.ParseFloat(doc.Y, 64)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("parse latitude %q: %w", doc.Y, err)
	}
	lon, err := strconv.ParseFloat(doc.X, 64)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("parse longitude %q: %w", doc.X, err)
	}

	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	return &domain.Coordinates{Lat: lat, Lon: lon}, nil
}

// Kakao API response types. Coordinates come back as decimal strings,
// with x holding longitude and y holding latitude.

type response struct {
	Documents []document `json:"documents"`
}

type document struct {
	X string `json:"x"`
	Y string `json:"y"`
}
