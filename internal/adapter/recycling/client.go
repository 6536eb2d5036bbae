package recycling

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/waste-data-etl/internal/domain"
)

// Client fetches the recycling facility registry from the national
// resource circulation information system's JSON API.
type Client struct {
	userID     string
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a registry client.
func NewClient(userID, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		userID: userID,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://www.recycling-info.or.kr/sds/JsonApi.do",
		logger:  logger,
	}
}

// FetchFacilities downloads the full facility roster for one report year.
// The registry is the source of truth for the run, so any transport or
// decode failure is returned as an error rather than degraded.
func (c *Client) FetchFacilities(ctx context.Context, year int) ([]domain.WasteFacilityRecord, error) {
	params := url.Values{
		"PID":   {"REA06"},
		"YEAR":  {strconv.Itoa(year)},
		"USRID": {c.userID},
		"KEY":   {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("registry API error: status %d: %s", resp.StatusCode, body)
	}

	var registryResp response
	if err := json.NewDecoder(resp.Body).Decode(&registryResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	records := make([]domain.WasteFacilityRecord, 0, len(registryResp.Data))
	for _, item := range registryResp.Data {
		records = append(records, item.toRecord(year))
	}

	c.logger.Info("fetched facility registry", "year", year, "count", len(records))
	return records, nil
}

// Registry API response types. All values arrive as strings, including
// the employee count.

type response struct {
	Data []item `json:"data"`
}

type item struct {
	EntrpsNm    string `json:"ENTRPS_NM"`
	Rprsntv     string `json:"RPRSNTV"`
	Adres       string `json:"ADRES"`
	Telno       string `json:"TELNO"`
	EmplCnt     string `json:"EMPL_CNT"`
	Area        string `json:"AREA"`
	Wste        string `json:"WSTE"`
	ProductName string `json:"PRODUCT_NAME"`
	ProcessMth  string `json:"PROCESS_MTH"`
}

func (it item) toRecord(year int) domain.WasteFacilityRecord {
	return domain.WasteFacilityRecord{
		Year:           year,
		Name:           it.EntrpsNm,
		Representative: it.Rprsntv,
		Address:        it.Adres,
		Phone:          it.Telno,
		EmployeeCount:  parseEmployeeCount(it.EmplCnt),
		Area:           it.Area,
		WasteHandled:   it.Wste,
		ProductName:    it.ProductName,
		ProcessMethod:  it.ProcessMth,
	}
}

// parseEmployeeCount reads the roster's free-text headcount. Blank and
// malformed values mean "unknown" and load as zero.
func parseEmployeeCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
