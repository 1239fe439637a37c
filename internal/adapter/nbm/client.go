// Package nbm fetches the National Blend of Models text forecast product.
package nbm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/meso/internal/domain"
)

// forecastSlot names the forecast's state slot in fetch errors and metrics.
const forecastSlot = "forecast"

// Client fetches the NBM text blend for a fixed station. It implements
// dashboard.ForecastFetcher.
type Client struct {
	baseURL    string
	station    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an NBM text client for the given station identifier.
func NewClient(baseURL, station string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		station: station,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchForecast retrieves the latest NBS guidance cycle for the station and
// decodes the day-1 temperature pair. One network call, no retries.
func (c *Client) FetchForecast(ctx context.Context) (domain.TemperatureForecast, error) {
	params := url.Values{
		"ele": {"NBS"},
		"sta": {c.station},
		"cyc": {"Latest"},
	}
	fullURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.TemperatureForecast{}, domain.NetworkError(forecastSlot, fmt.Errorf("create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.TemperatureForecast{}, domain.NetworkError(forecastSlot, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.TemperatureForecast{}, domain.NetworkError(forecastSlot,
			fmt.Errorf("nbm api error: status %d: %s", resp.StatusCode, body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.TemperatureForecast{}, domain.NetworkError(forecastSlot, fmt.Errorf("read response: %w", err))
	}

	forecast, err := domain.DecodeForecast(string(body))
	if err != nil {
		return domain.TemperatureForecast{}, domain.DecodeError(forecastSlot, err)
	}

	c.logger.Debug("forecast fetched", "station", c.station, "high", forecast.High, "low", forecast.Low)
	return forecast, nil
}
