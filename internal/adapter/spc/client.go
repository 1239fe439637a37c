// Package spc queries the Storm Prediction Center day-1 outlook MapServer
// for point-intersection hazard risk.
package spc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/meso/internal/domain"
)

// Client fetches hazard risk for a fixed observation point. It implements
// dashboard.HazardFetcher.
type Client struct {
	baseURL    string
	point      domain.GeoPoint
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an SPC outlook client for the given observation point.
func NewClient(baseURL string, point domain.GeoPoint, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		point:   point,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchRisk issues one point-intersection query against the kind's outlook
// layer and decodes the result. It performs exactly one network call and
// never retries; a failed fetch is the caller's to report, never to default.
func (c *Client) FetchRisk(ctx context.Context, kind domain.HazardKind) (domain.RiskValue, error) {
	params := url.Values{
		"f":            {"json"},
		"geometry":     {fmt.Sprintf("%.4f,%.4f", c.point.Lon, c.point.Lat)},
		"geometryType": {"esriGeometryPoint"},
		"inSR":         {"4326"},
		"spatialRel":   {"esriSpatialRelIntersects"},
		"outFields":    {"*"},
	}
	fullURL := fmt.Sprintf("%s/%d/query?%s", c.baseURL, kind.LayerID(), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.RiskValue{}, domain.NetworkError(kind.String(), fmt.Errorf("create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RiskValue{}, domain.NetworkError(kind.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.RiskValue{}, domain.NetworkError(kind.String(),
			fmt.Errorf("spc api error: status %d: %s", resp.StatusCode, body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.RiskValue{}, domain.NetworkError(kind.String(), fmt.Errorf("read response: %w", err))
	}

	value, err := domain.DecodeRisk(body, kind)
	if err != nil {
		return domain.RiskValue{}, domain.DecodeError(kind.String(), err)
	}

	c.logger.Debug("hazard risk fetched", "kind", kind.String(), "layer", kind.LayerID(), "risk", value.Display())
	return value, nil
}
