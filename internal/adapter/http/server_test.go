package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/meso/internal/adapter/http"
	"github.com/couchcryptid/meso/internal/dashboard"
	"github.com/couchcryptid/meso/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDashboard struct {
	snap        dashboard.Snapshot
	readyErr    error
	selected    []dashboard.OutlookVariant
	activations int
}

func (m *mockDashboard) Snapshot() dashboard.Snapshot { return m.snap }

func (m *mockDashboard) SelectOutlook(v dashboard.OutlookVariant) {
	m.selected = append(m.selected, v)
	m.snap.Outlook = v
}

func (m *mockDashboard) Activate(context.Context) *dashboard.Activation {
	m.activations++
	return nil
}

func (m *mockDashboard) CheckReadiness(context.Context) error { return m.readyErr }

func testSnapshot() dashboard.Snapshot {
	at := time.Date(2026, time.April, 26, 18, 0, 0, 0, time.UTC)
	return dashboard.Snapshot{
		Hazards: map[domain.HazardKind]dashboard.FetchState[domain.RiskValue]{
			domain.HazardCategorical: dashboard.Resolved(domain.CategoricalRisk(domain.CategorySlight), at),
			domain.HazardTornado:     dashboard.Failed[domain.RiskValue](errors.New("connection refused"), at),
			domain.HazardWind:        dashboard.Resolved(domain.PercentRisk(15), at),
			domain.HazardHail:        {},
		},
		Forecast:    dashboard.Resolved(domain.TemperatureForecast{High: 78, Low: 55}, at),
		Outlook:     dashboard.CategoricalMap,
		GeneratedAt: at,
	}
}

func newTestServer(store *mockDashboard) *httpadapter.Server {
	return httpadapter.NewServer(":0", store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockDashboard{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReflectsStore(t *testing.T) {
	srv := newTestServer(&mockDashboard{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	srv = newTestServer(&mockDashboard{readyErr: errors.New("no upstream fetch has resolved yet")})
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
}

func TestDashboardSnapshotJSON(t *testing.T) {
	srv := newTestServer(&mockDashboard{snap: testSnapshot()})
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Outlook      string                     `json:"outlook"`
		OutlookImage string                     `json:"outlook_image"`
		ClimateImage string                     `json:"climate_image"`
		Hazards      map[string]json.RawMessage `json:"hazards"`
		Forecast     struct {
			Status string `json:"status"`
			Value  struct {
				High int `json:"high"`
				Low  int `json:"low"`
			} `json:"value"`
		} `json:"forecast"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "categorical", body.Outlook)
	assert.Contains(t, body.OutlookImage, "day1otlk.gif")
	assert.Contains(t, body.ClimateImage, "cpc.ncep.noaa.gov")
	require.Len(t, body.Hazards, 4)

	assert.Contains(t, string(body.Hazards["categorical"]), `"SLIGHT"`)
	assert.Contains(t, string(body.Hazards["tornado"]), `"failed"`)
	assert.Contains(t, string(body.Hazards["wind"]), `"15%"`)
	assert.Contains(t, string(body.Hazards["hail"]), `"pending"`)

	assert.Equal(t, "resolved", body.Forecast.Status)
	assert.Equal(t, 78, body.Forecast.Value.High)
	assert.Equal(t, 55, body.Forecast.Value.Low)
}

func TestOutlookSelection(t *testing.T) {
	store := &mockDashboard{snap: testSnapshot()}
	srv := newTestServer(store)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/api/outlook", strings.NewReader(`{"variant":"tornado"}`))
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []dashboard.OutlookVariant{dashboard.TornadoMap}, store.selected)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "tornado", body["outlook"])
	assert.Contains(t, body["image"], "day1probotlk_torn.gif")
}

func TestOutlookSelection_UnknownVariant(t *testing.T) {
	store := &mockDashboard{}
	srv := newTestServer(store)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/api/outlook", strings.NewReader(`{"variant":"dewpoint"}`))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.selected)
}

func TestOutlookSelection_BadBody(t *testing.T) {
	srv := newTestServer(&mockDashboard{})
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/api/outlook", strings.NewReader(`not json`))
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshTriggersActivation(t *testing.T) {
	store := &mockDashboard{}
	srv := newTestServer(store)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, store.activations)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockDashboard{})
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
