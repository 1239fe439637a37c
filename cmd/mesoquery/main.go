// Command mesoquery runs one dashboard fetch cycle from the terminal and
// prints the result, using the same clients and store as the service. Useful
// for checking what the upstreams return for a point without standing up the
// HTTP surface.
//
// Usage:
//
//	go run ./cmd/mesoquery -lat 34.7382 -lon -86.6018 -station KHSV
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/meso/internal/adapter/nbm"
	"github.com/couchcryptid/meso/internal/adapter/spc"
	"github.com/couchcryptid/meso/internal/dashboard"
	"github.com/couchcryptid/meso/internal/domain"
	"github.com/couchcryptid/meso/internal/observability"
)

const (
	spcBaseURL = "https://mapservices.weather.noaa.gov/vector/rest/services/outlooks/SPC_wx_outlks/MapServer"
	nbmBaseURL = "https://blend.mdl.nws.noaa.gov/nbm-text-new"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	lat := flag.Float64("lat", 34.7382, "observation latitude")
	lon := flag.Float64("lon", -86.6018, "observation longitude")
	station := flag.String("station", "KHSV", "NBM station identifier")
	timeout := flag.Duration("timeout", 10*time.Second, "per-fetch timeout")
	verbose := flag.Bool("v", false, "log fetch details")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	point := domain.GeoPoint{Lat: *lat, Lon: *lon}
	hazards := spc.NewClient(spcBaseURL, point, *timeout, logger)
	forecast := nbm.NewClient(nbmBaseURL, *station, *timeout, logger)

	store := dashboard.NewStore(hazards, forecast, nil, logger, observability.NewMetrics(), *timeout)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+time.Second)
	defer cancel()

	act := store.Activate(ctx)
	if err := act.Wait(ctx); err != nil {
		return fmt.Errorf("fetch cycle did not complete: %w", err)
	}

	snap := store.Snapshot()
	fmt.Printf("point %.4f,%.4f  station %s\n\n", *lat, *lon, *station)
	for _, kind := range domain.Kinds() {
		fmt.Printf("%-12s %s\n", kind, formatRisk(snap.Hazards[kind]))
	}
	fmt.Printf("%-12s %s\n", "forecast", formatForecast(snap.Forecast))
	return nil
}

func formatRisk(slot dashboard.FetchState[domain.RiskValue]) string {
	switch slot.Status {
	case dashboard.StatusResolved:
		return slot.Value.Display()
	case dashboard.StatusFailed:
		return fmt.Sprintf("unavailable (%v)", slot.Err)
	default:
		return "pending"
	}
}

func formatForecast(slot dashboard.FetchState[domain.TemperatureForecast]) string {
	switch slot.Status {
	case dashboard.StatusResolved:
		return slot.Value.String()
	case dashboard.StatusFailed:
		return fmt.Sprintf("unavailable (%v)", slot.Err)
	default:
		return "pending"
	}
}
