package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/meso/internal/domain"
)

// Defaults point the dashboard at Huntsville, AL. Multi-location support is
// out of scope; the observation point and station are plain configuration.
const (
	defaultSPCBaseURL = "https://mapservices.weather.noaa.gov/vector/rest/services/outlooks/SPC_wx_outlks/MapServer"
	defaultNBMBaseURL = "https://blend.mdl.nws.noaa.gov/nbm-text-new"
	defaultLatitude   = 34.7382
	defaultLongitude  = -86.6018
	defaultStation    = "KHSV"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	FetchTimeout    time.Duration

	SPCBaseURL string
	NBMBaseURL string
	Point      domain.GeoPoint
	NBMStation string

	// Kafka snapshot publishing configuration.
	KafkaEnabled       bool
	KafkaBrokers       []string
	KafkaSnapshotTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	lat, err := parseFloat("LATITUDE", defaultLatitude)
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("LONGITUDE", defaultLongitude)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		FetchTimeout:    fetchTimeout,

		SPCBaseURL: envOrDefault("SPC_BASE_URL", defaultSPCBaseURL),
		NBMBaseURL: envOrDefault("NBM_BASE_URL", defaultNBMBaseURL),
		Point:      domain.GeoPoint{Lat: lat, Lon: lon},
		NBMStation: envOrDefault("NBM_STATION", defaultStation),

		KafkaEnabled:       os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSnapshotTopic: envOrDefault("KAFKA_SNAPSHOT_TOPIC", "dashboard-snapshots"),
	}

	if cfg.SPCBaseURL == "" {
		return nil, errors.New("SPC_BASE_URL is required")
	}
	if cfg.NBMBaseURL == "" {
		return nil, errors.New("NBM_BASE_URL is required")
	}
	if cfg.NBMStation == "" {
		return nil, errors.New("NBM_STATION is required")
	}
	if cfg.Point.Lat < -90 || cfg.Point.Lat > 90 {
		return nil, errors.New("LATITUDE must be in [-90, 90]")
	}
	if cfg.Point.Lon < -180 || cfg.Point.Lon > 180 {
		return nil, errors.New("LONGITUDE must be in [-180, 180]")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaSnapshotTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SNAPSHOT_TOPIC is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

func parseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
