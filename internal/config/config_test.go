package config

import (
	"testing"
	"time"

	"github.com/couchcryptid/meso/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, defaultSPCBaseURL, cfg.SPCBaseURL)
	assert.Equal(t, defaultNBMBaseURL, cfg.NBMBaseURL)
	assert.Equal(t, domain.GeoPoint{Lat: 34.7382, Lon: -86.6018}, cfg.Point)
	assert.Equal(t, "KHSV", cfg.NBMStation)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "dashboard-snapshots", cfg.KafkaSnapshotTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("SPC_BASE_URL", "http://spc.test/MapServer")
	t.Setenv("NBM_BASE_URL", "http://nbm.test/nbm-text")
	t.Setenv("LATITUDE", "35.2226")
	t.Setenv("LONGITUDE", "-97.4395")
	t.Setenv("NBM_STATION", "KOUN")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SNAPSHOT_TOPIC", "custom-snapshots")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "http://spc.test/MapServer", cfg.SPCBaseURL)
	assert.Equal(t, "http://nbm.test/nbm-text", cfg.NBMBaseURL)
	assert.Equal(t, domain.GeoPoint{Lat: 35.2226, Lon: -97.4395}, cfg.Point)
	assert.Equal(t, "KOUN", cfg.NBMStation)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-snapshots", cfg.KafkaSnapshotTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeFetchTimeout(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
}

func TestLoad_InvalidLatitude(t *testing.T) {
	t.Setenv("LATITUDE", "not-a-number")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LATITUDE")
}

func TestLoad_OutOfRangeCoordinates(t *testing.T) {
	t.Setenv("LATITUDE", "91")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LATITUDE")

	t.Setenv("LATITUDE", "34.7382")
	t.Setenv("LONGITUDE", "-181")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LONGITUDE")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
