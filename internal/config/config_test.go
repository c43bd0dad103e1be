package config_test

import (
	"testing"
	"time"

	"github.com/skovtun/lightning-node-registry/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVICE_NAME", "SERVER_ADDR", "DATABASE_URL", "SOURCE_URL",
		"SOURCE_TIMEOUT_SECS", "IMPORT_INTERVAL_SECS", "RABBITMQ_URL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServiceName != "lightning-node-registry" {
		t.Errorf("unexpected service name: %s", cfg.ServiceName)
	}
	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("unexpected server addr: %s", cfg.Server.Addr)
	}
	if cfg.Import.IntervalSecs != 600 {
		t.Errorf("unexpected import interval: %d", cfg.Import.IntervalSecs)
	}
	if cfg.Source.TimeoutSecs != 15 {
		t.Errorf("unexpected source timeout: %d", cfg.Source.TimeoutSecs)
	}
	if cfg.RabbitMQ.URL != "" {
		t.Errorf("expected rabbitmq disabled by default, got %s", cfg.RabbitMQ.URL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SOURCE_URL", "http://localhost:9999/feed")
	t.Setenv("IMPORT_INTERVAL_SECS", "30")
	t.Setenv("SOURCE_TIMEOUT_SECS", "5")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Source.URL != "http://localhost:9999/feed" {
		t.Errorf("unexpected source url: %s", cfg.Source.URL)
	}
	if cfg.ImportInterval() != 30*time.Second {
		t.Errorf("unexpected import interval: %v", cfg.ImportInterval())
	}
	if cfg.SourceTimeout() != 5*time.Second {
		t.Errorf("unexpected source timeout: %v", cfg.SourceTimeout())
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("IMPORT_INTERVAL_SECS", "not-a-number")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Import.IntervalSecs != 600 {
		t.Errorf("expected default interval 600, got %d", cfg.Import.IntervalSecs)
	}
}

func TestLoad_NonPositiveIntervalRejected(t *testing.T) {
	t.Setenv("IMPORT_INTERVAL_SECS", "0")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for zero interval")
	}
}
