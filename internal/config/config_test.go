package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Database: DatabaseConfig{
			URL: "postgres://localhost:5432/hansard",
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database url")
	}
}

func TestValidate_PageSizeBounds(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{URL: "postgres://localhost:5432/hansard"},
		Listing:  ListingConfig{DefaultPageSize: 50, MaxPageSize: 20},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when max_page_size is below default_page_size")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("expected MaxConns=10, got %d", cfg.Database.MaxConns)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Cache.TTLSec != 60 {
		t.Errorf("expected TTLSec=60, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Listing.DefaultPageSize != 20 {
		t.Errorf("expected DefaultPageSize=20, got %d", cfg.Listing.DefaultPageSize)
	}
	if cfg.Listing.MaxPageSize != 100 {
		t.Errorf("expected MaxPageSize=100, got %d", cfg.Listing.MaxPageSize)
	}
	if cfg.Listing.DetailQuestions != 1000 {
		t.Errorf("expected DetailQuestions=1000, got %d", cfg.Listing.DetailQuestions)
	}
	if cfg.Listing.DetailBills != 500 {
		t.Errorf("expected DetailBills=500, got %d", cfg.Listing.DetailBills)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{MaxConns: 4, ReadinessTimeout: 15},
		Cache:    CacheConfig{TTLSec: 120},
		Listing:  ListingConfig{DefaultPageSize: 50, MaxPageSize: 500, DetailQuestions: 100, DetailBills: 50},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.MaxConns != 4 {
		t.Errorf("expected MaxConns=4, got %d", cfg.Database.MaxConns)
	}
	if cfg.Cache.TTLSec != 120 {
		t.Errorf("expected TTLSec=120, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Listing.DetailQuestions != 100 {
		t.Errorf("expected DetailQuestions=100, got %d", cfg.Listing.DetailQuestions)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("GAVEL_DB_URL", "postgres://corpus:5432/hansard")

	in := []byte("url: ${GAVEL_DB_URL}\nlevel: ${GAVEL_LOG_LEVEL:-info}\n")
	got := string(expandEnvVars(in))
	want := "url: postgres://corpus:5432/hansard\nlevel: info\n"
	if got != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", got, want)
	}
}
