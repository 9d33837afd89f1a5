package shared_test

import (
	"testing"
	"time"

	"hotel_admin/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOTEL_API_TOKEN", "x")
	c := shared.Load()
	if c.APIBase != "http://localhost:8080/hotel" || c.HTTPAddr != ":8080" {
		t.Fatalf("defaults: %+v", c)
	}
	if c.APIRPS != 5 || c.ImportWorkers != 4 || c.MySQLDSN != "" {
		t.Fatalf("defaults: %+v", c)
	}
	if c.CacheTTL() != 15*time.Minute || c.APITimeout() != 15*time.Second {
		t.Fatalf("durations: %v %v", c.CacheTTL(), c.APITimeout())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOTEL_API_BASE_URL", "https://api.example.com/hotel/")
	t.Setenv("HOTEL_API_RPS", "20")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("APP_ENV", "dev")

	c := shared.Load()
	if c.APIBase != "https://api.example.com/hotel" {
		t.Fatalf("base: %q", c.APIBase)
	}
	if c.APIRPS != 20 || c.RedisDB != 3 || c.AppEnv != "dev" {
		t.Fatalf("overrides: %+v", c)
	}
}
