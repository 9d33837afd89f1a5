package shared

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv      string `mapstructure:"APP_ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	HTTPAddr    string `mapstructure:"HTTP_ADDR"`
	MetricsAddr string `mapstructure:"METRICS_ADDR"`

	APIBase     string `mapstructure:"HOTEL_API_BASE_URL"`
	APIToken    string `mapstructure:"HOTEL_API_TOKEN"`
	APIRPS      int    `mapstructure:"HOTEL_API_RPS"`
	TimeoutSecs int    `mapstructure:"HOTEL_API_TIMEOUT_SECONDS"`

	MySQLDSN  string `mapstructure:"MYSQL_DSN"`
	RedisAddr string `mapstructure:"REDIS_ADDR"`
	RedisPass string `mapstructure:"REDIS_PASSWORD"`
	RedisDB   int    `mapstructure:"REDIS_DB"`

	CacheTTLSecs  int `mapstructure:"CACHE_TTL_SECONDS"`
	ImportWorkers int `mapstructure:"IMPORT_WORKERS"`
}

var defaults = map[string]any{
	"APP_ENV":                   "prod",
	"LOG_LEVEL":                 "info",
	"HTTP_ADDR":                 ":8080",
	"METRICS_ADDR":              ":9100",
	"HOTEL_API_BASE_URL":        "http://localhost:8080/hotel",
	"HOTEL_API_TOKEN":           "",
	"HOTEL_API_RPS":             5,
	"HOTEL_API_TIMEOUT_SECONDS": 15,
	"MYSQL_DSN":                 "",
	"REDIS_ADDR":                "",
	"REDIS_PASSWORD":            "",
	"REDIS_DB":                  0,
	"CACHE_TTL_SECONDS":         900,
	"IMPORT_WORKERS":            4,
}

// Load reads configuration from the environment. An empty MYSQL_DSN disables
// the submission journal and an empty REDIS_ADDR disables caching.
func Load() Config {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
		_ = v.BindEnv(k)
	}
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatal().Err(err).Msg("config decode")
	}
	c.APIBase = strings.TrimRight(c.APIBase, "/")
	if c.APIToken == "" {
		log.Warn().Msg("HOTEL_API_TOKEN is empty")
	}
	return c
}

func (c Config) APITimeout() time.Duration { return time.Duration(c.TimeoutSecs) * time.Second }
func (c Config) CacheTTL() time.Duration   { return time.Duration(c.CacheTTLSecs) * time.Second }
