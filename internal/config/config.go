package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultFeedPageSize = 12
	defaultHTTPTimeout  = 15 * time.Second
	defaultRateLimit    = 10
	defaultRateBurst    = 20
	defaultViaCEPURL    = "https://viacep.com.br"
)

var (
	ErrMissingSupabaseURL = errors.New("SUPABASE_URL is not set")
	ErrMissingSupabaseKey = errors.New("SUPABASE_KEY is not set")
)

type Config struct {
	SupabaseURL    string
	SupabaseKey    string
	AppEnv         string
	FeedPageSize   int
	HTTPTimeout    time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	ViaCEPURL      string
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		SupabaseURL:    strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseKey:    os.Getenv("SUPABASE_KEY"),
		AppEnv:         os.Getenv("APP_ENV"),
		FeedPageSize:   envInt("FEED_PAGE_SIZE", defaultFeedPageSize),
		HTTPTimeout:    time.Duration(envInt("HTTP_TIMEOUT_SECONDS", int(defaultHTTPTimeout/time.Second))) * time.Second,
		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", defaultRateLimit),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", defaultRateBurst),
		ViaCEPURL:      strings.TrimRight(envOrDefault("VIACEP_URL", defaultViaCEPURL), "/"),
	}
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return ErrMissingSupabaseURL
	}
	if c.SupabaseKey == "" {
		return ErrMissingSupabaseKey
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil && f > 0 {
			return f
		}
	}
	return def
}
