package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the quota for one route. A Path ending in "/" matches every path under it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int // defaults to Limit when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig is used when NewLimiter is given nil.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables on top of DefaultConfig.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := DefaultConfig()
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))

	// The hosted model quota is the scarce resource, so it gets its own knob.
	if ai := getEnvInt("RATE_LIMIT_AI_PER_MINUTE", 0); ai > 0 {
		for i := range cfg.EndpointConfigs {
			if isGenerative(cfg.EndpointConfigs[i].Path) {
				cfg.EndpointConfigs[i].Limit = ai
				cfg.EndpointConfigs[i].Window = time.Minute
			}
		}
	}
	return cfg
}

// DefaultEndpointConfigs returns the per-route quotas of the API.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Model calls
		{Path: "/api/active/compose", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/api/match", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/api/match/report", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},

		// Headless Chrome
		{Path: "/api/active/export/pdf", Method: "GET", Limit: 10, Window: time.Minute, Burst: 3},

		// Writes
		{Path: "/api/versions", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/versions/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/versions/", Method: "DELETE", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/active/", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/api/active/", Method: "PUT", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/api/active", Method: "PATCH", Limit: 600, Window: time.Minute, Burst: 60},

		// Reads use the default limit; health is unlimited (see MatchEndpoint).
	}
}

func isGenerative(path string) bool {
	return path == "/api/active/compose" || strings.HasPrefix(path, "/api/match")
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of client addresses.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
