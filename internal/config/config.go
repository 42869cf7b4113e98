package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// BackendFile stores bookmarks and the archive ledger as JSON files.
	BackendFile = "file"
	// BackendRedis substitutes a Redis instance for the JSON files.
	BackendRedis = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DataDir           string        // directory holding bookmarks.json and archived.json
	BirdBin           string        // bird CLI binary name or path
	AuthToken         string        // X auth token, never logged
	CT0               string        // X csrf/session token, never logged
	FetchTimeout      time.Duration // wall-clock bound on a full bookmark fetch
	SyncInterval      time.Duration // periodic auto-sync (0 = disabled)
	CategoryRulesFile string        // optional YAML keyword->category rules (empty = disabled)

	StoreBackend string // "file" (default) or "redis"

	// Sync endpoint rate limit; a sync spawns a child process, so it must
	// stay cheap to abuse.
	SyncRateBurst  int
	SyncRatePerMin int

	// Redis (only consulted when StoreBackend == "redis")
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisMaxWait        time.Duration // max wait between connect retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisPoolSize       int           // connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("XMARKS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("XMARKS_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("XMARKS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("XMARKS_PRETTY_LOG", true),

		// Data and bird CLI
		DataDir:           getenv("XMARKS_DATA_DIR", "./data"),
		BirdBin:           getenv("XMARKS_BIRD_BIN", "bird"),
		AuthToken:         requireEnv("XMARKS_AUTH_TOKEN"),
		CT0:               requireEnv("XMARKS_CT0"),
		FetchTimeout:      mustDuration("XMARKS_FETCH_TIMEOUT", 120*time.Second),
		SyncInterval:      mustDuration("XMARKS_SYNC_INTERVAL", 0), // 0 = manual sync only
		CategoryRulesFile: getenv("XMARKS_CATEGORY_RULES", ""),

		StoreBackend: getenv("XMARKS_STORE_BACKEND", BackendFile),

		SyncRateBurst:  getenvInt("XMARKS_SYNC_RATE_BURST", 3),
		SyncRatePerMin: getenvInt("XMARKS_SYNC_RATE_PER_MIN", 2),

		// Redis settings
		RedisAddr:           getenv("XMARKS_REDIS_ADDR", ""),
		RedisUser:           getenv("XMARKS_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("XMARKS_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("XMARKS_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions (empty = passthrough; this is a local-first tool)
		AllowedHosts: splitAndTrim(getenv("XMARKS_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("XMARKS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("XMARKS_TRUST_PROXY", false),
	}

	if cfg.StoreBackend != BackendFile && cfg.StoreBackend != BackendRedis {
		panic(fmt.Sprintf("❌ FATAL: XMARKS_STORE_BACKEND must be %q or %q, got %q",
			BackendFile, BackendRedis, cfg.StoreBackend))
	}
	if cfg.StoreBackend == BackendRedis && cfg.RedisAddr == "" {
		panic("❌ FATAL: XMARKS_REDIS_ADDR is required when XMARKS_STORE_BACKEND=redis")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.AuthToken = "***REDACTED***"
		cfgCopy.CT0 = "***REDACTED***"
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
