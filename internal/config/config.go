package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// RedisAddr is the address of the Redis server backing the task cache.
	// The cache is advisory: when Redis is unreachable the API still serves
	// every request from the database.
	RedisAddr string
	RedisDB   int

	JWTSecret string

	// JWTExpireMinutes is the token lifetime in minutes (default 600). Set via JWT_EXPIRE_MINUTES.
	JWTExpireMinutes int

	// Timezone is the canonical zone tokens are minted against (default America/Sao_Paulo).
	Timezone string

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string

	// CacheTTLMinutes is how long cached tasks live in Redis (default 10).
	CacheTTLMinutes int

	// CacheWarmCron is the cron spec for the cache warmer (default "@every 5m").
	// Empty disables warming.
	CacheWarmCron string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the API listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is a list of origins allowed for CORS.
	// Set via CORS_ALLOWED_ORIGINS (comma-separated). When empty, no CORS headers are sent (same-origin only).
	CORSAllowedOrigins []string
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "taskhub"),
		DBUser: getEnv("DB_USER", "taskhub"),
		DBPass: getEnv("DB_PASS", "taskhub"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		JWTSecret:        getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpireMinutes: getEnvInt("JWT_EXPIRE_MINUTES", 600),
		Timezone:         getEnv("TIMEZONE", "America/Sao_Paulo"),
		Env:              getEnv("ENV", "dev"),

		CacheTTLMinutes: getEnvInt("CACHE_TTL_MINUTES", 10),
		CacheWarmCron:   getEnv("CACHE_WARM_CRON", "@every 5m"),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
