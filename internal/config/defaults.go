// AngelaMos | 2026
// defaults.go

package config

func defaults() map[string]any {
	return map[string]any{
		"app.name":        "RentalsPro API",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.application_name":   "rentalspro",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",
		"database.query_timeout":      "5s",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 5,
		"redis.key_prefix":     "rentalspro",

		"security.hash_iterations": 10000,
		"security.salt_size":       16,

		"cache.unit_ttl": "5m",

		"jwt.access_token_expire": "60m",
		"jwt.issuer":              "rentalspro",
		"jwt.audience":            "rentalspro-mobile",
		"jwt.private_key_path":    "keys/private.pem",
		"jwt.public_key_path":     "keys/public.pem",

		"rate_limit.requests": 100,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    20,

		"cors.allowed_origins":   []string{"http://localhost:5173"},
		"cors.allowed_methods":   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		"cors.allowed_headers":   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "rentalspro-api",
	}
}

// envBindings maps the environment variables the service reads to config
// keys. Anything else in the environment is ignored.
var envBindings = map[string]string{
	"ENVIRONMENT": "app.environment",
	"HOST":        "server.host",
	"PORT":        "server.port",

	"DATABASE_URL":              "database.url",
	"DATABASE_APPLICATION_NAME": "database.application_name",
	"DATABASE_QUERY_TIMEOUT":    "database.query_timeout",

	"REDIS_URL":        "redis.url",
	"REDIS_KEY_PREFIX": "redis.key_prefix",

	"JWT_PRIVATE_KEY_PATH":    "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":     "jwt.public_key_path",
	"JWT_ACCESS_TOKEN_EXPIRE": "jwt.access_token_expire",
	"JWT_ISSUER":              "jwt.issuer",
	"JWT_AUDIENCE":            "jwt.audience",

	"HASH_ITERATIONS": "security.hash_iterations",
	"SALT_SIZE":       "security.salt_size",
	"CACHE_UNIT_TTL":  "cache.unit_ttl",

	"RATE_LIMIT_REQUESTS": "rate_limit.requests",
	"RATE_LIMIT_WINDOW":   "rate_limit.window",
	"RATE_LIMIT_BURST":    "rate_limit.burst",

	"LOG_LEVEL":  "log.level",
	"LOG_FORMAT": "log.format",

	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",
}

// envKey returns "" for unbound variables, which koanf drops.
func envKey(name string) string {
	return envBindings[name]
}
