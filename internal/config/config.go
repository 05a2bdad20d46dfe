package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// CircuitBreaker holds breaker settings for one upstream provider.
type CircuitBreaker struct {
	Enabled        bool
	FailureCount   int
	OpenTimeout    time.Duration
	HalfOpenMaxReq int
}

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	APIBaseURL                 string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	CORSAllowedOrigins         []string
	LogLevel                   logging.Level
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CacheBackend               string
	RedisAddr                  string
	ArchiveEnabled             bool
	DBURL                      string
	DBDisablePreparedBinary    bool
	MetricsEnabled             bool
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	SportMonksFootballURL      string
	SportMonksCricketURL       string
	SportMonksFootballToken    string
	SportMonksCricketToken     string
	SportMonksTimeout          time.Duration
	SportMonksMaxRetries       int
	SportMonksRetryBackoff     time.Duration
	SportMonksCircuit          CircuitBreaker
	OddsAPIBaseURL             string
	OddsAPIKey                 string
	OddsAPITimeout             time.Duration
	OddsAPICircuit             CircuitBreaker
	FanOutWorkers              int
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	sportMonksTimeout, err := getEnvAsDuration("SPORTMONKS_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	sportMonksMaxRetries, err := getEnvAsInt("SPORTMONKS_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_MAX_RETRIES: %w", err)
	}
	if sportMonksMaxRetries < 0 {
		return Config{}, fmt.Errorf("SPORTMONKS_MAX_RETRIES must be >= 0")
	}
	sportMonksRetryBackoff, err := getEnvAsDuration("SPORTMONKS_RETRY_BACKOFF", "300ms")
	if err != nil {
		return Config{}, err
	}
	sportMonksCircuit, err := loadCircuitBreaker("SPORTMONKS")
	if err != nil {
		return Config{}, err
	}

	oddsAPITimeout, err := getEnvAsDuration("ODDS_API_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	oddsAPICircuit, err := loadCircuitBreaker("ODDS_API")
	if err != nil {
		return Config{}, err
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", "30s")
	if err != nil {
		return Config{}, err
	}
	cacheBackend, err := parseCacheBackend(getEnv("CACHE_BACKEND", CacheBackendMemory))
	if err != nil {
		return Config{}, err
	}
	redisAddr := strings.TrimSpace(getEnv("REDIS_ADDR", ""))
	if cacheEnabled && cacheBackend == CacheBackendRedis && redisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
	}

	archiveEnabled, err := strconv.ParseBool(getEnv("ARCHIVE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ARCHIVE_ENABLED: %w", err)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if archiveEnabled && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when ARCHIVE_ENABLED=true")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	fanOutWorkers, err := getEnvAsInt("FANOUT_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse FANOUT_WORKERS: %w", err)
	}
	if fanOutWorkers < 1 {
		return Config{}, fmt.Errorf("FANOUT_WORKERS must be >= 1")
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "sportsbet-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		APIBaseURL:                 strings.TrimRight(strings.TrimSpace(getEnv("API_BASE_URL", "")), "/"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CacheEnabled:               cacheEnabled,
		CacheTTL:                   cacheTTL,
		CacheBackend:               cacheBackend,
		RedisAddr:                  redisAddr,
		ArchiveEnabled:             archiveEnabled,
		DBURL:                      dbURL,
		DBDisablePreparedBinary:    dbDisablePreparedBinary,
		MetricsEnabled:             metricsEnabled,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		SportMonksFootballURL:      strings.TrimSpace(getEnv("SPORTMONKS_FOOTBALL_URL", "https://api.sportmonks.com/v3/football")),
		SportMonksCricketURL:       strings.TrimSpace(getEnv("SPORTMONKS_CRICKET_URL", "https://cricket.sportmonks.com/api/v2.0")),
		SportMonksFootballToken:    firstEnv("SPORTMONKS_FOOTBALL_TOKEN", "SPORTMONKS_API_KEY"),
		SportMonksCricketToken:     firstEnv("SPORTMONKS_CRICKET_TOKEN"),
		SportMonksTimeout:          sportMonksTimeout,
		SportMonksMaxRetries:       sportMonksMaxRetries,
		SportMonksRetryBackoff:     sportMonksRetryBackoff,
		SportMonksCircuit:          sportMonksCircuit,
		OddsAPIBaseURL:             strings.TrimSpace(getEnv("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4")),
		OddsAPIKey:                 firstEnv("THE_ODDS_API_KEY", "ODDS_API_KEY"),
		OddsAPITimeout:             oddsAPITimeout,
		OddsAPICircuit:             oddsAPICircuit,
		FanOutWorkers:              fanOutWorkers,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// loadCircuitBreaker reads <PREFIX>_CIRCUIT_* variables.
func loadCircuitBreaker(prefix string) (CircuitBreaker, error) {
	enabled, err := strconv.ParseBool(getEnv(prefix+"_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return CircuitBreaker{}, fmt.Errorf("parse %s_CIRCUIT_ENABLED: %w", prefix, err)
	}
	failureCount, err := getEnvAsInt(prefix+"_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return CircuitBreaker{}, fmt.Errorf("parse %s_CIRCUIT_FAILURE_COUNT: %w", prefix, err)
	}
	if failureCount < 1 {
		return CircuitBreaker{}, fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	}
	openTimeout, err := getEnvAsDuration(prefix+"_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return CircuitBreaker{}, err
	}
	halfOpenMaxReq, err := getEnvAsInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return CircuitBreaker{}, fmt.Errorf("parse %s_CIRCUIT_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if halfOpenMaxReq < 1 {
		return CircuitBreaker{}, fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}

	return CircuitBreaker{
		Enabled:        enabled,
		FailureCount:   failureCount,
		OpenTimeout:    openTimeout,
		HalfOpenMaxReq: halfOpenMaxReq,
	}, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseCacheBackend(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case CacheBackendMemory, CacheBackendRedis:
		return value, nil
	default:
		return "", fmt.Errorf("invalid CACHE_BACKEND %q: valid values are %s, %s", v, CacheBackendMemory, CacheBackendRedis)
	}
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
