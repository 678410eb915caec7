package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Persistence backend selectors for the current-user record.
const (
	PersistenceMemory = "memory"
	PersistenceFile   = "file"
	PersistenceRedis  = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Session     SessionConfig
	Mock        MockConfig
	Persistence PersistenceConfig
	Renderer    RendererConfig
	CORS        CORSConfig
	Log         LogConfig
	Export      ExportConfig
}

// SessionConfig governs the signed session record and bearer validation.
type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	StorageKey string
}

// MockConfig tunes the simulated latency of the in-memory backend.
type MockConfig struct {
	ListDelay   time.Duration
	GetDelay    time.Duration
	WriteDelay  time.Duration
	SubmitDelay time.Duration
	LoginDelay  time.Duration
}

// PersistenceConfig selects where the current-user record lives.
type PersistenceConfig struct {
	Backend string
	FileDir string
	Redis   RedisConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RendererConfig tunes runtime form behaviour.
type RendererConfig struct {
	RedirectDelay time.Duration
	AwaitTimeout  time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportConfig gates submission export endpoints.
type ExportConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Session = SessionConfig{
		Secret:     v.GetString("SESSION_SECRET"),
		TTL:        parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
		StorageKey: v.GetString("SESSION_STORAGE_KEY"),
	}

	cfg.Mock = MockConfig{
		ListDelay:   parseDuration(v.GetString("MOCK_LIST_DELAY"), 500*time.Millisecond),
		GetDelay:    parseDuration(v.GetString("MOCK_GET_DELAY"), 300*time.Millisecond),
		WriteDelay:  parseDuration(v.GetString("MOCK_WRITE_DELAY"), 500*time.Millisecond),
		SubmitDelay: parseDuration(v.GetString("MOCK_SUBMIT_DELAY"), time.Second),
		LoginDelay:  parseDuration(v.GetString("MOCK_LOGIN_DELAY"), time.Second),
	}

	cfg.Persistence = PersistenceConfig{
		Backend: v.GetString("PERSISTENCE_BACKEND"),
		FileDir: v.GetString("PERSISTENCE_FILE_DIR"),
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
	}

	cfg.Renderer = RendererConfig{
		RedirectDelay: parseDuration(v.GetString("RENDERER_REDIRECT_DELAY"), 1500*time.Millisecond),
		AwaitTimeout:  parseDuration(v.GetString("STORE_AWAIT_TIMEOUT"), 10*time.Second),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Export = ExportConfig{Enabled: v.GetBool("ENABLE_EXPORTS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("SESSION_SECRET", "dev_secret")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_STORAGE_KEY", "currentUser")

	v.SetDefault("MOCK_LIST_DELAY", "500ms")
	v.SetDefault("MOCK_GET_DELAY", "300ms")
	v.SetDefault("MOCK_WRITE_DELAY", "500ms")
	v.SetDefault("MOCK_SUBMIT_DELAY", "1s")
	v.SetDefault("MOCK_LOGIN_DELAY", "1s")

	v.SetDefault("PERSISTENCE_BACKEND", PersistenceMemory)
	v.SetDefault("PERSISTENCE_FILE_DIR", "./data")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("RENDERER_REDIRECT_DELAY", "1500ms")
	v.SetDefault("STORE_AWAIT_TIMEOUT", "10s")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_EXPORTS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
