package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	keyAddr             = "addr"
	keyDatabaseURL      = "database_url"
	keyJWTSecret        = "jwt_secret"
	keyLLMAPIKey        = "llm_api_key"
	keyLLMModel         = "llm_model"
	keyLLMTimeout       = "llm_timeout"
	keyRedisAddr        = "redis_addr"
	keyRedisPassword    = "redis_password"
	keyRedisDB          = "redis_db"
	keyQuestionCacheTTL = "question_cache_ttl"
	keyAccessTokenTTL   = "access_token_ttl"
	keyRefreshTokenTTL  = "refresh_token_ttl"
	keyLogLevel         = "log_level"
	keyConfigFile       = "config_file"
)

var requiredKeys = []string{keyDatabaseURL, keyJWTSecret, keyLLMAPIKey, keyLLMModel}

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	LogLevel    string

	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	QuestionCacheTTL time.Duration

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// MissingKeysError lists every required setting that had no value.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return "missing required configuration: " + strings.Join(e.Keys, ", ")
}

// Load reads an optional .env file, an optional CONFIG_FILE and then the
// process environment, which wins over both.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault(keyAddr, ":8080")
	v.SetDefault(keyLLMTimeout, "30s")
	v.SetDefault(keyRedisDB, 0)
	v.SetDefault(keyQuestionCacheTTL, "5m")
	v.SetDefault(keyAccessTokenTTL, "120m")
	v.SetDefault(keyRefreshTokenTTL, "168h")
	v.SetDefault(keyLogLevel, "info")

	if path := v.GetString(keyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, strings.ToUpper(key))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingKeysError{Keys: missing}
	}

	cfg := &Config{
		Addr:             v.GetString(keyAddr),
		DatabaseURL:      v.GetString(keyDatabaseURL),
		JWTSecret:        v.GetString(keyJWTSecret),
		LogLevel:         v.GetString(keyLogLevel),
		LLMAPIKey:        v.GetString(keyLLMAPIKey),
		LLMModel:         v.GetString(keyLLMModel),
		LLMTimeout:       v.GetDuration(keyLLMTimeout),
		RedisAddr:        v.GetString(keyRedisAddr),
		RedisPassword:    v.GetString(keyRedisPassword),
		RedisDB:          v.GetInt(keyRedisDB),
		QuestionCacheTTL: v.GetDuration(keyQuestionCacheTTL),
		AccessTokenTTL:   v.GetDuration(keyAccessTokenTTL),
		RefreshTokenTTL:  v.GetDuration(keyRefreshTokenTTL),
	}

	if cfg.LLMTimeout <= 0 {
		return nil, fmt.Errorf("LLM_TIMEOUT must be positive, got %q", v.GetString(keyLLMTimeout))
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive durations")
	}
	return cfg, nil
}
