package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Questions struct {
		TTL string `yaml:"ttl"`
	} `yaml:"questions"`
	Session struct {
		IdleTimeout string `yaml:"idleTimeout"`
		SweepEvery  string `yaml:"sweepEvery"`
	} `yaml:"session"`
	Upstream struct {
		BaseURL       string `yaml:"baseURL"`
		QuestionsPath string `yaml:"questionsPath"`
		CreatePath    string `yaml:"createPath"`
		RegisterPath  string `yaml:"registerPath"`
		LoginPath     string `yaml:"loginPath"`
		Timeout       string `yaml:"timeout"`
	} `yaml:"upstream"`
	Auth struct {
		JWTSecret  string `yaml:"jwtSecret"`
		JWTExpiry  string `yaml:"jwtExpiry"`
		BcryptCost int    `yaml:"bcryptCost"`
		// RequireForAuthoring puts the MCQ authoring routes behind a bearer
		// token issued by the local login. Ignored in upstream mode.
		RequireForAuthoring bool `yaml:"requireForAuthoring"`
	} `yaml:"auth"`
}

// Load reads YAML config from path, then applies environment overrides.
// A missing file is not an error; defaults and the environment still apply.
// A .env file in the working directory is loaded first if present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Postgres.URL, "DATABASE_URL")
	setString(&cfg.Upstream.BaseURL, "UPSTREAM_BASE_URL")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Auth.BcryptCost = n
		}
	}
	if v := os.Getenv("AUTH_REQUIRE_FOR_AUTHORING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Auth.RequireForAuthoring = b
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = parseOrigins(v)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "pretty"
	}
	if cfg.Upstream.QuestionsPath == "" {
		cfg.Upstream.QuestionsPath = "/apis/v2/medical/getmcqs"
	}
	if cfg.Upstream.CreatePath == "" {
		cfg.Upstream.CreatePath = "/apis/v2/medical/createmcqs"
	}
	if cfg.Upstream.RegisterPath == "" {
		cfg.Upstream.RegisterPath = "/apis/v1/usersdata/register"
	}
	if cfg.Upstream.LoginPath == "" {
		cfg.Upstream.LoginPath = "/apis/v1/usersdata/login"
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "change-this-to-a-secure-random-string"
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = 10
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func parseOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
