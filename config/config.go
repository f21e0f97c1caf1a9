package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Session    SessionConfig    `yaml:"session"`
	Push       PushConfig       `yaml:"push"`
	Assistant  AssistantConfig  `yaml:"assistant"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	WebOrigin       string  `yaml:"web_origin"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
}

// DatabaseConfig holds the database connection configuration. A DSN starting
// with "postgres" selects the postgres driver; anything else is treated as a
// SQLite DSN, which defaults to an in-memory database.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// SessionConfig selects and tunes the session store backend.
type SessionConfig struct {
	Backend       string        `yaml:"backend"` // "memory" or "redis"
	TTLMinutes    int           `yaml:"ttl_minutes"`
	TTL           time.Duration `yaml:"-"` // Ignored by YAML parser
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
}

// PushConfig holds the VAPID keys for web push notifications. Push is
// disabled when the key pair is empty.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// AssistantConfig holds the settings for the outbound AI assistant service.
type AssistantConfig struct {
	APIKey         string        `yaml:"api_key"`
	Endpoint       string        `yaml:"endpoint"`
	Model          string        `yaml:"model"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file::memory:?cache=shared"
	}

	if cfg.Session.Backend == "" {
		cfg.Session.Backend = "memory"
	}
	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 720
	}
	cfg.Session.TTL = time.Duration(cfg.Session.TTLMinutes) * time.Minute

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	// Secrets may come from the environment instead of the config file.
	if cfg.Assistant.APIKey == "" {
		cfg.Assistant.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if cfg.Assistant.Endpoint == "" {
		cfg.Assistant.Endpoint = "https://generativelanguage.googleapis.com"
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = "gemini-3.0-flash-latest"
	}
	if cfg.Assistant.TimeoutSeconds <= 0 {
		cfg.Assistant.TimeoutSeconds = 30
	}
	cfg.Assistant.Timeout = time.Duration(cfg.Assistant.TimeoutSeconds) * time.Second

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
