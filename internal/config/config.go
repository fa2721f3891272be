package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`

	Database struct {
		// Driver is "sqlite3", "postgres", or "memory" for the seeded
		// in-memory fallback.
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	OpenAI struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`

	Auth struct {
		Enabled bool   `yaml:"enabled"`
		Secret  string `yaml:"secret"`
	} `yaml:"auth"`

	Receiving struct {
		AllowOverReceipt bool `yaml:"allow_over_receipt"`
	} `yaml:"receiving"`
}

// Load reads the yaml config file and applies environment overrides for the
// secrets that should not live on disk.
func Load(path string) (*Config, error) {
	cfg := defaults()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No file is fine: defaults plus env.
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	cfg.Database.Driver = "memory"
	cfg.Database.DSN = "logisnap.db"
	cfg.OpenAI.Model = "gpt-4o-mini"
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("LOGISNAP_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("LOGISNAP_AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
}
