package config

import (
	"encoding/json"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig                 `json:"app"`
	Providers map[string]ProviderConfig `json:"providers"`
	Memory    MemoryConfig              `json:"memory"`
}

type AppConfig struct {
	Name       string `json:"name"`
	Database   string `json:"database"`
	GraphCache string `json:"graph_cache"`
}

type ProviderConfig struct {
	APIKey  string `json:"api_key"`
	Model   string `json:"model"`
	BaseURL string `json:"base_url,omitempty"`
	Enabled bool   `json:"enabled"`
}

type MemoryConfig struct {
	Path string `json:"path"`
}

func LoadConfig(path string) *Config {
	// A missing .env is fine; it only supplies optional overrides.
	_ = godotenv.Load()

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open config file: %v", err)
	}
	defer file.Close()

	var cfg Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config file: %v", err)
	}

	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.App.GraphCache == "" {
		c.App.GraphCache = "discover.gob"
	}
	if c.Memory.Path == "" {
		c.Memory.Path = "history.db"
	}

	// Environment wins over the file so keys never have to live on disk.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		for name, p := range c.Providers {
			if p.APIKey == "" {
				p.APIKey = key
				c.Providers[name] = p
			}
		}
	}
}

// GetDefaultProvider returns the first enabled provider
func (c *Config) GetDefaultProvider() (string, ProviderConfig) {
	for name, p := range c.Providers {
		if p.Enabled {
			return name, p
		}
	}
	return "", ProviderConfig{}
}
