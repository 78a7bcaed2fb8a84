package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM struct {
		Provider    string        `yaml:"provider"`
		Model       string        `yaml:"model"`
		APIKey      string        `yaml:"api_key"`
		BaseURL     string        `yaml:"base_url"`
		Temperature float64       `yaml:"temperature"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"llm"`

	Server struct {
		Addr          string   `yaml:"addr"`
		PublicBaseURL string   `yaml:"public_base_url"`
		CORSOrigins   []string `yaml:"cors_origins"`
		RateLimit     float64  `yaml:"rate_limit"`
		RateBurst     int      `yaml:"rate_burst"`
		MCP           bool     `yaml:"mcp"`
	} `yaml:"server"`

	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// DefaultModels per provider.
var DefaultModels = map[string]string{
	"mistral": "mistral-tiny",
	"openai":  "gpt-4o-mini",
	"ollama":  "mistral",
	"mock":    "mock",
}

// LoadConfig reads the YAML file at path. An empty path tries the default
// locations and falls back to built-in defaults when none exists.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		for _, loc := range []string{"config.yaml", "config.yml", "config/config.yaml"} {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	var config Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	mergeWithEnv(&config)
	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.LLM.Provider == "" {
		config.LLM.Provider = "mistral"
	}
	if config.LLM.Model == "" {
		config.LLM.Model = DefaultModels[config.LLM.Provider]
	}

	if config.Server.Addr == "" {
		config.Server.Addr = ":5000"
	}
	if len(config.Server.CORSOrigins) == 0 {
		config.Server.CORSOrigins = []string{"*"}
	}
	if config.Server.RateLimit > 0 && config.Server.RateBurst == 0 {
		config.Server.RateBurst = 1
	}

	if config.Output.Dir == "" {
		config.Output.Dir = "generated_pdfs"
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}
}

// mergeWithEnv lets the environment override the file. The provider's own
// key variable wins over the generic LLM_API_KEY.
func mergeWithEnv(config *Config) {
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}
	if key := os.Getenv("LLM_API_KEY"); key != "" {
		config.LLM.APIKey = key
	}
	switch config.LLM.Provider {
	case "", "mistral":
		if key := os.Getenv("MISTRAL_API_KEY"); key != "" {
			config.LLM.APIKey = key
		}
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			config.LLM.APIKey = key
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Addr = ":" + port
	}
	if dir := os.Getenv("OUTPUT_DIR"); dir != "" {
		config.Output.Dir = dir
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
}
