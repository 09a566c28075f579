package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// External APIs
	NewsAPI NewsAPIConfig `json:"newsapi"`
	HF      HFConfig      `json:"huggingface"`

	// Recommendation defaults
	Recommend RecommendConfig `json:"recommend"`
}

// NewsAPIConfig holds article-retrieval settings
type NewsAPIConfig struct {
	APIKey   string `json:"api_key,omitempty"`
	Endpoint string `json:"endpoint,omitempty"` // For testing or proxies
}

// HFConfig holds Hugging Face inference settings
type HFConfig struct {
	APIKey         string `json:"api_key,omitempty"`
	BiasModel      string `json:"bias_model,omitempty"`
	SentimentModel string `json:"sentiment_model,omitempty"`
	ZeroShotModel  string `json:"zero_shot_model,omitempty"`
	Endpoint       string `json:"endpoint,omitempty"`
}

// RecommendConfig holds recommendation defaults
type RecommendConfig struct {
	Limit    int    `json:"limit"`
	Language string `json:"language"`
	Country  string `json:"country"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HF: HFConfig{
			BiasModel:      "d4data/bias-detection-model",
			SentimentModel: "tabularisai/multilingual-sentiment-analysis",
			ZeroShotModel:  "facebook/bart-large-mnli",
		},
		Recommend: RecommendConfig{
			Limit:    20,
			Language: "en",
			Country:  "us",
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".newslens", "config.json")
}

// DataDir returns the directory for caches and preference files
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".newslens")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	cfg.applyDefaults()
	cfg.AutoPopulateFromEnv()
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // Restrictive permissions for API keys
}

// AutoPopulateFromEnv fills in API keys from environment variables.
// Environment values never overwrite keys already set in the file.
func (c *Config) AutoPopulateFromEnv() {
	if c.NewsAPI.APIKey == "" {
		if key := os.Getenv("NEWSAPI_KEY"); key != "" {
			c.NewsAPI.APIKey = key
		}
	}
	if c.NewsAPI.APIKey == "" {
		if key := os.Getenv("NEWSAPI_API_KEY"); key != "" {
			c.NewsAPI.APIKey = key
		}
	}
	if c.HF.APIKey == "" {
		if key := os.Getenv("HF_API_KEY"); key != "" {
			c.HF.APIKey = key
		}
	}
}

// applyDefaults fills zero-valued fields after loading an older config file
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.HF.BiasModel == "" {
		c.HF.BiasModel = def.HF.BiasModel
	}
	if c.HF.SentimentModel == "" {
		c.HF.SentimentModel = def.HF.SentimentModel
	}
	if c.HF.ZeroShotModel == "" {
		c.HF.ZeroShotModel = def.HF.ZeroShotModel
	}
	if c.Recommend.Limit == 0 {
		c.Recommend.Limit = def.Recommend.Limit
	}
	if c.Recommend.Language == "" {
		c.Recommend.Language = def.Recommend.Language
	}
	if c.Recommend.Country == "" {
		c.Recommend.Country = def.Recommend.Country
	}
}
