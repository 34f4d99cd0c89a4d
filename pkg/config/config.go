package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/djeday123/storylm/lm"
)

// Config holds the configuration for the entire story model system.
type Config struct {
	Tokenizer  TokenizerConfig  `json:"tokenizer" yaml:"tokenizer"`
	Model      ModelConfig      `json:"model" yaml:"model"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
}

// TokenizerConfig configures BPE training and the persisted artifacts.
type TokenizerConfig struct {
	VocabSize  int    `json:"vocab_size" yaml:"vocab_size"`
	VocabPath  string `json:"vocab_path" yaml:"vocab_path"`
	MergesPath string `json:"merges_path" yaml:"merges_path"`
}

// ModelConfig configures the trigram language model.
type ModelConfig struct {
	Path      string     `json:"path" yaml:"path"`
	Smoothing lm.Weights `json:"smoothing" yaml:"smoothing"`
}

// GenerationConfig holds the sampling defaults.
type GenerationConfig struct {
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Tokenizer: TokenizerConfig{
			VocabSize:  250,
			VocabPath:  "./data/vocab.txt",
			MergesPath: "./data/merges.txt",
		},
		Model: ModelConfig{
			Path:      "./data/model.json",
			Smoothing: lm.DefaultWeights(),
		},
		Generation: GenerationConfig{
			MaxTokens:   200,
			Temperature: 0.7,
		},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the core would refuse at run time, most
// importantly smoothing weights that do not sum to one.
func (c *Config) Validate() error {
	if c.Tokenizer.VocabSize <= 0 {
		return fmt.Errorf("tokenizer vocab_size must be positive, got %d", c.Tokenizer.VocabSize)
	}
	if err := c.Model.Smoothing.Validate(); err != nil {
		return err
	}
	if c.Generation.MaxTokens < 0 {
		return fmt.Errorf("generation max_tokens must be non-negative, got %d", c.Generation.MaxTokens)
	}
	if c.Generation.Temperature <= 0 {
		return fmt.Errorf("generation temperature must be positive, got %g", c.Generation.Temperature)
	}
	return nil
}
