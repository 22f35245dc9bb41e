// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package ai

import (
	"errors"
	"strings"
)

// Default completion settings.
const (
	// DefaultHost is the OpenAI API base URL.
	DefaultHost = "https://api.openai.com/v1"
	// DefaultModel is the chat model used for summaries.
	DefaultModel = "gpt-4-turbo-preview"
	// DefaultTemperature is the sampling temperature.
	DefaultTemperature = 0.3
	// DefaultMaxTokens is the completion token limit per request.
	DefaultMaxTokens = 600
)

// Config holds settings for the completion service.
type Config struct {
	// Host is the base URL for the completion service API.
	// Example: "https://api.openai.com/v1", or "http://localhost:11434/v1" for a
	// local OpenAI-compatible server
	Host string

	// Model is the model identifier used for completions.
	// Example: "gpt-4-turbo-preview", "gpt-4o-mini", "qwen2.5:3b"
	Model string

	// APIKey authenticates against the completion service.
	// Local servers that don't check it accept any non-empty value such as "none".
	APIKey string

	// Temperature is the sampling temperature sent with every request.
	// Default: 0.3
	Temperature float64

	// MaxTokens caps the length of each generated completion.
	// Default: 600
	MaxTokens int
}

// ConfigOption configures a Config.
type ConfigOption func(*Config)

// WithHost sets the completion service base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the completion model.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

// WithMaxTokens sets the per-completion output cap.
func WithMaxTokens(maxTokens int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = maxTokens
	}
}

// DefaultConfig returns a Config pointing at the OpenAI API.
// The APIKey is left empty; callers read it from the environment.
func DefaultConfig() *Config {
	return &Config{
		Host:        DefaultHost,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// NewConfig returns DefaultConfig with opts applied.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures Host ends with /v1 for OpenAI-compatible APIs.
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		// Remove trailing slash if present before adding /v1
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate normalizes the config and checks required fields.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.MaxTokens < 1 {
		return errors.New("ai config: MaxTokens must be positive")
	}
	return nil
}
