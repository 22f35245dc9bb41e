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
package register

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public Federal Register API root.
	DefaultBaseURL = "https://www.federalregister.gov/api/v1"

	// DefaultPageSize matches the API page requested per run.
	DefaultPageSize = 20

	// maxPageSize is the largest per_page value the API accepts.
	maxPageSize = 1000
)

// Config holds settings for the register client.
type Config struct {
	// BaseURL is the API root, without the /documents suffix.
	BaseURL string

	// PageSize is the number of results requested. Only one page is fetched.
	PageSize int

	// HTTPClient performs requests. Default: a client with a 30s timeout.
	HTTPClient *http.Client

	// Now supplies the current time for window calculation. Default: time.Now.
	Now func() time.Time
}

// ConfigOption configures a Config.
type ConfigOption func(*Config)

// WithBaseURL sets the register API base URL, e.g. https://www.federalregister.gov/api/v1.
func WithBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithPageSize sets per_page on the documents request.
func WithPageSize(size int) ConfigOption {
	return func(c *Config) {
		c.PageSize = size
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) ConfigOption {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) ConfigOption {
	return func(c *Config) {
		c.Now = now
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    DefaultBaseURL,
		PageSize:   DefaultPageSize,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Now:        time.Now,
	}
}

// NewConfig creates a Config with defaults and applies the given options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize strips trailing slashes from BaseURL and fills nil collaborators.
func (c *Config) Normalize() {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Validate normalizes the config and checks that it is usable.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	c.Normalize()

	if c.BaseURL == "" {
		return errors.New("register config: BaseURL is required")
	}
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		return errors.New("register config: PageSize must be between 1 and 1000")
	}
	return nil
}
