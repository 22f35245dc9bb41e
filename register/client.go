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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/poiesic/govdigest/core"
)

// Client queries the Federal Register documents endpoint.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger
}

// NewClient creates a Client. A nil config uses DefaultConfig.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    config.BaseURL,
		pageSize:   config.PageSize,
		httpClient: config.HTTPClient,
		now:        config.Now,
		logger:     slog.Default().With("component", "register"),
	}, nil
}

// FetchExecutiveOrders returns the executive orders published in the last
// daysBack days, newest first. Only the first page of results is read.
func (c *Client) FetchExecutiveOrders(ctx context.Context, daysBack int) ([]core.Document, error) {
	if daysBack < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDaysBack, daysBack)
	}

	start, end := Window(c.now(), daysBack)
	reqURL := c.baseURL + "/documents.json?" + c.query(start, end).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("querying register",
		"start", start.Format(core.DateLayout),
		"end", end.Format(core.DateLayout),
		"per_page", c.pageSize)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body for the error message
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, string(snippet))
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode register response: %w", err)
	}

	if data.Count > len(data.Results) {
		c.logger.Warn("register returned more matches than one page; only the first page is used",
			"count", data.Count,
			"fetched", len(data.Results),
			"dropped", data.Count-len(data.Results))
	}

	documents := make([]core.Document, 0, len(data.Results))
	for _, record := range data.Results {
		doc, err := NewDocument(record)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}

	c.logger.Info("fetched executive orders", "count", len(documents), "days_back", daysBack)
	return documents, nil
}

func (c *Client) query(start, end time.Time) url.Values {
	q := url.Values{}
	q.Set("conditions[type][]", "PRESDOCU")
	q.Set("conditions[presidential_document_type][]", "executive_order")
	q.Set("conditions[publication_date][gte]", start.Format(core.DateLayout))
	q.Set("conditions[publication_date][lte]", end.Format(core.DateLayout))
	q.Set("per_page", strconv.Itoa(c.pageSize))
	q.Set("order", "newest")
	return q
}
