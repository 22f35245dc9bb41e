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
package pipeline

import (
	"context"
	"fmt"

	"github.com/poiesic/govdigest/core"
	"github.com/poiesic/govdigest/storage"
)

// Default stage names.
const (
	StageFetch     = "fetch"
	StageStore     = "store"
	StageSummarize = "summarize"
)

// DefaultDaysBack is the look-back window used by NewDefault.
const DefaultDaysBack = 7

// Fetcher retrieves recently published executive orders.
type Fetcher interface {
	FetchExecutiveOrders(ctx context.Context, daysBack int) ([]core.Document, error)
}

// Summarizer renders a digest for a list of documents.
type Summarizer interface {
	Summarize(ctx context.Context, docs []core.Document) (string, error)
}

// FetchStage replaces the state's documents with those published in the
// last daysBack days.
func FetchStage(f Fetcher, daysBack int) StageFunc {
	return func(ctx context.Context, s State) (State, error) {
		docs, err := f.FetchExecutiveOrders(ctx, daysBack)
		if err != nil {
			return s, err
		}
		s.Documents = docs
		return s, nil
	}
}

// StoreStage validates every document and then upserts them.
// The state passes through unchanged.
func StoreStage(repo storage.DocumentRepository) StageFunc {
	return func(ctx context.Context, s State) (State, error) {
		for i := range s.Documents {
			if err := core.ValidateDocument(&s.Documents[i]); err != nil {
				return s, fmt.Errorf("document %d: %w", i, err)
			}
		}
		if len(s.Documents) == 0 {
			return s, nil
		}
		if err := repo.UpsertDocuments(ctx, s.Documents...); err != nil {
			return s, err
		}
		return s, nil
	}
}

// SummarizeStage sets the state's summary from its documents.
func SummarizeStage(sum Summarizer) StageFunc {
	return func(ctx context.Context, s State) (State, error) {
		summary, err := sum.Summarize(ctx, s.Documents)
		if err != nil {
			return s, err
		}
		s.Summary = summary
		return s, nil
	}
}

// DefaultOption configures NewDefault.
type DefaultOption func(*defaultConfig)

type defaultConfig struct {
	daysBack int
	opts     []Option
}

// WithDaysBack sets the fetch window in days.
func WithDaysBack(days int) DefaultOption {
	return func(c *defaultConfig) {
		c.daysBack = days
	}
}

// WithOptions passes pipeline options through NewDefault.
func WithOptions(opts ...Option) DefaultOption {
	return func(c *defaultConfig) {
		c.opts = append(c.opts, opts...)
	}
}

// NewDefault builds the fetch, store, summarize pipeline.
func NewDefault(fetcher Fetcher, repo storage.DocumentRepository, sum Summarizer, opts ...DefaultOption) (*Pipeline, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if repo == nil {
		return nil, ErrStoreRequired
	}
	if sum == nil {
		return nil, ErrSummarizerRequired
	}

	cfg := &defaultConfig{daysBack: DefaultDaysBack}
	for _, opt := range opts {
		opt(cfg)
	}

	return New([]Stage{
		{Name: StageFetch, Run: FetchStage(fetcher, cfg.daysBack)},
		{Name: StageStore, Run: StoreStage(repo)},
		{Name: StageSummarize, Run: SummarizeStage(sum)},
	}, cfg.opts...)
}
