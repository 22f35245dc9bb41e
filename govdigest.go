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


package govdigest

import (
	"log/slog"

	"github.com/poiesic/govdigest/ai"
	"github.com/poiesic/govdigest/ai/openai"
	"github.com/poiesic/govdigest/pipeline"
	"github.com/poiesic/govdigest/register"
	"github.com/poiesic/govdigest/scrape"
	"github.com/poiesic/govdigest/search"
	"github.com/poiesic/govdigest/storage"
	"github.com/poiesic/govdigest/storage/badger"
	"github.com/poiesic/govdigest/summarize"
)

// Digest wires the register client, the badger store and an optional
// completion provider, and builds the components that use them.
type Digest struct {
	backend     *badger.Backend
	docRepo     storage.DocumentRepository
	articleRepo storage.ArticleRepository
	provider    ai.AIProvider
	fetcher     *register.Client
	logger      *slog.Logger
}

// DigestOption configures a Digest.
type DigestOption func(*digestOptions)

type digestOptions struct {
	aiConfig       *ai.Config
	registerConfig *register.Config
	provider       ai.AIProvider
	inMemory       bool
}

// WithAIConfig sets the completion provider configuration.
func WithAIConfig(config *ai.Config) DigestOption {
	return func(o *digestOptions) {
		o.aiConfig = config
	}
}

// WithRegisterConfig sets the Federal Register client configuration.
func WithRegisterConfig(config *register.Config) DigestOption {
	return func(o *digestOptions) {
		o.registerConfig = config
	}
}

// WithProvider supplies a ready-made provider instead of building one from
// the AI config.
func WithProvider(provider ai.AIProvider) DigestOption {
	return func(o *digestOptions) {
		o.provider = provider
	}
}

// WithoutProvider opens the digest for storage-only work such as search and
// scraping. Summarizing components then fail with ErrNoProvider.
func WithoutProvider() DigestOption {
	return func(o *digestOptions) {
		o.aiConfig = nil
		o.provider = nil
	}
}

// WithInMemory keeps the store in memory; the file path is ignored.
func WithInMemory(inMemory bool) DigestOption {
	return func(o *digestOptions) {
		o.inMemory = inMemory
	}
}

// NewDigest opens the store at filePath and builds the register client and,
// unless WithoutProvider is given, the completion provider.
func NewDigest(filePath string, opts ...DigestOption) (*Digest, error) {
	options := &digestOptions{
		aiConfig:       ai.DefaultConfig(),
		registerConfig: register.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	fetcher, err := register.NewClient(options.registerConfig)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil && options.aiConfig != nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		if provider != nil {
			provider.Close()
		}
		return nil, err
	}

	return &Digest{
		backend:     backend,
		docRepo:     badger.NewDocumentRepository(backend),
		articleRepo: badger.NewArticleRepository(backend),
		provider:    provider,
		fetcher:     fetcher,
		logger:      slog.Default().With("component", "digest"),
	}, nil
}

// Close closes the AI provider, the repositories and the backend, in that order.
func (d *Digest) Close() error {
	// Close AI provider first
	if d.provider != nil {
		if err := d.provider.Close(); err != nil {
			d.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := d.articleRepo.Close(); err != nil {
		d.logger.Error("error closing article repository", "err", err)
		return err
	}
	if err := d.docRepo.Close(); err != nil {
		d.logger.Error("error closing document repository", "err", err)
		return err
	}

	if err := d.backend.Close(); err != nil {
		d.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// DocumentRepository returns the document store.
func (d *Digest) DocumentRepository() storage.DocumentRepository {
	return d.docRepo
}

// ArticleRepository returns the news article store.
func (d *Digest) ArticleRepository() storage.ArticleRepository {
	return d.articleRepo
}

// Fetcher returns the Federal Register client.
func (d *Digest) Fetcher() *register.Client {
	return d.fetcher
}

// OpenProvider builds the completion provider from config on a Digest opened
// without one. The config is validated first.
func (d *Digest) OpenProvider(config *ai.Config) error {
	if d.provider != nil {
		return ErrProviderExists
	}
	provider, err := openai.NewProvider(config)
	if err != nil {
		return err
	}
	d.provider = provider
	return nil
}

// NewSummarizer returns a summarizer over the provider's completer.
func (d *Digest) NewSummarizer(opts ...summarize.Option) (*summarize.Summarizer, error) {
	if d.provider == nil {
		return nil, ErrNoProvider
	}
	return summarize.New(d.provider.Completer(), opts...)
}

// NewPipeline builds the fetch, store, summarize pipeline over a daysBack window.
func (d *Digest) NewPipeline(daysBack int, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	return d.NewPipelineWithSummarizer(daysBack, nil, opts...)
}

// NewPipelineWithSummarizer is NewPipeline with summarizer options, such as
// progress reporting.
func (d *Digest) NewPipelineWithSummarizer(daysBack int, sumOpts []summarize.Option, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	summarizer, err := d.NewSummarizer(sumOpts...)
	if err != nil {
		return nil, err
	}
	return pipeline.NewDefault(d.fetcher, d.docRepo, summarizer,
		pipeline.WithDaysBack(daysBack),
		pipeline.WithOptions(opts...))
}

// NewSearcher returns a keyword searcher over the document store.
func (d *Digest) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(d.docRepo, opts...)
}

// NewScraper creates a news scraper that records handed-out links in seen.
// The caller releases it.
func (d *Digest) NewScraper(seen *scrape.SeenLinks, opts ...scrape.Option) (*scrape.Scraper, error) {
	return scrape.NewScraper(seen, opts...)
}
