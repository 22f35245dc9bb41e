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


package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/govdigest/core"
	"golang.org/x/net/html"
)

// DefaultListingURL is the White House news index.
const DefaultListingURL = "https://www.whitehouse.gov/news/"

// Scraper fetches news articles not yet recorded in its SeenLinks.
type Scraper struct {
	listingURL string
	httpClient *http.Client
	seen       *SeenLinks
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper) error

// WithListingURL overrides DefaultListingURL.
func WithListingURL(u string) Option {
	return func(s *Scraper) error {
		if _, err := url.Parse(u); err != nil {
			return fmt.Errorf("invalid listing url: %w", err)
		}
		s.listingURL = u
		return nil
	}
}

// WithHTTPClient sets the client for listing and article requests.
// A nil client selects http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) error {
		if client == nil {
			client = http.DefaultClient
		}
		s.httpClient = client
		return nil
	}
}

// WithWorkers sets how many article pages are fetched concurrently.
// Default is 1.
func WithWorkers(size int) Option {
	return func(s *Scraper) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if s.pool != nil {
			s.pool.Release()
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScraper creates a scraper recording handed-out links in seen.
// Call Release when done.
func NewScraper(seen *SeenLinks, opts ...Option) (*Scraper, error) {
	if seen == nil {
		return nil, ErrSeenLinksRequired
	}

	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	s := &Scraper{
		listingURL: DefaultListingURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		seen:       seen,
		pool:       pool,
		logger:     slog.Default().With("component", "scraper"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	return s, nil
}

// Release releases the worker pool.
// The scraper should not be used after calling Release.
func (s *Scraper) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// FetchArticles returns articles for links on the listing page that have not
// been seen before, in listing order. New links are recorded as seen before
// their pages are fetched.
func (s *Scraper) FetchArticles(ctx context.Context) ([]core.NewsArticle, error) {
	links, err := s.newLinks(ctx)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		s.logger.Info("no new articles")
		return nil, nil
	}

	if err := s.seen.Append(links...); err != nil {
		return nil, err
	}

	articles := make([]core.NewsArticle, len(links))
	errs := make([]error, len(links))

	var wg sync.WaitGroup
	for i, link := range links {
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			articles[i], errs[i] = s.fetchArticle(ctx, link)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("article %s: %w", links[i], err)
		}
	}

	s.logger.Info("fetched articles", "count", len(articles))
	return articles, nil
}

// newLinks returns unseen article links from the listing page, resolved
// against the listing URL and deduplicated.
func (s *Scraper) newLinks(ctx context.Context) ([]string, error) {
	doc, err := s.getHTML(ctx, s.listingURL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(s.listingURL)
	if err != nil {
		return nil, fmt.Errorf("invalid listing url: %w", err)
	}

	var links []string
	found := make(map[string]struct{})
	for _, href := range headingLinks(doc) {
		ref, err := url.Parse(href)
		if err != nil {
			s.logger.Warn("skipping unparseable link", "href", href, "err", err)
			continue
		}
		link := base.ResolveReference(ref).String()
		if _, dup := found[link]; dup || s.seen.Contains(link) {
			continue
		}
		found[link] = struct{}{}
		links = append(links, link)
	}

	s.logger.Debug("listing parsed", "new", len(links))
	return links, nil
}

func (s *Scraper) fetchArticle(ctx context.Context, link string) (core.NewsArticle, error) {
	doc, err := s.getHTML(ctx, link)
	if err != nil {
		return core.NewsArticle{}, err
	}

	title := extractTitle(doc)
	publishedTime := extractMeta(doc, "property", "article:published_time")

	markdown, err := htmltomarkdown.ConvertNode(contentNode(doc))
	if err != nil {
		return core.NewsArticle{}, fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return core.NewsArticle{
		Id:      core.ArticleID(title, publishedTime),
		Title:   title,
		URL:     link,
		Content: strings.TrimSpace(string(markdown)),
		Metadata: map[string]string{
			core.MetaDescription:   extractMeta(doc, "name", "description"),
			core.MetaPublishedTime: publishedTime,
		},
	}, nil
}

func (s *Scraper) getHTML(ctx context.Context, pageURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download HTML: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, pageURL)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}
