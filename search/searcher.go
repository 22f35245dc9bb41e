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


package search

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/poiesic/govdigest/core"
	"github.com/poiesic/govdigest/storage"
)

// DefaultLimit caps results when a query does not set Limit.
const DefaultLimit = 10

// Query selects stored documents.
type Query struct {
	// Text holds the keywords that must all be present.
	Text string

	// Since and Until bound the publication date, inclusive. Zero means open.
	Since time.Time
	Until time.Time

	// Limit caps the number of results. Zero or negative uses DefaultLimit.
	Limit int
}

// Result is one matched document.
type Result struct {
	Document *core.StoredDocument

	// TitleMatch is true when every query term appears in the title.
	TitleMatch bool
}

// Searcher runs keyword queries over stored documents.
type Searcher struct {
	repo   storage.DocumentRepository
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(repo storage.DocumentRepository, opts ...Option) (*Searcher, error) {
	if repo == nil {
		return nil, ErrDocumentRepositoryRequired
	}

	s := &Searcher{
		repo:   repo,
		logger: slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search returns documents matching q, newest first.
func (s *Searcher) Search(ctx context.Context, q Query) ([]Result, error) {
	terms := tokenizeAndFilter(q.Text)
	if len(terms) == 0 && q.Since.IsZero() && q.Until.IsZero() {
		return nil, ErrEmptyQuery
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	docs, err := s.repo.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		result    Result
		published time.Time
	}
	candidates := make([]candidate, 0)

	for _, doc := range docs {
		published, dated := publicationDate(doc)
		if !inRange(published, dated, q.Since, q.Until) {
			continue
		}

		titleWords := wordSet(doc.Title)
		titleMatch := len(terms) > 0 && containsAllWords(titleWords, terms)
		if !titleMatch && len(terms) > 0 {
			all := wordSet(doc.Content)
			for word := range titleWords {
				all[word] = true
			}
			if !containsAllWords(all, terms) {
				continue
			}
		}

		candidates = append(candidates, candidate{
			result:    Result{Document: doc, TitleMatch: titleMatch},
			published: published,
		})
	}

	// Newest first; ties fall back to id for a stable order
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if c := b.published.Compare(a.published); c != 0 {
			return c
		}
		return cmp.Compare(a.result.Document.Id, b.result.Document.Id)
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]Result, len(candidates))
	for i, c := range candidates {
		results[i] = c.result
	}

	s.logger.Debug("search finished",
		"terms", terms,
		"scanned", len(docs),
		"matched", len(results))

	return results, nil
}

func publicationDate(doc *core.StoredDocument) (time.Time, bool) {
	raw := doc.PublicationDate()
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(core.DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// inRange compares calendar dates only. Undated documents never satisfy a bound.
func inRange(published time.Time, dated bool, since, until time.Time) bool {
	if since.IsZero() && until.IsZero() {
		return true
	}
	if !dated {
		return false
	}
	if !since.IsZero() && published.Before(truncateDay(since)) {
		return false
	}
	if !until.IsZero() && published.After(truncateDay(until)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
