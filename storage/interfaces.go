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
package storage

import (
	"context"

	"github.com/poiesic/govdigest/core"
)

// DocumentRepository provides operations for managing register documents.
// Implementations must be thread-safe.
type DocumentRepository interface {
	// UpsertDocuments writes documents keyed by Id, in order.
	// An existing Id is overwritten, never duplicated.
	// Documents written before a failure stay written.
	UpsertDocuments(ctx context.Context, docs ...core.Document) error

	// GetDocument retrieves a single document by Id.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id string) (*core.StoredDocument, error)

	// ListDocuments returns every stored document ordered by Id.
	ListDocuments(ctx context.Context) ([]*core.StoredDocument, error)

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)

	// Close releases resources held by the repository.
	Close() error
}

// ArticleRepository provides operations for managing scraped news articles.
type ArticleRepository interface {
	// UpsertArticles writes articles keyed by Id with overwrite semantics.
	UpsertArticles(ctx context.Context, articles ...core.NewsArticle) error

	// GetArticle retrieves a single article by Id.
	// Returns ErrNotFound if the article doesn't exist.
	GetArticle(ctx context.Context, id string) (*core.NewsArticle, error)

	// ListArticles returns every stored article ordered by Id.
	ListArticles(ctx context.Context) ([]*core.NewsArticle, error)

	// Close releases resources held by the repository.
	Close() error
}
