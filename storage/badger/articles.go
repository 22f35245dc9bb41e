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
package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/govdigest/core"
	"github.com/poiesic/govdigest/storage"
)

// ArticleRepository implements storage.ArticleRepository for BadgerDB.
type ArticleRepository struct {
	backend *Backend
}

var _ storage.ArticleRepository = (*ArticleRepository)(nil)

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(backend *Backend) *ArticleRepository {
	return &ArticleRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns the database handle.
func (r *ArticleRepository) Close() error {
	return nil
}

// UpsertArticles writes each article in its own transaction.
func (r *ArticleRepository) UpsertArticles(ctx context.Context, articles ...core.NewsArticle) error {
	for i := range articles {
		if err := ctx.Err(); err != nil {
			return err
		}
		value := storage.MarshalArticle(&articles[i])
		key := makeArticleKey(articles[i].Id)
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			if err := tx.Set(key, value); err != nil {
				return err
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetArticle retrieves a single article by id.
func (r *ArticleRepository) GetArticle(ctx context.Context, id string) (*core.NewsArticle, error) {
	var result *core.NewsArticle
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeArticleKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalArticle(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// ListArticles returns every stored article ordered by id.
func (r *ArticleRepository) ListArticles(ctx context.Context) ([]*core.NewsArticle, error) {
	var results []*core.NewsArticle
	err := r.backend.scanPrefix([]byte(articlePrefix), func(val []byte) error {
		article, err := storage.UnmarshalArticle(val)
		if err != nil {
			return err
		}
		results = append(results, article)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
