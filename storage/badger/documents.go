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
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/govdigest/core"
	"github.com/poiesic/govdigest/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) *DocumentRepository {
	return &DocumentRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns the database handle.
func (r *DocumentRepository) Close() error {
	return nil
}

// UpsertDocuments writes each document in its own transaction.
func (r *DocumentRepository) UpsertDocuments(ctx context.Context, docs ...core.Document) error {
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.upsert(&docs[i]); err != nil {
			return err
		}
		r.backend.logger.Debug("upserted document", "id", docs[i].Id)
	}
	return nil
}

func (r *DocumentRepository) upsert(doc *core.Document) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDocumentKey(doc.Id)

		old, err := r.readDocument(tx, key)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		stored := &core.StoredDocument{
			Document:   *doc,
			InsertedAt: now,
			UpdatedAt:  now,
		}
		if old != nil {
			stored.InsertedAt = old.InsertedAt
		}

		if err := tx.Set(key, storage.MarshalDocument(stored)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetDocument retrieves a single document by id.
func (r *DocumentRepository) GetDocument(ctx context.Context, id string) (*core.StoredDocument, error) {
	var result *core.StoredDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readDocument(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListDocuments returns every stored document ordered by id.
func (r *DocumentRepository) ListDocuments(ctx context.Context) ([]*core.StoredDocument, error) {
	var results []*core.StoredDocument
	err := r.backend.scanPrefix([]byte(documentPrefix), func(val []byte) error {
		doc, err := storage.UnmarshalDocument(val)
		if err != nil {
			return err
		}
		results = append(results, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// CountDocuments returns the number of stored documents.
func (r *DocumentRepository) CountDocuments(ctx context.Context) (int, error) {
	return r.backend.countPrefix([]byte(documentPrefix))
}

// readDocument returns nil, nil when the key is absent.
func (r *DocumentRepository) readDocument(tx *badger.Txn, key []byte) (*core.StoredDocument, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.StoredDocument
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		doc, unmarshalErr = storage.UnmarshalDocument(val)
		return unmarshalErr
	})
	return doc, err
}
