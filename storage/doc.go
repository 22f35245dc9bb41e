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

// Package storage provides the storage abstraction layer for govdigest.
//
// This package defines repository interfaces that decouple storage implementation
// from the pipeline stages. The BadgerDB implementation lives in storage/badger.
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return the repository
// interfaces declared here:
//
//	repo, err := badger.NewDocumentRepository(backend)  // returns storage.DocumentRepository
//
// # Upsert Semantics
//
// Documents and articles are keyed by their string id. Writing an id that is
// already present overwrites the stored content and metadata in place; the
// original InsertedAt is preserved and UpdatedAt is refreshed. Each record is
// committed in its own transaction, so a failure partway through a batch
// leaves the earlier records written.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	docs := badger.NewDocumentRepository(backend)
//	err = docs.UpsertDocuments(ctx, fetched...)
//
// # Context Support
//
// All repository methods accept context.Context; a cancelled context stops a
// batch before its next record is written.
package storage
