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
package core

//go:generate go run ../cmd/musgen

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Metadata keys written by the register client.
const (
	MetaPublicationDate = "publication_date"
	MetaDocumentNumber  = "document_number"
	MetaType            = "type"

	// DocumentTypeExecutiveOrder is the value stored under MetaType.
	DocumentTypeExecutiveOrder = "executive_order"

	// DateLayout is the publication_date format.
	DateLayout = "2006-01-02"
)

// Metadata keys written by the news scraper.
const (
	MetaDescription   = "description"
	MetaPublishedTime = "published_time"
)

// Document is a published register document, normalized for storage and summarization.
// Documents are built once by the fetcher and passed by value afterwards.
type Document struct {
	Id       string            // Register document number, unique key in the store
	Title    string            // Human-readable title
	Content  string            // Abstract and body joined by a blank line, never nil
	Metadata map[string]string // At minimum publication_date, document_number and type
}

// PublicationDate returns the publication_date metadata value, or "" if absent.
func (d *Document) PublicationDate() string {
	return d.Metadata[MetaPublicationDate]
}

// StoredDocument is a Document as persisted by a repository.
type StoredDocument struct {
	Document
	InsertedAt time.Time // When the id was first written
	UpdatedAt  time.Time // When the id was last overwritten
}

// NewsArticle represents an article scraped from the news listing.
type NewsArticle struct {
	Id       string
	Title    string
	URL      string
	Content  string            // Markdown rendering of the article body
	Metadata map[string]string // description and published_time
}

// ArticleID generates a deterministic identifier for a scraped article from
// its title and publication timestamp using BLAKE2b-128.
// Identical inputs produce identical IDs in every process.
func ArticleID(title, publishedTime string) string {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write([]byte(strings.TrimSpace(title)))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimSpace(publishedTime)))
	return hex.EncodeToString(h.Sum(nil))
}
