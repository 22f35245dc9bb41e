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
	"fmt"

	"github.com/poiesic/govdigest/core"
)

// MarshalDocument serializes a StoredDocument to bytes.
func MarshalDocument(doc *core.StoredDocument) []byte {
	buf := make([]byte, core.StoredDocumentMUS.Size(*doc))
	core.StoredDocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a StoredDocument from bytes.
func UnmarshalDocument(data []byte) (*core.StoredDocument, error) {
	doc, _, err := core.StoredDocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &doc, nil
}

// MarshalArticle serializes a NewsArticle to bytes.
func MarshalArticle(article *core.NewsArticle) []byte {
	buf := make([]byte, core.NewsArticleMUS.Size(*article))
	core.NewsArticleMUS.Marshal(*article, buf)
	return buf
}

// UnmarshalArticle deserializes a NewsArticle from bytes.
func UnmarshalArticle(data []byte) (*core.NewsArticle, error) {
	article, _, err := core.NewsArticleMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &article, nil
}
