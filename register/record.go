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
package register

import (
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/govdigest/core"
)

// Window returns the publication-date window ending at now and starting
// daysBack calendar days earlier.
func Window(now time.Time, daysBack int) (start, end time.Time) {
	return now.AddDate(0, 0, -daysBack), now
}

// Record is one entry of the API's results array.
// Pointer fields are nullable upstream.
type Record struct {
	DocumentNumber  string  `json:"document_number"`
	Title           string  `json:"title"`
	Abstract        *string `json:"abstract"`
	BodyHTML        *string `json:"body_html"`
	PublicationDate string  `json:"publication_date"`
}

// searchResponse is the subset of the /documents response we read.
type searchResponse struct {
	Count      int      `json:"count"`
	TotalPages int      `json:"total_pages"`
	Results    []Record `json:"results"`
}

// NewDocument converts a register record into a Document.
// Only a missing document_number is rejected; absent text fields become "".
func NewDocument(r Record) (core.Document, error) {
	if strings.TrimSpace(r.DocumentNumber) == "" {
		return core.Document{}, fmt.Errorf("%w: missing document_number", ErrMalformedRecord)
	}

	return core.Document{
		Id:      r.DocumentNumber,
		Title:   r.Title,
		Content: valueOrEmpty(r.Abstract) + "\n\n" + valueOrEmpty(r.BodyHTML),
		Metadata: map[string]string{
			core.MetaPublicationDate: r.PublicationDate,
			core.MetaDocumentNumber:  r.DocumentNumber,
			core.MetaType:            core.DocumentTypeExecutiveOrder,
		},
	}, nil
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
