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
package summarize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/poiesic/govdigest/ai"
	"github.com/poiesic/govdigest/core"
)

// NoDocumentsMessage is the digest returned when there is nothing to summarize.
const NoDocumentsMessage = "No new executive orders found in the specified time period."

const sectionHeading = "Executive Order: "

// Summarizer produces a digest with one completion per document.
type Summarizer struct {
	completer ai.Completer
	progress  io.Writer
	logger    *slog.Logger
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithProgress writes a progress line to w as documents are summarized.
func WithProgress(w io.Writer) Option {
	return func(s *Summarizer) {
		s.progress = w
	}
}

// WithLogger replaces the default component logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Summarizer) {
		s.logger = logger
	}
}

// New creates a Summarizer over completer.
// Returns ErrCompleterRequired if completer is nil.
func New(completer ai.Completer, opts ...Option) (*Summarizer, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	s := &Summarizer{
		completer: completer,
		logger:    slog.Default().With("component", "summarizer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Summarize returns the digest for docs. The first failed completion aborts
// the whole digest.
func (s *Summarizer) Summarize(ctx context.Context, docs []core.Document) (string, error) {
	if len(docs) == 0 {
		return NoDocumentsMessage, nil
	}

	var tracker *ProgressTracker
	if s.progress != nil {
		tracker = NewProgressTracker(s.progress, len(docs))
		tracker.Start()
		defer tracker.Finish()
	}

	sections := make([]string, 0, len(docs))
	for _, doc := range docs {
		text, err := s.completer.Complete(ctx, ai.CompletionRequest{
			System: SystemPrompt,
			Prompt: BuildPrompt(doc),
		})
		if err != nil {
			s.logger.Error("summary failed", "id", doc.Id, "err", err)
			return "", fmt.Errorf("summarize document %s: %w", doc.Id, err)
		}

		sections = append(sections, sectionHeading+doc.Title+"\n"+text+"\n")
		s.logger.Debug("summarized document", "id", doc.Id, "chars", len(text))

		if tracker != nil {
			tracker.Increment(1)
		}
	}

	return strings.Join(sections, "\n"), nil
}
