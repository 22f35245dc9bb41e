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

package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/govdigest/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyCompletion is returned when the service answers without any choices.
var ErrEmptyCompletion = errors.New("completion returned no choices")

// Completer implements ai.Completer on top of a langchaingo chat model.
type Completer struct {
	client      llms.Model
	model       string
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

func newCompleter(config *ai.Config, clientOpts ...openai.Option) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := append([]openai.Option{
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	}, clientOpts...)
	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client:      client,
		model:       config.Model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
		logger:      slog.Default().With("component", "openai-completer"),
	}, nil
}

// NewCompleter creates a Completer from config.
func NewCompleter(config *ai.Config) (ai.Completer, error) {
	return newCompleter(config)
}

// Complete sends the system and user prompts as one chat request and returns
// the first choice's content.
func (c *Completer) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	content := make([]llms.MessageContent, 0, 2)
	if req.System != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	content = append(content, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	c.logger.Debug("requesting completion", "model", c.model, "prompt_length", len(req.Prompt))

	response, err := c.client.GenerateContent(ctx, content,
		llms.WithModel(c.model),
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		c.logger.Error("failed to generate content", "model", c.model, "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
