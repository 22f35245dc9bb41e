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

package ai

import "context"

// CompletionRequest is a single chat-style completion call.
type CompletionRequest struct {
	// System is the instruction sent with the system role.
	System string

	// Prompt is the user message.
	Prompt string
}

// Completer generates text from a prompt.
type Completer interface {
	// Complete sends one chat completion request and returns the generated text.
	// Model, temperature and output cap come from the implementation's Config.
	// Returns an error if the service rejects or fails the request
	// (quota, authentication, unknown model, transport).
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// AIProvider aggregates the AI services used by govdigest.
type AIProvider interface {
	// Completer returns the text completion service.
	Completer() Completer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
