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

// Package ai provides abstractions for the language-model services used by govdigest.
//
// The package defines the Completer interface consumed by the summarizer and
// an AIProvider that aggregates services for convenient initialization.
// Configuration is explicit: nothing reads the environment or keeps global
// client state, so every consumer receives its Completer through a constructor.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs via langchaingo
//   - ai/mock: Test doubles that record requests
//
// Public constructors (openai.NewProvider, openai.NewCompleter) return
// interface types. Test constructors (mock.NewMockCompleter) return concrete
// types so tests can inspect CallCount and Requests.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithAPIKey(os.Getenv("OPENAI_API_KEY")))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	text, err := provider.Completer().Complete(ctx, ai.CompletionRequest{
//	    System: "You are a helpful assistant.",
//	    Prompt: "Summarize this order.",
//	})
package ai
