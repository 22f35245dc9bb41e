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
	"fmt"

	"github.com/poiesic/govdigest/core"
)

const (
	// MaxContentChars bounds the document content sent to the model, in runes.
	MaxContentChars = 8000

	// SystemPrompt frames every completion request.
	SystemPrompt = "You are a helpful assistant that summarizes executive orders clearly and concisely."

	promptTemplate = `Please provide a concise summary of the following executive order:
Title: %s

Content:
%s

Please include:
1. The main purpose of the order
2. Key provisions
3. Potential impact
Limit the summary to 3-4 sentences.`
)

// BuildPrompt renders the user prompt for a single document.
func BuildPrompt(doc core.Document) string {
	return fmt.Sprintf(promptTemplate, doc.Title, truncate(doc.Content, MaxContentChars))
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
