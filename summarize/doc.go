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

// Package summarize turns a list of executive orders into a plain-text digest.
//
// Each document produces exactly one completion request, issued in input
// order. The completion text is placed under an "Executive Order: {title}"
// heading and the sections are separated by a blank line. An empty input
// yields NoDocumentsMessage without contacting the model.
//
// Usage:
//
//	s, err := summarize.New(provider.Completer(), summarize.WithProgress(os.Stderr))
//	if err != nil {
//	    return err
//	}
//	digest, err := s.Summarize(ctx, docs)
package summarize
