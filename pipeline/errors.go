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
package pipeline

import "errors"

// Construction errors returned by New and NewDefault.
var (
	ErrNoStages           = errors.New("pipeline requires at least one stage")
	ErrStageNameRequired  = errors.New("stage name is required")
	ErrStageFuncRequired  = errors.New("stage function is required")
	ErrDuplicateStage     = errors.New("duplicate stage name")
	ErrFetcherRequired    = errors.New("fetcher is required")
	ErrStoreRequired      = errors.New("document store is required")
	ErrSummarizerRequired = errors.New("summarizer is required")
)
