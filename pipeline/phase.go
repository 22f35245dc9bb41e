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

// Phase identifies how far a run has progressed.
type Phase int

// Phases in run order.
const (
	PhaseFetching Phase = iota
	PhaseStoring
	PhaseSummarizing
	PhaseDone
)

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFetching:
		return "fetching"
	case PhaseStoring:
		return "storing"
	case PhaseSummarizing:
		return "summarizing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// PhaseFor maps a default stage name to its phase.
// Unknown names report false.
func PhaseFor(stageName string) (Phase, bool) {
	switch stageName {
	case StageFetch:
		return PhaseFetching, true
	case StageStore:
		return PhaseStoring, true
	case StageSummarize:
		return PhaseSummarizing, true
	default:
		return 0, false
	}
}
