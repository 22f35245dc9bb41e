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


package main

import (
	"log/slog"
	"time"

	"github.com/poiesic/govdigest/pipeline"
)

// phaseMonitor logs each pipeline phase transition.
type phaseMonitor struct {
	logger *slog.Logger
}

func newPhaseMonitor() *phaseMonitor {
	return &phaseMonitor{logger: slog.Default().With("component", "cli")}
}

func (m *phaseMonitor) StageStarted(name string, state pipeline.State) {
	phase, ok := pipeline.PhaseFor(name)
	if !ok {
		return
	}
	m.logger.Info("phase", "phase", phase.String(), "documents", len(state.Documents))
}

func (m *phaseMonitor) StageFinished(name string, _ pipeline.State, elapsed time.Duration) {
	if name == pipeline.StageSummarize {
		m.logger.Info("phase", "phase", pipeline.PhaseDone.String(), "elapsed", elapsed)
	}
}
