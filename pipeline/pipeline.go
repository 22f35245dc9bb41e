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

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/govdigest/core"
)

// State is the value threaded through the stages of a run.
type State struct {
	// Documents is set by the fetch stage and read by later stages.
	Documents []core.Document

	// Summary is empty until the summarize stage runs.
	Summary string
}

// StageFunc transforms the state produced by the previous stage.
type StageFunc func(ctx context.Context, s State) (State, error)

// Stage is a named step of a pipeline.
type Stage struct {
	Name string
	Run  StageFunc
}

// Pipeline executes stages strictly in order.
type Pipeline struct {
	stages  []Stage
	monitor Monitor
	logger  *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "pipeline")
		return nil
	}
}

// WithMonitor attaches a monitor. A nil monitor restores the no-op default.
func WithMonitor(monitor Monitor) Option {
	return func(p *Pipeline) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		p.monitor = monitor
		return nil
	}
}

// New creates a pipeline from stages, which run in the given order.
func New(stages []Stage, opts ...Option) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}

	seen := make(map[string]struct{}, len(stages))
	for i, stage := range stages {
		if stage.Name == "" {
			return nil, fmt.Errorf("%w: stage %d", ErrStageNameRequired, i)
		}
		if stage.Run == nil {
			return nil, fmt.Errorf("%w: %s", ErrStageFuncRequired, stage.Name)
		}
		if _, dup := seen[stage.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStage, stage.Name)
		}
		seen[stage.Name] = struct{}{}
	}

	p := &Pipeline{
		stages:  append([]Stage(nil), stages...),
		monitor: &noopMonitor{},
		logger:  slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, stage := range p.stages {
		names[i] = stage.Name
	}
	return names
}

// Run executes every stage in order starting from initial. On failure it
// returns the last successful state and the error wrapped with the stage name.
func (p *Pipeline) Run(ctx context.Context, initial State) (State, error) {
	state := initial
	runStart := time.Now()
	logger := p.logger.With("run", uuid.NewString())

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return state, fmt.Errorf("stage %s: %w", stage.Name, err)
		}

		p.monitor.StageStarted(stage.Name, state)
		logger.Debug("stage started", "stage", stage.Name, "documents", len(state.Documents))

		start := time.Now()
		next, err := stage.Run(ctx, state)
		if err != nil {
			logger.Error("stage failed", "stage", stage.Name, "err", err)
			return state, fmt.Errorf("stage %s: %w", stage.Name, err)
		}
		elapsed := time.Since(start)

		state = next
		p.monitor.StageFinished(stage.Name, state, elapsed)
		logger.Info("stage finished",
			"stage", stage.Name,
			"documents", len(state.Documents),
			"elapsed", elapsed)
	}

	logger.Info("pipeline finished", "stages", len(p.stages), "elapsed", time.Since(runStart))
	return state, nil
}
