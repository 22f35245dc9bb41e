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

// Package pipeline runs the digest workflow as an ordered list of stages.
//
// A Pipeline threads a State value through its stages strictly in sequence:
// each stage receives the state produced by the one before it. The first
// failing stage ends the run; the error is returned wrapped with the stage
// name, together with the last state that completed successfully. Side
// effects of stages that already ran (such as stored documents) are kept.
//
// NewDefault assembles the standard fetch, store, summarize line:
//
//	p, err := pipeline.NewDefault(registerClient, docRepo, summarizer,
//	    pipeline.WithDaysBack(7))
//	if err != nil {
//	    return err
//	}
//	final, err := p.Run(ctx, pipeline.State{})
package pipeline
