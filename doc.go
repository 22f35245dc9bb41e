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


// Package govdigest fetches recently published executive orders, stores them,
// and produces a plain-text digest with one model-written summary per order.
//
// Digest wires the pieces together: a badger-backed document store, the
// Federal Register client, and an OpenAI-compatible completion provider.
//
//	d, err := govdigest.NewDigest("data/govdigest.db",
//	    govdigest.WithAIConfig(ai.NewConfig(ai.WithAPIKey(key))))
//	if err != nil {
//	    return err
//	}
//	defer d.Close()
//
//	p, err := d.NewPipeline(7)
//	if err != nil {
//	    return err
//	}
//	state, err := p.Run(ctx, pipeline.State{})
package govdigest
