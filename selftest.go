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


package govdigest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/govdigest/core"
	"github.com/poiesic/govdigest/pipeline"
)

// SelfTestDaysBack is the window the self-test fetches from the register API.
const SelfTestDaysBack = 30

const (
	selfTestPassed = "API test successful! Running main workflow..."
	selfTestFailed = "API test failed. Please check your connection and try again."
)

var divider = strings.Repeat("-", 50)

// Runner executes the digest workflow. *pipeline.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, initial pipeline.State) (pipeline.State, error)
}

// RunnerFactory builds the workflow once the self-test has passed.
type RunnerFactory func() (Runner, error)

// SelfTest fetches a 30 day window and prints what it found to out. It
// reports true only when at least one document came back. Fetch errors are
// printed, never returned.
func SelfTest(ctx context.Context, fetcher pipeline.Fetcher, out io.Writer) bool {
	docs, err := fetcher.FetchExecutiveOrders(ctx, SelfTestDaysBack)
	if err != nil {
		fmt.Fprintf(out, "Error testing Federal Register API: %v\n", err)
		return false
	}

	fmt.Fprintln(out, "\nFederal Register API Test Results:")
	fmt.Fprintln(out, divider)
	fmt.Fprintf(out, "Found %d executive orders\n", len(docs))

	for i := range docs {
		printDocument(out, &docs[i])
	}

	return len(docs) > 0
}

func printDocument(out io.Writer, doc *core.Document) {
	fmt.Fprintf(out, "\nTitle: %s\n", doc.Title)
	fmt.Fprintf(out, "Document ID: %s\n", doc.Id)
	fmt.Fprintf(out, "Publication Date: %s\n", doc.PublicationDate())
	fmt.Fprintln(out, strings.Repeat("-", 30))
}

// RunWithSelfTest runs the self-test and, only if it passes, builds and runs
// the workflow. The returned bool reports whether the self-test passed; the
// final state is printed to out after a successful run.
func RunWithSelfTest(ctx context.Context, fetcher pipeline.Fetcher, newRunner RunnerFactory, out io.Writer) (pipeline.State, bool, error) {
	if !SelfTest(ctx, fetcher, out) {
		fmt.Fprintf(out, "\n%s\n", selfTestFailed)
		return pipeline.State{}, false, nil
	}

	fmt.Fprintf(out, "\n%s\n\n", selfTestPassed)

	runner, err := newRunner()
	if err != nil {
		return pipeline.State{}, true, err
	}

	state, err := runner.Run(ctx, pipeline.State{})
	if err != nil {
		return state, true, err
	}

	PrintState(out, state)
	return state, true, nil
}

// PrintState writes the final workflow state under a summary heading.
func PrintState(out io.Writer, state pipeline.State) {
	fmt.Fprintln(out, "\nExecutive Orders Summary:")
	fmt.Fprintln(out, divider)
	fmt.Fprintf(out, "Documents: %d\n\n", len(state.Documents))
	fmt.Fprintln(out, strings.TrimRight(state.Summary, "\n"))
}
