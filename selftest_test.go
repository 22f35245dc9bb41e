package govdigest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/poiesic/govdigest/core"
	"github.com/poiesic/govdigest/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	docs     []core.Document
	err      error
	daysBack int
}

func (f *stubFetcher) FetchExecutiveOrders(_ context.Context, daysBack int) ([]core.Document, error) {
	f.daysBack = daysBack
	return f.docs, f.err
}

type countingRunner struct {
	calls int
	state pipeline.State
	err   error
}

func (r *countingRunner) Run(_ context.Context, _ pipeline.State) (pipeline.State, error) {
	r.calls++
	return r.state, r.err
}

// runnerOf returns a factory handing out runner and counting how often it is
// asked for one.
func runnerOf(runner Runner, built *int) RunnerFactory {
	return func() (Runner, error) {
		*built++
		return runner, nil
	}
}

func sampleDocs() []core.Document {
	return []core.Document{{
		Id:       "2025-0001",
		Title:    "Order A",
		Metadata: map[string]string{core.MetaPublicationDate: "2025-03-01"},
	}}
}

func TestSelfTest(t *testing.T) {
	t.Run("documents found", func(t *testing.T) {
		var out bytes.Buffer
		fetcher := &stubFetcher{docs: sampleDocs()}

		assert.True(t, SelfTest(context.Background(), fetcher, &out))
		assert.Equal(t, SelfTestDaysBack, fetcher.daysBack)
		assert.Contains(t, out.String(), "Found 1 executive orders")
		assert.Contains(t, out.String(), "Title: Order A")
		assert.Contains(t, out.String(), "Document ID: 2025-0001")
		assert.Contains(t, out.String(), "Publication Date: 2025-03-01")
	})

	t.Run("nothing found", func(t *testing.T) {
		var out bytes.Buffer
		assert.False(t, SelfTest(context.Background(), &stubFetcher{}, &out))
		assert.Contains(t, out.String(), "Found 0 executive orders")
	})

	t.Run("fetch error is printed", func(t *testing.T) {
		var out bytes.Buffer
		fetcher := &stubFetcher{err: errors.New("dial tcp: connection refused")}

		assert.False(t, SelfTest(context.Background(), fetcher, &out))
		assert.Contains(t, out.String(), "Error testing Federal Register API: dial tcp: connection refused")
	})
}

func TestRunWithSelfTest(t *testing.T) {
	t.Run("empty result skips workflow", func(t *testing.T) {
		var out bytes.Buffer
		runner := &countingRunner{}
		built := 0

		_, passed, err := RunWithSelfTest(context.Background(), &stubFetcher{}, runnerOf(runner, &built), &out)
		require.NoError(t, err)
		assert.False(t, passed)
		assert.Equal(t, 0, built, "workflow is not built when the self-test fails")
		assert.Equal(t, 0, runner.calls)
		assert.Contains(t, out.String(), "API test failed. Please check your connection and try again.")
		assert.NotContains(t, out.String(), "Running main workflow")
	})

	t.Run("fetch error skips workflow", func(t *testing.T) {
		var out bytes.Buffer
		runner := &countingRunner{}
		built := 0

		_, passed, err := RunWithSelfTest(context.Background(), &stubFetcher{err: errors.New("boom")}, runnerOf(runner, &built), &out)
		require.NoError(t, err)
		assert.False(t, passed)
		assert.Equal(t, 0, built)
		assert.Equal(t, 0, runner.calls)
	})

	t.Run("success runs workflow once", func(t *testing.T) {
		var out bytes.Buffer
		runner := &countingRunner{state: pipeline.State{
			Documents: sampleDocs(),
			Summary:   "Executive Order: Order A\nIt does things.\n",
		}}

		built := 0

		state, passed, err := RunWithSelfTest(context.Background(), &stubFetcher{docs: sampleDocs()}, runnerOf(runner, &built), &out)
		require.NoError(t, err)
		assert.True(t, passed)
		assert.Equal(t, 1, built)
		assert.Equal(t, 1, runner.calls)
		assert.Len(t, state.Documents, 1)
		assert.Contains(t, out.String(), "API test successful! Running main workflow...")
		assert.Contains(t, out.String(), "Executive Orders Summary:")
		assert.Contains(t, out.String(), "It does things.")
	})

	t.Run("workflow error is returned", func(t *testing.T) {
		var out bytes.Buffer
		boom := errors.New("stage summarize: model unavailable")
		runner := &countingRunner{err: boom}
		built := 0

		_, passed, err := RunWithSelfTest(context.Background(), &stubFetcher{docs: sampleDocs()}, runnerOf(runner, &built), &out)
		assert.True(t, passed)
		assert.ErrorIs(t, err, boom)
		assert.NotContains(t, out.String(), "Executive Orders Summary:")
	})

	t.Run("build error is returned after the self-test output", func(t *testing.T) {
		var out bytes.Buffer
		boom := errors.New("invalid AI configuration")
		factory := func() (Runner, error) { return nil, boom }

		_, passed, err := RunWithSelfTest(context.Background(), &stubFetcher{docs: sampleDocs()}, factory, &out)
		assert.True(t, passed)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, out.String(), "Found 1 executive orders")
		assert.NotContains(t, out.String(), "Executive Orders Summary:")
	})
}
