package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/govdigest/ai"
	"github.com/poiesic/govdigest/ai/mock"
	"github.com/poiesic/govdigest/core"
	"github.com/poiesic/govdigest/storage"
	"github.com/poiesic/govdigest/storage/badger"
	"github.com/poiesic/govdigest/summarize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	docs     []core.Document
	err      error
	daysBack []int
}

func (f *stubFetcher) FetchExecutiveOrders(_ context.Context, daysBack int) ([]core.Document, error) {
	f.daysBack = append(f.daysBack, daysBack)
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

type recordingMonitor struct {
	mu       sync.Mutex
	started  []string
	finished []string
}

func (m *recordingMonitor) StageStarted(name string, _ State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = append(m.started, name)
}

func (m *recordingMonitor) StageFinished(name string, _ State, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = append(m.finished, name)
}

func setupRepository(t *testing.T) storage.DocumentRepository {
	docRepo, articleRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		articleRepo.Close()
		docRepo.Close()
		backend.Close()
	})
	return docRepo
}

func orders() []core.Document {
	return []core.Document{
		{
			Id:       "2025-0001",
			Title:    "Order A",
			Content:  "Abstract A\n\n<p>Body A</p>",
			Metadata: map[string]string{core.MetaPublicationDate: "2025-03-01"},
		},
		{
			Id:       "2025-0002",
			Title:    "Order B",
			Content:  "\n\n<p>Body B</p>",
			Metadata: map[string]string{core.MetaPublicationDate: "2025-03-02"},
		},
	}
}

func TestNew_Validation(t *testing.T) {
	noop := func(_ context.Context, s State) (State, error) { return s, nil }

	tests := []struct {
		name    string
		stages  []Stage
		wantErr error
	}{
		{name: "empty", stages: nil, wantErr: ErrNoStages},
		{name: "unnamed", stages: []Stage{{Run: noop}}, wantErr: ErrStageNameRequired},
		{name: "nil func", stages: []Stage{{Name: "a"}}, wantErr: ErrStageFuncRequired},
		{name: "duplicate", stages: []Stage{{Name: "a", Run: noop}, {Name: "a", Run: noop}}, wantErr: ErrDuplicateStage},
		{name: "valid", stages: []Stage{{Name: "a", Run: noop}, {Name: "b", Run: noop}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.stages)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, p.Stages())
		})
	}
}

func TestNewDefault_RequiresCollaborators(t *testing.T) {
	repo := setupRepository(t)
	sum, err := summarize.New(mock.NewMockCompleter())
	require.NoError(t, err)
	fetcher := &stubFetcher{}

	_, err = NewDefault(nil, repo, sum)
	assert.ErrorIs(t, err, ErrFetcherRequired)

	_, err = NewDefault(fetcher, nil, sum)
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewDefault(fetcher, repo, nil)
	assert.ErrorIs(t, err, ErrSummarizerRequired)

	p, err := NewDefault(fetcher, repo, sum)
	require.NoError(t, err)
	assert.Equal(t, []string{StageFetch, StageStore, StageSummarize}, p.Stages())
}

func TestRun_RunsStagesInOrder(t *testing.T) {
	var calls []string
	stage := func(name string) Stage {
		return Stage{Name: name, Run: func(_ context.Context, s State) (State, error) {
			calls = append(calls, name)
			s.Summary += name
			return s, nil
		}}
	}

	monitor := &recordingMonitor{}
	p, err := New([]Stage{stage("one"), stage("two"), stage("three")}, WithMonitor(monitor))
	require.NoError(t, err)

	final, err := p.Run(context.Background(), State{})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, calls)
	assert.Equal(t, "onetwothree", final.Summary)
	assert.Equal(t, calls, monitor.started)
	assert.Equal(t, calls, monitor.finished)
}

func TestRun_EndToEnd(t *testing.T) {
	repo := setupRepository(t)
	completer := mock.NewMockCompleter()
	sum, err := summarize.New(completer)
	require.NoError(t, err)
	fetcher := &stubFetcher{docs: orders()}

	p, err := NewDefault(fetcher, repo, sum, WithDaysBack(14))
	require.NoError(t, err)

	final, err := p.Run(context.Background(), State{})
	require.NoError(t, err)

	assert.Equal(t, []int{14}, fetcher.daysBack)
	require.Len(t, final.Documents, 2)
	assert.Equal(t, 2, completer.CallCount())

	idxA := strings.Index(final.Summary, "Executive Order: Order A\n")
	idxB := strings.Index(final.Summary, "Executive Order: Order B\n")
	require.GreaterOrEqual(t, idxA, 0)
	require.Greater(t, idxB, idxA)

	// Each heading is followed by non-empty summary text
	for _, section := range strings.Split(strings.TrimSuffix(final.Summary, "\n"), "\n\n") {
		lines := strings.SplitN(section, "\n", 2)
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "Executive Order: "))
		assert.NotEmpty(t, strings.TrimSpace(lines[1]))
	}

	count, err := repo.CountDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRun_RepeatedRunsOverwriteByID(t *testing.T) {
	repo := setupRepository(t)
	sum, err := summarize.New(mock.NewMockCompleter())
	require.NoError(t, err)
	fetcher := &stubFetcher{docs: orders()}

	p, err := NewDefault(fetcher, repo, sum)
	require.NoError(t, err)

	for range 2 {
		_, err = p.Run(context.Background(), State{})
		require.NoError(t, err)
	}

	count, err := repo.CountDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRun_NoDocuments(t *testing.T) {
	repo := setupRepository(t)
	completer := mock.NewMockCompleter()
	sum, err := summarize.New(completer)
	require.NoError(t, err)

	p, err := NewDefault(&stubFetcher{}, repo, sum)
	require.NoError(t, err)

	final, err := p.Run(context.Background(), State{})
	require.NoError(t, err)
	assert.Empty(t, final.Documents)
	assert.Equal(t, summarize.NoDocumentsMessage, final.Summary)
	assert.Equal(t, 0, completer.CallCount())
}

func TestRun_FetchFailureStopsPipeline(t *testing.T) {
	repo := setupRepository(t)
	completer := mock.NewMockCompleter()
	sum, err := summarize.New(completer)
	require.NoError(t, err)
	boom := errors.New("connection refused")

	p, err := NewDefault(&stubFetcher{err: boom}, repo, sum)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), State{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "stage fetch")
	assert.Equal(t, 0, completer.CallCount())

	count, err := repo.CountDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRun_SummarizeFailureKeepsStoredDocuments(t *testing.T) {
	repo := setupRepository(t)
	completer := mock.NewMockCompleter()
	boom := errors.New("model unavailable")
	completer.CompleteFunc = func(context.Context, ai.CompletionRequest) (string, error) { return "", boom }
	sum, err := summarize.New(completer)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	p, err := NewDefault(&stubFetcher{docs: orders()}, repo, sum, WithOptions(WithMonitor(monitor)))
	require.NoError(t, err)

	last, err := p.Run(context.Background(), State{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "stage summarize")
	assert.Len(t, last.Documents, 2)
	assert.Empty(t, last.Summary)
	assert.Equal(t, []string{StageFetch, StageStore}, monitor.finished)

	count, err := repo.CountDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRun_InvalidDocumentFailsStore(t *testing.T) {
	repo := setupRepository(t)
	sum, err := summarize.New(mock.NewMockCompleter())
	require.NoError(t, err)
	docs := append(orders(), core.Document{Title: "Order C"})

	p, err := NewDefault(&stubFetcher{docs: docs}, repo, sum)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), State{})
	assert.ErrorIs(t, err, core.ErrEmptyID)
	assert.Contains(t, err.Error(), "stage store")

	count, err := repo.CountDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count, "validation happens before any write")
}

func TestRun_UntitledDocumentIsStored(t *testing.T) {
	repo := setupRepository(t)
	sum, err := summarize.New(mock.NewMockCompleter())
	require.NoError(t, err)
	docs := append(orders(), core.Document{Id: "2025-0003", Content: "\n\n"})

	p, err := NewDefault(&stubFetcher{docs: docs}, repo, sum)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), State{})
	require.NoError(t, err)

	stored, err := repo.GetDocument(context.Background(), "2025-0003")
	require.NoError(t, err)
	assert.Empty(t, stored.Title)
}

func TestRun_CancelledContext(t *testing.T) {
	fetcher := &stubFetcher{docs: orders()}
	p, err := New([]Stage{{Name: StageFetch, Run: FetchStage(fetcher, 7)}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Run(ctx, State{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fetcher.daysBack)
}

func TestPhase(t *testing.T) {
	tests := []struct {
		stage string
		phase Phase
		name  string
	}{
		{StageFetch, PhaseFetching, "fetching"},
		{StageStore, PhaseStoring, "storing"},
		{StageSummarize, PhaseSummarizing, "summarizing"},
	}
	for _, tt := range tests {
		phase, ok := PhaseFor(tt.stage)
		assert.True(t, ok)
		assert.Equal(t, tt.phase, phase)
		assert.Equal(t, tt.name, phase.String())
	}

	_, ok := PhaseFor("unknown")
	assert.False(t, ok)
	assert.Equal(t, "done", PhaseDone.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
