package summarize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/poiesic/govdigest/ai"
	"github.com/poiesic/govdigest/ai/mock"
	"github.com/poiesic/govdigest/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDocs(n int) []core.Document {
	docs := make([]core.Document, n)
	for i := range docs {
		docs[i] = core.Document{
			Id:      fmt.Sprintf("2025-%04d", i),
			Title:   fmt.Sprintf("Order %d", i),
			Content: fmt.Sprintf("content %d", i),
		}
	}
	return docs
}

func TestNew_RequiresCompleter(t *testing.T) {
	s, err := New(nil)
	assert.ErrorIs(t, err, ErrCompleterRequired)
	assert.Nil(t, s)
}

func TestSummarize_NoDocuments(t *testing.T) {
	completer := mock.NewMockCompleter()
	s, err := New(completer)
	require.NoError(t, err)

	for _, docs := range [][]core.Document{nil, {}} {
		digest, err := s.Summarize(context.Background(), docs)
		require.NoError(t, err)
		assert.Equal(t, NoDocumentsMessage, digest)
	}
	assert.Equal(t, 0, completer.CallCount())
}

func TestSummarize_OneCallPerDocument(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("%d docs", n), func(t *testing.T) {
			completer := mock.NewMockCompleter()
			s, err := New(completer)
			require.NoError(t, err)

			docs := makeDocs(n)
			digest, err := s.Summarize(context.Background(), docs)
			require.NoError(t, err)

			assert.Equal(t, n, completer.CallCount())
			assert.Equal(t, n, strings.Count(digest, "Executive Order: "))

			requests := completer.Requests()
			for i, req := range requests {
				assert.Equal(t, SystemPrompt, req.System)
				assert.Contains(t, req.Prompt, "Title: "+docs[i].Title)
			}

			// Titles appear in input order
			last := -1
			for _, doc := range docs {
				idx := strings.Index(digest, "Executive Order: "+doc.Title+"\n")
				require.GreaterOrEqual(t, idx, 0)
				assert.Greater(t, idx, last)
				last = idx
			}
		})
	}
}

func TestSummarize_SectionFormat(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(_ context.Context, req ai.CompletionRequest) (string, error) {
		if strings.Contains(req.Prompt, "Title: Order A") {
			return "Summary of A.", nil
		}
		return "Summary of B.", nil
	}
	s, err := New(completer)
	require.NoError(t, err)

	digest, err := s.Summarize(context.Background(), []core.Document{
		{Id: "a", Title: "Order A"},
		{Id: "b", Title: "Order B"},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"Executive Order: Order A\nSummary of A.\n\nExecutive Order: Order B\nSummary of B.\n",
		digest)
}

func TestSummarize_ErrorAborts(t *testing.T) {
	boom := errors.New("rate limited")
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(_ context.Context, req ai.CompletionRequest) (string, error) {
		if strings.Contains(req.Prompt, "Title: Order 1") {
			return "", boom
		}
		return "ok", nil
	}
	s, err := New(completer)
	require.NoError(t, err)

	digest, err := s.Summarize(context.Background(), makeDocs(4))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "2025-0001")
	assert.Empty(t, digest)
	assert.Equal(t, 2, completer.CallCount())
}

func TestSummarize_Progress(t *testing.T) {
	var buf bytes.Buffer
	s, err := New(mock.NewMockCompleter(), WithProgress(&buf))
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), makeDocs(4))
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Progress: 0/4 (0.0%)")
	assert.Contains(t, output, "Progress: 2/4 (50.0%)")
	assert.Contains(t, output, "Progress: 4/4 (100.0%)")
	assert.True(t, strings.HasSuffix(output, "\n"))
}

func TestBuildPrompt(t *testing.T) {
	doc := core.Document{Title: "Securing the Border", Content: "Section 1. Purpose."}
	prompt := BuildPrompt(doc)

	assert.Contains(t, prompt, "Title: Securing the Border")
	assert.Contains(t, prompt, "Content:\nSection 1. Purpose.")
	assert.Contains(t, prompt, "1. The main purpose of the order")
	assert.Contains(t, prompt, "2. Key provisions")
	assert.Contains(t, prompt, "3. Potential impact")
	assert.Contains(t, prompt, "Limit the summary to 3-4 sentences.")
}

func TestBuildPrompt_Truncates(t *testing.T) {
	head := strings.Repeat("é", MaxContentChars)
	doc := core.Document{Title: "Long", Content: head + "TAIL"}

	prompt := BuildPrompt(doc)
	assert.Contains(t, prompt, head)
	assert.NotContains(t, prompt, "TAIL")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"", 5, ""},
		{"abc", 5, "abc"},
		{"abcdef", 3, "abc"},
		{"héllo", 2, "hé"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.n), "truncate(%q, %d)", tt.in, tt.n)
	}
}

func TestProgressTracker(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 2)

	tracker.Increment(1)
	assert.Empty(t, buf.String(), "increment before start is ignored")

	tracker.Start()
	tracker.Increment(5)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "2/2 (100.0%)", "progress is capped at total")
	assert.True(t, strings.HasSuffix(output, "\n"))
}
