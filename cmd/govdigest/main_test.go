package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const registerBody = `{"count":2,"results":[
	{"document_number":"2025-0001","title":"Order A","abstract":"About A","body_html":"<p>a</p>","publication_date":"2025-03-02"},
	{"document_number":"2025-0002","title":"Order B","abstract":null,"body_html":"<p>b</p>","publication_date":"2025-03-01"}
]}`

func newRegisterServer(t *testing.T, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newCompletionServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "A short summary."},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// runApp runs the CLI with global args and returns its stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(&out)
	app.ExitErrHandler = func(*cli.Context, error) {}

	base := []string{
		"govdigest",
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--in-memory",
		"--log-level", "error",
	}
	err := app.Run(append(base, args...))
	return out.String(), err
}

func TestSetupLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
		t.Run(level, func(t *testing.T) {
			_, err := runApp(t, "--log-level", level, "search", "--since", "2025-01-01")
			assert.NoError(t, err)
		})
	}

	t.Run("invalid level", func(t *testing.T) {
		_, err := runApp(t, "--log-level", "verbose", "search", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestGlobalFlagDefaults(t *testing.T) {
	app := newApp(&bytes.Buffer{})

	defaults := map[string]string{}
	for _, flag := range app.Flags {
		switch f := flag.(type) {
		case *cli.StringFlag:
			defaults[f.Name] = f.Value
		case *cli.IntFlag:
			defaults[f.Name] = fmt.Sprint(f.Value)
		}
	}

	assert.Equal(t, "info", defaults["log-level"])
	assert.Equal(t, ".env", defaults["env-file"])
	assert.Equal(t, "data/govdigest.db", defaults["db"])
	assert.Equal(t, "https://api.openai.com/v1", defaults["llm-host"])
	assert.Equal(t, "gpt-4-turbo-preview", defaults["model"])
	assert.Equal(t, "https://www.federalregister.gov/api/v1", defaults["register-url"])
	assert.Equal(t, "7", defaults["days-back"])
	assert.Equal(t, "20", defaults["page-size"])
}

func TestCheckCommand(t *testing.T) {
	t.Run("documents found", func(t *testing.T) {
		srv := newRegisterServer(t, registerBody)
		out, err := runApp(t, "--register-url", srv.URL, "check")
		require.NoError(t, err)
		assert.Contains(t, out, "Found 2 executive orders")
		assert.Contains(t, out, "Title: Order A")
		assert.Contains(t, out, "Document ID: 2025-0002")
	})

	t.Run("nothing found", func(t *testing.T) {
		srv := newRegisterServer(t, `{"count":0,"results":[]}`)
		_, err := runApp(t, "--register-url", srv.URL, "check")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API test failed")
	})
}

func TestDigestCommand(t *testing.T) {
	t.Run("runs workflow after self-test", func(t *testing.T) {
		reg := newRegisterServer(t, registerBody)
		llm := newCompletionServer(t)

		out, err := runApp(t,
			"--register-url", reg.URL,
			"--llm-host", llm.URL,
			"--api-key", "sk-test",
		)
		require.NoError(t, err)
		assert.Contains(t, out, "API test successful! Running main workflow...")
		assert.Contains(t, out, "Executive Orders Summary:")
		assert.Contains(t, out, "Executive Order: Order A\nA short summary.")
		assert.Contains(t, out, "Executive Order: Order B\nA short summary.")
	})

	t.Run("self-test failure skips workflow", func(t *testing.T) {
		reg := newRegisterServer(t, `{"count":0,"results":[]}`)

		out, err := runApp(t, "--register-url", reg.URL, "--api-key", "sk-test")
		require.NoError(t, err)
		assert.Contains(t, out, "API test failed. Please check your connection and try again.")
		assert.NotContains(t, out, "Executive Orders Summary:")
	})

	t.Run("self-test runs without api key", func(t *testing.T) {
		t.Setenv(apiKeyEnv, "")
		reg := newRegisterServer(t, `{"count":0,"results":[]}`)

		out, err := runApp(t, "--register-url", reg.URL)
		require.NoError(t, err)
		assert.Contains(t, out, "Federal Register API Test Results:")
		assert.Contains(t, out, "API test failed. Please check your connection and try again.")
	})

	t.Run("api key required once self-test passes", func(t *testing.T) {
		t.Setenv(apiKeyEnv, "")
		reg := newRegisterServer(t, registerBody)

		out, err := runApp(t, "--register-url", reg.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "APIKey")
		assert.Contains(t, out, "Found 2 executive orders")
		assert.Contains(t, out, "API test successful! Running main workflow...")
		assert.NotContains(t, out, "Executive Orders Summary:")
	})
}

func TestRunCommand(t *testing.T) {
	reg := newRegisterServer(t, registerBody)
	llm := newCompletionServer(t)

	out, err := runApp(t,
		"--register-url", reg.URL,
		"--llm-host", llm.URL,
		"--api-key", "sk-test",
		"run",
	)
	require.NoError(t, err)
	assert.NotContains(t, out, "API test")
	assert.Contains(t, out, "Documents: 2")
	assert.Equal(t, 2, strings.Count(out, "Executive Order: "))
}

func TestSearchCommand(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		out, err := runApp(t, "search", "energy")
		require.NoError(t, err)
		assert.Contains(t, out, "Found 0 executive orders")
	})

	t.Run("no terms", func(t *testing.T) {
		_, err := runApp(t, "search")
		assert.Error(t, err)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := runApp(t, "search", "--since", "March 1", "energy")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--since")
	})
}

func TestScrapeCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/news/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<h2><a href="/briefings/one/">One</a></h2>`)
	})
	mux.HandleFunc("/briefings/one/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Briefing One</title>
<meta property="article:published_time" content="2025-03-01T10:00:00Z"></head>
<body><main><p>Text</p></main></body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	seenFile := filepath.Join(t.TempDir(), "data", "read_articles.txt")

	out, err := runApp(t, "scrape", "--seen-file", seenFile, "--listing-url", srv.URL+"/news/", "--store")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 new articles")
	assert.Contains(t, out, "Title: Briefing One")

	raw, err := os.ReadFile(seenFile)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/briefings/one/\n", string(raw))

	out, err = runApp(t, "scrape", "--seen-file", seenFile, "--listing-url", srv.URL+"/news/")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 0 new articles")
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOVDIGEST_TEST_A=from-file\nGOVDIGEST_TEST_B=from-file\n"), 0o644))

	t.Setenv("GOVDIGEST_TEST_A", "")
	os.Unsetenv("GOVDIGEST_TEST_A")
	t.Setenv("GOVDIGEST_TEST_B", "from-env")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("GOVDIGEST_TEST_A"))
	assert.Equal(t, "from-env", os.Getenv("GOVDIGEST_TEST_B"), "existing variables win")

	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	assert.NoError(t, loadEnvFile(""))
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = parseDate("03/01/2025")
	assert.Error(t, err)
}
