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
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/govdigest"
	"github.com/poiesic/govdigest/ai"
	"github.com/poiesic/govdigest/core"
	"github.com/poiesic/govdigest/pipeline"
	"github.com/poiesic/govdigest/register"
	"github.com/poiesic/govdigest/scrape"
	"github.com/poiesic/govdigest/search"
	"github.com/poiesic/govdigest/summarize"
	"github.com/urfave/cli/v2"
)

const apiKeyEnv = "OPENAI_API_KEY"

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "govdigest",
		Usage:  "Summarize recently published executive orders",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file if it exists",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "data/govdigest.db",
			},
			&cli.BoolFlag{
				Name:  "in-memory",
				Usage: "Keep documents in memory only",
			},
			&cli.StringFlag{
				Name:  "register-url",
				Usage: "Federal Register API root",
				Value: register.DefaultBaseURL,
			},
			&cli.StringFlag{
				Name:  "llm-host",
				Usage: "OpenAI-compatible completion service URL",
				Value: ai.DefaultHost,
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "Completion model name",
				Value: ai.DefaultModel,
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Completion service API key",
				EnvVars: []string{apiKeyEnv},
			},
			&cli.IntFlag{
				Name:  "days-back",
				Usage: "Number of days to look back for executive orders",
				Value: pipeline.DefaultDaysBack,
			},
			&cli.IntFlag{
				Name:  "page-size",
				Usage: "Number of register results requested",
				Value: register.DefaultPageSize,
			},
		},
		Before: func(c *cli.Context) error {
			if err := setupLogger(c); err != nil {
				return err
			}
			return loadEnvFile(c.String("env-file"))
		},
		Action: digestCommand,
		Commands: []*cli.Command{
			{
				Name:   "check",
				Usage:  "Test the Federal Register API over the last 30 days",
				Action: checkCommand,
			},
			{
				Name:   "run",
				Usage:  "Fetch, store, and summarize without the API self-test",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Report summarization progress on stderr",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search stored executive orders",
				ArgsUsage: "[keywords...]",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "since",
						Usage: "Earliest publication date (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "until",
						Usage: "Latest publication date (YYYY-MM-DD)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: search.DefaultLimit,
					},
				},
			},
			{
				Name:   "scrape",
				Usage:  "Fetch new White House news articles",
				Action: scrapeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "seen-file",
						Usage: "File recording article links already fetched",
						Value: scrape.DefaultSeenFile,
					},
					&cli.StringFlag{
						Name:  "listing-url",
						Usage: "News listing page",
						Value: scrape.DefaultListingURL,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of article pages fetched concurrently",
						Value: 1,
					},
					&cli.BoolFlag{
						Name:  "store",
						Usage: "Persist fetched articles to the database",
					},
				},
			},
		},
	}
}

// digestCommand runs the API self-test and, if it finds anything, the full workflow.
func digestCommand(c *cli.Context) error {
	ctx := context.Background()

	d, err := openDigest(c, false)
	if err != nil {
		return err
	}
	defer d.Close()

	// The provider is only needed once the self-test has passed.
	newRunner := func() (govdigest.Runner, error) {
		config, err := aiConfig(c)
		if err != nil {
			return nil, err
		}
		if err := d.OpenProvider(config); err != nil {
			return nil, err
		}
		p, err := d.NewPipeline(c.Int("days-back"), pipeline.WithMonitor(newPhaseMonitor()))
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	_, _, err = govdigest.RunWithSelfTest(ctx, d.Fetcher(), newRunner, c.App.Writer)
	return err
}

func checkCommand(c *cli.Context) error {
	d, err := openDigest(c, false)
	if err != nil {
		return err
	}
	defer d.Close()

	if !govdigest.SelfTest(context.Background(), d.Fetcher(), c.App.Writer) {
		return cli.Exit("API test failed. Please check your connection and try again.", 1)
	}
	return nil
}

func runCommand(c *cli.Context) error {
	d, err := openDigest(c, true)
	if err != nil {
		return err
	}
	defer d.Close()

	var sumOpts []summarize.Option
	if c.Bool("progress") {
		sumOpts = append(sumOpts, summarize.WithProgress(os.Stderr))
	}

	p, err := d.NewPipelineWithSummarizer(c.Int("days-back"), sumOpts, pipeline.WithMonitor(newPhaseMonitor()))
	if err != nil {
		return err
	}

	state, err := p.Run(context.Background(), pipeline.State{})
	if err != nil {
		return err
	}

	govdigest.PrintState(c.App.Writer, state)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := search.Query{
		Text:  strings.Join(c.Args().Slice(), " "),
		Limit: c.Int("limit"),
	}

	var err error
	if query.Since, err = parseDate(c.String("since")); err != nil {
		return fmt.Errorf("invalid --since: %w", err)
	}
	if query.Until, err = parseDate(c.String("until")); err != nil {
		return fmt.Errorf("invalid --until: %w", err)
	}

	d, err := openDigest(c, false)
	if err != nil {
		return err
	}
	defer d.Close()

	searcher, err := d.NewSearcher()
	if err != nil {
		return err
	}

	results, err := searcher.Search(context.Background(), query)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Found %d executive orders\n", len(results))
	for i, hit := range results {
		fmt.Fprintf(w, "%d: %s [%s] (%s)\n", i+1, hit.Document.Title, hit.Document.Id, hit.Document.PublicationDate())
	}
	return nil
}

func scrapeCommand(c *cli.Context) error {
	seen, err := scrape.LoadSeenLinks(c.String("seen-file"))
	if err != nil {
		return err
	}

	d, err := openDigest(c, false)
	if err != nil {
		return err
	}
	defer d.Close()

	scraper, err := d.NewScraper(seen,
		scrape.WithListingURL(c.String("listing-url")),
		scrape.WithWorkers(c.Int("workers")))
	if err != nil {
		return err
	}
	defer scraper.Release()

	ctx := context.Background()
	articles, err := scraper.FetchArticles(ctx)
	if err != nil {
		return err
	}

	if c.Bool("store") && len(articles) > 0 {
		if err := d.ArticleRepository().UpsertArticles(ctx, articles...); err != nil {
			return fmt.Errorf("failed to store articles: %w", err)
		}
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Found %d new articles\n", len(articles))
	for _, article := range articles {
		fmt.Fprintf(w, "\nTitle: %s\n", article.Title)
		fmt.Fprintf(w, "URL: %s\n", article.URL)
		fmt.Fprintf(w, "Published: %s\n", article.Metadata[core.MetaPublishedTime])
	}
	return nil
}

// openDigest builds a Digest from the global flags. Without withAI the
// completion provider is skipped, so no API key is needed.
func openDigest(c *cli.Context, withAI bool) (*govdigest.Digest, error) {
	opts := []govdigest.DigestOption{
		govdigest.WithInMemory(c.Bool("in-memory")),
		govdigest.WithRegisterConfig(register.NewConfig(
			register.WithBaseURL(c.String("register-url")),
			register.WithPageSize(c.Int("page-size")),
		)),
	}

	if withAI {
		config, err := aiConfig(c)
		if err != nil {
			return nil, err
		}
		opts = append(opts, govdigest.WithAIConfig(config))
	} else {
		opts = append(opts, govdigest.WithoutProvider())
	}

	d, err := govdigest.NewDigest(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open digest: %w", err)
	}
	return d, nil
}

// aiConfig builds and validates the completion provider configuration from
// the global flags.
func aiConfig(c *cli.Context) (*ai.Config, error) {
	config := ai.NewConfig(
		ai.WithHost(c.String("llm-host")),
		ai.WithModel(c.String("model")),
		ai.WithAPIKey(apiKey(c)),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

// apiKey prefers the flag and falls back to the environment, which may have
// been populated from the env file after flags were parsed.
func apiKey(c *cli.Context) string {
	if key := c.String("api-key"); key != "" {
		return key
	}
	return os.Getenv(apiKeyEnv)
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	slog.Debug("loaded env file", "path", path)
	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(core.DateLayout, s)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
