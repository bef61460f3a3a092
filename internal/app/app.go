package app

import (
	"context"
	"log/slog"

	"journaldigest/internal/config"
	"journaldigest/internal/digest"
	"journaldigest/internal/infrastructure/airtable"
	"journaldigest/internal/infrastructure/email"
	"journaldigest/internal/infrastructure/feed"
	"journaldigest/internal/infrastructure/llm"
	"journaldigest/internal/infrastructure/pubmed"
	"journaldigest/internal/logging"
	"journaldigest/internal/usecase"
)

// Application wires configs to the digest pipeline.
type Application struct {
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	source := feed.NewSource(nil, cfg.Pipeline.EntriesPerFeed, baseLogger.With("component", "feed"))
	ncbi := pubmed.NewClient(cfg.NCBI, baseLogger.With("component", "pubmed"))

	completions := llm.NewClient(cfg.OpenAI)
	classifier := llm.NewClassifier(completions)
	summarizer := llm.NewSummarizer(completions)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Feeds:      cfg.Feeds,
		Source:     source,
		Resolver:   ncbi,
		Metadata:   ncbi,
		Classifier: classifier,
		Summarizer: summarizer,
		Recipients: airtable.NewClient(cfg.Airtable),
		Renderer:   digest.NewRenderer(nil),
		Notifier:   email.NewNotifier(cfg.Email),
		Workers:    cfg.Pipeline.Workers,
		Subject:    cfg.Email.Subject,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	return &Application{pipeline: pipeline}
}

// Run executes a single digest cycle and returns its outcome.
func (a *Application) Run(ctx context.Context) error {
	return a.pipeline.Run(ctx)
}
