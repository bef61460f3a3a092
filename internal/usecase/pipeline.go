package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"journaldigest/internal/config"
	"journaldigest/internal/domain"
	"journaldigest/internal/ports"
	"journaldigest/internal/relevance"
)

const defaultWorkers = 3

// Renderer turns the collected articles into the digest document.
type Renderer interface {
	Render(articles []domain.Article) (string, error)
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Feeds      []config.FeedConfig
	Source     ports.FeedSource
	Resolver   ports.IdentifierResolver
	Metadata   ports.MetadataFetcher
	Classifier ports.Classifier
	Summarizer ports.Summarizer
	Recipients ports.RecipientSource
	Renderer   Renderer
	Notifier   ports.Notifier
	Relevant   func(title, description string) bool
	Workers    int
	Subject    string
	Logger     *slog.Logger
}

// Pipeline implements the digest workflow: fetch feeds, resolve and enrich
// articles, render the digest, send it.
type Pipeline struct {
	feeds      []config.FeedConfig
	source     ports.FeedSource
	resolver   ports.IdentifierResolver
	metadata   ports.MetadataFetcher
	classifier ports.Classifier
	summarizer ports.Summarizer
	recipients ports.RecipientSource
	renderer   Renderer
	notifier   ports.Notifier
	relevant   func(title, description string) bool
	workers    int
	subject    string
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component. The relevance
// predicate defaults to the spine filter; worker count defaults to 3.
func NewPipeline(deps PipelineDeps) *Pipeline {
	relevant := deps.Relevant
	if relevant == nil {
		relevant = relevance.SpineRelated
	}
	workers := deps.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Pipeline{
		feeds:      deps.Feeds,
		source:     deps.Source,
		resolver:   deps.Resolver,
		metadata:   deps.Metadata,
		classifier: deps.Classifier,
		summarizer: deps.Summarizer,
		recipients: deps.Recipients,
		renderer:   deps.Renderer,
		notifier:   deps.Notifier,
		relevant:   relevant,
		workers:    workers,
		subject:    deps.Subject,
		logger:     deps.Logger,
	}
}

// Run executes one full digest cycle. Failure policy per boundary:
// recipient fetch and send are fatal; a broken feed is logged and skipped;
// an article that cannot be resolved or has no abstract is dropped;
// classification failure falls back to "Other"; summarization failure
// embeds the error text in the digest.
func (p *Pipeline) Run(ctx context.Context) error {
	recipients, err := p.recipients.Recipients(ctx)
	if err != nil {
		return fmt.Errorf("fetch recipients: %w", err)
	}
	if len(recipients) == 0 {
		return fmt.Errorf("recipient list is empty")
	}

	entries := p.collectEntries(ctx)
	articles := p.enrichAll(ctx, entries)

	if len(articles) == 0 {
		p.info("no articles with abstracts found, skipping send")
		return nil
	}

	body, err := p.renderer.Render(articles)
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}

	if err := p.notifier.Send(ctx, p.subject, body, recipients); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	p.info("digest sent", "articles", len(articles), "recipients", len(recipients))
	return nil
}

// collectEntries walks the configured feeds in order. A failing feed does
// not abort the run; the remaining journals still make the digest.
func (p *Pipeline) collectEntries(ctx context.Context) []domain.FeedEntry {
	var entries []domain.FeedEntry
	for _, feed := range p.feeds {
		fetched, err := p.source.Fetch(ctx, feed.Name, feed.URL)
		if err != nil {
			p.warn("skipping feed", "journal", feed.Name, "error", err)
			continue
		}

		for _, entry := range fetched {
			if feed.Filtered && !p.relevant(entry.Title, entry.Description) {
				continue
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// enrichAll fans the per-article work out over a bounded worker group.
// Each worker writes only its own slot of the pre-sized slice, so the
// compacted result keeps feed order without any post-hoc sorting.
func (p *Pipeline) enrichAll(ctx context.Context, entries []domain.FeedEntry) []domain.Article {
	slots := make([]*domain.Article, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, entry := range entries {
		g.Go(func() error {
			slots[i] = p.enrich(ctx, entry)
			return nil
		})
	}
	// Workers never return errors; failures degrade per article.
	_ = g.Wait()

	articles := make([]domain.Article, 0, len(entries))
	for _, slot := range slots {
		if slot != nil {
			articles = append(articles, *slot)
		}
	}
	return articles
}

// enrich runs one entry through resolution, metadata fetch, classification
// and summarization. A nil result drops the entry from the digest.
func (p *Pipeline) enrich(ctx context.Context, entry domain.FeedEntry) *domain.Article {
	pmid, err := p.resolver.Resolve(ctx, entry.Title, entry.Journal)
	if err != nil || pmid == "" {
		p.debug("no identifier", "title", entry.Title, "error", err)
		return nil
	}

	meta, err := p.metadata.Fetch(ctx, pmid)
	if err != nil {
		p.warn("metadata fetch failed", "pmid", pmid, "error", err)
		return nil
	}
	if meta.Abstract == "" {
		p.debug("no abstract", "pmid", pmid, "title", entry.Title)
		return nil
	}

	article := domain.Article{
		Journal:     entry.Journal,
		Title:       entry.Title,
		PMID:        pmid,
		FirstAuthor: meta.FirstAuthor,
		LastAuthor:  meta.LastAuthor,
	}

	pubType, err := p.classifier.Classify(ctx, meta.Abstract)
	if err != nil {
		p.warn("classification failed", "pmid", pmid, "error", err)
		pubType = domain.TypeOther
	}
	article.PubType = pubType

	summary, err := p.summarizer.Summarize(ctx, article, meta.Abstract)
	if err != nil {
		p.warn("summarization failed", "pmid", pmid, "error", err)
		summary = fmt.Sprintf("Error generating summary and context: %v", err)
	}
	article.Summary = summary

	return &article
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
