package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"journaldigest/internal/domain"
	"journaldigest/internal/ports"
)

const (
	defaultLimit = 15
	userAgent    = "journaldigest/1.0"

	// placeholderTitle stands in for entries whose feed item has no title.
	placeholderTitle = "No Title"
)

// Source fetches and parses RSS/Atom feeds via gofeed, yielding at most
// limit entries per feed in feed order.
type Source struct {
	parser *gofeed.Parser
	limit  int
	logger *slog.Logger
}

var _ ports.FeedSource = (*Source)(nil)

// NewSource wires an HTTP client into a feed parser; limit <= 0 defaults
// to 15 entries per feed.
func NewSource(client *http.Client, limit int, log *slog.Logger) *Source {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent

	return &Source{parser: parser, limit: limit, logger: log}
}

// Fetch downloads the feed and returns up to the configured number of the
// most recent entries, stamped with the journal display name.
func (s *Source) Fetch(ctx context.Context, journal, feedURL string) ([]domain.FeedEntry, error) {
	parsed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", journal, err)
	}

	items := parsed.Items
	if len(items) > s.limit {
		items = items[:s.limit]
	}

	entries := make([]domain.FeedEntry, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = placeholderTitle
		}

		description := item.Description
		if description == "" {
			description = item.Content
		}

		entries = append(entries, domain.FeedEntry{
			Journal:     journal,
			Title:       title,
			Description: stripHTML(description),
		})
	}

	s.debug("feed fetched", "journal", journal, "entries", len(entries))
	return entries, nil
}

// stripHTML reduces a feed description to plain text. Several journal
// feeds ship their descriptions as HTML fragments; keyword filtering and
// rendering both want text.
func stripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}

func (s *Source) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
