package ports

import (
	"context"

	"journaldigest/internal/domain"
)

// FeedSource pulls the most recent entries for one journal feed.
type FeedSource interface {
	Fetch(ctx context.Context, journal, feedURL string) ([]domain.FeedEntry, error)
}

// IdentifierResolver maps an article title (plus journal) to a PMID.
// Resolution is best-effort: an empty PMID with a nil error means no match.
type IdentifierResolver interface {
	Resolve(ctx context.Context, title, journal string) (string, error)
}

// MetadataFetcher retrieves abstract and author data for a PMID.
type MetadataFetcher interface {
	Fetch(ctx context.Context, pmid string) (domain.Metadata, error)
}

// Classifier assigns a publication-type label to an abstract.
type Classifier interface {
	Classify(ctx context.Context, abstract string) (domain.PubType, error)
}

// Summarizer produces the two-section summary text for an article.
type Summarizer interface {
	Summarize(ctx context.Context, article domain.Article, abstract string) (string, error)
}

// RecipientSource yields the distribution list for the digest.
type RecipientSource interface {
	Recipients(ctx context.Context) ([]string, error)
}

// Notifier delivers the rendered digest to the recipient list.
type Notifier interface {
	Send(ctx context.Context, subject, htmlBody string, to []string) error
}
