package domain

// FeedEntry is the raw item produced by a feed source before resolution.
type FeedEntry struct {
	Journal     string
	Title       string
	Description string
}

// Metadata carries the literature-database record for one PMID.
type Metadata struct {
	Abstract    string
	FirstAuthor string
	LastAuthor  string
}

// Article is the fully enriched record held for the duration of one run.
// The publication type and summary live on the article itself so the
// renderer never has to correlate parallel collections by index.
type Article struct {
	Journal     string
	Title       string
	PMID        string
	FirstAuthor string
	LastAuthor  string
	PubType     PubType
	Summary     string
}
