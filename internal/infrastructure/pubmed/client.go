// Package pubmed talks to the NCBI E-utilities endpoints: esearch to map a
// title to a PMID, efetch to pull abstract and author data.
package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"journaldigest/internal/config"
	"journaldigest/internal/domain"
	"journaldigest/internal/ports"
)

const defaultFetchInterval = 340 * time.Millisecond

// Client is a reusable E-utilities client. A single rate limiter gates
// every outbound call, so the NCBI request budget holds no matter how many
// pipeline workers share the client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ ports.IdentifierResolver = (*Client)(nil)
var _ ports.MetadataFetcher = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.NCBIConfig, log *slog.Logger) *Client {
	interval := time.Duration(cfg.FetchIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = defaultFetchInterval
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  log,
	}
}

type esearchEnvelope struct {
	IDs []string `xml:"IdList>Id"`
}

// Resolve searches PubMed by title, restricted to the journal when one is
// given, and returns the first matching PMID. Resolution is best-effort:
// transport and parse failures yield an empty PMID, not an error. Titles
// are not unique, so the first hit can belong to a different article.
func (c *Client) Resolve(ctx context.Context, title, journal string) (string, error) {
	term := title
	if journal != "" {
		term += " AND " + journal + "[journal]"
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", term)
	params.Set("retmode", "xml")

	var result esearchEnvelope
	if err := c.get(ctx, "/esearch.fcgi", params, &result); err != nil {
		c.debug("esearch failed", "title", title, "error", err)
		return "", nil
	}

	if len(result.IDs) == 0 {
		return "", nil
	}
	return result.IDs[0], nil
}

type efetchAuthor struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
	Initials string `xml:"Initials"`
}

type efetchEnvelope struct {
	Abstracts []string       `xml:"PubmedArticle>MedlineCitation>Article>Abstract>AbstractText"`
	Authors   []efetchAuthor `xml:"PubmedArticle>MedlineCitation>Article>AuthorList>Author"`
}

// Fetch retrieves the structured record for a PMID. The abstract is the
// concatenation of every non-empty abstract section; a record whose
// sections are all empty reports no abstract at all. The last author is
// only reported when the paper has at least two authors, so single-author
// papers never show the same name twice.
func (c *Client) Fetch(ctx context.Context, pmid string) (domain.Metadata, error) {
	if pmid == "" {
		return domain.Metadata{}, nil
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", pmid)
	params.Set("retmode", "xml")

	var result efetchEnvelope
	if err := c.get(ctx, "/efetch.fcgi", params, &result); err != nil {
		return domain.Metadata{}, fmt.Errorf("efetch %s: %w", pmid, err)
	}

	sections := make([]string, 0, len(result.Abstracts))
	for _, section := range result.Abstracts {
		if text := strings.TrimSpace(section); text != "" {
			sections = append(sections, text)
		}
	}
	if len(sections) == 0 {
		return domain.Metadata{}, nil
	}

	meta := domain.Metadata{Abstract: strings.Join(sections, " ")}

	authors := make([]string, 0, len(result.Authors))
	for _, a := range result.Authors {
		last := strings.TrimSpace(a.LastName)
		if last == "" {
			continue
		}
		if initials := strings.TrimSpace(a.Initials); initials != "" {
			last += " " + initials
		}
		authors = append(authors, last)
	}

	if len(authors) > 0 {
		meta.FirstAuthor = authors[0]
	}
	if len(authors) > 1 {
		meta.LastAuthor = authors[len(authors)-1]
	}

	return meta, nil
}

// get waits on the shared rate gate, performs the request, and decodes the
// XML payload into v.
func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate gate: %w", err)
	}

	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := xml.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
