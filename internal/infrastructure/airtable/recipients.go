// Package airtable reads the digest distribution list from an Airtable
// table: one row per recipient, email address in the "Email" column.
package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"journaldigest/internal/config"
	"journaldigest/internal/ports"
)

// Client queries the Airtable records endpoint with a bearer token.
type Client struct {
	baseURL string
	baseID  string
	table   string
	apiKey  string
	http    *http.Client
}

var _ ports.RecipientSource = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.AirtableConfig) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		baseID:  cfg.BaseID,
		table:   cfg.Table,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type recordPage struct {
	Records []struct {
		Fields struct {
			Email string `json:"Email"`
		} `json:"fields"`
	} `json:"records"`
	Offset string `json:"offset"`
}

// Recipients collects every non-empty Email value across all record pages.
// Rows without an address are skipped; a transport or decode failure is
// fatal because an incomplete distribution list must not be sent to.
func (c *Client) Recipients(ctx context.Context) ([]string, error) {
	if c.apiKey == "" || c.baseID == "" || c.table == "" {
		return nil, fmt.Errorf("airtable client misconfigured")
	}

	endpoint := fmt.Sprintf("%s/v0/%s/%s", c.baseURL, c.baseID, url.PathEscape(c.table))

	var emails []string
	offset := ""
	for {
		page, err := c.fetchPage(ctx, endpoint, offset)
		if err != nil {
			return nil, err
		}

		for _, record := range page.Records {
			if email := strings.TrimSpace(record.Fields.Email); email != "" {
				emails = append(emails, email)
			}
		}

		if page.Offset == "" {
			return emails, nil
		}
		offset = page.Offset
	}
}

func (c *Client) fetchPage(ctx context.Context, endpoint, offset string) (recordPage, error) {
	pageURL := endpoint
	if offset != "" {
		pageURL += "?offset=" + url.QueryEscape(offset)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return recordPage{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return recordPage{}, fmt.Errorf("fetch recipients: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return recordPage{}, fmt.Errorf("airtable returned %s", resp.Status)
	}

	var page recordPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return recordPage{}, fmt.Errorf("decode recipients: %w", err)
	}

	return page, nil
}
