package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	// Isolate from the ambient environment.
	for _, key := range []string{
		"JOURNAL_DIGEST_CONFIG", "NCBI_API_KEY", "OPENAI_API_KEY", "OPENAI_MODEL",
		"AIRTABLE_API_KEY", "AIRTABLE_BASE_ID", "AIRTABLE_TABLE_NAME",
		"EMAIL_USER", "EMAIL_PASSWORD", "SMTP_HOST", "SMTP_PORT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if len(cfg.Feeds) != 6 {
		t.Fatalf("expected 6 default feeds, got %d", len(cfg.Feeds))
	}
	if cfg.Pipeline.EntriesPerFeed != 15 {
		t.Fatalf("expected 15 entries per feed, got %d", cfg.Pipeline.EntriesPerFeed)
	}
	if cfg.NCBI.FetchIntervalMS != 340 {
		t.Fatalf("expected 340ms fetch interval, got %d", cfg.NCBI.FetchIntervalMS)
	}
	if cfg.Email.Subject != "Monthly Spine Journal Update" {
		t.Fatalf("unexpected subject: %s", cfg.Email.Subject)
	}
	if cfg.Airtable.APIKey != "" || cfg.OpenAI.APIKey != "" || cfg.NCBI.APIKey != "" {
		t.Fatal("secrets must not have defaults")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("AIRTABLE_API_KEY", "pat-test")
	t.Setenv("EMAIL_USER", "digest@example.org")
	t.Setenv("SMTP_PORT", "2465")

	cfg := Load()

	if cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("OpenAI key override not applied: %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("model override not applied: %q", cfg.OpenAI.Model)
	}
	if cfg.Airtable.APIKey != "pat-test" {
		t.Fatalf("airtable key override not applied: %q", cfg.Airtable.APIKey)
	}
	if cfg.Email.User != "digest@example.org" {
		t.Fatalf("email user override not applied: %q", cfg.Email.User)
	}
	if cfg.Email.Port != 2465 {
		t.Fatalf("smtp port override not applied: %d", cfg.Email.Port)
	}
}

func TestLoadFileMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
logging:
  level: debug
feeds:
  - name: Test Journal
    url: https://example.org/feed.xml
    filtered: true
pipeline:
  workers: 5
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("JOURNAL_DIGEST_CONFIG", path)

	cfg := Load()

	wantFeeds := []FeedConfig{{Name: "Test Journal", URL: "https://example.org/feed.xml", Filtered: true}}
	if diff := cmp.Diff(wantFeeds, cfg.Feeds); diff != "" {
		t.Fatalf("feeds mismatch (-want +got):\n%s", diff)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level not merged: %q", cfg.Logging.Level)
	}
	if cfg.Pipeline.Workers != 5 {
		t.Fatalf("workers not merged: %d", cfg.Pipeline.Workers)
	}
	// Untouched sections keep their defaults.
	if cfg.Pipeline.EntriesPerFeed != 15 {
		t.Fatalf("entries per feed should stay at default, got %d", cfg.Pipeline.EntriesPerFeed)
	}
	if cfg.Email.Host != "smtp.gmail.com" {
		t.Fatalf("email host should stay at default, got %s", cfg.Email.Host)
	}
}
