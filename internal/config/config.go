package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv      = "JOURNAL_DIGEST_CONFIG"
	ncbiAPIKeyEnv      = "NCBI_API_KEY"
	openAIAPIKeyEnv    = "OPENAI_API_KEY"
	openAIModelEnv     = "OPENAI_MODEL"
	airtableAPIKeyEnv  = "AIRTABLE_API_KEY"
	airtableBaseIDEnv  = "AIRTABLE_BASE_ID"
	airtableTableEnv   = "AIRTABLE_TABLE_NAME"
	emailUserEnv       = "EMAIL_USER"
	emailPasswordEnv   = "EMAIL_PASSWORD"
	smtpHostEnv        = "SMTP_HOST"
	smtpPortEnv        = "SMTP_PORT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Feeds    []FeedConfig   `yaml:"feeds"`
	NCBI     NCBIConfig     `yaml:"ncbi"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Airtable AirtableConfig `yaml:"airtable"`
	Email    EmailConfig    `yaml:"email"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FeedConfig describes a single journal feed. Filtered feeds run every
// entry through the spine-relevance predicate before enrichment.
type FeedConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Filtered bool   `yaml:"filtered"`
}

// NCBIConfig describes the literature search/fetch endpoints.
// FetchIntervalMS is the minimum spacing between E-utilities calls; the
// default 340ms keeps the run under NCBI's 3-requests-per-second policy.
type NCBIConfig struct {
	BaseURL         string `yaml:"baseUrl"`
	APIKey          string `yaml:"apiKey"`
	FetchIntervalMS int    `yaml:"fetchIntervalMs"`
}

// OpenAIConfig defines how to contact the completion API.
type OpenAIConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// AirtableConfig locates the recipient table.
type AirtableConfig struct {
	BaseURL string `yaml:"baseUrl"`
	BaseID  string `yaml:"baseId"`
	Table   string `yaml:"table"`
	APIKey  string `yaml:"apiKey"`
}

// EmailConfig wires the outbound SMTP transport.
type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Subject  string `yaml:"subject"`
}

// PipelineConfig bounds per-feed intake and enrichment fan-out.
type PipelineConfig struct {
	EntriesPerFeed int `yaml:"entriesPerFeed"`
	Workers        int `yaml:"workers"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. Secrets are never defaulted; they must arrive via environment
// or config file.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Feeds) == 0 {
		cfg.Feeds = defaultConfig().Feeds
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(ncbiAPIKeyEnv); v != "" {
		c.NCBI.APIKey = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}

	if v := os.Getenv(airtableAPIKeyEnv); v != "" {
		c.Airtable.APIKey = v
	}
	if v := os.Getenv(airtableBaseIDEnv); v != "" {
		c.Airtable.BaseID = v
	}
	if v := os.Getenv(airtableTableEnv); v != "" {
		c.Airtable.Table = v
	}

	if v := os.Getenv(emailUserEnv); v != "" {
		c.Email.User = v
	}
	if v := os.Getenv(emailPasswordEnv); v != "" {
		c.Email.Password = v
	}
	if v := os.Getenv(smtpHostEnv); v != "" {
		c.Email.Host = v
	}
	if v := os.Getenv(smtpPortEnv); v != "" {
		if port, err := strconv.Atoi(v); err != nil {
			log.Printf("config: invalid %s=%q, keeping %d", smtpPortEnv, v, c.Email.Port)
		} else {
			c.Email.Port = port
		}
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if len(override.Feeds) > 0 {
		base.Feeds = override.Feeds
	}

	if override.NCBI.BaseURL != "" {
		base.NCBI.BaseURL = override.NCBI.BaseURL
	}
	if override.NCBI.APIKey != "" {
		base.NCBI.APIKey = override.NCBI.APIKey
	}
	if override.NCBI.FetchIntervalMS > 0 {
		base.NCBI.FetchIntervalMS = override.NCBI.FetchIntervalMS
	}

	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}

	if override.Airtable.BaseURL != "" {
		base.Airtable.BaseURL = override.Airtable.BaseURL
	}
	if override.Airtable.BaseID != "" {
		base.Airtable.BaseID = override.Airtable.BaseID
	}
	if override.Airtable.Table != "" {
		base.Airtable.Table = override.Airtable.Table
	}
	if override.Airtable.APIKey != "" {
		base.Airtable.APIKey = override.Airtable.APIKey
	}

	if override.Email.Host != "" {
		base.Email.Host = override.Email.Host
	}
	if override.Email.Port != 0 {
		base.Email.Port = override.Email.Port
	}
	if override.Email.User != "" {
		base.Email.User = override.Email.User
	}
	if override.Email.Password != "" {
		base.Email.Password = override.Email.Password
	}
	if override.Email.Subject != "" {
		base.Email.Subject = override.Email.Subject
	}

	if override.Pipeline.EntriesPerFeed > 0 {
		base.Pipeline.EntriesPerFeed = override.Pipeline.EntriesPerFeed
	}
	if override.Pipeline.Workers > 0 {
		base.Pipeline.Workers = override.Pipeline.Workers
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Feeds: []FeedConfig{
			{Name: "Interventional Pain Medicine", URL: "https://rss.sciencedirect.com/publication/science/27725944"},
			{Name: "Regional Anesthesia & Pain Medicine", URL: "https://rapm.bmj.com/rss/current.xml"},
			{Name: "Pain Medicine", URL: "https://academic.oup.com/rss/site_5414/3275.xml"},
			{Name: "Pain Practice", URL: "https://onlinelibrary.wiley.com/action/showFeed?jc=15332500&type=etoc&feed=rss"},
			{Name: "Pain", URL: "https://journals.lww.com/pain/_layouts/15/OAKS.Journals/feed.aspx?FeedType=CurrentIssue"},
			{Name: "Journal of Pain Research", URL: "https://www.tandfonline.com/feed/rss/djpr20"},
		},
		NCBI: NCBIConfig{
			BaseURL:         "https://eutils.ncbi.nlm.nih.gov/entrez/eutils",
			FetchIntervalMS: 340,
		},
		OpenAI: OpenAIConfig{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o",
		},
		Airtable: AirtableConfig{
			BaseURL: "https://api.airtable.com",
			Table:   "spine_registry_data",
		},
		Email: EmailConfig{
			Host:    "smtp.gmail.com",
			Port:    465,
			Subject: "Monthly Spine Journal Update",
		},
		Pipeline: PipelineConfig{
			EntriesPerFeed: 15,
			Workers:        3,
		},
	}
}
