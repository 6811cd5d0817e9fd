package config

import "time"

// Config holds runtime settings for the FireJournal clients.
type Config struct {
	// DatabaseDSN is the Postgres DSN of the remote document store.
	DatabaseDSN string

	// CredentialDBPath locates the shared SQLite credential store used by
	// both the main app and the share tool.
	CredentialDBPath string

	// Blob store (S3-compatible) settings.
	S3Region       string
	S3BaseEndpoint string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string

	// ClassifierEndpoint is the HTTP endpoint of the image-classification
	// capability; empty disables auto-tagging.
	ClassifierEndpoint string
	ClassifierTimeout  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "postgres://localhost:5432/firejournal"
	c.CredentialDBPath = "journal.db"
	c.S3Region = "us-east-1"
	c.S3Bucket = "firejournal"
	c.ClassifierTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
