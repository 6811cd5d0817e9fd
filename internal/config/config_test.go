package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"journal"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	require.Equal(t, "postgres://localhost:5432/firejournal", cfg.DatabaseDSN)
	require.Equal(t, "journal.db", cfg.CredentialDBPath)
	require.Equal(t, "us-east-1", cfg.S3Region)
	require.Equal(t, "firejournal", cfg.S3Bucket)
	require.Equal(t, 10*time.Second, cfg.ClassifierTimeout)
	require.Empty(t, cfg.ClassifierEndpoint)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	withArgs(t, "-d", "postgres://db:5432/x", "-b", "photos", "add", "caption")

	cfg := LoadConfig()

	require.Equal(t, "postgres://db:5432/x", cfg.DatabaseDSN)
	require.Equal(t, "photos", cfg.S3Bucket)
	require.Equal(t, "journal.db", cfg.CredentialDBPath)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"database_dsn": "postgres://json:5432/j",
		"s3_bucket": "from-json",
		"classifier_timeout": "3s"
	}`), 0o600))

	withArgs(t, "-c", path)

	cfg := LoadConfig()

	require.Equal(t, "postgres://json:5432/j", cfg.DatabaseDSN)
	require.Equal(t, "from-json", cfg.S3Bucket)
	require.Equal(t, 3*time.Second, cfg.ClassifierTimeout)
	// Fields not in the file keep their defaults.
	require.Equal(t, "us-east-1", cfg.S3Region)
}

func TestLoadConfig_FlagsBeatJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"s3_bucket": "from-json"}`), 0o600))

	withArgs(t, "-c", path, "-b", "from-flag")

	cfg := LoadConfig()
	require.Equal(t, "from-flag", cfg.S3Bucket)
}
