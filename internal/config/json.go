package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/firejournal/firejournal/internal/flagx"
	"github.com/firejournal/firejournal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the classifier timeout either as a
// string like "10s" or as integer nanoseconds.
type JsonConfig struct {
	DatabaseDSN        string         `json:"database_dsn"`
	CredentialDBPath   string         `json:"credential_db_path"`
	S3Region           string         `json:"s3_region"`
	S3BaseEndpoint     string         `json:"s3_base_endpoint"`
	S3Bucket           string         `json:"s3_bucket"`
	S3AccessKey        string         `json:"s3_access_key"`
	S3SecretKey        string         `json:"s3_secret_key"`
	ClassifierEndpoint string         `json:"classifier_endpoint"`
	ClassifierTimeout  timex.Duration `json:"classifier_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c/-config flags. Empty JSON fields leave the current value in place.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.DatabaseDSN, jc.DatabaseDSN)
	overlay(&cfg.CredentialDBPath, jc.CredentialDBPath)
	overlay(&cfg.S3Region, jc.S3Region)
	overlay(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	overlay(&cfg.S3Bucket, jc.S3Bucket)
	overlay(&cfg.S3AccessKey, jc.S3AccessKey)
	overlay(&cfg.S3SecretKey, jc.S3SecretKey)
	overlay(&cfg.ClassifierEndpoint, jc.ClassifierEndpoint)
	if jc.ClassifierTimeout.Duration != 0 {
		cfg.ClassifierTimeout = time.Duration(jc.ClassifierTimeout.Duration)
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
