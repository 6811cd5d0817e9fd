// Package config loads runtime configuration for the FireJournal clients.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   Postgres DSN of the document store
//	-k string   shared credential database path
//	-b string   blob store bucket
//	-s string   blob store base endpoint
//	-m string   image classifier endpoint
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the classifier timeout, so values
// can be either strings like "10s" or integer nanoseconds:
//
//	{
//	  "database_dsn": "postgres://localhost:5432/firejournal",
//	  "s3_bucket": "firejournal",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "...",
//	  "s3_secret_key": "...",
//	  "classifier_endpoint": "http://127.0.0.1:8081/classify",
//	  "classifier_timeout": "10s"
//	}
//
// Secrets (the S3 key pair) deliberately have no flags; put them in the
// JSON file.
package config
