package config

import (
	"flag"
	"os"

	"github.com/firejournal/firejournal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   Postgres DSN of the document store
//	-k string   path of the shared credential database
//	-b string   blob-store bucket
//	-s string   blob-store base endpoint (S3-compatible)
//	-m string   classifier HTTP endpoint
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so CLI subcommands and their arguments pass
// through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-b", "-s", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "document store DSN")
	fs.StringVar(&cfg.CredentialDBPath, "k", cfg.CredentialDBPath, "shared credential database path")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "blob store bucket")
	fs.StringVar(&cfg.S3BaseEndpoint, "s", cfg.S3BaseEndpoint, "blob store base endpoint")
	fs.StringVar(&cfg.ClassifierEndpoint, "m", cfg.ClassifierEndpoint, "image classifier endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
