// Package cli implements the journal command-line client: login, add, edit,
// show, delete, list/search, and a live watch over the entry collection.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/firejournal/firejournal/internal/blobstore"
	"github.com/firejournal/firejournal/internal/classify"
	"github.com/firejournal/firejournal/internal/config"
	"github.com/firejournal/firejournal/internal/credstore"
	"github.com/firejournal/firejournal/internal/docstore"
	"github.com/firejournal/firejournal/internal/journal"
	"github.com/firejournal/firejournal/internal/logging"
	"github.com/firejournal/firejournal/internal/metadata"
	"github.com/firejournal/firejournal/internal/pipeline"
	"github.com/firejournal/firejournal/internal/syncengine"
	"github.com/firejournal/firejournal/internal/tags"
)

// App wires the pipeline components behind the CLI commands.
type App struct {
	config *config.Config
	log    logging.Logger

	docs    docstore.Store
	pipe    *pipeline.Pipeline
	creds   credstore.Repository
	credsDB *sql.DB

	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the full dependency graph from configuration: Postgres
// document store, S3 blob store, optional HTTP classifier, EXIF reader,
// credential store.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	docs, err := docstore.NewPostgresStore(ctx, cfg.DatabaseDSN, log)
	if err != nil {
		return nil, fmt.Errorf("document store: %w", err)
	}

	blobs, err := blobstore.NewS3Store(ctx, blobstore.S3Options{
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3BaseEndpoint,
		Bucket:       cfg.S3Bucket,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("blob store: %w", err)
	}

	var classifier classify.Classifier
	if cfg.ClassifierEndpoint != "" {
		classifier = classify.NewHTTPClassifier(cfg.ClassifierEndpoint, cfg.ClassifierTimeout)
	}

	credsDB, err := credstore.Open(ctx, cfg.CredentialDBPath)
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}

	engine := syncengine.New(docs, blobs, log)
	pipe := pipeline.New(
		metadata.NewExtractor(metadata.NewExifReader(), log),
		tags.NewDeriver(classifier, log),
		engine,
		log,
	)

	return &App{
		config:  cfg,
		log:     log,
		docs:    docs,
		pipe:    pipe,
		creds:   credstore.NewSQLiteRepository(credsDB),
		credsDB: credsDB,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Close releases the credential database.
func (a *App) Close() error {
	return a.credsDB.Close()
}

// configFlags lists flags (all value-taking) that the config layer owns and
// the command dispatcher must skip.
var configFlags = map[string]struct{}{
	"-d": {}, "-k": {}, "-b": {}, "-s": {}, "-m": {}, "-c": {}, "-config": {},
}

// SplitCommand strips config-layer flags from args and returns the
// subcommand name plus its arguments.
func SplitCommand(args []string) (string, []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := configFlags[name]; ok && !strings.Contains(arg, "=") {
				i++ // skip the flag's value too
			}
			continue
		}
		return arg, args[i+1:]
	}
	return "", nil
}

// Run dispatches a single CLI invocation.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd, rest := SplitCommand(args)

	switch cmd {
	case "login":
		return a.Login(ctx)
	case "add":
		return a.Add(ctx, rest)
	case "edit":
		return a.Edit(ctx, rest)
	case "delete":
		return a.Delete(ctx, rest)
	case "show":
		return a.Show(ctx, rest)
	case "list", "search":
		return a.List(ctx, rest)
	case "watch":
		return a.Watch(ctx, rest)
	case "", "help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, `Usage: journal [flags] <command>

Commands:
  login                store shared credentials for both entry points
  add    [-i img] [-f] <caption...>   submit a new entry
  edit   <id> [-i img] [-f] <caption...>   edit an entry
  show   [-o file] <id>   display an entry and fetch its image
  delete <id>          delete an entry
  list   [query]       list entries, optionally filtered
  watch  [query]       follow the live entry feed`)
}

// userID loads the signed-in user from the credential store.
func (a *App) userID(ctx context.Context) (string, error) {
	creds, err := credstore.Load(ctx, a.creds)
	if err != nil {
		return "", fmt.Errorf("not logged in: %w", err)
	}
	return creds.UserID, nil
}

// findEntry looks an entry up by id in the user's collection.
func (a *App) findEntry(ctx context.Context, userID, id string) (journal.Entry, error) {
	entries, err := a.docs.List(ctx, userID)
	if err != nil {
		return journal.Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return journal.Entry{}, fmt.Errorf("entry %s: not found", id)
}

// printEntries renders entries one per line with the same fields search
// matches against.
func (a *App) printEntries(entries []journal.Entry) {
	for _, e := range entries {
		date := ""
		if e.CreatedAt != nil {
			date = e.CreatedAt.Format("Jan 2, 2006")
		}
		fav := " "
		if e.IsFavorite {
			fav = "*"
		}
		tagList := append(append([]string{}, e.UserTags...), e.AutoTags...)
		fmt.Fprintf(a.out, "%s %s  %-12s  %s", fav, e.ID, date, e.Caption)
		if len(tagList) > 0 {
			fmt.Fprintf(a.out, "  [%s]", strings.Join(tagList, " "))
		}
		fmt.Fprintln(a.out)
	}
}
