// The share command is the share-extension analog: it posts a caption and
// an optional image straight into the journal using the credentials the main
// app stored.
//
// Usage: share [-i image.jpg] <caption...>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/firejournal/firejournal/internal/blobstore"
	"github.com/firejournal/firejournal/internal/config"
	"github.com/firejournal/firejournal/internal/credstore"
	"github.com/firejournal/firejournal/internal/docstore"
	"github.com/firejournal/firejournal/internal/flagx"
	"github.com/firejournal/firejournal/internal/logging"
	"github.com/firejournal/firejournal/internal/metadata"
	"github.com/firejournal/firejournal/internal/pipeline"
	"github.com/firejournal/firejournal/internal/share"
	"github.com/firejournal/firejournal/internal/syncengine"
	"github.com/firejournal/firejournal/internal/tags"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	args := flagx.FilterArgs(os.Args[1:], []string{"-i"})
	fs := flag.NewFlagSet("share", flag.ContinueOnError)
	imagePath := fs.String("i", "", "path of an image to share")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("%v", err)
	}
	caption := strings.Join(captionArgs(os.Args[1:]), " ")

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	docs, err := docstore.NewPostgresStore(ctx, cfg.DatabaseDSN, logger)
	if err != nil {
		log.Fatalf("document store: %v", err)
	}
	defer docs.Close()

	blobs, err := blobstore.NewS3Store(ctx, blobstore.S3Options{
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3BaseEndpoint,
		Bucket:       cfg.S3Bucket,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
	})
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	credsDB, err := credstore.Open(ctx, cfg.CredentialDBPath)
	if err != nil {
		log.Fatalf("credential store: %v", err)
	}
	defer credsDB.Close()

	// No classifier here: the share path never auto-tags.
	pipe := pipeline.New(
		metadata.NewExtractor(metadata.NewExifReader(), logger),
		tags.NewDeriver(nil, logger),
		syncengine.New(docs, blobs, logger),
		logger,
	)

	var image []byte
	if *imagePath != "" {
		image, err = os.ReadFile(*imagePath)
		if err != nil {
			log.Fatalf("reading image: %v", err)
		}
	}

	poster := share.NewPoster(credstore.NewSQLiteRepository(credsDB), pipe, logger)
	entry, err := poster.Post(ctx, caption, image)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("Posted entry %s\n", entry.ID)
}

// captionArgs strips every known flag (config flags and -i, all
// value-taking) from args, leaving the caption words.
func captionArgs(args []string) []string {
	flags := map[string]struct{}{
		"-d": {}, "-k": {}, "-b": {}, "-s": {}, "-m": {}, "-c": {}, "-config": {}, "-i": {},
	}

	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := flags[name]; ok && !strings.Contains(arg, "=") {
				i++
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}
