package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/firejournal/firejournal/internal/blobstore"
	"github.com/firejournal/firejournal/internal/common"
	"github.com/firejournal/firejournal/internal/credstore"
	"github.com/firejournal/firejournal/internal/docstore"
	"github.com/firejournal/firejournal/internal/logging"
	"github.com/firejournal/firejournal/internal/metadata"
	"github.com/firejournal/firejournal/internal/pipeline"
	"github.com/firejournal/firejournal/internal/syncengine"
	"github.com/firejournal/firejournal/internal/tags"
)

type fakeCreds struct {
	values map[string]string
}

func (r *fakeCreds) Get(ctx context.Context, key string) (string, error) {
	v, ok := r.values[key]
	if !ok {
		return "", common.ErrorNotFound
	}
	return v, nil
}

func (r *fakeCreds) Set(ctx context.Context, key, value string) error {
	r.values[key] = value
	return nil
}

func (r *fakeCreds) Save(ctx context.Context, c credstore.Credentials) error {
	r.values[credstore.KeyEmail] = c.Email
	r.values[credstore.KeyPassword] = c.Password
	r.values[credstore.KeyUserID] = c.UserID
	return nil
}

func (r *fakeCreds) Clear(ctx context.Context) error {
	r.values = map[string]string{}
	return nil
}

type stubReader struct{}

func (stubReader) Read([]byte) (metadata.Properties, error) { return metadata.Properties{}, nil }

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	docs := docstore.NewInMemoryStore()
	pipe := pipeline.New(
		metadata.NewExtractor(stubReader{}, log),
		tags.NewDeriver(nil, log),
		syncengine.New(docs, blobstore.NewInMemoryStore(), log),
		log,
	)
	out := &bytes.Buffer{}
	app := &App{
		log:  log,
		docs: docs,
		pipe: pipe,
		creds: &fakeCreds{values: map[string]string{
			credstore.KeyEmail:    "a@b.c",
			credstore.KeyPassword: "pw",
			credstore.KeyUserID:   "u1",
		}},
		out: out,
	}
	return app, out
}

func TestShow(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	image := []byte{0xff, 0xd8, 0xff, 0xe0}
	entry, err := app.pipe.Submit(ctx, pipeline.SubmitInput{UserID: "u1", Caption: "hello #world", Image: image})
	require.NoError(t, err)

	require.NoError(t, app.Show(ctx, []string{entry.ID}))

	require.Contains(t, out.String(), entry.ID)
	require.Contains(t, out.String(), "hello #world")
	require.Contains(t, out.String(), fmt.Sprintf("image: %d bytes", len(image)))
}

func TestShow_WritesImageFile(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	image := []byte{1, 2, 3, 4, 5}
	entry, err := app.pipe.Submit(ctx, pipeline.SubmitInput{UserID: "u1", Caption: "pic", Image: image})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.jpg")
	require.NoError(t, app.Show(ctx, []string{"-o", path, entry.ID}))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, image, written)
}

func TestShow_EntryWithoutImage(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	entry, err := app.pipe.Submit(ctx, pipeline.SubmitInput{UserID: "u1", Caption: "text only"})
	require.NoError(t, err)

	require.NoError(t, app.Show(ctx, []string{entry.ID}))
	require.Contains(t, out.String(), "no image")
}

func TestShow_UnknownEntry(t *testing.T) {
	app, _ := newTestApp(t)

	require.Error(t, app.Show(context.Background(), []string{"missing-id"}))
}
