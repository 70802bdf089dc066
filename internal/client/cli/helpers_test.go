package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/arcaives/internal/client/config"
	"github.com/dmitrijs2005/arcaives/internal/client/repositories/session"
	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/gate"
	"github.com/dmitrijs2005/arcaives/internal/logging"
	"github.com/dmitrijs2005/arcaives/internal/models"
	"github.com/stretchr/testify/require"
)

const (
	adminPassword = "arcaivesadmin"
	adminDigest   = "74a0c71726336ea9aac7a2a2f04214aba41c8357e6f3190e765429d086bdde15"
)

// fakeTable is an in-memory gateway table keyed by id.
type fakeTable[T any, P any] struct {
	rows    []T
	id      func(T) string
	apply   func(P, *T)
	listErr error
}

func (f *fakeTable[T, P]) List(ctx context.Context, q models.Query) ([]T, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]T(nil), f.rows...), nil
}

func (f *fakeTable[T, P]) find(id string) int {
	for i, r := range f.rows {
		if f.id(r) == id {
			return i
		}
	}
	return -1
}

func (f *fakeTable[T, P]) Get(ctx context.Context, id string) (*T, error) {
	i := f.find(id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	r := f.rows[i]
	return &r, nil
}

func (f *fakeTable[T, P]) Insert(ctx context.Context, row T) (*T, error) {
	f.rows = append(f.rows, row)
	return &row, nil
}

func (f *fakeTable[T, P]) Update(ctx context.Context, id string, p P) (*T, error) {
	i := f.find(id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	f.apply(p, &f.rows[i])
	r := f.rows[i]
	return &r, nil
}

func (f *fakeTable[T, P]) Delete(ctx context.Context, id string) error {
	i := f.find(id)
	if i < 0 {
		return common.ErrorNotFound
	}
	f.rows = append(f.rows[:i], f.rows[i+1:]...)
	return nil
}

type fakeUploader struct {
	bucket string
	name   string
	data   []byte
}

func (f *fakeUploader) Upload(ctx context.Context, bucket, filename string, data []byte) (*models.StoredObject, error) {
	f.bucket, f.name, f.data = bucket, filename, data
	return &models.StoredObject{Bucket: bucket, Key: "2026/10/15/x.png", PublicURL: "http://127.0.0.1:8080/storage/v1/object/public/" + bucket + "/2026/10/15/x.png"}, nil
}

type fakePinger struct {
	err   error
	calls int
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.calls++
	return f.err
}

type testEnv struct {
	app      *App
	out      *bytes.Buffer
	arcaives *fakeTable[models.ArchiveEntry, models.ArchiveEntryPatch]
	memos    *fakeTable[models.Memo, models.MemoPatch]
	contacts *fakeTable[models.Contact, models.ContactPatch]
	uploader *fakeUploader
	pinger   *fakePinger
	logs     *bytes.Buffer
}

func newTestEnv(t *testing.T, gatewayURL string) *testEnv {
	t.Helper()
	stubTerminal(t, false, "", nil)

	orig := gate.ReferenceDigest
	gate.ReferenceDigest = adminDigest
	t.Cleanup(func() { gate.ReferenceDigest = orig })

	db, err := session.Open(context.Background(), ":memory:")
	require.NoError(t, err)

	env := &testEnv{
		out: &bytes.Buffer{},
		arcaives: &fakeTable[models.ArchiveEntry, models.ArchiveEntryPatch]{
			id:    func(e models.ArchiveEntry) string { return e.ID },
			apply: func(p models.ArchiveEntryPatch, e *models.ArchiveEntry) { p.Apply(e) },
			rows: []models.ArchiveEntry{
				{ID: "e1", Title: "Open Letter", Content: "dear reader"},
				{ID: "e2", Title: "Diary", Content: "X", IsSecret: true, SecretPassword: "abc"},
				{ID: "e3", Title: "Vault", Content: "never shown", IsSecret: true},
			},
		},
		memos: &fakeTable[models.Memo, models.MemoPatch]{
			id:    func(m models.Memo) string { return m.ID },
			apply: func(p models.MemoPatch, m *models.Memo) { p.Apply(m) },
			rows: []models.Memo{
				{ID: "m1", Title: "Go tips", Tags: "go, tools"},
				{ID: "m2", Title: "Reading", Tags: "books"},
				{ID: "m3", Title: "Private", Tags: "secret", IsSecret: true},
			},
		},
		contacts: &fakeTable[models.Contact, models.ContactPatch]{
			id:    func(c models.Contact) string { return c.ID },
			apply: func(p models.ContactPatch, c *models.Contact) { p.Apply(c) },
			rows: []models.Contact{
				{ID: "c1", LinkURL: "https://github.com/someone", IsActive: true},
			},
		},
		uploader: &fakeUploader{},
		pinger:   &fakePinger{},
		logs:     &bytes.Buffer{},
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.GatewayURL = gatewayURL

	logger := logging.New("debug", "text", env.logs)
	a := newApp(cfg, logger, session.NewSQLiteRepository(db), tables{
		arcaives: env.arcaives,
		memos:    env.memos,
		contacts: env.contacts,
		uploader: env.uploader,
		pinger:   env.pinger,
	})
	a.db = db
	a.out = env.out
	t.Cleanup(func() { _ = a.Close() })

	env.app = a
	return env
}

// input queues lines for the prompts of the next command.
func (e *testEnv) input(lines ...string) {
	e.app.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}
