package services

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/arcaives/internal/client/repositories/session"
	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/gate"
	"github.com/dmitrijs2005/arcaives/internal/logging"
	"github.com/dmitrijs2005/arcaives/internal/models"
)

// AdminFlagKey is the session-store key of the admin flag.
const AdminFlagKey = "repo_admin_auth"

// AdminService guards the three managers behind the Admin Gate. The flag is
// kept in the session store so it survives REPL restarts that reuse the same
// store, and nothing else.
type AdminService struct {
	gate     *gate.AdminGate
	store    session.Repository
	logger   logging.Logger
	Entries  *Manager[models.ArchiveEntry, models.ArchiveEntryPatch]
	Memos    *Manager[models.Memo, models.MemoPatch]
	Contacts *ContactManager
}

func NewAdminService(g *gate.AdminGate, store session.Repository, a ArcaiveTable, m MemoTable, c ContactTable, up Uploader, bucket string, logger logging.Logger) *AdminService {
	s := &AdminService{gate: g, store: store, logger: logger}
	s.Entries = &Manager[models.ArchiveEntry, models.ArchiveEntryPatch]{
		auth:  s.require,
		table: a,
		order: byShelfOrder,
		validate: func(e *models.ArchiveEntry) error {
			e.Normalize()
			return requireTitle(e.Title)
		},
		validatePatch: func(p models.ArchiveEntryPatch) error {
			return requireTitlePatch(p.Title)
		},
	}
	s.Memos = &Manager[models.Memo, models.MemoPatch]{
		auth:     s.require,
		table:    m,
		order:    newestFirst,
		validate: func(r *models.Memo) error { return requireTitle(r.Title) },
		validatePatch: func(p models.MemoPatch) error {
			return requireTitlePatch(p.Title)
		},
	}
	s.Contacts = &ContactManager{
		Manager: Manager[models.Contact, models.ContactPatch]{
			auth:          s.require,
			table:         c,
			order:         byShelfOrder,
			validate:      func(*models.Contact) error { return nil },
			validatePatch: func(models.ContactPatch) error { return nil },
		},
		uploader: up,
		bucket:   bucket,
		logger:   logger,
	}
	return s
}

// Session rebuilds the gate session from the store.
func (s *AdminService) Session(ctx context.Context) (gate.Session, error) {
	ok, err := s.Authenticated(ctx)
	return gate.Session{Admin: ok}, err
}

// Authenticated reports whether the admin flag is set.
func (s *AdminService) Authenticated(ctx context.Context) (bool, error) {
	v, err := s.store.Get(ctx, AdminFlagKey)
	if err != nil {
		return false, err
	}
	return string(v) == "true", nil
}

// Login checks password with the Admin Gate and persists the flag on
// success. gate.ErrIncorrectPassword and gate.ErrInsecureContext are
// returned unchanged.
func (s *AdminService) Login(ctx context.Context, sess gate.Session, password string) (gate.Session, error) {
	next, err := s.gate.Login(sess, password)
	if err != nil {
		return sess, err
	}
	if err := s.store.Set(ctx, AdminFlagKey, []byte("true")); err != nil {
		return sess, err
	}
	s.logger.Info(ctx, "admin session started")
	return next, nil
}

// Logout clears the flag.
func (s *AdminService) Logout(ctx context.Context, sess gate.Session) (gate.Session, error) {
	if err := s.store.Delete(ctx, AdminFlagKey); err != nil {
		return sess, err
	}
	return sess.Logout(), nil
}

func (s *AdminService) require(ctx context.Context) error {
	ok, err := s.Authenticated(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorUnauthorized
	}
	return nil
}

func requireTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return common.NewValidationError("title", "required")
	}
	return nil
}

func requireTitlePatch(title *string) error {
	if title == nil {
		return nil
	}
	return requireTitle(*title)
}

// Manager is raw CRUD over one table for the admin console. It applies no
// visibility rules.
type Manager[T any, P any] struct {
	auth          func(context.Context) error
	table         Table[T, P]
	order         models.Query
	validate      func(*T) error
	validatePatch func(P) error
}

func (m *Manager[T, P]) List(ctx context.Context) ([]T, error) {
	if err := m.auth(ctx); err != nil {
		return nil, err
	}
	return m.table.List(ctx, m.order)
}

func (m *Manager[T, P]) Get(ctx context.Context, id string) (*T, error) {
	if err := m.auth(ctx); err != nil {
		return nil, err
	}
	return m.table.Get(ctx, id)
}

func (m *Manager[T, P]) Create(ctx context.Context, row T) (*T, error) {
	if err := m.auth(ctx); err != nil {
		return nil, err
	}
	if err := m.validate(&row); err != nil {
		return nil, err
	}
	return m.table.Insert(ctx, row)
}

func (m *Manager[T, P]) Update(ctx context.Context, id string, p P) (*T, error) {
	if err := m.auth(ctx); err != nil {
		return nil, err
	}
	if err := m.validatePatch(p); err != nil {
		return nil, err
	}
	return m.table.Update(ctx, id, p)
}

func (m *Manager[T, P]) Delete(ctx context.Context, id string) error {
	if err := m.auth(ctx); err != nil {
		return err
	}
	return m.table.Delete(ctx, id)
}

// MaxImageBytes is the ceiling for contact images.
const MaxImageBytes = 5 << 20

// ContactManager adds the image upload step to contact CRUD.
type ContactManager struct {
	Manager[models.Contact, models.ContactPatch]
	uploader Uploader
	bucket   string
	logger   logging.Logger
}

// UploadImage stores data as the contact's image and records its public URL
// on the row. The two calls are independent: if the row update fails the
// blob stays orphaned, which is logged and returned as an error.
func (m *ContactManager) UploadImage(ctx context.Context, id, filename string, data []byte) (*models.Contact, error) {
	if err := m.auth(ctx); err != nil {
		return nil, err
	}
	if err := CheckImage(data); err != nil {
		return nil, err
	}

	obj, err := m.uploader.Upload(ctx, m.bucket, filepath.Base(filename), data)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	c, err := m.table.Update(ctx, id, models.ContactPatch{ImageURL: &obj.PublicURL})
	if err != nil {
		m.logger.Warn(ctx, "uploaded image not linked", "contact_id", id, "key", obj.Key, "error", err)
		return nil, fmt.Errorf("link image: %w", err)
	}
	return c, nil
}

// CheckImage enforces the image type and size limits before upload.
func CheckImage(data []byte) error {
	if len(data) == 0 {
		return common.NewValidationError("file", "empty")
	}
	if len(data) > MaxImageBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", common.ErrPayloadTooLarge, len(data), MaxImageBytes)
	}
	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("%w: %s", common.ErrUnsupportedMediaType, ct)
	}
	return nil
}
