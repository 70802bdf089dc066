package rest

import (
	"net/http"

	"github.com/dmitrijs2005/arcaives/internal/logging"
	"github.com/dmitrijs2005/arcaives/internal/models"
	"github.com/dmitrijs2005/arcaives/internal/server/middleware"
	"github.com/dmitrijs2005/arcaives/internal/server/services"
)

// Deps groups what the router wires into handlers.
type Deps struct {
	Arcaives *services.ArcaiveService
	Memos    *services.MemoService
	Contacts *services.ContactService
	Uploads  *services.UploadService
	Health   *HealthHandler
	Logger   logging.Logger

	SecretKey       []byte
	AllowAnonWrites bool
	CORSOrigins     []string
}

// NewRouter builds the gateway handler. Probes and public blob reads are
// open; every other route needs an API key.
func NewRouter(d Deps) http.Handler {
	tables := map[string]tableEndpoints{
		models.TableArcaives: NewTableHandler[models.ArchiveEntry, models.ArchiveEntryPatch](d.Arcaives, d.Logger),
		models.TableMemos:    NewTableHandler[models.Memo, models.MemoPatch](d.Memos, d.Logger),
		models.TableContacts: NewTableHandler[models.Contact, models.ContactPatch](d.Contacts, d.Logger),
	}
	return newRouter(tables, d.Uploads, d)
}

func newRouter(tables map[string]tableEndpoints, uploads uploadService, d Deps) http.Handler {
	mux := http.NewServeMux()
	protect := middleware.APIKey(d.SecretKey, d.AllowAnonWrites)

	table := func(fn func(tableEndpoints, http.ResponseWriter, *http.Request)) http.Handler {
		return protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t, ok := tables[r.PathValue("table")]
			if !ok {
				writeError(w, http.StatusNotFound, "unknown table")
				return
			}
			fn(t, w, r)
		}))
	}

	mux.Handle("GET /rest/v1/{table}", table(tableEndpoints.List))
	mux.Handle("POST /rest/v1/{table}", table(tableEndpoints.Create))
	mux.Handle("GET /rest/v1/{table}/{id}", table(tableEndpoints.Get))
	mux.Handle("PATCH /rest/v1/{table}/{id}", table(tableEndpoints.Update))
	mux.Handle("DELETE /rest/v1/{table}/{id}", table(tableEndpoints.Delete))

	storage := NewStorageHandler(uploads, d.Logger)
	mux.Handle("POST /storage/v1/object/{bucket}", protect(http.HandlerFunc(storage.Upload)))
	mux.HandleFunc("GET /storage/v1/object/public/{bucket}/{key...}", storage.Public)

	if d.Health != nil {
		mux.HandleFunc("GET /health", d.Health.Live)
		mux.HandleFunc("GET /ready", d.Health.Ready)
	}

	return middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(d.Logger),
		middleware.Logger(d.Logger),
		middleware.CORS(d.CORSOrigins),
	)(mux)
}
