package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/dmitrijs2005/arcaives/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", "the-key", 2*time.Second)
}

func TestTable_ListSendsQueryAndKey(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/memos", r.URL.Path)
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		assert.Equal(t, "6", r.URL.Query().Get("limit"))
		assert.Equal(t, "eq.false", r.URL.Query().Get("is_secret"))
		assert.Equal(t, "the-key", r.Header.Get(common.APIKeyHeaderName))
		assert.Equal(t, "Bearer the-key", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[{"id":"1","title":"a","tags":"go"}]`)
	})

	q := models.Query{}.Eq("is_secret", "false").OrderBy("created_at", true).WithLimit(6)
	rows, err := c.Memos().List(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "go", rows[0].Tags)
}

func TestTable_GetInsertUpdateDelete(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/rest/v1/arcaives/e1":
			_, _ = io.WriteString(w, `{"id":"e1","title":"t","is_secret":true,"secret_password":"pw"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/rest/v1/arcaives":
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var in models.ArchiveEntry
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			in.ID = "new"
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(in)
		case r.Method == http.MethodPatch && r.URL.Path == "/rest/v1/arcaives/e1":
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"sort_order":3}`, string(body))
			_, _ = io.WriteString(w, `{"id":"e1","title":"t","sort_order":3}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/rest/v1/arcaives/e1":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	})
	ctx := context.Background()
	tbl := c.Arcaives()

	got, err := tbl.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "pw", got.SecretPassword)

	ins, err := tbl.Insert(ctx, models.ArchiveEntry{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, "new", ins.ID)

	three := 3
	upd, err := tbl.Update(ctx, "e1", models.ArchiveEntryPatch{SortOrder: &three})
	require.NoError(t, err)
	assert.Equal(t, 3, upd.SortOrder)

	require.NoError(t, tbl.Delete(ctx, "e1"))
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "not found", status: 404, body: `{"error":"not found"}`, want: common.ErrorNotFound},
		{name: "validation", status: 400, body: `{"error":"title: required","field":"title"}`, want: common.ErrValidation},
		{name: "unauthorized", status: 401, body: `{"error":"missing api key"}`, want: common.ErrorUnauthorized},
		{name: "forbidden", status: 403, body: `{"error":"write requires service_role key"}`, want: common.ErrorUnauthorized},
		{name: "too large", status: 413, body: `{}`, want: common.ErrPayloadTooLarge},
		{name: "media", status: 415, body: `{}`, want: common.ErrUnsupportedMediaType},
		{name: "server", status: 500, body: `oops`, want: ErrRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.Contacts().Get(context.Background(), "x")
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, ErrRemote)

			var re *RemoteError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.status, re.Status)
		})
	}
}

func TestClient_ValidationFieldSurvives(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		_, _ = io.WriteString(w, `{"error":"title: required","field":"title"}`)
	})

	_, err := c.Memos().Insert(context.Background(), models.Memo{})
	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "title", ve.Field)
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New(base, "", time.Second)
	err := c.Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_CancelledContext(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Ping(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_Upload(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/contacts", r.URL.Path)
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "tile.png", hdr.Filename)
		assert.Equal(t, []byte("PNGDATA"), data)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"bucket":"contacts","key":"2026/01/01/k.png","public_url":"http://gw/k.png"}`)
	})

	obj, err := c.Upload(context.Background(), "contacts", "tile.png", []byte("PNGDATA"))
	require.NoError(t, err)
	assert.Equal(t, "http://gw/k.png", obj.PublicURL)
	assert.Equal(t, "2026/01/01/k.png", obj.Key)
}

func TestClient_BaseURLTrimmed(t *testing.T) {
	assert.Equal(t, "https://x.example", New("https://x.example///", "", 0).BaseURL())
}
