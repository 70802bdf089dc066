package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/arcaives/internal/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome_RendersSections(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")

	require.NoError(t, env.app.Home(context.Background(), nil))

	out := env.out.String()
	assert.Contains(t, out, "Open Letter")
	assert.Contains(t, out, "Diary [locked]")
	assert.NotContains(t, out, "Vault", "hard-locked entries stay off the shelf")
	assert.Contains(t, out, "Go tips #go #tools")
	assert.NotContains(t, out, "Private")
	assert.Contains(t, out, "github.com")
}

func TestHome_PartialFailure(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")
	env.arcaives.listErr = errors.New("boom")

	err := env.app.Home(context.Background(), nil)
	require.ErrorContains(t, err, "boom")
	assert.Contains(t, env.out.String(), "Go tips", "other sections still render")
}

func TestArcaives_ListsWithMarkers(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")

	require.NoError(t, env.app.Arcaives(context.Background(), nil))

	out := env.out.String()
	assert.Contains(t, out, "1. Open Letter")
	assert.Contains(t, out, "2. Diary [locked]")
	assert.Contains(t, out, "3. Vault [private]")
	assert.Len(t, env.app.list, 3)
}

func TestOpen_SoftLockedRetriesUntilMatch(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")
	ctx := context.Background()
	require.NoError(t, env.app.Arcaives(ctx, nil))
	env.out.Reset()

	env.input("ABC", "abc")
	require.NoError(t, env.app.Open(ctx, []string{"2"}))

	out := env.out.String()
	assert.Contains(t, out, "Incorrect password.")
	assert.Contains(t, out, "X")
	assert.True(t, env.app.session.Unlocked("e2"))
}

func TestOpen_ByIDWithoutListLoaded(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")

	require.NoError(t, env.app.Open(context.Background(), []string{"e1"}))
	assert.Contains(t, env.out.String(), "dear reader")
}

func TestOpen_HardLockedIsInert(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")
	env.input("anything")

	require.NoError(t, env.app.Open(context.Background(), []string{"3"}))
	assert.Contains(t, env.out.String(), "This entry is private.")
	assert.NotContains(t, env.out.String(), "never shown")
}

func TestOpen_CancelStaysOnList(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")
	ctx := context.Background()
	require.NoError(t, env.app.Arcaives(ctx, nil))
	env.out.Reset()

	env.input("")
	require.NoError(t, env.app.Open(ctx, []string{"2"}))
	assert.Contains(t, env.out.String(), "Cancelled.")
	assert.NotContains(t, env.out.String(), "ARCAIVES")
	assert.False(t, env.app.session.Unlocked("e2"))
}

func TestOpen_Usage(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")
	require.ErrorIs(t, env.app.Open(context.Background(), nil), errUsage)

	require.NoError(t, env.app.Open(context.Background(), []string{"9"}))
	assert.Contains(t, env.out.String(), "No such entry")
}

func TestArcaive_DirectChallenge(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")

	env.input("nope", "abc")
	require.NoError(t, env.app.Arcaive(context.Background(), []string{"e2"}))

	out := env.out.String()
	assert.Contains(t, out, "This entry is locked.")
	assert.Contains(t, out, "Incorrect password.")
	assert.Contains(t, out, "X")
}

func TestArcaive_CancelReturnsToList(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")

	env.input("")
	require.NoError(t, env.app.Arcaive(context.Background(), []string{"e2"}))

	out := env.out.String()
	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, out, "1. Open Letter")
}

func TestArcaive_HardLockedShowsPlaceholder(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")

	require.NoError(t, env.app.Arcaive(context.Background(), []string{"e3"}))
	assert.Contains(t, env.out.String(), gate.HardLockedPlaceholder)
	assert.NotContains(t, env.out.String(), "never shown")
}

func TestArcaive_NotFoundShowsList(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")

	require.NoError(t, env.app.Arcaive(context.Background(), []string{"missing"}))
	assert.Contains(t, env.out.String(), "Entry not found.")
	assert.Contains(t, env.out.String(), "3. Vault [private]")
}

func TestUnlock_ClearedOnNavigation(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")
	ctx := context.Background()

	env.input("abc")
	require.NoError(t, env.app.Arcaive(ctx, []string{"e2"}))
	require.True(t, env.app.session.Unlocked("e2"))

	require.NoError(t, env.app.Memo(ctx, nil))
	assert.False(t, env.app.session.Unlocked("e2"))
}

func TestMemo_Page(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:8080")
	ctx := context.Background()

	require.NoError(t, env.app.Memo(ctx, []string{"books"}))
	out := env.out.String()
	assert.Contains(t, out, "ALL  books  go")
	assert.Contains(t, out, "1 memos (+1 hidden)")
	assert.Contains(t, out, "Reading")
	assert.NotContains(t, out, "Go tips")

	env.out.Reset()
	require.NoError(t, env.app.Memo(ctx, []string{"secret"}))
	assert.Contains(t, env.out.String(), `Unknown category "secret"`)
	assert.Contains(t, env.out.String(), "2 memos (+1 hidden)")
}
