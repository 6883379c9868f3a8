package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkoval85/aipulse/internal/common"
	"github.com/dkoval85/aipulse/internal/logging"
	"github.com/dkoval85/aipulse/internal/storage"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupKV(t *testing.T) *storage.SQLiteKV {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return storage.NewSQLiteKV(db)
}

func newAuth(t *testing.T) (AuthService, *storage.SQLiteKV) {
	t.Helper()
	kv := setupKV(t)
	return NewAuthService(kv, logging.NewNopLogger()), kv
}

// ---- tests ----

func TestRegister_CreatesAccountAndSession(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	account, err := auth.Register(ctx, "a@x.com", "p")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", account.Email)
	require.Equal(t, "a", account.Name)

	session, ok, err := auth.CurrentSession(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, account, session)
}

func TestRegister_DuplicateFails_FirstAccountUnchanged(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "a@x.com", "p")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "a@x.com", "other")
	require.ErrorIs(t, err, common.ErrDuplicateAccount)

	// The original secret still works.
	account, err := auth.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	require.Equal(t, "a", account.Name)
}

func TestLogin_MatchesRegisteredSession(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, "a@x.com", "p")
	require.NoError(t, err)

	loggedIn, err := auth.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	require.Equal(t, registered, loggedIn)
}

func TestLogin_WrongSecret_DoesNotAlterSession(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "a@x.com", "p")
	require.NoError(t, err)
	require.NoError(t, auth.Logout(ctx))

	_, err = auth.Login(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, ok, err := auth.CurrentSession(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLogin_UnknownEmail(t *testing.T) {
	auth, _ := newAuth(t)

	_, err := auth.Login(context.Background(), "nobody@x.com", "p")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogout_IsIdempotent(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	// No session yet: logout must not error.
	require.NoError(t, auth.Logout(ctx))

	_, err := auth.Register(ctx, "a@x.com", "p")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx))
	require.NoError(t, auth.Logout(ctx))

	_, ok, err := auth.CurrentSession(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCurrentSession_MalformedRecordTreatedAsAbsent(t *testing.T) {
	auth, kv := newAuth(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, storage.KeySession, []byte(`{broken`)))

	_, ok, err := auth.CurrentSession(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRegister_MalformedCredentialStoreTreatedAsEmpty(t *testing.T) {
	auth, kv := newAuth(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, storage.KeyUsers, []byte(`not json`)))

	_, err := auth.Register(ctx, "a@x.com", "p")
	require.NoError(t, err)
}

// Full scenario from the product contract: register, logout, login, reject
// a wrong password.
func TestAuthScenario_RegisterLogoutLogin(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	account, err := auth.Register(ctx, "a@x.com", "p")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", account.Email)
	require.Equal(t, "a", account.Name)

	require.NoError(t, auth.Logout(ctx))
	_, ok, err := auth.CurrentSession(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	restored, err := auth.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	require.Equal(t, account, restored)

	_, err = auth.Login(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}
