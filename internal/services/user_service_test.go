package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/isdelr/card-binder-be/internal/common"
	"github.com/isdelr/card-binder-be/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestRegisterThenAuthenticate(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotZero(t, user.ID)

	got, err := svc.Authenticate(ctx, "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Empty(t, got.PasswordHash)
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter22")
	require.NoError(t, err)

	var stored string
	require.NoError(t, db.QueryRow("SELECT password_hash FROM users WHERE username = ?", "alice").Scan(&stored))
	assert.NotEqual(t, "hunter22", stored)
	assert.NotEmpty(t, stored)
}

func TestRegisterDuplicateLeavesExistingRowUntouched(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "original-pw")
	require.NoError(t, err)

	var hashBefore string
	require.NoError(t, db.QueryRow("SELECT password_hash FROM users WHERE username = ?", "alice").Scan(&hashBefore))

	_, err = svc.Register(ctx, "alice", "different-pw")
	assert.ErrorIs(t, err, common.ErrDuplicateUser)

	var hashAfter string
	require.NoError(t, db.QueryRow("SELECT password_hash FROM users WHERE username = ?", "alice").Scan(&hashAfter))
	assert.Equal(t, hashBefore, hashAfter)

	// The original credentials still work.
	_, err = svc.Authenticate(ctx, "alice", "original-pw")
	assert.NoError(t, err)
}

func TestAuthenticateFailuresAreUniform(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter22")
	require.NoError(t, err)

	// Wrong password and unknown user must be indistinguishable.
	_, wrongPw := svc.Authenticate(ctx, "alice", "wrong")
	_, unknown := svc.Authenticate(ctx, "nobody", "hunter22")

	assert.ErrorIs(t, wrongPw, common.ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, common.ErrInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), unknown.Error())
}

func TestGetUserByUsername(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter22")
	require.NoError(t, err)

	user, err := svc.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetUserByUsername(ctx, "nobody")
	assert.Error(t, err)
}
