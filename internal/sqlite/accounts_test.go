// Unit tests for the accounts repository: hashing, uniqueness,
// authentication, and verification.
package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

func newAccountRepo(t *testing.T) *AccountRepo {
	t.Helper()
	eng, _ := newTestEngine(t)
	return NewAccountRepo(eng)
}

func TestCreateAccountHashesPassword(t *testing.T) {
	repo := newAccountRepo(t)

	a, err := repo.CreateAccount(types.Account{Email: "jo@example.com"}, "hunter2")
	require.NoError(t, err)

	assert.NotEmpty(t, a.PasswordHash)
	assert.NotEqual(t, "hunter2", a.PasswordHash)
	assert.Equal(t, types.RoleStaff, a.Role, "default role")
	assert.False(t, a.Verified)
	assert.NotEmpty(t, a.VerificationToken, "unverified accounts get a token")
	require.NotNil(t, a.VerificationExpires)
}

func TestCreateAccountRejectsDuplicateEmail(t *testing.T) {
	repo := newAccountRepo(t)

	_, err := repo.CreateAccount(types.Account{Email: "jo@example.com"}, "pw")
	require.NoError(t, err)

	_, err = repo.CreateAccount(types.Account{Email: "JO@Example.COM"}, "pw")
	assert.ErrorIs(t, err, types.ErrEmailTaken, "emails compare case-insensitively")
}

func TestGetByEmail(t *testing.T) {
	repo := newAccountRepo(t)
	created, err := repo.CreateAccount(types.Account{Email: "jo@example.com"}, "pw")
	require.NoError(t, err)

	got, ok, err := repo.GetByEmail("Jo@EXAMPLE.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.ID, got.ID)
}

func TestAuthenticate(t *testing.T) {
	repo := newAccountRepo(t)
	_, err := repo.CreateAccount(types.Account{Email: "jo@example.com"}, "hunter2")
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		a, err := repo.Authenticate("jo@example.com", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "jo@example.com", a.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := repo.Authenticate("jo@example.com", "wrong")
		assert.ErrorIs(t, err, types.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := repo.Authenticate("nobody@example.com", "hunter2")
		assert.ErrorIs(t, err, types.ErrInvalidCredentials)
	})
}

func TestRecordSignIn(t *testing.T) {
	repo := newAccountRepo(t)
	a, err := repo.CreateAccount(types.Account{Email: "jo@example.com"}, "pw")
	require.NoError(t, err)

	require.NoError(t, repo.RecordSignIn(a.ID, "10.0.0.7"))
	require.NoError(t, repo.RecordSignIn(a.ID, "10.0.0.8"))

	got, ok, err := repo.GetByID(a.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.SignInCount)
	assert.Equal(t, "10.0.0.8", got.LastSignInIP)
	require.NotNil(t, got.LastSignInAt)
}

func TestSetPasswordAndReauthenticate(t *testing.T) {
	repo := newAccountRepo(t)
	a, err := repo.CreateAccount(types.Account{Email: "jo@example.com"}, "old")
	require.NoError(t, err)

	ok, err := repo.SetPassword(a.ID, "new")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = repo.Authenticate("jo@example.com", "old")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)

	_, err = repo.Authenticate("jo@example.com", "new")
	assert.NoError(t, err)
}

func TestUpdateEmail(t *testing.T) {
	repo := newAccountRepo(t)
	a, err := repo.CreateAccount(types.Account{Email: "a@example.com"}, "pw")
	require.NoError(t, err)
	_, err = repo.CreateAccount(types.Account{Email: "b@example.com"}, "pw")
	require.NoError(t, err)

	t.Run("taken by another account", func(t *testing.T) {
		_, _, err := repo.UpdateEmail(a.ID, "b@example.com")
		assert.ErrorIs(t, err, types.ErrEmailTaken)
	})

	t.Run("free email succeeds", func(t *testing.T) {
		got, ok, err := repo.UpdateEmail(a.ID, "c@example.com")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "c@example.com", got.Email)
	})
}

func TestUpdateRole(t *testing.T) {
	repo := newAccountRepo(t)
	a, err := repo.CreateAccount(types.Account{Email: "jo@example.com"}, "pw")
	require.NoError(t, err)

	got, ok, err := repo.UpdateRole(a.ID, types.RoleAdmin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.RoleAdmin, got.Role)
}

func TestVerify(t *testing.T) {
	repo := newAccountRepo(t)
	a, err := repo.CreateAccount(types.Account{Email: "jo@example.com"}, "pw")
	require.NoError(t, err)

	t.Run("wrong token", func(t *testing.T) {
		err := repo.Verify(a.ID, "not-the-token")
		assert.ErrorIs(t, err, types.ErrTokenMismatch)
	})

	t.Run("matching token verifies and clears", func(t *testing.T) {
		require.NoError(t, repo.Verify(a.ID, a.VerificationToken))

		got, ok, err := repo.GetByID(a.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, got.Verified)
		assert.Empty(t, got.VerificationToken)
		assert.Nil(t, got.VerificationExpires)
	})

	t.Run("missing account", func(t *testing.T) {
		err := repo.Verify(999, "whatever")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestVerifyExpiredToken(t *testing.T) {
	repo := newAccountRepo(t)
	a, err := repo.CreateAccount(types.Account{Email: "jo@example.com"}, "pw")
	require.NoError(t, err)

	// Push the expiry into the past directly.
	expired := formatTime(time.Now().Add(-time.Hour))
	_, _, err = repo.Update(a.ID, NewRecord().Set("verificationExpires", expired))
	require.NoError(t, err)

	err = repo.Verify(a.ID, a.VerificationToken)
	assert.ErrorIs(t, err, types.ErrTokenExpired)
}
