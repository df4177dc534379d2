package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kliang/packmate/backend/internal/domain"
	"github.com/kliang/packmate/backend/internal/repo"
	"github.com/kliang/packmate/backend/testutil"
)

// newTestTx opens a transaction against the test database. The transaction is
// rolled back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; TestMain applies migrations.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// userFixture returns a domain.User with a unique username so tests can
// create several without colliding.
func userFixture() domain.User {
	return domain.User{
		Username:          "traveler-" + uuid.NewString(),
		PasswordHash:      "$2a$10$fixturehashfixturehashfixturehashfixtureha",
		Email:             "traveler@example.com",
		Gender:            "female",
		FullName:          "Kim Liang",
		TravelPreferences: "beach, hiking",
		ItemLike:          "sunscreen",
	}
}

func TestUserRepo_Create(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))
	ctx := context.Background()

	input := userFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Positive(t, got.UID, "UID should be DB-generated")
	assert.Equal(t, input.Username, got.Username)
	assert.Equal(t, input.PasswordHash, got.PasswordHash)
	assert.Equal(t, input.Email, got.Email)
	assert.Equal(t, input.ItemLike, got.ItemLike)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestUserRepo_Create_DuplicateUsername(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))
	ctx := context.Background()

	input := userFixture()
	_, err := r.Create(ctx, input)
	require.NoError(t, err)

	_, err = r.Create(ctx, input)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepo_GetByUsername(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, userFixture())
	require.NoError(t, err)

	got, err := r.GetByUsername(ctx, created.Username)

	require.NoError(t, err)
	assert.Equal(t, created.UID, got.UID)
	assert.Equal(t, created.PasswordHash, got.PasswordHash)
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))

	_, err := r.GetByUsername(context.Background(), "no-such-user")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_GetByID(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, userFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.UID)

	require.NoError(t, err)
	assert.Equal(t, created.Username, got.Username)
}

func TestUserRepo_UpdateProfile(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, userFixture())
	require.NoError(t, err)

	newEmail := "new@example.com"
	newItemLike := "travel pillow"
	got, err := r.UpdateProfile(ctx, created.UID, repo.ProfilePatch{
		Email:    &newEmail,
		ItemLike: &newItemLike,
	})

	require.NoError(t, err)
	assert.Equal(t, newEmail, got.Email)
	assert.Equal(t, newItemLike, got.ItemLike)
	// Untouched fields keep their previous values.
	assert.Equal(t, created.Gender, got.Gender)
	assert.Equal(t, created.FullName, got.FullName)
}

func TestUserRepo_UpdateProfile_NotFound(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))

	email := "ghost@example.com"
	_, err := r.UpdateProfile(context.Background(), 999999999, repo.ProfilePatch{Email: &email})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_UpdatePassword(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, userFixture())
	require.NoError(t, err)

	err = r.UpdatePassword(ctx, created.UID, "$2a$10$newhashnewhashnewhashnewhashnewhashnewha")
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.UID)
	require.NoError(t, err)
	assert.NotEqual(t, created.PasswordHash, got.PasswordHash)
}

func TestUserRepo_UpdatePassword_NotFound(t *testing.T) {
	r := repo.NewUserRepo(newTestTx(t))

	err := r.UpdatePassword(context.Background(), 999999999, "hash")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// mustCreateUser inserts a user on the given tx and returns its uid.
// Plan tests need an owning user to satisfy the foreign key.
func mustCreateUser(t *testing.T, tx pgx.Tx) int64 {
	t.Helper()
	user, err := repo.NewUserRepo(tx).Create(context.Background(), userFixture())
	require.NoError(t, err, "create user fixture")
	return user.UID
}
