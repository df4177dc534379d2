package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kliang/packmate/backend/internal/domain"
)

// uniqueViolation is the Postgres error code raised when an insert breaks a
// unique constraint, used to detect duplicate usernames on signup.
const uniqueViolation = "23505"

// ProfilePatch carries a partial profile update. Nil fields are left
// unchanged; COALESCE in the UPDATE makes the merge happen in SQL.
type ProfilePatch struct {
	Email             *string
	Gender            *string
	FullName          *string
	TravelPreferences *string
	ItemLike          *string
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p.Email == nil && p.Gender == nil && p.FullName == nil &&
		p.TravelPreferences == nil && p.ItemLike == nil
}

// UserRepo defines the persistence operations for user accounts.
type UserRepo interface {
	// Create inserts a new user with an already-hashed password.
	// Returns domain.ErrConflict if the username is taken.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByUsername retrieves a user by username, password hash included.
	// Returns domain.ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// GetByID retrieves a user by uid.
	// Returns domain.ErrNotFound if no such user exists.
	GetByID(ctx context.Context, uid int64) (domain.User, error)

	// UpdateProfile merges the patch into the user's profile fields and
	// returns the updated record. Returns domain.ErrNotFound for unknown uids.
	UpdateProfile(ctx context.Context, uid int64, patch ProfilePatch) (domain.User, error)

	// UpdatePassword replaces the user's password hash.
	// Returns domain.ErrNotFound for unknown uids.
	UpdatePassword(ctx context.Context, uid int64, passwordHash string) error
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `uid, username, passwd, email, gender, fullname,
	       travel_preferences, item_like, created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (username, passwd, email, gender, fullname,
		                   travel_preferences, item_like)
		VALUES (@username, @passwd, @email, @gender, @fullname,
		        @travel_preferences, @item_like)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"username":           user.Username,
		"passwd":             user.PasswordHash,
		"email":              user.Email,
		"gender":             user.Gender,
		"fullname":           user.FullName,
		"travel_preferences": user.TravelPreferences,
		"item_like":          user.ItemLike,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: username: %w", domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = @username`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByUsername: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, uid int64) (domain.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE uid = @uid`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"uid": uid})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

// UpdateProfile merges non-nil patch fields via COALESCE, so a single UPDATE
// covers every combination of supplied fields.
func (r *pgUserRepo) UpdateProfile(ctx context.Context, uid int64, patch ProfilePatch) (domain.User, error) {
	const q = `
		UPDATE users
		SET email              = COALESCE(@email, email),
		    gender             = COALESCE(@gender, gender),
		    fullname           = COALESCE(@fullname, fullname),
		    travel_preferences = COALESCE(@travel_preferences, travel_preferences),
		    item_like          = COALESCE(@item_like, item_like),
		    updated_at         = now()
		WHERE uid = @uid
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"uid":                uid,
		"email":              patch.Email,
		"gender":             patch.Gender,
		"fullname":           patch.FullName,
		"travel_preferences": patch.TravelPreferences,
		"item_like":          patch.ItemLike,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.UpdateProfile: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) UpdatePassword(ctx context.Context, uid int64, passwordHash string) error {
	const q = `
		UPDATE users
		SET passwd = @passwd, updated_at = now()
		WHERE uid = @uid`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"uid": uid, "passwd": passwordHash})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.UpdatePassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.UpdatePassword: %w", domain.ErrNotFound)
	}
	return nil
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.UID, &u.Username, &u.PasswordHash, &u.Email, &u.Gender,
		&u.FullName, &u.TravelPreferences, &u.ItemLike, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
