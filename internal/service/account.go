package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kliang/packmate/backend/internal/domain"
	"github.com/kliang/packmate/backend/internal/repo"
)

// Mailer delivers a single plain-text message. The SMTP implementation lives
// in internal/mail; tests inject a recording fake.
type Mailer interface {
	Send(to, subject, body string) error
}

// TokenIssuer mints an auth token for a logged-in user.
// The JWT implementation lives in internal/auth.
type TokenIssuer interface {
	Issue(uid int64, username string) (string, error)
}

// AccountService implements signup, login, password recovery, and profile
// updates. Passwords are stored as bcrypt hashes and never leave this layer.
type AccountService struct {
	users  repo.UserRepo
	mailer Mailer
	tokens TokenIssuer
}

// NewAccountService constructs an AccountService with its dependencies.
func NewAccountService(users repo.UserRepo, mailer Mailer, tokens TokenIssuer) *AccountService {
	return &AccountService{users: users, mailer: mailer, tokens: tokens}
}

// SignupParams carries the fields accepted at registration.
// Username and Password are required; the rest is optional profile data.
type SignupParams struct {
	Username          string
	Password          string
	Email             string
	Gender            string
	FullName          string
	TravelPreferences string
	ItemLike          string
}

// Signup registers a new account. Returns domain.ErrValidation for missing
// credentials and domain.ErrConflict when the username is taken.
func (s *AccountService) Signup(ctx context.Context, params SignupParams) (domain.User, error) {
	if strings.TrimSpace(params.Username) == "" || params.Password == "" {
		return domain.User{}, fmt.Errorf("service.AccountService.Signup: %w: username and password are required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.Signup: hash password: %w", err)
	}

	user := domain.User{
		Username:          params.Username,
		PasswordHash:      string(hash),
		Email:             params.Email,
		Gender:            params.Gender,
		FullName:          params.FullName,
		TravelPreferences: params.TravelPreferences,
		ItemLike:          params.ItemLike,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.Signup: %w", err)
	}
	return created, nil
}

// Login verifies credentials and returns the user plus a signed auth token.
// A missing user and a wrong password both map to domain.ErrUnauthorized so
// the response does not leak which usernames exist.
func (s *AccountService) Login(ctx context.Context, username, password string) (domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AccountService.Login: %w: invalid credentials", domain.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", fmt.Errorf("service.AccountService.Login: %w: invalid credentials", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.UID, user.Username)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AccountService.Login: issue token: %w", err)
	}
	return user, token, nil
}

// RecoverPassword resets the account to a random temporary password and
// mails it to the address on file. Returns domain.ErrNotFound for unknown
// usernames, domain.ErrValidation when the account has no email, and
// domain.ErrUnavailable when the server was started without a mailer.
func (s *AccountService) RecoverPassword(ctx context.Context, username string) error {
	if s.mailer == nil {
		return fmt.Errorf("service.AccountService.RecoverPassword: %w: outbound mail is not configured", domain.ErrUnavailable)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("service.AccountService.RecoverPassword: %w", err)
	}
	if user.Email == "" {
		return fmt.Errorf("service.AccountService.RecoverPassword: %w: no email associated with this account", domain.ErrValidation)
	}

	temp, err := tempPassword()
	if err != nil {
		return fmt.Errorf("service.AccountService.RecoverPassword: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(temp), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("service.AccountService.RecoverPassword: hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.UID, string(hash)); err != nil {
		return fmt.Errorf("service.AccountService.RecoverPassword: %w", err)
	}

	body := fmt.Sprintf("Your temporary password is: %s", temp)
	if err := s.mailer.Send(user.Email, "Password Recovery", body); err != nil {
		return fmt.Errorf("service.AccountService.RecoverPassword: send mail: %w", err)
	}
	return nil
}

// UpdateProfile merges the patch into the user's profile.
// Returns domain.ErrValidation when the patch changes nothing.
func (s *AccountService) UpdateProfile(ctx context.Context, uid int64, patch repo.ProfilePatch) (domain.User, error) {
	if patch.Empty() {
		return domain.User{}, fmt.Errorf("service.AccountService.UpdateProfile: %w: no fields provided for update", domain.ErrValidation)
	}
	user, err := s.users.UpdateProfile(ctx, uid, patch)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.UpdateProfile: %w", err)
	}
	return user, nil
}

// tempPassword returns an 8-character hex password from crypto/rand.
func tempPassword() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
