package service

import (
	"context"
	"errors"
	"fmt"

	tt "task_tracker"
	"task_tracker/internal/logger"
	"task_tracker/internal/models"
)

// AuthService composes the user directory, the hasher and the token manager.
type AuthService struct {
	dir    *UserDirectory
	hasher PasswordHasher
	tokens *TokenManager
	events *recorder
	log    *logger.Logger

	// verified against on unknown-user logins so both failure paths cost one compare
	dummyHash string
}

func NewAuthService(dir *UserDirectory, hasher PasswordHasher, tokens *TokenManager, events *recorder, log *logger.Logger) (*AuthService, error) {
	dummy, err := hasher.Hash("task-tracker-placeholder")
	if err != nil {
		return nil, fmt.Errorf("fallback hash: %w", err)
	}
	return &AuthService{dir: dir, hasher: hasher, tokens: tokens, events: events, log: log, dummyHash: dummy}, nil
}

// Register creates the account and signs the caller in. Conflict and policy errors pass through unchanged.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	valid, err := validateRegistration(in)
	if err != nil {
		return AuthResult{}, err
	}

	u, err := s.dir.Create(ctx, valid)
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return AuthResult{}, err
	}

	s.events.record(ctx, u.ID, models.EventUserRegistered, "Account registered", nil)
	if s.log != nil {
		s.log.Infow("user_registered", "user_id", u.ID)
	}
	return AuthResult{Token: token, User: u.Public()}, nil
}

// Login returns tt.ErrInvalidCredentials for both an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	u, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: u.Public()}, nil
}

// ValidateCredentials checks an email/password pair without issuing a token.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (models.User, error) {
	u, err := s.dir.FindByLoginKey(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		s.hasher.Verify(password, s.dummyHash)
		s.loginFailed("user_not_found")
		return models.User{}, tt.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		s.loginFailed("password_mismatch", "user_id", u.ID)
		s.events.record(ctx, u.ID, models.EventLoginFailed, "Failed sign-in attempt", nil)
		return models.User{}, tt.ErrInvalidCredentials
	}
	return *u, nil
}

// Authenticate verifies a bearer token and returns its identity claim.
func (s *AuthService) Authenticate(token string) (models.Identity, error) {
	return s.tokens.Verify(token)
}

// Profile returns the public view of the caller's account.
func (s *AuthService) Profile(ctx context.Context, userID string) (models.PublicUser, error) {
	if err := requireOwner(userID); err != nil {
		return models.PublicUser{}, err
	}
	u, err := s.dir.FindByID(ctx, userID)
	if err != nil {
		return models.PublicUser{}, err
	}
	if u == nil {
		return models.PublicUser{}, tt.ErrUserNotFound
	}
	return u.Public(), nil
}

// ChangePassword requires the current password and stores a fresh hash of next.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if err := requireOwner(userID); err != nil {
		return err
	}
	if err := validatePassword("new_password", next); err != nil {
		return err
	}
	u, err := s.dir.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return tt.ErrUserNotFound
	}
	if !s.hasher.Verify(current, u.PasswordHash) {
		s.loginFailed("password_mismatch", "user_id", u.ID, "op", "change_password")
		return tt.ErrInvalidCredentials
	}
	if err := s.dir.UpdatePassword(ctx, u.ID, next); err != nil {
		return err
	}
	s.events.record(ctx, u.ID, models.EventPasswordChanged, "Password changed", nil)
	return nil
}

func (s *AuthService) loginFailed(reason string, kv ...any) {
	if s.log == nil {
		return
	}
	s.log.Warnw("auth_login_failed", append([]any{"reason", reason}, kv...)...)
}

// requireOwner rejects calls that arrive without a verified subject.
func requireOwner(ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("%w: missing subject", tt.ErrUnauthorized)
	}
	return nil
}

// wrapRepoErr keeps domain kinds intact and folds everything else into ErrInternal.
func wrapRepoErr(op string, err error) error {
	if errors.Is(err, tt.ErrNotFound) || errors.Is(err, tt.ErrConflict) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", tt.ErrInternal, op, err)
}
