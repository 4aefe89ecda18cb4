package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	tt "task_tracker"
	"task_tracker/internal/logger"
	"task_tracker/internal/models"
	"task_tracker/internal/repository"

	"github.com/google/uuid"
)

// UserDirectory owns User persistence: lookups, creation with uniqueness, and password changes.
// Passwords are hashed here, explicitly, immediately before every write of the hash column.
type UserDirectory struct {
	users  repository.UserRepo
	hasher PasswordHasher
	log    *logger.Logger
	now    func() time.Time
}

func NewUserDirectory(users repository.UserRepo, hasher PasswordHasher, log *logger.Logger) *UserDirectory {
	return &UserDirectory{users: users, hasher: hasher, log: log, now: time.Now}
}

// Create persists a new user from already-validated input.
// The check-then-insert is only a fast path; the unique index decides races.
func (d *UserDirectory) Create(ctx context.Context, in RegisterInput) (models.User, error) {
	if in.Role == models.RoleAdmin {
		return models.User{}, tt.ErrPolicy
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}

	existing, err := d.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: lookup user: %w", tt.ErrInternal, err)
	}
	if existing != nil {
		return models.User{}, tt.ErrLoginKeyTaken
	}

	hash, err := d.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         in.Role,
		CreatedAt:    d.now().UTC().Truncate(time.Microsecond),
	}
	if err := d.users.Create(ctx, u); err != nil {
		if errors.Is(err, tt.ErrDuplicate) {
			if d.log != nil {
				d.log.Infow("user_create_lost_race", "email", in.Email)
			}
			return models.User{}, tt.ErrLoginKeyTaken
		}
		return models.User{}, fmt.Errorf("%w: create user: %w", tt.ErrInternal, err)
	}
	return u, nil
}

// FindByLoginKey returns (nil, nil) when no user has that email.
func (d *UserDirectory) FindByLoginKey(ctx context.Context, email string) (*models.User, error) {
	u, err := d.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("%w: lookup user: %w", tt.ErrInternal, err)
	}
	return u, nil
}

// FindByID returns (nil, nil) when the id is unknown.
func (d *UserDirectory) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, err := d.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup user by id: %w", tt.ErrInternal, err)
	}
	return u, nil
}

// UpdatePassword rehashes plaintext and stores the new hash.
func (d *UserDirectory) UpdatePassword(ctx context.Context, id, plaintext string) error {
	hash, err := d.hasher.Hash(plaintext)
	if err != nil {
		return err
	}
	if err := d.users.UpdatePasswordHash(ctx, id, hash); err != nil {
		if errors.Is(err, tt.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: update password: %w", tt.ErrInternal, err)
	}
	return nil
}
