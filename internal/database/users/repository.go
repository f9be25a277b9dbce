// Package users provides the relational credential store.
//
// # Usage
//
//	repo := users.NewRepository(db, hasher)
//	err := repo.AddUser(ctx, user)
package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mlukasik/auth-service/internal/domain"
	"github.com/mlukasik/auth-service/internal/entities"
)

// Repository implements domain.UserStore on a relational table.
type Repository struct {
	db     *gorm.DB
	hasher domain.PasswordHasher
}

var _ domain.UserStore = (*Repository)(nil)

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB, hasher domain.PasswordHasher) *Repository {
	return &Repository{db: db, hasher: hasher}
}

// AddUser inserts a user row. The insert is conflict-aware rather than
// check-then-insert, which closes the race between concurrent signups
// for the same email.
func (r *Repository) AddUser(ctx context.Context, user domain.User) error {
	row := entities.User{
		Email:        user.Email.Expose(),
		PasswordHash: user.PasswordHash,
		Requires2FA:  user.Requires2FA,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		return fmt.Errorf("failed to insert user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserAlreadyExists
	}
	return nil
}

// GetUser loads the user row for the email.
func (r *Repository) GetUser(ctx context.Context, email domain.Email) (domain.User, error) {
	var row entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email.Expose()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	// stored addresses were normalized on insert, a parse failure here
	// means the row is corrupt
	storedEmail, err := domain.ParseEmail(row.Email)
	if err != nil {
		return domain.User{}, fmt.Errorf("corrupt user record: %w", err)
	}

	return domain.User{
		Email:        storedEmail,
		PasswordHash: row.PasswordHash,
		Requires2FA:  row.Requires2FA,
	}, nil
}

// ValidateUser loads the user and verifies the password against the
// stored hash on the hasher's worker pool.
func (r *Repository) ValidateUser(ctx context.Context, email domain.Email, password domain.Password) error {
	user, err := r.GetUser(ctx, email)
	if err != nil {
		return err
	}

	if err := r.hasher.Verify(ctx, password, user.PasswordHash); err != nil {
		if errors.Is(err, domain.ErrPasswordMismatch) {
			return domain.ErrInvalidCredentials
		}
		// malformed hash or hashing failure: bad data, not bad password
		return fmt.Errorf("failed to verify password: %w", err)
	}
	return nil
}

// DeleteUser removes the user row for the email.
func (r *Repository) DeleteUser(ctx context.Context, email domain.Email) error {
	result := r.db.WithContext(ctx).
		Where("email = ?", email.Expose()).
		Delete(&entities.User{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
