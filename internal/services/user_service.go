package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/card-binder-be/internal/common"
	"github.com/isdelr/card-binder-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, username, password string) (models.User, error)
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user, hashing their password. A taken username
// fails with common.ErrDuplicateUser and leaves the existing row untouched.
func (s *UserService) Register(ctx context.Context, username, password string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users(username, password_hash) VALUES(?, ?)",
		username, string(hashedPassword))
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, common.ErrDuplicateUser
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return models.User{ID: id, Username: username}, nil
}

// Authenticate verifies a user's credentials. An unknown username and a
// wrong password are indistinguishable to the caller: both fail with
// common.ErrInvalidCredentials, so usernames cannot be enumerated.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, common.ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, common.ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByUsername retrieves a single user by their username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user %s not found", username)
		}
		return models.User{}, err
	}
	return user, nil
}
