package repository

import (
	"context"
	"errors"
	"fmt"

	"unimarket/internal/domain"
	"unimarket/internal/storage"

	"github.com/google/uuid"
)

const usersCollection = "users"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type userRepository struct {
	store *storage.FileStore
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(store *storage.FileStore) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) load() ([]*domain.User, error) {
	var users []*domain.User
	if err := r.store.Load(usersCollection, &users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

// Create appends a new user. Email uniqueness is an exact, case-sensitive
// match across the whole collection.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	users, err := r.load()
	if err != nil {
		return err
	}

	for _, u := range users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	users = append(users, user)
	if err := r.store.Save(usersCollection, users); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update replaces the stored record matching user.ID.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	users, err := r.load()
	if err != nil {
		return err
	}

	for i, u := range users {
		if u.ID == user.ID {
			users[i] = user
			if err := r.store.Save(usersCollection, users); err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}
			return nil
		}
	}
	return ErrUserNotFound
}

// FindByEmail retrieves a user by exact email match
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

// FindByID retrieves a user by ID
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}
