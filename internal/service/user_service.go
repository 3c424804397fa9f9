package service

import (
	"context"
	"errors"
	"time"

	"unimarket/internal/domain"
	"unimarket/internal/repository"
	"unimarket/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnauthenticated = errors.New("no active session")
	ErrForbidden       = errors.New("operation not permitted for this user")
	ErrEmptyContent    = errors.New("content must not be blank")
)

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Nickname    *string
	AvatarURL   *string
	SocialLinks *domain.SocialLinks
}

// UserService defines the interface for account business logic
type UserService interface {
	Register(ctx context.Context, email, nickname string) (*domain.User, error)
	Login(ctx context.Context, email string) (*domain.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	sessions *session.Manager
	logger   *zap.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, sessions *session.Manager, logger *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates a new account and establishes it as the current session.
// Email is the sole identity token; there is no credential check anywhere
// in the system.
func (s *userService) Register(ctx context.Context, email, nickname string) (*domain.User, error) {
	user := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		Nickname:  nickname,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.sessions.Set(user.ID); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Login matches an account by email and makes it the current session.
func (s *userService) Login(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Set(user.ID); err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Logout clears the session slot.
func (s *userService) Logout(ctx context.Context) error {
	return s.sessions.Clear()
}

// CurrentUser resolves the session slot to a full account record. It
// returns ErrUnauthenticated when nobody is logged in.
func (s *userService) CurrentUser(ctx context.Context) (*domain.User, error) {
	return currentUser(ctx, s.sessions, s.userRepo)
}

// UpdateProfile merges the supplied fields into the current user's record.
// Snapshot copies of the nickname and avatar already embedded in products
// and comments keep their historical values.
func (s *userService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*domain.User, error) {
	user, err := currentUser(ctx, s.sessions, s.userRepo)
	if err != nil {
		return nil, err
	}

	if update.Nickname != nil {
		user.Nickname = *update.Nickname
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	if update.SocialLinks != nil {
		user.SocialLinks = update.SocialLinks
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", zap.String("user_id", user.ID.String()))
	return user, nil
}

// currentUser resolves the acting identity for a write operation. A session
// pointing at a user that no longer exists counts as unauthenticated.
func currentUser(ctx context.Context, sessions *session.Manager, users repository.UserRepository) (*domain.User, error) {
	id, ok, err := sessions.Current()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
