package service

import (
	"context"
	"strings"
	"time"

	"unimarket/internal/domain"
	"unimarket/internal/repository"
	"unimarket/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommentService defines the interface for comment business logic
type CommentService interface {
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Comment, error)
	Add(ctx context.Context, productID uuid.UUID, content string) (*domain.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	sessions    *session.Manager
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	sessions *session.Manager,
	logger *zap.Logger,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		sessions:    sessions,
		logger:      logger,
	}
}

// ListForProduct returns a listing's comments, oldest first.
func (s *commentService) ListForProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Comment, error) {
	return s.commentRepo.ListByProduct(ctx, productID)
}

// Add appends a comment by the current session user, embedding a snapshot
// of their nickname and avatar. Content that is blank after trimming is
// rejected with ErrEmptyContent.
func (s *commentService) Add(ctx context.Context, productID uuid.UUID, content string) (*domain.Comment, error) {
	author, err := currentUser(ctx, s.sessions, s.userRepo)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	comment := &domain.Comment{
		ID:           uuid.New(),
		ProductID:    productID,
		UserID:       author.ID,
		UserNickname: author.Nickname,
		UserAvatar:   author.AvatarURL,
		Content:      content,
		CreatedAt:    time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("Comment added",
		zap.String("product_id", productID.String()),
		zap.String("user_id", author.ID.String()),
	)
	return comment, nil
}
