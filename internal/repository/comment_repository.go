package repository

import (
	"context"
	"fmt"
	"sort"

	"unimarket/internal/domain"
	"unimarket/internal/storage"

	"github.com/google/uuid"
)

const commentsCollection = "comments"

// CommentRepository defines the interface for comment data access. Comments
// are append-only.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Comment, error)
}

type commentRepository struct {
	store *storage.FileStore
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(store *storage.FileStore) CommentRepository {
	return &commentRepository{store: store}
}

func (r *commentRepository) load() ([]*domain.Comment, error) {
	var comments []*domain.Comment
	if err := r.store.Load(commentsCollection, &comments); err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	return comments, nil
}

// Create appends a new comment to the collection.
func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	comments, err := r.load()
	if err != nil {
		return err
	}

	comments = append(comments, comment)
	if err := r.store.Save(commentsCollection, comments); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListByProduct returns all comments for a listing sorted oldest first,
// the opposite order from product listing.
func (r *commentRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Comment, error) {
	comments, err := r.load()
	if err != nil {
		return nil, err
	}

	results := make([]*domain.Comment, 0, len(comments))
	for _, c := range comments {
		if c.ProductID == productID {
			results = append(results, c)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.Before(results[j].CreatedAt)
	})
	return results, nil
}
