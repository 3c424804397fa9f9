package repository

import (
	"context"
	"testing"
	"time"

	"unimarket/internal/domain"

	"github.com/google/uuid"
)

func TestCommentRepository_ListOldestFirstScopedToProduct(t *testing.T) {
	repo := NewCommentRepository(newTestStore(t))
	ctx := context.Background()
	product := uuid.New()
	other := uuid.New()

	base := time.Now().Add(-time.Hour)
	c1 := &domain.Comment{ID: uuid.New(), ProductID: product, UserID: uuid.New(), UserNickname: "a", Content: "first", CreatedAt: base}
	c3 := &domain.Comment{ID: uuid.New(), ProductID: product, UserID: uuid.New(), UserNickname: "c", Content: "third", CreatedAt: base.Add(2 * time.Minute)}
	c2 := &domain.Comment{ID: uuid.New(), ProductID: product, UserID: uuid.New(), UserNickname: "b", Content: "second", CreatedAt: base.Add(time.Minute)}
	elsewhere := &domain.Comment{ID: uuid.New(), ProductID: other, UserID: uuid.New(), UserNickname: "d", Content: "noise", CreatedAt: base}

	// Insertion order deliberately differs from chronological order.
	for _, c := range []*domain.Comment{c1, c3, c2, elsewhere} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	results, err := repo.ListByProduct(ctx, product)
	if err != nil {
		t.Fatalf("ListByProduct failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(results))
	}
	for i, want := range []string{"first", "second", "third"} {
		if results[i].Content != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, results[i].Content)
		}
	}
}

func TestCommentRepository_OrphansSurviveProductDeletion(t *testing.T) {
	store := newTestStore(t)
	products := NewProductRepository(store)
	comments := NewCommentRepository(store)
	ctx := context.Background()

	product := activeProduct(uuid.New(), "Books", time.Now())
	if err := products.Create(ctx, product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	comment := &domain.Comment{ID: uuid.New(), ProductID: product.ID, UserID: uuid.New(), UserNickname: "x", Content: "still here", CreatedAt: time.Now()}
	if err := comments.Create(ctx, comment); err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	if err := products.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	// No cascade: the comment record remains, merely unreachable through
	// normal product browsing.
	remaining, err := comments.ListByProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("ListByProduct failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Content != "still here" {
		t.Fatalf("expected the orphaned comment to survive, got %+v", remaining)
	}
}
