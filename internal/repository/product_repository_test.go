package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"unimarket/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func activeProduct(seller uuid.UUID, category string, createdAt time.Time) *domain.Product {
	return &domain.Product{
		ID:             uuid.New(),
		SellerID:       seller,
		SellerNickname: "seller",
		Title:          "listing",
		Description:    "a thing for sale",
		Price:          100,
		Category:       category,
		Images:         []string{"img-1"},
		Condition:      domain.ConditionGood,
		Tags:           []string{"tag"},
		Status:         domain.StatusActive,
		CreatedAt:      createdAt,
	}
}

// Feature: marketplace-core, Property 3: Listing creation preserves attributes
func TestProperty_ProductCreationPreservesAttributes(t *testing.T) {
	repo := NewProductRepository(newTestStore(t))
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("creating and retrieving a listing preserves all attributes", prop.ForAll(
		func(title string, description string, price int, category string) bool {
			product := &domain.Product{
				ID:             uuid.New(),
				SellerID:       uuid.New(),
				SellerNickname: "snapshot-nick",
				SellerAvatar:   "snapshot-avatar",
				Title:          title,
				Description:    description,
				Price:          price,
				Category:       category,
				Images:         []string{"a", "b"},
				Condition:      domain.ConditionLikeNew,
				PriceNote:      "estimated from market data",
				Tags:           []string{"one", "one", "two"},
				Status:         domain.StatusActive,
				CreatedAt:      time.Now(),
			}

			if err := repo.Create(ctx, product); err != nil {
				t.Logf("FAIL: create: %v", err)
				return false
			}

			retrieved, err := repo.FindByID(ctx, product.ID)
			if err != nil {
				t.Logf("FAIL: retrieve: %v", err)
				return false
			}

			if retrieved.Title != product.Title ||
				retrieved.Description != product.Description ||
				retrieved.Price != product.Price ||
				retrieved.Category != product.Category ||
				retrieved.SellerID != product.SellerID ||
				retrieved.SellerNickname != product.SellerNickname ||
				retrieved.Condition != product.Condition ||
				retrieved.Status != product.Status {
				t.Logf("FAIL: attribute mismatch: %+v vs %+v", retrieved, product)
				return false
			}
			if len(retrieved.Images) != 2 || len(retrieved.Tags) != 3 {
				t.Logf("FAIL: sequences not preserved: %+v", retrieved)
				return false
			}

			// Cleanup so the collection stays small across runs.
			_ = repo.Delete(ctx, product.ID)
			return true
		},
		gen.RegexMatch(`[A-Za-z0-9 ]{3,50}`),
		gen.RegexMatch(`[A-Za-z0-9 .,!?]{10,200}`),
		gen.IntRange(1, 999999),
		gen.RegexMatch(`[A-Za-z]{3,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProductRepository_ListOnlyActive(t *testing.T) {
	repo := NewProductRepository(newTestStore(t))
	ctx := context.Background()
	seller := uuid.New()

	active := activeProduct(seller, "Books", time.Now())
	sold := activeProduct(seller, "Books", time.Now())
	sold.Status = domain.StatusSold
	deleted := activeProduct(seller, "Books", time.Now())
	deleted.Status = domain.StatusDeleted

	for _, p := range []*domain.Product{active, sold, deleted} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	results, err := repo.List(ctx, ProductFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != active.ID {
		t.Fatalf("expected only the ACTIVE listing, got %d results", len(results))
	}

	// FindByID still serves non-active listings.
	if _, err := repo.FindByID(ctx, sold.ID); err != nil {
		t.Fatalf("FindByID should ignore status: %v", err)
	}
}

func TestProductRepository_ListNewestFirst(t *testing.T) {
	repo := NewProductRepository(newTestStore(t))
	ctx := context.Background()
	seller := uuid.New()

	t1 := time.Now().Add(-2 * time.Hour)
	t2 := time.Now().Add(-1 * time.Hour)
	older := activeProduct(seller, "Books", t1)
	newer := activeProduct(seller, "Books", t2)

	if err := repo.Create(ctx, older); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, newer); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	results, err := repo.List(ctx, ProductFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 2 || results[0].ID != newer.ID || results[1].ID != older.ID {
		t.Fatalf("expected newest first, got %+v", results)
	}
}

func TestProductRepository_FilterComposesWithAnd(t *testing.T) {
	repo := NewProductRepository(newTestStore(t))
	ctx := context.Background()
	sellerA := uuid.New()
	sellerB := uuid.New()

	match := activeProduct(sellerA, "Books", time.Now())
	wrongSeller := activeProduct(sellerB, "Books", time.Now())
	wrongCategory := activeProduct(sellerA, "Clothing", time.Now())

	for _, p := range []*domain.Product{match, wrongSeller, wrongCategory} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	category := "Books"
	results, err := repo.List(ctx, ProductFilter{SellerID: &sellerA, Category: &category})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != match.ID {
		t.Fatalf("expected exactly the AND match, got %d results", len(results))
	}
}

func TestProductRepository_DeleteUnknownProduct(t *testing.T) {
	repo := NewProductRepository(newTestStore(t))

	if err := repo.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_DeleteIsHard(t *testing.T) {
	repo := NewProductRepository(newTestStore(t))
	ctx := context.Background()

	product := activeProduct(uuid.New(), "Books", time.Now())
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := repo.FindByID(ctx, product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected the record gone, got %v", err)
	}
}
