package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"unimarket/internal/domain"
	"unimarket/internal/storage"

	"github.com/google/uuid"
)

const productsCollection = "products"

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductFilter narrows List results. Both predicates are exact-match and
// combine with AND semantics; nil fields are ignored.
type ProductFilter struct {
	SellerID *uuid.UUID
	Category *string
}

// ProductRepository defines the interface for listing data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
}

type productRepository struct {
	store *storage.FileStore
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(store *storage.FileStore) ProductRepository {
	return &productRepository{store: store}
}

func (r *productRepository) load() ([]*domain.Product, error) {
	var products []*domain.Product
	if err := r.store.Load(productsCollection, &products); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// Create appends a new listing to the collection.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	products, err := r.load()
	if err != nil {
		return err
	}

	products = append(products, product)
	if err := r.store.Save(productsCollection, products); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update replaces the stored record matching product.ID.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	products, err := r.load()
	if err != nil {
		return err
	}

	for i, p := range products {
		if p.ID == product.ID {
			products[i] = product
			if err := r.store.Save(productsCollection, products); err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
			return nil
		}
	}
	return ErrProductNotFound
}

// Delete removes the listing outright. This is a hard delete, not a status
// flip; comments on the listing are left in place and become unreachable
// through product-scoped queries.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	products, err := r.load()
	if err != nil {
		return err
	}

	remaining := products[:0]
	for _, p := range products {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}
	if len(remaining) == len(products) {
		return ErrProductNotFound
	}

	if err := r.store.Save(productsCollection, remaining); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// FindByID retrieves a listing regardless of its status. Callers that need
// the public-visibility rule must go through List.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	products, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrProductNotFound
}

// List returns ACTIVE listings sorted newest first, then narrowed by the
// optional filter predicates.
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	products, err := r.load()
	if err != nil {
		return nil, err
	}

	results := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if p.Status != domain.StatusActive {
			continue
		}
		if filter.SellerID != nil && p.SellerID != *filter.SellerID {
			continue
		}
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		results = append(results, p)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}
