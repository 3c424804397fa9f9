package service

import (
	"context"
	"time"

	"unimarket/internal/domain"
	"unimarket/internal/repository"
	"unimarket/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxImagesPerListing caps the stored image sequence. Extra entries are
// dropped silently rather than rejected, matching the selection behavior
// in the listing form.
const MaxImagesPerListing = 3

// ProductInput is the caller-supplied portion of a new listing. Seller
// identity, snapshots, status and timestamps are stamped by the service.
type ProductInput struct {
	Title       string
	Description string
	Price       int
	Category    string
	Images      []string
	Condition   domain.Condition
	PriceNote   string
	Tags        []string
}

// ProductUpdate carries partial listing edits. Nil fields keep the stored
// values; non-nil slices replace wholesale. ID, seller identity, seller
// snapshots and CreatedAt can never be overridden.
type ProductUpdate struct {
	Title       *string
	Description *string
	Price       *int
	Category    *string
	Images      []string
	Condition   *domain.Condition
	PriceNote   *string
	Tags        []string
	Status      *domain.Status
}

// ProductService defines the interface for listing business logic
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, update ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	sessions    *session.Manager
	logger      *zap.Logger
}

// NewProductService creates a new instance of ProductService
func NewProductService(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	sessions *session.Manager,
	logger *zap.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		userRepo:    userRepo,
		sessions:    sessions,
		logger:      logger,
	}
}

// Create publishes a new ACTIVE listing for the current session user,
// embedding a snapshot of the seller's nickname and avatar as they are
// right now.
func (s *productService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	seller, err := currentUser(ctx, s.sessions, s.userRepo)
	if err != nil {
		return nil, err
	}

	images := input.Images
	if len(images) > MaxImagesPerListing {
		images = images[:MaxImagesPerListing]
	}

	product := &domain.Product{
		ID:             uuid.New(),
		SellerID:       seller.ID,
		SellerNickname: seller.Nickname,
		SellerAvatar:   seller.AvatarURL,
		Title:          input.Title,
		Description:    input.Description,
		Price:          input.Price,
		Category:       input.Category,
		Images:         images,
		Condition:      input.Condition,
		PriceNote:      input.PriceNote,
		Tags:           input.Tags,
		Status:         domain.StatusActive,
		CreatedAt:      time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", seller.ID.String()),
	)
	return product, nil
}

// Get retrieves a listing by id regardless of status.
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// List returns publicly visible listings, newest first.
func (s *productService) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	return s.productRepo.List(ctx, filter)
}

// Update merges the supplied fields into an owned listing. Callers that are
// not the seller get ErrForbidden.
func (s *productService) Update(ctx context.Context, id uuid.UUID, update ProductUpdate) (*domain.Product, error) {
	product, err := s.requireOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		product.Title = *update.Title
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Images != nil {
		images := update.Images
		if len(images) > MaxImagesPerListing {
			images = images[:MaxImagesPerListing]
		}
		product.Images = images
	}
	if update.Condition != nil {
		product.Condition = *update.Condition
	}
	if update.PriceNote != nil {
		product.PriceNote = *update.PriceNote
	}
	if update.Tags != nil {
		product.Tags = update.Tags
	}
	if update.Status != nil {
		product.Status = *update.Status
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", id.String()))
	return product, nil
}

// Delete removes an owned listing outright. Comments on it are left behind.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.requireOwned(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// requireOwned loads a listing and checks that the current session user is
// its seller.
func (s *productService) requireOwned(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	user, err := currentUser(ctx, s.sessions, s.userRepo)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerID != user.ID {
		return nil, ErrForbidden
	}
	return product, nil
}
