package service

import (
	"testing"

	"unimarket/internal/repository"
	"unimarket/internal/session"
	"unimarket/internal/storage"

	"go.uber.org/zap"
)

// testEnv wires the services over a real file store in a temp directory,
// the same shape cmd/market assembles in production.
type testEnv struct {
	users    UserService
	products ProductService
	comments CommentService

	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	commentRepo repository.CommentRepository
	sessions    *session.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := storage.New(t.TempDir(), 1024*1024, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	log := zap.NewNop()
	userRepo := repository.NewUserRepository(store)
	productRepo := repository.NewProductRepository(store)
	commentRepo := repository.NewCommentRepository(store)
	sessions := session.NewManager(store)

	return &testEnv{
		users:       NewUserService(userRepo, sessions, log),
		products:    NewProductService(productRepo, userRepo, sessions, log),
		comments:    NewCommentService(commentRepo, userRepo, sessions, log),
		userRepo:    userRepo,
		productRepo: productRepo,
		commentRepo: commentRepo,
		sessions:    sessions,
	}
}
