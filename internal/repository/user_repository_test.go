package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"unimarket/internal/domain"
	"unimarket/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *storage.FileStore {
	t.Helper()
	store, err := storage.New(t.TempDir(), 1024*1024, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestUserRepository_DuplicateEmailLeavesFirstRecordIntact(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	first := &domain.User{ID: uuid.New(), Email: "a@uni.example", Nickname: "first", CreatedAt: time.Now()}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := &domain.User{ID: uuid.New(), Email: "a@uni.example", Nickname: "second", CreatedAt: time.Now()}
	if err := repo.Create(ctx, second); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	got, err := repo.FindByEmail(ctx, "a@uni.example")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if got.ID != first.ID || got.Nickname != "first" {
		t.Fatalf("first record was disturbed: %+v", got)
	}
}

func TestUserRepository_EmailMatchIsCaseSensitive(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	user := &domain.User{ID: uuid.New(), Email: "Casey@uni.example", Nickname: "casey", CreatedAt: time.Now()}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := repo.FindByEmail(ctx, "casey@uni.example"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("lowercased lookup should miss, got %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "Casey@uni.example"); err != nil {
		t.Fatalf("exact lookup should hit: %v", err)
	}
}

func TestUserRepository_UpdatePersists(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	user := &domain.User{ID: uuid.New(), Email: "b@uni.example", Nickname: "before", CreatedAt: time.Now()}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	user.Nickname = "after"
	user.SocialLinks = &domain.SocialLinks{Instagram: "after_ig"}
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Nickname != "after" || got.SocialLinks == nil || got.SocialLinks.Instagram != "after_ig" {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestUserRepository_UpdateUnknownUser(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))

	ghost := &domain.User{ID: uuid.New(), Email: "ghost@uni.example", Nickname: "ghost"}
	if err := repo.Update(context.Background(), ghost); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
