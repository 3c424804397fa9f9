package session

import (
	"fmt"

	"unimarket/internal/storage"

	"github.com/google/uuid"
)

const sessionCollection = "session"

// record is the single persisted entry of the session collection.
type record struct {
	UserID uuid.UUID `json:"user_id"`
}

// Manager tracks the one logical session slot for the process. Login and
// registration set it, logout clears it, and it survives restarts through
// the store. There is no expiry and no multi-session support.
//
// The manager is injected explicitly into every service that needs the
// acting identity; nothing reads it through ambient global state.
type Manager struct {
	store *storage.FileStore
}

// NewManager creates a session manager backed by the given store.
func NewManager(store *storage.FileStore) *Manager {
	return &Manager{store: store}
}

// Current returns the active user id, or ok=false when nobody is logged in.
func (m *Manager) Current() (uuid.UUID, bool, error) {
	var records []record
	if err := m.store.Load(sessionCollection, &records); err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to load session: %w", err)
	}
	if len(records) == 0 {
		return uuid.Nil, false, nil
	}
	return records[0].UserID, true, nil
}

// Set makes id the current session, replacing any previous one.
func (m *Manager) Set(id uuid.UUID) error {
	if err := m.store.Save(sessionCollection, []record{{UserID: id}}); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Clear logs the current user out. Clearing an already-empty slot is not an
// error.
func (m *Manager) Clear() error {
	if err := m.store.Save(sessionCollection, []record{}); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
