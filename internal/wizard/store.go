package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"frontend-gin/internal/models"
)

var ErrDraftNotFound = errors.New("draft not found")

// Store keeps a browser's wizard state between requests.
type Store interface {
	Load(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, id string, state State) error
	Delete(ctx context.Context, id string) error
}

// Resume loads the draft stored under id, or a fresh state when there is none.
func Resume(ctx context.Context, store Store, id string, now time.Time) (State, error) {
	state, err := store.Load(ctx, id)
	if errors.Is(err, ErrDraftNotFound) {
		return New(now), nil
	}
	if err != nil {
		return State{}, err
	}
	state.Page = ClampPage(state.Page)
	return state, nil
}

// ToDraft converts state to its stored row.
func ToDraft(id string, state State, now time.Time) (models.ChecklistDraft, error) {
	form, err := json.Marshal(state.Form)
	if err != nil {
		return models.ChecklistDraft{}, fmt.Errorf("encode draft %s: %w", id, err)
	}
	ts := now.Format("2006-01-02 15:04:05")
	return models.ChecklistDraft{
		ID:         id,
		Page:       state.Page,
		Form:       string(form),
		CreateTime: ts,
		UpdateTime: ts,
	}, nil
}

func FromDraft(draft models.ChecklistDraft) (State, error) {
	state := State{Page: ClampPage(draft.Page)}
	if draft.Form != "" {
		if err := json.Unmarshal([]byte(draft.Form), &state.Form); err != nil {
			return State{}, fmt.Errorf("decode draft %s: %w", draft.ID, err)
		}
	}
	return state, nil
}

// MemoryStore is a Store backed by a map. It is used in tests and when no
// database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: map[string]State{}}
}

func (m *MemoryStore) Load(_ context.Context, id string) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.drafts[id]
	if !ok {
		return State{}, ErrDraftNotFound
	}
	return state, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[id] = state
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	return nil
}
