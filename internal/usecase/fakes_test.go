package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"ai-chat-backend/internal/domain"
	"ai-chat-backend/internal/domain/model"
	"ai-chat-backend/internal/domain/ports/adapter"
	"ai-chat-backend/internal/domain/ports/repository"
	"ai-chat-backend/internal/normalize"
)

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// ---- in-memory fakes ----

type memUserRepo struct {
	mu     sync.Mutex
	byName map[string]*model.User
	byID   map[string]*model.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byName: map[string]*model.User{}, byID: map[string]*model.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[u.Username]; ok {
		return domain.ErrDuplicateUsername
	}
	cp := *u
	m.byName[u.Username] = &cp
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byName[username]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

type memSessionRepo struct {
	mu         sync.Mutex
	byID       map[string]string
	saveErr    error
	resolveErr error
}

var _ repository.SessionRepository = (*memSessionRepo)(nil)

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{byID: map[string]string{}}
}

func (m *memSessionRepo) Save(ctx context.Context, sessionID, userID string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[sessionID] = userID
	return nil
}

func (m *memSessionRepo) Resolve(ctx context.Context, sessionID string) (string, error) {
	if m.resolveErr != nil {
		return "", m.resolveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if uid, ok := m.byID[sessionID]; ok {
		return uid, nil
	}
	return "", domain.ErrUnauthenticated
}

func (m *memSessionRepo) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, sessionID)
	return nil
}

type memHistoryRepo struct {
	mu        sync.Mutex
	recs      []*model.HistoryRecord
	appendErr error
	findErr   error
}

var _ repository.HistoryRepository = (*memHistoryRepo)(nil)

func newMemHistoryRepo() *memHistoryRepo { return &memHistoryRepo{} }

func (m *memHistoryRepo) Append(ctx context.Context, rec *model.HistoryRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.recs = append(m.recs, &cp)
	return nil
}

func (m *memHistoryRepo) FindByUser(ctx context.Context, userID string) ([]*model.HistoryRecord, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.HistoryRecord{}
	for _, r := range m.recs {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memHistoryRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recs)
}

type fakeAI struct {
	mu    sync.Mutex
	reply normalize.Value
	err   error
	calls int
}

var _ adapter.CompletionClient = (*fakeAI)(nil)

func (f *fakeAI) Complete(ctx context.Context, prompt string) (normalize.Value, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return normalize.Absent(), f.err
	}
	return f.reply, nil
}

func (f *fakeAI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
