package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Bipul-Dubey/health-index/shared/models"
)

// MemoryStore keeps everything in process; state is lost on restart.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[uuid.UUID]models.Session
	predictions []models.PredictionRecord
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]models.Session),
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, username string) (*models.Session, error) {
	sess := models.Session{
		ID:            uuid.New(),
		Username:      username,
		Authenticated: true,
		CreatedAt:     s.now(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return &sess, nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) Revoke(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || !sess.Authenticated {
		return nil
	}
	now := s.now()
	sess.Authenticated = false
	sess.RevokedAt = &now
	s.sessions[id] = sess
	return nil
}

func (s *MemoryStore) Record(_ context.Context, rec *models.PredictionRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	s.mu.Lock()
	s.predictions = append(s.predictions, *rec)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Recent(_ context.Context, sessionID uuid.UUID, limit int) ([]models.PredictionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.PredictionRecord
	for i := len(s.predictions) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if s.predictions[i].SessionID == sessionID {
			out = append(out, s.predictions[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
