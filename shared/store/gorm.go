package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Bipul-Dubey/health-index/shared/models"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&models.Session{}, &models.PredictionRecord{})
}

func (s *GormStore) Create(ctx context.Context, username string) (*models.Session, error) {
	sess := &models.Session{
		ID:            uuid.New(),
		Username:      username,
		Authenticated: true,
		CreatedAt:     time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *GormStore) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var sess models.Session
	if err := s.db.WithContext(ctx).First(&sess, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (s *GormStore) Revoke(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND authenticated = ?", id, true).
		Updates(map[string]interface{}{
			"authenticated": false,
			"revoked_at":    time.Now(),
		}).Error
}

func (s *GormStore) Record(ctx context.Context, rec *models.PredictionRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *GormStore) Recent(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.PredictionRecord, error) {
	var records []models.PredictionRecord
	q := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
