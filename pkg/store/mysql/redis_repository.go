package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dbhost/pkg/store/mysql/model"
)

// RedisRepository handles standalone Redis database persistence in MySQL
type RedisRepository struct {
	ds *Datastore
}

// NewRedisRepository creates a new Redis database repository
func NewRedisRepository(ds *Datastore) *RedisRepository {
	return &RedisRepository{ds: ds}
}

// Create creates a new Redis database record
func (r *RedisRepository) Create(ctx context.Context, db *model.StandaloneRedis) error {
	if db.UUID == "" {
		db.UUID = uuid.NewString()
	}
	return r.ds.DB(ctx).Omit(clause.Associations).Create(db).Error
}

// GetByUUID retrieves a Redis database with its server, nil when missing
func (r *RedisRepository) GetByUUID(ctx context.Context, id string) (*model.StandaloneRedis, error) {
	var db model.StandaloneRedis
	err := r.ds.DB(ctx).Preload("Server").Where("uuid = ?", id).First(&db).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get redis database: %w", err)
	}
	return &db, nil
}

// Save persists every column of the record. The server association is never written.
func (r *RedisRepository) Save(ctx context.Context, db *model.StandaloneRedis) error {
	if err := r.ds.DB(ctx).Omit(clause.Associations).Save(db).Error; err != nil {
		return fmt.Errorf("failed to save redis database %s: %w", db.UUID, err)
	}
	return nil
}

// Reload replaces db in place with its persisted state
func (r *RedisRepository) Reload(ctx context.Context, db *model.StandaloneRedis) error {
	var fresh model.StandaloneRedis
	err := r.ds.DB(ctx).Preload("Server").First(&fresh, db.ID).Error
	if err != nil {
		return fmt.Errorf("failed to reload redis database %s: %w", db.UUID, err)
	}
	*db = fresh
	return nil
}

// UpdateStatus updates the lifecycle status reported by the runtime
func (r *RedisRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	res := r.ds.DB(ctx).Model(&model.StandaloneRedis{}).
		Where("uuid = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update redis database status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("redis database not found: %s", id)
	}
	return nil
}
