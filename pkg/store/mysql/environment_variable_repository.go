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

// EnvironmentVariableRepository handles runtime environment variables scoped to a database
type EnvironmentVariableRepository struct {
	ds *Datastore
}

// NewEnvironmentVariableRepository creates a new environment variable repository
func NewEnvironmentVariableRepository(ds *Datastore) *EnvironmentVariableRepository {
	return &EnvironmentVariableRepository{ds: ds}
}

// FindByKey returns the variable with exactly this key for the database, nil when missing
func (r *EnvironmentVariableRepository) FindByKey(ctx context.Context, databaseID int64, key string) (*model.EnvironmentVariable, error) {
	var env model.EnvironmentVariable
	err := r.ds.DB(ctx).
		Where(map[string]interface{}{"standalone_redis_id": databaseID, "key": key}).
		First(&env).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find environment variable %s: %w", key, err)
	}
	return &env, nil
}

// Create creates a new environment variable
func (r *EnvironmentVariableRepository) Create(ctx context.Context, env *model.EnvironmentVariable) error {
	if env.UUID == "" {
		env.UUID = uuid.NewString()
	}
	if err := r.ds.DB(ctx).Create(env).Error; err != nil {
		return fmt.Errorf("failed to create environment variable %s: %w", env.Key, err)
	}
	return nil
}

// UpdateValue overwrites the value of an existing variable
func (r *EnvironmentVariableRepository) UpdateValue(ctx context.Context, env *model.EnvironmentVariable, value string) error {
	err := r.ds.DB(ctx).Model(env).Update("value", value).Error
	if err != nil {
		return fmt.Errorf("failed to update environment variable %s: %w", env.Key, err)
	}
	env.Value = value
	return nil
}

// IsShared reports whether a shared variable with this key exists for the database
func (r *EnvironmentVariableRepository) IsShared(ctx context.Context, databaseID int64, key string) (bool, error) {
	var count int64
	err := r.ds.DB(ctx).Model(&model.EnvironmentVariable{}).
		Where(map[string]interface{}{"standalone_redis_id": databaseID, "key": key, "is_shared": true}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check shared environment variable %s: %w", key, err)
	}
	return count > 0, nil
}

// ListByDatabase lists all variables of a database ordered by key
func (r *EnvironmentVariableRepository) ListByDatabase(ctx context.Context, databaseID int64) ([]*model.EnvironmentVariable, error) {
	var envs []*model.EnvironmentVariable
	err := r.ds.DB(ctx).
		Where(map[string]interface{}{"standalone_redis_id": databaseID}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).
		Find(&envs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list environment variables: %w", err)
	}
	return envs, nil
}
