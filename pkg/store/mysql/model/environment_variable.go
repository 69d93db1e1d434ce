package model

import "time"

// EnvironmentVariable MySQL model for environment_variables table.
// Rows scoped to a Redis database are injected into its container on (re)start.
type EnvironmentVariable struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID              string    `gorm:"column:uuid;type:varchar(64);not null;uniqueIndex:idx_env_uuid_unique" json:"uuid"`
	Key               string    `gorm:"column:key;type:varchar(255);not null;index:idx_env_scope_key,priority:2" json:"key"`
	Value             string    `gorm:"column:value;type:text" json:"value"`
	IsShared          bool      `gorm:"column:is_shared;type:tinyint(1);not null;default:0" json:"is_shared"`
	StandaloneRedisID int64     `gorm:"column:standalone_redis_id;not null;index:idx_env_scope_key,priority:1" json:"standalone_redis_id"`
	CreatedAt         time.Time `gorm:"column:created_at;precision:3;not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;precision:3;not null" json:"updated_at"`
}

// TableName specifies the table name for EnvironmentVariable
func (EnvironmentVariable) TableName() string {
	return "environment_variables"
}
