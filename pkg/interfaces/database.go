package interfaces

import (
	"context"

	"dbhost/pkg/constants"
	"dbhost/pkg/store/mysql/model"
)

// ProxyManager opens and closes the public network path to a database
type ProxyManager interface {
	// Start exposes the database on its public port
	Start(ctx context.Context, db *model.StandaloneRedis) error

	// Stop removes the public path. Stopping an absent proxy is not an error.
	Stop(ctx context.Context, db *model.StandaloneRedis) error
}

// ServerCapabilities tells which optional features the hosting server supports
type ServerCapabilities interface {
	IsLogDrainEnabled() bool
}

// DatabaseStore persists database records
type DatabaseStore interface {
	Save(ctx context.Context, db *model.StandaloneRedis) error
	// Reload replaces db in place with its persisted state
	Reload(ctx context.Context, db *model.StandaloneRedis) error
}

// EnvironmentVariableStore manages runtime environment variables scoped to a database
type EnvironmentVariableStore interface {
	FindByKey(ctx context.Context, databaseID int64, key string) (*model.EnvironmentVariable, error)
	Create(ctx context.Context, env *model.EnvironmentVariable) error
	UpdateValue(ctx context.Context, env *model.EnvironmentVariable, value string) error
}

// Transactor runs fn atomically; stores called with the ctx passed to fn join the transaction
type Transactor interface {
	ExecTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier surfaces messages to whoever drives the settings form.
// Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, level constants.NotificationLevel, message string)
}

// Alerter escalates operational failures to operators. It must not block.
type Alerter interface {
	Alert(ctx context.Context, message string)
}

// Notification is a message emitted during one controller operation
type Notification struct {
	Level    constants.NotificationLevel `json:"level"`
	Message  string                      `json:"message"`
	Database string                      `json:"database,omitempty"`
}
