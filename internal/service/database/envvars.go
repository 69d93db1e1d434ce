package database

import (
	"context"
	"fmt"

	"dbhost/pkg/interfaces"
	"dbhost/pkg/logger"
	"dbhost/pkg/store/mysql/model"
)

// upsertEnvironmentVariable writes key=value for the database. Shared variables are
// managed elsewhere and are left untouched.
func upsertEnvironmentVariable(ctx context.Context, store interfaces.EnvironmentVariableStore, databaseID int64, key, value string) error {
	existing, err := store.FindByKey(ctx, databaseID, key)
	if err != nil {
		return err
	}

	if existing == nil {
		env := &model.EnvironmentVariable{
			Key:               key,
			Value:             value,
			IsShared:          false,
			StandaloneRedisID: databaseID,
		}
		if err := store.Create(ctx, env); err != nil {
			return err
		}
		logger.DebugCtx(ctx, "created environment variable %s for database %d", key, databaseID)
		return nil
	}

	if existing.IsShared {
		logger.DebugCtx(ctx, "environment variable %s of database %d is shared, skipping", key, databaseID)
		return nil
	}

	if err := store.UpdateValue(ctx, existing, value); err != nil {
		return fmt.Errorf("failed to propagate %s: %w", key, err)
	}
	return nil
}
