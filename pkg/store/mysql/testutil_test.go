package mysql

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"

	"dbhost/pkg/store/mysql/model"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "dbhost-test.db")
	ds, err := OpenDatastore(sqlite.Open(dsn))
	require.NoError(t, err)
	require.NoError(t, ds.Migrate(context.Background()))
	t.Cleanup(func() { _ = ds.Close() })

	return NewRepositoryFromDatastore(ds)
}

func seedRedis(t *testing.T, repo *Repository) *model.StandaloneRedis {
	t.Helper()
	ctx := context.Background()

	server := &model.Server{Name: "edge-1", IP: "203.0.113.10"}
	require.NoError(t, repo.Server.Create(ctx, server))

	db := &model.StandaloneRedis{
		Name:          "cache",
		Image:         "redis:7.2",
		RedisUsername: "default",
		RedisPassword: "s3cret",
		Status:        "running:healthy",
		ServerID:      server.ID,
	}
	require.NoError(t, repo.Redis.Create(ctx, db))
	return db
}
