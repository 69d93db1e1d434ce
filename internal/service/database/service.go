package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"dbhost/pkg/constants"
	"dbhost/pkg/interfaces"
	"dbhost/pkg/logger"
	"dbhost/pkg/notification"
	"dbhost/pkg/store/mysql"
	"dbhost/pkg/store/mysql/model"
	redisstore "dbhost/pkg/store/redis"
)

// ProxyPreviewer renders the proxy resource a database would get when made public
type ProxyPreviewer interface {
	PreviewYAML(db *model.StandaloneRedis) (string, error)
}

// Session is a mounted controller plus the notifications it emitted
type Session struct {
	*Controller
	Recorder *notification.Recorder
}

// Service mounts database settings controllers
type Service struct {
	repo      *mysql.Repository
	proxy     interfaces.ProxyManager
	publisher *notification.RedisPublisher
	feishu    *notification.FeishuNotifier

	lockClient *redis.Client
}

// NewService creates the database settings service. publisher and feishu may be nil.
func NewService(repo *mysql.Repository, proxy interfaces.ProxyManager, publisher *notification.RedisPublisher, feishu *notification.FeishuNotifier) *Service {
	return &Service{
		repo:      repo,
		proxy:     proxy,
		publisher: publisher,
		feishu:    feishu,
	}
}

// EnableLocking serializes operations on the same database across replicas
func (s *Service) EnableLocking(client *redis.Client) {
	s.lockClient = client
}

// Exclusive runs fn while holding the operation lock of a database.
// Without a lock client fn runs directly.
func (s *Service) Exclusive(ctx context.Context, uuid string, fn func() error) error {
	if s.lockClient == nil {
		return fn()
	}

	lock := redisstore.NewLock(s.lockClient, constants.DatabaseLockKeyPrefix+uuid, 0)
	acquired, err := lock.TryLock(ctx)
	if err != nil {
		return err
	}
	if !acquired {
		return ErrDatabaseBusy
	}
	defer func() {
		// Released even when the request was canceled
		if err := lock.Unlock(context.WithoutCancel(ctx)); err != nil {
			logger.WarnCtx(ctx, "Failed to release lock of database %s: %v", uuid, err)
		}
	}()

	return fn()
}

// Mount loads a database and builds a controller for one request
func (s *Service) Mount(ctx context.Context, uuid string) (*Session, error) {
	db, err := s.repo.Redis.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, ErrDatabaseNotFound
	}

	recorder := notification.NewRecorder(db.UUID)
	sinks := notification.Multi{recorder}
	if s.publisher != nil {
		sinks = append(sinks, s.publisher.For(db.UUID))
	}

	deps := Dependencies{
		Proxy:      s.proxy,
		Store:      s.repo.Redis,
		EnvVars:    s.repo.EnvironmentVariable,
		Transactor: s.repo.GetDatastore(),
		Notifier:   sinks,
	}
	if s.feishu != nil && s.feishu.Enabled() {
		deps.Alerter = s.feishu.For(db.Name, db.UUID)
	}

	return &Session{
		Controller: NewController(db, deps),
		Recorder:   recorder,
	}, nil
}

// SharedVariables reports, per propagated credential key, whether the variable is shared
func (s *Service) SharedVariables(ctx context.Context, db *model.StandaloneRedis) (map[string]bool, error) {
	keys := []string{constants.EnvRedisUsername, constants.EnvRedisPassword}
	shared := make(map[string]bool, len(keys))
	for _, key := range keys {
		ok, err := s.repo.EnvironmentVariable.IsShared(ctx, db.ID, key)
		if err != nil {
			return nil, err
		}
		shared[key] = ok
	}
	return shared, nil
}

// EnvironmentVariables lists the runtime variables of a database
func (s *Service) EnvironmentVariables(ctx context.Context, db *model.StandaloneRedis) ([]*model.EnvironmentVariable, error) {
	return s.repo.EnvironmentVariable.ListByDatabase(ctx, db.ID)
}

// PreviewProxy renders the proxy resource for a database
func (s *Service) PreviewProxy(ctx context.Context, uuid string) (string, error) {
	previewer, ok := s.proxy.(ProxyPreviewer)
	if !ok {
		return "", fmt.Errorf("proxy manager does not support previews")
	}
	db, err := s.repo.Redis.GetByUUID(ctx, uuid)
	if err != nil {
		return "", err
	}
	if db == nil {
		return "", ErrDatabaseNotFound
	}
	return previewer.PreviewYAML(db)
}

// Subscribe streams notifications published for a database
func (s *Service) Subscribe(ctx context.Context, uuid string) (<-chan interfaces.Notification, error) {
	if s.publisher == nil {
		return nil, fmt.Errorf("notification publisher not configured")
	}
	return s.publisher.Subscribe(ctx, uuid)
}
