package database

import (
	"context"
	"errors"

	"dbhost/pkg/notification"
	"dbhost/pkg/store/mysql/model"
)

type fakeProxy struct {
	startCalls int
	stopCalls  int
	startErr   error
	stopErr    error
	panicMsg   string
}

func (p *fakeProxy) Start(_ context.Context, _ *model.StandaloneRedis) error {
	p.startCalls++
	if p.panicMsg != "" {
		panic(p.panicMsg)
	}
	return p.startErr
}

func (p *fakeProxy) Stop(_ context.Context, _ *model.StandaloneRedis) error {
	p.stopCalls++
	return p.stopErr
}

type fakeStore struct {
	saves     int
	saved     []model.StandaloneRedis
	saveErr   error
	persisted *model.StandaloneRedis
}

func (s *fakeStore) Save(_ context.Context, db *model.StandaloneRedis) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, *db)
	return nil
}

func (s *fakeStore) Reload(_ context.Context, db *model.StandaloneRedis) error {
	if s.persisted == nil {
		return errors.New("record not found")
	}
	*db = *s.persisted
	return nil
}

type fakeEnvStore struct {
	vars      map[string]*model.EnvironmentVariable
	created   []string
	updated   []string
	createErr error
}

func newFakeEnvStore(vars ...*model.EnvironmentVariable) *fakeEnvStore {
	s := &fakeEnvStore{vars: make(map[string]*model.EnvironmentVariable)}
	for _, v := range vars {
		s.vars[v.Key] = v
	}
	return s
}

func (s *fakeEnvStore) FindByKey(_ context.Context, _ int64, key string) (*model.EnvironmentVariable, error) {
	return s.vars[key], nil
}

func (s *fakeEnvStore) Create(_ context.Context, env *model.EnvironmentVariable) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, env.Key)
	s.vars[env.Key] = env
	return nil
}

func (s *fakeEnvStore) UpdateValue(_ context.Context, env *model.EnvironmentVariable, value string) error {
	s.updated = append(s.updated, env.Key)
	env.Value = value
	return nil
}

type fakeCapabilities bool

func (f fakeCapabilities) IsLogDrainEnabled() bool { return bool(f) }

type fakeTransactor struct {
	calls int
}

func (t *fakeTransactor) ExecTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeAlerter struct {
	alerts []string
}

func (a *fakeAlerter) Alert(_ context.Context, message string) {
	a.alerts = append(a.alerts, message)
}

type fixture struct {
	proxy    *fakeProxy
	store    *fakeStore
	envs     *fakeEnvStore
	tx       *fakeTransactor
	alerter  *fakeAlerter
	recorder *notification.Recorder
	ctrl     *Controller
}

func intPtr(v int) *int { return &v }

func newRecord() *model.StandaloneRedis {
	return &model.StandaloneRedis{
		ID:            1,
		UUID:          "r3d1s",
		Name:          "cache",
		Image:         "redis:7.2",
		RedisUsername: "default",
		RedisPassword: "s3cret",
		Status:        "running:healthy",
		Server:        &model.Server{IP: "203.0.113.10"},
	}
}

func newFixture(db *model.StandaloneRedis, logDrain bool) *fixture {
	f := &fixture{
		proxy:    &fakeProxy{},
		store:    &fakeStore{},
		envs:     newFakeEnvStore(),
		tx:       &fakeTransactor{},
		alerter:  &fakeAlerter{},
		recorder: notification.NewRecorder(db.UUID),
	}
	f.ctrl = NewController(db, Dependencies{
		Proxy:        f.proxy,
		Store:        f.store,
		EnvVars:      f.envs,
		Transactor:   f.tx,
		Capabilities: fakeCapabilities(logDrain),
		Notifier:     f.recorder,
		Alerter:      f.alerter,
	})
	return f
}

func (f *fixture) messages() []string {
	var out []string
	for _, n := range f.recorder.Notifications() {
		out = append(out, n.Message)
	}
	return out
}
