package database

import (
	"context"
	"fmt"
	"strings"

	"dbhost/pkg/constants"
	"dbhost/pkg/image"
	"dbhost/pkg/interfaces"
	"dbhost/pkg/logger"
	"dbhost/pkg/status"
	"dbhost/pkg/store/mysql/model"
	"dbhost/pkg/validation"
)

// Dependencies are the collaborators a Controller calls out to
type Dependencies struct {
	Proxy        interfaces.ProxyManager
	Store        interfaces.DatabaseStore
	EnvVars      interfaces.EnvironmentVariableStore
	Transactor   interfaces.Transactor         // optional; Submit runs without a transaction when nil
	Capabilities interfaces.ServerCapabilities // optional; defaults to the record's current server
	Notifier     interfaces.Notifier
	Alerter      interfaces.Alerter // optional; receives operational failures only
	Redactor     *status.Redactor   // defaults to status.NewRedactor()
}

// Controller edits the settings of one Redis database.
// A controller is mounted per request and is not safe for concurrent use.
type Controller struct {
	db   *model.StandaloneRedis
	deps Dependencies

	// credentials as loaded, for dirty tracking
	loadedUsername string
	loadedPassword string

	dbURL       string
	dbURLPublic string
}

// NewController mounts a controller on a loaded record
func NewController(db *model.StandaloneRedis, deps Dependencies) *Controller {
	if deps.Redactor == nil {
		deps.Redactor = status.NewRedactor()
	}
	c := &Controller{db: db, deps: deps}
	c.markLoaded()
	return c
}

// Database returns the record being edited. Callers apply form changes to it
// before invoking an operation.
func (c *Controller) Database() *model.StandaloneRedis {
	return c.db
}

// DBURL is the internal connection URL
func (c *Controller) DBURL() string {
	return c.dbURL
}

// DBURLPublic is the public connection URL, empty when not exposed
func (c *Controller) DBURLPublic() string {
	return c.dbURLPublic
}

// Dirty reports whether a form field differs from the loaded value
func (c *Controller) Dirty(field string) bool {
	switch field {
	case "redis_username":
		return c.db.RedisUsername != c.loadedUsername
	case "redis_password":
		return c.db.RedisPassword != c.loadedPassword
	default:
		return false
	}
}

// ToggleExposure reacts to a change of the public flag already applied to the record
func (c *Controller) ToggleExposure(ctx context.Context) error {
	if err := c.checkExposure(); err != nil {
		c.db.IsPublic = false
		c.notify(ctx, constants.NotificationError, err.Message)
		return err
	}

	err := protect(func() error {
		return c.applyExposure(ctx)
	})
	if err != nil {
		c.db.IsPublic = !c.db.IsPublic
		c.refreshURLs()
		return c.handleError(ctx, "toggle public access", err)
	}
	return nil
}

func (c *Controller) checkExposure() *PreconditionError {
	if !c.db.IsPublic {
		return nil
	}
	if c.db.PublicPort == nil || *c.db.PublicPort <= 0 {
		return &PreconditionError{Message: constants.MsgPublicPortRequired}
	}
	if !strings.HasPrefix(c.db.Status, constants.DatabaseStatusRunning) {
		return &PreconditionError{Message: constants.MsgDatabaseNotRunning}
	}
	return nil
}

func (c *Controller) applyExposure(ctx context.Context) error {
	if c.db.IsPublic {
		if err := c.deps.Proxy.Start(ctx, c.db); err != nil {
			return err
		}
		c.notify(ctx, constants.NotificationSuccess, constants.MsgNowPublic)
	} else {
		if err := c.deps.Proxy.Stop(ctx, c.db); err != nil {
			return err
		}
		c.notify(ctx, constants.NotificationSuccess, constants.MsgNoLongerPublic)
	}

	c.refreshURLs()
	return c.deps.Store.Save(ctx, c.db)
}

// Submit validates the form, propagates changed credentials and saves the record
func (c *Controller) Submit(ctx context.Context) error {
	if err := c.validate(); err != nil {
		c.notify(ctx, constants.NotificationError, err.Error())
		return err
	}

	err := protect(func() error {
		return c.inTx(ctx, c.saveWithCredentials)
	})
	if err != nil {
		return c.handleError(ctx, "save database", err)
	}

	c.markLoaded()
	c.notify(ctx, constants.NotificationSuccess, constants.MsgDatabaseUpdated)
	return nil
}

func (c *Controller) validate() error {
	if err := validation.Validate(validation.DatabaseRules, c.db.FormValues()); err != nil {
		return err
	}
	if err := image.ValidateFormat(c.db.Image); err != nil {
		return validation.Errors{{Field: "image", Message: fmt.Sprintf("The Image field is invalid: %v.", err)}}
	}
	return nil
}

func (c *Controller) saveWithCredentials(ctx context.Context) error {
	if image.SupportsACLUsername(c.db.Image) && c.Dirty("redis_username") {
		if err := upsertEnvironmentVariable(ctx, c.deps.EnvVars, c.db.ID, constants.EnvRedisUsername, c.db.RedisUsername); err != nil {
			return err
		}
	}
	if c.Dirty("redis_password") {
		if err := upsertEnvironmentVariable(ctx, c.deps.EnvVars, c.db.ID, constants.EnvRedisPassword, c.db.RedisPassword); err != nil {
			return err
		}
	}
	return c.deps.Store.Save(ctx, c.db)
}

func (c *Controller) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if c.deps.Transactor == nil {
		return fn(ctx)
	}
	return c.deps.Transactor.ExecTx(ctx, fn)
}

// InstantSaveAdvanced saves the log drain flag when the server supports log drains
func (c *Controller) InstantSaveAdvanced(ctx context.Context) error {
	if caps := c.capabilities(); caps == nil || !caps.IsLogDrainEnabled() {
		c.db.IsLogDrainEnabled = false
		c.notify(ctx, constants.NotificationError, constants.MsgLogDrainNotSupported)
		return &PreconditionError{Message: constants.MsgLogDrainNotSupported}
	}

	err := protect(func() error {
		return c.deps.Store.Save(ctx, c.db)
	})
	if err != nil {
		return c.handleError(ctx, "save advanced settings", err)
	}

	c.notify(ctx, constants.NotificationSuccess, constants.MsgDatabaseUpdated)
	c.notify(ctx, constants.NotificationSuccess, constants.MsgRestartRequired)
	return nil
}

// Refresh reloads the record from the store
func (c *Controller) Refresh(ctx context.Context) error {
	err := protect(func() error {
		return c.deps.Store.Reload(ctx, c.db)
	})
	if err != nil {
		return c.handleError(ctx, "refresh database", err)
	}
	c.markLoaded()
	return nil
}

// handleError logs an operational failure and reports it to the caller
func (c *Controller) handleError(ctx context.Context, action string, err error) error {
	logger.ErrorCtx(ctx, "failed to %s for database %s: %v", action, c.db.UUID, err)
	message := c.deps.Redactor.Redact(err.Error())
	c.notify(ctx, constants.NotificationError, message)
	if c.deps.Alerter != nil {
		c.deps.Alerter.Alert(ctx, fmt.Sprintf("failed to %s: %s", action, message))
	}
	return &OperationError{Action: action, Message: message, Err: err}
}

// capabilities is resolved per call; Refresh replaces the loaded server
func (c *Controller) capabilities() interfaces.ServerCapabilities {
	if c.deps.Capabilities != nil {
		return c.deps.Capabilities
	}
	if c.db.Server != nil {
		return c.db.Server
	}
	return nil
}

func (c *Controller) notify(ctx context.Context, level constants.NotificationLevel, message string) {
	if c.deps.Notifier == nil {
		return
	}
	c.deps.Notifier.Notify(ctx, level, message)
}

func (c *Controller) markLoaded() {
	c.loadedUsername = c.db.RedisUsername
	c.loadedPassword = c.db.RedisPassword
	c.refreshURLs()
}

func (c *Controller) refreshURLs() {
	c.dbURL = c.db.InternalDBURL()
	c.dbURLPublic = c.db.ExternalDBURL()
}
