package main

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"dbhost/app/handler"
	"dbhost/app/router"
	databasesvc "dbhost/internal/service/database"
	"dbhost/pkg/config"
	"dbhost/pkg/logger"
	"dbhost/pkg/notification"
	"dbhost/pkg/proxy"
	mysqlstore "dbhost/pkg/store/mysql"
	redisstore "dbhost/pkg/store/redis"
)

// initConfig initializes configuration
func (app *Application) initConfig() error {
	if err := config.Init(); err != nil {
		return err
	}
	app.config = config.GlobalConfig
	return nil
}

// initLogger initializes logging
func (app *Application) initLogger() error {
	if err := logger.Init(); err != nil {
		return err
	}
	app.registerCleanup(func() {
		logger.InfoCtx(app.ctx, "Logging system is closing")
		_ = logger.Sync()
	})
	return nil
}

// initMySQL initializes MySQL and migrates the schema
func (app *Application) initMySQL() error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		app.config.MySQL.User,
		app.config.MySQL.Password,
		app.config.MySQL.Host,
		app.config.MySQL.Port,
		app.config.MySQL.Database,
	)

	repo, err := mysqlstore.NewRepository(dsn)
	if err != nil {
		return err
	}
	if err := repo.GetDatastore().Migrate(app.ctx); err != nil {
		repo.Close()
		return err
	}

	app.mysqlRepo = repo
	app.registerCleanup(func() {
		repo.Close()
		logger.InfoCtx(app.ctx, "MySQL connection has been closed")
	})

	return nil
}

// initRedis initializes the notification Redis. It is optional.
func (app *Application) initRedis() error {
	if app.config.Redis.Addr == "" {
		logger.InfoCtx(app.ctx, "Redis not configured, notification streaming disabled")
		return nil
	}

	client, err := redisstore.NewRedisClient(app.config.Redis)
	if err != nil {
		return err
	}

	app.redisClient = client
	app.registerCleanup(func() {
		client.Close()
		logger.InfoCtx(app.ctx, "Redis connection has been closed")
	})

	return nil
}

// initProxyManager initializes the public exposure proxy manager
func (app *Application) initProxyManager() error {
	manager, err := proxy.CreateProxyManager(app.config)
	if err != nil {
		return fmt.Errorf("failed to create proxy manager: %w", err)
	}
	app.proxyManager = manager
	logger.InfoCtx(app.ctx, "Proxy manager ready (provider=%s, namespace=%s)", app.config.Proxy.Provider, app.config.K8s.Namespace)
	return nil
}

// initNotifications initializes notification sinks
func (app *Application) initNotifications() error {
	if app.redisClient != nil {
		app.publisher = notification.NewRedisPublisher(app.redisClient.GetClient(), app.config.Notification.ChannelPrefix)
	}
	app.feishu = notification.NewFeishuNotifier(app.config.Notification.FeishuWebhookURL)
	app.registerCleanup(app.feishu.Wait)
	return nil
}

// initServices initializes service layer
func (app *Application) initServices() error {
	app.databaseService = databasesvc.NewService(app.mysqlRepo, app.proxyManager, app.publisher, app.feishu)
	if app.redisClient != nil {
		app.databaseService.EnableLocking(app.redisClient.GetClient())
	}
	return nil
}

// initHandlers initializes handler layer
func (app *Application) initHandlers() error {
	app.databaseHandler = handler.NewDatabaseHandler(app.databaseService)
	return nil
}

// initHTTPServer initializes HTTP server
func (app *Application) initHTTPServer() error {
	r := router.NewRouter(app.databaseHandler)

	gin.SetMode(app.config.Server.Mode)

	app.ginEngine = gin.New()
	r.Setup(app.ginEngine)

	app.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: app.ginEngine,
		BaseContext: func(_ net.Listener) context.Context {
			return app.ctx
		},
	}

	return nil
}
