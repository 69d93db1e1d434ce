package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	databasesvc "dbhost/internal/service/database"
	"dbhost/pkg/interfaces"
	"dbhost/pkg/logger"
	"dbhost/pkg/store/mysql/model"
	"dbhost/pkg/validation"
)

// DatabaseHandler handles the settings APIs of managed Redis databases
type DatabaseHandler struct {
	databaseService *databasesvc.Service
}

// NewDatabaseHandler creates database handler
func NewDatabaseHandler(databaseService *databasesvc.Service) *DatabaseHandler {
	return &DatabaseHandler{databaseService: databaseService}
}

// UpdateDatabaseRequest carries the general settings form. Omitted fields keep their value.
type UpdateDatabaseRequest struct {
	Name                   *string `json:"name"`
	Description            *string `json:"description"`
	RedisConf              *string `json:"redis_conf"`
	RedisUsername          *string `json:"redis_username"`
	RedisPassword          *string `json:"redis_password"`
	Image                  *string `json:"image"`
	PortsMappings          *string `json:"ports_mappings"`
	CustomDockerRunOptions *string `json:"custom_docker_run_options"`
}

// ToggleExposureRequest flips public access, optionally setting the public port first
type ToggleExposureRequest struct {
	IsPublic   *bool `json:"is_public" binding:"required"`
	PublicPort *int  `json:"public_port" binding:"omitempty,min=1,max=65535"`
}

// AdvancedSettingsRequest carries the instantly saved advanced settings
type AdvancedSettingsRequest struct {
	IsLogDrainEnabled *bool `json:"is_log_drain_enabled" binding:"required"`
}

// DatabaseResponse is the settings view of a database
type DatabaseResponse struct {
	Database        *model.StandaloneRedis    `json:"database"`
	DBURL           string                    `json:"db_url"`
	DBURLPublic     string                    `json:"db_url_public"`
	SharedVariables map[string]bool           `json:"shared_variables,omitempty"`
	Notifications   []interfaces.Notification `json:"notifications"`
}

// GetDatabase returns the database settings
// @Summary Get database settings
// @Tags Databases
// @Produce json
// @Param uuid path string true "Database UUID"
// @Success 200 {object} DatabaseResponse
// @Router /api/v1/databases/redis/{uuid} [get]
func (h *DatabaseHandler) GetDatabase(c *gin.Context) {
	ctx := c.Request.Context()
	session, ok := h.mount(c)
	if !ok {
		return
	}

	shared, err := h.databaseService.SharedVariables(ctx, session.Database())
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to check shared variables for database %s: %v", session.Database().UUID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := h.buildResponse(session)
	resp.SharedVariables = shared
	c.JSON(http.StatusOK, resp)
}

// UpdateDatabase validates and saves the general settings
// @Summary Update database settings
// @Tags Databases
// @Accept json
// @Produce json
// @Param uuid path string true "Database UUID"
// @Param request body UpdateDatabaseRequest true "Settings"
// @Success 200 {object} DatabaseResponse
// @Router /api/v1/databases/redis/{uuid} [put]
func (h *DatabaseHandler) UpdateDatabase(c *gin.Context) {
	var req UpdateDatabaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.run(c, func(ctx context.Context, session *databasesvc.Session) error {
		req.apply(session.Database())
		return session.Submit(ctx)
	})
}

// ToggleExposure makes the database public or private
// @Summary Toggle public access
// @Tags Databases
// @Accept json
// @Produce json
// @Param uuid path string true "Database UUID"
// @Param request body ToggleExposureRequest true "Public access"
// @Success 200 {object} DatabaseResponse
// @Router /api/v1/databases/redis/{uuid}/public [post]
func (h *DatabaseHandler) ToggleExposure(c *gin.Context) {
	var req ToggleExposureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.run(c, func(ctx context.Context, session *databasesvc.Session) error {
		db := session.Database()
		if req.PublicPort != nil {
			db.PublicPort = req.PublicPort
		}
		db.IsPublic = *req.IsPublic
		return session.ToggleExposure(ctx)
	})
}

// SaveAdvanced instantly saves the advanced settings
// @Summary Save advanced settings
// @Tags Databases
// @Accept json
// @Produce json
// @Param uuid path string true "Database UUID"
// @Param request body AdvancedSettingsRequest true "Advanced settings"
// @Success 200 {object} DatabaseResponse
// @Router /api/v1/databases/redis/{uuid}/advanced [post]
func (h *DatabaseHandler) SaveAdvanced(c *gin.Context) {
	var req AdvancedSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.run(c, func(ctx context.Context, session *databasesvc.Session) error {
		session.Database().IsLogDrainEnabled = *req.IsLogDrainEnabled
		return session.InstantSaveAdvanced(ctx)
	})
}

// RefreshDatabase reloads the database from the datastore
// @Summary Refresh database settings
// @Tags Databases
// @Produce json
// @Param uuid path string true "Database UUID"
// @Success 200 {object} DatabaseResponse
// @Router /api/v1/databases/redis/{uuid}/refresh [post]
func (h *DatabaseHandler) RefreshDatabase(c *gin.Context) {
	h.run(c, func(ctx context.Context, session *databasesvc.Session) error {
		return session.Refresh(ctx)
	})
}

// PreviewProxyYAML previews the proxy resource of a database
// @Summary Preview proxy YAML
// @Tags Databases
// @Produce plain
// @Param uuid path string true "Database UUID"
// @Success 200 {string} string
// @Router /api/v1/databases/redis/{uuid}/proxy/preview [get]
func (h *DatabaseHandler) PreviewProxyYAML(c *gin.Context) {
	out, err := h.databaseService.PreviewProxy(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		if errors.Is(err, databasesvc.ErrDatabaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.String(http.StatusOK, out)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamNotifications streams database notifications over WebSocket
// @Summary Stream database notifications
// @Tags Databases
// @Param uuid path string true "Database UUID"
// @Router /api/v1/databases/redis/{uuid}/notifications/ws [get]
func (h *DatabaseHandler) StreamNotifications(c *gin.Context) {
	id := c.Param("uuid")
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	stream, err := h.databaseService.Subscribe(ctx, id)
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to subscribe to notifications of database %s: %v", id, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to upgrade to websocket: %v", err)
		return
	}
	defer ws.Close()

	// The client never sends; a read error means it went away
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for n := range stream {
		if err := ws.WriteJSON(n); err != nil {
			logger.WarnCtx(ctx, "Failed to write notification to websocket: %v", err)
			return
		}
	}
}

func (h *DatabaseHandler) mount(c *gin.Context) (*databasesvc.Session, bool) {
	session, err := h.databaseService.Mount(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		h.loadFailed(c, err)
		return nil, false
	}
	return session, true
}

func (h *DatabaseHandler) loadFailed(c *gin.Context, err error) {
	id := c.Param("uuid")
	switch {
	case errors.Is(err, databasesvc.ErrDatabaseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "uuid": id})
	case errors.Is(err, databasesvc.ErrDatabaseBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "uuid": id})
	default:
		logger.ErrorCtx(c.Request.Context(), "Failed to load database %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// run mounts the database under its operation lock, executes op and writes the outcome
func (h *DatabaseHandler) run(c *gin.Context, op func(ctx context.Context, session *databasesvc.Session) error) {
	ctx := c.Request.Context()

	var session *databasesvc.Session
	var opErr error
	err := h.databaseService.Exclusive(ctx, c.Param("uuid"), func() error {
		var err error
		session, err = h.databaseService.Mount(ctx, c.Param("uuid"))
		if err != nil {
			return err
		}
		opErr = op(ctx, session)
		return nil
	})
	if err != nil {
		h.loadFailed(c, err)
		return
	}

	if opErr == nil {
		c.JSON(http.StatusOK, h.buildResponse(session))
		return
	}

	body := gin.H{
		"error":         opErr.Error(),
		"database":      session.Database(),
		"notifications": session.Recorder.Notifications(),
	}

	var verrs validation.Errors
	switch {
	case errors.As(opErr, &verrs):
		body["errors"] = verrs
		c.JSON(http.StatusUnprocessableEntity, body)
	case databasesvc.IsPrecondition(opErr):
		c.JSON(http.StatusUnprocessableEntity, body)
	default:
		c.JSON(http.StatusInternalServerError, body)
	}
}

func (h *DatabaseHandler) buildResponse(session *databasesvc.Session) DatabaseResponse {
	return DatabaseResponse{
		Database:      session.Database(),
		DBURL:         session.DBURL(),
		DBURLPublic:   session.DBURLPublic(),
		Notifications: session.Recorder.Notifications(),
	}
}

func (r *UpdateDatabaseRequest) apply(db *model.StandaloneRedis) {
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&db.Name, r.Name)
	assign(&db.Description, r.Description)
	assign(&db.RedisConf, r.RedisConf)
	assign(&db.RedisUsername, r.RedisUsername)
	assign(&db.RedisPassword, r.RedisPassword)
	assign(&db.Image, r.Image)
	assign(&db.PortsMappings, r.PortsMappings)
	assign(&db.CustomDockerRunOptions, r.CustomDockerRunOptions)
}
