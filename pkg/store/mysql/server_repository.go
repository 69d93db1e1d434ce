package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dbhost/pkg/store/mysql/model"
)

// ServerRepository handles server persistence in MySQL
type ServerRepository struct {
	ds *Datastore
}

// NewServerRepository creates a new server repository
func NewServerRepository(ds *Datastore) *ServerRepository {
	return &ServerRepository{ds: ds}
}

// Create creates a new server
func (r *ServerRepository) Create(ctx context.Context, server *model.Server) error {
	if server.UUID == "" {
		server.UUID = uuid.NewString()
	}
	return r.ds.DB(ctx).Create(server).Error
}

// Get retrieves a server by ID, nil when missing
func (r *ServerRepository) Get(ctx context.Context, id int64) (*model.Server, error) {
	var server model.Server
	err := r.ds.DB(ctx).First(&server, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get server: %w", err)
	}
	return &server, nil
}

// Update updates a server
func (r *ServerRepository) Update(ctx context.Context, server *model.Server) error {
	return r.ds.DB(ctx).Save(server).Error
}
