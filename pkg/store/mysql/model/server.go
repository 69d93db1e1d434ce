package model

import "time"

// Server MySQL model for servers table
type Server struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID string `gorm:"column:uuid;type:varchar(64);not null;uniqueIndex:idx_server_uuid_unique" json:"uuid"`
	Name string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	IP   string `gorm:"column:ip;type:varchar(255);not null;default:''" json:"ip"`

	// Log drain integrations configured on the server
	IsLogDrainNewRelicEnabled  bool `gorm:"column:is_logdrain_newrelic_enabled;type:tinyint(1);not null;default:0" json:"is_logdrain_newrelic_enabled"`
	IsLogDrainHighlightEnabled bool `gorm:"column:is_logdrain_highlight_enabled;type:tinyint(1);not null;default:0" json:"is_logdrain_highlight_enabled"`
	IsLogDrainAxiomEnabled     bool `gorm:"column:is_logdrain_axiom_enabled;type:tinyint(1);not null;default:0" json:"is_logdrain_axiom_enabled"`
	IsLogDrainCustomEnabled    bool `gorm:"column:is_logdrain_custom_enabled;type:tinyint(1);not null;default:0" json:"is_logdrain_custom_enabled"`

	CreatedAt time.Time `gorm:"column:created_at;precision:3;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;precision:3;not null" json:"updated_at"`
}

// TableName specifies the table name for Server
func (Server) TableName() string {
	return "servers"
}

// IsLogDrainEnabled reports whether any log drain integration is active
func (s *Server) IsLogDrainEnabled() bool {
	return s.IsLogDrainNewRelicEnabled ||
		s.IsLogDrainHighlightEnabled ||
		s.IsLogDrainAxiomEnabled ||
		s.IsLogDrainCustomEnabled
}

// IsLocalhost reports whether the server is the host running the platform itself
func (s *Server) IsLocalhost() bool {
	switch s.IP {
	case "localhost", "127.0.0.1", "::1", "host.docker.internal":
		return true
	}
	return false
}
