package model

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"dbhost/pkg/constants"
)

// StandaloneRedis MySQL model for standalone_redis table
type StandaloneRedis struct {
	ID                     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID                   string    `gorm:"column:uuid;type:varchar(64);not null;uniqueIndex:idx_redis_uuid_unique" json:"uuid"`
	Name                   string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description            string    `gorm:"column:description;type:varchar(500);not null;default:''" json:"description"`
	RedisConf              string    `gorm:"column:redis_conf;type:text" json:"redis_conf"`
	RedisUsername          string    `gorm:"column:redis_username;type:varchar(255);not null;default:''" json:"redis_username"`
	RedisPassword          string    `gorm:"column:redis_password;type:varchar(255);not null;default:''" json:"redis_password"`
	Image                  string    `gorm:"column:image;type:varchar(500);not null" json:"image"`
	PortsMappings          string    `gorm:"column:ports_mappings;type:varchar(500);not null;default:''" json:"ports_mappings"`
	IsPublic               bool      `gorm:"column:is_public;type:tinyint(1);not null;default:0" json:"is_public"`
	PublicPort             *int      `gorm:"column:public_port;type:int" json:"public_port"`
	IsLogDrainEnabled      bool      `gorm:"column:is_log_drain_enabled;type:tinyint(1);not null;default:0" json:"is_log_drain_enabled"`
	CustomDockerRunOptions string    `gorm:"column:custom_docker_run_options;type:varchar(1000);not null;default:''" json:"custom_docker_run_options"`
	Status                 string    `gorm:"column:status;type:varchar(50);not null;default:'exited';index:idx_redis_status" json:"status"`
	ServerID               int64     `gorm:"column:server_id;not null;index:idx_redis_server" json:"server_id"`
	Server                 *Server   `gorm:"foreignKey:ServerID" json:"-"`
	CreatedAt              time.Time `gorm:"column:created_at;precision:3;not null" json:"created_at"`
	UpdatedAt              time.Time `gorm:"column:updated_at;precision:3;not null" json:"updated_at"`
}

// TableName specifies the table name for StandaloneRedis
func (StandaloneRedis) TableName() string {
	return "standalone_redis"
}

// InternalDBURL is the connection string reachable from the private network
func (r *StandaloneRedis) InternalDBURL() string {
	return r.connectionURL(r.UUID, constants.RedisInternalPort)
}

// ExternalDBURL is the connection string through the public proxy.
// Empty unless the database is public and has a public port.
func (r *StandaloneRedis) ExternalDBURL() string {
	if !r.IsPublic || r.PublicPort == nil {
		return ""
	}
	host := "localhost"
	if r.Server != nil && r.Server.IP != "" && !r.Server.IsLocalhost() {
		host = r.Server.IP
	}
	return r.connectionURL(host, *r.PublicPort)
}

func (r *StandaloneRedis) connectionURL(host string, port int) string {
	u := url.URL{
		Scheme: "redis",
		User:   url.UserPassword(r.RedisUsername, r.RedisPassword),
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/0",
	}
	return u.String()
}

// ProxyName is the name of the resource that exposes this database publicly
func (r *StandaloneRedis) ProxyName() string {
	return fmt.Sprintf("%s-proxy", r.UUID)
}

// FormValues returns the editable fields keyed by form field name
func (r *StandaloneRedis) FormValues() map[string]any {
	var publicPort any
	if r.PublicPort != nil {
		publicPort = *r.PublicPort
	}
	return map[string]any{
		"name":                      r.Name,
		"description":               r.Description,
		"redis_conf":                r.RedisConf,
		"redis_username":            r.RedisUsername,
		"redis_password":            r.RedisPassword,
		"image":                     r.Image,
		"ports_mappings":            r.PortsMappings,
		"is_public":                 r.IsPublic,
		"public_port":               publicPort,
		"is_log_drain_enabled":      r.IsLogDrainEnabled,
		"custom_docker_run_options": r.CustomDockerRunOptions,
	}
}
