package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

var GlobalConfig *Config

// Config global configuration
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Redis        RedisConfig        `yaml:"redis"`
	MySQL        MySQLConfig        `yaml:"mysql"`
	Logger       LoggerConfig       `yaml:"logger"`
	K8s          K8sConfig          `yaml:"k8s"`
	Proxy        ProxyConfig        `yaml:"proxy"`
	Notification NotificationConfig `yaml:"notification"`
}

// ServerConfig server configuration
type ServerConfig struct {
	Port   int    `yaml:"port"`
	Mode   string `yaml:"mode"`    // debug, release
	APIKey string `yaml:"api_key"` // optional, auth is disabled when empty
}

// RedisConfig Redis configuration (notification fan-out, not the managed databases)
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// MySQLConfig MySQL configuration
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// LoggerConfig logger configuration
type LoggerConfig struct {
	Level  string           `yaml:"level"`  // debug, info, warn, error
	Output string           `yaml:"output"` // console, file, both
	File   LoggerFileConfig `yaml:"file"`
}

// LoggerFileConfig logger file configuration
type LoggerFileConfig struct {
	Path string `yaml:"path"`
}

// K8sConfig K8s configuration
type K8sConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Namespace  string `yaml:"namespace"`
	Kubeconfig string `yaml:"kubeconfig"` // empty means in-cluster, then default loading rules
}

// ProxyConfig public exposure proxy configuration
type ProxyConfig struct {
	Provider string `yaml:"provider"` // k8s
	// LabelKey selects the database pods; its value is the database UUID
	LabelKey string `yaml:"label_key"`
}

// NotificationConfig notification sinks configuration
type NotificationConfig struct {
	ChannelPrefix    string `yaml:"channel_prefix"`
	FeishuWebhookURL string `yaml:"feishu_webhook_url"`
}

// Init initializes configuration
func Init() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		return err
	}

	GlobalConfig = cfg
	return nil
}

// Load reads and parses the configuration file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses YAML configuration and fills defaults
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Output == "" {
		c.Logger.Output = "console"
	}
	if c.K8s.Namespace == "" {
		c.K8s.Namespace = "default"
	}
	if c.Proxy.Provider == "" {
		c.Proxy.Provider = "k8s"
	}
	if c.Proxy.LabelKey == "" {
		c.Proxy.LabelKey = "dbhost.io/database"
	}
	if c.Notification.ChannelPrefix == "" {
		c.Notification.ChannelPrefix = "dbhost:notifications"
	}
}
