package config

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gopkg.in/yaml.v3"
)

// Defaults only fill fields left empty; explicit values always survive Parse.
func TestProperty_ExplicitValuesSurviveDefaults(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("explicit values are kept", prop.ForAll(
		func(port int, namespace, labelKey, prefix string) bool {
			in := Config{
				Server:       ServerConfig{Port: port},
				K8s:          K8sConfig{Namespace: namespace},
				Proxy:        ProxyConfig{LabelKey: labelKey},
				Notification: NotificationConfig{ChannelPrefix: prefix},
			}
			data, err := yaml.Marshal(in)
			if err != nil {
				return false
			}
			cfg, err := Parse(data)
			if err != nil {
				return false
			}
			return cfg.Server.Port == port &&
				cfg.K8s.Namespace == namespace &&
				cfg.Proxy.LabelKey == labelKey &&
				cfg.Notification.ChannelPrefix == prefix
		},
		gen.IntRange(1, 65535),
		gen.Identifier(),
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.Property("applying defaults twice changes nothing", prop.ForAll(
		func(port int, mode string) bool {
			cfg := &Config{Server: ServerConfig{Port: port, Mode: mode}}
			cfg.applyDefaults()
			once := *cfg
			cfg.applyDefaults()
			return *cfg == once
		},
		gen.IntRange(0, 65535),
		gen.OneConstOf("", "debug", "release"),
	))

	properties.TestingRun(t)
}
