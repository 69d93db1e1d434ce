package proxy

import (
	"fmt"

	"dbhost/pkg/config"
	"dbhost/pkg/proxy/k8s"
)

// CreateProxyManager creates the proxy manager selected by configuration
func CreateProxyManager(cfg *config.Config) (*k8s.ProxyManager, error) {
	switch cfg.Proxy.Provider {
	case "k8s", "kubernetes", "":
		if !cfg.K8s.Enabled {
			return nil, fmt.Errorf("proxy provider %q requires k8s.enabled", cfg.Proxy.Provider)
		}
		return k8s.NewProxyManager(cfg.K8s.Namespace, cfg.K8s.Kubeconfig, cfg.Proxy.LabelKey)
	default:
		return nil, fmt.Errorf("unsupported proxy provider type: %s", cfg.Proxy.Provider)
	}
}
