package proxy

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbhost/pkg/config"
)

func TestCreateProxyManager_UnsupportedProvider(t *testing.T) {
	cfg := &config.Config{Proxy: config.ProxyConfig{Provider: "novita"}}

	mgr, err := CreateProxyManager(cfg)

	require.Error(t, err)
	assert.Nil(t, mgr)
	assert.Contains(t, err.Error(), "unsupported proxy provider type: novita")
}

func TestCreateProxyManager_RequiresK8s(t *testing.T) {
	for _, provider := range []string{"", "k8s", "kubernetes"} {
		cfg := &config.Config{Proxy: config.ProxyConfig{Provider: provider}}

		mgr, err := CreateProxyManager(cfg)

		require.Error(t, err, provider)
		assert.Nil(t, mgr)
		assert.Contains(t, err.Error(), "requires k8s.enabled")
	}
}

func TestCreateProxyManager_MissingKubeconfig(t *testing.T) {
	t.Setenv("KUBERNETES_SERVICE_HOST", "")
	cfg := &config.Config{
		K8s:   config.K8sConfig{Enabled: true, Namespace: "databases", Kubeconfig: filepath.Join(t.TempDir(), "missing")},
		Proxy: config.ProxyConfig{Provider: "k8s"},
	}

	_, err := CreateProxyManager(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get kubernetes config")
}
