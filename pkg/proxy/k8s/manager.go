package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/yaml"

	"dbhost/pkg/constants"
	"dbhost/pkg/logger"
	"dbhost/pkg/store/mysql/model"
)

const (
	managedByLabel = "app.kubernetes.io/managed-by"
	managedByValue = "dbhost"
	proxyForLabel  = "dbhost.io/proxy-for"
)

// ProxyManager exposes databases through a LoadBalancer Service listening on the public port
type ProxyManager struct {
	client    kubernetes.Interface
	namespace string
	labelKey  string
}

// NewProxyManager creates a proxy manager from in-cluster config, falling back to kubeconfig
func NewProxyManager(namespace, kubeconfig, labelKey string) (*ProxyManager, error) {
	config, err := rest.InClusterConfig()
	if err != nil {
		loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
		if kubeconfig != "" {
			loadingRules.ExplicitPath = kubeconfig
		}
		kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{})
		config, err = kubeConfig.ClientConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to get kubernetes config: %v", err)
		}
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %v", err)
	}

	return NewProxyManagerWithClient(client, namespace, labelKey), nil
}

// NewProxyManagerWithClient creates a proxy manager on an existing client
func NewProxyManagerWithClient(client kubernetes.Interface, namespace, labelKey string) *ProxyManager {
	return &ProxyManager{
		client:    client,
		namespace: namespace,
		labelKey:  labelKey,
	}
}

// Start creates the proxy Service, or updates its port when it already exists
func (m *ProxyManager) Start(ctx context.Context, db *model.StandaloneRedis) error {
	desired, err := m.buildService(db)
	if err != nil {
		return err
	}

	services := m.client.CoreV1().Services(m.namespace)
	existing, err := services.Get(ctx, desired.Name, metav1.GetOptions{})
	if err != nil {
		if !errors.IsNotFound(err) {
			return fmt.Errorf("failed to get proxy service %s: %w", desired.Name, err)
		}
		if _, err := services.Create(ctx, desired, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create proxy service %s: %w", desired.Name, err)
		}
		logger.InfoCtx(ctx, "Created proxy service %s/%s on port %d", m.namespace, desired.Name, desired.Spec.Ports[0].Port)
		return nil
	}

	existing.Labels = desired.Labels
	existing.Spec.Type = desired.Spec.Type
	existing.Spec.Selector = desired.Spec.Selector
	existing.Spec.Ports = desired.Spec.Ports
	if _, err := services.Update(ctx, existing, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update proxy service %s: %w", desired.Name, err)
	}
	logger.InfoCtx(ctx, "Updated proxy service %s/%s on port %d", m.namespace, desired.Name, desired.Spec.Ports[0].Port)
	return nil
}

// Stop deletes the proxy Service. A missing Service is not an error.
func (m *ProxyManager) Stop(ctx context.Context, db *model.StandaloneRedis) error {
	name := db.ProxyName()
	err := m.client.CoreV1().Services(m.namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil && !errors.IsNotFound(err) {
		return fmt.Errorf("failed to delete proxy service %s: %w", name, err)
	}
	logger.InfoCtx(ctx, "Removed proxy service %s/%s", m.namespace, name)
	return nil
}

// PreviewYAML renders the Service Start would apply
func (m *ProxyManager) PreviewYAML(db *model.StandaloneRedis) (string, error) {
	svc, err := m.buildService(db)
	if err != nil {
		return "", err
	}
	svc.TypeMeta = metav1.TypeMeta{APIVersion: "v1", Kind: "Service"}
	out, err := yaml.Marshal(svc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal proxy service: %v", err)
	}
	return string(out), nil
}

func (m *ProxyManager) buildService(db *model.StandaloneRedis) (*corev1.Service, error) {
	if db.UUID == "" {
		return nil, fmt.Errorf("database uuid is required")
	}
	if db.PublicPort == nil {
		return nil, fmt.Errorf("database %s has no public port", db.UUID)
	}
	port := *db.PublicPort
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid public port %d", port)
	}

	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      db.ProxyName(),
			Namespace: m.namespace,
			Labels: map[string]string{
				managedByLabel: managedByValue,
				proxyForLabel:  db.UUID,
			},
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeLoadBalancer,
			Selector: map[string]string{m.labelKey: db.UUID},
			Ports: []corev1.ServicePort{
				{
					Name:       "redis",
					Protocol:   corev1.ProtocolTCP,
					Port:       int32(port),
					TargetPort: intstr.FromInt32(constants.RedisInternalPort),
				},
			},
		},
	}, nil
}
