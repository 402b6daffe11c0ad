package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"
)

// KubeconfigLoader loads kubeconfig files, the source of the ambient
// credential
type KubeconfigLoader struct {
	paths        []string
	context      string
	loadedConfig *api.Config
}

// NewKubeconfigLoader creates a new kubeconfig loader
// It checks sources in the following order:
// 1. Explicit path (--kubeconfig flag)
// 2. KUBECONFIG environment variable (supports multiple paths separated by ':' on Unix or ';' on Windows)
// 3. Default ~/.kube/config
// A non-empty context replaces the file's current context.
func NewKubeconfigLoader(explicitPath, context string) *KubeconfigLoader {
	loader := &KubeconfigLoader{
		context: context,
		paths:   make([]string, 0),
	}

	if explicitPath != "" {
		if expandedPath, err := expandPath(explicitPath); err == nil {
			loader.paths = append(loader.paths, expandedPath)
		}
		return loader
	}

	if kubeconfigEnv := os.Getenv("KUBECONFIG"); kubeconfigEnv != "" {
		for _, path := range filepath.SplitList(kubeconfigEnv) {
			path = strings.TrimSpace(path)
			if path == "" {
				continue
			}
			if expandedPath, err := expandPath(path); err == nil {
				loader.paths = append(loader.paths, expandedPath)
			}
		}
	}

	if len(loader.paths) == 0 {
		home, err := os.UserHomeDir()
		if err == nil {
			loader.paths = append(loader.paths, filepath.Join(home, ".kube", "config"))
		}
	}

	return loader
}

// Load returns the merged kubeconfig from all sources
func (l *KubeconfigLoader) Load() (*api.Config, error) {
	if l.loadedConfig != nil {
		return l.loadedConfig, nil
	}

	if len(l.paths) == 0 {
		return nil, fmt.Errorf("no kubeconfig paths available")
	}

	loadingRules := &clientcmd.ClientConfigLoadingRules{
		Precedence: l.paths,
	}

	config, err := loadingRules.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	if config == nil {
		return nil, fmt.Errorf("kubeconfig is empty")
	}

	l.loadedConfig = config

	return config, nil
}

// CurrentContext returns the name of the context in effect
func (l *KubeconfigLoader) CurrentContext() (string, error) {
	if l.context != "" {
		return l.context, nil
	}

	config, err := l.Load()
	if err != nil {
		return "", err
	}

	return config.CurrentContext, nil
}

// CurrentUser returns the user entry selected by the context in effect
func (l *KubeconfigLoader) CurrentUser() (*UserInfo, *api.AuthInfo, error) {
	config, err := l.Load()
	if err != nil {
		return nil, nil, err
	}

	contextName, err := l.CurrentContext()
	if err != nil {
		return nil, nil, err
	}
	if contextName == "" {
		return nil, nil, fmt.Errorf("no current context is set")
	}

	context, exists := config.Contexts[contextName]
	if !exists || context == nil {
		return nil, nil, fmt.Errorf("context %q not found in kubeconfig", contextName)
	}

	authInfo, exists := config.AuthInfos[context.AuthInfo]
	if !exists || authInfo == nil {
		return nil, nil, fmt.Errorf("user %q not found for context %q", context.AuthInfo, contextName)
	}

	info := &UserInfo{
		Name:      context.AuthInfo,
		Context:   contextName,
		Cluster:   context.Cluster,
		Namespace: context.Namespace,
	}

	if info.Namespace == "" {
		info.Namespace = "default"
	}

	return info, authInfo, nil
}

// Users returns every user entry name in sorted order
func (l *KubeconfigLoader) Users() ([]string, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(config.AuthInfos))
	for name := range config.AuthInfos {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// User returns the named user entry
func (l *KubeconfigLoader) User(name string) (*api.AuthInfo, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	authInfo, exists := config.AuthInfos[name]
	if !exists || authInfo == nil {
		return nil, fmt.Errorf("user %q not found in kubeconfig", name)
	}

	return authInfo, nil
}

// GetPaths returns the kubeconfig paths being used
func (l *KubeconfigLoader) GetPaths() []string {
	return l.paths
}

// expandPath expands ~ to home directory and evaluates environment variables
func expandPath(path string) (string, error) {
	path = os.ExpandEnv(path)

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	return filepath.Clean(path), nil
}
