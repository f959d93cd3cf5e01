// ABOUTME: Feature flag management for gradual rollout of rewrite stages
// ABOUTME: Environment-backed toggles with in-process overrides for tests

package featureflags

import (
	"os"
	"strings"
	"sync"
)

// FeatureFlag represents a single feature flag
type FeatureFlag string

// Defined feature flags
const (
	// SemanticBlock enables injection of the hidden semantic content
	// block into rewritten pages.
	SemanticBlock FeatureFlag = "semantic_block"

	// BotPrerender enables serving bots a locally rendered shell
	// instead of fetching the origin page.
	BotPrerender FeatureFlag = "bot_prerender"

	// DiscoveryCache enables caching of discovery responses.
	DiscoveryCache FeatureFlag = "discovery_cache"
)

// Manager defines the interface for feature flag management
type Manager interface {
	// IsEnabled checks if a feature flag is enabled
	IsEnabled(flag FeatureFlag) bool

	// SetEnabled sets a feature flag's state (for testing)
	SetEnabled(flag FeatureFlag, enabled bool)
}

// EnvManager implements Manager using environment variables. Every
// defined flag is on unless its variable is explicitly set to an
// off value, so a bare deployment runs the full pipeline.
type EnvManager struct {
	mu        sync.RWMutex
	overrides map[FeatureFlag]bool
	prefix    string
}

// NewEnvManager creates a new environment-based feature flag manager
func NewEnvManager(prefix string) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	return &EnvManager{
		overrides: make(map[FeatureFlag]bool),
		prefix:    prefix,
	}
}

// IsEnabled checks if a feature flag is enabled
func (m *EnvManager) IsEnabled(flag FeatureFlag) bool {
	m.mu.RLock()
	if enabled, ok := m.overrides[flag]; ok {
		m.mu.RUnlock()
		return enabled
	}
	m.mu.RUnlock()

	envKey := m.prefix + strings.ToUpper(string(flag))
	value, ok := os.LookupEnv(envKey)
	if !ok {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "false", "0", "off", "disabled":
		return false
	}
	return true
}

// SetEnabled sets a feature flag's state, taking precedence over the
// environment.
func (m *EnvManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[flag] = enabled
}
