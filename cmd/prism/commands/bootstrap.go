package commands

import (
	"fmt"
	"os"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/internal/cards/builtin"
	"github.com/vivmac33/marketprism/internal/composer"
	"github.com/vivmac33/marketprism/internal/policyconfig"
	"github.com/vivmac33/marketprism/internal/synthesis"
	"github.com/vivmac33/marketprism/pkg/config"
	"github.com/vivmac33/marketprism/pkg/logger"
	"github.com/vivmac33/marketprism/pkg/redis"
)

// loadPolicy reads the synthesis policy file, falling back to the
// built-in default when none exists on disk.
func loadPolicy(path string, log *logger.Logger) (*policyconfig.Config, error) {
	policy, _, err := policyconfig.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Warn("Policy file not found, using default policy")
			return policyconfig.Default(), nil
		}
		return nil, fmt.Errorf("load policy %s: %w", path, err)
	}

	hash, err := policyconfig.Hash(policy)
	if err == nil {
		log.WithFields(map[string]interface{}{
			"policy":  policy.Meta.PolicyID,
			"version": policy.Meta.Version,
			"hash":    hash[:12],
		}).Info("Loaded synthesis policy")
	}

	return policy, nil
}

// loadRegistry reads the card registry file, falling back to the
// built-in catalog when none exists on disk.
func loadRegistry(path string, log *logger.Logger) (*cards.Registry, error) {
	registry, err := cards.LoadRegistry(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Warn("Registry file not found, using built-in catalog")
			return builtin.DefaultRegistry()
		}
		return nil, fmt.Errorf("load card registry %s: %w", path, err)
	}

	log.WithField("cards", registry.Count()).Info("Loaded card registry")
	return registry, nil
}

// buildComposer wires the full evaluate-synthesize-publish stack.
// cache and hub may be nil for one-shot commands.
func buildComposer(cfg *config.Config, log *logger.Logger, cache *redis.Cache, hub composer.Broadcaster) (*composer.Composer, *cards.Registry, error) {
	policy, err := loadPolicy(cfg.Engine.PolicyPath, log)
	if err != nil {
		return nil, nil, err
	}

	registry, err := loadRegistry(cfg.Engine.RegistryPath, log)
	if err != nil {
		return nil, nil, err
	}

	engine := synthesis.New(policy, registry, log)
	runner := cards.NewRunner(builtin.All(registry), policy.Runner.Workers, log)
	cmp := composer.New(runner, engine, cache, hub, cfg.Redis.CompositeTTL, log)

	return cmp, registry, nil
}

// openCache connects to Redis when enabled, returning nil otherwise.
func openCache(cfg *config.Config, log *logger.Logger) *redis.Cache {
	if !cfg.Redis.Enabled {
		return nil
	}

	client, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, running without composite cache")
		return nil
	}

	return redis.NewCache(client, "prism")
}
