package streamcache

import (
	"time"

	"github.com/objectfs/streamcache/errors"
	"github.com/objectfs/streamcache/internal/yamlconfig"
	"github.com/objectfs/streamcache/policy"
)

// PolicyFromName builds the Policy named by name, using ttl for the two
// TTL-based policies (ignored otherwise). It is the bridge between a
// yamlconfig.File's string-typed policy field and the generic
// policy.Policy[K] a Config needs.
func PolicyFromName[K comparable](name yamlconfig.PolicyName, ttl time.Duration) (policy.Policy[K], error) {
	switch name {
	case yamlconfig.PolicyLRU:
		return policy.LRU[K](), nil
	case yamlconfig.PolicyMRU:
		return policy.MRU[K](), nil
	case yamlconfig.PolicyLFU:
		return policy.LFU[K](), nil
	case yamlconfig.PolicyMFU:
		return policy.MFU[K](), nil
	case yamlconfig.PolicyFIFO:
		return policy.FIFO[K](), nil
	case yamlconfig.PolicyLIFO:
		return policy.LIFO[K](), nil
	case yamlconfig.PolicySlidingTTL:
		return policy.SlidingTTL[K](ttl)
	case yamlconfig.PolicyFixedTTL:
		return policy.FixedTTL[K](ttl)
	default:
		return nil, errors.InvalidArgument("cache", "unknown policy name: "+string(name))
	}
}

// FromYAMLFile builds a Config from a parsed yamlconfig.File. Callers still
// set Observer and Metrics themselves, since those depend on wiring this
// module's caller does not express in YAML.
func FromYAMLFile[K comparable](f *yamlconfig.File) (Config[K], error) {
	capacity, err := yamlconfig.ParseBytes(f.Cache.Capacity)
	if err != nil {
		return Config[K]{}, err
	}
	pol, err := PolicyFromName[K](f.Cache.Policy, f.Cache.TTL)
	if err != nil {
		return Config[K]{}, err
	}
	return Config[K]{
		RootDir:      f.Cache.RootDir,
		Policy:       pol,
		Capacity:     capacity,
		PollInterval: f.Cache.PollInterval,
	}, nil
}
