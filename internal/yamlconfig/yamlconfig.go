// Package yamlconfig loads cache configuration from a YAML file, as an
// alternative to constructing streamcache.Config directly in code.
package yamlconfig

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// PolicyName identifies one of the built-in eviction policies by name, as
// written in a configuration file.
type PolicyName string

const (
	PolicyLRU        PolicyName = "lru"
	PolicyMRU        PolicyName = "mru"
	PolicyLFU        PolicyName = "lfu"
	PolicyMFU        PolicyName = "mfu"
	PolicyFIFO       PolicyName = "fifo"
	PolicyLIFO       PolicyName = "lifo"
	PolicySlidingTTL PolicyName = "sliding_ttl"
	PolicyFixedTTL   PolicyName = "fixed_ttl"
)

// File is the top-level shape of a cache configuration file.
type File struct {
	Cache CacheSection `yaml:"cache"`
	Log   LogSection   `yaml:"log"`
}

// CacheSection configures the cache engine itself.
type CacheSection struct {
	RootDir      string        `yaml:"root_dir"`
	Capacity     string        `yaml:"capacity"`
	PollInterval time.Duration `yaml:"poll_interval"`
	Policy       PolicyName    `yaml:"policy"`
	TTL          time.Duration `yaml:"ttl"` // only meaningful for sliding_ttl/fixed_ttl
}

// LogSection configures the logger.
type LogSection struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks required fields and known enum values.
func (f *File) Validate() error {
	if f.Cache.RootDir == "" {
		return fmt.Errorf("cache.root_dir is required")
	}
	if f.Cache.Capacity == "" {
		return fmt.Errorf("cache.capacity is required")
	}
	if _, err := ParseBytes(f.Cache.Capacity); err != nil {
		return fmt.Errorf("cache.capacity: %w", err)
	}
	switch f.Cache.Policy {
	case PolicyLRU, PolicyMRU, PolicyLFU, PolicyMFU, PolicyFIFO, PolicyLIFO, PolicySlidingTTL, PolicyFixedTTL:
	case "":
		return fmt.Errorf("cache.policy is required")
	default:
		return fmt.Errorf("cache.policy: unknown policy %q", f.Cache.Policy)
	}
	if (f.Cache.Policy == PolicySlidingTTL || f.Cache.Policy == PolicyFixedTTL) && f.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 for policy %q", f.Cache.Policy)
	}
	return nil
}

// byteSuffixes maps unit suffixes, longest first, to their multiplier.
var byteSuffixes = []struct {
	suffix     string
	multiplier int64
}{
	{"GiB", 1024 * 1024 * 1024},
	{"MiB", 1024 * 1024},
	{"KiB", 1024},
	{"GB", 1024 * 1024 * 1024},
	{"MB", 1024 * 1024},
	{"KB", 1024},
	{"G", 1024 * 1024 * 1024},
	{"M", 1024 * 1024},
	{"K", 1024},
	{"B", 1},
}

// ParseBytes parses a human-readable byte quantity such as "512MB" or
// "2GiB" into a byte count. A bare number is interpreted as bytes.
func ParseBytes(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty byte quantity")
	}

	multiplier := int64(1)
	numEnd := len(s)
	for _, u := range byteSuffixes {
		if hasSuffix(s, u.suffix) {
			multiplier = u.multiplier
			numEnd = len(s) - len(u.suffix)
			break
		}
	}

	var num float64
	if _, err := fmt.Sscanf(s[:numEnd], "%f", &num); err != nil {
		return 0, fmt.Errorf("invalid byte quantity %q", s)
	}
	return int64(num * float64(multiplier)), nil
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
