package yamlconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseBytes(t *testing.T) {
	cases := map[string]int64{
		"512":    512,
		"1B":     1,
		"1K":     1024,
		"1KB":    1024,
		"1KiB":   1024,
		"2MB":    2 * 1024 * 1024,
		"1GiB":   1024 * 1024 * 1024,
		"1.5MB":  int64(1.5 * 1024 * 1024),
	}
	for in, want := range cases {
		got, err := ParseBytes(in)
		if err != nil {
			t.Fatalf("ParseBytes(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseBytes(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseBytesRejectsEmpty(t *testing.T) {
	if _, err := ParseBytes(""); err == nil {
		t.Fatal("expected error for empty byte quantity")
	}
}

func TestLoadValid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.yaml")
	content := `
cache:
  root_dir: /var/cache/thing
  capacity: 512MB
  poll_interval: 30s
  policy: lru
log:
  level: info
  format: text
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Cache.RootDir != "/var/cache/thing" {
		t.Errorf("RootDir = %q", f.Cache.RootDir)
	}
	if f.Cache.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %v", f.Cache.PollInterval)
	}
	if f.Cache.Policy != PolicyLRU {
		t.Errorf("Policy = %q", f.Cache.Policy)
	}
}

func TestLoadMissingCapacity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.yaml")
	content := "cache:\n  root_dir: /var/cache/thing\n  policy: lru\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing capacity")
	}
}

func TestLoadTTLPolicyRequiresTTL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.yaml")
	content := "cache:\n  root_dir: /x\n  capacity: 10MB\n  policy: fixed_ttl\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for fixed_ttl policy without ttl")
	}
}
