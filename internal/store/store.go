// Package store implements the on-disk, content-addressed file layout: a
// two-level hex-fanout directory under the cache root, scratch files for
// in-progress ingest, and atomic placement from scratch into its final,
// digest-derived location.
package store

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/objectfs/streamcache/errors"
)

const digestLen = 64 // hex chars of a SHA-256 digest

// Store places and removes content-addressed files under Root. It holds no
// in-memory state of its own — the Index is the sole authority on which
// keys are present; Store only knows how to turn a digest into a path and
// move bytes around.
type Store struct {
	Root string
}

// New validates that root exists and is a directory and returns a Store
// rooted there. The caller is responsible for creating root — per scope,
// directory provisioning is an external concern.
func New(root string) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.RootMissing("store", "root directory does not exist: "+root)
	}
	if !info.IsDir() {
		return nil, errors.RootMissing("store", "root is not a directory: "+root)
	}
	return &Store{Root: root}, nil
}

// DerivePath validates digest (64 lowercase hex characters) and returns its
// content-addressed path under root: root/H[0:2]/H[2:4]/H.
func DerivePath(root, digest string) (string, error) {
	if len(digest) != digestLen {
		return "", errors.InvalidArgument("store", "digest must be 64 hex characters")
	}
	for _, c := range digest {
		isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
		if !isHex {
			return "", errors.InvalidArgument("store", "digest must be lowercase hex")
		}
	}
	return filepath.Join(root, digest[0:2], digest[2:4], digest), nil
}

// NewScratch creates a uniquely-named scratch file directly under root and
// returns the open file and its path. The caller streams content into it,
// then either Places it (success) or deletes it (abort/cancel).
func (s *Store) NewScratch() (*os.File, string, error) {
	path := filepath.Join(s.Root, uuid.NewString())
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// DiscardScratch removes a scratch file abandoned mid-ingest (quota
// overflow, stream error, or cancellation).
func (s *Store) DiscardScratch(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Place renames the scratch file at scratchPath into its content-addressed
// location for digest, creating the two-level fan-out directory if needed.
// The rename is expected to be atomic at the directory-entry level because
// scratch and destination share a filesystem (both live under root).
func (s *Store) Place(scratchPath, digest string) (string, error) {
	dest, err := DerivePath(s.Root, digest)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return "", err
	}
	if err := os.Rename(scratchPath, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// Delete best-effort removes the file at path. A nil return means the file
// is gone (whether this call removed it or it was already absent). A
// non-nil return means the file is still present — most commonly because
// another reader holds it open on a platform that forbids deleting
// open files — and the caller should retry on its next eviction pass.
func (s *Store) Delete(path string) error {
	err := os.Remove(path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return err
}

// Exists reports whether a regular file exists at path with exactly the
// given size, satisfying the invariant that indexed entries' files match
// their recorded size.
func Exists(path string, size int64) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() == size
}

// PurgeAll removes every file and directory under root, leaving root
// itself in place. Used by Clear (after draining locked files) and by
// construction, which treats the root as reset-on-startup.
func PurgeAll(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		full := filepath.Join(root, e.Name())
		if err := os.RemoveAll(full); err != nil {
			return err
		}
	}
	return nil
}
