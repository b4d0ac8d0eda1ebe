package gitsemver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Gateway is everything the engine needs from a repository. Each call is a
// blocking round trip; retries and timeouts are the implementation's
// business.
type Gateway interface {
	// RepoRoot returns the top-level directory of the repository, or an
	// error wrapping ErrNotARepository.
	RepoRoot(ctx context.Context) (string, error)
	// ListTags returns all tag names in unspecified order.
	ListTags(ctx context.Context) ([]string, error)
	// ReadScopedConfig returns the namespaced "section.key" entries of the
	// config file at path, or an empty map if the file is absent.
	ReadScopedConfig(ctx context.Context, path string) (map[string]string, error)
	// ReadUnscopedConfig returns the entries of the repository's regular
	// git configuration (local and global).
	ReadUnscopedConfig(ctx context.Context) (map[string]string, error)
	// WriteScopedConfig stores key=value in the config file at path.
	WriteScopedConfig(ctx context.Context, path, key, value string) error
	// CreateAnnotatedTag tags HEAD. It fails if the tag already exists.
	CreateAnnotatedTag(ctx context.Context, name, message string) error
}

// resolveWorkdir makes dir absolute, defaulting to the current directory,
// and checks that it exists.
func resolveWorkdir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return "", fmt.Errorf("%w: directory %s does not exist", ErrWorkdirNotFound, dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	return abs, nil
}
