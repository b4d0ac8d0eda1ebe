package gitsemver

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// Namespace is the git config section holding all settings.
	Namespace = "semver"
	// ConfigFileName is the scoped config file kept at the repository root.
	ConfigFileName = ".semver.config"
	// DefaultInitial is the offset used when nothing is configured.
	DefaultInitial = "0.0.0"
)

// Field names one configuration setting.
type Field string

const (
	FieldPrefix  Field = "prefix"
	FieldInitial Field = "initial"
	FieldSuffix  Field = "suffix"
)

// Fields lists the settings in display order.
var Fields = []Field{FieldPrefix, FieldInitial, FieldSuffix}

// Key returns the namespaced git config key, e.g. "semver.prefix".
func (f Field) Key() string {
	return Namespace + "." + string(f)
}

// Configuration is the effective tag configuration for one invocation.
type Configuration struct {
	Prefix  string
	Initial string
	Suffix  string
	// Explicit lists the fields that were set in the scoped file or the
	// unscoped settings, in Fields order. Defaulted fields are absent.
	Explicit []Field
}

// DefaultConfiguration returns the built-in defaults.
func DefaultConfiguration() Configuration {
	return Configuration{Initial: DefaultInitial}
}

// Get returns the value of a single field.
func (c Configuration) Get(f Field) string {
	switch f {
	case FieldPrefix:
		return c.Prefix
	case FieldInitial:
		return c.Initial
	case FieldSuffix:
		return c.Suffix
	}
	return ""
}

func (c *Configuration) set(f Field, v string) {
	switch f {
	case FieldPrefix:
		c.Prefix = v
	case FieldInitial:
		c.Initial = v
	case FieldSuffix:
		c.Suffix = v
	}
}

// Update carries the fields to write. Nil fields are left untouched.
type Update struct {
	Prefix  *string
	Initial *string
	Suffix  *string
}

// Empty reports whether no field is set.
func (u Update) Empty() bool {
	return u.Prefix == nil && u.Initial == nil && u.Suffix == nil
}

func (u Update) value(f Field) *string {
	switch f {
	case FieldPrefix:
		return u.Prefix
	case FieldInitial:
		return u.Initial
	case FieldSuffix:
		return u.Suffix
	}
	return nil
}

// ScopedConfigPath returns the location of the scoped config file.
func ScopedConfigPath(root string) string {
	return filepath.Join(root, ConfigFileName)
}

// ConfigStore reads and writes the tag configuration through a Gateway.
type ConfigStore struct {
	gw     Gateway
	logger *log.Logger
}

// NewConfigStore returns a store backed by gw.
func NewConfigStore(gw Gateway, opts ...Option) *ConfigStore {
	o := applyOptions(opts)
	return &ConfigStore{gw: gw, logger: o.logger}
}

// Load merges the scoped config file under root with the unscoped git
// settings. Per field, an unscoped value beats the scoped file, which beats
// the default. Missing files and keys are not errors.
func (s *ConfigStore) Load(ctx context.Context, root string) (Configuration, error) {
	path := ScopedConfigPath(root)
	scoped, err := s.gw.ReadScopedConfig(ctx, path)
	if err != nil {
		return Configuration{}, fmt.Errorf("reading %s: %w", path, err)
	}
	unscoped, err := s.gw.ReadUnscopedConfig(ctx)
	if err != nil {
		return Configuration{}, fmt.Errorf("reading git config: %w", err)
	}

	cfg := DefaultConfiguration()
	for _, f := range Fields {
		key := f.Key()
		if v, ok := lookupKey(unscoped, key); ok {
			s.logger.Debug("config from git settings", "key", key, "value", v)
			cfg.set(f, v)
			cfg.Explicit = append(cfg.Explicit, f)
			continue
		}
		if v, ok := lookupKey(scoped, key); ok {
			s.logger.Debug("config from scoped file", "key", key, "value", v, "file", path)
			cfg.set(f, v)
			cfg.Explicit = append(cfg.Explicit, f)
		}
	}
	return cfg, nil
}

// Set writes every non-nil field of u into the scoped config file under
// root and returns the reloaded configuration. An empty update writes
// nothing.
func (s *ConfigStore) Set(ctx context.Context, root string, u Update) (Configuration, error) {
	path := ScopedConfigPath(root)
	for _, f := range Fields {
		v := u.value(f)
		if v == nil {
			continue
		}
		if err := s.gw.WriteScopedConfig(ctx, path, f.Key(), *v); err != nil {
			return Configuration{}, fmt.Errorf("failed to set %s: %w", f, err)
		}
		s.logger.Debug("config written", "key", f.Key(), "value", *v, "file", path)
	}
	if u.Empty() {
		s.logger.Debug("nothing to do, no configuration changed")
	}
	return s.Load(ctx, root)
}

// lookupKey matches git config keys the way git does: section and variable
// names are case-insensitive.
func lookupKey(m map[string]string, key string) (string, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// ParseConfigList parses "key=value" lines as printed by `git config --list`.
// Lines without "=" or with an empty key are skipped and logged at debug
// level. Keys are lower-cased; later lines override earlier ones.
func ParseConfigList(out string, logger *log.Logger) map[string]string {
	entries := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(out))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			if logger != nil {
				logger.Debug("ignoring malformed config line", "line", n, "text", line)
			}
			continue
		}
		entries[strings.ToLower(key)] = value
	}
	return entries
}
