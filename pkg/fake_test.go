package gitsemver

import (
	"context"
	"fmt"
)

// fakeGateway is an in-memory Gateway for tests.
type fakeGateway struct {
	root     string
	rootErr  error
	tags     []string
	messages map[string]string
	scoped   map[string]map[string]string
	unscoped map[string]string
	tagErr   error
	writes   []string
}

func newFakeGateway(tags ...string) *fakeGateway {
	return &fakeGateway{
		root:     "/repo",
		tags:     tags,
		messages: map[string]string{},
		scoped:   map[string]map[string]string{},
		unscoped: map[string]string{},
	}
}

func (f *fakeGateway) RepoRoot(ctx context.Context) (string, error) {
	if f.rootErr != nil {
		return "", f.rootErr
	}
	return f.root, nil
}

func (f *fakeGateway) ListTags(ctx context.Context) ([]string, error) {
	return append([]string(nil), f.tags...), nil
}

func (f *fakeGateway) ReadScopedConfig(ctx context.Context, path string) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range f.scoped[path] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeGateway) ReadUnscopedConfig(ctx context.Context) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range f.unscoped {
		out[k] = v
	}
	return out, nil
}

func (f *fakeGateway) WriteScopedConfig(ctx context.Context, path, key, value string) error {
	if f.scoped[path] == nil {
		f.scoped[path] = map[string]string{}
	}
	f.scoped[path][key] = value
	f.writes = append(f.writes, key)
	return nil
}

func (f *fakeGateway) CreateAnnotatedTag(ctx context.Context, name, message string) error {
	if f.tagErr != nil {
		return f.tagErr
	}
	if _, ok := f.messages[name]; ok {
		return fmt.Errorf("fatal: tag '%s' already exists", name)
	}
	for _, t := range f.tags {
		if t == name {
			return fmt.Errorf("fatal: tag '%s' already exists", name)
		}
	}
	f.tags = append(f.tags, name)
	f.messages[name] = message
	return nil
}
