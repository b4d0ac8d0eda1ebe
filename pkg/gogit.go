package gitsemver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	format "github.com/go-git/go-git/v5/plumbing/format/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGit is a Gateway that works on the repository in-process with go-git,
// without needing a git binary.
type GoGit struct {
	dir    string
	logger *log.Logger
	repo   *git.Repository
	now    func() time.Time
}

// NewGoGit returns a gateway for the repository containing dir (the current
// directory if empty). The repository itself is opened lazily by RepoRoot.
func NewGoGit(dir string, opts ...Option) (*GoGit, error) {
	o := applyOptions(opts)
	wd, err := resolveWorkdir(dir)
	if err != nil {
		return nil, err
	}
	return &GoGit{dir: wd, logger: o.logger, now: time.Now}, nil
}

func (g *GoGit) open() (*git.Repository, error) {
	if g.repo != nil {
		return g.repo, nil
	}
	repo, err := git.PlainOpenWithOptions(g.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w (or any of the parent directories): %s", ErrNotARepository, g.dir)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", g.dir, err)
	}
	g.repo = repo
	return repo, nil
}

// RepoRoot implements Gateway.
func (g *GoGit) RepoRoot(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	repo, err := g.open()
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotARepository, err)
	}
	return wt.Filesystem.Root(), nil
}

// ListTags implements Gateway.
func (g *GoGit) ListTags(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo, err := g.open()
	if err != nil {
		return nil, err
	}
	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// ReadScopedConfig implements Gateway. Missing files yield an empty map;
// files that fail to decode are logged and treated as empty.
func (g *GoGit) ReadScopedConfig(ctx context.Context, path string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := readConfigFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		g.logger.Debug("ignoring unreadable config file", "file", path, "err", err)
		return map[string]string{}, nil
	}
	return flattenConfig(raw), nil
}

// ReadUnscopedConfig implements Gateway. Like `git config --list` it reads
// the system, global and repository config in that order, later files
// overriding earlier ones.
func (g *GoGit) ReadUnscopedConfig(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo, err := g.open()
	if err != nil {
		return nil, err
	}
	entries := make(map[string]string)
	for _, scope := range []config.Scope{config.SystemScope, config.GlobalScope} {
		cfg, err := config.LoadConfig(scope)
		if err != nil {
			g.logger.Debug("ignoring unreadable git config", "scope", scope, "err", err)
			continue
		}
		maps.Copy(entries, flattenConfig(cfg.Raw))
	}
	local, err := repo.Config()
	if err != nil {
		return nil, fmt.Errorf("reading git config: %w", err)
	}
	maps.Copy(entries, flattenConfig(local.Raw))
	return entries, nil
}

// WriteScopedConfig implements Gateway.
func (g *GoGit) WriteScopedConfig(ctx context.Context, path, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	section, name, ok := strings.Cut(key, ".")
	if !ok || section == "" || name == "" {
		return fmt.Errorf("invalid config key %q", key)
	}
	raw, err := readConfigFile(path)
	if errors.Is(err, os.ErrNotExist) {
		raw = format.New()
	} else if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	raw.Section(section).SetOption(name, value)

	var buf bytes.Buffer
	if err := format.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// CreateAnnotatedTag implements Gateway. The tag points at HEAD and is
// signed off by the committer identity from the environment or git config.
func (g *GoGit) CreateAnnotatedTag(ctx context.Context, name, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fail := func(err error) error {
		return &TagCreationError{Name: name, Command: "git tag -a " + name, Err: err}
	}
	repo, err := g.open()
	if err != nil {
		return fail(err)
	}
	head, err := repo.Head()
	if err != nil {
		return fail(fmt.Errorf("resolving HEAD: %w", err))
	}
	tagger, err := g.tagger(repo)
	if err != nil {
		return fail(err)
	}
	_, err = repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  tagger,
		Message: message,
	})
	if err != nil {
		if errors.Is(err, git.ErrTagExists) {
			return &TagCreationError{
				Name:    name,
				Command: "git tag -a " + name,
				Detail:  fmt.Sprintf("fatal: tag '%s' already exists", name),
				Err:     err,
			}
		}
		return fail(err)
	}
	g.logger.Debug("annotated tag created", "name", name, "commit", head.Hash().String())
	return nil
}

// tagger follows git's lookup order: GIT_COMMITTER_* variables first, then
// user.name and user.email from the local and global config.
func (g *GoGit) tagger(repo *git.Repository) (*object.Signature, error) {
	name := os.Getenv("GIT_COMMITTER_NAME")
	email := os.Getenv("GIT_COMMITTER_EMAIL")
	if name == "" || email == "" {
		cfg, err := repo.ConfigScoped(config.GlobalScope)
		if err != nil {
			return nil, fmt.Errorf("reading git config: %w", err)
		}
		if name == "" {
			name = cfg.User.Name
		}
		if email == "" {
			email = cfg.User.Email
		}
	}
	if name == "" || email == "" {
		return nil, ErrNoTaggerIdentity
	}
	return &object.Signature{Name: name, Email: email, When: g.now()}, nil
}

func readConfigFile(path string) (*format.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw := format.New()
	if err := format.NewDecoder(bytes.NewReader(data)).Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return raw, nil
}

// flattenConfig turns sections into "section.key" entries the way
// `git config --list` prints them. Subsection entries become
// "section.subsection.key".
func flattenConfig(raw *format.Config) map[string]string {
	entries := make(map[string]string)
	if raw == nil {
		return entries
	}
	for _, sec := range raw.Sections {
		for _, opt := range sec.Options {
			entries[strings.ToLower(sec.Name+"."+opt.Key)] = opt.Value
		}
		for _, sub := range sec.Subsections {
			for _, opt := range sub.Options {
				entries[strings.ToLower(sec.Name)+"."+sub.Name+"."+strings.ToLower(opt.Key)] = opt.Value
			}
		}
	}
	return entries
}
