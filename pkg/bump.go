package gitsemver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

// TagPlan is a fully composed tag, ready to be created or printed.
type TagPlan struct {
	Level   Level
	OldTag  string // current tag before the bump
	Name    string // new tag name
	Message string // annotation
}

// Engine bumps versions for one repository. It loads the configuration once
// at construction and reloads it after every write.
type Engine struct {
	gw     Gateway
	store  *ConfigStore
	logger *log.Logger
	root   string
	cfg    Configuration
}

// New locates the repository through gw and loads its configuration.
func New(ctx context.Context, gw Gateway, opts ...Option) (*Engine, error) {
	o := applyOptions(opts)
	root, err := gw.RepoRoot(ctx)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		gw:     gw,
		store:  NewConfigStore(gw, opts...),
		logger: o.logger,
		root:   root,
	}
	if e.cfg, err = e.store.Load(ctx, root); err != nil {
		return nil, err
	}
	e.logger.Debug("engine ready", "root", root, "prefix", e.cfg.Prefix, "initial", e.cfg.Initial, "suffix", e.cfg.Suffix)
	return e, nil
}

// Root returns the repository root directory.
func (e *Engine) Root() string { return e.root }

// Config returns the configuration currently in effect.
func (e *Engine) Config() Configuration { return e.cfg }

// Resolve lists the repository tags and resolves them against the current
// configuration.
func (e *Engine) Resolve(ctx context.Context) (State, error) {
	tags, err := e.gw.ListTags(ctx)
	if err != nil {
		return State{}, fmt.Errorf("listing tags: %w", err)
	}
	st, err := Resolve(tags, e.cfg)
	if err != nil {
		return State{}, err
	}
	e.logger.Debug("resolved", "tags", len(tags), "candidates", len(st.TagsByVersion), "current", st.CurrentTag)
	return st, nil
}

// CurrentTag returns the tag of the highest version in the repository.
func (e *Engine) CurrentTag(ctx context.Context) (string, error) {
	st, err := e.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return st.CurrentTag, nil
}

// SetConfig writes u to the scoped config file and replaces the engine's
// configuration with the reloaded one.
func (e *Engine) SetConfig(ctx context.Context, u Update) (Configuration, error) {
	cfg, err := e.store.Set(ctx, e.root, u)
	if err != nil {
		return Configuration{}, err
	}
	e.cfg = cfg
	return cfg, nil
}

// Plan composes the tag a bump at level would create. A non-nil suffix
// overrides the configured one, so an empty string bumps without any
// suffix; message, when non-empty, is appended to the annotation on its own
// line.
func (e *Engine) Plan(ctx context.Context, level Level, message string, suffix *string) (TagPlan, error) {
	if _, err := ParseLevel(string(level)); err != nil {
		return TagPlan{}, err
	}
	st, err := e.Resolve(ctx)
	if err != nil {
		return TagPlan{}, err
	}
	return composePlan(st, e.cfg, level, message, suffix), nil
}

func composePlan(st State, cfg Configuration, level Level, message string, suffix *string) TagPlan {
	effective := cfg.Suffix
	if suffix != nil {
		effective = *suffix
	}
	name := cfg.Prefix + st.Next[level].String() + joinSuffix(effective)

	msg := fmt.Sprintf("Bumped %s from version '%s' to '%s'", level, st.CurrentTag, name)
	if message != "" {
		msg += "\n" + message
	}
	return TagPlan{Level: level, OldTag: st.CurrentTag, Name: name, Message: msg}
}

// joinSuffix renders a suffix for appending to a version: "pending" and
// "-pending" both become "-pending".
func joinSuffix(s string) string {
	if s == "" || strings.HasPrefix(s, "-") {
		return s
	}
	return "-" + s
}

// PreviewCommand returns the git invocation Bump would run, quoted for
// bash. Name and annotation are byte-identical to what Bump creates.
func (e *Engine) PreviewCommand(ctx context.Context, level Level, message string, suffix *string) (string, error) {
	plan, err := e.Plan(ctx, level, message, suffix)
	if err != nil {
		return "", err
	}
	return plan.Command()
}

// Command renders the plan as a `git tag -a` command line.
func (p TagPlan) Command() (string, error) {
	args := []string{"git", "tag", "-a", "-m", p.Message, p.Name}
	quoted := make([]string, len(args))
	for i, a := range args {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("quoting %q: %w", a, err)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}

// Bump creates the annotated tag for level and returns the repository's
// new current tag. A rejected tag is reported as a *TagCreationError and
// is not retried.
func (e *Engine) Bump(ctx context.Context, level Level, message string, suffix *string) (string, error) {
	plan, err := e.Plan(ctx, level, message, suffix)
	if err != nil {
		return "", err
	}
	if err := e.gw.CreateAnnotatedTag(ctx, plan.Name, plan.Message); err != nil {
		return "", e.tagError(plan, err)
	}
	e.logger.Debug("tag created", "level", level, "from", plan.OldTag, "to", plan.Name)

	if e.cfg, err = e.store.Load(ctx, e.root); err != nil {
		return "", err
	}
	return e.CurrentTag(ctx)
}

func (e *Engine) tagError(plan TagPlan, err error) error {
	var te *TagCreationError
	if errors.As(err, &te) {
		return err
	}
	cmd, qerr := plan.Command()
	if qerr != nil {
		cmd = "git tag -a " + plan.Name
	}
	return &TagCreationError{Name: plan.Name, Command: cmd, Err: err}
}
