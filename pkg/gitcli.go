package gitsemver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// GitCLI is a Gateway that shells out to the git binary.
type GitCLI struct {
	dir    string
	logger *log.Logger
}

// NewGitCLI returns a gateway running git in dir (the current directory if
// empty). It fails if dir does not exist or git is not installed.
func NewGitCLI(dir string, opts ...Option) (*GitCLI, error) {
	o := applyOptions(opts)
	wd, err := resolveWorkdir(dir)
	if err != nil {
		return nil, err
	}
	if err := checkGit(); err != nil {
		return nil, err
	}
	return &GitCLI{dir: wd, logger: o.logger}, nil
}

// checkGit verifies that git is available on the system.
func checkGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return errors.New("git is not available on the system")
	}
	return nil
}

// run executes git with args in the gateway's directory and returns stdout.
// On failure the error carries git's stderr.
func (g *GitCLI) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	g.logger.Debug("exec", "cmd", "git "+strings.Join(args, " "), "dir", g.dir)
	if err := cmd.Run(); err != nil {
		return stdout.String(), &gitError{args: args, err: err, stderr: strings.TrimSpace(stderr.String())}
	}
	return stdout.String(), nil
}

type gitError struct {
	args   []string
	err    error
	stderr string
}

func (e *gitError) Error() string {
	name := "git"
	if len(e.args) > 0 {
		name += " " + e.args[0]
	}
	return fmt.Sprintf("%s failed: %v, detail: %s", name, e.err, e.stderr)
}

func (e *gitError) Unwrap() error { return e.err }

// exitCode returns git's exit status, or -1 if it did not run to completion.
func (e *gitError) exitCode() int {
	var ee *exec.ExitError
	if errors.As(e.err, &ee) {
		return ee.ExitCode()
	}
	return -1
}

// RepoRoot implements Gateway.
func (g *GitCLI) RepoRoot(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		var ge *gitError
		if errors.As(err, &ge) && ge.stderr != "" {
			return "", fmt.Errorf("%w: %s", ErrNotARepository, ge.stderr)
		}
		return "", fmt.Errorf("%w: %v", ErrNotARepository, err)
	}
	return strings.TrimSpace(out), nil
}

// ListTags implements Gateway.
func (g *GitCLI) ListTags(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "tag", "--list")
	if err != nil {
		return nil, err
	}
	var tags []string
	for _, line := range strings.Split(out, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

// ReadScopedConfig implements Gateway. A missing or unreadable file yields
// an empty map.
func (g *GitCLI) ReadScopedConfig(ctx context.Context, path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	out, err := g.run(ctx, "config", "--file", path, "--list")
	if err != nil {
		g.logger.Debug("ignoring unreadable config file", "file", path, "err", err)
		return map[string]string{}, nil
	}
	return ParseConfigList(out, g.logger), nil
}

// ReadUnscopedConfig implements Gateway.
func (g *GitCLI) ReadUnscopedConfig(ctx context.Context) (map[string]string, error) {
	out, err := g.run(ctx, "config", "--list")
	if err != nil {
		var ge *gitError
		// Exit status 1 means there is no config at all.
		if errors.As(err, &ge) && ge.exitCode() == 1 {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return ParseConfigList(out, g.logger), nil
}

// WriteScopedConfig implements Gateway.
func (g *GitCLI) WriteScopedConfig(ctx context.Context, path, key, value string) error {
	_, err := g.run(ctx, "config", "--file", path, "--", key, value)
	return err
}

// CreateAnnotatedTag implements Gateway.
func (g *GitCLI) CreateAnnotatedTag(ctx context.Context, name, message string) error {
	args := []string{"tag", "-a", "-m", message, name}
	if _, err := g.run(ctx, args...); err != nil {
		te := &TagCreationError{Name: name, Command: "git tag -a " + name, Err: err}
		var ge *gitError
		if errors.As(err, &ge) {
			te.Err = ge.err
			te.Detail = ge.stderr
		}
		return te
	}
	return nil
}
