package gitsemver

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// newGitRepo creates a repository with one commit using the git binary.
func newGitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	tmpDir := t.TempDir()
	runGitIn(t, tmpDir, "init")
	runGitIn(t, tmpDir, "config", "user.email", "test@example.com")
	runGitIn(t, tmpDir, "config", "user.name", "Test User")
	runGitIn(t, tmpDir, "config", "tag.gpgSign", "false")
	if err := os.WriteFile(filepath.Join(tmpDir, "testfile.txt"), []byte("testfile\n"), 0644); err != nil {
		t.Fatal(err)
	}
	runGitIn(t, tmpDir, "add", "testfile.txt")
	runGitIn(t, tmpDir, "commit", "-m", "added testfile")
	return tmpDir
}

func runGitIn(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return string(out)
}

// gitDataset1 adds the annotated tags used throughout the tests.
func gitDataset1(t *testing.T, dir string) {
	t.Helper()
	for _, tag := range dataset1 {
		runGitIn(t, dir, "tag", "-a", "-m", "dataset "+tag, tag)
	}
}

func sameDir(t *testing.T, a, b string) bool {
	t.Helper()
	ra, err := filepath.EvalSymlinks(a)
	if err != nil {
		t.Fatal(err)
	}
	rb, err := filepath.EvalSymlinks(b)
	if err != nil {
		t.Fatal(err)
	}
	return ra == rb
}

func TestGitCLIRepoRoot(t *testing.T) {
	repo := newGitRepo(t)
	sub := filepath.Join(repo, "a", "b")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	gw, err := NewGitCLI(sub)
	if err != nil {
		t.Fatal(err)
	}
	root, err := gw.RepoRoot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !sameDir(t, root, repo) {
		t.Errorf("RepoRoot = %q, expected %q", root, repo)
	}
}

func TestGitCLIOutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	gw, err := NewGitCLI(dir)
	if err != nil {
		t.Fatal(err)
	}
	_, err = gw.RepoRoot(context.Background())
	if !errors.Is(err, ErrNotARepository) {
		t.Fatalf("error = %v, expected ErrNotARepository", err)
	}
	if !strings.Contains(err.Error(), "not a git repository") {
		t.Errorf("error %q does not carry git's message", err)
	}
}

func TestGitCLIBadWorkdir(t *testing.T) {
	_, err := NewGitCLI("bad_dir_xyz")
	if !errors.Is(err, ErrWorkdirNotFound) {
		t.Fatalf("error = %v, expected ErrWorkdirNotFound", err)
	}
	if !strings.Contains(err.Error(), "directory bad_dir_xyz does not exist") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestGitCLIListTags(t *testing.T) {
	repo := newGitRepo(t)
	gitDataset1(t, repo)
	gw, err := NewGitCLI(repo)
	if err != nil {
		t.Fatal(err)
	}
	tags, err := gw.ListTags(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != len(dataset1) {
		t.Fatalf("ListTags = %v, expected %d tags", tags, len(dataset1))
	}
	st, err := Resolve(tags, DefaultConfiguration())
	if err != nil {
		t.Fatal(err)
	}
	if st.CurrentTag != "version2.1.1-freetext" {
		t.Errorf("CurrentTag = %q, expected %q", st.CurrentTag, "version2.1.1-freetext")
	}
}

func TestGitCLIConfig(t *testing.T) {
	repo := newGitRepo(t)
	gw, err := NewGitCLI(repo)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	store := NewConfigStore(gw)

	prefix, initial, suffix := "ver", "1.0.0", "-pending"
	cfg, err := store.Set(ctx, repo, Update{Prefix: &prefix, Initial: &initial, Suffix: &suffix})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prefix != "ver" || cfg.Initial != "1.0.0" || cfg.Suffix != "-pending" {
		t.Errorf("after Set: %+v", cfg)
	}
	data, err := os.ReadFile(filepath.Join(repo, ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[semver]") {
		t.Errorf("config file lacks [semver] section:\n%s", data)
	}

	// The regular git config overrides the file.
	runGitIn(t, repo, "config", "semver.prefix", "version")
	cfg, err = store.Load(ctx, repo)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prefix != "version" {
		t.Errorf("Prefix = %q, expected %q", cfg.Prefix, "version")
	}
}

func TestGitCLIMalformedConfigFile(t *testing.T) {
	repo := newGitRepo(t)
	if err := os.WriteFile(filepath.Join(repo, ConfigFileName), []byte("[semver\n  prefix = ver\n"), 0644); err != nil {
		t.Fatal(err)
	}
	gw, err := NewGitCLI(repo)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := NewConfigStore(gw).Load(context.Background(), repo)
	if err != nil {
		t.Fatalf("Load returned error for malformed file: %v", err)
	}
	if cfg.Prefix != "" || cfg.Initial != "0.0.0" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestGitCLIBump(t *testing.T) {
	repo := newGitRepo(t)
	gitDataset1(t, repo)
	gw, err := NewGitCLI(repo)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	e, err := New(ctx, gw)
	if err != nil {
		t.Fatal(err)
	}

	plan, err := e.Plan(ctx, Major, "Additional message", strPtr("pending"))
	if err != nil {
		t.Fatal(err)
	}
	tag, err := e.Bump(ctx, Major, "Additional message", strPtr("pending"))
	if err != nil {
		t.Fatal(err)
	}
	if tag != "3.0.0-pending" {
		t.Errorf("Bump = %q, expected %q", tag, "3.0.0-pending")
	}
	contents := runGitIn(t, repo, "tag", "-l", "--format=%(contents)", tag)
	if strings.TrimSpace(contents) != plan.Message {
		t.Errorf("tag message = %q, expected %q", strings.TrimSpace(contents), plan.Message)
	}
	if kind := strings.TrimSpace(runGitIn(t, repo, "cat-file", "-t", tag)); kind != "tag" {
		t.Errorf("tag object type = %q, expected annotated tag", kind)
	}

	// Same tag again is rejected.
	err = gw.CreateAnnotatedTag(ctx, tag, "again")
	if !errors.Is(err, ErrTagCreationFailed) {
		t.Fatalf("error = %v, expected ErrTagCreationFailed", err)
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error %q does not carry git's stderr", err)
	}
}
