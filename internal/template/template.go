// Package template fetches the example mod template with git. It clones a
// single branch into a temporary sibling of the target directory, checks out
// a pinned commit when one is requested, strips the .git directory, and
// renames the result into place.
package template

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fabricgen-labs/fabricgen/internal/branding"
	"github.com/fabricgen-labs/fabricgen/internal/config"
	"github.com/fabricgen-labs/fabricgen/internal/tree"
)

// tmpPattern names the fresh sibling directory a clone lands in before it
// is renamed to the target.
const tmpPattern = ".tmp-*"

// Options describes one template fetch.
type Options struct {
	RepoURL string // git URL or local path of the template
	Branch  string // branch to clone
	Commit  string // optional commit to check out after cloning
	Dir     string // target directory; must not exist yet
	KeepGit bool   // keep the .git directory of the clone
}

// RepoURL returns the template repository URL, checking (in order):
// 1. <PREFIX>_TEMPLATE_REPO env var
// 2. config key "template_repo"
// 3. branding.TemplateRepoURL() (from branding.yaml)
func RepoURL() string {
	if v := os.Getenv(branding.EnvVar("TEMPLATE_REPO")); v != "" {
		return v
	}
	if v := config.Get(config.KeyTemplateRepo); v != "" {
		return v
	}
	return branding.TemplateRepoURL()
}

// Clone fetches the template described by opts into opts.Dir.
//
// The clone lands in a newly created <dir>.tmp-* sibling first and is
// renamed on success, so a failed clone never leaves a half-populated target
// behind and existing directories next to the target are never touched.
func Clone(ctx context.Context, opts Options) error {
	if err := ensureGit(); err != nil {
		return err
	}
	if opts.Dir == "" {
		return fmt.Errorf("%w: no target directory", tree.ErrInvalidArgument)
	}
	if _, err := os.Lstat(opts.Dir); err == nil {
		return &tree.PathError{Op: "clone", Path: opts.Dir, Err: os.ErrExist}
	}

	repoURL := opts.RepoURL
	if repoURL == "" {
		repoURL = RepoURL()
	}
	parent := filepath.Dir(opts.Dir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}
	tmpDir, err := os.MkdirTemp(parent, filepath.Base(opts.Dir)+tmpPattern)
	if err != nil {
		return fmt.Errorf("creating clone directory: %w", err)
	}
	if err := os.Chmod(tmpDir, 0755); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("creating clone directory: %w", err)
	}

	args := []string{"clone", "--single-branch"}
	if opts.Commit == "" {
		args = append(args, "--depth=1")
	}
	if opts.Branch != "" {
		args = append(args, "-b", opts.Branch)
	}
	args = append(args, repoURL, tmpDir)

	if err := runGit(ctx, "", args...); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning %s: %w", repoURL, err)
	}

	if opts.Commit != "" {
		if err := runGit(ctx, tmpDir, "checkout", "--quiet", opts.Commit); err != nil {
			_ = os.RemoveAll(tmpDir)
			return fmt.Errorf("checking out %s: %w", opts.Commit, err)
		}
	}

	if !opts.KeepGit {
		if err := os.RemoveAll(filepath.Join(tmpDir, ".git")); err != nil {
			_ = os.RemoveAll(tmpDir)
			return fmt.Errorf("removing .git: %w", err)
		}
	}

	if err := os.Rename(tmpDir, opts.Dir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing clone: %w", err)
	}
	return nil
}

// runGit runs git with args in dir. A failing git surfaces as
// tree.ErrInvalidData carrying git's trimmed output.
func runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: git %s: %v\n%s", tree.ErrInvalidData, args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ensureGit checks that git is available on PATH.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found in PATH: %w", fs.ErrNotExist)
	}
	return nil
}
