package template

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fabricgen-labs/fabricgen/internal/tree"
)

func TestRepoURL_Precedence(t *testing.T) {
	t.Setenv("FABRICGEN_TEMPLATE_REPO", "")
	if got := RepoURL(); got != "https://github.com/FabricMC/fabric-example-mod" {
		t.Errorf("RepoURL() default = %q", got)
	}

	t.Setenv("FABRICGEN_TEMPLATE_REPO", "/srv/template")
	if got := RepoURL(); got != "/srv/template" {
		t.Errorf("RepoURL() with env = %q", got)
	}
}

func TestClone_Branch(t *testing.T) {
	repo := newTemplateRepo(t)
	dest := filepath.Join(t.TempDir(), "coolmod")

	err := Clone(context.Background(), Options{RepoURL: repo, Branch: "1.19", Dir: dest})
	if err != nil {
		t.Fatalf("Clone() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dest, "gradle.properties"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "minecraft_version=1.19") {
		t.Errorf("cloned wrong branch: %q", data)
	}
	if _, err := os.Stat(filepath.Join(dest, ".git")); !os.IsNotExist(err) {
		t.Error(".git should be removed")
	}
	assertNoCloneDirs(t, dest)
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0055 == 0 {
		t.Errorf("cloned dir mode = %v, want group/other readable", info.Mode().Perm())
	}
}

func TestClone_KeepGitAndCommit(t *testing.T) {
	repo := newTemplateRepo(t)
	first := strings.TrimSpace(gitOutput(t, repo, "rev-list", "--max-parents=0", "master"))
	dest := filepath.Join(t.TempDir(), "pinned")

	err := Clone(context.Background(), Options{RepoURL: repo, Branch: "master", Commit: first, Dir: dest, KeepGit: true})
	if err != nil {
		t.Fatalf("Clone() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, ".git")); err != nil {
		t.Errorf(".git should be kept: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "LATER.md")); !os.IsNotExist(err) {
		t.Error("checkout of the first commit should not contain LATER.md")
	}
}

func TestClone_Errors(t *testing.T) {
	repo := newTemplateRepo(t)

	existing := t.TempDir()
	err := Clone(context.Background(), Options{RepoURL: repo, Branch: "master", Dir: existing})
	if tree.KindOf(err) != tree.KindAlreadyExists {
		t.Errorf("existing dir: kind = %v (err %v)", tree.KindOf(err), err)
	}

	dest := filepath.Join(t.TempDir(), "nobranch")
	err = Clone(context.Background(), Options{RepoURL: repo, Branch: "does-not-exist", Dir: dest})
	if tree.KindOf(err) != tree.KindInvalidData {
		t.Errorf("missing branch: kind = %v (err %v)", tree.KindOf(err), err)
	}
	assertNoCloneDirs(t, dest)
}

func TestClone_LeavesExistingTmpSibling(t *testing.T) {
	repo := newTemplateRepo(t)
	parent := t.TempDir()
	dest := filepath.Join(parent, "coolmod")
	notes := filepath.Join(parent, "coolmod.tmp", "notes.txt")
	if err := os.MkdirAll(filepath.Dir(notes), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, notes, "mine\n")

	if err := Clone(context.Background(), Options{RepoURL: repo, Branch: "master", Dir: dest}); err != nil {
		t.Fatalf("Clone() error: %v", err)
	}

	data, err := os.ReadFile(notes)
	if err != nil {
		t.Fatalf("existing coolmod.tmp was disturbed: %v", err)
	}
	if string(data) != "mine\n" {
		t.Errorf("notes.txt = %q, want %q", data, "mine\n")
	}
	if _, err := os.Stat(filepath.Join(dest, "gradle.properties")); err != nil {
		t.Errorf("clone incomplete: %v", err)
	}
	assertNoCloneDirs(t, dest)
}

// ─── Test Helpers ──────────────────────────────────────────────────

// newTemplateRepo creates a local git repository with a master branch (two
// commits) and a 1.19 branch.
func newTemplateRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	git(t, dir, "init", "-q")
	git(t, dir, "checkout", "-q", "-b", "master")
	writeFile(t, filepath.Join(dir, "gradle.properties"), "minecraft_version=1.16.5\n")
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-q", "-m", "initial")

	writeFile(t, filepath.Join(dir, "LATER.md"), "later\n")
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-q", "-m", "later")

	git(t, dir, "checkout", "-q", "-b", "1.19")
	writeFile(t, filepath.Join(dir, "gradle.properties"), "minecraft_version=1.19\n")
	git(t, dir, "commit", "-q", "-am", "1.19")
	git(t, dir, "checkout", "-q", "master")
	return dir
}

// assertNoCloneDirs fails if a clone directory for dest is left behind.
func assertNoCloneDirs(t *testing.T, dest string) {
	t.Helper()
	matches, err := filepath.Glob(dest + tmpPattern)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) > 0 {
		t.Errorf("clone directories left behind: %v", matches)
	}
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	gitOutput(t, dir, args...)
}

func gitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	full := append([]string{"-c", "user.name=test", "-c", "user.email=test@example.com", "-c", "commit.gpgsign=false"}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return string(out)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
