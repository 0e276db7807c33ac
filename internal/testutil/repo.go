// Package testutil creates throwaway git repositories for tests that
// exercise real clone and remote operations.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// CreateBareRepo creates a bare git repository with an initial commit in a
// temp directory and returns its path. The bare repo serves as a clone URL.
func CreateBareRepo(t *testing.T) string {
	t.Helper()
	return bareRepo(t, "")
}

// CreateBareRepoWithBranch creates a bare repo carrying an extra branch
// besides main.
func CreateBareRepoWithBranch(t *testing.T, branch string) string {
	t.Helper()
	return bareRepo(t, branch)
}

func bareRepo(t *testing.T, branch string) string {
	t.Helper()
	dir := t.TempDir()
	bare := filepath.Join(dir, "repo.git")

	// Build a working repo with an initial commit, then clone it bare.
	work := filepath.Join(dir, "work")
	run(t, dir, "git", "init", "-b", "main", work)
	run(t, work, "git", "config", "user.email", "grove@example.com")
	run(t, work, "git", "config", "user.name", "Grove")

	readme := filepath.Join(work, "README.md")
	if err := os.WriteFile(readme, []byte("# fixture\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	run(t, work, "git", "add", ".")
	run(t, work, "git", "commit", "-m", "initial commit")

	if branch != "" {
		run(t, work, "git", "checkout", "-b", branch)
		extra := filepath.Join(work, "branch.txt")
		if err := os.WriteFile(extra, []byte(branch+"\n"), 0644); err != nil { //nolint:gosec // test file
			t.Fatal(err)
		}
		run(t, work, "git", "add", ".")
		run(t, work, "git", "commit", "-m", "branch commit")
		// Leave HEAD on main so the bare repo's default branch stays main.
		run(t, work, "git", "checkout", "main")
	}

	run(t, dir, "git", "clone", "--bare", work, bare)
	return bare
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}
