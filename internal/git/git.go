package git

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CloneOpts configures a git clone operation.
type CloneOpts struct {
	Remote       string // remote name, "origin" when empty
	Branch       string
	Depth        int
	Bare         bool
	SingleBranch bool
}

// Clone clones a repository to dest with the given options.
func Clone(url, dest string, opts CloneOpts) error {
	args := []string{"clone"}

	if opts.Remote != "" && opts.Remote != "origin" {
		args = append(args, "--origin", opts.Remote)
	}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	if opts.Depth > 0 {
		args = append(args, "--depth", fmt.Sprintf("%d", opts.Depth))
	}
	if opts.Bare {
		args = append(args, "--bare")
	}
	if opts.SingleBranch {
		args = append(args, "--single-branch")
	}

	args = append(args, url, dest)

	if err := run(".", args...); err != nil {
		return fmt.Errorf("cloning %s: %w", url, err)
	}
	return nil
}

// Init creates an empty repository at dir.
func Init(dir string, bare bool) error {
	args := []string{"init"}
	if bare {
		args = append(args, "--bare")
	}
	args = append(args, dir)
	return runQuiet(".", args...)
}

// RemoteAdd registers a remote, replacing its URL if it already exists.
func RemoteAdd(repoDir, name, url string) error {
	if err := runQuiet(repoDir, "remote", "add", name, url); err == nil {
		return nil
	}
	return runQuiet(repoDir, "remote", "set-url", name, url)
}

// Remotes returns the configured remote names.
func Remotes(repoDir string) ([]string, error) {
	out, err := outputQuiet(repoDir, "remote")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// ConfigSet writes a repository-local configuration value.
func ConfigSet(repoDir, key, value string) error {
	return runQuiet(repoDir, "config", key, value)
}

// Fetch runs git fetch in the given repo directory.
func Fetch(repoDir string) error {
	return run(repoDir, "fetch", "--prune")
}

// WorktreeAdd creates a linked worktree of repoDir at path on the given
// branch, creating the branch when it does not exist yet.
func WorktreeAdd(repoDir, path, branch string) error {
	if err := runQuiet(repoDir, "worktree", "add", path, branch); err == nil {
		return nil
	}
	return runQuiet(repoDir, "worktree", "add", "-b", branch, path)
}

// Checkout checks out the given ref.
func Checkout(repoDir, ref string) error {
	return run(repoDir, "checkout", ref)
}

// CurrentBranch returns the current branch name, or empty string if detached.
func CurrentBranch(repoDir string) (string, error) {
	out, err := outputQuiet(repoDir, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		// Detached HEAD: symbolic-ref fails.
		return "", nil
	}
	return strings.TrimSpace(out), nil
}

// IsDirty returns true if the working tree has uncommitted changes.
func IsDirty(repoDir string) (bool, error) {
	out, err := outputQuiet(repoDir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// IsCloned returns true if the directory holds a repository. Both regular
// checkouts (.git directory or worktree .git file) and bare repositories
// are recognized.
func IsCloned(repoDir string) bool {
	if _, err := os.Stat(filepath.Join(repoDir, ".git")); err == nil {
		return true
	}
	// Bare repositories keep HEAD at the top level.
	if _, err := os.Stat(filepath.Join(repoDir, "HEAD")); err == nil {
		return true
	}
	return false
}

// IsGitInstalled returns true if git is available on the system PATH.
func IsGitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// run executes a git command in the given directory.
func run(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// runQuiet executes a git command without printing stdout.
// Stderr is captured and included in the error message on failure.
func runQuiet(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}
	return nil
}

// outputQuiet executes a git command and returns its stdout without printing
// to the console.
func outputQuiet(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}
	return stdout.String(), nil
}
