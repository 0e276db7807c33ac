package eval

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/grovekit/grove/internal/config"
)

// ShellCommand builds the argv for running a command string through the
// configuration's shell. The configured shell may carry its own flags
// (eg. "zsh -o shwordsplit"); extra arguments after the command string
// become the script's positional parameters ($0, $1, ...).
func ShellCommand(cfg *config.Configuration, cmdString string, args ...string) []string {
	shell := cfg.Shell
	if shell == "" {
		shell = config.DefaultShell
	}
	argv, err := shellwords.Parse(shell)
	if err != nil || len(argv) == 0 {
		argv = []string{config.DefaultShell}
	}
	if cfg.ShellErrexit {
		argv = append(argv, "-e")
	}
	if cfg.ShellWordSplit && strings.Contains(argv[0], "zsh") {
		argv = append(argv, "-o", "shwordsplit")
	}
	argv = append(argv, "-c", cmdString)
	argv = append(argv, args...)
	return argv
}

// execExpression runs an exec expression's command through the shell in
// the given directory and returns its captured stdout with trailing
// whitespace trimmed. Failures yield the empty string; exec expressions
// see only the ambient process environment plus the working directory.
func execExpression(cfg *config.Configuration, cmdString, dir string) string {
	shell := cfg.Shell
	if shell == "" {
		shell = config.DefaultShell
	}
	argv, err := shellwords.Parse(shell)
	if err != nil || len(argv) == 0 {
		argv = []string{config.DefaultShell}
	}
	argv = append(argv, "-c", cmdString)

	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if dir != "" {
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), "PWD="+dir)
	}
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			// The command could not be started at all.
			return ""
		}
		// A nonzero exit still produces whatever was captured.
	}
	return strings.TrimRight(stdout.String(), " \t\r\n")
}
