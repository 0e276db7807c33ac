package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/grovekit/grove/internal/config"
	"github.com/grovekit/grove/internal/eval"
)

// treeEnviron builds the subprocess environment for a tree context: the
// ambient process environment with the configured entries layered on top.
func treeEnviron(app *config.ApplicationContext, ctx *config.TreeContext) []string {
	cfg := app.Get(ctx.Config)
	environ := os.Environ()
	for _, v := range eval.Environment(app, cfg, ctx) {
		environ = append(environ, v.Name+"="+v.Value)
	}
	return environ
}

// treeProc is a tree's materialized execution state: the working
// directory and the assembled environment. Once prepared, running a
// subprocess needs no further evaluation.
type treeProc struct {
	tree string
	dir  string
	env  []string
}

// prepareTree materializes one context. Evaluation writes shared
// memoization cells, so contexts are prepared one at a time before any
// parallel execution. The tree must exist on disk.
func prepareTree(app *config.ApplicationContext, ctx *config.TreeContext) (*treeProc, error) {
	cfg := app.Get(ctx.Config)
	path, ok := cfg.TreePath(ctx.Tree)
	if !ok {
		return nil, fmt.Errorf("tree %q has no path", ctx.Tree)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("tree %q does not exist at %s", ctx.Tree, path)
	}
	return &treeProc{
		tree: ctx.Tree,
		dir:  path,
		env:  append(treeEnviron(app, ctx), "PWD="+path),
	}, nil
}

// run executes argv inside the prepared tree. Safe to call from multiple
// goroutines on distinct treeProc values.
func (p *treeProc) run(argv []string, out, errOut io.Writer) error {
	c := exec.Command(argv[0], argv[1:]...)
	c.Dir = p.dir
	c.Env = p.env
	c.Stdin = os.Stdin
	c.Stdout = out
	c.Stderr = errOut
	return c.Run()
}

// runInTree prepares the tree context and runs argv inside it.
func runInTree(app *config.ApplicationContext, ctx *config.TreeContext, argv []string, out, errOut io.Writer) error {
	p, err := prepareTree(app, ctx)
	if err != nil {
		return err
	}
	return p.run(argv, out, errOut)
}
