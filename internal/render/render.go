// Package render adapts the template engine the spec treats as a black box
// (loaded from a directory, rendered with a nested string mapping, with one
// named global function) onto github.com/nikolalohinski/gonja/v2, a
// Jinja2-compatible engine for Go.
package render

import (
	"fmt"

	"github.com/nikolalohinski/gonja/v2"
	"github.com/nikolalohinski/gonja/v2/config"
	"github.com/nikolalohinski/gonja/v2/exec"
	"github.com/nikolalohinski/gonja/v2/loaders"

	"github.com/stackabletech/beku/internal/errs"
)

// Environment wraps a gonja environment rooted at a single directory, with
// trim_blocks behaviour enabled (Jinja strips the first newline following a
// control block) and a fixed set of globals available to every template
// loaded from it.
type Environment struct {
	env     *gonja.Environment
	globals map[string]interface{}
}

// NewEnvironment creates a template environment rooted at dir. globals are
// made available to every template rendered through this environment under
// the names given (this is how the "lookup" hook is registered).
func NewEnvironment(dir string, globals map[string]interface{}) (*Environment, error) {
	cfg := config.NewConfig()
	cfg.TrimBlocks = true

	loader, err := loaders.NewFileSystemLoader(dir)
	if err != nil {
		return nil, errs.ConfigWrap(err, "opening template directory %q", dir)
	}

	env := gonja.NewEnvironment(cfg, loader)
	return &Environment{env: env, globals: globals}, nil
}

// Render loads the named template (relative to the environment's root
// directory) and renders it with vars merged on top of the environment's
// globals.
func (e *Environment) Render(name string, vars map[string]interface{}) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.RenderErr(fmt.Errorf("%v", r), "rendering template %q", name)
		}
	}()

	tpl, loadErr := e.env.FromFile(name)
	if loadErr != nil {
		return "", errs.RenderErr(loadErr, "loading template %q", name)
	}

	merged := make(map[string]interface{}, len(e.globals)+len(vars))
	for k, v := range e.globals {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}

	out, err = tpl.ExecuteToString(exec.NewContext(merged))
	if err != nil {
		return "", errs.RenderErr(err, "rendering template %q", name)
	}
	return out, nil
}
