// Command beku expands a declarative, matrix-style kuttl test definition
// into a concrete set of test directories on disk.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackabletech/beku/internal/driver"
	"github.com/stackabletech/beku/internal/errs"
	"github.com/stackabletech/beku/internal/loader"
	"github.com/stackabletech/beku/internal/logging"
	"github.com/stackabletech/beku/internal/resolver"
	"github.com/stackabletech/beku/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	o := &options{}
	root := newRootCommand(o)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return exitCodeFor(err)
	}
	return 0
}

func newRootCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "beku",
		Short:   "Kuttl test expander for the Stackable Data Platform",
		Version: version.String(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return expand(o)
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	setFlags(cmd.Flags(), o)
	return cmd
}

func expand(o *options) error {
	logger := logging.New(logging.ParseLevel(o.logLevel))

	doc, err := loader.FromFile(o.testDefinition)
	if err != nil {
		return err
	}

	effective := resolver.Resolve(doc)

	cfg := driver.Config{
		Suite:         o.suite,
		TemplateDir:   o.templateDir,
		OutputDir:     o.outputDir,
		KuttlTestFile: o.kuttlTest,
	}
	return driver.Run(cfg, effective, logger)
}

// exitCodeFor maps the driver's typed errors to small, distinguishable exit
// codes so CI logs can tell failure categories apart.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, errs.Configuration):
		fmt.Fprintln(os.Stderr, err)
		return 2
	case errors.Is(err, errs.IO):
		fmt.Fprintln(os.Stderr, err)
		return 3
	case errors.Is(err, errs.Render):
		fmt.Fprintln(os.Stderr, err)
		return 4
	default:
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
}
