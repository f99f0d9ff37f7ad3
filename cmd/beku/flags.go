package main

import "github.com/spf13/pflag"

// options holds every flag value the root command accepts, defaulting to
// the paths real Stackable operator repos lay out their kuttl tests at.
type options struct {
	testDefinition string
	templateDir    string
	outputDir      string
	kuttlTest      string
	suite          string
	logLevel       string
}

// setFlags registers options onto flags, following the same
// *pflag.FlagSet-registration idiom the teacher uses for KIND's verbosity
// flag in pkg/test/kind_logger.go (flags.VarP(...)).
func setFlags(flags *pflag.FlagSet, o *options) {
	flags.StringVarP(&o.testDefinition, "test_definition", "i", "tests/test-definition.yaml", "Test definition file.")
	flags.StringVarP(&o.templateDir, "template_dir", "t", "tests/templates/kuttl", "Folder with test templates.")
	flags.StringVarP(&o.outputDir, "output_dir", "o", "tests/_work", "Output folder for the expanded test cases.")
	flags.StringVarP(&o.kuttlTest, "kuttl_test", "k", "tests/kuttl-test.yaml.jinja2", "Kuttl test suite definition file.")
	flags.StringVarP(&o.suite, "suite", "s", "default", "Name of the test suite to expand.")
	flags.StringVarP(&o.logLevel, "log_level", "l", "info", "Set log level (debug, info).")
}
