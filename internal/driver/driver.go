// Package driver orchestrates a full matrix expansion: locate the named
// suite, sanity-check the filesystem layout, ensure the output directory
// exists, expand the runner config, then expand every test case. This is
// the only package that sequences filesystem side effects end to end.
package driver

import (
	"os"
	"path/filepath"

	humanize "github.com/dustin/go-humanize"

	"github.com/stackabletech/beku/internal/errs"
	"github.com/stackabletech/beku/internal/expand"
	"github.com/stackabletech/beku/internal/logging"
	"github.com/stackabletech/beku/internal/model"
)

// Config bundles the paths and suite name a single Run needs.
type Config struct {
	Suite         string
	TemplateDir   string
	OutputDir     string
	KuttlTestFile string
}

// Run selects suite from effective, sanity-checks it against the filesystem,
// and expands it: the runner config first, then every test case in order.
func Run(cfg Config, effective []model.EffectiveSuite, logger logging.Logger) error {
	suite, err := selectSuite(effective, cfg.Suite)
	if err != nil {
		return err
	}
	logger.Log("suite selected")
	logger.LogWithArgs("suite=%s cases=%d", cfg.Suite, len(suite.TestCases))

	if err := sanityCheck(suite, cfg.TemplateDir, cfg.KuttlTestFile); err != nil {
		return err
	}
	logger.Debug("sanity checks passed")

	targetRoot := filepath.Join(cfg.OutputDir, "tests")
	if err := os.MkdirAll(targetRoot, 0o755); err != nil {
		return errs.IOErr(err, "creating output directory %q", targetRoot)
	}

	var filesWritten int
	var bytesWritten int64

	configResult, err := expand.RunnerConfig(suite.TestCases, targetRoot, cfg.KuttlTestFile)
	if err != nil {
		return err
	}
	filesWritten += configResult.FilesWritten
	bytesWritten += configResult.BytesWritten
	logger.Debug("runner config written")

	for _, tc := range suite.TestCases {
		logger.LogWithArgs("expanding test case id=%s", tc.ID())
		result, err := expand.TestCase(tc, cfg.TemplateDir, targetRoot)
		if err != nil {
			return err
		}
		filesWritten += result.FilesWritten
		bytesWritten += result.BytesWritten
	}

	logger.LogWithArgs(
		"expansion complete: suite=%s cases=%d files=%d written=%s",
		cfg.Suite, len(suite.TestCases), filesWritten, humanize.Bytes(uint64(bytesWritten)),
	)
	return nil
}

func selectSuite(effective []model.EffectiveSuite, name string) (model.EffectiveSuite, error) {
	for _, s := range effective {
		if s.Name == name {
			return s, nil
		}
	}
	return model.EffectiveSuite{}, errs.Config("cannot expand test suite [%s]: suite not found", name)
}

func sanityCheck(suite model.EffectiveSuite, templateDir, kuttlTestFile string) error {
	for _, tc := range suite.TestCases {
		tdRoot := filepath.Join(templateDir, tc.Name)
		info, err := os.Stat(tdRoot)
		if err != nil || !info.IsDir() {
			return errs.Config("test definition directory not found [%s]", tdRoot)
		}
	}
	info, err := os.Stat(kuttlTestFile)
	if err != nil || info.IsDir() {
		return errs.Config("kuttl test config template not found [%s]", kuttlTestFile)
	}
	return nil
}
