package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackabletech/beku/internal/errs"
	"github.com/stackabletech/beku/internal/logging"
	"github.com/stackabletech/beku/internal/model"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

func newSilentLogger() logging.Logger {
	return logging.New(logging.LevelInfo)
}

func TestRunExpandsSelectedSuite(t *testing.T) {
	root := t.TempDir()
	templateDir := filepath.Join(root, "templates")
	outputDir := filepath.Join(root, "_work")
	kuttlTestFile := filepath.Join(root, "kuttl-test.yaml.jinja2")

	writeFile(t, filepath.Join(templateDir, "smoke", "00-assert.yaml"), "kind: Pod\n", 0o644)
	writeFile(t, kuttlTestFile, "testDirs:\n{% for t in testinput.tests %}  - {{ t.name }}\n{% endfor %}", 0o644)

	effective := []model.EffectiveSuite{
		{
			Name: "default",
			TestCases: []model.TestCase{
				model.NewTestCase("smoke", []model.Binding{{Name: "trino", Value: "234"}}),
			},
		},
	}

	cfg := Config{Suite: "default", TemplateDir: templateDir, OutputDir: outputDir, KuttlTestFile: kuttlTestFile}
	err := Run(cfg, effective, newSilentLogger())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outputDir, "tests", "smoke", "smoke_trino-234", "00-assert.yaml"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outputDir, "kuttl-test.yaml"))
	require.NoError(t, err)
}

func TestRunFailsOnUnknownSuite(t *testing.T) {
	root := t.TempDir()
	cfg := Config{
		Suite:         "nonexistent",
		TemplateDir:   filepath.Join(root, "templates"),
		OutputDir:     filepath.Join(root, "_work"),
		KuttlTestFile: filepath.Join(root, "kuttl-test.yaml.jinja2"),
	}
	err := Run(cfg, nil, newSilentLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Configuration)
}

func TestRunFailsWhenTemplateDirMissing(t *testing.T) {
	root := t.TempDir()
	kuttlTestFile := filepath.Join(root, "kuttl-test.yaml.jinja2")
	writeFile(t, kuttlTestFile, "ok", 0o644)

	effective := []model.EffectiveSuite{
		{
			Name: "default",
			TestCases: []model.TestCase{
				model.NewTestCase("smoke", []model.Binding{{Name: "trino", Value: "234"}}),
			},
		},
	}
	cfg := Config{
		Suite:         "default",
		TemplateDir:   filepath.Join(root, "templates-missing"),
		OutputDir:     filepath.Join(root, "_work"),
		KuttlTestFile: kuttlTestFile,
	}
	err := Run(cfg, effective, newSilentLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Configuration)
}

func TestRunFailsWhenKuttlTestFileMissing(t *testing.T) {
	root := t.TempDir()
	templateDir := filepath.Join(root, "templates")
	writeFile(t, filepath.Join(templateDir, "smoke", "00-assert.yaml"), "kind: Pod\n", 0o644)

	effective := []model.EffectiveSuite{
		{
			Name: "default",
			TestCases: []model.TestCase{
				model.NewTestCase("smoke", []model.Binding{{Name: "trino", Value: "234"}}),
			},
		},
	}
	cfg := Config{
		Suite:         "default",
		TemplateDir:   templateDir,
		OutputDir:     filepath.Join(root, "_work"),
		KuttlTestFile: filepath.Join(root, "kuttl-test-missing.yaml.jinja2"),
	}
	err := Run(cfg, effective, newSilentLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Configuration)
}

func TestRunCreatesOutputDirIfMissing(t *testing.T) {
	root := t.TempDir()
	templateDir := filepath.Join(root, "templates")
	outputDir := filepath.Join(root, "nested", "_work")
	kuttlTestFile := filepath.Join(root, "kuttl-test.yaml.jinja2")

	writeFile(t, filepath.Join(templateDir, "smoke", "00-assert.yaml"), "kind: Pod\n", 0o644)
	writeFile(t, kuttlTestFile, "ok", 0o644)

	effective := []model.EffectiveSuite{
		{
			Name: "default",
			TestCases: []model.TestCase{
				model.NewTestCase("smoke", []model.Binding{{Name: "trino", Value: "234"}}),
			},
		},
	}
	cfg := Config{Suite: "default", TemplateDir: templateDir, OutputDir: outputDir, KuttlTestFile: kuttlTestFile}
	require.NoError(t, Run(cfg, effective, newSilentLogger()))

	info, err := os.Stat(outputDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
