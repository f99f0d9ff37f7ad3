package expand

import (
	"os"
	"path/filepath"

	"github.com/thoas/go-funk"

	"github.com/stackabletech/beku/internal/errs"
	"github.com/stackabletech/beku/internal/model"
	"github.com/stackabletech/beku/internal/render"
)

// RunnerConfig renders the single top-level runner-config template once per
// suite expansion and writes it to the parent of targetRoot, using the
// template's basename with the Jinja suffix stripped.
func RunnerConfig(cases []model.TestCase, targetRoot, templatePath string) (Result, error) {
	dir := filepath.Dir(templatePath)
	base := filepath.Base(templatePath)

	env, err := render.NewEnvironment(dir, nil)
	if err != nil {
		return Result{}, err
	}

	destName := templateSuffix.ReplaceAllString(base, "")
	dest := filepath.Join(filepath.Dir(targetRoot), destName)

	names := distinctTestNames(cases)
	tests := make([]map[string]interface{}, 0, len(names))
	for _, n := range names {
		tests = append(tests, map[string]interface{}{"name": n})
	}
	vars := map[string]interface{}{
		"testinput": map[string]interface{}{"tests": tests},
	}

	rendered, err := env.Render(base, vars)
	if err != nil {
		return Result{}, err
	}

	content := []byte(rendered + "\n")
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return Result{}, errs.IOErr(err, "writing runner config %q", dest)
	}
	return Result{FilesWritten: 1, BytesWritten: int64(len(content))}, nil
}

// distinctTestNames returns the first-seen, deduplicated sequence of test
// names across cases.
func distinctTestNames(cases []model.TestCase) []string {
	seen := make([]string, 0, len(cases))
	for _, tc := range cases {
		if !funk.ContainsString(seen, tc.Name) {
			seen = append(seen, tc.Name)
		}
	}
	return seen
}
