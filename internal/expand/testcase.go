// Package expand walks a per-test template tree and materialises one test
// case's output directory: mirrored subdirectories, rendered templates, and
// verbatim-copied plain files, all with permission bits preserved from their
// source.
package expand

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/stackabletech/beku/internal/errs"
	"github.com/stackabletech/beku/internal/lookup"
	"github.com/stackabletech/beku/internal/model"
	"github.com/stackabletech/beku/internal/render"
)

// templateSuffix matches the Jinja template file extensions this tool
// recognises: ".j2" and ".jinja2".
var templateSuffix = regexp.MustCompile(`\.j(inja)?2$`)

// maxDepth is the sanity limit on recursion depth from the test-definition
// root. The root itself is level 1; reaching level 5 is a configuration
// error, not a performance bound.
const maxDepth = 5

// Result summarises one test case's expansion, used by the driver to log a
// humanized closing summary.
type Result struct {
	FilesWritten int
	BytesWritten int64
}

// TestCase walks templateRoot/<test case name> and writes its rendered,
// mirrored tree under targetRoot/<name>/<id>.
func TestCase(tc model.TestCase, templateRoot, targetRoot string) (Result, error) {
	tdRoot := filepath.Join(templateRoot, tc.Name)
	tcRoot := filepath.Join(targetRoot, tc.Name, tc.ID())

	if err := mkdirIgnoreExists(tcRoot); err != nil {
		return Result{}, err
	}

	env, err := render.NewEnvironment(tdRoot, map[string]interface{}{
		"lookup": lookupGlobal,
	})
	if err != nil {
		return Result{}, err
	}

	values := toInterfaceMap(tc.ValuesMap())
	vars := map[string]interface{}{
		"test_scenario": map[string]interface{}{"values": values},
	}

	var result Result
	err = filepath.WalkDir(tdRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errs.IOErr(walkErr, "walking template tree %q", tdRoot)
		}

		rel, relErr := filepath.Rel(tdRoot, path)
		if relErr != nil {
			return errs.IOErr(relErr, "computing relative path for %q", path)
		}

		if d.IsDir() {
			depth := depthOf(rel)
			if depth >= maxDepth {
				return errs.Config("maximum recursive level (%d) reached under %q", maxDepth, tdRoot)
			}
			if rel == "." {
				return nil
			}
			return mkdirIgnoreExists(filepath.Join(tcRoot, rel))
		}

		written, fileErr := expandFile(path, rel, tcRoot, env, vars)
		if fileErr != nil {
			return fileErr
		}
		result.FilesWritten++
		result.BytesWritten += written
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// depthOf returns the directory's level, counting the test-definition root
// itself as level one.
func depthOf(rel string) int {
	if rel == "." {
		return 1
	}
	return 2 + strings.Count(rel, string(filepath.Separator))
}

func expandFile(srcPath, rel, tcRoot string, env *render.Environment, vars map[string]interface{}) (int64, error) {
	info, err := os.Stat(srcPath)
	if err != nil {
		return 0, errs.IOErr(err, "stat %q", srcPath)
	}
	mode := info.Mode().Perm()

	destDir := filepath.Join(tcRoot, filepath.Dir(rel))
	fileName := filepath.Base(rel)

	if templateSuffix.MatchString(fileName) {
		dest := filepath.Join(destDir, templateSuffix.ReplaceAllString(fileName, ""))
		// The template's name, relative to the environment root, is how
		// gonja's FileSystemLoader addresses it.
		templateName := filepath.ToSlash(rel)
		t := templateFile{src: srcPath, dst: dest, mode: mode, templateName: templateName, env: env, vars: vars}
		return t.buildDestination()
	}

	dest := filepath.Join(destDir, fileName)
	p := plainFile{src: srcPath, dst: dest, mode: mode}
	return p.buildDestination()
}

// plainFile is a non-template source file, copied byte-for-byte.
type plainFile struct {
	src, dst string
	mode     os.FileMode
}

func (p plainFile) buildDestination() (int64, error) {
	in, err := os.Open(p.src)
	if err != nil {
		return 0, errs.IOErr(err, "opening %q", p.src)
	}
	defer in.Close()

	out, err := os.Create(p.dst)
	if err != nil {
		return 0, errs.IOErr(err, "creating %q", p.dst)
	}
	defer out.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return 0, errs.IOErr(err, "copying %q to %q", p.src, p.dst)
	}
	if err := os.Chmod(p.dst, p.mode); err != nil {
		return 0, errs.IOErr(err, "setting mode on %q", p.dst)
	}
	return n, nil
}

// templateFile is a Jinja template source file, rendered with the test
// case's bindings.
type templateFile struct {
	src, dst     string
	mode         os.FileMode
	templateName string
	env          *render.Environment
	vars         map[string]interface{}
}

func (t templateFile) buildDestination() (int64, error) {
	rendered, err := t.env.Render(t.templateName, t.vars)
	if err != nil {
		return 0, err
	}
	content := []byte(rendered + "\n")
	if err := os.WriteFile(t.dst, content, t.mode); err != nil {
		return 0, errs.IOErr(err, "writing rendered template %q", t.dst)
	}
	if err := os.Chmod(t.dst, t.mode); err != nil {
		return 0, errs.IOErr(err, "setting mode on %q", t.dst)
	}
	return int64(len(content)), nil
}

func lookupGlobal(domain, key string) string {
	val, err := lookup.Env(domain, key)
	if err != nil {
		panic(err)
	}
	return val
}

func toInterfaceMap(m map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mkdirIgnoreExists(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.IOErr(err, "creating directory %q", dir)
	}
	return nil
}
