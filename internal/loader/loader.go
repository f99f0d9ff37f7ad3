// Package loader parses the matrix test-definition YAML into the model
// package's value types, supplying the defaults the spec requires: an
// implicit "default" suite with no selection and no patches.
package loader

import (
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/stackabletech/beku/internal/errs"
	"github.com/stackabletech/beku/internal/model"
)

const defaultSuiteName = "default"

type rawDimension struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

type rawTest struct {
	Name       string   `yaml:"name"`
	Dimensions []string `yaml:"dimensions"`
}

type rawPatchDimension struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

type rawPatch struct {
	Test       string              `yaml:"test"`
	Dimensions []rawPatchDimension `yaml:"dimensions"`
}

type rawSuite struct {
	Name   string     `yaml:"name"`
	Select []string   `yaml:"select"`
	Patch  []rawPatch `yaml:"patch"`
}

type rawDocument struct {
	Dimensions []rawDimension `yaml:"dimensions"`
	Tests      []rawTest      `yaml:"tests"`
	Suites     []rawSuite     `yaml:"suites"`
}

// FromFile reads and parses the test-definition YAML at path.
func FromFile(path string) (model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Document{}, errs.ConfigWrap(err, "opening test definition %q", path)
	}
	defer f.Close()
	return FromReader(f)
}

// FromReader parses the test-definition YAML from an arbitrary stream.
func FromReader(r io.Reader) (model.Document, error) {
	var raw rawDocument
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return model.Document{}, errs.ConfigWrap(err, "parsing test definition YAML")
	}
	return fromRaw(raw)
}

func fromRaw(raw rawDocument) (model.Document, error) {
	if len(raw.Dimensions) == 0 {
		return model.Document{}, errs.Config("test definition is missing required key [dimensions]")
	}
	if len(raw.Tests) == 0 {
		return model.Document{}, errs.Config("test definition is missing required key [tests]")
	}

	dims := make([]model.Dimension, 0, len(raw.Dimensions))
	for _, d := range raw.Dimensions {
		if len(d.Values) == 0 {
			return model.Document{}, errs.Config("dimension %q has an empty values list", d.Name)
		}
		dims = append(dims, model.Dimension{Name: d.Name, Values: d.Values})
	}

	tests := make([]model.TestDefinition, 0, len(raw.Tests))
	for _, t := range raw.Tests {
		tests = append(tests, model.TestDefinition{Name: t.Name, DimensionNames: t.Dimensions})
	}

	suites := []model.Suite{{Name: defaultSuiteName}}
	for _, s := range raw.Suites {
		if s.Name == "" {
			return model.Document{}, errs.Config("suites must each have a [name] property")
		}
		patches := make([]model.SuitePatch, 0, len(s.Patch))
		for _, p := range s.Patch {
			rules := make([]model.PatchRule, 0, len(p.Dimensions))
			for _, d := range p.Dimensions {
				rules = append(rules, model.PatchRule{DimensionName: d.Name, Expr: d.Expr})
			}
			patches = append(patches, model.SuitePatch{TestName: p.Test, Rules: rules})
		}
		suites = append(suites, model.Suite{Name: s.Name, Select: s.Select, Patches: patches})
	}

	return model.Document{Dimensions: dims, Tests: tests, Suites: suites}, nil
}
