// Package resolver turns a loaded model.Document into the deterministic list
// of model.EffectiveSuite values the rest of the tool expands: for each
// suite, select test definitions, patch their dimensions, and take the
// Cartesian product of the (possibly patched) dimension values.
package resolver

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/thoas/go-funk"

	"github.com/stackabletech/beku/internal/model"
)

const (
	exprFirst    = "first"
	exprLast     = "last"
	semverPrefix = "semver:"
)

// Resolve produces one EffectiveSuite per suite declared in doc, in
// declaration order (the implicit "default" suite first).
func Resolve(doc model.Document) []model.EffectiveSuite {
	effective := make([]model.EffectiveSuite, 0, len(doc.Suites))
	for _, suite := range doc.Suites {
		effective = append(effective, resolveSuite(doc.Dimensions, doc.Tests, suite))
	}
	return effective
}

func resolveSuite(dims []model.Dimension, tests []model.TestDefinition, suite model.Suite) model.EffectiveSuite {
	var cases []model.TestCase
	for _, test := range selectTests(tests, suite.Select) {
		usedDims := usedDimensions(dims, test.DimensionNames)
		effectiveDims := patchDimensions(suite.Patches, test.Name, usedDims)
		cases = append(cases, expandTestCases(test.Name, effectiveDims)...)
	}
	return model.EffectiveSuite{Name: suite.Name, TestCases: cases}
}

// selectTests keeps only tests named in select (preserving the order of
// tests, not of select), or all tests if select is empty.
func selectTests(tests []model.TestDefinition, sel []string) []model.TestDefinition {
	if len(sel) == 0 {
		return tests
	}
	result := make([]model.TestDefinition, 0, len(tests))
	for _, t := range tests {
		if funk.ContainsString(sel, t.Name) {
			result = append(result, t)
		}
	}
	return result
}

// usedDimensions filters dims to those referenced by names, preserving the
// declared order of dims (not of names).
func usedDimensions(dims []model.Dimension, names []string) []model.Dimension {
	result := make([]model.Dimension, 0, len(names))
	for _, d := range dims {
		if funk.ContainsString(names, d.Name) {
			result = append(result, d)
		}
	}
	return result
}

// patchDimensions applies every applicable patch in order, each patch's
// rules computed fresh against the dimension values the prior patches left
// behind (chaining is across patches, never within one): for a single patch,
// only the last rule touching a given dimension takes effect, applied to
// that dimension's pre-patch (this patch's input) value.
func patchDimensions(patches []model.SuitePatch, testName string, used []model.Dimension) []model.Dimension {
	state := make(map[string]model.Dimension, len(used))
	for _, dim := range used {
		state[dim.Name] = dim
	}

	for _, patch := range patches {
		if !patchApplies(patch, testName) {
			continue
		}
		lastRule := make(map[string]model.PatchRule, len(used))
		for _, rule := range patch.Rules {
			for _, dim := range used {
				if rule.DimensionName != "" && rule.DimensionName != dim.Name {
					continue
				}
				lastRule[dim.Name] = rule
			}
		}
		for name, rule := range lastRule {
			state[name] = applyRule(rule, state[name])
		}
	}

	result := make([]model.Dimension, 0, len(used))
	for _, dim := range used {
		result = append(result, state[dim.Name])
	}
	return result
}

func patchApplies(patch model.SuitePatch, testName string) bool {
	return patch.TestName == "" || patch.TestName == testName
}

// applyRule narrows dim's values according to rule.Expr. Values are never
// mutated in place; a new Dimension is returned.
func applyRule(rule model.PatchRule, dim model.Dimension) model.Dimension {
	switch {
	case rule.Expr == "":
		return dim
	case rule.Expr == exprFirst:
		return model.Dimension{Name: dim.Name, Values: dim.Values[:1]}
	case rule.Expr == exprLast:
		return model.Dimension{Name: dim.Name, Values: dim.Values[len(dim.Values)-1:]}
	case strings.HasPrefix(rule.Expr, semverPrefix):
		return model.Dimension{Name: dim.Name, Values: filterSemver(dim.Values, strings.TrimPrefix(rule.Expr, semverPrefix))}
	default:
		return model.Dimension{Name: dim.Name, Values: filterSubstring(dim.Values, rule.Expr)}
	}
}

func filterSubstring(values []string, substr string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if strings.Contains(v, substr) {
			result = append(result, v)
		}
	}
	return result
}

// filterSemver keeps values that parse as semantic versions and satisfy the
// given constraint. A value that fails to parse as a semver is dropped
// silently (it cannot meaningfully be compared to a version constraint).
func filterSemver(values []string, constraintExpr string) []string {
	constraint, err := semver.NewConstraint(constraintExpr)
	if err != nil {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, v := range values {
		ver, err := semver.NewVersion(v)
		if err != nil {
			continue
		}
		if constraint.Check(ver) {
			result = append(result, v)
		}
	}
	return result
}

// expandTestCases computes the Cartesian product of dims' values, iterating
// the last dimension fastest, and builds one TestCase per tuple.
func expandTestCases(testName string, dims []model.Dimension) []model.TestCase {
	if len(dims) == 0 {
		return nil
	}
	for _, d := range dims {
		if len(d.Values) == 0 {
			return nil
		}
	}

	counters := make([]int, len(dims))
	var cases []model.TestCase
	for {
		bindings := make([]model.Binding, len(dims))
		for i, d := range dims {
			bindings[i] = model.Binding{Name: d.Name, Value: d.Values[counters[i]]}
		}
		cases = append(cases, model.NewTestCase(testName, bindings))

		i := len(dims) - 1
		for i >= 0 {
			counters[i]++
			if counters[i] < len(dims[i].Values) {
				break
			}
			counters[i] = 0
			i--
		}
		if i < 0 {
			break
		}
	}
	return cases
}
