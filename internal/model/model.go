// Package model holds the immutable value types the matrix resolver operates
// on: dimensions, test definitions, suites, patches, and the test cases and
// effective suites they resolve to. Nothing in this package touches the
// filesystem; every transformation produces a new value.
package model

import "strings"

// Dimension is a named, ordered list of string values representing one axis
// of variation. Values is never empty for a dimension that survives loading.
type Dimension struct {
	Name   string
	Values []string
}

// TestDefinition references a set of dimensions by name. The Cartesian
// product of those dimensions' values defines the test's parameter space.
type TestDefinition struct {
	Name           string
	DimensionNames []string
}

// PatchRule narrows a single dimension's (or, when DimensionName is empty,
// every dimension's) value list. Expr is interpreted by the resolver:
// "first", "last", "semver:<constraint>", an empty string (identity), or any
// other string is a substring filter.
type PatchRule struct {
	DimensionName string
	Expr          string
}

// SuitePatch is a set of patch rules scoped to one test (or, when TestName
// is empty, every selected test).
type SuitePatch struct {
	TestName string
	Rules    []PatchRule
}

// Suite is a named view over the test definitions: a selection filter plus a
// patch list.
type Suite struct {
	Name    string
	Select  []string
	Patches []SuitePatch
}

// Binding is one dimension-name/value pair resolved for a test case. A slice
// of Bindings (not a map) preserves declared dimension order, which the test
// case identifier depends on.
type Binding struct {
	Name  string
	Value string
}

// TestCase is a single instance of a test definition's parameter space: the
// test's name, paired with one value per dimension it declares.
type TestCase struct {
	Name     string
	Bindings []Binding

	id string
}

// NewTestCase constructs a TestCase and memoises its identifier, since Go has
// no lazy/cached-property field like the Python original's @cached_property.
func NewTestCase(name string, bindings []Binding) TestCase {
	tc := TestCase{Name: name, Bindings: bindings}
	tc.id = buildID(name, bindings)
	return tc
}

// ID returns the test case's stable, on-disk directory name: the test name
// followed by "_<dimension>-<value>" for each binding in declared order.
func (tc TestCase) ID() string {
	return tc.id
}

func buildID(name string, bindings []Binding) string {
	var sb strings.Builder
	sb.WriteString(name)
	for _, b := range bindings {
		sb.WriteByte('_')
		sb.WriteString(b.Name)
		sb.WriteByte('-')
		sb.WriteString(b.Value)
	}
	return sb.String()
}

// Value looks up a binding by dimension name. Returns ("", false) if the
// test case has no binding for that dimension.
func (tc TestCase) Value(dimension string) (string, bool) {
	for _, b := range tc.Bindings {
		if b.Name == dimension {
			return b.Value, true
		}
	}
	return "", false
}

// ValuesMap renders the bindings as a map, the shape the template engine
// expects for test_scenario.values.
func (tc TestCase) ValuesMap() map[string]string {
	m := make(map[string]string, len(tc.Bindings))
	for _, b := range tc.Bindings {
		m[b.Name] = b.Value
	}
	return m
}

// EffectiveSuite is a suite after selection and patching have been resolved
// to concrete, ordered test cases.
type EffectiveSuite struct {
	Name      string
	TestCases []TestCase
}

// Document is the parsed form of the input YAML: dimensions, tests, and
// suites (always including the implicit "default" suite, prepended by the
// loader).
type Document struct {
	Dimensions []Dimension
	Tests      []TestDefinition
	Suites     []Suite
}
