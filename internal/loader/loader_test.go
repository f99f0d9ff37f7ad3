package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackabletech/beku/internal/errs"
)

func TestFromReaderPrependsImplicitDefaultSuite(t *testing.T) {
	doc, err := FromReader(strings.NewReader(`
dimensions:
  - name: trino
    values: ["234", "235"]
tests:
  - name: smoke
    dimensions: [trino]
`))
	require.NoError(t, err)
	require.Len(t, doc.Suites, 1)
	assert.Equal(t, "default", doc.Suites[0].Name)
	assert.Empty(t, doc.Suites[0].Select)
	assert.Empty(t, doc.Suites[0].Patches)
}

func TestFromReaderParsesSuitesAfterDefault(t *testing.T) {
	doc, err := FromReader(strings.NewReader(`
dimensions:
  - name: druid
    values: ["24.0", "26.0"]
tests:
  - name: smoke
    dimensions: [druid]
suites:
  - name: latest
    patch:
      - test: smoke
        dimensions:
          - name: druid
            expr: first
`))
	require.NoError(t, err)
	require.Len(t, doc.Suites, 2)
	assert.Equal(t, "default", doc.Suites[0].Name)
	assert.Equal(t, "latest", doc.Suites[1].Name)
	require.Len(t, doc.Suites[1].Patches, 1)
	assert.Equal(t, "smoke", doc.Suites[1].Patches[0].TestName)
	require.Len(t, doc.Suites[1].Patches[0].Rules, 1)
	assert.Equal(t, "druid", doc.Suites[1].Patches[0].Rules[0].DimensionName)
	assert.Equal(t, "first", doc.Suites[1].Patches[0].Rules[0].Expr)
}

func TestFromReaderRejectsMissingDimensions(t *testing.T) {
	_, err := FromReader(strings.NewReader(`
tests:
  - name: smoke
    dimensions: []
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Configuration)
}

func TestFromReaderRejectsMissingTests(t *testing.T) {
	_, err := FromReader(strings.NewReader(`
dimensions:
  - name: trino
    values: ["234"]
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Configuration)
}

func TestFromReaderRejectsEmptyDimensionValues(t *testing.T) {
	_, err := FromReader(strings.NewReader(`
dimensions:
  - name: trino
    values: []
tests:
  - name: smoke
    dimensions: [trino]
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Configuration)
}

func TestFromReaderRejectsUnnamedSuite(t *testing.T) {
	_, err := FromReader(strings.NewReader(`
dimensions:
  - name: trino
    values: ["234"]
tests:
  - name: smoke
    dimensions: [trino]
suites:
  - select: [smoke]
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Configuration)
}

func TestFromReaderIgnoresUnrecognisedTopLevelKeys(t *testing.T) {
	doc, err := FromReader(strings.NewReader(`
dimensions:
  - name: trino
    values: ["234"]
tests:
  - name: smoke
    dimensions: [trino]
unexpected: true
`))
	require.NoError(t, err)
	assert.Len(t, doc.Tests, 1)
}
