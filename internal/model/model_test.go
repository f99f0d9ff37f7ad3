package model

import "testing"

func TestNewTestCaseID(t *testing.T) {
	tc := NewTestCase("smoke", []Binding{{Name: "trino", Value: "234"}})
	if got, want := tc.ID(), "smoke_trino-234"; got != want {
		t.Fatalf("ID() = %q, want %q", got, want)
	}
}

func TestNewTestCaseIDMultipleBindings(t *testing.T) {
	tc := NewTestCase("smoke", []Binding{
		{Name: "druid", Value: "26.0"},
		{Name: "zookeeper", Value: "3.8"},
	})
	if got, want := tc.ID(), "smoke_druid-26.0_zookeeper-3.8"; got != want {
		t.Fatalf("ID() = %q, want %q", got, want)
	}
}

func TestTestCaseIDStableAcrossIdenticalConstruction(t *testing.T) {
	bindings := []Binding{{Name: "trino", Value: "235"}}
	a := NewTestCase("smoke", bindings)
	b := NewTestCase("smoke", bindings)
	if a.ID() != b.ID() {
		t.Fatalf("ID() not stable: %q != %q", a.ID(), b.ID())
	}
}

func TestValuesMap(t *testing.T) {
	tc := NewTestCase("smoke", []Binding{
		{Name: "trino", Value: "234"},
		{Name: "druid", Value: "26.0"},
	})
	vals := tc.ValuesMap()
	if vals["trino"] != "234" || vals["druid"] != "26.0" {
		t.Fatalf("ValuesMap() = %v", vals)
	}
}

func TestValueMissing(t *testing.T) {
	tc := NewTestCase("smoke", []Binding{{Name: "trino", Value: "234"}})
	if _, ok := tc.Value("druid"); ok {
		t.Fatalf("Value(%q) unexpectedly found", "druid")
	}
}
