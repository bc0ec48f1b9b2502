// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rng

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNameMatch(t *testing.T) {
	n := &Name{NS: "ns1", Local: "foo"}
	tests := []struct {
		ns, local string
		want      bool
	}{
		{"ns1", "foo", true},
		{"ns1", "bar", false},
		{"ns2", "foo", false},
	}
	for _, tt := range tests {
		if got := n.Match(tt.ns, tt.local); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.ns, tt.local, got, tt.want)
		}
	}
}

func TestNsNameMatchWithExcept(t *testing.T) {
	n := &NsName{NS: "ns1", Except: &Name{NS: "ns1", Local: "bad"}}
	tests := []struct {
		ns, local string
		want      bool
	}{
		{"ns1", "good", true},
		{"ns1", "bad", false},
		{"ns2", "good", false},
	}
	for _, tt := range tests {
		if got := n.Match(tt.ns, tt.local); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.ns, tt.local, got, tt.want)
		}
	}
}

func TestAnyNameMatchWithExcept(t *testing.T) {
	a := &AnyName{Except: &NsName{NS: "ns1"}}
	tests := []struct {
		ns, local string
		want      bool
	}{
		{"ns1", "anything", false},
		{"ns2", "anything", true},
	}
	for _, tt := range tests {
		if got := a.Match(tt.ns, tt.local); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.ns, tt.local, got, tt.want)
		}
	}
}

func TestNameChoiceMatch(t *testing.T) {
	c := &NameChoice{A: &Name{NS: "ns1", Local: "foo"}, B: &Name{NS: "ns2", Local: "bar"}}
	if !c.Match("ns1", "foo") {
		t.Error("expected choice to match ns1:foo")
	}
	if !c.Match("ns2", "bar") {
		t.Error("expected choice to match ns2:bar")
	}
	if c.Match("ns3", "baz") {
		t.Error("did not expect choice to match ns3:baz")
	}
}

// TestIntersectionAgreesWithIntersects checks the invariant spec.md's name
// class algebra relies on throughout the simplifier: Intersects(other) is
// true exactly when Intersection(other) is non-nil.
func TestIntersectionAgreesWithIntersects(t *testing.T) {
	patterns := []NamePattern{
		&Name{NS: "ns1", Local: "foo"},
		&Name{NS: "ns1", Local: "bar"},
		&NsName{NS: "ns1"},
		&NsName{NS: "ns1", Except: &Name{NS: "ns1", Local: "foo"}},
		&NsName{NS: "ns2"},
		&AnyName{},
		&AnyName{Except: &NsName{NS: "ns2"}},
		&NameChoice{A: &Name{NS: "ns1", Local: "foo"}, B: &Name{NS: "ns2", Local: "bar"}},
	}
	for i, a := range patterns {
		for j, b := range patterns {
			gotIntersects := a.Intersects(b)
			gotIntersection := a.Intersection(b) != nil
			if gotIntersects != gotIntersection {
				t.Errorf("patterns[%d].Intersects(patterns[%d]) = %v, but Intersection != nil is %v", i, j, gotIntersects, gotIntersection)
			}
		}
	}
}

func TestNsNameIntersectionWithName(t *testing.T) {
	n := &NsName{NS: "ns1"}
	got := n.Intersection(&Name{NS: "ns1", Local: "foo"})
	want := &Name{NS: "ns1", Local: "foo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Intersection() diff (-want +got):\n%s", diff)
	}
	if got := n.Intersection(&Name{NS: "ns2", Local: "foo"}); got != nil {
		t.Errorf("Intersection() with mismatched namespace = %v, want nil", got)
	}
}

func TestNsNameSubtract(t *testing.T) {
	n := &NsName{NS: "ns1"}
	got, err := n.Subtract(&Name{NS: "ns1", Local: "foo"})
	if err != nil {
		t.Fatalf("Subtract() error = %v", err)
	}
	want := &NsName{NS: "ns1", Except: &Name{NS: "ns1", Local: "foo"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Subtract() diff (-want +got):\n%s", diff)
	}
	if !got.(*NsName).Match("ns1", "bar") {
		t.Error("expected remaining NsName to still match an unrelated local name")
	}
	if got.(*NsName).Match("ns1", "foo") {
		t.Error("expected remaining NsName to no longer match the subtracted name")
	}
}

func TestNsNameSubtractAbsorbsWholeNamespace(t *testing.T) {
	n := &NsName{NS: "ns1", Except: &Name{NS: "ns1", Local: "foo"}}
	got, err := n.Subtract(&NsName{NS: "ns1"})
	if err != nil {
		t.Fatalf("Subtract() error = %v", err)
	}
	if got != nil {
		t.Errorf("Subtract() = %v, want nil (unrestricted NsName absorbs any restricted one)", got)
	}
}

func TestToArray(t *testing.T) {
	c := &NameChoice{A: &Name{NS: "ns1", Local: "foo"}, B: &Name{NS: "ns1", Local: "bar"}}
	names, ok := c.ToArray()
	if !ok {
		t.Fatal("ToArray() ok = false, want true")
	}
	sort.Slice(names, func(i, j int) bool { return names[i].Local < names[j].Local })
	want := []ExpandedName{{NS: "ns1", Local: "bar"}, {NS: "ns1", Local: "foo"}}
	if diff := cmp.Diff(want, names, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("ToArray() diff (-want +got):\n%s", diff)
	}

	if _, ok := (&NsName{NS: "ns1"}).ToArray(); ok {
		t.Error("ToArray() on an NsName should report ok = false")
	}
}

func TestNamespaces(t *testing.T) {
	n := &NsName{NS: "ns1", Except: &Name{NS: "ns1", Local: "foo"}}
	got := n.Namespaces()
	want := map[string]bool{"ns1": true, ExceptNamespace: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Namespaces() diff (-want +got):\n%s", diff)
	}
}
