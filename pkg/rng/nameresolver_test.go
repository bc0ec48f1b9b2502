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

import "testing"

func TestNameResolverScoping(t *testing.T) {
	r := NewNameResolver()
	r.DefinePrefix("p", "urn:outer")

	r.EnterContext()
	r.DefinePrefix("p", "urn:inner")
	got, err := r.ResolveName("p:foo", false)
	if err != nil {
		t.Fatalf("ResolveName() error = %v", err)
	}
	if want := (ExpandedName{NS: "urn:inner", Local: "foo"}); got != want {
		t.Errorf("ResolveName() in inner scope = %v, want %v", got, want)
	}
	r.LeaveContext()

	got, err = r.ResolveName("p:foo", false)
	if err != nil {
		t.Fatalf("ResolveName() error = %v", err)
	}
	if want := (ExpandedName{NS: "urn:outer", Local: "foo"}); got != want {
		t.Errorf("ResolveName() after leaving inner scope = %v, want %v", got, want)
	}
}

func TestNameResolverUnboundPrefix(t *testing.T) {
	r := NewNameResolver()
	if _, err := r.ResolveName("missing:foo", false); err == nil {
		t.Error("ResolveName() with an unbound prefix: error = nil, want non-nil")
	}
}

func TestNameResolverUnprefixedAttributeNotInDefaultNamespace(t *testing.T) {
	r := NewNameResolver()
	r.DefinePrefix("", "urn:default")

	attr, err := r.ResolveName("foo", true)
	if err != nil {
		t.Fatalf("ResolveName() error = %v", err)
	}
	if want := (ExpandedName{NS: "", Local: "foo"}); attr != want {
		t.Errorf("unprefixed attribute ResolveName() = %v, want %v (no default namespace inheritance)", attr, want)
	}

	elem, err := r.ResolveName("foo", false)
	if err != nil {
		t.Fatalf("ResolveName() error = %v", err)
	}
	if want := (ExpandedName{NS: "urn:default", Local: "foo"}); elem != want {
		t.Errorf("unprefixed element ResolveName() = %v, want %v", elem, want)
	}
}

func TestNameResolverCloneIsIndependent(t *testing.T) {
	r := NewNameResolver()
	r.DefinePrefix("p", "urn:original")

	clone := r.Clone()
	clone.DefinePrefix("p", "urn:clone")

	got, err := r.ResolveName("p:foo", false)
	if err != nil {
		t.Fatalf("ResolveName() error = %v", err)
	}
	if want := (ExpandedName{NS: "urn:original", Local: "foo"}); got != want {
		t.Errorf("original resolver's binding changed to %v after mutating the clone", got)
	}
}

func TestNameResolverXMLPrefixIsBuiltin(t *testing.T) {
	r := NewNameResolver()
	got, err := r.ResolveName("xml:lang", true)
	if err != nil {
		t.Fatalf("ResolveName() error = %v", err)
	}
	if want := (ExpandedName{NS: "http://www.w3.org/XML/1998/namespace", Local: "lang"}); got != want {
		t.Errorf("ResolveName(\"xml:lang\") = %v, want %v", got, want)
	}
}
