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
	"strings"
	"testing"

	"github.com/openconfig/gnmi/errdiff"
)

// TestSimplify exercises the nine-pass pipeline end to end against small,
// real schema documents, the same "feed a whole document through the
// public entry point" shape the teacher's yang.Process tests use.
func TestSimplify(t *testing.T) {
	tests := []struct {
		name          string
		schema        string
		wantErrSubstr string
	}{{
		name: "bare element",
		schema: `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
			<empty/>
		</element>`,
	}, {
		name: "grammar with start and define",
		schema: `<grammar xmlns="http://relaxng.org/ns/structure/1.0">
			<start><ref name="root"/></start>
			<define name="root">
				<element name="root"><text/></element>
			</define>
		</grammar>`,
	}, {
		name: "unresolved ref",
		schema: `<grammar xmlns="http://relaxng.org/ns/structure/1.0">
			<start><ref name="missing"/></start>
			<define name="root">
				<element name="root"><empty/></element>
			</define>
		</grammar>`,
		wantErrSubstr: "missing cannot be resolved",
	}, {
		name: "attribute name-attribute form",
		schema: `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
			<attribute name="id"><text/></attribute>
			<empty/>
		</element>`,
	}, {
		name: "choice of elements",
		schema: `<choice xmlns="http://relaxng.org/ns/structure/1.0">
			<element name="a"><empty/></element>
			<element name="b"><empty/></element>
		</choice>`,
	}, {
		name: "attribute in the reserved xmlns namespace is rejected",
		schema: `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
			<attribute><nsName ns="http://www.w3.org/2000/xmlns/"/></attribute>
			<empty/>
		</element>`,
		wantErrSubstr: "reserved xmlns namespace",
	}, {
		name: "anyName inside an nsName except is rejected",
		schema: `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
			<attribute>
				<nsName ns="urn:example"><except><anyName/></except></nsName>
			</attribute>
			<empty/>
		</element>`,
		wantErrSubstr: "may not appear inside an <nsName> except",
	}, {
		name: "start pattern reduces to notAllowed",
		schema: `<grammar xmlns="http://relaxng.org/ns/structure/1.0">
			<start><notAllowed/></start>
		</grammar>`,
		wantErrSubstr: "reduces to notAllowed",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Simplify(tt.schema, "<test>", NewLocalResourceLoader(), Options{})
			if diff := errdiff.Substring(err, tt.wantErrSubstr); diff != "" {
				t.Fatal(diff)
			}
			if tt.wantErrSubstr != "" {
				return
			}
			if g.Start == nil {
				t.Error("Simplify() returned a Grammar with a nil Start pattern")
			}
		})
	}
}

// TestSimplifyUnusedDefine checks that pass 7 removes an unreferenced
// define rather than failing the pipeline, recording a warning unless
// IgnoreUnusedDefines suppresses it.
func TestSimplifyUnusedDefine(t *testing.T) {
	schema := `<grammar xmlns="http://relaxng.org/ns/structure/1.0">
		<start><element name="root"><empty/></element></start>
		<define name="unused"><element name="unused"><empty/></element></define>
	</grammar>`

	s := NewSimplifier(NewLocalResourceLoader(), Options{})
	root, err := ReadElementTree(schema)
	if err != nil {
		t.Fatalf("ReadElementTree() error = %v", err)
	}
	g, err := s.Simplify(root, "<test>")
	if err != nil {
		t.Fatalf("Simplify() with an unused define: error = %v, want nil", err)
	}
	if _, ok := g.Definitions["unused"]; ok {
		t.Error("Simplify() kept an unreferenced define in g.Definitions, want it removed")
	}
	found := false
	for _, w := range s.Warnings {
		if strings.Contains(w, "unused") {
			found = true
		}
	}
	if !found {
		t.Errorf("Warnings = %v, want one mentioning the unused define", s.Warnings)
	}

	s2 := NewSimplifier(NewLocalResourceLoader(), Options{IgnoreUnusedDefines: true})
	root2, err := ReadElementTree(schema)
	if err != nil {
		t.Fatalf("ReadElementTree() error = %v", err)
	}
	g2, err := s2.Simplify(root2, "<test>")
	if err != nil {
		t.Fatalf("Simplify() with IgnoreUnusedDefines: error = %v, want nil", err)
	}
	if _, ok := g2.Definitions["unused"]; ok {
		t.Error("Simplify() with IgnoreUnusedDefines kept an unreferenced define, want it removed")
	}
	if len(s2.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none with IgnoreUnusedDefines", s2.Warnings)
	}
}

// TestSimplifiedGrammarSurvivesJSONRoundTrip checks that a simplified
// Grammar, written out with WriteGrammarJSON and read back with
// ReadGrammarJSON, accepts the same valid document as the original Grammar.
func TestSimplifiedGrammarSurvivesJSONRoundTrip(t *testing.T) {
	schema := `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
		<oneOrMore><element name="child"><empty/></element></oneOrMore>
	</element>`
	g, err := Simplify(schema, "<test>", NewLocalResourceLoader(), Options{})
	if err != nil {
		t.Fatalf("Simplify() error = %v", err)
	}

	data, err := WriteGrammarJSON(g)
	if err != nil {
		t.Fatalf("WriteGrammarJSON() error = %v", err)
	}
	g2, err := ReadGrammarJSON(data)
	if err != nil {
		t.Fatalf("ReadGrammarJSON() error = %v", err)
	}

	doc := `<root><child/><child/></root>`
	el, err := ReadElementTree(doc)
	if err != nil {
		t.Fatalf("ReadElementTree() error = %v", err)
	}

	errs1 := g.NewWalker(NewNameResolver()).ValidateDocument(el)
	errs2 := g2.NewWalker(NewNameResolver()).ValidateDocument(el.Clone())
	if len(errs1) != 0 {
		t.Errorf("validating against the original Grammar: errs = %v, want none", errs1)
	}
	if len(errs2) != 0 {
		t.Errorf("validating against the JSON-round-tripped Grammar: errs = %v, want none", errs2)
	}
}
