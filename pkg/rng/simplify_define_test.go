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

// TestSimplifyBareNestedElements mirrors spec.md section 8 scenario 4: a
// choice of two elements, neither one written under a named <define>,
// nested inside a third element that is also never named by a <define> -
// the common style for small schemas. Pass 7 must wrap every one of them
// so the grammar walker can still tell them apart at validation time.
func TestSimplifyBareNestedElements(t *testing.T) {
	g := mustSimplify(t, `<element name="a" xmlns="http://relaxng.org/ns/structure/1.0">
		<choice>
			<element name="b"><empty/></element>
			<element name="c"><empty/></element>
		</choice>
	</element>`)

	if errs := validate(t, g, `<a><b/></a>`); len(errs) != 0 {
		t.Errorf("validating <a><b/></a>: errs = %v, want none", errs)
	}
	if errs := validate(t, g, `<a><c/></a>`); len(errs) != 0 {
		t.Errorf("validating <a><c/></a>: errs = %v, want none", errs)
	}
	if errs := validate(t, g, `<a><d/></a>`); len(errs) == 0 {
		t.Error("validating <a><d/></a>: errs = none, want at least one (tag not allowed here)")
	}
}

// TestSimplifyBareRootElement checks that a schema whose entire document is
// one <element> with no enclosing <grammar>/<start> still gets its own
// name checked at the document root, not just at nested positions.
func TestSimplifyBareRootElement(t *testing.T) {
	g := mustSimplify(t, `<element name="a" xmlns="http://relaxng.org/ns/structure/1.0">
		<empty/>
	</element>`)

	if errs := validate(t, g, `<a/>`); len(errs) != 0 {
		t.Errorf("validating <a/>: errs = %v, want none", errs)
	}
	if errs := validate(t, g, `<wrong/>`); len(errs) == 0 {
		t.Error("validating <wrong/> against a schema rooted at <a>: errs = none, want at least one")
	}
}

// TestSimplifyIndirectDefineInlined checks that a named define whose body
// is a pattern fragment (not a bare <element>) - a common reusable
// attribute group, here - is inlined at its <ref> site rather than
// rejected for not simplifying to a single element pattern.
func TestSimplifyIndirectDefineInlined(t *testing.T) {
	g := mustSimplify(t, `<grammar xmlns="http://relaxng.org/ns/structure/1.0">
		<start><ref name="root"/></start>
		<define name="root">
			<element name="root">
				<ref name="idAttr"/>
			</element>
		</define>
		<define name="idAttr">
			<attribute name="id"><text/></attribute>
		</define>
	</grammar>`)

	if errs := validate(t, g, `<root id="x1"/>`); len(errs) != 0 {
		t.Errorf("validating <root id=\"x1\"/>: errs = %v, want none", errs)
	}
	if errs := validate(t, g, `<root/>`); len(errs) == 0 {
		t.Error("validating <root/> missing the inlined required attribute: errs = none, want at least one")
	}
}

// TestSimplifySelfReferentialIndirectDefineFails checks that a fragment
// define (one whose body is not a bare <element>) that refers to itself,
// directly or through another fragment define, is rejected rather than
// looping forever trying to inline it.
func TestSimplifySelfReferentialIndirectDefineFails(t *testing.T) {
	schema := `<grammar xmlns="http://relaxng.org/ns/structure/1.0">
		<start><ref name="root"/></start>
		<define name="root">
			<element name="root"><ref name="loop"/></element>
		</define>
		<define name="loop">
			<group><text/><ref name="loop"/></group>
		</define>
	</grammar>`
	if _, err := Simplify(schema, "<test>", NewLocalResourceLoader(), Options{}); err == nil {
		t.Error("Simplify() with a self-referential fragment define: error = nil, want non-nil")
	}
}
