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
	"fmt"
	"testing"

	"github.com/openconfig/gnmi/errdiff"
)

func mustSimplify(t *testing.T, schema string) *Grammar {
	t.Helper()
	g, err := Simplify(schema, "<test>", NewLocalResourceLoader(), Options{})
	if err != nil {
		t.Fatalf("Simplify() error = %v", err)
	}
	return g
}

func validate(t *testing.T, g *Grammar, doc string) []error {
	t.Helper()
	root, err := ReadElementTree(doc)
	if err != nil {
		t.Fatalf("ReadElementTree() error = %v", err)
	}
	return g.NewWalker(NewNameResolver()).ValidateDocument(root)
}

// wantFirstErr fails unless errs' first entry is of the same concrete type
// as want and its message contains wantSubstr, using errdiff.Substring the
// way the teacher's *_test.go files check parse/process errors.
func wantFirstErr(t *testing.T, errs []error, want error, wantSubstr string) {
	t.Helper()
	if len(errs) == 0 {
		t.Fatal("errs = none, want at least one")
	}
	gotType := fmt.Sprintf("%T", errs[0])
	wantType := fmt.Sprintf("%T", want)
	if gotType != wantType {
		t.Errorf("errs[0] type = %s, want %s (err = %v)", gotType, wantType, errs[0])
	}
	if diff := errdiff.Substring(errs[0], wantSubstr); diff != "" {
		t.Error(diff)
	}
}

func TestGrammarWalkerValidElement(t *testing.T) {
	g := mustSimplify(t, `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
		<attribute name="id"><text/></attribute>
		<element name="child"><empty/></element>
	</element>`)

	if errs := validate(t, g, `<root id="x1"><child/></root>`); len(errs) != 0 {
		t.Errorf("validating a conforming document: errs = %v, want none", errs)
	}
}

func TestGrammarWalkerMissingRequiredAttribute(t *testing.T) {
	g := mustSimplify(t, `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
		<attribute name="id"><text/></attribute>
		<empty/>
	</element>`)

	errs := validate(t, g, `<root/>`)
	wantFirstErr(t, errs, &AttributeNameError{}, "required attribute is missing")
}

func TestGrammarWalkerUnexpectedElement(t *testing.T) {
	g := mustSimplify(t, `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
		<empty/>
	</element>`)

	errs := validate(t, g, `<root><unexpected/></root>`)
	wantFirstErr(t, errs, &ElementNameError{}, "no element allowed here")
}

func TestGrammarWalkerChoiceBothBranches(t *testing.T) {
	g := mustSimplify(t, `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
		<choice>
			<element name="a"><empty/></element>
			<element name="b"><empty/></element>
		</choice>
	</element>`)

	if errs := validate(t, g, `<root><a/></root>`); len(errs) != 0 {
		t.Errorf("validating <a/> branch: errs = %v, want none", errs)
	}
	if errs := validate(t, g, `<root><b/></root>`); len(errs) != 0 {
		t.Errorf("validating <b/> branch: errs = %v, want none", errs)
	}

	errs := validate(t, g, `<root><c/></root>`)
	wantFirstErr(t, errs, &ChoiceError{}, "no branch of choice matched")
}

func TestGrammarWalkerInterleaveOrderIndependent(t *testing.T) {
	g := mustSimplify(t, `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
		<interleave>
			<element name="a"><empty/></element>
			<element name="b"><empty/></element>
		</interleave>
	</element>`)

	if errs := validate(t, g, `<root><a/><b/></root>`); len(errs) != 0 {
		t.Errorf("validating a-then-b: errs = %v, want none", errs)
	}
	if errs := validate(t, g, `<root><b/><a/></root>`); len(errs) != 0 {
		t.Errorf("validating b-then-a: errs = %v, want none", errs)
	}
}

func TestGrammarWalkerOneOrMoreRequiresAtLeastOne(t *testing.T) {
	g := mustSimplify(t, `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
		<oneOrMore><element name="item"><empty/></element></oneOrMore>
	</element>`)

	if errs := validate(t, g, `<root><item/><item/><item/></root>`); len(errs) != 0 {
		t.Errorf("validating three repeats: errs = %v, want none", errs)
	}

	errs := validate(t, g, `<root></root>`)
	wantFirstErr(t, errs, &ElementNameError{}, "required element")
}

// TestGrammarWalkerWhitespaceIsIgnored checks that formatting whitespace
// between element tags does not itself trigger "unexpected text" the way a
// naive token-at-a-time driver might, since GrammarWalker.Text buffers and
// only flushes on the next open/close.
func TestGrammarWalkerWhitespaceIsIgnored(t *testing.T) {
	g := mustSimplify(t, `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
		<element name="child"><empty/></element>
	</element>`)

	doc := "<root>\n  <child/>\n</root>"
	if errs := validate(t, g, doc); len(errs) != 0 {
		t.Errorf("validating a document with inter-element whitespace: errs = %v, want none", errs)
	}
}

func TestGrammarWalkerTextContent(t *testing.T) {
	g := mustSimplify(t, `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
		<text/>
	</element>`)

	if errs := validate(t, g, `<root>hello world</root>`); len(errs) != 0 {
		t.Errorf("validating text content: errs = %v, want none", errs)
	}
}

// TestGrammarWalkerEmptyTextRejected checks that a standalone Text event
// carrying no content is itself a driver error, not a silent no-op.
func TestGrammarWalkerEmptyTextRejected(t *testing.T) {
	g := mustSimplify(t, `<element name="root" xmlns="http://relaxng.org/ns/structure/1.0">
		<text/>
	</element>`)
	gw := g.NewWalker(NewNameResolver())
	if errs := gw.OpenElement("", "root", nil, nil); len(errs) != 0 {
		t.Fatalf("OpenElement() error = %v", errs)
	}
	errs := gw.Text("")
	wantFirstErr(t, errs, &ValidationError{}, "firing empty text events makes no sense")
}

// TestGrammarWalkerMisplacedElementHint checks that a start tag rejected at
// its position, for a local name the grammar defines somewhere else, gets
// the "defined but not allowed at this position" hint recoverOrReport adds.
func TestGrammarWalkerMisplacedElementHint(t *testing.T) {
	g := mustSimplify(t, `<grammar xmlns="http://relaxng.org/ns/structure/1.0">
		<start>
			<choice>
				<element name="root"><empty/></element>
				<ref name="otherDef"/>
			</choice>
		</start>
		<define name="otherDef">
			<element name="other"><empty/></element>
		</define>
	</grammar>`)

	errs := validate(t, g, `<root><other/></root>`)
	if len(errs) == 0 {
		t.Fatal("validating a misplaced element: errs = none, want at least one")
	}
	found := false
	for _, err := range errs {
		if errdiff.Substring(err, "defined but not allowed at this position") == "" {
			found = true
		}
	}
	if !found {
		t.Errorf("errs = %v, want one mentioning the misplaced-element hint", errs)
	}
}
