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
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

// TestGrammarJSONRoundTrip checks that WriteGrammarJSON(ReadGrammarJSON(x))
// behaves identically to x: a grammar compiled from a schema exercising
// most pattern kinds (choice, group, interleave, oneOrMore, attribute,
// ref/define) validates the same documents before and after a JSON round
// trip through WriteGrammarJSON/ReadGrammarJSON.
func TestGrammarJSONRoundTrip(t *testing.T) {
	schema := `<grammar xmlns="http://relaxng.org/ns/structure/1.0">
		<start><ref name="root"/></start>
		<define name="root">
			<element name="root">
				<attribute name="id"><text/></attribute>
				<interleave>
					<oneOrMore><element name="item"><empty/></element></oneOrMore>
					<optional><element name="note"><text/></element></optional>
				</interleave>
			</element>
		</define>
	</grammar>`
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

	data2, err := WriteGrammarJSON(g2)
	if err != nil {
		t.Fatalf("WriteGrammarJSON() on the round-tripped grammar: error = %v", err)
	}
	if diff := pretty.Compare(string(data), string(data2)); diff != "" {
		t.Errorf("WriteGrammarJSON(ReadGrammarJSON(x)) != x (-want +got):\n%s", diff)
	}

	docs := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"valid with note", `<root id="x"><item/><item/><note>hi</note></root>`, false},
		{"valid without note", `<root id="x"><item/></root>`, false},
		{"missing item", `<root id="x"></root>`, true},
		{"missing attribute", `<root><item/></root>`, true},
	}

	for _, d := range docs {
		el, err := ReadElementTree(d.doc)
		if err != nil {
			t.Fatalf("%s: ReadElementTree() error = %v", d.name, err)
		}
		origErrs := g.NewWalker(NewNameResolver()).ValidateDocument(el.Clone())
		roundTripErrs := g2.NewWalker(NewNameResolver()).ValidateDocument(el.Clone())

		if (len(origErrs) != 0) != (len(roundTripErrs) != 0) {
			t.Errorf("%s: original grammar errs = %v, round-tripped grammar errs = %v; validity disagrees", d.name, origErrs, roundTripErrs)
		}
		if d.wantErr && len(origErrs) == 0 {
			t.Errorf("%s: expected the original grammar to reject this document", d.name)
		}
		if !d.wantErr && len(origErrs) != 0 {
			t.Errorf("%s: original grammar unexpectedly rejected this document: %v", d.name, origErrs)
		}
	}
}

func TestReadGrammarJSONUnknownPatternKind(t *testing.T) {
	if _, err := ReadGrammarJSON([]byte(`{"start":{"kind":"Bogus"},"definitions":{}}`)); err == nil {
		t.Error("ReadGrammarJSON() with an unknown pattern kind: error = nil, want non-nil")
	}
}

func TestReadGrammarJSONUnknownNameClassKind(t *testing.T) {
	data := []byte(`{"start":{"kind":"Element","nameClass":{"kind":"Bogus"},"content":{"kind":"Empty"}},"definitions":{}}`)
	if _, err := ReadGrammarJSON(data); err == nil {
		t.Error("ReadGrammarJSON() with an unknown name class kind: error = nil, want non-nil")
	}
}
