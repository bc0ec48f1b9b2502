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
	"encoding/json"
	"fmt"
)

// WriteGrammarJSON and ReadGrammarJSON implement the compiled-grammar JSON
// format spec.md section 6 names as the result of convertRNGToPattern: a
// Grammar is serialized to its Start pattern plus its Definitions
// dictionary, with Pattern and NamePattern (both closed sum types, per
// component D and 4.A) represented as a "kind"-tagged struct, one field set
// per variant - the same discriminated-union idiom the teacher's Node
// interface would need if it round-tripped through JSON (it doesn't; this
// is new territory the teacher has no analog for, grounded instead on the
// general Go convention for serializing a sum type: a tag field plus
// per-variant payload fields left empty by every other kind).
//
// ReadGrammarJSON(WriteGrammarJSON(g)) reconstructs a Grammar equal to g in
// every field NewGrammar's linking step (re-run on the reconstructed
// Definitions) would itself produce, since link derives namespaces and
// elementDefinitions purely from Start/Definitions.
type patternJSON struct {
	Kind string `json:"kind"`

	// Data / Value
	DatatypeLibrary string         `json:"datatypeLibrary,omitempty"`
	Type            string         `json:"type,omitempty"`
	Params          []DataParam    `json:"params,omitempty"`
	Except          *patternJSON   `json:"except,omitempty"`
	Value           string         `json:"value,omitempty"`
	NS              string         `json:"ns,omitempty"`

	// Choice / Group / Interleave
	A *patternJSON `json:"a,omitempty"`
	B *patternJSON `json:"b,omitempty"`

	// OneOrMore / List
	P *patternJSON `json:"p,omitempty"`

	// Attribute / Element
	NameClass *nameClassJSON `json:"nameClass,omitempty"`
	Content   *patternJSON   `json:"content,omitempty"`

	// Ref
	Name string `json:"name,omitempty"`
}

type nameClassJSON struct {
	Kind string `json:"kind"`

	// Name
	NS    string `json:"ns,omitempty"`
	Local string `json:"local,omitempty"`

	// NsName / AnyName
	Except *nameClassJSON `json:"except,omitempty"`

	// NameChoice
	A *nameClassJSON `json:"a,omitempty"`
	B *nameClassJSON `json:"b,omitempty"`
}

type grammarJSON struct {
	Start       *patternJSON              `json:"start"`
	Definitions map[string]*patternJSON   `json:"definitions"`
}

// WriteGrammarJSON serializes g's Start pattern and Definitions dictionary.
// The unexported caches link built (namespaces, elementDefinitions) are
// derivable from those two fields alone, so they are not part of the wire
// format; ReadGrammarJSON rebuilds them by re-linking.
func WriteGrammarJSON(g *Grammar) ([]byte, error) {
	gj := grammarJSON{Definitions: map[string]*patternJSON{}}
	start, err := patternToJSON(g.Start)
	if err != nil {
		return nil, err
	}
	gj.Start = start
	for name, def := range g.Definitions {
		pj, err := patternToJSON(def.Element)
		if err != nil {
			return nil, err
		}
		gj.Definitions[name] = pj
	}
	return json.Marshal(gj)
}

// ReadGrammarJSON deserializes data (as produced by WriteGrammarJSON) and
// re-links the result, the same validation NewGrammar always performs on a
// freshly simplified grammar.
func ReadGrammarJSON(data []byte) (*Grammar, error) {
	var gj grammarJSON
	if err := json.Unmarshal(data, &gj); err != nil {
		return nil, fmt.Errorf("decoding grammar json: %w", err)
	}
	start, err := gj.Start.toPattern()
	if err != nil {
		return nil, err
	}
	defs := map[string]*Define{}
	for name, pj := range gj.Definitions {
		p, err := pj.toPattern()
		if err != nil {
			return nil, err
		}
		el, ok := p.(*ElementPattern)
		if !ok {
			return nil, fmt.Errorf("definition %q is not an element pattern", name)
		}
		defs[name] = &Define{Name: name, Element: el}
	}
	return NewGrammar(start, defs)
}

func patternToJSON(p Pattern) (*patternJSON, error) {
	switch v := p.(type) {
	case EmptyPattern:
		return &patternJSON{Kind: "Empty"}, nil
	case NotAllowedPattern:
		return &patternJSON{Kind: "NotAllowed"}, nil
	case TextPattern:
		return &patternJSON{Kind: "Text"}, nil
	case *DataPattern:
		except, err := optionalPatternToJSON(v.Except)
		if err != nil {
			return nil, err
		}
		return &patternJSON{
			Kind:            "Data",
			DatatypeLibrary: v.DatatypeLibrary,
			Type:            v.Type,
			Params:          v.Params,
			Except:          except,
		}, nil
	case *ValuePattern:
		return &patternJSON{
			Kind:            "Value",
			DatatypeLibrary: v.DatatypeLibrary,
			Type:            v.Type,
			Value:           v.Value,
			NS:              v.NS,
		}, nil
	case *ChoicePattern:
		return binaryPatternToJSON("Choice", v.A, v.B)
	case *GroupPattern:
		return binaryPatternToJSON("Group", v.A, v.B)
	case *InterleavePattern:
		return binaryPatternToJSON("Interleave", v.A, v.B)
	case *OneOrMorePattern:
		inner, err := patternToJSON(v.P)
		if err != nil {
			return nil, err
		}
		return &patternJSON{Kind: "OneOrMore", P: inner}, nil
	case *ListPattern:
		inner, err := patternToJSON(v.P)
		if err != nil {
			return nil, err
		}
		return &patternJSON{Kind: "List", P: inner}, nil
	case *AttributePattern:
		nc, err := nameClassToJSON(v.NameClass)
		if err != nil {
			return nil, err
		}
		content, err := patternToJSON(v.Content)
		if err != nil {
			return nil, err
		}
		return &patternJSON{Kind: "Attribute", NameClass: nc, Content: content}, nil
	case *ElementPattern:
		nc, err := nameClassToJSON(v.NameClass)
		if err != nil {
			return nil, err
		}
		content, err := patternToJSON(v.Content)
		if err != nil {
			return nil, err
		}
		return &patternJSON{Kind: "Element", NameClass: nc, Content: content}, nil
	case *Ref:
		return &patternJSON{Kind: "Ref", Name: v.Name}, nil
	default:
		return nil, fmt.Errorf("rng: no json encoding for pattern kind %T", p)
	}
}

func optionalPatternToJSON(p Pattern) (*patternJSON, error) {
	if p == nil {
		return nil, nil
	}
	return patternToJSON(p)
}

func binaryPatternToJSON(kind string, a, b Pattern) (*patternJSON, error) {
	aj, err := patternToJSON(a)
	if err != nil {
		return nil, err
	}
	bj, err := patternToJSON(b)
	if err != nil {
		return nil, err
	}
	return &patternJSON{Kind: kind, A: aj, B: bj}, nil
}

func (pj *patternJSON) toPattern() (Pattern, error) {
	if pj == nil {
		return nil, nil
	}
	switch pj.Kind {
	case "Empty":
		return EmptyPattern{}, nil
	case "NotAllowed":
		return NotAllowedPattern{}, nil
	case "Text":
		return TextPattern{}, nil
	case "Data":
		except, err := pj.Except.toPattern()
		if err != nil {
			return nil, err
		}
		return &DataPattern{
			DatatypeLibrary: pj.DatatypeLibrary,
			Type:            pj.Type,
			Params:          pj.Params,
			Except:          except,
		}, nil
	case "Value":
		return &ValuePattern{
			DatatypeLibrary: pj.DatatypeLibrary,
			Type:            pj.Type,
			Value:           pj.Value,
			NS:              pj.NS,
		}, nil
	case "Choice":
		a, b, err := pj.binaryOperands()
		if err != nil {
			return nil, err
		}
		return &ChoicePattern{A: a, B: b}, nil
	case "Group":
		a, b, err := pj.binaryOperands()
		if err != nil {
			return nil, err
		}
		return &GroupPattern{A: a, B: b}, nil
	case "Interleave":
		a, b, err := pj.binaryOperands()
		if err != nil {
			return nil, err
		}
		return &InterleavePattern{A: a, B: b}, nil
	case "OneOrMore":
		inner, err := pj.P.toPattern()
		if err != nil {
			return nil, err
		}
		return &OneOrMorePattern{P: inner}, nil
	case "List":
		inner, err := pj.P.toPattern()
		if err != nil {
			return nil, err
		}
		return &ListPattern{P: inner}, nil
	case "Attribute":
		nc, err := pj.NameClass.toNamePattern()
		if err != nil {
			return nil, err
		}
		content, err := pj.Content.toPattern()
		if err != nil {
			return nil, err
		}
		return &AttributePattern{NameClass: nc, Content: content}, nil
	case "Element":
		nc, err := pj.NameClass.toNamePattern()
		if err != nil {
			return nil, err
		}
		content, err := pj.Content.toPattern()
		if err != nil {
			return nil, err
		}
		return &ElementPattern{NameClass: nc, Content: content}, nil
	case "Ref":
		return &Ref{Name: pj.Name}, nil
	default:
		return nil, fmt.Errorf("rng: unknown pattern kind %q", pj.Kind)
	}
}

func (pj *patternJSON) binaryOperands() (Pattern, Pattern, error) {
	a, err := pj.A.toPattern()
	if err != nil {
		return nil, nil, err
	}
	b, err := pj.B.toPattern()
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func nameClassToJSON(nc NamePattern) (*nameClassJSON, error) {
	switch v := nc.(type) {
	case *Name:
		return &nameClassJSON{Kind: "Name", NS: v.NS, Local: v.Local}, nil
	case *NsName:
		except, err := optionalNameClassToJSON(v.Except)
		if err != nil {
			return nil, err
		}
		return &nameClassJSON{Kind: "NsName", NS: v.NS, Except: except}, nil
	case *AnyName:
		except, err := optionalNameClassToJSON(v.Except)
		if err != nil {
			return nil, err
		}
		return &nameClassJSON{Kind: "AnyName", Except: except}, nil
	case *NameChoice:
		a, err := nameClassToJSON(v.A)
		if err != nil {
			return nil, err
		}
		b, err := nameClassToJSON(v.B)
		if err != nil {
			return nil, err
		}
		return &nameClassJSON{Kind: "NameChoice", A: a, B: b}, nil
	default:
		return nil, fmt.Errorf("rng: no json encoding for name class kind %T", nc)
	}
}

func optionalNameClassToJSON(nc NamePattern) (*nameClassJSON, error) {
	if nc == nil {
		return nil, nil
	}
	return nameClassToJSON(nc)
}

func (nj *nameClassJSON) toNamePattern() (NamePattern, error) {
	if nj == nil {
		return nil, nil
	}
	switch nj.Kind {
	case "Name":
		return &Name{NS: nj.NS, Local: nj.Local}, nil
	case "NsName":
		except, err := nj.Except.toNamePattern()
		if err != nil {
			return nil, err
		}
		return &NsName{NS: nj.NS, Except: except}, nil
	case "AnyName":
		except, err := nj.Except.toNamePattern()
		if err != nil {
			return nil, err
		}
		return &AnyName{Except: except}, nil
	case "NameChoice":
		a, err := nj.A.toNamePattern()
		if err != nil {
			return nil, err
		}
		b, err := nj.B.toNamePattern()
		if err != nil {
			return nil, err
		}
		return &NameChoice{A: a, B: b}, nil
	default:
		return nil, fmt.Errorf("rng: unknown name class kind %q", nj.Kind)
	}
}
