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

import "strings"

// refWalker backs Ref. Apart from the GrammarWalker's own skipWalker, it is
// the only walker whose EnterStartTag can return a non-nil
// FireResult.Content: matching the def's element name class is how the
// GrammarWalker decides which frame to push when a start tag is
// encountered (see grammarwalker.go's OpenElement). A ref matches
// at most once; repetition of a referenced element is expressed in the
// pattern tree by wrapping the Ref in a OneOrMorePattern, not by the ref
// itself.
type refWalker struct {
	def  *Define
	used bool
}

func newRefWalker(def *Define) *refWalker { return &refWalker{def: def} }

func (w *refWalker) EnterStartTag(ns, local string) FireResult {
	if w.used {
		return rejected(elementNameErrorf("", ns, local, "element already matched"))
	}
	if !w.def.Element.NameClass.Match(ns, local) {
		return rejected(elementNameErrorf("", ns, local, "element not allowed here (expected %s)", w.def.Name))
	}
	w.used = true
	name := ExpandedName{NS: ns, Local: local}
	return FireResult{Matched: true, Content: w.def.Element.Content.NewWalker(&name)}
}

func (w *refWalker) AttributeName(ns, local string) FireResult {
	return rejected(attributeNameErrorf("", ns, local, "no attribute allowed here"))
}

func (w *refWalker) AttributeValue(value string) FireResult { return accepted() }

func (w *refWalker) AttributeNameAndValue(ns, local, value string) FireResult {
	return rejected(attributeNameErrorf("", ns, local, "no attribute allowed here"))
}

func (w *refWalker) LeaveStartTag() FireResult { return accepted() }

func (w *refWalker) Text(value string) FireResult {
	if strings.TrimSpace(value) == "" {
		return accepted()
	}
	return rejected(validationErrorf("", "text not allowed here"))
}

func (w *refWalker) EndTag() FireResult { return accepted() }

func (w *refWalker) Possible() []NamePattern {
	if w.used {
		return nil
	}
	return []NamePattern{w.def.Element.NameClass}
}

func (w *refWalker) PossibleAttributes() []NamePattern { return nil }

func (w *refWalker) End() []error {
	if !w.used {
		ns, local := nameClassExactName(w.def.Element.NameClass)
		return []error{elementNameErrorf("", ns, local, "required element %s is missing", w.def.Name)}
	}
	return nil
}

func (w *refWalker) Clone() Walker { cp := *w; return &cp }
