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

// attributeWalker backs AttributePattern. It participates only in the
// attributeName/attributeValue/attributeNameAndValue events the
// GrammarWalker fires while a start tag is open (see grammarwalker.go).
// Start tags and text are rejected, since an <attribute> pattern can never
// itself sit where an element or text is expected; LeaveStartTag and EndTag
// are accepted.
type attributeWalker struct {
	pattern     *AttributePattern
	nameMatched bool
	done        bool
}

func (w *attributeWalker) EnterStartTag(ns, local string) FireResult {
	return rejected(elementNameErrorf("", ns, local, "no element allowed inside attribute content"))
}

func (w *attributeWalker) AttributeName(ns, local string) FireResult {
	if w.done {
		return rejected(attributeNameErrorf("", ns, local, "attribute already matched"))
	}
	if !w.pattern.NameClass.Match(ns, local) {
		return rejected(attributeNameErrorf("", ns, local, "attribute not allowed here"))
	}
	w.nameMatched = true
	return accepted()
}

func (w *attributeWalker) AttributeValue(value string) FireResult {
	if !w.nameMatched || w.done {
		return rejected(validationErrorf("", "no pending attribute name"))
	}
	inner := w.pattern.Content.NewWalker(nil)
	res := inner.Text(value)
	if !res.Matched || len(inner.End()) > 0 {
		return rejected(attributeValueErrorf("", "invalid attribute value %q", value))
	}
	w.done = true
	return accepted()
}

func (w *attributeWalker) AttributeNameAndValue(ns, local, value string) FireResult {
	if r := w.AttributeName(ns, local); !r.Matched {
		return r
	}
	r := w.AttributeValue(value)
	if !r.Matched {
		w.nameMatched = false
	}
	return r
}

func (w *attributeWalker) LeaveStartTag() FireResult { return accepted() }

func (w *attributeWalker) Text(value string) FireResult {
	return rejected(validationErrorf("", "no text allowed here"))
}

func (w *attributeWalker) EndTag() FireResult { return accepted() }

func (w *attributeWalker) Possible() []NamePattern { return nil }

func (w *attributeWalker) PossibleAttributes() []NamePattern {
	if w.done {
		return nil
	}
	return []NamePattern{w.pattern.NameClass}
}

func (w *attributeWalker) End() []error {
	if !w.done {
		ns, local := nameClassExactName(w.pattern.NameClass)
		return []error{attributeNameErrorf("", ns, local, "required attribute is missing")}
	}
	return nil
}

func (w *attributeWalker) Clone() Walker { cp := *w; return &cp }
