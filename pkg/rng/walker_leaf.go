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
)

// emptyWalker backs EmptyPattern: it accepts nothing but whitespace-only
// text (any other text the GrammarWalker flushes to it is rejected with
// "text not allowed here") and is always satisfied at End.
type emptyWalker struct {
	boundName *ExpandedName
}

func (w *emptyWalker) EnterStartTag(ns, local string) FireResult {
	return rejected(elementNameErrorf(w.path(), ns, local, "no element allowed here"))
}
func (w *emptyWalker) AttributeName(ns, local string) FireResult {
	return rejected(attributeNameErrorf(w.path(), ns, local, "no attribute allowed here"))
}
func (w *emptyWalker) AttributeValue(value string) FireResult { return accepted() }
func (w *emptyWalker) AttributeNameAndValue(ns, local, value string) FireResult {
	return rejected(attributeNameErrorf(w.path(), ns, local, "no attribute allowed here"))
}
func (w *emptyWalker) LeaveStartTag() FireResult { return accepted() }
func (w *emptyWalker) Text(value string) FireResult {
	if strings.TrimSpace(value) == "" {
		return accepted()
	}
	return rejected(validationErrorf(w.path(), "text not allowed here"))
}
func (w *emptyWalker) EndTag() FireResult             { return accepted() }
func (w *emptyWalker) Possible() []NamePattern        { return nil }
func (w *emptyWalker) PossibleAttributes() []NamePattern { return nil }
func (w *emptyWalker) End() []error                   { return nil }
func (w *emptyWalker) Clone() Walker                  { cp := *w; return &cp }

func (w *emptyWalker) path() string {
	if w.boundName != nil {
		return w.boundName.Local
	}
	return ""
}

// notAllowedWalker backs NotAllowedPattern. There is exactly one instance
// (notAllowedSingleton, see pattern.go): Clone returns the receiver itself,
// since the type has no mutable state to copy and two event sequences can
// never disagree about a walker that always rejects.
type notAllowedWalker struct{}

func (w *notAllowedWalker) EnterStartTag(ns, local string) FireResult {
	return rejected(elementNameErrorf("", ns, local, "not allowed"))
}
func (w *notAllowedWalker) AttributeName(ns, local string) FireResult {
	return rejected(attributeNameErrorf("", ns, local, "not allowed"))
}
func (w *notAllowedWalker) AttributeValue(value string) FireResult {
	return rejected(validationErrorf("", "not allowed"))
}
func (w *notAllowedWalker) AttributeNameAndValue(ns, local, value string) FireResult {
	return rejected(attributeNameErrorf("", ns, local, "not allowed"))
}
func (w *notAllowedWalker) LeaveStartTag() FireResult { return rejected(validationErrorf("", "not allowed")) }
func (w *notAllowedWalker) Text(value string) FireResult {
	return rejected(validationErrorf("", "not allowed"))
}
func (w *notAllowedWalker) EndTag() FireResult             { return rejected(validationErrorf("", "not allowed")) }
func (w *notAllowedWalker) Possible() []NamePattern        { return nil }
func (w *notAllowedWalker) PossibleAttributes() []NamePattern { return nil }
func (w *notAllowedWalker) End() []error                   { return []error{validationErrorf("", "not allowed")} }
func (w *notAllowedWalker) Clone() Walker                  { return w }

// textWalker backs TextPattern: any number of text events (including zero)
// are accepted; nothing else is.
type textWalker struct {
	boundName *ExpandedName
}

func (w *textWalker) EnterStartTag(ns, local string) FireResult {
	return rejected(elementNameErrorf(w.path(), ns, local, "no element allowed in text content"))
}
func (w *textWalker) AttributeName(ns, local string) FireResult {
	return rejected(attributeNameErrorf(w.path(), ns, local, "no attribute allowed here"))
}
func (w *textWalker) AttributeValue(value string) FireResult { return accepted() }
func (w *textWalker) AttributeNameAndValue(ns, local, value string) FireResult {
	return rejected(attributeNameErrorf(w.path(), ns, local, "no attribute allowed here"))
}
func (w *textWalker) LeaveStartTag() FireResult         { return accepted() }
func (w *textWalker) Text(value string) FireResult      { return accepted() }
func (w *textWalker) EndTag() FireResult                { return accepted() }
func (w *textWalker) Possible() []NamePattern           { return nil }
func (w *textWalker) PossibleAttributes() []NamePattern { return nil }
func (w *textWalker) End() []error                      { return nil }
func (w *textWalker) Clone() Walker                     { cp := *w; return &cp }

func (w *textWalker) path() string {
	if w.boundName != nil {
		return w.boundName.Local
	}
	return ""
}

// dataWalker backs DataPattern: exactly one text event, validated against
// the datatype (see datatype.go), is required.
type dataWalker struct {
	pattern   *DataPattern
	boundName *ExpandedName
	matched   bool
}

func (w *dataWalker) EnterStartTag(ns, local string) FireResult {
	return rejected(elementNameErrorf(w.path(), ns, local, "no element allowed here"))
}
func (w *dataWalker) AttributeName(ns, local string) FireResult {
	return rejected(attributeNameErrorf(w.path(), ns, local, "no attribute allowed here"))
}
func (w *dataWalker) AttributeValue(value string) FireResult { return accepted() }
func (w *dataWalker) AttributeNameAndValue(ns, local, value string) FireResult {
	return rejected(attributeNameErrorf(w.path(), ns, local, "no attribute allowed here"))
}
func (w *dataWalker) LeaveStartTag() FireResult { return accepted() }
func (w *dataWalker) Text(value string) FireResult {
	if w.matched {
		return rejected(validationErrorf(w.path(), "too much text for data value"))
	}
	ok, err := validateDatatype(w.pattern.Type, value, w.pattern.Params)
	if !ok {
		return rejected(validationErrorf(w.path(), "value %q is not a valid %s: %v", value, w.pattern.Type, err))
	}
	if w.pattern.Except != nil && patternMatchesText(w.pattern.Except, value) {
		return rejected(validationErrorf(w.path(), "value %q matches excepted value", value))
	}
	w.matched = true
	return accepted()
}
func (w *dataWalker) EndTag() FireResult {
	if !w.matched {
		return rejected(validationErrorf(w.path(), "missing required value"))
	}
	return accepted()
}
func (w *dataWalker) Possible() []NamePattern           { return nil }
func (w *dataWalker) PossibleAttributes() []NamePattern { return nil }
func (w *dataWalker) End() []error {
	if !w.matched {
		return []error{validationErrorf(w.path(), "missing required value")}
	}
	return nil
}
func (w *dataWalker) Clone() Walker { cp := *w; return &cp }

func (w *dataWalker) path() string {
	if w.boundName != nil {
		return w.boundName.Local
	}
	return ""
}

// valueWalker backs ValuePattern: exactly one text event equal (after
// datatype whitespace normalization) to pattern.Value.
type valueWalker struct {
	pattern   *ValuePattern
	boundName *ExpandedName
	matched   bool
}

func (w *valueWalker) EnterStartTag(ns, local string) FireResult {
	return rejected(elementNameErrorf(w.path(), ns, local, "no element allowed here"))
}
func (w *valueWalker) AttributeName(ns, local string) FireResult {
	return rejected(attributeNameErrorf(w.path(), ns, local, "no attribute allowed here"))
}
func (w *valueWalker) AttributeValue(value string) FireResult { return accepted() }
func (w *valueWalker) AttributeNameAndValue(ns, local, value string) FireResult {
	return rejected(attributeNameErrorf(w.path(), ns, local, "no attribute allowed here"))
}
func (w *valueWalker) LeaveStartTag() FireResult { return accepted() }
func (w *valueWalker) Text(value string) FireResult {
	if w.matched {
		return rejected(validationErrorf(w.path(), "too much text for value"))
	}
	norm := normalizeForDatatype(w.pattern.Type, value)
	want := normalizeForDatatype(w.pattern.Type, w.pattern.Value)
	if norm != want {
		return rejected(validationErrorf(w.path(), "value %q does not equal %q", value, w.pattern.Value))
	}
	w.matched = true
	return accepted()
}
func (w *valueWalker) EndTag() FireResult {
	if !w.matched && w.pattern.Value != "" {
		return rejected(validationErrorf(w.path(), "missing required value %q", w.pattern.Value))
	}
	return accepted()
}
func (w *valueWalker) Possible() []NamePattern           { return nil }
func (w *valueWalker) PossibleAttributes() []NamePattern { return nil }
func (w *valueWalker) End() []error {
	if !w.matched && w.pattern.Value != "" {
		return []error{validationErrorf(w.path(), "missing required value %q", w.pattern.Value)}
	}
	return nil
}
func (w *valueWalker) Clone() Walker { cp := *w; return &cp }

func (w *valueWalker) path() string {
	if w.boundName != nil {
		return w.boundName.Local
	}
	return ""
}

// listWalker backs ListPattern: a single text event, whose whitespace-split
// tokens are each fed through a fresh walker of the inner pattern in
// sequence.
type listWalker struct {
	pattern   *ListPattern
	boundName *ExpandedName
	matched   bool
}

func (w *listWalker) EnterStartTag(ns, local string) FireResult {
	return rejected(elementNameErrorf(w.path(), ns, local, "no element allowed here"))
}
func (w *listWalker) AttributeName(ns, local string) FireResult {
	return rejected(attributeNameErrorf(w.path(), ns, local, "no attribute allowed here"))
}
func (w *listWalker) AttributeValue(value string) FireResult { return accepted() }
func (w *listWalker) AttributeNameAndValue(ns, local, value string) FireResult {
	return rejected(attributeNameErrorf(w.path(), ns, local, "no attribute allowed here"))
}
func (w *listWalker) LeaveStartTag() FireResult { return accepted() }
func (w *listWalker) Text(value string) FireResult {
	if w.matched {
		return rejected(validationErrorf(w.path(), "too much text for list"))
	}
	inner := w.pattern.P.NewWalker(w.boundName)
	var errs []error
	for _, tok := range strings.Fields(value) {
		res := inner.Text(tok)
		if !res.Matched {
			errs = append(errs, res.Errors...)
		}
	}
	if end := inner.End(); len(end) > 0 {
		errs = append(errs, end...)
	}
	if len(errs) > 0 {
		return rejected(errs...)
	}
	w.matched = true
	return accepted()
}
func (w *listWalker) EndTag() FireResult {
	if !w.matched && !w.pattern.HasEmptyPattern() {
		return rejected(validationErrorf(w.path(), "missing required list value"))
	}
	return accepted()
}
func (w *listWalker) Possible() []NamePattern           { return nil }
func (w *listWalker) PossibleAttributes() []NamePattern { return nil }
func (w *listWalker) End() []error {
	if !w.matched && !w.pattern.HasEmptyPattern() {
		return []error{validationErrorf(w.path(), "missing required list value")}
	}
	return nil
}
func (w *listWalker) Clone() Walker { cp := *w; return &cp }

func (w *listWalker) path() string {
	if w.boundName != nil {
		return w.boundName.Local
	}
	return ""
}

// patternMatchesText reports whether p (an Except sub-pattern of a
// DataPattern) matches the literal text value - used only to evaluate
// <except> clauses against a candidate value, never against real events.
func patternMatchesText(p Pattern, value string) bool {
	w := p.NewWalker(nil)
	res := w.Text(value)
	if !res.Matched {
		return false
	}
	return len(w.End()) == 0
}
