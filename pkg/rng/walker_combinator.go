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

// choiceWalker backs ChoicePattern. Every walker method below rejects
// without mutating state (the invariant every Walker implementation here
// maintains), so trying an event against one branch and falling back to
// the other needs no speculative cloning: the branch simply commits on its
// first match, after which every later event is routed to it exclusively.
type choiceWalker struct {
	pattern   *ChoicePattern
	a, b      Walker
	committed int // 0 = undecided, 1 = a, 2 = b
}

func (w *choiceWalker) fire(event func(Walker) FireResult) FireResult {
	switch w.committed {
	case 1:
		return event(w.a)
	case 2:
		return event(w.b)
	}
	ra := event(w.a)
	if ra.Matched {
		w.committed = 1
		return ra
	}
	rb := event(w.b)
	if rb.Matched {
		w.committed = 2
		return rb
	}
	errs := append(append([]error{}, ra.Errors...), rb.Errors...)
	return rejected(choiceErrorf("", errs))
}

func (w *choiceWalker) EnterStartTag(ns, local string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.EnterStartTag(ns, local) })
}
func (w *choiceWalker) AttributeName(ns, local string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.AttributeName(ns, local) })
}
func (w *choiceWalker) AttributeValue(value string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.AttributeValue(value) })
}
func (w *choiceWalker) AttributeNameAndValue(ns, local, value string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.AttributeNameAndValue(ns, local, value) })
}
func (w *choiceWalker) LeaveStartTag() FireResult {
	return w.fire(func(x Walker) FireResult { return x.LeaveStartTag() })
}
func (w *choiceWalker) Text(value string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.Text(value) })
}
func (w *choiceWalker) EndTag() FireResult {
	return w.fire(func(x Walker) FireResult { return x.EndTag() })
}

func (w *choiceWalker) Possible() []NamePattern {
	switch w.committed {
	case 1:
		return w.a.Possible()
	case 2:
		return w.b.Possible()
	}
	return append(w.a.Possible(), w.b.Possible()...)
}

func (w *choiceWalker) PossibleAttributes() []NamePattern {
	switch w.committed {
	case 1:
		return w.a.PossibleAttributes()
	case 2:
		return w.b.PossibleAttributes()
	}
	return append(w.a.PossibleAttributes(), w.b.PossibleAttributes()...)
}

func (w *choiceWalker) End() []error {
	switch w.committed {
	case 1:
		return w.a.End()
	case 2:
		return w.b.End()
	}
	if w.pattern.A.HasEmptyPattern() || w.pattern.B.HasEmptyPattern() {
		return nil
	}
	return []error{validationErrorf("", "required element or attribute is missing")}
}

func (w *choiceWalker) Clone() Walker {
	cp := *w
	cp.a = w.a.Clone()
	cp.b = w.b.Clone()
	return &cp
}

// groupWalker backs GroupPattern (p1, p2 in sequence). It routes each event
// to a first; when a rejects an event while reporting (via an empty End())
// that it has nothing further to require, the event is tried against b, and
// once b accepts one, every later event goes to b alone. This is an
// approximation of full sequence backtracking - a real Relax NG validator
// must sometimes reconsider whether a is "done" after the fact - but
// covers the common case where the two halves of a sequence don't share
// ambiguous prefixes.
type groupWalker struct {
	pattern *GroupPattern
	a, b    Walker
	aDone   bool
}

func (w *groupWalker) fire(event func(Walker) FireResult) FireResult {
	if w.aDone {
		return event(w.b)
	}
	ra := event(w.a)
	if ra.Matched {
		return ra
	}
	if len(w.a.End()) == 0 {
		rb := event(w.b)
		if rb.Matched {
			w.aDone = true
		}
		return rb
	}
	return ra
}

func (w *groupWalker) EnterStartTag(ns, local string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.EnterStartTag(ns, local) })
}
func (w *groupWalker) AttributeName(ns, local string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.AttributeName(ns, local) })
}
func (w *groupWalker) AttributeValue(value string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.AttributeValue(value) })
}
func (w *groupWalker) AttributeNameAndValue(ns, local, value string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.AttributeNameAndValue(ns, local, value) })
}
func (w *groupWalker) LeaveStartTag() FireResult {
	return w.fire(func(x Walker) FireResult { return x.LeaveStartTag() })
}
func (w *groupWalker) Text(value string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.Text(value) })
}
func (w *groupWalker) EndTag() FireResult {
	return w.fire(func(x Walker) FireResult { return x.EndTag() })
}

func (w *groupWalker) Possible() []NamePattern {
	if w.aDone {
		return w.b.Possible()
	}
	poss := w.a.Possible()
	if len(w.a.End()) == 0 {
		poss = append(poss, w.b.Possible()...)
	}
	return poss
}

func (w *groupWalker) PossibleAttributes() []NamePattern {
	if w.aDone {
		return w.b.PossibleAttributes()
	}
	poss := w.a.PossibleAttributes()
	if len(w.a.End()) == 0 {
		poss = append(poss, w.b.PossibleAttributes()...)
	}
	return poss
}

func (w *groupWalker) End() []error {
	if w.aDone {
		return w.b.End()
	}
	return append(w.a.End(), w.b.End()...)
}

func (w *groupWalker) Clone() Walker {
	cp := *w
	cp.a = w.a.Clone()
	cp.b = w.b.Clone()
	return &cp
}

// interleaveWalker backs InterleavePattern (p1 & p2, both required, in
// either relative order). Unlike Choice, neither branch is ever
// permanently abandoned: each event is offered to a first, then b, and
// whichever accepts it keeps its own independent state for next time.
type interleaveWalker struct {
	pattern *InterleavePattern
	a, b    Walker
}

func (w *interleaveWalker) fire(event func(Walker) FireResult) FireResult {
	ra := event(w.a)
	if ra.Matched {
		return ra
	}
	rb := event(w.b)
	if rb.Matched {
		return rb
	}
	errs := append(append([]error{}, ra.Errors...), rb.Errors...)
	return rejected(errs...)
}

func (w *interleaveWalker) EnterStartTag(ns, local string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.EnterStartTag(ns, local) })
}
func (w *interleaveWalker) AttributeName(ns, local string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.AttributeName(ns, local) })
}
func (w *interleaveWalker) AttributeValue(value string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.AttributeValue(value) })
}
func (w *interleaveWalker) AttributeNameAndValue(ns, local, value string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.AttributeNameAndValue(ns, local, value) })
}
func (w *interleaveWalker) LeaveStartTag() FireResult {
	return w.fire(func(x Walker) FireResult { return x.LeaveStartTag() })
}
func (w *interleaveWalker) Text(value string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.Text(value) })
}
func (w *interleaveWalker) EndTag() FireResult {
	return w.fire(func(x Walker) FireResult { return x.EndTag() })
}

func (w *interleaveWalker) Possible() []NamePattern {
	return append(w.a.Possible(), w.b.Possible()...)
}

func (w *interleaveWalker) PossibleAttributes() []NamePattern {
	return append(w.a.PossibleAttributes(), w.b.PossibleAttributes()...)
}

func (w *interleaveWalker) End() []error {
	return append(w.a.End(), w.b.End()...)
}

func (w *interleaveWalker) Clone() Walker {
	cp := *w
	cp.a = w.a.Clone()
	cp.b = w.b.Clone()
	return &cp
}
