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

// oneOrMoreWalker backs OneOrMorePattern (p+). current is the walker for
// whichever repetition is in progress; once it reports itself satisfiable
// (End() == nil), a new event is first tried against current and, only if
// that fails, against a freshly started repetition - so an event that
// could continue the current iteration never incorrectly starts a new
// one.
type oneOrMoreWalker struct {
	pattern   *OneOrMorePattern
	boundName *ExpandedName
	current   Walker
}

func (w *oneOrMoreWalker) fire(event func(Walker) FireResult) FireResult {
	r := event(w.current)
	if r.Matched {
		return r
	}
	if len(w.current.End()) == 0 {
		fresh := w.pattern.P.NewWalker(w.boundName)
		rf := event(fresh)
		if rf.Matched {
			w.current = fresh
			return rf
		}
	}
	return r
}

func (w *oneOrMoreWalker) EnterStartTag(ns, local string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.EnterStartTag(ns, local) })
}
func (w *oneOrMoreWalker) AttributeName(ns, local string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.AttributeName(ns, local) })
}
func (w *oneOrMoreWalker) AttributeValue(value string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.AttributeValue(value) })
}
func (w *oneOrMoreWalker) AttributeNameAndValue(ns, local, value string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.AttributeNameAndValue(ns, local, value) })
}
func (w *oneOrMoreWalker) LeaveStartTag() FireResult {
	return w.fire(func(x Walker) FireResult { return x.LeaveStartTag() })
}
func (w *oneOrMoreWalker) Text(value string) FireResult {
	return w.fire(func(x Walker) FireResult { return x.Text(value) })
}
func (w *oneOrMoreWalker) EndTag() FireResult {
	return w.fire(func(x Walker) FireResult { return x.EndTag() })
}

func (w *oneOrMoreWalker) Possible() []NamePattern {
	poss := w.current.Possible()
	if len(w.current.End()) == 0 {
		poss = append(poss, w.pattern.P.NewWalker(w.boundName).Possible()...)
	}
	return poss
}

func (w *oneOrMoreWalker) PossibleAttributes() []NamePattern {
	poss := w.current.PossibleAttributes()
	if len(w.current.End()) == 0 {
		poss = append(poss, w.pattern.P.NewWalker(w.boundName).PossibleAttributes()...)
	}
	return poss
}

// End reports whether the repetition so far can stop here: since one
// instance of p satisfies p+, this is exactly current's own End, whether
// current is the first (not yet begun) repetition or a later one.
func (w *oneOrMoreWalker) End() []error { return w.current.End() }

func (w *oneOrMoreWalker) Clone() Walker {
	cp := *w
	cp.current = w.current.Clone()
	return &cp
}
