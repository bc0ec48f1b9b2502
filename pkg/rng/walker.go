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

// FireResult is returned by every Walker event method. Matched reports
// whether the event was consistent with the pattern (and, if so, the
// walker's internal state has already advanced); Errors, on a mismatch,
// explains why - there may be more than one when a Choice or Interleave had
// to try several branches. Content is set only by EnterStartTag, and only
// when the matched alternative was a reference to an element definition:
// the GrammarWalker uses it as the content walker for the frame it pushes
// for the newly opened element (see grammarwalker.go).
type FireResult struct {
	Matched bool
	Errors  []error
	Content Walker
}

func rejected(errs ...error) FireResult { return FireResult{Errors: errs} }

func accepted() FireResult { return FireResult{Matched: true} }

// Walker is the incremental recognizer a Pattern compiles to (component E).
// Each event method either advances the walker's state and reports
// Matched: true, or leaves the walker untouched and reports Matched: false
// with Errors explaining the rejection. Callers (ordinarily the
// GrammarWalker, never application code directly) are expected to call End
// once after the last event to check for unsatisfied obligations (e.g. a
// Group whose second half never appeared).
type Walker interface {
	EnterStartTag(ns, local string) FireResult
	AttributeName(ns, local string) FireResult
	AttributeValue(value string) FireResult
	AttributeNameAndValue(ns, local, value string) FireResult
	LeaveStartTag() FireResult
	Text(value string) FireResult
	EndTag() FireResult

	// Possible returns the name classes of elements that could legally
	// appear next, for misplaced-element diagnostics and suggestion
	// messages.
	Possible() []NamePattern
	// PossibleAttributes returns the name classes of attributes that
	// could legally appear next.
	PossibleAttributes() []NamePattern

	// End reports any errors outstanding if no further events will be
	// fired (e.g. the enclosing element's end tag has been reached).
	End() []error

	// Clone returns an independent copy of the walker's current state,
	// so a combinator can try an event against one branch, observe the
	// result, and still have the pre-event state available to try a
	// different branch.
	Clone() Walker
}
