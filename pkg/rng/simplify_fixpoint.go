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

// propagateNotAllowed is pass 8, run after linking (so Refs already carry
// their resolved *Define): it rewrites Choice/Group/Interleave/OneOrMore
// nodes that became NotAllowed by absorption (p | notAllowed = p; p,
// notAllowed = notAllowed; p & notAllowed = notAllowed; notAllowed+ =
// notAllowed) to a fixed point, then does the same for Empty absorption
// (choice(empty,empty)=empty; group/interleave drop an Empty operand;
// oneOrMore(empty)=empty). It never rewrites through a Ref - a recursive
// grammar whose every path bottoms out in notAllowed simply keeps
// reporting "element is missing" at validation time, the same outcome a
// deeper rewrite would eventually produce, without risking non-termination
// here. It fails if the start pattern itself reduces to NotAllowed: a
// grammar with no path to anything conformant.
func propagateNotAllowed(g *Grammar) error {
	for {
		changedAny := false
		var c bool
		g.Start, c = rewriteNotAllowed(g.Start)
		changedAny = changedAny || c
		for _, d := range g.Definitions {
			d.Element.Content, c = rewriteNotAllowed(d.Element.Content)
			changedAny = changedAny || c
		}
		if !changedAny {
			break
		}
	}
	if isNotAllowed(g.Start) {
		return &SchemaValidationError{Msg: "start pattern reduces to notAllowed: no document can ever validate"}
	}
	for {
		changedAny := false
		var c bool
		g.Start, c = rewriteEmpty(g.Start)
		changedAny = changedAny || c
		for _, d := range g.Definitions {
			d.Element.Content, c = rewriteEmpty(d.Element.Content)
			changedAny = changedAny || c
		}
		if !changedAny {
			return nil
		}
	}
}

func rewriteNotAllowed(p Pattern) (Pattern, bool) {
	switch v := p.(type) {
	case *ChoicePattern:
		a, ca := rewriteNotAllowed(v.A)
		b, cb := rewriteNotAllowed(v.B)
		if isNotAllowed(a) {
			return b, true
		}
		if isNotAllowed(b) {
			return a, true
		}
		return &ChoicePattern{A: a, B: b}, ca || cb
	case *GroupPattern:
		a, ca := rewriteNotAllowed(v.A)
		b, cb := rewriteNotAllowed(v.B)
		if isNotAllowed(a) || isNotAllowed(b) {
			return NotAllowedPattern{}, true
		}
		return &GroupPattern{A: a, B: b}, ca || cb
	case *InterleavePattern:
		a, ca := rewriteNotAllowed(v.A)
		b, cb := rewriteNotAllowed(v.B)
		if isNotAllowed(a) || isNotAllowed(b) {
			return NotAllowedPattern{}, true
		}
		return &InterleavePattern{A: a, B: b}, ca || cb
	case *OneOrMorePattern:
		inner, c := rewriteNotAllowed(v.P)
		if isNotAllowed(inner) {
			return NotAllowedPattern{}, true
		}
		return &OneOrMorePattern{P: inner}, c
	case *ListPattern:
		inner, c := rewriteNotAllowed(v.P)
		return &ListPattern{P: inner}, c
	case *AttributePattern:
		content, c := rewriteNotAllowed(v.Content)
		return &AttributePattern{NameClass: v.NameClass, Content: content}, c
	case *ElementPattern:
		content, c := rewriteNotAllowed(v.Content)
		return &ElementPattern{NameClass: v.NameClass, Content: content}, c
	default:
		return p, false
	}
}

func isNotAllowed(p Pattern) bool {
	_, ok := p.(NotAllowedPattern)
	return ok
}

// rewriteEmpty is pass 8's other absorption rule: Empty is the identity
// element for Group and Interleave, and choice(empty, empty) and
// oneOrMore(empty) both collapse to empty. Like rewriteNotAllowed, it never
// rewrites through a Ref.
func rewriteEmpty(p Pattern) (Pattern, bool) {
	switch v := p.(type) {
	case *ChoicePattern:
		a, ca := rewriteEmpty(v.A)
		b, cb := rewriteEmpty(v.B)
		if isEmpty(a) && isEmpty(b) {
			return EmptyPattern{}, true
		}
		return &ChoicePattern{A: a, B: b}, ca || cb
	case *GroupPattern:
		a, ca := rewriteEmpty(v.A)
		b, cb := rewriteEmpty(v.B)
		if isEmpty(a) {
			return b, true
		}
		if isEmpty(b) {
			return a, true
		}
		return &GroupPattern{A: a, B: b}, ca || cb
	case *InterleavePattern:
		a, ca := rewriteEmpty(v.A)
		b, cb := rewriteEmpty(v.B)
		if isEmpty(a) {
			return b, true
		}
		if isEmpty(b) {
			return a, true
		}
		return &InterleavePattern{A: a, B: b}, ca || cb
	case *OneOrMorePattern:
		inner, c := rewriteEmpty(v.P)
		if isEmpty(inner) {
			return EmptyPattern{}, true
		}
		return &OneOrMorePattern{P: inner}, c
	case *ListPattern:
		inner, c := rewriteEmpty(v.P)
		return &ListPattern{P: inner}, c
	case *AttributePattern:
		content, c := rewriteEmpty(v.Content)
		return &AttributePattern{NameClass: v.NameClass, Content: content}, c
	case *ElementPattern:
		content, c := rewriteEmpty(v.Content)
		return &ElementPattern{NameClass: v.NameClass, Content: content}, c
	default:
		return p, false
	}
}

func isEmpty(p Pattern) bool {
	_, ok := p.(EmptyPattern)
	return ok
}
