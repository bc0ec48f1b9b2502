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

import "sort"

// ExpandedName is the pair (namespace URI, local name) identifying an XML
// element or attribute, per the Relax NG and XML Namespaces specs.
type ExpandedName struct {
	NS, Local string
}

// AnyNamespace is the marker Namespaces uses to report that a name pattern
// matches names in any namespace.
const AnyNamespace = "*"

// ExceptNamespace is the marker Namespaces uses to report that a name
// pattern carries a negation (an <except> clause) somewhere in its tree.
const ExceptNamespace = "::except"

// NamePattern is a Relax NG name class: a predicate over ExpandedNames. It
// has exactly four implementations (Name, NsName, AnyName, NameChoice); the
// interface exists so algorithms here are written once against the sum type
// rather than per ToEntry-style switch in every caller (mirrors the
// teacher's use of the Node interface over a closed set of statement
// types).
type NamePattern interface {
	// Match reports whether the pattern accepts the given expanded name.
	Match(ns, local string) bool
	// Intersects reports whether there exists a name matched by both
	// patterns. Equivalent to Intersection(other) != nil but may
	// short-circuit without constructing the intersection.
	Intersects(other NamePattern) bool
	// Intersection returns the name pattern matching exactly the names
	// matched by both patterns, or nil if no such name exists (the empty
	// set).
	Intersection(other NamePattern) NamePattern
	// WildcardMatch reports whether this pattern can match via a wildcard
	// variant (NsName or AnyName), as opposed to only exact Names: true for
	// NsName and AnyName, and for a NameChoice when either side is true.
	WildcardMatch() bool
	// ToArray returns the finite list of names this pattern matches, or
	// ok=false if the pattern is not finite (contains an NsName or
	// AnyName with no narrowing that makes it finite).
	ToArray() (names []ExpandedName, ok bool)
	// Namespaces returns the set of namespace URIs this pattern could
	// match. AnyNamespace ("*") denotes "any namespace is possible";
	// ExceptNamespace ("::except") is additionally present whenever this
	// pattern (or a sub-pattern) negates via <except>.
	Namespaces() map[string]bool
}

// Name matches exactly one expanded name.
type Name struct {
	NS, Local string
}

func (n *Name) Match(ns, local string) bool { return n.NS == ns && n.Local == local }

func (n *Name) Intersects(other NamePattern) bool { return other.Match(n.NS, n.Local) }

func (n *Name) Intersection(other NamePattern) NamePattern {
	if other.Match(n.NS, n.Local) {
		return &Name{NS: n.NS, Local: n.Local}
	}
	return nil
}

func (n *Name) WildcardMatch() bool { return false }

func (n *Name) ToArray() ([]ExpandedName, bool) {
	return []ExpandedName{{NS: n.NS, Local: n.Local}}, true
}

func (n *Name) Namespaces() map[string]bool {
	return map[string]bool{n.NS: true}
}

// NameChoice is the union of two name patterns. Trees of NameChoice
// represent arbitrary finite unions, the same way the simplifier's
// structural-rewrite pass (pass 5) left-folds an n-ary <choice> into binary
// nodes (see simplify_emit.go).
type NameChoice struct {
	A, B NamePattern
}

func (c *NameChoice) Match(ns, local string) bool {
	return c.A.Match(ns, local) || c.B.Match(ns, local)
}

func (c *NameChoice) Intersects(other NamePattern) bool {
	return c.A.Intersects(other) || c.B.Intersects(other)
}

func (c *NameChoice) Intersection(other NamePattern) NamePattern {
	return unionOf(c.A.Intersection(other), c.B.Intersection(other))
}

func (c *NameChoice) WildcardMatch() bool {
	return c.A.WildcardMatch() || c.B.WildcardMatch()
}

func (c *NameChoice) ToArray() ([]ExpandedName, bool) {
	an, ok := c.A.ToArray()
	if !ok {
		return nil, false
	}
	bn, ok := c.B.ToArray()
	if !ok {
		return nil, false
	}
	return dedupNames(append(an, bn...)), true
}

func (c *NameChoice) Namespaces() map[string]bool {
	out := c.A.Namespaces()
	for k := range c.B.Namespaces() {
		out[k] = true
	}
	return out
}

// NsName matches any local name in NS except those matched by Except (which
// may be nil). Per Relax NG, Except may only contain Name, NsName, or
// NameChoice of those (never AnyName).
type NsName struct {
	NS     string
	Except NamePattern
}

func (n *NsName) Match(ns, local string) bool {
	if ns != n.NS {
		return false
	}
	return n.Except == nil || !n.Except.Match(ns, local)
}

func (n *NsName) WildcardMatch() bool { return true }

func (n *NsName) Namespaces() map[string]bool {
	out := map[string]bool{n.NS: true}
	if n.Except != nil {
		out[ExceptNamespace] = true
	}
	return out
}

func (n *NsName) ToArray() ([]ExpandedName, bool) { return nil, false }

func (n *NsName) Intersects(other NamePattern) bool {
	return n.Intersection(other) != nil
}

// Intersection implements the algebra of spec.md 4.A:
//   - NsName x Name: namespaces differ -> empty; except excludes the name ->
//     empty; else the Name.
//   - NsName x NsName: namespaces differ -> empty; merge exceptions as the
//     union of their finite Name-lists, deduped by "{ns}local".
//   - NsName x AnyName / NameChoice: delegate (AnyName.Intersection and
//     NameChoice.Intersection both know how to flip the arguments around).
func (n *NsName) Intersection(other NamePattern) NamePattern {
	switch o := other.(type) {
	case *Name:
		if o.NS != n.NS {
			return nil
		}
		if n.Except != nil && n.Except.Match(o.NS, o.Local) {
			return nil
		}
		return &Name{NS: o.NS, Local: o.Local}
	case *NsName:
		if o.NS != n.NS {
			return nil
		}
		merged := mergeExceptUnion(n.Except, o.Except)
		return &NsName{NS: n.NS, Except: merged}
	case *AnyName, *NameChoice:
		return other.Intersection(n)
	}
	return nil
}

// Subtract computes n \ x, defined only when x is a Name, NsName, or a
// NameChoice tree of those (per spec.md 4.A). It is not part of the
// NamePattern interface since it is undefined for most operand types; it is
// used internally by AnyName.Intersection (through subtractFromNsName) and is
// exported for callers building name classes programmatically.
func (n *NsName) Subtract(x NamePattern) (NamePattern, error) {
	switch v := x.(type) {
	case *Name:
		if v.NS != n.NS {
			return n, nil
		}
		return &NsName{NS: n.NS, Except: unionOf(n.Except, &Name{NS: v.NS, Local: v.Local})}, nil
	case *NsName:
		if v.NS != n.NS {
			return n, nil
		}
		if v.Except == nil {
			// v matches every name in the namespace n is restricted
			// to (minus its own, absent, exception), so v absorbs n.
			return nil, nil
		}
		// spec.md: "return other.except \ this.except (note direction)"
		return subtractNameSets(v.Except, n.Except)
	case *NameChoice:
		a, err := n.Subtract(v.A)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, nil
		}
		an, ok := a.(*NsName)
		if !ok {
			return a, nil
		}
		return an.Subtract(v.B)
	default:
		return nil, &SchemaValidationError{Msg: "nsName subtraction is undefined for this operand"}
	}
}

// AnyName matches any expanded name except those matched by Except (which
// may be nil and may be any NamePattern, including another AnyName).
type AnyName struct {
	Except NamePattern
}

func (a *AnyName) Match(ns, local string) bool {
	return a.Except == nil || !a.Except.Match(ns, local)
}

func (a *AnyName) WildcardMatch() bool { return true }

func (a *AnyName) ToArray() ([]ExpandedName, bool) { return nil, false }

func (a *AnyName) Namespaces() map[string]bool {
	out := map[string]bool{AnyNamespace: true}
	if a.Except != nil {
		out[ExceptNamespace] = true
	}
	return out
}

func (a *AnyName) Intersects(other NamePattern) bool {
	return a.Intersection(other) != nil
}

// Intersection implements spec.md 4.A's AnyName rules:
//   - no except: result is other, verbatim.
//   - other is Name: other, unless a's except excludes it.
//   - other is NsName: other, with a's except intersected then subtracted
//     from other's own except.
//   - other is AnyName: AnyName with the union of both excepts.
//   - other is NameChoice: delegated to NameChoice.Intersection.
func (a *AnyName) Intersection(other NamePattern) NamePattern {
	if a.Except == nil {
		return other
	}
	switch o := other.(type) {
	case *Name:
		if a.Except.Match(o.NS, o.Local) {
			return nil
		}
		return &Name{NS: o.NS, Local: o.Local}
	case *NsName:
		excerpt := a.Except.Intersection(o)
		if excerpt == nil {
			return &NsName{NS: o.NS, Except: o.Except}
		}
		merged, err := subtractFromNsName(o, excerpt)
		if err != nil {
			return &NsName{NS: o.NS, Except: o.Except}
		}
		return merged
	case *AnyName:
		return &AnyName{Except: unionOf(a.Except, o.Except)}
	case *NameChoice:
		return o.Intersection(a)
	}
	return nil
}

// subtractFromNsName returns n with x removed (n \ x). When x is not one of
// NsName.Subtract's supported operand types it returns nil plus Subtract's
// error; AnyName.Intersection, its caller, then keeps n's namespace and
// except as they were.
func subtractFromNsName(n *NsName, x NamePattern) (NamePattern, error) {
	return n.Subtract(x)
}

// unionOf builds a NameChoice of a and b, handling nil (empty set)
// operands so callers don't need to special-case them everywhere.
func unionOf(a, b NamePattern) NamePattern {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return &NameChoice{A: a, B: b}
	}
}

// mergeExceptUnion merges two <except> name patterns (each nil, a Name, an
// NsName, or a NameChoice of those) into one, deduping identical names by
// the canonical key "{ns}local" - the same key convention the teacher's
// identity dictionary uses to disambiguate identities across modules
// (identity.go's resolvedIdentity keys), generalized here to expanded
// names.
func mergeExceptUnion(a, b NamePattern) NamePattern {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	an, aok := a.ToArray()
	bn, bok := b.ToArray()
	if !aok || !bok {
		// Shouldn't happen: except clauses are restricted to finite
		// name patterns by construction (pass 5's static check), but
		// fall back to a plain union rather than panicking.
		return unionOf(a, b)
	}
	names := dedupNames(append(an, bn...))
	return namesToChoice(names)
}

// subtractNameSets returns a \ b for two finite name patterns (used by
// NsName.Subtract's NsName branch). Both a and b may be nil, meaning "no
// names".
func subtractNameSets(a, b NamePattern) (NamePattern, error) {
	if a == nil {
		return nil, nil
	}
	an, ok := a.ToArray()
	if !ok {
		return nil, &SchemaValidationError{Msg: "except clause is not a finite name set"}
	}
	var bn []ExpandedName
	if b != nil {
		var ok bool
		bn, ok = b.ToArray()
		if !ok {
			return nil, &SchemaValidationError{Msg: "except clause is not a finite name set"}
		}
	}
	excl := map[string]bool{}
	for _, n := range bn {
		excl[n.NS+"\x00"+n.Local] = true
	}
	var out []ExpandedName
	for _, n := range an {
		if !excl[n.NS+"\x00"+n.Local] {
			out = append(out, n)
		}
	}
	return namesToChoice(out), nil
}

func dedupNames(names []ExpandedName) []ExpandedName {
	seen := map[string]bool{}
	var out []ExpandedName
	for _, n := range names {
		key := n.NS + "\x00" + n.Local
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NS != out[j].NS {
			return out[i].NS < out[j].NS
		}
		return out[i].Local < out[j].Local
	})
	return out
}

func namesToChoice(names []ExpandedName) NamePattern {
	if len(names) == 0 {
		return nil
	}
	var p NamePattern = &Name{NS: names[0].NS, Local: names[0].Local}
	for _, n := range names[1:] {
		p = &NameChoice{A: p, B: &Name{NS: n.NS, Local: n.Local}}
	}
	return p
}
