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

import "fmt"

// Pattern is the algebraic sum type (component D) representing a simplified
// Relax NG grammar. Patterns are constructed exclusively by the
// simplification pipeline (simplify_emit.go); callers consume them only
// through NewWalker.
type Pattern interface {
	// NewWalker returns a fresh Walker over this pattern. boundName, when
	// non-nil, is the expanded name of the element this pattern's
	// content was bound under (refWalker passes this when it creates the
	// content walker of a matched element, see walker_element.go); it is
	// used only to annotate diagnostics and may be nil.
	NewWalker(boundName *ExpandedName) Walker
	// HasEmptyPattern reports, without constructing a walker, whether
	// the pattern accepts the empty sequence of events.
	HasEmptyPattern() bool
	patternKind() string
}

// EmptyPattern matches only the empty sequence (plus ignorable whitespace
// text, handled by the walker, not the pattern itself).
type EmptyPattern struct{}

func (EmptyPattern) HasEmptyPattern() bool { return true }
func (EmptyPattern) patternKind() string   { return "Empty" }
func (p EmptyPattern) NewWalker(boundName *ExpandedName) Walker {
	return &emptyWalker{boundName: boundName}
}

// notAllowedSingleton is the process-wide immutable NotAllowed pattern and
// walker (the walker's Clone returns itself - see walker_leaf.go). There is
// never a reason to allocate more than one, since NotAllowedPattern carries
// no data and NotAllowed never matches anything regardless of identity.
var notAllowedSingleton = &notAllowedWalker{}

// NotAllowedPattern matches nothing. It is the absorbing element of Choice,
// Group, and Interleave (see simplify_fixpoint.go, pass 8).
type NotAllowedPattern struct{}

func (NotAllowedPattern) HasEmptyPattern() bool { return false }
func (NotAllowedPattern) patternKind() string   { return "NotAllowed" }
func (NotAllowedPattern) NewWalker(boundName *ExpandedName) Walker {
	return notAllowedSingleton
}

// TextPattern matches any run of character data (and any number of runs,
// interspersed with nothing else).
type TextPattern struct{}

func (TextPattern) HasEmptyPattern() bool { return true }
func (TextPattern) patternKind() string   { return "Text" }
func (p TextPattern) NewWalker(boundName *ExpandedName) Walker {
	return &textWalker{boundName: boundName}
}

// DataPattern matches text content whose value satisfies a datatype (xsd:
// string or xsd:token, the only two Non-goals-sanctioned datatypes, see
// datatype.go), with optional Params (e.g. length facets) and an Except
// pattern subtracted from the accepted values.
type DataPattern struct {
	DatatypeLibrary string
	Type            string
	Params          []DataParam
	Except          Pattern
}

// DataParam is a single <param name="...">value</param> facet.
type DataParam struct {
	Name, Value string
}

func (d *DataPattern) HasEmptyPattern() bool { return false }
func (d *DataPattern) patternKind() string   { return "Data" }
func (d *DataPattern) NewWalker(boundName *ExpandedName) Walker {
	return &dataWalker{pattern: d, boundName: boundName}
}

// ValuePattern matches text content equal to Value (after the datatype's
// whitespace normalization), with an optional namespace context (NS) for
// datatypes such as QName whose value requires one - not used by
// string/token but kept for schema fidelity.
type ValuePattern struct {
	DatatypeLibrary string
	Type            string
	Value           string
	NS              string
}

func (v *ValuePattern) HasEmptyPattern() bool { return v.Value == "" }
func (v *ValuePattern) patternKind() string   { return "Value" }
func (v *ValuePattern) NewWalker(boundName *ExpandedName) Walker {
	return &valueWalker{pattern: v, boundName: boundName}
}

// ChoicePattern is p1 | p2.
type ChoicePattern struct {
	A, B Pattern
}

func (c *ChoicePattern) HasEmptyPattern() bool { return c.A.HasEmptyPattern() || c.B.HasEmptyPattern() }
func (c *ChoicePattern) patternKind() string   { return "Choice" }
func (c *ChoicePattern) NewWalker(boundName *ExpandedName) Walker {
	return &choiceWalker{
		pattern: c,
		a:       c.A.NewWalker(boundName),
		b:       c.B.NewWalker(boundName),
	}
}

// GroupPattern is p1, p2 (sequence).
type GroupPattern struct {
	A, B Pattern
}

func (g *GroupPattern) HasEmptyPattern() bool { return g.A.HasEmptyPattern() && g.B.HasEmptyPattern() }
func (g *GroupPattern) patternKind() string   { return "Group" }
func (g *GroupPattern) NewWalker(boundName *ExpandedName) Walker {
	return &groupWalker{
		pattern: g,
		a:       g.A.NewWalker(boundName),
		b:       g.B.NewWalker(boundName),
	}
}

// InterleavePattern is p1 & p2: both must match, in any relative order.
type InterleavePattern struct {
	A, B Pattern
}

func (n *InterleavePattern) HasEmptyPattern() bool {
	return n.A.HasEmptyPattern() && n.B.HasEmptyPattern()
}
func (n *InterleavePattern) patternKind() string { return "Interleave" }
func (n *InterleavePattern) NewWalker(boundName *ExpandedName) Walker {
	return &interleaveWalker{
		pattern: n,
		a:       n.A.NewWalker(boundName),
		b:       n.B.NewWalker(boundName),
	}
}

// OneOrMorePattern is p+.
type OneOrMorePattern struct {
	P Pattern
}

func (o *OneOrMorePattern) HasEmptyPattern() bool { return o.P.HasEmptyPattern() }
func (o *OneOrMorePattern) patternKind() string   { return "OneOrMore" }
func (o *OneOrMorePattern) NewWalker(boundName *ExpandedName) Walker {
	return &oneOrMoreWalker{
		pattern:   o,
		boundName: boundName,
		current:   o.P.NewWalker(boundName),
	}
}

// ListPattern matches a single text event whose whitespace-split tokens
// each satisfy P in sequence.
type ListPattern struct {
	P Pattern
}

func (l *ListPattern) HasEmptyPattern() bool { return l.P.HasEmptyPattern() }
func (l *ListPattern) patternKind() string   { return "List" }
func (l *ListPattern) NewWalker(boundName *ExpandedName) Walker {
	return &listWalker{pattern: l, boundName: boundName}
}

// AttributePattern is <attribute name=NameClass>Content</attribute>.
type AttributePattern struct {
	NameClass NamePattern
	Content   Pattern
}

func (a *AttributePattern) HasEmptyPattern() bool { return false }
func (a *AttributePattern) patternKind() string   { return "Attribute" }
func (a *AttributePattern) NewWalker(boundName *ExpandedName) Walker {
	return &attributeWalker{pattern: a}
}

// ElementPattern is <element name=NameClass>Content</element>. It only ever
// appears as the sole body of a Define (see the Define invariant); at the
// use site it is always wrapped by a Ref, and it is the Ref's walker
// (RefWalker, walker_element.go) that does the matching against
// enclosing-frame events.
type ElementPattern struct {
	NameClass NamePattern
	Content   Pattern
}

func (e *ElementPattern) HasEmptyPattern() bool { return false }
func (e *ElementPattern) patternKind() string   { return "Element" }
func (e *ElementPattern) NewWalker(boundName *ExpandedName) Walker {
	// An ElementPattern is never walked directly (only through its
	// enclosing Ref/Define); the content walker is what Grammar walker
	// descent actually uses (see grammarwalker.go's frame push).
	return e.Content.NewWalker(boundName)
}

// Ref is a reference to a named Define, resolved by Grammar.link.
type Ref struct {
	Name string

	def *Define // resolved by Grammar.link; nil until then
}

func (r *Ref) HasEmptyPattern() bool {
	if r.def == nil {
		return false
	}
	return r.def.Element.HasEmptyPattern()
}
func (r *Ref) patternKind() string { return "Ref" }
func (r *Ref) NewWalker(boundName *ExpandedName) Walker {
	if r.def == nil {
		// Unresolved refs are caught by Grammar.link before any walker
		// is ever constructed; reaching here is a programmer error.
		panic(fmt.Sprintf("rng: NewWalker called on unresolved ref %q", r.Name))
	}
	return newRefWalker(r.def)
}

// Define names an Element pattern, the unit Ref resolves to. Per the
// Define invariant (spec.md section 3), Element is always exactly one
// ElementPattern after simplification.
type Define struct {
	Name    string
	Element *ElementPattern
}

func (d *Define) HasEmptyPattern() bool { return false }
func (d *Define) patternKind() string   { return "Define" }
func (d *Define) NewWalker(boundName *ExpandedName) Walker {
	return d.Element.NewWalker(boundName)
}

// Grammar is the compiled top-level schema: a start pattern plus the
// dictionary of all Defines it (transitively) references.
type Grammar struct {
	Start       Pattern
	Definitions map[string]*Define

	namespaces map[string]bool
	// elementDefinitions indexes every Define by its element's local
	// name, for the grammar walker's misplaced-element recovery
	// (spec.md section 4.F.6).
	elementDefinitions map[string][]*Define
}

// NewGrammar constructs a Grammar and links it (resolving every Ref to its
// Define and indexing element names). It returns an *UnresolvedRefError if
// any Ref names no Define.
func NewGrammar(start Pattern, defs map[string]*Define) (*Grammar, error) {
	g := &Grammar{Start: start, Definitions: defs}
	if err := g.link(); err != nil {
		return nil, err
	}
	return g, nil
}

// link is component D's one-time "_prepare" step: it resolves every Ref to
// its Define, records every namespace used anywhere in the pattern tree,
// and builds the elementDefinitions index the grammar walker's
// misplaced-element recovery consults.
func (g *Grammar) link() error {
	g.namespaces = map[string]bool{}
	g.elementDefinitions = map[string][]*Define{}
	seen := map[Pattern]bool{}
	var walk func(p Pattern) error
	walk = func(p Pattern) error {
		if p == nil || seen[p] {
			return nil
		}
		seen[p] = true
		switch v := p.(type) {
		case *Ref:
			def, ok := g.Definitions[v.Name]
			if !ok {
				return &UnresolvedRefError{Name: v.Name}
			}
			v.def = def
			return walk(def)
		case *Define:
			for ns := range v.Element.NameClass.Namespaces() {
				g.namespaces[ns] = true
			}
			name := localNameOf(v.Element.NameClass)
			g.elementDefinitions[name] = append(g.elementDefinitions[name], v)
			return walk(v.Element.Content)
		case *ChoicePattern:
			if err := walk(v.A); err != nil {
				return err
			}
			return walk(v.B)
		case *GroupPattern:
			if err := walk(v.A); err != nil {
				return err
			}
			return walk(v.B)
		case *InterleavePattern:
			if err := walk(v.A); err != nil {
				return err
			}
			return walk(v.B)
		case *OneOrMorePattern:
			return walk(v.P)
		case *ListPattern:
			return walk(v.P)
		case *AttributePattern:
			for ns := range v.NameClass.Namespaces() {
				g.namespaces[ns] = true
			}
			return walk(v.Content)
		case *ElementPattern:
			for ns := range v.NameClass.Namespaces() {
				g.namespaces[ns] = true
			}
			return walk(v.Content)
		}
		return nil
	}
	for _, d := range g.Definitions {
		if err := walk(d); err != nil {
			return err
		}
	}
	return walk(g.Start)
}

// localNameOf returns a representative local name used to index a Define
// for misplaced-element diagnosis: the exact name when the name class is a
// single Name, else "" (wildcard defines aren't useful suggestions for a
// specific misplaced tag).
func localNameOf(nc NamePattern) string {
	if n, ok := nc.(*Name); ok {
		return n.Local
	}
	return ""
}

// nameClassExactName returns a representative (ns, local) pair for nc, for
// use in diagnostics that need a concrete name to report (a missing
// required attribute or element) even though the pattern only carries a
// NameClass, not a literal ExpandedName. Exact for a single Name; "" for
// anything wildcard, the same convention localNameOf uses.
func nameClassExactName(nc NamePattern) (ns, local string) {
	if n, ok := nc.(*Name); ok {
		return n.NS, n.Local
	}
	return "", ""
}

// NewWalker constructs a fresh GrammarWalker (component F) for validating a
// document against g.
func (g *Grammar) NewWalker(resolver NameResolver) *GrammarWalker {
	if resolver == nil {
		resolver = NewNameResolver()
	}
	return newGrammarWalker(g, resolver)
}
