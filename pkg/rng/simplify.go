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

// Package rng simplifies Relax NG schemas and validates XML documents
// against them.
package rng

import (
	"fmt"
	"strings"
)

// RNGNamespace is the namespace of the Relax NG structure vocabulary.
const RNGNamespace = "http://relaxng.org/ns/structure/1.0"

// Simplifier carries the configuration and accumulated state of one
// simplification run (component C): the condensed nine-pass pipeline from
// raw schema XML down to a compiled Grammar.
type Simplifier struct {
	Options Options
	Loader  ResourceLoader

	// Warnings collects non-fatal observations made along the way (a
	// duplicate define merged across nested grammars, an unused define
	// removed, unless Options.IgnoreUnusedDefines silences that warning, a
	// circular include skipped by Options.IgnoreIncludeCircularDependencies).
	Warnings []string

	defines    map[string]*Element
	eltCounter int
}

// NewSimplifier returns a Simplifier with the given loader (or a fresh
// LocalResourceLoader if loader is nil) and options.
func NewSimplifier(loader ResourceLoader, opts Options) *Simplifier {
	if loader == nil {
		loader = NewLocalResourceLoader()
	}
	return &Simplifier{Options: opts, Loader: loader, defines: map[string]*Element{}}
}

// Simplify parses text as a Relax NG schema document and runs it through
// the full simplification pipeline, returning a compiled Grammar ready for
// NewWalker. sourceURL identifies text for resolving relative <include>
// and <externalRef> references and for diagnostics.
func Simplify(text, sourceURL string, loader ResourceLoader, opts Options) (*Grammar, error) {
	root, err := ReadElementTree(text)
	if err != nil {
		return nil, err
	}
	return NewSimplifier(loader, opts).Simplify(root, sourceURL)
}

// Simplify runs the pipeline over an already-parsed document tree.
func (s *Simplifier) Simplify(root *Element, sourceURL string) (*Grammar, error) {
	root, err := s.resolveIncludes(root, sourceURL, map[string]bool{sourceURL: true})
	if err != nil {
		return nil, err
	}

	s.normalizeNamespaces(root, "")
	s.namesToElements(root)

	start, err := s.flattenGrammars(root)
	if err != nil {
		return nil, err
	}

	start, err = s.normalizeDefinesAndRefs(start)
	if err != nil {
		return nil, err
	}

	startPat, err := s.emitPattern(start)
	if err != nil {
		return nil, err
	}
	defs := map[string]*Define{}
	for name, content := range s.defines {
		def, err := s.emitDefine(name, content)
		if err != nil {
			return nil, err
		}
		defs[name] = def
	}

	g, err := NewGrammar(startPat, defs)
	if err != nil {
		return nil, err
	}
	s.removeUnusedDefines(g)
	if err := propagateNotAllowed(g); err != nil {
		return nil, err
	}
	return g, nil
}

// removeUnusedDefines is pass 7's cleanup step: every define that the start
// pattern can't reach through any chain of Refs is dropped from
// g.Definitions (it has no way to ever match anything in a document, so
// keeping it around serves no purpose and would only cost the walker's
// misplaced-element index a spurious entry). A warning is recorded for
// each, unless Options.IgnoreUnusedDefines suppresses it.
func (s *Simplifier) removeUnusedDefines(g *Grammar) {
	reachable := map[string]bool{}
	var walk func(p Pattern)
	walk = func(p Pattern) {
		switch v := p.(type) {
		case *Ref:
			if v.def == nil || reachable[v.def.Name] {
				return
			}
			reachable[v.def.Name] = true
			walk(v.def.Element)
		case *ChoicePattern:
			walk(v.A)
			walk(v.B)
		case *GroupPattern:
			walk(v.A)
			walk(v.B)
		case *InterleavePattern:
			walk(v.A)
			walk(v.B)
		case *OneOrMorePattern:
			walk(v.P)
		case *ListPattern:
			walk(v.P)
		case *AttributePattern:
			walk(v.Content)
		case *ElementPattern:
			walk(v.Content)
		}
	}
	walk(g.Start)
	for name := range g.Definitions {
		if reachable[name] {
			continue
		}
		if !s.Options.IgnoreUnusedDefines {
			s.Warnings = append(s.Warnings, fmt.Sprintf("define %q is never referenced, removing it", name))
		}
		def := g.Definitions[name]
		key := localNameOf(def.Element.NameClass)
		var kept []*Define
		for _, d := range g.elementDefinitions[key] {
			if d != def {
				kept = append(kept, d)
			}
		}
		g.elementDefinitions[key] = kept
		delete(g.Definitions, name)
	}
}

func isRNG(e *Element, local string) bool {
	return e != nil && e.URI == RNGNamespace && e.Local == local
}

func firstChildNamed(e *Element, local string) *Element {
	for _, c := range e.ElementChildren() {
		if isRNG(c, local) {
			return c
		}
	}
	return nil
}

func elementText(e *Element) string {
	var b strings.Builder
	for _, c := range e.Children {
		if t, ok := c.(*Text); ok {
			b.WriteString(t.Value)
		}
	}
	return strings.TrimSpace(b.String())
}
