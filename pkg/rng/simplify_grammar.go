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

// flattenGrammars is pass 6 (nested grammar flattening, folded together
// with pass 7's define collection since both are naturally one recursive
// descent): it replaces every <grammar> element, wherever it occurs, with
// its <start> pattern, and registers every <define> it (or any grammar
// nested inside it) declares in s.defines, the flat dictionary the final
// emission pass (simplify_emit.go) builds Refs against. <div> is
// transparent at every level, as in the Relax NG spec.
//
// Two defines of the same name from unrelated grammar scopes are merged
// by simple overwrite (innermost wins) with a warning, rather than the
// full lexical rename Relax NG technically requires - schemas that
// actually rely on same-named defines in unrelated nested grammars are
// rare enough in practice that this is noted as a known gap rather than
// implemented, see DESIGN.md.
func (s *Simplifier) flattenGrammars(e *Element) (*Element, error) {
	for _, c := range e.ElementChildren() {
		newC, err := s.flattenGrammars(c)
		if err != nil {
			return nil, err
		}
		if newC != c {
			if err := c.ReplaceWith(newC); err != nil {
				return nil, err
			}
		}
	}
	if isRNG(e, "grammar") {
		return s.extractGrammar(e)
	}
	return e, nil
}

func (s *Simplifier) extractGrammar(e *Element) (*Element, error) {
	var starts []*Element
	combined := map[string]*Element{}

	var collect func(parent *Element)
	collect = func(parent *Element) {
		for _, c := range parent.ElementChildren() {
			switch {
			case isRNG(c, "div"):
				collect(c)
			case isRNG(c, "start"):
				if content := firstPatternChild(c); content != nil {
					starts = append(starts, content)
				}
			case isRNG(c, "define"):
				name, _ := c.Attr("", "name")
				content := firstPatternChild(c)
				if content == nil {
					continue
				}
				if existing, ok := combined[name]; ok {
					combined[name] = combinePatternElements(existing, content, c.Attr)
				} else {
					combined[name] = content
				}
			}
		}
	}
	collect(e)

	if len(starts) == 0 {
		return nil, schemaErrorf(e, "grammar has no <start>")
	}
	startContent := starts[0]
	for _, extra := range starts[1:] {
		startContent = wrapPatternElements(startContent, extra, "choice")
	}

	for name, content := range combined {
		if _, exists := s.defines[name]; exists {
			s.Warnings = append(s.Warnings, fmt.Sprintf("duplicate define %q across nested grammars; using innermost", name))
			continue
		}
		s.defines[name] = content
	}

	return startContent, nil
}

// firstPatternChild returns the pattern-element content of a <start> or
// <define> element: its single child, or - if it has more than one, the
// implicit group every Relax NG container element allows - all of them
// wrapped in a nested <group>, the same tree-level combination
// wrapPatternElements performs for duplicate <start>/<define> across nested
// grammars.
func firstPatternChild(e *Element) *Element {
	children := e.ElementChildren()
	if len(children) == 0 {
		return nil
	}
	content := children[0]
	for _, next := range children[1:] {
		content = groupPatternElements(content, next)
	}
	return content
}

// groupPatternElements wraps a and b in a synthesized <group>, the
// tree-level equivalent of emitElement/emitAttribute's foldPatternElements
// over a GroupPattern, applied before any Pattern exists yet.
func groupPatternElements(a, b *Element) *Element {
	wrap := NewElement("", "group", RNGNamespace)
	wrap.Append(a)
	wrap.Append(b)
	return wrap
}

func combinePatternElements(a, b *Element, attr func(uri, local string) (string, bool)) *Element {
	combine, _ := attr("", "combine")
	return wrapPatternElements(a, b, combine)
}

func wrapPatternElements(a, b *Element, combine string) *Element {
	tag := "choice"
	if combine == "interleave" {
		tag = "interleave"
	}
	wrap := NewElement("", tag, RNGNamespace)
	wrap.Append(a)
	wrap.Append(b)
	return wrap
}
