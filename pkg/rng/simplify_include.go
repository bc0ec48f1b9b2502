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

// resolveIncludes is pass 1: it replaces every <include> and <externalRef>
// element anywhere in root's subtree with the (recursively resolved)
// content of the resource it names, using s.Loader. seen tracks the
// canonical URLs already on the current resolution path, to catch cycles;
// Options.IgnoreIncludeCircularDependencies controls whether a cycle is
// fatal or merely skipped with a warning.
func (s *Simplifier) resolveIncludes(root *Element, base string, seen map[string]bool) (*Element, error) {
	wrapper := NewElement("", "__root__", "")
	wrapper.Append(root)
	if err := s.resolveIncludesIn(wrapper, base, seen); err != nil {
		return nil, err
	}
	children := wrapper.ElementChildren()
	if len(children) != 1 {
		return nil, fmt.Errorf("schema document must have exactly one root element after include resolution")
	}
	return children[0], nil
}

func (s *Simplifier) resolveIncludesIn(e *Element, base string, seen map[string]bool) error {
	for _, c := range e.ElementChildren() {
		if err := s.resolveIncludesIn(c, base, seen); err != nil {
			return err
		}
	}
	switch {
	case isRNG(e, "externalRef"):
		href, _ := e.Attr("", "href")
		included, err := s.loadAndResolve(href, base, seen, "externalRef")
		if err != nil {
			return err
		}
		if included == nil {
			return e.ReplaceWith(NewElement("", "notAllowed", RNGNamespace))
		}
		return e.ReplaceWith(included)
	case isRNG(e, "include"):
		href, _ := e.Attr("", "href")
		included, err := s.loadAndResolve(href, base, seen, "include")
		if err != nil {
			return err
		}
		if included == nil {
			return e.ReplaceWith(NewElement("", "notAllowed", RNGNamespace))
		}
		mergeIncludeOverrides(included, e)
		if isRNG(included, "grammar") {
			// The included grammar's <start> and <define>s join the
			// including grammar's own, as the children of a <div>.
			included.Local = "div"
		}
		return e.ReplaceWith(included)
	}
	return nil
}

// loadAndResolve loads href relative to base, recursively resolves its own
// includes, and returns the parsed root - or nil, nil if a circular
// reference was tolerated via Options.IgnoreIncludeCircularDependencies.
func (s *Simplifier) loadAndResolve(href, base string, seen map[string]bool, kind string) (*Element, error) {
	text, canon, err := s.Loader.Load(href, base)
	if err != nil {
		return nil, err
	}
	if seen[canon] {
		if s.Options.IgnoreIncludeCircularDependencies {
			s.Warnings = append(s.Warnings, fmt.Sprintf("ignoring circular %s to %s", kind, canon))
			return nil, nil
		}
		return nil, &UnresolvableResourceError{URL: href, Err: fmt.Errorf("circular %s", kind)}
	}
	included, err := ReadElementTree(text)
	if err != nil {
		return nil, &UnresolvableResourceError{URL: href, Err: err}
	}
	nseen := make(map[string]bool, len(seen)+1)
	for k := range seen {
		nseen[k] = true
	}
	nseen[canon] = true
	// included may itself be a bare <externalRef>/<include> (the whole
	// resource is nothing but a redirect); wrap it the same way
	// resolveIncludes wraps the top-level document, so resolveIncludesIn
	// can replace it in place even though it arrives with no parent of
	// its own.
	wrapper := NewElement("", "__root__", "")
	wrapper.Append(included)
	if err := s.resolveIncludesIn(wrapper, canon, nseen); err != nil {
		return nil, err
	}
	children := wrapper.ElementChildren()
	if len(children) != 1 {
		return nil, &UnresolvableResourceError{URL: href, Err: fmt.Errorf("resolved resource must have exactly one root element")}
	}
	return children[0], nil
}

// mergeIncludeOverrides applies the <start>/<define> children that
// appeared directly inside an <include> element as overrides of the
// included grammar's own same-named children, per the Relax NG include
// override rule. Overrides nested inside a <div> in the including
// document, or targeting a <div>-wrapped define in the included one, are
// not matched - a known simplification, see DESIGN.md.
func mergeIncludeOverrides(target, includeEl *Element) {
	for _, override := range includeEl.ElementChildren() {
		if !isRNG(override, "start") && !isRNG(override, "define") {
			continue
		}
		name, hasName := override.Attr("", "name")
		for _, existing := range target.ElementChildren() {
			if existing.Local != override.Local {
				continue
			}
			if isRNG(override, "define") {
				existingName, _ := existing.Attr("", "name")
				if !hasName || existingName != name {
					continue
				}
			}
			existing.ReplaceWith(override.Clone())
		}
	}
}
