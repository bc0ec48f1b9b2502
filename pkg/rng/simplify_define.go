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

// normalizeDefinesAndRefs is pass 7 (step 16 of the Relax NG simplification
// algorithm): every <element> not directly under a <define> is wrapped in a
// fresh <define>, with a <ref> left in its place, so that the Pattern model
// (component D) can keep its invariant that Define.Element is always a bare
// *ElementPattern and every ElementPattern elsewhere is reached only through
// a Ref. A <define> whose body is not itself a single <element> - a named
// pattern fragment such as a common attribute group - has no place in that
// model at all, so it is inlined at each of its <ref> use sites instead.
func (s *Simplifier) normalizeDefinesAndRefs(start *Element) (*Element, error) {
	start, err := s.wrapBareElements(start)
	if err != nil {
		return nil, err
	}
	return s.inlineIndirectDefines(start)
}

// wrapBareElements runs first: it walks start and every already-collected
// define body, and for each <element> found that is not the direct body of
// a <define> (start's own top-level pattern counts as "not under a
// define" too - the document root's element must be wrapped the same way a
// nested one is, or the grammar walker would have nothing to name-class
// check against it), replaces it with <ref name="__<local>-elt-<n>"/> and
// registers a new <define> holding the original <element>.
func (s *Simplifier) wrapBareElements(start *Element) (*Element, error) {
	// Snapshot existing define names before recursing: wrapElement adds
	// new entries to s.defines as it runs, and those entries are already
	// fully processed (their own descendants were wrapped bottom-up
	// before the entry was created), so they must not be revisited here.
	names := make([]string, 0, len(s.defines))
	for name := range s.defines {
		names = append(names, name)
	}
	for _, name := range names {
		content, err := s.wrapElements(s.defines[name], true)
		if err != nil {
			return nil, err
		}
		s.defines[name] = content
	}
	return s.wrapElements(start, false)
}

// wrapElements recursively rewrites e's descendants, then - unless e is
// itself the body of a define (isBody) - wraps e if it is an <element>.
// Children are always processed with isBody=false: only the single node
// passed in at the top of a wrapBareElements call can be "a define's body".
func (s *Simplifier) wrapElements(e *Element, isBody bool) (*Element, error) {
	for _, c := range e.ElementChildren() {
		newC, err := s.wrapElements(c, false)
		if err != nil {
			return nil, err
		}
		if newC != c {
			if err := c.ReplaceWith(newC); err != nil {
				return nil, err
			}
		}
	}
	if isBody || !isRNG(e, "element") {
		return e, nil
	}
	return s.synthesizeElementDefine(e)
}

func (s *Simplifier) synthesizeElementDefine(e *Element) (*Element, error) {
	local := ""
	if n := firstChildNamed(e, "name"); n != nil {
		local = localPart(elementText(n))
	}
	if local == "" {
		local = "elt"
	}
	var name string
	for {
		s.eltCounter++
		name = fmt.Sprintf("__%s-elt-%d", local, s.eltCounter)
		if _, exists := s.defines[name]; !exists {
			break
		}
	}
	s.defines[name] = e
	ref := NewElement("", "ref", RNGNamespace)
	ref.SetAttr("", "name", "", name)
	return ref, nil
}

// inlineIndirectDefines runs second: any define whose body is not a bare
// <element> (a pattern fragment, not an element definition) is substituted
// - cloned, since an *Element can have only one parent - at every <ref>
// that names it, transitively, and then dropped from s.defines. A define
// that is indirect and refers to itself, even through other indirect
// defines, is illegal per spec.md section 4.C pass 7.
func (s *Simplifier) inlineIndirectDefines(start *Element) (*Element, error) {
	indirect := map[string]bool{}
	for name, content := range s.defines {
		if !isRNG(content, "element") {
			indirect[name] = true
		}
	}
	if len(indirect) == 0 {
		return start, nil
	}

	newStart, err := s.inlineRefs(start, indirect, map[string]bool{})
	if err != nil {
		return nil, err
	}
	for name, content := range s.defines {
		if indirect[name] {
			continue
		}
		newContent, err := s.inlineRefs(content, indirect, map[string]bool{})
		if err != nil {
			return nil, err
		}
		s.defines[name] = newContent
	}
	for name := range indirect {
		delete(s.defines, name)
	}
	return newStart, nil
}

// inlineRefs rewrites e (and its descendants) so that no <ref> naming an
// indirect define survives: such a ref is replaced by a freshly cloned,
// recursively inlined copy of that define's body. resolving tracks the
// chain of indirect defines currently being expanded, to catch a define
// that (directly or transitively) refers to itself.
func (s *Simplifier) inlineRefs(e *Element, indirect, resolving map[string]bool) (*Element, error) {
	if isRNG(e, "ref") {
		name, _ := e.Attr("", "name")
		if !indirect[name] {
			return e, nil
		}
		if resolving[name] {
			return nil, schemaErrorf(e, "define %q is circularly self-referential and does not resolve to an element", name)
		}
		content, ok := s.defines[name]
		if !ok {
			return nil, schemaErrorf(e, "%s cannot be resolved", name)
		}
		resolving[name] = true
		clone := content.Clone()
		resolved, err := s.inlineRefs(clone, indirect, resolving)
		resolving[name] = false
		return resolved, err
	}
	for _, c := range e.ElementChildren() {
		newC, err := s.inlineRefs(c, indirect, resolving)
		if err != nil {
			return nil, err
		}
		if newC != c {
			if err := c.ReplaceWith(newC); err != nil {
				return nil, err
			}
		}
	}
	return e, nil
}
