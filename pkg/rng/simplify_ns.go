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

import "strings"

// normalizeNamespaces is pass 2: it resolves the "ns" context that an
// ancestor's ns="..." attribute establishes for <name>/<nsName>/<anyName>
// descendants that don't declare their own, and resolves any prefix a
// <name> element's text carries (e.g. "xsd:string") against the document's
// own in-scope XML namespace declarations - available on Element.NSDecls
// only while the ancestor chain built by ReadElementTree is still intact,
// which is why this pass runs before anything restructures the tree.
func (s *Simplifier) normalizeNamespaces(e *Element, inherited string) {
	ns := inherited
	if v, ok := e.Attr("", "ns"); ok {
		ns = v
	}
	switch {
	case isRNG(e, "name"):
		e.SetAttr("", "ns", "", resolveNameNS(e, ns))
	case isRNG(e, "nsName"), isRNG(e, "anyName"):
		if _, ok := e.Attr("", "ns"); !ok {
			e.SetAttr("", "ns", "", ns)
		}
	}
	for _, c := range e.ElementChildren() {
		s.normalizeNamespaces(c, ns)
	}
}

// resolveNameNS returns the namespace a <name> element's text resolves
// to: if the text carries a "prefix:local" qname, the prefix is resolved
// against e's in-scope XML namespace declarations; otherwise the inherited
// ns context (fallback) applies, per the Relax NG name-attribute rules.
func resolveNameNS(e *Element, fallback string) string {
	text := elementText(e)
	if i := strings.IndexByte(text, ':'); i >= 0 {
		prefix := text[:i]
		if uri, ok := e.ResolveNamespace(prefix); ok {
			return uri
		}
	}
	return fallback
}
