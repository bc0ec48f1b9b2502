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

// namesToElements is pass 3: it rewrites the name="..." shorthand on
// <element> and <attribute> into an equivalent <name> child, the form
// every later pass (and simplify_emit.go) expects to read the name class
// from uniformly.
func (s *Simplifier) namesToElements(e *Element) {
	if isRNG(e, "element") || isRNG(e, "attribute") {
		if name, ok := e.Attr("", "name"); ok {
			nameEl := NewElement("", "name", RNGNamespace)
			nameEl.Append(NewText(name))
			e.Prepend(nameEl)
			e.RemoveAttr("", "name")
			// Pass 2 has already run, so the ns context and any prefix in
			// the name are resolved here: an <element> inherits the nearest
			// ancestor's ns attribute, an <attribute> does not.
			ns, ok := e.Attr("", "ns")
			for p := e.Parent; !ok && isRNG(e, "element") && p != nil; p = p.Parent {
				ns, ok = p.Attr("", "ns")
			}
			nameEl.SetAttr("", "ns", "", resolveNameNS(nameEl, ns))
		}
	}
	for _, c := range e.ElementChildren() {
		s.namesToElements(c)
	}
}
