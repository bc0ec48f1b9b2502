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

import (
	"errors"
	"fmt"
)

// ErrNotAChild is returned by Element.IndexOfChild (and anything built on
// it) when the argument is not actually a child of the receiver.
var ErrNotAChild = errors.New("rng: not a child of this element")

// ErrNoParent is returned by Element.ReplaceWith when called on a root
// element (one with no parent to splice into).
var ErrNoParent = errors.New("rng: element has no parent")

// TreeNode is implemented by *Element and *Text, the two kinds of node that
// make up the mutable working tree the simplifier operates on. The
// interface exists so Children can hold a mix of the two, the same way the
// teacher's Node interface lets Entry.Dir and friends hold a mix of
// concrete statement types (node.go).
type TreeNode interface {
	parentElement() *Element
	setParentElement(*Element)
	cloneNode() TreeNode
}

// Attr is an XML attribute: its qualified name (Prefix/Local/URI) and
// string value.
type Attr struct {
	Prefix, Local, URI string
	Value              string
}

// Element is a mutable, parent-linked XML element node: the working
// representation the simplification pipeline rewrites in place. Every
// non-root node has exactly one parent, and every mutator below preserves
// the invariant that for each child c, c.Parent.Children contains c exactly
// once at a known index.
type Element struct {
	Parent   *Element
	Prefix   string
	Local    string
	URI      string
	NSDecls  map[string]string // prefix (may be "" for default) -> URI, as declared on this element
	Attrs    []*Attr
	Children []TreeNode

	pathCache string
	pathValid bool
}

// Text is a text (character data) node.
type Text struct {
	Parent *Element
	Value  string
}

func (e *Element) parentElement() *Element     { return e.Parent }
func (e *Element) setParentElement(p *Element) { e.Parent = p }

func (t *Text) parentElement() *Element     { return t.Parent }
func (t *Text) setParentElement(p *Element) { t.Parent = p }

func (e *Element) cloneNode() TreeNode {
	ne := &Element{
		Prefix: e.Prefix,
		Local:  e.Local,
		URI:    e.URI,
	}
	if e.NSDecls != nil {
		ne.NSDecls = make(map[string]string, len(e.NSDecls))
		for k, v := range e.NSDecls {
			ne.NSDecls[k] = v
		}
	}
	for _, a := range e.Attrs {
		na := *a
		ne.Attrs = append(ne.Attrs, &na)
	}
	for _, c := range e.Children {
		nc := c.cloneNode()
		nc.setParentElement(ne)
		ne.Children = append(ne.Children, nc)
	}
	return ne
}

func (t *Text) cloneNode() TreeNode {
	return &Text{Value: t.Value}
}

// Clone returns a deep copy of e (and its subtree) with no parent. Attribute
// maps and slices are fresh, never aliased with e's.
func (e *Element) Clone() *Element {
	return e.cloneNode().(*Element)
}

// NewElement returns a childless element with the given qualified name.
func NewElement(prefix, local, uri string) *Element {
	return &Element{Prefix: prefix, Local: local, URI: uri}
}

// NewText returns a detached text node.
func NewText(value string) *Text {
	return &Text{Value: value}
}

// Attr returns the value of the attribute named (uri, local) and whether it
// was present.
func (e *Element) Attr(uri, local string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Local == local && a.URI == uri {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets (or replaces) the attribute named (uri, local) to value.
func (e *Element) SetAttr(prefix, local, uri, value string) {
	for _, a := range e.Attrs {
		if a.Local == local && a.URI == uri {
			a.Value = value
			a.Prefix = prefix
			e.invalidatePaths()
			return
		}
	}
	e.Attrs = append(e.Attrs, &Attr{Prefix: prefix, Local: local, URI: uri, Value: value})
	e.invalidatePaths()
}

// RemoveAttr removes the attribute named (uri, local), if present.
func (e *Element) RemoveAttr(uri, local string) {
	for i, a := range e.Attrs {
		if a.Local == local && a.URI == uri {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			e.invalidatePaths()
			return
		}
	}
}

// ElementChildren returns e's element children, skipping Text nodes - the
// common case callers of the simplification passes want (attribute/text
// mixed content aside, Relax NG schema structure is almost entirely
// elements).
func (e *Element) ElementChildren() []*Element {
	var out []*Element
	for _, c := range e.Children {
		if ce, ok := c.(*Element); ok {
			out = append(out, ce)
		}
	}
	return out
}

// IndexOfChild returns the index of child within e.Children, or -1 and
// ErrNotAChild if child's parent isn't e.
func (e *Element) IndexOfChild(child TreeNode) (int, error) {
	for i, c := range e.Children {
		if c == child {
			return i, nil
		}
	}
	return -1, ErrNotAChild
}

// Append adds child as the last child of e, detaching it from any prior
// parent first.
func (e *Element) Append(child TreeNode) {
	e.detach(child)
	child.setParentElement(e)
	e.Children = append(e.Children, child)
	e.invalidatePaths()
}

// Prepend adds child as the first child of e.
func (e *Element) Prepend(child TreeNode) {
	e.detach(child)
	child.setParentElement(e)
	e.Children = append([]TreeNode{child}, e.Children...)
	e.invalidatePaths()
}

// Insert inserts child at position i (0 <= i <= len(e.Children)).
func (e *Element) Insert(i int, child TreeNode) {
	e.detach(child)
	child.setParentElement(e)
	e.Children = append(e.Children, nil)
	copy(e.Children[i+1:], e.Children[i:])
	e.Children[i] = child
	e.invalidatePaths()
}

// Remove removes child from e.Children. It returns ErrNotAChild if child is
// not e's child.
func (e *Element) Remove(child TreeNode) error {
	i, err := e.IndexOfChild(child)
	if err != nil {
		return err
	}
	e.Children = append(e.Children[:i], e.Children[i+1:]...)
	child.setParentElement(nil)
	e.invalidatePaths()
	return nil
}

// ReplaceWith detaches e from its parent and puts r in its place. It
// returns ErrNoParent if e is a root element.
func (e *Element) ReplaceWith(r TreeNode) error {
	if e.Parent == nil {
		return ErrNoParent
	}
	return e.Parent.replaceChildWith(e, r)
}

// replaceChildWith swaps r in for old, which must be e's child. r is
// detached from its current parent first, per spec.md's component B
// contract.
func (e *Element) replaceChildWith(old TreeNode, r TreeNode) error {
	i, err := e.IndexOfChild(old)
	if err != nil {
		return err
	}
	e.detach(r)
	r.setParentElement(e)
	old.setParentElement(nil)
	e.Children[i] = r
	e.invalidatePaths()
	return nil
}

// GrabChildren transfers all of src's children to the end of e's children,
// in O(n+m), leaving src empty.
func (e *Element) GrabChildren(src *Element) {
	for _, c := range src.Children {
		c.setParentElement(e)
	}
	e.Children = append(e.Children, src.Children...)
	src.Children = nil
	e.invalidatePaths()
	src.invalidatePaths()
}

// Empty removes all of e's children.
func (e *Element) Empty() {
	for _, c := range e.Children {
		c.setParentElement(nil)
	}
	e.Children = nil
	e.invalidatePaths()
}

// detach removes child from whatever element currently parents it, if any.
func (e *Element) detach(child TreeNode) {
	if p := child.parentElement(); p != nil {
		p.Remove(child)
	}
}

func (e *Element) invalidatePaths() {
	e.pathValid = false
	for _, c := range e.Children {
		if ce, ok := c.(*Element); ok {
			ce.invalidatePaths()
		}
	}
}

// Path returns a human-readable location label for e, derived from the
// ancestor chain and any @name attribute, for use in error messages only.
// It is computed lazily on first use and cached until the subtree is next
// mutated (see invalidatePaths), mirroring the teacher's Statement.Location
// (computed from file/line/col captured once at parse time) in spirit -
// here the "location" is structural rather than textual, since schemas
// arrive as a tree, not a token stream with positions.
func (e *Element) Path() string {
	if e.pathValid {
		return e.pathCache
	}
	var label string
	if name, ok := e.Attr("", "name"); ok {
		label = fmt.Sprintf("%s[@name=%q]", e.Local, name)
	} else {
		label = e.Local
	}
	if e.Parent == nil {
		e.pathCache = "/" + label
	} else {
		e.pathCache = e.Parent.Path() + "/" + label
	}
	e.pathValid = true
	return e.pathCache
}

// ResolveNamespace resolves prefix to a URI by walking e's ancestor chain,
// with the built-in xml/xmlns bindings fixed per the XML Namespaces spec.
// It returns ok=false if prefix is bound nowhere in scope (including no
// default namespace bound for prefix == "").
func (e *Element) ResolveNamespace(prefix string) (string, bool) {
	switch prefix {
	case "xml":
		return "http://www.w3.org/XML/1998/namespace", true
	case "xmlns":
		return "http://www.w3.org/2000/xmlns/", true
	}
	for el := e; el != nil; el = el.Parent {
		if el.NSDecls != nil {
			if uri, ok := el.NSDecls[prefix]; ok {
				return uri, uri != ""
			}
		}
	}
	return "", false
}
