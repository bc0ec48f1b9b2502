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

// emitPattern is pass 9, the final emission to the Pattern model. It also
// carries out pass 5's structural rewrites (binarizing n-ary
// choice/group/interleave, and desugaring optional/zeroOrMore/mixed) as it
// goes, since building the binary/desugared Pattern directly is simpler
// than rewriting the *Element tree first and emitting it second.
func (s *Simplifier) emitPattern(e *Element) (Pattern, error) {
	switch {
	case isRNG(e, "empty"):
		return EmptyPattern{}, nil
	case isRNG(e, "notAllowed"):
		return NotAllowedPattern{}, nil
	case isRNG(e, "text"):
		return TextPattern{}, nil
	case isRNG(e, "data"):
		return s.emitData(e)
	case isRNG(e, "value"):
		return s.emitValue(e)
	case isRNG(e, "list"):
		inner, err := s.emitSingleChild(e)
		if err != nil {
			return nil, err
		}
		return &ListPattern{P: inner}, nil
	case isRNG(e, "attribute"):
		return s.emitAttribute(e)
	case isRNG(e, "element"):
		return s.emitElement(e)
	case isRNG(e, "ref"):
		name, _ := e.Attr("", "name")
		if name == "" {
			return nil, schemaErrorf(e, "ref has no name")
		}
		return &Ref{Name: name}, nil
	case isRNG(e, "choice"):
		return s.foldChildren(e, func(a, b Pattern) Pattern { return &ChoicePattern{A: a, B: b} })
	case isRNG(e, "group"):
		return s.foldChildren(e, func(a, b Pattern) Pattern { return &GroupPattern{A: a, B: b} })
	case isRNG(e, "interleave"):
		return s.foldChildren(e, func(a, b Pattern) Pattern { return &InterleavePattern{A: a, B: b} })
	case isRNG(e, "optional"):
		inner, err := s.emitSingleChild(e)
		if err != nil {
			return nil, err
		}
		return &ChoicePattern{A: inner, B: EmptyPattern{}}, nil
	case isRNG(e, "zeroOrMore"):
		inner, err := s.emitSingleChild(e)
		if err != nil {
			return nil, err
		}
		return &ChoicePattern{A: &OneOrMorePattern{P: inner}, B: EmptyPattern{}}, nil
	case isRNG(e, "oneOrMore"):
		inner, err := s.emitSingleChild(e)
		if err != nil {
			return nil, err
		}
		return &OneOrMorePattern{P: inner}, nil
	case isRNG(e, "mixed"):
		inner, err := s.emitSingleChild(e)
		if err != nil {
			return nil, err
		}
		return &InterleavePattern{A: inner, B: TextPattern{}}, nil
	case isRNG(e, "grammar"):
		return nil, schemaErrorf(e, "grammar survived flattening, this is a bug")
	}
	return nil, schemaErrorf(e, "unexpected element <%s> where a pattern was expected", e.Local)
}

func (s *Simplifier) emitSingleChild(e *Element) (Pattern, error) {
	children := e.ElementChildren()
	if len(children) != 1 {
		return nil, schemaErrorf(e, "<%s> must have exactly one child pattern", e.Local)
	}
	return s.emitPattern(children[0])
}

func (s *Simplifier) foldChildren(e *Element, combine func(a, b Pattern) Pattern) (Pattern, error) {
	children := e.ElementChildren()
	if len(children) == 0 {
		return nil, schemaErrorf(e, "<%s> has no children", e.Local)
	}
	return s.foldPatternElements(children, combine)
}

func (s *Simplifier) foldPatternElements(children []*Element, combine func(a, b Pattern) Pattern) (Pattern, error) {
	pat, err := s.emitPattern(children[0])
	if err != nil {
		return nil, err
	}
	for _, c := range children[1:] {
		next, err := s.emitPattern(c)
		if err != nil {
			return nil, err
		}
		pat = combine(pat, next)
	}
	return pat, nil
}

// xmlnsNamespace is the namespace URI reserved for XML namespace
// declarations themselves; Relax NG forbids an <attribute> name class from
// ever matching a name in it.
const xmlnsNamespace = "http://www.w3.org/2000/xmlns/"

func (s *Simplifier) emitAttribute(e *Element) (Pattern, error) {
	children := e.ElementChildren()
	if len(children) == 0 {
		return nil, schemaErrorf(e, "<attribute> has no name class")
	}
	nc, err := s.buildNameClass(children[0])
	if err != nil {
		return nil, err
	}
	if nameClassUsesNamespace(nc, xmlnsNamespace) {
		return nil, schemaErrorf(e, "<attribute> may not be in the reserved xmlns namespace")
	}
	var content Pattern = TextPattern{}
	if rest := children[1:]; len(rest) > 0 {
		content, err = s.foldPatternElements(rest, func(a, b Pattern) Pattern { return &GroupPattern{A: a, B: b} })
		if err != nil {
			return nil, err
		}
	}
	return &AttributePattern{NameClass: nc, Content: content}, nil
}

func (s *Simplifier) emitElement(e *Element) (Pattern, error) {
	children := e.ElementChildren()
	if len(children) == 0 {
		return nil, schemaErrorf(e, "<element> has no name class")
	}
	nc, err := s.buildNameClass(children[0])
	if err != nil {
		return nil, err
	}
	var content Pattern = EmptyPattern{}
	if rest := children[1:]; len(rest) > 0 {
		content, err = s.foldPatternElements(rest, func(a, b Pattern) Pattern { return &GroupPattern{A: a, B: b} })
		if err != nil {
			return nil, err
		}
	}
	return &ElementPattern{NameClass: nc, Content: content}, nil
}

func (s *Simplifier) emitData(e *Element) (Pattern, error) {
	typ, _ := e.Attr("", "type")
	lib, _ := e.Attr("", "datatypeLibrary")
	var params []DataParam
	var except Pattern
	for _, c := range e.ElementChildren() {
		switch {
		case isRNG(c, "param"):
			name, _ := c.Attr("", "name")
			params = append(params, DataParam{Name: name, Value: elementText(c)})
		case isRNG(c, "except"):
			var err error
			except, err = s.emitSingleChild(c)
			if err != nil {
				return nil, err
			}
		}
	}
	return &DataPattern{DatatypeLibrary: lib, Type: typ, Params: params, Except: except}, nil
}

func (s *Simplifier) emitValue(e *Element) (Pattern, error) {
	typ, _ := e.Attr("", "type")
	lib, _ := e.Attr("", "datatypeLibrary")
	ns, _ := e.Attr("", "ns")
	return &ValuePattern{DatatypeLibrary: lib, Type: typ, Value: elementText(e), NS: ns}, nil
}

// buildNameClass interprets a name-class element (<name>, <anyName>,
// <nsName>, or an n-ary <choice> of those) as a NamePattern, folding an
// n-ary choice into the binary NameChoice tree component A expects -
// pass 5's structural binarization applied to name classes rather than
// patterns.
func (s *Simplifier) buildNameClass(e *Element) (NamePattern, error) {
	return s.buildNameClassAt(e, false)
}

// buildNameClassAt builds the name class rooted at e. restricted is true
// while building the except content of an <nsName> (directly, or nested
// inside a <choice> within that except): per Relax NG, such an except may
// only be built from <name>, <nsName>, and <choice> of those, never
// <anyName>. An <anyName>'s own except has no such restriction, since
// nothing below it is itself restricted unless it is, in turn, an
// <nsName>'s except.
func (s *Simplifier) buildNameClassAt(e *Element, restricted bool) (NamePattern, error) {
	switch {
	case isRNG(e, "name"):
		ns, _ := e.Attr("", "ns")
		return &Name{NS: ns, Local: localPart(elementText(e))}, nil
	case isRNG(e, "anyName"):
		if restricted {
			return nil, schemaErrorf(e, "<anyName> may not appear inside an <nsName> except")
		}
		except, err := s.buildExceptNameClass(e, false)
		if err != nil {
			return nil, err
		}
		return &AnyName{Except: except}, nil
	case isRNG(e, "nsName"):
		ns, _ := e.Attr("", "ns")
		except, err := s.buildExceptNameClass(e, true)
		if err != nil {
			return nil, err
		}
		return &NsName{NS: ns, Except: except}, nil
	case isRNG(e, "choice"):
		children := e.ElementChildren()
		if len(children) == 0 {
			return nil, schemaErrorf(e, "empty name class choice")
		}
		pat, err := s.buildNameClassAt(children[0], restricted)
		if err != nil {
			return nil, err
		}
		for _, c := range children[1:] {
			next, err := s.buildNameClassAt(c, restricted)
			if err != nil {
				return nil, err
			}
			pat = &NameChoice{A: pat, B: next}
		}
		return pat, nil
	}
	return nil, schemaErrorf(e, "expected a name class, got <%s>", e.Local)
}

func (s *Simplifier) buildExceptNameClass(e *Element, restricted bool) (NamePattern, error) {
	ex := firstChildNamed(e, "except")
	if ex == nil {
		return nil, nil
	}
	children := ex.ElementChildren()
	if len(children) == 0 {
		return nil, schemaErrorf(ex, "except has no name class children")
	}
	pat, err := s.buildNameClassAt(children[0], restricted)
	if err != nil {
		return nil, err
	}
	for _, c := range children[1:] {
		next, err := s.buildNameClassAt(c, restricted)
		if err != nil {
			return nil, err
		}
		pat = &NameChoice{A: pat, B: next}
	}
	return pat, nil
}

// nameClassUsesNamespace reports whether nc could ever match a name in ns -
// exactly (Namespaces() names it directly) or via an unrestricted wildcard
// (AnyName without an except that rules ns back out, which Namespaces()
// can't distinguish from one that does, so this errs conservative).
func nameClassUsesNamespace(nc NamePattern, ns string) bool {
	spaces := nc.Namespaces()
	return spaces[ns] || spaces[AnyNamespace]
}

// localPart strips a "prefix:" qname prefix, if any, that
// simplify_ns.go's normalizeNamespaces left in place (it resolves the
// prefix into the element's ns attribute but does not itself rewrite the
// text, since at that point the local name hasn't been separated out
// yet).
func localPart(text string) string {
	if i := strings.IndexByte(text, ':'); i >= 0 {
		return text[i+1:]
	}
	return text
}

// emitDefine builds a Define for name from its (already combine-merged)
// content element. Per the Define invariant carried from component D, the
// content must simplify to exactly one <element> pattern.
func (s *Simplifier) emitDefine(name string, content *Element) (*Define, error) {
	pat, err := s.emitPattern(content)
	if err != nil {
		return nil, err
	}
	el, ok := pat.(*ElementPattern)
	if !ok {
		return nil, schemaErrorf(content, "define %q does not simplify to a single element pattern", name)
	}
	return &Define{Name: name, Element: el}, nil
}
