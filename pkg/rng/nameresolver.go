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
	"fmt"
	"strings"
)

// NameResolver resolves QName-valued content (element and attribute
// prefixes, and any QName-typed text a datatype library might define)
// against the namespace prefixes in scope at a given point in the
// document. Implementations are pluggable so a caller driving the
// GrammarWalker from something other than an *Element tree (e.g. a raw
// token stream) can supply its own scope tracking; NewNameResolver returns
// the default one, adapted from the scope-stack approach
// other_examples/droyo-go-xml's xmltree.Scope/JoinScope takes to the same
// problem.
type NameResolver interface {
	EnterContext()
	LeaveContext()
	DefinePrefix(prefix, uri string)
	ResolveName(qname string, isAttr bool) (ExpandedName, error)
	Clone() NameResolver
}

type defaultNameResolver struct {
	scopes []map[string]string
}

// NewNameResolver returns a NameResolver with the built-in xml/xmlns
// prefixes bound and no other prefixes in scope.
func NewNameResolver() NameResolver {
	return &defaultNameResolver{scopes: []map[string]string{{}}}
}

func (r *defaultNameResolver) EnterContext() {
	r.scopes = append(r.scopes, map[string]string{})
}

func (r *defaultNameResolver) LeaveContext() {
	if len(r.scopes) > 1 {
		r.scopes = r.scopes[:len(r.scopes)-1]
	}
}

func (r *defaultNameResolver) DefinePrefix(prefix, uri string) {
	r.scopes[len(r.scopes)-1][prefix] = uri
}

func (r *defaultNameResolver) lookup(prefix string) (string, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if uri, ok := r.scopes[i][prefix]; ok {
			return uri, true
		}
	}
	return "", false
}

func (r *defaultNameResolver) ResolveName(qname string, isAttr bool) (ExpandedName, error) {
	prefix, local := splitQName(qname)
	switch {
	case prefix == "xml":
		return ExpandedName{NS: "http://www.w3.org/XML/1998/namespace", Local: local}, nil
	case prefix == "xmlns":
		return ExpandedName{NS: "http://www.w3.org/2000/xmlns/", Local: local}, nil
	case prefix != "":
		uri, ok := r.lookup(prefix)
		if !ok {
			return ExpandedName{}, fmt.Errorf("unbound namespace prefix %q", prefix)
		}
		return ExpandedName{NS: uri, Local: local}, nil
	case isAttr:
		// Unprefixed attributes never inherit the default namespace.
		return ExpandedName{NS: "", Local: local}, nil
	default:
		uri, _ := r.lookup("")
		return ExpandedName{NS: uri, Local: local}, nil
	}
}

func (r *defaultNameResolver) Clone() NameResolver {
	cp := &defaultNameResolver{scopes: make([]map[string]string, len(r.scopes))}
	for i, m := range r.scopes {
		nm := make(map[string]string, len(m))
		for k, v := range m {
			nm[k] = v
		}
		cp.scopes[i] = nm
	}
	return cp
}

func splitQName(qname string) (prefix, local string) {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return qname[:i], qname[i+1:]
	}
	return "", qname
}
