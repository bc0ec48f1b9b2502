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
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadElementTree parses the schema document in text (the "event-producing
// XML parser...assumed available" of spec.md section 1) into an *Element
// tree, the simplifier's working representation (component B). It is
// adapted from the approach other_examples/droyo-go-xml's xmltree package
// takes to the same problem - wrapping encoding/xml.Decoder token-by-token
// and tracking a namespace scope - generalized here to build the mutable,
// parent-linked tree the simplification passes rewrite in place rather than
// xmltree's read-only one.
func ReadElementTree(text string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	var root, cur *Element
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parsing xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := elementFromStartToken(t)
			if cur == nil {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements in schema document")
				}
				root = el
			} else {
				cur.Append(el)
			}
			cur = el
		case xml.EndElement:
			if cur == nil {
				return nil, fmt.Errorf("unbalanced end tag %s", t.Name.Local)
			}
			cur = cur.Parent
		case xml.CharData:
			if cur != nil {
				cur.Append(NewText(string(t)))
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("empty schema document")
	}
	return root, nil
}

func elementFromStartToken(t xml.StartElement) *Element {
	el := NewElement("", t.Name.Local, t.Name.Space)
	for _, a := range t.Attr {
		switch {
		case a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns"):
			prefix := a.Name.Local
			if a.Name.Space == "xmlns" {
				// prefix binding: xmlns:foo="..."
			} else {
				prefix = "" // default namespace binding: xmlns="..."
			}
			if el.NSDecls == nil {
				el.NSDecls = map[string]string{}
			}
			el.NSDecls[prefix] = a.Value
		default:
			el.Attrs = append(el.Attrs, &Attr{Local: a.Name.Local, URI: a.Name.Space, Value: a.Value})
		}
	}
	return el
}
