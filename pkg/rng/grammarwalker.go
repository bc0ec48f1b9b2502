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

// GrammarWalker drives a Grammar's Pattern tree against a stream of XML
// events (component F, the pushdown recognizer built on top of component
// E's per-pattern walkers). frames holds one content Walker per
// currently-open element, innermost last; opening an element pushes the
// Walker the matched Ref produced as FireResult.Content, closing one pops
// it. textBuffer coalesces consecutive text events (including ignorable
// inter-element whitespace) into one logical Text call fired just before
// the next open/close, so a Data or Value pattern sees exactly the one
// Text event it expects instead of being rejected for "too much text"
// the moment formatting whitespace is involved.
type GrammarWalker struct {
	grammar  *Grammar
	resolver NameResolver

	frames     []Walker
	textBuffer string
	started    bool

	// swallowAttrValue is set when a streaming AttributeName event is
	// rejected, so the AttributeValue that inevitably follows isn't
	// reported as a second, redundant error.
	swallowAttrValue bool

	// misplacedDepth is incremented for each rejected start tag (see
	// recoverOrReport), reset to 0 by each accepted one, and decremented
	// on each close while above 0; recoverOrReport adds its "defined but
	// not allowed here" hint only while it is 0.
	misplacedDepth int
}

func newGrammarWalker(g *Grammar, resolver NameResolver) *GrammarWalker {
	return &GrammarWalker{grammar: g, resolver: resolver}
}

func (gw *GrammarWalker) currentFrame() Walker {
	if len(gw.frames) == 0 {
		return skipWalker{}
	}
	return gw.frames[len(gw.frames)-1]
}

func (gw *GrammarWalker) flushText() []error {
	if gw.textBuffer == "" {
		return nil
	}
	buf := gw.textBuffer
	gw.textBuffer = ""
	if res := gw.currentFrame().Text(buf); !res.Matched {
		return res.Errors
	}
	return nil
}

// OpenElement fires enterStartTag, every attribute (as
// attributeNameAndValue), and leaveStartTag for one element, in that
// order, and pushes the resulting content Walker as the new top frame.
// nsDecls and attrs should be exactly the Element.NSDecls/Attrs of the
// element being opened.
func (gw *GrammarWalker) OpenElement(ns, local string, nsDecls map[string]string, attrs []*Attr) []error {
	var errs []error
	errs = append(errs, gw.flushText()...)

	gw.resolver.EnterContext()
	for prefix, uri := range nsDecls {
		gw.resolver.DefinePrefix(prefix, uri)
	}

	var res FireResult
	if !gw.started {
		gw.started = true
		res = gw.grammar.Start.NewWalker(nil).EnterStartTag(ns, local)
	} else {
		res = gw.currentFrame().EnterStartTag(ns, local)
	}
	if !res.Matched {
		errs = append(errs, gw.recoverOrReport(local, res.Errors)...)
		gw.frames = append(gw.frames, skipWalker{})
	} else {
		gw.misplacedDepth = 0
		content := res.Content
		if content == nil {
			content = skipWalker{}
		}
		gw.frames = append(gw.frames, content)
	}

	top := gw.currentFrame()
	for _, a := range attrs {
		if res := top.AttributeNameAndValue(a.URI, a.Local, a.Value); !res.Matched {
			errs = append(errs, res.Errors...)
		}
	}
	if res := top.LeaveStartTag(); !res.Matched {
		errs = append(errs, res.Errors...)
	}
	return errs
}

// CloseElement fires endTag for the innermost open element, collects any
// outstanding obligations from its content walker's End, and pops it.
func (gw *GrammarWalker) CloseElement() []error {
	errs := gw.flushText()
	top := gw.currentFrame()
	if res := top.EndTag(); !res.Matched {
		errs = append(errs, res.Errors...)
	}
	errs = append(errs, top.End()...)
	if len(gw.frames) > 0 {
		gw.frames = gw.frames[:len(gw.frames)-1]
	}
	gw.resolver.LeaveContext()
	if gw.misplacedDepth > 0 {
		gw.misplacedDepth--
	}
	return errs
}

// Text buffers character data; it is not fired against the content walker
// until the next OpenElement, CloseElement, or Finish, so adjacent text
// events coalesce into one. Firing a Text event with no content makes no
// sense (there's nothing to buffer or validate) and is rejected.
func (gw *GrammarWalker) Text(value string) []error {
	if value == "" {
		return []error{validationErrorf("", "firing empty text events makes no sense")}
	}
	gw.textBuffer += value
	return nil
}

// AttributeName fires a standalone attributeName event, for callers
// driving the walker from a token-at-a-time parser rather than a fully
// parsed *Element. A rejection here suppresses the error that the
// following AttributeValue would otherwise also report.
func (gw *GrammarWalker) AttributeName(ns, local string) []error {
	res := gw.currentFrame().AttributeName(ns, local)
	if !res.Matched {
		gw.swallowAttrValue = true
		return res.Errors
	}
	return nil
}

// AttributeValue fires a standalone attributeValue event following a
// prior AttributeName call.
func (gw *GrammarWalker) AttributeValue(value string) []error {
	if gw.swallowAttrValue {
		gw.swallowAttrValue = false
		return nil
	}
	res := gw.currentFrame().AttributeValue(value)
	if !res.Matched {
		return res.Errors
	}
	return nil
}

// Finish flushes any buffered trailing text and returns the accumulated
// diagnostics in a stable, deduplicated order. It should be called once
// after the document's root element has been closed.
func (gw *GrammarWalker) Finish(errs []error) []error {
	errs = append(errs, gw.flushText()...)
	return sortAndDedupErrors(errs)
}

// recoverOrReport reports the rejection of a start tag and, if this is the
// outermost mismatch (not a descendant of an already-reported one), adds a
// note when the grammar defines an element by that local name somewhere
// else - a cheap, frequently useful hint for the common case of an
// element nested one level too deep or too shallow.
func (gw *GrammarWalker) recoverOrReport(local string, cause []error) []error {
	errs := append([]error{}, cause...)
	if gw.misplacedDepth == 0 {
		if defs, ok := gw.grammar.elementDefinitions[local]; ok && len(defs) > 0 {
			errs = append(errs, validationErrorf("", "element %q is defined but not allowed at this position", local))
		}
	}
	gw.misplacedDepth++
	return errs
}

// ValidateDocument drives the walker over an already-parsed *Element tree
// (as produced by ReadElementTree) and returns every diagnostic collected,
// sorted and deduplicated.
func (gw *GrammarWalker) ValidateDocument(root *Element) []error {
	var errs []error
	var walk func(e *Element)
	walk = func(e *Element) {
		errs = append(errs, gw.OpenElement(e.URI, e.Local, e.NSDecls, e.Attrs)...)
		for _, c := range e.Children {
			switch v := c.(type) {
			case *Element:
				walk(v)
			case *Text:
				errs = append(errs, gw.Text(v.Value)...)
			}
		}
		errs = append(errs, gw.CloseElement()...)
	}
	walk(root)
	return gw.Finish(errs)
}

// skipWalker accepts every event without comment. It is pushed as the
// content frame for a misplaced element (one whose start tag didn't match
// anything), so the rest of that element's subtree is parsed for
// well-formedness but doesn't generate a cascade of further errors once
// the first one has been reported.
type skipWalker struct{}

func (skipWalker) EnterStartTag(ns, local string) FireResult {
	return FireResult{Matched: true, Content: skipWalker{}}
}
func (skipWalker) AttributeName(ns, local string) FireResult         { return accepted() }
func (skipWalker) AttributeValue(value string) FireResult            { return accepted() }
func (skipWalker) AttributeNameAndValue(ns, local, value string) FireResult { return accepted() }
func (skipWalker) LeaveStartTag() FireResult                         { return accepted() }
func (skipWalker) Text(value string) FireResult                      { return accepted() }
func (skipWalker) EndTag() FireResult                                 { return accepted() }
func (skipWalker) Possible() []NamePattern                           { return nil }
func (skipWalker) PossibleAttributes() []NamePattern                 { return nil }
func (skipWalker) End() []error                                       { return nil }
func (skipWalker) Clone() Walker                                      { return skipWalker{} }
