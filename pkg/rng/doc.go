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

// Package rng implements a validator for XML documents against Relax NG
// schemas (see the Relax NG specification, ISO/IEC 19757-2).
//
// The package has two halves. The simplifier (Simplify) reduces an
// arbitrary Relax NG schema, given to it as a parsed XML element tree, to a
// canonical simplified Grammar (see Pattern and its NewWalker method). The
// walker (Grammar.NewWalker) then consumes a stream of XML structural
// events - start tags, attributes, text, end tags - and reports whether the
// document they describe conforms to the Grammar.
//
// A typical caller reads a schema document into an *Element tree (see
// ReadElementTree), simplifies it:
//
//	grammar, err := NewSimplifier(loader, Options{}).Simplify(schemaRoot, sourceURL)
//	if err != nil {
//		// err is a *SchemaValidationError, *UnresolvedRefError, or similar.
//	}
//
// and then validates an instance document by feeding it events one at a
// time to a GrammarWalker:
//
//	w := grammar.NewWalker(NewNameResolver())
//	// ... call w.OpenElement, w.Text, w.CloseElement, ... for each XML token ...
//	if errs := w.Finish(nil); len(errs) > 0 {
//		// validation failed
//	}
//
// Tokenizing the instance document and the schema document itself is not
// this package's concern; ReadElementTree adapts encoding/xml for that
// purpose, but any source of start-tag/attribute/text/end-tag events can
// drive a GrammarWalker directly.
package rng
