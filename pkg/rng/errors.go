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
	"sort"
)

// SchemaValidationError is raised by the simplification pipeline. It is not
// recoverable; the pipeline aborts as soon as one is produced.
type SchemaValidationError struct {
	Path string // location of the offending element, e.g. from Element.Path
	Msg  string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func schemaErrorf(e *Element, format string, v ...interface{}) *SchemaValidationError {
	return &SchemaValidationError{Path: e.Path(), Msg: fmt.Sprintf(format, v...)}
}

// UnresolvedRefError is raised by Pattern linking when a Ref names no
// Define in the enclosing Grammar.
type UnresolvedRefError struct {
	Name string
}

func (e *UnresolvedRefError) Error() string {
	return fmt.Sprintf("%s cannot be resolved", e.Name)
}

// UnresolvableResourceError is raised by the loader adapter (pass 1, include
// and externalRef resolution) when a resource cannot be fetched or forms an
// unbreakable cycle.
type UnresolvableResourceError struct {
	URL string
	Err error
}

func (e *UnresolvableResourceError) Error() string {
	return fmt.Sprintf("unresolvable resource %s: %v", e.URL, e.Err)
}

func (e *UnresolvableResourceError) Unwrap() error { return e.Err }

// ValidationError is the generic event-level diagnostic produced by the
// walker. Event-level errors are recoverable: the caller (GrammarWalker) is
// expected to continue feeding events after recording one.
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func validationErrorf(path, format string, v ...interface{}) *ValidationError {
	return &ValidationError{Path: path, Msg: fmt.Sprintf(format, v...)}
}

// ElementNameError reports that a start tag was not allowed at its
// location. The driver may attempt misplaced-element recovery after one of
// these.
type ElementNameError struct {
	ValidationError
	NS, Local string
}

func elementNameErrorf(path, ns, local, format string, v ...interface{}) *ElementNameError {
	return &ElementNameError{
		ValidationError: *validationErrorf(path, format, v...),
		NS:              ns,
		Local:            local,
	}
}

// AttributeNameError reports a rejected attributeName event. The driver
// swallows the next attributeValue event after one of these.
type AttributeNameError struct {
	ValidationError
	NS, Local string
}

func attributeNameErrorf(path, ns, local, format string, v ...interface{}) *AttributeNameError {
	return &AttributeNameError{
		ValidationError: *validationErrorf(path, format, v...),
		NS:              ns,
		Local:            local,
	}
}

// AttributeValueError reports that an attribute's value did not satisfy its
// pattern.
type AttributeValueError struct {
	ValidationError
}

func attributeValueErrorf(path, format string, v ...interface{}) *AttributeValueError {
	return &AttributeValueError{ValidationError: *validationErrorf(path, format, v...)}
}

// ChoiceError aggregates the errors of every branch of a Choice that
// rejected an event, so the caller can see why each alternative failed.
type ChoiceError struct {
	ValidationError
	Branches []error
}

func choiceErrorf(path string, branches []error) *ChoiceError {
	return &ChoiceError{
		ValidationError: *validationErrorf(path, "no branch of choice matched"),
		Branches:        branches,
	}
}

// errLess orders errors deterministically: by path, then by message text.
// Mirrors the teacher's errorSort (entry.go), which sorts by file:line:col
// and dedupes adjacent identical errors; we don't have line/col for
// validation errors (only an element path), so we sort on that instead.
func errLess(a, b error) bool {
	pa, ma := errorPathAndMsg(a)
	pb, mb := errorPathAndMsg(b)
	if pa != pb {
		return pa < pb
	}
	return ma < mb
}

func errorPathAndMsg(err error) (string, string) {
	switch e := err.(type) {
	case *ValidationError:
		return e.Path, e.Msg
	case *ElementNameError:
		return e.Path, e.Msg
	case *AttributeNameError:
		return e.Path, e.Msg
	case *AttributeValueError:
		return e.Path, e.Msg
	case *ChoiceError:
		return e.Path, e.Msg
	default:
		return "", err.Error()
	}
}

// sortAndDedupErrors sorts errs deterministically and removes exact
// duplicates, the same contract as the teacher's errorSort.
func sortAndDedupErrors(errs []error) []error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs
	}
	sorted := make([]error, len(errs))
	copy(sorted, errs)
	sort.SliceStable(sorted, func(i, j int) bool { return errLess(sorted[i], sorted[j]) })

	out := sorted[:1]
	for _, e := range sorted[1:] {
		last := out[len(out)-1]
		if last.Error() == e.Error() {
			continue
		}
		out = append(out, e)
	}
	return out
}
