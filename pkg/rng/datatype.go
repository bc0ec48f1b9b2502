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
	"strconv"
	"strings"
)

// validateDatatype checks value against the named XSD type, applying any
// length-related facets in params. Only the two datatypes the top-level
// spec names as in scope, string and token, are recognized; a value checked
// against any other type is rejected rather than silently accepted. The
// datatype library URI is not consulted: only the type name is.
func validateDatatype(typ, value string, params []DataParam) (bool, error) {
	switch typ {
	case "string", "token", "":
		norm := normalizeForDatatype(typ, value)
		for _, p := range params {
			if err := checkLengthFacet(p, norm); err != nil {
				return false, err
			}
		}
		return true, nil
	default:
		return false, fmt.Errorf("unsupported datatype %q", typ)
	}
}

// normalizeForDatatype applies the whitespace facet implied by typ: "token"
// collapses runs of whitespace and trims the ends (XSD's "collapse"
// facet); "string" and the default library (no type given, i.e. matching
// any string) are left verbatim ("preserve").
func normalizeForDatatype(typ, value string) string {
	if typ == "token" {
		return strings.Join(strings.Fields(value), " ")
	}
	return value
}

func checkLengthFacet(p DataParam, value string) error {
	n := len([]rune(value))
	switch p.Name {
	case "length":
		want, err := strconv.Atoi(p.Value)
		if err != nil {
			return fmt.Errorf("bad length facet %q", p.Value)
		}
		if n != want {
			return fmt.Errorf("length %d does not equal %d", n, want)
		}
	case "minLength":
		want, err := strconv.Atoi(p.Value)
		if err != nil {
			return fmt.Errorf("bad minLength facet %q", p.Value)
		}
		if n < want {
			return fmt.Errorf("length %d is less than minLength %d", n, want)
		}
	case "maxLength":
		want, err := strconv.Atoi(p.Value)
		if err != nil {
			return fmt.Errorf("bad maxLength facet %q", p.Value)
		}
		if n > want {
			return fmt.Errorf("length %d exceeds maxLength %d", n, want)
		}
	}
	return nil
}
