// Copyright 2020 Google Inc.
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

package rngutil

import (
	"testing"

	"github.com/relaxngo/relaxngo/pkg/rng"
)

// TestParse exercises Parse against a handful of schema files, the same
// table shape the teacher's TestParse uses for yang.Entry parsing.
func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		inFiles     []string
		inPath      []string
		wantErr     bool
		wantSchemas []string
	}{{
		name:        "simple valid schema",
		inFiles:     []string{"testdata/00-valid-schema.rng"},
		inPath:      []string{"testdata"},
		wantSchemas: []string{"testdata/00-valid-schema.rng"},
	}, {
		name:    "simple invalid schema",
		inFiles: []string{"testdata/01-invalid-schema.rng"},
		inPath:  []string{"testdata"},
		wantErr: true,
	}, {
		name:        "valid include",
		inFiles:     []string{"testdata/02-valid-include.rng"},
		inPath:      []string{"testdata"},
		wantSchemas: []string{"testdata/02-valid-include.rng"},
	}, {
		name:    "invalid externalRef",
		inFiles: []string{"testdata/03-invalid-externalref.rng"},
		inPath:  []string{},
		wantErr: true,
	}, {
		name:        "two schemas",
		inFiles:     []string{"testdata/04-valid-schema-one.rng", "testdata/04-valid-schema-two.rng"},
		inPath:      []string{},
		wantSchemas: []string{"testdata/04-valid-schema-one.rng", "testdata/04-valid-schema-two.rng"},
	}, {
		name:    "circular externalRef",
		inFiles: []string{"testdata/05-circular-main.rng"},
		inPath:  []string{"testdata"},
		wantErr: true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grammars, errs := Parse(tt.inFiles, tt.inPath)
			if len(errs) != 0 && !tt.wantErr {
				t.Fatalf("%s: unexpected error processing schemas: %v", tt.name, errs)
			}
			if len(errs) == 0 && tt.wantErr {
				t.Fatalf("%s: expected an error, got none", tt.name)
			}

			for _, name := range tt.wantSchemas {
				if _, ok := grammars[name]; !ok {
					t.Fatalf("%s: could not find schema %s", tt.name, name)
				}
			}
		})
	}
}

// TestParseWithOptions exercises ParseWithOptions, specifically that
// IgnoreIncludeCircularDependencies turns a fatal cycle into a tolerated
// one whose circular branch simply contributes nothing.
func TestParseWithOptions(t *testing.T) {
	tests := []struct {
		name         string
		inFiles      []string
		inPath       []string
		parseOptions rng.Options
		wantErr      bool
		wantSchemas  []string
	}{
		{
			name:         "circular externalRef with default options",
			inFiles:      []string{"testdata/05-circular-main.rng"},
			inPath:       []string{"testdata"},
			parseOptions: rng.Options{},
			wantErr:      true,
		},
		{
			name:         "circular externalRef with IgnoreIncludeCircularDependencies",
			inFiles:      []string{"testdata/05-circular-main.rng"},
			inPath:       []string{"testdata"},
			parseOptions: rng.Options{IgnoreIncludeCircularDependencies: true},
			wantSchemas:  []string{"testdata/05-circular-main.rng"},
			wantErr:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grammars, errs := ParseWithOptions(tt.inFiles, tt.inPath, tt.parseOptions)
			if len(errs) != 0 && !tt.wantErr {
				t.Fatalf("%s: unexpected error processing schemas: %v", tt.name, errs)
			}
			if len(errs) == 0 && tt.wantErr {
				t.Fatalf("%s: expected an error, got none", tt.name)
			}

			for _, name := range tt.wantSchemas {
				if _, ok := grammars[name]; !ok {
					t.Fatalf("%s: could not find schema %s", tt.name, name)
				}
			}
		})
	}
}
