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

// Package rngutil contains high-level helpers for loading and simplifying
// Relax NG schema files.
package rngutil

import (
	"fmt"

	"github.com/relaxngo/relaxngo/pkg/rng"
)

// Parse takes a list of Relax NG schema file paths and a list of include
// search-path directories, and simplifies each into a compiled Grammar,
// returning a map keyed by the schema file path as given. It also returns a
// list of errors encountered while loading or simplifying, if any.
func Parse(schemaFiles, path []string) (map[string]*rng.Grammar, []error) {
	return parse(schemaFiles, path, rng.Options{})
}

// ParseWithOptions is Parse with caller-supplied simplification Options,
// for callers that want to tolerate include cycles (fatal under the
// default Options) or silence the warning recorded for unused defines.
func ParseWithOptions(schemaFiles, path []string, opts rng.Options) (map[string]*rng.Grammar, []error) {
	return parse(schemaFiles, path, opts)
}

func parse(schemaFiles, path []string, opts rng.Options) (map[string]*rng.Grammar, []error) {
	loader := rng.NewLocalResourceLoader()
	for _, p := range path {
		loader.AddPath(fmt.Sprintf("%s/...", p))
	}

	var processErr []error
	grammars := make(map[string]*rng.Grammar)
	for _, name := range schemaFiles {
		if name == "" {
			continue
		}
		text, canonicalURL, err := loader.Load(name, "")
		if err != nil {
			processErr = append(processErr, err)
			continue
		}
		g, err := rng.Simplify(text, canonicalURL, loader, opts)
		if err != nil {
			processErr = append(processErr, err)
			continue
		}
		grammars[name] = g
	}

	if len(processErr) > 0 {
		return nil, processErr
	}
	return grammars, nil
}
