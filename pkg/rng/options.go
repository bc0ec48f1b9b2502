// Copyright 2017 Google Inc.
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

// Options controls leniency of the simplification pipeline. The zero value
// is the strictest, spec-conformant behavior.
type Options struct {
	// IgnoreIncludeCircularDependencies allows include/externalRef cycles
	// that would otherwise abort the pipeline with an
	// UnresolvableResourceError. When set, a cycle is broken at the point
	// it is detected and a warning is recorded instead.
	IgnoreIncludeCircularDependencies bool

	// IgnoreUnusedDefines suppresses the warning normally produced when
	// pass 7 removes a define that is never referenced.
	IgnoreUnusedDefines bool
}
