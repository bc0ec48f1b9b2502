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
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ResourceLoader is the consumed interface (spec.md section 6) the
// simplification pipeline uses to resolve <include> and <externalRef> URLs.
// Given a URL (possibly relative to base), it returns the raw schema text
// and the canonical URL it was fetched from, for further relative
// resolution by nested includes.
type ResourceLoader interface {
	Load(ref, base string) (text, canonicalURL string, err error)
}

// LocalResourceLoader resolves schema URLs against a search path of local
// directories, the same convention the teacher's file.go uses for .yang
// module names (Path/AddPath/findFile): the ref itself is tried first
// (relative to base's directory when a base is given, else relative to the
// current directory), then each configured directory, with a trailing
// "/..." component meaning "and all subdirectories".
type LocalResourceLoader struct {
	Path    []string
	pathMap map[string]bool
}

// NewLocalResourceLoader returns a loader with an empty search path.
func NewLocalResourceLoader() *LocalResourceLoader {
	return &LocalResourceLoader{pathMap: map[string]bool{}}
}

// AddPath adds the directories in paths (colon-separated within each
// argument, as in the teacher's AddPath) to the search path, skipping
// duplicates.
func (l *LocalResourceLoader) AddPath(paths ...string) {
	if l.pathMap == nil {
		l.pathMap = map[string]bool{}
	}
	for _, p := range paths {
		for _, dir := range strings.Split(p, ":") {
			if !l.pathMap[dir] {
				l.pathMap[dir] = true
				l.Path = append(l.Path, dir)
			}
		}
	}
}

// Load implements ResourceLoader. ref is resolved relative to base first
// (when both look like filesystem paths and ref isn't absolute); if that
// fails and ref has no "/" in it, the configured search path is consulted.
func (l *LocalResourceLoader) Load(ref, base string) (string, string, error) {
	candidate := ref
	if base != "" && !path.IsAbs(ref) {
		if u, err := url.Parse(ref); err == nil && u.IsAbs() {
			candidate = ref
		} else {
			candidate = path.Join(path.Dir(base), ref)
		}
	}

	if data, err := os.ReadFile(candidate); err == nil {
		l.AddPath(path.Dir(candidate))
		return string(data), candidate, nil
	}
	if strings.Contains(ref, "/") {
		return "", "", &UnresolvableResourceError{URL: ref, Err: fmt.Errorf("no such file: %s", candidate)}
	}

	for _, dir := range l.Path {
		var n string
		if path.Base(dir) == "..." {
			n = findInDir(path.Dir(dir), ref)
		} else {
			n = path.Join(dir, ref)
		}
		if n == "" {
			continue
		}
		if data, err := os.ReadFile(n); err == nil {
			return string(data), n, nil
		}
	}
	return "", "", &UnresolvableResourceError{URL: ref, Err: fmt.Errorf("no such file: %s", ref)}
}

// findInDir looks for a file named name in dir or any of its
// subdirectories, the recursive "dir/..." search the teacher supports.
func findInDir(dir, name string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, fi := range entries {
		if !fi.IsDir() {
			if fi.Name() == name {
				return path.Join(dir, name)
			}
			continue
		}
		if n := findInDir(path.Join(dir, fi.Name()), name); n != "" {
			return n
		}
	}
	return ""
}

// PathsWithSchemas returns all directories under and including root that
// contain a file with a ".rng" extension.
func PathsWithSchemas(root string) ([]string, error) {
	var paths []string
	seen := map[string]bool{}
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return err
		}
		if strings.HasSuffix(p, ".rng") {
			dir := path.Dir(p)
			if !seen[dir] {
				seen[dir] = true
				paths = append(paths, dir)
			}
		}
		return nil
	})
	return paths, err
}
