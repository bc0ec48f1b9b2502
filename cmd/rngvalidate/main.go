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

// Program rngvalidate parses a Relax NG schema, simplifies it, and
// validates one or more XML documents against it.
//
// Usage: rngvalidate [--path DIR] [--format FORMAT] --schema SCHEMA [FILE ...]
//
// SCHEMA is a Relax NG schema file. Each FILE is parsed as an XML document
// and validated against the simplified grammar; if no FILE is given,
// standard input is read and validated. FORMAT, which defaults to "text",
// selects how validation results are reported.
//
// If DIR is specified, it is considered a comma separated list of paths
// to append to the schema include search directory. If DIR appears as
// DIR/... then DIR and all direct and indirect subdirectories are
// checked.
//
// Exit status is 0 if every document is valid, 1 if the schema itself
// failed to simplify, 2 if some document failed validation, and 3 if a
// file could not be read.
//
// THIS PROGRAM IS STILL JUST A DEVELOPMENT TOOL.
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"github.com/pborman/getopt"
	"github.com/relaxngo/relaxngo/pkg/indent"
	"github.com/relaxngo/relaxngo/pkg/rng"
)

// Each format must register a reporter with register.  The function f is
// called once per document with the errors found for it: the parse error
// when the document is not well-formed XML, else the errors
// ValidateDocument produced (nil or empty means the document is valid).
type formatter struct {
	name  string
	f     func(w io.Writer, docName string, errs []error)
	help  string
	flags *getopt.Set
}

var formatters = map[string]*formatter{}

func register(f *formatter) {
	formatters[f.name] = f
}

var stop = os.Exit

func main() {
	var format string
	formats := make([]string, 0, len(formatters))
	for k := range formatters {
		formats = append(formats, k)
	}
	sort.Strings(formats)

	var help bool
	var schema string
	var paths []string
	var ignoreCircularIncludes bool
	getopt.ListVarLong(&paths, "path", 0, "comma separated list of directories to add to the include search path", "DIR[,DIR...]")
	getopt.StringVarLong(&format, "format", 0, "format to report results: "+strings.Join(formats, ", "), "FORMAT")
	getopt.StringVarLong(&schema, "schema", 0, "Relax NG schema file to validate against", "SCHEMA")
	getopt.BoolVarLong(&ignoreCircularIncludes, "ignore-circdep", 0, "ignore circular dependencies between included schemas")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("--schema SCHEMA [FILE ...]")

	if err := getopt.Getopt(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		stop(3)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		fmt.Fprintf(os.Stderr, `
FILE may be any number of XML documents to validate. If none are given,
standard input is read and validated.

Formats:
`)
		for _, fn := range formats {
			f := formatters[fn]
			fmt.Fprintf(os.Stderr, "    %s - %s\n", f.name, f.help)
			if f.flags != nil {
				f.flags.PrintOptions(indent.NewWriter(os.Stderr, "   "))
			}
			fmt.Fprintln(os.Stderr)
		}
		stop(0)
	}

	if format == "" {
		format = "text"
	}
	rep, ok := formatters[format]
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid format.  Choices are %s\n", format, strings.Join(formats, ", "))
		stop(3)
	}

	if schema == "" {
		fmt.Fprintln(os.Stderr, "rngvalidate: --schema is required")
		getopt.PrintUsage(os.Stderr)
		stop(3)
	}

	loader := rng.NewLocalResourceLoader()
	for _, p := range paths {
		if p == "" {
			continue
		}
		loader.AddPath(p)
	}

	schemaText, canonicalURL, err := loader.Load(schema, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(3)
	}

	grammar, err := rng.Simplify(schemaText, canonicalURL, loader, rng.Options{
		IgnoreIncludeCircularDependencies: ignoreCircularIncludes,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
	}

	files := getopt.Args()

	failed := false
	if len(files) == 0 {
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(3)
		}
		if !validateOne(grammar, rep, os.Stdout, "<STDIN>", string(data)) {
			failed = true
		}
	}

	for _, name := range files {
		data, err := ioutil.ReadFile(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(3)
		}
		if !validateOne(grammar, rep, os.Stdout, name, string(data)) {
			failed = true
		}
	}

	if failed {
		stop(2)
	}
	stop(0)
}

// validateOne parses docText, validates it against grammar, and reports
// the result through rep. It returns false if the document is invalid.
func validateOne(grammar *rng.Grammar, rep *formatter, w io.Writer, docName, docText string) bool {
	root, err := rng.ReadElementTree(docText)
	if err != nil {
		rep.f(w, docName, []error{err})
		return false
	}
	walker := grammar.NewWalker(rng.NewNameResolver())
	errs := walker.ValidateDocument(root)
	rep.f(w, docName, errs)
	return len(errs) == 0
}
