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

package main

import (
	"fmt"
	"io"
)

func init() {
	register(&formatter{
		name: "text",
		f:    doText,
		help: "report one line per document, and one per error",
	})
}

// doText writes "docName: ok" for a valid document, or "docName: invalid"
// followed by one indented line per error otherwise.
func doText(w io.Writer, docName string, errs []error) {
	if len(errs) == 0 {
		fmt.Fprintf(w, "%s: ok\n", docName)
		return
	}
	fmt.Fprintf(w, "%s: invalid\n", docName)
	for _, err := range errs {
		fmt.Fprintf(w, "  %v\n", err)
	}
}
