// Copyright 2025 EngFlow Inc. All rights reserved.
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

package preproc

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileSystem is the narrow collaborator the preprocessor uses to resolve
// #include directives. The driver supplies the implementation; this
// package never calls os.Open itself.
type FileSystem interface {
	// ReadFile returns a header's contents. ok is false if path does not
	// exist; err reports any other failure to read it.
	ReadFile(path string) (contents string, ok bool, err error)
	// Dir returns the directory portion of path, the same way filepath.Dir
	// would, used to resolve a quoted #include relative to its including file.
	Dir(path string) string
}

// VirtualHeaders is a set of doublestar glob patterns (matched with
// doublestar.MatchUnvalidated, the same API the teacher pack uses for
// include/exclude filtering) checked against a resolved include path. A
// match is treated as an already-expanded header — its content is the
// empty string — instead of being read from the FileSystem, so test
// fixtures can reference standard headers without shipping their text.
type VirtualHeaders []string

func (v VirtualHeaders) matches(resolved string) bool {
	for _, pattern := range v {
		if doublestar.MatchUnvalidated(pattern, resolved) {
			return true
		}
	}
	return false
}

func isAbsoluteIncludePath(p string) bool {
	if p == "" {
		return false
	}
	if p[0] == '/' {
		return true
	}
	return len(p) >= 2 && isAlphaByte(p[0]) && p[1] == ':'
}

func isAlphaByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// resolveInclude searches, in order, the including file's own directory
// (quoted includes only), the configured include paths, and finally the
// system include paths.
func (p *Preprocessor) resolveInclude(header string, isSystem bool, currentPath string) (resolved, contents string, ok bool) {
	if p.virtualHeaders.matches(header) {
		return header, "", true
	}
	if isAbsoluteIncludePath(header) {
		if text, found, err := p.fs.ReadFile(header); found && err == nil {
			return header, text, true
		}
		return "", "", false
	}

	var searchDirs []string
	if !isSystem {
		if dir := p.fs.Dir(currentPath); dir != "" {
			searchDirs = append(searchDirs, dir)
		}
	}
	searchDirs = append(searchDirs, p.includePaths...)
	searchDirs = append(searchDirs, p.systemIncludePaths...)

	for _, dir := range searchDirs {
		full := dir
		if full != "" && !strings.HasSuffix(full, "/") {
			full += "/"
		}
		full = path.Clean(full + header)
		if p.virtualHeaders.matches(full) {
			return full, "", true
		}
		if text, found, err := p.fs.ReadFile(full); found && err == nil {
			return full, text, true
		}
	}
	return "", "", false
}
