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

// Package cc is the front end's single entry point: it wires the
// preprocessor, lexer, parser, sema and lowering stages into one
// Compile call and defines the narrow collaborator interfaces (FileSystem,
// ObjectEmitter) the out-of-scope driver and back-end satisfy. Nothing
// outside this package ever needs to import more than one of the internal
// stage packages directly.
package cc

import (
	"github.com/minic/minic/internal/cc/ir"
	"github.com/minic/minic/internal/cc/lexer"
	"github.com/minic/minic/internal/cc/lower"
	"github.com/minic/minic/internal/cc/parser"
	"github.com/minic/minic/internal/cc/preproc"
	"github.com/minic/minic/internal/cc/sema"
	"github.com/minic/minic/internal/diag"
)

// FileSystem is the narrow collaborator the preprocessor uses to resolve
// #include directives. The driver supplies the implementation; this
// module never calls os.Open directly. Its method set matches
// internal/cc/preproc.FileSystem exactly, so any value satisfying this
// interface also satisfies that one.
type FileSystem interface {
	// ReadFile returns a header's contents. ok is false if path does not
	// exist; err reports any other failure to read it.
	ReadFile(path string) (contents string, ok bool, err error)
	// Dir returns the directory portion of path, used to resolve a quoted
	// #include relative to its including file.
	Dir(path string) string
}

// ObjectEmitter is the narrow collaborator the (out-of-scope) back-end
// implements to consume a lowered IR module. Declared here only as the
// seam the driver is expected to satisfy; this module never implements it.
type ObjectEmitter interface {
	Emit(mod *ir.Module) error
}

// CompileRequest is the input to Compile: one translation unit's path and
// source text, plus the include-search configuration the preprocessor
// needs to resolve #include directives.
type CompileRequest struct {
	Path   string
	Source string

	FileSystem FileSystem

	IncludePaths       []string
	SystemIncludePaths []string
	// VirtualHeaders marks include paths (doublestar glob patterns) that
	// should be treated as already expanded (empty), instead of read from
	// FileSystem, letting callers reference standard headers without
	// shipping their text.
	VirtualHeaders []string
}

// Compile runs the full pipeline — preprocess, lex, parse, sema, lower —
// halting after whichever stage first leaves the returned Collector's
// HasError true, per §7's propagation rule. mod is nil whenever any stage
// failed.
func Compile(req CompileRequest) (mod *ir.Module, errs *diag.Collector) {
	errs = diag.NewCollector()

	opts := []preproc.Option{
		preproc.WithIncludePaths(req.IncludePaths...),
		preproc.WithSystemIncludePaths(req.SystemIncludePaths...),
		preproc.WithVirtualHeaders(req.VirtualHeaders...),
	}
	pp := preproc.New(req.FileSystem, errs, opts...)
	preprocessed, ok := pp.Run(req.Path, req.Source)
	if !ok || errs.HasError() {
		return nil, errs
	}

	lx := lexer.New([]byte(preprocessed), errs)
	if errs.HasError() {
		return nil, errs
	}

	p := parser.New(lx, errs)
	tu, ok := p.ParseTranslationUnit()
	if !ok || errs.HasError() {
		return nil, errs
	}

	checker := sema.New(errs)
	if !checker.Check(tu) {
		return nil, errs
	}

	return lower.Lower(tu), errs
}
