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
	"strings"
	"time"

	"github.com/minic/minic/internal/cc/ppscan"
	"github.com/minic/minic/internal/diag"
)

// Preprocessor expands #include, #define/#undef, conditional-compilation
// directives, and macro references over a translation unit, producing
// preprocessed source text ready for internal/cc/lexer. One Preprocessor
// handles one translation unit; its macro table and #include search paths
// persist across the nested files #include pulls in.
type Preprocessor struct {
	fs                 FileSystem
	includePaths       []string
	systemIncludePaths []string
	virtualHeaders     VirtualHeaders
	errs               *diag.Collector

	macros      map[string]*Macro
	builtinDate string
	builtinTime string
}

// Option configures a Preprocessor at construction time.
type Option func(*Preprocessor)

// WithIncludePaths adds user include search directories, searched for both
// quoted and angle-bracket includes (after the including file's own
// directory, which only quoted includes search).
func WithIncludePaths(paths ...string) Option {
	return func(p *Preprocessor) { p.includePaths = append(p.includePaths, paths...) }
}

// WithSystemIncludePaths adds system include search directories, searched
// for both quoted and angle-bracket includes after the user include paths.
func WithSystemIncludePaths(paths ...string) Option {
	return func(p *Preprocessor) { p.systemIncludePaths = append(p.systemIncludePaths, paths...) }
}

// WithVirtualHeaders marks include paths matching any of the given
// doublestar patterns as already expanded, skipping the FileSystem read.
func WithVirtualHeaders(patterns ...string) Option {
	return func(p *Preprocessor) { p.virtualHeaders = append(p.virtualHeaders, patterns...) }
}

// New returns a Preprocessor that resolves #include against fs, reporting
// diagnostics to errs. __DATE__ and __TIME__ are captured once, at
// construction time.
func New(fs FileSystem, errs *diag.Collector, opts ...Option) *Preprocessor {
	now := time.Now()
	p := &Preprocessor{
		fs:          fs,
		errs:        errs,
		macros:      make(map[string]*Macro),
		builtinDate: now.Format("Jan _2 2006"),
		builtinTime: now.Format("15:04:05"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run preprocesses source (notionally read from path) and returns the
// expanded text. ok is false once any diagnostic has been reported to
// errs; the returned text is still whatever was produced before the
// failure, for best-effort recovery by the caller.
func (p *Preprocessor) Run(path, source string) (text string, ok bool) {
	var out strings.Builder
	ok = p.processFile(path, source, &out)
	return out.String(), ok
}

func (p *Preprocessor) processFile(path, source string, out *strings.Builder) bool {
	return p.processLines(path, source, out)
}

func (p *Preprocessor) processLines(path, source string, out *strings.Builder) bool {
	lines := strings.Split(source, "\n")
	// strings.Split of text ending in "\n" yields a trailing "" with no
	// corresponding line; std::getline-style iteration wouldn't see it.
	if strings.HasSuffix(source, "\n") && len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	var ifs []condFrame
	ok := true
	for idx, line := range lines {
		lineNo := idx + 1
		trimmed := strings.TrimLeft(line, " \t")
		indent := len(line) - len(trimmed)
		if len(trimmed) > 0 && trimmed[0] == '#' {
			if !p.handleDirective(path, lineNo, indent+1, trimmed[1:], &ifs, out) {
				ok = false
			}
			continue
		}

		active := true
		if n := len(ifs); n > 0 {
			active = ifs[n-1].active()
		}
		if active {
			out.WriteString(p.expandLine(line, path, lineNo))
			out.WriteByte('\n')
		}
	}

	if len(ifs) > 0 {
		p.errs.Errorf(diag.Location{Line: len(lines) + 1, Column: 1}, "unterminated conditional directive")
		ok = false
	}
	return ok
}

// expandLine macro-expands one logical source line, leaving any trailing
// "//" comment untouched (and, like the text it was grounded on, unaware
// that "//" can legitimately appear inside a string literal).
func (p *Preprocessor) expandLine(line, path string, lineNo int) string {
	code := line
	comment := ""
	if idx := strings.Index(line, "//"); idx >= 0 {
		code = line[:idx]
		comment = line[idx:]
	}
	toks := ppscan.Scan(code)
	expanded := p.expandTokens(toks, path, lineNo, map[string]bool{}, 0)
	return ppscan.Join(expanded) + comment
}

func (p *Preprocessor) evalIf(expr string) (bool, error) {
	ast, err := evalIfExprAST(expr)
	if err != nil {
		return false, err
	}
	v, err := ast.eval(p)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// handleDirective parses and executes a single "#..." line. hashCol is the
// 1-based column of the '#' character itself, used to anchor diagnostic
// locations within lineText (the text following '#', not yet trimmed).
func (p *Preprocessor) handleDirective(path string, lineNo, hashCol int, lineText string, ifs *[]condFrame, out *strings.Builder) bool {
	i := 0
	for i < len(lineText) && isSpaceByte(lineText[i]) {
		i++
	}
	start := i
	for i < len(lineText) && isIdentCont(lineText[i]) {
		i++
	}
	directive := lineText[start:i]
	for i < len(lineText) && isSpaceByte(lineText[i]) {
		i++
	}

	col := func(at int) diag.Location { return diag.Location{Line: lineNo, Column: hashCol + 1 + at} }

	active := true
	if n := len(*ifs); n > 0 {
		active = (*ifs)[n-1].active()
	}

	switch directive {
	case "include":
		return p.handleInclude(path, lineText, i, active, col, out)
	case "define":
		if !active {
			return true
		}
		return p.handleDefine(lineText, i, col)
	case "undef":
		if !active {
			return true
		}
		if i >= len(lineText) || !isIdentStart(lineText[i]) {
			p.errs.Errorf(col(i), "expected macro name")
			return false
		}
		nameStart := i
		for i < len(lineText) && isIdentCont(lineText[i]) {
			i++
		}
		delete(p.macros, lineText[nameStart:i])
		return true

	case "ifdef", "ifndef":
		if i >= len(lineText) || !isIdentStart(lineText[i]) {
			p.errs.Errorf(col(i), "expected macro name")
			return false
		}
		nameStart := i
		for i < len(lineText) && isIdentCont(lineText[i]) {
			i++
		}
		name := lineText[nameStart:i]
		_, defined := p.macros[name]
		cond := defined
		if directive == "ifndef" {
			cond = !defined
		}
		*ifs = append(*ifs, condFrame{ParentActive: active, Condition: cond, Taken: cond})
		return true

	case "if":
		if !active {
			*ifs = append(*ifs, condFrame{ParentActive: active})
			return true
		}
		cond, err := p.evalIf(lineText[i:])
		if err != nil {
			p.errs.Errorf(col(i), "%s", err)
			return false
		}
		*ifs = append(*ifs, condFrame{ParentActive: active, Condition: cond, Taken: cond})
		return true

	case "elif":
		if len(*ifs) == 0 {
			p.errs.Errorf(col(0), "unexpected #elif")
			return false
		}
		st := &(*ifs)[len(*ifs)-1]
		if st.InElse {
			p.errs.Errorf(col(0), "unexpected #elif after #else")
			return false
		}
		cond := false
		if st.ParentActive && !st.Taken {
			var err error
			cond, err = p.evalIf(lineText[i:])
			if err != nil {
				p.errs.Errorf(col(i), "%s", err)
				return false
			}
		}
		st.Condition = cond && st.ParentActive && !st.Taken
		st.Taken = st.Taken || st.Condition
		return true

	case "else":
		if len(*ifs) == 0 {
			p.errs.Errorf(col(0), "unexpected #else")
			return false
		}
		st := &(*ifs)[len(*ifs)-1]
		if st.InElse {
			p.errs.Errorf(col(0), "duplicate #else")
			return false
		}
		st.InElse = true
		st.Condition = st.ParentActive && !st.Taken
		st.Taken = true
		return true

	case "endif":
		if len(*ifs) == 0 {
			p.errs.Errorf(col(0), "unexpected #endif")
			return false
		}
		*ifs = (*ifs)[:len(*ifs)-1]
		return true

	case "":
		return true
	}

	p.errs.Errorf(col(start), "unknown preprocessor directive")
	return false
}

func (p *Preprocessor) handleInclude(path, lineText string, i int, active bool, col func(int) diag.Location, out *strings.Builder) bool {
	if !active {
		return true
	}
	if i >= len(lineText) {
		p.errs.Errorf(col(i), "expected header")
		return false
	}
	delim := lineText[i]
	if delim != '"' && delim != '<' {
		p.errs.Errorf(col(i), "expected '\"' or '<' after include")
		return false
	}
	closing := byte('"')
	if delim == '<' {
		closing = '>'
	}
	i++
	nameStart := i
	for i < len(lineText) && lineText[i] != closing {
		i++
	}
	if i >= len(lineText) {
		p.errs.Errorf(col(nameStart), "unterminated include path")
		return false
	}
	header := lineText[nameStart:i]
	resolved, contents, found := p.resolveInclude(header, delim == '<', path)
	if !found {
		p.errs.Errorf(col(nameStart), "include file not found: %s", header)
		return false
	}
	return p.processFile(resolved, contents, out)
}

func (p *Preprocessor) handleDefine(lineText string, i int, col func(int) diag.Location) bool {
	if i >= len(lineText) || !isIdentStart(lineText[i]) {
		p.errs.Errorf(col(i), "expected macro name")
		return false
	}
	nameStart := i
	for i < len(lineText) && isIdentCont(lineText[i]) {
		i++
	}
	name := lineText[nameStart:i]
	macro := &Macro{Name: name}

	if i < len(lineText) && lineText[i] == '(' {
		macro.IsFunctionLike = true
		i++
		for i < len(lineText) {
			for i < len(lineText) && isSpaceByte(lineText[i]) {
				i++
			}
			if i < len(lineText) && lineText[i] == ')' {
				i++
				break
			}
			if strings.HasPrefix(lineText[i:], "...") {
				macro.IsVariadic = true
				i += 3
				for i < len(lineText) && isSpaceByte(lineText[i]) {
					i++
				}
				if i < len(lineText) && lineText[i] == ')' {
					i++
					break
				}
				if i >= len(lineText) {
					p.errs.Errorf(col(i), "unterminated macro parameters")
					return false
				}
				p.errs.Errorf(col(i), "expected ')'")
				return false
			}
			if i >= len(lineText) || !isIdentStart(lineText[i]) {
				p.errs.Errorf(col(i), "expected parameter name")
				return false
			}
			pStart := i
			i++
			for i < len(lineText) && isIdentCont(lineText[i]) {
				i++
			}
			macro.Params = append(macro.Params, lineText[pStart:i])
			for i < len(lineText) && isSpaceByte(lineText[i]) {
				i++
			}
			if i < len(lineText) && lineText[i] == ',' {
				i++
				continue
			}
			if i < len(lineText) && lineText[i] == ')' {
				i++
				break
			}
			if i >= len(lineText) {
				p.errs.Errorf(col(i), "unterminated macro parameters")
				return false
			}
			p.errs.Errorf(col(i), "expected ',' or ')'")
			return false
		}
	}

	for i < len(lineText) && isSpaceByte(lineText[i]) {
		i++
	}
	body := ""
	if i < len(lineText) {
		body = lineText[i:]
	}
	macro.Body = ppscan.Scan(body)
	p.macros[name] = macro
	return true
}
