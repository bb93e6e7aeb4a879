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

// Package preproc implements the C preprocessor: macro expansion,
// conditional compilation, and #include resolution. It consumes pp-tokens
// from internal/cc/ppscan and produces preprocessed source text for
// internal/cc/lexer.
package preproc

import "github.com/minic/minic/internal/cc/ppscan"

// Macro is a single #define'd name: object-like if Params is nil and
// IsFunctionLike is false, function-like otherwise.
type Macro struct {
	Name           string
	IsFunctionLike bool
	IsVariadic     bool
	Params         []string
	Body           []ppscan.Token
}

func bodyText(toks []ppscan.Token) string { return ppscan.Join(toks) }
