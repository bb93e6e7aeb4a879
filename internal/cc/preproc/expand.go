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
	"strconv"
	"strings"

	"github.com/minic/minic/internal/cc/ppscan"
)

// maxExpansionDepth is the soft recursion cap on nested macro expansion; a
// macro whose expansion of a single token still loops after this many
// levels is left unexpanded rather than recursing forever.
const maxExpansionDepth = 32

// expandTokens walks toks left to right, substituting __LINE__/__FILE__/
// __DATE__/__TIME__ and expanding macro references. expanding guards
// against a macro expanding into itself; it is threaded explicitly through
// every recursive call rather than held as state on the Preprocessor so
// that sibling expansions (e.g. two arguments of the same call) don't see
// each other's guard.
func (p *Preprocessor) expandTokens(toks []ppscan.Token, path string, lineNo int, expanding map[string]bool, depth int) []ppscan.Token {
	if depth > maxExpansionDepth {
		return toks
	}
	var out []ppscan.Token
	i := 0
	for i < len(toks) {
		tok := toks[i]
		if tok.Kind != ppscan.Ident {
			out = append(out, tok)
			i++
			continue
		}

		switch tok.Text {
		case "__LINE__":
			out = append(out, ppscan.Token{Kind: ppscan.Number, Text: strconv.Itoa(lineNo)})
			i++
			continue
		case "__FILE__":
			out = append(out, stringizeText(path))
			i++
			continue
		case "__DATE__":
			out = append(out, stringizeText(p.builtinDate))
			i++
			continue
		case "__TIME__":
			out = append(out, stringizeText(p.builtinTime))
			i++
			continue
		}

		macro, defined := p.macros[tok.Text]
		if !defined || expanding[tok.Text] {
			out = append(out, tok)
			i++
			continue
		}

		if !macro.IsFunctionLike {
			expanding[tok.Text] = true
			out = append(out, p.expandTokens(macro.Body, path, lineNo, expanding, depth+1)...)
			expanding[tok.Text] = false
			i++
			continue
		}

		j := i + 1
		for j < len(toks) && toks[j].Kind == ppscan.Whitespace {
			j++
		}
		if j >= len(toks) || toks[j].Kind != ppscan.Punct || toks[j].Text != "(" {
			// Function-like macro named without a call: left as-is, per
			// the spec's "an argument count mismatch ... causes the
			// invocation to be emitted verbatim" rule applied to the
			// degenerate zero-call case.
			out = append(out, tok)
			i++
			continue
		}

		args, end, ok := scanArgs(toks, j)
		fixedCount := len(macro.Params)
		countOK := (!macro.IsVariadic && len(args) == fixedCount) || (macro.IsVariadic && len(args) >= fixedCount)
		if !ok || !countOK {
			out = append(out, tok)
			i++
			continue
		}

		expArgs := make([][]ppscan.Token, len(args))
		for ai, a := range args {
			expArgs[ai] = p.expandTokens(a, path, lineNo, expanding, depth+1)
		}

		var varRaw, varExpanded []ppscan.Token
		if macro.IsVariadic {
			for ai := fixedCount; ai < len(args); ai++ {
				if ai > fixedCount {
					sep := []ppscan.Token{{Kind: ppscan.Punct, Text: ","}, {Kind: ppscan.Whitespace, Text: " "}}
					varRaw = append(varRaw, sep...)
					varExpanded = append(varExpanded, sep...)
				}
				varRaw = append(varRaw, args[ai]...)
				varExpanded = append(varExpanded, expArgs[ai]...)
			}
		}

		replaced := substituteParams(macro.Body, macro.Params, args[:fixedCount], expArgs[:fixedCount], macro.IsVariadic, varRaw, varExpanded)
		expanding[tok.Text] = true
		out = append(out, p.expandTokens(replaced, path, lineNo, expanding, depth+1)...)
		expanding[tok.Text] = false
		i = end
	}
	return out
}

// scanArgs scans a balanced-parenthesis function-like macro call starting
// at toks[openParenIdx] (the '(' token), splitting top-level commas into
// separate arguments. String and character literals are already atomic
// pp-tokens, so they never confuse the comma/paren count. It returns the
// index just past the matching ')'.
func scanArgs(toks []ppscan.Token, openParenIdx int) (args [][]ppscan.Token, end int, ok bool) {
	depth := 1
	i := openParenIdx + 1
	var current []ppscan.Token
	sawSep := false
	for i < len(toks) {
		t := toks[i]
		switch {
		case t.Kind == ppscan.Punct && t.Text == "(":
			depth++
			current = append(current, t)
			i++
		case t.Kind == ppscan.Punct && t.Text == ")":
			depth--
			if depth == 0 {
				trimmed := ppscan.TrimSpace(current)
				if sawSep || len(trimmed) > 0 {
					args = append(args, trimmed)
				}
				return args, i + 1, true
			}
			current = append(current, t)
			i++
		case t.Kind == ppscan.Punct && t.Text == "," && depth == 1:
			args = append(args, ppscan.TrimSpace(current))
			current = nil
			sawSep = true
			i++
		default:
			current = append(current, t)
			i++
		}
	}
	return nil, i, false
}

// substituteParams builds a macro body's replacement text: string/char
// literals and punctuation pass through verbatim, '#'+parameter stringizes
// the raw argument, '##' pastes the non-space runs on either side into a
// single token, a bare parameter name substitutes the expanded argument,
// and __VA_ARGS__ substitutes the joined variadic tail. It is a direct
// port of the original implementation's replaceParams, adapted to operate
// on pp-tokens instead of raw characters.
func substituteParams(body []ppscan.Token, params []string, argsRaw, argsExpanded [][]ppscan.Token, variadic bool, varRaw, varExpanded []ppscan.Token) []ppscan.Token {
	rawByName := make(map[string][]ppscan.Token, len(params)+1)
	expByName := make(map[string][]ppscan.Token, len(params)+1)
	for i, name := range params {
		if i < len(argsRaw) {
			rawByName[name] = argsRaw[i]
			expByName[name] = argsExpanded[i]
		}
	}
	if variadic {
		rawByName["__VA_ARGS__"] = varRaw
		expByName["__VA_ARGS__"] = varExpanded
	}

	var out []ppscan.Token
	pendingPaste := false
	i := 0
	for i < len(body) {
		t := body[i]
		switch {
		case t.Kind == ppscan.HashHash:
			out = rtrimTokens(out)
			pendingPaste = true
			i++

		case t.Kind == ppscan.Punct && t.Text == "#":
			j := i + 1
			for j < len(body) && body[j].Kind == ppscan.Whitespace {
				j++
			}
			if j < len(body) && body[j].Kind == ppscan.Ident {
				name := body[j].Text
				var rep ppscan.Token
				if raw, isParam := rawByName[name]; isParam {
					rep = stringizeTokens(raw)
				} else {
					rep = ppscan.Token{Kind: ppscan.Punct, Text: "#" + name}
				}
				out = appendPasted(out, []ppscan.Token{rep}, &pendingPaste)
				i = j + 1
				continue
			}
			out = append(out, t)
			i++

		case t.Kind == ppscan.Ident:
			rep, isParam := expByName[t.Text]
			if !isParam {
				rep = []ppscan.Token{t}
			}
			out = appendPasted(out, rep, &pendingPaste)
			i++

		case t.Kind == ppscan.Whitespace && pendingPaste:
			i++

		default:
			out = appendPasted(out, []ppscan.Token{t}, &pendingPaste)
			i++
		}
	}
	return out
}

// appendPasted appends rep to out, honoring a pending '##': the leading
// whitespace of rep is dropped, and if a paste is pending its first token
// is merged (by concatenating text and re-scanning) with the last token
// already in out.
func appendPasted(out []ppscan.Token, rep []ppscan.Token, pendingPaste *bool) []ppscan.Token {
	rep = ltrimTokens(rep)
	if !*pendingPaste {
		return append(out, rep...)
	}
	*pendingPaste = false
	if len(rep) == 0 {
		return out
	}
	if len(out) == 0 {
		return rep
	}
	last := out[len(out)-1]
	merged := ppscan.Scan(last.Text + rep[0].Text)
	out = append(out[:len(out)-1], merged...)
	return append(out, rep[1:]...)
}

func ltrimTokens(toks []ppscan.Token) []ppscan.Token {
	i := 0
	for i < len(toks) && toks[i].Kind == ppscan.Whitespace {
		i++
	}
	return toks[i:]
}

func rtrimTokens(toks []ppscan.Token) []ppscan.Token {
	j := len(toks)
	for j > 0 && toks[j-1].Kind == ppscan.Whitespace {
		j--
	}
	return toks[:j]
}

func stringizeRaw(raw string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\\' || c == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

func stringizeTokens(toks []ppscan.Token) ppscan.Token {
	return ppscan.Token{Kind: ppscan.String, Text: stringizeRaw(ppscan.Join(ppscan.TrimSpace(toks)))}
}

func stringizeText(raw string) ppscan.Token {
	return ppscan.Token{Kind: ppscan.String, Text: stringizeRaw(raw)}
}
