/*
 * Copyright 2026 The Lers Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package ast defines the specification AST and its parser. The grammar,
// informally:
//
//	Root        := Definitions? RuleStart Rules? RuleEnd UserCode?
//	Definitions := (Option | CCode | MacroPair | Newline)*
//	Option      := OptionStart Identifier*
//	MacroPair   := Name Pattern
//	Rules       := (Pattern Action | Newline)*
//	UserCode    := CCode
package ast

import (
	"io"

	"github.com/alecthomas/participle"
	"github.com/lexkit/lers/speclang/lexer"
)

// Parser parses lex-style specification files into a Spec.
type Parser struct {
	p *participle.Parser
}

// NewParser constructs a new parser for specification files.
func NewParser() *Parser {
	return &Parser{participle.MustBuild(&Spec{}, participle.Lexer(lexer.New()))}
}

// Parse reads a specification from r and parses it into an AST.
func (p *Parser) Parse(r io.Reader) (*Spec, error) {
	spec := &Spec{}
	return spec, p.p.Parse(r, spec)
}

// ParseString parses a specification from string s into an AST.
func (p *Parser) ParseString(s string) (*Spec, error) {
	spec := &Spec{}
	return spec, p.p.ParseString(s, spec)
}

// ParseBytes parses a specification from byte slice b into an AST.
func (p *Parser) ParseBytes(b []byte) (*Spec, error) {
	spec := &Spec{}
	return spec, p.p.ParseBytes(b, spec)
}

// String returns a string corresponding to the specification grammar.
func (p *Parser) String() string {
	return p.p.String()
}
