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

// Package lexer implements a participle Lexer for lex-style scanner
// specifications. A specification has three sections separated by the
// literal delimiter %%: definitions, rules and user code. Each section is
// tokenized under its own rules table, and synthetic RuleStart/RuleEnd
// markers are emitted at the section boundaries so the whole file parses
// as one token stream.
package lexer

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"

	"github.com/alecthomas/participle/lexer"
	"github.com/lexkit/lers/speclang/lexer/rules"
)

// ErrMalformedInput is returned when the input has fewer than two %% delimiters.
var ErrMalformedInput = errors.New("specification must contain two %% section delimiters")

const (
	_ rune = lexer.EOF - iota
	OptionStart
	Identifier
	CCode
	Name
	Pattern
	Action
	Newline
	RuleStart
	RuleEnd
)

var tokenNames = map[rune]string{
	lexer.EOF:   "EOF",
	OptionStart: "OptionStart",
	Identifier:  "Identifier",
	CCode:       "CCode",
	Name:        "Name",
	Pattern:     "Pattern",
	Action:      "Action",
	Newline:     "Newline",
	RuleStart:   "RuleStart",
	RuleEnd:     "RuleEnd",
}

var tokenSyms = make(map[string]rune)

func init() {
	for kind, name := range tokenNames {
		tokenSyms[name] = kind
	}
}

const (
	initialCondition rules.StartCondition = rules.InitialCondition + iota
	optionCondition
)

var sectionDelim = []byte("%%")

// definitionTable tokenizes the definitions section. A %option keyword
// switches to the exclusive option condition for the rest of its line, where
// bare words are option names rather than patterns. A macro name is only
// recognized at the start of a line; the leading newline is consumed as part
// of the match and stripped from the token value.
var definitionTable = rules.New(
	rules.ExclusiveConditions(optionCondition),
	rules.In().Match(`%option`, lexOptionStart),
	rules.In().Match(`(?s)%\{\n.*?\n%}`, lexPrelude),
	rules.In().Match(`\n[A-Za-z_][A-Za-z0-9_]*`, lexMacroName),
	// Comments tie with the pattern rule on their opening bytes, so they
	// must be tried first.
	rules.In().Match(`(?s)/\*.*?\*/`, lexSkip),
	rules.In().Match(`([^\s\[]|\[[^\]]+\])+`, lexPattern),
	rules.In().Match(`\n`, lexNewline),
	rules.In().Match(`[ \t]+`, lexSkip),
	rules.In().Match(rules.EOFPattern, lexEOF),
	rules.In(optionCondition).Match(`[A-Za-z]+`, lexIdentifier),
	rules.In(optionCondition).Match(`[ \t]+`, lexSkip),
	// A macro name directly after an option line claims its leading
	// newline, so it must be recognizable here too.
	rules.In(optionCondition).Match(`\n[A-Za-z_][A-Za-z0-9_]*`, lexMacroNameExit),
	rules.In(optionCondition).Match(`\n`, lexOptionEnd),
	rules.In(optionCondition).Match(rules.EOFPattern, lexEOF),
)

// ruleTable tokenizes the rules section. A pattern must start its line and
// consumes the leading newline; an action is a single {...} block with no
// nested closing brace.
var ruleTable = rules.New(
	rules.In().Match(`(?s)/\*.*?\*/`, lexSkip),
	rules.In().Match(`\n([^\s\[]|\[[^\]]+\])+`, lexRulePattern),
	rules.In().Match(`(?s)\{[^}]*}`, lexAction),
	rules.In().Match(`\n`, lexNewline),
	rules.In().Match(`[ \t]+`, lexSkip),
	rules.In().Match(rules.EOFPattern, lexEOF),
)

// New returns a new lexer.Definition for lex-style specification files.
func New() lexer.Definition {
	return &lersDefinition{}
}

type lersDefinition struct{}

// Lex implements lexer.Definition for specification files.
func (lersDefinition) Lex(reader io.Reader) (lexer.Lexer, error) {
	source, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return NewSectionLexer(source, lexer.NameOfReader(reader))
}

// Symbols implements lexer.Definition for specification files.
func (lersDefinition) Symbols() map[string]rune {
	return tokenSyms
}

// SectionLexer yields the unified token stream for all three sections,
// inserting RuleStart between sections one and two and RuleEnd between
// sections two and three.
type SectionLexer struct {
	subs    [3]lexer.Lexer
	section int
	pos     lexer.Position
}

// NewSectionLexer splits source on the literal %% delimiter and prepares the
// per-section lexers. It fails with ErrMalformedInput unless exactly three
// sections are produced.
func NewSectionLexer(source []byte, filename string) (*SectionLexer, error) {
	sections := bytes.SplitN(source, sectionDelim, 3)
	if len(sections) < 3 {
		return nil, ErrMalformedInput
	}
	pos := lexer.Position{Filename: filename, Line: 1, Column: 1}
	l := &SectionLexer{}
	l.subs[0] = newTableLexer(definitionTable, sections[0], pos)
	pos = rules.AdvancePosition(pos, sections[0])
	pos = rules.AdvancePosition(pos, sectionDelim)
	l.subs[1] = newTableLexer(ruleTable, sections[1], pos)
	pos = rules.AdvancePosition(pos, sections[1])
	pos = rules.AdvancePosition(pos, sectionDelim)
	l.subs[2] = newVerbatimLexer(sections[2], pos)
	l.pos = pos
	return l, nil
}

// Next implements lexer.Lexer for *SectionLexer.
func (l *SectionLexer) Next() (lexer.Token, error) {
	for l.section < len(l.subs) {
		tok, err := l.subs[l.section].Next()
		if err != nil {
			return tok, err
		}
		if tok.Type != lexer.EOF {
			return tok, nil
		}
		l.section++
		switch l.section {
		case 1:
			return lexer.Token{Type: RuleStart, Value: "%%", Pos: tok.Pos}, nil
		case 2:
			return lexer.Token{Type: RuleEnd, Value: "%%", Pos: tok.Pos}, nil
		}
	}
	return lexer.EOFToken(l.pos), nil
}

// tableLexer drives a rules.Scanner, invoking the selected actions until one
// of them completes a token.
type tableLexer struct {
	s   *rules.Scanner
	tok lexer.Token
}

// driver exposes the ScanState interface to action callbacks without making
// it part of the tableLexer API.
type driver tableLexer

func newTableLexer(table *rules.Rules, data []byte, pos lexer.Position) *tableLexer {
	s := rules.NewScanner(table, data)
	s.SetPosition(pos)
	return &tableLexer{s: s}
}

// Next implements lexer.Lexer for *tableLexer.
func (l *tableLexer) Next() (lexer.Token, error) {
	for {
		start := l.s.Pos()
		if !l.s.Scan() {
			if err := l.s.Err(); err != nil {
				return lexer.EOFToken(l.s.Pos()), err
			}
			return lexer.EOFToken(l.s.Pos()), nil
		}
		l.tok = lexer.Token{Pos: start}
		done, err := l.s.Action()((*driver)(l))
		if err != nil {
			return lexer.EOFToken(l.s.Pos()), err
		}
		if done {
			return l.tok, nil
		}
	}
}

func (d *driver) Begin(cond rules.StartCondition) {
	d.s.Begin(cond)
}

func (d *driver) Bytes() []byte {
	return d.s.Bytes()
}

func (d *driver) Token() *lexer.Token {
	return &d.tok
}

// verbatimLexer yields the user code section as a single CCode token.
type verbatimLexer struct {
	tok  lexer.Token
	pos  lexer.Position
	done bool
}

func newVerbatimLexer(data []byte, pos lexer.Position) *verbatimLexer {
	l := &verbatimLexer{pos: rules.AdvancePosition(pos, data)}
	if len(data) == 0 {
		l.done = true
		return l
	}
	l.tok = lexer.Token{Type: CCode, Value: string(data), Pos: pos}
	return l
}

// Next implements lexer.Lexer for *verbatimLexer.
func (l *verbatimLexer) Next() (lexer.Token, error) {
	if l.done {
		return lexer.EOFToken(l.pos), nil
	}
	l.done = true
	return l.tok, nil
}

func lexOptionStart(d rules.ScanState) (bool, error) {
	setValue(d.Token(), OptionStart, string(d.Bytes()))
	d.Begin(optionCondition)
	return true, nil
}

func lexOptionEnd(d rules.ScanState) (bool, error) {
	setValue(d.Token(), Newline, string(d.Bytes()))
	d.Begin(initialCondition)
	return true, nil
}

func lexIdentifier(d rules.ScanState) (bool, error) {
	setValue(d.Token(), Identifier, string(d.Bytes()))
	return true, nil
}

func lexPrelude(d rules.ScanState) (bool, error) {
	// Strip the %{\n and \n%} delimiters.
	text := d.Bytes()
	setValue(d.Token(), CCode, string(text[3:len(text)-3]))
	return true, nil
}

func lexMacroName(d rules.ScanState) (bool, error) {
	// Strip the leading newline.
	setValue(d.Token(), Name, string(d.Bytes()[1:]))
	return true, nil
}

func lexMacroNameExit(d rules.ScanState) (bool, error) {
	d.Begin(initialCondition)
	return lexMacroName(d)
}

func lexPattern(d rules.ScanState) (bool, error) {
	setValue(d.Token(), Pattern, string(d.Bytes()))
	return true, nil
}

func lexRulePattern(d rules.ScanState) (bool, error) {
	// Strip the leading newline.
	setValue(d.Token(), Pattern, string(d.Bytes()[1:]))
	return true, nil
}

func lexAction(d rules.ScanState) (bool, error) {
	setValue(d.Token(), Action, string(d.Bytes()))
	return true, nil
}

func lexNewline(d rules.ScanState) (bool, error) {
	setValue(d.Token(), Newline, string(d.Bytes()))
	return true, nil
}

func lexSkip(d rules.ScanState) (bool, error) {
	return false, nil
}

func lexEOF(d rules.ScanState) (bool, error) {
	*d.Token() = lexer.EOFToken(d.Token().Pos)
	return true, nil
}

func setValue(t *lexer.Token, kind rune, value string) {
	t.Type = kind
	t.Value = value
}
