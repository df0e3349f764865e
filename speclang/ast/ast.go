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

package ast

import (
	"bitbucket.org/creachadair/stringset"
	"github.com/alecthomas/participle/lexer"
)

// Spec is the root of a specification AST. All three sections are optional;
// the RuleStart/RuleEnd markers separating them are always present in the
// token stream.
type Spec struct {
	Definitions *Definitions `@@? RuleStart`
	Rules       *Rules       `@@? RuleEnd`
	UserCode    *UserCode    `@@?`
}

// Definitions is the first section: %option lines, an optional verbatim C
// prelude and named pattern macros, in any order.
type Definitions struct {
	Entries []DefinitionEntry `( @@ | Newline )+`
}

// DefinitionEntry is a union production for one definitions-section item.
type DefinitionEntry struct {
	Pos lexer.Position

	Option  *OptionLine `  @@`
	Prelude *Prelude    `| @@`
	Macro   *MacroDef   `| @@`
}

// OptionLine is a %option keyword followed by zero or more option names.
type OptionLine struct {
	Names []string `OptionStart ( @Identifier )*`
}

// Prelude is a %{ ... %} block copied verbatim into the generated output.
type Prelude struct {
	Code string `@CCode`
}

// MacroDef binds a name to a pattern fragment usable as {name} inside rule
// patterns.
type MacroDef struct {
	Name    string `@Name`
	Pattern string `@Pattern`
}

// Rules is the second section: an ordered list of pattern/action pairs.
// Declaration order is rule priority; the earliest rule wins a longest-match
// tie in the generated scanner.
type Rules struct {
	Pairs []RulePair `( @@ | Newline )+`
}

// RulePair is one pattern with its braced C action.
type RulePair struct {
	Pos lexer.Position

	Pattern string `@Pattern`
	Action  string `@Action`
}

// UserCode is the third section, copied verbatim into the generated output.
type UserCode struct {
	Text string `@CCode`
}

// Options returns every option name declared across all %option lines, in order.
func (d *Definitions) Options() []string {
	if d == nil {
		return nil
	}
	var names []string
	for _, e := range d.Entries {
		if e.Option != nil {
			names = append(names, e.Option.Names...)
		}
	}
	return names
}

// PreludeCode returns the verbatim C prelude, with later %{ %} blocks
// overwriting earlier ones. The second result reports whether any block was
// present.
func (d *Definitions) PreludeCode() (string, bool) {
	if d == nil {
		return "", false
	}
	code, ok := "", false
	for _, e := range d.Entries {
		if e.Prelude != nil {
			code, ok = e.Prelude.Code, true
		}
	}
	return code, ok
}

// Macros returns the declared macros in declaration order.
func (d *Definitions) Macros() []MacroDef {
	if d == nil {
		return nil
	}
	var macros []MacroDef
	for _, e := range d.Entries {
		if e.Macro != nil {
			macros = append(macros, *e.Macro)
		}
	}
	return macros
}

// MacroNames returns the set of declared macro names.
func (d *Definitions) MacroNames() stringset.Set {
	var names []string
	for _, m := range d.Macros() {
		names = append(names, m.Name)
	}
	return stringset.New(names...)
}

// RulePairs returns the declared rules in declaration order.
func (s *Spec) RulePairs() []RulePair {
	if s.Rules == nil {
		return nil
	}
	return s.Rules.Pairs
}
