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
	"testing"

	"github.com/google/go-cmp/cmp"
)

const fullSource = "\n" +
	"%option noyywrap\n" +
	"/* comment */\n" +
	"%{\n" +
	"    c code block\n" +
	"%}\n" +
	"\n" +
	"digit   [0-9]\n" +
	"number  {digit}+\n" +
	"%%\n" +
	"\n" +
	"pattern1    { action1(); }\n" +
	"pattern2    { action2(); }\n" +
	"pattern3    { action3(); }\n" +
	"\n" +
	"%%\n" +
	"\n" +
	"/* user code */\n" +
	"void helper() {}"

func TestParse(t *testing.T) {
	spec, err := NewParser().ParseString(fullSource)
	if err != nil {
		t.Fatal("Unexpected parse error: ", err)
	}

	if diff := cmp.Diff([]string{"noyywrap"}, spec.Definitions.Options()); diff != "" {
		t.Error("Unexpected options:\n", diff)
	}
	prelude, ok := spec.Definitions.PreludeCode()
	if !ok {
		t.Error("Expected a definition prelude")
	}
	if diff := cmp.Diff("    c code block", prelude); diff != "" {
		t.Error("Unexpected prelude:\n", diff)
	}
	wantMacros := []MacroDef{
		{Name: "digit", Pattern: "[0-9]"},
		{Name: "number", Pattern: "{digit}+"},
	}
	if diff := cmp.Diff(wantMacros, spec.Definitions.Macros()); diff != "" {
		t.Error("Unexpected macros:\n", diff)
	}

	pairs := spec.RulePairs()
	if len(pairs) != 3 {
		t.Fatalf("Expected 3 rules, got %d", len(pairs))
	}
	wantPatterns := []string{"pattern1", "pattern2", "pattern3"}
	wantActions := []string{"{ action1(); }", "{ action2(); }", "{ action3(); }"}
	for i, pair := range pairs {
		if pair.Pattern != wantPatterns[i] || pair.Action != wantActions[i] {
			t.Errorf("Unexpected rule %d: %q %q", i, pair.Pattern, pair.Action)
		}
	}

	if spec.UserCode == nil {
		t.Fatal("Expected a user code section")
	}
	if diff := cmp.Diff("\n\n/* user code */\nvoid helper() {}", spec.UserCode.Text); diff != "" {
		t.Error("Unexpected user code:\n", diff)
	}
}

func TestParseEmptySections(t *testing.T) {
	spec, err := NewParser().ParseString("%%\n%%\n")
	if err != nil {
		t.Fatal("Unexpected parse error: ", err)
	}
	if spec.Definitions != nil && len(spec.Definitions.Entries) > 0 {
		t.Error("Expected no definition entries")
	}
	if len(spec.RulePairs()) != 0 {
		t.Error("Expected no rules")
	}
	if spec.UserCode == nil || spec.UserCode.Text != "\n" {
		t.Errorf("Expected the trailing newline as user code, got %#v", spec.UserCode)
	}
}

func TestParseRuleOrder(t *testing.T) {
	source := "%%\n" +
		"if      { keyword(); }\n" +
		"[a-z]+  { ident(); }\n" +
		"%%\n"
	spec, err := NewParser().ParseString(source)
	if err != nil {
		t.Fatal("Unexpected parse error: ", err)
	}
	pairs := spec.RulePairs()
	want := []string{"if", "[a-z]+"}
	for i, pair := range pairs {
		if pair.Pattern != want[i] {
			t.Errorf("Rule %d out of order: got %q, want %q", i, pair.Pattern, want[i])
		}
	}
}

func TestParseMissingAction(t *testing.T) {
	if _, err := NewParser().ParseString("%%\npattern\n%%\n"); err == nil {
		t.Error("Expected an error for a pattern with no action")
	}
}

func TestParseMissingMacroPattern(t *testing.T) {
	if _, err := NewParser().ParseString("\nname\n%%\n%%\n"); err == nil {
		t.Error("Expected an error for a macro name with no pattern")
	}
}

func TestParseLaterPreludeWins(t *testing.T) {
	source := "%{\nfirst\n%}\n%{\nsecond\n%}\n%%\n%%\n"
	spec, err := NewParser().ParseString(source)
	if err != nil {
		t.Fatal("Unexpected parse error: ", err)
	}
	prelude, ok := spec.Definitions.PreludeCode()
	if !ok || prelude != "second" {
		t.Errorf("Expected the later prelude to win, got %q (%v)", prelude, ok)
	}
}
