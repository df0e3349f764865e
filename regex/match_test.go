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

package regex

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustBuild(t *testing.T, pattern string) *NFA {
	t.Helper()
	nfa, err := Build(pattern)
	if err != nil {
		t.Fatalf("Build(%q) failed: %v", pattern, err)
	}
	return nfa
}

func TestMatchFull(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"abc", "abc", true},
		{"abc", "ab", false},
		{"abc", "abcd", false},
		{"a*", "", true},
		{"a*", "aaaa", true},
		{"a+", "", false},
		{"a+", "aaa", true},
		{"a|b", "a", true},
		{"a|b", "b", true},
		{"a|b", "c", false},
		{"(a|b)*c", "ababc", true},
		{"(a|b)*c", "abab", false},
		{"[0-9]+", "2026", true},
		{"[0-9]+", "20x6", false},
		{"[^0-9]", "x", true},
		{"[^0-9]", "5", false},
		{".", "x", true},
		{".", "\n", false},
		{"\\n", "\n", true},
		{"\\t", "\t", true},
		{"\\*", "*", true},
		{"\\*", "a", false},
		{"a\\|b", "a|b", true},
		{"^", "^", true},
		{"[a-fA-F]", "D", true},
		{"[a-fA-F]", "g", false},
		{"[.]", ".", true},
		{"[.]", "x", false},
	}
	for _, test := range tests {
		nfa := mustBuild(t, test.pattern)
		if got := nfa.MatchFull([]byte(test.input)); got != test.want {
			t.Errorf("MatchFull(%q, %q) = %v, want %v", test.pattern, test.input, got, test.want)
		}
	}
}

func TestPlusCompilesDisjointCopies(t *testing.T) {
	// X+ duplicates X; both copies must behave identically.
	nfa := mustBuild(t, "(ab)+")
	for input, want := range map[string]bool{
		"":       false,
		"ab":     true,
		"abab":   true,
		"ababab": true,
		"aba":    false,
	} {
		if got := nfa.MatchFull([]byte(input)); got != want {
			t.Errorf("MatchFull((ab)+, %q) = %v, want %v", input, got, want)
		}
	}
}

// scanAll drives Match the way the generated scanner's yylex loop does,
// formatting each emitted token as text|rule.
func scanAll(t *testing.T, patterns []string, input string) []string {
	t.Helper()
	nfa, err := BuildMany(patterns)
	if err != nil {
		t.Fatalf("BuildMany(%q) failed: %v", patterns, err)
	}
	var got []string
	rest := []byte(input)
	for len(rest) > 0 {
		text, rule, consumed := nfa.Match(rest)
		if consumed == 0 {
			t.Fatalf("Scanner made no progress on %q", rest)
		}
		rest = rest[consumed:]
		if rule >= 0 {
			got = append(got, fmt.Sprintf("%s|%d", text, rule))
		}
	}
	return got
}

func TestScanSingleLiteral(t *testing.T) {
	got := scanAll(t, []string{"abc"}, "abcabc")
	if diff := cmp.Diff([]string{"abc|0", "abc|0"}, got); diff != "" {
		t.Error("Unexpected scan:\n", diff)
	}
}

func TestScanClassAndKleene(t *testing.T) {
	got := scanAll(t, []string{"[0-9]+", ".|\\n"}, "x12 3")
	if diff := cmp.Diff([]string{"x|1", "12|0", " |1", "3|0"}, got); diff != "" {
		t.Error("Unexpected scan:\n", diff)
	}
}

func TestScanLongestMatchBeatsEarliest(t *testing.T) {
	got := scanAll(t, []string{"if", "[a-z]+"}, "iffy")
	if diff := cmp.Diff([]string{"iffy|1"}, got); diff != "" {
		t.Error("Unexpected scan:\n", diff)
	}
}

func TestScanEarliestBreaksLengthTie(t *testing.T) {
	// Both rules match "if" with length two; the space matches neither and
	// is discarded.
	got := scanAll(t, []string{"if", "[a-z]+"}, "if ")
	if diff := cmp.Diff([]string{"if|0"}, got); diff != "" {
		t.Error("Unexpected scan:\n", diff)
	}
}

func TestScanExpandedMacroPatterns(t *testing.T) {
	got := scanAll(t, []string{"[0-9]+"}, "42 7")
	if diff := cmp.Diff([]string{"42|0", "7|0"}, got); diff != "" {
		t.Error("Unexpected scan:\n", diff)
	}
}

func TestScanAlternationAndGrouping(t *testing.T) {
	got := scanAll(t, []string{"(ab|cd)*e"}, "abcde")
	if diff := cmp.Diff([]string{"abcde|0"}, got); diff != "" {
		t.Error("Unexpected scan:\n", diff)
	}
}

func TestMatchLongestCommitsOnDeath(t *testing.T) {
	// The simulation overruns the committed match while a longer rule is
	// still live; the cursor stops at the byte that killed it.
	nfa, err := BuildMany([]string{"ab", "abcx"})
	if err != nil {
		t.Fatal("Unexpected build error: ", err)
	}
	text, rule, consumed := nfa.Match([]byte("abcy"))
	if string(text) != "ab" || rule != 0 {
		t.Errorf("Expected ab|0, got %q|%d", text, rule)
	}
	if consumed != 3 {
		t.Errorf("Expected the cursor at 3, got %d", consumed)
	}
}

func TestMatchNothing(t *testing.T) {
	nfa, err := BuildMany([]string{"[0-9]+"})
	if err != nil {
		t.Fatal("Unexpected build error: ", err)
	}
	text, rule, consumed := nfa.Match([]byte("xyz"))
	if rule != -1 || len(text) != 0 {
		t.Errorf("Expected no match, got %q|%d", text, rule)
	}
	if consumed != 3 {
		t.Errorf("Expected every byte discarded, got %d", consumed)
	}
}

func TestMatchEmptyInput(t *testing.T) {
	nfa, err := BuildMany([]string{"a"})
	if err != nil {
		t.Fatal("Unexpected build error: ", err)
	}
	if _, rule, consumed := nfa.Match(nil); rule != -1 || consumed != 0 {
		t.Errorf("Expected no match on empty input, got rule %d consumed %d", rule, consumed)
	}
}

func TestLongestMatchMaximality(t *testing.T) {
	// Wherever a match of length L is emitted there is no longer prefix
	// matching any rule; spot check against a brute force oracle.
	patterns := []string{"ab", "a[a-z]+", "x"}
	nfa, err := BuildMany(patterns)
	if err != nil {
		t.Fatal("Unexpected build error: ", err)
	}
	singles := make([]*NFA, len(patterns))
	for i, p := range patterns {
		singles[i] = mustBuild(t, p)
	}
	input := "abxabcx"
	rest := []byte(input)
	for len(rest) > 0 {
		text, rule, consumed := nfa.Match(rest)
		if rule >= 0 {
			for _, single := range singles {
				for l := len(text) + 1; l <= len(rest); l++ {
					if single.MatchFull(rest[:l]) {
						t.Fatalf("Match %q at %q is not maximal: length %d also matches", text, rest, l)
					}
				}
			}
		}
		if consumed == 0 {
			t.Fatal("Scanner made no progress")
		}
		rest = rest[consumed:]
	}
}
