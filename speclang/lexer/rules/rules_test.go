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

package rules

import (
	"testing"

	"github.com/alecthomas/participle/lexer"
	"github.com/google/go-cmp/cmp"
)

const otherCondition StartCondition = InitialCondition + 1

func name(s string) Action {
	return func(ScanState) (bool, error) { return true, nil }
}

func matchName(t *testing.T, r *Rules, cond StartCondition, data string) (string, bool) {
	t.Helper()
	action, matched := r.Match(cond, []byte(data))
	return string(matched), action != nil
}

func TestLongestMatchWins(t *testing.T) {
	r := New(
		In().Match(`ab`, name("short")),
		In().Match(`abc+`, name("long")),
	)
	if matched, ok := matchName(t, r, InitialCondition, "abccc!"); !ok || matched != "abccc" {
		t.Errorf("Expected longest match %q, got %q (%v)", "abccc", matched, ok)
	}
	if matched, ok := matchName(t, r, InitialCondition, "abx"); !ok || matched != "ab" {
		t.Errorf("Expected fallback match %q, got %q (%v)", "ab", matched, ok)
	}
}

func TestEarlierRuleWinsTies(t *testing.T) {
	fired := ""
	first := func(ScanState) (bool, error) { fired = "first"; return true, nil }
	second := func(ScanState) (bool, error) { fired = "second"; return true, nil }
	r := New(
		In().Match(`%option`, first),
		In().Match(`[^\s]+`, second),
	)
	action, matched := r.Match(InitialCondition, []byte("%option"))
	if action == nil {
		t.Fatal("Expected a match for %option")
	}
	if _, err := action(nil); err != nil {
		t.Fatal("Unexpected action error: ", err)
	}
	if diff := cmp.Diff("first", fired); diff != "" {
		t.Error("Unexpected tie-break winner:\n", diff)
	}
	if diff := cmp.Diff("%option", string(matched)); diff != "" {
		t.Error("Unexpected matched text:\n", diff)
	}
}

func TestExclusiveConditions(t *testing.T) {
	r := New(
		ExclusiveConditions(otherCondition),
		In().Match(`a+`, name("initial")),
		In(otherCondition).Match(`b+`, name("other")),
	)
	if _, ok := matchName(t, r, InitialCondition, "aaa"); !ok {
		t.Error("Expected the unconditioned rule to apply initially")
	}
	if _, ok := matchName(t, r, otherCondition, "aaa"); ok {
		t.Error("Unconditioned rules must not apply in an exclusive condition")
	}
	if matched, ok := matchName(t, r, otherCondition, "bbb"); !ok || matched != "bbb" {
		t.Errorf("Expected the exclusive rule to match %q, got %q (%v)", "bbb", matched, ok)
	}
}

func TestEOFRule(t *testing.T) {
	r := New(
		In().Match(`a`, name("a")),
		In().Match(EOFPattern, name("eof")),
	)
	if action, matched := r.Match(InitialCondition, nil); action == nil || len(matched) != 0 {
		t.Error("Expected the EOF rule to fire on empty input")
	}
	if _, matched := r.Match(InitialCondition, []byte("a")); string(matched) != "a" {
		t.Error("EOF rule must not fire while input remains")
	}
}

func TestScannerPositions(t *testing.T) {
	var kinds []string
	record := func(kind string) Action {
		return func(ScanState) (bool, error) {
			kinds = append(kinds, kind)
			return true, nil
		}
	}
	r := New(
		In().Match(`\w+`, record("word")),
		In().Match(`\n`, record("newline")),
		In().Match(` +`, record("space")),
		In().Match(EOFPattern, record("eof")),
	)
	s := NewScanner(r, []byte("one two\nthree"))
	var positions []lexer.Position
	for i := 0; i < 6; i++ {
		positions = append(positions, s.Pos())
		if !s.Scan() {
			t.Fatalf("Scan %d failed: %v", i, s.Err())
		}
		if _, err := s.Action()(nil); err != nil {
			t.Fatal("Unexpected action error: ", err)
		}
	}
	wantKinds := []string{"word", "space", "word", "newline", "word", "eof"}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Error("Unexpected rule firing order:\n", diff)
	}
	want := []lexer.Position{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 3, Line: 1, Column: 4},
		{Offset: 4, Line: 1, Column: 5},
		{Offset: 7, Line: 1, Column: 8},
		{Offset: 8, Line: 2, Column: 1},
		{Offset: 13, Line: 2, Column: 6},
	}
	if diff := cmp.Diff(want, positions); diff != "" {
		t.Error("Unexpected scanner positions:\n", diff)
	}
}

func TestScannerInvalidToken(t *testing.T) {
	r := New(In().Match(`a+`, name("a")))
	s := NewScanner(r, []byte("aaab"))
	if !s.Scan() {
		t.Fatal("Expected the first scan to succeed")
	}
	if s.Scan() {
		t.Fatal("Expected the second scan to fail on the unmatched byte")
	}
	if s.Err() == nil {
		t.Error("Expected an invalid token error")
	}
}
