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
	"bytes"
	"unicode/utf8"

	"github.com/alecthomas/participle/lexer"
)

var eolBytes = []byte("\n")

// Scanner matches in-memory text against the configured rules, retaining the
// selected action and matched bytes. The whole input is held in memory so
// that rule patterns may span lines without chunking artifacts.
type Scanner struct {
	rules *Rules
	data  []byte
	off   int

	pos  lexer.Position
	cond StartCondition

	action  Action
	matched []byte
	err     error
}

// NewScanner returns a new action scanner applying the provided rules to data.
func NewScanner(rules *Rules, data []byte) *Scanner {
	return &Scanner{
		rules: rules,
		data:  data,
		pos: lexer.Position{
			Offset: 0,
			Line:   1,
			Column: 1,
		},
		cond: InitialCondition,
	}
}

// Begin transitions the scanner to the indicated start condition.
func (s *Scanner) Begin(cond StartCondition) {
	s.cond = cond
}

// SetPosition sets the starting position of the scanner.
func (s *Scanner) SetPosition(pos lexer.Position) {
	s.pos = pos
}

// Scan matches the rules table against the remaining input, updates the
// current position and returns true if an action was selected. Once the
// input is exhausted the table's end-of-input rule, if any, is selected on
// every call. Scan returns false when no rule applies; Err reports whether
// that was an error or a missing end-of-input rule.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	action, matched := s.rules.Match(s.cond, s.data[s.off:])
	if action == nil {
		if s.off < len(s.data) {
			rn, _ := utf8.DecodeRune(s.data[s.off:])
			s.err = lexer.Errorf(s.pos, "invalid token %q", rn)
		}
		return false
	}
	s.action = action
	s.matched = matched
	s.off += len(matched)
	updatePosition(&s.pos, matched)
	return true
}

// Pos returns the current position of the scanner.
func (s *Scanner) Pos() lexer.Position {
	return s.pos
}

// Action returns the most recently selected action.
func (s *Scanner) Action() Action {
	return s.action
}

// Bytes returns the text matched by the pattern associated with the selected action.
func (s *Scanner) Bytes() []byte {
	return s.matched
}

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	return s.err
}

// updatePosition updates the position from data.
func updatePosition(pos *lexer.Position, data []byte) {
	pos.Offset += len(data)
	lines := bytes.Count(data, eolBytes)
	pos.Line += lines
	if lines == 0 {
		pos.Column += utf8.RuneCount(data)
	} else {
		pos.Column = utf8.RuneCount(data[bytes.LastIndex(data, eolBytes):])
	}
}

// AdvancePosition returns the position reached after scanning over data from pos.
func AdvancePosition(pos lexer.Position, data []byte) lexer.Position {
	updatePosition(&pos, data)
	return pos
}
