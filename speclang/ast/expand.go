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
	"fmt"
	"strings"
)

// maxExpansionRounds bounds macro substitution. Any acyclic macro table
// reaches its fixed point well within this; hitting the bound means the
// macros reference each other in a cycle.
const maxExpansionRounds = 64

// maxExpandedLen bounds the expanded pattern size, catching self-referential
// macros whose expansion grows instead of oscillating.
const maxExpandedLen = 1 << 16

// ExpandMacros textually replaces every {name} reference to a declared macro
// in pattern with that macro's definition, repeating until a fixed point is
// reached. References to undeclared names are left literal. Expansion is
// purely textual; the regex compiler later runs on the expanded string.
func ExpandMacros(pattern string, macros []MacroDef) (string, error) {
	original := pattern
	for round := 0; round < maxExpansionRounds; round++ {
		next := pattern
		for _, m := range macros {
			next = strings.Replace(next, "{"+m.Name+"}", m.Pattern, -1)
		}
		if next == pattern {
			// A fixed point that still references a declared macro means the
			// substitutions cancelled each other out: a cycle.
			for _, m := range macros {
				if strings.Contains(pattern, "{"+m.Name+"}") {
					return "", fmt.Errorf("macro expansion of %q did not converge; macro definitions form a cycle", original)
				}
			}
			return pattern, nil
		}
		if len(next) > maxExpandedLen {
			break
		}
		pattern = next
	}
	return "", fmt.Errorf("macro expansion of %q did not converge; macro definitions form a cycle", original)
}

// ExpandedPatterns expands every rule pattern against the declared macros
// and returns them in declaration order.
func (s *Spec) ExpandedPatterns() ([]string, error) {
	macros := s.Definitions.Macros()
	pairs := s.RulePairs()
	patterns := make([]string, 0, len(pairs))
	for i, pair := range pairs {
		expanded, err := ExpandMacros(pair.Pattern, macros)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %v", i, err)
		}
		patterns = append(patterns, expanded)
	}
	return patterns, nil
}
