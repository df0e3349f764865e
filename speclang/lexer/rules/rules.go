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

// Package rules implements flex-like rule tables for a table driven lexer.
package rules

import (
	"regexp"

	"github.com/alecthomas/participle/lexer"
)

// StartCondition indicates a particular lexer state in which a rule should apply.
// By default, start conditions are inclusive and will match rules belonging to an empty
// set of start conditions as well as those which are explicitly specified.
// Exclusive start conditions only match if the scanner is in the indicated state.
type StartCondition int

const (
	InitialCondition StartCondition = 0  // Initial start condition for a scanner.
	EOFPattern                      = `` // String indicating a rule should match at end of input.
)

// ScanState interface defines a minimal set of behaviors expected by an action callback.
type ScanState interface {
	Begin(StartCondition) // Transition the ScanState to the indicated start condition.
	Bytes() []byte        // The currently matched bytes.
	Token() *lexer.Token  // The lexer.Token being constructed.
}

// Action is a callback intended to be invoked when the rule conditions match.
// It returns true once the token under construction is complete.
type Action func(ScanState) (bool, error)

// Rules is a collection of rules to match against the remaining input and current StartCondition.
type Rules struct {
	exclusive map[StartCondition]bool
	table     []rule
}

// rule is a single entry, selecting an action by start conditions and pattern.
// A nil regexp marks an end-of-input rule.
type rule struct {
	conds  []StartCondition
	re     *regexp.Regexp
	action Action
}

// ruleBuilder abstracts start condition collection to make rule table definitions more readable.
type ruleBuilder struct {
	conds []StartCondition
}

// Option is a callback to apply to the Rules object during construction.
type Option func(*Rules)

// ExclusiveConditions configures the Rules table so the provided StartConditions are considered exclusive.
func ExclusiveConditions(conds ...StartCondition) Option {
	return func(r *Rules) {
		for _, cond := range conds {
			r.exclusive[cond] = true
		}
	}
}

// In accepts a (possibly empty) list of start conditions during which to consider a rule.
func In(conds ...StartCondition) *ruleBuilder {
	return &ruleBuilder{conds}
}

// Match returns an option which adds the configured rule to the rules table.
func (c *ruleBuilder) Match(pat string, action Action) Option {
	return func(r *Rules) {
		r.MustAdd(c.conds, pat, action)
	}
}

// New returns a new Rules table, after applying the provided options.
func New(opts ...Option) *Rules {
	r := &Rules{make(map[StartCondition]bool), nil}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add adds a rule matching the pattern and start conditions.
// Patterns are anchored at the current input position. Each pattern keeps its
// own greediness; the table as a whole selects the rule whose preferred match
// is longest, breaking ties in favor of the rule added first.
func (r *Rules) Add(conds []StartCondition, pat string, action Action) error {
	if pat == EOFPattern {
		r.table = append(r.table, rule{conds, nil, action})
		return nil
	}
	re, err := regexp.Compile(`\A(?:` + pat + `)`)
	if err != nil {
		return err
	}
	r.table = append(r.table, rule{conds, re, action})
	return nil
}

// MustAdd adds a rule matching the pattern and start conditions, panicking on a bad pattern.
func (r *Rules) MustAdd(conds []StartCondition, pat string, action Action) {
	if err := r.Add(conds, pat, action); err != nil {
		panic(err)
	}
}

// Match considers applicable rules and returns the action associated with the
// longest matching pattern, as well as the portion of data matched by that
// pattern. With no data remaining, only end-of-input rules are considered.
func (r *Rules) Match(curr StartCondition, data []byte) (Action, []byte) {
	var found struct {
		action  Action
		matched []byte
	}
	for _, entry := range r.table {
		if !r.matchCondition(curr, entry.conds) {
			continue
		}
		if entry.re == nil {
			// End-of-input rules fire only once the data is exhausted.
			if len(data) == 0 && found.action == nil {
				found.action = entry.action
			}
			continue
		}
		if loc := entry.re.FindIndex(data); loc != nil && (found.matched == nil || loc[1] > len(found.matched)) {
			found.action = entry.action
			found.matched = data[:loc[1]]
		}
	}
	return found.action, found.matched
}

func (r *Rules) matchCondition(curr StartCondition, conds []StartCondition) bool {
	if len(conds) == 0 && !r.exclusive[curr] {
		return true
	}
	for _, cond := range conds {
		if cond == curr {
			return true
		}
	}
	return false
}
