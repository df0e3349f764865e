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

// Package regex implements the scanning engine embedded in generated
// scanners: a recursive descent pattern parser, Thompson NFA construction
// with multi-pattern union, and an on-line longest match simulation. The
// generator compiles every rule pattern through this package before
// emission, so the emitted C runtime and this package accept the same
// language.
package regex

import (
	"errors"
	"fmt"
)

// MaxStates caps the number of states, and independently the number of
// edges, of any one NFA.
const MaxStates = 999

// ErrOverflow is returned by Build when a pattern needs more than MaxStates
// states or edges. BuildMany reports the same condition as an error that
// names the offending pattern and includes ErrOverflow's message.
var ErrOverflow = errors.New("regex: NFA exceeds the state limit")

type labelKind uint8

const (
	labelEpsilon labelKind = iota
	labelChar
	labelSet
)

// edge is one labeled transition. States are referenced by number, never by
// pointer, so the automaton stays strictly tree-owned.
type edge struct {
	kind    labelKind
	ch      byte
	set     []byte
	negated bool
	from    int
	to      int
}

// NFA is a nondeterministic finite automaton over 8-bit bytes, with a single
// start state and an ordered accept-state list holding one entry per
// pattern. Position i in the accept list corresponds to pattern i.
type NFA struct {
	stateCount int
	start      int
	edges      []edge
	accepts    []int
}

// StateCount returns the number of states; states are numbered densely from 0.
func (n *NFA) StateCount() int {
	return n.stateCount
}

// Start returns the start state.
func (n *NFA) Start() int {
	return n.start
}

// Accepts returns a copy of the accept-state list in pattern order.
func (n *NFA) Accepts() []int {
	return append([]int(nil), n.accepts...)
}

func (n *NFA) addEpsilon(from, to int) {
	n.edges = append(n.edges, edge{kind: labelEpsilon, from: from, to: to})
}

func (n *NFA) addChar(from, to int, ch byte) {
	n.edges = append(n.edges, edge{kind: labelChar, ch: ch, from: from, to: to})
}

func (n *NFA) addSet(from, to int, chars []byte, negated bool) {
	n.edges = append(n.edges, edge{kind: labelSet, set: chars, negated: negated, from: from, to: to})
}

func (n *NFA) checkSize() error {
	if n.stateCount > MaxStates || len(n.edges) > MaxStates {
		return ErrOverflow
	}
	return nil
}

// frag is an intermediate automaton with one designated start and one
// designated accept state. Fragment accept states are always the most
// recently allocated state, which the concatenation case relies on.
type frag struct {
	start, accept int
}

// builder allocates state numbers for one NFA. A fresh builder starts at
// zero; BuildMany threads a single builder through every pattern so that
// numbering stays dense across the union.
type builder struct {
	next int
}

func (b *builder) alloc() int {
	s := b.next
	b.next++
	return s
}

// compile appends the Thompson construction of n to nfa and returns its fragment.
func (b *builder) compile(n node, nfa *NFA) frag {
	switch t := n.(type) {
	case *literalNode:
		start, accept := b.alloc(), b.alloc()
		nfa.addChar(start, accept, t.ch)
		return frag{start, accept}
	case *setNode:
		start, accept := b.alloc(), b.alloc()
		nfa.addSet(start, accept, t.chars, t.negated)
		return frag{start, accept}
	case *andNode:
		left := b.compile(t.left, nfa)
		// Rewind one state so the right fragment starts at the left
		// fragment's accept, concatenating the two.
		b.next--
		right := b.compile(t.right, nfa)
		return frag{left.start, right.accept}
	case *orNode:
		start := b.alloc()
		left := b.compile(t.left, nfa)
		right := b.compile(t.right, nfa)
		accept := b.alloc()
		nfa.addEpsilon(start, left.start)
		nfa.addEpsilon(start, right.start)
		nfa.addEpsilon(left.accept, accept)
		nfa.addEpsilon(right.accept, accept)
		return frag{start, accept}
	case *repeatNode:
		start := b.alloc()
		body := b.compile(t.sub, nfa)
		accept := b.alloc()
		nfa.addEpsilon(start, body.start)
		nfa.addEpsilon(start, accept)
		nfa.addEpsilon(body.accept, body.start)
		nfa.addEpsilon(body.accept, accept)
		return frag{start, accept}
	case *groupNode:
		return b.compile(t.sub, nfa)
	}
	panic(fmt.Sprintf("regex: unknown node %T", n))
}

func build(b *builder, nfa *NFA, pattern string) (frag, error) {
	n, err := parsePattern(pattern)
	if err != nil {
		return frag{}, err
	}
	return b.compile(n, nfa), nil
}

// Build compiles a single pattern into an NFA with one accept state.
func Build(pattern string) (*NFA, error) {
	b := &builder{}
	nfa := &NFA{}
	f, err := build(b, nfa, pattern)
	if err != nil {
		return nil, err
	}
	nfa.start = f.start
	nfa.accepts = []int{f.accept}
	nfa.stateCount = b.next
	if err := nfa.checkSize(); err != nil {
		return nil, err
	}
	return nfa, nil
}

// BuildMany compiles patterns into a combined NFA: a fresh start state with
// an ε-edge to each pattern's sub-start, and one accept state per pattern
// appended in declaration order.
func BuildMany(patterns []string) (*NFA, error) {
	b := &builder{}
	nfa := &NFA{}
	nfa.start = b.alloc()
	for i, pattern := range patterns {
		f, err := build(b, nfa, pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %d %q: %v", i, pattern, err)
		}
		nfa.addEpsilon(nfa.start, f.start)
		nfa.accepts = append(nfa.accepts, f.accept)
		nfa.stateCount = b.next
		if err := nfa.checkSize(); err != nil {
			return nil, fmt.Errorf("pattern %d %q: %v", i, pattern, err)
		}
	}
	nfa.stateCount = b.next
	return nfa, nil
}
