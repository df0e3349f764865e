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

// matches reports whether a consuming edge accepts ch. Epsilon edges never
// match input; they are followed only by the closure computation.
func (e *edge) matches(ch byte) bool {
	switch e.kind {
	case labelChar:
		return e.ch == ch
	case labelSet:
		in := false
		for _, c := range e.set {
			if c == ch {
				in = true
				break
			}
		}
		return in != e.negated
	}
	return false
}

func contains(states []int, s int) bool {
	for _, t := range states {
		if t == s {
			return true
		}
	}
	return false
}

// closure returns the ε-closure of states: every state reachable through
// zero or more ε-edges.
func (n *NFA) closure(states []int) []int {
	closed := append([]int(nil), states...)
	stack := append([]int(nil), states...)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i := range n.edges {
			e := &n.edges[i]
			if e.kind == labelEpsilon && e.from == s && !contains(closed, e.to) {
				closed = append(closed, e.to)
				stack = append(stack, e.to)
			}
		}
	}
	return closed
}

// move returns every state reachable from states over a consuming edge
// accepting ch.
func (n *NFA) move(states []int, ch byte) []int {
	var next []int
	for _, s := range states {
		for i := range n.edges {
			e := &n.edges[i]
			if e.from == s && e.matches(ch) && !contains(next, e.to) {
				next = append(next, e.to)
			}
		}
	}
	return next
}

// acceptIndex returns the index in the accept list of the first accept state
// present in states, or -1. The list is scanned in declaration order, so the
// earliest declared pattern wins when several accept simultaneously.
func (n *NFA) acceptIndex(states []int) int {
	for i, a := range n.accepts {
		if contains(states, a) {
			return i
		}
	}
	return -1
}

// MatchFull reports whether the entire input is accepted by some pattern.
func (n *NFA) MatchFull(input []byte) bool {
	current := n.closure([]int{n.start})
	for _, ch := range input {
		current = n.closure(n.move(current, ch))
	}
	return n.acceptIndex(current) >= 0
}

// Match scans input for the longest prefix accepted by any pattern. It
// returns the matched text, the index of the winning pattern (-1 when
// nothing matched) and how far the cursor advanced. The simulation keeps
// consuming while any state is live, remembering the furthest position at
// which an accept state was live, and commits that position once the
// simulation dies. When the simulation dies with no accept recorded, the
// offending byte is discarded and scanning restarts from the start state,
// which guarantees the cursor always advances on non-empty input.
func (n *NFA) Match(input []byte) (text []byte, rule int, consumed int) {
	current := n.closure([]int{n.start})
	lastLen := 0
	lastRule := -1
	i := 0
	for i < len(input) {
		next := n.closure(n.move(current, input[i]))
		if len(next) == 0 {
			if lastLen > 0 {
				break
			}
			current = n.closure([]int{n.start})
			text = text[:0]
			i++
			continue
		}
		text = append(text, input[i])
		current = next
		if r := n.acceptIndex(current); r >= 0 {
			lastLen = len(text)
			lastRule = r
		}
		i++
	}
	return text[:lastLen], lastRule, i
}
