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

// Package codegen emits a self-contained C scanner from a parsed
// specification. The translation unit is assembled in a fixed order: the
// runtime prelude, the embedded regex engine, the verbatim definition
// prelude, the pattern table and action dispatch, yylex, and the verbatim
// user code epilogue.
package codegen

import (
	"fmt"
	"io"

	"bitbucket.org/creachadair/stringset"
	"github.com/lexkit/lers/regex"
	"github.com/lexkit/lers/speclang/ast"
)

// knownOptions lists the %option names the generator recognizes. noyywrap
// is accepted for lex compatibility; it affects no generated output.
var knownOptions = stringset.New("noyywrap")

// UnknownOptions returns the declared option names the generator does not
// recognize, in declaration order.
func UnknownOptions(spec *ast.Spec) []string {
	var unknown []string
	for _, name := range spec.Definitions.Options() {
		if !knownOptions.Contains(name) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// Generate writes the C translation unit for spec to w. Every rule pattern
// is macro-expanded and compiled through the regex package first, so pattern
// errors surface here with the offending rule rather than at scanner runtime.
func Generate(w io.Writer, spec *ast.Spec) error {
	patterns, err := spec.ExpandedPatterns()
	if err != nil {
		return err
	}
	if _, err := regex.BuildMany(patterns); err != nil {
		return fmt.Errorf("codegen: %v", err)
	}

	pairs := spec.RulePairs()
	actions := make([]string, len(pairs))
	for i, pair := range pairs {
		actions[i] = pair.Action
	}

	cw := NewCWriter(w)
	if err := cw.Verbatim(cPrelude); err != nil {
		return err
	}
	if err := cw.Verbatim(cRegexRuntime); err != nil {
		return err
	}
	if prelude, ok := spec.Definitions.PreludeCode(); ok {
		if err := cw.Banner("Definition Code"); err != nil {
			return err
		}
		if err := cw.Verbatim(prelude); err != nil {
			return err
		}
	}
	if err := cw.Banner("Rule Code"); err != nil {
		return err
	}
	if err := cw.PatternArray(patterns); err != nil {
		return err
	}
	if err := cw.ActionDispatch(actions); err != nil {
		return err
	}
	if err := cw.Verbatim(cYylex); err != nil {
		return err
	}
	if spec.UserCode != nil {
		if err := cw.Banner("User Code"); err != nil {
			return err
		}
		if err := cw.Verbatim(spec.UserCode.Text); err != nil {
			return err
		}
	}
	return cw.Flush()
}
