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

package codegen

import (
	"bufio"
	"fmt"
	"io"
)

// CWriter is a simple type for writing the pieces of a generated C
// translation unit with a consistent form.
type CWriter struct {
	w *bufio.Writer
}

// NewCWriter creates a new CWriter writing to the provided output.
func NewCWriter(w io.Writer) *CWriter {
	return &CWriter{bufio.NewWriter(w)}
}

// Banner writes a /*** title ***/ section marker.
func (cw *CWriter) Banner(title string) error {
	_, err := fmt.Fprintf(cw.w, "/*** %s ***/\n", title)
	return err
}

// Verbatim writes text unchanged, followed by a newline.
func (cw *CWriter) Verbatim(text string) error {
	if _, err := cw.w.WriteString(text); err != nil {
		return err
	}
	return cw.w.WriteByte('\n')
}

// PatternArray writes the g_pattern_count define and the g_patterns array,
// one C string literal per pattern in declaration order. Pattern text is
// emitted with no escape processing beyond what it already contains.
func (cw *CWriter) PatternArray(patterns []string) error {
	if _, err := fmt.Fprintf(cw.w, "#define g_pattern_count %d\n", len(patterns)); err != nil {
		return err
	}
	if _, err := cw.w.WriteString("char *g_patterns[] = {\n"); err != nil {
		return err
	}
	for _, pattern := range patterns {
		if _, err := fmt.Fprintf(cw.w, "  \"%s\",\n", pattern); err != nil {
			return err
		}
	}
	_, err := cw.w.WriteString("};\n\n")
	return err
}

// ActionDispatch writes the action function: a linear dispatch inserting
// each rule's action text inside its own braced block.
func (cw *CWriter) ActionDispatch(actions []string) error {
	if _, err := cw.w.WriteString("void action(int pattern_index) {\n"); err != nil {
		return err
	}
	for i, action := range actions {
		if _, err := fmt.Fprintf(cw.w, "  if (pattern_index == %d) {\n%s\n  }\n", i, action); err != nil {
			return err
		}
	}
	_, err := cw.w.WriteString("}\n")
	return err
}

// Flush writes any buffered output to the underlying writer.
func (cw *CWriter) Flush() error {
	return cw.w.Flush()
}
