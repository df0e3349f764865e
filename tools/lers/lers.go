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

// The lers command reads a lex-style specification file and writes a
// self-contained C scanner. The input path may be given as the single
// positional argument; otherwise it comes from an optional lers.ini
// settings file, falling back to analyzer.l. Output goes to lers.yy.c
// unless the settings file says otherwise.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/creachadair/ini"
	"github.com/lexkit/lers/codegen"
	"github.com/lexkit/lers/speclang/ast"
)

const (
	defaultInput  = "analyzer.l"
	defaultOutput = "lers.yy.c"
	settingsFile  = "lers.ini"
)

type settings struct {
	input  string
	output string
}

// loadSettings reads the [lers] section of the settings file, if present.
func loadSettings(path string) (settings, error) {
	s := settings{defaultInput, defaultOutput}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	defer file.Close()
	err = ini.Parse(file, ini.Handler{
		Section: func(ini.Location, string) error { return nil },
		KeyValue: func(loc ini.Location, key string, values []string) error {
			if loc.Section != "lers" || len(values) == 0 {
				return nil
			}
			switch key {
			case "input":
				s.input = values[0]
			case "output":
				s.output = values[0]
			}
			return nil
		},
	})
	return s, err
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("lers: ")
	flag.Parse()

	s, err := loadSettings(settingsFile)
	if err != nil {
		log.Fatalf("%s: %v", settingsFile, err)
	}
	if flag.NArg() > 0 {
		s.input = flag.Arg(0)
	}

	input, err := os.Open(s.input)
	if err != nil {
		log.Fatal(err)
	}
	spec, err := ast.NewParser().Parse(input)
	input.Close()
	if err != nil {
		log.Fatalf("%s: %v", s.input, err)
	}

	for _, name := range codegen.UnknownOptions(spec) {
		log.Printf("warning: unrecognized option %q", name)
	}

	output, err := os.Create(s.output)
	if err != nil {
		log.Fatal(err)
	}
	if err := codegen.Generate(output, spec); err != nil {
		output.Close()
		log.Fatalf("%s: %v", s.input, err)
	}
	if err := output.Close(); err != nil {
		log.Fatal(err)
	}
}
