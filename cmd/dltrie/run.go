// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"os"

	"github.com/dltrie/dltrie/internal/dict"
	"github.com/dltrie/dltrie/internal/table"
)

// cmdRun loads every source, evaluates the rule program to a fixpoint,
// and reports the final row count of every relation, base and derived
// alike.
func cmdRun(args []string) {
	flags := flag.NewFlagSet(args[0], flag.ExitOnError)
	cfgPath := flags.String("config", "", "path to the YAML source/rule manifest")
	flags.Parse(args[1:])
	if *cfgPath == "" {
		flags.Usage()
		exitf("run: -config is required\n")
	}

	cfg := readConfig(*cfgPath)
	terms := dict.NewTable()
	tables := table.NewManager()
	if err := loadSources(cfg, terms, tables); err != nil {
		exitf("run: %s\n", err)
	}
	if err := runProgram(cfg, tables); err != nil {
		exitf("run: %s\n", err)
	}
	reportSizes(os.Stdout, tables)
}
