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

// Command dltrie loads CSV/RDF sources and evaluates a Datalog-style
// rule program against them in memory.
package main

import (
	"flag"
	"fmt"
	"os"
)

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage:\n")
	fmt.Fprintf(os.Stderr, "    %s load -config <manifest.yaml>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        load every source and report row counts; does not run rules\n")
	fmt.Fprintf(os.Stderr, "    %s run -config <manifest.yaml>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        load sources, evaluate every rule to a fixpoint, report relation sizes\n")
	fmt.Fprintf(os.Stderr, "    %s dump -config <manifest.yaml> <relation>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        load sources, evaluate to a fixpoint, print one relation's rows\n")
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}
	switch args[0] {
	case "load":
		cmdLoad(args)
	case "run":
		cmdRun(args)
	case "dump":
		cmdDump(args)
	default:
		usage()
		os.Exit(1)
	}
}
