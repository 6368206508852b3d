// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lassandro/golc3/pkg/machine"
)

var helpvar bool

const usage = "golc3 [image]"
const defaultImage = "./bin/out.obj"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.Parse()
}

func golc3() int {
	if helpvar {
		fmt.Println(usage)
		return 0
	}

	args := flag.Args()

	imagePath := defaultImage
	if len(args) == 1 {
		imagePath = args[0]
	} else if len(args) > 1 {
		log.Println(usage)
		return 1
	}

	file, err := os.Open(imagePath)
	if err != nil {
		log.Println(err)
		return 1
	}

	defer file.Close()

	var mc machine.Machine
	mc.IO = machine.NewTerminalIO(os.Stdin, os.Stdout)

	if err := mc.LoadImage(file); err != nil {
		log.Println(err)
		return 1
	}

	enterRawTerm()
	defer exitRawTerm()

	for !mc.Halted() {
		if err := mc.Step(); err != nil {
			exitRawTerm()
			log.Println(err)
			return 1
		}
	}

	return 0
}

func main() {
	os.Exit(golc3())
}
