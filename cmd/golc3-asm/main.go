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
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lassandro/golc3/pkg/assembler"
	"github.com/lassandro/golc3/pkg/encoding"
	"github.com/lassandro/golc3/pkg/token"
)

var helpvar bool
var outvar string

const usage = "golc3-asm [-out outfile] filename [outfile]"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.StringVar(
		&outvar, "out", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
	flag.Parse()
}

// readLine re-scans input for the 1-indexed source line a diagnostic
// points at, so the caret underline can be rendered beneath it.
func readLine(input io.ReadSeeker, line int) (string, error) {
	if _, err := input.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	scanner := bufio.NewScanner(input)

	for n := 1; scanner.Scan(); n++ {
		if n == line {
			return scanner.Text(), nil
		}
	}

	return "", scanner.Err()
}

func reportErrors(input io.ReadSeeker, isStdin bool, errs []error) {
	if isStdin {
		for _, err := range errs {
			log.Println(err)
		}

		return
	}

	for _, err := range errs {
		positioned, ok := err.(token.PositionedError)

		if !ok {
			log.Println(err)
			continue
		}

		cursor := positioned.GetPosition()

		line, readErr := readLine(input, cursor.Line)
		if readErr != nil {
			log.Println(err)
			continue
		}

		underline := strings.Repeat(" ", cursor.Column-1) + "^"

		log.Printf("%s\n%s\n\033[31m%s\033[0m", err, line, underline)
	}
}

func golc3_asm() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	var input io.ReadSeeker
	var isStdin bool

	if stat, _ := os.Stdin.Stat(); stat.Mode()&os.ModeCharDevice == 0 {
		isStdin = true
		stdinCopy, err := os.CreateTemp("", "golc3-asm-stdin-*.asm")

		if err != nil {
			log.Println(err)
			return 1
		}

		defer os.Remove(stdinCopy.Name())

		if _, err := io.Copy(stdinCopy, os.Stdin); err != nil {
			log.Println(err)
			return 1
		}

		if _, err := stdinCopy.Seek(0, io.SeekStart); err != nil {
			log.Println(err)
			return 1
		}

		input = stdinCopy
		log.SetPrefix("\033[1m<stdin>:\033[0m")

		if outvar == "" {
			outvar = "out.bin"
		}
	} else {
		if len(args) != 1 && len(args) != 2 {
			log.Println(usage)
			return 1
		}

		file, err := os.Open(args[0])

		if err != nil {
			log.Println(err)
			return 1
		}

		defer file.Close()

		filename := filepath.Base(file.Name())

		if stat, err := file.Stat(); err != nil {
			log.Println(err)
			return 1
		} else if stat.IsDir() {
			log.Printf("%s is not a valid LC3 assembly file", filename)
			return 1
		}

		input = file
		log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m", filename))

		if len(args) == 2 {
			outvar = args[1]
		} else if outvar == "" {
			outvar = strings.ReplaceAll(
				filename, filepath.Ext(filename), ".bin",
			)
		}
	}

	obj, errs := assembler.Assemble(input)

	if len(errs) > 0 {
		reportErrors(input, isStdin, errs)
		return 1
	}

	out, err := os.Create(outvar)
	if err != nil {
		log.Println("Error creating output file")
		log.Println(err)
		return 1
	}

	defer out.Close()

	if err := encoding.WriteObject(out, obj.Origin, obj.Words); err != nil {
		log.Println("Error writing output file")
		log.Println(err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(golc3_asm())
}
