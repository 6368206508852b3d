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

// Package assembler turns an LC-3 assembly token stream into an object
// image: a two-pass process that first resolves every label to an address,
// then re-walks the source encoding each instruction and directive.
package assembler

import (
	"io"

	"github.com/lassandro/golc3/pkg/lexer"
)

// Object is an assembled LC-3 program: a starting address and the
// contiguous words to be loaded there.
type Object struct {
	Origin uint16
	Words  []uint16
}

// Assemble lexes src and, if lexing produced no errors, runs pass 1 and
// pass 2 over the resulting token stream. Pass 2 only runs once pass 1 is
// clean, since it trusts pass 1 to have already rejected malformed
// statements; a source file with lex or pass-1 errors yields no Object.
func Assemble(src io.Reader) (*Object, []error) {
	tokens, errs := lexer.Lex(src)

	if len(errs) > 0 {
		return nil, errs
	}

	statements := splitStatements(tokens)

	symbols, errs := pass1(statements)
	if len(errs) > 0 {
		return nil, errs
	}

	origin, words, errs := pass2(statements, symbols)
	if len(errs) > 0 {
		return nil, errs
	}

	return &Object{Origin: origin, Words: words}, nil
}
