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

package assembler

import (
	"github.com/lassandro/golc3/pkg/token"
)

// pass2 rewalks the statements with the symbol table pass1 built and emits
// the object's word vector (spec.md §4.3). It assumes pass1 already
// reported every syntactic and range error, so it only reports the errors
// that depend on label resolution: unknown labels and label references
// that don't fit the target field.
func pass2(statements [][]token.Token, symbols SymTable) (origin uint16, words []uint16, errs []error) {
	var loc uint32
	var locDefined bool
	var originSet bool

	emit := func(word uint16) {
		idx := int(loc - uint32(origin))

		for len(words) <= idx {
			words = append(words, 0)
		}

		words[idx] = word
	}

	for _, statement := range statements {
		keyword, operands := keywordAndOperands(statement)

		if keyword.Type == token.LABEL {
			if len(operands) == 0 {
				continue
			}

			keyword, operands = keywordAndOperands(operands)
		}

		switch keyword.Type {
		case token.ORIG:
			if originSet || len(operands) != 1 {
				continue
			}

			v, err := fieldValue(operands[0], 16)
			if err != nil {
				continue
			}

			origin = v
			loc = uint32(v)
			locDefined = true
			originSet = true

		case token.END:
			locDefined = false

		case token.FILL:
			if !locDefined || len(operands) != 1 {
				continue
			}

			var value uint16

			switch operands[0].Type {
			case token.LABEL:
				addr, ok := symbols.lookup(operands[0].Text)
				if !ok {
					errs = append(errs, &UnknownLabelError{operands[0].Position, operands[0].Text})
				} else {
					value = addr
				}
			default:
				value, _ = fieldValue(operands[0], 16)
			}

			emit(value)
			loc++

		case token.BLKW:
			if !locDefined || len(operands) != 1 {
				continue
			}

			n, err := fieldValue(operands[0], 16)
			if err != nil {
				continue
			}

			for i := uint32(0); i < uint32(n); i++ {
				emit(0)
				loc++
			}

		case token.STRINGZ:
			if !locDefined || len(operands) != 1 || operands[0].Type != token.STRING {
				continue
			}

			for _, r := range operands[0].Text {
				emit(uint16(r))
				loc++
			}

			emit(0)
			loc++

		case token.OPCODE:
			if !locDefined {
				continue
			}

			word, err := encodeInstruction(keyword, operands, loc, symbols)
			if err != nil {
				errs = append(errs, err)
			}

			emit(word)
			loc++
		}
	}

	return origin, words, errs
}
