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

// pass1 walks the token stream maintaining the location counter, builds
// the symbol table, and performs every syntactic/range check that does not
// depend on label resolution (spec.md §4.2).
func pass1(statements [][]token.Token) (SymTable, []error) {
	symbols := make(SymTable)
	var errs []error

	var loc uint32
	var locDefined bool
	var origSeen bool

	requireLoc := func(pos token.Cursor) bool {
		if !locDefined {
			errs = append(errs, &MissingOrigError{pos})
			return false
		}
		return true
	}

	for _, statement := range statements {
		keyword, operands := keywordAndOperands(statement)

		if keyword.Type == token.LABEL {
			if requireLoc(keyword.Position) {
				if _, exists := symbols[keyword.Text]; exists {
					errs = append(errs, &RedeclaredLabelError{keyword.Position, keyword.Text})
				} else {
					symbols[keyword.Text] = uint16(loc)
				}
			}

			if len(operands) == 0 {
				continue
			}

			keyword, operands = keywordAndOperands(operands)
		}

		switch keyword.Type {
		case token.ORIG:
			if origSeen {
				errs = append(errs, &MultiSegmentError{keyword.Position})
				break
			}

			origSeen = true

			if len(operands) != 1 {
				errs = append(errs, &InvalidNumArgumentsError{keyword.Position, 1, len(operands)})
				break
			}

			if !operands[0].IsNumeric() {
				errs = append(errs, &UnexpectedTokenError{
					operands[0].Position,
					[]token.Type{token.DECIMAL, token.HEX, token.BINARY},
					operands[0].Type,
				})
				break
			}

			v, err := fieldValue(operands[0], 16)
			if err != nil {
				errs = append(errs, err)
			}

			loc = uint32(v)
			locDefined = true

		case token.END:
			if len(operands) != 0 {
				errs = append(errs, &InvalidNumArgumentsError{keyword.Position, 0, len(operands)})
			}

			locDefined = false

		case token.FILL:
			if !requireLoc(keyword.Position) {
				break
			}

			if len(operands) != 1 {
				errs = append(errs, &InvalidNumArgumentsError{keyword.Position, 1, len(operands)})
				break
			}

			switch operands[0].Type {
			case token.LABEL:
				// Resolved in pass 2, once every label is known.
			case token.DECIMAL, token.HEX, token.BINARY:
				if _, err := fieldValue(operands[0], 16); err != nil {
					errs = append(errs, err)
				}
			default:
				errs = append(errs, &UnexpectedTokenError{
					operands[0].Position,
					[]token.Type{token.LABEL, token.DECIMAL, token.HEX, token.BINARY},
					operands[0].Type,
				})
			}

			loc++

		case token.BLKW:
			if !requireLoc(keyword.Position) {
				break
			}

			if len(operands) != 1 {
				errs = append(errs, &InvalidNumArgumentsError{keyword.Position, 1, len(operands)})
				break
			}

			if !operands[0].IsNumeric() {
				errs = append(errs, &UnexpectedTokenError{
					operands[0].Position,
					[]token.Type{token.DECIMAL, token.HEX, token.BINARY},
					operands[0].Type,
				})
				break
			}

			v, err := fieldValue(operands[0], 16)
			if err != nil {
				errs = append(errs, err)
				break
			}

			loc += uint32(v)

		case token.STRINGZ:
			if !requireLoc(keyword.Position) {
				break
			}

			if len(operands) != 1 {
				errs = append(errs, &InvalidNumArgumentsError{keyword.Position, 1, len(operands)})
				break
			}

			if operands[0].Type != token.STRING {
				errs = append(errs, &UnexpectedTokenError{
					operands[0].Position,
					[]token.Type{token.STRING},
					operands[0].Type,
				})
				break
			}

			loc += uint32(len([]rune(operands[0].Text))) + 1

		case token.OPCODE:
			if !requireLoc(keyword.Position) {
				break
			}

			checkInstructionPass1(keyword, operands, &errs)
			loc++

		default:
			errs = append(errs, &UnexpectedTokenError{
				keyword.Position,
				[]token.Type{token.OPCODE, token.ORIG, token.FILL, token.STRINGZ, token.BLKW, token.END, token.LABEL},
				keyword.Type,
			})
		}

		if loc >= 1<<16 {
			errs = append(errs, &OversizedBinaryError{})
			return symbols, errs
		}
	}

	return symbols, errs
}

func checkInstructionPass1(keyword token.Token, operands []token.Token, errs *[]error) {
	m := lookupMnemonic(keyword.Text)
	want := operandCount(m)

	if len(operands) != want {
		*errs = append(*errs, &InvalidNumArgumentsError{keyword.Position, want, len(operands)})
		return
	}

	checkOperand := func(i int, kinds ...token.Type) bool {
		for _, k := range kinds {
			if operands[i].Type == k {
				return true
			}
		}

		*errs = append(*errs, &UnexpectedTokenError{operands[i].Position, kinds, operands[i].Type})
		return false
	}

	checkRegister := func(i int) {
		if checkOperand(i, token.REGISTER) {
			if _, ok := parseRegister(operands[i].Text); !ok {
				*errs = append(*errs, &InvalidLiteralError{operands[i].Position, operands[i].Text})
			}
		}
	}

	switch m {
	case mnADD, mnAND:
		checkRegister(0)
		checkRegister(1)

		if operands[2].IsNumeric() {
			if _, err := fieldValue(operands[2], 5); err != nil {
				*errs = append(*errs, err)
			}
		} else {
			checkRegister(2)
		}

	case mnNOT:
		checkRegister(0)
		checkRegister(1)

	case mnBR, mnJSR:
		checkOperand(0, token.LABEL)

	case mnJMP, mnJSRR:
		checkRegister(0)

	case mnLD, mnLDI, mnLEA, mnST, mnSTI:
		checkRegister(0)
		checkOperand(1, token.LABEL)

	case mnLDR, mnSTR:
		checkRegister(0)
		checkRegister(1)

		if checkOperand(2, token.DECIMAL, token.HEX, token.BINARY) {
			if _, err := fieldValue(operands[2], 6); err != nil {
				*errs = append(*errs, err)
			}
		}

	case mnTRAP:
		if checkOperand(0, token.DECIMAL, token.HEX, token.BINARY) {
			if _, err := trapVectorValue(operands[0]); err != nil {
				*errs = append(*errs, err)
			}
		}

	case mnRET, mnGETC, mnOUT, mnPUTS, mnIN, mnPUTSP, mnHALT, mnRTI:
		// No operands to check.

	default:
		*errs = append(*errs, &InvalidLiteralError{keyword.Position, keyword.Text})
	}
}
