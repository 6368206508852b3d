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
	"strings"

	"github.com/lassandro/golc3/pkg/token"
)

func regBits(tok token.Token) uint16 {
	reg, _ := parseRegister(tok.Text)
	return reg & 0x7
}

// pcRelative resolves a label reference to a signed PC-relative offset of
// the given field width. instrAddr is the instruction's own address, so
// the offset is taken from instrAddr + 1, the PC value the CPU holds once
// the instruction has been fetched.
func pcRelative(instrAddr uint32, label token.Token, bits uint, symbols SymTable) (uint16, error) {
	addr, ok := symbols.lookup(label.Text)

	if !ok {
		return 0, &UnknownLabelError{label.Position, label.Text}
	}

	offset := int64(addr) - int64(instrAddr) - 1

	low := -(int64(1) << (bits - 1))
	high := int64(1) << bits

	if offset < low || offset >= high {
		return 0, &OversizedLabelError{label.Position, low, high, offset}
	}

	mask := (uint16(1) << bits) - 1

	return uint16(offset) & mask, nil
}

// encodeInstruction packs one instruction's operands into its 16-bit word
// per the table in spec.md §4.3. instrAddr is this instruction's own
// address (the location counter before its LC += 1).
func encodeInstruction(keyword token.Token, operands []token.Token, instrAddr uint32, symbols SymTable) (uint16, error) {
	m := lookupMnemonic(keyword.Text)

	switch m {
	case mnADD, mnAND:
		var opcode uint16
		if m == mnADD {
			opcode = 0b0001
		} else {
			opcode = 0b0101
		}

		word := opcode<<12 | regBits(operands[0])<<9 | regBits(operands[1])<<6

		if operands[2].IsNumeric() {
			imm, err := fieldValue(operands[2], 5)
			if err != nil {
				return 0, err
			}

			word |= 1<<5 | imm
		} else {
			word |= regBits(operands[2])
		}

		return word, nil

	case mnNOT:
		return 0b1001<<12 | regBits(operands[0])<<9 | regBits(operands[1])<<6 | 0x3F, nil

	case mnBR:
		flags := branchFlags[strings.ToLower(keyword.Text)]
		offset, err := pcRelative(instrAddr, operands[0], 9, symbols)

		if err != nil {
			return 0, err
		}

		return flags<<9 | offset, nil

	case mnJMP:
		return 0b1100<<12 | regBits(operands[0])<<6, nil

	case mnRET:
		return 0b1100000111000000, nil

	case mnJSR:
		offset, err := pcRelative(instrAddr, operands[0], 11, symbols)

		if err != nil {
			return 0, err
		}

		return 0b0100<<12 | 1<<11 | offset, nil

	case mnJSRR:
		return 0b0100<<12 | regBits(operands[0])<<6, nil

	case mnLD, mnLDI, mnLEA, mnST, mnSTI:
		var opcode uint16

		switch m {
		case mnLD:
			opcode = 0b0010
		case mnLDI:
			opcode = 0b1010
		case mnLEA:
			opcode = 0b1110
		case mnST:
			opcode = 0b0011
		case mnSTI:
			opcode = 0b1011
		}

		offset, err := pcRelative(instrAddr, operands[1], 9, symbols)

		if err != nil {
			return 0, err
		}

		return opcode<<12 | regBits(operands[0])<<9 | offset, nil

	case mnLDR, mnSTR:
		var opcode uint16
		if m == mnLDR {
			opcode = 0b0110
		} else {
			opcode = 0b0111
		}

		offset, err := fieldValue(operands[2], 6)

		if err != nil {
			return 0, err
		}

		return opcode<<12 | regBits(operands[0])<<9 | regBits(operands[1])<<6 | offset, nil

	case mnTRAP:
		vector, err := trapVectorValue(operands[0])

		if err != nil {
			return 0, err
		}

		return 0b1111<<12 | vector, nil

	case mnGETC, mnOUT, mnPUTS, mnIN, mnPUTSP, mnHALT:
		vector := trapVectors[strings.ToLower(keyword.Text)]

		return 0b1111<<12 | vector, nil

	case mnRTI:
		return 0b1000000000000000, nil

	default:
		return 0, &InvalidLiteralError{keyword.Position, keyword.Text}
	}
}
