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

import "strings"

// Mnemonic groups the 30 opcode spellings the lexer tags OPCODE into the
// instruction shapes pass 1 and pass 2 both switch over.
type Mnemonic int

const (
	mnInvalid Mnemonic = iota
	mnADD
	mnAND
	mnNOT
	mnBR
	mnJMP
	mnRET
	mnJSR
	mnJSRR
	mnLD
	mnLDI
	mnLEA
	mnST
	mnSTI
	mnLDR
	mnSTR
	mnTRAP
	mnGETC
	mnOUT
	mnPUTS
	mnIN
	mnPUTSP
	mnHALT
	mnRTI
)

var mnemonics = map[string]Mnemonic{
	"add": mnADD, "and": mnAND, "not": mnNOT,
	"br": mnBR, "brn": mnBR, "brz": mnBR, "brp": mnBR,
	"brnz": mnBR, "brnp": mnBR, "brzp": mnBR, "brnzp": mnBR,
	"jmp": mnJMP, "ret": mnRET, "jsr": mnJSR, "jsrr": mnJSRR,
	"ld": mnLD, "ldi": mnLDI, "lea": mnLEA,
	"st": mnST, "sti": mnSTI,
	"ldr": mnLDR, "str": mnSTR,
	"trap": mnTRAP,
	"getc": mnGETC, "out": mnOUT, "puts": mnPUTS,
	"in": mnIN, "putsp": mnPUTSP, "halt": mnHALT,
	"rti": mnRTI,
}

var branchFlags = map[string]uint16{
	"br": 0b111, "brn": 0b100, "brz": 0b010, "brp": 0b001,
	"brnz": 0b110, "brnp": 0b101, "brzp": 0b011, "brnzp": 0b111,
}

var trapVectors = map[string]uint16{
	"getc": 0x20, "out": 0x21, "puts": 0x22,
	"in": 0x23, "putsp": 0x24, "halt": 0x25,
}

func lookupMnemonic(word string) Mnemonic {
	return mnemonics[strings.ToLower(word)]
}

// operandCount reports how many operands a mnemonic requires, independent
// of the operands' eventual kinds.
func operandCount(m Mnemonic) int {
	switch m {
	case mnADD, mnAND, mnLDR, mnSTR:
		return 3
	case mnNOT, mnLD, mnLDI, mnLEA, mnST, mnSTI:
		return 2
	case mnBR, mnJMP, mnJSR, mnJSRR, mnTRAP:
		return 1
	case mnRET, mnGETC, mnOUT, mnPUTS, mnIN, mnPUTSP, mnHALT, mnRTI:
		return 0
	default:
		return -1
	}
}
