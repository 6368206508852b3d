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

// Package machine implements the LC-3 interpreter: the fetch-decode-execute
// loop over the 16 opcodes and 6 TRAP service routines (spec §4.6).
package machine

import (
	"io"

	"github.com/lassandro/golc3/pkg/encoding"
)

// LoadImage reads a big-endian object image (spec §4.4/§4.5) and stores
// its words into memory starting at the image's origin. It resets the
// machine first, so RPC always ends up at InitialProgram regardless of
// where the image itself starts (spec §4.6, §9).
func (mc *Machine) LoadImage(r io.Reader) error {
	origin, words, err := encoding.ReadObject(r)
	if err != nil {
		return err
	}

	mc.State.Reset()

	for i, word := range words {
		mc.State.Memory[origin+uint16(i)] = word
	}

	return nil
}

// Halted reports whether TRAP HALT has run.
func (mc *Machine) Halted() bool {
	return mc.halted
}

func (mc *Machine) read(addr uint16) uint16 {
	if addr == DEV_KBSR {
		mc.pollKeyboard()
	}

	value := mc.State.Memory[addr]

	if addr == DEV_KBDR {
		mc.havePending = false
		mc.State.Memory[DEV_KBSR] = 0
	}

	return value
}

// pollKeyboard implements the KBSR read side effect from spec §3: check
// the IO provider for a character and reflect availability in KBSR/KBDR.
// It buffers a character it has already pulled from the provider until
// the program actually reads KBDR, so repeated KBSR polling in a spin
// loop does not silently discard input (spec §9).
func (mc *Machine) pollKeyboard() {
	if !mc.havePending {
		if mc.IO == nil {
			mc.State.Memory[DEV_KBSR] = 0
			return
		}

		c, err := mc.IO.GetChar()
		if err != nil {
			mc.State.Memory[DEV_KBSR] = 0
			return
		}

		mc.pendingInput = c
		mc.havePending = true
	}

	mc.State.Memory[DEV_KBSR] = 1 << 15
	mc.State.Memory[DEV_KBDR] = uint16(mc.pendingInput)
}

func (mc *Machine) write(addr uint16, value uint16) {
	mc.State.Memory[addr] = value
}

func (mc *Machine) setFlags(value uint16) {
	switch {
	case value == 0:
		mc.State.Cond = FLAG_ZERO
	case value>>15 == 1:
		mc.State.Cond = FLAG_NEG
	default:
		mc.State.Cond = FLAG_POS
	}
}

// blockingGetChar drains a character already buffered by a prior KBSR poll
// before pulling a fresh one from the provider, so a KBSR check right
// before GETC/IN does not orphan the byte pollKeyboard already read (spec
// §9). It then retries GetChar until a character arrives or the provider
// fails outright, giving the get_char() blocking contract (spec §6) atop a
// provider whose GetChar may report ErrNoInput.
func (mc *Machine) blockingGetChar() (byte, error) {
	if mc.havePending {
		c := mc.pendingInput
		mc.havePending = false
		mc.State.Memory[DEV_KBSR] = 0
		return c, nil
	}

	if mc.IO == nil {
		return 0, ErrNoInput
	}

	for {
		c, err := mc.IO.GetChar()

		if err == nil {
			return c, nil
		}

		if err != ErrNoInput {
			return 0, err
		}
	}
}

func (mc *Machine) trap(vector uint16) error {
	switch vector {

	// GETC |0x20| R0 <- next input character code; update flags on R0
	case TRAP_GETC:
		c, err := mc.blockingGetChar()
		if err != nil {
			return err
		}

		mc.State.Registers[0] = uint16(c)
		mc.setFlags(mc.State.Registers[0])

	// OUT  |0x21| put_char(R0 & 0xFF)
	case TRAP_OUT:
		if mc.IO != nil {
			if err := mc.IO.PutChar(byte(mc.State.Registers[0] & 0xFF)); err != nil {
				return err
			}
		}

	// PUTS |0x22| for address = R0; while memory[address] != 0: put_char; address++
	case TRAP_PUTS:
		addr := mc.State.Registers[0]

		for mc.State.Memory[addr] != 0 {
			if mc.IO != nil {
				if err := mc.IO.PutChar(byte(mc.State.Memory[addr] & 0xFF)); err != nil {
					return err
				}
			}

			addr++
		}

	// IN   |0x23| prompt, R0 <- get_char, echo R0, update flags
	case TRAP_IN:
		if mc.IO != nil {
			if err := mc.IO.Print("Enter a character: "); err != nil {
				return err
			}
		}

		c, err := mc.blockingGetChar()
		if err != nil {
			return err
		}

		mc.State.Registers[0] = uint16(c)

		if mc.IO != nil {
			if err := mc.IO.PutChar(c); err != nil {
				return err
			}
		}

		mc.setFlags(mc.State.Registers[0])

	// PUTSP|0x24| like PUTS, two packed bytes per word, low byte first
	case TRAP_PUTSP:
		addr := mc.State.Registers[0]

		for mc.State.Memory[addr] != 0 {
			word := mc.State.Memory[addr]
			lo := byte(word & 0xFF)
			hi := byte(word >> 8)

			if mc.IO != nil {
				if err := mc.IO.PutChar(lo); err != nil {
					return err
				}

				if hi != 0 {
					if err := mc.IO.PutChar(hi); err != nil {
						return err
					}
				}
			}

			addr++
		}

	// HALT |0x25| print "HALT\n"; stop the interpreter
	case TRAP_HALT:
		if mc.IO != nil {
			if err := mc.IO.Print("HALT\n"); err != nil {
				return err
			}
		}

		mc.halted = true
	}

	return nil
}

// Step fetches, decodes, and executes a single instruction. It returns a
// *ReservedOpcodeError if the instruction decodes to RES or RTI, or any
// error a TRAP's IO call produced. Callers should stop stepping once
// Halted reports true.
func (mc *Machine) Step() error {
	instruction := mc.read(mc.State.Program)
	opcode := instruction >> 12
	fetchedAt := mc.State.Program

	mc.State.Program++

	switch opcode {

	// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
	// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
	case OP_ADD:
		dest := (instruction >> 9) & 0x7
		src1 := (instruction >> 6) & 0x7

		if (instruction>>5)&0x1 == 1 {
			imm5 := encoding.SignExtend(instruction&0x1F, 5)
			mc.State.Registers[dest] = mc.State.Registers[src1] + imm5
		} else {
			src2 := instruction & 0x7
			mc.State.Registers[dest] = mc.State.Registers[src1] + mc.State.Registers[src2]
		}

		mc.setFlags(mc.State.Registers[dest])

	// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
	// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
	case OP_AND:
		dest := (instruction >> 9) & 0x7
		src1 := (instruction >> 6) & 0x7

		if (instruction>>5)&0x1 == 1 {
			imm5 := encoding.SignExtend(instruction&0x1F, 5)
			mc.State.Registers[dest] = mc.State.Registers[src1] & imm5
		} else {
			src2 := instruction & 0x7
			mc.State.Registers[dest] = mc.State.Registers[src1] & mc.State.Registers[src2]
		}

		mc.setFlags(mc.State.Registers[dest])

	// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
	case OP_NOT:
		dest := (instruction >> 9) & 0x7
		src := (instruction >> 6) & 0x7

		mc.State.Registers[dest] = ^mc.State.Registers[src]
		mc.setFlags(mc.State.Registers[dest])

	// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
	case OP_BR:
		flags := (instruction >> 9) & 0x7

		if flags&mc.State.Cond != 0 {
			mc.State.Program += encoding.SignExtend(instruction&0x1FF, 9)
		}

	// JMP  |1100    |000  |BaseR|000000      | Jump (RET is JMP R7)
	case OP_JMP:
		src := (instruction >> 6) & 0x7
		mc.State.Program = mc.State.Registers[src]

	// JSR  |0100    |1|PCoffset11            | Jump to subroutine
	// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
	case OP_JSR:
		mc.State.Registers[7] = mc.State.Program

		if (instruction>>11)&0x1 == 1 {
			mc.State.Program += encoding.SignExtend(instruction&0x7FF, 11)
		} else {
			src := (instruction >> 6) & 0x7
			mc.State.Program = mc.State.Registers[src]
		}

	// LD   |0010    |DR   |PCoffset9         | Load
	case OP_LD:
		dest := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		mc.State.Registers[dest] = mc.read(addr)
		mc.setFlags(mc.State.Registers[dest])

	// LDI  |1010    |DR   |PCoffset9         | Load indirect
	case OP_LDI:
		dest := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		mc.State.Registers[dest] = mc.read(mc.read(addr))
		mc.setFlags(mc.State.Registers[dest])

	// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
	case OP_LDR:
		dest := (instruction >> 9) & 0x7
		src := (instruction >> 6) & 0x7
		addr := mc.State.Registers[src] + encoding.SignExtend(instruction&0x3F, 6)

		mc.State.Registers[dest] = mc.read(addr)
		mc.setFlags(mc.State.Registers[dest])

	// LEA  |1110    |DR   |PCoffset9         | Load effective address
	case OP_LEA:
		dest := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		mc.State.Registers[dest] = addr
		mc.setFlags(mc.State.Registers[dest])

	// ST   |0011    |SR   |PCoffset9         | Store
	case OP_ST:
		src := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		mc.write(addr, mc.State.Registers[src])

	// STI  |1011    |SR   |PCoffset9         | Store indirect
	case OP_STI:
		src := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		mc.write(mc.read(addr), mc.State.Registers[src])

	// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
	case OP_STR:
		src := (instruction >> 9) & 0x7
		base := (instruction >> 6) & 0x7
		addr := mc.State.Registers[base] + encoding.SignExtend(instruction&0x3F, 6)

		mc.write(addr, mc.State.Registers[src])

	// TRAP |1111    |0000   |trapvect8       | System call
	case OP_TRAP:
		mc.State.Registers[7] = mc.State.Program

		if err := mc.trap(instruction & 0xFF); err != nil {
			return err
		}

	// RES  |1101    |                        | Reserved (illegal)
	// RTI  |1000    |000000000000            | unused outside supervisor mode
	case OP_RES, OP_RTI:
		return &ReservedOpcodeError{opcode, fetchedAt}
	}

	return nil
}
