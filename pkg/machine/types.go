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

package machine

// MachineState is the complete architectural state of an LC-3: its eight
// general registers, program counter, condition flags, and the flat
// 65536-word memory (including the two memory-mapped keyboard registers).
type MachineState struct {
	Registers [8]uint16
	Program   uint16
	Cond      uint16
	Memory    [1 << 16]uint16
}

// Reset returns the state to its post-init condition (spec §3): zeroed
// registers and memory, RCOND ZRO, RPC at the fixed start address.
func (s *MachineState) Reset() {
	for i := range s.Registers {
		s.Registers[i] = 0
	}

	for i := range s.Memory {
		s.Memory[i] = 0
	}

	s.Program = InitialProgram
	s.Cond = FLAG_ZERO
}

// Machine couples architectural state to the I/O boundary it runs
// against. A zero-value Machine with a nil IO can still execute programs
// that never touch the keyboard registers or TRAP GETC/OUT/PUTS/IN/PUTSP.
type Machine struct {
	IO    IOProvider
	State MachineState

	pendingInput byte
	havePending  bool
	halted       bool
}
