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

package machine_test

import (
	"errors"
	"testing"

	"github.com/lassandro/golc3/pkg/machine"
)

type testMachineState struct {
	Registers [8]uint16
	Program   uint16
	Condition uint16
	Memory    map[uint16]uint16
}

type testCase struct {
	Name   string
	Steps  uint
	Input  testMachineState
	Output testMachineState
}

func testMachineSuccess(t *testing.T, test *testCase) {
	var mc machine.Machine

	mc.State.Reset()
	mc.State.Registers = test.Input.Registers
	mc.State.Program = test.Input.Program
	mc.State.Cond = test.Input.Condition

	for addr, value := range test.Input.Memory {
		mc.State.Memory[addr] = value
	}

	if test.Steps == 0 {
		test.Steps = 1
	}

	for i := uint(0); i < test.Steps; i++ {
		if err := mc.Step(); err != nil {
			t.Fatalf("unexpected Step error: %v", err)
		}
	}

	for i := 0; i < 8; i++ {
		want := test.Output.Registers[i]
		have := mc.State.Registers[i]
		if have != want {
			t.Errorf(
				"Register mismatch"+
					"\nwant:%#04x (test.Output.Registers[%d])\nhave:%#04x",
				want, i, have,
			)
		}
	}

	if mc.State.Program != test.Output.Program {
		t.Errorf(
			"Program register mismatch"+
				"\nwant:%#04x (test.Output.Program)\nhave:%#04x",
			test.Output.Program, mc.State.Program,
		)
	}

	if mc.State.Cond != test.Output.Condition {
		t.Errorf(
			"Condition flag mismatch"+
				"\nwant:%#03b (test.Output.Condition)\nhave:%#03b",
			test.Output.Condition, mc.State.Cond,
		)
	}

	for addr, want := range test.Output.Memory {
		if have := mc.State.Memory[addr]; have != want {
			t.Errorf(
				"Memory value mismatch"+
					"\nwant:%#04x (test.Output.Memory[%#04x])\nhave:%#04x",
				want, addr, have,
			)
		}
	}
}

func testSuccess(t *testing.T, tests []testCase) {
	t.Run("Success", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.Name, func(t *testing.T) {
				testMachineSuccess(t, &test)
			})
		}
	})
}

// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
func TestAdd(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "ADD imm5 Negative",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE, // DR
					1: 0x0000, // SR1
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0001_000_001_1_11111, // #-1
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_NEG,
				Registers: [8]uint16{
					0: 0xFFFF, // DR
					1: 0x0000, // SR1
				},
			},
		},
		{
			Name: "ADD SR2 Zero",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE, // DR
					1: 0x0000, // SR1
					2: 0x0000, // SR2
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0001_000_001_000_010,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_ZERO,
				Registers: [8]uint16{
					0: 0x0000,
					1: 0x0000,
					2: 0x0000,
				},
			},
		},
		{
			Name: "ADD SR2 Positive Overflow Wraps",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE,
					1: 0xFFFF,
					2: 0x0001,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0001_000_001_000_010,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_ZERO,
				Registers: [8]uint16{
					0: 0x0000,
					1: 0xFFFF,
					2: 0x0001,
				},
			},
		},
	})
}

// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
func TestAnd(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "AND imm5 Positive",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE,
					1: 0x0001,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0101_000_001_1_00001,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
				Registers: [8]uint16{
					0: 0x0001,
					1: 0x0001,
				},
			},
		},
	})
}

// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
func TestBranch(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "BRz Taken",
			Input: testMachineState{
				Program:   0x3000,
				Condition: machine.FLAG_ZERO,
				Memory: map[uint16]uint16{
					0x3000: 0b0000_010_010000000,
				},
			},
			Output: testMachineState{
				Program:   0x3081,
				Condition: machine.FLAG_ZERO,
			},
		},
		{
			Name: "BRz Not Taken",
			Input: testMachineState{
				Program:   0x3000,
				Condition: machine.FLAG_POS,
				Memory: map[uint16]uint16{
					0x3000: 0b0000_010_010000000,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
			},
		},
		{
			Name: "BR Backwards",
			Input: testMachineState{
				Program:   0x3000,
				Condition: machine.FLAG_ZERO,
				Memory: map[uint16]uint16{
					0x3000: 0b0000_111_110000000,
				},
			},
			Output: testMachineState{
				Program:   0x2F81,
				Condition: machine.FLAG_ZERO,
			},
		},
	})
}

// JMP  |1100    |000  |BaseR|000000      | Jump
// RET  |1100    |000  |111  |000000      | Return
// JSR  |0100    |1|PCoffset11            | Jump to subroutine
// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
func TestJump(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "JMP",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0x6000,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b1100_000_000_000000,
				},
			},
			Output: testMachineState{
				Program: 0x6000,
				Registers: [8]uint16{
					0: 0x6000,
				},
			},
		},
		{
			Name: "RET",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					7: 0x6000,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b1100_000_111_000000,
				},
			},
			Output: testMachineState{
				Program: 0x6000,
				Registers: [8]uint16{
					7: 0x6000,
				},
			},
		},
		{
			Name: "JSR Forwards",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b0100_1_00000010000,
				},
			},
			Output: testMachineState{
				Program: 0x3011,
				Registers: [8]uint16{
					7: 0x3001,
				},
			},
		},
		{
			Name: "JSRR",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0x6000,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0100_000_000_000000,
				},
			},
			Output: testMachineState{
				Program: 0x6000,
				Registers: [8]uint16{
					0: 0x6000,
					7: 0x3001,
				},
			},
		},
	})
}

// LD   |0010    |DR   |PCoffset9         | Load
// LDI  |1010    |DR   |PCoffset9         | Load indirect
// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
// LEA  |1110    |DR   |PCoffset9         | Load effective address
// ST   |0011    |SR   |PCoffset9         | Store
// STI  |1011    |SR   |PCoffset9         | Store indirect
// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
func TestLoadStore(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "LD Positive",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0010_000_000010000, // PCoffset9 = 0x10
					0x3011: 0x000F,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
				Registers: [8]uint16{
					0: 0x000F,
				},
			},
		},
		{
			Name: "LDI",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b1010_000_000010000,
					0x3011: 0x6000,
					0x6000: 0x800F,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_NEG,
				Registers: [8]uint16{
					0: 0x800F,
				},
			},
		},
		{
			Name: "LDR",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE,
					1: 0x6000,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0110_000_001_010000,
					0x6010: 0x000F,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
				Registers: [8]uint16{
					0: 0x000F,
					1: 0x6000,
				},
			},
		},
		{
			Name: "LEA",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b1110_000_000010000,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_POS,
				Registers: [8]uint16{
					0: 0x3011,
				},
			},
		},
		{
			Name: "ST",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0011_000_000010000,
					0x3011: 0xDEAD,
				},
			},
			Output: testMachineState{
				Program: 0x3001,
				Registers: [8]uint16{
					0: 0xCAFE,
				},
				Memory: map[uint16]uint16{
					0x3011: 0xCAFE,
				},
			},
		},
		{
			Name: "STI",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b1011_000_000010000,
					0x3011: 0x6000,
					0x6000: 0xDEAD,
				},
			},
			Output: testMachineState{
				Program: 0x3001,
				Registers: [8]uint16{
					0: 0xCAFE,
				},
				Memory: map[uint16]uint16{
					0x6000: 0xCAFE,
				},
			},
		},
		{
			Name: "STR",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0x000F,
					1: 0x6000,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0111_000_001_010000,
					0x6010: 0xDEAD,
				},
			},
			Output: testMachineState{
				Program: 0x3001,
				Registers: [8]uint16{
					0: 0x000F,
					1: 0x6000,
				},
				Memory: map[uint16]uint16{
					0x6010: 0x000F,
				},
			},
		},
	})
}

// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
func TestNot(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "NOT",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE,
					1: 0x0FFF,
				},
				Memory: map[uint16]uint16{
					0x3000: 0b1001_000_001_1_11111,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: machine.FLAG_NEG,
				Registers: [8]uint16{
					0: 0xF000,
					1: 0x0FFF,
				},
			},
		},
	})
}

func TestReserved(t *testing.T) {
	var mc machine.Machine
	mc.State.Reset()
	mc.State.Program = 0x3000
	mc.State.Memory[0x3000] = 0b1101_000000000000

	err := mc.Step()

	var resErr *machine.ReservedOpcodeError
	if err == nil {
		t.Fatal("expected a ReservedOpcodeError, got nil")
	}

	if !errors.As(err, &resErr) {
		t.Fatalf("expected *machine.ReservedOpcodeError, got %T: %v", err, err)
	}
}

func TestRTIFatal(t *testing.T) {
	var mc machine.Machine
	mc.State.Reset()
	mc.State.Program = 0x3000
	mc.State.Memory[0x3000] = 0b1000_000000000000

	if err := mc.Step(); err == nil {
		t.Fatal("expected RTI to be fatal, got nil error")
	}
}

func TestTrapHalt(t *testing.T) {
	var mc machine.Machine
	io := machine.NewScriptedIO("")
	mc.IO = io
	mc.State.Reset()
	mc.State.Program = 0x3000
	mc.State.Memory[0x3000] = 0b1111_0000_00100101 // TRAP HALT

	if err := mc.Step(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !mc.Halted() {
		t.Fatal("expected machine to be halted")
	}

	if have := io.Out.String(); have != "HALT\n" {
		t.Fatalf("expected HALT output, got %q", have)
	}
}

func TestTrapPuts(t *testing.T) {
	var mc machine.Machine
	io := machine.NewScriptedIO("")
	mc.IO = io
	mc.State.Reset()
	mc.State.Program = 0x3000
	mc.State.Registers[0] = 0x4000
	mc.State.Memory[0x3000] = 0b1111_0000_00100010 // TRAP PUTS
	mc.State.Memory[0x4000] = 'H'
	mc.State.Memory[0x4001] = 'i'
	mc.State.Memory[0x4002] = 0

	if err := mc.Step(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if have := io.Out.String(); have != "Hi" {
		t.Fatalf("expected \"Hi\", got %q", have)
	}
}

func TestKeyboardPolling(t *testing.T) {
	var mc machine.Machine
	mc.IO = machine.NewScriptedIO("f")
	mc.State.Reset()
	mc.State.Program = 0x3000
	mc.State.Registers[1] = machine.DEV_KBSR
	mc.State.Registers[3] = machine.DEV_KBDR
	// LDR R0 R1 0x0 (poll KBSR)
	mc.State.Memory[0x3000] = 0b0110_000_001_000000
	// LDR R0 R1 0x0 again (must not lose the buffered byte)
	mc.State.Memory[0x3001] = 0b0110_000_001_000000
	// LDR R2 R3 0x0 (consume KBDR)
	mc.State.Memory[0x3002] = 0b0110_010_011_000000
	// LDR R0 R1 0x0 (KBSR must now read not-ready, input exhausted)
	mc.State.Memory[0x3003] = 0b0110_000_001_000000

	for i := 0; i < 4; i++ {
		if err := mc.Step(); err != nil {
			t.Fatalf("unexpected error on step %d: %v", i, err)
		}
	}

	if mc.State.Registers[0] != 0 {
		t.Errorf("expected KBSR not-ready after KBDR consumed, got %#04x", mc.State.Registers[0])
	}

	if mc.State.Registers[2] != uint16('f') {
		t.Errorf("expected KBDR to hold buffered 'f', got %#04x", mc.State.Registers[2])
	}
}

// TestKeyboardPollThenGetc covers the defect spec.md §9 asked to be fixed:
// a KBSR poll must not orphan the character it buffered when the program
// goes on to TRAP GETC instead of reading KBDR directly.
func TestKeyboardPollThenGetc(t *testing.T) {
	var mc machine.Machine
	mc.IO = machine.NewScriptedIO("f")
	mc.State.Reset()
	mc.State.Program = 0x3000
	mc.State.Registers[1] = machine.DEV_KBSR
	// LDR R0 R1 0x0 (poll KBSR, buffers 'f')
	mc.State.Memory[0x3000] = 0b0110_000_001_000000
	// TRAP GETC
	mc.State.Memory[0x3001] = 0b1111_0000_00100000

	for i := 0; i < 2; i++ {
		if err := mc.Step(); err != nil {
			t.Fatalf("unexpected error on step %d: %v", i, err)
		}
	}

	if mc.State.Registers[0] != uint16('f') {
		t.Errorf("expected GETC to return the buffered 'f', got %#04x", mc.State.Registers[0])
	}

	if mc.State.Memory[machine.DEV_KBSR] != 0 {
		t.Errorf("expected KBSR cleared after GETC drained the buffer, got %#04x", mc.State.Memory[machine.DEV_KBSR])
	}
}

func TestTrapGetc(t *testing.T) {
	var mc machine.Machine
	mc.IO = machine.NewScriptedIO("x")
	mc.State.Reset()
	mc.State.Program = 0x3000
	mc.State.Memory[0x3000] = 0b1111_0000_00100000 // TRAP GETC

	if err := mc.Step(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mc.State.Registers[0] != uint16('x') {
		t.Errorf("expected R0 = 'x', got %#04x", mc.State.Registers[0])
	}

	if mc.State.Cond != machine.FLAG_POS {
		t.Errorf("expected FLAG_POS, got %#03b", mc.State.Cond)
	}
}

func TestTrapIn(t *testing.T) {
	var mc machine.Machine
	io := machine.NewScriptedIO("y")
	mc.IO = io
	mc.State.Reset()
	mc.State.Program = 0x3000
	mc.State.Memory[0x3000] = 0b1111_0000_00100011 // TRAP IN

	if err := mc.Step(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mc.State.Registers[0] != uint16('y') {
		t.Errorf("expected R0 = 'y', got %#04x", mc.State.Registers[0])
	}

	if have := io.Out.String(); have != "Enter a character: y" {
		t.Errorf("expected prompt and echo, got %q", have)
	}
}

func TestTrapPutsp(t *testing.T) {
	var mc machine.Machine
	io := machine.NewScriptedIO("")
	mc.IO = io
	mc.State.Reset()
	mc.State.Program = 0x3000
	mc.State.Registers[0] = 0x4000
	mc.State.Memory[0x3000] = 0b1111_0000_00100100 // TRAP PUTSP
	mc.State.Memory[0x4000] = uint16('e')<<8 | uint16('H')
	mc.State.Memory[0x4001] = uint16('l')<<8 | uint16('l')
	mc.State.Memory[0x4002] = uint16('o')
	mc.State.Memory[0x4003] = 0

	if err := mc.Step(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if have := io.Out.String(); have != "Hello" {
		t.Fatalf("expected \"Hello\", got %q", have)
	}
}
