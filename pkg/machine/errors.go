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

import "fmt"

// ReservedOpcodeError is returned by Step when the fetched instruction
// decodes to RES or RTI, both unused in this ISA (spec §4.6, §7).
type ReservedOpcodeError struct {
	Opcode  uint16
	Program uint16
}

func (e *ReservedOpcodeError) Error() string {
	return fmt.Sprintf("unused op code %#05b at %#04x", e.Opcode, e.Program)
}
