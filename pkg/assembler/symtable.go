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

// SymTable maps a label to the absolute 16-bit address assigned to it in
// pass 1. It is built once and never mutated by pass 2.
type SymTable map[string]uint16

func (s SymTable) lookup(label string) (uint16, bool) {
	addr, ok := s[label]
	return addr, ok
}

func parseRegister(text string) (uint16, bool) {
	switch strings.ToLower(text) {
	case "r0":
		return 0, true
	case "r1":
		return 1, true
	case "r2":
		return 2, true
	case "r3":
		return 3, true
	case "r4":
		return 4, true
	case "r5":
		return 5, true
	case "r6":
		return 6, true
	case "r7":
		return 7, true
	default:
		return 0, false
	}
}
