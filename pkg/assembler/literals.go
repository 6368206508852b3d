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
	"strconv"

	"github.com/lassandro/golc3/pkg/token"
)

// literalValue parses the mathematical (untruncated) value of a DECIMAL,
// HEX, or BINARY token.
func literalValue(tok token.Token) (int64, error) {
	var base int
	switch tok.Type {
	case token.HEX:
		base = 16
	case token.BINARY:
		base = 2
	case token.DECIMAL:
		base = 10
	default:
		return 0, &InvalidLiteralError{tok.Position, tok.Text}
	}

	if len(tok.Text) < 2 {
		return 0, &InvalidLiteralError{tok.Position, tok.Text}
	}

	v, err := strconv.ParseInt(tok.Text[1:], base, 64)

	if err != nil {
		return 0, &InvalidLiteralError{tok.Position, tok.Text}
	}

	return v, nil
}

// fieldValue parses tok and truncates it to a field of the given bit
// width, per spec: valid range is [-2^(bits-1), 2^bits).
func fieldValue(tok token.Token, bits uint) (uint16, error) {
	v, err := literalValue(tok)

	if err != nil {
		return 0, err
	}

	low := -(int64(1) << (bits - 1))
	high := int64(1) << bits

	if v < low || v >= high {
		return 0, &OversizedLiteralError{tok.Position, low, high, v}
	}

	mask := (uint16(1) << bits) - 1

	return uint16(v) & mask, nil
}

// trapVectorValue parses a TRAP vector operand. Per spec it is validated
// as a non-negative (unsigned) 12-bit value even though only its low 8
// bits are meaningful once encoded.
func trapVectorValue(tok token.Token) (uint16, error) {
	v, err := literalValue(tok)

	if err != nil {
		return 0, err
	}

	if v < 0 || v >= (1<<12) {
		return 0, &OversizedLiteralError{tok.Position, 0, 1 << 12, v}
	}

	return uint16(v) & 0xFF, nil
}
