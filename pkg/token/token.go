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

// Package token defines the tagged token variant produced by pkg/lexer and
// consumed by both assembler passes.
package token

import "fmt"

type Type int

const (
	ORIG Type = iota
	FILL
	STRINGZ
	BLKW
	END
	NEW_LINE
	DECIMAL
	HEX
	BINARY
	OPCODE
	REGISTER
	LABEL
	STRING
	EOF
)

func (t Type) String() string {
	switch t {
	case ORIG:
		return "ORIG"
	case FILL:
		return "FILL"
	case STRINGZ:
		return "STRINGZ"
	case BLKW:
		return "BLKW"
	case END:
		return "END"
	case NEW_LINE:
		return "NEW_LINE"
	case DECIMAL:
		return "DECIMAL"
	case HEX:
		return "HEX"
	case BINARY:
		return "BINARY"
	case OPCODE:
		return "OPCODE"
	case REGISTER:
		return "REGISTER"
	case LABEL:
		return "LABEL"
	case STRING:
		return "STRING"
	case EOF:
		return "EOF"
	default:
		return "<invalid>"
	}
}

// Cursor locates a token in the source text for diagnostics.
type Cursor struct {
	Line   int
	Column int
	Byte   int64
}

// Token is a tagged variant; Text carries the source spelling of every
// token except NEW_LINE and EOF. The assembler reads it for LABEL, STRING,
// DECIMAL, HEX, BINARY, OPCODE, and REGISTER tokens.
type Token struct {
	Type     Type
	Text     string
	Position Cursor
}

func (t Token) String() string {
	if t.Text == "" {
		return t.Type.String()
	}

	return fmt.Sprintf("%s(%q)", t.Type, t.Text)
}

// IsNumeric reports whether t carries a numeric literal.
func (t Token) IsNumeric() bool {
	switch t.Type {
	case DECIMAL, HEX, BINARY:
		return true
	default:
		return false
	}
}

// IsDirective reports whether t is one of the five directive keywords.
func (t Token) IsDirective() bool {
	switch t.Type {
	case ORIG, FILL, STRINGZ, BLKW, END:
		return true
	default:
		return false
	}
}
