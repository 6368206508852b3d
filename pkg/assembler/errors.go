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
	"fmt"
	"strings"

	"github.com/lassandro/golc3/pkg/token"
)

func tokenKindName(t token.Type) string {
	switch t {
	case token.LABEL:
		return "Label"
	case token.REGISTER:
		return "Register"
	case token.STRING:
		return "String"
	case token.DECIMAL, token.HEX, token.BINARY:
		return "Literal"
	case token.OPCODE:
		return "Opcode"
	case token.NEW_LINE:
		return "end of line"
	case token.EOF:
		return "end of file"
	default:
		return "Directive"
	}
}

// UnexpectedTokenError is raised when pass 1 requires one of Required's
// kinds at a position and receives something else.
type UnexpectedTokenError struct {
	Position token.Cursor
	Required []token.Type
	Received token.Type
}

func (err *UnexpectedTokenError) GetPosition() token.Cursor {
	return err.Position
}

func (err *UnexpectedTokenError) Error() string {
	names := make([]string, 0, len(err.Required))
	for _, t := range err.Required {
		names = append(names, tokenKindName(t))
	}

	var want string
	switch len(names) {
	case 1:
		want = names[0]
	case 2:
		want = names[0] + " or " + names[1]
	default:
		want = strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}

	return fmt.Sprintf(
		"%02d:%02d: Unexpected token\n\twant: %s\n\thave: %s",
		err.Position.Line, err.Position.Column, want, tokenKindName(err.Received),
	)
}

// InvalidNumArgumentsError is raised when an instruction or directive
// receives the wrong number of operands.
type InvalidNumArgumentsError struct {
	Position token.Cursor
	Required int
	Received int
}

func (err *InvalidNumArgumentsError) GetPosition() token.Cursor {
	return err.Position
}

func (err *InvalidNumArgumentsError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid number of operands\n\twant: %d\n\thave: %d",
		err.Position.Line, err.Position.Column, err.Required, err.Received,
	)
}

// OversizedLiteralError is raised when a numeric literal does not fit in
// the signed or unsigned range of its field width.
type OversizedLiteralError struct {
	Position token.Cursor
	Low      int64
	High     int64
	Received int64
}

func (err *OversizedLiteralError) GetPosition() token.Cursor {
	return err.Position
}

func (err *OversizedLiteralError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Literal exceeds allowed range\n\twant: [%d, %d)\n\thave: %d",
		err.Position.Line, err.Position.Column, err.Low, err.High, err.Received,
	)
}

// OversizedLabelError is raised when a resolved PC-relative offset does
// not fit in its field width.
type OversizedLabelError struct {
	Position token.Cursor
	Low      int64
	High     int64
	Received int64
}

func (err *OversizedLabelError) GetPosition() token.Cursor {
	return err.Position
}

func (err *OversizedLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Label exceeds allowed distance\n\twant: [%d, %d)\n\thave: %d",
		err.Position.Line, err.Position.Column, err.Low, err.High, err.Received,
	)
}

// InvalidLiteralError is raised when a numeric token cannot be parsed at
// all (malformed hex/binary/decimal text).
type InvalidLiteralError struct {
	Position token.Cursor
	Text     string
}

func (err *InvalidLiteralError) GetPosition() token.Cursor {
	return err.Position
}

func (err *InvalidLiteralError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid numeric literal '%s'",
		err.Position.Line, err.Position.Column, err.Text,
	)
}

// RedeclaredLabelError is raised when the same label is defined twice.
type RedeclaredLabelError struct {
	Position token.Cursor
	Label    string
}

func (err *RedeclaredLabelError) GetPosition() token.Cursor {
	return err.Position
}

func (err *RedeclaredLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Redeclaration of label '%s'",
		err.Position.Line, err.Position.Column, err.Label,
	)
}

// UnknownLabelError is raised when a label reference has no matching
// declaration anywhere in the token stream.
type UnknownLabelError struct {
	Position token.Cursor
	Label    string
}

func (err *UnknownLabelError) GetPosition() token.Cursor {
	return err.Position
}

func (err *UnknownLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown label '%s'",
		err.Position.Line, err.Position.Column, err.Label,
	)
}

// MissingOrigError is raised when code or a label appears before any
// .ORIG directive has set the location counter.
type MissingOrigError struct {
	Position token.Cursor
}

func (err *MissingOrigError) GetPosition() token.Cursor {
	return err.Position
}

func (err *MissingOrigError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Statement outside of an .ORIG/.END block",
		err.Position.Line, err.Position.Column,
	)
}

// MultiSegmentError is raised when a second .ORIG directive appears
// anywhere in the source, with or without an .END before it; the current
// object format and loader cannot represent more than one contiguous
// segment.
type MultiSegmentError struct {
	Position token.Cursor
}

func (err *MultiSegmentError) GetPosition() token.Cursor {
	return err.Position
}

func (err *MultiSegmentError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Multiple .ORIG segments are not supported",
		err.Position.Line, err.Position.Column,
	)
}

// OversizedBinaryError is raised when the program's location counter
// leaves the 16-bit address space.
type OversizedBinaryError struct{}

func (err *OversizedBinaryError) Error() string {
	return "Binary exceeds the 16-bit address space"
}
