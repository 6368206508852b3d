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

package lexer

import (
	"fmt"

	"github.com/lassandro/golc3/pkg/token"
)

// UnknownEscapeError is raised for any string escape sequence other than
// \0, \n, \r, \", \\, and \e.
type UnknownEscapeError struct {
	Position token.Cursor
	Escape   rune
}

func (err *UnknownEscapeError) GetPosition() token.Cursor {
	return err.Position
}

func (err *UnknownEscapeError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown escape sequence '\\%c'",
		err.Position.Line, err.Position.Column, err.Escape,
	)
}

// UnterminatedStringError is raised when a string literal reaches a
// newline or end-of-input before its closing quote.
type UnterminatedStringError struct {
	Position token.Cursor
}

func (err *UnterminatedStringError) GetPosition() token.Cursor {
	return err.Position
}

func (err *UnterminatedStringError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unterminated string literal",
		err.Position.Line, err.Position.Column,
	)
}
