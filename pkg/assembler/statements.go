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

import "github.com/lassandro/golc3/pkg/token"

// splitStatements groups a lexer token stream into per-line statements,
// dropping the NEW_LINE/EOF separators both passes walk around rather than
// through.
func splitStatements(tokens []token.Token) [][]token.Token {
	var statements [][]token.Token
	var current []token.Token

	for _, t := range tokens {
		switch t.Type {
		case token.NEW_LINE:
			if len(current) > 0 {
				statements = append(statements, current)
				current = nil
			}
		case token.EOF:
			if len(current) > 0 {
				statements = append(statements, current)
			}
			return statements
		default:
			current = append(current, t)
		}
	}

	if len(current) > 0 {
		statements = append(statements, current)
	}

	return statements
}

// keywordAndOperands splits a label-stripped statement into its
// directive/opcode keyword and the remaining operand tokens.
func keywordAndOperands(statement []token.Token) (token.Token, []token.Token) {
	if len(statement) == 0 {
		return token.Token{}, nil
	}

	return statement[0], statement[1:]
}
