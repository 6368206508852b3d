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

// Package lexer turns LC-3 assembly source text into the token stream
// consumed by pkg/assembler's two passes.
package lexer

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/lassandro/golc3/pkg/token"
)

var hexPattern = regexp.MustCompile(`^[xX]-?[0-9a-fA-F]+$`)
var binPattern = regexp.MustCompile(`^[bB]-?[01]+$`)
var decPattern = regexp.MustCompile(`^#-?[0-9]+$`)

var opcodes = map[string]bool{
	"add": true, "and": true, "not": true,
	"ld": true, "ldr": true, "ldi": true,
	"st": true, "str": true, "sti": true,
	"lea": true, "trap": true, "halt": true,
	"getc": true, "out": true, "puts": true, "in": true, "putsp": true,
	"jmp": true, "ret": true, "rti": true, "jsr": true, "jsrr": true,
	"br": true, "brz": true, "brp": true, "brn": true,
	"brnz": true, "brnp": true, "brzp": true, "brnzp": true,
}

var registers = map[string]bool{
	"r0": true, "r1": true, "r2": true, "r3": true,
	"r4": true, "r5": true, "r6": true, "r7": true,
}

var directives = map[string]token.Type{
	".orig":    token.ORIG,
	".fill":    token.FILL,
	".stringz": token.STRINGZ,
	".blkw":    token.BLKW,
	".end":     token.END,
}

var escapes = map[rune]rune{
	'0':  0,
	'n':  '\n',
	'r':  '\r',
	'"':  '"',
	'\\': '\\',
	'e':  0x1B,
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == ','
}

func classify(word string) token.Type {
	lower := strings.ToLower(word)

	if opcodes[lower] {
		return token.OPCODE
	}

	if registers[lower] {
		return token.REGISTER
	}

	if hexPattern.MatchString(word) {
		return token.HEX
	}

	if binPattern.MatchString(word) {
		return token.BINARY
	}

	if decPattern.MatchString(word) {
		return token.DECIMAL
	}

	return token.LABEL
}

// Lex reads source text and returns its token stream, always terminated by
// a single EOF token, plus any lex errors encountered along the way.
// Lexing never aborts early: it recovers at the next separator/newline so a
// caller sees every lex error in one pass.
func Lex(input io.Reader) ([]token.Token, []error) {
	var tokens []token.Token
	var errs []error

	scanner := bufio.NewScanner(input)

	var line int = 1
	var byteOffset int64 = 0

	emitNewline := false

	for scanner.Scan() {
		text := scanner.Text()
		runes := []rune(text)

		var word strings.Builder
		var wordStartCol int

		flushWord := func(endCol int) {
			if word.Len() == 0 {
				return
			}

			raw := word.String()
			position := token.Cursor{
				Line: line, Column: wordStartCol, Byte: byteOffset + int64(wordStartCol-1),
			}

			if strings.HasPrefix(raw, ".") {
				if typ, ok := directives[strings.ToLower(raw)]; ok {
					tokens = append(tokens, token.Token{
						Type: typ, Text: raw, Position: position,
					})
				} else {
					tokens = append(tokens, token.Token{
						Type: token.LABEL, Text: raw, Position: position,
					})
				}
			} else {
				tokens = append(tokens, token.Token{
					Type: classify(raw), Text: raw, Position: position,
				})
			}

			emitNewline = true
			word.Reset()
		}

		i := 0
		for i < len(runes) {
			r := runes[i]
			col := i + 1

			switch {
			case r == ';':
				flushWord(col)
				i = len(runes)

			case r == '"' && word.Len() == 0:
				startCol := col
				startByte := byteOffset + int64(col-1)

				var sb strings.Builder
				i++
				closed := false

				for i < len(runes) {
					c := runes[i]

					if c == '"' {
						closed = true
						i++
						break
					}

					if c == '\\' {
						i++

						if i >= len(runes) {
							break
						}

						esc := runes[i]

						if mapped, ok := escapes[esc]; ok {
							sb.WriteRune(mapped)
						} else {
							errs = append(errs, &UnknownEscapeError{
								Position: token.Cursor{
									Line: line, Column: i, Byte: byteOffset + int64(i-1),
								},
								Escape: esc,
							})
						}

						i++
						continue
					}

					sb.WriteRune(c)
					i++
				}

				if !closed {
					errs = append(errs, &UnterminatedStringError{
						Position: token.Cursor{
							Line: line, Column: startCol, Byte: startByte,
						},
					})
				} else {
					tokens = append(tokens, token.Token{
						Type: token.STRING,
						Text: sb.String(),
						Position: token.Cursor{
							Line: line, Column: startCol, Byte: startByte,
						},
					})
					emitNewline = true
				}

			case isSeparator(r):
				flushWord(col)
				i++

			default:
				if word.Len() == 0 {
					wordStartCol = col
				}

				word.WriteRune(r)
				i++
			}
		}

		flushWord(len(runes) + 1)

		if emitNewline {
			tokens = append(tokens, token.Token{
				Type: token.NEW_LINE,
				Position: token.Cursor{
					Line: line, Column: len(runes) + 1,
					Byte: byteOffset + int64(len(runes)),
				},
			})
			emitNewline = false
		}

		line++
		byteOffset += int64(len(text)) + 1
	}

	tokens = append(tokens, token.Token{
		Type:     token.EOF,
		Position: token.Cursor{Line: line, Column: 1, Byte: byteOffset},
	})

	return tokens, errs
}
