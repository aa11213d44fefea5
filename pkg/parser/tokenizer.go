// Package parser - statement reader for molecule documents
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// lexState is the comment-stripping state of the statement reader
type lexState int

const (
	lexNormal lexState = iota
	lexSawSlash
	lexLineComment
	lexBlockComment
	lexBlockCommentStar
)

// lexStateNames maps states to their names for debugging
var lexStateNames = map[lexState]string{
	lexNormal:           "NORMAL",
	lexSawSlash:         "SAW_SLASH",
	lexLineComment:      "LINE_COMMENT",
	lexBlockComment:     "BLOCK_COMMENT",
	lexBlockCommentStar: "BLOCK_COMMENT_STAR",
}

func (s lexState) String() string {
	return lexStateNames[s]
}

// Statement is one unit of input: whitespace and comments removed, ended by
// ';' (dropped) or by '{' / '}' (kept)
type Statement struct {
	Text string
	Line int // line on which the terminator was read
}

func (s Statement) String() string {
	return fmt.Sprintf("%d:%s", s.Line, s.Text)
}

// StatementReader splits a character stream into statements. It makes a single
// forward pass and cannot be restarted.
type StatementReader struct {
	r     *bufio.Reader
	line  int
	state lexState
	done  bool
}

// NewStatementReader creates a reader positioned at line 1
func NewStatementReader(r io.Reader) *StatementReader {
	return &StatementReader{
		r:    bufio.NewReader(r),
		line: 1,
	}
}

// Line returns the current line number
func (sr *StatementReader) Line() int {
	return sr.line
}

// Next returns the next statement. It returns io.EOF when the input ends with
// nothing pending, and a *Error when the input is malformed.
func (sr *StatementReader) Next() (Statement, error) {
	if sr.done {
		return Statement{}, io.EOF
	}

	var buf strings.Builder
	for {
		ch, _, err := sr.r.ReadRune()
		if err == io.EOF {
			sr.done = true
			return Statement{}, sr.endOfInput(buf.Len() > 0)
		}
		if err != nil {
			sr.done = true
			return Statement{}, fmt.Errorf("failed to read input at line %d: %w", sr.line, err)
		}

		switch sr.state {
		case lexNormal:
			switch {
			case ch == '/':
				sr.state = lexSawSlash
			case ch == '\n':
				sr.line++
			case ch == ';':
				return Statement{Text: buf.String(), Line: sr.line}, nil
			case ch == '{' || ch == '}':
				buf.WriteRune(ch)
				return Statement{Text: buf.String(), Line: sr.line}, nil
			case !unicode.IsSpace(ch):
				buf.WriteRune(ch)
			}

		case lexSawSlash:
			switch ch {
			case '/':
				sr.state = lexLineComment
			case '*':
				sr.state = lexBlockComment
			default:
				sr.done = true
				return Statement{}, &Error{Kind: LexError, Line: sr.line, Value: printable(ch)}
			}

		case lexLineComment:
			if ch == '\n' {
				sr.line++
				sr.state = lexNormal
			}

		case lexBlockComment:
			switch ch {
			case '\n':
				sr.line++
			case '*':
				sr.state = lexBlockCommentStar
			}

		case lexBlockCommentStar:
			switch ch {
			case '/':
				sr.state = lexNormal
			case '*':
				// still possibly closing
			case '\n':
				sr.line++
				sr.state = lexBlockComment
			default:
				sr.state = lexBlockComment
			}
		}
	}
}

// endOfInput decides what reaching the end of the stream means in the current state
func (sr *StatementReader) endOfInput(pending bool) error {
	switch sr.state {
	case lexBlockComment, lexBlockCommentStar:
		return &Error{Kind: SyntaxError, Line: sr.line, Field: "comment"}
	case lexSawSlash:
		return &Error{Kind: SyntaxError, Line: sr.line}
	}
	if pending {
		return &Error{Kind: SyntaxError, Line: sr.line}
	}
	return io.EOF
}

// ReadAll drains the reader, returning every statement up to the first error
func (sr *StatementReader) ReadAll() ([]Statement, error) {
	var statements []Statement
	for {
		stmt, err := sr.Next()
		if err == io.EOF {
			return statements, nil
		}
		if err != nil {
			return statements, err
		}
		statements = append(statements, stmt)
	}
}

func printable(ch rune) string {
	switch ch {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	}
	return string(ch)
}
