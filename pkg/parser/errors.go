package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a parse failure
type ErrorKind int

const (
	LexError ErrorKind = iota + 1
	SyntaxError
	BracketError
	ArgumentCountError
	ArgumentOrderError
	DuplicateAttributeError
	NumericFormatError
	UnknownSymbolError
	DuplicateIndexError
	UnknownElementError
	SelfBondError
	DuplicateBondError
	AestheticSyntaxError
	UnknownAttributeError
	InvalidColourError
	BlockNotClosedError
	BlockHeaderError
)

// errorKindNames maps kinds to their names for messages and JSON output
var errorKindNames = map[ErrorKind]string{
	LexError:                "LexError",
	SyntaxError:             "SyntaxError",
	BracketError:            "BracketError",
	ArgumentCountError:      "ArgumentCountError",
	ArgumentOrderError:      "ArgumentOrderError",
	DuplicateAttributeError: "DuplicateAttributeError",
	NumericFormatError:      "NumericFormatError",
	UnknownSymbolError:      "UnknownSymbolError",
	DuplicateIndexError:     "DuplicateIndexError",
	UnknownElementError:     "UnknownElementError",
	SelfBondError:           "SelfBondError",
	DuplicateBondError:      "DuplicateBondError",
	AestheticSyntaxError:    "AestheticSyntaxError",
	UnknownAttributeError:   "UnknownAttributeError",
	InvalidColourError:      "InvalidColourError",
	BlockNotClosedError:     "BlockNotClosedError",
	BlockHeaderError:        "BlockHeaderError",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "UnknownError"
}

// Error is a parse failure with the 1-based line where it was detected.
// Field, Value, Count, Pair and Allowed carry the structured detail; which of
// them are set depends on Kind.
type Error struct {
	Kind    ErrorKind
	Line    int
	Field   string   // attribute, axis, block or context name
	Value   string   // offending text
	Count   int      // argument count for ArgumentCountError
	Pair    [2]int   // element indices for bond errors
	Allowed []string // accepted names for UnknownAttributeError
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Message())
}

// Message describes the failure without the line prefix
func (e *Error) Message() string {
	switch e.Kind {
	case LexError:
		return fmt.Sprintf("a single '/' is not valid syntax (found '/%s'), comments start with // or /*", e.Value)
	case SyntaxError:
		switch e.Field {
		case "bond":
			return fmt.Sprintf("bond must be an index, one of {-, =, #, single, double, triple}, then another index; got %q", e.Value)
		case "comment":
			return "block comment is not closed before end of input"
		default:
			return "unexpected end of input, this may be a missing ';'"
		}
	case BracketError:
		return "mismatched brackets, or more than one bracketed group in a statement"
	case ArgumentCountError:
		if e.Field == blockBonds {
			return fmt.Sprintf("1 argument (+1 optional aesthetics argument) expected, got %d", e.Count)
		}
		return fmt.Sprintf("5 arguments (+1 optional aesthetics argument) expected, got %d", e.Count)
	case ArgumentOrderError:
		return fmt.Sprintf("positional argument %q follows named argument %q", e.Value, e.Field)
	case DuplicateAttributeError:
		return fmt.Sprintf("attribute %q is given more than once", e.Field)
	case NumericFormatError:
		return fmt.Sprintf("%s must be %s, got %q", e.Field, expectedNumber(e.Field), e.Value)
	case UnknownSymbolError:
		return fmt.Sprintf("chemical symbol %q is not recognised", e.Value)
	case DuplicateIndexError:
		return fmt.Sprintf("element index %s is already used by an earlier element", e.Value)
	case UnknownElementError:
		return fmt.Sprintf("no element has index %s", e.Value)
	case SelfBondError:
		return fmt.Sprintf("element %d cannot be bonded to itself", e.Pair[0])
	case DuplicateBondError:
		return fmt.Sprintf("a bond between elements %d and %d already exists", e.Pair[0], e.Pair[1])
	case AestheticSyntaxError:
		return fmt.Sprintf("optional argument must be aes(key=value, ...), got %q", e.Value)
	case UnknownAttributeError:
		return fmt.Sprintf("attribute %q is not recognised, expected one of: %s", e.Field, strings.Join(e.Allowed, ", "))
	case InvalidColourError:
		return fmt.Sprintf("invalid colour %q, use a named colour (e.g. white, black, blue, red) or a hex value (e.g. #1b43f5)", e.Value)
	case BlockNotClosedError:
		return fmt.Sprintf("%s block is not closed, expected '}' before end of input", e.Field)
	case BlockHeaderError:
		if e.Value == "" {
			return fmt.Sprintf("expected %s block header, reached end of input", e.Field)
		}
		return fmt.Sprintf("expected %s block header, got %q", e.Field, e.Value)
	default:
		return "unknown error"
	}
}

func expectedNumber(field string) string {
	switch field {
	case "index":
		return "a non-negative integer"
	case "bond index":
		return "an integer within range"
	case "radius", "alpha":
		return "a non-negative decimal number"
	default:
		return "a number"
	}
}

// KindOf returns the kind of a parse error anywhere in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

// atLine stamps the statement line on a parse error that does not have one yet
func atLine(err error, line int) error {
	var pe *Error
	if errors.As(err, &pe) && pe.Line == 0 {
		pe.Line = line
	}
	return err
}
