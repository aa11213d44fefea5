package parser

import "strings"

// Split breaks a statement into trimmed arguments on commas. Commas inside a
// single parenthesised group are kept, and the group up to and including its
// ')' becomes one argument:
//
//	Split("0,O,0,0,0,aes(radius=10,colour=red)")
//	// ["0" "O" "0" "0" "0" "aes(radius=10,colour=red)"]
//
// A '(' while another group is still open is a BracketError.
func Split(stmt string) ([]string, error) {
	var args []string
	var current strings.Builder
	inGroup := false

	emit := func() {
		args = append(args, strings.TrimSpace(current.String()))
		current.Reset()
	}

	for _, ch := range stmt {
		switch {
		case ch == '(':
			if inGroup {
				return nil, &Error{Kind: BracketError, Value: stmt}
			}
			inGroup = true
			current.WriteRune(ch)
		case ch == ')':
			inGroup = false
			current.WriteRune(ch)
			emit()
		case inGroup:
			current.WriteRune(ch)
		case ch == ',':
			emit()
		default:
			current.WriteRune(ch)
		}
	}

	if strings.TrimSpace(current.String()) != "" {
		emit()
	}
	return args, nil
}
