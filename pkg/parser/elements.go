package parser

import (
	"math"
	"strconv"
	"strings"

	"molgen/pkg/molecule"
)

const (
	elementArgs        = 5
	elementArgsWithAes = 6
)

// Element slots in positional order
const (
	slotIndex = iota
	slotSymbol
	slotX
	slotY
	slotZ
)

// slotLabels names each slot for error messages
var slotLabels = [elementArgs]string{"index", "symbol", "x", "y", "z"}

// slotByName binds the accepted argument names to their slot
var slotByName = map[string]int{
	"index":  slotIndex,
	"symbol": slotSymbol,
	"name":   slotSymbol,
	"x":      slotX,
	"y":      slotY,
	"z":      slotZ,
}

// slotNames lists the accepted argument names for error messages
var slotNames = []string{"index", "symbol", "name", "x", "y", "z"}

var elementAesthetics = []string{attrColour, attrRadius}

// symbolTrim is removed from both ends of a symbol, so "H1" or "12-C" still resolve
const symbolTrim = "0123456789-"

// namedArg is an argument written as name=value
type namedArg struct {
	name  string
	value string
}

func parseNamedArg(arg string) (namedArg, bool) {
	name, value, found := strings.Cut(arg, "=")
	if !found {
		return namedArg{}, false
	}
	return namedArg{
		name:  strings.ToLower(strings.TrimSpace(name)),
		value: strings.TrimSpace(value),
	}, true
}

// bindSlots resolves the five slot arguments into slot order. Named arguments
// must form a suffix of the list; positional arguments before that suffix bind
// by position, named ones by name, and no slot may be bound twice.
func bindSlots(args []string) ([elementArgs]string, error) {
	var values [elementArgs]string
	var bound [elementArgs]bool

	named := make([]namedArg, len(args))
	isNamed := make([]bool, len(args))
	for i, arg := range args {
		named[i], isNamed[i] = parseNamedArg(arg)
	}

	suffix := len(args)
	for suffix > 0 && isNamed[suffix-1] {
		suffix--
	}
	for i := 0; i < suffix; i++ {
		if !isNamed[i] {
			continue
		}
		for j := i + 1; j < suffix; j++ {
			if !isNamed[j] {
				return values, &Error{Kind: ArgumentOrderError, Field: named[i].name, Value: args[j]}
			}
		}
	}

	for i := 0; i < suffix; i++ {
		values[i] = strings.TrimSpace(args[i])
		bound[i] = true
	}

	for i := suffix; i < len(args); i++ {
		slot, ok := slotByName[named[i].name]
		if !ok {
			return values, &Error{Kind: UnknownAttributeError, Field: named[i].name, Allowed: slotNames}
		}
		if bound[slot] {
			return values, &Error{Kind: DuplicateAttributeError, Field: slotLabels[slot]}
		}
		values[slot] = named[i].value
		bound[slot] = true
	}

	return values, nil
}

// parseElement validates one ELEMENTS statement against the accumulated
// elements and returns the new element without recording it
func (b *builder) parseElement(stmt string) (molecule.Element, error) {
	args, err := Split(stmt)
	if err != nil {
		return molecule.Element{}, err
	}
	if len(args) != elementArgs && len(args) != elementArgsWithAes {
		return molecule.Element{}, &Error{Kind: ArgumentCountError, Field: blockElements, Count: len(args)}
	}

	aesBody := ""
	if len(args) == elementArgsWithAes {
		if aesBody, err = aestheticsBody(args[elementArgs]); err != nil {
			return molecule.Element{}, err
		}
	}

	values, err := bindSlots(args[:elementArgs])
	if err != nil {
		return molecule.Element{}, err
	}

	index, err := strconv.Atoi(values[slotIndex])
	if err != nil || index < 0 {
		return molecule.Element{}, &Error{Kind: NumericFormatError, Field: "index", Value: values[slotIndex]}
	}

	symbol := strings.Trim(values[slotSymbol], symbolTrim)
	entry, ok := b.table.Lookup(symbol)
	if !ok || symbol == "" {
		return molecule.Element{}, &Error{Kind: UnknownSymbolError, Value: values[slotSymbol]}
	}

	var coords [3]float64
	for axis := 0; axis < 3; axis++ {
		slot := slotX + axis
		f, err := strconv.ParseFloat(values[slot], 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return molecule.Element{}, &Error{Kind: NumericFormatError, Field: slotLabels[slot], Value: values[slot]}
		}
		coords[axis] = f
	}

	if b.hasElement(index) {
		return molecule.Element{}, &Error{Kind: DuplicateIndexError, Value: strconv.Itoa(index)}
	}

	element := molecule.Element{
		Index:        index,
		Symbol:       entry.Symbol,
		AtomicNumber: entry.AtomicNumber,
		Position:     molecule.Vec3{X: coords[0], Y: coords[1], Z: coords[2]},
		Radius:       entry.Radius,
		Colour:       entry.Colour,
	}

	if len(args) == elementArgsWithAes {
		err := forEachAttribute(aesBody, elementAesthetics, func(key, value string) error {
			switch key {
			case attrColour:
				hex, err := parseColourAttribute(value)
				if err != nil {
					return err
				}
				element.Colour = hex
			case attrRadius:
				radius, err := parseDecimalAttribute(key, value)
				if err != nil {
					return err
				}
				element.Radius = radius
			}
			return nil
		})
		if err != nil {
			return molecule.Element{}, err
		}
	}

	return element, nil
}
