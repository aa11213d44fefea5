package parser

import (
	"regexp"
	"strconv"
	"strings"

	"molgen/pkg/molecule"
)

const (
	bondArgs        = 1
	bondArgsWithAes = 2
)

// bondPattern matches "<index><separator><index>" on lower-cased input
var bondPattern = regexp.MustCompile(`^([0-9]+)\s*(-|=|#|single|double|triple)\s*([0-9]+)$`)

var bondSeparators = map[string]molecule.BondDegree{
	"-":      molecule.Single,
	"single": molecule.Single,
	"=":      molecule.Double,
	"double": molecule.Double,
	"#":      molecule.Triple,
	"triple": molecule.Triple,
}

var bondAesthetics = []string{attrColour, attrAlpha}

// parseBond validates one BONDS statement against the finished element set and
// the bonds accumulated so far
func (b *builder) parseBond(stmt string) (molecule.Bond, error) {
	args, err := Split(stmt)
	if err != nil {
		return molecule.Bond{}, err
	}
	if len(args) != bondArgs && len(args) != bondArgsWithAes {
		return molecule.Bond{}, &Error{Kind: ArgumentCountError, Field: blockBonds, Count: len(args)}
	}

	text := strings.ToLower(strings.TrimSpace(args[0]))
	m := bondPattern.FindStringSubmatch(text)
	if m == nil {
		return molecule.Bond{}, &Error{Kind: SyntaxError, Field: "bond", Value: args[0]}
	}

	from, err := strconv.Atoi(m[1])
	if err != nil {
		return molecule.Bond{}, &Error{Kind: NumericFormatError, Field: "bond index", Value: m[1]}
	}
	to, err := strconv.Atoi(m[3])
	if err != nil {
		return molecule.Bond{}, &Error{Kind: NumericFormatError, Field: "bond index", Value: m[3]}
	}

	if from == to {
		return molecule.Bond{}, &Error{Kind: SelfBondError, Pair: [2]int{from, to}}
	}
	for _, index := range []int{from, to} {
		if !b.hasElement(index) {
			return molecule.Bond{}, &Error{Kind: UnknownElementError, Value: strconv.Itoa(index), Pair: [2]int{from, to}}
		}
	}
	if b.hasBond(from, to) {
		return molecule.Bond{}, &Error{Kind: DuplicateBondError, Pair: [2]int{from, to}}
	}

	bond := molecule.Bond{
		From:   from,
		To:     to,
		Degree: bondSeparators[m[2]],
		Alpha:  molecule.DefaultBondAlpha,
		Colour: molecule.DefaultBondColour,
	}

	if len(args) == bondArgsWithAes {
		body, err := aestheticsBody(args[1])
		if err != nil {
			return molecule.Bond{}, err
		}
		err = forEachAttribute(body, bondAesthetics, func(key, value string) error {
			switch key {
			case attrColour:
				hex, err := parseColourAttribute(value)
				if err != nil {
					return err
				}
				bond.Colour = hex
			case attrAlpha:
				alpha, err := parseDecimalAttribute(key, value)
				if err != nil {
					return err
				}
				bond.Alpha = alpha
			}
			return nil
		})
		if err != nil {
			return molecule.Bond{}, err
		}
	}

	return bond, nil
}
