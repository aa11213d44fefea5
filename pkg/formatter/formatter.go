// Package formatter writes molecules back out as canonical documents and
// renders human-readable summaries
package formatter

import (
	"strconv"
	"strings"

	"molgen/pkg/molecule"
	"molgen/pkg/reference"
)

// Formatter handles document reconstruction and formatting
type Formatter struct {
	indentSize int
	useSpaces  bool
	table      *reference.Table
	comment    string
}

// Option configures a Formatter
type Option func(*Formatter)

// WithIndent sets the indentation of block statements. useSpaces false
// indents with one tab per level.
func WithIndent(size int, useSpaces bool) Option {
	return func(f *Formatter) {
		if size >= 0 {
			f.indentSize = size
		}
		f.useSpaces = useSpaces
	}
}

// WithTable lets the formatter omit aesthetics that equal the table defaults
func WithTable(table *reference.Table) Option {
	return func(f *Formatter) {
		f.table = table
	}
}

// WithComment adds a // comment above the ELEMENTS block, one line per line of text
func WithComment(text string) Option {
	return func(f *Formatter) {
		f.comment = text
	}
}

// New creates a new formatter
func New(opts ...Option) *Formatter {
	f := &Formatter{
		indentSize: 4,
		useSpaces:  true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format reconstructs a document that parses back into an equal molecule,
// given the same reference table
func (f *Formatter) Format(m *molecule.Molecule) string {
	var result strings.Builder

	if f.comment != "" {
		for _, line := range strings.Split(strings.TrimRight(f.comment, "\n"), "\n") {
			result.WriteString(strings.TrimRight("// "+line, " "))
			result.WriteString("\n")
		}
	}

	indent := f.getIndent(1)

	result.WriteString("ELEMENTS {\n")
	for _, e := range m.Elements {
		result.WriteString(indent)
		result.WriteString(f.FormatElement(e))
		result.WriteString(";\n")
	}
	result.WriteString("}\n\n")

	result.WriteString("BONDS {\n")
	for _, b := range m.Bonds {
		result.WriteString(indent)
		result.WriteString(f.FormatBond(b))
		result.WriteString(";\n")
	}
	result.WriteString("}\n")

	return result.String()
}

// FormatElement renders one element statement without its terminator
func (f *Formatter) FormatElement(e molecule.Element) string {
	args := []string{
		strconv.Itoa(e.Index),
		e.Symbol,
		formatNumber(e.Position.X),
		formatNumber(e.Position.Y),
		formatNumber(e.Position.Z),
	}

	var aes []string
	entry, known := f.defaults(e.Symbol)
	if !known || entry.Colour != e.Colour {
		aes = append(aes, "colour="+e.Colour)
	}
	if !known || entry.Radius != e.Radius {
		aes = append(aes, "radius="+formatNumber(e.Radius))
	}
	if len(aes) > 0 {
		args = append(args, "aes("+strings.Join(aes, ", ")+")")
	}

	return strings.Join(args, ", ")
}

// FormatBond renders one bond statement without its terminator. Aesthetics
// are only written when they differ from the bond defaults.
func (f *Formatter) FormatBond(b molecule.Bond) string {
	link := strconv.Itoa(b.From) + b.Degree.Separator() + strconv.Itoa(b.To)

	var aes []string
	if b.Alpha != molecule.DefaultBondAlpha {
		aes = append(aes, "alpha="+formatNumber(b.Alpha))
	}
	if b.Colour != molecule.DefaultBondColour {
		aes = append(aes, "colour="+b.Colour)
	}
	if len(aes) == 0 {
		return link
	}
	return link + ", aes(" + strings.Join(aes, ", ") + ")"
}

func (f *Formatter) defaults(symbol string) (reference.Entry, bool) {
	if f.table == nil {
		return reference.Entry{}, false
	}
	return f.table.Lookup(symbol)
}

// getIndent returns the indentation string for the given depth
func (f *Formatter) getIndent(depth int) string {
	if f.useSpaces {
		return strings.Repeat(" ", depth*f.indentSize)
	}
	return strings.Repeat("\t", depth)
}

// formatNumber writes the shortest decimal that parses back to the same value
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
