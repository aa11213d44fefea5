// Package molecule defines the validated molecule model produced by the parser
package molecule

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// DefaultBondColour is used when a bond has no colour override
	DefaultBondColour = "#222222"
	// DefaultBondAlpha is used when a bond has no alpha override
	DefaultBondAlpha = 1.0
)

// Vec3 is a position in model space
type Vec3 struct {
	X float64 `json:"x" yaml:"x" toml:"x" msgpack:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y" msgpack:"y"`
	Z float64 `json:"z" yaml:"z" toml:"z" msgpack:"z"`
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// BondDegree is the multiplicity of a bond
type BondDegree int

const (
	Single BondDegree = 1
	Double BondDegree = 2
	Triple BondDegree = 3
)

func (d BondDegree) String() string {
	switch d {
	case Single:
		return "single"
	case Double:
		return "double"
	case Triple:
		return "triple"
	default:
		return "unknown"
	}
}

// Separator returns the short form used between indices in a bond statement
func (d BondDegree) Separator() string {
	switch d {
	case Single:
		return "-"
	case Double:
		return "="
	case Triple:
		return "#"
	default:
		return "?"
	}
}

// Valid reports whether d is one of the supported degrees
func (d BondDegree) Valid() bool {
	return d >= Single && d <= Triple
}

// Element is an atom placed in the molecule
type Element struct {
	Index        int     `json:"index" yaml:"index" toml:"index" msgpack:"index"`
	Symbol       string  `json:"symbol" yaml:"symbol" toml:"symbol" msgpack:"symbol"`
	AtomicNumber int     `json:"atomicNumber" yaml:"atomicNumber" toml:"atomicNumber" msgpack:"atomicNumber"`
	Position     Vec3    `json:"position" yaml:"position" toml:"position" msgpack:"position"`
	Radius       float64 `json:"radius" yaml:"radius" toml:"radius" msgpack:"radius"`
	Colour       string  `json:"colour" yaml:"colour" toml:"colour" msgpack:"colour"`
}

// Label is the symbol followed by the index, e.g. "O3"
func (e Element) Label() string {
	return fmt.Sprintf("%s%d", e.Symbol, e.Index)
}

// Bond connects two elements by index
type Bond struct {
	From   int        `json:"from" yaml:"from" toml:"from" msgpack:"from"`
	To     int        `json:"to" yaml:"to" toml:"to" msgpack:"to"`
	Degree BondDegree `json:"degree" yaml:"degree" toml:"degree" msgpack:"degree"`
	Alpha  float64    `json:"alpha" yaml:"alpha" toml:"alpha" msgpack:"alpha"`
	Colour string     `json:"colour" yaml:"colour" toml:"colour" msgpack:"colour"`
}

// Connects reports whether the bond joins a and b in either direction
func (b Bond) Connects(a, c int) bool {
	return (b.From == a && b.To == c) || (b.From == c && b.To == a)
}

// Other returns the opposite endpoint of index, or -1 when index is not an endpoint
func (b Bond) Other(index int) int {
	switch index {
	case b.From:
		return b.To
	case b.To:
		return b.From
	default:
		return -1
	}
}

func (b Bond) String() string {
	return fmt.Sprintf("%d%s%d", b.From, b.Degree.Separator(), b.To)
}

// Molecule is the finished (elements, bonds) pair. Treat it as read-only.
type Molecule struct {
	Elements []Element `json:"elements" yaml:"elements" toml:"elements" msgpack:"elements"`
	Bonds    []Bond    `json:"bonds" yaml:"bonds" toml:"bonds" msgpack:"bonds"`
}

// New builds a molecule from copies of the given slices
func New(elements []Element, bonds []Bond) *Molecule {
	m := &Molecule{
		Elements: make([]Element, len(elements)),
		Bonds:    make([]Bond, len(bonds)),
	}
	copy(m.Elements, elements)
	copy(m.Bonds, bonds)
	return m
}

// Element finds an element by its document index
func (m *Molecule) Element(index int) (Element, bool) {
	for _, e := range m.Elements {
		if e.Index == index {
			return e, true
		}
	}
	return Element{}, false
}

// HasBond reports whether a and b are bonded, regardless of order
func (m *Molecule) HasBond(a, b int) bool {
	for _, bond := range m.Bonds {
		if bond.Connects(a, b) {
			return true
		}
	}
	return false
}

// BondsOf returns every bond touching index
func (m *Molecule) BondsOf(index int) []Bond {
	var out []Bond
	for _, bond := range m.Bonds {
		if bond.From == index || bond.To == index {
			out = append(out, bond)
		}
	}
	return out
}

// SymbolCounts counts elements per symbol
func (m *Molecule) SymbolCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range m.Elements {
		counts[e.Symbol]++
	}
	return counts
}

// DegreeCounts counts bonds per degree
func (m *Molecule) DegreeCounts() map[BondDegree]int {
	counts := make(map[BondDegree]int)
	for _, b := range m.Bonds {
		counts[b.Degree]++
	}
	return counts
}

// Formula returns the molecular formula in Hill order: carbon, hydrogen,
// then the rest alphabetically. Without carbon every symbol is alphabetical.
func (m *Molecule) Formula() string {
	counts := m.SymbolCounts()
	if len(counts) == 0 {
		return ""
	}

	symbols := make([]string, 0, len(counts))
	for s := range counts {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	var order []string
	if _, hasCarbon := counts["C"]; hasCarbon {
		order = append(order, "C")
		if _, hasHydrogen := counts["H"]; hasHydrogen {
			order = append(order, "H")
		}
		for _, s := range symbols {
			if s != "C" && s != "H" {
				order = append(order, s)
			}
		}
	} else {
		order = symbols
	}

	var sb strings.Builder
	for _, s := range order {
		sb.WriteString(s)
		if n := counts[s]; n > 1 {
			fmt.Fprintf(&sb, "%d", n)
		}
	}
	return sb.String()
}

// Equal compares two molecules element by element and bond by bond, in order
func (m *Molecule) Equal(other *Molecule) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.Elements) != len(other.Elements) || len(m.Bonds) != len(other.Bonds) {
		return false
	}
	for i := range m.Elements {
		if m.Elements[i] != other.Elements[i] {
			return false
		}
	}
	for i := range m.Bonds {
		if m.Bonds[i] != other.Bonds[i] {
			return false
		}
	}
	return true
}

func (m *Molecule) String() string {
	return fmt.Sprintf("Molecule[%s]: %d elements, %d bonds", m.Formula(), len(m.Elements), len(m.Bonds))
}
