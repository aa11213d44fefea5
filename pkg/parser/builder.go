package parser

import (
	"molgen/pkg/molecule"
	"molgen/pkg/reference"
)

// builder accumulates the elements and bonds of one document. It is owned by a
// single Parse call and discarded on the first error.
type builder struct {
	table    *reference.Table
	elements []molecule.Element
	indices  map[int]struct{}
	bonds    []molecule.Bond
	pairs    map[[2]int]struct{}
}

func newBuilder(table *reference.Table) *builder {
	return &builder{
		table:   table,
		indices: make(map[int]struct{}),
		pairs:   make(map[[2]int]struct{}),
	}
}

func (b *builder) hasElement(index int) bool {
	_, ok := b.indices[index]
	return ok
}

// pairKey orders a bond's endpoints so both directions share a key
func pairKey(a, c int) [2]int {
	if a > c {
		a, c = c, a
	}
	return [2]int{a, c}
}

func (b *builder) hasBond(a, c int) bool {
	_, ok := b.pairs[pairKey(a, c)]
	return ok
}

// addElement parses an ELEMENTS statement and records the element on success
func (b *builder) addElement(stmt string) (molecule.Element, error) {
	e, err := b.parseElement(stmt)
	if err != nil {
		return molecule.Element{}, err
	}
	b.elements = append(b.elements, e)
	b.indices[e.Index] = struct{}{}
	return e, nil
}

// addBond parses a BONDS statement and records the bond on success
func (b *builder) addBond(stmt string) (molecule.Bond, error) {
	bond, err := b.parseBond(stmt)
	if err != nil {
		return molecule.Bond{}, err
	}
	b.bonds = append(b.bonds, bond)
	b.pairs[pairKey(bond.From, bond.To)] = struct{}{}
	return bond, nil
}

func (b *builder) molecule() *molecule.Molecule {
	return molecule.New(b.elements, b.bonds)
}
