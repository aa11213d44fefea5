package topology

import (
	"errors"
	"reflect"
	"testing"

	"molgen/pkg/molecule"
)

func element(index int, symbol string) molecule.Element {
	return molecule.Element{Index: index, Symbol: symbol, Colour: "#ffffff"}
}

func bond(from, to int, degree molecule.BondDegree) molecule.Bond {
	return molecule.Bond{From: from, To: to, Degree: degree, Alpha: 1, Colour: molecule.DefaultBondColour}
}

// ethanol-like chain plus a detached water and a lone argon, with
// indices deliberately out of numeric order
func testMolecule() *molecule.Molecule {
	return molecule.New(
		[]molecule.Element{
			element(10, "C"),
			element(3, "C"),
			element(7, "O"),
			element(20, "O"),
			element(21, "H"),
			element(22, "H"),
			element(30, "Ar"),
		},
		[]molecule.Bond{
			bond(10, 3, molecule.Single),
			bond(3, 7, molecule.Double),
			bond(20, 21, molecule.Single),
			bond(22, 20, molecule.Single),
		},
	)
}

func build(t *testing.T) *Graph {
	t.Helper()
	g, err := Build(testMolecule())
	if err != nil {
		t.Fatalf("Failed to build graph: %v", err)
	}
	return g
}

func TestBuild(t *testing.T) {
	g := build(t)

	if g.Order() != 7 {
		t.Errorf("Expected 7 elements, got %d", g.Order())
	}
	size, err := g.Size()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if size != 4 {
		t.Errorf("Expected 4 bonds, got %d", size)
	}
}

func TestFragments(t *testing.T) {
	g := build(t)

	fragments, err := g.Fragments()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := [][]int{{10, 3, 7}, {20, 21, 22}, {30}}
	if !reflect.DeepEqual(fragments, expected) {
		t.Errorf("Expected %v, got %v", expected, fragments)
	}

	connected, err := g.Connected()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if connected {
		t.Error("Expected a disconnected molecule")
	}
}

func TestConnectedEmpty(t *testing.T) {
	g, err := Build(molecule.New(nil, nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	connected, err := g.Connected()
	if err != nil || !connected {
		t.Errorf("Expected an empty molecule to be connected, got %v %v", connected, err)
	}
}

func TestNeighboursAndValence(t *testing.T) {
	g := build(t)

	neighbours, err := g.Neighbours(3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(neighbours, []int{10, 7}) {
		t.Errorf("Expected [10 7], got %v", neighbours)
	}

	degree, _ := g.Degree(3)
	if degree != 2 {
		t.Errorf("Expected degree 2, got %d", degree)
	}

	valence, _ := g.Valence(3)
	if valence != 3 {
		t.Errorf("Expected valence 3 (single + double), got %d", valence)
	}

	if _, err := g.Neighbours(99); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("Expected ErrUnknownElement, got %v", err)
	}
	if _, err := g.Valence(99); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("Expected ErrUnknownElement, got %v", err)
	}
}

func TestIsolated(t *testing.T) {
	isolated, err := build(t).Isolated()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(isolated, []int{30}) {
		t.Errorf("Expected [30], got %v", isolated)
	}
}

func TestPath(t *testing.T) {
	g := build(t)

	path, err := g.Path(10, 7)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(path, []int{10, 3, 7}) {
		t.Errorf("Expected [10 3 7], got %v", path)
	}

	path, err = g.Path(21, 21)
	if err != nil || !reflect.DeepEqual(path, []int{21}) {
		t.Errorf("Expected [21], got %v %v", path, err)
	}

	if _, err := g.Path(10, 30); err == nil {
		t.Error("Expected an error for disconnected elements")
	}
	if _, err := g.Path(10, 99); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("Expected ErrUnknownElement, got %v", err)
	}
}

func TestBondColour(t *testing.T) {
	g := build(t)

	colour, err := g.BondColour(7, 3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if colour != molecule.DefaultBondColour {
		t.Errorf("Expected %s, got %s", molecule.DefaultBondColour, colour)
	}

	if _, err := g.BondColour(10, 7); err == nil {
		t.Error("Expected an error for unbonded elements")
	}
}
