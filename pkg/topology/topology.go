// Package topology analyses the bond graph of a molecule: fragments,
// neighbours, valence and paths between elements
package topology

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"

	"molgen/pkg/molecule"
)

// ErrUnknownElement is returned when a query names an index that is not in the molecule
var ErrUnknownElement = errors.New("unknown element")

// Graph is an undirected view of a molecule keyed by element index
type Graph struct {
	g     graph.Graph[int, molecule.Element]
	order map[int]int // element index -> position in the document
	index []int       // document order
}

func elementHash(e molecule.Element) int {
	return e.Index
}

// Build creates the bond graph. Bond degree is stored as the edge weight and
// bond colour as an edge attribute.
func Build(m *molecule.Molecule) (*Graph, error) {
	g := graph.New(elementHash)
	tg := &Graph{
		g:     g,
		order: make(map[int]int, len(m.Elements)),
		index: make([]int, 0, len(m.Elements)),
	}

	for i, e := range m.Elements {
		if err := g.AddVertex(e); err != nil {
			return nil, fmt.Errorf("add element %d failed: %w", e.Index, err)
		}
		tg.order[e.Index] = i
		tg.index = append(tg.index, e.Index)
	}

	for _, b := range m.Bonds {
		err := g.AddEdge(b.From, b.To,
			graph.EdgeWeight(int(b.Degree)),
			graph.EdgeAttribute("colour", b.Colour),
		)
		if err != nil {
			return nil, fmt.Errorf("add bond %s failed: %w", b, err)
		}
	}

	return tg, nil
}

func (tg *Graph) has(index int) bool {
	_, ok := tg.order[index]
	return ok
}

// byDocumentOrder sorts indices the way their elements appear in the document
func (tg *Graph) byDocumentOrder(indices []int) {
	sort.Slice(indices, func(i, j int) bool {
		return tg.order[indices[i]] < tg.order[indices[j]]
	})
}

// Order returns the number of elements
func (tg *Graph) Order() int {
	return len(tg.index)
}

// Size returns the number of bonds
func (tg *Graph) Size() (int, error) {
	return tg.g.Size()
}

// Neighbours returns the elements bonded to index, in document order
func (tg *Graph) Neighbours(index int) ([]int, error) {
	if !tg.has(index) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownElement, index)
	}
	adjacency, err := tg.g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	neighbours := make([]int, 0, len(adjacency[index]))
	for n := range adjacency[index] {
		neighbours = append(neighbours, n)
	}
	tg.byDocumentOrder(neighbours)
	return neighbours, nil
}

// Degree returns the number of bonds touching index
func (tg *Graph) Degree(index int) (int, error) {
	neighbours, err := tg.Neighbours(index)
	if err != nil {
		return 0, err
	}
	return len(neighbours), nil
}

// Valence returns the sum of bond degrees touching index, so a double bond counts twice
func (tg *Graph) Valence(index int) (int, error) {
	if !tg.has(index) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownElement, index)
	}
	adjacency, err := tg.g.AdjacencyMap()
	if err != nil {
		return 0, err
	}

	total := 0
	for _, edge := range adjacency[index] {
		total += edge.Properties.Weight
	}
	return total, nil
}

// Fragments returns the connected components. Fragments are ordered by their
// first element in the document and list their members in document order.
func (tg *Graph) Fragments() ([][]int, error) {
	visited := make(map[int]bool, len(tg.index))
	var fragments [][]int

	for _, start := range tg.index {
		if visited[start] {
			continue
		}
		var members []int
		err := graph.BFS(tg.g, start, func(index int) bool {
			visited[index] = true
			members = append(members, index)
			return false
		})
		if err != nil {
			return nil, fmt.Errorf("walk from element %d failed: %w", start, err)
		}
		tg.byDocumentOrder(members)
		fragments = append(fragments, members)
	}

	return fragments, nil
}

// Connected reports whether the molecule is a single fragment. An empty
// molecule counts as connected.
func (tg *Graph) Connected() (bool, error) {
	fragments, err := tg.Fragments()
	if err != nil {
		return false, err
	}
	return len(fragments) <= 1, nil
}

// Isolated returns the elements without any bond, in document order
func (tg *Graph) Isolated() ([]int, error) {
	adjacency, err := tg.g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	var isolated []int
	for _, index := range tg.index {
		if len(adjacency[index]) == 0 {
			isolated = append(isolated, index)
		}
	}
	return isolated, nil
}

// Path returns the shortest chain of bonds from one element to another,
// counting every bond as one step regardless of degree
func (tg *Graph) Path(from, to int) ([]int, error) {
	for _, index := range []int{from, to} {
		if !tg.has(index) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownElement, index)
		}
	}
	if from == to {
		return []int{from}, nil
	}

	path, err := graph.ShortestPath(tg.g, from, to)
	if err != nil {
		return nil, fmt.Errorf("no path from %d to %d: %w", from, to, err)
	}
	return path, nil
}

// BondColour returns the colour attribute stored on the edge between a and b
func (tg *Graph) BondColour(a, b int) (string, error) {
	edge, err := tg.g.Edge(a, b)
	if err != nil {
		return "", fmt.Errorf("no bond between %d and %d: %w", a, b, err)
	}
	return edge.Properties.Attributes["colour"], nil
}
