// Package document provides a high-level abstraction over a molecule file.
// It bundles the parsed molecule with its bond graph and offers statistics,
// structural checks and canonical saving behind a simple API.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"molgen/pkg/formatter"
	"molgen/pkg/molecule"
	"molgen/pkg/parser"
	"molgen/pkg/topology"
)

// Document represents a molecule file with its parsed molecule and bond graph
type Document struct {
	filename  string             // Original filename (if loaded from file)
	content   string             // Source text
	molecule  *molecule.Molecule // Parsed molecule
	graph     *topology.Graph    // Bond graph of molecule
	parser    *parser.Parser
	formatter *formatter.Formatter
}

// Option configures how a document is loaded
type Option func(*Document)

// WithParser sets the parser, e.g. one bound to a custom reference table
func WithParser(p *parser.Parser) Option {
	return func(d *Document) {
		if p != nil {
			d.parser = p
		}
	}
}

// WithFormatter sets the formatter used by Save and SaveAs
func WithFormatter(f *formatter.Formatter) Option {
	return func(d *Document) {
		if f != nil {
			d.formatter = f
		}
	}
}

// NewFromFile creates a new document by loading and parsing a file
func NewFromFile(filename string, opts ...Option) (*Document, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", filename, err)
	}

	return NewFromContent(absPath, string(content), opts...)
}

// NewFromContent creates a new document from content with a given name
func NewFromContent(name, content string, opts ...Option) (*Document, error) {
	doc := &Document{
		filename: name,
		content:  content,
	}
	for _, opt := range opts {
		opt(doc)
	}
	if doc.parser == nil {
		doc.parser = parser.New(nil)
	}
	if doc.formatter == nil {
		table, err := doc.parser.Table()
		if err != nil {
			return nil, err
		}
		doc.formatter = formatter.New(formatter.WithTable(table))
	}

	m, err := doc.parser.ParseString(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", displayName(name), err)
	}

	g, err := topology.Build(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build bond graph: %w", err)
	}

	doc.molecule = m
	doc.graph = g
	return doc, nil
}

func displayName(name string) string {
	if name == "" {
		return "content"
	}
	return filepath.Base(name)
}

// GetFilename returns the document's filename
func (d *Document) GetFilename() string {
	return d.filename
}

// GetContent returns the source text the document was parsed from
func (d *Document) GetContent() string {
	return d.content
}

// GetMolecule returns the parsed molecule
func (d *Document) GetMolecule() *molecule.Molecule {
	return d.molecule
}

// GetTopology returns the bond graph
func (d *Document) GetTopology() *topology.Graph {
	return d.graph
}

// Stats summarises a molecule
type Stats struct {
	Formula   string         `json:"formula"`
	Elements  int            `json:"elements"`
	Bonds     int            `json:"bonds"`
	Symbols   map[string]int `json:"symbols"`
	Degrees   map[string]int `json:"degrees"`
	Fragments [][]int        `json:"fragments"`
	Isolated  []int          `json:"isolated"`
}

// GetStats returns counts, formula and fragment structure for the document
func (d *Document) GetStats() (*Stats, error) {
	fragments, err := d.graph.Fragments()
	if err != nil {
		return nil, err
	}
	isolated, err := d.graph.Isolated()
	if err != nil {
		return nil, err
	}

	degrees := make(map[string]int)
	for degree, n := range d.molecule.DegreeCounts() {
		degrees[degree.String()] = n
	}

	return &Stats{
		Formula:   d.molecule.Formula(),
		Elements:  len(d.molecule.Elements),
		Bonds:     len(d.molecule.Bonds),
		Symbols:   d.molecule.SymbolCounts(),
		Degrees:   degrees,
		Fragments: fragments,
		Isolated:  isolated,
	}, nil
}

// Validation Methods

// ValidationIssue is a structural oddity in a molecule that parses cleanly
type ValidationIssue struct {
	IssueType string `json:"type"`
	Message   string `json:"message"`
	Elements  []int  `json:"elements"`
	Severity  string `json:"severity"` // "warning" or "info"
}

const (
	IssueDisconnected    = "disconnected"
	IssueIsolatedAtom    = "isolated_atom"
	IssueCoincidentAtoms = "coincident_atoms"
	IssueInvisibleBond   = "invisible_bond"
)

// Validate performs structural checks on the molecule. Issues never make a
// document invalid; a document that failed to parse has no molecule to check.
func (d *Document) Validate() ([]ValidationIssue, error) {
	var issues []ValidationIssue

	fragments, err := d.graph.Fragments()
	if err != nil {
		return nil, err
	}
	if len(fragments) > 1 {
		issues = append(issues, ValidationIssue{
			IssueType: IssueDisconnected,
			Message:   fmt.Sprintf("molecule has %d disconnected fragments", len(fragments)),
			Severity:  "warning",
		})
	}

	if len(d.molecule.Elements) > 1 {
		isolated, err := d.graph.Isolated()
		if err != nil {
			return nil, err
		}
		for _, index := range isolated {
			issues = append(issues, ValidationIssue{
				IssueType: IssueIsolatedAtom,
				Message:   fmt.Sprintf("element %s has no bonds", d.label(index)),
				Elements:  []int{index},
				Severity:  "info",
			})
		}
	}

	for _, group := range d.coincident() {
		labels := make([]string, len(group))
		for i, index := range group {
			labels[i] = d.label(index)
		}
		issues = append(issues, ValidationIssue{
			IssueType: IssueCoincidentAtoms,
			Message:   fmt.Sprintf("elements %s share the same position", strings.Join(labels, ", ")),
			Elements:  group,
			Severity:  "warning",
		})
	}

	for _, b := range d.molecule.Bonds {
		if b.Alpha == 0 {
			issues = append(issues, ValidationIssue{
				IssueType: IssueInvisibleBond,
				Message:   fmt.Sprintf("bond %s has alpha 0 and will not be visible", b),
				Elements:  []int{b.From, b.To},
				Severity:  "info",
			})
		}
	}

	return issues, nil
}

// coincident groups elements placed at exactly the same position, in document order
func (d *Document) coincident() [][]int {
	byPosition := make(map[molecule.Vec3][]int)
	var positions []molecule.Vec3
	for _, e := range d.molecule.Elements {
		if _, seen := byPosition[e.Position]; !seen {
			positions = append(positions, e.Position)
		}
		byPosition[e.Position] = append(byPosition[e.Position], e.Index)
	}

	var groups [][]int
	for _, p := range positions {
		if len(byPosition[p]) > 1 {
			groups = append(groups, byPosition[p])
		}
	}
	return groups
}

func (d *Document) label(index int) string {
	if e, ok := d.molecule.Element(index); ok {
		return e.Label()
	}
	return fmt.Sprintf("%d", index)
}

// File Operations

// Save writes the canonical form of the document back to its original file
func (d *Document) Save() error {
	if d.filename == "" {
		return fmt.Errorf("cannot save: document was not loaded from a file")
	}
	return d.SaveAs(d.filename)
}

// SaveAs writes the canonical form of the document to a specified file
func (d *Document) SaveAs(filename string) error {
	formatted := d.formatter.Format(d.molecule)

	if err := os.WriteFile(filename, []byte(formatted), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}

	d.content = formatted
	d.filename = filename
	return nil
}

// SaveToString returns the canonical form of the document
func (d *Document) SaveToString() string {
	return d.formatter.Format(d.molecule)
}

// Summary renders the human-readable overview used by the CLI
func (d *Document) Summary() (string, error) {
	stats, err := d.GetStats()
	if err != nil {
		return "", err
	}
	issues, err := d.Validate()
	if err != nil {
		return "", err
	}

	warnings := make([]string, len(issues))
	for i, issue := range issues {
		warnings[i] = issue.Message
	}
	return d.formatter.Summary(displayName(d.filename), d.molecule, stats.Fragments, warnings), nil
}

// SortedSymbols returns the symbols present in the molecule, alphabetically
func (s *Stats) SortedSymbols() []string {
	symbols := make([]string, 0, len(s.Symbols))
	for symbol := range s.Symbols {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// String returns a string representation of the document
func (d *Document) String() string {
	return fmt.Sprintf("Document[%s]: %s, %d elements, %d bonds",
		displayName(d.filename), valueOr(d.molecule.Formula(), "empty"), len(d.molecule.Elements), len(d.molecule.Bonds))
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
