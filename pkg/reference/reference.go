// Package reference provides the chemical element reference table used to
// resolve symbols to atomic numbers and default appearance
package reference

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"molgen/pkg/colour"
)

// ErrUnknownSymbol is returned by MustLookup when a symbol is not in the table
var ErrUnknownSymbol = errors.New("unknown chemical symbol")

// Column positions in the reference CSV
const (
	colAtomicNumber = 0
	colSymbol       = 1
	colName         = 2 // not used for resolution
	colRadius       = 3
	colColour       = 4
	minColumns      = 5
)

//go:embed data/elements.csv
var defaultCSV string

// Entry is one row of the reference table
type Entry struct {
	AtomicNumber int     `json:"atomicNumber"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Radius       float64 `json:"radius"`
	Colour       string  `json:"colour"`
}

// Table is an immutable symbol lookup; safe to share between parsers
type Table struct {
	entries  []Entry
	bySymbol map[string]int
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the embedded reference table, loading it on first use
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Load(strings.NewReader(defaultCSV))
		if defaultErr != nil {
			defaultErr = fmt.Errorf("embedded reference table: %w", defaultErr)
		}
	})
	return defaultTable, defaultErr
}

// LoadFile loads a reference table from a CSV file
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference table %s: %w", path, err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference table %s: %w", path, err)
	}
	return t, nil
}

// Load reads a reference table. The first row is a header and is skipped.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	t := &Table{bySymbol: make(map[string]int)}
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++
		if row == 1 {
			continue
		}

		entry, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		key := strings.ToLower(entry.Symbol)
		if _, exists := t.bySymbol[key]; exists {
			return nil, fmt.Errorf("row %d: duplicate symbol %q", row, entry.Symbol)
		}
		t.bySymbol[key] = len(t.entries)
		t.entries = append(t.entries, entry)
	}

	if len(t.entries) == 0 {
		return nil, fmt.Errorf("reference table has no entries")
	}
	return t, nil
}

func parseRecord(record []string) (Entry, error) {
	if len(record) < minColumns {
		return Entry{}, fmt.Errorf("expected %d columns, got %d", minColumns, len(record))
	}

	field := func(i int) string {
		return strings.Trim(strings.TrimSpace(record[i]), `"`)
	}

	number, err := strconv.Atoi(field(colAtomicNumber))
	if err != nil {
		return Entry{}, fmt.Errorf("invalid atomic number %q", record[colAtomicNumber])
	}

	symbol := field(colSymbol)
	if symbol == "" {
		return Entry{}, fmt.Errorf("empty symbol")
	}

	radius, err := strconv.ParseFloat(field(colRadius), 64)
	if err != nil || radius < 0 {
		return Entry{}, fmt.Errorf("invalid radius %q for %s", record[colRadius], symbol)
	}

	hex, err := colour.Resolve(field(colColour))
	if err != nil {
		return Entry{}, fmt.Errorf("symbol %s: %w", symbol, err)
	}

	return Entry{
		AtomicNumber: number,
		Symbol:       symbol,
		Name:         field(colName),
		Radius:       radius,
		Colour:       hex,
	}, nil
}

// Lookup finds an entry by symbol, ignoring case
func (t *Table) Lookup(symbol string) (Entry, bool) {
	i, ok := t.bySymbol[strings.ToLower(strings.TrimSpace(symbol))]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// MustLookup is Lookup with an error for missing symbols
func (t *Table) MustLookup(symbol string) (Entry, error) {
	e, ok := t.Lookup(symbol)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	return e, nil
}

// Entries returns the rows in file order
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries
func (t *Table) Len() int {
	return len(t.entries)
}
