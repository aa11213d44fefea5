// Package parser implements the molecule document parser: a statement reader,
// a bracket-aware argument splitter, element and bond statement validation and
// the block-level driver that produces a molecule.Molecule
package parser

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"molgen/pkg/molecule"
	"molgen/pkg/reference"
)

const (
	blockElements = "ELEMENTS"
	blockBonds    = "BONDS"

	elementsHeader = "elements{"
	bondsHeader    = "bonds{"
	blockClose     = "}"
)

// driverState is the position of the driver within the document
type driverState int

const (
	stateStart driverState = iota
	stateExpectElementsHeader
	stateInElements
	stateExpectBondsHeader
	stateInBonds
	stateDone
)

var driverStateNames = map[driverState]string{
	stateStart:                "start",
	stateExpectElementsHeader: "expect-elements-header",
	stateInElements:           "in-elements",
	stateExpectBondsHeader:    "expect-bonds-header",
	stateInBonds:              "in-bonds",
	stateDone:                 "done",
}

func (s driverState) String() string {
	return driverStateNames[s]
}

// Parser turns molecule documents into molecules. It holds only immutable
// configuration and may be reused for any number of documents.
type Parser struct {
	table  *reference.Table
	logger *slog.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the logger used for debug tracing
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a parser resolving symbols against table. A nil table selects
// the embedded default table.
func New(table *reference.Table, opts ...Option) *Parser {
	p := &Parser{
		table:  table,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Table returns the reference table in use
func (p *Parser) Table() (*reference.Table, error) {
	if p.table != nil {
		return p.table, nil
	}
	return reference.Default()
}

// ParseString parses a document held in memory
func (p *Parser) ParseString(content string) (*molecule.Molecule, error) {
	return p.Parse(strings.NewReader(content))
}

// ParseFile opens and parses a document file
func (p *Parser) ParseFile(filename string) (*molecule.Molecule, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer f.Close()

	return p.Parse(bufio.NewReader(f))
}

// Parse reads an ELEMENTS block followed by a BONDS block. The first error
// aborts the parse; a molecule is only returned when both blocks succeed.
func (p *Parser) Parse(r io.Reader) (*molecule.Molecule, error) {
	table, err := p.Table()
	if err != nil {
		return nil, err
	}

	sr := NewStatementReader(r)
	b := newBuilder(table)
	state := stateStart

	for {
		switch state {
		case stateStart:
			p.logger.Debug("parse started", "symbols", table.Len())
			state = stateExpectElementsHeader

		case stateExpectElementsHeader:
			if err := p.expectHeader(sr, elementsHeader, blockElements); err != nil {
				return nil, err
			}
			state = stateInElements

		case stateInElements:
			stmt, closed, err := p.nextInBlock(sr, blockElements)
			if err != nil {
				return nil, err
			}
			if closed {
				p.logger.Debug("block closed", "block", blockElements, "line", stmt.Line, "elements", len(b.elements))
				state = stateExpectBondsHeader
				continue
			}
			e, err := b.addElement(stmt.Text)
			if err != nil {
				return nil, atLine(err, stmt.Line)
			}
			p.logger.Debug("element parsed", "line", stmt.Line, "index", e.Index, "symbol", e.Symbol)

		case stateExpectBondsHeader:
			if err := p.expectHeader(sr, bondsHeader, blockBonds); err != nil {
				return nil, err
			}
			state = stateInBonds

		case stateInBonds:
			stmt, closed, err := p.nextInBlock(sr, blockBonds)
			if err != nil {
				return nil, err
			}
			if closed {
				p.logger.Debug("block closed", "block", blockBonds, "line", stmt.Line, "bonds", len(b.bonds))
				state = stateDone
				continue
			}
			bond, err := b.addBond(stmt.Text)
			if err != nil {
				return nil, atLine(err, stmt.Line)
			}
			p.logger.Debug("bond parsed", "line", stmt.Line, "bond", bond.String())

		case stateDone:
			return b.molecule(), nil
		}
	}
}

// expectHeader reads the next statement and requires it to open the named block
func (p *Parser) expectHeader(sr *StatementReader, header, block string) error {
	stmt, err := sr.Next()
	if err == io.EOF {
		return &Error{Kind: BlockHeaderError, Line: sr.Line(), Field: strings.ToUpper(header)}
	}
	if err != nil {
		return err
	}
	if strings.ToLower(strings.TrimSpace(stmt.Text)) != header {
		return &Error{Kind: BlockHeaderError, Line: stmt.Line, Field: strings.ToUpper(header), Value: stmt.Text}
	}
	p.logger.Debug("block opened", "block", block, "line", stmt.Line)
	return nil
}

// nextInBlock reads the next statement of a block, reporting whether it closes the block
func (p *Parser) nextInBlock(sr *StatementReader, block string) (Statement, bool, error) {
	stmt, err := sr.Next()
	if err == io.EOF {
		return Statement{}, false, &Error{Kind: BlockNotClosedError, Line: sr.Line(), Field: block}
	}
	if err != nil {
		return Statement{}, false, err
	}
	return stmt, stmt.Text == blockClose, nil
}
