package parser

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"molgen/pkg/molecule"
	"molgen/pkg/reference"
)

const water = `// water, roughly to scale
ELEMENTS {
    0, O, 0, 0, 0, aes(colour=red);
    1, H, 0.96, 0, 0;
    index = 2, symbol = H, x = -0.24, y = 0.93, z = 0;
}

BONDS {
    0-1;
    0 single 2, aes(alpha=0.5); /* weaker */
}
`

func TestParseWater(t *testing.T) {
	m, err := New(nil).ParseString(water)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if len(m.Elements) != 3 {
		t.Fatalf("Expected 3 elements, got %d", len(m.Elements))
	}
	if len(m.Bonds) != 2 {
		t.Fatalf("Expected 2 bonds, got %d", len(m.Bonds))
	}

	oxygen := m.Elements[0]
	if oxygen.Symbol != "O" || oxygen.AtomicNumber != 8 || oxygen.Colour != "#eb3c25" {
		t.Errorf("Unexpected oxygen: %+v", oxygen)
	}

	h2 := m.Elements[2]
	if h2.Index != 2 || h2.Position != (molecule.Vec3{X: -0.24, Y: 0.93, Z: 0}) || h2.Radius != 120 {
		t.Errorf("Unexpected hydrogen: %+v", h2)
	}

	second := m.Bonds[1]
	if second.From != 0 || second.To != 2 || second.Degree != molecule.Single || second.Alpha != 0.5 {
		t.Errorf("Unexpected bond: %+v", second)
	}
	if second.Colour != molecule.DefaultBondColour {
		t.Errorf("Expected default bond colour, got %s", second.Colour)
	}

	if m.Formula() != "H2O" {
		t.Errorf("Expected H2O, got %s", m.Formula())
	}
}

func TestParseEmptyBlocks(t *testing.T) {
	for _, input := range []string{"ELEMENTS{}BONDS{}", "elements {\n}\nbonds {\n}\n", "Elements{ } Bonds{ }"} {
		m, err := New(nil).ParseString(input)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", input, err)
			continue
		}
		if m == nil || len(m.Elements) != 0 || len(m.Bonds) != 0 {
			t.Errorf("%q: expected an empty molecule, got %v", input, m)
		}
	}
}

func TestParsePreservesDocumentOrder(t *testing.T) {
	input := "ELEMENTS{5,C,0,0,0;2,N,1,0,0;9,O,2,0,0;}BONDS{9=2;2-5;}"

	m, err := New(nil).ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	indices := []int{5, 2, 9}
	for i, want := range indices {
		if m.Elements[i].Index != want {
			t.Errorf("Element %d: expected index %d, got %d", i, want, m.Elements[i].Index)
		}
	}
	if m.Bonds[0].From != 9 || m.Bonds[0].To != 2 || m.Bonds[0].Degree != molecule.Double {
		t.Errorf("Unexpected first bond: %+v", m.Bonds[0])
	}
	if m.Bonds[1].String() != "2-5" {
		t.Errorf("Expected 2-5, got %s", m.Bonds[1])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
		line  int
	}{
		{"empty document", "", BlockHeaderError, 1},
		{"bonds first", "BONDS{}", BlockHeaderError, 1},
		{"statement before header", "0,H,0,0,0;", BlockHeaderError, 1},
		{"missing bonds block", "ELEMENTS{\n}\n", BlockHeaderError, 3},
		{"wrong second header", "ELEMENTS{}\nATOMS{}", BlockHeaderError, 2},
		{"elements not closed", "ELEMENTS{\n0,H,0,0,0;\n1,H,1,0,0;", BlockNotClosedError, 3},
		{"elements not closed, trailing newline", "ELEMENTS{\n0,H,0,0,0;\n", BlockNotClosedError, 3},
		{"bonds not closed", "ELEMENTS{0,H,0,0,0;}BONDS{", BlockNotClosedError, 1},
		{"missing semicolon at end", "ELEMENTS{0,H,0,0,0;}\nBONDS{0-1", SyntaxError, 2},
		{"open comment", "ELEMENTS{\n/* open", SyntaxError, 2},
		{"orphan slash", "ELEMENTS{\n\n0/H,0,0,0;}", LexError, 3},
		{"unknown symbol on continuation line", "ELEMENTS{\n0,Xx,\n0,0,0;\n}", UnknownSymbolError, 3},
		{"duplicate index", "ELEMENTS{\n0,H,0,0,0;\n0,H,1,0,0;\n}BONDS{}", DuplicateIndexError, 3},
		{"unknown element", "ELEMENTS{\n0,H,0,0,0;\n}\nBONDS{\n0-1;\n}", UnknownElementError, 5},
		{"self bond", "ELEMENTS{\n0,H,0,0,0;\n}\nBONDS{\n0-0;\n}", SelfBondError, 5},
		{"duplicate bond", "ELEMENTS{0,H,0,0,0;1,C,1,1,1;}\nBONDS{\n0-1;\n1-0;\n}", DuplicateBondError, 4},
		{"bad aesthetics", "ELEMENTS{\n0,H,0,0,0,aes(radius=-1);\n}BONDS{}", AestheticSyntaxError, 2},
		{"bad bond", "ELEMENTS{0,H,0,0,0;1,H,0,0,0;}BONDS{\n0~1;}", SyntaxError, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(nil).ParseString(tt.input)
			if m != nil {
				t.Errorf("Expected no molecule on error, got %v", m)
			}
			pe := expectKind(t, err, tt.kind)
			if pe.Line != tt.line {
				t.Errorf("Expected line %d, got %d (%v)", tt.line, pe.Line, err)
			}
		})
	}
}

func TestParseBlockErrorDetails(t *testing.T) {
	_, err := New(nil).ParseString("ELEMENTS{\n0,H,0,0,0;\n1,H,1,0,0;")
	pe := expectKind(t, err, BlockNotClosedError)
	if pe.Field != blockElements {
		t.Errorf("Expected ELEMENTS block, got %q", pe.Field)
	}
	if !strings.HasPrefix(err.Error(), "line 3: BlockNotClosedError") {
		t.Errorf("Unexpected message: %s", err)
	}

	_, err = New(nil).ParseString("ELEMENTS{}BONDS{0-1;")
	if kind, _ := KindOf(err); kind != UnknownElementError {
		t.Errorf("Expected the bond error before the missing '}', got %v", err)
	}

	_, err = New(nil).ParseString("BONDS{}")
	pe = expectKind(t, err, BlockHeaderError)
	if pe.Field != "ELEMENTS{" || pe.Value != "BONDS{" {
		t.Errorf("Unexpected header error: %+v", pe)
	}
}

func TestParseIgnoresTrailingContent(t *testing.T) {
	m, err := New(nil).ParseString("ELEMENTS{0,H,0,0,0;}BONDS{} anything / goes { here")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(m.Elements) != 1 {
		t.Errorf("Expected 1 element, got %d", len(m.Elements))
	}
}

func TestParseIsDeterministic(t *testing.T) {
	p := New(nil)

	first, err := p.ParseString(water)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if _, err := p.ParseString("ELEMENTS{7,C,0,0,0;}BONDS{}"); err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if _, err := p.ParseString("ELEMENTS{0,H,0,0,0;0,H,0,0,0;}BONDS{}"); err == nil {
		t.Fatal("Expected a duplicate index error")
	}

	second, err := p.ParseString(water)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("Repeated parses differ:\n%v\n%v", first, second)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "water.mol")
	if err := os.WriteFile(path, []byte(water), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	m, err := New(nil).ParseFile(path)
	if err != nil {
		t.Fatalf("Failed to parse file: %v", err)
	}
	if m.Formula() != "H2O" {
		t.Errorf("Expected H2O, got %s", m.Formula())
	}

	_, err = New(nil).ParseFile(filepath.Join(dir, "missing.mol"))
	if err == nil || !strings.Contains(err.Error(), "failed to open file") {
		t.Errorf("Expected open error, got %v", err)
	}
	if _, ok := KindOf(err); ok {
		t.Error("I/O failures must not be reported as parse errors")
	}
}

func TestParseWithCustomTable(t *testing.T) {
	csv := "\"AtomicNumber\",\"Symbol\",\"Name\",\"Radius\",\"Colour\"\n200,\"Qq\",\"Quxium\",100,\"#123456\"\n"
	table, err := reference.Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Failed to load table: %v", err)
	}

	p := New(table)
	m, err := p.ParseString("ELEMENTS{0,qq,0,0,0;}BONDS{}")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	e := m.Elements[0]
	if e.Symbol != "Qq" || e.AtomicNumber != 200 || e.Radius != 100 || e.Colour != "#123456" {
		t.Errorf("Unexpected element: %+v", e)
	}

	_, err = p.ParseString("ELEMENTS{0,H,0,0,0;}BONDS{}")
	expectKind(t, err, UnknownSymbolError)
}

func TestParserDefaultTable(t *testing.T) {
	want, err := reference.Default()
	if err != nil {
		t.Fatalf("Failed to load default table: %v", err)
	}
	got, err := New(nil).Table()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != want {
		t.Error("Expected the embedded default table")
	}
}

func TestParseWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := New(nil, WithLogger(logger)).ParseString(water); err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	out := buf.String()
	for _, msg := range []string{"parse started", "block opened", "element parsed", "bond parsed", "block closed"} {
		if !strings.Contains(out, msg) {
			t.Errorf("Expected %q in log output:\n%s", msg, out)
		}
	}

	// a nil logger keeps the silent default
	if _, err := New(nil, WithLogger(nil)).ParseString(water); err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
}
