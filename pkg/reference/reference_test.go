package reference

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTable(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Failed to load default table: %v", err)
	}

	h, ok := table.Lookup("H")
	if !ok {
		t.Fatal("Expected hydrogen in default table")
	}
	if h.AtomicNumber != 1 || h.Symbol != "H" || h.Radius != 120 || h.Colour != "#ffffff" {
		t.Errorf("Unexpected hydrogen entry: %+v", h)
	}

	again, _ := Default()
	if again != table {
		t.Error("Default should return the same table on every call")
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Failed to load default table: %v", err)
	}

	for _, symbol := range []string{"cl", "CL", "Cl", " cl "} {
		e, ok := table.Lookup(symbol)
		if !ok {
			t.Errorf("Lookup(%q) failed", symbol)
			continue
		}
		if e.Symbol != "Cl" || e.AtomicNumber != 17 {
			t.Errorf("Lookup(%q) = %+v", symbol, e)
		}
	}

	if _, ok := table.Lookup("Xx"); ok {
		t.Error("Expected Xx to be missing")
	}

	_, err = table.MustLookup("Xx")
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("Expected ErrUnknownSymbol, got %v", err)
	}
}

func TestLoadCustomTable(t *testing.T) {
	content := `"AtomicNumber","Symbol","Name","Radius","Colour"
1,"H","Hydrogen",100,"white"
6,C,Carbon,150.5,#ABCDEF
`
	table, err := Load(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Failed to load table: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", table.Len())
	}

	h, _ := table.Lookup("h")
	if h.Colour != "#ffffff" || h.Radius != 100 {
		t.Errorf("Unexpected hydrogen entry: %+v", h)
	}

	c, _ := table.Lookup("c")
	if c.Colour != "#abcdef" || c.Radius != 150.5 || c.Name != "Carbon" {
		t.Errorf("Unexpected carbon entry: %+v", c)
	}

	entries := table.Entries()
	if entries[0].Symbol != "H" || entries[1].Symbol != "C" {
		t.Errorf("Entries should keep file order, got %v", entries)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"header only", "a,b,c,d,e\n"},
		{"short row", "a,b,c,d,e\n1,H,Hydrogen,120\n"},
		{"bad number", "a,b,c,d,e\nx,H,Hydrogen,120,#ffffff\n"},
		{"bad radius", "a,b,c,d,e\n1,H,Hydrogen,big,#ffffff\n"},
		{"negative radius", "a,b,c,d,e\n1,H,Hydrogen,-1,#ffffff\n"},
		{"bad colour", "a,b,c,d,e\n1,H,Hydrogen,120,blurple\n"},
		{"duplicate", "a,b,c,d,e\n1,H,Hydrogen,120,#ffffff\n1,h,Hydrogen,120,#ffffff\n"},
		{"empty symbol", "a,b,c,d,e\n1,,Hydrogen,120,#ffffff\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.content)); err == nil {
				t.Error("Expected load error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	if err := os.WriteFile(path, []byte("n,s,name,r,c\n8,O,Oxygen,152,red\n"), 0644); err != nil {
		t.Fatalf("Failed to write table: %v", err)
	}

	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if o, _ := table.Lookup("O"); o.Colour != "#eb3c25" {
		t.Errorf("Expected named colour to resolve, got %s", o.Colour)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("Expected error for missing file")
	}
}
