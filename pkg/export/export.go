// Package export encodes molecules for other tools: JSON, YAML, TOML,
// MessagePack and the plain XYZ coordinate format
package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v2"

	"molgen/pkg/molecule"
)

// Format names an output encoding
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	TOML    Format = "toml"
	MsgPack Format = "msgpack"
	XYZ     Format = "xyz"
)

var formatAliases = map[string]Format{
	"json":    JSON,
	"yaml":    YAML,
	"yml":     YAML,
	"toml":    TOML,
	"msgpack": MsgPack,
	"mpk":     MsgPack,
	"xyz":     XYZ,
}

var extensions = map[Format]string{
	JSON:    ".json",
	YAML:    ".yaml",
	TOML:    ".toml",
	MsgPack: ".msgpack",
	XYZ:     ".xyz",
}

// ParseFormat resolves a format name or alias, ignoring case
func ParseFormat(name string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q, expected one of: %s", name, strings.Join(Names(), ", "))
}

// Names lists the canonical format names
func Names() []string {
	names := make([]string, 0, len(extensions))
	for f := range extensions {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// Extension returns the file extension for the format, including the dot
func (f Format) Extension() string {
	return extensions[f]
}

// Binary reports whether the encoding is not text
func (f Format) Binary() bool {
	return f == MsgPack
}

// Decodable reports whether Decode supports the format
func (f Format) Decodable() bool {
	return f != XYZ && f.Extension() != ""
}

// Encode writes m to w in the given format
func Encode(w io.Writer, m *molecule.Molecule, format Format) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case YAML:
		data, err := yaml.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case TOML:
		return toml.NewEncoder(w).Encode(m)
	case MsgPack:
		return msgpack.NewEncoder(w).Encode(m)
	case XYZ:
		return encodeXYZ(w, m)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// Marshal returns the encoding of m
func Marshal(m *molecule.Molecule, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a molecule written by Encode. XYZ carries no bonds or
// aesthetics and cannot be decoded.
func Decode(r io.Reader, format Format) (*molecule.Molecule, error) {
	var m molecule.Molecule
	var err error

	switch format {
	case JSON:
		err = json.NewDecoder(r).Decode(&m)
	case YAML:
		var data []byte
		if data, err = io.ReadAll(r); err == nil {
			err = yaml.Unmarshal(data, &m)
		}
	case TOML:
		_, err = toml.NewDecoder(r).Decode(&m)
	case MsgPack:
		err = msgpack.NewDecoder(r).Decode(&m)
	default:
		return nil, fmt.Errorf("format %q cannot be decoded", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", format, err)
	}

	return molecule.New(m.Elements, m.Bonds), nil
}

// encodeXYZ writes the element count, a comment line with the formula and one
// "symbol x y z" line per element
func encodeXYZ(w io.Writer, m *molecule.Molecule) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(m.Elements))
	fmt.Fprintf(bw, "%s\n", m.Formula())
	for _, e := range m.Elements {
		fmt.Fprintf(bw, "%-2s %s %s %s\n", e.Symbol,
			strconv.FormatFloat(e.Position.X, 'f', 6, 64),
			strconv.FormatFloat(e.Position.Y, 'f', 6, 64),
			strconv.FormatFloat(e.Position.Z, 'f', 6, 64),
		)
	}
	return bw.Flush()
}
