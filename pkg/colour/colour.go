// Package colour resolves colour names and hex strings to canonical hex values
package colour

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidColour is returned when a value is neither a known name nor a hex colour
var ErrInvalidColour = errors.New("invalid colour")

// Named is a palette entry
type Named struct {
	Name string
	Hex  string
}

// palette holds the CPK-style named colours in declaration order
var palette = []Named{
	{"white", "#ffffff"},
	{"black", "#222222"},
	{"blue", "#1b43f5"},
	{"red", "#eb3c25"},
	{"green", "#70ea4e"},
	{"darkRed", "#8e2c13"},
	{"darkViolet", "#5c22b4"},
	{"cyan", "#73fbfd"},
	{"orange", "#f29b38"},
	{"yellow", "#fce454"},
	{"beige", "#f4ac80"},
	{"violet", "#6b2ff5"},
	{"darkGreen", "#33741f"},
	{"grey", "#999999"},
	{"darkOrange", "#d17b2c"},
	{"pink", "#d081f8"},
}

// byName maps lower-cased names to hex values
var byName = func() map[string]string {
	m := make(map[string]string, len(palette))
	for _, c := range palette {
		m[strings.ToLower(c.Name)] = c.Hex
	}
	return m
}()

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Resolve maps a colour name (case-insensitive) or a "#rrggbb" string to its
// canonical lower-case hex form
func Resolve(value string) (string, error) {
	v := strings.TrimSpace(value)
	if hex, ok := byName[strings.ToLower(v)]; ok {
		return hex, nil
	}
	if hexPattern.MatchString(v) {
		return strings.ToLower(v), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidColour, value)
}

// IsValid reports whether value resolves
func IsValid(value string) bool {
	_, err := Resolve(value)
	return err == nil
}

// Palette returns a copy of the named colours in declaration order
func Palette() []Named {
	out := make([]Named, len(palette))
	copy(out, palette)
	return out
}
