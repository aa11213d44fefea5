package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"molgen/pkg/colour"
	"molgen/pkg/molecule"
)

var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorWarning = lipgloss.Color("#F59E0B")

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(11)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// Swatch renders a two-cell block filled with the given hex colour
func Swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// Summary renders a boxed overview of a molecule: formula, counts and one
// line per element with its colour swatch. fragments may be nil.
func (f *Formatter) Summary(title string, m *molecule.Molecule, fragments [][]int, warnings []string) string {
	var lines []string

	lines = append(lines, titleStyle.Render(title))
	lines = append(lines, row("Formula", valueOr(m.Formula(), "(empty)")))
	lines = append(lines, row("Elements", fmt.Sprintf("%d %s", len(m.Elements), symbolBreakdown(m))))
	lines = append(lines, row("Bonds", fmt.Sprintf("%d %s", len(m.Bonds), degreeBreakdown(m))))
	if fragments != nil {
		lines = append(lines, row("Fragments", fmt.Sprintf("%d", len(fragments))))
	}

	if len(m.Elements) > 0 {
		lines = append(lines, "")
		for _, e := range m.Elements {
			lines = append(lines, fmt.Sprintf("%s %-6s %s r=%s", Swatch(e.Colour), e.Label(), e.Position, formatNumber(e.Radius)))
		}
	}

	for _, w := range warnings {
		lines = append(lines, warningStyle.Render("! "+w))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

// Palette renders every named colour with its swatch and hex value
func (f *Formatter) Palette() string {
	var lines []string
	for _, c := range colour.Palette() {
		lines = append(lines, fmt.Sprintf("%s %-11s %s", Swatch(c.Hex), c.Name, c.Hex))
	}
	return strings.Join(lines, "\n")
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// symbolBreakdown lists element counts per symbol, e.g. "(H 2, O 1)"
func symbolBreakdown(m *molecule.Molecule) string {
	counts := m.SymbolCounts()
	if len(counts) == 0 {
		return ""
	}
	symbols := make([]string, 0, len(counts))
	for s := range counts {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = fmt.Sprintf("%s %d", s, counts[s])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// degreeBreakdown lists bond counts per degree, e.g. "(single 2, double 1)"
func degreeBreakdown(m *molecule.Molecule) string {
	counts := m.DegreeCounts()
	var parts []string
	for _, d := range []molecule.BondDegree{molecule.Single, molecule.Double, molecule.Triple} {
		if n := counts[d]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", d, n))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
