package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/autobase16/internal/base16"
	"github.com/jmylchreest/autobase16/internal/colour"
	"github.com/jmylchreest/autobase16/internal/render"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// formatSchemeReport renders one table row per role: colour, strategy,
// lightness, contrast against base00 and the WCAG ratio for reference.
func formatSchemeReport(scheme *base16.Scheme, preview bool) string {
	table := NewTable([]string{"ROLE", "COLOUR", "STRATEGY", "LIGHTNESS", "CONTRAST", "WCAG", "NOTE"})

	bg := scheme.Assignments[0].Colour
	bgRGB, _ := bg.RGB()
	for _, a := range scheme.Assignments {
		rgb, _ := a.Colour.RGB()
		hls := rgb.HLS()
		contrast, _ := colour.Contrast(a.Colour, bg)

		cell := a.Colour.String()
		if preview {
			cell = colour.ColourPreview(rgb, 4) + " " + cell
		}

		var notes []string
		if a.Capped {
			notes = append(notes, fmt.Sprintf("ceiling %.2f", a.Ceiling))
		}
		if a.Fallback {
			notes = append(notes, "random fallback")
		}

		table.AddRow([]string{
			a.Role,
			cell,
			a.Strategy,
			fmt.Sprintf("%.3f", hls.L),
			fmt.Sprintf("%+.3f", contrast),
			fmt.Sprintf("%.2f:1", colour.ContrastRatio(rgb, bgRGB)),
			strings.Join(notes, ", "),
		})
	}

	return fmt.Sprintf("Pool: %d colours\n\n%s", scheme.PoolSize, table.Render())
}

// formatSwatchStrip renders the scheme as a single row of colour blocks.
func formatSwatchStrip(data *render.Data) string {
	var b strings.Builder
	for _, c := range data.Colours {
		b.WriteString(colour.ColourPreviewWithText(c.RGB, c.Role[4:], 4))
	}
	b.WriteString("\n")
	return b.String()
}
