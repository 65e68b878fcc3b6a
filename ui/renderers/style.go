package renderers

import (
	"strings"

	"code.cryptopower.dev/group/walletdisplay/ui/page/components"
	"github.com/charmbracelet/lipgloss"
)

// cellPixels is how many layout pixels one terminal cell stands for.
const cellPixels = 8

// icons maps icon names to the glyph drawn for them. Currency icons that
// are not listed draw as a filled circle in the currency color.
var icons = map[string]string{
	"activity":      "~",
	"external-link": "↗",
}

const (
	currencyGlyph = "●"
	tickGlyph     = "•"
	dividerGlyph  = "─"
	shimmerGlyph  = "░"
)

func (t *Terminal) colored(color string) lipgloss.Style {
	s := t.r.NewStyle()
	if color != "" {
		s = s.Foreground(lipgloss.Color(color))
	}
	return s
}

func setWeight(s lipgloss.Style, weight string) lipgloss.Style {
	switch weight {
	case "bold", "strong":
		return s.Bold(true)
	case "faint":
		return s.Faint(true)
	default:
		return s
	}
}

func (t *Terminal) renderLabel(lbl components.Label) string {
	return t.colored(lbl.Color).Underline(lbl.Underline).Render(lbl.Text)
}

func (t *Terminal) renderIcon(icon components.Icon) string {
	glyph, ok := icons[icon.Name]
	if !ok {
		glyph = currencyGlyph
	}
	return t.colored(icon.Color).Render(glyph)
}

func (t *Terminal) renderHorizontalLine(color string) string {
	return t.colored(color).Render(strings.Repeat(dividerGlyph, t.width))
}

// renderPlaceholder draws a loading shimmer the size of a placeholder box.
func (t *Terminal) renderPlaceholder(width int, color string) string {
	cells := width / cellPixels
	if cells < 1 {
		cells = 1
	}
	return t.colored(color).Faint(true).Render(strings.Repeat(shimmerGlyph, cells))
}

// spread pads the space between left and right so the line fills the
// terminal width. At least one space is kept.
func (t *Terminal) spread(left, right string) string {
	gap := t.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
