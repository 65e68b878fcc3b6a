package values

// Color is the palette rows are drawn with. Values are "#rrggbb" strings so
// they can be handed to any renderer.
type Color struct {
	Primary    string
	Text       string
	GrayText2  string
	Gray4      string
	Danger     string
	Background string
	Surface    string
	White      string
}

// Theme is injected into every row builder. It carries the palette and the
// icon size used for inline glyphs.
type Theme struct {
	Color    *Color
	IconSize int
}

const defaultIconSize = 10

func DefaultThemeColors() *Color {
	return &Color{
		Primary:    "#6490f1",
		Text:       "#142533",
		GrayText2:  "#999999",
		Gray4:      "#d8d8d8",
		Danger:     "#ea2e49",
		Background: "#f5f5f5",
		Surface:    "#ffffff",
		White:      "#ffffff",
	}
}

// NewTheme builds a theme over the palette. A nil palette uses the default
// colors.
func NewTheme(c *Color) *Theme {
	if c == nil {
		c = DefaultThemeColors()
	}
	return &Theme{Color: c, IconSize: defaultIconSize}
}
