// Package theme provides the light and dark palettes, shared layout tokens
// and the persisted dark-mode preference.
package theme

import "github.com/charmbracelet/lipgloss"

// Colors is one palette.
type Colors struct {
	Primary         lipgloss.Color `json:"primary"`
	Secondary       lipgloss.Color `json:"secondary"`
	Accent          lipgloss.Color `json:"accent"`
	Background      lipgloss.Color `json:"background"`
	Card            lipgloss.Color `json:"card"`
	Text            lipgloss.Color `json:"text"`
	TextSecondary   lipgloss.Color `json:"textSecondary"`
	Border          lipgloss.Color `json:"border"`
	Success         lipgloss.Color `json:"success"`
	Error           lipgloss.Color `json:"error"`
	Warning         lipgloss.Color `json:"warning"`
	ButtonPrimary   lipgloss.Color `json:"buttonPrimary"`
	ButtonSecondary lipgloss.Color `json:"buttonSecondary"`
}

// Dark is the default palette.
var Dark = Colors{
	Primary:         "#FF4444",
	Secondary:       "#1a1a1a",
	Accent:          "#FFD700",
	Background:      "#000000",
	Card:            "#1a1a1a",
	Text:            "#FFFFFF",
	TextSecondary:   "#B0B0B0",
	Border:          "#333333",
	Success:         "#4CAF50",
	Error:           "#FF4444",
	Warning:         "#FFA726",
	ButtonPrimary:   "#FF4444",
	ButtonSecondary: "#333333",
}

var Light = Colors{
	Primary:         "#D32F2F",
	Secondary:       "#F5F5F5",
	Accent:          "#FFA000",
	Background:      "#FFFFFF",
	Card:            "#F5F5F5",
	Text:            "#212121",
	TextSecondary:   "#757575",
	Border:          "#E0E0E0",
	Success:         "#4CAF50",
	Error:           "#D32F2F",
	Warning:         "#FF9800",
	ButtonPrimary:   "#D32F2F",
	ButtonSecondary: "#E0E0E0",
}

// Scale is a set of named sizes in points.
type Scale struct {
	XS  int `json:"xs"`
	SM  int `json:"sm"`
	MD  int `json:"md"`
	LG  int `json:"lg"`
	XL  int `json:"xl"`
	XXL int `json:"xxl,omitempty"`
}

type FontWeight struct {
	Regular  string `json:"regular"`
	Medium   string `json:"medium"`
	Semibold string `json:"semibold"`
	Bold     string `json:"bold"`
}

var (
	Spacing      = Scale{XS: 4, SM: 8, MD: 16, LG: 24, XL: 32}
	BorderRadius = Scale{SM: 4, MD: 8, LG: 12, XL: 16}
	FontSize     = Scale{XS: 12, SM: 14, MD: 16, LG: 18, XL: 24, XXL: 32}
	Weights      = FontWeight{Regular: "400", Medium: "500", Semibold: "600", Bold: "700"}
)

// Theme is a palette plus the shared tokens.
type Theme struct {
	IsDark       bool       `json:"isDark"`
	Colors       Colors     `json:"colors"`
	Spacing      Scale      `json:"spacing"`
	BorderRadius Scale      `json:"borderRadius"`
	FontSize     Scale      `json:"fontSize"`
	FontWeight   FontWeight `json:"fontWeight"`
}

// For returns the theme for the given mode.
func For(dark bool) Theme {
	c := Light
	if dark {
		c = Dark
	}
	return Theme{
		IsDark:       dark,
		Colors:       c,
		Spacing:      Spacing,
		BorderRadius: BorderRadius,
		FontSize:     FontSize,
		FontWeight:   Weights,
	}
}

// Mode is the persisted name of the palette.
func (t Theme) Mode() string {
	if t.IsDark {
		return ModeDark
	}
	return ModeLight
}
