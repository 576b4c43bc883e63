package theme

import "github.com/charmbracelet/lipgloss"

// Styles are the terminal renderings of a Theme.
type Styles struct {
	Theme Theme

	App      lipgloss.Style
	Header   lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Badge    lipgloss.Style
	Button   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
}

// cells converts a point size to terminal columns.
func cells(pt int) int { return pt / Spacing.SM }

// NewStyles derives terminal styles from t.
func NewStyles(t Theme) Styles {
	c := t.Colors
	pad := cells(t.Spacing.MD)
	return Styles{
		Theme: t,

		App: lipgloss.NewStyle().
			Foreground(c.Text),

		Header: lipgloss.NewStyle().
			Background(c.Primary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, pad),

		Tab: lipgloss.NewStyle().
			Foreground(c.TextSecondary).
			Padding(0, cells(t.Spacing.SM)),

		TabOn: lipgloss.NewStyle().
			Foreground(c.Primary).
			Bold(true).
			Underline(true).
			Padding(0, cells(t.Spacing.SM)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.Border).
			Padding(0, cells(t.Spacing.SM)),

		Selected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.Primary).
			Padding(0, cells(t.Spacing.SM)),

		Title: lipgloss.NewStyle().
			Foreground(c.Text).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(c.Text),

		Muted: lipgloss.NewStyle().
			Foreground(c.TextSecondary),

		Accent: lipgloss.NewStyle().
			Foreground(c.Accent).
			Bold(true),

		Badge: lipgloss.NewStyle().
			Background(c.Primary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Background(c.ButtonPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, pad),

		Success: lipgloss.NewStyle().Foreground(c.Success),
		Error:   lipgloss.NewStyle().Foreground(c.Error).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(c.Warning),
	}
}
