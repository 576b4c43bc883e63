package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/and161185/fightnight/internal/model"
	"github.com/and161185/fightnight/internal/view"
)

const (
	loginHelp  = "tab next field • enter login • ctrl+r register • ctrl+c quit"
	regHelp    = "tab next field • enter create account • esc back"
	mainHelp   = "1-3/tab tabs • ↑/↓ move • enter open • f favourite • / search • r refresh • t theme • L logout • q quit"
	searchHelp = "m mode • / edit query • enter open • f favourite • esc leave query"
	detailHelp = "esc back • f favourite • t theme"

	recentShown = 3
)

// View renders the current screen.
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenLogin:
		body = m.viewLogin()
	case screenRegister:
		body = m.viewRegister()
	case screenMain:
		body = m.viewMain()
	case screenFight:
		body = view.FightDetail(m.styles, m.fight, m.deps.Favourites.IsFavourite(m.fight.ID)) +
			"\n\n" + m.styles.Muted.Render(detailHelp)
	case screenFighter:
		body = view.FighterDetail(m.styles, m.fighter) + "\n\n" + m.styles.Muted.Render("esc back • t theme")
	}
	out := m.styles.App.Render(body)
	if m.width > 0 {
		out = lipgloss.PlaceHorizontal(m.width, lipgloss.Left, out)
	}
	return out
}

func (m Model) header(title string) string {
	st := m.styles
	mode := st.Muted.Render("[" + m.styles.Theme.Mode() + "]")
	return st.Header.Render(title) + " " + mode
}

func (m Model) footer(help string) string {
	var b strings.Builder
	if m.loading {
		b.WriteString(m.spinner.View() + " " + m.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	}
	if m.status != "" {
		if m.statusErr {
			b.WriteString(m.styles.Error.Render(m.status))
		} else {
			b.WriteString(m.styles.Success.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render(help))
	return b.String()
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(m.header("FightNight") + "\n")
	b.WriteString(m.styles.Muted.Render("Sign in to browse upcoming fights") + "\n\n")
	for _, in := range m.login {
		b.WriteString(in.View() + "\n")
	}
	b.WriteString("\n" + m.styles.Button.Render("Login") + "\n\n")
	b.WriteString(m.footer(loginHelp))
	return b.String()
}

func (m Model) viewRegister() string {
	var b strings.Builder
	b.WriteString(m.header("Create account") + "\n\n")
	for _, in := range m.register {
		b.WriteString(in.View() + "\n")
	}
	b.WriteString("\n" + m.styles.Button.Render("Register") + "\n\n")
	b.WriteString(m.footer(regHelp))
	return b.String()
}

func (m Model) viewTabs() string {
	parts := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if name == tabNames[tabFavourites] {
			name += " (" + strconv.Itoa(len(m.deps.Favourites.List())) + ")"
		}
		if tab(i) == m.tab {
			parts = append(parts, m.styles.TabOn.Render(name))
		} else {
			parts = append(parts, m.styles.Tab.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewMain() string {
	var b strings.Builder
	title := "FightNight"
	if u := m.deps.Auth.Session().User; u != nil {
		title += " · " + u.Name
	}
	b.WriteString(m.header(title) + "\n")
	b.WriteString(m.viewTabs() + "\n\n")

	help := mainHelp
	switch m.tab {
	case tabUpcoming:
		b.WriteString(m.viewEvents(m.upcoming, view.NoFights))
		if len(m.recent) > 0 {
			b.WriteString("\n" + m.styles.Title.Render("Recent results") + "\n")
			for _, e := range m.recent[:min(len(m.recent), recentShown)] {
				b.WriteString("  " + view.FightLine(m.styles, e, m.deps.Favourites.IsFavourite(e.ID)) + "\n")
			}
		}
	case tabSearch:
		help = searchHelp
		b.WriteString(m.search.View() + "\n")
		b.WriteString(m.viewModes() + "\n\n")
		switch {
		case m.mode == modeFighters:
			b.WriteString(m.viewFighters())
		case m.mode == modePast:
			b.WriteString(m.viewEvents(m.results, view.NoPastEvents))
		default:
			b.WriteString(m.viewEvents(m.results, view.NoFights))
		}
	case tabFavourites:
		b.WriteString(m.viewEvents(m.deps.Favourites.List(), view.NoFavourites))
	}
	b.WriteString("\n" + m.footer(help))
	return b.String()
}

func (m Model) viewModes() string {
	parts := make([]string, 0, modeCount)
	for i, name := range modeNames {
		if searchMode(i) == m.mode {
			parts = append(parts, m.styles.Badge.Render(name))
		} else {
			parts = append(parts, m.styles.Muted.Render(name))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) viewEvents(list []model.FightEvent, empty string) string {
	if len(list) == 0 {
		if m.loading {
			return ""
		}
		return m.styles.Muted.Render(empty) + "\n"
	}
	var b strings.Builder
	for i, e := range list {
		line := view.FightLine(m.styles, e, m.deps.Favourites.IsFavourite(e.ID))
		b.WriteString(m.row(i, line))
	}
	return b.String()
}

func (m Model) viewFighters() string {
	if len(m.fighters) == 0 {
		if m.loading {
			return ""
		}
		return m.styles.Muted.Render(view.NoFighters) + "\n"
	}
	var b strings.Builder
	for i, f := range m.fighters {
		b.WriteString(m.row(i, view.FighterLine(m.styles, f)))
	}
	return b.String()
}

func (m Model) row(i int, line string) string {
	if i == m.cursor {
		return m.styles.Selected.Render("▸ "+line) + "\n"
	}
	return "  " + line + "\n"
}
