package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/and161185/fightnight/internal/fights"
	"github.com/and161185/fightnight/internal/model"
)

type loginMsg struct {
	user model.User
	err  error
}

type upcomingMsg struct {
	list        []model.FightEvent
	past        []model.FightEvent
	placeholder bool
}

type searchMsg struct {
	mode     searchMode
	events   []model.FightEvent
	fighters []model.Fighter
	err      error
}

func (m Model) doLogin(user, pass string) tea.Cmd {
	ctx, auth := m.ctx, m.deps.Auth
	return func() tea.Msg {
		u, err := auth.Login(ctx, user, pass)
		return loginMsg{user: u, err: err}
	}
}

// loadUpcoming fetches the home screen. It falls back to the placeholder
// card when the catalog fails.
func (m Model) loadUpcoming() tea.Cmd {
	ctx, src, log := m.ctx, m.deps.Fights, m.log
	return func() tea.Msg {
		ov, err := src.Overview(ctx)
		if err != nil {
			log.Warn("upcoming unavailable", zap.Error(err))
			return upcomingMsg{list: fights.Placeholder(time.Now()), placeholder: true}
		}
		return upcomingMsg{list: ov.Upcoming, past: ov.Past}
	}
}

func (m Model) doSearch(mode searchMode, term string) tea.Cmd {
	ctx, src, log := m.ctx, m.deps.Fights, m.log
	return func() tea.Msg {
		out := searchMsg{mode: mode}
		switch mode {
		case modeEvents:
			out.events, out.err = src.SearchFights(ctx, term)
		case modePast:
			out.events, out.err = src.SearchPastEvents(ctx)
		case modeFighters:
			out.fighters, out.err = src.SearchFighters(ctx, term)
		}
		if out.err != nil {
			log.Warn("search failed", zap.Int("mode", int(mode)), zap.Error(out.err))
		}
		return out
	}
}
