package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/and161185/fightnight/internal/errs"
	"github.com/and161185/fightnight/internal/fights"
	"github.com/and161185/fightnight/internal/model"
	"github.com/and161185/fightnight/internal/theme"
	"github.com/and161185/fightnight/internal/view"
)

type fakeFights struct {
	upcoming []model.FightEvent
	past     []model.FightEvent
	fighters []model.Fighter
	err      error
	terms    []string
}

func (f *fakeFights) Overview(context.Context) (fights.Overview, error) {
	if f.err != nil {
		return fights.Overview{}, f.err
	}
	return fights.Overview{Upcoming: f.upcoming, Past: f.past}, nil
}

func (f *fakeFights) SearchFights(_ context.Context, term string) ([]model.FightEvent, error) {
	f.terms = append(f.terms, term)
	if f.err != nil {
		return nil, f.err
	}
	var out []model.FightEvent
	for _, e := range f.upcoming {
		if term == "" || strings.Contains(strings.ToLower(e.Title), strings.ToLower(term)) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeFights) SearchPastEvents(context.Context) ([]model.FightEvent, error) {
	return f.past, f.err
}

func (f *fakeFights) SearchFighters(_ context.Context, term string) ([]model.Fighter, error) {
	f.terms = append(f.terms, term)
	return f.fighters, f.err
}

type fakeAuth struct {
	session  model.AuthSession
	loginErr error
	regErr   error
}

func (a *fakeAuth) Login(_ context.Context, username, _ string) (model.User, error) {
	if a.loginErr != nil {
		return model.User{}, a.loginErr
	}
	u := model.User{ID: "1", Name: "Emily Johnson", Username: username}
	a.session = model.AuthSession{IsAuthenticated: true, User: &u, Token: "tok"}
	return u, nil
}

func (a *fakeAuth) Logout() { a.session = model.AuthSession{} }

func (a *fakeAuth) Register(context.Context, model.RegisterInput) (string, error) {
	if a.regErr != nil {
		return "", a.regErr
	}
	return "local-id", nil
}

func (a *fakeAuth) Session() model.AuthSession       { return a.session }
func (a *fakeAuth) TokenExpiry() (time.Time, bool) { return time.Time{}, false }

type fakeFavs struct {
	list []model.FightEvent
}

func (f *fakeFavs) List() []model.FightEvent { return f.list }

func (f *fakeFavs) IsFavourite(id string) bool {
	for _, e := range f.list {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (f *fakeFavs) Toggle(e model.FightEvent) bool {
	for i, x := range f.list {
		if x.ID == e.ID {
			f.list = append(f.list[:i], f.list[i+1:]...)
			return false
		}
	}
	f.list = append(f.list, e)
	return true
}

type fakeTheme struct {
	mu   sync.Mutex
	dark bool
}

func (f *fakeTheme) Current() theme.Theme {
	f.mu.Lock()
	defer f.mu.Unlock()
	return theme.For(f.dark)
}

func (f *fakeTheme) Toggle(context.Context) (theme.Theme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dark = !f.dark
	return theme.For(f.dark), nil
}

type harness struct {
	fights *fakeFights
	auth   *fakeAuth
	favs   *fakeFavs
	theme  *fakeTheme
}

func newHarness(loggedIn bool) (*harness, Model) {
	h := &harness{
		fights: &fakeFights{
			upcoming: []model.FightEvent{
				{ID: "1", Title: "Mascara vs Eyeshadow", Status: model.StatusUpcoming},
				{ID: "2", Title: "Powder vs Lipstick", Status: model.StatusUpcoming},
			},
			past: []model.FightEvent{
				{ID: "past-1", Title: "Mascara vs Eyeshadow", Status: model.StatusCompleted, Result: "Mascara wins"},
			},
			fighters: []model.Fighter{{Name: "Mascara", Wins: 1}},
		},
		auth:  &fakeAuth{},
		favs:  &fakeFavs{},
		theme: &fakeTheme{dark: true},
	}
	if loggedIn {
		u := model.User{ID: "1", Name: "Emily Johnson"}
		h.auth.session = model.AuthSession{IsAuthenticated: true, User: &u}
	}
	m := New(context.Background(), Deps{
		Fights:          h.fights,
		Auth:            h.auth,
		Favourites:      h.favs,
		Theme:           h.theme,
		DefaultUsername: "emilys",
		DefaultPassword: "emilyspass",
	})
	return h, m
}

// exec runs cmd and feeds back the messages the model itself produces.
// Timer-driven messages (cursor blink, spinner) are dropped.
func exec(m Model, cmd tea.Cmd) Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := call(c).(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case loginMsg, upcomingMsg, searchMsg:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func call(c tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+r":
		msg = tea.KeyMsg{Type: tea.KeyCtrlR}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return exec(next.(Model), cmd)
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = press(m, string(r))
	}
	return m
}

func TestLogin_PrefilledCredentialsSucceed(t *testing.T) {
	_, m := newHarness(false)
	require.Equal(t, screenLogin, m.screen)
	require.Equal(t, "emilys", m.login[0].Value())
	require.Equal(t, "emilyspass", m.login[1].Value())

	m = press(m, "enter")
	require.Equal(t, screenMain, m.screen)
	require.Equal(t, tabUpcoming, m.tab)
	require.Len(t, m.upcoming, 2)
	require.Len(t, m.recent, 1)
	require.False(t, m.loading)
	require.Contains(t, m.View(), "Powder vs Lipstick")
}

func TestLogin_RejectedShowsHint(t *testing.T) {
	h, m := newHarness(false)
	h.auth.loginErr = errs.ErrUnauthorized

	m = press(m, "enter")
	require.Equal(t, screenLogin, m.screen)
	require.True(t, m.statusErr)
	require.Contains(t, m.status, view.LoginHint)
}

func TestLogin_BlankFieldsNotSubmitted(t *testing.T) {
	_, m := newHarness(false)
	m.login[0].SetValue("  ")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.Nil(t, cmd)
	require.False(t, m.loading)
	require.Equal(t, "Please enter username and password", m.status)
}

func TestRegister_ReturnsToLogin(t *testing.T) {
	_, m := newHarness(false)
	m = press(m, "ctrl+r")
	require.Equal(t, screenRegister, m.screen)

	m = typeText(m, "Jane")
	m = press(m, "tab")
	m = typeText(m, "jane@example.com")
	m = press(m, "tab")
	m = typeText(m, "secret")
	m = press(m, "enter")

	require.Equal(t, screenLogin, m.screen)
	require.Equal(t, view.RegisterSuccess, m.status)
	require.Empty(t, m.register[0].Value())
}

func TestRegister_InvalidStays(t *testing.T) {
	h, m := newHarness(false)
	h.auth.regErr = errs.ErrValidation
	m = press(m, "ctrl+r")
	m = press(m, "enter")
	require.Equal(t, screenRegister, m.screen)
	require.True(t, m.statusErr)
}

func TestInit_RestoredSessionLoadsUpcoming(t *testing.T) {
	_, m := newHarness(true)
	require.Equal(t, screenMain, m.screen)
	m = exec(m, m.Init())
	require.Len(t, m.upcoming, 2)
}

func TestUpcoming_FailureFallsBackToPlaceholder(t *testing.T) {
	h, m := newHarness(true)
	h.fights.err = errs.ErrUpstream
	m = exec(m, m.Init())
	require.NotEmpty(t, m.upcoming)
	require.Equal(t, view.PlaceholderNotice, m.status)
}

func TestFavouriteToggleAndTab(t *testing.T) {
	h, m := newHarness(true)
	m = exec(m, m.Init())

	m = press(m, "down")
	m = press(m, "f")
	require.Len(t, h.favs.list, 1)
	require.Equal(t, "2", h.favs.list[0].ID)

	m = press(m, "3")
	require.Equal(t, tabFavourites, m.tab)
	require.Contains(t, m.View(), "Powder vs Lipstick")

	m = press(m, "f")
	require.Empty(t, h.favs.list)
	require.Contains(t, m.View(), view.NoFavourites)
}

func TestSearch_ModesAndQuery(t *testing.T) {
	h, m := newHarness(true)
	m = exec(m, m.Init())

	m = press(m, "/")
	require.Equal(t, tabSearch, m.tab)
	require.True(t, m.searching)
	m = typeText(m, "powder")
	m = press(m, "enter")
	require.False(t, m.searching)
	require.Len(t, m.results, 1)
	require.Equal(t, "2", m.results[0].ID)
	require.Equal(t, "powder", h.fights.terms[len(h.fights.terms)-1])

	m = press(m, "m")
	require.Equal(t, modePast, m.mode)
	require.Len(t, m.results, 1)
	require.Equal(t, "past-1", m.results[0].ID)

	m = press(m, "m")
	require.Equal(t, modeFighters, m.mode)
	require.Len(t, m.fighters, 1)

	m = press(m, "enter")
	require.Equal(t, screenFighter, m.screen)
	require.Equal(t, "Mascara", m.fighter.Name)
	m = press(m, "esc")
	require.Equal(t, screenMain, m.screen)
}

func TestSearch_StaleModeResultDropped(t *testing.T) {
	_, m := newHarness(true)
	m.tab = tabSearch
	m.mode = modeFighters

	next, _ := m.Update(searchMsg{mode: modeEvents, events: []model.FightEvent{{ID: "x"}}})
	m = next.(Model)
	require.Empty(t, m.results)
}

func TestDetail_OpenFavouriteBack(t *testing.T) {
	h, m := newHarness(true)
	m = exec(m, m.Init())

	m = press(m, "enter")
	require.Equal(t, screenFight, m.screen)
	require.Equal(t, "1", m.fight.ID)
	m = press(m, "f")
	require.True(t, h.favs.IsFavourite("1"))
	m = press(m, "esc")
	require.Equal(t, screenMain, m.screen)
}

func TestThemeToggle(t *testing.T) {
	h, m := newHarness(true)
	require.True(t, m.styles.Theme.IsDark)
	m = press(m, "t")
	require.False(t, h.theme.dark)
	require.False(t, m.styles.Theme.IsDark)
}

func TestLogout(t *testing.T) {
	h, m := newHarness(true)
	m = exec(m, m.Init())
	m = press(m, "L")
	require.Equal(t, screenLogin, m.screen)
	require.False(t, h.auth.session.IsAuthenticated)
	require.Nil(t, m.upcoming)
}

func TestQuit(t *testing.T) {
	_, m := newHarness(true)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}
