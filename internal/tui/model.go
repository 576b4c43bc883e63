// Package tui is the interactive browser: login and registration, tabbed
// upcoming/search/favourites lists, detail screens and a theme toggle.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/and161185/fightnight/internal/errs"
	"github.com/and161185/fightnight/internal/fights"
	"github.com/and161185/fightnight/internal/model"
	"github.com/and161185/fightnight/internal/service"
	"github.com/and161185/fightnight/internal/theme"
	"github.com/and161185/fightnight/internal/view"
)

// FightSource is the read side of fights.Service.
type FightSource interface {
	Overview(ctx context.Context) (fights.Overview, error)
	SearchFights(ctx context.Context, term string) ([]model.FightEvent, error)
	SearchPastEvents(ctx context.Context) ([]model.FightEvent, error)
	SearchFighters(ctx context.Context, term string) ([]model.Fighter, error)
}

type Favourites interface {
	List() []model.FightEvent
	IsFavourite(id string) bool
	Toggle(e model.FightEvent) bool
}

type ThemeSource interface {
	Current() theme.Theme
	Toggle(ctx context.Context) (theme.Theme, error)
}

// Deps are the services the browser drives.
type Deps struct {
	Fights     FightSource
	Auth       service.AuthService
	Favourites Favourites
	Theme      ThemeSource
	Log        *zap.Logger

	DefaultUsername string
	DefaultPassword string
}

type screen int

const (
	screenLogin screen = iota
	screenRegister
	screenMain
	screenFight
	screenFighter
)

type tab int

const (
	tabUpcoming tab = iota
	tabSearch
	tabFavourites
	tabCount
)

var tabNames = [tabCount]string{"Upcoming", "Search", "Favourites"}

type searchMode int

const (
	modeEvents searchMode = iota
	modePast
	modeFighters
	modeCount
)

var modeNames = [modeCount]string{"Events", "Past results", "Fighters"}

// Model is the bubbletea model.
type Model struct {
	ctx    context.Context
	deps   Deps
	log    *zap.Logger
	styles theme.Styles

	screen screen
	tab    tab
	mode   searchMode

	login      []textinput.Model
	loginFocus int
	register   []textinput.Model
	regFocus   int
	search     textinput.Model
	searching  bool

	upcoming []model.FightEvent
	recent   []model.FightEvent
	results  []model.FightEvent
	fighters []model.Fighter
	searched bool
	cursor   int

	fight   model.FightEvent
	fighter model.Fighter

	loading   bool
	spinner   spinner.Model
	status    string
	statusErr bool

	width, height int
}

// New builds the model. ctx bounds every fetch the model starts.
func New(ctx context.Context, deps Deps) Model {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	m := Model{
		ctx:    ctx,
		deps:   deps,
		log:    deps.Log.Named("tui"),
		styles: theme.NewStyles(deps.Theme.Current()),
	}

	user := newInput("Username", false)
	user.SetValue(deps.DefaultUsername)
	pass := newInput("Password", true)
	pass.SetValue(deps.DefaultPassword)
	m.login = []textinput.Model{user, pass}

	m.register = []textinput.Model{
		newInput("Full name", false),
		newInput("Email", false),
		newInput("Password", true),
	}

	m.search = newInput("Search fighters, events, venues...", false)
	m.search.Prompt = "/ "

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	if deps.Auth.Session().IsAuthenticated {
		m.screen = screenMain
		m.loading = true
	} else {
		m.screen = screenLogin
		m.login[0].Focus()
	}
	m.restyle()
	return m
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	ti.Prompt = "│ "
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func (m *Model) restyle() {
	st := m.styles
	m.spinner.Style = st.Accent
	style := func(in *textinput.Model) {
		in.PromptStyle = st.Accent
		in.TextStyle = st.Body
		in.PlaceholderStyle = st.Muted
	}
	for i := range m.login {
		style(&m.login[i])
	}
	for i := range m.register {
		style(&m.register[i])
	}
	style(&m.search)
}

// Init starts the first fetch when a session was restored.
func (m Model) Init() tea.Cmd {
	if m.screen == screenMain {
		return tea.Batch(m.spinner.Tick, m.loadUpcoming())
	}
	return textinput.Blink
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status, m.statusErr = msg, isErr
}

// Update routes messages by screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginMsg:
		return m.onLogin(msg)

	case upcomingMsg:
		m.loading = false
		m.upcoming, m.recent = msg.list, msg.past
		if msg.placeholder {
			m.setStatus(view.PlaceholderNotice, true)
		}
		m.clampCursor()
		return m, nil

	case searchMsg:
		// Results for a mode the user already left are dropped.
		if msg.mode != m.mode {
			return m, nil
		}
		m.loading = false
		m.searched = true
		m.results, m.fighters = msg.events, msg.fighters
		if msg.err != nil {
			m.setStatus("Search failed, try again", true)
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenLogin:
			return m.updateLogin(msg)
		case screenRegister:
			return m.updateRegister(msg)
		case screenMain:
			return m.updateMain(msg)
		case screenFight, screenFighter:
			return m.updateDetail(msg)
		}
	}

	return m.forwardToInput(msg)
}

// forwardToInput hands non-key messages such as cursor blinks to the focused input.
func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenLogin:
		m.login[m.loginFocus], cmd = m.login[m.loginFocus].Update(msg)
	case screenRegister:
		m.register[m.regFocus], cmd = m.register[m.regFocus].Update(msg)
	case screenMain:
		if m.searching {
			m.search, cmd = m.search.Update(msg)
		}
	}
	return m, cmd
}

func focusInputs(in []textinput.Model, idx int) tea.Cmd {
	var cmd tea.Cmd
	for i := range in {
		if i == idx {
			cmd = in[i].Focus()
		} else {
			in[i].Blur()
		}
	}
	return cmd
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	switch msg.String() {
	case "tab", "down":
		m.loginFocus = (m.loginFocus + 1) % len(m.login)
		return m, focusInputs(m.login, m.loginFocus)
	case "shift+tab", "up":
		m.loginFocus = (m.loginFocus + len(m.login) - 1) % len(m.login)
		return m, focusInputs(m.login, m.loginFocus)
	case "ctrl+r":
		m.screen = screenRegister
		m.setStatus("", false)
		m.regFocus = 0
		return m, focusInputs(m.register, 0)
	case "enter":
		user, pass := m.login[0].Value(), m.login[1].Value()
		if strings.TrimSpace(user) == "" || strings.TrimSpace(pass) == "" {
			m.setStatus("Please enter username and password", true)
			return m, nil
		}
		m.loading = true
		m.setStatus("", false)
		return m, tea.Batch(m.spinner.Tick, m.doLogin(user, pass))
	}
	var cmd tea.Cmd
	m.login[m.loginFocus], cmd = m.login[m.loginFocus].Update(msg)
	return m, cmd
}

func (m Model) onLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, errs.ErrUnauthorized):
			m.setStatus("Login failed: "+view.LoginHint, true)
		case errors.Is(msg.err, errs.ErrRateLimited):
			m.setStatus("Too many failed attempts, wait and try again", true)
		case errors.Is(msg.err, errs.ErrValidation):
			m.setStatus("Please enter username and password", true)
		default:
			m.setStatus("Login failed: service unavailable", true)
		}
		return m, nil
	}
	m.screen = screenMain
	m.tab = tabUpcoming
	m.cursor = 0
	m.setStatus("Welcome, "+msg.user.Name+"!", false)
	focusInputs(m.login, -1)
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.loadUpcoming())
}

func (m Model) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenLogin
		m.setStatus("", false)
		return m, focusInputs(m.login, m.loginFocus)
	case "tab", "down":
		m.regFocus = (m.regFocus + 1) % len(m.register)
		return m, focusInputs(m.register, m.regFocus)
	case "shift+tab", "up":
		m.regFocus = (m.regFocus + len(m.register) - 1) % len(m.register)
		return m, focusInputs(m.register, m.regFocus)
	case "enter":
		in := model.RegisterInput{
			Name:     m.register[0].Value(),
			Email:    m.register[1].Value(),
			Password: m.register[2].Value(),
		}
		if _, err := m.deps.Auth.Register(m.ctx, in); err != nil {
			m.setStatus("Please fill in all fields correctly", true)
			return m, nil
		}
		for i := range m.register {
			m.register[i].Reset()
		}
		m.screen = screenLogin
		m.setStatus(view.RegisterSuccess, false)
		return m, focusInputs(m.login, m.loginFocus)
	}
	var cmd tea.Cmd
	m.register[m.regFocus], cmd = m.register[m.regFocus].Update(msg)
	return m, cmd
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			return m.runSearch()
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1", "2", "3":
		return m.switchTab(tab(msg.String()[0] - '1'))
	case "tab", "right", "l":
		return m.switchTab((m.tab + 1) % tabCount)
	case "shift+tab", "left", "h":
		return m.switchTab((m.tab + tabCount - 1) % tabCount)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.count()-1 {
			m.cursor++
		}
	case "/":
		if m.tab != tabSearch {
			m.tab = tabSearch
			m.cursor = 0
		}
		m.searching = true
		return m, m.search.Focus()
	case "m":
		if m.tab == tabSearch {
			m.mode = (m.mode + 1) % modeCount
			m.cursor = 0
			return m.runSearch()
		}
	case "r":
		return m.refresh()
	case "enter":
		return m.open()
	case "f":
		if e, ok := m.selectedEvent(); ok {
			m.toggleFavourite(e)
			m.clampCursor()
		}
	case "t":
		return m.toggleTheme()
	case "L":
		return m.logout()
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.screen = screenMain
		m.clampCursor()
	case "f":
		if m.screen == screenFight {
			m.toggleFavourite(m.fight)
		}
	case "t":
		return m.toggleTheme()
	}
	return m, nil
}

func (m Model) switchTab(t tab) (tea.Model, tea.Cmd) {
	if t < 0 || t >= tabCount {
		return m, nil
	}
	m.tab = t
	m.cursor = 0
	if t == tabSearch && !m.searched {
		return m.runSearch()
	}
	return m, nil
}

func (m Model) refresh() (tea.Model, tea.Cmd) {
	switch m.tab {
	case tabUpcoming:
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadUpcoming())
	case tabSearch:
		return m.runSearch()
	}
	return m, nil
}

func (m Model) runSearch() (tea.Model, tea.Cmd) {
	m.loading = true
	m.setStatus("", false)
	return m, tea.Batch(m.spinner.Tick, m.doSearch(m.mode, m.search.Value()))
}

func (m Model) open() (tea.Model, tea.Cmd) {
	if m.tab == tabSearch && m.mode == modeFighters {
		if m.cursor < len(m.fighters) {
			m.fighter = m.fighters[m.cursor]
			m.screen = screenFighter
		}
		return m, nil
	}
	if e, ok := m.selectedEvent(); ok {
		m.fight = e
		m.screen = screenFight
	}
	return m, nil
}

func (m *Model) toggleFavourite(e model.FightEvent) {
	if m.deps.Favourites.Toggle(e) {
		m.setStatus("Added to favourites", false)
	} else {
		m.setStatus("Removed from favourites", false)
	}
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	t, err := m.deps.Theme.Toggle(m.ctx)
	if err != nil {
		m.log.Warn("theme not saved", zap.Error(err))
	}
	m.styles = theme.NewStyles(t)
	m.restyle()
	return m, nil
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	m.deps.Auth.Logout()
	m.screen = screenLogin
	m.tab = tabUpcoming
	m.cursor = 0
	m.upcoming, m.recent, m.results, m.fighters = nil, nil, nil, nil
	m.searched = false
	m.search.Reset()
	m.setStatus("Logged out", false)
	m.loginFocus = 0
	return m, focusInputs(m.login, 0)
}

// events is the event list shown on the current tab.
func (m Model) events() []model.FightEvent {
	switch m.tab {
	case tabUpcoming:
		return m.upcoming
	case tabSearch:
		if m.mode != modeFighters {
			return m.results
		}
	case tabFavourites:
		return m.deps.Favourites.List()
	}
	return nil
}

func (m Model) count() int {
	if m.tab == tabSearch && m.mode == modeFighters {
		return len(m.fighters)
	}
	return len(m.events())
}

func (m Model) selectedEvent() (model.FightEvent, bool) {
	list := m.events()
	if m.cursor < 0 || m.cursor >= len(list) {
		return model.FightEvent{}, false
	}
	return list[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := m.count(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}
