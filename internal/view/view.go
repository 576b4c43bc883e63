// Package view renders fights, fighters and the session as styled terminal text.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/and161185/fightnight/internal/model"
	"github.com/and161185/fightnight/internal/theme"
)

// Messages shown to the user.
const (
	FightNotFound     = "Fight not found"
	FighterNotFound   = "Fighter not found"
	NoFights          = "No fights found"
	NoFighters        = "No fighters found"
	NoPastEvents      = "No past events found"
	NoFavourites      = "No favourites yet"
	LoginHint         = "Invalid credentials. Try: emilys / emilyspass"
	RegisterSuccess   = "Account created successfully! Please login."
	PlaceholderNotice = "Catalog unavailable, showing sample fights"
	CatalogDown       = "Catalog unavailable, try again later"
	NotFavourite      = "Not in favourites"
)

const star = "★"

// FightLine is the one-line list rendering of an upcoming or completed event.
func FightLine(st theme.Styles, e model.FightEvent, fav bool) string {
	mark := " "
	if fav {
		mark = st.Accent.Render(star)
	}
	title := st.Title.Render(e.Title)
	if e.Completed() {
		return fmt.Sprintf("%s %s  %s  %s  %s",
			mark, title,
			st.Muted.Render(e.Date),
			st.Success.Render(e.Result),
			st.Muted.Render(fmt.Sprintf("%s R%d %s", e.Method, e.Round, e.Time)),
		)
	}
	return fmt.Sprintf("%s %s  %s  %s  %s  %s",
		mark, title,
		st.Badge.Render(e.Sport),
		st.Muted.Render(e.Date+" "+e.Time),
		st.Body.Render(e.Venue),
		st.Accent.Render(Price(e.TicketPrice)),
	)
}

// FightDetail is the full card for one event.
func FightDetail(st theme.Styles, e model.FightEvent, fav bool) string {
	var b strings.Builder
	head := e.Title
	if fav {
		head += " " + star
	}
	b.WriteString(st.Title.Render(head))
	b.WriteString("\n")
	if e.Headline != "" {
		b.WriteString(st.Accent.Render(e.Headline))
		b.WriteString("\n")
	}

	rows := [][2]string{
		{"Fighters", e.Fighter1 + " vs " + e.Fighter2},
		{"Sport", strings.TrimSpace(e.Sport + " " + leagueSuffix(e))},
		{"Date", e.Date},
		{"Time", e.Time},
		{"Venue", e.Venue},
	}
	if e.Location != "" && e.Location != e.Venue {
		rows = append(rows, [2]string{"Location", e.Location})
	}
	rows = append(rows, [2]string{"Status", e.Status})
	if e.Completed() {
		rows = append(rows,
			[2]string{"Result", e.Result},
			[2]string{"Method", e.Method},
			[2]string{"Round", fmt.Sprint(e.Round)},
		)
	} else {
		rows = append(rows, [2]string{"Tickets", Price(e.TicketPrice)})
	}
	if e.Image != "" {
		rows = append(rows, [2]string{"Poster", e.Image})
	} else if e.Thumbnail != "" {
		rows = append(rows, [2]string{"Poster", e.Thumbnail})
	}
	b.WriteString(table(st, rows))
	if e.Description != "" {
		b.WriteString("\n")
		b.WriteString(st.Body.Render(e.Description))
	}
	return st.Card.Render(b.String())
}

func leagueSuffix(e model.FightEvent) string {
	if e.League == "" || e.League == e.Sport {
		return ""
	}
	return "(" + e.League + ")"
}

// FighterLine is the one-line list rendering of a fighter.
func FighterLine(st theme.Styles, f model.Fighter) string {
	return fmt.Sprintf("%s %s  %s  %s  %s",
		st.Title.Render(f.Name),
		st.Muted.Render(`"`+f.Nickname+`"`),
		st.Accent.Render(f.Record()),
		st.Body.Render(f.Division),
		st.Muted.Render(f.Nationality),
	)
}

// FighterDetail is the profile card.
func FighterDetail(st theme.Styles, f model.Fighter) string {
	var b strings.Builder
	b.WriteString(st.Title.Render(f.Name))
	b.WriteString("\n")
	b.WriteString(st.Accent.Render(f.Nickname))
	b.WriteString("\n")
	b.WriteString(table(st, [][2]string{
		{"Record", f.Record()},
		{"Wins", fmt.Sprint(f.Wins)},
		{"Losses", fmt.Sprint(f.Losses)},
		{"Division", f.Division},
		{"Weight", f.Weight},
		{"Nationality", f.Nationality},
		{"Team", f.Team},
		{"Photo", f.Photo},
	}))
	return st.Card.Render(b.String())
}

// Profile renders the logged-in user.
func Profile(st theme.Styles, u model.User) string {
	return st.Card.Render(st.Title.Render(u.Name) + "\n" + table(st, [][2]string{
		{"Username", u.Username},
		{"Email", u.Email},
		{"ID", u.ID},
		{"Avatar", u.Image},
	}))
}

// Price formats a ticket price in dollars.
func Price(p float64) string { return fmt.Sprintf("$%.2f", p) }

func table(st theme.Styles, rows [][2]string) string {
	width := 0
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}
	label := st.Muted.Width(width + 2)
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(r[0]), st.Body.Render(r[1])))
	}
	return strings.Join(lines, "\n")
}
