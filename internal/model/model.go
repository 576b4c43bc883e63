// Package model defines domain entities shared by the data, state and presentation layers.
package model

import "strconv"

// Event statuses.
const (
	StatusUpcoming  = "Upcoming"
	StatusCompleted = "Completed"
)

// CatalogItem is a generic product record from the demo API, used as raw
// input for the fight transform.
type CatalogItem struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Brand     string  `json:"brand"`
	Thumbnail string  `json:"thumbnail"`
}

// SourceProduct keeps the catalog fields a fight was derived from.
type SourceProduct struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
}

// FightEvent is a synthesized bout. Upcoming events carry ticket and
// source data; completed ones carry the outcome.
type FightEvent struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Headline    string  `json:"headline,omitempty"`
	Fighter1    string  `json:"fighter1"`
	Fighter2    string  `json:"fighter2"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Time        string  `json:"time"`
	Sport       string  `json:"sport"`
	League      string  `json:"league,omitempty"`
	Venue       string  `json:"venue"`
	Location    string  `json:"location"`
	Thumbnail   string  `json:"thumbnail"`
	Poster      string  `json:"poster,omitempty"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
	TicketPrice float64 `json:"ticketPrice,omitempty"`
	Status      string  `json:"status"`

	Winner string `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
	Method string `json:"method,omitempty"`
	Round  int    `json:"round,omitempty"`

	Source *SourceProduct `json:"_originalProduct,omitempty"`
}

// Completed reports whether the event carries an outcome.
func (e FightEvent) Completed() bool { return e.Status == StatusCompleted }

// Fighter is a profile synthesized from names appearing in fight events.
type Fighter struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Nickname    string `json:"nickname"`
	Nationality string `json:"nationality"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Division    string `json:"division"`
	Weight      string `json:"weight"`
	Team        string `json:"team"`
	Photo       string `json:"photo"`
}

// Record formats wins-losses.
func (f Fighter) Record() string {
	return strconv.Itoa(f.Wins) + "-" + strconv.Itoa(f.Losses)
}

// User is the profile kept in the auth session.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Image    string `json:"image"`
}

// AuthSession is the persisted auth slice. User is nil when logged out.
type AuthSession struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	User            *User  `json:"user"`
	Token           string `json:"token"`
}

// ThemePreference is persisted separately from the auth/favourites blob.
type ThemePreference struct {
	IsDarkMode bool `json:"isDarkMode"`
}

// LoginResponse is the demo API's successful /auth/login payload.
type LoginResponse struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Gender       string `json:"gender"`
	Image        string `json:"image"`
	AccessToken  string `json:"accessToken"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// SessionToken returns whichever token field the API populated.
func (r LoginResponse) SessionToken() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// Credentials is the login form.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// RegisterInput is the local-only registration form.
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}
