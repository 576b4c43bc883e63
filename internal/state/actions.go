// Package state holds the client's auth and favourites slices behind a
// single store that serializes mutations and persists every change.
package state

import "github.com/and161185/fightnight/internal/model"

// Action is a state mutation request.
type Action interface {
	Type() string
}

// Login records a successful credential check.
type Login struct {
	User  model.User
	Token string
}

// Logout resets the auth slice to its initial state.
type Logout struct{}

// UpdateUser merges the non-empty fields of Patch into the current user.
type UpdateUser struct {
	Patch model.User
}

// AddFavourite saves a copy of Event unless its id is already saved.
type AddFavourite struct {
	Event model.FightEvent
}

// RemoveFavourite drops the favourite with ID, if any.
type RemoveFavourite struct {
	ID string
}

// ToggleFavourite removes Event if saved, otherwise adds it.
type ToggleFavourite struct {
	Event model.FightEvent
}

// ClearFavourites empties the collection.
type ClearFavourites struct{}

func (Login) Type() string           { return "auth/login" }
func (Logout) Type() string          { return "auth/logout" }
func (UpdateUser) Type() string      { return "auth/updateUser" }
func (AddFavourite) Type() string    { return "favourites/addFavourite" }
func (RemoveFavourite) Type() string { return "favourites/removeFavourite" }
func (ToggleFavourite) Type() string { return "favourites/toggleFavourite" }
func (ClearFavourites) Type() string { return "favourites/clearFavourites" }
