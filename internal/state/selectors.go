package state

import "github.com/and161185/fightnight/internal/model"

// IsFavourite reports whether id is saved.
func (s RootState) IsFavourite(id string) bool {
	return indexOf(s.Favourites.Favourites, id) >= 0
}

// FavouriteCount is the number of saved events.
func (s RootState) FavouriteCount() int { return len(s.Favourites.Favourites) }

// FavouriteList returns the saved events in insertion order.
func (s RootState) FavouriteList() []model.FightEvent { return s.Favourites.Favourites }

// CurrentUser returns the logged-in user or nil.
func (s RootState) CurrentUser() *model.User { return s.Auth.User }
