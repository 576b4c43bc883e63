package state

import "github.com/and161185/fightnight/internal/model"

// AuthState is the auth slice.
type AuthState = model.AuthSession

// FavouritesState is the favourites slice.
type FavouritesState struct {
	Favourites []model.FightEvent `json:"favourites"`
}

// RootState combines both slices.
type RootState struct {
	Auth       AuthState       `json:"auth"`
	Favourites FavouritesState `json:"favourites"`
}

// Initial returns the logged-out state with no favourites.
func Initial() RootState {
	return RootState{Favourites: FavouritesState{Favourites: []model.FightEvent{}}}
}

// Reduce applies a to s. It never mutates s.
func Reduce(s RootState, a Action) RootState {
	return RootState{
		Auth:       reduceAuth(s.Auth, a),
		Favourites: reduceFavourites(s.Favourites, a),
	}
}

func reduceAuth(s AuthState, a Action) AuthState {
	switch a := a.(type) {
	case Login:
		u := a.User
		return AuthState{IsAuthenticated: true, User: &u, Token: a.Token}
	case Logout:
		return AuthState{}
	case UpdateUser:
		if s.User == nil {
			return s
		}
		u := *s.User
		p := a.Patch
		if p.ID != "" {
			u.ID = p.ID
		}
		if p.Name != "" {
			u.Name = p.Name
		}
		if p.Email != "" {
			u.Email = p.Email
		}
		if p.Username != "" {
			u.Username = p.Username
		}
		if p.Image != "" {
			u.Image = p.Image
		}
		s.User = &u
		return s
	}
	return s
}

func reduceFavourites(s FavouritesState, a Action) FavouritesState {
	switch a := a.(type) {
	case AddFavourite:
		if indexOf(s.Favourites, a.Event.ID) >= 0 {
			return s
		}
		return FavouritesState{Favourites: appendCopy(s.Favourites, a.Event)}
	case RemoveFavourite:
		i := indexOf(s.Favourites, a.ID)
		if i < 0 {
			return s
		}
		return FavouritesState{Favourites: without(s.Favourites, i)}
	case ToggleFavourite:
		if i := indexOf(s.Favourites, a.Event.ID); i >= 0 {
			return FavouritesState{Favourites: without(s.Favourites, i)}
		}
		return FavouritesState{Favourites: appendCopy(s.Favourites, a.Event)}
	case ClearFavourites:
		return FavouritesState{Favourites: []model.FightEvent{}}
	}
	return s
}

func indexOf(favs []model.FightEvent, id string) int {
	for i := range favs {
		if favs[i].ID == id {
			return i
		}
	}
	return -1
}

func appendCopy(favs []model.FightEvent, e model.FightEvent) []model.FightEvent {
	out := make([]model.FightEvent, len(favs), len(favs)+1)
	copy(out, favs)
	return append(out, cloneEvent(e))
}

func without(favs []model.FightEvent, i int) []model.FightEvent {
	out := make([]model.FightEvent, 0, len(favs)-1)
	out = append(out, favs[:i]...)
	return append(out, favs[i+1:]...)
}

func cloneEvent(e model.FightEvent) model.FightEvent {
	if e.Source != nil {
		src := *e.Source
		e.Source = &src
	}
	return e
}

// clone returns a copy of s sharing no mutable memory with it.
func (s RootState) clone() RootState {
	out := s
	if s.Auth.User != nil {
		u := *s.Auth.User
		out.Auth.User = &u
	}
	out.Favourites.Favourites = make([]model.FightEvent, len(s.Favourites.Favourites))
	for i, e := range s.Favourites.Favourites {
		out.Favourites.Favourites[i] = cloneEvent(e)
	}
	return out
}
