package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/and161185/fightnight/internal/model"
	"github.com/and161185/fightnight/internal/state"
)

// FightFinder resolves a fight id to the current card.
type FightFinder interface {
	GetFightByID(ctx context.Context, id string) (model.FightEvent, error)
}

// FavouritesService manages the saved-events collection.
type FavouritesService struct {
	store  Store
	finder FightFinder
	log    *zap.Logger
}

func NewFavouritesService(store Store, finder FightFinder, log *zap.Logger) *FavouritesService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FavouritesService{store: store, finder: finder, log: log.Named("favourites")}
}

// List returns saved events in the order they were added.
func (s *FavouritesService) List() []model.FightEvent {
	return s.store.State().FavouriteList()
}

func (s *FavouritesService) IsFavourite(id string) bool {
	return s.store.State().IsFavourite(id)
}

func (s *FavouritesService) Count() int {
	return s.store.State().FavouriteCount()
}

// Add saves a copy of e; saving an id twice is a no-op.
func (s *FavouritesService) Add(e model.FightEvent) {
	s.store.Dispatch(state.AddFavourite{Event: e})
}

// Remove drops id; an unknown id is a no-op.
func (s *FavouritesService) Remove(id string) {
	s.store.Dispatch(state.RemoveFavourite{ID: id})
}

// Toggle flips e and reports whether it is saved afterwards.
func (s *FavouritesService) Toggle(e model.FightEvent) bool {
	return s.store.Dispatch(state.ToggleFavourite{Event: e}).IsFavourite(e.ID)
}

func (s *FavouritesService) Clear() {
	s.store.Dispatch(state.ClearFavourites{})
}

// AddByID looks the fight up and saves it.
func (s *FavouritesService) AddByID(ctx context.Context, id string) (model.FightEvent, error) {
	e, err := s.finder.GetFightByID(ctx, id)
	if err != nil {
		return model.FightEvent{}, err
	}
	s.Add(e)
	s.log.Debug("favourite added", zap.String("id", id))
	return e, nil
}

// ToggleByID toggles a saved event without a fetch, or fetches and saves an
// unsaved one.
func (s *FavouritesService) ToggleByID(ctx context.Context, id string) (bool, error) {
	if s.IsFavourite(id) {
		s.Remove(id)
		return false, nil
	}
	if _, err := s.AddByID(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
