package fights

import (
	"time"

	"github.com/and161185/fightnight/internal/model"
)

var placeholderCatalog = []model.CatalogItem{
	{ID: 9001, Title: "Main Event", Price: 149.99},
	{ID: 9002, Title: "Co-Main Event", Price: 99.99},
	{ID: 9003, Title: "Title Eliminator"},
	{ID: 9004, Title: "Prelims", Price: 29.99},
}

// Placeholder is the static card shown when the catalog cannot be fetched.
func Placeholder(today time.Time) []model.FightEvent {
	return Transform(placeholderCatalog, today)
}
