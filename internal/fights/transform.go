// Package fights turns demo catalog pages into fight cards, fighter
// profiles and past results, and filters them.
package fights

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/and161185/fightnight/internal/model"
)

// Transform maps catalog items to upcoming fights, sorted by date.
// The result depends only on items and the calendar day of today.
func Transform(items []model.CatalogItem, today time.Time) []model.FightEvent {
	out := make([]model.FightEvent, 0, len(items))
	day := midnightUTC(today)

	for i, it := range items {
		sport := sports[i%len(sports)]
		f1 := fighterPool[i%len(fighterPool)]
		f2 := fighterPool[(i+7)%len(fighterPool)]
		venue := venues[i%len(venues)]
		img := fightImages[i%len(fightImages)]

		league := "Boxing"
		if sport == "MMA" {
			league = "UFC"
		}
		price := it.Price
		if price == 0 {
			price = defaultTicketPrice
		}

		out = append(out, model.FightEvent{
			ID:          strconv.Itoa(it.ID),
			Title:       f1 + " vs " + f2,
			Headline:    sport + " Championship",
			Fighter1:    f1,
			Fighter2:    f2,
			Date:        day.AddDate(0, 0, 2*i+1).Format(dateLayout),
			Time:        fightTime,
			Sport:       sport,
			League:      league,
			Venue:       venue,
			Location:    venue,
			Thumbnail:   img,
			Poster:      img,
			Image:       img,
			Description: fmt.Sprintf("%s Championship bout featuring %s vs %s at %s", sport, f1, f2, venue),
			TicketPrice: price,
			Status:      model.StatusUpcoming,
			Source: &model.SourceProduct{
				Title:    it.Title,
				Category: it.Category,
				Brand:    it.Brand,
			},
		})
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Date < out[b].Date })
	return out
}

// Past synthesizes completed bouts, newest first. Winner, round and
// finish time are drawn from r.
func Past(items []model.CatalogItem, today time.Time, r Rand) []model.FightEvent {
	out := make([]model.FightEvent, 0, len(items))
	day := midnightUTC(today)

	for i, it := range items {
		f1 := pastFighters[i%len(pastFighters)]
		f2 := pastFighters[(i+5)%len(pastFighters)]

		winner, loser := f2, f1
		if r.IntN(2) == 0 {
			winner, loser = f1, f2
		}
		round := 1 + r.IntN(5)
		mins := r.IntN(5)
		secs := r.IntN(60)

		out = append(out, model.FightEvent{
			ID:        "past-" + strconv.Itoa(it.ID),
			Title:     f1 + " vs " + f2,
			Fighter1:  f1,
			Fighter2:  f2,
			Date:      day.AddDate(0, 0, -(3*i + 1)).Format(dateLayout),
			Time:      fmt.Sprintf("%d:%02d", mins, secs),
			Sport:     pastSports[i%len(pastSports)],
			Venue:     pastVenues[i%len(pastVenues)],
			Location:  pastLocations[i%len(pastLocations)],
			Thumbnail: pastImages[i%len(pastImages)],
			Status:    model.StatusCompleted,
			Winner:    winner,
			Result:    winner + " def. " + loser,
			Method:    pastMethods[i%len(pastMethods)],
			Round:     round,
		})
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Date > out[b].Date })
	return out
}

// Fighters builds one profile per distinct fighter name in first-seen order.
// Wins and losses are drawn from r, so profiles differ between calls.
func Fighters(events []model.FightEvent, r Rand) []model.Fighter {
	seen := make(map[string]struct{}, len(events)*2)
	var names []string
	for _, e := range events {
		for _, n := range [2]string{e.Fighter1, e.Fighter2} {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}

	out := make([]model.Fighter, 0, len(names))
	for i, n := range names {
		out = append(out, model.Fighter{
			ID:          i + 1,
			Name:        n,
			Nickname:    "The " + nicknames[i%len(nicknames)],
			Nationality: nationalities[i%len(nationalities)],
			Wins:        10 + r.IntN(30),
			Losses:      r.IntN(5),
			Division:    divisions[i%len(divisions)],
			Weight:      weights[i%len(weights)],
			Team:        teams[i%len(teams)],
			Photo:       fighterPhotos[i%len(fighterPhotos)],
		})
	}
	return out
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
