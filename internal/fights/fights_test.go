package fights

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/and161185/fightnight/internal/errs"
	"github.com/and161185/fightnight/internal/model"
)

var testToday = time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)

type fakeCatalog struct {
	mu     sync.Mutex
	items  []model.CatalogItem
	err    error
	limits []int
	// failLimit fails only requests for that page size.
	failLimit int
}

func (f *fakeCatalog) Products(_ context.Context, limit int) ([]model.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return nil, f.err
	}
	if f.failLimit != 0 && limit == f.failLimit {
		return nil, errs.ErrUpstream
	}
	if limit < len(f.items) {
		return f.items[:limit], nil
	}
	return f.items, nil
}

// seqRand returns values from a fixed cycle, reduced modulo n.
type seqRand struct {
	mu   sync.Mutex
	vals []int
	i    int
}

func (r *seqRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func catalog(n int) []model.CatalogItem {
	out := make([]model.CatalogItem, n)
	for i := range out {
		out[i] = model.CatalogItem{
			ID:       i + 1,
			Title:    fmt.Sprintf("Product %d", i+1),
			Price:    float64(i) * 10,
			Category: "beauty",
			Brand:    "Brand",
		}
	}
	return out
}

func newTestService(items []model.CatalogItem, r Rand) (*Service, *fakeCatalog) {
	src := &fakeCatalog{items: items}
	if r == nil {
		r = &seqRand{vals: []int{0}}
	}
	return NewService(src, nil, WithRand(r), WithClock(func() time.Time { return testToday })), src
}

func TestTransform_CountIDsAndOrder(t *testing.T) {
	for _, n := range []int{0, 1, 7, 30, 45} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			items := catalog(n)
			got := Transform(items, testToday)
			require.Len(t, got, n)

			ids := map[string]bool{}
			for _, e := range got {
				require.False(t, ids[e.ID], "duplicate id %s", e.ID)
				ids[e.ID] = true
			}
			for _, it := range items {
				require.True(t, ids[fmt.Sprint(it.ID)])
			}
			require.True(t, sort.SliceIsSorted(got, func(a, b int) bool { return got[a].Date < got[b].Date }))
		})
	}
}

func TestTransform_Fields(t *testing.T) {
	got := Transform(catalog(9), testToday)

	first := got[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Jones vs Ngannou", first.Title)
	assert.Equal(t, "MMA Championship", first.Headline)
	assert.Equal(t, "MMA", first.Sport)
	assert.Equal(t, "UFC", first.League)
	assert.Equal(t, "2025-03-11", first.Date)
	assert.Equal(t, "21:00", first.Time)
	assert.Equal(t, "MGM Grand, Las Vegas", first.Venue)
	assert.Equal(t, first.Venue, first.Location)
	assert.Equal(t, fightImages[0], first.Thumbnail)
	assert.Equal(t, first.Thumbnail, first.Poster)
	assert.Equal(t, first.Thumbnail, first.Image)
	assert.Equal(t, "MMA Championship bout featuring Jones vs Ngannou at MGM Grand, Las Vegas", first.Description)
	assert.InDelta(t, 49.99, first.TicketPrice, 1e-9, "zero price falls back")
	assert.Equal(t, model.StatusUpcoming, first.Status)
	require.NotNil(t, first.Source)
	assert.Equal(t, "Product 1", first.Source.Title)

	second := got[1]
	assert.Equal(t, "Boxing", second.Sport)
	assert.Equal(t, "Boxing", second.League)
	assert.Equal(t, "2025-03-13", second.Date)
	assert.InDelta(t, 10.0, second.TicketPrice, 1e-9)

	// index 8 wraps the venue and image pools
	assert.Equal(t, venues[0], got[8].Venue)
	assert.Equal(t, fightImages[0], got[8].Thumbnail)
	assert.Equal(t, "Usyk", got[5].Fighter2)
}

func TestTransform_Deterministic(t *testing.T) {
	items := catalog(20)
	require.Equal(t, Transform(items, testToday), Transform(items, testToday))
	require.Equal(t, Transform(items, testToday), Transform(items, testToday.Add(3*time.Hour)),
		"only the calendar day matters")
}

func TestSearchFights_BlankReturnsAllInOrder(t *testing.T) {
	svc, _ := newTestService(catalog(30), nil)
	all, err := svc.FetchAllFights(context.Background())
	require.NoError(t, err)

	for _, term := range []string{"", "   ", "\t"} {
		got, err := svc.SearchFights(context.Background(), term)
		require.NoError(t, err)
		require.Equal(t, all, got)
	}
}

func TestSearchFights_Matches(t *testing.T) {
	svc, _ := newTestService(catalog(30), nil)
	ctx := context.Background()

	got, err := svc.SearchFights(ctx, "jones")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	titles := make([]string, 0, len(got))
	for _, e := range got {
		titles = append(titles, e.Title)
	}
	require.Contains(t, titles, "Jones vs Ngannou")

	for _, term := range []string{"JONES", "boxing", "garden", "vs"} {
		got, err := svc.SearchFights(ctx, term)
		require.NoError(t, err)
		require.NotEmpty(t, got, term)
		lt := strings.ToLower(term)
		for _, e := range got {
			hay := strings.ToLower(strings.Join([]string{e.Title, e.Fighter1, e.Fighter2, e.Sport, e.Venue}, "|"))
			require.Contains(t, hay, lt)
		}
	}

	got, err = svc.SearchFights(ctx, "zzz-nomatch")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFetchAllFights_EmptyAndError(t *testing.T) {
	svc, src := newTestService(nil, nil)
	got, err := svc.FetchAllFights(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
	require.Equal(t, []int{30}, src.limits)

	src.err = fmt.Errorf("%w: boom", errs.ErrUpstream)
	_, err = svc.SearchFights(context.Background(), "x")
	require.ErrorIs(t, err, errs.ErrUpstream)
}

func TestGetFightByID(t *testing.T) {
	svc, _ := newTestService(catalog(5), nil)
	e, err := svc.GetFightByID(context.Background(), "3")
	require.NoError(t, err)
	require.Equal(t, "3", e.ID)

	_, err = svc.GetFightByID(context.Background(), "999")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSearchFighters_UniqueFirstSeen(t *testing.T) {
	r := &seqRand{vals: []int{7, 3}}
	svc, _ := newTestService(catalog(3), r)

	got, err := svc.SearchFighters(context.Background(), "")
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, f := range got {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"Jones", "Ngannou", "Silva", "Holloway", "McGregor", "Volkanovski"}, names)

	f := got[1]
	assert.Equal(t, 2, f.ID)
	assert.Equal(t, "The Beast", f.Nickname)
	assert.Equal(t, "Brazil", f.Nationality)
	assert.Equal(t, "Middleweight", f.Division)
	assert.Equal(t, "185 lbs", f.Weight)
	assert.Equal(t, "Jackson-Wink MMA", f.Team)
	assert.Equal(t, fighterPhotos[1], f.Photo)
	assert.Equal(t, 17, f.Wins)
	assert.Equal(t, 3, f.Losses)
	assert.Equal(t, "17-3", f.Record())
}

func TestSearchFighters_Ranges(t *testing.T) {
	svc := NewService(&fakeCatalog{items: catalog(30)}, nil)
	got, err := svc.SearchFighters(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, got, 20)
	for _, f := range got {
		require.GreaterOrEqual(t, f.Wins, 10)
		require.Less(t, f.Wins, 40)
		require.GreaterOrEqual(t, f.Losses, 0)
		require.Less(t, f.Losses, 5)
	}
}

func TestSearchFighters_Filter(t *testing.T) {
	svc, _ := newTestService(catalog(30), nil)
	ctx := context.Background()

	got, err := svc.SearchFighters(ctx, "MCGREG")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "McGregor", got[0].Name)

	got, err = svc.SearchFighters(ctx, "the king")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, f := range got {
		require.Equal(t, "The King", f.Nickname)
	}

	got, err = svc.SearchFighters(ctx, "zzz-nomatch")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGetFighter(t *testing.T) {
	svc, _ := newTestService(catalog(30), nil)
	f, err := svc.GetFighter(context.Background(), " usyk ")
	require.NoError(t, err)
	require.Equal(t, "Usyk", f.Name)

	_, err = svc.GetFighter(context.Background(), "Ali")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSearchPastEvents(t *testing.T) {
	// winner, round, minutes, seconds per item
	r := &seqRand{vals: []int{0, 2, 3, 7, 1, 4, 0, 45}}
	svc, src := newTestService(catalog(40), r)

	got, err := svc.SearchPastEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 15)
	require.Equal(t, 15, src.limits[0])
	require.True(t, sort.SliceIsSorted(got, func(a, b int) bool { return got[a].Date > got[b].Date }))

	e0 := got[0]
	assert.Equal(t, "past-1", e0.ID)
	assert.Equal(t, "Jones vs Canelo", e0.Title)
	assert.Equal(t, "2025-03-09", e0.Date)
	assert.Equal(t, "MMA", e0.Sport)
	assert.Equal(t, model.StatusCompleted, e0.Status)
	assert.True(t, e0.Completed())
	assert.Equal(t, "Jones", e0.Winner)
	assert.Equal(t, "Jones def. Canelo", e0.Result)
	assert.Equal(t, "KO", e0.Method)
	assert.Equal(t, 3, e0.Round)
	assert.Equal(t, "3:07", e0.Time)
	assert.Equal(t, "MGM Grand", e0.Venue)
	assert.Equal(t, "Las Vegas", e0.Location)
	assert.Nil(t, e0.Source)

	e1 := got[1]
	assert.Equal(t, "2025-03-06", e1.Date)
	assert.Equal(t, "Boxing", e1.Sport)
	assert.Equal(t, "Crawford", e1.Winner)
	assert.Equal(t, "Crawford def. Silva", e1.Result)
	assert.Equal(t, 5, e1.Round)
	assert.Equal(t, "0:45", e1.Time)
	assert.Equal(t, "London", got[3].Location)
}

func TestOverview(t *testing.T) {
	svc, src := newTestService(catalog(40), nil)
	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, ov.Upcoming, 30)
	require.Len(t, ov.Past, 15)
	require.ElementsMatch(t, []int{30, 15}, src.limits)

	src.err = errs.ErrUpstream
	_, err = svc.Overview(context.Background())
	require.ErrorIs(t, err, errs.ErrUpstream)
}

func TestOverview_PastFailureKeepsUpcoming(t *testing.T) {
	svc, src := newTestService(catalog(40), nil)
	src.failLimit = 15

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, ov.Upcoming, 30)
	require.NotNil(t, ov.Past)
	require.Empty(t, ov.Past)
}

func TestOverview_UpcomingFailureReturned(t *testing.T) {
	svc, src := newTestService(catalog(40), nil)
	src.failLimit = 30

	_, err := svc.Overview(context.Background())
	require.ErrorIs(t, err, errs.ErrUpstream)
}

func TestPlaceholder(t *testing.T) {
	got := Placeholder(testToday)
	require.Len(t, got, len(placeholderCatalog))
	require.Equal(t, "9001", got[0].ID)
	require.Equal(t, Placeholder(testToday), got)
}

func TestFilterFights_TermNotTrimmed(t *testing.T) {
	events := Transform(catalog(10), testToday)
	require.Empty(t, FilterFights(events, " jones "), "surrounding spaces are part of the term")
	require.NotEmpty(t, FilterFights(events, " vs "))
}
