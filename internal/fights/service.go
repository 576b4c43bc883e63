package fights

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/and161185/fightnight/internal/errs"
	"github.com/and161185/fightnight/internal/model"
)

// CatalogSource returns the first limit items of the demo catalog.
type CatalogSource interface {
	Products(ctx context.Context, limit int) ([]model.CatalogItem, error)
}

// Rand draws integers in [0, n).
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Overview is the first screen: upcoming cards and recent results.
type Overview struct {
	Upcoming []model.FightEvent
	Past     []model.FightEvent
}

// Service fetches catalog pages and derives fights, fighters and results.
type Service struct {
	src       CatalogSource
	rnd       Rand
	now       func() time.Time
	log       *zap.Logger
	limit     int
	pastLimit int
}

// Option customizes a Service.
type Option func(*Service)

// WithRand replaces the random source used for fighter and result synthesis.
func WithRand(r Rand) Option { return func(s *Service) { s.rnd = r } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithLimits overrides the catalog page sizes for upcoming and past events.
func WithLimits(upcoming, past int) Option {
	return func(s *Service) {
		if upcoming > 0 {
			s.limit = upcoming
		}
		if past > 0 {
			s.pastLimit = past
		}
	}
}

// NewService constructs a Service over src.
func NewService(src CatalogSource, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		src:       src,
		rnd:       globalRand{},
		now:       time.Now,
		log:       log.Named("fights"),
		limit:     30,
		pastLimit: 15,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FetchAllFights returns upcoming fights sorted by date.
func (s *Service) FetchAllFights(ctx context.Context) ([]model.FightEvent, error) {
	items, err := s.products(ctx, s.limit)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		s.log.Warn("catalog returned no products")
		return []model.FightEvent{}, nil
	}
	return Transform(items, s.now()), nil
}

// SearchFights filters upcoming fights by a case-insensitive substring of
// title, either fighter, sport or venue. A blank term returns everything.
func (s *Service) SearchFights(ctx context.Context, term string) ([]model.FightEvent, error) {
	all, err := s.FetchAllFights(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(term) == "" {
		return all, nil
	}
	return FilterFights(all, term), nil
}

// FilterFights applies the search match without fetching.
func FilterFights(events []model.FightEvent, term string) []model.FightEvent {
	t := strings.ToLower(term)
	out := make([]model.FightEvent, 0, len(events))
	for _, e := range events {
		if containsFold(e.Title, t) || containsFold(e.Fighter1, t) || containsFold(e.Fighter2, t) ||
			containsFold(e.Sport, t) || containsFold(e.Venue, t) {
			out = append(out, e)
		}
	}
	return out
}

// GetFightByID finds an upcoming fight by its catalog id.
func (s *Service) GetFightByID(ctx context.Context, id string) (model.FightEvent, error) {
	all, err := s.FetchAllFights(ctx)
	if err != nil {
		return model.FightEvent{}, err
	}
	for _, e := range all {
		if e.ID == id {
			return e, nil
		}
	}
	return model.FightEvent{}, fmt.Errorf("fight %q: %w", id, errs.ErrNotFound)
}

// SearchFighters synthesizes fighter profiles and filters them by name or
// nickname. A blank term returns everyone.
func (s *Service) SearchFighters(ctx context.Context, term string) ([]model.Fighter, error) {
	all, err := s.FetchAllFights(ctx)
	if err != nil {
		return nil, err
	}
	fighters := Fighters(all, s.rnd)
	s.log.Debug("fighters built", zap.Int("count", len(fighters)))
	if strings.TrimSpace(term) == "" {
		return fighters, nil
	}
	t := strings.ToLower(term)
	out := make([]model.Fighter, 0, len(fighters))
	for _, f := range fighters {
		if containsFold(f.Name, t) || containsFold(f.Nickname, t) {
			out = append(out, f)
		}
	}
	return out, nil
}

// GetFighter looks a fighter up by exact name, ignoring case.
func (s *Service) GetFighter(ctx context.Context, name string) (model.Fighter, error) {
	all, err := s.SearchFighters(ctx, "")
	if err != nil {
		return model.Fighter{}, err
	}
	for _, f := range all {
		if strings.EqualFold(f.Name, strings.TrimSpace(name)) {
			return f, nil
		}
	}
	return model.Fighter{}, fmt.Errorf("fighter %q: %w", name, errs.ErrNotFound)
}

// SearchPastEvents returns synthesized completed bouts, newest first.
func (s *Service) SearchPastEvents(ctx context.Context) ([]model.FightEvent, error) {
	items, err := s.products(ctx, s.pastLimit)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		s.log.Warn("catalog returned no products for past events")
		return []model.FightEvent{}, nil
	}
	return Past(items, s.now(), s.rnd), nil
}

// Overview fetches upcoming and past events concurrently. Only an upcoming
// failure is returned; a failed past page is logged and left empty.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var (
		ov      Overview
		g       errgroup.Group
		pastErr error
	)
	g.Go(func() error {
		var err error
		ov.Upcoming, err = s.FetchAllFights(ctx)
		return err
	})
	g.Go(func() error {
		ov.Past, pastErr = s.SearchPastEvents(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	if pastErr != nil {
		s.log.Warn("past events unavailable", zap.Error(pastErr))
		ov.Past = []model.FightEvent{}
	}
	return ov, nil
}

func (s *Service) products(ctx context.Context, limit int) ([]model.CatalogItem, error) {
	items, err := s.src.Products(ctx, limit)
	if err != nil {
		s.log.Error("fetch catalog", zap.Int("limit", limit), zap.Error(err))
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return items, nil
}

// containsFold reports whether s contains the already lowercased needle.
func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
