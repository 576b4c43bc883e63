package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/fightnight/internal/errs"
	"github.com/and161185/fightnight/internal/repository"
)

// RootKey is where the whitelisted slices are persisted.
const RootKey = "persist:root"

const (
	persistVersion = 1
	writeTimeout   = 5 * time.Second
)

type persistMeta struct {
	Version int `json:"version"`
}

type persistedRoot struct {
	Auth       *AuthState       `json:"auth"`
	Favourites *FavouritesState `json:"favourites"`
	Persist    persistMeta      `json:"_persist"`
}

// Store owns RootState. Dispatch is serialized; snapshots are written by a
// background goroutine that only ever keeps the latest pending one.
type Store struct {
	mu      sync.Mutex
	state   RootState
	subs    map[int]func(RootState)
	nextSub int
	closed  bool

	kv      repository.KVRepository
	log     *zap.Logger
	mailbox chan RootState
	done    chan struct{}
}

// NewStore starts the persister. Call Close to flush and stop it.
func NewStore(kv repository.KVRepository, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		state:   Initial(),
		subs:    map[int]func(RootState){},
		kv:      kv,
		log:     log.Named("store"),
		mailbox: make(chan RootState, 1),
		done:    make(chan struct{}),
	}
	go s.persistLoop()
	return s
}

// Rehydrate replaces the state with the persisted snapshot. A missing key
// keeps the defaults; an unreadable blob keeps the defaults and is logged.
func (s *Store) Rehydrate(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, RootKey)
	if errors.Is(err, errs.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("rehydrate: %w", err)
	}

	var p persistedRoot
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.Warn("persisted state is corrupt, using defaults", zap.Error(err))
		return nil
	}

	st := Initial()
	if p.Auth != nil {
		st.Auth = *p.Auth
		if st.Auth.User == nil {
			st.Auth.IsAuthenticated = false
		}
	}
	if p.Favourites != nil && p.Favourites.Favourites != nil {
		st.Favourites = *p.Favourites
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()

	s.log.Debug("rehydrated", zap.Bool("authenticated", st.Auth.IsAuthenticated), zap.Int("favourites", st.FavouriteCount()))
	return nil
}

// State returns a copy of the current state.
func (s *Store) State() RootState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Dispatch reduces a into the state, schedules a write and notifies
// subscribers. It returns the new state.
func (s *Store) Dispatch(a Action) RootState {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snap := s.state.clone()
	if s.closed {
		s.log.Warn("dispatch after close, not persisted", zap.String("action", a.Type()))
	} else {
		s.enqueue(snap)
	}
	subs := make([]func(RootState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.log.Debug("dispatch", zap.String("action", a.Type()))
	for _, fn := range subs {
		fn(snap.clone())
	}
	return snap
}

// Subscribe registers fn to run after every dispatch.
func (s *Store) Subscribe(fn func(RootState)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close writes any pending snapshot and stops the persister.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	close(s.mailbox)
	s.mu.Unlock()
	<-s.done
}

// enqueue must be called with mu held.
func (s *Store) enqueue(snap RootState) {
	select {
	case s.mailbox <- snap:
	default:
		select {
		case <-s.mailbox:
		default:
		}
		s.mailbox <- snap
	}
}

func (s *Store) persistLoop() {
	defer close(s.done)
	for snap := range s.mailbox {
		if err := s.write(snap); err != nil {
			s.log.Error("persist state", zap.Error(err))
		}
	}
}

func (s *Store) write(snap RootState) error {
	blob, err := json.Marshal(persistedRoot{
		Auth:       &snap.Auth,
		Favourites: &snap.Favourites,
		Persist:    persistMeta{Version: persistVersion},
	})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return s.kv.Set(ctx, RootKey, string(blob))
}
