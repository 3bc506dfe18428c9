package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/checkpoint"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/encoding"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/engine"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/replay"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/setup"
	"github.com/louisbranch/manaforge/internal/services/rules/observer"
	"github.com/louisbranch/manaforge/internal/services/rules/storage"
)

var (
	// ErrStoreRequired indicates a Service without a game store.
	ErrStoreRequired = errors.New("game store is required")
	// ErrGameIDRequired indicates a call without a game id.
	ErrGameIDRequired = errors.New("game id is required")
	// ErrPlayerIDRequired indicates an action without a player id.
	ErrPlayerIDRequired = errors.New("player id is required")
)

// Deps are the collaborators of a Service. Snapshots defaults to the store's
// own snapshot table when the store provides one; Bus and Logger are
// optional.
type Deps struct {
	Catalog   *content.Static
	Store     storage.GameStore
	Snapshots replay.SnapshotStore
	Bus       *observer.Bus
	Logger    *slog.Logger
	Now       func() time.Time
}

// Service creates games, applies actions and rebuilds state from journals.
type Service struct {
	catalog   *content.Static
	engine    *engine.Engine
	store     storage.GameStore
	snapshots replay.SnapshotStore
	bus       *observer.Bus
	logger    *slog.Logger
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// ActResult is the outcome of Act. Seq is the journal position of an
// accepted action and zero for a rejected one.
type ActResult struct {
	engine.Result
	Seq uint64
}

// New builds a Service from deps. A nil catalog loads the base content.
func New(deps Deps) (*Service, error) {
	if deps.Store == nil {
		return nil, ErrStoreRequired
	}
	cat := deps.Catalog
	if cat == nil {
		base, err := content.Base()
		if err != nil {
			return nil, fmt.Errorf("load content: %w", err)
		}
		cat = base
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	// Replay reuses this engine, so it must not publish: events go out once,
	// from Act, after the journal accepts the entry.
	eng, err := engine.New(cat, engine.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	snapshots := deps.Snapshots
	if snapshots == nil {
		if ss, ok := deps.Store.(replay.SnapshotStore); ok {
			snapshots = ss
		} else {
			snapshots = checkpoint.NewNoop()
		}
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		catalog:   cat,
		engine:    eng,
		store:     deps.Store,
		snapshots: snapshots,
		bus:       deps.Bus,
		logger:    logger,
		now:       now,
		locks:     make(map[string]*sync.Mutex),
	}, nil
}

// NewGame sets up a game and saves it with an empty journal.
func (s *Service) NewGame(ctx context.Context, cfg setup.Config) (game.State, error) {
	initial, err := s.newGame(ctx, cfg)
	return initial, classify(err)
}

func (s *Service) newGame(ctx context.Context, cfg setup.Config) (game.State, error) {
	initial, err := setup.NewGame(s.catalog, cfg)
	if err != nil {
		return game.State{}, err
	}
	if err := s.store.CreateGame(ctx, initial); err != nil {
		return game.State{}, fmt.Errorf("create game %s: %w", initial.ID, err)
	}
	s.logger.Info("game created",
		slog.String("game_id", initial.ID),
		slog.Int("players", len(initial.Players)),
		slog.Uint64("seed", cfg.Seed))
	return initial, nil
}

// Load rebuilds the current state of a game.
func (s *Service) Load(ctx context.Context, gameID string) (replay.Result, error) {
	res, err := s.load(ctx, gameID)
	return res, classify(err)
}

func (s *Service) load(ctx context.Context, gameID string) (replay.Result, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return replay.Result{}, ErrGameIDRequired
	}
	g, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return replay.Result{}, fmt.Errorf("get game %s: %w", gameID, err)
	}
	return replay.Replay(ctx, s.store, s.snapshots, s.engine, gameID, g.Initial, replay.Options{})
}

// Verify replays the whole journal from the initial state, ignoring
// snapshots, and checks every recorded state hash. untilSeq of zero verifies
// to the end.
func (s *Service) Verify(ctx context.Context, gameID string, untilSeq uint64) (replay.Result, error) {
	res, err := s.verify(ctx, gameID, untilSeq)
	return res, classify(err)
}

func (s *Service) verify(ctx context.Context, gameID string, untilSeq uint64) (replay.Result, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return replay.Result{}, ErrGameIDRequired
	}
	g, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return replay.Result{}, fmt.Errorf("get game %s: %w", gameID, err)
	}
	return replay.Replay(ctx, s.store, checkpoint.NewNoop(), s.engine, gameID, g.Initial, replay.Options{UntilSeq: untilSeq})
}

// Act applies one action for playerID. Rejected actions are not journaled
// and return a nil error; only their rejection event is published. Errors
// carry an apperrors code.
func (s *Service) Act(ctx context.Context, gameID, playerID string, env action.Envelope) (ActResult, error) {
	res, err := s.act(ctx, gameID, playerID, env)
	return res, classify(err)
}

func (s *Service) act(ctx context.Context, gameID, playerID string, env action.Envelope) (ActResult, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return ActResult{}, ErrGameIDRequired
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return ActResult{}, ErrPlayerIDRequired
	}
	a, err := action.Decode(env)
	if err != nil && !errors.Is(err, action.ErrTypeUnknown) {
		return ActResult{}, fmt.Errorf("decode action: %w", err)
	}

	lock := s.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	loaded, err := s.load(ctx, gameID)
	if err != nil {
		return ActResult{}, err
	}
	// An unknown type decodes to nil and is rejected by validation.
	res, err := s.engine.ProcessAction(ctx, loaded.State, playerID, a)
	if err != nil {
		return ActResult{}, err
	}
	if !res.Accepted {
		s.publish(ctx, gameID, res.Events)
		return ActResult{Result: res}, nil
	}

	hash, err := encoding.Hash(res.State)
	if err != nil {
		return ActResult{}, fmt.Errorf("hash state: %w", err)
	}
	now := s.now().UTC()
	entry := replay.Entry{
		GameID:    gameID,
		Seq:       loaded.LastSeq + 1,
		PlayerID:  playerID,
		Action:    env,
		StateHash: hash,
		CreatedAt: now,
	}
	if err := s.store.AppendEntry(ctx, entry); err != nil {
		return ActResult{}, fmt.Errorf("append entry %d: %w", entry.Seq, err)
	}
	snapshot := replay.Snapshot{GameID: gameID, Seq: entry.Seq, State: res.State, UpdatedAt: now}
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		s.logger.Warn("save snapshot",
			slog.String("game_id", gameID),
			slog.Uint64("seq", entry.Seq),
			slog.Any("error", err))
	}
	s.publish(ctx, gameID, res.Events)
	return ActResult{Result: res, Seq: entry.Seq}, nil
}

// Subscribe forwards bus deliveries to handler. It is a no-op without a bus.
func (s *Service) Subscribe(ctx context.Context, handler observer.Handler, types ...event.Type) error {
	if s.bus == nil {
		return nil
	}
	return s.bus.Subscribe(ctx, handler, types...)
}

func (s *Service) publish(ctx context.Context, gameID string, events []event.Event) {
	if s.bus == nil || len(events) == 0 {
		return
	}
	if err := s.bus.Publish(ctx, gameID, events); err != nil {
		s.logger.Warn("publish events",
			slog.String("game_id", gameID),
			slog.Int("count", len(events)),
			slog.Any("error", err))
	}
}

func (s *Service) gameLock(gameID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[gameID] = lock
	}
	return lock
}
