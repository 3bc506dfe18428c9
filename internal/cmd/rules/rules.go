// Package rules parses rules command flags and runs one subcommand against a
// saved game.
package rules

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/manaforge/internal/platform/cmd"
	apperrors "github.com/louisbranch/manaforge/internal/platform/errors"
	"github.com/louisbranch/manaforge/internal/random"
	"github.com/louisbranch/manaforge/internal/services/rules/app"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/setup"
	"github.com/louisbranch/manaforge/internal/services/rules/observer"
)

// Config holds rules command configuration.
type Config struct {
	DBPath      string        `env:"RULES_DB_PATH" envDefault:"manaforge.db"`
	RedisURL    string        `env:"RULES_REDIS_URL"`
	SnapshotTTL time.Duration `env:"RULES_SNAPSHOT_TTL" envDefault:"24h"`
	LogLevel    string        `env:"RULES_LOG_LEVEL" envDefault:"info"`

	// Command is the subcommand name and Args its own arguments.
	Command string
	Args    []string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL for the snapshot cache (optional)")
	fs.DurationVar(&cfg.SnapshotTTL, "snapshot-ttl", cfg.SnapshotTTL, "Cached snapshot lifetime")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, errors.New("subcommand is required: new, act, replay or show")
	}
	cfg.Command, cfg.Args = rest[0], rest[1:]
	return cfg, nil
}

// Run executes the configured subcommand and writes its JSON result to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	sub, ok := subcommands[cfg.Command]
	if !ok {
		return fmt.Errorf("unknown subcommand %q", cfg.Command)
	}
	inv := entrypoint.Invocation{Service: entrypoint.ServiceRules, Command: cfg.Command, Logger: logger}
	return entrypoint.Run(ctx, inv, func(ctx context.Context) error {
		rt, err := app.Open(ctx, app.Config{
			DBPath:      cfg.DBPath,
			RedisURL:    cfg.RedisURL,
			SnapshotTTL: cfg.SnapshotTTL,
			EventBuffer: 64,
			Logger:      logger,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := rt.Close(); err != nil {
				logger.Warn("close runtime", slog.Any("error", err))
			}
		}()
		if err := rt.Subscribe(ctx, logDeliveries(logger)); err != nil {
			return err
		}
		result, err := sub(ctx, rt.Service, cfg.Args)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	})
}

// ExitCode maps a Run error to a process exit status: zero on success, else
// the numeric gRPC code of the error.
func ExitCode(err error) int {
	return int(apperrors.Status(err).Code())
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func logDeliveries(logger *slog.Logger) observer.Handler {
	return func(ctx context.Context, d observer.Delivery) error {
		logger.DebugContext(ctx, "event",
			slog.String("game_id", d.GameID),
			slog.String("type", string(d.Type)),
			slog.String("player_id", d.PlayerID))
		return nil
	}
}

type subcommand func(ctx context.Context, svc *app.Service, args []string) (any, error)

var subcommands = map[string]subcommand{
	"new":    runNew,
	"act":    runAct,
	"replay": runReplay,
	"show":   runShow,
}

// seatList collects repeated -seat player:hero flags.
type seatList []setup.Seat

func (l *seatList) String() string {
	parts := make([]string, 0, len(*l))
	for _, s := range *l {
		parts = append(parts, s.PlayerID+":"+s.HeroID)
	}
	return strings.Join(parts, ",")
}

func (l *seatList) Set(value string) error {
	player, hero, ok := strings.Cut(value, ":")
	if !ok || strings.TrimSpace(player) == "" || strings.TrimSpace(hero) == "" {
		return fmt.Errorf("seat %q must be player:hero", value)
	}
	*l = append(*l, setup.Seat{PlayerID: strings.TrimSpace(player), HeroID: strings.TrimSpace(hero)})
	return nil
}

type newOutput struct {
	GameID  string   `json:"game_id"`
	Seed    uint64   `json:"seed"`
	Phase   string   `json:"phase"`
	Players []string `json:"players"`
	Current string   `json:"current_player"`
}

func runNew(ctx context.Context, svc *app.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	var (
		seats  seatList
		gameID string
		seed   uint64
		rounds int
	)
	fs.Var(&seats, "seat", "Seat as player:hero (repeatable)")
	fs.StringVar(&gameID, "game", "", "Game id (random when empty)")
	fs.Uint64Var(&seed, "seed", 0, "RNG seed (random when zero)")
	fs.IntVar(&rounds, "rounds", setup.DefaultRoundLimit, "Round limit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return nil, err
	}
	if seed == 0 {
		var err error
		if seed, err = random.NewSeed(); err != nil {
			return nil, err
		}
	}
	s, err := svc.NewGame(ctx, setup.Config{GameID: gameID, Seed: seed, Seats: seats, RoundLimit: rounds})
	if err != nil {
		return nil, err
	}
	players := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, p.ID)
	}
	return newOutput{
		GameID:  s.ID,
		Seed:    seed,
		Phase:   string(s.Phase),
		Players: players,
		Current: s.CurrentPlayerID(),
	}, nil
}

type actOutput struct {
	Accepted bool              `json:"accepted"`
	Seq      uint64            `json:"seq,omitempty"`
	Code     string            `json:"code,omitempty"`
	Status   string            `json:"status,omitempty"`
	Message  string            `json:"message,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Events   []event.Event     `json:"events"`
	Current  string            `json:"current_player"`
}

func runAct(ctx context.Context, svc *app.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("act", flag.ContinueOnError)
	var gameID, playerID, actionType, payload string
	fs.StringVar(&gameID, "game", "", "Game id")
	fs.StringVar(&playerID, "player", "", "Acting player id")
	fs.StringVar(&actionType, "type", "", "Action type, e.g. move or play_card")
	fs.StringVar(&payload, "payload", "", "Action payload JSON")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return nil, err
	}
	env := action.Envelope{Type: action.Type(actionType)}
	if payload = strings.TrimSpace(payload); payload != "" {
		env.PayloadJSON = json.RawMessage(payload)
	}
	res, err := svc.Act(ctx, gameID, playerID, env)
	if err != nil {
		return nil, err
	}
	out := actOutput{
		Accepted: res.Accepted,
		Seq:      res.Seq,
		Code:     string(res.Verdict.Code),
		Message:  res.Verdict.Message,
		Metadata: res.Verdict.Metadata,
		Events:   res.Events,
		Current:  res.State.CurrentPlayerID(),
	}
	if !res.Accepted {
		out.Status = apperrors.Status(res.Verdict.Err()).Code().String()
	}
	return out, nil
}

type replayOutput struct {
	GameID  string `json:"game_id"`
	LastSeq uint64 `json:"last_seq"`
	Applied int    `json:"applied"`
	Round   int    `json:"round"`
	Phase   string `json:"phase"`
}

func runReplay(ctx context.Context, svc *app.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	var gameID string
	var until uint64
	fs.StringVar(&gameID, "game", "", "Game id")
	fs.Uint64Var(&until, "until", 0, "Stop after this journal sequence (zero replays everything)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return nil, err
	}
	res, err := svc.Verify(ctx, gameID, until)
	if err != nil {
		return nil, err
	}
	return replayOutput{
		GameID:  gameID,
		LastSeq: res.LastSeq,
		Applied: res.Applied,
		Round:   res.State.Round,
		Phase:   string(res.State.Phase),
	}, nil
}

func runShow(ctx context.Context, svc *app.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	var gameID string
	fs.StringVar(&gameID, "game", "", "Game id")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return nil, err
	}
	res, err := svc.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return res.State, nil
}
