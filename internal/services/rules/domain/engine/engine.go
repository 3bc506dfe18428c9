package engine

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	apperrors "github.com/louisbranch/manaforge/internal/platform/errors"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/command"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/validate"
)

// ErrContentRequired indicates a missing content catalog.
var ErrContentRequired = errors.New("content lookup is required")

const tracerName = "github.com/louisbranch/manaforge/rules"

// EventSink receives the events of accepted actions.
type EventSink interface {
	Publish(ctx context.Context, gameID string, events []event.Event) error
}

// Result is the outcome of one processed action.
type Result struct {
	State  game.State
	Events []event.Event
	// Accepted is false when the validator rejected the action; Verdict then
	// carries the code and State is the input state.
	Accepted bool
	Verdict  validate.Verdict
}

// Engine validates and executes actions against a fixed content catalog.
type Engine struct {
	content   content.Lookup
	validator *validate.Validator
	sink      EventSink
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink publishes accepted events to sink.
func WithSink(sink EventSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTracer sets the tracer used for per-action spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// New builds an engine over lookup.
func New(lookup content.Lookup, opts ...Option) (*Engine, error) {
	if lookup == nil {
		return nil, ErrContentRequired
	}
	e := &Engine{
		content:   lookup,
		validator: validate.New(lookup),
		logger:    slog.Default(),
		tracer:    noop.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Content returns the catalog the engine validates against.
func (e *Engine) Content() content.Lookup {
	return e.content
}

// ProcessAction runs a on behalf of playerID. A rejected action returns the
// input state, a single action.rejected event, and a nil error. An error means
// a command broke an invariant; the caller's state is untouched either way.
func (e *Engine) ProcessAction(ctx context.Context, s game.State, playerID string, a action.Action) (Result, error) {
	var actionType action.Type
	if a != nil {
		actionType = a.Type()
	}
	ctx, span := e.tracer.Start(ctx, "rules.process_action", trace.WithAttributes(
		attribute.String("rules.game_id", s.ID),
		attribute.String("rules.player_id", playerID),
		attribute.String("rules.action_type", string(actionType)),
	))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return Result{State: s}, err
	}

	verdict := e.validator.Validate(s, playerID, a)
	if !verdict.OK() {
		span.SetAttributes(attribute.String("rules.rejection_code", string(verdict.Code)))
		e.logger.DebugContext(ctx, "action rejected",
			"game_id", s.ID,
			"player_id", playerID,
			"action_type", actionType,
			"code", verdict.Code,
		)
		return Result{
			State:   s,
			Verdict: verdict,
			Events: []event.Event{event.ForPlayer(event.TypeActionRejected, playerID, event.ActionRejectedPayload{
				ActionType: string(actionType),
				Code:       string(verdict.Code),
				Message:    verdict.Message,
			})},
		}, nil
	}

	res, err := command.Execute(command.Env{Content: e.content, PlayerID: playerID}, s, a)
	if err != nil {
		err = apperrors.Invariant("execute "+string(actionType), err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "invariant violation")
		e.logger.ErrorContext(ctx, "action broke an invariant",
			"game_id", s.ID,
			"player_id", playerID,
			"action_type", actionType,
			"error", err,
		)
		return Result{State: s}, err
	}

	span.SetAttributes(attribute.Int("rules.event_count", len(res.Events)))
	e.logger.DebugContext(ctx, "action accepted",
		"game_id", s.ID,
		"player_id", playerID,
		"action_type", actionType,
		"events", len(res.Events),
	)
	if e.sink != nil && len(res.Events) > 0 {
		if err := e.sink.Publish(ctx, s.ID, res.Events); err != nil {
			e.logger.WarnContext(ctx, "publish events", "game_id", s.ID, "error", err)
		}
	}
	return Result{State: res.State, Events: res.Events, Accepted: true}, nil
}
