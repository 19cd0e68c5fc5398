package cutmode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cnckit/cutmode/internal/flow"
	"github.com/cnckit/cutmode/internal/logging"
	"github.com/cnckit/cutmode/pkg/adapters/memory"
	"github.com/cnckit/cutmode/pkg/catalog"
	"github.com/cnckit/cutmode/pkg/domain"
	"github.com/cnckit/cutmode/pkg/observability"
	"github.com/cnckit/cutmode/pkg/ports"
	"github.com/cnckit/cutmode/pkg/session"
)

// RestartCommand resets a conversation from any step.
const RestartCommand = flow.RestartCommand

// Engine is the high-level entry point for the cutmode library.
// It ties the selection state machine to a session store and provides the
// one-synchronous-call-per-turn API hosts build on.
type Engine struct {
	machine  *flow.Machine
	sessions *session.Manager
	store    ports.StateStore
	locker   ports.DistributedLocker
	catalog  *catalog.Catalog
	metrics  *observability.Recorder
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore injects a custom session store (default: in-memory).
func WithStore(store ports.StateStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed session locking for multi-replica hosts.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithCatalog injects a custom parameter catalog (default: the embedded one).
func WithCatalog(cat *catalog.Catalog) Option {
	return func(e *Engine) {
		e.catalog = cat
	}
}

// WithMetrics registers a metrics recorder.
func WithMetrics(rec *observability.Recorder) Option {
	return func(e *Engine) {
		e.metrics = rec
	}
}

// New initializes a new cutmode Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.catalog == nil {
		cat, err := catalog.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		eng.catalog = cat
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	sessionOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(eng.store, sessionOpts...)
	eng.machine = flow.NewMachine(eng.catalog, flow.WithLogger(eng.logger))

	return eng, nil
}

// Catalog returns the parameter catalog the engine answers from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Sessions returns the session manager, mostly for host introspection.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}

// Start creates (or resets) the session and returns the first prompt.
func (e *Engine) Start(ctx context.Context, sessionID string) (*domain.Reply, error) {
	var reply *domain.Reply
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state := domain.NewState(sessionID)
		reply = e.machine.Start(state)
		return e.store.Save(ctx, sessionID, state)
	})
	if err != nil {
		return nil, err
	}
	e.metrics.SessionStarted()
	e.metrics.ObserveReply(reply)
	e.logger.Debug("session started", "session", sessionID)
	return reply, nil
}

// Advance consumes one raw input for the session and returns the machine's
// reply. Terminal replies destroy the stored session; the restart command
// recreates one even if no session exists yet. All work for one session
// happens under its lock, so inputs are processed strictly in order.
func (e *Engine) Advance(ctx context.Context, sessionID, input string) (*domain.Reply, error) {
	var reply *domain.Reply
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, err := e.store.Load(ctx, sessionID)
		if errors.Is(err, domain.ErrSessionNotFound) {
			if !strings.EqualFold(strings.TrimSpace(input), RestartCommand) {
				return err
			}
			state = domain.NewState(sessionID)
		} else if err != nil {
			return err
		}

		reply, err = e.machine.Advance(state, input)
		if err != nil {
			return err
		}

		if reply.Terminal() {
			// The per-conversation context is destroyed at terminal states.
			return e.store.Delete(ctx, sessionID)
		}
		return e.store.Save(ctx, sessionID, state)
	})
	if err != nil {
		return nil, err
	}

	if reply.Outcome == domain.OutcomePrompt && reply.Step == domain.StepMaterial {
		e.metrics.SessionStarted()
	}
	e.metrics.ObserveReply(reply)
	return reply, nil
}
