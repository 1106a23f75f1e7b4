// Package turn runs one "advance turn" cycle at a time: snapshot the
// session, ask the resolver, apply its answer. A failed cycle leaves
// the session exactly as it was.
package turn

//go:generate mockgen -destination=mock/mock_service.go -package=mockturn -source=service.go

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/dnd-battlemap/internal/clients/resolver"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/KirkDiggler/dnd-battlemap/internal/events"
	"github.com/KirkDiggler/dnd-battlemap/internal/repositories/turnlocks"
	"github.com/KirkDiggler/dnd-battlemap/internal/services/session"
)

const (
	// DefaultTimeout bounds one resolver round trip
	DefaultTimeout = 20 * time.Second
	// DefaultLockKey names the session in the shared lock space
	DefaultLockKey = "session"

	releaseTimeout = 5 * time.Second
	tracerName     = "github.com/KirkDiggler/dnd-battlemap/internal/services/turn"
)

// State of the resolution cycle
type State string

const (
	StateIdle               State = "idle"
	StateAwaitingResolution State = "awaiting_resolution"
	StateFailed             State = "failed"
)

// Result is the outcome of a successful cycle
type Result struct {
	Message string `json:"message"`
	Current string `json:"current,omitempty"`
	// Coalesced is true when the trigger joined a cycle already in flight
	Coalesced bool `json:"coalesced"`
}

// Service defines the turn service interface
type Service interface {
	// RequestNextTurn runs a resolution cycle, or joins the one in flight
	RequestNextTurn(ctx context.Context) (*Result, error)

	// State reports where the cycle currently is
	State() State

	// Close discards any in-flight response and rejects new triggers
	Close()
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Session  session.Service // Required
	Resolver resolver.Client // Required

	Locker  turnlocks.Locker // Optional, in-process lock if nil
	LockKey string           // Optional
	Timeout time.Duration    // Optional, DefaultTimeout if zero
	Bus     *events.Bus      // Optional
	Logger  *zap.Logger      // Optional
	Tracer  trace.Tracer     // Optional

	// OnStateChange observes every transition. Optional.
	OnStateChange func(State)
}

type service struct {
	session  session.Service
	resolver resolver.Client
	locker   turnlocks.Locker
	lockKey  string
	timeout  time.Duration
	bus      *events.Bus
	logger   *zap.Logger
	tracer   trace.Tracer
	observer func(State)

	group singleflight.Group

	stateMu sync.RWMutex
	state   State

	// applyMu orders Close against the apply step so nothing lands
	// after teardown
	applyMu  sync.Mutex
	closed   atomic.Bool
	baseCtx  context.Context
	shutdown context.CancelFunc
}

// NewService creates a new turn service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if cfg.Session == nil {
		panic("session service is required")
	}
	if cfg.Resolver == nil {
		panic("resolver client is required")
	}

	svc := &service{
		session:  cfg.Session,
		resolver: cfg.Resolver,
		locker:   cfg.Locker,
		lockKey:  cfg.LockKey,
		timeout:  cfg.Timeout,
		bus:      cfg.Bus,
		logger:   cfg.Logger,
		tracer:   cfg.Tracer,
		observer: cfg.OnStateChange,
		state:    StateIdle,
	}
	if svc.locker == nil {
		svc.locker = turnlocks.NewInMemory(nil)
	}
	if svc.lockKey == "" {
		svc.lockKey = DefaultLockKey
	}
	if svc.timeout <= 0 {
		svc.timeout = DefaultTimeout
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.tracer == nil {
		svc.tracer = otel.Tracer(tracerName)
	}
	svc.baseCtx, svc.shutdown = context.WithCancel(context.Background())

	return svc
}

func (s *service) RequestNextTurn(ctx context.Context) (*Result, error) {
	if s.closed.Load() {
		return nil, dnderr.New(dnderr.CodeCancelled, "turn service is closed")
	}

	ctx, span := s.tracer.Start(ctx, "turn.RequestNextTurn")
	defer span.End()

	// The cycle runs on the service context so a caller hanging up does
	// not abandon a response the resolver already computed.
	cycleCtx := trace.ContextWithSpan(s.baseCtx, span)
	ch := s.group.DoChan(s.lockKey, func() (any, error) {
		return s.resolve(cycleCtx)
	})

	select {
	case res := <-ch:
		span.SetAttributes(attribute.Bool("turn.coalesced", res.Shared))
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, string(dnderr.GetCode(res.Err)))
			return nil, res.Err
		}
		out := *res.Val.(*Result)
		out.Coalesced = res.Shared
		span.SetAttributes(attribute.String("turn.current", out.Current))
		return &out, nil
	case <-ctx.Done():
		err := dnderr.WrapWithCode(ctx.Err(), dnderr.CodeCancelled, "stopped waiting for turn resolution")
		span.RecordError(err)
		return nil, err
	}
}

func (s *service) resolve(ctx context.Context) (*Result, error) {
	token, err := s.locker.Acquire(ctx, s.lockKey)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to start turn resolution")
	}
	defer s.release(token)

	s.setState(StateAwaitingResolution)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payload := s.session.Encode(callCtx)
	resp, err := s.resolver.Resolve(callCtx, payload)

	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	if s.closed.Load() {
		s.logger.Info("discarding resolver response after close")
		s.setState(StateIdle)
		return nil, dnderr.New(dnderr.CodeCancelled, "session closed while awaiting resolution")
	}

	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && !dnderr.IsTimeout(err) {
			err = dnderr.WrapWithCode(err, dnderr.CodeTimeout, "resolver timed out")
		}
		return nil, s.fail(err)
	}

	if err := s.session.Apply(callCtx, resp); err != nil {
		return nil, s.fail(err)
	}

	result := &Result{Message: resp.Message}
	if resp.Data.Turn.Current != nil {
		result.Current = *resp.Data.Turn.Current
	}
	s.setState(StateIdle)
	return result, nil
}

// fail passes through StateFailed back to idle and reports the error
func (s *service) fail(err error) error {
	s.setState(StateFailed)

	s.logger.Warn("turn resolution failed",
		zap.String("code", string(dnderr.GetCode(err))),
		zap.Error(err),
	)
	if s.bus != nil {
		emitErr := s.bus.Emit(&events.TurnFailedEvent{
			BaseEvent: events.BaseEvent{Type: events.EventTypeTurnFailed, Time: time.Now()},
			Code:      string(dnderr.GetCode(err)),
			Reason:    err.Error(),
		})
		if emitErr != nil {
			s.logger.Warn("event listener failed", zap.Error(emitErr))
		}
	}

	s.setState(StateIdle)
	return err
}

func (s *service) release(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	if err := s.locker.Release(ctx, s.lockKey, token); err != nil {
		s.logger.Error("failed to release turn lock", zap.String("key", s.lockKey), zap.Error(err))
	}
}

func (s *service) setState(st State) {
	s.stateMu.Lock()
	s.state = st
	s.stateMu.Unlock()

	if s.observer != nil {
		s.observer(st)
	}
}

func (s *service) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

func (s *service) Close() {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	if s.closed.Swap(true) {
		return
	}
	s.shutdown()
	s.logger.Info("turn service closed")
}
