package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-battlemap/internal/battlemap"
	"github.com/KirkDiggler/dnd-battlemap/internal/bestiary"
	"github.com/KirkDiggler/dnd-battlemap/internal/codec"
	"github.com/KirkDiggler/dnd-battlemap/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/KirkDiggler/dnd-battlemap/internal/events"
	"github.com/KirkDiggler/dnd-battlemap/internal/roster"
	"github.com/KirkDiggler/dnd-battlemap/internal/turnorder"
	"github.com/KirkDiggler/dnd-battlemap/internal/uuid"
)

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Grid *battlemap.Grid // Required

	Bestiary     *bestiary.Bestiary    // Optional, built-in templates if nil
	SRD          *bestiary.SRDImporter // Optional, imports unknown templates
	Policy       turnorder.Policy      // Optional, PolicyReset if empty
	Bus          *events.Bus           // Optional
	CharacterIDs uuid.Generator        // Optional
	EntityIDs    uuid.Generator        // Optional
	TimeProvider TimeProvider          // Optional
	Logger       *zap.Logger           // Optional
}

type service struct {
	mu     sync.RWMutex
	roster *roster.Roster
	order  *turnorder.Order
	log    []LogEntry

	bestiary  *bestiary.Bestiary
	srd       *bestiary.SRDImporter
	bus       *events.Bus
	entityIDs uuid.Generator
	clock     TimeProvider
	logger    *zap.Logger
}

// NewService creates a new session service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if cfg.Grid == nil {
		panic("grid is required")
	}

	svc := &service{
		bestiary:  cfg.Bestiary,
		srd:       cfg.SRD,
		bus:       cfg.Bus,
		entityIDs: cfg.EntityIDs,
		clock:     cfg.TimeProvider,
		logger:    nopLogger(cfg.Logger),
	}

	charIDs := cfg.CharacterIDs
	if charIDs == nil {
		charIDs = uuid.NewGoogleUUIDGenerator("character")
	}
	if svc.entityIDs == nil {
		svc.entityIDs = uuid.NewGoogleUUIDGenerator("entity")
	}
	if svc.bestiary == nil {
		svc.bestiary = bestiary.Builtin()
	}
	if svc.clock == nil {
		svc.clock = realClock{}
	}

	policy := cfg.Policy
	if policy == "" {
		policy = turnorder.PolicyReset
	}

	svc.roster = roster.New(cfg.Grid, charIDs)
	svc.order = turnorder.New(policy)
	return svc
}

func (s *service) CreateCharacter(_ context.Context, spec entities.CharacterSpec) (*entities.Character, error) {
	s.mu.Lock()
	char, err := s.roster.CreateCharacter(spec)
	s.mu.Unlock()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to create character")
	}

	s.logger.Info("character created", zap.String("id", char.ID), zap.String("name", char.Name))
	s.emit(events.NewRosterEvent(events.EventTypeCharacterCreated, char.ID, char.Name, 0, 0))
	return char.Clone(), nil
}

func (s *service) PlaceCharacter(_ context.Context, id string, x, y int) (*entities.Character, error) {
	s.mu.Lock()
	char, err := s.roster.PlaceCharacter(id, x, y)
	if err == nil {
		s.recomputeLocked()
		char = char.Clone()
	}
	s.mu.Unlock()
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to place character %s", id)
	}

	s.logger.Info("character placed", zap.String("id", id), zap.Int("x", x), zap.Int("y", y))
	s.emit(events.NewRosterEvent(events.EventTypeCharacterPlaced, char.ID, char.Name, x, y))
	return char, nil
}

func (s *service) RemoveCharacter(_ context.Context, id string) bool {
	s.mu.Lock()
	char, lookupErr := s.roster.Character(id)
	removed := s.roster.RemoveCharacter(id)
	if removed && lookupErr == nil && char.IsPlaced() {
		s.recomputeLocked()
	}
	s.mu.Unlock()

	if !removed || lookupErr != nil {
		return false
	}
	s.logger.Info("character removed", zap.String("id", id))
	s.emit(events.NewRosterEvent(events.EventTypeCharacterRemoved, id, char.Name, 0, 0))
	return true
}

func (s *service) SpawnEntity(_ context.Context, entity *entities.Entity) (*entities.Entity, error) {
	if entity == nil {
		return nil, dnderr.InvalidArgument("entity is required")
	}

	s.mu.Lock()
	spawned, err := s.roster.SpawnEntity(entity.Clone())
	if err == nil {
		if spawned.CanAct() {
			s.recomputeLocked()
		}
		spawned = spawned.Clone()
	}
	s.mu.Unlock()
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to spawn entity %s", entity.ID)
	}

	s.logger.Info("entity spawned",
		zap.String("id", spawned.ID),
		zap.String("name", spawned.Name),
		zap.Int("x", spawned.Position.X),
		zap.Int("y", spawned.Position.Y),
	)
	s.emit(events.NewRosterEvent(events.EventTypeEntitySpawned, spawned.ID, spawned.Name,
		spawned.Position.X, spawned.Position.Y))
	return spawned, nil
}

func (s *service) SpawnTemplate(ctx context.Context, key, id string, x, y int) (*entities.Entity, error) {
	var (
		tmpl bestiary.Template
		err  error
	)
	if s.srd != nil {
		tmpl, err = s.srd.Lookup(s.bestiary, key)
	} else {
		tmpl, err = s.bestiary.Get(key)
	}
	if err != nil {
		return nil, err
	}

	if id == "" {
		id = s.entityIDs.New()
	}
	entity, err := tmpl.Spawn(id, entities.Position{X: x, Y: y})
	if err != nil {
		return nil, err
	}
	return s.SpawnEntity(ctx, entity)
}

func (s *service) SpawnDefaults(ctx context.Context) int {
	count := 0
	for _, entry := range s.bestiary.Spawns() {
		if _, err := s.SpawnTemplate(ctx, entry.Template, entry.ID, entry.X, entry.Y); err != nil {
			s.logger.Warn("skipping default spawn",
				zap.String("id", entry.ID),
				zap.String("template", entry.Template),
				zap.Error(err),
			)
			continue
		}
		count++
	}
	return count
}

func (s *service) Snapshot(_ context.Context) *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grid := s.roster.Grid()
	payload := codec.Encode(grid, s.roster, nil)

	snap := &Snapshot{
		Map:        payload.Map,
		Seed:       grid.Seed,
		Characters: make([]*entities.Character, 0),
		Entities:   make([]*entities.Entity, 0),
		Turn:       newTurnView(s.order),
		Log:        s.copyLogLocked(),
	}
	for _, c := range s.roster.Characters() {
		snap.Characters = append(snap.Characters, c.Clone())
	}
	for _, e := range s.roster.Entities() {
		snap.Entities = append(snap.Entities, e.Clone())
	}
	return snap
}

func (s *service) Encode(_ context.Context) codec.Payload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return codec.Encode(s.roster.Grid(), s.roster, s.order)
}

func (s *service) Apply(_ context.Context, resp *codec.Response) error {
	if resp == nil {
		return dnderr.Validationf("resolver returned no response")
	}

	decoded, err := codec.Decode(resp.Data)
	if err != nil {
		return dnderr.Wrap(err, "failed to decode resolver response")
	}

	s.mu.Lock()
	next, order, err := codec.Apply(s.roster, s.order.Policy(), decoded)
	if err != nil {
		s.mu.Unlock()
		return dnderr.Wrap(err, "failed to apply resolver response")
	}
	s.roster = next
	s.order = order
	s.appendLogLocked(resp.Message)

	current := ""
	if cur, ok := order.Current(); ok {
		current = cur.Name
	}
	s.mu.Unlock()

	s.logger.Info("turn resolved", zap.String("current", current), zap.String("message", resp.Message))
	s.emit(&events.TurnResolvedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeTurnResolved, Time: s.clock.Now()},
		Message:   resp.Message,
		Current:   current,
	})
	return nil
}

func (s *service) Log(_ context.Context) []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyLogLocked()
}

func (s *service) recomputeLocked() {
	s.order.Recompute(s.roster.Participants())
}

func (s *service) appendLogLocked(message string) {
	s.log = append(s.log, LogEntry{Time: s.clock.Now(), Message: message})
	if over := len(s.log) - MaxLogEntries; over > 0 {
		s.log = append([]LogEntry(nil), s.log[over:]...)
	}
}

func (s *service) copyLogLocked() []LogEntry {
	out := make([]LogEntry, len(s.log))
	copy(out, s.log)
	return out
}

// emit must be called without holding mu; listeners may read the session
func (s *service) emit(e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(e); err != nil {
		s.logger.Warn("event listener failed", zap.String("event", string(e.GetType())), zap.Error(err))
	}
}
