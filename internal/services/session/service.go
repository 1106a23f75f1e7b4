// Package session owns the live battle: the map, who stands on it,
// whose turn it is and the battle log. Every mutation goes through a
// single mutex so readers always see a consistent snapshot.
package session

//go:generate mockgen -destination=mock/mock_service.go -package=mocksession -source=service.go

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-battlemap/internal/codec"
	"github.com/KirkDiggler/dnd-battlemap/internal/entities"
	"github.com/KirkDiggler/dnd-battlemap/internal/turnorder"
)

// MaxLogEntries bounds the battle log; older entries are dropped
const MaxLogEntries = 50

// Service defines the session service interface
type Service interface {
	// CreateCharacter registers an unplaced character
	CreateCharacter(ctx context.Context, spec entities.CharacterSpec) (*entities.Character, error)

	// PlaceCharacter puts a character on the map for the first time
	PlaceCharacter(ctx context.Context, id string, x, y int) (*entities.Character, error)

	// RemoveCharacter drops a character; false when it was not present
	RemoveCharacter(ctx context.Context, id string) bool

	// SpawnEntity places an entity under the same rules as characters
	SpawnEntity(ctx context.Context, entity *entities.Entity) (*entities.Entity, error)

	// SpawnTemplate spawns a bestiary template at (x, y). An empty id
	// is generated.
	SpawnTemplate(ctx context.Context, key, id string, x, y int) (*entities.Entity, error)

	// SpawnDefaults places the bestiary's default spawn list and
	// returns how many entities made it onto the map
	SpawnDefaults(ctx context.Context) int

	// Snapshot returns a deep copy of the whole session
	Snapshot(ctx context.Context) *Snapshot

	// Encode returns the exchange payload for the current state
	Encode(ctx context.Context) codec.Payload

	// Apply merges a resolver response. On error nothing changes.
	Apply(ctx context.Context, resp *codec.Response) error

	// Log returns the battle log, oldest first
	Log(ctx context.Context) []LogEntry
}

// TimeProvider allows the clock to be replaced in tests
type TimeProvider interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// LogEntry is one narrated turn
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// TurnView is the turn order as the browser sees it
type TurnView struct {
	Order        []turnorder.Participant `json:"order"`
	Current      *turnorder.Participant  `json:"current"`
	CurrentIndex int                     `json:"current_index"`
	Policy       turnorder.Policy        `json:"policy"`
}

// Snapshot is a detached copy of the session
type Snapshot struct {
	Map        codec.MapSection      `json:"map"`
	Seed       int64                 `json:"seed"`
	Characters []*entities.Character `json:"characters"`
	Entities   []*entities.Entity    `json:"entities"`
	Turn       TurnView              `json:"turn"`
	Log        []LogEntry            `json:"log"`
}

func newTurnView(order *turnorder.Order) TurnView {
	view := TurnView{
		Order:        order.Participants(),
		CurrentIndex: order.CurrentIndex(),
		Policy:       order.Policy(),
	}
	if cur, ok := order.Current(); ok {
		view.Current = &cur
	}
	return view
}

func nopLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
