package turnlocks

import (
	"context"
	"sync"

	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/KirkDiggler/dnd-battlemap/internal/uuid"
)

// InMemory is a process-local Locker
type InMemory struct {
	mu     sync.Mutex
	tokens map[string]string
	ids    uuid.Generator
}

// NewInMemory creates a process-local locker. A nil generator uses
// random tokens.
func NewInMemory(ids uuid.Generator) *InMemory {
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator("lock")
	}
	return &InMemory{
		tokens: make(map[string]string),
		ids:    ids,
	}
}

func (l *InMemory) Acquire(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", dnderr.InvalidArgument("lock key is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.tokens[key]; held {
		return "", dnderr.Newf(dnderr.CodeBusy, "turn resolution already in flight for %s", key)
	}
	token := l.ids.New()
	l.tokens[key] = token
	return token, nil
}

func (l *InMemory) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.tokens[key] == token {
		delete(l.tokens, key)
	}
	return nil
}
