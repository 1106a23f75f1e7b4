package resolver

//go:generate mockgen -destination=mock/mock_client.go -package=mockresolver . Client

import (
	"context"

	"github.com/KirkDiggler/dnd-battlemap/internal/codec"
)

// Client sends one session snapshot to a turn resolver and returns
// its answer
type Client interface {
	Resolve(ctx context.Context, payload codec.Payload) (*codec.Response, error)
}
