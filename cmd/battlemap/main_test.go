package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-battlemap/internal/config"
	"github.com/KirkDiggler/dnd-battlemap/internal/repositories/turnlocks"
)

func TestBuildLocker_FallsBackToInMemory(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "no redis configured", url: ""},
		{name: "unparseable url", url: "not-a-redis-url"},
		{name: "unreachable redis", url: "redis://127.0.0.1:1/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locker, client := buildLocker(config.RedisConfig{URL: tt.url, LockTTL: time.Minute}, zap.NewNop())

			assert.Nil(t, client)
			assert.IsType(t, &turnlocks.InMemory{}, locker)
		})
	}
}

func TestResolverURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/api/game/turn", resolverURL("http://localhost:8080"))
	assert.Equal(t, "http://localhost:8080/api/game/turn", resolverURL("http://localhost:8080/"))
	assert.Equal(t, "http://agent:9000/api/game/turn", resolverURL("http://agent:9000/api/game/turn"))
}
