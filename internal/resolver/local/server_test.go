package local_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-battlemap/internal/clients/resolver"
	"github.com/KirkDiggler/dnd-battlemap/internal/codec"
	mockdice "github.com/KirkDiggler/dnd-battlemap/internal/dice/mock"
	"github.com/KirkDiggler/dnd-battlemap/internal/resolver/local"
	"github.com/KirkDiggler/dnd-battlemap/internal/services/session"
	"github.com/KirkDiggler/dnd-battlemap/internal/services/turn"
	"github.com/KirkDiggler/dnd-battlemap/internal/testutils"
)

func TestHandler_RejectsBadJSON(t *testing.T) {
	srv := httptest.NewServer(local.Handler(local.New(mockdice.NewManualMockRoller(), nil), nil))
	defer srv.Close()

	resp, err := http.Post(srv.URL+resolver.DefaultPath, "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_UnprocessableTurn(t *testing.T) {
	srv := httptest.NewServer(local.Handler(local.New(mockdice.NewManualMockRoller(), nil), nil))
	defer srv.Close()

	p := skirmish()
	p.Turn.Current = ptr("Nobody")
	body, err := codec.Marshal(p)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+resolver.DefaultPath, "application/json", strings.NewReader(string(body)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandler_ThroughClient(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{16, 4})
	srv := httptest.NewServer(local.Handler(local.New(roller, nil), nil))
	defer srv.Close()

	client, err := resolver.New(&resolver.Config{URL: srv.URL + resolver.DefaultPath})
	require.NoError(t, err)

	resp, err := client.Resolve(context.Background(), skirmish())
	require.NoError(t, err)
	assert.Equal(t, "Aria hits Goblin Scout with Sword for 4 damage.", resp.Message)
	assert.Equal(t, 3, resp.Data.Entities[0].Stats.HP)
}

func TestTurnCycle_DefeatClearsEntities(t *testing.T) {
	ctx := context.Background()

	sess := session.NewService(&session.ServiceConfig{Grid: testutils.CreateTestGrid(t, 15, 25)})
	aria, err := sess.CreateCharacter(ctx, testutils.CreateTestCharacterSpec("Aria", 12, 14))
	require.NoError(t, err)
	_, err = sess.PlaceCharacter(ctx, aria.ID, 7, 20)
	require.NoError(t, err)
	_, err = sess.SpawnEntity(ctx, testutils.CreateTestGoblin("goblin-1", 7, 10, 10))
	require.NoError(t, err)

	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{20, 8})
	srv := httptest.NewServer(local.Handler(local.New(roller, nil), nil))
	defer srv.Close()

	client, err := resolver.New(&resolver.Config{URL: srv.URL + resolver.DefaultPath})
	require.NoError(t, err)

	turns := turn.NewService(&turn.ServiceConfig{Session: sess, Resolver: client})
	defer turns.Close()

	result, err := turns.RequestNextTurn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Aria hits Goblin Scout with Sword for 8 damage. Goblin Scout falls!", result.Message)
	assert.Equal(t, "Aria", result.Current)

	snap := sess.Snapshot(ctx)
	assert.Empty(t, snap.Entities)
	require.Len(t, snap.Turn.Order, 1)
	assert.Equal(t, "Aria", snap.Turn.Order[0].Name)
	assert.Equal(t, turn.StateIdle, turns.State())

	log := sess.Log(ctx)
	require.NotEmpty(t, log)
	assert.Equal(t, result.Message, log[len(log)-1].Message)
}
