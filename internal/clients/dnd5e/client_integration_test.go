//go:build integration
// +build integration

package dnd5e_test

import (
	"net/http"
	"testing"

	"github.com/KirkDiggler/dnd-battlemap/internal/clients/dnd5e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetMonster_Integration(t *testing.T) {
	// This test requires network access to the D&D 5e API
	client, err := dnd5e.New(&dnd5e.Config{
		HttpClient: http.DefaultClient,
	})
	require.NoError(t, err)

	goblin, err := client.GetMonster("goblin")
	require.NoError(t, err)

	assert.Equal(t, "goblin", goblin.Key)
	assert.Equal(t, "Goblin", goblin.Name)
	assert.Greater(t, goblin.HitPoints, 0)
	assert.Greater(t, goblin.ArmorClass, 0)
}
