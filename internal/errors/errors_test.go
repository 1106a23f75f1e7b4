package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCodeAndMeta(t *testing.T) {
	base := TileOccupied(7, 20, "character-1")
	wrapped := Wrap(base, "failed to place character")

	assert.Equal(t, CodeTileOccupied, wrapped.Code)
	assert.True(t, IsTileOccupied(wrapped))
	assert.Equal(t, "character-1", GetMeta(wrapped)["occupant_id"])
	assert.True(t, errors.Is(wrapped, base))
	assert.Contains(t, wrapped.Error(), "tile (7,20) is occupied by 'character-1'")

	// meta is copied, not shared
	wrapped.WithMeta("extra", true)
	_, ok := base.Meta["extra"]
	assert.False(t, ok)
}

func TestWrap_PlainErrorIsUnknown(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("boom"), "context")
	assert.Equal(t, CodeUnknown, wrapped.Code)
	assert.Equal(t, "context: boom", wrapped.Error())
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WrapWithCode(nil, CodeTimeout, "context"))
}

func TestWrapWithCode_Overrides(t *testing.T) {
	err := WrapWithCode(NotFoundf("character %s not found", "x"), CodeValidation, "unknown character")
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
}

func TestPredicates_ThroughStdWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", OutOfBounds(15, 0, 15, 25))
	assert.True(t, IsOutOfBounds(err))
	assert.Equal(t, CodeOutOfBounds, GetCode(err))
	assert.Equal(t, 15, GetMeta(err)["x"])

	assert.Equal(t, CodeUnknown, GetCode(errors.New("plain")))
	assert.Nil(t, GetMeta(errors.New("plain")))
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"blocked", TileBlocked(0, 0, "WALL"), CodeTileBlocked},
		{"unknown participant", UnknownParticipantf("%s", "Ghost"), CodeUnknownParticipant},
		{"invalid", InvalidArgument("bad"), CodeInvalidArgument},
		{"exists", AlreadyExistsf("id %s", "a"), CodeAlreadyExists},
		{"internal", Internalf("x"), CodeInternal},
		{"timeout", New(CodeTimeout, "slow"), CodeTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.True(t, Is(tt.err, tt.code))
		})
	}
}
