package web_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dnd-battlemap/internal/codec"
	"github.com/KirkDiggler/dnd-battlemap/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/KirkDiggler/dnd-battlemap/internal/handlers/web"
	"github.com/KirkDiggler/dnd-battlemap/internal/services/session"
	mocksession "github.com/KirkDiggler/dnd-battlemap/internal/services/session/mock"
	"github.com/KirkDiggler/dnd-battlemap/internal/services/turn"
	mockturn "github.com/KirkDiggler/dnd-battlemap/internal/services/turn/mock"
	"github.com/KirkDiggler/dnd-battlemap/internal/testutils"
	"github.com/KirkDiggler/dnd-battlemap/internal/uuid"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	session *mocksession.MockService
	turn    *mockturn.MockService
	routes  http.Handler
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.session = mocksession.NewMockService(s.ctrl)
	s.turn = mockturn.NewMockService(s.ctrl)
	s.routes = web.NewHandler(&web.HandlerConfig{Session: s.session, Turn: s.turn}).Routes()
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.routes.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func (s *HandlerTestSuite) TestPlaceCharacter_MapsErrors() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"out of bounds", dnderr.OutOfBounds(20, 3, 15, 25), http.StatusBadRequest},
		{"blocked", dnderr.TileBlocked(0, 0, "WALL"), http.StatusConflict},
		{"occupied", dnderr.TileOccupied(7, 20, "character-1"), http.StatusConflict},
		{"already placed", dnderr.New(dnderr.CodeAlreadyPlaced, "placed"), http.StatusConflict},
		{"missing", dnderr.NotFoundf("character %s not found", "x"), http.StatusNotFound},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.session.EXPECT().PlaceCharacter(gomock.Any(), "character-2", 7, 20).Return(nil, tt.err)

			rec := s.do(http.MethodPost, "/api/characters/character-2/place", `{"x":7,"y":20}`)
			s.Equal(tt.status, rec.Code)
			s.Equal(string(dnderr.GetCode(tt.err)), s.errorCode(rec))
		})
	}
}

func (s *HandlerTestSuite) TestPlaceCharacter_BadBody() {
	rec := s.do(http.MethodPost, "/api/characters/character-2/place", `{"x":"seven"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(dnderr.CodeInvalidArgument), s.errorCode(rec))

	rec = s.do(http.MethodPost, "/api/characters/character-2/place", `{"x":1,"y":1,"z":1}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestNextTurn() {
	s.turn.EXPECT().RequestNextTurn(gomock.Any()).Return(&turn.Result{Message: "The goblin flees.", Current: "Aria"}, nil)

	rec := s.do(http.MethodPost, "/api/game/turn", "")
	s.Equal(http.StatusOK, rec.Code)

	var result turn.Result
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	s.Equal("The goblin flees.", result.Message)
	s.Equal("Aria", result.Current)
}

func (s *HandlerTestSuite) TestNextTurn_Failures() {
	tests := []struct {
		err    error
		status int
	}{
		{dnderr.New(dnderr.CodeTimeout, "slow"), http.StatusGatewayTimeout},
		{dnderr.New(dnderr.CodeTransportFailure, "down"), http.StatusBadGateway},
		{dnderr.UnknownParticipantf("ghost"), http.StatusBadGateway},
		{dnderr.New(dnderr.CodeBusy, "busy"), http.StatusConflict},
		{dnderr.New(dnderr.CodeCancelled, "closed"), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		s.turn.EXPECT().RequestNextTurn(gomock.Any()).Return(nil, tt.err)
		rec := s.do(http.MethodPost, "/api/game/turn", "")
		s.Equal(tt.status, rec.Code, tt.err.Error())
	}
}

func (s *HandlerTestSuite) TestStateRaw_IsCompactExchangeJSON() {
	current := "Aria"
	s.session.EXPECT().Encode(gomock.Any()).Return(codec.Payload{
		Map: codec.MapSection{W: 3, H: 3, Tiles: map[string][]codec.Coord{
			"WALL": {{0, 0}, {1, 0}},
		}},
		Chars: []codec.CharRecord{},
		Turn:  codec.TurnSection{Order: []string{"Aria"}, Current: &current},
	})

	rec := s.do(http.MethodGet, "/api/state/raw", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `[[0,0],[1,0]]`)
}

func (s *HandlerTestSuite) TestRemoveCharacter_Idempotent() {
	s.session.EXPECT().RemoveCharacter(gomock.Any(), "character-9").Return(false)

	rec := s.do(http.MethodDelete, "/api/characters/character-9", "")
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *HandlerTestSuite) TestSpawnEntity() {
	s.session.EXPECT().SpawnTemplate(gomock.Any(), "goblin", "", 6, 6).
		Return(testutils.CreateTestGoblin("entity-1", 6, 6, 14), nil)

	rec := s.do(http.MethodPost, "/api/entities", `{"template":"goblin","x":6,"y":6}`)
	s.Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/api/entities", `{"x":6,"y":6}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestLogAndState() {
	s.session.EXPECT().Log(gomock.Any()).Return([]session.LogEntry{{Message: "hello"}})
	rec := s.do(http.MethodGet, "/api/log", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "hello")

	s.session.EXPECT().Snapshot(gomock.Any()).Return(&session.Snapshot{Seed: 42})
	s.turn.EXPECT().State().Return(turn.StateIdle)
	rec = s.do(http.MethodGet, "/api/state", "")
	s.Equal(http.StatusOK, rec.Code)

	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(float64(42), body["seed"])
	s.Equal("idle", body["turn_state"])
}

func (s *HandlerTestSuite) TestPanicRecovered() {
	s.session.EXPECT().Log(gomock.Any()).DoAndReturn(func(any) []session.LogEntry {
		panic("kaboom")
	})

	rec := s.do(http.MethodGet, "/api/log", "")
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *HandlerTestSuite) TestCatalogAndPreflight() {
	rec := s.do(http.MethodGet, "/api/catalog", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Fireball")

	rec = s.do(http.MethodOptions, "/api/game/turn", "")
	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))
}

// Runs the placement scenario through a real session
func TestHandler_PlacementScenario(t *testing.T) {
	ctrl := gomock.NewController(t)

	grid := testutils.CreateTestGrid(t, 15, 25)
	svc := session.NewService(&session.ServiceConfig{
		Grid:         grid,
		CharacterIDs: uuid.NewSequenceGenerator("character"),
	})
	routes := web.NewHandler(&web.HandlerConfig{Session: svc, Turn: mockturn.NewMockService(ctrl)}).Routes()

	post := func(path, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
		return rec
	}

	rec := post("/api/characters", `{"name":"Aria","weapon":"bow","spells":["cure"],
		"abilities":{"strength":10,"agility":16,"constitution":14,"intelligence":10,"wisdom":10,"charisma":10}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var aria entities.Character
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &aria))
	assert.Equal(t, "character-1", aria.ID)
	assert.Equal(t, entities.DerivedStats{HP: 24, MaxHP: 24, AC: 13}, aria.Derived)

	rec = post("/api/characters", `{"name":"Bram"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, http.StatusOK, post("/api/characters/character-1/place", `{"x":7,"y":20}`).Code)
	assert.Equal(t, http.StatusConflict, post("/api/characters/character-2/place", `{"x":7,"y":20}`).Code)
	assert.Equal(t, http.StatusBadRequest, post("/api/characters/character-2/place", `{"x":-1,"y":20}`).Code)
	assert.Equal(t, http.StatusBadRequest, post("/api/characters", `{"name":"Cass","weapon":"trident"}`).Code)
}
