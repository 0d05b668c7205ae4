package realtime

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/ecra2001/chess-old/internal/auth"
	"github.com/ecra2001/chess-old/internal/chess"
	"github.com/ecra2001/chess-old/internal/store"
)

type liveServer struct {
	url     string
	tokens  *auth.Tokens
	matches *store.MatchRepository
}

func newLiveServer(t *testing.T) *liveServer {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	matches, err := store.NewMatchRepository(db, slog.Default())
	require.NoError(t, err)
	tokens := auth.NewTokens("test-secret", time.Hour)

	registry := NewRegistry(slog.Default())
	dispatcher := NewDispatcher(slog.Default(), tokens, matches, registry)
	cfg := ClientConfig{SendBufferSize: 16, ReadLimit: 4096, PongWait: 5 * time.Second, WriteWait: time.Second}
	server := httptest.NewServer(HandleWebSocket(dispatcher, cfg, slog.Default()))
	t.Cleanup(func() {
		registry.CloseAll()
		server.Close()
		_ = matches.Close()
		_ = db.Close()
	})
	return &liveServer{url: "ws" + strings.TrimPrefix(server.URL, "http"), tokens: tokens, matches: matches}
}

func (s *liveServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(s.url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func (s *liveServer) token(t *testing.T, username string) string {
	t.Helper()
	token, err := s.tokens.Issue(username)
	require.NoError(t, err)
	return token
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebSocket_Play_A_Move(t *testing.T) {
	req := require.New(t)
	server := newLiveServer(t)
	ctx := context.Background()
	m, err := server.matches.Create(ctx, "live")
	req.NoError(err)
	_, err = server.matches.Join(ctx, m.ID, chess.White, "alice")
	req.NoError(err)
	_, err = server.matches.Join(ctx, m.ID, chess.Black, "bob")
	req.NoError(err)

	white, black := server.dial(t), server.dial(t)

	// Given both players connected
	req.NoError(white.WriteJSON(Command{CommandType: CommandConnect, AuthToken: server.token(t, "alice"), GameID: m.ID}))
	req.Equal(LoadGame, readMessage(t, white).ServerMessageType)
	req.NoError(black.WriteJSON(Command{CommandType: CommandConnect, AuthToken: "Bearer " + server.token(t, "bob"), GameID: m.ID}))
	req.Equal(LoadGame, readMessage(t, black).ServerMessageType)
	req.Equal("bob has connected to the game as player (black)", readMessage(t, white).Message)

	// When white moves using algebraic squares
	req.NoError(white.WriteMessage(websocket.TextMessage, []byte(
		`{"commandType":"MAKE_MOVE","authToken":"`+server.token(t, "alice")+`","gameID":`+strconv.Itoa(m.ID)+`,"move":{"start":"e2","end":"e4"}}`)))

	// Then both sides see the notification and the new state
	for _, conn := range []*websocket.Conn{white, black} {
		req.Equal("A move has been made by alice", readMessage(t, conn).Message)
		state := readMessage(t, conn)
		req.Equal(LoadGame, state.ServerMessageType)
		req.Equal(chess.Black, state.Game.TeamTurn)
	}

	// And the move is persisted
	stored, err := server.matches.Get(ctx, m.ID)
	req.NoError(err)
	req.Equal(chess.Black, stored.Game.Turn())

	// When black sends a forged token
	req.NoError(black.WriteJSON(Command{CommandType: CommandResign, AuthToken: "forged", GameID: m.ID}))
	req.Equal(errorMessage("Error: Not authorized"), readMessage(t, black))
}

func TestWebSocket_Leave_Closes_Connection(t *testing.T) {
	req := require.New(t)
	server := newLiveServer(t)
	m, err := server.matches.Create(context.Background(), "short")
	req.NoError(err)
	conn := server.dial(t)

	req.NoError(conn.WriteJSON(Command{CommandType: CommandConnect, AuthToken: server.token(t, "carol"), GameID: m.ID}))
	req.Equal(LoadGame, readMessage(t, conn).ServerMessageType)
	req.NoError(conn.WriteJSON(Command{CommandType: CommandLeave, AuthToken: server.token(t, "carol"), GameID: m.ID}))

	req.NoError(conn.SetReadDeadline(time.Now().Add(3 * time.Second)))
	_, _, err = conn.ReadMessage()
	req.True(websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
}
