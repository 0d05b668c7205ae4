package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/ecra2001/chess-old/internal/chess"
	"github.com/ecra2001/chess-old/internal/errs"
	"github.com/ecra2001/chess-old/internal/store"
)

const (
	maxJSONBodyBytes int64 = 1 << 16
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

type Auth interface {
	Register(ctx context.Context, username, password, email string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Username(ctx context.Context, token string) (string, error)
}

type Games interface {
	Create(ctx context.Context, name string) (store.Match, error)
	List(ctx context.Context) ([]store.Match, error)
	Join(ctx context.Context, id int, color chess.Color, username string) (store.Match, error)
}

type Clearer interface {
	Clear(ctx context.Context) error
}

// Server is the lobby API: accounts, sessions, game creation, listing and
// seating.
type Server struct {
	auth     Auth
	games    Games
	clearer  Clearer
	validate *validator.Validate
	log      *slog.Logger
}

func NewServer(log *slog.Logger, auth Auth, games Games) *Server {
	return &Server{auth: auth, games: games, validate: validator.New(), log: log}
}

// WithClear exposes DELETE /api/db, which wipes every game and user.
func (s *Server) WithClear(c Clearer) *Server {
	s.clearer = c
	return s
}

// Routes mounts the API, the health check and the websocket endpoint.
// DELETE /api/db is only mounted when a Clearer was given.
func (s *Server) Routes(ws http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/user", s.withJSON(s.handleRegister))
	mux.HandleFunc("POST /api/session", s.withJSON(s.handleLogin))
	mux.HandleFunc("DELETE /api/session", s.withJSON(s.handleLogout))
	mux.HandleFunc("POST /api/games", s.withJSON(s.authorized(s.handleCreateGame)))
	mux.HandleFunc("GET /api/games", s.withJSON(s.authorized(s.handleListGames)))
	mux.HandleFunc("PUT /api/games/{id}", s.withJSON(s.authorized(s.handleJoinGame)))
	if s.clearer != nil {
		mux.HandleFunc("DELETE /api/db", s.withJSON(s.handleClear))
	}
	mux.Handle("GET /ws", ws)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ---- JSON helpers ----

func (s *Server) withJSON(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Content-Security-Policy", apiCSP)
		header.Set("Cross-Origin-Opener-Policy", "same-origin")
		header.Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": "Error: " + msg})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, body any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "bad request")
		return false
	}
	if err := s.validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return false
	}
	return true
}

// writeFailure maps a domain error to a status code.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, errs.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad request")
	case errors.Is(err, errs.ErrMatchNotFound):
		writeError(w, http.StatusBadRequest, "bad request")
	case errors.Is(err, errs.ErrSeatTaken), errors.Is(err, errs.ErrUserExists):
		writeError(w, http.StatusForbidden, "already taken")
	default:
		s.log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

type userKey struct{}

// authorized resolves the Authorization header before calling h.
func (s *Server) authorized(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := s.auth.Username(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		h(w, r.WithContext(context.WithValue(r.Context(), userKey{}, username)))
	}
}

func userFrom(ctx context.Context) string {
	username, _ := ctx.Value(userKey{}).(string)
	return username
}

// ---- API: accounts ----

type registerBody struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type loginBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Username  string `json:"username"`
	AuthToken string `json:"authToken"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if !s.decode(w, r, &body) {
		return
	}
	token, err := s.auth.Register(r.Context(), body.Username, body.Password, body.Email)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.log.Info("User registered", "user", body.Username)
	writeJSON(w, http.StatusOK, sessionResponse{Username: body.Username, AuthToken: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if !s.decode(w, r, &body) {
		return
	}
	token, err := s.auth.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Username: body.Username, AuthToken: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), r.Header.Get("Authorization")); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.clearer.Clear(r.Context()); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

// ---- API: games ----

type createGameBody struct {
	GameName string `json:"gameName" validate:"required,max=128"`
}

type gameSummary struct {
	GameID        int    `json:"gameID"`
	GameName      string `json:"gameName"`
	WhiteUsername string `json:"whiteUsername,omitempty"`
	BlackUsername string `json:"blackUsername,omitempty"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var body createGameBody
	if !s.decode(w, r, &body) {
		return
	}
	m, err := s.games.Create(r.Context(), body.GameName)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.log.Info("Game created", "game", m.ID, "name", m.Name, "user", userFrom(r.Context()))
	writeJSON(w, http.StatusOK, map[string]int{"gameID": m.ID})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	matches, err := s.games.List(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	games := lo.Map(matches, func(m store.Match, _ int) gameSummary {
		return gameSummary{GameID: m.ID, GameName: m.Name, WhiteUsername: m.WhiteUsername, BlackUsername: m.BlackUsername}
	})
	writeJSON(w, http.StatusOK, map[string][]gameSummary{"games": games})
}

type joinGameBody struct {
	PlayerColor string `json:"playerColor" validate:"required"`
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	var body joinGameBody
	if !s.decode(w, r, &body) {
		return
	}
	color, ok := chess.ParseColor(body.PlayerColor)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	username := userFrom(r.Context())
	if _, err := s.games.Join(r.Context(), id, color, username); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.log.Info("Seat taken", "game", id, "color", color.String(), "user", username)
	writeJSON(w, http.StatusOK, map[string]any{})
}
