// Package main implements a mock Sorare API and Discord webhook for local
// development. It serves the salt endpoint, the SignIn and ListedCards
// GraphQL operations from a JSON fixture, and records webhook messages so
// the bot can run end to end without real credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// graphQLRequest is the body the bot posts to /graphql.
type graphQLRequest struct {
	OperationName string          `json:"operationName"`
	Query         string          `json:"query"`
	Variables     json.RawMessage `json:"variables"`
}

type signInVariables struct {
	Input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"input"`
	Aud string `json:"aud"`
}

// account is the single user the mock knows about.
type account struct {
	email    string
	password string
	salt     string
}

// issuedToken is handed out by SignIn and required by ListedCards.
type issuedToken struct {
	token string
	aud   string
}

type server struct {
	logger  *slog.Logger
	acct    account
	fixture json.RawMessage

	mu       sync.Mutex
	tokens   map[string]issuedToken
	messages []string
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/cards_response.json", "path to cards response fixture")
	email := flag.String("email", "manager@example.com", "account email accepted by sign-in")
	password := flag.String("password", "password", "account password accepted by sign-in")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}

	srv, err := newServer(logger, *email, *password, fixture)
	if err != nil {
		logger.Error("failed to create account salt", "error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock sorare server",
		"addr", addr,
		"email", *email,
		"api_url", "http://localhost"+addr,
		"graphql_url", "http://localhost"+addr+"/graphql",
		"webhook_url", "http://localhost"+addr+"/webhooks/discord",
	)

	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, srv.routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := httpSrv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newServer(logger *slog.Logger, email, password string, fixture json.RawMessage) (*server, error) {
	// A real account salt is the first 29 characters of a bcrypt hash.
	h, err := bcrypt.GenerateFromPassword([]byte(strconv.FormatInt(time.Now().UnixNano(), 10)), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	return &server{
		logger:  logger,
		acct:    account{email: email, password: password, salt: string(h[:29])},
		fixture: fixture,
		tokens:  make(map[string]issuedToken),
	}, nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/users/{email}", s.saltHandler)
	mux.HandleFunc("POST /graphql", s.graphQLHandler)
	mux.HandleFunc("POST /webhooks/discord", s.webhookHandler)
	mux.HandleFunc("GET /webhooks/discord/messages", s.messagesHandler)
	return mux
}

func loadFixture(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("parsing fixture: invalid JSON")
	}
	return data, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func (s *server) saltHandler(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if !strings.EqualFold(email, s.acct.email) {
		s.logger.Warn("salt requested for unknown user", "email", email)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"salt": s.acct.salt})
}

func (s *server) graphQLHandler(w http.ResponseWriter, r *http.Request) {
	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, graphQLErrors("malformed request body"))
		return
	}

	switch req.OperationName {
	case "SignIn":
		s.signIn(w, req)
	case "ListedCards":
		s.listedCards(w, r)
	default:
		writeJSON(w, http.StatusOK, graphQLErrors("unknown operation "+strconv.Quote(req.OperationName)))
	}
}

func (s *server) signIn(w http.ResponseWriter, req graphQLRequest) {
	var vars signInVariables
	if err := json.Unmarshal(req.Variables, &vars); err != nil {
		writeJSON(w, http.StatusOK, graphQLErrors("invalid variables"))
		return
	}

	if !s.validHash(vars.Input.Email, vars.Input.Password) {
		s.logger.Warn("rejected sign-in", "email", vars.Input.Email)
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]any{
				"signIn": map[string]any{
					"jwtToken": nil,
					"errors":   []map[string]string{{"message": "Invalid credentials"}},
				},
			},
		})
		return
	}

	token := "mock-jwt-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	s.mu.Lock()
	s.tokens[token] = issuedToken{token: token, aud: vars.Aud}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"signIn": map[string]any{
				"jwtToken": map[string]string{"token": token},
				"errors":   []map[string]string{},
			},
		},
	})
	s.logger.Info("issued mock token", "aud", vars.Aud)
}

// validHash reports whether hashed is the account password hashed with the
// account salt.
func (s *server) validHash(email, hashed string) bool {
	if !strings.EqualFold(email, s.acct.email) || !strings.HasPrefix(hashed, s.acct.salt) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(s.acct.password)) == nil
}

func (s *server) listedCards(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")

	s.mu.Lock()
	issued, known := s.tokens[token]
	s.mu.Unlock()

	if !ok || !known || r.Header.Get("JWT-AUD") != issued.aud {
		writeJSON(w, http.StatusUnauthorized, graphQLErrors("unauthorized"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	w.Write(s.fixture)
	s.logger.Info("served listed cards")
}

func (s *server) webhookHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Cannot send an empty message"})
		return
	}

	s.mu.Lock()
	s.messages = append(s.messages, payload.Content)
	s.mu.Unlock()

	s.logger.Info("discord message", "content", payload.Content)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) messagesHandler(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	msgs := append([]string{}, s.messages...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func graphQLErrors(msgs ...string) map[string]any {
	errs := make([]map[string]string, 0, len(msgs))
	for _, m := range msgs {
		errs = append(errs, map[string]string{"message": m})
	}
	return map[string]any{"errors": errs}
}
