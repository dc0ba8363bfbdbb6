package routes

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/config"
	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

const organizerPassword = "correct horse"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		Path:           filepath.Join(t.TempDir(), "routes.db"),
		ConnectTimeout: 2 * time.Second,
	}
	database, err := db.Connect(cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := db.InitializeTables(context.Background(), database, cfg.Driver); err != nil {
		t.Fatalf("initialize tables: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(organizerPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	hub := brackets.NewHub(logger)
	go hub.Run()
	t.Cleanup(hub.Stop)

	authService := services.NewAuthService(string(hash), "routes-test-secret")
	tournamentService := services.NewTournamentService(
		database,
		repositories.NewPlayerRepository(database, cfg.Driver),
		repositories.NewMatchRepository(database, cfg.Driver),
		repositories.NewStandingRepository(database, cfg.Driver),
		brackets.NewSwissGenerator(),
		hub,
		nil,
		logger,
	)

	router := chi.NewRouter()
	SetupRoutes(
		router,
		[]string{"*"},
		authService,
		handlers.NewAuthHandler(authService, logger),
		handlers.NewTournamentHandler(tournamentService, logger),
		handlers.NewWebSocketHandler(hub, []string{"*"}, logger),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, server *httptest.Server, method, path, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func login(t *testing.T, server *httptest.Server) string {
	t.Helper()
	resp := do(t, server, http.MethodPost, "/auth/token", "", `{"password":"`+organizerPassword+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	return body.Token
}

func TestMutationsRequireOrganizer(t *testing.T) {
	server := newTestServer(t)

	mutations := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/players", `{"name":"Alice"}`},
		{http.MethodDelete, "/players", ""},
		{http.MethodPost, "/matches", `{"winner_id":1,"loser_id":2}`},
		{http.MethodDelete, "/matches", ""},
		{http.MethodPost, "/standings/snapshots", ""},
	}
	for _, m := range mutations {
		if resp := do(t, server, m.method, m.path, "", m.body); resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s without token = %d, want 401", m.method, m.path, resp.StatusCode)
		}
		if resp := do(t, server, m.method, m.path, "forged", m.body); resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s with bad token = %d, want 401", m.method, m.path, resp.StatusCode)
		}
	}

	if resp := do(t, server, http.MethodPost, "/auth/token", "", `{"password":"wrong"}`); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("login with wrong password = %d, want 401", resp.StatusCode)
	}
}

func TestTournamentFlow(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server)

	ids := make([]int, 0, 4)
	for _, name := range []string{"Alice", "Bob", "Carol", "Dave"} {
		resp := do(t, server, http.MethodPost, "/players", token, `{"name":"`+name+`"}`)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("register %s status = %d", name, resp.StatusCode)
		}
		var body struct {
			Player struct {
				ID int `json:"id"`
			} `json:"player"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode player: %v", err)
		}
		ids = append(ids, body.Player.ID)
	}

	resp := do(t, server, http.MethodGet, "/players/count", "", "")
	var count struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&count); err != nil || count.Count != 4 {
		t.Fatalf("count = %d, %v; want 4", count.Count, err)
	}

	report := `{"winner_id":` + strconv.Itoa(ids[1]) + `,"loser_id":` + strconv.Itoa(ids[0]) + `}`
	if resp := do(t, server, http.MethodPost, "/matches", token, report); resp.StatusCode != http.StatusCreated {
		t.Fatalf("report status = %d", resp.StatusCode)
	}
	if resp := do(t, server, http.MethodPost, "/matches", token, `{"winner_id":9999,"loser_id":1}`); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("report unknown player status = %d, want 404", resp.StatusCode)
	}

	resp = do(t, server, http.MethodGet, "/standings", "", "")
	var standings struct {
		Standings []struct {
			ID      int `json:"id"`
			Wins    int `json:"wins"`
			Matches int `json:"matches"`
		} `json:"standings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&standings); err != nil {
		t.Fatalf("decode standings: %v", err)
	}
	if len(standings.Standings) != 4 || standings.Standings[0].ID != ids[1] || standings.Standings[0].Wins != 1 {
		t.Fatalf("standings = %+v, want Bob first with 1 win", standings.Standings)
	}

	resp = do(t, server, http.MethodGet, "/pairings", "", "")
	var pairings struct {
		Pairings []struct {
			ID1 int `json:"id1"`
			ID2 int `json:"id2"`
		} `json:"pairings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&pairings); err != nil {
		t.Fatalf("decode pairings: %v", err)
	}
	if len(pairings.Pairings) != 2 || pairings.Pairings[0].ID1 != ids[1] {
		t.Fatalf("pairings = %+v", pairings.Pairings)
	}

	if resp := do(t, server, http.MethodDelete, "/players", token, ""); resp.StatusCode != http.StatusConflict {
		t.Fatalf("clear players with matches = %d, want 409", resp.StatusCode)
	}
	if resp := do(t, server, http.MethodDelete, "/matches", token, ""); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("clear matches = %d", resp.StatusCode)
	}
	if resp := do(t, server, http.MethodDelete, "/players", token, ""); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("clear players = %d", resp.StatusCode)
	}

	if resp := do(t, server, http.MethodPost, "/standings/snapshots", token, ""); resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("snapshot without storage = %d, want 503", resp.StatusCode)
	}
	if resp := do(t, server, http.MethodGet, "/healthz", "", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz = %d", resp.StatusCode)
	}
	if resp := do(t, server, http.MethodGet, "/tournament", "", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("tournament = %d", resp.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, server.URL+"/players", nil)
	req.Header.Set("Origin", "https://club.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatal("missing Access-Control-Allow-Origin on preflight")
	}
}
