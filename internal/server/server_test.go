package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mockmate/interviewprep/internal/capture"
	"github.com/mockmate/interviewprep/internal/database"
	"github.com/mockmate/interviewprep/internal/flow"
	"github.com/mockmate/interviewprep/internal/interview"
	"github.com/mockmate/interviewprep/internal/migrations"
	"github.com/mockmate/interviewprep/internal/speech"
)

const testSecret = "test-secret"

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Real SQLite in-memory DB — lightweight, no mocks needed.
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return db
}

// fixedScorer always scores the same so tests can assert exact means.
type fixedScorer struct {
	score    int
	feedback string
}

func (f fixedScorer) Score(string, interview.Question) (int, string) {
	return f.score, f.feedback
}

// testFlowEnv scores every answer 8 and stamps a 900 second duration.
func testFlowEnv() flow.Env {
	return flow.Env{
		Scorer:          fixedScorer{score: 8, feedback: "Strong response with clear structure and relevant examples."},
		Now:             time.Now,
		DurationSeconds: func() int { return 900 },
	}
}

func testRouter(t *testing.T) (*chi.Mux, Deps) {
	return testRouterWithProvider(t, capture.NewSimProvider())
}

func testRouterWithProvider(t *testing.T, provider capture.Provider) (*chi.Mux, Deps) {
	t.Helper()

	db := setupTestDB(t)
	flows := flow.NewManager(testFlowEnv(), time.Minute, nil)
	t.Cleanup(flows.Close)
	guards := NewGuardRegistry(provider)
	t.Cleanup(guards.Close)
	flows.OnRemove(guards.Remove)

	deps := Deps{
		DB:        db,
		Store:     NewSQLiteStore(db),
		Flows:     flows,
		Broker:    NewBroker(),
		Guards:    guards,
		Speaker:   speech.NewSpeaker(speech.SimSynth{}),
		JWTSecret: testSecret,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	addRoutes(r, logger, deps)
	return r, deps
}

// signUp authenticates against the mock auth endpoint and returns the
// bearer token.
func signUp(t *testing.T, r http.Handler, email string) string {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/api/auth", "", AuthRequest{
		Mode:  "signup",
		Email: email,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("auth: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding auth response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("auth: expected a token")
	}
	return resp.Token
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) flow.State {
	t.Helper()

	var s flow.State
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decoding state: %v", err)
	}
	return s
}

// completeOnboarding drives a fresh user through the onboarding form so
// interview tests can start from the summary screen.
func completeOnboarding(t *testing.T, r http.Handler, token string) {
	t.Helper()

	doJSON(t, r, http.MethodPut, "/api/onboarding/job", token, JobDetailsRequest{
		Role:    "Software Engineer",
		Company: "Google",
	})
	doJSON(t, r, http.MethodPut, "/api/onboarding/resume", token, ResumeRequest{
		Name: "resume.pdf", Size: 1024,
	})
	doJSON(t, r, http.MethodPost, "/api/onboarding/device", token, DeviceRequest{
		Device: flow.DeviceCamera, Enabled: true,
	})
	doJSON(t, r, http.MethodPost, "/api/onboarding/device", token, DeviceRequest{
		Device: flow.DeviceMicrophone, Enabled: true,
	})

	rec := doJSON(t, r, http.MethodPost, "/api/onboarding/continue", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("continue: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
