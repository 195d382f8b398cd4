package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mockmate/interviewprep/internal/flow"
	"github.com/mockmate/interviewprep/internal/interview"
)

const (
	demoEmail = "demo@example.com"
	demoName  = "Demo User"
)

type AuthRequest struct {
	Mode     string `json:"mode"` // signup, signin or demo
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string         `json:"token"`
	User  interview.User `json:"user"`
	State flow.State     `json:"state"`
}

// handleAuth is the mock sign-up/sign-in: any email produces a user. The
// name falls back to the email's local part; the demo mode uses a fixed
// identity. The submitted password is hashed and stored but never checked.
func handleAuth(store Store, flows *flow.Manager, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AuthRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		req.Name = strings.TrimSpace(req.Name)

		if req.Mode == "demo" {
			req.Email = demoEmail
			req.Name = demoName
		}
		if req.Email == "" {
			writeError(w, http.StatusBadRequest, "email is required")
			return
		}
		if req.Name == "" {
			req.Name = localPart(req.Email)
		}

		var passwordHash string
		if req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			passwordHash = string(hash)
		}

		user, err := store.UpsertUser(r.Context(), req.Email, req.Name, passwordHash, uuid.NewString())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		token, err := issueToken(secret, user)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		state, _ := flows.Get(user.ID).Dispatch(flow.Authenticate{User: user})

		writeJSON(w, http.StatusOK, AuthResponse{
			Token: token,
			User:  user,
			State: state,
		})
	}
}

// localPart returns everything before the @, or the input unchanged when
// there is none.
func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
