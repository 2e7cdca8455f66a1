package controllers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"quillpad/app/apperrors"
	"quillpad/app/auth"
)

// AuthController exchanges verified identity tokens for session cookies.
type AuthController struct {
	verifier auth.TokenVerifier
	sessions *auth.SessionManager
	log      *slog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(verifier auth.TokenVerifier, sessions *auth.SessionManager, log *slog.Logger) *AuthController {
	return &AuthController{
		verifier: verifier,
		sessions: sessions,
		log:      log,
	}
}

type loginRequest struct {
	IDToken string `json:"idToken"`
}

// Login handles POST /api/auth/session: verify the identity token, then
// set the signed session cookie.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, ac.log, fmt.Errorf("%w: invalid request body", apperrors.ErrInvalidInput))
		return
	}
	if req.IDToken == "" {
		sendError(w, ac.log, fmt.Errorf("%w: idToken is required", apperrors.ErrInvalidInput))
		return
	}

	identity, err := ac.verifier.Verify(r.Context(), req.IDToken)
	if err != nil {
		sendError(w, ac.log, err)
		return
	}

	if err := ac.sessions.Issue(w, identity); err != nil {
		sendError(w, ac.log, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Logout handles DELETE /api/auth/session, expiring the cookie whether or
// not the request carried a valid one.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.sessions.Clear(w)
	sendJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
