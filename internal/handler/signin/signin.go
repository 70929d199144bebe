// Package signin exchanges email/password credentials for a session,
// registering the account on first use.
package signin

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/AlltidSemester1337/chef-web-backend/internal/session"
)

// Identity is the slice of the identity provider the handler needs.
type Identity interface {
	SignInEmailPassword(ctx context.Context, email string, password string) (*fbauth.UserRecord, string, error)
	CreateUser(ctx context.Context, email string, password string) (*fbauth.UserRecord, error)
}

type Handler struct {
	identity Identity
	sessions *session.Manager
}

func NewHandler(identity Identity, sessions *session.Manager) *Handler {
	return &Handler{
		identity: identity,
		sessions: sessions,
	}
}

type request struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type response struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	IDToken     string `json:"idToken"`
}

// SignIn authenticates the credentials and starts a fresh session. When
// the provider rejects the credentials because the account does not
// exist yet, the account is created and signed in.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	record, idToken, err := h.signInOrRegister(ctx, req.Email, req.Password)
	if err != nil {
		slog.ErrorContext(ctx, "signin: authenticating user", "error", err)
		http.Error(w, "sign-in failed", http.StatusUnauthorized)
		return
	}

	sess := h.sessions.Start(session.User{
		UID:         record.UID,
		DisplayName: record.DisplayName,
		Email:       record.Email,
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response{
		UID:         sess.User.UID,
		DisplayName: sess.User.DisplayName,
		Email:       sess.User.Email,
		IDToken:     idToken,
	}); err != nil {
		slog.ErrorContext(ctx, "signin: writing response", "error", err)
	}
}

func (h *Handler) signInOrRegister(ctx context.Context, email string, password string) (*fbauth.UserRecord, string, error) {
	record, idToken, err := h.identity.SignInEmailPassword(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if record != nil {
		return record, idToken, nil
	}

	// Rejected credentials may mean the account does not exist. Try to
	// register; an existing account with a different password fails here.
	if _, err := h.identity.CreateUser(ctx, email, password); err != nil {
		return nil, "", fmt.Errorf("signin: registering account: %w", err)
	}
	record, idToken, err = h.identity.SignInEmailPassword(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if record == nil {
		return nil, "", fmt.Errorf("signin: credentials rejected after registration")
	}
	return record, idToken, nil
}
