// Package auth wraps the external identity provider: password sign-in
// through the Identity Toolkit REST endpoint and user administration
// through the Firebase admin SDK.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/AlltidSemester1337/chef-web-backend/internal/session"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

type Service struct {
	users    *fbauth.Client
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewService(users *fbauth.Client, apiKey string) *Service {
	return &Service{
		users:    users,
		apiKey:   apiKey,
		endpoint: signInEndpoint,
		client:   http.DefaultClient,
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken string `json:"idToken"`
}

// SignInEmailPassword exchanges credentials for an ID token and the
// user record. Rejected credentials yield a nil record without error so
// the caller can fall back to sign-up.
func (s *Service) SignInEmailPassword(ctx context.Context, email string, password string) (*fbauth.UserRecord, string, error) {
	token, err := s.signInToken(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if token == "" {
		return nil, "", nil
	}
	record, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("auth: looking up user by email: %w", err)
	}
	return record, token, nil
}

func (s *Service) signInToken(ctx context.Context, email string, password string) (string, error) {
	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return "", fmt.Errorf("auth: marshalling sign-in request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"?key="+s.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("auth: creating sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth: sending sign-in request: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	// Bad credentials come back as a non-200 error payload with no
	// idToken; both are treated as a rejected sign-in, not an error.
	var signIn signInResponse
	if err := json.NewDecoder(res.Body).Decode(&signIn); err != nil {
		return "", fmt.Errorf("auth: decoding sign-in response: %w", err)
	}
	return signIn.IDToken, nil
}

// CreateUser registers a new account with the identity provider.
func (s *Service) CreateUser(ctx context.Context, email string, password string) (*fbauth.UserRecord, error) {
	record, err := s.users.CreateUser(ctx, (&fbauth.UserToCreate{}).Email(email).Password(password))
	if err != nil {
		return nil, fmt.Errorf("auth: creating user: %w", err)
	}
	return record, nil
}

// DeleteUser removes the account from the identity provider.
func (s *Service) DeleteUser(ctx context.Context, uid string) error {
	if err := s.users.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("auth: deleting user %s: %w", uid, err)
	}
	return nil
}

// User resolves a session snapshot for the user ID.
func (s *Service) User(ctx context.Context, uid string) (session.User, error) {
	record, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return session.User{}, fmt.Errorf("auth: getting user %s: %w", uid, err)
	}
	return session.User{
		UID:         record.UID,
		DisplayName: record.DisplayName,
		Email:       record.Email,
	}, nil
}

type userIDContextKey struct{}

var userIDContextKeyInstance = userIDContextKey{}

// WithUserID overrides the user ID seen by UserID for the context.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDContextKeyInstance, uid)
}

// UserID returns the authenticated user's ID from the verified token on
// the request context, or an explicit override set with WithUserID.
func UserID(ctx context.Context) string {
	if uid, ok := ctx.Value(userIDContextKeyInstance).(string); ok {
		return uid
	}
	if token := firebaseauth.TokenFromContext(ctx); token != nil {
		return token.UID
	}
	return ""
}
