package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewService(nil, "test-api-key")
	svc.endpoint = server.URL
	svc.client = server.Client()
	return svc
}

func TestSignInToken_Granted(t *testing.T) {
	var gotKey string
	var gotBody signInRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"idToken":      "id-token-1",
			"refreshToken": "refresh-1",
			"localId":      "uid-1",
		})
	})

	token, err := svc.signInToken(context.Background(), "chef@example.com", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "id-token-1", token)
	assert.Equal(t, "test-api-key", gotKey)
	assert.Equal(t, signInRequest{Email: "chef@example.com", Password: "hunter2", ReturnSecureToken: true}, gotBody)
}

func TestSignInToken_RejectedCredentials(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "INVALID_PASSWORD"},
		})
	})

	token, err := svc.signInToken(context.Background(), "chef@example.com", "wrong")
	require.NoError(t, err, "bad credentials are a rejection, not an error")
	assert.Empty(t, token)
}

func TestSignInToken_MalformedResponse(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	})

	_, err := svc.signInToken(context.Background(), "chef@example.com", "hunter2")
	require.Error(t, err)
}

func TestUserID_ContextOverride(t *testing.T) {
	ctx := WithUserID(context.Background(), "uid-42")
	assert.Equal(t, "uid-42", UserID(ctx))
	assert.Empty(t, UserID(context.Background()))
}
