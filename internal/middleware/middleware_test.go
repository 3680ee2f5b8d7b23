package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/config"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret"}

	validToken := signToken(t, "test-secret", jwt.MapClaims{
		"user_id":  "user-1",
		"username": "alice",
		"email":    "alice@example.com",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name           string
		path           string
		authHeader     string
		expectedStatus int
		expectUserID   string
	}{
		{
			name:           "public path passes through",
			path:           "/api/auth/login",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header rejected",
			path:           "/api/posts",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header rejected",
			path:           "/api/posts",
			authHeader:     "Token abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "bad signature rejected",
			path:           "/api/posts",
			authHeader:     "Bearer " + signToken(t, "wrong-secret", jwt.MapClaims{"user_id": "user-1", "username": "alice", "email": "a@b.c", "exp": time.Now().Add(time.Hour).Unix()}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "valid token injects actor id",
			path:           "/api/posts",
			authHeader:     "Bearer " + validToken,
			expectedStatus: http.StatusOK,
			expectUserID:   "user-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = UserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			Auth(cfg)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectUserID != "" {
				assert.Equal(t, tt.expectUserID, gotUserID)
			}
		})
	}
}
