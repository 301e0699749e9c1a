package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fsdevblog/shortlinks/internal/apperrs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSSOServer(t *testing.T, handler http.HandlerFunc) *SSOProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewSSOProvider(server.URL)
}

func TestVerifyTokenSuccess(t *testing.T) {
	provider := newSSOServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tokens/check", r.URL.Path)
		assert.Equal(t, "my-token", r.URL.Query().Get("access_token"))
		assert.Equal(t, "cc", r.URL.Query().Get("required_scope"))

		fmt.Fprint(w, `{"success": {"user_id": 42, "scope": "cc,edit"}}`)
	})

	info, err := provider.VerifyToken(context.Background(), "my-token")
	require.NoError(t, err)
	assert.Equal(t, uint(42), info.ExternalUserID)
	assert.Equal(t, "cc,edit", info.Scope)
}

func TestVerifyTokenErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		ssoCode  int
		wantKind apperrs.Kind
	}{
		{name: "invalid token", ssoCode: 10, wantKind: apperrs.KindAuthInvalid},
		{name: "token not found", ssoCode: 20, wantKind: apperrs.KindAuthInvalid},
		{name: "expired token", ssoCode: 11, wantKind: apperrs.KindAuthExpired},
		{name: "insufficient scope", ssoCode: 33, wantKind: apperrs.KindAuthInsufficient},
		{name: "deactivated user", ssoCode: 100, wantKind: apperrs.KindUserDeactivated},
		{name: "unknown code", ssoCode: 999, wantKind: apperrs.KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newSSOServer(t, func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprintf(w, `{"error": {"code": %d, "message": "nope"}}`, tt.ssoCode)
			})

			_, err := provider.VerifyToken(context.Background(), "my-token")
			require.Error(t, err)

			var appErr *apperrs.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantKind, appErr.Kind)
		})
	}
}

func TestVerifyTokenMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>502</html>"},
		{name: "empty object", body: "{}"},
		{name: "success without user id", body: `{"success": {"scope": "cc"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newSSOServer(t, func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, tt.body)
			})

			_, err := provider.VerifyToken(context.Background(), "my-token")
			require.Error(t, err)

			var appErr *apperrs.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrs.KindUpstream, appErr.Kind)
		})
	}
}

func TestVerifyTokenUnreachableUpstream(t *testing.T) {
	provider := NewSSOProvider("http://127.0.0.1:1")

	_, err := provider.VerifyToken(context.Background(), "my-token")
	require.Error(t, err)

	var appErr *apperrs.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrs.KindUpstream, appErr.Kind)
}
