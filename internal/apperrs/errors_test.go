package apperrs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Пары код/статус читаются клиентами как есть, менять их нельзя.
func TestErrorCodeTable(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   int
		wantStatus int
	}{
		{name: "internal", err: Internal(), wantCode: 1, wantStatus: http.StatusInternalServerError},
		{name: "upstream", err: Upstream("sso is down"), wantCode: 2, wantStatus: http.StatusInternalServerError},
		{name: "validation", err: Validation("bad"), wantCode: 3, wantStatus: http.StatusBadRequest},
		{name: "not implemented", err: NotImplemented("later"), wantCode: 4, wantStatus: http.StatusBadRequest},
		{name: "too many requests", err: TooManyRequests(30), wantCode: 6, wantStatus: http.StatusTooManyRequests},
		{name: "expired", err: Expired("gone"), wantCode: 7, wantStatus: http.StatusForbidden},
		{name: "forbidden", err: Forbidden("no"), wantCode: 7, wantStatus: http.StatusForbidden},
		{name: "not found", err: NotFound("nope"), wantCode: 8, wantStatus: http.StatusNotFound},
		{name: "auth required", err: AuthRequired("token"), wantCode: 100, wantStatus: http.StatusUnauthorized},
		{name: "auth invalid", err: AuthInvalid("token"), wantCode: 101, wantStatus: http.StatusBadRequest},
		{name: "auth expired", err: AuthExpired("token"), wantCode: 102, wantStatus: http.StatusBadRequest},
		{name: "auth insufficient", err: AuthInsufficient("scope"), wantCode: 103, wantStatus: http.StatusForbidden},
		{name: "user deactivated", err: UserDeactivated("banned"), wantCode: 200, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.Status)
		})
	}
}

func TestTooManyRequestsData(t *testing.T) {
	err := TooManyRequests(42)
	assert.Equal(t, map[string]any{"retry_after": int64(42)}, err.Data)
}
