package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/services"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, userID, companyID string, secret []byte) string {
	t.Helper()
	claims := Claims{
		UserID:    userID,
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func authTestRouter(captured *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(testSecret), func(c *gin.Context) {
		companyID, ok := services.CompanyIDFromContext(c.Request.Context())
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		*captured = companyID
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddlewareSetsActorContext(t *testing.T) {
	var captured uuid.UUID
	r := authTestRouter(&captured)

	userID := uuid.New()
	companyID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID.String(), companyID.String(), testSecret))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, companyID, captured)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	var captured uuid.UUID
	r := authTestRouter(&captured)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signToken(t, uuid.New().String(), uuid.New().String(), []byte("other-secret"))},
		{"non-uuid claims", "Bearer " + signToken(t, "alice", "acme", testSecret)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{sle_errors.Invalid("bad"), http.StatusBadRequest, "INVALID_REQUEST"},
		{sle_errors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{sle_errors.Transition("open", "accepted"), http.StatusConflict, "INVALID_STATE"},
		{sle_errors.ErrConflict, http.StatusConflict, "CONFLICT"},
		{sle_errors.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{sle_errors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{sle_errors.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED"},
		{sle_errors.Unavailable(errors.New("redis down")), http.StatusServiceUnavailable, "TRY_AGAIN"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		status, code := StatusFor(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}
