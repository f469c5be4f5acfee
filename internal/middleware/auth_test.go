package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	testCases := []struct {
		name               string
		path               string
		method             string
		token              string
		expectCheck        bool
		mockIsLogged       bool
		mockIsLoggedErr    error
		expectedStatusCode int
		expectNextCalled   bool
	}{
		{
			name:               "root open without token",
			path:               "/",
			method:             http.MethodGet,
			expectedStatusCode: http.StatusOK,
			expectNextCalled:   true,
		},
		{
			name:               "login open without token",
			path:               "/a/login",
			method:             http.MethodPost,
			expectedStatusCode: http.StatusOK,
			expectNextCalled:   true,
		},
		{
			name:               "preflight",
			path:               "/end-of-day",
			method:             http.MethodOptions,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "missing token",
			path:               "/db",
			method:             http.MethodGet,
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "valid token",
			path:               "/end-of-day",
			method:             http.MethodPost,
			token:              "valid-token",
			expectCheck:        true,
			mockIsLogged:       true,
			expectedStatusCode: http.StatusOK,
			expectNextCalled:   true,
		},
		{
			name:               "expired token",
			path:               "/gym-live",
			method:             http.MethodGet,
			token:              "old-token",
			expectCheck:        true,
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "checker error",
			path:               "/dashboard",
			method:             http.MethodGet,
			token:              "some-token",
			expectCheck:        true,
			mockIsLoggedErr:    errors.New("redis down"),
			expectedStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockLoginChecker := NewMockloginChecker(ctrl)
			authMiddleware := middleware.NewAuthMiddlewareHandler(mockLoginChecker)

			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set(auth.TokenHeader, tc.token)
			}
			if tc.expectCheck {
				mockLoginChecker.EXPECT().
					IsLogged(gomock.Any(), tc.token).
					Return(tc.mockIsLogged, tc.mockIsLoggedErr)
			}

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			rr := httptest.NewRecorder()
			authMiddleware.AuthCheck()(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			assert.Equal(t, tc.expectNextCalled, nextCalled)
		})
	}
}
