package auth_test

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/docstore"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler_HandleLogin(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		mockToken      string
		mockErr        error
		expectLogin    bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "ok",
			body:           `{"passcode":"123654"}`,
			mockToken:      "tkn",
			expectLogin:    true,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ok":true,"token":"tkn"}`,
		},
		{
			name:           "wrong passcode",
			body:           `{"passcode":"111111"}`,
			mockErr:        auth.ErrWrongPasscode,
			expectLogin:    true,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"ok":false,"error":"Wrong passcode"}`,
		},
		{
			name:           "store down",
			body:           `{"passcode":"123654"}`,
			mockErr:        fmt.Errorf("load passcode: %w", docstore.ErrUnavailable),
			expectLogin:    true,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"ok":false,"error":"Storage is unavailable, try again later"}`,
		},
		{
			name:           "empty passcode",
			body:           `{"passcode":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"Enter the passcode"}`,
		},
		{
			name:           "bad json",
			body:           `passcode=1`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"Invalid request body"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			serviceMock := NewMocksessionService(ctrl)
			h := auth.NewHandler(serviceMock)

			if tc.expectLogin {
				serviceMock.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(tc.mockToken, tc.mockErr)
			}

			rec := httptest.NewRecorder()
			h.HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/a/login", bytes.NewBufferString(tc.body)))
			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
		})
	}
}

func TestHandler_HandleLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	serviceMock := NewMocksessionService(ctrl)
	h := auth.NewHandler(serviceMock)

	rec := httptest.NewRecorder()
	h.HandleLogout(rec, httptest.NewRequest(http.MethodGet, "/a/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	serviceMock.EXPECT().Logout(gomock.Any(), "tkn").Return(true, nil)
	req := httptest.NewRequest(http.MethodGet, "/a/logout", nil)
	req.Header.Set(auth.TokenHeader, "tkn")
	rec = httptest.NewRecorder()
	h.HandleLogout(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	serviceMock.EXPECT().Logout(gomock.Any(), "gone").Return(false, nil)
	req = httptest.NewRequest(http.MethodGet, "/a/logout", nil)
	req.Header.Set(auth.TokenHeader, "gone")
	rec = httptest.NewRecorder()
	h.HandleLogout(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	serviceMock.EXPECT().Logout(gomock.Any(), "err").Return(false, errors.New("redis down"))
	req = httptest.NewRequest(http.MethodGet, "/a/logout", nil)
	req.Header.Set(auth.TokenHeader, "err")
	rec = httptest.NewRecorder()
	h.HandleLogout(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
