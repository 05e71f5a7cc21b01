package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/isluportal/internal/app/models/dto"
	"github.com/yigit/isluportal/internal/app/services"
	"github.com/yigit/isluportal/internal/app/session"
	"github.com/yigit/isluportal/internal/pkg/apperrors"
	"github.com/yigit/isluportal/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorDetailFor(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"student", apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
		{"record", apperrors.NewNotFoundError("no attendance record on 9/1/2025"), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "no attendance record on 9/1/2025"},
		{"exists", apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid student ID or password"},
		{"session", apperrors.ErrSessionNotFound, http.StatusUnauthorized, dto.ErrorCodeSessionNotFound, "Session has ended"},
		{"validation", apperrors.NewValidationError("amount must be positive"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "amount must be positive"},
		{"unsupported", apperrors.NewUnsupportedError("Grade editing"), http.StatusNotImplemented, dto.ErrorCodeUnsupported, "Grade editing is not available"},
		{"exhausted", fmt.Errorf("register: %w", apperrors.ErrIDSpaceExhausted), http.StatusInsufficientStorage, dto.ErrorCodeIDSpaceExhausted, "No student IDs are left to assign"},
		{"export", fmt.Errorf("%w: pdf: boom", services.ErrExportFailed), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Document could not be generated"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := errorDetailFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, detail.Code)
			assert.Equal(t, tt.message, detail.Message)
		})
	}
}

func TestHandleAPIError_ValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	err := apperrors.NewCustomError(apperrors.ErrValidationFailed, "LastName is required").
		WithDetails(map[string]interface{}{"LastName": "LastName is required"})
	HandleAPIError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(dto.ErrorCodeValidationFailed), body.Error.Code)
	assert.Equal(t, "LastName is required", body.Error.Details["LastName"])
}

type authFixture struct {
	router   *gin.Engine
	jwt      *auth.JWTService
	sessions *session.Manager
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		jwt:      auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "test"}),
		sessions: session.NewManager(session.Config{MaxAmountDue: 100, MaxBalance: 100}),
	}
	f.router = gin.New()
	f.router.Use(RequestID())
	f.router.GET("/me", NewAuthMiddleware(f.jwt, f.sessions).JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"studentId": StudentID(c), "sessionId": SessionID(c)})
	})
	return f
}

func (f *authFixture) login(t *testing.T, studentID string) *auth.AccessToken {
	t.Helper()
	token, err := f.jwt.GenerateAccessToken(studentID)
	require.NoError(t, err)
	f.sessions.Create(token.SessionID, studentID)
	return token
}

func (f *authFixture) get(url, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestJWTAuth(t *testing.T) {
	f := newAuthFixture()
	token := f.login(t, "2250001")

	t.Run("valid token", func(t *testing.T) {
		w := f.get("/me", "Bearer "+token.Token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"studentId":"2250001","sessionId":%q}`, token.SessionID), w.Body.String())
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("token query parameter", func(t *testing.T) {
		w := f.get("/me?token=Bearer%20"+token.Token, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		w := f.get("/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, errorCode(t, w))
	})

	t.Run("bad format", func(t *testing.T) {
		w := f.get("/me", "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, errorCode(t, w))
	})

	t.Run("forged token", func(t *testing.T) {
		other := auth.NewJWTService(auth.JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "test"})
		forged, err := other.GenerateAccessToken("2250001")
		require.NoError(t, err)

		w := f.get("/me", "Bearer "+forged.Token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeInvalidToken, errorCode(t, w))
	})

	t.Run("session ended", func(t *testing.T) {
		ended := f.login(t, "2250002")
		f.sessions.Delete(ended.SessionID)

		w := f.get("/me", "Bearer "+ended.Token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeSessionNotFound, errorCode(t, w))
	})

	t.Run("session of another student", func(t *testing.T) {
		stolen, err := f.jwt.GenerateAccessToken("2250003")
		require.NoError(t, err)
		f.sessions.Create(stolen.SessionID, "2250004")

		w := f.get("/me", "Bearer "+stolen.Token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequestID_KeepsIncomingHeader(t *testing.T) {
	f := newAuthFixture()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}
