package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/avoronov/taskgo/internal/delivery/http/v1"
	"github.com/avoronov/taskgo/internal/models"
	"github.com/avoronov/taskgo/internal/services"
	"github.com/avoronov/taskgo/internal/storage"
)

const testSigningKey = "test-signing-key"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zerolog.Nop()
	store := storage.NewMemoryStore()
	tokens := services.NewTokenManager("taskgo-test", testSigningKey, 7*24*time.Hour)
	handler := v1.New(
		logger,
		services.NewAuthService(logger, store, tokens),
		services.NewTaskService(logger, store),
		services.NewUserService(logger, store),
		tokens,
	)

	router := gin.New()
	v1.RegisterRoutes(router, handler)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func registerUser(t *testing.T, router *gin.Engine, username, email, password string) (id, token string) {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/api/users/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.ID)
	require.NotEmpty(t, resp.Token)
	return resp.ID, resp.Token
}

func TestRootRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "API is running...", rec.Body.String())
}

func TestTaskLifecycle(t *testing.T) {
	router := newTestRouter(t)

	_, token := registerUser(t, router, "alice", "alice@x.com", "secret1")

	// Create with defaults.
	rec := doRequest(t, router, http.MethodPost, "/api/tasks", token, gin.H{"name": "Buy milk"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Desc string `json:"desc"`
		Type string `json:"type"`
	}
	decodeBody(t, rec, &created)
	assert.Equal(t, "Buy milk", created.Name)
	assert.Equal(t, models.StatusNotStarted, created.Type)
	assert.Empty(t, created.Desc)

	// List holds exactly the one task.
	rec = doRequest(t, router, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeBody(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Buy milk", listed[0].Name)

	// Partial update: only the status changes.
	rec = doRequest(t, router, http.MethodPut, "/api/tasks/"+created.ID, token, gin.H{"type": models.StatusDone})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Buy milk", updated.Name)
	assert.Equal(t, models.StatusDone, updated.Type)

	// Delete confirms.
	rec = doRequest(t, router, http.MethodDelete, "/api/tasks/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task deleted successfully.")

	// List is empty again.
	rec = doRequest(t, router, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	listed = nil
	decodeBody(t, rec, &listed)
	assert.Empty(t, listed)

	// Deleting again stays a 404 on every retry.
	rec = doRequest(t, router, http.MethodDelete, "/api/tasks/"+created.ID, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegister_MissingFields(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{name: "empty body", body: gin.H{}},
		{name: "missing username", body: gin.H{"email": "a@x.com", "password": "secret1"}},
		{name: "missing email", body: gin.H{"username": "a", "password": "secret1"}},
		{name: "missing password", body: gin.H{"username": "a", "email": "a@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/api/users/register", "", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "All fields are required.")
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "alice", "alice@x.com", "secret1")

	rec := doRequest(t, router, http.MethodPost, "/api/users/register", "", gin.H{
		"username": "second-alice",
		"email":    "alice@x.com",
		"password": "other-password",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User already exists with this email.")

	// No second user was created.
	rec = doRequest(t, router, http.MethodGet, "/api/users", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []models.PublicUser
	decodeBody(t, rec, &users)
	assert.Len(t, users, 1)
}

func TestLogin_UniformFailureMessage(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "alice", "alice@x.com", "secret1")

	wrongPassword := doRequest(t, router, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "alice@x.com",
		"password": "wrong-password",
	})
	unknownEmail := doRequest(t, router, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "nobody@x.com",
		"password": "secret1",
	})

	require.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	require.Equal(t, http.StatusBadRequest, unknownEmail.Code)

	// Textually identical bodies: no hint which factor failed.
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.NotContains(t, wrongPassword.Body.String(), "token")
}

func TestLogin_Success(t *testing.T) {
	router := newTestRouter(t)

	userID, _ := registerUser(t, router, "alice", "alice@x.com", "secret1")

	rec := doRequest(t, router, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "alice@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Token    string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, userID, resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@x.com", resp.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthGate(t *testing.T) {
	router := newTestRouter(t)

	expiredManager := services.NewTokenManager("taskgo-test", testSigningKey, -time.Hour)
	expired, _, err := expiredManager.Issue(&models.User{ID: "user-1", Username: "alice", Email: "alice@x.com"})
	require.NoError(t, err)

	forgedManager := services.NewTokenManager("taskgo-test", "another-signing-key", time.Hour)
	forged, _, err := forgedManager.Issue(&models.User{ID: "user-1", Username: "alice", Email: "alice@x.com"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "wrong scheme", header: "Basic abc123"},
		{name: "bearer without token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "forged signature", header: "Bearer " + forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestTasks_CrossUserIsolation(t *testing.T) {
	router := newTestRouter(t)

	_, aliceToken := registerUser(t, router, "alice", "alice@x.com", "secret1")
	_, bobToken := registerUser(t, router, "bob", "bob@x.com", "secret2")

	rec := doRequest(t, router, http.MethodPost, "/api/tasks", aliceToken, gin.H{"name": "Alice's task"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &created)

	// Bob's list does not contain Alice's task.
	rec = doRequest(t, router, http.MethodGet, "/api/tasks", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &listed)
	assert.Empty(t, listed)

	// Bob's update and delete see a 404, same as for an absent id.
	rec = doRequest(t, router, http.MethodPut, "/api/tasks/"+created.ID, bobToken, gin.H{"name": "stolen"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/tasks/"+created.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Alice still owns the untouched task.
	rec = doRequest(t, router, http.MethodGet, "/api/tasks", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var aliceTasks []struct {
		Name string `json:"name"`
	}
	decodeBody(t, rec, &aliceTasks)
	require.Len(t, aliceTasks, 1)
	assert.Equal(t, "Alice's task", aliceTasks[0].Name)
}

func TestCreateTask_MissingName(t *testing.T) {
	router := newTestRouter(t)

	_, token := registerUser(t, router, "alice", "alice@x.com", "secret1")

	rec := doRequest(t, router, http.MethodPost, "/api/tasks", token, gin.H{"desc": "no name"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task name is required.")
}

func TestListUsers_ExcludesPassword(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "alice", "alice@x.com", "secret1")

	// Unauthenticated by design; see HandleListUsers.
	rec := doRequest(t, router, http.MethodGet, "/api/users", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []map[string]any
	decodeBody(t, rec, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0]["username"])
	assert.NotContains(t, users[0], "password")
}
