package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-api/internal/challenge"
	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/services"
	"github.com/yukikurage/todo-api/internal/session"
	"github.com/yukikurage/todo-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	sessions    *session.Holder
	challenges  *challenge.MemoryStore
	authService *services.AuthService
	taskService *services.TaskService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.AutoMigrate(db))

	env := &testEnv{
		db:         db,
		sessions:   session.NewHolder(),
		challenges: challenge.NewMemoryStore(),
	}
	env.authService = services.NewAuthService(
		repository.NewUserRepository(db),
		env.challenges,
		env.sessions,
		utils.NewPasswordHasher(bcrypt.MinCost),
	)
	env.taskService = services.NewTaskService(repository.NewTaskRepository(db))

	env.router = gin.New()
	RegisterRoutes(env.router, NewAuthHandler(env.authService), NewTaskHandler(env.taskService), env.sessions)
	return env
}

// do sends a JSON request through the full router.
func (e *testEnv) do(t *testing.T, method, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signUp runs signup and challenge submission; the new user ends up current.
func (e *testEnv) signUp(t *testing.T, username, password string) uint64 {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/auth/signup", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var ch struct {
		ChallengeID string `json:"challengeId"`
		Num1        int    `json:"num1"`
		Num2        int    `json:"num2"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ch))

	w = e.do(t, http.MethodPost, "/api/auth/challenge/submit", map[string]any{
		"challengeId": ch.ChallengeID,
		"answer":      ch.Num1 * ch.Num2,
		"username":    username,
		"password":    password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	userID, ok := e.sessions.CurrentUser()
	require.True(t, ok)
	return userID
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
