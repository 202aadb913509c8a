package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stargazer/exercise-tracker/internal/config"
	"stargazer/exercise-tracker/internal/repository/bolt"
	"stargazer/exercise-tracker/internal/service"
	"stargazer/exercise-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

type testServer struct {
	router *gin.Engine
	store  *bolt.Store
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWithAssets(t, nil)
}

func setupTestServerWithAssets(t *testing.T, assets storage.FileStorage) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	viewsDir := filepath.Join(dir, "views")
	publicDir := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(viewsDir, 0o755))
	require.NoError(t, os.MkdirAll(publicDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(viewsDir, "index.html"), []byte("<h1>Exercise Tracker</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "style.css"), []byte("body{}"), 0o600))

	store, err := bolt.New(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	router := gin.New()
	SetupRoutes(router,
		config.ServerConfig{PublicDir: publicDir, ViewsDir: viewsDir, CORSOrigins: []string{"*"}},
		store,
		service.NewUserService(store.Users()),
		service.NewExerciseService(store.Exercises(), store.Users(), func() time.Time { return testNow }),
		assets,
	)
	return &testServer{router: router, store: store}
}

// countingRecorder counts how many times a status line is written.
type countingRecorder struct {
	*httptest.ResponseRecorder
	headerWrites int
}

func (r *countingRecorder) WriteHeader(code int) {
	r.headerWrites++
	r.ResponseRecorder.WriteHeader(code)
}

func (s *testServer) do(req *http.Request) *countingRecorder {
	w := &countingRecorder{ResponseRecorder: httptest.NewRecorder()}
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(path string) *countingRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *testServer) postForm(path string, form url.Values) *countingRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *testServer) postJSON(path string, body string) *countingRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *testServer) createUser(t *testing.T, username string) UserResponse {
	t.Helper()
	w := s.postForm("/api/exercise/new-user", url.Values{"username": {username}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var user UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func (s *testServer) addExercise(t *testing.T, form url.Values) ExerciseResponse {
	t.Helper()
	w := s.postForm("/api/exercise/add", form)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ex ExerciseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ex))
	return ex
}
