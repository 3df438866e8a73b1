package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires a Server against an in-memory database. The
// Prometheus middleware and Redis stay nil so tests need no external
// processes.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postLikeRepo := repository.NewPostLikeRepository(db)
	commentLikeRepo := repository.NewCommentLikeRepository(db)

	s := &Server{
		config:          &config.Config{JWTSecret: "test_secret"},
		db:              db,
		userRepo:        userRepo,
		postRepo:        postRepo,
		commentRepo:     commentRepo,
		followRepo:      followRepo,
		postLikeRepo:    postLikeRepo,
		commentLikeRepo: commentLikeRepo,
	}
	s.userService = service.NewUserService(userRepo)
	s.postService = service.NewPostService(postRepo, followRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo)
	s.followService = service.NewFollowService(followRepo, userRepo)
	s.postLikeService = service.NewPostLikeService(postLikeRepo, postRepo)
	s.commentLikeService = service.NewCommentLikeService(commentLikeRepo, commentRepo)
	return s
}

// newTestApp registers the full route table on a bare Fiber app.
func newTestApp(s *Server) *fiber.App {
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

// createUser inserts an account directly and returns it. The password
// is "Password123!@" for every test user.
func createUser(t *testing.T, s *Server, loginID string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!@"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		LoginID:  loginID,
		Username: loginID,
		Email:    loginID + "@example.com",
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

// loginAs issues a real token pair for the user through the handler stack.
func loginAs(t *testing.T, s *Server, app *fiber.App, loginID string) tokenPair {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"login_id": loginID,
		"password": "Password123!@",
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pair tokenPair
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pair))
	require.NotEmpty(t, pair.AccessToken)
	return pair
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func decodeInto(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
