package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clubhouse/pkg/config"
	"clubhouse/pkg/handlers"
	"clubhouse/pkg/middleware"
	"clubhouse/pkg/mocks"
	"clubhouse/pkg/models"
	"clubhouse/pkg/server"
	"clubhouse/pkg/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

const testSecret = "test-secret"

func setupApp(t *testing.T) (*fiber.App, *mocks.MockPostRepository) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	repo := mocks.NewMockPostRepository()
	svc := services.NewPostService(repo, mocks.NewMockCache(), zerolog.Nop())
	posts := handlers.NewPosts(svc, zerolog.Nop())
	profile := handlers.NewProfile()

	app := server.NewApp("clubhouse-test", nil)
	api := app.Group("/api")
	api.Get("/posts", posts.List)
	api.Post("/posts", middleware.RequireAuth, posts.Create)
	api.Post("/comments", middleware.RequireAuth, posts.CreateComment)
	app.Get("/profile", middleware.RequireAuth, profile.Me)

	return app, repo
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func jsonRequest(method, target string, payload interface{}, token string) *http.Request {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func authedToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{
		"sub":      "auth0|abc123",
		"name":     "Jordan Reyes",
		"nickname": "jordan",
		"email":    "jordan@example.com",
	})
}

func TestListPostsEmpty(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(jsonRequest("GET", "/api/posts", nil, ""))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Posts []models.Post `json:"posts"`
	}
	decodeBody(t, resp, &body)
	if body.Posts == nil || len(body.Posts) != 0 {
		t.Errorf("expected empty posts array, got %v", body.Posts)
	}
}

func TestCreatePostUnauthenticated(t *testing.T) {
	app, repo := setupApp(t)

	resp, err := app.Test(jsonRequest("POST", "/api/posts", models.CreatePostRequest{Body: "hi"}, ""))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
	if len(repo.Posts) != 0 {
		t.Errorf("expected no rows written, got %d", len(repo.Posts))
	}
}

func TestCreatePostMissingContent(t *testing.T) {
	app, repo := setupApp(t)

	resp, err := app.Test(jsonRequest("POST", "/api/posts", models.CreatePostRequest{Body: "", ImageURL: ""}, authedToken(t)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["error"] != "Missing post content" {
		t.Errorf("unexpected error message %q", body["error"])
	}
	if len(repo.Posts) != 0 {
		t.Errorf("expected no rows written, got %d", len(repo.Posts))
	}
}

func TestCreatePostImageOnly(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(jsonRequest("POST", "/api/posts", models.CreatePostRequest{ImageURL: "http://x/y.png"}, authedToken(t)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		Post models.Post `json:"post"`
	}
	decodeBody(t, resp, &body)
	if body.Post.Body != "" {
		t.Errorf("expected empty body, got %q", body.Post.Body)
	}
	if body.Post.ImageURL == nil || *body.Post.ImageURL != "http://x/y.png" {
		t.Errorf("expected imageUrl set, got %v", body.Post.ImageURL)
	}
	if body.Post.Author != "Jordan Reyes" {
		t.Errorf("expected author from token name, got %q", body.Post.Author)
	}
	if body.Post.UserSub == nil || *body.Post.UserSub != "auth0|abc123" {
		t.Errorf("expected userSub from token, got %v", body.Post.UserSub)
	}
	if body.Post.Comments == nil || len(body.Post.Comments) != 0 {
		t.Errorf("expected empty comments array, got %v", body.Post.Comments)
	}
}

func TestCreatePostAuthorTruncated(t *testing.T) {
	app, _ := setupApp(t)
	token := signToken(t, jwt.MapClaims{"sub": "auth0|long", "name": strings.Repeat("z", 100)})

	resp, err := app.Test(jsonRequest("POST", "/api/posts", models.CreatePostRequest{Body: "hi"}, token))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		Post models.Post `json:"post"`
	}
	decodeBody(t, resp, &body)
	if got := len([]rune(body.Post.Author)); got != 80 {
		t.Errorf("expected author truncated to 80 runes, got %d", got)
	}
}

func TestCreateCommentFlow(t *testing.T) {
	app, repo := setupApp(t)
	token := authedToken(t)

	parent, _ := repo.InsertPost("A", nil, "parent", nil, 1000)

	resp, err := app.Test(jsonRequest("POST", "/api/comments", models.CreateCommentRequest{PostID: parent.ID, Body: "nice"}, token))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		Comment models.Comment `json:"comment"`
	}
	decodeBody(t, resp, &body)
	if body.Comment.PostID != parent.ID {
		t.Errorf("expected postId %d, got %d", parent.ID, body.Comment.PostID)
	}
	if body.Comment.Body != "nice" {
		t.Errorf("expected body preserved, got %q", body.Comment.Body)
	}
	if body.Comment.Author != "Jordan Reyes" {
		t.Errorf("expected author from token, got %q", body.Comment.Author)
	}
}

func TestCreateCommentUnknownPost(t *testing.T) {
	app, repo := setupApp(t)

	resp, err := app.Test(jsonRequest("POST", "/api/comments", models.CreateCommentRequest{PostID: 999999, Body: "hi"}, authedToken(t)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["error"] != "Post not found" {
		t.Errorf("unexpected error message %q", body["error"])
	}
	if len(repo.Comments) != 0 {
		t.Errorf("expected no rows written, got %d", len(repo.Comments))
	}
}

func TestCreateCommentMissingFields(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(jsonRequest("POST", "/api/comments", models.CreateCommentRequest{PostID: 0, Body: ""}, authedToken(t)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["error"] != "Missing postId or body" {
		t.Errorf("unexpected error message %q", body["error"])
	}
}

func TestCreatedPostAppearsFirst(t *testing.T) {
	app, repo := setupApp(t)
	token := authedToken(t)

	repo.InsertPost("A", nil, "earlier", nil, 1)

	resp, err := app.Test(jsonRequest("POST", "/api/posts", models.CreatePostRequest{Body: "latest"}, token))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var created struct {
		Post models.Post `json:"post"`
	}
	decodeBody(t, resp, &created)

	resp, err = app.Test(jsonRequest("GET", "/api/posts", nil, ""))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var list struct {
		Posts []models.Post `json:"posts"`
	}
	decodeBody(t, resp, &list)

	if len(list.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(list.Posts))
	}
	if list.Posts[0].ID != created.Post.ID {
		t.Errorf("expected freshly created post first, got id=%d", list.Posts[0].ID)
	}
	if list.Posts[0].Comments == nil {
		t.Errorf("expected comments array, got null")
	}
}

func TestProfile(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(jsonRequest("GET", "/profile", nil, ""))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonRequest("GET", "/profile", nil, authedToken(t)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		User map[string]interface{} `json:"user"`
	}
	decodeBody(t, resp, &body)
	if body.User["sub"] != "auth0|abc123" {
		t.Errorf("expected claims passed through, got %v", body.User)
	}
	if body.User["email"] != "jordan@example.com" {
		t.Errorf("expected email claim, got %v", body.User["email"])
	}
}

func TestSiteConfig(t *testing.T) {
	cfg := &config.Config{
		CloudinaryCloudName:    "demo",
		CloudinaryUploadPreset: "unsigned",
		ShopifyDomain:          "shop.example.com",
	}
	app := server.NewApp("clubhouse-test", nil)
	app.Get("/api/config", handlers.NewSiteConfig(cfg).Get)

	resp, err := app.Test(jsonRequest("GET", "/api/config", nil, ""))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["cloudName"] != "demo" || body["uploadPreset"] != "unsigned" {
		t.Errorf("unexpected cloudinary config: %v", body)
	}
	if body["shopifyToken"] != "" {
		t.Errorf("expected empty token passthrough, got %q", body["shopifyToken"])
	}
}
