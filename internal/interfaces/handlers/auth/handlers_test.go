package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	authsvc "agricycle-backend/internal/application/auth"
	"agricycle-backend/internal/middleware"
	"agricycle-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthApp(t *testing.T, rdb *redis.Client) (*fiber.App, *authsvc.Service) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	tokens := &authsvc.TokenService{Secret: []byte("test-secret"), Rdb: rdb}
	svc := &authsvc.Service{DB: db, Tokens: tokens}
	h := &Handlers{Service: svc}

	app := fiber.New()
	group := app.Group("/api/auth")
	group.Post("/register", h.Register)
	group.Post("/login", h.Login)
	group.Get("/me", middleware.RequireAuth(tokens), h.Me)
	group.Post("/logout", middleware.RequireAuth(tokens), h.Logout)
	return app, svc
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]interface{}) (*http.Response, map[string]interface{}) {
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Asha Raman",
		"email":    "asha@example.com",
		"password": "secret1",
		"role":     "farmer",
		"phone":    "555-0101",
	}
}

func TestRegister_Created(t *testing.T) {
	app, svc := setupAuthApp(t, nil)

	resp, body := postJSON(t, app, "/api/auth/register", registerBody())
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	token := data["token"].(string)
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "farmer", user["role"])
	assert.Equal(t, "asha@example.com", user["email"])

	// Token decodes back to the same account id and role.
	claims, err := svc.Tokens.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(user["id"].(float64)), claims.UserID)
	assert.Equal(t, "farmer", claims.Role)
}

func TestRegister_AdminRejected(t *testing.T) {
	app, svc := setupAuthApp(t, nil)

	body := registerBody()
	body["role"] = "admin"
	resp, out := postJSON(t, app, "/api/auth/register", body)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Admin registration is not allowed", out["message"])

	var n int64
	require.NoError(t, svc.DB.Model(&models.User{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestRegister_MissingField(t *testing.T) {
	app, _ := setupAuthApp(t, nil)

	body := registerBody()
	delete(body, "password")
	resp, out := postJSON(t, app, "/api/auth/register", body)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, false, out["success"])
}

func TestRegister_Duplicate(t *testing.T) {
	app, svc := setupAuthApp(t, nil)

	resp, _ := postJSON(t, app, "/api/auth/register", registerBody())
	require.Equal(t, 201, resp.StatusCode)
	resp, out := postJSON(t, app, "/api/auth/register", registerBody())
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "User already exists", out["message"])

	var n int64
	require.NoError(t, svc.DB.Model(&models.User{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestLogin_NonEnumerable(t *testing.T) {
	app, _ := setupAuthApp(t, nil)
	_, _ = postJSON(t, app, "/api/auth/register", registerBody())

	respWrong, outWrong := postJSON(t, app, "/api/auth/login", map[string]interface{}{
		"email": "asha@example.com", "password": "wrong-pass",
	})
	respNone, outNone := postJSON(t, app, "/api/auth/login", map[string]interface{}{
		"email": "nobody@example.com", "password": "secret1",
	})
	assert.Equal(t, 401, respWrong.StatusCode)
	assert.Equal(t, 401, respNone.StatusCode)
	assert.Equal(t, outWrong["message"], outNone["message"])
}

func TestLogin_Success(t *testing.T) {
	app, _ := setupAuthApp(t, nil)
	_, _ = postJSON(t, app, "/api/auth/register", registerBody())

	resp, out := postJSON(t, app, "/api/auth/login", map[string]interface{}{
		"email": "asha@example.com", "password": "secret1",
	})
	assert.Equal(t, 200, resp.StatusCode)
	data := out["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
}

func TestMe(t *testing.T) {
	app, _ := setupAuthApp(t, nil)
	_, reg := postJSON(t, app, "/api/auth/register", registerBody())
	token := reg["data"].(map[string]interface{})["token"].(string)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	out := decodeBody(t, resp)
	user := out["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "asha@example.com", user["email"])
}

func TestMe_NoToken(t *testing.T) {
	app, _ := setupAuthApp(t, nil)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestLogout_RevokesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app, _ := setupAuthApp(t, rdb)

	_, reg := postJSON(t, app, "/api/auth/register", registerBody())
	token := reg["data"].(map[string]interface{})["token"].(string)

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// The denylisted token no longer authenticates.
	req = httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
