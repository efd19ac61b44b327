package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"employee-management-service/internal/app/middleware"
	"employee-management-service/internal/domain/models"
	"employee-management-service/internal/domain/services"
	"employee-management-service/internal/domain/services/container"
	"employee-management-service/internal/infrastructure/config"
	"employee-management-service/pkg/utils"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.Employee{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hash, err := utils.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := db.Create(&models.Admin{
		Username: "admin",
		Email:    "admin@example.com",
		Password: hash,
		IsActive: true,
	}).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	cfg := &config.Config{
		JWTSecretKey:    "router-test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		DefaultPageSize: 10,
		MaxPageSize:     100,
		UploadDir:       t.TempDir(),
		MaxUploadSize:   2 * 1024 * 1024,
	}

	sc := container.NewServiceContainer(db, cfg, nil)
	middleware.InitAuthMiddleware(cfg, db, sc.GetService("token_store").(services.InterfaceTokenStore))

	r := gin.New()
	registerRoutes(r, sc, nil)
	return r, cfg
}

type envelope struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

// doJSON performs a request with a per-test client IP so the rate limit
// buckets of different tests stay independent.
func doJSON(t *testing.T, r *gin.Engine, method, path, token, ip string, payload interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.RemoteAddr = ip + ":12345"
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func login(t *testing.T, r *gin.Engine, ip string) (string, string) {
	t.Helper()
	rec, env := doJSON(t, r, http.MethodPost, "/api/auth/login", "", ip, gin.H{
		"username_or_email": "admin",
		"password":          "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return env.Data["access_token"].(string), env.Data["refresh_token"].(string)
}

func validEmployee(email string) gin.H {
	return gin.H{
		"name":       "Jane Smith",
		"email":      email,
		"department": "Engineering",
		"position":   "Backend Engineer",
		"salary":     72500.50,
		"hire_date":  "2023-04-17",
	}
}

func TestRoutesRequireAuth(t *testing.T) {
	r, _ := setupTestRouter(t)
	ip := "10.1.0.1"

	for _, path := range []string{"/api/employees", "/api/employees/stats", "/api/auth/profile"} {
		rec, _ := doJSON(t, r, http.MethodGet, path, "", ip, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("GET %s without token: %d", path, rec.Code)
		}
	}

	rec, _ := doJSON(t, r, http.MethodGet, "/api/employees", "not-a-token", ip, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: %d", rec.Code)
	}

	// ping needs no token
	rec, _ = doJSON(t, r, http.MethodGet, "/api/ping", "", ip, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ping: %d", rec.Code)
	}
}

func TestLoginAndProfile(t *testing.T) {
	r, _ := setupTestRouter(t)
	ip := "10.1.0.2"

	rec, _ := doJSON(t, r, http.MethodPost, "/api/auth/login", "", ip, gin.H{
		"username_or_email": "admin",
		"password":          "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: %d", rec.Code)
	}

	token, refresh := login(t, r, ip)

	rec, env := doJSON(t, r, http.MethodGet, "/api/auth/profile", token, ip, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: %d %s", rec.Code, rec.Body.String())
	}
	if env.Data["username"] != "admin" {
		t.Fatalf("profile data: %v", env.Data)
	}

	rec, env = doJSON(t, r, http.MethodPost, "/api/auth/refresh", "", ip, gin.H{"refresh_token": refresh})
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: %d %s", rec.Code, rec.Body.String())
	}
	if env.Data["access_token"] == "" {
		t.Fatal("no access token from refresh")
	}

	rec, _ = doJSON(t, r, http.MethodPost, "/api/auth/logout", token, ip, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: %d", rec.Code)
	}

	// the revoked token no longer works
	rec, _ = doJSON(t, r, http.MethodGet, "/api/auth/profile", token, ip, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token still accepted: %d", rec.Code)
	}
}

func TestEmployeeLifecycleOverHTTP(t *testing.T) {
	r, _ := setupTestRouter(t)
	ip := "10.1.0.3"
	token, _ := login(t, r, ip)

	// validation failures are itemized
	rec, env := doJSON(t, r, http.MethodPost, "/api/employees", token, ip, gin.H{"name": "X"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid create: %d %s", rec.Code, rec.Body.String())
	}
	if env.Data["errors"] == nil {
		t.Fatalf("no itemized errors: %s", rec.Body.String())
	}

	rec, env = doJSON(t, r, http.MethodPost, "/api/employees", token, ip, validEmployee("jane@example.com"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	id := int(env.Data["id"].(float64))

	rec, _ = doJSON(t, r, http.MethodPost, "/api/employees", token, ip, validEmployee("jane@example.com"))
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate email: %d %s", rec.Code, rec.Body.String())
	}

	rec, env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/employees/%d", id), token, ip, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: %d %s", rec.Code, rec.Body.String())
	}
	if env.Data["hire_date"] != "2023-04-17" {
		t.Fatalf("hire_date formatting: %v", env.Data["hire_date"])
	}

	rec, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/employees/%d", id), token, ip, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/employees/%d", id), token, ip, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %d", rec.Code)
	}

	rec, env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/employees/%d?include_deleted=true", id), token, ip, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get deleted with include_deleted: %d", rec.Code)
	}
	if env.Data["is_deleted"] != true {
		t.Fatalf("is_deleted missing: %v", env.Data)
	}

	rec, env = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/employees/%d/restore", id), token, ip, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("restore: %d %s", rec.Code, rec.Body.String())
	}
	if env.Data["status"] != "Active" {
		t.Fatalf("restored status: %v", env.Data["status"])
	}

	rec, env = doJSON(t, r, http.MethodGet, "/api/employees/stats", token, ip, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: %d %s", rec.Code, rec.Body.String())
	}
	if env.Data["total_employees"].(float64) != 1 {
		t.Fatalf("stats payload: %v", env.Data)
	}
}

func uploadRequest(t *testing.T, path, token, ip, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.RemoteAddr = ip + ":12345"
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestProfilePictureOverHTTP(t *testing.T) {
	r, _ := setupTestRouter(t)
	ip := "10.1.0.4"
	token, _ := login(t, r, ip)

	_, env := doJSON(t, r, http.MethodPost, "/api/employees", token, ip, validEmployee("pic@example.com"))
	id := int(env.Data["id"].(float64))
	picturePath := fmt.Sprintf("/api/employees/%d/profile-picture", id)
	uploadPath := fmt.Sprintf("/api/employees/%d/upload-profile", id)

	// no picture yet
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, picturePath, nil)
	req.RemoteAddr = ip + ":12345"
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("picture before upload: %d", rec.Code)
	}

	// text uploads are rejected
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, uploadPath, token, ip, "notes.txt", []byte("plain text")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("text upload: %d %s", rec.Code, rec.Body.String())
	}

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, uploadPath, token, ip, "portrait.png", pngBuf.Bytes()))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload: %d %s", rec.Code, rec.Body.String())
	}

	// the picture and its thumbnail are publicly readable
	for _, suffix := range []string{"", "?thumbnail=true"} {
		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, picturePath+suffix, nil)
		req.RemoteAddr = ip + ":12345"
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("fetch %q: %d", suffix, rec.Code)
		}
	}
}
