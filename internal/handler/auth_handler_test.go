package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/marketcms/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubHTMLRender struct{}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	return &stubHTMLInstance{name: name, data: data}
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const testAdminPassword = "admin123"

func setupTestAPI(t *testing.T) (*API, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.SiteIcon{}, &db.IntroButtonLink{}, &db.ContactButtonLink{}, &db.IntroBackground{},
		&db.Link{}, &db.WorkCard{},
		&db.CalculatorSettings{}, &db.CalculatorCity{}, &db.CalculatorCityProduct{},
		&db.ChatBotSettings{}, &db.UmamiSettings{},
		&db.SupportRequest{},
		&db.PageContent{}, &db.PageProduct{},
		&db.PromotionsPage{}, &db.PromotionProduct{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	api, err := NewAPI(gdb, t.TempDir(), t.TempDir(), testAdminPassword)
	if err != nil {
		t.Fatalf("failed to build api: %v", err)
	}

	return api, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

// newSessionRouter 挂载会话中间件与 HTML 桩渲染器，供认证相关测试使用。
func newSessionRouter(api *API) *gin.Engine {
	r := gin.New()
	r.HTMLRender = &stubHTMLRender{}
	r.Use(sessions.Sessions("marketcms_session", cookie.NewStore([]byte("test-secret"))))

	r.GET("/admin/login", api.ShowLoginPage)
	r.POST("/admin/login", api.Login)
	r.GET("/admin/logout", api.Logout)

	authorized := r.Group("/admin", AuthRequired())
	authorized.GET("/panel", api.ShowAdminPanel)
	authorized.GET("/api/links", api.ListLinks)

	return r
}

func postLoginForm(t *testing.T, r *gin.Engine, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginEstablishesSession(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	r := newSessionRouter(api)

	w := postLoginForm(t, r, testAdminPassword)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after login, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/panel" {
		t.Fatalf("unexpected redirect target %s", loc)
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/links", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected authorized request to pass, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	r := newSessionRouter(api)

	w := postLoginForm(t, r, "wrong")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}
}

func TestAuthRequiredReturnsJSONForAPIPaths(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	r := newSessionRouter(api)

	req := httptest.NewRequest(http.MethodGet, "/admin/api/links", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON body, got %s", w.Body.String())
	}
	if body["success"] != false || body["message"] != "Требуется авторизация" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestAuthRequiredRedirectsPagePaths(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	r := newSessionRouter(api)

	req := httptest.NewRequest(http.MethodGet, "/admin/panel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect without session, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/login" {
		t.Fatalf("unexpected redirect target %s", loc)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	r := newSessionRouter(api)

	login := postLoginForm(t, r, testAdminPassword)
	cookies := login.Result().Cookies()

	req := httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after logout, got %d", w.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/admin/api/links", nil)
	for _, c := range w.Result().Cookies() {
		req2.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w2.Code)
	}
}
