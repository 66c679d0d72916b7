package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marketcms/internal/db"
)

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func runHandler(req *http.Request, params gin.Params, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	handler(c)
	return w
}

func TestCreateLink(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	req := jsonRequest(t, http.MethodPost, "/admin/api/links", map[string]interface{}{
		"text": "Telegram",
		"url":  "https://t.me/example",
		"icon": "/uploads/icons/tg.png",
	})
	w := runHandler(req, nil, api.CreateLink)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.DB.Model(&db.Link{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count links: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one link row, got %d", count)
	}
	if !strings.Contains(w.Body.String(), "Ссылка успешно создана") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestCreateLinkRejectsMissingFields(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	req := jsonRequest(t, http.MethodPost, "/admin/api/links", map[string]interface{}{
		"text": "Telegram",
	})
	w := runHandler(req, nil, api.CreateLink)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.DB.Model(&db.Link{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows after rejected create, got %d", count)
	}
}

func TestUpdateLinkNotFound(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	req := jsonRequest(t, http.MethodPut, "/admin/api/links/99", map[string]interface{}{
		"text": "new",
	})
	w := runHandler(req, gin.Params{{Key: "id", Value: "99"}}, api.UpdateLink)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Ссылка не найдена") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestUpdateLinkRejectsBadID(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	req := jsonRequest(t, http.MethodPut, "/admin/api/links/abc", map[string]interface{}{})
	w := runHandler(req, gin.Params{{Key: "id", Value: "abc"}}, api.UpdateLink)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", w.Code)
	}
}

func TestReorderLinks(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	for _, text := range []string{"a", "b", "c"} {
		if err := db.DB.Create(&db.Link{Text: text, URL: "https://example.com/" + text}).Error; err != nil {
			t.Fatalf("failed to seed link: %v", err)
		}
	}

	req := jsonRequest(t, http.MethodPost, "/admin/api/links/reorder", map[string]interface{}{
		"order": []uint{3, 1, 2},
	})
	w := runHandler(req, nil, api.ReorderLinks)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var links []db.Link
	if err := db.DB.Order("sort ASC").Find(&links).Error; err != nil {
		t.Fatalf("failed to load links: %v", err)
	}
	if links[0].Text != "c" || links[1].Text != "a" || links[2].Text != "b" {
		t.Fatalf("unexpected order: %s %s %s", links[0].Text, links[1].Text, links[2].Text)
	}
}
