package service

import (
	"testing"

	"github.com/marketcms/internal/db"
)

func TestChatBotSettingsUpsert(t *testing.T) {
	cleanup := setupServiceTestDB(t, "settings_chatbot", &db.ChatBotSettings{})
	defer cleanup()

	svc := NewSettingsService(db.DB)

	settings, err := svc.GetChatBot()
	if err != nil {
		t.Fatalf("GetChatBot returned error: %v", err)
	}
	if settings.Token != "" || settings.Preset != "" {
		t.Fatalf("expected empty settings, got %+v", settings)
	}

	if _, err := svc.UpdateChatBot(ChatBotInput{Token: strPtr(" sk-test "), Preset: strPtr("Ты помощник")}); err != nil {
		t.Fatalf("UpdateChatBot returned error: %v", err)
	}

	// 仅更新 preset 时 token 保持不变
	updated, err := svc.UpdateChatBot(ChatBotInput{Preset: strPtr("Новый пресет")})
	if err != nil {
		t.Fatalf("second UpdateChatBot returned error: %v", err)
	}
	if updated.Token != "sk-test" {
		t.Fatalf("expected token to be preserved and trimmed, got %q", updated.Token)
	}
	if updated.Preset != "Новый пресет" {
		t.Fatalf("unexpected preset: %q", updated.Preset)
	}

	var count int64
	db.DB.Model(&db.ChatBotSettings{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected single settings row, got %d", count)
	}
}

func TestUmamiSettingsDefaultsAndKeyPreservation(t *testing.T) {
	cleanup := setupServiceTestDB(t, "settings_umami", &db.UmamiSettings{})
	defer cleanup()

	svc := NewSettingsService(db.DB)

	settings, err := svc.GetUmami()
	if err != nil {
		t.Fatalf("GetUmami returned error: %v", err)
	}
	if settings.WebsiteID != db.DefaultUmamiWebsiteID {
		t.Fatalf("expected default website id, got %q", settings.WebsiteID)
	}

	if _, err := svc.UpdateUmami(UmamiInput{APIKey: strPtr("api-key-1"), WebsiteID: strPtr("custom-site")}); err != nil {
		t.Fatalf("UpdateUmami returned error: %v", err)
	}

	// 表单回显提交空 api_key 时保留旧密钥
	updated, err := svc.UpdateUmami(UmamiInput{APIKey: strPtr(""), WebsiteID: strPtr("")})
	if err != nil {
		t.Fatalf("second UpdateUmami returned error: %v", err)
	}
	if updated.APIKey != "api-key-1" {
		t.Fatalf("expected api key to be preserved, got %q", updated.APIKey)
	}
	if updated.WebsiteID != db.DefaultUmamiWebsiteID {
		t.Fatalf("expected empty website id to fall back to default, got %q", updated.WebsiteID)
	}
}
