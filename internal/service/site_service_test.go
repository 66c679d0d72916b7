package service

import (
	"errors"
	"testing"

	"github.com/marketcms/internal/db"
)

func TestSiteIconUpsert(t *testing.T) {
	cleanup := setupServiceTestDB(t, "site_icon", &db.SiteIcon{})
	defer cleanup()

	svc := NewSiteService(db.DB)

	if _, err := svc.GetSiteIcon(); !errors.Is(err, ErrSiteIconNotFound) {
		t.Fatalf("expected ErrSiteIconNotFound, got %v", err)
	}

	if _, err := svc.UpdateSiteIcon("/uploads/site/icon.png"); err != nil {
		t.Fatalf("UpdateSiteIcon returned error: %v", err)
	}
	if _, err := svc.UpdateSiteIcon("/uploads/site/icon2.png"); err != nil {
		t.Fatalf("second UpdateSiteIcon returned error: %v", err)
	}

	icon, err := svc.GetSiteIcon()
	if err != nil {
		t.Fatalf("GetSiteIcon returned error: %v", err)
	}
	if icon.IconPath != "/uploads/site/icon2.png" {
		t.Fatalf("unexpected icon path: %s", icon.IconPath)
	}

	var count int64
	db.DB.Model(&db.SiteIcon{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected single icon row, got %d", count)
	}
}

func TestUpdateSiteIconRequiresPath(t *testing.T) {
	cleanup := setupServiceTestDB(t, "site_icon_empty", &db.SiteIcon{})
	defer cleanup()

	svc := NewSiteService(db.DB)
	_, err := svc.UpdateSiteIcon("   ")
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validation.Message != "Путь к иконке обязателен" {
		t.Fatalf("unexpected message: %s", validation.Message)
	}
}

func TestButtonLinkValidation(t *testing.T) {
	cleanup := setupServiceTestDB(t, "button_links", &db.IntroButtonLink{}, &db.ContactButtonLink{})
	defer cleanup()

	svc := NewSiteService(db.DB)

	for _, valid := range []string{"#about", "/page", "http://a.example", "https://a.example"} {
		if _, err := svc.UpdateIntroLink(valid); err != nil {
			t.Fatalf("expected %q to be accepted, got %v", valid, err)
		}
	}

	_, err := svc.UpdateContactLink("mailto:admin@example.com")
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validation.Message != "Ссылка должна начинаться с #, http://, https:// или /" {
		t.Fatalf("unexpected message: %s", validation.Message)
	}

	_, err = svc.UpdateContactLink("")
	if !errors.As(err, &validation) || validation.Message != "Ссылка обязательна" {
		t.Fatalf("expected required-link validation, got %v", err)
	}
}

func TestIntroBackgroundUpsert(t *testing.T) {
	cleanup := setupServiceTestDB(t, "intro_bg", &db.IntroBackground{})
	defer cleanup()

	svc := NewSiteService(db.DB)

	if _, err := svc.GetIntroBackground(); !errors.Is(err, ErrIntroBackgroundNotFound) {
		t.Fatalf("expected ErrIntroBackgroundNotFound, got %v", err)
	}

	if _, err := svc.SetIntroBackground("/uploads/main/bg.png", db.BackgroundTypeImage); err != nil {
		t.Fatalf("SetIntroBackground returned error: %v", err)
	}
	background, err := svc.SetIntroBackground("/uploads/video/bg.mp4", db.BackgroundTypeVideo)
	if err != nil {
		t.Fatalf("second SetIntroBackground returned error: %v", err)
	}
	if background.BackgroundType != db.BackgroundTypeVideo {
		t.Fatalf("unexpected background type: %s", background.BackgroundType)
	}

	var count int64
	db.DB.Model(&db.IntroBackground{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected single background row, got %d", count)
	}
}
