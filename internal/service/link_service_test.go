package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/marketcms/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T, name string, models ...interface{}) func() {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func seedLink(t *testing.T, svc *LinkService, text, url string, sort int) db.Link {
	t.Helper()
	link, err := svc.Create(LinkInput{
		Text: strPtr(text),
		URL:  strPtr(url),
		Icon: strPtr("fa-globe"),
		Sort: intPtr(sort),
	})
	if err != nil {
		t.Fatalf("failed to seed link: %v", err)
	}
	return *link
}

func TestCreateLinkValidatesFields(t *testing.T) {
	cleanup := setupServiceTestDB(t, "link_create", &db.Link{})
	defer cleanup()

	svc := NewLinkService(db.DB)

	_, err := svc.Create(LinkInput{URL: strPtr("https://example.com"), Icon: strPtr("fa")})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validation.Message != "Текст обязателен" {
		t.Fatalf("unexpected message: %s", validation.Message)
	}

	_, err = svc.Create(LinkInput{Text: strPtr("Rutor"), URL: strPtr("ftp://bad"), Icon: strPtr("fa")})
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error for scheme, got %v", err)
	}
	if validation.Message != "Ссылка должна начинаться с http:// или https://" {
		t.Fatalf("unexpected message: %s", validation.Message)
	}
}

func TestUpdateLinkPatchesFields(t *testing.T) {
	cleanup := setupServiceTestDB(t, "link_update", &db.Link{})
	defer cleanup()

	svc := NewLinkService(db.DB)
	link := seedLink(t, svc, "Rutor", "https://example.com", 0)

	updated, err := svc.Update(link.ID, LinkInput{Text: strPtr("Telegram")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Text != "Telegram" {
		t.Fatalf("expected text to change, got %s", updated.Text)
	}
	if updated.URL != "https://example.com" {
		t.Fatalf("expected url to be preserved, got %s", updated.URL)
	}
}

func TestUpdateLinkNotFound(t *testing.T) {
	cleanup := setupServiceTestDB(t, "link_missing", &db.Link{})
	defer cleanup()

	svc := NewLinkService(db.DB)
	if _, err := svc.Update(999, LinkInput{Text: strPtr("x")}); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestReorderLinksAssignsDenseIndices(t *testing.T) {
	cleanup := setupServiceTestDB(t, "link_reorder", &db.Link{})
	defer cleanup()

	svc := NewLinkService(db.DB)
	first := seedLink(t, svc, "A", "https://a.example", 0)
	second := seedLink(t, svc, "B", "https://b.example", 1)
	third := seedLink(t, svc, "C", "https://c.example", 2)

	// 未知 id 会被跳过，不影响其余排序
	if err := svc.Reorder([]uint{third.ID, 999, first.ID, second.ID}); err != nil {
		t.Fatalf("Reorder returned error: %v", err)
	}

	links, err := svc.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(links))
	}
	if links[0].ID != third.ID || links[1].ID != first.ID || links[2].ID != second.ID {
		t.Fatalf("unexpected order: %d %d %d", links[0].ID, links[1].ID, links[2].ID)
	}
	for i, link := range links {
		if link.Sort != i {
			t.Fatalf("expected dense sort index %d, got %d", i, link.Sort)
		}
	}
}

func TestDeleteLinkRemovesRecord(t *testing.T) {
	cleanup := setupServiceTestDB(t, "link_delete", &db.Link{})
	defer cleanup()

	svc := NewLinkService(db.DB)
	link := seedLink(t, svc, "A", "https://a.example", 0)

	if err := svc.Delete(link.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(link.ID); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound on second delete, got %v", err)
	}
}
