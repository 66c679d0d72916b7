package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marketcms/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrSiteIconNotFound 表示站点图标尚未设置。
	ErrSiteIconNotFound = errors.New("site icon not found")
	// ErrIntroLinkNotFound 表示首屏按钮链接尚未设置。
	ErrIntroLinkNotFound = errors.New("intro button link not found")
	// ErrContactLinkNotFound 表示联系按钮链接尚未设置。
	ErrContactLinkNotFound = errors.New("contact button link not found")
	// ErrIntroBackgroundNotFound 表示首屏背景尚未设置。
	ErrIntroBackgroundNotFound = errors.New("intro background not found")
)

// SiteService 维护站点级单例内容：favicon、首屏按钮链接与背景。
// 每张表最多一行，写入采用“不存在则创建”的 upsert 语义。
type SiteService struct {
	db *gorm.DB
}

// NewSiteService 构造 SiteService
func NewSiteService(gdb *gorm.DB) *SiteService {
	return &SiteService{db: gdb}
}

// GetSiteIcon 返回当前站点图标
func (s *SiteService) GetSiteIcon() (*db.SiteIcon, error) {
	var icon db.SiteIcon
	if err := s.db.First(&icon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteIconNotFound
		}
		return nil, fmt.Errorf("get site icon: %w", err)
	}
	return &icon, nil
}

// UpdateSiteIcon 设置站点图标路径
func (s *SiteService) UpdateSiteIcon(iconPath string) (*db.SiteIcon, error) {
	path := strings.TrimSpace(iconPath)
	if path == "" {
		return nil, invalid("Путь к иконке обязателен")
	}

	var icon db.SiteIcon
	err := s.db.First(&icon).Error
	switch {
	case err == nil:
		icon.IconPath = path
		if err := s.db.Save(&icon).Error; err != nil {
			return nil, fmt.Errorf("update site icon: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		icon = db.SiteIcon{IconPath: path}
		if err := s.db.Create(&icon).Error; err != nil {
			return nil, fmt.Errorf("create site icon: %w", err)
		}
	default:
		return nil, fmt.Errorf("find site icon: %w", err)
	}

	return &icon, nil
}

// GetIntroLink 返回"Подробнее"按钮链接
func (s *SiteService) GetIntroLink() (*db.IntroButtonLink, error) {
	var link db.IntroButtonLink
	if err := s.db.First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntroLinkNotFound
		}
		return nil, fmt.Errorf("get intro button link: %w", err)
	}
	return &link, nil
}

// UpdateIntroLink 设置"Подробнее"按钮链接
func (s *SiteService) UpdateIntroLink(link string) (*db.IntroButtonLink, error) {
	value, err := validateButtonLink(link)
	if err != nil {
		return nil, err
	}

	var record db.IntroButtonLink
	findErr := s.db.First(&record).Error
	switch {
	case findErr == nil:
		record.Link = value
		if err := s.db.Save(&record).Error; err != nil {
			return nil, fmt.Errorf("update intro button link: %w", err)
		}
	case errors.Is(findErr, gorm.ErrRecordNotFound):
		record = db.IntroButtonLink{Link: value}
		if err := s.db.Create(&record).Error; err != nil {
			return nil, fmt.Errorf("create intro button link: %w", err)
		}
	default:
		return nil, fmt.Errorf("find intro button link: %w", findErr)
	}

	return &record, nil
}

// GetContactLink 返回"Вступить в команду"按钮链接
func (s *SiteService) GetContactLink() (*db.ContactButtonLink, error) {
	var link db.ContactButtonLink
	if err := s.db.First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactLinkNotFound
		}
		return nil, fmt.Errorf("get contact button link: %w", err)
	}
	return &link, nil
}

// UpdateContactLink 设置"Вступить в команду"按钮链接
func (s *SiteService) UpdateContactLink(link string) (*db.ContactButtonLink, error) {
	value, err := validateButtonLink(link)
	if err != nil {
		return nil, err
	}

	var record db.ContactButtonLink
	findErr := s.db.First(&record).Error
	switch {
	case findErr == nil:
		record.Link = value
		if err := s.db.Save(&record).Error; err != nil {
			return nil, fmt.Errorf("update contact button link: %w", err)
		}
	case errors.Is(findErr, gorm.ErrRecordNotFound):
		record = db.ContactButtonLink{Link: value}
		if err := s.db.Create(&record).Error; err != nil {
			return nil, fmt.Errorf("create contact button link: %w", err)
		}
	default:
		return nil, fmt.Errorf("find contact button link: %w", findErr)
	}

	return &record, nil
}

// GetIntroBackground 返回首屏背景
func (s *SiteService) GetIntroBackground() (*db.IntroBackground, error) {
	var bg db.IntroBackground
	if err := s.db.First(&bg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntroBackgroundNotFound
		}
		return nil, fmt.Errorf("get intro background: %w", err)
	}
	return &bg, nil
}

// SetIntroBackground 设置首屏背景的路径与类型
func (s *SiteService) SetIntroBackground(path, backgroundType string) (*db.IntroBackground, error) {
	if backgroundType != db.BackgroundTypeImage && backgroundType != db.BackgroundTypeVideo {
		return nil, invalid("Недопустимый тип фона")
	}

	var bg db.IntroBackground
	err := s.db.First(&bg).Error
	switch {
	case err == nil:
		bg.BackgroundPath = path
		bg.BackgroundType = backgroundType
		if err := s.db.Save(&bg).Error; err != nil {
			return nil, fmt.Errorf("update intro background: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		bg = db.IntroBackground{BackgroundPath: path, BackgroundType: backgroundType}
		if err := s.db.Create(&bg).Error; err != nil {
			return nil, fmt.Errorf("create intro background: %w", err)
		}
	default:
		return nil, fmt.Errorf("find intro background: %w", err)
	}

	return &bg, nil
}

func validateButtonLink(link string) (string, error) {
	value := strings.TrimSpace(link)
	if value == "" {
		return "", invalid("Ссылка обязательна")
	}
	if !strings.HasPrefix(value, "#") &&
		!strings.HasPrefix(value, "http://") &&
		!strings.HasPrefix(value, "https://") &&
		!strings.HasPrefix(value, "/") {
		return "", invalid("Ссылка должна начинаться с #, http://, https:// или /")
	}
	return value, nil
}
