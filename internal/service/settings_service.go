package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marketcms/internal/db"
	"gorm.io/gorm"
)

// SettingsService 管理聊天机器人与 Umami 统计的接入配置。
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService 构造 SettingsService
func NewSettingsService(gdb *gorm.DB) *SettingsService {
	return &SettingsService{db: gdb}
}

// ChatBotInput 描述聊天机器人配置的更新请求。
type ChatBotInput struct {
	Token  *string
	Preset *string
}

// UmamiInput 描述 Umami 配置的更新请求，APIKey 为空串时保留旧值。
type UmamiInput struct {
	APIKey    *string
	WebsiteID *string
}

// GetChatBot 返回聊天机器人配置，不存在时返回零值记录。
func (s *SettingsService) GetChatBot() (db.ChatBotSettings, error) {
	var settings db.ChatBotSettings
	if err := s.db.First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.ChatBotSettings{}, nil
		}
		return db.ChatBotSettings{}, fmt.Errorf("get chat bot settings: %w", err)
	}
	return settings, nil
}

// UpdateChatBot 按给定字段更新聊天机器人配置，缺省字段保持不变。
func (s *SettingsService) UpdateChatBot(input ChatBotInput) (db.ChatBotSettings, error) {
	var settings db.ChatBotSettings
	err := s.db.First(&settings).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return db.ChatBotSettings{}, fmt.Errorf("get chat bot settings: %w", err)
	}

	if input.Token != nil {
		settings.Token = strings.TrimSpace(*input.Token)
	}
	if input.Preset != nil {
		settings.Preset = *input.Preset
	}

	if err := s.db.Save(&settings).Error; err != nil {
		return db.ChatBotSettings{}, fmt.Errorf("save chat bot settings: %w", err)
	}
	return settings, nil
}

// GetUmami 返回 Umami 配置，不存在时给出默认站点 ID。
func (s *SettingsService) GetUmami() (db.UmamiSettings, error) {
	var settings db.UmamiSettings
	if err := s.db.First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.UmamiSettings{WebsiteID: db.DefaultUmamiWebsiteID}, nil
		}
		return db.UmamiSettings{}, fmt.Errorf("get umami settings: %w", err)
	}
	if settings.WebsiteID == "" {
		settings.WebsiteID = db.DefaultUmamiWebsiteID
	}
	return settings, nil
}

// UpdateUmami 更新 Umami 配置。APIKey 仅在提交非空值时覆盖，避免表单回显时误清空。
func (s *SettingsService) UpdateUmami(input UmamiInput) (db.UmamiSettings, error) {
	var settings db.UmamiSettings
	err := s.db.First(&settings).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return db.UmamiSettings{}, fmt.Errorf("get umami settings: %w", err)
	}

	if input.APIKey != nil {
		if key := strings.TrimSpace(*input.APIKey); key != "" {
			settings.APIKey = key
		}
	}
	if input.WebsiteID != nil {
		settings.WebsiteID = strings.TrimSpace(*input.WebsiteID)
	}
	if settings.WebsiteID == "" {
		settings.WebsiteID = db.DefaultUmamiWebsiteID
	}

	if err := s.db.Save(&settings).Error; err != nil {
		return db.UmamiSettings{}, fmt.Errorf("save umami settings: %w", err)
	}
	return settings, nil
}
