package db

import "gorm.io/gorm"

// ChatBotSettings 保存聊天机器人集成所需的 API Token 与系统预设文本。
type ChatBotSettings struct {
	gorm.Model
	Token  string `gorm:"size:500"`
	Preset string `gorm:"type:text"`
}

// TableName 与历史数据库保持一致。
func (ChatBotSettings) TableName() string {
	return "chat_bot_settings"
}

// DefaultUmamiWebsiteID 为统计服务的默认站点标识。
const DefaultUmamiWebsiteID = "6ea99ce5-33ba-4d44-809a-76f429b7e221"

// UmamiSettings 保存统计服务的 API Key 与站点 ID。
type UmamiSettings struct {
	gorm.Model
	APIKey    string `gorm:"size:500"`
	WebsiteID string `gorm:"size:100"`
}

// TableName 与历史数据库保持一致。
func (UmamiSettings) TableName() string {
	return "umami_settings"
}
