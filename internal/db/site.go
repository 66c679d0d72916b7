package db

import "gorm.io/gorm"

// SiteIcon 保存站点 favicon 的路径，最多只应存在一行。
type SiteIcon struct {
	gorm.Model
	IconPath string `gorm:"size:500;not null"`
}

// IntroButtonLink 保存首屏"Подробнее"按钮的跳转地址。
type IntroButtonLink struct {
	gorm.Model
	Link string `gorm:"size:500;not null"`
}

// ContactButtonLink 保存"Вступить в команду"按钮的跳转地址。
type ContactButtonLink struct {
	gorm.Model
	Link string `gorm:"size:500;not null"`
}

// TableName 与历史数据库保持一致。
func (ContactButtonLink) TableName() string {
	return "contact_us_button_links"
}

const (
	// BackgroundTypeImage 表示首屏背景为图片。
	BackgroundTypeImage = "image"
	// BackgroundTypeVideo 表示首屏背景为视频。
	BackgroundTypeVideo = "video"
)

// IntroBackground 保存首屏背景的路径与类型（image|video）。
type IntroBackground struct {
	gorm.Model
	BackgroundPath string `gorm:"size:500;not null"`
	BackgroundType string `gorm:"size:20;not null"`
}
