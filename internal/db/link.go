package db

import "gorm.io/gorm"

// Link 定义首页展示的外部链接
// Sort 仅用于前台展示顺序，不要求连续
type Link struct {
	gorm.Model
	Text string `gorm:"size:200;not null"`
	URL  string `gorm:"size:500;not null"`
	Icon string `gorm:"size:500;not null"`
	Sort int    `gorm:"default:0"`
}
