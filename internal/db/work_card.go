package db

import "gorm.io/gorm"

// WorkCard 定义"Работа"区块的卡片
type WorkCard struct {
	gorm.Model
	Title string `gorm:"size:200;not null"`
	Icon  string `gorm:"size:500;not null"`
	Text  string `gorm:"type:text;not null"`
	Link  string `gorm:"size:500;not null"`
	Sort  int    `gorm:"default:0"`
}
