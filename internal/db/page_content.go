package db

import "gorm.io/gorm"

// PageContent 表示按 page_type 区分的内容页（如 shipments / wholesale）。
type PageContent struct {
	gorm.Model
	PageType   string `gorm:"size:50;uniqueIndex;not null"`
	TopText    string `gorm:"type:text"`
	BottomText string `gorm:"type:text"`
}

// PageProduct 表示内容页上的一个商品条目
// Prices 以 JSON 文本保存 [{"weight","price"}] 列表；解析失败视为空列表
type PageProduct struct {
	gorm.Model
	PageContentID uint   `gorm:"index"`
	Name          string `gorm:"size:200"`
	Description   string `gorm:"type:text"`
	ImagePath     string `gorm:"size:500"`
	Prices        string `gorm:"type:text"`
	Sort          int    `gorm:"default:0"`
}
