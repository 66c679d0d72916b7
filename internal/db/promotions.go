package db

import "gorm.io/gorm"

// PromotionsPage 保存"Акции"页面的文本与图片，最多只应存在一行。
type PromotionsPage struct {
	gorm.Model
	Text      string `gorm:"type:text"`
	ImagePath string `gorm:"size:500"`
}

// TableName 与历史数据库保持一致。
func (PromotionsPage) TableName() string {
	return "promotions_pages"
}

// PromotionProduct 表示прайс中的一个商品条目，结构与 PageProduct 对应
type PromotionProduct struct {
	gorm.Model
	PromotionsPageID uint   `gorm:"index"`
	Name             string `gorm:"size:200"`
	Description      string `gorm:"type:text"`
	ImagePath        string `gorm:"size:500"`
	Prices           string `gorm:"type:text"`
	Sort             int    `gorm:"default:0"`
}
