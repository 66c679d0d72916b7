package db

import "gorm.io/gorm"

const (
	// SupportStatusNew 表示尚未处理的用户请求。
	SupportStatusNew = "new"
	// SupportStatusProcessed 表示已处理完成的用户请求。
	SupportStatusProcessed = "processed"
)

// SupportRequest 记录前台提交的联系请求
// 列表按 status 升序、创建时间倒序展示，确保新请求置顶
type SupportRequest struct {
	gorm.Model
	Message       string `gorm:"type:text;not null"`
	ContactMethod string `gorm:"size:300;not null"`
	Status        string `gorm:"size:20;not null;default:new"`
}
