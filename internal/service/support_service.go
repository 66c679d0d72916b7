package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/marketcms/internal/db"
	"gorm.io/gorm"
)

// ErrSupportRequestNotFound 表示工单不存在
var ErrSupportRequestNotFound = errors.New("support request not found")

const (
	maxSupportMessageLen = 2000
	maxContactMethodLen  = 300
)

// SupportService 管理用户反馈工单。
type SupportService struct {
	db *gorm.DB
}

// NewSupportService 构造 SupportService
func NewSupportService(gdb *gorm.DB) *SupportService {
	return &SupportService{db: gdb}
}

// Create 校验并创建新工单，状态固定为 new。
func (s *SupportService) Create(message, contactMethod string) (db.SupportRequest, error) {
	message = strings.TrimSpace(message)
	contactMethod = strings.TrimSpace(contactMethod)

	if message == "" {
		return db.SupportRequest{}, invalid("Введите сообщение")
	}
	if contactMethod == "" {
		return db.SupportRequest{}, invalid("Укажите желаемый способ связи")
	}
	if utf8.RuneCountInString(message) > maxSupportMessageLen {
		return db.SupportRequest{}, invalid("Сообщение слишком длинное (макс. 2000 символов)")
	}
	if utf8.RuneCountInString(contactMethod) > maxContactMethodLen {
		return db.SupportRequest{}, invalid("Способ связи слишком длинный (макс. 300 символов)")
	}

	request := db.SupportRequest{
		Message:       message,
		ContactMethod: contactMethod,
		Status:        db.SupportStatusNew,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return db.SupportRequest{}, fmt.Errorf("create support request: %w", err)
	}
	return request, nil
}

// List 返回全部工单，新工单在前，同状态内按时间倒序。
func (s *SupportService) List() ([]db.SupportRequest, error) {
	var requests []db.SupportRequest
	if err := s.db.Order("status ASC, created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("list support requests: %w", err)
	}
	return requests, nil
}

// UpdateStatus 修改工单状态，仅允许 new 与 processed。
func (s *SupportService) UpdateStatus(id uint, status string) (db.SupportRequest, error) {
	if status != db.SupportStatusNew && status != db.SupportStatusProcessed {
		return db.SupportRequest{}, invalid("Некорректный статус")
	}

	var request db.SupportRequest
	if err := s.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.SupportRequest{}, ErrSupportRequestNotFound
		}
		return db.SupportRequest{}, fmt.Errorf("get support request: %w", err)
	}

	request.Status = status
	if err := s.db.Save(&request).Error; err != nil {
		return db.SupportRequest{}, fmt.Errorf("save support request: %w", err)
	}
	return request, nil
}

// Delete 删除工单
func (s *SupportService) Delete(id uint) error {
	var request db.SupportRequest
	if err := s.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupportRequestNotFound
		}
		return fmt.Errorf("get support request: %w", err)
	}
	if err := s.db.Delete(&request).Error; err != nil {
		return fmt.Errorf("delete support request: %w", err)
	}
	return nil
}
