package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marketcms/internal/db"
	"gorm.io/gorm"
)

// ErrLinkNotFound 在指定的链接不存在时返回
var ErrLinkNotFound = errors.New("link not found")

// LinkService 负责维护首页链接集合
// 提供排序、增删改查能力，与 handler 解耦

type LinkService struct {
	db *gorm.DB
}

// NewLinkService 构造 LinkService
func NewLinkService(gdb *gorm.DB) *LinkService {
	return &LinkService{db: gdb}
}

// LinkInput 描述创建或更新链接时可设置的字段
// 指针字段为 nil 时表示沿用当前值

type LinkInput struct {
	Text *string
	URL  *string
	Icon *string
	Sort *int
}

// List 返回全部链接，按排序值升序
func (s *LinkService) List() ([]db.Link, error) {
	var links []db.Link
	if err := s.db.Order("sort ASC, id ASC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

// Create 新建链接
func (s *LinkService) Create(input LinkInput) (*db.Link, error) {
	link := db.Link{}
	applyLinkInput(&link, input)
	if err := validateLink(link); err != nil {
		return nil, err
	}

	if err := s.db.Create(&link).Error; err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return &link, nil
}

// Update 更新指定链接，未传入的字段保持原值
func (s *LinkService) Update(id uint, input LinkInput) (*db.Link, error) {
	var link db.Link
	if err := s.db.First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("find link: %w", err)
	}

	applyLinkInput(&link, input)
	if err := validateLink(link); err != nil {
		return nil, err
	}

	if err := s.db.Save(&link).Error; err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}
	return &link, nil
}

// Delete 删除指定链接
func (s *LinkService) Delete(id uint) error {
	var link db.Link
	if err := s.db.First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLinkNotFound
		}
		return fmt.Errorf("find link: %w", err)
	}

	if err := s.db.Delete(&link).Error; err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}

// Reorder 按给定的 ID 顺序重写排序字段
// 传入的 IDs 依次赋值 0,1,2...，库中不存在的 ID 会被静默跳过
func (s *LinkService) Reorder(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for index, id := range ids {
			if err := tx.Model(&db.Link{}).Where("id = ?", id).Update("sort", index).Error; err != nil {
				return fmt.Errorf("reorder links: %w", err)
			}
		}
		return nil
	})
}

func applyLinkInput(link *db.Link, input LinkInput) {
	if input.Text != nil {
		link.Text = strings.TrimSpace(*input.Text)
	}
	if input.URL != nil {
		link.URL = strings.TrimSpace(*input.URL)
	}
	if input.Icon != nil {
		link.Icon = strings.TrimSpace(*input.Icon)
	}
	if input.Sort != nil {
		link.Sort = *input.Sort
	}
}

func validateLink(link db.Link) error {
	if link.Text == "" {
		return invalid("Текст обязателен")
	}
	if link.URL == "" {
		return invalid("Ссылка обязательна")
	}
	if link.Icon == "" {
		return invalid("Иконка обязательна")
	}
	if !strings.HasPrefix(link.URL, "http://") && !strings.HasPrefix(link.URL, "https://") {
		return invalid("Ссылка должна начинаться с http:// или https://")
	}
	return nil
}
