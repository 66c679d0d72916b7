package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marketcms/internal/db"
	"gorm.io/gorm"
)

// ErrWorkCardNotFound 在指定的карточка不存在时返回
var ErrWorkCardNotFound = errors.New("work card not found")

// WorkCardService 负责维护"Работа"区块的卡片集合

type WorkCardService struct {
	db *gorm.DB
}

// NewWorkCardService 构造 WorkCardService
func NewWorkCardService(gdb *gorm.DB) *WorkCardService {
	return &WorkCardService{db: gdb}
}

// WorkCardInput 描述创建或更新卡片时可设置的字段
// 指针字段为 nil 时表示沿用当前值

type WorkCardInput struct {
	Title *string
	Icon  *string
	Text  *string
	Link  *string
	Sort  *int
}

// List 返回全部卡片，按排序值升序
func (s *WorkCardService) List() ([]db.WorkCard, error) {
	var cards []db.WorkCard
	if err := s.db.Order("sort ASC, id ASC").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list work cards: %w", err)
	}
	return cards, nil
}

// Create 新建卡片
func (s *WorkCardService) Create(input WorkCardInput) (*db.WorkCard, error) {
	card := db.WorkCard{}
	applyWorkCardInput(&card, input)
	if err := validateWorkCard(card); err != nil {
		return nil, err
	}

	if err := s.db.Create(&card).Error; err != nil {
		return nil, fmt.Errorf("create work card: %w", err)
	}
	return &card, nil
}

// Update 更新指定卡片，未传入的字段保持原值
func (s *WorkCardService) Update(id uint, input WorkCardInput) (*db.WorkCard, error) {
	var card db.WorkCard
	if err := s.db.First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkCardNotFound
		}
		return nil, fmt.Errorf("find work card: %w", err)
	}

	applyWorkCardInput(&card, input)
	if err := validateWorkCard(card); err != nil {
		return nil, err
	}

	if err := s.db.Save(&card).Error; err != nil {
		return nil, fmt.Errorf("update work card: %w", err)
	}
	return &card, nil
}

// Delete 删除指定卡片
func (s *WorkCardService) Delete(id uint) error {
	var card db.WorkCard
	if err := s.db.First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkCardNotFound
		}
		return fmt.Errorf("find work card: %w", err)
	}

	if err := s.db.Delete(&card).Error; err != nil {
		return fmt.Errorf("delete work card: %w", err)
	}
	return nil
}

// Reorder 按给定的 ID 顺序重写排序字段，不存在的 ID 被静默跳过
func (s *WorkCardService) Reorder(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for index, id := range ids {
			if err := tx.Model(&db.WorkCard{}).Where("id = ?", id).Update("sort", index).Error; err != nil {
				return fmt.Errorf("reorder work cards: %w", err)
			}
		}
		return nil
	})
}

func applyWorkCardInput(card *db.WorkCard, input WorkCardInput) {
	if input.Title != nil {
		card.Title = strings.TrimSpace(*input.Title)
	}
	if input.Icon != nil {
		card.Icon = strings.TrimSpace(*input.Icon)
	}
	if input.Text != nil {
		card.Text = strings.TrimSpace(*input.Text)
	}
	if input.Link != nil {
		card.Link = strings.TrimSpace(*input.Link)
	}
	if input.Sort != nil {
		card.Sort = *input.Sort
	}
}

func validateWorkCard(card db.WorkCard) error {
	if card.Title == "" {
		return invalid("Заголовок обязателен")
	}
	if card.Icon == "" {
		return invalid("Иконка обязательна")
	}
	if card.Text == "" {
		return invalid("Текст обязателен")
	}
	if card.Link == "" {
		return invalid("Ссылка обязательна")
	}
	return nil
}
