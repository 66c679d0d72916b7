package service

import (
	"errors"
	"fmt"

	"github.com/marketcms/internal/db"
	"gorm.io/gorm"
)

// ErrPromotionProductNotFound 表示促销商品不存在
var ErrPromotionProductNotFound = errors.New("promotion product not found")

// PromotionsService 管理促销页内容与促销商品。
type PromotionsService struct {
	db *gorm.DB
}

// NewPromotionsService 构造 PromotionsService
func NewPromotionsService(gdb *gorm.DB) *PromotionsService {
	return &PromotionsService{db: gdb}
}

// PromotionsData 为促销页的完整视图。
type PromotionsData struct {
	Text      string    `json:"text"`
	ImagePath string    `json:"image_path"`
	Products  []Product `json:"products"`
}

// PromotionsInput 描述促销页的更新请求。Text 总是写入，其余字段缺省时保持不变。
type PromotionsInput struct {
	Text      string
	ImagePath *string
	Products  *[]ProductInput
}

// Get 返回促销页，不存在时返回空页面。
func (s *PromotionsService) Get() (PromotionsData, error) {
	var page db.PromotionsPage
	if err := s.db.First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PromotionsData{Products: []Product{}}, nil
		}
		return PromotionsData{}, fmt.Errorf("get promotions page: %w", err)
	}

	products, err := s.listProducts(page.ID)
	if err != nil {
		return PromotionsData{}, err
	}

	return PromotionsData{Text: page.Text, ImagePath: page.ImagePath, Products: products}, nil
}

// Update 更新促销页，必要时创建；Products 给定时在事务内整体替换。
func (s *PromotionsService) Update(input PromotionsInput) (PromotionsData, error) {
	var replacement []productRecordInput
	if input.Products != nil {
		validated, err := validateProductInputs(*input.Products)
		if err != nil {
			return PromotionsData{}, err
		}
		replacement = validated
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var page db.PromotionsPage
		findErr := tx.First(&page).Error
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		page.Text = input.Text
		if input.ImagePath != nil {
			page.ImagePath = *input.ImagePath
		}
		if err := tx.Save(&page).Error; err != nil {
			return err
		}

		if input.Products == nil {
			return nil
		}

		if err := tx.Unscoped().Where("promotions_page_id = ?", page.ID).Delete(&db.PromotionProduct{}).Error; err != nil {
			return err
		}
		for index, product := range replacement {
			record := db.PromotionProduct{
				PromotionsPageID: page.ID,
				Name:             product.Name,
				Description:      product.Description,
				ImagePath:        product.ImagePath,
				Prices:           product.Prices,
				Sort:             index,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return PromotionsData{}, fmt.Errorf("update promotions page: %w", err)
	}

	return s.Get()
}

// AddProduct 向促销页追加商品，页面不存在时自动创建。
func (s *PromotionsService) AddProduct(input ProductInput) (Product, error) {
	record, err := validateProductInput(input)
	if err != nil {
		return Product{}, err
	}

	var created db.PromotionProduct
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var page db.PromotionsPage
		findErr := tx.First(&page).Error
		switch {
		case findErr == nil:
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if err := tx.Create(&page).Error; err != nil {
				return err
			}
		default:
			return findErr
		}

		var count int64
		if err := tx.Model(&db.PromotionProduct{}).Where("promotions_page_id = ?", page.ID).Count(&count).Error; err != nil {
			return err
		}

		created = db.PromotionProduct{
			PromotionsPageID: page.ID,
			Name:             record.Name,
			Description:      record.Description,
			ImagePath:        record.ImagePath,
			Prices:           record.Prices,
			Sort:             int(count),
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return Product{}, fmt.Errorf("add promotion product: %w", err)
	}

	return promotionProductView(created), nil
}

// UpdateProduct 按行 ID 更新促销商品。
func (s *PromotionsService) UpdateProduct(productID uint, input ProductInput) (Product, error) {
	record, err := validateProductInput(input)
	if err != nil {
		return Product{}, err
	}

	var product db.PromotionProduct
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Product{}, ErrPromotionProductNotFound
		}
		return Product{}, fmt.Errorf("get promotion product: %w", err)
	}

	product.Name = record.Name
	product.Description = record.Description
	product.ImagePath = record.ImagePath
	product.Prices = record.Prices
	if err := s.db.Save(&product).Error; err != nil {
		return Product{}, fmt.Errorf("save promotion product: %w", err)
	}

	return promotionProductView(product), nil
}

// DeleteProduct 按行 ID 删除促销商品。
func (s *PromotionsService) DeleteProduct(productID uint) error {
	var product db.PromotionProduct
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPromotionProductNotFound
		}
		return fmt.Errorf("get promotion product: %w", err)
	}
	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("delete promotion product: %w", err)
	}
	return nil
}

func (s *PromotionsService) listProducts(pageID uint) ([]Product, error) {
	var records []db.PromotionProduct
	if err := s.db.Where("promotions_page_id = ?", pageID).
		Order("sort ASC, id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list promotion products: %w", err)
	}

	products := make([]Product, 0, len(records))
	for _, record := range records {
		products = append(products, promotionProductView(record))
	}
	return products, nil
}

func promotionProductView(record db.PromotionProduct) Product {
	return Product{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		ImagePath:   record.ImagePath,
		Prices:      decodePrices(record.Prices),
	}
}
