package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marketcms/internal/db"
	"gorm.io/gorm"
)

// 页面相关错误
var (
	ErrPageNotFound        = errors.New("page not found")
	ErrPageProductNotFound = errors.New("page product not found")
)

// PageService 管理带商品列表的内容页（发货页、批发页）。
type PageService struct {
	db *gorm.DB
}

// NewPageService 构造 PageService
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// PageData 为页面内容及其商品的完整视图。
type PageData struct {
	PageType   string    `json:"page_type"`
	TopText    string    `json:"top_text"`
	BottomText string    `json:"bottom_text"`
	Products   []Product `json:"products"`
}

// PageInput 描述页面文本的更新请求，Products 非 nil 时整体替换商品列表。
type PageInput struct {
	TopText    *string
	BottomText *string
	Products   *[]ProductInput
}

// GetPage 返回指定类型的页面，不存在时返回空页面而非错误。
func (s *PageService) GetPage(pageType string) (PageData, error) {
	var page db.PageContent
	if err := s.db.Where("page_type = ?", pageType).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PageData{PageType: pageType, Products: []Product{}}, nil
		}
		return PageData{}, fmt.Errorf("get page content: %w", err)
	}

	products, err := s.listProducts(page.ID)
	if err != nil {
		return PageData{}, err
	}

	return PageData{
		PageType:   page.PageType,
		TopText:    page.TopText,
		BottomText: page.BottomText,
		Products:   products,
	}, nil
}

// UpdatePage 更新页面文本，必要时创建页面；Products 给定时在事务内整体替换。
func (s *PageService) UpdatePage(pageType string, input PageInput) (PageData, error) {
	var replacement []productRecordInput
	if input.Products != nil {
		validated, err := validateProductInputs(*input.Products)
		if err != nil {
			return PageData{}, err
		}
		replacement = validated
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var page db.PageContent
		findErr := tx.Where("page_type = ?", pageType).First(&page).Error
		switch {
		case findErr == nil:
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			page = db.PageContent{PageType: pageType}
		default:
			return findErr
		}

		if input.TopText != nil {
			page.TopText = *input.TopText
		}
		if input.BottomText != nil {
			page.BottomText = *input.BottomText
		}
		if err := tx.Save(&page).Error; err != nil {
			return err
		}

		if input.Products == nil {
			return nil
		}

		if err := tx.Unscoped().Where("page_content_id = ?", page.ID).Delete(&db.PageProduct{}).Error; err != nil {
			return err
		}
		for index, product := range replacement {
			record := db.PageProduct{
				PageContentID: page.ID,
				Name:          product.Name,
				Description:   product.Description,
				ImagePath:     product.ImagePath,
				Prices:        product.Prices,
				Sort:          index,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return PageData{}, fmt.Errorf("update page content: %w", err)
	}

	return s.GetPage(pageType)
}

// AddProduct 向页面追加商品，页面不存在时自动创建。
func (s *PageService) AddProduct(pageType string, input ProductInput) (Product, error) {
	record, err := validateProductInput(input)
	if err != nil {
		return Product{}, err
	}

	var created db.PageProduct
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var page db.PageContent
		findErr := tx.Where("page_type = ?", pageType).First(&page).Error
		switch {
		case findErr == nil:
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			page = db.PageContent{PageType: pageType}
			if err := tx.Create(&page).Error; err != nil {
				return err
			}
		default:
			return findErr
		}

		var count int64
		if err := tx.Model(&db.PageProduct{}).Where("page_content_id = ?", page.ID).Count(&count).Error; err != nil {
			return err
		}

		created = db.PageProduct{
			PageContentID: page.ID,
			Name:          record.Name,
			Description:   record.Description,
			ImagePath:     record.ImagePath,
			Prices:        record.Prices,
			Sort:          int(count),
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return Product{}, fmt.Errorf("add page product: %w", err)
	}

	return pageProductView(created), nil
}

// UpdateProduct 按行 ID 更新页面商品。
func (s *PageService) UpdateProduct(pageType string, productID uint, input ProductInput) (Product, error) {
	record, err := validateProductInput(input)
	if err != nil {
		return Product{}, err
	}

	page, err := s.findPage(pageType)
	if err != nil {
		return Product{}, err
	}

	var product db.PageProduct
	if err := s.db.Where("page_content_id = ?", page.ID).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Product{}, ErrPageProductNotFound
		}
		return Product{}, fmt.Errorf("get page product: %w", err)
	}

	product.Name = record.Name
	product.Description = record.Description
	product.ImagePath = record.ImagePath
	product.Prices = record.Prices
	if err := s.db.Save(&product).Error; err != nil {
		return Product{}, fmt.Errorf("save page product: %w", err)
	}

	return pageProductView(product), nil
}

// DeleteProduct 按行 ID 删除页面商品。
func (s *PageService) DeleteProduct(pageType string, productID uint) error {
	page, err := s.findPage(pageType)
	if err != nil {
		return err
	}

	var product db.PageProduct
	if err := s.db.Where("page_content_id = ?", page.ID).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPageProductNotFound
		}
		return fmt.Errorf("get page product: %w", err)
	}
	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("delete page product: %w", err)
	}
	return nil
}

func (s *PageService) findPage(pageType string) (db.PageContent, error) {
	var page db.PageContent
	if err := s.db.Where("page_type = ?", pageType).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.PageContent{}, ErrPageNotFound
		}
		return db.PageContent{}, fmt.Errorf("get page content: %w", err)
	}
	return page, nil
}

func (s *PageService) listProducts(pageID uint) ([]Product, error) {
	var records []db.PageProduct
	if err := s.db.Where("page_content_id = ?", pageID).
		Order("sort ASC, id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list page products: %w", err)
	}

	products := make([]Product, 0, len(records))
	for _, record := range records {
		products = append(products, pageProductView(record))
	}
	return products, nil
}

func pageProductView(record db.PageProduct) Product {
	return Product{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		ImagePath:   record.ImagePath,
		Prices:      decodePrices(record.Prices),
	}
}

// productRecordInput 为经过校验、价格已编码的商品写入载体。
type productRecordInput struct {
	Name        string
	Description string
	ImagePath   string
	Prices      string
}

func validateProductInput(input ProductInput) (productRecordInput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return productRecordInput{}, invalid("Название товара обязательно")
	}

	return productRecordInput{
		Name:        name,
		Description: input.Description,
		ImagePath:   input.ImagePath,
		Prices:      db.EncodePrices(input.normalizedPrices()),
	}, nil
}

func validateProductInputs(inputs []ProductInput) ([]productRecordInput, error) {
	records := make([]productRecordInput, 0, len(inputs))
	for _, input := range inputs {
		record, err := validateProductInput(input)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
