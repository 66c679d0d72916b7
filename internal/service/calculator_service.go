package service

import (
	"errors"
	"fmt"

	"github.com/marketcms/internal/db"
	"gorm.io/gorm"
)

// ErrCalculatorNotFound 表示计算器配置尚未创建。
var ErrCalculatorNotFound = errors.New("calculator settings not found")

// CalculatorService 维护计算器的数值参数与城市价格表。
// 城市与商品以规范化子表存储，PUT 在一个事务内整体替换。
type CalculatorService struct {
	db *gorm.DB
}

// NewCalculatorService 构造 CalculatorService
func NewCalculatorService(gdb *gorm.DB) *CalculatorService {
	return &CalculatorService{db: gdb}
}

// CityProduct 描述城市内的商品及价格。
type CityProduct struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// City 描述计算器中的一个城市。
type City struct {
	Name     string        `json:"name"`
	Products []CityProduct `json:"products"`
}

// CalculatorData 为计算器配置的完整视图。
type CalculatorData struct {
	Cities                           []City
	WarehousePricePerDeposit         float64
	WarehousePricePrikop             float64
	WarehousePriceMagnet             float64
	WeeksPerMonth                    float64
	PackingBonus                     float64
	ChemistKgPrice                   float64
	CarrierWithWeightPricePerStep    float64
	CarrierWithoutWeightPricePerStep float64
}

// CityProductInput 描述客户端提交的城市商品，指针字段用于区分缺失与零值。
type CityProductInput struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// CityInput 描述客户端提交的城市。
type CityInput struct {
	Name     *string             `json:"name"`
	Products *[]CityProductInput `json:"products"`
}

// CalculatorInput 描述 PUT 提交的配置，数值字段缺省时回退默认值。
type CalculatorInput struct {
	Cities                           []CityInput
	WarehousePricePerDeposit         *float64
	WarehousePricePrikop             *float64
	WarehousePriceMagnet             *float64
	WeeksPerMonth                    *float64
	PackingBonus                     *float64
	ChemistKgPrice                   *float64
	CarrierWithWeightPricePerStep    *float64
	CarrierWithoutWeightPricePerStep *float64
}

// Get 返回当前配置，未创建时返回 ErrCalculatorNotFound。
func (s *CalculatorService) Get() (CalculatorData, error) {
	var settings db.CalculatorSettings
	if err := s.db.First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CalculatorData{}, ErrCalculatorNotFound
		}
		return CalculatorData{}, fmt.Errorf("get calculator settings: %w", err)
	}

	cities, err := s.loadCities(settings.ID)
	if err != nil {
		return CalculatorData{}, err
	}

	return CalculatorData{
		Cities:                           cities,
		WarehousePricePerDeposit:         settings.WarehousePricePerDeposit,
		WarehousePricePrikop:             settings.WarehousePricePrikop,
		WarehousePriceMagnet:             settings.WarehousePriceMagnet,
		WeeksPerMonth:                    settings.WeeksPerMonth,
		PackingBonus:                     settings.PackingBonus,
		ChemistKgPrice:                   fallbackFloat(settings.ChemistKgPrice, db.DefaultChemistKgPrice),
		CarrierWithWeightPricePerStep:    fallbackFloat(settings.CarrierWithWeightPricePerStep, db.DefaultCarrierWithWeightPrice),
		CarrierWithoutWeightPricePerStep: fallbackFloat(settings.CarrierWithoutWeightPricePerStep, db.DefaultCarrierWithoutWeightPrice),
	}, nil
}

// DefaultData 返回未配置时对外展示的默认参数。
func DefaultCalculatorData() CalculatorData {
	return CalculatorData{
		Cities: []City{
			{
				Name: "Москва",
				Products: []CityProduct{
					{Name: "Яблоки", Price: 900},
					{Name: "Груши", Price: 900},
					{Name: "Апельсины", Price: 900},
				},
			},
		},
		WarehousePricePerDeposit:         db.DefaultWarehousePrice,
		WarehousePricePrikop:             db.DefaultWarehousePrice,
		WarehousePriceMagnet:             db.DefaultWarehousePrice,
		WeeksPerMonth:                    db.DefaultWeeksPerMonth,
		PackingBonus:                     db.DefaultPackingBonus,
		ChemistKgPrice:                   db.DefaultChemistKgPrice,
		CarrierWithWeightPricePerStep:    db.DefaultCarrierWithWeightPrice,
		CarrierWithoutWeightPricePerStep: db.DefaultCarrierWithoutWeightPrice,
	}
}

// Update 校验并保存配置；城市子表在同一事务内整体替换。
func (s *CalculatorService) Update(input CalculatorInput) (CalculatorData, error) {
	cities, err := validateCities(input.Cities)
	if err != nil {
		return CalculatorData{}, err
	}

	data := CalculatorData{
		Cities:                           cities,
		WarehousePricePerDeposit:         floatOrDefault(input.WarehousePricePerDeposit, db.DefaultWarehousePrice),
		WarehousePricePrikop:             floatOrDefault(input.WarehousePricePrikop, db.DefaultWarehousePrice),
		WarehousePriceMagnet:             floatOrDefault(input.WarehousePriceMagnet, db.DefaultWarehousePrice),
		WeeksPerMonth:                    floatOrDefault(input.WeeksPerMonth, db.DefaultWeeksPerMonth),
		PackingBonus:                     floatOrDefault(input.PackingBonus, db.DefaultPackingBonus),
		ChemistKgPrice:                   floatOrDefault(input.ChemistKgPrice, db.DefaultChemistKgPrice),
		CarrierWithWeightPricePerStep:    floatOrDefault(input.CarrierWithWeightPricePerStep, db.DefaultCarrierWithWeightPrice),
		CarrierWithoutWeightPricePerStep: floatOrDefault(input.CarrierWithoutWeightPricePerStep, db.DefaultCarrierWithoutWeightPrice),
	}

	if data.WarehousePricePerDeposit < 0 {
		return CalculatorData{}, invalid("Цена за клад должна быть положительным числом")
	}
	if data.WarehousePricePrikop < 0 {
		return CalculatorData{}, invalid("Цена за клад 'прикоп' должна быть положительным числом")
	}
	if data.WarehousePriceMagnet < 0 {
		return CalculatorData{}, invalid("Цена за клад 'магнит' должна быть положительным числом")
	}
	if data.WeeksPerMonth <= 0 {
		return CalculatorData{}, invalid("Количество недель в месяце должно быть положительным числом")
	}
	if data.PackingBonus < 0 {
		return CalculatorData{}, invalid("Бонус за фасовку должен быть неотрицательным числом")
	}
	if data.ChemistKgPrice < 0 {
		return CalculatorData{}, invalid("Цена за 1 кг (химик) должна быть неотрицательным числом")
	}
	if data.CarrierWithWeightPricePerStep < 0 {
		return CalculatorData{}, invalid("Цена за шаг «с весом» должна быть неотрицательным числом")
	}
	if data.CarrierWithoutWeightPricePerStep < 0 {
		return CalculatorData{}, invalid("Цена за шаг «без веса» должна быть неотрицательным числом")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var settings db.CalculatorSettings
		findErr := tx.First(&settings).Error
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		settings.WarehousePricePerDeposit = data.WarehousePricePerDeposit
		settings.WarehousePricePrikop = data.WarehousePricePrikop
		settings.WarehousePriceMagnet = data.WarehousePriceMagnet
		settings.WeeksPerMonth = data.WeeksPerMonth
		settings.PackingBonus = data.PackingBonus
		settings.ChemistKgPrice = data.ChemistKgPrice
		settings.CarrierWithWeightPricePerStep = data.CarrierWithWeightPricePerStep
		settings.CarrierWithoutWeightPricePerStep = data.CarrierWithoutWeightPricePerStep

		if err := tx.Save(&settings).Error; err != nil {
			return err
		}

		// 整体替换城市子表
		var cityIDs []uint
		if err := tx.Model(&db.CalculatorCity{}).
			Where("calculator_settings_id = ?", settings.ID).
			Pluck("id", &cityIDs).Error; err != nil {
			return err
		}
		if len(cityIDs) > 0 {
			if err := tx.Unscoped().Where("calculator_city_id IN ?", cityIDs).Delete(&db.CalculatorCityProduct{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("calculator_settings_id = ?", settings.ID).Delete(&db.CalculatorCity{}).Error; err != nil {
				return err
			}
		}

		for cityIndex, city := range data.Cities {
			record := db.CalculatorCity{CalculatorSettingsID: settings.ID, Name: city.Name, Sort: cityIndex}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			for productIndex, product := range city.Products {
				productRecord := db.CalculatorCityProduct{
					CalculatorCityID: record.ID,
					Name:             product.Name,
					Price:            product.Price,
					Sort:             productIndex,
				}
				if err := tx.Create(&productRecord).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return CalculatorData{}, fmt.Errorf("update calculator settings: %w", err)
	}

	return data, nil
}

func (s *CalculatorService) loadCities(settingsID uint) ([]City, error) {
	var cityRecords []db.CalculatorCity
	if err := s.db.Where("calculator_settings_id = ?", settingsID).
		Order("sort ASC, id ASC").Find(&cityRecords).Error; err != nil {
		return nil, fmt.Errorf("list calculator cities: %w", err)
	}

	cities := make([]City, 0, len(cityRecords))
	for _, record := range cityRecords {
		var productRecords []db.CalculatorCityProduct
		if err := s.db.Where("calculator_city_id = ?", record.ID).
			Order("sort ASC, id ASC").Find(&productRecords).Error; err != nil {
			return nil, fmt.Errorf("list calculator city products: %w", err)
		}

		products := make([]CityProduct, 0, len(productRecords))
		for _, product := range productRecords {
			products = append(products, CityProduct{Name: product.Name, Price: product.Price})
		}
		cities = append(cities, City{Name: record.Name, Products: products})
	}

	return cities, nil
}

func validateCities(inputs []CityInput) ([]City, error) {
	cities := make([]City, 0, len(inputs))
	for _, city := range inputs {
		if city.Name == nil || city.Products == nil {
			return nil, invalid("Каждый город должен иметь name и products")
		}

		products := make([]CityProduct, 0, len(*city.Products))
		for _, product := range *city.Products {
			if product.Name == nil || product.Price == nil {
				return nil, invalid("Каждый товар в городе должен иметь name и price")
			}
			if *product.Price < 0 {
				return nil, invalid("Цена товара в городе должна быть положительным числом")
			}
			products = append(products, CityProduct{Name: *product.Name, Price: *product.Price})
		}

		cities = append(cities, City{Name: *city.Name, Products: products})
	}
	return cities, nil
}

func floatOrDefault(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}

func fallbackFloat(value, fallback float64) float64 {
	if value == 0 {
		return fallback
	}
	return value
}
