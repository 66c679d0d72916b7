package db

import "gorm.io/gorm"

// CalculatorSettings 保存计算器的数值参数，最多只应存在一行。
// 城市与商品价格在 CalculatorCity/CalculatorCityProduct 中以子表形式存储，
// 替代旧版单列 JSON 的整体读写。
type CalculatorSettings struct {
	gorm.Model
	WarehousePricePerDeposit         float64 `gorm:"not null"`
	WarehousePricePrikop             float64 `gorm:"not null"`
	WarehousePriceMagnet             float64 `gorm:"not null"`
	WeeksPerMonth                    float64 `gorm:"not null;default:4.33"`
	PackingBonus                     float64 `gorm:"not null;default:1100"`
	ChemistKgPrice                   float64
	CarrierWithWeightPricePerStep    float64
	CarrierWithoutWeightPricePerStep float64
}

// TableName 与历史数据库保持一致。
func (CalculatorSettings) TableName() string {
	return "calculator_settings"
}

// CalculatorCity 表示计算器中的一个城市
type CalculatorCity struct {
	gorm.Model
	CalculatorSettingsID uint   `gorm:"index"`
	Name                 string `gorm:"size:200;not null"`
	Sort                 int    `gorm:"default:0"`
}

// CalculatorCityProduct 表示城市内的商品及其价格
type CalculatorCityProduct struct {
	gorm.Model
	CalculatorCityID uint    `gorm:"index"`
	Name             string  `gorm:"size:200;not null"`
	Price            float64 `gorm:"not null"`
	Sort             int     `gorm:"default:0"`
}
