package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marketcms/internal/service"
)

type calculatorPayload struct {
	Cities                           json.RawMessage `json:"cities"`
	WarehousePricePerDeposit         *float64        `json:"warehouse_price_per_deposit"`
	WarehousePricePrikop             *float64        `json:"warehouse_price_prikop"`
	WarehousePriceMagnet             *float64        `json:"warehouse_price_magnet"`
	WeeksPerMonth                    *float64        `json:"weeks_per_month"`
	PackingBonus                     *float64        `json:"packing_bonus"`
	ChemistKgPrice                   *float64        `json:"chemist_kg_price"`
	CarrierWithWeightPricePerStep    *float64        `json:"carrier_with_weight_price_per_step"`
	CarrierWithoutWeightPricePerStep *float64        `json:"carrier_without_weight_price_per_step"`
}

func calculatorView(data service.CalculatorData) gin.H {
	cities := data.Cities
	if cities == nil {
		cities = []service.City{}
	}
	return gin.H{
		"cities":                                cities,
		"warehouse_price_per_deposit":           data.WarehousePricePerDeposit,
		"warehouse_price_prikop":                data.WarehousePricePrikop,
		"warehouse_price_magnet":                data.WarehousePriceMagnet,
		"weeks_per_month":                       data.WeeksPerMonth,
		"packing_bonus":                         data.PackingBonus,
		"chemist_kg_price":                      data.ChemistKgPrice,
		"carrier_with_weight_price_per_step":    data.CarrierWithWeightPricePerStep,
		"carrier_without_weight_price_per_step": data.CarrierWithoutWeightPricePerStep,
	}
}

// GetCalculatorSettingsAdmin 返回计算器配置，未创建时 404。
func (a *API) GetCalculatorSettingsAdmin(c *gin.Context) {
	data, err := a.calculator.Get()
	if err != nil {
		if errors.Is(err, service.ErrCalculatorNotFound) {
			respondError(c, http.StatusNotFound, "Настройки калькулятора не найдены")
			return
		}
		respondError(c, http.StatusInternalServerError, "Ошибка при получении настроек калькулятора")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": calculatorView(data)})
}

// UpdateCalculatorSettings 校验并保存计算器配置。
// cities 作为原始 JSON 手动解码，以区分"不是数组"与字段缺失。
func (a *API) UpdateCalculatorSettings(c *gin.Context) {
	var payload calculatorPayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	var cities []service.CityInput
	if len(payload.Cities) > 0 && string(payload.Cities) != "null" {
		if err := json.Unmarshal(payload.Cities, &cities); err != nil {
			respondError(c, http.StatusBadRequest, "Города должны быть массивом")
			return
		}
	}

	data, err := a.calculator.Update(service.CalculatorInput{
		Cities:                           cities,
		WarehousePricePerDeposit:         payload.WarehousePricePerDeposit,
		WarehousePricePrikop:             payload.WarehousePricePrikop,
		WarehousePriceMagnet:             payload.WarehousePriceMagnet,
		WeeksPerMonth:                    payload.WeeksPerMonth,
		PackingBonus:                     payload.PackingBonus,
		ChemistKgPrice:                   payload.ChemistKgPrice,
		CarrierWithWeightPricePerStep:    payload.CarrierWithWeightPricePerStep,
		CarrierWithoutWeightPricePerStep: payload.CarrierWithoutWeightPricePerStep,
	})
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при обновлении настроек калькулятора")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Настройки калькулятора успешно обновлены",
		"settings": calculatorView(data),
	})
}
