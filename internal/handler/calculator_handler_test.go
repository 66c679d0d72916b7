package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/marketcms/internal/db"
)

func TestGetCalculatorSettingsAdminNotFound(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	req := jsonRequest(t, http.MethodGet, "/admin/api/calculator-settings", nil)
	w := runHandler(req, nil, api.GetCalculatorSettingsAdmin)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Настройки калькулятора не найдены") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestUpdateCalculatorSettingsRejectsNonArrayCities(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	req := jsonRequest(t, http.MethodPut, "/admin/api/calculator-settings", map[string]interface{}{
		"cities":                      "Москва",
		"warehouse_price_per_deposit": 500,
	})
	w := runHandler(req, nil, api.UpdateCalculatorSettings)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Города должны быть массивом") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestUpdateCalculatorSettingsPersistsCities(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	req := jsonRequest(t, http.MethodPut, "/admin/api/calculator-settings", map[string]interface{}{
		"cities": []map[string]interface{}{
			{
				"name": "Казань",
				"products": []map[string]interface{}{
					{"name": "Яблоки", "price": 750},
				},
			},
		},
		"warehouse_price_per_deposit":           500,
		"warehouse_price_prikop":                600,
		"warehouse_price_magnet":                700,
		"weeks_per_month":                       4.35,
		"packing_bonus":                         50,
		"chemist_kg_price":                      15000,
		"carrier_with_weight_price_per_step":    800,
		"carrier_without_weight_price_per_step": 400,
	})
	w := runHandler(req, nil, api.UpdateCalculatorSettings)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Settings struct {
			Cities []struct {
				Name string `json:"name"`
			} `json:"cities"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Settings.Cities) != 1 || resp.Settings.Cities[0].Name != "Казань" {
		t.Fatalf("unexpected cities in response: %s", w.Body.String())
	}

	var cityCount int64
	db.DB.Model(&db.CalculatorCity{}).Count(&cityCount)
	if cityCount != 1 {
		t.Fatalf("expected one city row, got %d", cityCount)
	}
}

func TestUpdateCalculatorSettingsValidation(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	req := jsonRequest(t, http.MethodPut, "/admin/api/calculator-settings", map[string]interface{}{
		"warehouse_price_per_deposit": -1,
	})
	w := runHandler(req, nil, api.UpdateCalculatorSettings)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d: %s", w.Code, w.Body.String())
	}
}
