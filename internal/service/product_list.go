package service

import (
	"encoding/json"

	"github.com/marketcms/internal/db"
)

// Product 描述内容页或акции页上的一个商品条目。
type Product struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ImagePath   string           `json:"image_path"`
	Prices      []db.PriceOption `json:"prices"`
}

// ProductInput 描述创建/更新商品时接受的字段。
// LegacyPrice 对应旧格式的单价字段，存在时会被规范化为单元素 Prices 列表。
type ProductInput struct {
	Name        string
	Description string
	ImagePath   string
	Prices      []db.PriceOption
	LegacyPrice *string
}

func (in ProductInput) normalizedPrices() []db.PriceOption {
	if in.Prices != nil {
		return in.Prices
	}
	if in.LegacyPrice != nil && *in.LegacyPrice != "" {
		return []db.PriceOption{{Weight: "", Price: *in.LegacyPrice}}
	}
	return []db.PriceOption{}
}

// decodePrices 将 JSON 文本解析为价格档位列表，格式损坏时视为空列表。
func decodePrices(raw string) []db.PriceOption {
	if raw == "" {
		return []db.PriceOption{}
	}
	var prices []db.PriceOption
	if err := json.Unmarshal([]byte(raw), &prices); err != nil {
		return []db.PriceOption{}
	}
	if prices == nil {
		return []db.PriceOption{}
	}
	return prices
}
