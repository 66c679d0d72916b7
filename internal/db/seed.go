package db

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// PriceOption 描述商品的一个"重量-价格"档位，用于序列化 Prices 列。
type PriceOption struct {
	Weight string `json:"weight"`
	Price  string `json:"price"`
}

// EncodePrices 将价格档位序列化为 JSON 文本。
func EncodePrices(prices []PriceOption) string {
	if len(prices) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(prices)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// Seed 在空数据库上写入与原站一致的默认内容。
// 每个实体只在对应表为空时初始化，重复调用是幂等的。
func Seed() error {
	if DB == nil {
		return errors.New("database not initialized")
	}

	if err := seedIntroButtonLink(); err != nil {
		return err
	}
	if err := seedContactButtonLink(); err != nil {
		return err
	}
	if err := seedIntroBackground(); err != nil {
		return err
	}
	if err := seedWorkCards(); err != nil {
		return err
	}
	if err := seedCalculatorSettings(); err != nil {
		return err
	}
	if err := seedLinks(); err != nil {
		return err
	}
	if err := seedChatBotSettings(); err != nil {
		return err
	}
	if err := seedUmamiSettings(); err != nil {
		return err
	}
	if err := seedPageContent(); err != nil {
		return err
	}
	return seedPromotionsPage()
}

func seedIntroButtonLink() error {
	var count int64
	if err := DB.Model(&IntroButtonLink{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return DB.Create(&IntroButtonLink{Link: "#about"}).Error
}

func seedContactButtonLink() error {
	var count int64
	if err := DB.Model(&ContactButtonLink{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return DB.Create(&ContactButtonLink{Link: "#"}).Error
}

func seedIntroBackground() error {
	var count int64
	if err := DB.Model(&IntroBackground{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return DB.Create(&IntroBackground{
		BackgroundPath: "/assets/img/main/intro-bg.png",
		BackgroundType: BackgroundTypeImage,
	}).Error
}

const defaultCardText = "Lorem Ipsum is simply dummy text of the printing and typesetting industry. " +
	"Lorem Ipsum has been the industry's standard dummy text ever since the 1500s, when an unknown printer took."

func seedWorkCards() error {
	var count int64
	if err := DB.Model(&WorkCard{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	cards := []WorkCard{
		{Title: "Курьер", Icon: "/assets/img/icons/courier-ico.svg", Text: defaultCardText, Link: ".", Sort: 0},
		{Title: "Xимик", Icon: "/assets/img/icons/chemie-ico.svg", Text: defaultCardText, Link: ".", Sort: 1},
		{Title: "Склад", Icon: "/assets/img/icons/sklad-ico.svg", Text: defaultCardText, Link: ".", Sort: 2},
	}
	return DB.Create(&cards).Error
}

const (
	// DefaultWarehousePrice 为三种клад类型的默认单价。
	DefaultWarehousePrice = 4225.0
	// DefaultWeeksPerMonth 为月均周数的默认值。
	DefaultWeeksPerMonth = 4.33
	// DefaultPackingBonus 为фасовка奖励的默认值。
	DefaultPackingBonus = 1100.0
	// DefaultChemistKgPrice 为химик每公斤的默认价格。
	DefaultChemistKgPrice = 120000.0
	// DefaultCarrierWithWeightPrice 为"с весом"档位的默认步进价。
	DefaultCarrierWithWeightPrice = 100000.0
	// DefaultCarrierWithoutWeightPrice 为"без веса"档位的默认步进价。
	DefaultCarrierWithoutWeightPrice = 2000.0
)

func seedCalculatorSettings() error {
	var count int64
	if err := DB.Model(&CalculatorSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := CalculatorSettings{
		WarehousePricePerDeposit:         DefaultWarehousePrice,
		WarehousePricePrikop:             DefaultWarehousePrice,
		WarehousePriceMagnet:             DefaultWarehousePrice,
		WeeksPerMonth:                    DefaultWeeksPerMonth,
		PackingBonus:                     DefaultPackingBonus,
		ChemistKgPrice:                   DefaultChemistKgPrice,
		CarrierWithWeightPricePerStep:    DefaultCarrierWithWeightPrice,
		CarrierWithoutWeightPricePerStep: DefaultCarrierWithoutWeightPrice,
	}
	if err := DB.Create(&settings).Error; err != nil {
		return err
	}

	city := CalculatorCity{CalculatorSettingsID: settings.ID, Name: "Москва", Sort: 0}
	if err := DB.Create(&city).Error; err != nil {
		return err
	}

	products := []CalculatorCityProduct{
		{CalculatorCityID: city.ID, Name: "Яблоки", Price: 900, Sort: 0},
		{CalculatorCityID: city.ID, Name: "Груши", Price: 900, Sort: 1},
		{CalculatorCityID: city.ID, Name: "Апельсины", Price: 900, Sort: 2},
	}
	return DB.Create(&products).Error
}

func seedLinks() error {
	var count int64
	if err := DB.Model(&Link{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	links := []Link{
		{Text: "Rutor", URL: "https://example.com", Icon: "/assets/img/icons/rutor-ico.svg", Sort: 0},
		{Text: "Telegram", URL: "https://example.com", Icon: "/assets/img/icons/telegram-ico.svg", Sort: 1},
		{Text: "Магазин", URL: "https://example.com", Icon: "/assets/img/icons/shop-ico.svg", Sort: 2},
	}
	return DB.Create(&links).Error
}

func seedChatBotSettings() error {
	var count int64
	if err := DB.Model(&ChatBotSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return DB.Create(&ChatBotSettings{}).Error
}

func seedUmamiSettings() error {
	var count int64
	if err := DB.Model(&UmamiSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return DB.Create(&UmamiSettings{WebsiteID: DefaultUmamiWebsiteID}).Error
}

const shipmentsBottomDefault = `<h2>Условия отправки почтой</h2>
<p>Отправка товара производится в течение 48 часов после оплаты!</p>
<p>При каждом заказе берём дополнительно 400 грн за упаковку и отправку.</p>
<p>Минимальный заказ — 20$.</p>
<h3>Методы оплаты</h3>
<p>Оплата картой (10% комиссия)</p>
<p>USDT, TRON, BTC, LTC — без комиссии.</p>`

func seedPageContent() error {
	if err := seedPage(
		"shipments",
		"Это тестовый текст для страницы «Отправки». Вы можете изменить его в админке.",
		shipmentsBottomDefault,
		[]PageProduct{
			{
				Name:        "Яблоки (розница)",
				Description: "Сочные красные яблоки премиального сорта. Идеальны для свежего употребления.",
				ImagePath:   "/assets/img/main/1.png",
				Prices: EncodePrices([]PriceOption{
					{Weight: "0.5 кг", Price: "250 ₽"},
					{Weight: "1 кг", Price: "450 ₽"},
				}),
			},
			{
				Name:        "Апельсины (розница)",
				Description: "Спелые апельсины с ярким цитрусовым вкусом и высоким содержанием витамина C.",
				ImagePath:   "/assets/img/main/2.png",
				Prices: EncodePrices([]PriceOption{
					{Weight: "0.5 кг", Price: "270 ₽"},
					{Weight: "1 кг", Price: "490 ₽"},
				}),
			},
			{
				Name:        "Лимоны (розница)",
				Description: "Ароматные лимоны для чая, выпечки и домашних лимонадов.",
				ImagePath:   "/assets/img/main/3.png",
				Prices: EncodePrices([]PriceOption{
					{Weight: "0.5 кг", Price: "220 ₽"},
					{Weight: "1 кг", Price: "400 ₽"},
				}),
			},
		},
	); err != nil {
		return err
	}

	return seedPage(
		"wholesale",
		"Тестовый верхний текст для страницы «Опт кладами». Измените его в админке.",
		"Тестовый нижний текст для «Опта кладами». Также редактируется в админке.",
		[]PageProduct{
			{
				Name:        "Яблоки (опт)",
				Description: "Крупная оптовая партия яблок для магазинов и HoReCa.",
				ImagePath:   "/assets/img/main/1.png",
				Prices: EncodePrices([]PriceOption{
					{Weight: "5 кг", Price: "1 800 ₽"},
					{Weight: "10 кг", Price: "3 400 ₽"},
				}),
			},
			{
				Name:        "Апельсины (опт)",
				Description: "Свежие апельсины в оптовой фасовке для торговых сетей.",
				ImagePath:   "/assets/img/main/2.png",
				Prices: EncodePrices([]PriceOption{
					{Weight: "5 кг", Price: "1 950 ₽"},
					{Weight: "10 кг", Price: "3 700 ₽"},
				}),
			},
			{
				Name:        "Лимоны (опт)",
				Description: "Отборные лимоны крупным оптом.",
				ImagePath:   "/assets/img/main/3.png",
				Prices: EncodePrices([]PriceOption{
					{Weight: "5 кг", Price: "1 600 ₽"},
					{Weight: "10 кг", Price: "3 000 ₽"},
				}),
			},
		},
	)
}

func seedPage(pageType, topText, bottomText string, products []PageProduct) error {
	var page PageContent
	err := DB.Where("page_type = ?", pageType).First(&page).Error
	switch {
	case err == nil:
		// 旧数据没有商品时补充演示商品
		var count int64
		if err := DB.Model(&PageProduct{}).Where("page_content_id = ?", page.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		page = PageContent{PageType: pageType, TopText: topText, BottomText: bottomText}
		if err := DB.Create(&page).Error; err != nil {
			return err
		}
	default:
		return err
	}

	for i := range products {
		products[i].PageContentID = page.ID
		products[i].Sort = i
	}
	return DB.Create(&products).Error
}

func seedPromotionsPage() error {
	var page PromotionsPage
	err := DB.First(&page).Error
	switch {
	case err == nil:
		var count int64
		if err := DB.Model(&PromotionProduct{}).Where("promotions_page_id = ?", page.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		page = PromotionsPage{
			Text: "Тестовый текст для страницы «Акции и предложения». Отредактируйте его под свои задачи.",
		}
		if err := DB.Create(&page).Error; err != nil {
			return err
		}
	default:
		return err
	}

	products := []PromotionProduct{
		{
			PromotionsPageID: page.ID,
			Name:             "Яблоки (акция)",
			Description:      "Специальная цена на сладкие яблоки при заказе от 1 кг.",
			ImagePath:        "/assets/img/main/1.png",
			Prices: EncodePrices([]PriceOption{
				{Weight: "1 кг", Price: "420 ₽"},
				{Weight: "2 кг", Price: "780 ₽"},
			}),
			Sort: 0,
		},
		{
			PromotionsPageID: page.ID,
			Name:             "Апельсины (акция)",
			Description:      "Выгодное предложение на апельсины для свежевыжатого сока.",
			ImagePath:        "/assets/img/main/2.png",
			Prices: EncodePrices([]PriceOption{
				{Weight: "1 кг", Price: "460 ₽"},
				{Weight: "3 кг", Price: "1 280 ₽"},
			}),
			Sort: 1,
		},
		{
			PromotionsPageID: page.ID,
			Name:             "Лимоны (акция)",
			Description:      "Скидка на лимоны при заказе от 2 кг.",
			ImagePath:        "/assets/img/main/3.png",
			Prices: EncodePrices([]PriceOption{
				{Weight: "2 кг", Price: "720 ₽"},
			}),
			Sort: 2,
		},
	}
	return DB.Create(&products).Error
}
