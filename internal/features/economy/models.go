// Package economy управляет виртуальной валютой «монеты».
// models.go описывает счёт пользователя и каталог магазина.
package economy

import "strings"

// Account — счёт пользователя в файле economy_data.json.
// Отдельное хранилище, независимое от файла прокачки.
type Account struct {
	// Balance — текущий баланс, не уходит в минус: каждое списание
	// проверяет средства до мутации
	Balance int64 `json:"balance"`
	// LastDaily — время последней ежедневной награды (RFC3339) или null.
	// Окно скользящее, 24 часа от прошлого получения, не календарное.
	LastDaily *string `json:"last_daily"`
	// Inventory — упорядоченный список ID предметов, дубликаты допустимы
	// (мультимножество через повторы)
	Inventory []string `json:"inventory"`
	// XPBoostUntil — окончание действия XP-буста или null
	XPBoostUntil *string `json:"xp_boost_until"`
	// LuckyCharmUntil — окончание действия талисмана удачи или null
	LuckyCharmUntil *string `json:"lucky_charm_until"`
	// VIPBadge — постоянный флаг после покупки и активации
	VIPBadge bool `json:"vip_badge"`
	// WorkCount и GambleCount — дневные счётчики (0..5)
	WorkCount   int `json:"work_count"`
	GambleCount int `json:"gamble_count"`
	// LastUsageDate — календарная дата (UTC, 2006-01-02), к которой
	// относятся счётчики. Смена даты обнуляет оба счётчика ДО любого
	// чтения или инкремента — всегда вместе, никогда порознь.
	LastUsageDate string `json:"last_usage_date"`
}

// NewAccount возвращает счёт с нулевыми дефолтами.
func NewAccount() *Account {
	return &Account{Inventory: []string{}}
}

// ShopItem — товар магазина.
type ShopItem struct {
	ID          string
	Name        string
	Description string
	Price       int64
	// Consumable — расходуется ли предмет при использовании.
	// VIP-значок и цвет роли остаются в инвентаре.
	Consumable bool
}

// Идентификаторы товаров (и ключи инвентаря в файле данных).
const (
	ItemRoleColor  = "role_color"
	ItemXPBoost    = "xp_boost"
	ItemLuckyCharm = "lucky_charm"
	ItemVIPBadge   = "vip_badge"
	ItemMysteryBox = "mystery_box"
)

// ShopCatalog — все товары в порядке отображения.
var ShopCatalog = []ShopItem{
	{ID: ItemRoleColor, Name: "Цвет роли", Description: "Свой цвет роли на сервере", Price: 1000},
	{ID: ItemXPBoost, Name: "XP-буст (1 час)", Description: "Двойной опыт в течение часа", Price: 500, Consumable: true},
	{ID: ItemLuckyCharm, Name: "Талисман удачи", Description: "Удача на вашей стороне (1 час)", Price: 200, Consumable: true},
	{ID: ItemVIPBadge, Name: "VIP-значок", Description: "Постоянный VIP-статус", Price: 5000},
	{ID: ItemMysteryBox, Name: "Таинственная коробка", Description: "Случайная награда", Price: 100, Consumable: true},
}

// FindItem ищет товар по ID или названию без учёта регистра.
func FindItem(query string) (ShopItem, bool) {
	for _, item := range ShopCatalog {
		if strings.EqualFold(item.ID, query) || strings.EqualFold(item.Name, query) {
			return item, true
		}
	}
	return ShopItem{}, false
}
